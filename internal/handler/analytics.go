package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ev-charging-admin/internal/repository"
)

// AnalyticsHandler serves booking statistics. The arithmetic is plain
// counting and summing, delegated to the repository's aggregate
// queries.
type AnalyticsHandler struct {
    Bookings *repository.BookingRepo
}

func NewAnalyticsHandler(bookings *repository.BookingRepo) *AnalyticsHandler {
    if bookings == nil {
        panic("nil repository passed to NewAnalyticsHandler")
    }
    return &AnalyticsHandler{Bookings: bookings}
}

// Stats handles GET /v1/analytics/stats.
func (h *AnalyticsHandler) Stats(c echo.Context) error {
    stats, err := h.Bookings.GetStats(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    return c.JSON(http.StatusOK, stats)
}

// StatsByDateRange handles GET /v1/analytics/stats/daterange with
// startDate and endDate query parameters, either RFC3339 or
// YYYY-MM-DD.
func (h *AnalyticsHandler) StatsByDateRange(c echo.Context) error {
    from, err := parseDateParam(c.QueryParam("startDate"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid startDate"})
    }
    to, err := parseDateParam(c.QueryParam("endDate"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid endDate"})
    }
    stats, err := h.Bookings.GetStatsByDateRange(c.Request().Context(), from, to)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    return c.JSON(http.StatusOK, stats)
}

// RevenueByStation handles GET /v1/analytics/revenue/station.
func (h *AnalyticsHandler) RevenueByStation(c echo.Context) error {
    revenue, err := h.Bookings.RevenueByStation(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    return c.JSON(http.StatusOK, revenue)
}

func parseDateParam(s string) (time.Time, error) {
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, nil
    }
    return time.Parse("2006-01-02", s)
}
