package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ev-charging-admin/internal/booking"
    "github.com/iliyamo/ev-charging-admin/internal/model"
    "github.com/iliyamo/ev-charging-admin/internal/policy"
    "github.com/iliyamo/ev-charging-admin/internal/queue"
    "github.com/iliyamo/ev-charging-admin/internal/repository"
    queue_publisher "github.com/iliyamo/ev-charging-admin/internal/service"
)

// BookingHandler exposes the booking API. Reads go straight to the
// repository; every mutation goes through the lifecycle service, which
// owns validation, conflict detection and the state machine. All
// methods assume JWT authentication has already run.
type BookingHandler struct {
    Svc      *booking.Service
    Bookings *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler. Both dependencies
// must be non-nil.
func NewBookingHandler(svc *booking.Service, bookings *repository.BookingRepo) *BookingHandler {
    if svc == nil || bookings == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Svc: svc, Bookings: bookings}
}

type createBookingReq struct {
    // UserID is accepted in the payload but never honored; the booking
    // is always created under the authenticated caller's identity.
    UserID    uint64    `json:"userId"`
    StationID uint64    `json:"stationId"`
    StartTime time.Time `json:"startTime"`
    EndTime   time.Time `json:"endTime"`
}

type updateBookingReq struct {
    StartTime time.Time `json:"startTime"`
    EndTime   time.Time `json:"endTime"`
    Status    string    `json:"status"`
}

// List handles GET /v1/bookings.
func (h *BookingHandler) List(c echo.Context) error {
    out, err := h.Bookings.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    if out == nil {
        out = []model.Booking{}
    }
    return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
    }
    b, err := h.Bookings.GetByID(c.Request().Context(), id)
    if err != nil {
        return bookingErrorResponse(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

// ListByUser handles GET /v1/bookings/user/:userId.
func (h *BookingHandler) ListByUser(c echo.Context) error {
    userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
    if err != nil || userID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
    }
    out, err := h.Bookings.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    if out == nil {
        out = []model.Booking{}
    }
    return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/bookings. The owner is forced to the caller
// regardless of the payload.
func (h *BookingHandler) Create(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User not authenticated"})
    }
    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
    }
    if req.StationID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "stationId is required"})
    }

    b, err := h.Svc.Create(c.Request().Context(), userID, req.StationID,
        req.StartTime.UTC(), req.EndTime.UTC(), time.Now().UTC())
    if err != nil {
        return bookingErrorResponse(c, err)
    }
    h.publish(queue.EventBookingCreated, b)
    return c.JSON(http.StatusCreated, b)
}

// Update handles PUT /v1/bookings/:id. Ownership, the 12-hour window
// and the status state machine are all enforced by the service.
func (h *BookingHandler) Update(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User not authenticated"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
    }
    var req updateBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request body"})
    }

    b, err := h.Svc.Update(c.Request().Context(), id, userID, getRole(c),
        req.StartTime.UTC(), req.EndTime.UTC(), req.Status, time.Now().UTC())
    if err != nil {
        return bookingErrorResponse(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

// Cancel handles DELETE /v1/bookings/:id. Cancellation is a status
// change; the row is kept.
func (h *BookingHandler) Cancel(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User not authenticated"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
    }

    b, err := h.Svc.Cancel(c.Request().Context(), id, userID, getRole(c), time.Now().UTC())
    if err != nil {
        return bookingErrorResponse(c, err)
    }
    h.publish(queue.EventBookingCancelled, b)
    return c.JSON(http.StatusOK, echo.Map{"message": "Booking cancelled successfully"})
}

// Purge handles DELETE /v1/bookings/:id/purge, the administrative hard
// delete. Unlike Cancel it removes the row entirely, so it is reserved
// for SuperAdmin; mutation rights without ownership express exactly
// that.
func (h *BookingHandler) Purge(c echo.Context) error {
    if !policy.Allows(getRole(c), policy.ActionBookingMutate, false) {
        return c.JSON(http.StatusForbidden, echo.Map{"message": "Only SuperAdmin can delete bookings"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
    }
    if err := h.Bookings.Delete(c.Request().Context(), id); err != nil {
        return bookingErrorResponse(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Booking deleted successfully"})
}

// CanModify handles GET /v1/bookings/:id/canmodify.
func (h *BookingHandler) CanModify(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
    }
    report, err := h.Svc.CanModify(c.Request().Context(), id, getRole(c), time.Now().UTC())
    if err != nil {
        return bookingErrorResponse(c, err)
    }
    return c.JSON(http.StatusOK, report)
}

// publish sends a lifecycle event to the broker in the background.
// Event delivery is best-effort and never affects the response.
func (h *BookingHandler) publish(eventType string, b model.Booking) {
    ev := queue.BookingEvent{
        Type:        eventType,
        BookingID:   b.ID,
        UserID:      b.UserID,
        StationID:   b.StationID,
        StartTime:   b.StartTime.Format(time.RFC3339),
        EndTime:     b.EndTime.Format(time.RFC3339),
        Status:      b.Status,
        TotalAmount: b.TotalAmount,
        OccurredAt:  time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queue_publisher.PublishBookingEvent(ctx, ev)
    }()
}
