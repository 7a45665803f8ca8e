package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ev-charging-admin/internal/booking"
    "github.com/iliyamo/ev-charging-admin/internal/model"
    "github.com/iliyamo/ev-charging-admin/internal/repository"
)

// StationHandler exposes station browsing and registration. Stations
// carry no lifecycle rules of their own; the booking core only reads
// them for prices and conflict scoping.
type StationHandler struct {
    Stations *repository.StationRepo
}

func NewStationHandler(stations *repository.StationRepo) *StationHandler {
    if stations == nil {
        panic("nil repository passed to NewStationHandler")
    }
    return &StationHandler{Stations: stations}
}

type createStationReq struct {
    Name         string  `json:"name"`
    Location     string  `json:"location"`
    PricePerHour float64 `json:"pricePerHour"`
    IsActive     *bool   `json:"isActive"`
}

// List handles GET /v1/stations.
func (h *StationHandler) List(c echo.Context) error {
    out, err := h.Stations.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    if out == nil {
        out = []model.Station{}
    }
    return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/stations/:id.
func (h *StationHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid station id"})
    }
    s, err := h.Stations.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, booking.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "Station not found"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    return c.JSON(http.StatusOK, s)
}

// Create handles POST /v1/stations. The operator is always the
// authenticated caller.
func (h *StationHandler) Create(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User not authenticated"})
    }
    var req createStationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    if req.Name == "" || req.PricePerHour < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "name required and price must be non-negative"})
    }

    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    s := model.Station{
        Name:         req.Name,
        Location:     req.Location,
        OperatorID:   userID,
        PricePerHour: req.PricePerHour,
        IsActive:     active,
    }
    if err := h.Stations.Insert(c.Request().Context(), &s); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    return c.JSON(http.StatusCreated, s)
}
