package handler

import (
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ev-charging-admin/internal/model"
    "github.com/iliyamo/ev-charging-admin/internal/repository"
)

// SeedHandler populates an empty environment with default stations so
// the booking flow can be exercised immediately. Seeding is
// idempotent: it refuses to run once any station exists.
type SeedHandler struct {
    Stations *repository.StationRepo
}

func NewSeedHandler(stations *repository.StationRepo) *SeedHandler {
    if stations == nil {
        panic("nil repository passed to NewSeedHandler")
    }
    return &SeedHandler{Stations: stations}
}

// SeedStations handles POST /v1/seed/stations.
func (h *SeedHandler) SeedStations(c echo.Context) error {
    ctx := c.Request().Context()
    existing, err := h.Stations.Count(ctx)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    if existing > 0 {
        return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Stations already exist (%d stations)", existing)})
    }

    defaults := []model.Station{
        {Name: "Downtown Charging Station", Location: "123 Main Street, Downtown", OperatorID: 1, PricePerHour: 50.00, IsActive: true},
        {Name: "Airport Charging Station", Location: "456 Airport Road, Terminal 1", OperatorID: 1, PricePerHour: 60.00, IsActive: true},
        {Name: "Mall Charging Station", Location: "789 Shopping Plaza, Level P2", OperatorID: 1, PricePerHour: 45.00, IsActive: true},
    }
    for i := range defaults {
        if err := h.Stations.Insert(ctx, &defaults[i]); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
        }
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "message":  "Stations seeded successfully",
        "stations": defaults,
    })
}
