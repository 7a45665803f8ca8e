package handler // handler defines the HTTP handlers of the admin API

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ev-charging-admin/internal/booking"
)

// getUserID extracts the caller's user id from the echo context. The
// JWT middleware stores the raw claim value, whose concrete type
// depends on how the token was decoded, so all plausible shapes are
// handled here.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// getRole extracts the caller's role claim from the echo context.
func getRole(c echo.Context) string {
    if r, ok := c.Get("role").(string); ok {
        return r
    }
    return ""
}

// bookingErrorResponse translates the booking error taxonomy into HTTP
// responses: not found 404, forbidden 403, store faults 503, every
// validation failure 400 with the rule's message.
func bookingErrorResponse(c echo.Context, err error) error {
    switch {
    case errors.Is(err, booking.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
    case errors.Is(err, booking.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
    case errors.Is(err, booking.ErrStoreUnavailable):
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "store unavailable"})
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
}
