package booking

import (
    "time"

    "github.com/iliyamo/ev-charging-admin/internal/model"
)

// HasConflict reports whether the candidate interval [start, end] on
// the given station overlaps any existing non-cancelled booking.
// Boundaries are inclusive: a booking ending at 11:00 conflicts with a
// candidate starting at 11:00. excludeID, when non-zero, skips the
// booking being updated so it does not conflict with itself.
//
// Overlap is detected by the three-case check: the candidate start
// falls inside an existing interval, the candidate end falls inside an
// existing interval, or an existing interval lies entirely inside the
// candidate. Together these are equivalent to the general inclusive
// test a <= d && c <= b.
func HasConflict(stationID uint64, start, end time.Time, existing []model.Booking, excludeID uint64) bool {
    for _, b := range existing {
        if b.StationID != stationID {
            continue
        }
        if b.Status == model.StatusCancelled {
            continue
        }
        if excludeID != 0 && b.ID == excludeID {
            continue
        }
        startInside := !b.StartTime.After(start) && !b.EndTime.Before(start)
        endInside := !b.StartTime.After(end) && !b.EndTime.Before(end)
        contained := !b.StartTime.Before(start) && !b.EndTime.After(end)
        if startInside || endInside || contained {
            return true
        }
    }
    return false
}
