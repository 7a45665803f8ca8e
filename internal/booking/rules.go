package booking

import (
    "time"

    "github.com/iliyamo/ev-charging-admin/internal/model"
)

// Timing rules for the booking lifecycle. Every function takes the
// current instant as an explicit argument; nothing in this file reads
// the wall clock, which keeps the rules deterministic under test.
const (
    // AdvanceHorizon is the maximum lead time between "now" and a
    // booking's start.
    AdvanceHorizon = 7 * 24 * time.Hour
    // ModificationWindowHours is how long after creation a
    // non-privileged owner may still edit or cancel a booking.
    ModificationWindowHours = 12
)

// WithinAdvanceHorizon reports whether start is no more than seven days
// after now. It deliberately does not reject past-dated starts; that
// decision is left to callers.
func WithinAdvanceHorizon(start, now time.Time) bool {
    return !start.After(now.Add(AdvanceHorizon))
}

// HoursSinceCreation returns the age of a booking in hours. A negative
// result means createdAt lies in the future, which callers should treat
// as a fault in their own data.
func HoursSinceCreation(createdAt, now time.Time) float64 {
    return now.Sub(createdAt).Hours()
}

// WithinModificationWindow reports whether a booking created at
// createdAt is still inside its 12-hour modification window.
func WithinModificationWindow(createdAt, now time.Time) bool {
    return HoursSinceCreation(createdAt, now) <= ModificationWindowHours
}

// CanModify reports whether a caller with the given role may still
// modify a booking created at createdAt. SuperAdmin is exempt from the
// window entirely.
func CanModify(createdAt time.Time, role string, now time.Time) bool {
    if role == model.RoleSuperAdmin {
        return true
    }
    return WithinModificationWindow(createdAt, now)
}

// HoursRemainingForModification returns how many hours of the
// modification window are left, clamped at zero.
func HoursRemainingForModification(createdAt, now time.Time) float64 {
    remaining := ModificationWindowHours - HoursSinceCreation(createdAt, now)
    if remaining > 0 {
        return remaining
    }
    return 0
}
