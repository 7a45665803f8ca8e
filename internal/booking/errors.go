// Package booking implements the booking lifecycle core: timing rules,
// conflict detection and the create/update/cancel state machine. The
// sentinel errors below form the full failure taxonomy of the package;
// handlers translate them into HTTP status codes.
package booking

import "errors"

// ErrInvalidInterval is returned when a requested interval does not end
// strictly after it starts.
var ErrInvalidInterval = errors.New("end time must be after start time")

// ErrAdvanceHorizonExceeded is returned when a booking would start more
// than seven days in the future.
var ErrAdvanceHorizonExceeded = errors.New("bookings can only be made up to 7 days in advance")

// ErrSchedulingConflict is returned when the requested interval
// overlaps an existing non-cancelled booking on the same station.
var ErrSchedulingConflict = errors.New("station is already booked for this time slot")

// ErrInvalidTransition is returned when a status change is not allowed
// by the booking state machine.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// ErrNotFound is returned when the referenced booking or station does
// not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller may not mutate the booking,
// either because it belongs to someone else or because the 12-hour
// modification window has passed.
var ErrForbidden = errors.New("booking can no longer be modified by this user")

// ErrStoreUnavailable is returned when the persistence layer fails for
// reasons unrelated to the request itself.
var ErrStoreUnavailable = errors.New("store unavailable")
