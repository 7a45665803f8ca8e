package booking

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/iliyamo/ev-charging-admin/internal/model"
    "github.com/iliyamo/ev-charging-admin/internal/policy"
)

// BookingStore is the persistence collaborator for bookings.
// Implementations return ErrNotFound when the requested booking does
// not exist; any other failure is treated as a store fault.
type BookingStore interface {
    GetByID(ctx context.Context, id uint64) (model.Booking, error)
    // ListActiveByStation returns all non-cancelled bookings recorded
    // for a station.
    ListActiveByStation(ctx context.Context, stationID uint64) ([]model.Booking, error)
    Insert(ctx context.Context, b *model.Booking) error
    Replace(ctx context.Context, b model.Booking) error
}

// StationStore provides read access to stations. Implementations
// return ErrNotFound for missing stations.
type StationStore interface {
    GetByID(ctx context.Context, id uint64) (model.Station, error)
}

// Service orchestrates the booking lifecycle. It is the sole writer of
// booking state: every mutating operation validates first and then
// issues exactly one store write, so no partial state is ever
// persisted.
//
// The conflict check is read-then-write without a transaction, the
// same as the store layer underneath. Two concurrent creates for
// overlapping intervals on one station can therefore both pass the
// check before either insert lands. That race is accepted here;
// closing it would take a uniqueness constraint on (station, interval)
// in the store.
type Service struct {
    bookings BookingStore
    stations StationStore
}

// NewService returns a Service bound to the given stores.
func NewService(bookings BookingStore, stations StationStore) *Service {
    if bookings == nil || stations == nil {
        panic("nil store passed to booking.NewService")
    }
    return &Service{bookings: bookings, stations: stations}
}

// Create validates and persists a new booking owned by userID. The
// checks run in a fixed order: interval validity, advance horizon,
// station existence, scheduling conflict. The booking starts Pending
// with CreatedAt = now.
func (s *Service) Create(ctx context.Context, userID, stationID uint64, start, end, now time.Time) (model.Booking, error) {
    if !end.After(start) {
        return model.Booking{}, ErrInvalidInterval
    }
    if !WithinAdvanceHorizon(start, now) {
        return model.Booking{}, ErrAdvanceHorizonExceeded
    }
    station, err := s.stations.GetByID(ctx, stationID)
    if err != nil {
        return model.Booking{}, storeErr(err)
    }
    existing, err := s.bookings.ListActiveByStation(ctx, stationID)
    if err != nil {
        return model.Booking{}, storeErr(err)
    }
    if HasConflict(stationID, start, end, existing, 0) {
        return model.Booking{}, ErrSchedulingConflict
    }

    b := model.Booking{
        UserID:      userID,
        StationID:   stationID,
        StartTime:   start,
        EndTime:     end,
        Status:      model.StatusPending,
        TotalAmount: station.PricePerHour * end.Sub(start).Hours(),
        CreatedAt:   now,
        UpdatedAt:   now,
    }
    if err := s.bookings.Insert(ctx, &b); err != nil {
        return model.Booking{}, storeErr(err)
    }
    return b, nil
}

// Update applies a new interval and/or status to an existing booking.
// The caller must still be inside the modification window (waived for
// SuperAdmin) and must own the booking unless privileged. When the
// interval changes it is re-validated for conflicts with the booking's
// own id excluded, and the total amount is recomputed from the station
// price.
func (s *Service) Update(ctx context.Context, id, userID uint64, role string, start, end time.Time, status string, now time.Time) (model.Booking, error) {
    b, err := s.bookings.GetByID(ctx, id)
    if err != nil {
        return model.Booking{}, storeErr(err)
    }
    if !s.mayMutate(b, userID, role, now) {
        return model.Booking{}, ErrForbidden
    }

    // Zero times mean the caller is only changing the status.
    if start.IsZero() && end.IsZero() {
        start, end = b.StartTime, b.EndTime
    }
    if !start.Equal(b.StartTime) || !end.Equal(b.EndTime) {
        if !end.After(start) {
            return model.Booking{}, ErrInvalidInterval
        }
        existing, err := s.bookings.ListActiveByStation(ctx, b.StationID)
        if err != nil {
            return model.Booking{}, storeErr(err)
        }
        if HasConflict(b.StationID, start, end, existing, b.ID) {
            return model.Booking{}, ErrSchedulingConflict
        }
        station, err := s.stations.GetByID(ctx, b.StationID)
        if err != nil {
            return model.Booking{}, storeErr(err)
        }
        b.StartTime = start
        b.EndTime = end
        b.TotalAmount = station.PricePerHour * end.Sub(start).Hours()
    }

    if status != "" && status != b.Status {
        if !validTransition(b.Status, status) {
            return model.Booking{}, ErrInvalidTransition
        }
        b.Status = status
    }

    b.UpdatedAt = now
    if err := s.bookings.Replace(ctx, b); err != nil {
        return model.Booking{}, storeErr(err)
    }
    return b, nil
}

// Cancel marks a booking as cancelled. Completed and already-cancelled
// bookings are terminal, so cancelling them fails without touching the
// record.
func (s *Service) Cancel(ctx context.Context, id, userID uint64, role string, now time.Time) (model.Booking, error) {
    b, err := s.bookings.GetByID(ctx, id)
    if err != nil {
        return model.Booking{}, storeErr(err)
    }
    if !s.mayMutate(b, userID, role, now) {
        return model.Booking{}, ErrForbidden
    }
    if b.Status == model.StatusCompleted || b.Status == model.StatusCancelled {
        return model.Booking{}, ErrInvalidTransition
    }
    b.Status = model.StatusCancelled
    b.UpdatedAt = now
    if err := s.bookings.Replace(ctx, b); err != nil {
        return model.Booking{}, storeErr(err)
    }
    return b, nil
}

// ModifyReport describes whether and for how long a booking can still
// be modified by the caller. It backs the canmodify endpoint.
type ModifyReport struct {
    CanModify      bool    `json:"canModify"`
    HoursRemaining float64 `json:"hoursRemaining"`
    IsSuperAdmin   bool    `json:"isSuperAdmin"`
}

// CanModify reports the modification window state of a booking for the
// given role.
func (s *Service) CanModify(ctx context.Context, id uint64, role string, now time.Time) (ModifyReport, error) {
    b, err := s.bookings.GetByID(ctx, id)
    if err != nil {
        return ModifyReport{}, storeErr(err)
    }
    return ModifyReport{
        CanModify:      CanModify(b.CreatedAt, role, now),
        HoursRemaining: HoursRemainingForModification(b.CreatedAt, now),
        IsSuperAdmin:   role == model.RoleSuperAdmin,
    }, nil
}

// mayMutate combines the ownership policy with the timing rule: the
// caller must be allowed to mutate this booking at all, and must still
// be inside the modification window unless privileged.
func (s *Service) mayMutate(b model.Booking, userID uint64, role string, now time.Time) bool {
    if !policy.Allows(role, policy.ActionBookingMutate, b.UserID == userID) {
        return false
    }
    return CanModify(b.CreatedAt, role, now)
}

// validTransition encodes the booking state machine:
// Pending -> Confirmed -> Completed, with cancellation reachable from
// Pending and Confirmed only.
func validTransition(from, to string) bool {
    switch from {
    case model.StatusPending:
        return to == model.StatusConfirmed || to == model.StatusCancelled
    case model.StatusConfirmed:
        return to == model.StatusCompleted || to == model.StatusCancelled
    }
    return false
}

// storeErr passes ErrNotFound through untouched and classifies any
// other store failure as ErrStoreUnavailable.
func storeErr(err error) error {
    if errors.Is(err, ErrNotFound) {
        return err
    }
    return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
