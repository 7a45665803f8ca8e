package booking

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/ev-charging-admin/internal/model"
)

// fakeBookingStore is an in-memory BookingStore that counts writes so
// tests can assert exactly one write per mutation.
type fakeBookingStore struct {
    byID     map[uint64]model.Booking
    nextID   uint64
    inserts  int
    replaces int
    failWith error
}

func newFakeBookingStore() *fakeBookingStore {
    return &fakeBookingStore{byID: map[uint64]model.Booking{}, nextID: 1}
}

func (f *fakeBookingStore) GetByID(_ context.Context, id uint64) (model.Booking, error) {
    if f.failWith != nil {
        return model.Booking{}, f.failWith
    }
    b, ok := f.byID[id]
    if !ok {
        return model.Booking{}, ErrNotFound
    }
    return b, nil
}

func (f *fakeBookingStore) ListActiveByStation(_ context.Context, stationID uint64) ([]model.Booking, error) {
    if f.failWith != nil {
        return nil, f.failWith
    }
    var out []model.Booking
    for _, b := range f.byID {
        if b.StationID == stationID && b.Status != model.StatusCancelled {
            out = append(out, b)
        }
    }
    return out, nil
}

func (f *fakeBookingStore) Insert(_ context.Context, b *model.Booking) error {
    f.inserts++
    b.ID = f.nextID
    f.nextID++
    f.byID[b.ID] = *b
    return nil
}

func (f *fakeBookingStore) Replace(_ context.Context, b model.Booking) error {
    f.replaces++
    f.byID[b.ID] = b
    return nil
}

type fakeStationStore struct {
    byID map[uint64]model.Station
}

func (f *fakeStationStore) GetByID(_ context.Context, id uint64) (model.Station, error) {
    s, ok := f.byID[id]
    if !ok {
        return model.Station{}, ErrNotFound
    }
    return s, nil
}

func newFixture() (*Service, *fakeBookingStore, *fakeStationStore) {
    bookings := newFakeBookingStore()
    stations := &fakeStationStore{byID: map[uint64]model.Station{
        7: {ID: 7, Name: "Downtown Charging Station", PricePerHour: 50.00, IsActive: true},
    }}
    return NewService(bookings, stations), bookings, stations
}

func TestCreateBooking(t *testing.T) {
    svc, store, _ := newFixture()
    ctx := context.Background()

    // Station price 50.00/hour, two hours tomorrow -> 100.00, Pending.
    start := now.Add(24 * time.Hour)
    end := start.Add(2 * time.Hour)
    b, err := svc.Create(ctx, 3, 7, start, end, now)

    require.NoError(t, err)
    assert.Equal(t, model.StatusPending, b.Status)
    assert.Equal(t, 100.00, b.TotalAmount)
    assert.Equal(t, uint64(3), b.UserID)
    assert.Equal(t, now, b.CreatedAt)
    assert.NotZero(t, b.ID)
    assert.Equal(t, 1, store.inserts)
}

func TestCreateRejectsInvalidInterval(t *testing.T) {
    svc, store, _ := newFixture()
    start := now.Add(24 * time.Hour)

    _, err := svc.Create(context.Background(), 3, 7, start, start, now)
    assert.ErrorIs(t, err, ErrInvalidInterval)

    _, err = svc.Create(context.Background(), 3, 7, start, start.Add(-time.Hour), now)
    assert.ErrorIs(t, err, ErrInvalidInterval)
    assert.Zero(t, store.inserts)
}

func TestCreateRejectsBeyondAdvanceHorizon(t *testing.T) {
    svc, _, _ := newFixture()
    start := now.Add(7*24*time.Hour + time.Minute)
    _, err := svc.Create(context.Background(), 3, 7, start, start.Add(time.Hour), now)
    assert.ErrorIs(t, err, ErrAdvanceHorizonExceeded)
}

func TestCreateAllowsPastStart(t *testing.T) {
    // Past-dated starts are deliberately not rejected; only the
    // forward horizon is enforced.
    svc, _, _ := newFixture()
    start := now.Add(-3 * time.Hour)
    _, err := svc.Create(context.Background(), 3, 7, start, start.Add(time.Hour), now)
    assert.NoError(t, err)
}

func TestCreateUnknownStation(t *testing.T) {
    svc, _, _ := newFixture()
    start := now.Add(time.Hour)
    _, err := svc.Create(context.Background(), 3, 99, start, start.Add(time.Hour), now)
    assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDetectsConflicts(t *testing.T) {
    svc, store, _ := newFixture()
    ctx := context.Background()
    start := now.Add(24 * time.Hour)
    end := start.Add(time.Hour)

    _, err := svc.Create(ctx, 3, 7, start, end, now)
    require.NoError(t, err)

    // A slot touching the existing end conflicts: boundaries are
    // inclusive.
    _, err = svc.Create(ctx, 4, 7, end, end.Add(time.Hour), now)
    assert.ErrorIs(t, err, ErrSchedulingConflict)

    // A disjoint slot on the same station is fine.
    _, err = svc.Create(ctx, 4, 7, end.Add(time.Minute), end.Add(time.Hour), now)
    assert.NoError(t, err)
    assert.Equal(t, 2, store.inserts)
}

func TestCancelledBookingFreesTheSlot(t *testing.T) {
    svc, _, _ := newFixture()
    ctx := context.Background()
    start := now.Add(24 * time.Hour)
    end := start.Add(time.Hour)

    b, err := svc.Create(ctx, 3, 7, start, end, now)
    require.NoError(t, err)
    _, err = svc.Cancel(ctx, b.ID, 3, model.RoleStationOperator, now)
    require.NoError(t, err)

    _, err = svc.Create(ctx, 4, 7, start, end, now)
    assert.NoError(t, err)
}

func TestUpdateStatusTransitions(t *testing.T) {
    svc, _, _ := newFixture()
    ctx := context.Background()
    start := now.Add(24 * time.Hour)
    b, err := svc.Create(ctx, 3, 7, start, start.Add(time.Hour), now)
    require.NoError(t, err)

    // Pending -> Completed skips Confirmed and is rejected.
    _, err = svc.Update(ctx, b.ID, 3, model.RoleStationOperator, time.Time{}, time.Time{}, model.StatusCompleted, now)
    assert.ErrorIs(t, err, ErrInvalidTransition)

    // Pending -> Confirmed -> Completed is the happy path.
    got, err := svc.Update(ctx, b.ID, 3, model.RoleStationOperator, time.Time{}, time.Time{}, model.StatusConfirmed, now)
    require.NoError(t, err)
    assert.Equal(t, model.StatusConfirmed, got.Status)

    got, err = svc.Update(ctx, b.ID, 3, model.RoleStationOperator, time.Time{}, time.Time{}, model.StatusCompleted, now)
    require.NoError(t, err)
    assert.Equal(t, model.StatusCompleted, got.Status)

    // Completed is terminal.
    _, err = svc.Update(ctx, b.ID, 3, model.RoleStationOperator, time.Time{}, time.Time{}, model.StatusConfirmed, now)
    assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateIntervalRevalidatesConflicts(t *testing.T) {
    svc, store, _ := newFixture()
    ctx := context.Background()
    start := now.Add(24 * time.Hour)

    first, err := svc.Create(ctx, 3, 7, start, start.Add(time.Hour), now)
    require.NoError(t, err)
    second, err := svc.Create(ctx, 3, 7, start.Add(2*time.Hour), start.Add(3*time.Hour), now)
    require.NoError(t, err)

    // Moving the second booking onto the first one's slot conflicts.
    _, err = svc.Update(ctx, second.ID, 3, model.RoleStationOperator, start, start.Add(time.Hour), "", now)
    assert.ErrorIs(t, err, ErrSchedulingConflict)

    // Re-saving the first booking's own interval does not conflict
    // with itself, and a longer slot recomputes the amount.
    got, err := svc.Update(ctx, first.ID, 3, model.RoleStationOperator, start, start.Add(90*time.Minute), "", now)
    require.NoError(t, err)
    assert.Equal(t, 75.00, got.TotalAmount)
    assert.Equal(t, 2, store.inserts)
}

func TestMutationAuthorization(t *testing.T) {
    svc, _, _ := newFixture()
    ctx := context.Background()
    start := now.Add(24 * time.Hour)
    b, err := svc.Create(ctx, 3, 7, start, start.Add(time.Hour), now)
    require.NoError(t, err)

    // A different non-privileged user may not touch the booking.
    _, err = svc.Update(ctx, b.ID, 4, model.RoleBackoffice, time.Time{}, time.Time{}, model.StatusConfirmed, now)
    assert.ErrorIs(t, err, ErrForbidden)

    // The owner loses access once the 12-hour window has passed.
    later := now.Add(13 * time.Hour)
    _, err = svc.Cancel(ctx, b.ID, 3, model.RoleStationOperator, later)
    assert.ErrorIs(t, err, ErrForbidden)

    // SuperAdmin bypasses both ownership and the window.
    _, err = svc.Cancel(ctx, b.ID, 4, model.RoleSuperAdmin, later)
    assert.NoError(t, err)
}

func TestCancelIsNotIdempotent(t *testing.T) {
    svc, store, _ := newFixture()
    ctx := context.Background()
    start := now.Add(24 * time.Hour)
    b, err := svc.Create(ctx, 3, 7, start, start.Add(time.Hour), now)
    require.NoError(t, err)

    first, err := svc.Cancel(ctx, b.ID, 3, model.RoleStationOperator, now)
    require.NoError(t, err)
    require.Equal(t, 1, store.replaces)

    // Cancelling again fails and must not bump updatedAt.
    _, err = svc.Cancel(ctx, b.ID, 3, model.RoleStationOperator, now.Add(time.Hour))
    assert.ErrorIs(t, err, ErrInvalidTransition)
    assert.Equal(t, 1, store.replaces)
    assert.Equal(t, first.UpdatedAt, store.byID[b.ID].UpdatedAt)
}

func TestCanModifyReport(t *testing.T) {
    svc, _, _ := newFixture()
    ctx := context.Background()
    start := now.Add(24 * time.Hour)
    b, err := svc.Create(ctx, 3, 7, start, start.Add(time.Hour), now)
    require.NoError(t, err)

    report, err := svc.CanModify(ctx, b.ID, model.RoleStationOperator, now)
    require.NoError(t, err)
    assert.True(t, report.CanModify)
    assert.Equal(t, 12.0, report.HoursRemaining)
    assert.False(t, report.IsSuperAdmin)

    report, err = svc.CanModify(ctx, b.ID, model.RoleSuperAdmin, now.Add(13*time.Hour))
    require.NoError(t, err)
    assert.True(t, report.CanModify)
    assert.Equal(t, 0.0, report.HoursRemaining)
    assert.True(t, report.IsSuperAdmin)
}

func TestStoreFailuresSurfaceAsStoreUnavailable(t *testing.T) {
    bookings := newFakeBookingStore()
    bookings.failWith = errors.New("connection reset")
    svc := NewService(bookings, &fakeStationStore{byID: map[uint64]model.Station{
        7: {ID: 7, PricePerHour: 50.00},
    }})

    start := now.Add(time.Hour)
    _, err := svc.Create(context.Background(), 3, 7, start, start.Add(time.Hour), now)
    assert.ErrorIs(t, err, ErrStoreUnavailable)

    _, err = svc.Cancel(context.Background(), 1, 3, model.RoleStationOperator, now)
    assert.ErrorIs(t, err, ErrStoreUnavailable)
}

// staleListStore simulates two concurrent creates racing past the
// conflict check: both read the booking set before either write lands.
type staleListStore struct {
    *fakeBookingStore
}

func (s *staleListStore) ListActiveByStation(context.Context, uint64) ([]model.Booking, error) {
    return nil, nil // snapshot taken before either insert
}

// TestConcurrentCreateRaceIsAccepted documents a known gap rather than
// asserting desired behavior: the conflict check is read-then-write
// without a transaction, so two concurrent creates for the same slot
// can both succeed. An implementation adding a uniqueness guard on
// (station, interval) would make the second create fail with
// ErrSchedulingConflict instead.
func TestConcurrentCreateRaceIsAccepted(t *testing.T) {
    store := &staleListStore{newFakeBookingStore()}
    svc := NewService(store, &fakeStationStore{byID: map[uint64]model.Station{
        7: {ID: 7, PricePerHour: 50.00},
    }})
    ctx := context.Background()
    start := now.Add(24 * time.Hour)
    end := start.Add(time.Hour)

    _, err1 := svc.Create(ctx, 3, 7, start, end, now)
    _, err2 := svc.Create(ctx, 4, 7, start, end, now)

    assert.NoError(t, err1)
    assert.NoError(t, err2)
    assert.Equal(t, 2, store.inserts) // two overlapping bookings persisted
}
