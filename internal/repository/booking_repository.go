// This file defines BookingRepo, the persistence layer for bookings.
// It implements the store interfaces consumed by the booking lifecycle
// service and additionally exposes the aggregate queries used by the
// analytics endpoints. All timestamp columns are stored in UTC.
package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/iliyamo/ev-charging-admin/internal/booking"
    "github.com/iliyamo/ev-charging-admin/internal/model"
)

// bookingColumns is the canonical column list scanned into model.Booking.
const bookingColumns = "id, user_id, station_id, start_time, end_time, status, total_amount, created_at, updated_at"

// BookingRepo encapsulates all database queries related to bookings.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
    var b model.Booking
    err := row.Scan(&b.ID, &b.UserID, &b.StationID, &b.StartTime, &b.EndTime,
        &b.Status, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt)
    return b, err
}

// GetByID fetches a single booking. It returns booking.ErrNotFound
// when no row exists, which the lifecycle service passes through.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
    row := r.db.QueryRowContext(ctx,
        "SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id)
    b, err := scanBooking(row)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Booking{}, booking.ErrNotFound
    }
    return b, err
}

// ListAll returns every booking ordered by start time.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
    return r.list(ctx, "SELECT "+bookingColumns+" FROM bookings ORDER BY start_time")
}

// ListByUser returns all bookings owned by a user.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
    return r.list(ctx,
        "SELECT "+bookingColumns+" FROM bookings WHERE user_id = ? ORDER BY start_time", userID)
}

// ListActiveByStation returns the non-cancelled bookings for a
// station. This is the candidate set the conflict detector runs over.
func (r *BookingRepo) ListActiveByStation(ctx context.Context, stationID uint64) ([]model.Booking, error) {
    return r.list(ctx,
        "SELECT "+bookingColumns+" FROM bookings WHERE station_id = ? AND status <> ? ORDER BY start_time",
        stationID, model.StatusCancelled)
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Booking
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

// Insert persists a new booking and populates its generated ID.
func (r *BookingRepo) Insert(ctx context.Context, b *model.Booking) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO bookings (user_id, station_id, start_time, end_time, status, total_amount, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
        b.UserID, b.StationID, b.StartTime, b.EndTime, b.Status, b.TotalAmount, b.CreatedAt, b.UpdatedAt)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    return nil
}

// Replace overwrites the mutable columns of an existing booking in a
// single statement.
func (r *BookingRepo) Replace(ctx context.Context, b model.Booking) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE bookings SET start_time = ?, end_time = ?, status = ?, total_amount = ?, updated_at = ?
         WHERE id = ?`,
        b.StartTime, b.EndTime, b.Status, b.TotalAmount, b.UpdatedAt, b.ID)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return booking.ErrNotFound
    }
    return nil
}

// Delete removes a booking row entirely. Normal cancellation never
// calls this; it exists for the administrative delete path only.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return booking.ErrNotFound
    }
    return nil
}

// Stats aggregates booking counts per status and revenue figures. It
// backs the analytics endpoints; the arithmetic is plain counting done
// in SQL.
type Stats struct {
    TotalBookings     int                `json:"totalBookings"`
    ConfirmedBookings int                `json:"confirmedBookings"`
    CancelledBookings int                `json:"cancelledBookings"`
    CompletedBookings int                `json:"completedBookings"`
    TotalRevenue      float64            `json:"totalRevenue"`
    BookingsByStatus  map[string]int     `json:"bookingsByStatus"`
    RevenueByStation  map[string]float64 `json:"revenueByStation"`
}

// GetStats computes aggregate figures over all bookings. Revenue only
// counts non-cancelled bookings.
func (r *BookingRepo) GetStats(ctx context.Context) (Stats, error) {
    return r.statsWhere(ctx, "", nil)
}

// GetStatsByDateRange computes the same figures restricted to bookings
// whose interval falls inside [from, to].
func (r *BookingRepo) GetStatsByDateRange(ctx context.Context, from, to time.Time) (Stats, error) {
    return r.statsWhere(ctx, " WHERE start_time >= ? AND end_time <= ?", []any{from, to})
}

func (r *BookingRepo) statsWhere(ctx context.Context, where string, args []any) (Stats, error) {
    stats := Stats{
        BookingsByStatus: map[string]int{},
        RevenueByStation: map[string]float64{},
    }

    rows, err := r.db.QueryContext(ctx,
        "SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0) FROM bookings"+where+" GROUP BY status", args...)
    if err != nil {
        return stats, err
    }
    defer rows.Close()
    for rows.Next() {
        var status string
        var count int
        var revenue float64
        if err := rows.Scan(&status, &count, &revenue); err != nil {
            return stats, err
        }
        stats.BookingsByStatus[status] = count
        stats.TotalBookings += count
        switch status {
        case model.StatusConfirmed:
            stats.ConfirmedBookings = count
        case model.StatusCancelled:
            stats.CancelledBookings = count
        case model.StatusCompleted:
            stats.CompletedBookings = count
        }
        if status != model.StatusCancelled {
            stats.TotalRevenue += revenue
        }
    }
    if err := rows.Err(); err != nil {
        return stats, err
    }

    byStation, err := r.revenueByStationWhere(ctx, where, args)
    if err != nil {
        return stats, err
    }
    stats.RevenueByStation = byStation
    return stats, nil
}

// RevenueByStation returns the total non-cancelled revenue keyed by
// station name.
func (r *BookingRepo) RevenueByStation(ctx context.Context) (map[string]float64, error) {
    return r.revenueByStationWhere(ctx, "", nil)
}

func (r *BookingRepo) revenueByStationWhere(ctx context.Context, where string, args []any) (map[string]float64, error) {
    query := `SELECT s.name, COALESCE(SUM(b.total_amount), 0)
        FROM bookings b JOIN stations s ON s.id = b.station_id`
    cond := " WHERE b.status <> ?"
    qargs := append([]any{}, args...)
    if where != "" {
        // reuse the date-range condition with table-qualified columns
        cond = " WHERE b.start_time >= ? AND b.end_time <= ? AND b.status <> ?"
    }
    qargs = append(qargs, model.StatusCancelled)
    rows, err := r.db.QueryContext(ctx, query+cond+" GROUP BY s.name", qargs...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := map[string]float64{}
    for rows.Next() {
        var name string
        var revenue float64
        if err := rows.Scan(&name, &revenue); err != nil {
            return nil, err
        }
        out[name] = revenue
    }
    return out, rows.Err()
}
