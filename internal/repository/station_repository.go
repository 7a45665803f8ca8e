package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/ev-charging-admin/internal/booking"
    "github.com/iliyamo/ev-charging-admin/internal/model"
)

// StationRepo encapsulates all database queries related to charging
// stations. The booking core reads stations for price lookups; station
// CRUD itself carries no business rules.
type StationRepo struct {
    db *sql.DB
}

// NewStationRepo returns a StationRepo bound to the given database.
func NewStationRepo(db *sql.DB) *StationRepo { return &StationRepo{db: db} }

const stationColumns = "id, name, location, operator_id, price_per_hour, is_active, created_at"

// GetByID fetches a station by id. It returns booking.ErrNotFound when
// the station does not exist so the lifecycle service can surface a
// 404 without inspecting driver errors.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (model.Station, error) {
    var s model.Station
    err := r.db.QueryRowContext(ctx,
        "SELECT "+stationColumns+" FROM stations WHERE id = ?", id).
        Scan(&s.ID, &s.Name, &s.Location, &s.OperatorID, &s.PricePerHour, &s.IsActive, &s.CreatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Station{}, booking.ErrNotFound
    }
    return s, err
}

// ListAll returns every station ordered by name.
func (r *StationRepo) ListAll(ctx context.Context) ([]model.Station, error) {
    rows, err := r.db.QueryContext(ctx,
        "SELECT "+stationColumns+" FROM stations ORDER BY name")
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Station
    for rows.Next() {
        var s model.Station
        if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.OperatorID, &s.PricePerHour, &s.IsActive, &s.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

// Count returns the number of station rows. The seed endpoint uses it
// to stay idempotent.
func (r *StationRepo) Count(ctx context.Context) (int64, error) {
    var n int64
    err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stations").Scan(&n)
    return n, err
}

// Insert persists a new station and populates its generated ID and
// creation timestamp.
func (r *StationRepo) Insert(ctx context.Context, s *model.Station) error {
    res, err := r.db.ExecContext(ctx,
        "INSERT INTO stations (name, location, operator_id, price_per_hour, is_active) VALUES (?, ?, ?, ?, ?)",
        s.Name, s.Location, s.OperatorID, s.PricePerHour, s.IsActive)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        "SELECT created_at FROM stations WHERE id = ?", s.ID).Scan(&s.CreatedAt)
}
