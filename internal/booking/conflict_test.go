package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/ev-charging-admin/internal/model"
)

func at(hour int) time.Time {
    return time.Date(2025, 6, 2, hour, 0, 0, 0, time.UTC)
}

func TestHasConflict(t *testing.T) {
    existing := []model.Booking{
        {ID: 1, StationID: 7, StartTime: at(10), EndTime: at(11), Status: model.StatusPending},
    }

    cases := []struct {
        name    string
        start   time.Time
        end     time.Time
        exclude uint64
        want    bool
    }{
        {"identical interval", at(10), at(11), 0, true},
        {"candidate starts inside", at(10), at(12), 0, true},
        {"candidate ends inside", at(9), at(11), 0, true},
        {"existing contained in candidate", at(9), at(12), 0, true},
        {"touching at existing end", at(11), at(12), 0, true}, // boundaries are inclusive
        {"touching at existing start", at(9), at(10), 0, true},
        {"disjoint before", at(7), at(9), 0, false},
        {"disjoint after", at(12), at(13), 0, false},
        {"self excluded on update", at(10), at(11), 1, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, HasConflict(7, tc.start, tc.end, existing, tc.exclude))
        })
    }
}

func TestHasConflictIgnoresCancelledAndOtherStations(t *testing.T) {
    existing := []model.Booking{
        {ID: 1, StationID: 7, StartTime: at(10), EndTime: at(11), Status: model.StatusCancelled},
        {ID: 2, StationID: 8, StartTime: at(10), EndTime: at(11), Status: model.StatusConfirmed},
    }
    // The cancelled booking occupies the slot on paper but never
    // blocks; the other booking is on a different station.
    assert.False(t, HasConflict(7, at(10), at(11), existing, 0))
}
