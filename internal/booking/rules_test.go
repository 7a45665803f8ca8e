package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/ev-charging-admin/internal/model"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestWithinAdvanceHorizon(t *testing.T) {
    cases := []struct {
        name  string
        start time.Time
        want  bool
    }{
        {"tomorrow", now.Add(24 * time.Hour), true},
        {"exactly seven days out", now.Add(7 * 24 * time.Hour), true},
        {"one second past the horizon", now.Add(7*24*time.Hour + time.Second), false},
        {"in the past", now.Add(-48 * time.Hour), true}, // past starts are not this rule's concern
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, WithinAdvanceHorizon(tc.start, now))
        })
    }
}

func TestHoursSinceCreation(t *testing.T) {
    assert.Equal(t, 0.0, HoursSinceCreation(now, now))
    assert.Equal(t, 13.0, HoursSinceCreation(now.Add(-13*time.Hour), now))
    // A creation timestamp in the future yields a negative age, which
    // callers treat as a data fault.
    assert.Less(t, HoursSinceCreation(now.Add(time.Hour), now), 0.0)
}

func TestModificationWindow(t *testing.T) {
    assert.True(t, WithinModificationWindow(now, now))
    assert.True(t, WithinModificationWindow(now.Add(-12*time.Hour), now)) // inclusive boundary
    assert.False(t, WithinModificationWindow(now.Add(-12*time.Hour-time.Minute), now))
}

func TestCanModify(t *testing.T) {
    fresh := now.Add(-1 * time.Hour)
    stale := now.Add(-13 * time.Hour)

    assert.True(t, CanModify(fresh, model.RoleStationOperator, now))
    assert.False(t, CanModify(stale, model.RoleStationOperator, now))
    assert.False(t, CanModify(stale, model.RoleBackoffice, now))
    // SuperAdmin is exempt from the window at any age.
    assert.True(t, CanModify(stale, model.RoleSuperAdmin, now))
    assert.True(t, CanModify(now.Add(-1000*time.Hour), model.RoleSuperAdmin, now))
}

func TestHoursRemainingForModification(t *testing.T) {
    assert.Equal(t, 12.0, HoursRemainingForModification(now, now))
    assert.Equal(t, 2.0, HoursRemainingForModification(now.Add(-10*time.Hour), now))
    // Clamped at zero once the window has passed.
    assert.Equal(t, 0.0, HoursRemainingForModification(now.Add(-13*time.Hour), now))
}
