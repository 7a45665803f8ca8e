package policy

import (
    "testing"

    "github.com/stretchr/testify/assert"

    "github.com/iliyamo/ev-charging-admin/internal/model"
)

func TestAllows(t *testing.T) {
    cases := []struct {
        name    string
        role    string
        action  Action
        isOwner bool
        want    bool
    }{
        {"only SuperAdmin manages users", model.RoleSuperAdmin, ActionUserManage, false, true},
        {"Backoffice cannot manage users", model.RoleBackoffice, ActionUserManage, false, false},
        {"StationOperator cannot manage users", model.RoleStationOperator, ActionUserManage, true, false},

        {"any role creates bookings", model.RoleStationOperator, ActionBookingCreate, false, true},
        {"any role reads bookings", model.RoleBackoffice, ActionBookingRead, false, true},

        {"SuperAdmin mutates any booking", model.RoleSuperAdmin, ActionBookingMutate, false, true},
        {"owner mutates own booking", model.RoleStationOperator, ActionBookingMutate, true, true},
        {"non-owner cannot mutate", model.RoleStationOperator, ActionBookingMutate, false, false},
        {"Backoffice non-owner cannot mutate", model.RoleBackoffice, ActionBookingMutate, false, false},

        {"empty role denied everywhere", "", ActionBookingCreate, false, false},
        {"empty role denied mutation even as owner", "", ActionBookingMutate, true, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, Allows(tc.role, tc.action, tc.isOwner))
        })
    }
}
