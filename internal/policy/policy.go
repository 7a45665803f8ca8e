// Package policy centralizes role-based authorization as a pure
// function of role, action and resource ownership. Handlers and
// services consult it instead of scattering role string comparisons.
package policy

import "github.com/iliyamo/ev-charging-admin/internal/model"

// Action identifies an operation class subject to authorization.
type Action int

const (
    // ActionUserManage covers creating, updating, deleting and any
    // other mutation of user accounts.
    ActionUserManage Action = iota
    // ActionBookingCreate covers creating a booking. The booking is
    // always created under the caller's own identity; a userId in the
    // request payload is discarded server-side.
    ActionBookingCreate
    // ActionBookingMutate covers updating or cancelling a booking.
    ActionBookingMutate
    // ActionBookingRead covers reading bookings, single or listed.
    ActionBookingRead
)

// Allows reports whether a caller with the given role may perform the
// action. isOwner indicates whether the target resource belongs to the
// caller; it is ignored for actions where ownership is irrelevant.
//
// Note that Allows is ownership-and-role only: the 12-hour
// modification window for booking mutations is a timing rule enforced
// separately by the booking package.
func Allows(role string, action Action, isOwner bool) bool {
    switch action {
    case ActionUserManage:
        return role == model.RoleSuperAdmin
    case ActionBookingCreate, ActionBookingRead:
        return role != ""
    case ActionBookingMutate:
        if role == model.RoleSuperAdmin {
            return true
        }
        return role != "" && isOwner
    }
    return false
}
