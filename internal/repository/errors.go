// Package repository contains data access logic separated from HTTP
// handlers. Repositories are thin structs over *sql.DB; they filter
// and persist rows but hold no business rules of their own. Sentinel
// errors shared across repositories live in this file so higher layers
// can distinguish failure scenarios with errors.Is.
package repository

import "errors"

// ErrEmailExists is returned when a user insert collides with an
// existing email address. Handlers should translate this into an
// HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user cannot be found in the DB.
var ErrUserNotFound = errors.New("user not found")
