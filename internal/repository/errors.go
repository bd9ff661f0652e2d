// Package repository implements MySQL persistence for the reservation
// service. Sentinel errors defined here let handlers map failure
// scenarios onto HTTP statuses without inspecting driver error text.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete cannot proceed because of
// dependent records, such as removing a table that still has
// reservations. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// ErrNotFound is returned when a targeted row does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// isDuplicateEntry reports whether err is a MySQL 1062 unique-key
// violation.
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// isFKRestricted reports whether err is a MySQL 1451 restricted delete,
// meaning dependent rows still reference the target.
func isFKRestricted(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1451")
}
