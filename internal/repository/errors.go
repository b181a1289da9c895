// Package repository implements SQL data access for accounts, places and
// bookings.  Sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver error strings: ErrEmailExists maps to
// a 422 validation response, the not-found values to the status the external
// contract prescribes for the endpoint.
package repository

import "errors"

// ErrEmailExists is returned when registration hits the unique email
// constraint.  Handlers translate this into a 422 validation response.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no account matches a lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrPlaceNotFound is returned when no listing matches a lookup.
var ErrPlaceNotFound = errors.New("place not found")
