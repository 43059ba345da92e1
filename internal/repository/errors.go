// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver errors.
package repository

import "errors"

// ErrPetNotFound is returned when a pet id does not exist.  Handlers
// should translate this into an HTTP 404 response.
var ErrPetNotFound = errors.New("pet not found")

// ErrPetUnavailable is returned when an adoption is submitted for a pet
// whose status is no longer 'available'.  The check that produces it runs
// inside the submission transaction, so exactly one of several racing
// submissions can avoid it.  Handlers should translate this into an HTTP
// 400 distinct from generic server failures, so the client can render
// "already taken" rather than "try again".
var ErrPetUnavailable = errors.New("pet is no longer available for adoption")

// ErrEmailExists is returned when registering or updating a profile with
// an email address that belongs to another account.
var ErrEmailExists = errors.New("email already exists")
