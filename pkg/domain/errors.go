package domain

import "errors"

// ErrNilState is returned when an operation receives no state.
var ErrNilState = errors.New("nil state")

// ErrMissingConfiguration is returned when an operation needs connection
// settings and the state carries none.
var ErrMissingConfiguration = errors.New("state has no configuration")

// ErrMissingBaseURL is returned when a path-based operation runs without a
// configured base URL.
var ErrMissingBaseURL = errors.New("configuration has no baseUrl")

// ErrReservedKey is returned when an extra state key shadows a recognized one.
var ErrReservedKey = errors.New("reserved state key")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")
