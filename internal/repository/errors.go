// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them to a single human-readable notification: ErrValidation becomes a
// blocking "fix your input" message, ErrNotFound tells the caller to
// re-read and retry manually, and ErrStorageUnavailable is fatal for the
// current action only.
package repository

import "errors"

// ErrValidation is returned when order or booking creation is attempted
// with malformed input, such as an empty item list or a missing hall or
// seat. The store is never touched when this is returned. Handlers should
// translate it into an HTTP 400 response.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when an operation targets a record id absent
// from the store, typically because the caller is acting on stale state.
// Handlers should translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrStorageUnavailable is returned when the underlying document store
// cannot be read or written. The action fails as a whole; prior in-memory
// state is left untouched. Handlers should translate it into an HTTP 503
// response.
var ErrStorageUnavailable = errors.New("storage unavailable")
