package store

import "errors"

// Error kinds surfaced to the request-handling layer. ErrNotFound covers both
// missing rows and rows outside the caller's ownership scope so that the
// existence of other users' data is never revealed. ErrForbidden is used
// narrowly: the entity is visible but the owning account belongs to someone
// else on a write.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("invalid input")
)
