package domain

import "errors"

var (
	// ErrPlanNotFound signals that an identifier does not resolve to a plan.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrBackendUnavailable signals that the storage backend could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendTimeout signals that the storage backend did not respond in time.
	ErrBackendTimeout = errors.New("backend timeout")
	// ErrInvalidSortToken signals a sort token that does not parse
	// into a known field and direction pair.
	ErrInvalidSortToken = errors.New("invalid sort token")
	// ErrValidation signals malformed filter input at the boundary.
	ErrValidation = errors.New("validation failed")
)
