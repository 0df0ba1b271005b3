package planfinder

import "github.com/bizradar/planfinder/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrPlanNotFound       = domain.ErrPlanNotFound
	ErrBackendUnavailable = domain.ErrBackendUnavailable
	ErrBackendTimeout     = domain.ErrBackendTimeout
	ErrInvalidSortToken   = domain.ErrInvalidSortToken
	ErrValidation         = domain.ErrValidation
)
