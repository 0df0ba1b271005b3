package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Unhealthy indicates the storage backend is down.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	backend BackendPinger
	// name is the configured driver ("redis", "sqlite"), used as the
	// check key in the report.
	name string
}

// New creates a Service.
func New(backend BackendPinger, name string) *Service {
	return &Service{backend: backend, name: name}
}

// Check runs the storage health check.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.backend.Ping(ctx); err != nil {
		checks[s.name] = CheckError
		status = Unhealthy
	} else {
		checks[s.name] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
