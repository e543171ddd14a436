// Package health aggregates component health checks for the health endpoint.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates a non-critical component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates a storage backend is unreachable.
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
	index     Pinger
	content   Pinger
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil.
func New(index, content Pinger, embedding EmbeddingChecker) *Service {
	return &Service{index: index, content: content, embedding: embedding}
}

// Check runs health checks against all components. A failing storage backend
// makes the report Unhealthy; a failing embedding provider only Degraded,
// since the query path has its own fallback answer.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.index.Ping(ctx); err != nil {
		checks["vector_index"] = CheckError
		status = Unhealthy
	} else {
		checks["vector_index"] = CheckOK
	}

	if err := s.content.Ping(ctx); err != nil {
		checks["content_db"] = CheckError
		status = Unhealthy
	} else {
		checks["content_db"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["embedding"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
