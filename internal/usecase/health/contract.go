package health

import "context"

// Pinger checks connectivity of a storage backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker verifies the embedding provider is reachable.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
