package indexing

import (
	"context"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// Index defines the vector index contract used by the coordinator.
type Index interface {
	Upsert(ctx context.Context, doc domain.IndexedDocument) error
	DeleteByKey(ctx context.Context, key string) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
