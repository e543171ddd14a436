package chat

import (
	"context"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// Embedder vectorizes the visitor's question.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Searcher runs top-K similarity search over the vector index.
type Searcher interface {
	Search(ctx context.Context, vector []float32, topK int) ([]domain.SimilarityResult, error)
}

// BlogResolver maps retrieved index keys back to their owning blogs.
type BlogResolver interface {
	BlogByID(ctx context.Context, id int64) (*domain.Blog, error)
}

// Answerer synthesizes the final answer from a grounding prompt.
type Answerer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
