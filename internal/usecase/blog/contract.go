package blog

import (
	"context"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// Repository defines the relational storage contract for blogs.
type Repository interface {
	CreateBlog(ctx context.Context, b *domain.Blog) error
	BlogByID(ctx context.Context, id int64) (*domain.Blog, error)
	BlogBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	ListBlogs(ctx context.Context, status string) ([]domain.Blog, error)
	UpdateBlog(ctx context.Context, b *domain.Blog) error
	DeleteBlog(ctx context.Context, id int64) error
}

// Indexer receives blog lifecycle events to keep the vector index in sync.
// Its errors are advisory: the service logs them and proceeds.
type Indexer interface {
	BlogCreated(ctx context.Context, b *domain.Blog) error
	BlogUpdated(ctx context.Context, b *domain.Blog) error
	BlogDeleted(ctx context.Context, id int64) error
}
