// Package blog implements blog CRUD with best-effort vector index
// synchronization. The relational write is the source of truth; index
// failures are logged and deliberately ignored so they can never fail the
// authoritative write.
package blog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// Service handles blog CRUD and drives the indexer.
type Service struct {
	repo    Repository
	indexer Indexer
	logger  *zap.Logger
}

// New creates a blog service.
func New(repo Repository, indexer Indexer, logger *zap.Logger) *Service {
	return &Service{repo: repo, indexer: indexer, logger: logger}
}

// Create validates and stores a blog, then projects it into the vector index.
func (s *Service) Create(ctx context.Context, b *domain.Blog) error {
	if err := validate(b); err != nil {
		return err
	}

	if err := s.repo.CreateBlog(ctx, b); err != nil {
		return fmt.Errorf("create blog: %w", err)
	}

	if err := s.indexer.BlogCreated(ctx, b); err != nil {
		s.logger.Warn("Index write failed after blog create; entry will heal on next update",
			zap.Int64("blog_id", b.ID), zap.Error(err))
	}
	return nil
}

// Get returns one blog by ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Blog, error) {
	return s.repo.BlogByID(ctx, id)
}

// GetBySlug returns one blog by its URL slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	return s.repo.BlogBySlug(ctx, slug)
}

// List returns blogs, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string) ([]domain.Blog, error) {
	return s.repo.ListBlogs(ctx, status)
}

// Published returns published blogs only, for the public surface.
func (s *Service) Published(ctx context.Context) ([]domain.Blog, error) {
	return s.repo.ListBlogs(ctx, domain.BlogStatusPublished)
}

// Update replaces a blog and re-projects it into the vector index.
func (s *Service) Update(ctx context.Context, b *domain.Blog) error {
	if err := validate(b); err != nil {
		return err
	}

	if err := s.repo.UpdateBlog(ctx, b); err != nil {
		return fmt.Errorf("update blog %d: %w", b.ID, err)
	}

	if err := s.indexer.BlogUpdated(ctx, b); err != nil {
		s.logger.Warn("Index write failed after blog update; entry will heal on next update",
			zap.Int64("blog_id", b.ID), zap.Error(err))
	}
	return nil
}

// Delete removes the blog's index entry and then the blog itself. The row
// delete proceeds regardless of the index outcome.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.indexer.BlogDeleted(ctx, id); err != nil {
		s.logger.Warn("Index delete failed before blog delete",
			zap.Int64("blog_id", id), zap.Error(err))
	}

	if err := s.repo.DeleteBlog(ctx, id); err != nil {
		return fmt.Errorf("delete blog %d: %w", id, err)
	}
	return nil
}

func validate(b *domain.Blog) error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("blog title is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(b.Slug) == "" {
		return fmt.Errorf("blog slug is required: %w", domain.ErrInvalidInput)
	}
	return nil
}
