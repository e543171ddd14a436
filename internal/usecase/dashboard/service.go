// Package dashboard aggregates admin overview numbers.
package dashboard

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// Repository defines the aggregate queries the overview needs.
type Repository interface {
	CountBlogs(ctx context.Context) (int64, error)
	CountProjects(ctx context.Context) (int64, error)
	CountContactsByStatus(ctx context.Context, status string) (int64, error)
	RecentBlogs(ctx context.Context, n int) ([]domain.Blog, error)
	ListContacts(ctx context.Context, status string) ([]domain.Contact, error)
}

// Overview is the admin dashboard snapshot.
type Overview struct {
	TotalBlogs      int64            `json:"totalBlogs"`
	TotalProjects   int64            `json:"totalProjects"`
	PendingContacts int64            `json:"pendingContacts"`
	RecentBlogs     []domain.Blog    `json:"recentBlogs"`
	Pending         []domain.Contact `json:"pendingContactList"`
}

// Service builds the overview.
type Service struct {
	repo        Repository
	recentLimit int
}

// New creates a dashboard service.
func New(repo Repository) *Service {
	return &Service{repo: repo, recentLimit: 5}
}

// Overview collects counts, the latest blogs and the pending contact queue.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	blogs, err := s.repo.CountBlogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}
	projects, err := s.repo.CountProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("count projects: %w", err)
	}
	pendingCount, err := s.repo.CountContactsByStatus(ctx, domain.ContactStatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending contacts: %w", err)
	}
	recent, err := s.repo.RecentBlogs(ctx, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent blogs: %w", err)
	}
	pending, err := s.repo.ListContacts(ctx, domain.ContactStatusPending)
	if err != nil {
		return nil, fmt.Errorf("pending contacts: %w", err)
	}

	return &Overview{
		TotalBlogs:      blogs,
		TotalProjects:   projects,
		PendingContacts: pendingCount,
		RecentBlogs:     recent,
		Pending:         pending,
	}, nil
}
