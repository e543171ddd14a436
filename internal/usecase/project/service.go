// Package project implements portfolio project CRUD.
package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// Repository defines the storage contract for projects.
type Repository interface {
	CreateProject(ctx context.Context, p *domain.Project) error
	ProjectByID(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context, status string) ([]domain.Project, error)
	UpdateProject(ctx context.Context, p *domain.Project) error
	DeleteProject(ctx context.Context, id int64) error
}

// Service handles project CRUD.
type Service struct {
	repo Repository
}

// New creates a project service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *domain.Project) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("project title is required: %w", domain.ErrInvalidInput)
	}
	return s.repo.CreateProject(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.ProjectByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string) ([]domain.Project, error) {
	return s.repo.ListProjects(ctx, status)
}

// Published returns published projects only, for the public surface.
func (s *Service) Published(ctx context.Context) ([]domain.Project, error) {
	return s.repo.ListProjects(ctx, domain.BlogStatusPublished)
}

func (s *Service) Update(ctx context.Context, p *domain.Project) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("project title is required: %w", domain.ErrInvalidInput)
	}
	return s.repo.UpdateProject(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteProject(ctx, id)
}
