// Package offering implements service-offering CRUD.
package offering

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// Repository defines the storage contract for offerings.
type Repository interface {
	CreateOffering(ctx context.Context, o *domain.Offering) error
	OfferingByID(ctx context.Context, id int64) (*domain.Offering, error)
	ListOfferings(ctx context.Context) ([]domain.Offering, error)
	UpdateOffering(ctx context.Context, o *domain.Offering) error
	DeleteOffering(ctx context.Context, id int64) error
}

// Service handles offering CRUD.
type Service struct {
	repo Repository
}

// New creates an offering service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, o *domain.Offering) error {
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("offering title is required: %w", domain.ErrInvalidInput)
	}
	return s.repo.CreateOffering(ctx, o)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Offering, error) {
	return s.repo.OfferingByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Offering, error) {
	return s.repo.ListOfferings(ctx)
}

func (s *Service) Update(ctx context.Context, o *domain.Offering) error {
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("offering title is required: %w", domain.ErrInvalidInput)
	}
	return s.repo.UpdateOffering(ctx, o)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteOffering(ctx, id)
}
