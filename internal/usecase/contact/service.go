// Package contact implements contact-form submissions and their handling
// workflow (pending → handled → closed).
package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// Repository defines the storage contract for contacts.
type Repository interface {
	CreateContact(ctx context.Context, c *domain.Contact) error
	ContactByID(ctx context.Context, id int64) (*domain.Contact, error)
	ListContacts(ctx context.Context, status string) ([]domain.Contact, error)
	UpdateContactStatus(ctx context.Context, id int64, status, note, handledBy string) error
	DeleteContact(ctx context.Context, id int64) error
}

// Service handles the contact workflow.
type Service struct {
	repo Repository
}

// New creates a contact service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit records a new contact-form submission as pending.
func (s *Service) Submit(ctx context.Context, c *domain.Contact) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("contact name is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(c.Phone) == "" && strings.TrimSpace(c.Email) == "" {
		return fmt.Errorf("contact needs a phone or an email: %w", domain.ErrInvalidInput)
	}
	c.Status = domain.ContactStatusPending
	return s.repo.CreateContact(ctx, c)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Contact, error) {
	return s.repo.ContactByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string) ([]domain.Contact, error) {
	return s.repo.ListContacts(ctx, status)
}

// Transition moves a contact to a new status, recording the operator note.
func (s *Service) Transition(ctx context.Context, id int64, status, note, handledBy string) error {
	switch status {
	case domain.ContactStatusPending, domain.ContactStatusHandled, domain.ContactStatusClosed:
	default:
		return fmt.Errorf("unknown contact status %q: %w", status, domain.ErrInvalidInput)
	}
	return s.repo.UpdateContactStatus(ctx, id, status, note, handledBy)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteContact(ctx, id)
}
