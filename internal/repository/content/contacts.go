package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// CreateContact inserts a contact-form submission with status pending.
func (s *Store) CreateContact(ctx context.Context, c *domain.Contact) error {
	c.CreatedAt = time.Now().UTC()
	if c.Status == "" {
		c.Status = domain.ContactStatusPending
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (name, phone, email, service_id, message, status, note, handled_by, handled_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NULL, ?)`,
		c.Name, c.Phone, c.Email, c.ServiceID, c.Message, c.Status, c.Note, c.HandledBy, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("contact insert id: %w", err)
	}
	return nil
}

// ContactByID fetches one contact. Returns domain.ErrNotFound if absent.
func (s *Store) ContactByID(ctx context.Context, id int64) (*domain.Contact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, service_id, message, status, note, handled_by, handled_at, created_at
		FROM contacts WHERE id = ?`, id)
	return scanContact(row)
}

// ListContacts returns contacts newest first. An empty status returns all.
func (s *Store) ListContacts(ctx context.Context, status string) ([]domain.Contact, error) {
	query := `
		SELECT id, name, phone, email, service_id, message, status, note, handled_by, handled_at, created_at
		FROM contacts`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// CountContactsByStatus returns the number of contacts in a given status.
func (s *Store) CountContactsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contacts WHERE status = ?`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

// UpdateContactStatus transitions a contact, recording who handled it and when.
func (s *Store) UpdateContactStatus(ctx context.Context, id int64, status, note, handledBy string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE contacts SET status = ?, note = ?, handled_by = ?, handled_at = ?
		WHERE id = ?`,
		status, note, handledBy, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update contact %d: %w", id, err)
	}
	return requireAffected(res, id)
}

// DeleteContact removes a contact. Returns domain.ErrNotFound if absent.
func (s *Store) DeleteContact(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	return requireAffected(res, id)
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	var (
		c         domain.Contact
		handledAt sql.NullTime
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.ServiceID,
		&c.Message, &c.Status, &c.Note, &c.HandledBy, &handledAt, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan contact: %w", err)
	}
	if handledAt.Valid {
		c.HandledAt = handledAt.Time
	}
	return &c, nil
}
