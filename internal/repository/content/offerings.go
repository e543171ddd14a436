package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// CreateOffering inserts an offering and fills in its ID.
func (s *Store) CreateOffering(ctx context.Context, o *domain.Offering) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO offerings (icon, title, description, features, price)
		VALUES (?, ?, ?, ?, ?)`,
		o.Icon, o.Title, o.Description, o.Features, o.Price,
	)
	if err != nil {
		return fmt.Errorf("insert offering: %w", err)
	}
	o.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("offering insert id: %w", err)
	}
	return nil
}

// OfferingByID fetches one offering. Returns domain.ErrNotFound if absent.
func (s *Store) OfferingByID(ctx context.Context, id int64) (*domain.Offering, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, icon, title, description, features, price
		FROM offerings WHERE id = ?`, id)
	return scanOffering(row)
}

// ListOfferings returns all offerings in insertion order.
func (s *Store) ListOfferings(ctx context.Context) ([]domain.Offering, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, icon, title, description, features, price
		FROM offerings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	defer rows.Close()

	var out []domain.Offering
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// UpdateOffering replaces an offering's fields.
func (s *Store) UpdateOffering(ctx context.Context, o *domain.Offering) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE offerings SET icon = ?, title = ?, description = ?, features = ?, price = ?
		WHERE id = ?`,
		o.Icon, o.Title, o.Description, o.Features, o.Price, o.ID,
	)
	if err != nil {
		return fmt.Errorf("update offering %d: %w", o.ID, err)
	}
	return requireAffected(res, o.ID)
}

// DeleteOffering removes an offering. Returns domain.ErrNotFound if absent.
func (s *Store) DeleteOffering(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM offerings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete offering %d: %w", id, err)
	}
	return requireAffected(res, id)
}

func scanOffering(row rowScanner) (*domain.Offering, error) {
	var o domain.Offering
	err := row.Scan(&o.ID, &o.Icon, &o.Title, &o.Description, &o.Features, &o.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan offering: %w", err)
	}
	return &o, nil
}
