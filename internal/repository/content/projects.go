package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// CreateProject inserts a project and fills in its ID and timestamps.
func (s *Store) CreateProject(ctx context.Context, p *domain.Project) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.BlogStatusDraft
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (title, year, area, content, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Year, p.Area, p.Content, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("project insert id: %w", err)
	}
	return nil
}

// ProjectByID fetches one project. Returns domain.ErrNotFound if absent.
func (s *Store) ProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, year, area, content, status, created_at, updated_at
		FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

// ListProjects returns projects newest first. An empty status returns all.
func (s *Store) ListProjects(ctx context.Context, status string) ([]domain.Project, error) {
	query := `
		SELECT id, title, year, area, content, status, created_at, updated_at
		FROM projects`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// CountProjects returns the total number of projects.
func (s *Store) CountProjects(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// UpdateProject replaces a project's mutable fields and bumps UpdatedAt.
func (s *Store) UpdateProject(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE projects SET title = ?, year = ?, area = ?, content = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Year, p.Area, p.Content, p.Status, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}
	return requireAffected(res, p.ID)
}

// DeleteProject removes a project. Returns domain.ErrNotFound if absent.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	return requireAffected(res, id)
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Title, &p.Year, &p.Area, &p.Content, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}
