package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// CreateBlog inserts a blog and fills in its ID and timestamps.
func (s *Store) CreateBlog(ctx context.Context, b *domain.Blog) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Status == "" {
		b.Status = domain.BlogStatusDraft
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO blogs (title, slug, author, category, thumbnail, content, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Title, b.Slug, b.Author, b.Category, b.Thumbnail, b.Content, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	b.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("blog insert id: %w", err)
	}
	return nil
}

// BlogByID fetches one blog. Returns domain.ErrNotFound if absent.
func (s *Store) BlogByID(ctx context.Context, id int64) (*domain.Blog, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, author, category, thumbnail, content, status, created_at, updated_at
		FROM blogs WHERE id = ?`, id)
	return scanBlog(row)
}

// BlogBySlug fetches one blog by its URL slug. Returns domain.ErrNotFound if absent.
func (s *Store) BlogBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, slug, author, category, thumbnail, content, status, created_at, updated_at
		FROM blogs WHERE slug = ?`, slug)
	return scanBlog(row)
}

// ListBlogs returns blogs newest first. An empty status returns all blogs.
func (s *Store) ListBlogs(ctx context.Context, status string) ([]domain.Blog, error) {
	query := `
		SELECT id, title, slug, author, category, thumbnail, content, status, created_at, updated_at
		FROM blogs`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	return collectBlogs(rows)
}

// RecentBlogs returns the n most recently created blogs.
func (s *Store) RecentBlogs(ctx context.Context, n int) ([]domain.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, slug, author, category, thumbnail, content, status, created_at, updated_at
		FROM blogs ORDER BY created_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("recent blogs: %w", err)
	}
	defer rows.Close()

	return collectBlogs(rows)
}

// CountBlogs returns the total number of blogs.
func (s *Store) CountBlogs(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return n, nil
}

// UpdateBlog replaces a blog's mutable fields and bumps UpdatedAt.
// Returns domain.ErrNotFound if the blog does not exist.
func (s *Store) UpdateBlog(ctx context.Context, b *domain.Blog) error {
	b.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE blogs
		SET title = ?, slug = ?, author = ?, category = ?, thumbnail = ?, content = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		b.Title, b.Slug, b.Author, b.Category, b.Thumbnail, b.Content, b.Status, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update blog %d: %w", b.ID, err)
	}
	return requireAffected(res, b.ID)
}

// DeleteBlog removes a blog. Returns domain.ErrNotFound if absent.
func (s *Store) DeleteBlog(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete blog %d: %w", id, err)
	}
	return requireAffected(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*domain.Blog, error) {
	var b domain.Blog
	err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Author, &b.Category,
		&b.Thumbnail, &b.Content, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan blog: %w", err)
	}
	return &b, nil
}

func collectBlogs(rows *sql.Rows) ([]domain.Blog, error) {
	var out []domain.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for id %d: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
