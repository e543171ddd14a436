package blog

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
)

type mockRepo struct {
	blogs     map[int64]*domain.Blog
	nextID    int64
	createErr error
	updateErr error
	deleteErr error
	deleted   []int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{blogs: make(map[int64]*domain.Blog), nextID: 1}
}

func (m *mockRepo) CreateBlog(_ context.Context, b *domain.Blog) error {
	if m.createErr != nil {
		return m.createErr
	}
	b.ID = m.nextID
	m.nextID++
	m.blogs[b.ID] = b
	return nil
}

func (m *mockRepo) BlogByID(_ context.Context, id int64) (*domain.Blog, error) {
	b, ok := m.blogs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (m *mockRepo) BlogBySlug(_ context.Context, slug string) (*domain.Blog, error) {
	for _, b := range m.blogs {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepo) ListBlogs(_ context.Context, status string) ([]domain.Blog, error) {
	var out []domain.Blog
	for _, b := range m.blogs {
		if status == "" || b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockRepo) UpdateBlog(_ context.Context, b *domain.Blog) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.blogs[b.ID]; !ok {
		return domain.ErrNotFound
	}
	m.blogs[b.ID] = b
	return nil
}

func (m *mockRepo) DeleteBlog(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.blogs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.blogs, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockIndexer struct {
	err     error
	created []int64
	updated []int64
	deleted []int64
}

func (m *mockIndexer) BlogCreated(_ context.Context, b *domain.Blog) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, b.ID)
	return nil
}

func (m *mockIndexer) BlogUpdated(_ context.Context, b *domain.Blog) error {
	if m.err != nil {
		return m.err
	}
	m.updated = append(m.updated, b.ID)
	return nil
}

func (m *mockIndexer) BlogDeleted(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func TestCreate_IndexesBlog(t *testing.T) {
	repo := newMockRepo()
	indexer := &mockIndexer{}
	svc := New(repo, indexer, zap.NewNop())

	b := &domain.Blog{Title: "T", Slug: "t"}
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(indexer.created) != 1 || indexer.created[0] != b.ID {
		t.Errorf("indexer created = %v", indexer.created)
	}
}

// Index failures must never fail the authoritative write.
func TestCreate_SwallowsIndexFailure(t *testing.T) {
	repo := newMockRepo()
	indexer := &mockIndexer{err: errors.New("index down")}
	svc := New(repo, indexer, zap.NewNop())

	b := &domain.Blog{Title: "T", Slug: "t"}
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error = %v, index failure must be swallowed", err)
	}
	if _, err := repo.BlogByID(context.Background(), b.ID); err != nil {
		t.Errorf("blog row missing after create: %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := New(newMockRepo(), &mockIndexer{}, zap.NewNop())

	if err := svc.Create(context.Background(), &domain.Blog{Slug: "t"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing title: error = %v, want ErrInvalidInput", err)
	}
	if err := svc.Create(context.Background(), &domain.Blog{Title: "T"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing slug: error = %v, want ErrInvalidInput", err)
	}
}

func TestUpdate_SwallowsIndexFailure(t *testing.T) {
	repo := newMockRepo()
	indexer := &mockIndexer{}
	svc := New(repo, indexer, zap.NewNop())

	b := &domain.Blog{Title: "T", Slug: "t"}
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	indexer.err = errors.New("index down")
	b.Title = "T2"
	if err := svc.Update(context.Background(), b); err != nil {
		t.Fatalf("Update() error = %v, index failure must be swallowed", err)
	}
	got, _ := repo.BlogByID(context.Background(), b.ID)
	if got.Title != "T2" {
		t.Errorf("title after update = %q", got.Title)
	}
}

func TestDelete_RowDeletedEvenIfIndexFails(t *testing.T) {
	repo := newMockRepo()
	indexer := &mockIndexer{}
	svc := New(repo, indexer, zap.NewNop())

	b := &domain.Blog{Title: "T", Slug: "t"}
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	indexer.err = errors.New("index down")
	if err := svc.Delete(context.Background(), b.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.BlogByID(context.Background(), b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("blog row still present after delete")
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := New(newMockRepo(), &mockIndexer{}, zap.NewNop())

	if err := svc.Delete(context.Background(), 42); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
