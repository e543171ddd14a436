package content

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/contentd/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestBlogCRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	b := &domain.Blog{
		Title:   "First Post",
		Slug:    "first-post",
		Author:  "alice",
		Content: "<p>hello</p>",
		Status:  domain.BlogStatusPublished,
	}
	if err := st.CreateBlog(ctx, b); err != nil {
		t.Fatalf("CreateBlog() error = %v", err)
	}
	if b.ID == 0 {
		t.Fatal("CreateBlog did not assign an ID")
	}
	if b.CreatedAt.IsZero() || b.UpdatedAt.IsZero() {
		t.Error("CreateBlog did not set timestamps")
	}

	got, err := st.BlogByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("BlogByID() error = %v", err)
	}
	if got.Title != "First Post" || got.Slug != "first-post" || got.Author != "alice" {
		t.Errorf("unexpected blog: %+v", got)
	}

	bySlug, err := st.BlogBySlug(ctx, "first-post")
	if err != nil {
		t.Fatalf("BlogBySlug() error = %v", err)
	}
	if bySlug.ID != b.ID {
		t.Errorf("BlogBySlug ID = %d, want %d", bySlug.ID, b.ID)
	}

	b.Title = "First Post, Revised"
	if err := st.UpdateBlog(ctx, b); err != nil {
		t.Fatalf("UpdateBlog() error = %v", err)
	}
	got, err = st.BlogByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("BlogByID() after update error = %v", err)
	}
	if got.Title != "First Post, Revised" {
		t.Errorf("title after update = %q", got.Title)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Errorf("UpdatedAt %v before CreatedAt %v", got.UpdatedAt, got.CreatedAt)
	}

	if err := st.DeleteBlog(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBlog() error = %v", err)
	}
	if _, err := st.BlogByID(ctx, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("after delete, error = %v, want ErrNotFound", err)
	}
}

func TestBlogNotFound(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	if _, err := st.BlogByID(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("BlogByID missing: error = %v, want ErrNotFound", err)
	}
	if err := st.UpdateBlog(ctx, &domain.Blog{ID: 42, Title: "x", Slug: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateBlog missing: error = %v, want ErrNotFound", err)
	}
	if err := st.DeleteBlog(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteBlog missing: error = %v, want ErrNotFound", err)
	}
}

func TestListBlogsStatusFilter(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for _, b := range []*domain.Blog{
		{Title: "a", Slug: "a", Status: domain.BlogStatusPublished},
		{Title: "b", Slug: "b", Status: domain.BlogStatusDraft},
		{Title: "c", Slug: "c", Status: domain.BlogStatusPublished},
	} {
		if err := st.CreateBlog(ctx, b); err != nil {
			t.Fatalf("CreateBlog(%s) error = %v", b.Slug, err)
		}
	}

	published, err := st.ListBlogs(ctx, domain.BlogStatusPublished)
	if err != nil {
		t.Fatalf("ListBlogs(published) error = %v", err)
	}
	if len(published) != 2 {
		t.Errorf("published blogs = %d, want 2", len(published))
	}

	all, err := st.ListBlogs(ctx, "")
	if err != nil {
		t.Fatalf("ListBlogs(all) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all blogs = %d, want 3", len(all))
	}

	n, err := st.CountBlogs(ctx)
	if err != nil {
		t.Fatalf("CountBlogs() error = %v", err)
	}
	if n != 3 {
		t.Errorf("CountBlogs = %d, want 3", n)
	}

	recent, err := st.RecentBlogs(ctx, 2)
	if err != nil {
		t.Fatalf("RecentBlogs() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent blogs = %d, want 2", len(recent))
	}
	if recent[0].Slug != "c" {
		t.Errorf("most recent = %q, want c", recent[0].Slug)
	}
}

func TestProjectCRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	p := &domain.Project{Title: "Tower", Year: "2024", Area: "1200m2", Status: domain.BlogStatusPublished}
	if err := st.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	got, err := st.ProjectByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("ProjectByID() error = %v", err)
	}
	if got.Title != "Tower" || got.Year != "2024" {
		t.Errorf("unexpected project: %+v", got)
	}

	p.Area = "1500m2"
	if err := st.UpdateProject(ctx, p); err != nil {
		t.Fatalf("UpdateProject() error = %v", err)
	}

	list, err := st.ListProjects(ctx, domain.BlogStatusPublished)
	if err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if len(list) != 1 || list[0].Area != "1500m2" {
		t.Errorf("unexpected projects: %+v", list)
	}

	if err := st.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
	if _, err := st.ProjectByID(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("after delete, error = %v, want ErrNotFound", err)
	}
}

func TestOfferingCRUD(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	o := &domain.Offering{Icon: "home", Title: "Interior Design", Price: "from $500"}
	if err := st.CreateOffering(ctx, o); err != nil {
		t.Fatalf("CreateOffering() error = %v", err)
	}

	list, err := st.ListOfferings(ctx)
	if err != nil {
		t.Fatalf("ListOfferings() error = %v", err)
	}
	if len(list) != 1 || list[0].Title != "Interior Design" {
		t.Errorf("unexpected offerings: %+v", list)
	}

	o.Price = "from $700"
	if err := st.UpdateOffering(ctx, o); err != nil {
		t.Fatalf("UpdateOffering() error = %v", err)
	}
	got, err := st.OfferingByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("OfferingByID() error = %v", err)
	}
	if got.Price != "from $700" {
		t.Errorf("price = %q", got.Price)
	}

	if err := st.DeleteOffering(ctx, o.ID); err != nil {
		t.Fatalf("DeleteOffering() error = %v", err)
	}
}

func TestContactLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	c := &domain.Contact{Name: "Bob", Email: "bob@example.com", Message: "call me"}
	if err := st.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact() error = %v", err)
	}
	if c.Status != domain.ContactStatusPending {
		t.Errorf("new contact status = %q, want pending", c.Status)
	}

	pending, err := st.CountContactsByStatus(ctx, domain.ContactStatusPending)
	if err != nil {
		t.Fatalf("CountContactsByStatus() error = %v", err)
	}
	if pending != 1 {
		t.Errorf("pending = %d, want 1", pending)
	}

	if err := st.UpdateContactStatus(ctx, c.ID, domain.ContactStatusHandled, "quoted", "carol"); err != nil {
		t.Fatalf("UpdateContactStatus() error = %v", err)
	}
	got, err := st.ContactByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("ContactByID() error = %v", err)
	}
	if got.Status != domain.ContactStatusHandled || got.Note != "quoted" || got.HandledBy != "carol" {
		t.Errorf("unexpected contact: %+v", got)
	}
	if got.HandledAt.IsZero() {
		t.Error("HandledAt not set")
	}

	list, err := st.ListContacts(ctx, domain.ContactStatusHandled)
	if err != nil {
		t.Fatalf("ListContacts() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("handled contacts = %d, want 1", len(list))
	}
}
