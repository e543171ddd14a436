package indexing

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
)

func newTestCoordinator(embedder *mockEmbedder, index *mockIndex) *Coordinator {
	return New(embedder, index, 0, zap.NewNop())
}

func TestBlogCreated_IndexesCleanedText(t *testing.T) {
	embedder := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	index := &mockIndex{}
	c := newTestCoordinator(embedder, index)

	blog := &domain.Blog{
		ID:      7,
		Title:   "Modern Kitchens",
		Content: "<p>Bright   spaces</p><script>alert(1)</script>",
	}
	if err := c.BlogCreated(context.Background(), blog); err != nil {
		t.Fatalf("BlogCreated() error = %v", err)
	}

	if embedder.lastText != "Modern Kitchens Bright spaces" {
		t.Errorf("embedded text = %q", embedder.lastText)
	}
	if len(index.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(index.upserts))
	}
	up := index.upserts[0]
	if up.Key != "7" {
		t.Errorf("index key = %q, want 7", up.Key)
	}
	if len(up.Vector) != 2 {
		t.Errorf("vector = %v", up.Vector)
	}
}

func TestBlogUpdated_ReplacesEntry(t *testing.T) {
	embedder := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.3}}}
	index := &mockIndex{}
	c := newTestCoordinator(embedder, index)

	blog := &domain.Blog{ID: 3, Title: "Updated", Content: "<p>new body</p>"}
	if err := c.BlogUpdated(context.Background(), blog); err != nil {
		t.Fatalf("BlogUpdated() error = %v", err)
	}
	if len(index.upserts) != 1 || index.upserts[0].Key != "3" {
		t.Errorf("unexpected upserts: %+v", index.upserts)
	}
}

func TestBlogDeleted(t *testing.T) {
	embedder := &mockEmbedder{}
	index := &mockIndex{}
	c := newTestCoordinator(embedder, index)

	if err := c.BlogDeleted(context.Background(), 9); err != nil {
		t.Fatalf("BlogDeleted() error = %v", err)
	}
	if len(index.deletions) != 1 || index.deletions[0] != "9" {
		t.Errorf("deletions = %v", index.deletions)
	}
	if embedder.calls != 0 {
		t.Errorf("delete must not embed, calls = %d", embedder.calls)
	}
}

func TestWrite_EmbedFailureIsReturned(t *testing.T) {
	embedder := &mockEmbedder{err: errors.New("provider down")}
	index := &mockIndex{}
	c := newTestCoordinator(embedder, index)

	err := c.BlogCreated(context.Background(), &domain.Blog{ID: 1, Title: "t", Content: "c"})
	if err == nil {
		t.Fatal("expected error when embedding fails")
	}
	if len(index.upserts) != 0 {
		t.Errorf("no upsert expected after embed failure, got %+v", index.upserts)
	}
}

func TestWrite_UpsertFailureIsReturned(t *testing.T) {
	embedder := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	index := &mockIndex{upsertErr: errors.New("store down")}
	c := newTestCoordinator(embedder, index)

	if err := c.BlogCreated(context.Background(), &domain.Blog{ID: 1, Title: "t", Content: "c"}); err == nil {
		t.Fatal("expected error when index write fails")
	}
}

func TestWrite_EmptyTextRemovesEntry(t *testing.T) {
	embedder := &mockEmbedder{}
	index := &mockIndex{}
	c := newTestCoordinator(embedder, index)

	blog := &domain.Blog{ID: 5, Title: "  ", Content: "<script>only()</script>"}
	if err := c.BlogUpdated(context.Background(), blog); err != nil {
		t.Fatalf("BlogUpdated() error = %v", err)
	}
	if embedder.calls != 0 {
		t.Errorf("empty text must not be embedded, calls = %d", embedder.calls)
	}
	if len(index.deletions) != 1 || index.deletions[0] != "5" {
		t.Errorf("deletions = %v", index.deletions)
	}
}

func TestIndexableText(t *testing.T) {
	b := &domain.Blog{Title: "Title", Content: "<p>body <b>text</b></p>"}
	if got := IndexableText(b); got != "Title body text" {
		t.Errorf("IndexableText() = %q", got)
	}

	empty := &domain.Blog{}
	if got := IndexableText(empty); got != "" {
		t.Errorf("IndexableText(empty) = %q", got)
	}
}
