package vector

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/contentd/internal/db"
	"github.com/kailas-cloud/contentd/internal/db/memory"
	"github.com/kailas-cloud/contentd/internal/domain"
)

type fakeStore struct {
	hsets   map[string]map[string]string
	deleted []string

	indexExists    bool
	indexExistsErr error
	createErr      error
	created        *db.IndexDefinition

	searchResult *db.SearchResult
	searchErr    error
	lastQuery    *db.KNNQuery
}

func newFakeStore() *fakeStore {
	return &fakeStore{hsets: make(map[string]map[string]string)}
}

func (f *fakeStore) HSet(_ context.Context, key string, fields map[string]string) error {
	f.hsets[key] = fields
	return nil
}

func (f *fakeStore) Del(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	f.created = def
	return f.createErr
}

func (f *fakeStore) IndexExists(_ context.Context, _ string) (bool, error) {
	return f.indexExists, f.indexExistsErr
}

func (f *fakeStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	f.lastQuery = q
	return f.searchResult, f.searchErr
}

func TestEnsureIndex_CreatesWhenMissing(t *testing.T) {
	fs := newFakeStore()
	repo := New(fs, 4).WithHNSW(HNSWConfig{M: 16, EFConstruct: 200})

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("EnsureIndex() error = %v", err)
	}
	if fs.created == nil {
		t.Fatal("expected CreateIndex to be called")
	}
	if fs.created.Name != indexName {
		t.Errorf("index name = %q, want %q", fs.created.Name, indexName)
	}
	if len(fs.created.Fields) != 2 {
		t.Fatalf("index fields = %d, want 2", len(fs.created.Fields))
	}
	vf := fs.created.Fields[1]
	if vf.VectorDim != 4 || vf.VectorDistance != db.DistanceCosine || vf.VectorM != 16 {
		t.Errorf("unexpected vector field config: %+v", vf)
	}
}

func TestEnsureIndex_SkipsWhenPresent(t *testing.T) {
	fs := newFakeStore()
	fs.indexExists = true
	repo := New(fs, 4)

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("EnsureIndex() error = %v", err)
	}
	if fs.created != nil {
		t.Error("CreateIndex should not be called when index exists")
	}
}

func TestEnsureIndex_ToleratesConcurrentCreate(t *testing.T) {
	fs := newFakeStore()
	fs.createErr = db.ErrIndexExists
	repo := New(fs, 4)

	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("EnsureIndex() error = %v", err)
	}
}

func TestUpsert(t *testing.T) {
	fs := newFakeStore()
	repo := New(fs, 3)

	if err := repo.Upsert(context.Background(), domain.IndexedDocument{Key: "blog:7", Text: "hello world", Vector: []float32{1, 2, 3}}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	fields, ok := fs.hsets[keyPrefix+"blog:7"]
	if !ok {
		t.Fatalf("document not stored under %q, got keys %v", keyPrefix+"blog:7", fs.hsets)
	}
	if fields[fieldContent] != "hello world" {
		t.Errorf("stored content = %q", fields[fieldContent])
	}
	if len(fields[fieldVector]) != 12 {
		t.Errorf("stored vector byte length = %d, want 12", len(fields[fieldVector]))
	}
}

func TestUpsert_Validation(t *testing.T) {
	repo := New(newFakeStore(), 3)

	err := repo.Upsert(context.Background(), domain.IndexedDocument{Key: "  ", Text: "text", Vector: []float32{1, 2, 3}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank key: error = %v, want ErrInvalidInput", err)
	}

	err = repo.Upsert(context.Background(), domain.IndexedDocument{Key: "blog:1", Text: "text", Vector: []float32{1, 2}})
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Errorf("short vector: error = %v, want ErrVectorDimMismatch", err)
	}
}

func TestDeleteByKey(t *testing.T) {
	fs := newFakeStore()
	repo := New(fs, 3)

	if err := repo.DeleteByKey(context.Background(), "blog:7"); err != nil {
		t.Fatalf("DeleteByKey() error = %v", err)
	}
	if len(fs.deleted) != 1 || fs.deleted[0] != keyPrefix+"blog:7" {
		t.Errorf("deleted keys = %v", fs.deleted)
	}

	if err := repo.DeleteByKey(context.Background(), ""); err != nil {
		t.Errorf("blank key should be a no-op, got %v", err)
	}
	if len(fs.deleted) != 1 {
		t.Errorf("blank key must not reach the store, deleted = %v", fs.deleted)
	}
}

func TestSearch_MapsEntries(t *testing.T) {
	fs := newFakeStore()
	fs.searchResult = &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			{Key: keyPrefix + "blog:1", Score: 0.93, Fields: map[string]string{fieldContent: "first"}},
			{Key: keyPrefix + "blog:2", Score: 0.41, Fields: map[string]string{fieldContent: "second"}},
		},
	}
	repo := New(fs, 3)

	results, err := repo.Search(context.Background(), []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Key != "blog:1" || results[0].Text != "first" || results[0].Score != 0.93 {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if fs.lastQuery.K != 5 || fs.lastQuery.IndexName != indexName {
		t.Errorf("unexpected query: %+v", fs.lastQuery)
	}
}

func TestSearch_Validation(t *testing.T) {
	repo := New(newFakeStore(), 3)

	_, err := repo.Search(context.Background(), []float32{1, 0, 0}, 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("topK=0: error = %v, want ErrInvalidInput", err)
	}

	_, err = repo.Search(context.Background(), []float32{1, 0}, 5)
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Errorf("dim mismatch: error = %v, want ErrVectorDimMismatch", err)
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	fs := newFakeStore()
	fs.searchResult = &db.SearchResult{}
	repo := New(fs, 3)

	results, err := repo.Search(context.Background(), []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}

func TestSearch_MissingIndexNotReady(t *testing.T) {
	fs := newFakeStore()
	fs.searchErr = db.ErrIndexNotFound
	repo := New(fs, 3)

	_, err := repo.Search(context.Background(), []float32{1, 0, 0}, 5)
	if !errors.Is(err, domain.ErrNotReady) {
		t.Errorf("missing index: error = %v, want ErrNotReady", err)
	}
}

// Round trip through the in-memory store: an indexed document must be its
// own nearest neighbor.
func TestSearch_MemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	repo := New(st, 3)

	if err := repo.EnsureIndex(ctx); err != nil {
		t.Fatalf("EnsureIndex() error = %v", err)
	}

	docs := map[string][]float32{
		"blog:1": {1, 0, 0},
		"blog:2": {0, 1, 0},
		"blog:3": {0.9, 0.1, 0},
	}
	for key, vec := range docs {
		doc := domain.IndexedDocument{Key: key, Text: "text for " + key, Vector: vec}
		if err := repo.Upsert(ctx, doc); err != nil {
			t.Fatalf("Upsert(%s) error = %v", key, err)
		}
	}

	results, err := repo.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Key != "blog:1" {
		t.Errorf("nearest neighbor = %q, want blog:1", results[0].Key)
	}
	if results[1].Key != "blog:3" {
		t.Errorf("second neighbor = %q, want blog:3", results[1].Key)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("scores not descending: %v then %v", results[0].Score, results[1].Score)
	}
}

// Writing the same key twice must leave exactly one index entry, last write
// winning, and deleting it twice must stay error-free.
func TestUpsert_SameKeyReplacesEntry(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	repo := New(st, 3)

	if err := repo.EnsureIndex(ctx); err != nil {
		t.Fatalf("EnsureIndex() error = %v", err)
	}

	first := domain.IndexedDocument{Key: "blog:1", Text: "first version", Vector: []float32{1, 0, 0}}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}
	second := domain.IndexedDocument{Key: "blog:1", Text: "second version", Vector: []float32{0, 1, 0}}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	results, err := repo.Search(ctx, []float32{0, 1, 0}, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want exactly 1 entry for the rewritten key", len(results))
	}
	if results[0].Key != "blog:1" || results[0].Text != "second version" {
		t.Errorf("surviving entry = %+v, want blog:1 with the second text", results[0])
	}

	if err := repo.DeleteByKey(ctx, "blog:1"); err != nil {
		t.Fatalf("first DeleteByKey() error = %v", err)
	}
	if err := repo.DeleteByKey(ctx, "blog:1"); err != nil {
		t.Errorf("repeated DeleteByKey() error = %v, want nil", err)
	}

	results, err = repo.Search(ctx, []float32{0, 1, 0}, 10)
	if err != nil {
		t.Fatalf("Search() after delete error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results after delete = %v, want empty", results)
	}
}
