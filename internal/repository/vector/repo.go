// Package vector persists indexed documents and serves top-K similarity
// search over a db.Store FT index.
package vector

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/contentd/internal/db"
	"github.com/kailas-cloud/contentd/internal/domain"
)

const (
	keyPrefix = domain.KeyPrefix + "content:"
	indexName = domain.KeyPrefix + "content:idx"

	fieldContent = "content"
	fieldVector  = "vector"
	fieldScore   = "__vector_score"
)

// store is the consumer interface for the vector index (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// HNSWConfig holds HNSW build parameters for the vector index.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the vector index over a db.Store.
type Repo struct {
	store     store
	dimension int
	hnsw      HNSWConfig
}

// New creates a vector index repository with the given embedding dimension.
func New(s store, dimension int) *Repo {
	return &Repo{store: s, dimension: dimension}
}

// WithHNSW configures HNSW build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// Dimension returns the embedding dimension negotiated at index creation.
func (r *Repo) Dimension() int {
	return r.dimension
}

// EnsureIndex provisions the FT index if absent. Idempotent; a concurrent
// create racing past the existence check is treated as success.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", indexName, err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     indexName,
		Prefixes: []string{keyPrefix},
		Fields: []db.IndexField{
			{Name: fieldContent, Type: db.IndexFieldText},
			{
				Name:              fieldVector,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.dimension,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", indexName, err)
	}
	return nil
}

// Upsert stores an indexed document under its key. HSET on an existing key
// overwrites both fields, so this is a true upsert with no duplicate window.
func (r *Repo) Upsert(ctx context.Context, doc domain.IndexedDocument) error {
	if strings.TrimSpace(doc.Key) == "" {
		return fmt.Errorf("document key is required: %w", domain.ErrInvalidInput)
	}
	if len(doc.Vector) != r.dimension {
		return fmt.Errorf(
			"vector length %d does not match index dimension %d: %w",
			len(doc.Vector), r.dimension, domain.ErrVectorDimMismatch,
		)
	}

	fields := map[string]string{
		fieldContent: doc.Text,
		fieldVector:  vectorToBytes(doc.Vector),
	}
	if err := r.store.HSet(ctx, docKey(doc.Key), fields); err != nil {
		return fmt.Errorf("store document %s: %w", doc.Key, err)
	}
	return nil
}

// DeleteByKey removes an indexed document. Missing keys are a no-op.
func (r *Repo) DeleteByKey(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return nil
	}
	if err := r.store.Del(ctx, docKey(key)); err != nil {
		return fmt.Errorf("delete document %s: %w", key, err)
	}
	return nil
}

// Search returns up to topK results ordered by descending cosine similarity.
// An empty index yields an empty slice, not an error.
func (r *Repo) Search(ctx context.Context, vector []float32, topK int) ([]domain.SimilarityResult, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d: %w", topK, domain.ErrInvalidInput)
	}
	if len(vector) != r.dimension {
		return nil, fmt.Errorf(
			"query vector length %d does not match index dimension %d: %w",
			len(vector), r.dimension, domain.ErrVectorDimMismatch,
		)
	}

	q := &db.KNNQuery{
		IndexName:    indexName,
		Vector:       vector,
		K:            topK,
		ReturnFields: []string{fieldContent, fieldScore},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			// Index not provisioned yet (or dropped out from under us).
			return nil, fmt.Errorf("index %s missing: %w", indexName, domain.ErrNotReady)
		}
		return nil, fmt.Errorf("search knn: %w", err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	results := make([]domain.SimilarityResult, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		results = append(results, domain.SimilarityResult{
			Key:   strings.TrimPrefix(entry.Key, keyPrefix),
			Text:  entry.Fields[fieldContent],
			Score: entry.Score,
		})
	}
	return results, nil
}

func docKey(key string) string {
	return keyPrefix + key
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
