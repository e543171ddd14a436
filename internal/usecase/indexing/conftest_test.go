package indexing

import (
	"context"

	"github.com/kailas-cloud/contentd/internal/domain"
)

type mockEmbedder struct {
	result   domain.EmbeddingResult
	err      error
	lastText string
	calls    int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	m.lastText = text
	return m.result, m.err
}

type mockIndex struct {
	upsertErr error
	deleteErr error
	upserts   []domain.IndexedDocument
	deletions []string
}

func (m *mockIndex) Upsert(_ context.Context, doc domain.IndexedDocument) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts = append(m.upserts, doc)
	return nil
}

func (m *mockIndex) DeleteByKey(_ context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletions = append(m.deletions, key)
	return nil
}
