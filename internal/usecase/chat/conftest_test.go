package chat

import (
	"context"

	"github.com/kailas-cloud/contentd/internal/domain"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return m.result, m.err
}

type mockSearcher struct {
	hits  []domain.SimilarityResult
	err   error
	lastK int
}

func (m *mockSearcher) Search(_ context.Context, _ []float32, topK int) ([]domain.SimilarityResult, error) {
	m.lastK = topK
	return m.hits, m.err
}

type mockResolver struct {
	blogs map[int64]*domain.Blog
	err   error
}

func (m *mockResolver) BlogByID(_ context.Context, id int64) (*domain.Blog, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.blogs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

type mockAnswerer struct {
	answer     string
	err        error
	lastPrompt string
	calls      int
}

func (m *mockAnswerer) Complete(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	return m.answer, m.err
}
