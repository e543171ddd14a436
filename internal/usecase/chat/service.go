// Package chat implements the retrieval-augmented answer pipeline: embed the
// question, search the vector index, resolve hits back to blogs, and
// synthesize a grounded answer. The pipeline never returns a transport error
// for downstream failures; it degrades to a fixed apology answer instead.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
	"github.com/kailas-cloud/contentd/internal/htmltext"
	"github.com/kailas-cloud/contentd/internal/metrics"
)

// Canned answers returned without consulting the language model.
const (
	answerBlankQuery = "Please enter a question so I can help you."
	answerNoContent  = "I could not find any content related to your question. " +
		"Please try asking in a different way."
	answerApology = "Sorry, something went wrong while answering your question. " +
		"Please try again in a moment."
)

const (
	summaryExcerptLen = 150
	detailExcerptLen  = 200
	detailDigestTop   = 3
)

// BlogSummary is the per-result payload returned to the conversational surface.
type BlogSummary struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
}

// Answer is the summary-mode response. Always well formed, even on failure.
type Answer struct {
	Query   string        `json:"query"`
	Answer  string        `json:"answer"`
	Related []BlogSummary `json:"relatedResults"`
}

// ScoredResult annotates a resolved blog with its raw similarity score and
// the matched index text.
type ScoredResult struct {
	BlogSummary
	Score       float64 `json:"score"`
	MatchedText string  `json:"matchedText"`
}

// DetailedAnswer is the detailed-mode response.
type DetailedAnswer struct {
	Query   string         `json:"query"`
	Answer  string         `json:"answer"`
	Results []ScoredResult `json:"results"`
}

// Stats is a snapshot of the pipeline's effective configuration.
type Stats struct {
	DefaultMaxResults int     `json:"defaultMaxResults"`
	MaxResultsCap     int     `json:"maxResultsCap"`
	MaxQueryChars     int     `json:"maxQueryChars"`
	SearchTimeoutSec  float64 `json:"searchTimeoutSec"`
}

// Options bounds the pipeline's inputs and external calls.
type Options struct {
	DefaultMaxResults int
	MaxResultsCap     int
	MaxQueryChars     int
	SearchTimeout     time.Duration
}

// Service orchestrates the query path.
type Service struct {
	embedder Embedder
	searcher Searcher
	blogs    BlogResolver
	answerer Answerer
	opts     Options
	logger   *zap.Logger
}

// New creates the pipeline service.
func New(
	embedder Embedder,
	searcher Searcher,
	blogs BlogResolver,
	answerer Answerer,
	opts Options,
	logger *zap.Logger,
) *Service {
	if opts.DefaultMaxResults <= 0 {
		opts.DefaultMaxResults = 5
	}
	if opts.MaxResultsCap <= 0 {
		opts.MaxResultsCap = 20
	}
	return &Service{
		embedder: embedder,
		searcher: searcher,
		blogs:    blogs,
		answerer: answerer,
		opts:     opts,
		logger:   logger,
	}
}

// Ask answers a visitor question in summary mode. Downstream failures yield
// the canned apology with a nil error; only invalid input returns an error,
// paired with a canned answer the transport may still render.
func (s *Service) Ask(ctx context.Context, query string, maxResults int) (*Answer, error) {
	query = strings.TrimSpace(query)
	if err := s.validateQuery(query); err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("summary", "invalid").Inc()
		return &Answer{Query: query, Answer: answerBlankQuery, Related: []BlogSummary{}}, err
	}

	blogs, _, err := s.retrieve(ctx, query, maxResults)
	if err != nil {
		s.logger.Error("Retrieval failed, degrading answer", zap.String("query", query), zap.Error(err))
		metrics.ChatRequestsTotal.WithLabelValues("summary", "degraded").Inc()
		return &Answer{Query: query, Answer: answerApology, Related: []BlogSummary{}}, nil
	}

	metrics.ChatRetrievedResults.Observe(float64(len(blogs)))

	if len(blogs) == 0 {
		metrics.ChatRequestsTotal.WithLabelValues("summary", "empty").Inc()
		return &Answer{Query: query, Answer: answerNoContent, Related: []BlogSummary{}}, nil
	}

	generated, err := s.answerer.Complete(ctx, buildPrompt(query, blogs))
	if err != nil {
		s.logger.Error("Answer generation failed, degrading answer",
			zap.String("query", query), zap.Error(err))
		metrics.ChatRequestsTotal.WithLabelValues("summary", "degraded").Inc()
		return &Answer{Query: query, Answer: answerApology, Related: []BlogSummary{}}, nil
	}

	related := make([]BlogSummary, 0, len(blogs))
	for _, b := range blogs {
		related = append(related, summarize(b, summaryExcerptLen))
	}

	metrics.ChatRequestsTotal.WithLabelValues("summary", "answered").Inc()
	return &Answer{Query: query, Answer: strings.TrimSpace(generated), Related: related}, nil
}

// AskDetailed answers in detailed mode: the same retrieval, but each result
// carries its similarity score and matched index text, and the answer is a
// locally synthesized digest of the top excerpts rather than a model call.
func (s *Service) AskDetailed(ctx context.Context, query string, maxResults int) (*DetailedAnswer, error) {
	query = strings.TrimSpace(query)
	if err := s.validateQuery(query); err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("detailed", "invalid").Inc()
		return &DetailedAnswer{Query: query, Answer: answerBlankQuery, Results: []ScoredResult{}}, err
	}

	blogs, hits, err := s.retrieve(ctx, query, maxResults)
	if err != nil {
		s.logger.Error("Retrieval failed, degrading answer", zap.String("query", query), zap.Error(err))
		metrics.ChatRequestsTotal.WithLabelValues("detailed", "degraded").Inc()
		return &DetailedAnswer{Query: query, Answer: answerApology, Results: []ScoredResult{}}, nil
	}

	metrics.ChatRetrievedResults.Observe(float64(len(blogs)))

	if len(blogs) == 0 {
		metrics.ChatRequestsTotal.WithLabelValues("detailed", "empty").Inc()
		return &DetailedAnswer{Query: query, Answer: answerNoContent, Results: []ScoredResult{}}, nil
	}

	results := make([]ScoredResult, 0, len(blogs))
	for i, b := range blogs {
		results = append(results, ScoredResult{
			BlogSummary: summarize(b, summaryExcerptLen),
			Score:       hits[i].Score,
			MatchedText: hits[i].Text,
		})
	}

	metrics.ChatRequestsTotal.WithLabelValues("detailed", "answered").Inc()
	return &DetailedAnswer{Query: query, Answer: digestAnswer(blogs), Results: results}, nil
}

// Stats reports the pipeline's effective limits.
func (s *Service) Stats() Stats {
	return Stats{
		DefaultMaxResults: s.opts.DefaultMaxResults,
		MaxResultsCap:     s.opts.MaxResultsCap,
		MaxQueryChars:     s.opts.MaxQueryChars,
		SearchTimeoutSec:  s.opts.SearchTimeout.Seconds(),
	}
}

func (s *Service) validateQuery(query string) error {
	if query == "" {
		return fmt.Errorf("query is blank: %w", domain.ErrInvalidInput)
	}
	if s.opts.MaxQueryChars > 0 && len(query) > s.opts.MaxQueryChars {
		return fmt.Errorf("query exceeds %d characters: %w", s.opts.MaxQueryChars, domain.ErrInvalidInput)
	}
	return nil
}

// retrieve runs the shared retrieval stage: embed, search, resolve. Stale
// index entries whose blog no longer exists are dropped; the returned slices
// are parallel and preserve descending-score order.
func (s *Service) retrieve(
	ctx context.Context, query string, maxResults int,
) ([]*domain.Blog, []domain.SimilarityResult, error) {
	if maxResults <= 0 {
		maxResults = s.opts.DefaultMaxResults
	}
	if maxResults > s.opts.MaxResultsCap {
		maxResults = s.opts.MaxResultsCap
	}

	if s.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SearchTimeout)
		defer cancel()
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.searcher.Search(ctx, embedding.Embedding, maxResults)
	if err != nil {
		return nil, nil, fmt.Errorf("search index: %w", err)
	}

	var (
		blogs []*domain.Blog
		kept  []domain.SimilarityResult
	)
	for _, hit := range hits {
		id, convErr := strconv.ParseInt(hit.Key, 10, 64)
		if convErr != nil {
			s.logger.Warn("Dropping index entry with malformed key", zap.String("key", hit.Key))
			continue
		}
		blog, resolveErr := s.blogs.BlogByID(ctx, id)
		if errors.Is(resolveErr, domain.ErrNotFound) {
			s.logger.Debug("Dropping stale index entry", zap.Int64("blog_id", id))
			continue
		}
		if resolveErr != nil {
			return nil, nil, fmt.Errorf("resolve blog %d: %w", id, resolveErr)
		}
		blogs = append(blogs, blog)
		kept = append(kept, hit)
	}
	return blogs, kept, nil
}

// buildPrompt assembles the grounding context block and instruction prompt
// for the language model.
func buildPrompt(query string, blogs []*domain.Blog) string {
	var b strings.Builder
	b.WriteString("You are an assistant for an interior design company's website. ")
	b.WriteString("Answer the visitor's question using only the reference articles below. ")
	b.WriteString("If the articles do not contain the answer, say so briefly.\n\n")
	b.WriteString("Reference articles:\n")
	for i, blog := range blogs {
		b.WriteString(fmt.Sprintf("[%d] %s\n%s\n\n", i+1, blog.Title, htmltext.Clean(blog.Content)))
	}
	b.WriteString("Question: ")
	b.WriteString(query)
	return b.String()
}

// digestAnswer builds the detailed-mode answer locally from the top excerpts.
func digestAnswer(blogs []*domain.Blog) string {
	n := len(blogs)
	if n > detailDigestTop {
		n = detailDigestTop
	}
	var b strings.Builder
	b.WriteString("Here is what I found in our published articles:\n")
	for _, blog := range blogs[:n] {
		b.WriteString(fmt.Sprintf("- %s: %s\n", blog.Title, excerpt(blog.Content, detailExcerptLen)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func summarize(b *domain.Blog, limit int) BlogSummary {
	return BlogSummary{
		ID:      b.ID,
		Title:   b.Title,
		Slug:    b.Slug,
		Excerpt: excerpt(b.Content, limit),
	}
}

// excerpt strips markup and truncates to limit runes.
func excerpt(content string, limit int) string {
	text := htmltext.Clean(content)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}
