// Package indexing keeps the vector index synchronized with blog lifecycle
// events. Every operation returns its error so the content CRUD layer can
// decide to log and proceed; the index is a derived cache, never the system
// of record.
package indexing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
	"github.com/kailas-cloud/contentd/internal/htmltext"
	"github.com/kailas-cloud/contentd/internal/metrics"
)

// Coordinator projects blogs into the vector index.
type Coordinator struct {
	embedder Embedder
	index    Index
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates an indexing coordinator. timeout bounds each index write
// end to end (embed plus store); <= 0 means no bound.
func New(embedder Embedder, index Index, timeout time.Duration, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		embedder: embedder,
		index:    index,
		timeout:  timeout,
		logger:   logger,
	}
}

// BlogCreated embeds the blog's searchable text and inserts it into the index.
func (c *Coordinator) BlogCreated(ctx context.Context, b *domain.Blog) error {
	return c.write(ctx, "create", b)
}

// BlogUpdated re-embeds the blog and replaces its index entry. The store's
// hash write overwrites both text and vector under the same key, so the
// replace has no window where the key is missing.
func (c *Coordinator) BlogUpdated(ctx context.Context, b *domain.Blog) error {
	return c.write(ctx, "update", b)
}

// BlogDeleted removes the blog from the index. A key that was never indexed
// is not an error.
func (c *Coordinator) BlogDeleted(ctx context.Context, id int64) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.index.DeleteByKey(ctx, blogKey(id)); err != nil {
		metrics.IndexWritesTotal.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("delete blog %d from index: %w", id, err)
	}
	metrics.IndexWritesTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

func (c *Coordinator) write(ctx context.Context, op string, b *domain.Blog) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	text := IndexableText(b)
	if text == "" {
		// Nothing searchable; make sure a previously indexed version is gone.
		if err := c.index.DeleteByKey(ctx, blogKey(b.ID)); err != nil {
			metrics.IndexWritesTotal.WithLabelValues(op, "error").Inc()
			return fmt.Errorf("remove empty blog %d from index: %w", b.ID, err)
		}
		metrics.IndexWritesTotal.WithLabelValues(op, "ok").Inc()
		return nil
	}

	result, err := c.embedder.Embed(ctx, text)
	if err != nil {
		metrics.IndexWritesTotal.WithLabelValues(op, "error").Inc()
		return fmt.Errorf("embed blog %d: %w", b.ID, err)
	}

	c.logger.Debug("Indexing blog",
		zap.Int64("blog_id", b.ID),
		zap.String("op", op),
		zap.Int("text_len", len(text)),
		zap.Int("tokens", result.TotalTokens),
	)

	doc := domain.IndexedDocument{
		Key:    blogKey(b.ID),
		Text:   text,
		Vector: result.Embedding,
	}
	if err := c.index.Upsert(ctx, doc); err != nil {
		metrics.IndexWritesTotal.WithLabelValues(op, "error").Inc()
		return fmt.Errorf("upsert blog %d into index: %w", b.ID, err)
	}

	metrics.IndexWritesTotal.WithLabelValues(op, "ok").Inc()
	return nil
}

func (c *Coordinator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// IndexableText builds the text projected into the index: the title and the
// markup-stripped body, whitespace-normalized.
func IndexableText(b *domain.Blog) string {
	body := htmltext.Clean(b.Content)
	return strings.TrimSpace(strings.TrimSpace(b.Title) + " " + body)
}

func blogKey(id int64) string {
	return strconv.FormatInt(id, 10)
}
