package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"newswire/feeder"
	"newswire/logger"
	"newswire/models"
	"newswire/parser"
	"newswire/repositories"
)

// Store contracts are kept minimal so the pipeline can be exercised
// against in-memory fakes; the mongo repositories satisfy them.

type FeedStore interface {
	List(ctx context.Context, activeOnly bool, limit int) ([]models.Feed, error)
}

type ArticleStore interface {
	ExistsByLink(ctx context.Context, link string) (bool, error)
	Insert(ctx context.Context, a *models.Article) error
}

type FailureStore interface {
	Insert(ctx context.Context, fs *models.FailedSummary) error
	List(ctx context.Context, limit int) ([]models.FailedSummary, error)
	Delete(ctx context.Context, fs *models.FailedSummary) error
}

type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// EntryResult is the terminal state of processing one feed entry.
type EntryResult int

const (
	Inserted EntryResult = iota
	SkippedDuplicate
	QueuedForRetry
)

// Pipeline drives the feed-update run: fetch each active source,
// parse its entries and process them concurrently.
type Pipeline struct {
	feeds      FeedStore
	articles   ArticleStore
	failed     FailureStore
	fetcher    Fetcher
	summarizer Summarizer
	embedder   Embedder

	feedBatchSize  int
	retryBatchSize int
}

type Options struct {
	FeedBatchSize  int
	RetryBatchSize int
}

func New(feeds FeedStore, articles ArticleStore, failed FailureStore, fetcher Fetcher, sum Summarizer, emb Embedder, opts Options) *Pipeline {
	if opts.FeedBatchSize <= 0 {
		opts.FeedBatchSize = 100
	}
	if opts.RetryBatchSize <= 0 {
		opts.RetryBatchSize = 50
	}
	return &Pipeline{
		feeds:          feeds,
		articles:       articles,
		failed:         failed,
		fetcher:        fetcher,
		summarizer:     sum,
		embedder:       emb,
		feedBatchSize:  opts.FeedBatchSize,
		retryBatchSize: opts.RetryBatchSize,
	}
}

// UpdateFeeds runs one full pass over the active feed sources.
// Sources are processed sequentially; entries within a source run
// concurrently and are joined before the next source. A fetch failure
// skips the source for this run. The pass always completes: per-entry
// failures are logged, never propagated.
func (p *Pipeline) UpdateFeeds(ctx context.Context) error {
	feeds, err := p.feeds.List(ctx, true, p.feedBatchSize)
	if err != nil {
		return err
	}

	for _, feed := range feeds {
		body, err := p.fetcher.Fetch(ctx, feed.URL)
		if err != nil {
			logger.Log.Errorf("failed to fetch %s: %v", feed.URL, err)
			continue
		}

		entries := feeder.ParseEntries(body, 0)

		var wg sync.WaitGroup
		for _, entry := range entries {
			wg.Add(1)
			go func(e feeder.Entry) {
				defer wg.Done()
				if _, err := p.ProcessEntry(ctx, feed.Source, e); err != nil {
					logger.Log.Errorf("failed to process entry %s: %v", e.Link, err)
				}
			}(entry)
		}
		wg.Wait()
	}
	return nil
}

// ProcessEntry takes one parsed entry through normalize → dedupe →
// summarize → embed → persist. Summarization exhaustion queues the
// entry for a later retry pass instead of inserting an article.
func (p *Pipeline) ProcessEntry(ctx context.Context, source string, e feeder.Entry) (EntryResult, error) {
	title := parser.CleanHTML(e.Title)
	link := e.Link
	published := e.Published
	if published.IsZero() {
		published = time.Now().UTC()
	}

	description := parser.CleanHTML(e.Description)
	content := parser.CleanHTML(e.Content)
	if content == "" {
		content = description
	}

	exists, err := p.articles.ExistsByLink(ctx, link)
	if err != nil {
		return 0, err
	}
	if exists {
		return SkippedDuplicate, nil
	}

	input := content
	if input == "" {
		input = description
	}
	if input == "" {
		input = title
	}

	summary, _ := p.summarizer.Summarize(ctx, input)
	if summary == "" {
		fs := &models.FailedSummary{
			Source:    source,
			Title:     title,
			Link:      link,
			Content:   content,
			Timestamp: time.Now().UTC(),
		}
		if err := p.failed.Insert(ctx, fs); err != nil {
			return 0, err
		}
		return QueuedForRetry, nil
	}

	embedding := p.embedder.Embed(ctx, summary)

	article := &models.Article{
		Source:     source,
		Title:      title,
		Link:       link,
		Published:  published,
		Summary:    summary,
		Embedding:  embedding,
		Content:    content,
		InsertedAt: time.Now().UTC(),
	}
	if err := p.articles.Insert(ctx, article); err != nil {
		// Two entries racing on the same link can both pass the
		// existence check; the unique index turns the loser into a
		// benign skip.
		if errors.Is(err, repositories.ErrDuplicate) {
			return SkippedDuplicate, nil
		}
		return 0, err
	}

	logger.InfoWithFields("inserted article", logger.Fields{
		"source": source,
		"title":  title,
		"link":   link,
	})
	return Inserted, nil
}

// RetryFailed re-attempts summarization for queued failures. A
// success migrates the record to the articles collection and deletes
// it from the failure queue; a continued failure leaves the record
// untouched for a future pass.
func (p *Pipeline) RetryFailed(ctx context.Context) error {
	failed, err := p.failed.List(ctx, p.retryBatchSize)
	if err != nil {
		return err
	}

	for _, doc := range failed {
		summary, _ := p.summarizer.Summarize(ctx, doc.Content)
		if summary == "" {
			continue
		}

		embedding := p.embedder.Embed(ctx, summary)
		article := &models.Article{
			Source:     doc.Source,
			Title:      doc.Title,
			Link:       doc.Link,
			Summary:    summary,
			Embedding:  embedding,
			Content:    doc.Content,
			InsertedAt: time.Now().UTC(),
		}
		if err := p.articles.Insert(ctx, article); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
			logger.Log.Errorf("failed to migrate retried summary %s: %v", doc.Link, err)
			continue
		}
		// A duplicate means the link already migrated; the failure
		// record is stale either way.
		if err := p.failed.Delete(ctx, &doc); err != nil {
			logger.Log.Errorf("failed to delete failed summary %s: %v", doc.Link, err)
			continue
		}
		logger.InfoWithFields("retried summary", logger.Fields{
			"source": doc.Source,
			"title":  doc.Title,
			"link":   doc.Link,
		})
	}
	return nil
}
