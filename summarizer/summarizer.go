package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"newswire/logger"
)

const SYSTEM_INSTRUCTION = `You are a helpful assistant that summarizes news.`

// CompletionClient abstracts the external completion service so the
// retry policy can be tested without network access.
type CompletionClient interface {
	Complete(ctx context.Context, content string) (string, error)
}

// GeminiCompletion calls the Gemini API for summaries.
type GeminiCompletion struct {
	client *genai.Client
	model  string
}

func NewGeminiCompletion(client *genai.Client, model string) *GeminiCompletion {
	return &GeminiCompletion{client: client, model: model}
}

func (g *GeminiCompletion) Complete(ctx context.Context, content string) (string, error) {
	prompt := fmt.Sprintf("Summarize the following news content in two sentences:\n\n%s", content)

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION}}},
			Temperature:       genai.Ptr[float32](0.3),
		},
	)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// IsRateLimited reports whether err is a rate-limit response from the
// external service, checked on the structured API error code rather
// than the error text.
func IsRateLimited(err error) bool {
	var apiErr genai.APIError
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests
}

// Config bounds the retry policy. Zero values fall back to the
// defaults used by NewSummarizer.
type Config struct {
	Attempts      int
	Timeout       time.Duration
	RateLimitWait time.Duration
	Backoff       time.Duration
}

// Summarizer wraps a CompletionClient with retry and backoff. A
// rate-limited attempt waits RateLimitWait before the next try, any
// other failure waits Backoff.
type Summarizer struct {
	client        CompletionClient
	attempts      int
	timeout       time.Duration
	rateLimitWait time.Duration
	backoff       time.Duration
}

func NewSummarizer(client CompletionClient, cfg Config) *Summarizer {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimitWait <= 0 {
		cfg.RateLimitWait = 20 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 2 * time.Second
	}
	return &Summarizer{
		client:        client,
		attempts:      cfg.Attempts,
		timeout:       cfg.Timeout,
		rateLimitWait: cfg.RateLimitWait,
		backoff:       cfg.Backoff,
	}
}

// Summarize returns a short summary of content, or an empty string
// once the retry budget is exhausted. An empty result is a definitive
// failure for this run, not a zero-length legitimate summary.
func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		text, err := s.client.Complete(attemptCtx, content)
		cancel()
		if err == nil {
			return strings.TrimSpace(text), nil
		}
		lastErr = err

		if attempt == s.attempts {
			break
		}
		if IsRateLimited(err) {
			logger.Log.Warnf("rate limited, retrying in %s", s.rateLimitWait)
			if err := sleep(ctx, s.rateLimitWait); err != nil {
				return "", err
			}
		} else {
			logger.Log.Errorf("summary failed (attempt %d): %v", attempt, err)
			if err := sleep(ctx, s.backoff); err != nil {
				return "", err
			}
		}
	}
	return "", lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
