package summarizer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"newswire/summarizer"
)

// scriptedClient returns the queued errors in order, then succeeds.
type scriptedClient struct {
	errs   []error
	result string
	calls  int
}

func (c *scriptedClient) Complete(ctx context.Context, content string) (string, error) {
	c.calls++
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		return "", err
	}
	return c.result, nil
}

func fastConfig(attempts int) summarizer.Config {
	return summarizer.Config{
		Attempts:      attempts,
		Timeout:       time.Second,
		RateLimitWait: time.Millisecond,
		Backoff:       time.Millisecond,
	}
}

func rateLimitErr() error {
	return genai.APIError{Code: 429, Message: "resource exhausted"}
}

func TestSummarizeFirstAttemptSucceeds(t *testing.T) {
	client := &scriptedClient{result: "Two sentences. About news."}
	s := summarizer.NewSummarizer(client, fastConfig(3))

	out, err := s.Summarize(context.Background(), "content")
	require.NoError(t, err)
	assert.Equal(t, "Two sentences. About news.", out)
	assert.Equal(t, 1, client.calls)
}

func TestSummarizeRecoversAfterRateLimits(t *testing.T) {
	// Three consecutive rate limits, success on the fourth call.
	client := &scriptedClient{
		errs:   []error{rateLimitErr(), rateLimitErr(), rateLimitErr()},
		result: "Recovered summary.",
	}
	s := summarizer.NewSummarizer(client, fastConfig(4))

	out, err := s.Summarize(context.Background(), "content")
	require.NoError(t, err)
	assert.Equal(t, "Recovered summary.", out)
	assert.Equal(t, 4, client.calls)
}

func TestSummarizeExhaustsRetryBudget(t *testing.T) {
	boom := errors.New("upstream unavailable")
	client := &scriptedClient{errs: []error{boom, boom, boom}}
	s := summarizer.NewSummarizer(client, fastConfig(3))

	out, err := s.Summarize(context.Background(), "content")
	assert.Empty(t, out)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, client.calls)
}

func TestSummarizeStopsOnContextCancel(t *testing.T) {
	client := &scriptedClient{errs: []error{rateLimitErr(), rateLimitErr()}}
	s := summarizer.NewSummarizer(client, summarizer.Config{
		Attempts:      3,
		Timeout:       time.Second,
		RateLimitWait: time.Minute,
		Backoff:       time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	out, err := s.Summarize(ctx, "content")
	assert.Empty(t, out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, summarizer.IsRateLimited(rateLimitErr()))
	assert.False(t, summarizer.IsRateLimited(genai.APIError{Code: 500, Message: "internal"}))
	assert.False(t, summarizer.IsRateLimited(errors.New("429 mentioned in text only")))
	assert.False(t, summarizer.IsRateLimited(nil))
}
