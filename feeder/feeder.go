package feeder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Entry is one item parsed out of a feed document. Entries are
// transient: they live for a single pipeline run and are never stored.
type Entry struct {
	Title       string
	Link        string
	Published   time.Time
	Description string
	Content     string
}

// feedUserAgent is a browser-like User-Agent. Some feeds behind
// CDN/security proxies block the default Go HTTP client UA.
const feedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// Fetcher downloads raw feed documents over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a Fetcher whose requests are bounded by timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a GET against url and returns the response body as
// text. Any transport error, timeout or non-200 status is returned as
// an error; callers treat it as "skip this source for this run".
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create feed request: %w", err)
	}
	req.Header.Set("User-Agent", feedUserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch feed: status code %d, url: %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ParseEntries parses a raw feed body into entries. Malformed input
// yields zero entries rather than an error; the tolerance of the
// underlying format library is passed through, so partially garbled
// feeds still yield whatever items are recoverable. If limit is
// greater than 0, at most limit entries are returned.
func ParseEntries(body string, limit int) []Entry {
	fp := gofeed.NewParser()
	feed, err := fp.Parse(strings.NewReader(body))
	if err != nil || feed == nil {
		return nil
	}

	var entries []Entry
	for _, item := range feed.Items {
		var published time.Time
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		entries = append(entries, Entry{
			Title:       item.Title,
			Link:        item.Link,
			Published:   published,
			Description: item.Description,
			Content:     item.Content,
		})
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}
