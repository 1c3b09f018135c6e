package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/models"
	"newswire/services"
)

type memArticleStore struct {
	articles []models.Article
}

func (m *memArticleStore) ListRecent(ctx context.Context, limit int) ([]models.Article, error) {
	if len(m.articles) > limit {
		return m.articles[:limit], nil
	}
	return m.articles, nil
}

func (m *memArticleStore) Search(ctx context.Context, q string) ([]models.Article, error) {
	var out []models.Article
	for _, a := range m.articles {
		if strings.Contains(strings.ToLower(a.Title), strings.ToLower(q)) ||
			strings.Contains(strings.ToLower(a.Summary), strings.ToLower(q)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func TestArticleServiceRecentDefaultLimit(t *testing.T) {
	store := &memArticleStore{}
	for i := 0; i < 15; i++ {
		store.articles = append(store.articles, models.Article{Link: "l", Summary: "s"})
	}
	svc := services.NewArticleService(store)

	out, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, out, 10)
}

func TestArticleServiceSearchMinLength(t *testing.T) {
	svc := services.NewArticleService(&memArticleStore{})

	_, err := svc.Search(context.Background(), "ab")
	assert.ErrorIs(t, err, services.ErrInvalid)

	_, err = svc.Search(context.Background(), "abc")
	assert.NoError(t, err)
}

func TestArticleServiceSearchRoundTrip(t *testing.T) {
	store := &memArticleStore{articles: []models.Article{
		{
			Source:  "TechNews",
			Title:   "Kubernetes release",
			Link:    "https://x/1",
			Summary: "A new release. It ships features.",
			Content: "full cleaned content",
		},
	}}
	svc := services.NewArticleService(store)

	out, err := svc.Search(context.Background(), "kubernetes")
	require.NoError(t, err)
	require.Len(t, out, 1)
	// Summary and content survive the storage boundary untouched.
	assert.Equal(t, "A new release. It ships features.", out[0].Summary)
	assert.Equal(t, "full cleaned content", out[0].Content)
}
