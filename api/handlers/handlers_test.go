package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/api/handlers"
	"newswire/models"
	"newswire/repositories"
	"newswire/services"
)

type memFeedStore struct {
	feeds map[string]models.Feed
}

func (m *memFeedStore) List(ctx context.Context, activeOnly bool, limit int) ([]models.Feed, error) {
	var out []models.Feed
	for _, f := range m.feeds {
		out = append(out, f)
	}
	return out, nil
}

func (m *memFeedStore) Insert(ctx context.Context, f *models.Feed) error {
	if _, ok := m.feeds[f.Source]; ok {
		return repositories.ErrDuplicate
	}
	m.feeds[f.Source] = *f
	return nil
}

func (m *memFeedStore) UpdateBySource(ctx context.Context, source string, f *models.Feed) error {
	if _, ok := m.feeds[source]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.feeds, source)
	m.feeds[f.Source] = *f
	return nil
}

func (m *memFeedStore) DeleteBySource(ctx context.Context, source string) error {
	if _, ok := m.feeds[source]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.feeds, source)
	return nil
}

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

type stubRunner struct {
	updated int
	retried int
}

func (s *stubRunner) UpdateFeeds(ctx context.Context) error { s.updated++; return nil }
func (s *stubRunner) RetryFailed(ctx context.Context) error { s.retried++; return nil }

func newTestRouter(feedStore *memFeedStore, articleStore *memArticleStore, runner *stubRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	feedSvc := services.NewFeedService(feedStore)
	articleSvc := services.NewArticleService(articleStore)

	r.GET("/feeds", handlers.ListFeedsHandler(feedSvc))
	r.POST("/feeds", handlers.CreateFeedHandler(feedSvc))
	r.PUT("/feeds/:source", handlers.UpdateFeedHandler(feedSvc))
	r.DELETE("/feeds/:source", handlers.DeleteFeedHandler(feedSvc))
	r.POST("/update-feeds", handlers.UpdateFeedsHandler(runner))
	r.POST("/retry-failed", handlers.RetryFailedHandler(runner))
	r.GET("/articles", handlers.ListArticlesHandler(articleSvc))
	r.GET("/search", handlers.SearchArticlesHandler(articleSvc))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateFeed(t *testing.T) {
	store := &memFeedStore{feeds: map[string]models.Feed{}}
	r := newTestRouter(store, &memArticleStore{}, &stubRunner{})

	w := do(r, http.MethodPost, "/feeds", `{"source":"TechNews","url":"https://x/feed.xml","active":true}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, store.feeds, "TechNews")
}

func TestCreateFeedDuplicateIs409(t *testing.T) {
	store := &memFeedStore{feeds: map[string]models.Feed{
		"TechNews": {Source: "TechNews", URL: "https://x/feed.xml"},
	}}
	r := newTestRouter(store, &memArticleStore{}, &stubRunner{})

	w := do(r, http.MethodPost, "/feeds", `{"source":"TechNews","url":"https://y/feed.xml"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateFeedRejectsMissingFields(t *testing.T) {
	r := newTestRouter(&memFeedStore{feeds: map[string]models.Feed{}}, &memArticleStore{}, &stubRunner{})

	w := do(r, http.MethodPost, "/feeds", `{"source":"TechNews"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateFeedUnknownSourceIs404(t *testing.T) {
	r := newTestRouter(&memFeedStore{feeds: map[string]models.Feed{}}, &memArticleStore{}, &stubRunner{})

	w := do(r, http.MethodPut, "/feeds/missing", `{"source":"missing","url":"https://x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteFeedUnknownSourceIs404(t *testing.T) {
	r := newTestRouter(&memFeedStore{feeds: map[string]models.Feed{}}, &memArticleStore{}, &stubRunner{})

	w := do(r, http.MethodDelete, "/feeds/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTriggerEndpoints(t *testing.T) {
	runner := &stubRunner{}
	r := newTestRouter(&memFeedStore{feeds: map[string]models.Feed{}}, &memArticleStore{}, runner)

	w := do(r, http.MethodPost, "/update-feeds", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.updated)

	w = do(r, http.MethodPost, "/retry-failed", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.retried)
}

func TestListArticlesRoundTrip(t *testing.T) {
	store := &memArticleStore{articles: []models.Article{
		{
			Source:    "TechNews",
			Title:     "Hi World",
			Link:      "https://x/1",
			Summary:   "Two sentences. Intact.",
			Content:   "cleaned content",
			Embedding: []float32{0.5},
		},
	}}
	r := newTestRouter(&memFeedStore{feeds: map[string]models.Feed{}}, store, &stubRunner{})

	w := do(r, http.MethodGet, "/articles?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"summary":"Two sentences. Intact."`)
	assert.Contains(t, w.Body.String(), `"content":"cleaned content"`)
}

func TestSearchQueryLengthBoundary(t *testing.T) {
	store := &memArticleStore{articles: []models.Article{
		{Title: "abc in the title", Link: "https://x/1", Summary: "s"},
	}}
	r := newTestRouter(&memFeedStore{feeds: map[string]models.Feed{}}, store, &stubRunner{})

	w := do(r, http.MethodGet, "/search?q=ab", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/search?q=abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "abc in the title")
}
