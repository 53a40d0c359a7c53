package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/postboard/postboard/internal/models"
)

type stubLister struct {
	posts  []models.BlogPost
	err    error
	filter string
}

func (s *stubLister) ListPosts(ctx context.Context, filter string) ([]models.BlogPost, error) {
	s.filter = filter
	return s.posts, s.err
}

func TestFeedHandler_RSS(t *testing.T) {
	lister := &stubLister{posts: []models.BlogPost{
		{ID: 1, CreatorName: "Alice A", Title: "First", Body: "one", DateCreated: "3/14/2024, 9:26:53 AM", Category: "Tech"},
		{ID: 2, CreatorName: "Bob", Title: "Second", Body: "two", DateCreated: "garbage", Category: "Tech"},
	}}
	h := &FeedHandler{Posts: lister, Title: "Postboard", Link: "http://example.com/"}
	rec := httptest.NewRecorder()

	h.RSS(rec, httptest.NewRequest(http.MethodGet, "/feed?category=Tech", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Tech", lister.filter)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Postboard</title>")
	assert.Contains(t, body, "<title>First</title>")
	assert.Contains(t, body, "http://example.com/#post-2")
}

func TestFeedHandler_RSS_Error(t *testing.T) {
	h := &FeedHandler{Posts: &stubLister{err: errors.New("db down")}, Title: "Postboard"}
	rec := httptest.NewRecorder()

	h.RSS(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
