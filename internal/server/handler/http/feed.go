package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/models"
)

// PostLister returns posts for a category filter.
type PostLister interface {
	ListPosts(ctx context.Context, filter string) ([]models.BlogPost, error)
}

// FeedHandler publishes every post as an RSS 2.0 feed.
type FeedHandler struct {
	Posts PostLister
	// Title and Link describe the site in the channel element.
	Title string
	Link  string
	Log   *zap.Logger
}

// RSS handles GET /feed. An optional ?category= narrows the items.
func (h *FeedHandler) RSS(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.ListPosts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		if h.Log != nil {
			h.Log.Error("failed to list posts for feed", zap.Error(err))
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	link := strings.TrimRight(h.Link, "/")
	feed := &feeds.Feed{
		Title:       h.Title,
		Link:        &feeds.Link{Href: link + "/"},
		Description: "Latest posts on " + h.Title,
		Created:     time.Now(),
	}
	for i := len(posts) - 1; i >= 0; i-- {
		p := posts[i]
		created, err := time.ParseInLocation(models.DateLayout, p.DateCreated, time.Local)
		if err != nil {
			created = time.Time{}
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          strconv.FormatInt(p.ID, 10),
			Title:       p.Title,
			Link:        &feeds.Link{Href: link + "/#post-" + strconv.FormatInt(p.ID, 10)},
			Author:      &feeds.Author{Name: p.CreatorName},
			Description: p.Body,
			Created:     created,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write([]byte(rss))
}
