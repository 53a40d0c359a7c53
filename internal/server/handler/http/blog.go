package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/metrics"
	"github.com/postboard/postboard/internal/middleware"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/web"
)

// BlogService defines the post operations required by the HTTP handlers.
type BlogService interface {
	ListPosts(ctx context.Context, filter string) ([]models.BlogPost, error)
	CreatePost(ctx context.Context, creatorName, creatorID, title, body, category string) (int64, error)
	EditPost(ctx context.Context, actorID string, id int64) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, actorID string, id int64, title, category, body string) error
	DeletePost(ctx context.Context, actorID string, id int64) error
	SetFilter(sess *models.Session, category string)
}

// BlogHandler serves the home page and the post forms.
type BlogHandler struct {
	BlogService BlogService
	View
}

// Index renders the posts matching the session's category filter.
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	page := web.NewPage(sess)
	if page.Flash != "" {
		h.persist(w, r, sess)
	}

	posts, err := h.BlogService.ListPosts(r.Context(), sess.CategoryFilter)
	if err != nil {
		h.logger().Error("failed to list posts", zap.Error(err))
		page.Error = "Could not load posts"
	}
	page.Posts = posts
	h.render(w, "index", page)
}

// Home redirects a POST on the root back to the listing.
func (h *BlogHandler) Home(w http.ResponseWriter, r *http.Request) {
	redirect(w, r, "/")
}

// Create publishes a new post for the signed-in user.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if !sess.SignedIn() {
		redirect(w, r, "/signin")
		return
	}

	id, err := h.BlogService.CreatePost(r.Context(),
		sess.DisplayName,
		sess.UserID,
		r.PostFormValue("title"),
		r.PostFormValue("content"),
		r.PostFormValue("category"),
	)
	if err != nil {
		h.writeFailed(w, r, sess, "create", err, "Could not publish the post")
		return
	}
	metrics.PostWritesTotal.WithLabelValues("create", "ok").Inc()
	h.logger().Debug("post created", zap.Int64("id", id), zap.String("user", sess.UserID))
	redirect(w, r, "/")
}

// Delete removes one of the user's posts.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	id, ok := h.postID(w, r, sess)
	if !ok {
		return
	}
	if err := h.BlogService.DeletePost(r.Context(), sess.UserID, id); err != nil {
		h.writeFailed(w, r, sess, "delete", err, "Could not delete the post")
		return
	}
	metrics.PostWritesTotal.WithLabelValues("delete", "ok").Inc()
	redirect(w, r, "/")
}

// Edit renders the edit form pre-filled with one of the user's posts.
func (h *BlogHandler) Edit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	id, ok := h.postID(w, r, sess)
	if !ok {
		return
	}
	post, err := h.BlogService.EditPost(r.Context(), sess.UserID, id)
	if err != nil {
		h.writeFailed(w, r, sess, "edit", err, "Could not open the post")
		return
	}
	page := web.NewPage(sess)
	page.Post = post
	h.render(w, "edit", page)
}

// Update saves the edit form.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	id, ok := h.postID(w, r, sess)
	if !ok {
		return
	}
	err := h.BlogService.UpdatePost(r.Context(), sess.UserID, id,
		r.PostFormValue("title"),
		r.PostFormValue("category"),
		r.PostFormValue("content"),
	)
	if err != nil {
		h.writeFailed(w, r, sess, "update", err, "Could not update the post")
		return
	}
	metrics.PostWritesTotal.WithLabelValues("update", "ok").Inc()
	redirect(w, r, "/")
}

// Filter stores the chosen category on the session.
func (h *BlogHandler) Filter(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	h.BlogService.SetFilter(sess, r.PostFormValue("category"))
	h.persist(w, r, sess)
	redirect(w, r, "/")
}

func (h *BlogHandler) postID(w http.ResponseWriter, r *http.Request, sess *models.Session) (int64, bool) {
	id, err := strconv.ParseInt(r.PostFormValue("blogId"), 10, 64)
	if err != nil {
		h.flashHome(w, r, sess, "Unknown post")
		return 0, false
	}
	return id, true
}

// writeFailed reports a failed post operation to the user on the home page.
func (h *BlogHandler) writeFailed(w http.ResponseWriter, r *http.Request, sess *models.Session, op string, err error, msg string) {
	switch {
	case errors.Is(err, models.ErrForbidden):
		metrics.PostWritesTotal.WithLabelValues(op, "forbidden").Inc()
		h.logger().Warn("post access denied", zap.String("op", op), zap.String("user", sess.UserID))
		h.flashHome(w, r, sess, "You can only change your own posts")
	case errors.Is(err, models.ErrNotFound):
		metrics.PostWritesTotal.WithLabelValues(op, "error").Inc()
		h.flashHome(w, r, sess, "That post no longer exists")
	default:
		metrics.PostWritesTotal.WithLabelValues(op, "error").Inc()
		h.logger().Error("post operation failed", zap.String("op", op), zap.Error(err))
		h.flashHome(w, r, sess, msg)
	}
}
