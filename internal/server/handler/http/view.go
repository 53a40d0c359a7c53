package http

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/web"
)

// Renderer executes a named page template.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// SessionManager persists the per-browser session between requests.
type SessionManager interface {
	// Save stores the session and sets the cookie.
	Save(ctx context.Context, w http.ResponseWriter, s *models.Session) error
	// Renew moves the session to a fresh id.
	Renew(ctx context.Context, s *models.Session) error
	// Destroy drops the session and clears the cookie.
	Destroy(ctx context.Context, w http.ResponseWriter, s *models.Session) error
}

// View bundles what every HTML handler needs to answer a request.
type View struct {
	Renderer Renderer
	Sessions SessionManager
	Log      *zap.Logger
}

func (v View) logger() *zap.Logger {
	if v.Log == nil {
		return zap.NewNop()
	}
	return v.Log
}

// render writes the page, or a bare 500 when the template fails. Every
// handled failure is shown on a page, so rendering always answers 200.
func (v View) render(w http.ResponseWriter, name string, page web.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.Renderer.Render(w, name, page); err != nil {
		v.logger().Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// persist saves the session; failures are logged and otherwise ignored so
// the user still gets a response.
func (v View) persist(w http.ResponseWriter, r *http.Request, sess *models.Session) {
	if err := v.Sessions.Save(r.Context(), w, sess); err != nil {
		v.logger().Error("failed to save session", zap.Error(err))
	}
}

// flashHome queues msg for the next page and redirects to the home page.
func (v View) flashHome(w http.ResponseWriter, r *http.Request, sess *models.Session, msg string) {
	sess.Flash = msg
	v.persist(w, r, sess)
	redirect(w, r, "/")
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
