// Package http provides the HTML handlers and router of the Postboard site.
package http

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/metrics"
	"github.com/postboard/postboard/internal/middleware"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/web"
)

// AuthService defines the account operations required by the HTTP handlers.
type AuthService interface {
	// CreateAccount registers a new user. It returns
	// models.ErrDuplicateUsername when the id is taken.
	CreateAccount(ctx context.Context, id, password, displayName string) error
	// Authenticate verifies credentials and returns the user, or
	// models.ErrInvalidCredentials.
	Authenticate(ctx context.Context, id, password string) (*models.User, error)
}

// AuthHandler serves the sign-up, sign-in and account pages.
type AuthHandler struct {
	// AuthService performs the underlying account operations.
	AuthService AuthService
	View
}

// SignIn renders the sign-in form.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signin", web.NewPage(middleware.SessionFromContext(r.Context())))
}

// SignUp renders the sign-up form.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signup", web.NewPage(middleware.SessionFromContext(r.Context())))
}

// ManageAccount renders the account page.
func (h *AuthHandler) ManageAccount(w http.ResponseWriter, r *http.Request) {
	h.render(w, "account", web.NewPage(middleware.SessionFromContext(r.Context())))
}

// CreateAccount handles the sign-up form. On success the sign-in form is
// shown; a taken username re-renders the sign-up form with a message.
func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	page := web.NewPage(sess)

	err := h.AuthService.CreateAccount(r.Context(),
		r.PostFormValue("username"),
		r.PostFormValue("password"),
		r.PostFormValue("disp-name"),
	)
	switch {
	case err == nil:
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "ok").Inc()
		page.Flash = "Account created. Please sign in."
		h.render(w, "signin", page)
	case errors.Is(err, models.ErrDuplicateUsername):
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "duplicate").Inc()
		page.Error = "Username already taken"
		h.render(w, "signup", page)
	default:
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "error").Inc()
		h.logger().Error("failed to create account", zap.Error(err))
		page.Error = "Could not create the account, please try again"
		h.render(w, "signup", page)
	}
}

// AccessAccount handles the sign-in form. A successful sign-in gets a fresh
// session id and is redirected home.
func (h *AuthHandler) AccessAccount(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	user, err := h.AuthService.Authenticate(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		page := web.NewPage(sess)
		if errors.Is(err, models.ErrInvalidCredentials) {
			metrics.AuthAttemptsTotal.WithLabelValues("signin", "invalid").Inc()
			page.Error = "Incorrect username or password"
		} else {
			metrics.AuthAttemptsTotal.WithLabelValues("signin", "error").Inc()
			h.logger().Error("failed to authenticate", zap.Error(err))
			page.Error = "Sign in failed, please try again"
		}
		h.render(w, "signin", page)
		return
	}

	if err := h.Sessions.Renew(r.Context(), sess); err != nil {
		h.logger().Warn("failed to drop previous session", zap.Error(err))
	}
	sess.SignIn(user)
	h.persist(w, r, sess)
	metrics.AuthAttemptsTotal.WithLabelValues("signin", "ok").Inc()
	h.logger().Info("user signed in", zap.String("user", user.ID))
	redirect(w, r, "/")
}

// SignOut destroys the browser's session and redirects home.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if err := h.Sessions.Destroy(r.Context(), w, sess); err != nil {
		h.logger().Warn("failed to destroy session", zap.Error(err))
	}
	redirect(w, r, "/")
}
