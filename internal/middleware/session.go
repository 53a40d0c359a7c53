// Package middleware provides HTTP middlewares for sessions, logging and metrics.
package middleware

import (
	"context"
	"net/http"

	"github.com/postboard/postboard/internal/models"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionLoader resolves the browser's session from a request.
type SessionLoader interface {
	Load(r *http.Request) *models.Session
}

// WithSession loads the caller's session and stores it in the request
// context, so handlers receive it explicitly instead of sharing any
// process-wide state.
func WithSession(loader SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := loader.Load(r)
			next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
		})
	}
}

// ContextWithSession returns a copy of ctx carrying sess.
func ContextWithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext extracts the session stored by WithSession.
// It returns an anonymous session when none is present.
func SessionFromContext(ctx context.Context) *models.Session {
	if s, ok := ctx.Value(sessionKey).(*models.Session); ok && s != nil {
		return s
	}
	return &models.Session{CategoryFilter: models.NoFilter}
}
