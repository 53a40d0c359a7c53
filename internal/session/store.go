// Package session keeps per-browser session state behind a cookie.
// Sessions live in a Store: in process memory, in Redis, or inside a
// signed JWT cookie.
package session

import (
	"context"
	"errors"

	"github.com/postboard/postboard/internal/models"
)

// ErrNoSession is returned by Store.Get for unknown, expired or tampered tokens.
var ErrNoSession = errors.New("session not found")

// Store persists sessions.
type Store interface {
	// Get resolves a cookie token into a session.
	Get(ctx context.Context, token string) (*models.Session, error)
	// Save persists the session and returns the token to put in the cookie.
	Save(ctx context.Context, s *models.Session) (string, error)
	// Delete removes the session with the given id.
	Delete(ctx context.Context, id string) error
}
