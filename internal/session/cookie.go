package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/postboard/postboard/internal/models"
)

// CookieStore keeps the whole session in an HS256-signed JWT stored in the
// cookie. The only server-side state is the set of revoked session ids, kept
// until every token carrying them has expired.
type CookieStore struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

type sessionClaims struct {
	UserID         string `json:"uid,omitempty"`
	DisplayName    string `json:"name,omitempty"`
	CategoryFilter string `json:"filter,omitempty"`
	Flash          string `json:"flash,omitempty"`
	jwt.RegisteredClaims
}

// NewCookieStore returns a CookieStore signing with secret. maxAge is the
// longest lifetime of an issued token (the session TTL); a non-positive
// value falls back to 24h.
func NewCookieStore(secret string, maxAge time.Duration) (*CookieStore, error) {
	if len(secret) < 16 {
		return nil, errors.New("cookie session secret must be at least 16 bytes")
	}
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &CookieStore{
		secret:  []byte(secret),
		maxAge:  maxAge,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}, nil
}

func (c *CookieStore) Get(ctx context.Context, token string) (*models.Session, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, ErrNoSession
	}
	if c.isRevoked(claims.ID) {
		return nil, ErrNoSession
	}

	return &models.Session{
		ID:             claims.ID,
		UserID:         claims.UserID,
		DisplayName:    claims.DisplayName,
		CategoryFilter: claims.CategoryFilter,
		Flash:          claims.Flash,
		ExpiresAt:      claims.ExpiresAt.Time,
	}, nil
}

func (c *CookieStore) Save(ctx context.Context, s *models.Session) (string, error) {
	claims := sessionClaims{
		UserID:         s.UserID,
		DisplayName:    s.DisplayName,
		CategoryFilter: s.CategoryFilter,
		Flash:          s.Flash,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

// Delete revokes every token issued for the session id, so a copied cookie
// stops working after sign-out. Revocations live in process memory.
func (c *CookieStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	c.mu.Lock()
	c.revoked[id] = c.now().Add(c.maxAge)
	c.mu.Unlock()
	return nil
}

// DeleteExpired forgets revocations whose tokens can no longer be valid.
func (c *CookieStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed int64
	for id, until := range c.revoked {
		if !until.After(now) {
			delete(c.revoked, id)
			removed++
		}
	}
	return removed, nil
}

func (c *CookieStore) isRevoked(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.revoked[id]
	return ok
}
