package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/models"
)

// DefaultCookieName names the session cookie when none is configured.
const DefaultCookieName = "postboard_session"

// Options tune the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// Manager moves sessions between the Store and the browser cookie.
type Manager struct {
	store Store
	opts  Options
	log   *zap.Logger
	now   func() time.Time
}

// NewManager builds a Manager. Zero options fall back to DefaultCookieName
// and a 24h lifetime.
func NewManager(store Store, opts Options, log *zap.Logger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{store: store, opts: opts, log: log, now: time.Now}
}

// Load returns the session named by the request cookie. A missing, expired
// or unreadable session yields a fresh anonymous one; Load never returns nil.
func (m *Manager) Load(r *http.Request) *models.Session {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return m.fresh()
	}
	s, err := m.store.Get(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.log.Warn("failed to load session", zap.Error(err))
		}
		return m.fresh()
	}
	if s.CategoryFilter == "" {
		s.CategoryFilter = models.NoFilter
	}
	return s
}

// Save extends the session lifetime, persists it and writes the cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *models.Session) error {
	s.ExpiresAt = m.now().Add(m.opts.TTL)
	token, err := m.store.Save(ctx, s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  s.ExpiresAt,
	})
	return nil
}

// Renew moves the session to a new id and forgets the old one. Call it when
// the privilege level changes, e.g. on sign-in.
func (m *Manager) Renew(ctx context.Context, s *models.Session) error {
	old := s.ID
	s.ID = uuid.NewString()
	if old == "" {
		return nil
	}
	return m.store.Delete(ctx, old)
}

// Destroy removes the session and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *models.Session) error {
	err := m.store.Delete(ctx, s.ID)
	s.SignOut()
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
	return err
}

func (m *Manager) fresh() *models.Session {
	return &models.Session{
		ID:             uuid.NewString(),
		CategoryFilter: models.NoFilter,
	}
}
