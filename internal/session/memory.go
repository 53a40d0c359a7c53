package session

import (
	"context"
	"sync"
	"time"

	"github.com/postboard/postboard/internal/models"
)

// MemoryStore keeps sessions in process memory. Expired entries are dropped
// on read and by DeleteExpired.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	now      func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session), now: time.Now}
}

func (m *MemoryStore) Get(ctx context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrNoSession
	}
	if !s.ExpiresAt.After(m.now()) {
		delete(m.sessions, token)
		return nil, ErrNoSession
	}
	return &s, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *models.Session) (string, error) {
	m.mu.Lock()
	m.sessions[s.ID] = *s
	m.mu.Unlock()
	return s.ID, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// DeleteExpired drops every session that expired before now and reports how
// many were removed.
func (m *MemoryStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for id, s := range m.sessions {
		if !s.ExpiresAt.After(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
