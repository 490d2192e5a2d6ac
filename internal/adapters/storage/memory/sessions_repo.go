package memory

import (
	"context"
	"sync"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/session"
)

type sessionEntry struct {
	identity  session.Identity
	expiresAt time.Time
}

// SessionStore es el slot de sesión en proceso (SESSION_BACKEND=memory).
type SessionStore struct {
	mu   sync.RWMutex
	byID map[string]sessionEntry
	now  func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		byID: make(map[string]sessionEntry),
		now:  time.Now,
	}
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, id session.Identity, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[sessionID] = sessionEntry{identity: id, expiresAt: expiresAt}
	return nil
}

func (s *SessionStore) Load(ctx context.Context, sessionID string) (session.Identity, error) {
	s.mu.RLock()
	e, ok := s.byID[sessionID]
	s.mu.RUnlock()

	if !ok {
		return session.Identity{}, apperr.ErrNotFound
	}
	if !s.now().Before(e.expiresAt) {
		_ = s.Delete(ctx, sessionID)
		return session.Identity{}, apperr.ErrNotFound
	}
	return e.identity, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, sessionID)
	return nil
}

var _ session.Store = (*SessionStore)(nil)
