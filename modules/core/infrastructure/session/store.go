package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/composables"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

// Store keeps the gateway's sessions in memory, keyed by an opaque sid.
// Sessions hold the backend bearer token, so losing the store on restart
// only forces a re-login.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*composables.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*composables.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Create(usuario sigeledapi.Usuario, token string) *composables.Session {
	now := s.now()
	sess := &composables.Session{
		ID:        uuid.NewString(),
		Token:     token,
		Usuario:   usuario,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Resolve implements middleware.SessionResolver. Expired sessions are
// evicted on access.
func (s *Store) Resolve(ctx context.Context, sid string) (*composables.Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if sess.Expired(s.now()) {
		s.Delete(sid)
		return nil, false
	}
	return sess, true
}

func (s *Store) Delete(sid string) {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
}

// Sweep drops every expired session. Cheap enough to run on a ticker.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for sid, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, sid)
			removed++
		}
	}
	return removed
}

// RunCleanup sweeps periodically until ctx is done.
func (s *Store) RunCleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
