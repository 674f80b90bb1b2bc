package auth

import (
	"sync"
	"time"
)

// SessionStore holds the set of valid admin session tokens. Sessions have an
// explicit lifecycle: created on login, revoked on logout, expired after the
// configured TTL.
type SessionStore interface {
	Create(token string, ttl time.Duration) error
	Valid(token string) bool
	Revoke(token string) error
	Close() error
}

// MemoryStore is the default in-process session store. A background janitor
// sweeps expired tokens so the map does not grow unbounded.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]time.Time
	now      func() time.Time
	done     chan struct{}
	closed   sync.Once
}

// NewMemoryStore creates an in-memory session store sweeping at the given
// interval.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]time.Time),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s
}

func (s *MemoryStore) Create(token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) Valid(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expiry, ok := s.sessions[token]
	return ok && s.now().Before(expiry)
}

func (s *MemoryStore) Revoke(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) Close() error {
	s.closed.Do(func() { close(s.done) })
	return nil
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for token, expiry := range s.sessions {
				if now.After(expiry) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		}
	}
}
