package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in a process-local map. Suitable for a single
// instance and for tests; deployments with more than one process should use
// the Redis store instead.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]Session
	now       func() time.Time
	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go store.janitor()
	return store
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			for id, session := range s.sessions {
				if s.now().After(session.ExpiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the janitor goroutine. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || s.now().After(session.ExpiresAt) {
		return nil, ErrNotFound
	}
	return &session, nil
}

func (s *MemoryStore) Save(ctx context.Context, session *Session) error {
	s.mu.Lock()
	s.sessions[session.ID] = *session
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
