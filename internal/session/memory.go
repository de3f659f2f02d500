package session

import (
	"context"
	"sync"

	"github.com/sakif/restaurant-directory/internal/apperror"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a Store backed by a map. Sessions vanish on restart.
//
// Records, including the User they point at, are copied on the way in
// and out so a caller mutating its *Session cannot change what another
// request reads.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, apperror.NotFound("session", id)
	}
	return clone(s), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = *clone(*s)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

func clone(s Session) *Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return &s
}

// Len reports how many sessions are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
