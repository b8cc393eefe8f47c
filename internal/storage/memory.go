package storage

import (
	"context"
	"sync"

	"dispute-assistant/internal/session"
)

// MemoryStore is a map-backed Store for tests and dev runs without a data
// dir. States are deep-copied on both Save and Load so callers can never
// observe each other's mutations through shared slices.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*session.State)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*session.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return st.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, id string, state *session.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = state.Clone()
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}
