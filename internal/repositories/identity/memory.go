package identity

import (
	"context"
	"sync"
)

// memoryStore implements the Store interface in memory
type memoryStore struct {
	mu    sync.Mutex
	ident *Identity
}

// NewMemory creates a new in-memory identity store
func NewMemory() *memoryStore {
	return &memoryStore{}
}

// Load returns a copy of the persisted identity, or an empty one
func (s *memoryStore) Load(_ context.Context) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ident == nil {
		return &Identity{}, nil
	}
	return s.ident.clone(), nil
}

// Save persists a copy of the identity
func (s *memoryStore) Save(_ context.Context, ident *Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ident = ident.clone()
	return nil
}
