package identity

//go:generate mockgen -package=mocks -destination=mocks/mock_store.go github.com/quizden/quizden/internal/repositories/identity Store

import (
	"context"
)

// Store persists the local participant identity between runs. On a real
// device this is browser-local storage; tests and bots use the in-memory
// implementation.
type Store interface {
	// Load returns the persisted identity, or an empty one if none exists
	Load(ctx context.Context) (*Identity, error)

	// Save persists the identity
	Save(ctx context.Context, ident *Identity) error
}
