package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileStore implements the Store interface on a local JSON file
type fileStore struct {
	mu   sync.Mutex
	path string
}

// FileConfig holds configuration for the file identity store
type FileConfig struct {
	// Path to the identity file
	Path string
}

// NewFile creates a new file-backed identity store
func NewFile(cfg *FileConfig) (*fileStore, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, errors.New("config and path cannot be empty")
	}

	return &fileStore{
		path: cfg.Path,
	}, nil
}

// Load returns the persisted identity, or an empty one if the file does
// not exist yet
func (s *fileStore) Load(_ context.Context) (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Identity{}, nil
		}
		return nil, fmt.Errorf("failed to read identity file: %w", err)
	}

	var ident Identity
	if err := json.Unmarshal(data, &ident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal identity: %w", err)
	}

	return &ident, nil
}

// Save persists the identity to disk
func (s *fileStore) Save(_ context.Context, ident *Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create identity directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write identity file: %w", err)
	}

	return nil
}
