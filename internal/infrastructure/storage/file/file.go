// Package file implements durable session storage as a single JSON file on
// disk, the closest analogue to per-origin browser storage for a process
// that owns one user's session.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists a small key-value map in one JSON file. Every mutation
// rewrites the whole file; with two short keys that is cheap and keeps the
// on-disk state readable.
type Store struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// Open loads the file at path, creating an empty store when it does not
// exist yet. A corrupt file is an error: the caller decides whether to
// start over.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage open %q: %w", path, err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.values); err != nil {
		return nil, fmt.Errorf("storage decode %q: %w", path, err)
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.flush()
}

// flush writes via a temp file plus rename so a crash mid-write never
// leaves a half-written store behind. Caller holds the lock.
func (s *Store) flush() error {
	raw, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("storage encode: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("storage mkdir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("storage write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage rename: %w", err)
	}
	return nil
}
