// Package prefs is the key-value persistence substrate for scheduler state.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotPresent is returned by Load when the key has never been saved.
var ErrNotPresent = errors.New("preference not present")

// Store persists JSON-serializable values under string keys.
type Store interface {
	Save(key string, value any) error
	Load(key string, out any) error
	Clear() error
}

// FileStore keeps all preferences in one JSON object file.
// Safe for concurrent use within a single process.
type FileStore struct {
	path string

	mu sync.Mutex
}

// NewFileStore creates a FileStore backed by path (e.g. ~/.calalarm/prefs.json).
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save stores value under key, replacing any previous value.
func (s *FileStore) Save(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLocked()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal preference %q: %w", key, err)
	}
	entries[key] = raw
	return s.writeLocked(entries)
}

// Load reads the value stored under key into out.
// Returns ErrNotPresent when the key is absent.
func (s *FileStore) Load(key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLocked()
	if err != nil {
		return err
	}
	raw, ok := entries[key]
	if !ok || len(raw) == 0 {
		return fmt.Errorf("%w: %q", ErrNotPresent, key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal preference %q: %w", key, err)
	}
	return nil
}

// Clear wipes all keys.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear preferences: %w", err)
	}
	return nil
}

func (s *FileStore) readLocked() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences %s: %w", s.path, err)
	}
	entries := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *FileStore) writeLocked(entries map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write preferences %s: %w", s.path, err)
	}
	return nil
}
