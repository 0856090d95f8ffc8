// Package token holds the persisted bearer-token slot and the expiry check
// applied to it. The slot stores at most one token: presence means "possibly
// authenticated", absence means "definitely unauthenticated".
package token

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Store is the single persisted token slot.
type Store interface {
	// Get returns the stored token, with false when the slot is empty.
	Get() (string, bool)
	// Set persists t, replacing any prior value.
	Set(t string) error
	// Clear empties the slot. Clearing an already-empty slot is not an error.
	Clear() error
}

// MemoryStore keeps the token in process memory only. Used by tests and by
// callers that do not want the session to survive a restart.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Set(t string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = t
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// FileStore persists the token to a single file so the session survives a
// restart of the client. The file is created with 0600 permissions.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	t := strings.TrimSpace(string(data))
	return t, t != ""
}

func (s *FileStore) Set(t string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating token directory")
	}
	if err := os.WriteFile(s.path, []byte(t), 0o600); err != nil {
		return errors.Wrap(err, "writing token file")
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing token file")
	}
	return nil
}
