package gate

import (
	"os"
	"strings"
	"sync"
)

// MemoryFlagStore keeps the age flag for the current session only
type MemoryFlagStore struct {
	mu        sync.Mutex
	confirmed bool
}

// NewMemoryFlagStore creates a session-scoped flag store
func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{}
}

func (s *MemoryFlagStore) AgeConfirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed
}

func (s *MemoryFlagStore) SetAgeConfirmed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmed = true
	return nil
}

// FileFlagStore persists the age flag indefinitely in a local file, the way
// the browser build keeps it in local storage.
type FileFlagStore struct {
	path string
}

// NewFileFlagStore creates a flag store persisted at the given path
func NewFileFlagStore(path string) *FileFlagStore {
	return &FileFlagStore{path: path}
}

func (s *FileFlagStore) AgeConfirmed() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "true"
}

func (s *FileFlagStore) SetAgeConfirmed() error {
	return os.WriteFile(s.path, []byte("true"), 0o600)
}
