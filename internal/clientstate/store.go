package clientstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is one key-value persistence tier. Reads are tolerant: a missing or
// unreadable value reports absent rather than failing, so corrupt state never
// breaks the client.
type Store interface {
	Get(key string, out any) bool
	Set(key string, value any) error
	Delete(key string)
}

// FileStore is the durable tier, one JSON file per key under its directory.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	// Keys are fixed identifiers, but sanitize anyway so a bad one cannot
	// escape the state directory.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(s.dir, safe+".json")
}

func (s *FileStore) Get(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

func (s *FileStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

func (s *FileStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.path(key))
}

// MemoryStore is the ephemeral tier; its contents last as long as the process.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Get(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.values[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (s *MemoryStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.values[key] = encoded
	return nil
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
