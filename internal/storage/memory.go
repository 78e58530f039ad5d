package storage

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"
)

// MemoryStore keeps uploaded objects in memory. It backs the test suite and
// serves as a fallback when no MinIO endpoint is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) PutFile(ctx context.Context, key, path, contentType string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// Presign fails for unknown keys so the pipeline's put-before-presign
// ordering is observable in tests.
func (s *MemoryStore) Presign(ctx context.Context, key string, expires time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("presign: key %q does not exist", key)
	}
	return fmt.Sprintf("memory://paperpress/%s?expires=%d", key, int64(expires.Seconds())), nil
}

// Object returns a stored object and whether it exists.
func (s *MemoryStore) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Keys lists all stored object keys.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}
