// internal/storage/memory.go
package storage

import (
	"context"
	"sync"
)

// MemoryProvider keeps every origin in process memory. Used by tests and the
// development server.
type MemoryProvider struct {
	mu      sync.RWMutex
	origins map[string]map[string]string
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{origins: make(map[string]map[string]string)}
}

func (p *MemoryProvider) Open(origin string) Store {
	return &memoryStore{provider: p, origin: origin}
}

func (p *MemoryProvider) Close() error { return nil }

// NewMemoryStore returns a standalone store.
func NewMemoryStore() Store {
	return NewMemoryProvider().Open("")
}

type memoryStore struct {
	provider *MemoryProvider
	origin   string
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.provider.mu.RLock()
	defer s.provider.mu.RUnlock()

	value, ok := s.provider.origins[s.origin][key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *memoryStore) SetMany(_ context.Context, entries map[string]string) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	data, ok := s.provider.origins[s.origin]
	if !ok {
		data = make(map[string]string)
		s.provider.origins[s.origin] = data
	}
	for k, v := range entries {
		data[k] = v
	}
	return nil
}

func (s *memoryStore) Remove(_ context.Context, keys ...string) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	data := s.provider.origins[s.origin]
	for _, k := range keys {
		delete(data, k)
	}
	return nil
}
