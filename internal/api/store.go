package api

import (
	"context"
	"errors"
	"path"
	"sort"
	"sync"
)

var (
	ErrServerNotFound = errors.New("server not found")
	ErrKeyNotFound    = errors.New("key not found")
)

// KeyStore is the key space the API exposes, one per configured server
type KeyStore interface {
	Servers() []string
	Keys(ctx context.Context, server, mask string) ([]string, error)
	Delete(ctx context.Context, server, key string) error
}

// MemoryStore is an in-process KeyStore used by tests and demo mode
type MemoryStore struct {
	mu      sync.RWMutex
	servers map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{servers: make(map[string]map[string]string)}
}

// Set stores key with value on server, creating the server if needed
func (s *MemoryStore) Set(server, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.servers[server]
	if !ok {
		keys = make(map[string]string)
		s.servers[server] = keys
	}
	keys[key] = value
}

// AddServer registers an empty server
func (s *MemoryStore) AddServer(server string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.servers[server]; !ok {
		s.servers[server] = make(map[string]string)
	}
}

func (s *MemoryStore) Servers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.servers))
	for name := range s.servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *MemoryStore) Keys(_ context.Context, server, mask string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys, ok := s.servers[server]
	if !ok {
		return nil, ErrServerNotFound
	}

	result := make([]string, 0, len(keys))
	for key := range keys {
		if mask == "*" {
			result = append(result, key)
			continue
		}
		if matched, err := path.Match(mask, key); err == nil && matched {
			result = append(result, key)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (s *MemoryStore) Delete(_ context.Context, server, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, ok := s.servers[server]
	if !ok {
		return ErrServerNotFound
	}
	if _, ok := keys[key]; !ok {
		return ErrKeyNotFound
	}
	delete(keys, key)
	return nil
}
