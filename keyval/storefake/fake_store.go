// Package storefake provides an in-memory keyval.Store for tests.
package storefake

import (
	"sync"

	"github.com/studyhub-app/studyhub-go/keyval"
)

// Store is an in-memory implementation of keyval.Store.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ keyval.Store = (*Store)(nil)

// New creates a new fake store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// Set writes the value for key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete removes the key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Len reports the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.values)
}
