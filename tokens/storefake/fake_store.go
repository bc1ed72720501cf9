package storefake

import (
	"sync"

	"github.com/jrsteele09/research-platform-client/internal/errors"
	"github.com/jrsteele09/research-platform-client/tokens"
)

var _ tokens.Store = (*FakeStore)(nil)

// FakeStore is an in-memory tokens.Store for tests.
type FakeStore struct {
	values map[string]string
	lock   sync.RWMutex

	// WriteErr, when set, is returned by Set and Remove without touching values.
	WriteErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		values: make(map[string]string),
	}
}

// NewFakeStoreWith returns a store pre-populated with values.
func NewFakeStoreWith(values map[string]string) *FakeStore {
	s := NewFakeStore()
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *FakeStore) Get(key string) (string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", errors.ErrNotFound
	}
	return v, nil
}

func (s *FakeStore) Set(key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.values[key] = value
	return nil
}

func (s *FakeStore) Remove(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys.
func (s *FakeStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.values)
}
