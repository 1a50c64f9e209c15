package memstore

import (
	"sync"

	"github.com/jrsteele09/recyclemate/sessions"
)

var _ sessions.Storage = (*InMemoryStorage)(nil)

// InMemoryStorage is a process-local sessions.Storage
type InMemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func New() *InMemoryStorage {
	return &InMemoryStorage{
		values: make(map[string]string),
	}
}

// NewRepo returns a session store backed by a fresh in-memory storage.
func NewRepo() *sessions.Store {
	return sessions.NewStore(New())
}

func (m *InMemoryStorage) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *InMemoryStorage) SetAll(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *InMemoryStorage) Remove(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// Len is the number of stored keys
func (m *InMemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
