package sessions

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jrsteele09/recyclemate/internal/errors"
	"github.com/jrsteele09/recyclemate/users"
)

var _ Repo = (*Store)(nil)

// Store maps a Session onto the three Storage keys.
// All writers set or clear the full triple under one lock, so readers never observe a torn session.
type Store struct {
	storage Storage
	mu      sync.RWMutex
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

func (s *Store) Get() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]string, len(Keys))
	for _, key := range Keys {
		v, ok, err := s.storage.Get(key)
		if err != nil {
			return nil, fmt.Errorf("[Store Get] read %s: %w", key, err)
		}
		if !ok {
			return nil, errors.ErrSessionNotFound
		}
		values[key] = v
	}

	session := &Session{
		Token: values[KeyToken],
		Role:  users.Role(values[KeyRole]),
		User:  json.RawMessage(values[KeyUser]),
	}
	if !session.Complete() {
		return nil, errors.ErrSessionNotFound
	}
	return session, nil
}

func (s *Store) Set(session Session) error {
	if !session.Complete() {
		return fmt.Errorf("[Store Set] token, user and role are all required: %w", errors.ErrSessionNotFound)
	}
	if !json.Valid(session.User) {
		return fmt.Errorf("[Store Set] user record is not valid JSON")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storage.SetAll(map[string]string{
		KeyToken: session.Token,
		KeyUser:  string(session.User),
		KeyRole:  string(session.Role),
	})
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Remove(Keys...); err != nil {
		return fmt.Errorf("[Store Clear] %w", err)
	}
	return nil
}
