// Package usertest provides an in-memory user.Store for tests. It
// enforces the same email uniqueness rule as the PostgreSQL store so
// race-sensitive tests exercise the real contract.
package usertest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prateek4576/mytodoapp/internal/user"
)

type Store struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User

	// Err, when set, is returned by every method to simulate an
	// unreachable store.
	Err error
}

func NewStore() *Store {
	return &Store{users: make(map[uuid.UUID]user.User)}
}

// Seed inserts a user directly, bypassing uniqueness checks.
func (s *Store) Seed(u user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Len reports the number of stored users.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) FindByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	out := u
	return &out, nil
}

func (s *Store) Insert(_ context.Context, n user.NewUser) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	for _, existing := range s.users {
		if existing.Email == n.Email {
			return nil, user.ErrDuplicateEmail
		}
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        n.Email,
		PasswordHash: n.PasswordHash,
		GoogleID:     n.GoogleID,
		CreatedAt:    time.Now(),
	}
	s.users[u.ID] = u

	out := u
	return &out, nil
}

func (s *Store) Update(_ context.Context, id uuid.UUID, upd user.Update) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}

	if upd.PasswordHash != nil {
		u.PasswordHash = upd.PasswordHash
	}
	if upd.GoogleID != nil {
		u.GoogleID = upd.GoogleID
	}
	s.users[id] = u

	out := u
	return &out, nil
}

func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	if _, ok := s.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(s.users, id)
	return nil
}
