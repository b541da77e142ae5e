package stores

import (
	"context"
	"sync"

	"github.com/JinhyeokFang/capstone/user"
)

// MemoryUserStore keeps users in a map. Tests and example wiring only.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[int64]user.User
	byEmail map[string]int64
	nextID  int64
}

// NewMemoryUserStore returns an empty in-memory store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[int64]user.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

// FindByEmail returns user.ErrNotFound when no account has this email.
func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	u := s.byID[id]
	return &u, nil
}

// FindByID returns user.ErrNotFound when the id is unknown.
func (s *MemoryUserStore) FindByID(ctx context.Context, id int64) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

// Create assigns the next id and stores a copy of the user.
func (s *MemoryUserStore) Create(ctx context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *u
	stored.ID = s.nextID
	s.nextID++
	s.byID[stored.ID] = stored
	s.byEmail[stored.Email] = stored.ID
	return &stored, nil
}

// Save replaces the stored user; user.ErrNotFound when the id is unknown.
func (s *MemoryUserStore) Save(ctx context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous, ok := s.byID[u.ID]
	if !ok {
		return nil, user.ErrNotFound
	}
	if previous.Email != u.Email {
		delete(s.byEmail, previous.Email)
		s.byEmail[u.Email] = u.ID
	}
	stored := *u
	s.byID[stored.ID] = stored
	return &stored, nil
}
