package users

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used by tests. It enforces the same
// uniqueness guarantees as the SQLite store.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]User)}
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.byID[id]; ok {
		return &user, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.byID {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.byID {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) FindAll(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]User, 0, len(s.byID))
	for _, user := range s.byID {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *MemoryStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (s *MemoryStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (s *MemoryStore) Insert(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Username == user.Username || existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	s.byID[user.ID] = *user
	return nil
}

func (s *MemoryStore) Replace(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[user.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range s.byID {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username || existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	s.byID[user.ID] = *user
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
