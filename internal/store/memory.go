package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"users-api/internal/model"
)

// MemoryStore keeps users in a map and enforces the same case-insensitive
// uniqueness as the Postgres indexes.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[int]model.User
	nextID int
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[int]model.User),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) UsernameExists(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conflicts(0, username, "").Username, nil
}

func (s *MemoryStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conflicts(0, "", email).Email, nil
}

func (s *MemoryStore) Insert(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c := s.conflicts(0, u.Username, u.Email); c.Username || c.Email {
		return fmt.Errorf("Insert: %w", c)
	}
	u.ID = s.nextID
	u.RegisterDate = s.now()
	s.nextID++
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("GetByID: %w", ErrNotFound)
	}
	return &u, nil
}

func (s *MemoryStore) List(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *MemoryStore) Update(_ context.Context, id int, updates model.Updates) error {
	if err := checkUpdateFields(updates); err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("Update: %w", ErrNotFound)
	}
	if c := s.conflicts(id, updates[model.FieldUsername], updates[model.FieldEmail]); c.Username || c.Email {
		return fmt.Errorf("Update: %w", c)
	}
	if v, ok := updates[model.FieldEmail]; ok {
		u.Email = v
	}
	if v, ok := updates[model.FieldUsername]; ok {
		u.Username = v
	}
	if v, ok := updates[model.FieldPassword]; ok {
		u.Password = v
	}
	s.users[id] = u
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("Delete: %w", ErrNotFound)
	}
	delete(s.users, id)
	return nil
}

// conflicts compares against every user except skipID. Empty values never match.
// Callers hold s.mu.
func (s *MemoryStore) conflicts(skipID int, username, email string) *ConflictError {
	c := &ConflictError{}
	for id, u := range s.users {
		if id == skipID {
			continue
		}
		if username != "" && strings.ToLower(u.Username) == strings.ToLower(username) {
			c.Username = true
		}
		if email != "" && strings.ToLower(u.Email) == strings.ToLower(email) {
			c.Email = true
		}
	}
	return c
}
