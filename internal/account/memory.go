package account

import (
	"context"
	"sync"
	"time"

	"prime31/internal/domain"
)

// MemoryStore keeps accounts for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	now    func() time.Time
	nextID int64
	byName map[string]*domain.Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:    func() time.Time { return time.Now().UTC() },
		nextID: 1,
		byName: make(map[string]*domain.Account),
	}
}

func (s *MemoryStore) CreateAccount(_ context.Context, a *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[a.Username]; exists {
		return ErrAlreadyExists
	}

	a.ID = s.nextID
	a.CreatedAt = s.now()
	s.nextID++

	stored := *a
	s.byName[a.Username] = &stored
	return nil
}

func (s *MemoryStore) GetAccount(_ context.Context, username string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
