// Package account answers register and login queries for players.
//
// Credentials are kept as bcrypt hashes in a Store. MemoryStore is the
// default; repository.AccountRepository persists them in PostgreSQL.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prime31/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAlreadyExists = errors.New("username already taken")
	ErrUnauthorized  = errors.New("wrong username or password")
	ErrNotFound      = errors.New("account not found")
	ErrInvalid       = errors.New("username and password are required")
)

// Store persists accounts. GetAccount returns ErrNotFound for unknown
// usernames and CreateAccount returns ErrAlreadyExists on a duplicate.
type Store interface {
	CreateAccount(ctx context.Context, a *domain.Account) error
	GetAccount(ctx context.Context, username string) (*domain.Account, error)
	Ping(ctx context.Context) error
}

type Service struct {
	store Store
	cost  int
}

func NewService(store Store) *Service {
	return NewServiceWithCost(store, bcrypt.DefaultCost)
}

// NewServiceWithCost is NewService with an explicit bcrypt cost.
func NewServiceWithCost(store Store, cost int) *Service {
	return &Service{store: store, cost: cost}
}

func (s *Service) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("account: hash password: %w", err)
	}

	return s.store.CreateAccount(ctx, &domain.Account{
		Username:     username,
		PasswordHash: hash,
	})
}

func (s *Service) Verify(ctx context.Context, username, password string) error {
	a, err := s.store.GetAccount(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("account: lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)) != nil {
		return ErrUnauthorized
	}
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
