package repository

import (
	"context"
	"errors"
	"fmt"

	"prime31/internal/account"
	"prime31/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// AccountRepository is the PostgreSQL account.Store.
type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) CreateAccount(ctx context.Context, a *domain.Account) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO accounts (username, password_hash)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		a.Username,
		a.PasswordHash,
	).Scan(&a.ID, &a.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return account.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("repository: create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetAccount(ctx context.Context, username string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at
		 FROM accounts
		 WHERE username = $1`,
		username,
	)

	var a domain.Account
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("repository: get account: %w", err)
	}
	return &a, nil
}

// Count returns the number of registered accounts.
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n)
	return n, err
}

func (r *AccountRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
