// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package postgres provides the PostgreSQL account store.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/holomush/signup/internal/account"
)

// Pool is the subset of *pgxpool.Pool used by AccountRepository.
// pgxmock.PgxPoolIface satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository implements account.Store using PostgreSQL.
type AccountRepository struct {
	pool Pool
	now  func() time.Time
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool Pool) *AccountRepository {
	return &AccountRepository{pool: pool, now: time.Now}
}

// Save inserts a new account. The insert is a single statement, so a failed
// save leaves no row behind.
func (r *AccountRepository) Save(ctx context.Context, data account.CreationData) (*account.Account, error) {
	id := ulid.Make().String()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (id, name, email, password, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		id,
		data.Name,
		data.Email,
		data.Password,
		r.now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, oops.Code("ACCOUNT_EMAIL_TAKEN").
				With("constraint", pgErr.ConstraintName).
				Wrap(account.ErrEmailTaken)
		}
		return nil, oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			With("id", id).
			Wrap(err)
	}

	return &account.Account{
		ID:       id,
		Name:     data.Name,
		Email:    data.Email,
		Password: data.Password,
	}, nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	var acc account.Account
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, password
		FROM accounts
		WHERE id = $1
	`, id).Scan(&acc.ID, &acc.Name, &acc.Email, &acc.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id).
			Wrap(account.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_FAILED").
			With("operation", "get account by id").
			With("id", id).
			Wrap(err)
	}
	return &acc, nil
}

// Compile-time interface check.
var _ account.Store = (*AccountRepository)(nil)
