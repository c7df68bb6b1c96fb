// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package account

import (
	"context"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// MemoryStore is an in-process Store. Email uniqueness is case-insensitive,
// matching the index on the accounts table.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
	byEmail  map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]Account),
		byEmail:  make(map[string]string),
	}
}

// Save stores a new account under a fresh ULID.
func (s *MemoryStore) Save(ctx context.Context, data CreationData) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, oops.Code("ACCOUNT_SAVE_CANCELLED").Wrap(err)
	}

	key := strings.ToLower(data.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[key]; ok {
		return nil, oops.Code("ACCOUNT_EMAIL_TAKEN").Wrap(ErrEmailTaken)
	}

	acc := Account{
		ID:       ulid.Make().String(),
		Name:     data.Name,
		Email:    data.Email,
		Password: data.Password,
	}
	s.accounts[acc.ID] = acc
	s.byEmail[key] = acc.ID

	return &acc, nil
}

// Get returns a copy of the stored account, if present.
func (s *MemoryStore) Get(id string) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	return acc, ok
}

// Len returns the number of stored accounts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)
