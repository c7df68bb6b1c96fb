// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package account

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a requested account does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned by stores that enforce unique email addresses.
	ErrEmailTaken = errors.New("email already registered")
)

// Account is a persisted account. Password holds the encoded credential,
// never the plaintext.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreationData is the input for creating an account.
// Password is plaintext until the Service encodes it.
type CreationData struct {
	Name     string
	Email    string
	Password string
}

// Store persists accounts.
type Store interface {
	// Save stores a new account and returns it with an assigned ID.
	// data.Password must already be encoded.
	Save(ctx context.Context, data CreationData) (*Account, error)
}
