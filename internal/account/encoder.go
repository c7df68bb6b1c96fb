// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// OWASP-recommended argon2id parameters.
const (
	argon2Time    = 1         // iterations
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4         // parallelism
	argon2SaltLen = 16        // salt length in bytes
	argon2KeyLen  = 32        // output length in bytes
)

// DefaultBcryptCost matches the cost the signup service has always used.
const DefaultBcryptCost = 12

// Encoder algorithm names accepted by NewEncoder.
const (
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// ErrEmptyPassword is returned when attempting to encode an empty password.
var ErrEmptyPassword = oops.Code("ACCOUNT_EMPTY_PASSWORD").Errorf("password cannot be empty")

// Encoder turns a plaintext password into its stored representation.
type Encoder interface {
	// Encode returns a salted, non-reversible encoding of plaintext.
	Encode(ctx context.Context, plaintext string) (string, error)
}

// NewEncoder returns the encoder for the named algorithm.
// bcryptCost is ignored unless algorithm is bcrypt.
func NewEncoder(algorithm string, bcryptCost int) (Encoder, error) {
	switch algorithm {
	case AlgorithmArgon2id, "":
		return NewArgon2idEncoder(), nil
	case AlgorithmBcrypt:
		return NewBcryptEncoder(bcryptCost)
	default:
		return nil, oops.Code("ACCOUNT_UNKNOWN_ENCODER").
			With("algorithm", algorithm).
			Errorf("unknown password encoder %q", algorithm)
	}
}

// Argon2idEncoder implements Encoder using argon2id.
type Argon2idEncoder struct{}

// NewArgon2idEncoder creates a new Argon2idEncoder.
func NewArgon2idEncoder() *Argon2idEncoder {
	return &Argon2idEncoder{}
}

// Encode produces an argon2id hash in PHC string format:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func (e *Argon2idEncoder) Encode(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	if err := ctx.Err(); err != nil {
		return "", oops.Code("ACCOUNT_ENCODE_CANCELLED").Wrap(err)
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("ACCOUNT_SALT_FAILED").Wrap(err)
	}

	hash := argon2.IDKey([]byte(plaintext), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// BcryptEncoder implements Encoder using bcrypt.
type BcryptEncoder struct {
	cost int
}

// NewBcryptEncoder creates a BcryptEncoder. A zero cost selects DefaultBcryptCost.
func NewBcryptEncoder(cost int) (*BcryptEncoder, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, oops.Code("ACCOUNT_INVALID_BCRYPT_COST").
			With("cost", cost).
			Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptEncoder{cost: cost}, nil
}

// Cost returns the configured bcrypt cost.
func (e *BcryptEncoder) Cost() int {
	return e.cost
}

// Encode produces a bcrypt hash of plaintext.
func (e *BcryptEncoder) Encode(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	if err := ctx.Err(); err != nil {
		return "", oops.Code("ACCOUNT_ENCODE_CANCELLED").Wrap(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), e.cost)
	if err != nil {
		return "", oops.Code("ACCOUNT_BCRYPT_FAILED").With("cost", e.cost).Wrap(err)
	}
	return string(hash), nil
}
