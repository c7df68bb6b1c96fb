// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package account provides account registration primitives.
//
// # Collaborators
//
// Registration depends on three single-method capabilities:
//   - Encoder - one-way transform of a plaintext password (Argon2idEncoder, BcryptEncoder)
//   - Store - persistence of a new account (MemoryStore, postgres.AccountRepository)
//   - SyntaxChecker - email address syntax check (EmailValidator)
//
// # Services
//
// Service.Register encodes the password and persists the account. It performs
// no validation of its own; callers validate shape and business rules first.
// Services are created with NewService, which rejects nil dependencies.
package account
