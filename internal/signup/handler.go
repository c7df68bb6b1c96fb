// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package signup turns registration requests into response envelopes.
package signup

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/holomush/signup/internal/account"
	"github.com/holomush/signup/pkg/errutil"
)

// Request is a registration request as received from a client.
type Request struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// Registrar creates accounts from validated input.
type Registrar interface {
	Register(ctx context.Context, data account.CreationData) (*account.Account, error)
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used to record internal failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Handler validates signup requests and registers accounts.
type Handler struct {
	checker   account.SyntaxChecker
	registrar Registrar
	logger    *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(checker account.SyntaxChecker, registrar Registrar, opts ...Option) (*Handler, error) {
	if checker == nil {
		return nil, oops.Code("SIGNUP_HANDLER_INVALID").Errorf("email syntax checker is required")
	}
	if registrar == nil {
		return nil, oops.Code("SIGNUP_HANDLER_INVALID").Errorf("registrar is required")
	}

	h := &Handler{
		checker:   checker,
		registrar: registrar,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle validates req and registers the account. Checks run in a fixed
// order: required fields, password confirmation, email syntax, registration.
// Collaborator failures (errors or panics) become a 500 with no detail.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response) {
	if err := requireFields(req); err != nil {
		return badRequest(err)
	}
	if req.Password != req.PasswordConfirmation {
		return badRequest(InvalidParam("passwordConfirmation"))
	}

	defer func() {
		if r := recover(); r != nil {
			h.fail(ctx, oops.Code("SIGNUP_PANIC").Errorf("collaborator panicked: %v", r))
			resp = serverError()
		}
	}()

	valid, err := h.checker.IsValid(req.Email)
	if err != nil {
		h.fail(ctx, oops.With("stage", "email_check").Wrap(err))
		return serverError()
	}
	if !valid {
		return badRequest(InvalidParam("email"))
	}

	acc, err := h.registrar.Register(ctx, account.CreationData{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(ctx, oops.With("stage", "register").Wrap(err))
		return serverError()
	}

	h.logger.InfoContext(ctx, "account created", "account_id", acc.ID)
	return ok(acc)
}

// requireFields reports the first empty required field.
func requireFields(req Request) *Error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"password", req.Password},
		{"passwordConfirmation", req.PasswordConfirmation},
	}
	for _, f := range fields {
		if f.value == "" {
			return MissingParam(f.name)
		}
	}
	return nil
}

func (h *Handler) fail(ctx context.Context, err error) {
	errutil.LogErrorContext(ctx, h.logger, "signup failed", err)
}
