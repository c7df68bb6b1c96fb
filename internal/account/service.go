// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package account

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/holomush/signup/internal/account"

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used by the Service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracerProvider sets the tracer provider used for registration spans.
func WithTracerProvider(tp trace.TracerProvider) ServiceOption {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// Service registers new accounts.
type Service struct {
	encoder Encoder
	store   Store
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewService creates a new Service.
func NewService(encoder Encoder, store Store, opts ...ServiceOption) (*Service, error) {
	if encoder == nil {
		return nil, oops.Code("ACCOUNT_SERVICE_INVALID").Errorf("password encoder is required")
	}
	if store == nil {
		return nil, oops.Code("ACCOUNT_SERVICE_INVALID").Errorf("account store is required")
	}

	s := &Service{
		encoder: encoder,
		store:   store,
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register encodes data.Password and persists the account.
// The store is never called when encoding fails. There are no retries.
func (s *Service) Register(ctx context.Context, data CreationData) (*Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.Register")
	defer span.End()

	encoded, err := s.encoder.Encode(ctx, data.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode password")
		return nil, oops.Code("ACCOUNT_ENCODE_FAILED").
			With("operation", "encode password").
			Wrap(err)
	}

	acc, err := s.store.Save(ctx, CreationData{
		Name:     data.Name,
		Email:    data.Email,
		Password: encoded,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save account")
		return nil, oops.Code("ACCOUNT_SAVE_FAILED").
			With("operation", "save account").
			Wrap(err)
	}

	span.SetAttributes(attribute.String("account.id", acc.ID))
	s.logger.DebugContext(ctx, "account registered", "account_id", acc.ID)
	return acc, nil
}
