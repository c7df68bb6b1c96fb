// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package web exposes the signup handler over HTTP.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/oops"

	"github.com/holomush/signup/internal/observability"
	"github.com/holomush/signup/internal/signup"
)

// MaxBodyBytes bounds the size of a signup request body.
const MaxBodyBytes = 1 << 20

var errTrailingData = oops.Code("WEB_TRAILING_DATA").Errorf("request body contains more than one JSON value")

// SignupHandler turns a decoded request into a response envelope.
type SignupHandler interface {
	Handle(ctx context.Context, req signup.Request) signup.Response
}

// RouterOption configures the router.
type RouterOption func(*routes)

// WithMetrics records every signup response in m.
func WithMetrics(m *observability.Metrics) RouterOption {
	return func(r *routes) {
		r.metrics = m
	}
}

// WithLogger sets the logger used for transport failures.
func WithLogger(logger *slog.Logger) RouterOption {
	return func(r *routes) {
		if logger != nil {
			r.logger = logger
		}
	}
}

type routes struct {
	signup  SignupHandler
	metrics *observability.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewRouter builds the HTTP routes for the signup service.
func NewRouter(h SignupHandler, opts ...RouterOption) http.Handler {
	rt := &routes{
		signup: h,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(rt)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/signup", rt.handleSignup)
	return r
}

func (rt *routes) handleSignup(w http.ResponseWriter, r *http.Request) {
	start := rt.now()

	var resp signup.Response
	req, err := decodeRequest(w, r)
	if err != nil {
		rt.logger.DebugContext(r.Context(), "rejecting signup body",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err.Error())
		resp = signup.Response{StatusCode: http.StatusBadRequest, Err: signup.InvalidParam("body")}
	} else {
		resp = rt.signup.Handle(r.Context(), req)
	}

	rt.metrics.ObserveSignup(resp.StatusCode, rt.now().Sub(start))
	rt.writeJSON(w, r, resp.StatusCode, resp.Body())
}

// decodeRequest reads a single JSON object of at most MaxBodyBytes.
func decodeRequest(w http.ResponseWriter, r *http.Request) (signup.Request, error) {
	var req signup.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return signup.Request{}, err //nolint:wrapcheck // only logged
	}
	if dec.More() {
		return signup.Request{}, errTrailingData
	}
	return req, nil
}

func (rt *routes) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		rt.logger.WarnContext(r.Context(), "failed to write signup response",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err.Error())
	}
}
