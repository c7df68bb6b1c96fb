// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package seed registers accounts listed in a YAML file.
package seed

import (
	"context"
	"net/http"
	"os"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/holomush/signup/internal/signup"
)

// File is the root of a seed file.
type File struct {
	Accounts []Entry `yaml:"accounts" jsonschema:"minItems=1,description=Accounts to register in order"`
}

// Entry is one registration request. Field presence is not enforced here;
// every entry goes through the same checks as an HTTP signup.
type Entry struct {
	Name                 string `yaml:"name,omitempty" jsonschema:"description=Display name"`
	Email                string `yaml:"email,omitempty" jsonschema:"description=Email address"`
	Password             string `yaml:"password,omitempty" jsonschema:"description=Plaintext password"`
	PasswordConfirmation string `yaml:"passwordConfirmation,omitempty" jsonschema:"description=Must equal password"`
}

// Request converts the entry to a signup request.
func (e Entry) Request() signup.Request {
	return signup.Request{
		Name:                 e.Name,
		Email:                e.Email,
		Password:             e.Password,
		PasswordConfirmation: e.PasswordConfirmation,
	}
}

// Parse validates data against the seed schema and decodes it.
func Parse(data []byte) (*File, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oops.Code("SEED_INVALID").With("operation", "decode seed file").Wrap(err)
	}
	return &f, nil
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return nil, oops.Code("SEED_READ_FAILED").With("path", path).Wrap(err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return f, nil
}

// Handler processes one signup request.
type Handler interface {
	Handle(ctx context.Context, req signup.Request) signup.Response
}

// Result is the outcome of seeding one entry.
type Result struct {
	Index      int
	Email      string
	StatusCode int
	AccountID  string
	Message    string
}

// Created reports whether the entry produced an account.
func (r Result) Created() bool {
	return r.StatusCode == http.StatusOK
}

// Run sends every entry through h in file order. It stops early only when
// ctx is done, returning the results gathered so far.
func Run(ctx context.Context, h Handler, f *File) ([]Result, error) {
	results := make([]Result, 0, len(f.Accounts))
	for i, entry := range f.Accounts {
		if err := ctx.Err(); err != nil {
			return results, oops.Code("SEED_CANCELLED").With("completed", i).Wrap(err)
		}

		resp := h.Handle(ctx, entry.Request())
		result := Result{Index: i, Email: entry.Email, StatusCode: resp.StatusCode}
		if resp.Err != nil {
			result.Message = resp.Err.Error()
		} else if resp.Account != nil {
			result.AccountID = resp.Account.ID
		}
		results = append(results, result)
	}
	return results, nil
}

// Summarize counts created and rejected entries.
func Summarize(results []Result) (created, rejected int) {
	for _, r := range results {
		if r.Created() {
			created++
		} else {
			rejected++
		}
	}
	return created, rejected
}
