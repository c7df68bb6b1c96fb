// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package mocks provides testify mocks for the account collaborators.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/holomush/signup/internal/account"
)

// testingT is the subset of *testing.T the constructors need.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockEncoder is a mock account.Encoder.
type MockEncoder struct {
	mock.Mock
}

// NewMockEncoder creates a MockEncoder whose expectations are asserted on cleanup.
func NewMockEncoder(t testingT) *MockEncoder {
	m := &MockEncoder{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Encode records the call and returns the configured values.
func (m *MockEncoder) Encode(ctx context.Context, plaintext string) (string, error) {
	args := m.Called(ctx, plaintext)
	return args.String(0), args.Error(1)
}

// MockStore is a mock account.Store.
type MockStore struct {
	mock.Mock
}

// NewMockStore creates a MockStore whose expectations are asserted on cleanup.
func NewMockStore(t testingT) *MockStore {
	m := &MockStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Save records the call and returns the configured values.
func (m *MockStore) Save(ctx context.Context, data account.CreationData) (*account.Account, error) {
	args := m.Called(ctx, data)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

// MockSyntaxChecker is a mock account.SyntaxChecker.
type MockSyntaxChecker struct {
	mock.Mock
}

// NewMockSyntaxChecker creates a MockSyntaxChecker whose expectations are asserted on cleanup.
func NewMockSyntaxChecker(t testingT) *MockSyntaxChecker {
	m := &MockSyntaxChecker{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// IsValid records the call and returns the configured values.
func (m *MockSyntaxChecker) IsValid(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

var (
	_ account.Encoder       = (*MockEncoder)(nil)
	_ account.Store         = (*MockStore)(nil)
	_ account.SyntaxChecker = (*MockSyntaxChecker)(nil)
)
