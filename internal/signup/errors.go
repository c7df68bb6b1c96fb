// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package signup

import (
	"encoding/json"
	"fmt"
)

// ErrorKind distinguishes the error descriptors a Response can carry.
type ErrorKind int

// Error descriptor kinds.
const (
	MissingField ErrorKind = iota + 1
	InvalidField
	Internal
)

// String returns the machine-readable code for the kind.
func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "MISSING_PARAM"
	case InvalidField:
		return "INVALID_PARAM"
	case Internal:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// internalMessage is the only text a 500 body ever carries.
const internalMessage = "Internal server error"

// Error is the error descriptor placed in a failed Response.
// Field is empty for Internal.
type Error struct {
	Kind  ErrorKind
	Field string
}

// MissingParam reports a required field that was absent or empty.
func MissingParam(field string) *Error {
	return &Error{Kind: MissingField, Field: field}
}

// InvalidParam reports a field that failed a business rule.
func InvalidParam(field string) *Error {
	return &Error{Kind: InvalidField, Field: field}
}

// ServerError reports an unexpected failure without exposing its cause.
func ServerError() *Error {
	return &Error{Kind: Internal}
}

// Error returns the human-readable message.
func (e *Error) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("Missing param: %s", e.Field)
	case InvalidField:
		return fmt.Sprintf("Invalid param: %s", e.Field)
	default:
		return internalMessage
	}
}

// errorBody is the JSON form of Error.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Param string `json:"param,omitempty"`
}

// MarshalJSON renders the descriptor as {"error", "code", "param"}.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorBody{
		Error: e.Error(),
		Code:  e.Kind.String(),
		Param: e.Field,
	})
}
