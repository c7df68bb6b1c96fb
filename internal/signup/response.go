// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package signup

import (
	"encoding/json"
	"net/http"

	"github.com/holomush/signup/internal/account"
)

// Response is the envelope produced by Handler.Handle.
// Exactly one of Account and Err is set.
type Response struct {
	StatusCode int
	Account    *account.Account
	Err        *Error
}

func ok(acc *account.Account) Response {
	return Response{StatusCode: http.StatusOK, Account: acc}
}

func badRequest(err *Error) Response {
	return Response{StatusCode: http.StatusBadRequest, Err: err}
}

func serverError() Response {
	return Response{StatusCode: http.StatusInternalServerError, Err: ServerError()}
}

// Body returns the account on success and the error descriptor otherwise.
func (r Response) Body() any {
	if r.Err != nil {
		return r.Err
	}
	return r.Account
}

// MarshalJSON renders the envelope as {"statusCode", "body"}.
func (r Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		StatusCode int `json:"statusCode"`
		Body       any `json:"body"`
	}{
		StatusCode: r.StatusCode,
		Body:       r.Body(),
	})
}
