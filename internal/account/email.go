// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package account

import (
	"github.com/asaskevich/govalidator"
	"github.com/samber/oops"
)

// MaxEmailLength is the longest address a forward-path can carry (RFC 5321).
const MaxEmailLength = 254

// SyntaxChecker reports whether a string is a well-formed email address.
type SyntaxChecker interface {
	// IsValid returns (false, nil) for a malformed address and a non-nil
	// error only when the check itself could not be performed.
	IsValid(email string) (bool, error)
}

// EmailValidator implements SyntaxChecker using govalidator.
type EmailValidator struct {
	isEmail func(string) bool
}

// NewEmailValidator creates a new EmailValidator.
func NewEmailValidator() *EmailValidator {
	return &EmailValidator{isEmail: govalidator.IsEmail}
}

// IsValid checks email syntax. It does not check deliverability.
func (v *EmailValidator) IsValid(email string) (valid bool, err error) {
	if len(email) > MaxEmailLength {
		return false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			valid = false
			err = oops.Code("ACCOUNT_EMAIL_VALIDATOR_FAILED").Errorf("email syntax check failed: %v", r)
		}
	}()

	return v.isEmail(email), nil
}
