// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package logging

import (
	"log/slog"
	"strings"
)

// Redacted replaces the value of secret attributes.
const Redacted = "[REDACTED]"

var secretKeys = map[string]struct{}{
	"password":              {},
	"password_confirmation": {},
	"passwordconfirmation":  {},
}

// redactAttr hides secrets and masks email addresses.
// Matching is on the attribute key, case-insensitive, at any group depth.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	if _, ok := secretKeys[key]; ok {
		return slog.String(a.Key, Redacted)
	}
	if key == "email" && a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, MaskEmail(a.Value.String()))
	}
	return a
}

// MaskEmail masks the local part of an email address for logging.
// "ada.lovelace@example.com" becomes "ad***@example.com"; local parts of
// two characters or fewer are fully masked.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if r := []rune(local); len(r) > 2 {
		return string(r[:2]) + "***@" + domain
	}
	return "***@" + domain
}
