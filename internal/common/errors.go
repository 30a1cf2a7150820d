// Package common defines shared constants and sentinel errors used across
// the taskboard server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Registration conflict. Also produced when a concurrent insert loses
	// the duplicate-email race and the unique index fires.
	ErrDuplicateEmail = errors.New("user already exists with this email")

	// Login failure. Deliberately the same value for unknown email and
	// wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Email verification token errors. Kept distinct from the session
	// token errors because they surface as different user-visible messages.
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	ErrVerificationTokenExpired = errors.New("verification token expired")
)
