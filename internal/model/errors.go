package model

import "errors"

var (
	// ErrNotFound reports that no matching account or challenge exists.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation on phone, email or id.
	ErrConflict = errors.New("already exists")
	// ErrCodeExpired reports that no live verification code exists.
	ErrCodeExpired = errors.New("verification code expired")
	// ErrCodeInvalid reports a live verification code that does not match.
	ErrCodeInvalid = errors.New("verification code invalid")
	// ErrInvalidCredentials is the single, deliberately uninformative
	// authentication failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is the single outcome for any token rejection.
	ErrInvalidToken = errors.New("invalid or expired token")
)
