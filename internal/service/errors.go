// Package service holds the identity and file registry services. Handlers
// translate the errors defined here into HTTP responses
package service

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
	// Covers both "no such account" and "wrong password" so login responses
	// can't be used to enumerate registered emails
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Covers both "no such file" and "not yours" so mutation responses
	// don't leak whether a file ID exists
	ErrNotFoundOrForbidden = errors.New("file not found or permission denied")
	ErrConflict            = errors.New("custom url already taken")
)

// BannedError is returned by Login while a ban is active. It carries the
// expiry so callers can show when the account unlocks
type BannedError struct {
	Until time.Time
}

func (e *BannedError) Error() string {
	return "account banned until " + e.Until.Format(time.RFC3339)
}
