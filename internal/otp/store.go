// Package otp stores one-time passcodes keyed by email.
package otp

import (
	"context"
	"time"
)

// Entry is the single live passcode for an email. A new issuance
// overwrites any prior entry, so at most one entry exists per email.
type Entry struct {
	Code      int       `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Result classifies the outcome of a claim attempt.
type Result int

const (
	ResultMatched Result = iota
	ResultMismatch
	ResultNotFound
)

// Store is the injected storage dependency for OTP entries. Claiming is
// an atomic read-then-delete-if-match so that a code can be consumed at
// most once even under concurrent verification.
type Store interface {
	Put(ctx context.Context, email string, e Entry) error
	Get(ctx context.Context, email string) (Entry, bool, error)
	Delete(ctx context.Context, email string) error
	ClaimIfMatch(ctx context.Context, email string, code int) (Result, error)
}
