package whisper_errors

import (
	"errors"
)

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrOTPExpired    = errors.New("otp has expired")
	ErrOTPMismatch   = errors.New("invalid otp")
	ErrMailDelivery  = errors.New("failed to send otp")
	ErrRateLimited   = errors.New("rate limited")
	ErrNotUploaded   = errors.New("file not uploaded")
)
