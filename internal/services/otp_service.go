package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"whisper-chat/internal/mailer"
	"whisper-chat/internal/otp"
	whisper_errors "whisper-chat/pkg/errors"
)

const otpTTL = 10 * time.Minute

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// OTPService owns the one-time passcode lifecycle: issue, deliver, verify.
type OTPService struct {
	store  otp.Store
	mailer mailer.Service
}

func NewOTPService(store otp.Store, m mailer.Service) *OTPService {
	return &OTPService{store: store, mailer: m}
}

// IssueOTP generates a fresh 6-digit code for the email, overwriting any
// prior code, and delivers it by mail. The delivery call is awaited; a
// delivery failure surfaces to the caller but the stored code remains
// valid and can be resent.
func (s *OTPService) IssueOTP(ctx context.Context, email string) error {
	if !emailPattern.MatchString(email) {
		return whisper_errors.ErrInvalidInput
	}

	code, err := randomCode()
	if err != nil {
		return err
	}

	entry := otp.Entry{
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.store.Put(ctx, email, entry); err != nil {
		return err
	}

	if err := s.mailer.SendOTP(email, code); err != nil {
		return whisper_errors.ErrMailDelivery
	}
	return nil
}

// VerifyOTP checks the submitted code against the stored entry. A match
// consumes the entry (single use); a mismatch leaves it in place so the
// client may retry until expiry. Expired entries are deleted on read.
func (s *OTPService) VerifyOTP(ctx context.Context, email, submitted string) error {
	if email == "" || submitted == "" {
		return whisper_errors.ErrInvalidInput
	}

	entry, found, err := s.store.Get(ctx, email)
	if err != nil {
		return err
	}
	if !found {
		return whisper_errors.ErrNotFound
	}

	if time.Now().After(entry.ExpiresAt) {
		if err := s.store.Delete(ctx, email); err != nil {
			return err
		}
		return whisper_errors.ErrOTPExpired
	}

	code, err := strconv.Atoi(submitted)
	if err != nil {
		return whisper_errors.ErrOTPMismatch
	}

	result, err := s.store.ClaimIfMatch(ctx, email, code)
	if err != nil {
		return err
	}
	switch result {
	case otp.ResultMatched:
		return nil
	case otp.ResultNotFound:
		// A concurrent verify consumed the entry first.
		return whisper_errors.ErrNotFound
	default:
		return whisper_errors.ErrOTPMismatch
	}
}

// randomCode returns a uniform random integer in [100000, 999999].
func randomCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 100000, nil
}
