package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account created after a successful OTP verification.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	ProfilePhoto string    `json:"profilephoto"`
	CreatedAt    time.Time `json:"created_at"`
}
