package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"whisper-chat/config"
	"whisper-chat/internal/domain/user"
	"whisper-chat/internal/repository"
	whisper_errors "whisper-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrNotVerified gates account creation on a prior OTP verification.
var ErrNotVerified = errors.New("email not verified")

// Conflict errors wrap ErrAlreadyExists so callers can branch on which
// identity field is taken while errors.Is still matches the sentinel.
var (
	ErrEmailTaken    = fmt.Errorf("email already exists: %w", whisper_errors.ErrAlreadyExists)
	ErrUsernameTaken = fmt.Errorf("username already exists: %w", whisper_errors.ErrAlreadyExists)
)

// AuthService verifies credentials and issues and decodes signed
// session tokens. Tokens are not persisted; validity is determined
// purely by signature and expiry at decode time.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

type CreateAccountInput struct {
	Email        string
	Password     string
	Username     string
	ProfilePhoto string
	Verified     bool
}

type LoginResult struct {
	Token  string
	UserID uuid.UUID
	MaxAge time.Duration
}

type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// CreateAccount registers a user. The caller must assert that the OTP
// verification happened; the verification result itself is not stored.
func (s *AuthService) CreateAccount(ctx context.Context, in CreateAccountInput) (user.User, error) {
	if !in.Verified {
		return user.User{}, ErrNotVerified
	}
	if in.Email == "" || in.Password == "" || in.Username == "" {
		return user.User{}, whisper_errors.ErrInvalidInput
	}

	if err := s.ensureIdentityAvailable(ctx, in.Email, in.Username); err != nil {
		return user.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		ProfilePhoto: in.ProfilePhoto,
		CreatedAt:    time.Now(),
	}

	// No transaction spans the verify -> create sequence; a concurrent
	// registration racing on the same verified OTP is stopped by the
	// unique constraints on email and username.
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return user.User{}, err
	}
	return *newUser, nil
}

// Login validates the password and issues a signed session token
// embedding {userId, email} with a 23-hour expiry.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, whisper_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, whisper_errors.ErrUnauthorized
	}

	token, err := s.signToken(u)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Token: token, UserID: u.ID, MaxAge: s.tokenTTL}, nil
}

// DecodeToken validates the token and re-resolves the user, so a token
// that outlived its account fails with not found.
func (s *AuthService) DecodeToken(ctx context.Context, token string) (user.User, error) {
	claims, err := s.ParseToken(token)
	if err != nil {
		return user.User{}, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return user.User{}, whisper_errors.ErrUnauthorized
	}

	return s.userRepo.GetUserByID(ctx, userID)
}

// ParseToken verifies the signature and expiry of a session token.
func (s *AuthService) ParseToken(token string) (SessionClaims, error) {
	if token == "" {
		return SessionClaims{}, whisper_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, whisper_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return SessionClaims{}, whisper_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return SessionClaims{}, whisper_errors.ErrUnauthorized
	}
	return *claims, nil
}

func (s *AuthService) signToken(u user.User) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID: u.ID.String(),
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *AuthService) ensureIdentityAvailable(ctx context.Context, email, username string) error {
	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, whisper_errors.ErrNotFound) {
		return err
	}

	if _, err := s.userRepo.GetUserByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, whisper_errors.ErrNotFound) {
		return err
	}

	return nil
}

// HTTPStatus maps service errors onto response statuses. Not-found and
// conflict conditions fold into 400 on this API, matching its wire
// contract; only login reports 404 for a missing user.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, whisper_errors.ErrInvalidInput),
		errors.Is(err, ErrNotVerified),
		errors.Is(err, whisper_errors.ErrAlreadyExists),
		errors.Is(err, whisper_errors.ErrOTPExpired),
		errors.Is(err, whisper_errors.ErrOTPMismatch):
		return http.StatusBadRequest
	case errors.Is(err, whisper_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, whisper_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, whisper_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
