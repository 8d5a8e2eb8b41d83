// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"net/http"

	"whisper-chat/internal/services"
	"whisper-chat/internal/transport/httpdto"
	whisper_errors "whisper-chat/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and session endpoints.
type AuthHandler struct {
	otp  *services.OTPService
	auth *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(otp *services.OTPService, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{otp: otp, auth: auth}
}

// SendOTP issues a verification code and mails it to the address.
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req httpdto.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Email is required"})
		return
	}

	if err := h.otp.IssueOTP(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, whisper_errors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Email is required"})
		case errors.Is(err, whisper_errors.ErrMailDelivery):
			c.JSON(http.StatusInternalServerError, httpdto.MessageResponse{Message: "Failed to send OTP"})
		default:
			c.JSON(http.StatusInternalServerError, httpdto.MessageResponse{Message: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse{Message: "OTP sent successfully"})
}

// VerifyOTP checks a submitted code. A match consumes the code.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req httpdto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.OTP == "" {
		c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Email and OTP are required"})
		return
	}

	if err := h.otp.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, whisper_errors.ErrNotFound):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "No OTP found for this email"})
		case errors.Is(err, whisper_errors.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "OTP has expired"})
		case errors.Is(err, whisper_errors.ErrOTPMismatch):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Invalid OTP"})
		case errors.Is(err, whisper_errors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Email and OTP are required"})
		default:
			c.JSON(http.StatusInternalServerError, httpdto.MessageResponse{Message: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse{Message: "OTP verified successfully"})
}

// CreateAccount registers a user once the client asserts OTP verification.
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req httpdto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Invalid request"})
		return
	}

	_, err := h.auth.CreateAccount(c.Request.Context(), services.CreateAccountInput{
		Email:        req.Email,
		Password:     req.Password,
		Username:     req.Username,
		ProfilePhoto: req.ProfilePhoto,
		Verified:     req.IsVerified,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotVerified):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Please verify your email with OTP first"})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Email already exists"})
		case errors.Is(err, services.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Username already exists"})
		case errors.Is(err, whisper_errors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Invalid request"})
		default:
			c.JSON(http.StatusInternalServerError, httpdto.MessageResponse{Message: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, httpdto.MessageResponse{Message: "User added successfully"})
}

// Login validates credentials, sets the session cookie and returns the
// token in the body as well.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Invalid request"})
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, whisper_errors.ErrNotFound):
			c.JSON(http.StatusNotFound, httpdto.MessageResponse{Message: "User not found"})
		case errors.Is(err, whisper_errors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, httpdto.MessageResponse{Message: "Invalid credentials"})
		case errors.Is(err, whisper_errors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Invalid request"})
		default:
			c.JSON(http.StatusInternalServerError, httpdto.MessageResponse{Message: "Internal server error"})
		}
		return
	}

	c.SetCookie("token", res.Token, int(res.MaxAge.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, httpdto.LoginResponse{
		Message: "Login successful",
		Token:   res.Token,
		UserID:  res.UserID.String(),
	})
}

// Decode resolves a session token back to its user.
func (h *AuthHandler) Decode(c *gin.Context) {
	var req httpdto.DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusUnauthorized, httpdto.MessageResponse{Message: "No token provided"})
		return
	}

	u, err := h.auth.DecodeToken(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, whisper_errors.ErrNotFound) {
			c.JSON(http.StatusNotFound, httpdto.MessageResponse{Message: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, httpdto.MessageResponse{Message: "Server error"})
		return
	}

	c.JSON(http.StatusOK, httpdto.DecodeResponse{
		UserID:         u.ID.String(),
		Username:       u.Username,
		ProfilePicture: u.ProfilePhoto,
	})
}
