package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"whisper-chat/config"
	"whisper-chat/internal/domain/user"
	"whisper-chat/internal/otp"
	"whisper-chat/internal/services"
	whisper_errors "whisper-chat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	users map[uuid.UUID]user.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, u *user.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *memoryUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return user.User{}, whisper_errors.ErrNotFound
}

func (r *memoryUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, whisper_errors.ErrNotFound
}

func (r *memoryUserRepo) GetUserByUsername(_ context.Context, username string) (user.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, whisper_errors.ErrNotFound
}

func (r *memoryUserRepo) SearchUsers(_ context.Context, query string) ([]user.User, error) {
	return nil, nil
}

type recordingMailer struct {
	lastCode int
}

func (m *recordingMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	return "", nil
}

func (m *recordingMailer) SendOTP(email string, code int) error {
	m.lastCode = code
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *recordingMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mail := &recordingMailer{}
	otpService := services.NewOTPService(otp.NewMemoryStore(), mail)
	authService := services.NewAuthService(newMemoryUserRepo(), &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 23,
	})

	h := NewAuthHandler(otpService, authService)
	r := gin.New()
	r.POST("/send-otp", h.SendOTP)
	r.POST("/verify-otp", h.VerifyOTP)
	r.POST("/createaccount", h.CreateAccount)
	r.POST("/login", h.Login)
	r.POST("/decode", h.Decode)
	return r, mail
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestRegistrationFlow(t *testing.T) {
	r, mail := newTestRouter(t)

	w := postJSON(t, r, "/send-otp", gin.H{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OTP sent successfully", messageOf(t, w))

	w = postJSON(t, r, "/verify-otp", gin.H{
		"email": "alice@example.com",
		"otp":   strconv.Itoa(mail.lastCode),
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OTP verified successfully", messageOf(t, w))

	w = postJSON(t, r, "/createaccount", gin.H{
		"email":      "alice@example.com",
		"password":   "s3cret-pass",
		"username":   "alice",
		"isVerified": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User added successfully", messageOf(t, w))

	w = postJSON(t, r, "/login", gin.H{
		"email":    "alice@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		UserID  string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "Login successful", login.Message)
	assert.NotEmpty(t, login.Token)
	assert.NotEmpty(t, login.UserID)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 23*60*60, cookies[0].MaxAge)

	w = postJSON(t, r, "/decode", gin.H{"token": login.Token})
	require.Equal(t, http.StatusOK, w.Code)

	var decoded struct {
		UserID   string `json:"userId"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, login.UserID, decoded.UserID)
	assert.Equal(t, "alice", decoded.Username)
}

func TestSendOTP_MissingEmail(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/send-otp", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is required", messageOf(t, w))
}

func TestVerifyOTP_NoCodeIssued(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/verify-otp", gin.H{"email": "alice@example.com", "otp": "123456"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No OTP found for this email", messageOf(t, w))
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	r, mail := newTestRouter(t)

	w := postJSON(t, r, "/send-otp", gin.H{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	wrong := mail.lastCode%900000 + 100000
	if wrong == mail.lastCode {
		wrong++
	}
	w = postJSON(t, r, "/verify-otp", gin.H{
		"email": "alice@example.com",
		"otp":   fmt.Sprintf("%d", wrong),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid OTP", messageOf(t, w))
}

func TestCreateAccount_WithoutVerification(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/createaccount", gin.H{
		"email":      "alice@example.com",
		"password":   "s3cret-pass",
		"username":   "alice",
		"isVerified": false,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please verify your email with OTP first", messageOf(t, w))
}

func TestLogin_UnknownUser(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/login", gin.H{"email": "nobody@example.com", "password": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", messageOf(t, w))
}

func TestDecode_MissingToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/decode", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided", messageOf(t, w))
}
