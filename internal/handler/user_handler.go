package handler

import (
	"errors"
	"net/http"

	"whisper-chat/internal/services"
	"whisper-chat/internal/transport/httpdto"
	whisper_errors "whisper-chat/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UserHandler handles user lookup and profile photo endpoints.
type UserHandler struct {
	users   *services.UserService
	uploads *services.UploadService
}

// NewUserHandler creates a user handler.
func NewUserHandler(users *services.UserService, uploads *services.UploadService) *UserHandler {
	return &UserHandler{users: users, uploads: uploads}
}

// SearchUsers matches usernames on a case-insensitive substring.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Search query is required"})
		return
	}

	found, err := h.users.SearchUsers(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpdto.MessageResponse{Message: "Server error"})
		return
	}

	out := make([]httpdto.UserDTO, 0, len(found))
	for _, u := range found {
		out = append(out, httpdto.UserDTO{
			ID:           u.ID.String(),
			Email:        u.Email,
			Username:     u.Username,
			ProfilePhoto: u.ProfilePhoto,
		})
	}
	c.JSON(http.StatusOK, out)
}

// UploadPhoto returns a presigned PUT URL for a profile photo.
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	var req httpdto.PresignPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Invalid request"})
		return
	}

	res, err := h.uploads.PresignPhoto(c.Request.Context(), services.PresignPhotoInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
	})
	if err != nil {
		switch {
		case errors.Is(err, whisper_errors.ErrNotUploaded):
			c.JSON(http.StatusServiceUnavailable, httpdto.MessageResponse{Message: "Photo uploads are not configured"})
		case errors.Is(err, whisper_errors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "An image file name and content type are required"})
		default:
			c.JSON(http.StatusInternalServerError, httpdto.MessageResponse{Message: "Server error"})
		}
		return
	}

	c.JSON(http.StatusOK, httpdto.PresignPhotoResponse{
		Message:   "Upload URL generated",
		UploadURL: res.UploadURL,
		PhotoURL:  res.PhotoURL,
		Headers:   res.Headers,
	})
}
