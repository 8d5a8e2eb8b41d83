package services

import (
	"context"
	"path"
	"strings"

	"whisper-chat/internal/storage"
	whisper_errors "whisper-chat/pkg/errors"

	"github.com/google/uuid"
)

// UploadService issues presigned S3 PUT URLs for profile photos. The
// returned public URL is what clients pass as profilephoto at account
// creation.
type UploadService struct {
	storage *storage.Client
}

type PresignPhotoInput struct {
	FileName    string
	ContentType string
	FileSize    int64
}

type PresignPhotoResult struct {
	UploadURL string
	PhotoURL  string
	Headers   map[string]string
}

func NewUploadService(storage *storage.Client) *UploadService {
	return &UploadService{storage: storage}
}

func (s *UploadService) PresignPhoto(ctx context.Context, in PresignPhotoInput) (PresignPhotoResult, error) {
	if s.storage == nil {
		return PresignPhotoResult{}, whisper_errors.ErrNotUploaded
	}
	if in.FileName == "" || !strings.HasPrefix(in.ContentType, "image/") {
		return PresignPhotoResult{}, whisper_errors.ErrInvalidInput
	}

	key := "profile-photos/" + uuid.New().String() + path.Ext(in.FileName)
	uploadURL, headers, err := s.storage.PresignPut(ctx, key, in.ContentType, in.FileSize)
	if err != nil {
		return PresignPhotoResult{}, err
	}

	return PresignPhotoResult{
		UploadURL: uploadURL,
		PhotoURL:  s.storage.FileURL(key),
		Headers:   headers,
	}, nil
}
