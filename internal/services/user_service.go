package services

import (
	"context"

	"whisper-chat/internal/domain/user"
	"whisper-chat/internal/repository"
	whisper_errors "whisper-chat/pkg/errors"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SearchUsers matches usernames case-insensitively on a substring.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]user.User, error) {
	if query == "" {
		return nil, whisper_errors.ErrInvalidInput
	}
	return s.userRepo.SearchUsers(ctx, query)
}
