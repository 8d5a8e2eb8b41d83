package repository

import (
	"context"

	"github.com/google/uuid"

	"whisper-chat/internal/domain/message"
	"whisper-chat/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
	SearchUsers(ctx context.Context, query string) ([]user.User, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetConversation(ctx context.Context, userID, receiverID uuid.UUID) ([]message.Message, error)
}
