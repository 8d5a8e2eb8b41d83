package services

import (
	"context"

	"whisper-chat/internal/domain/message"
	"whisper-chat/internal/repository"

	"github.com/google/uuid"
)

type MessageService struct {
	messageRepo repository.MessageRepository
}

func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// GetConversation returns the full history between two users in both
// directions, ordered by creation time ascending.
func (s *MessageService) GetConversation(ctx context.Context, userID, receiverID uuid.UUID) ([]message.Message, error) {
	return s.messageRepo.GetConversation(ctx, userID, receiverID)
}
