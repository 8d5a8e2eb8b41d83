package relay

import (
	"context"
	"time"

	"whisper-chat/internal/domain/message"
	"whisper-chat/internal/repository"
	"whisper-chat/pkg/logger"

	"github.com/google/uuid"
)

// Publisher pushes a payload onto a named channel. Satisfied by the
// Redis publisher in production.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Service routes a message from a sender to both participants' channels
// after durably recording it. Durability precedes visibility: nothing
// is emitted for a message that failed to persist.
type Service struct {
	messageRepo repository.MessageRepository
	publisher   Publisher
	log         *logger.Logger
}

func NewService(messageRepo repository.MessageRepository, publisher Publisher, log *logger.Logger) *Service {
	return &Service{
		messageRepo: messageRepo,
		publisher:   publisher,
		log:         log,
	}
}

// SendMessage persists the message, then emits a receiveMessage event
// to the sender's and the receiver's channels.
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, text string) (message.Message, error) {
	m := message.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  time.Now(),
	}

	if err := s.messageRepo.Create(ctx, &m); err != nil {
		return message.Message{}, err
	}

	payload, err := newEnvelope(EventReceiveMessage, ReceiveMessagePayload{
		Sender:    m.SenderID.String(),
		Receiver:  m.ReceiverID.String(),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	})
	if err != nil {
		return message.Message{}, err
	}

	channels := []string{UserChannel(m.SenderID.String())}
	if receiverID != senderID {
		channels = append(channels, UserChannel(m.ReceiverID.String()))
	}
	for _, channel := range channels {
		if err := s.publisher.Publish(ctx, channel, payload); err != nil {
			// The message is already durable; a failed emit only costs
			// this event's real-time delivery.
			if s.log != nil {
				s.log.Errorf("relay publish to %s failed: %s", channel, err)
			}
		}
	}

	return m, nil
}
