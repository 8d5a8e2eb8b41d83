package message

import (
	"time"

	"github.com/google/uuid"
)

// Message is an append-only chat message between two users.
// Ordering key is CreatedAt ascending.
type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender"`
	ReceiverID uuid.UUID `json:"receiver"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}
