package httpdto

import "time"

// MessageDTO represents a chat message in API responses
type MessageDTO struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
