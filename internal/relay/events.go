package relay

import (
	"encoding/json"
	"time"
)

// Wire events exchanged over the relay connection.
const (
	EventJoin           = "join"
	EventSendMessage    = "sendMessage"
	EventReceiveMessage = "receiveMessage"
	EventError          = "error"
)

// ChannelPrefixUser is the Redis channel namespace for per-user fan-out.
const ChannelPrefixUser = "channel:user:"

// UserChannel names the logical channel for a user's connections.
func UserChannel(userID string) string {
	return ChannelPrefixUser + userID
}

// Envelope frames every client<->server relay message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinPayload struct {
	UserID string `json:"userId"`
}

type SendMessagePayload struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
}

type ReceiveMessagePayload struct {
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func newEnvelope(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}
