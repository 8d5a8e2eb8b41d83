package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"whisper-chat/internal/services"
	"whisper-chat/internal/transport/httpdto"
	"whisper-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var readDeadline = 60 * time.Second

// Handler upgrades relay connections. A connection must present a valid
// session token before the upgrade; the token's userId is the only
// channel identity the connection may join or send as.
type Handler struct {
	auth  *services.AuthService
	relay *Service
	hub   *Hub
	log   *logger.Logger
}

func NewHandler(auth *services.AuthService, relay *Service, hub *Hub, log *logger.Logger) *Handler {
	return &Handler{auth: auth, relay: relay, hub: hub, log: log}
}

func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	claims, err := h.auth.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.MessageResponse{Message: "unauthorized"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, claims.UserID)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	go client.WriteLoop(ctx)

	// A receive-only client never sends data frames; its pongs to our
	// pings must keep the read deadline moving too.
	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		h.handleEnvelope(c.Request.Context(), client, raw)
	}

	h.hub.Unregister(client)
}

func (h *Handler) handleEnvelope(ctx context.Context, client *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.sendError(client, "malformed event")
		return
	}

	switch env.Event {
	case EventJoin:
		h.handleJoin(client, env.Data)
	case EventSendMessage:
		h.handleSendMessage(ctx, client, env.Data)
	default:
		h.sendError(client, "unknown event")
	}
}

func (h *Handler) handleJoin(client *Client, data json.RawMessage) {
	var p JoinPayload
	if err := json.Unmarshal(data, &p); err != nil || p.UserID == "" {
		h.sendError(client, "userId is required")
		return
	}
	// The channel must match the identity the token established.
	if p.UserID != client.UserID {
		h.sendError(client, "cannot join another user's channel")
		return
	}
	h.hub.Join(client, UserChannel(p.UserID))
}

func (h *Handler) handleSendMessage(ctx context.Context, client *Client, data json.RawMessage) {
	var p SendMessagePayload
	if err := json.Unmarshal(data, &p); err != nil || p.SenderID == "" || p.ReceiverID == "" || p.Text == "" {
		h.sendError(client, "senderId, receiverId and text are required")
		return
	}
	if p.SenderID != client.UserID {
		h.sendError(client, "cannot send as another user")
		return
	}

	senderID, err := uuid.Parse(p.SenderID)
	if err != nil {
		h.sendError(client, "invalid senderId")
		return
	}
	receiverID, err := uuid.Parse(p.ReceiverID)
	if err != nil {
		h.sendError(client, "invalid receiverId")
		return
	}

	if _, err := h.relay.SendMessage(ctx, senderID, receiverID, p.Text); err != nil {
		if h.log != nil {
			h.log.Errorf("send message failed: %s", err)
		}
		h.sendError(client, "failed to send message")
	}
}

func (h *Handler) sendError(client *Client, msg string) {
	payload, err := newEnvelope(EventError, ErrorPayload{Message: msg})
	if err != nil {
		return
	}
	client.SendMessage(payload)
}
