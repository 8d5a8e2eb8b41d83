package handler

import (
	"net/http"

	"whisper-chat/internal/services"
	"whisper-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MessageHandler handles conversation history endpoints.
type MessageHandler struct {
	messages *services.MessageService
}

// NewMessageHandler creates a message handler.
func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// GetConversation returns the message history between two users, both
// directions, oldest first.
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Invalid user id"})
		return
	}
	receiverID, err := uuid.Parse(c.Param("receiverId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.MessageResponse{Message: "Invalid user id"})
		return
	}

	history, err := h.messages.GetConversation(c.Request.Context(), userID, receiverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpdto.MessageResponse{Message: "Error fetching messages"})
		return
	}

	out := make([]httpdto.MessageDTO, 0, len(history))
	for _, m := range history {
		out = append(out, httpdto.MessageDTO{
			ID:        m.ID.String(),
			Sender:    m.SenderID.String(),
			Receiver:  m.ReceiverID.String(),
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
