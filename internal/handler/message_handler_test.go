package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"whisper-chat/internal/domain/message"
	"whisper-chat/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededMessageRepo mirrors the store's conversation contract: union of
// both directions, created_at ascending.
type seededMessageRepo struct {
	messages []message.Message
}

func (r *seededMessageRepo) Create(_ context.Context, m *message.Message) error {
	r.messages = append(r.messages, *m)
	return nil
}

func (r *seededMessageRepo) GetConversation(_ context.Context, userID, receiverID uuid.UUID) ([]message.Message, error) {
	var out []message.Message
	for _, m := range r.messages {
		if (m.SenderID == userID && m.ReceiverID == receiverID) ||
			(m.SenderID == receiverID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func newMessageRouter(repo *seededMessageRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMessageHandler(services.NewMessageService(repo))
	r := gin.New()
	r.GET("/messages/:userId/:receiverId", h.GetConversation)
	return r
}

func TestGetConversation_BothDirectionsOrdered(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()
	base := time.Now().Add(-time.Hour)

	repo := &seededMessageRepo{}
	ctx := context.Background()
	// Seeded out of order, both directions, with an unrelated pair.
	require.NoError(t, repo.Create(ctx, &message.Message{ID: uuid.New(), SenderID: bob, ReceiverID: alice, Text: "second", CreatedAt: base.Add(2 * time.Minute)}))
	require.NoError(t, repo.Create(ctx, &message.Message{ID: uuid.New(), SenderID: alice, ReceiverID: bob, Text: "first", CreatedAt: base.Add(1 * time.Minute)}))
	require.NoError(t, repo.Create(ctx, &message.Message{ID: uuid.New(), SenderID: alice, ReceiverID: bob, Text: "third", CreatedAt: base.Add(3 * time.Minute)}))
	require.NoError(t, repo.Create(ctx, &message.Message{ID: uuid.New(), SenderID: carol, ReceiverID: alice, Text: "noise", CreatedAt: base}))

	r := newMessageRouter(repo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/messages/"+alice.String()+"/"+bob.String(), nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out []struct {
		Sender   string `json:"sender"`
		Receiver string `json:"receiver"`
		Text     string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 3)

	assert.Equal(t, "first", out[0].Text)
	assert.Equal(t, "second", out[1].Text)
	assert.Equal(t, "third", out[2].Text)

	assert.Equal(t, alice.String(), out[0].Sender)
	assert.Equal(t, bob.String(), out[1].Sender)
	assert.Equal(t, alice.String(), out[1].Receiver)
}

func TestGetConversation_InvalidID(t *testing.T) {
	r := newMessageRouter(&seededMessageRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/messages/not-a-uuid/"+uuid.New().String(), nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
