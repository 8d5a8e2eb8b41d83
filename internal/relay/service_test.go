package relay

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"whisper-chat/internal/domain/message"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageRepo struct {
	created []message.Message
	fail    bool
}

func (r *fakeMessageRepo) Create(_ context.Context, m *message.Message) error {
	if r.fail {
		return errors.New("insert failed")
	}
	r.created = append(r.created, *m)
	return nil
}

func (r *fakeMessageRepo) GetConversation(_ context.Context, userID, receiverID uuid.UUID) ([]message.Message, error) {
	return nil, nil
}

type publishCall struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	calls []publishCall
	fail  bool
}

func (p *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	if p.fail {
		return errors.New("redis down")
	}
	p.calls = append(p.calls, publishCall{channel: channel, payload: payload})
	return nil
}

func TestSendMessage_PersistFailureEmitsNothing(t *testing.T) {
	repo := &fakeMessageRepo{fail: true}
	pub := &fakePublisher{}
	svc := NewService(repo, pub, nil)

	_, err := svc.SendMessage(context.Background(), uuid.New(), uuid.New(), "hello")
	require.Error(t, err)
	assert.Empty(t, pub.calls, "nothing may be published for an unpersisted message")
}

func TestSendMessage_PublishesToBothParticipants(t *testing.T) {
	repo := &fakeMessageRepo{}
	pub := &fakePublisher{}
	svc := NewService(repo, pub, nil)

	sender := uuid.New()
	receiver := uuid.New()
	m, err := svc.SendMessage(context.Background(), sender, receiver, "hello")
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, m.ID, repo.created[0].ID)

	require.Len(t, pub.calls, 2)
	assert.Equal(t, UserChannel(sender.String()), pub.calls[0].channel)
	assert.Equal(t, UserChannel(receiver.String()), pub.calls[1].channel)
	assert.Equal(t, pub.calls[0].payload, pub.calls[1].payload, "both participants receive the identical payload")

	var env Envelope
	require.NoError(t, json.Unmarshal(pub.calls[0].payload, &env))
	assert.Equal(t, EventReceiveMessage, env.Event)

	var p ReceiveMessagePayload
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, sender.String(), p.Sender)
	assert.Equal(t, receiver.String(), p.Receiver)
	assert.Equal(t, "hello", p.Text)
}

func TestSendMessage_SelfMessagePublishesOnce(t *testing.T) {
	repo := &fakeMessageRepo{}
	pub := &fakePublisher{}
	svc := NewService(repo, pub, nil)

	self := uuid.New()
	_, err := svc.SendMessage(context.Background(), self, self, "note to self")
	require.NoError(t, err)
	assert.Len(t, pub.calls, 1)
}

func TestSendMessage_PublishFailureStillReturnsMessage(t *testing.T) {
	repo := &fakeMessageRepo{}
	pub := &fakePublisher{fail: true}
	svc := NewService(repo, pub, nil)

	m, err := svc.SendMessage(context.Background(), uuid.New(), uuid.New(), "hello")
	require.NoError(t, err, "the message is durable even when fan-out fails")
	assert.Len(t, repo.created, 1)
	assert.Equal(t, "hello", m.Text)
}
