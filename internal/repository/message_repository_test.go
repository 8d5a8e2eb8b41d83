package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"whisper-chat/internal/domain/message"
	"whisper-chat/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration tests against a real Postgres with the migrations applied.
// Gated on TEST_DATABASE_URL so the suite stays runnable without one.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(context.Background()))
	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, users UserRepository, name string) user.User {
	t.Helper()
	u := user.User{
		ID:           uuid.New(),
		Email:        name + "+" + uuid.New().String() + "@example.com",
		Username:     name + "-" + uuid.New().String(),
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, users.Create(context.Background(), &u))
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func seedMessage(t *testing.T, pool *pgxpool.Pool, messages MessageRepository, m message.Message) {
	t.Helper()
	require.NoError(t, messages.Create(context.Background(), &m))
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM messages WHERE id = $1`, m.ID)
	})
}

func TestGetConversation_UnionOfBothDirectionsAscending(t *testing.T) {
	pool := testPool(t)
	users := NewUserRepository(pool)
	messages := NewMessageRepository(pool)
	ctx := context.Background()

	alice := seedUser(t, pool, users, "alice")
	bob := seedUser(t, pool, users, "bob")
	carol := seedUser(t, pool, users, "carol")

	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)

	// Inserted out of order and in both directions, plus an unrelated
	// pair that must not leak into the result.
	seedMessage(t, pool, messages, message.Message{
		ID: uuid.New(), SenderID: bob.ID, ReceiverID: alice.ID,
		Text: "second", CreatedAt: base.Add(2 * time.Minute),
	})
	seedMessage(t, pool, messages, message.Message{
		ID: uuid.New(), SenderID: alice.ID, ReceiverID: bob.ID,
		Text: "first", CreatedAt: base.Add(1 * time.Minute),
	})
	seedMessage(t, pool, messages, message.Message{
		ID: uuid.New(), SenderID: alice.ID, ReceiverID: bob.ID,
		Text: "third", CreatedAt: base.Add(3 * time.Minute),
	})
	seedMessage(t, pool, messages, message.Message{
		ID: uuid.New(), SenderID: carol.ID, ReceiverID: alice.ID,
		Text: "noise", CreatedAt: base,
	})

	got, err := messages.GetConversation(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	texts := []string{got[0].Text, got[1].Text, got[2].Text}
	assert.Equal(t, []string{"first", "second", "third"}, texts)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.Before(got[i-1].CreatedAt),
			"messages must be ordered by created_at ascending")
	}

	// Both directions are present.
	assert.Equal(t, alice.ID, got[0].SenderID)
	assert.Equal(t, bob.ID, got[1].SenderID)

	// The query is symmetric in its arguments.
	flipped, err := messages.GetConversation(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, got, flipped)
}

func TestGetConversation_EmptyForStrangers(t *testing.T) {
	pool := testPool(t)
	users := NewUserRepository(pool)
	messages := NewMessageRepository(pool)

	alice := seedUser(t, pool, users, "alice")
	bob := seedUser(t, pool, users, "bob")

	got, err := messages.GetConversation(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
