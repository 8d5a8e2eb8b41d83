package repository

import (
	"context"

	"whisper-chat/internal/domain/message"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO messages (id, sender_id, receiver_id, text, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.SenderID, m.ReceiverID, m.Text, m.CreatedAt)
	return err
}

// GetConversation returns messages exchanged in both directions between the
// two users, ordered by creation time ascending.
func (r *PostgresMessageRepository) GetConversation(ctx context.Context, userID, receiverID uuid.UUID) ([]message.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sender_id, receiver_id, text, created_at
		 FROM messages
		 WHERE (sender_id = $1 AND receiver_id = $2)
		    OR (sender_id = $2 AND receiver_id = $1)
		 ORDER BY created_at ASC`,
		userID, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []message.Message{}
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
