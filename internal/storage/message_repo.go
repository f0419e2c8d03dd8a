package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_message_store.go -package=mocks coursemate-ai/internal/storage MessageStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MessageStore defines the interface for chat message storage operations.
type MessageStore interface {
	// Insert appends a message to a chat. Each call is its own
	// transaction; the USER and BOT halves of a turn are committed
	// separately so the question survives a failed reply.
	Insert(ctx context.Context, msg *Message) error
	// ListByChat returns all messages for a chat, oldest first.
	ListByChat(ctx context.Context, chatID int) ([]Message, error)
}

// MessageRepo provides methods for chat message operations.
// It implements the MessageStore interface.
type MessageRepo struct {
	db *sql.DB
}

// NewMessageRepo creates a new MessageRepo.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Insert appends a message. On success msg.ID and msg.CreatedAt are set.
func (r *MessageRepo) Insert(ctx context.Context, msg *Message) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO chat_messages (chat_id, sender, body, sources) VALUES (?, ?, ?, ?)",
		msg.ChatID, msg.Sender, msg.Body, msg.Sources,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read message id: %w", err)
	}
	msg.ID = id
	msg.CreatedAt = time.Now().UTC()
	return nil
}

// ListByChat returns all messages for a chat, oldest first.
func (r *MessageRepo) ListByChat(ctx context.Context, chatID int) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, chat_id, sender, body, sources, created_at
		 FROM chat_messages WHERE chat_id = ?
		 ORDER BY created_at ASC, id ASC`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var messages []Message
	for rows.Next() {
		var msg Message
		var createdAtStr string
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Sender, &msg.Body, &msg.Sources, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.CreatedAt = parseTimestamp(createdAtStr)
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return messages, nil
}
