package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_store.go -package=mocks coursemate-ai/internal/storage ChatStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ChatStore defines the interface for chat storage operations.
type ChatStore interface {
	// Create inserts a chat scoped to a subject or a branch.
	Create(ctx context.Context, chat *Chat) error
	// GetByID gets a chat by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id int) (*Chat, error)
	// ListByStudent returns the student's chats, newest first.
	ListByStudent(ctx context.Context, studentID int) ([]ChatSummary, error)
	// UpdateTitle sets the chat title.
	UpdateTitle(ctx context.Context, id int, title string) error
}

// ChatRepo provides methods for chat operations.
// It implements the ChatStore interface.
type ChatRepo struct {
	db *sql.DB
}

// NewChatRepo creates a new ChatRepo.
func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// Create inserts a chat. On success chat.ID and chat.CreatedAt are set.
func (r *ChatRepo) Create(ctx context.Context, chat *Chat) error {
	if chat.Title == "" {
		chat.Title = "New chat"
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO chats (student_id, subject_id, branch_id, title) VALUES (?, ?, ?, ?)",
		chat.StudentID, chat.SubjectID, chat.BranchID, chat.Title,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read chat id: %w", err)
	}
	chat.ID = int(id)
	chat.CreatedAt = time.Now().UTC()
	return nil
}

// GetByID gets a chat by ID.
func (r *ChatRepo) GetByID(ctx context.Context, id int) (*Chat, error) {
	var chat Chat
	var createdAtStr string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, student_id, subject_id, branch_id, title, created_at FROM chats WHERE id = ?",
		id,
	).Scan(&chat.ID, &chat.StudentID, &chat.SubjectID, &chat.BranchID, &chat.Title, &createdAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chat: %w", err)
	}

	chat.CreatedAt = parseTimestamp(createdAtStr)
	return &chat, nil
}

// ListByStudent returns the student's chats with subject names, newest first.
func (r *ChatRepo) ListByStudent(ctx context.Context, studentID int) ([]ChatSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.student_id, c.subject_id, c.branch_id, c.title, c.created_at, s.name
		 FROM chats c
		 LEFT JOIN subjects s ON c.subject_id = s.id
		 WHERE c.student_id = ?
		 ORDER BY c.created_at DESC, c.id DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chats []ChatSummary
	for rows.Next() {
		var summary ChatSummary
		var createdAtStr string
		if err := rows.Scan(
			&summary.ID, &summary.StudentID, &summary.SubjectID, &summary.BranchID,
			&summary.Title, &createdAtStr, &summary.SubjectName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		summary.CreatedAt = parseTimestamp(createdAtStr)
		chats = append(chats, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chats, nil
}

// UpdateTitle sets the chat title.
func (r *ChatRepo) UpdateTitle(ctx context.Context, id int, title string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE chats SET title = ? WHERE id = ?", title, id)
	if err != nil {
		return fmt.Errorf("failed to update chat title: %w", err)
	}
	return nil
}

// parseTimestamp parses a SQLite DATETIME column value. SQLite stores
// CURRENT_TIMESTAMP as "2006-01-02 15:04:05"; a zero time is returned
// for anything unparseable rather than failing the read.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
