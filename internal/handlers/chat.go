package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"coursemate-ai/internal/contextutil"
	"coursemate-ai/internal/rag"
	"coursemate-ai/internal/storage"
)

// ChatHandler handles HTTP requests for chats and chat messages.
type ChatHandler struct {
	chats     storage.ChatStore
	messages  storage.MessageStore
	academics storage.AcademicsStore
	engine    rag.Engine
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chats storage.ChatStore, messages storage.MessageStore, academics storage.AcademicsStore, engine rag.Engine) *ChatHandler {
	return &ChatHandler{
		chats:     chats,
		messages:  messages,
		academics: academics,
		engine:    engine,
	}
}

// StartChatRequest represents the payload for creating a chat.
// Exactly one of subject_id and branch_id must be set.
type StartChatRequest struct {
	SubjectID *int `json:"subject_id"`
	BranchID  *int `json:"branch_id"`
}

// ChatResponse represents a chat in API responses.
type ChatResponse struct {
	ID          int     `json:"id"`
	SubjectID   *int    `json:"subject_id"`
	BranchID    *int    `json:"branch_id"`
	Title       string  `json:"title"`
	SubjectName *string `json:"subject_name,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// MessageResponse represents a stored chat message in API responses.
type MessageResponse struct {
	ID        int64           `json:"id"`
	Sender    string          `json:"sender"`
	Body      string          `json:"body"`
	Sources   json.RawMessage `json:"sources"`
	CreatedAt string          `json:"created_at"`
}

// SendMessageRequest represents the payload for one chat turn.
type SendMessageRequest struct {
	Message string `json:"message"`
}

// StartChat creates a chat scoped to a subject or branch the student's
// university owns.
func (h *ChatHandler) StartChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	studentID, ok := contextutil.StudentFromContext(ctx)
	if !ok {
		writeError(ctx, w, http.StatusUnauthorized, "Missing student identity")
		return
	}

	var req StartChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if (req.SubjectID == nil) == (req.BranchID == nil) {
		writeError(ctx, w, http.StatusBadRequest, "Exactly one of subject_id and branch_id is required")
		return
	}

	student, err := h.academics.StudentByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusUnauthorized, "Unknown student")
			return
		}
		logger.ErrorContext(ctx, "failed to load student", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to create chat")
		return
	}

	// The chat starts titled after its scope; the first question
	// replaces the placeholder.
	var title string
	switch {
	case req.SubjectID != nil:
		scope, err := h.academics.SubjectScope(ctx, *req.SubjectID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(ctx, w, http.StatusNotFound, "Subject not found")
				return
			}
			logger.ErrorContext(ctx, "failed to resolve subject", "error", err)
			writeError(ctx, w, http.StatusInternalServerError, "Failed to create chat")
			return
		}
		if scope.UniversityID != student.UniversityID {
			writeError(ctx, w, http.StatusForbidden, "Subject belongs to another university")
			return
		}
		title = scope.Name
	default:
		branch, err := h.academics.BranchByID(ctx, *req.BranchID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeError(ctx, w, http.StatusNotFound, "Branch not found")
				return
			}
			logger.ErrorContext(ctx, "failed to resolve branch", "error", err)
			writeError(ctx, w, http.StatusInternalServerError, "Failed to create chat")
			return
		}
		if branch.UniversityID != student.UniversityID {
			writeError(ctx, w, http.StatusForbidden, "Branch belongs to another university")
			return
		}
		title = branch.Name
	}

	chat := &storage.Chat{
		StudentID: studentID,
		SubjectID: req.SubjectID,
		BranchID:  req.BranchID,
		Title:     title,
	}
	if err := h.chats.Create(ctx, chat); err != nil {
		logger.ErrorContext(ctx, "failed to create chat", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to create chat")
		return
	}

	logger.InfoContext(ctx, "chat created", "chat_id", chat.ID, "student_id", studentID)
	writeJSON(ctx, w, http.StatusCreated, chatToResponse(chat, nil))
}

// ListChats returns the requesting student's chats, newest first.
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	studentID, ok := contextutil.StudentFromContext(ctx)
	if !ok {
		writeError(ctx, w, http.StatusUnauthorized, "Missing student identity")
		return
	}

	summaries, err := h.chats.ListByStudent(ctx, studentID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list chats", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to list chats")
		return
	}

	resp := make([]ChatResponse, 0, len(summaries))
	for i := range summaries {
		resp = append(resp, chatToResponse(&summaries[i].Chat, summaries[i].SubjectName))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// ListMessages returns a chat's full message history, oldest first.
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	studentID, ok := contextutil.StudentFromContext(ctx)
	if !ok {
		writeError(ctx, w, http.StatusUnauthorized, "Missing student identity")
		return
	}

	chatID, err := strconv.Atoi(chi.URLParam(r, "chatID"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid chat id")
		return
	}

	chat, err := h.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Chat not found")
			return
		}
		logger.ErrorContext(ctx, "failed to load chat", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to load messages")
		return
	}
	if chat.StudentID != studentID {
		writeError(ctx, w, http.StatusNotFound, "Chat not found")
		return
	}

	messages, err := h.messages.ListByChat(ctx, chatID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list messages", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to load messages")
		return
	}

	resp := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		item := MessageResponse{
			ID:        msg.ID,
			Sender:    msg.Sender,
			Body:      msg.Body,
			CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339),
		}
		if msg.Sources != nil {
			item.Sources = json.RawMessage(*msg.Sources)
		}
		resp = append(resp, item)
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// SendMessage runs one tutor turn on the chat.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	studentID, ok := contextutil.StudentFromContext(ctx)
	if !ok {
		writeError(ctx, w, http.StatusUnauthorized, "Missing student identity")
		return
	}

	chatID, err := strconv.Atoi(chi.URLParam(r, "chatID"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid chat id")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(ctx, w, http.StatusBadRequest, "Message is required")
		return
	}

	answer, err := h.engine.Answer(ctx, rag.AnswerRequest{
		ChatID:    chatID,
		StudentID: studentID,
		Question:  strings.TrimSpace(req.Message),
	})
	if err != nil {
		if errors.Is(err, rag.ErrChatAccess) {
			writeError(ctx, w, http.StatusNotFound, "Chat not found")
			return
		}
		logger.ErrorContext(ctx, "chat turn failed", "error", err, "chat_id", chatID)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	writeJSON(ctx, w, http.StatusOK, answer)
}

// chatToResponse converts a stored chat to its API shape.
func chatToResponse(chat *storage.Chat, subjectName *string) ChatResponse {
	return ChatResponse{
		ID:          chat.ID,
		SubjectID:   chat.SubjectID,
		BranchID:    chat.BranchID,
		Title:       chat.Title,
		SubjectName: subjectName,
		CreatedAt:   chat.CreatedAt.UTC().Format(time.RFC3339),
	}
}
