package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"coursemate-ai/internal/contextutil"
	"coursemate-ai/internal/retrieval"
	"coursemate-ai/internal/storage"
)

// ErrChatAccess is returned when the chat does not exist or does not
// belong to the requesting student.
var ErrChatAccess = errors.New("chat not found or access denied")

// Engine runs one retrieval-augmented tutor turn per incoming message.
type Engine interface {
	// Answer retrieves grounding material for the question, generates a
	// tutor reply, and persists the USER/BOT message pair.
	Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error)
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	retriever  Retriever
	local      LocalSource
	generator  Generator
	chats      storage.ChatStore
	messages   storage.MessageStore
	academics  storage.AcademicsStore
	maxResults int
	logger     *slog.Logger
}

// NewEngine creates a new tutor engine. All clients are injected and
// reused for the process lifetime; the engine holds no global state.
func NewEngine(
	retriever Retriever,
	local LocalSource,
	generator Generator,
	chats storage.ChatStore,
	messages storage.MessageStore,
	academics storage.AcademicsStore,
	maxResults int,
) Engine {
	return &ragEngine{
		retriever:  retriever,
		local:      local,
		generator:  generator,
		chats:      chats,
		messages:   messages,
		academics:  academics,
		maxResults: maxResults,
		logger:     slog.Default(),
	}
}

// Answer runs the full turn. Retrieval and generation are the only
// steps allowed to fail without aborting: retrieval degrades to the
// local fallback and generation degrades to an error-text answer, so a
// reply is always produced and persisted. Everything else (ownership,
// scope, persistence) fails loudly to the caller.
func (e *ragEngine) Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	chat, err := e.chats.GetByID(ctx, req.ChatID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return AnswerResponse{}, ErrChatAccess
		}
		return AnswerResponse{}, fmt.Errorf("failed to load chat: %w", err)
	}
	if chat.StudentID != req.StudentID {
		return AnswerResponse{}, ErrChatAccess
	}

	scope, scopeLabel, err := e.resolveScope(ctx, chat)
	if err != nil {
		return AnswerResponse{}, err
	}

	logger.InfoContext(ctx, "chat turn started",
		"chat_id", chat.ID,
		"subject", scopeLabel,
		"question_length", len(req.Question),
	)

	items := e.retrieveItems(ctx, req.Question, scope)
	contextText, citations := buildContext(items)
	prompt := BuildPrompt(scopeLabel, contextText, req.Question)

	logger.DebugContext(ctx, "context assembled",
		"context_length", len(contextText),
		"citations", len(citations),
	)

	// Persist the question before the model call so it is durably
	// recorded even if generation fails. The USER and BOT messages are
	// two separate commits; a crash in between leaves an unanswered
	// question, which is a valid state.
	userMsg := &storage.Message{ChatID: chat.ID, Sender: "USER", Body: req.Question}
	if err := e.messages.Insert(ctx, userMsg); err != nil {
		return AnswerResponse{}, fmt.Errorf("failed to persist user message: %w", err)
	}

	var updatedTitle *string
	if title, ok := DeriveTitle(chat.Title, scopeLabel, req.Question); ok {
		if err := e.chats.UpdateTitle(ctx, chat.ID, title); err != nil {
			logger.ErrorContext(ctx, "failed to update chat title", "error", err)
		} else {
			updatedTitle = &title
		}
	}

	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "generation failed, returning degraded answer", "error", err)
		answer = fmt.Sprintf("Error: %s", err.Error())
	}

	finalSources, insufficient := FinalizeSources(answer, citations)
	if insufficient {
		logger.InfoContext(ctx, "answer declared context insufficient, citations suppressed",
			"suppressed", len(citations))
	}

	botMsg := &storage.Message{ChatID: chat.ID, Sender: "BOT", Body: answer, Sources: marshalSources(finalSources)}
	if err := e.messages.Insert(ctx, botMsg); err != nil {
		return AnswerResponse{}, fmt.Errorf("failed to persist bot message: %w", err)
	}

	logger.InfoContext(ctx, "chat turn completed",
		"chat_id", chat.ID,
		"answer_length", len(answer),
		"sources", len(finalSources),
	)

	return AnswerResponse{
		Answer:    answer,
		Sources:   finalSources,
		ChatTitle: updatedTitle,
	}, nil
}

// resolveScope maps the chat to its retrieval scope and display label.
func (e *ragEngine) resolveScope(ctx context.Context, chat *storage.Chat) (retrieval.Scope, string, error) {
	switch {
	case chat.SubjectID != nil:
		subject, err := e.academics.SubjectScope(ctx, *chat.SubjectID)
		if err != nil {
			return retrieval.Scope{}, "", fmt.Errorf("failed to resolve subject scope: %w", err)
		}
		return retrieval.Scope{UniversityID: subject.UniversityID, SubjectID: subject.SubjectID}, subject.Name, nil
	case chat.BranchID != nil:
		branch, err := e.academics.BranchByID(ctx, *chat.BranchID)
		if err != nil {
			return retrieval.Scope{}, "", fmt.Errorf("failed to resolve branch scope: %w", err)
		}
		return retrieval.Scope{UniversityID: branch.UniversityID, BranchID: branch.ID}, branch.Name, nil
	default:
		return retrieval.Scope{}, "", retrieval.ErrInvalidScope
	}
}

// retrieveItems runs the primary retrieval path and falls back to the
// local keyword retriever when the primary is unconfigured, fails, or
// accepts nothing. It never fails: the worst case is an empty context.
func (e *ragEngine) retrieveItems(ctx context.Context, question string, scope retrieval.Scope) []contextItem {
	logger := contextutil.LoggerFromContext(ctx)

	excerpts, err := e.retriever.Retrieve(ctx, question, scope, e.maxResults, false)
	switch {
	case errors.Is(err, retrieval.ErrNotConfigured):
		logger.InfoContext(ctx, "search index not configured, using local fallback")
	case err != nil:
		logger.WarnContext(ctx, "primary retrieval failed, using local fallback", "error", err)
	case len(excerpts) > 0:
		return itemsFromExcerpts(excerpts)
	default:
		logger.InfoContext(ctx, "primary retrieval accepted nothing, using local fallback")
	}

	chunks, err := e.local.RetrieveLocal(ctx, question, scope)
	if err != nil {
		logger.ErrorContext(ctx, "local retrieval failed, answering without context", "error", err)
		return nil
	}
	return itemsFromChunks(chunks)
}

// marshalSources serializes citations for the message row, or nil when
// there are none so the column stays NULL.
func marshalSources(citations []Citation) *string {
	if len(citations) == 0 {
		return nil
	}
	data, err := json.Marshal(citations)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}
