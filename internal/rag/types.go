package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_clients.go -package=mocks coursemate-ai/internal/rag Retriever,LocalSource,Generator

import (
	"context"

	"coursemate-ai/internal/retrieval"
	"coursemate-ai/internal/storage"
)

// Retriever is the engine's view of the primary retrieval path.
// Defined from the consumer's perspective; retrieval.Adapter implements it.
type Retriever interface {
	Retrieve(ctx context.Context, question string, scope retrieval.Scope, maxResults int, allowUnfiltered bool) ([]retrieval.Excerpt, error)
}

// LocalSource is the engine's view of the fallback retrieval path.
// retrieval.LocalRetriever implements it.
type LocalSource interface {
	RetrieveLocal(ctx context.Context, question string, scope retrieval.Scope) ([]storage.ChunkWithDocument, error)
}

// Generator is the engine's view of the LLM completion service.
// llm.Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Citation source types.
const (
	CitationRetrieved    = "retrieved"
	CitationLocalSnippet = "local-snippet"
)

// Citation is a display-only projection of a retrieved excerpt or
// local chunk. It is never fed back into retrieval.
type Citation struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Page      *int   `json:"page,omitempty"`
	URI       string `json:"uri,omitempty"`
	Relevance string `json:"relevance,omitempty"`
}

// AnswerRequest is one incoming chat message.
type AnswerRequest struct {
	ChatID    int
	StudentID int
	Question  string
}

// AnswerResponse is the reply for one chat turn.
type AnswerResponse struct {
	// Answer is the generated (possibly degraded) answer text.
	Answer string `json:"answer"`
	// Sources lists the citations backing the answer. Empty when the
	// model declared the context insufficient.
	Sources []Citation `json:"sources"`
	// ChatTitle is the newly derived chat title, or nil when the chat
	// was already titled.
	ChatTitle *string `json:"chat_title"`
}
