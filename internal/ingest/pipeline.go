package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"coursemate-ai/internal/contextutil"
	"coursemate-ai/internal/storage"
)

// Result reports what an ingestion run produced.
type Result struct {
	DocumentID string `json:"document_id"`
	Chunks     int    `json:"chunks"`
}

// Pipeline turns raw material text into a stored document plus
// keyword-tagged chunks for the local fallback retriever.
type Pipeline struct {
	materials storage.MaterialStore
	chunker   *Chunker
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(materials storage.MaterialStore) *Pipeline {
	return &Pipeline{
		materials: materials,
		chunker:   NewChunker(),
	}
}

// Ingest chunks the content, extracts keywords per chunk, and persists
// the document and its chunks. Content may be markdown or plain text.
func (p *Pipeline) Ingest(ctx context.Context, subjectID int, title, content string) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	chunks := p.chunker.ChunkText(content, title)
	if len(chunks) == 0 {
		return Result{}, fmt.Errorf("material %q produced no chunks", title)
	}

	doc := &storage.MaterialDocument{
		ID:         uuid.New().String(),
		SubjectID:  subjectID,
		Title:      title,
		SourceType: "manual",
	}
	if err := p.materials.InsertDocument(ctx, doc); err != nil {
		return Result{}, fmt.Errorf("failed to store material document: %w", err)
	}

	for _, chunk := range chunks {
		keywords := ExtractKeywords(chunk.Heading, chunk.Text)
		row := &storage.MaterialChunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ChunkIndex: chunk.Index,
			Heading:    chunk.Heading,
			Text:       chunk.Text,
			Keywords:   strings.Join(keywords, ","),
		}
		if err := p.materials.InsertChunk(ctx, row); err != nil {
			return Result{}, fmt.Errorf("failed to store chunk %d: %w", chunk.Index, err)
		}
	}

	logger.InfoContext(ctx, "material ingested",
		"document_id", doc.ID,
		"subject_id", subjectID,
		"chunks", len(chunks),
	)

	return Result{DocumentID: doc.ID, Chunks: len(chunks)}, nil
}
