package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_material_store.go -package=mocks coursemate-ai/internal/storage MaterialStore

import (
	"context"
	"database/sql"
	"fmt"
)

// MaterialStore defines the interface for material document and chunk
// storage operations. The fallback retriever reads chunks through this
// interface; the ingestion pipeline writes them.
type MaterialStore interface {
	// InsertDocument inserts a material document. document.ID must be
	// set (UUID) before calling.
	InsertDocument(ctx context.Context, doc *MaterialDocument) error
	// InsertChunk inserts a material chunk. chunk.ID must be set (UUID)
	// before calling.
	InsertChunk(ctx context.Context, chunk *MaterialChunk) error
	// ListChunksBySubject returns all chunks for a subject's documents,
	// in storage order.
	ListChunksBySubject(ctx context.Context, subjectID int) ([]ChunkWithDocument, error)
	// ListChunksByBranch returns all chunks across every subject under
	// a branch, in storage order.
	ListChunksByBranch(ctx context.Context, branchID int) ([]ChunkWithDocument, error)
}

// MaterialRepo provides methods for material operations.
// It implements the MaterialStore interface.
type MaterialRepo struct {
	db *sql.DB
}

// NewMaterialRepo creates a new MaterialRepo.
func NewMaterialRepo(db *sql.DB) *MaterialRepo {
	return &MaterialRepo{db: db}
}

// InsertDocument inserts a material document.
func (r *MaterialRepo) InsertDocument(ctx context.Context, doc *MaterialDocument) error {
	if doc.SourceType == "" {
		doc.SourceType = "manual"
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO material_documents (id, subject_id, title, storage_key, source_type) VALUES (?, ?, ?, ?, ?)",
		doc.ID, doc.SubjectID, doc.Title, doc.StorageKey, doc.SourceType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert material document: %w", err)
	}
	return nil
}

// InsertChunk inserts a material chunk.
func (r *MaterialRepo) InsertChunk(ctx context.Context, chunk *MaterialChunk) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO material_chunks (id, document_id, chunk_index, heading, text, keywords, page_number) VALUES (?, ?, ?, ?, ?, ?, ?)",
		chunk.ID, chunk.DocumentID, chunk.ChunkIndex, chunk.Heading, chunk.Text, chunk.Keywords, chunk.PageNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to insert material chunk: %w", err)
	}
	return nil
}

// ListChunksBySubject returns all chunks for a subject's documents.
func (r *MaterialRepo) ListChunksBySubject(ctx context.Context, subjectID int) ([]ChunkWithDocument, error) {
	return r.listChunks(ctx,
		`SELECT c.id, c.document_id, c.chunk_index, c.heading, c.text, c.keywords, c.page_number, d.title
		 FROM material_chunks c
		 JOIN material_documents d ON c.document_id = d.id
		 WHERE d.subject_id = ?
		 ORDER BY d.created_at ASC, c.chunk_index ASC`,
		subjectID,
	)
}

// ListChunksByBranch returns all chunks across every subject under a branch.
func (r *MaterialRepo) ListChunksByBranch(ctx context.Context, branchID int) ([]ChunkWithDocument, error) {
	return r.listChunks(ctx,
		`SELECT c.id, c.document_id, c.chunk_index, c.heading, c.text, c.keywords, c.page_number, d.title
		 FROM material_chunks c
		 JOIN material_documents d ON c.document_id = d.id
		 JOIN subjects s ON d.subject_id = s.id
		 JOIN semesters sem ON s.semester_id = sem.id
		 WHERE sem.branch_id = ?
		 ORDER BY d.created_at ASC, c.chunk_index ASC`,
		branchID,
	)
}

func (r *MaterialRepo) listChunks(ctx context.Context, query string, arg any) ([]ChunkWithDocument, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query material chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []ChunkWithDocument
	for rows.Next() {
		var chunk ChunkWithDocument
		if err := rows.Scan(
			&chunk.ID, &chunk.DocumentID, &chunk.ChunkIndex, &chunk.Heading,
			&chunk.Text, &chunk.Keywords, &chunk.PageNumber, &chunk.DocumentTitle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan material chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}
