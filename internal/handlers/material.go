package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"coursemate-ai/internal/contextutil"
	"coursemate-ai/internal/ingest"
	"coursemate-ai/internal/storage"
)

// Ingester turns raw material text into stored chunks.
type Ingester interface {
	Ingest(ctx context.Context, subjectID int, title, content string) (ingest.Result, error)
}

// MaterialHandler handles HTTP requests for study material uploads.
type MaterialHandler struct {
	pipeline  Ingester
	academics storage.AcademicsStore
}

// NewMaterialHandler creates a new MaterialHandler.
func NewMaterialHandler(pipeline Ingester, academics storage.AcademicsStore) *MaterialHandler {
	return &MaterialHandler{pipeline: pipeline, academics: academics}
}

// UploadRequest represents the payload for a material upload.
type UploadRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Upload ingests material text for a subject.
func (h *MaterialHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	subjectID, err := strconv.Atoi(chi.URLParam(r, "subjectID"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "Invalid subject id")
		return
	}

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeError(ctx, w, http.StatusBadRequest, "Title and content are required")
		return
	}

	if _, err := h.academics.SubjectScope(ctx, subjectID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Subject not found")
			return
		}
		logger.ErrorContext(ctx, "failed to resolve subject", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to ingest material")
		return
	}

	result, err := h.pipeline.Ingest(ctx, subjectID, strings.TrimSpace(req.Title), req.Content)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "error", err, "subject_id", subjectID)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to ingest material")
		return
	}

	writeJSON(ctx, w, http.StatusCreated, result)
}
