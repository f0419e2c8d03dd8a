package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"coursemate-ai/internal/ingest"
	"coursemate-ai/internal/storage"
)

// stubIngester records the last ingestion call.
type stubIngester struct {
	result ingest.Result
	err    error

	gotSubjectID int
	gotTitle     string
	gotContent   string
}

func (s *stubIngester) Ingest(ctx context.Context, subjectID int, title, content string) (ingest.Result, error) {
	s.gotSubjectID = subjectID
	s.gotTitle = title
	s.gotContent = content
	return s.result, s.err
}

func newMaterialTestEnv(t *testing.T) (http.Handler, *stubIngester, testHierarchy) {
	t.Helper()

	db := openTestDB(t)
	h := seedTestHierarchy(t, db)

	ingester := &stubIngester{}
	handler := NewMaterialHandler(ingester, storage.NewAcademicsRepo(db))

	r := chi.NewRouter()
	r.Post("/api/subjects/{subjectID}/materials", handler.Upload)
	return r, ingester, h
}

func TestMaterialHandler_Upload(t *testing.T) {
	router, ingester, h := newMaterialTestEnv(t)
	ingester.result = ingest.Result{DocumentID: "doc-1", Chunks: 4}

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/subjects/%d/materials", h.subjectID), 0,
		UploadRequest{Title: "  Unit 2 Notes  ", Content: "# Normal Forms\n\nBody text."})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Upload status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result ingest.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.DocumentID != "doc-1" || result.Chunks != 4 {
		t.Errorf("Upload result = %+v", result)
	}
	if ingester.gotSubjectID != h.subjectID {
		t.Errorf("Upload passed subject %d, want %d", ingester.gotSubjectID, h.subjectID)
	}
	if ingester.gotTitle != "Unit 2 Notes" {
		t.Errorf("Upload passed title %q, want trimmed", ingester.gotTitle)
	}
}

func TestMaterialHandler_Upload_Errors(t *testing.T) {
	router, ingester, h := newMaterialTestEnv(t)

	tests := []struct {
		name       string
		path       string
		payload    any
		ingestErr  error
		wantStatus int
	}{
		{"bad subject id", "/api/subjects/abc/materials", UploadRequest{Title: "T", Content: "C"}, nil, http.StatusBadRequest},
		{"missing title", fmt.Sprintf("/api/subjects/%d/materials", h.subjectID), UploadRequest{Content: "C"}, nil, http.StatusBadRequest},
		{"missing content", fmt.Sprintf("/api/subjects/%d/materials", h.subjectID), UploadRequest{Title: "T"}, nil, http.StatusBadRequest},
		{"unknown subject", "/api/subjects/9999/materials", UploadRequest{Title: "T", Content: "C"}, nil, http.StatusNotFound},
		{"pipeline failure", fmt.Sprintf("/api/subjects/%d/materials", h.subjectID), UploadRequest{Title: "T", Content: "C"}, errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ingester.err = tt.ingestErr
			rec := doJSON(t, router, http.MethodPost, tt.path, 0, tt.payload)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
