package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"coursemate-ai/internal/contextutil"
	"coursemate-ai/internal/rag"
	"coursemate-ai/internal/storage"
)

// stubEngine returns a canned answer for SendMessage tests.
type stubEngine struct {
	resp rag.AnswerResponse
	err  error

	gotReq rag.AnswerRequest
}

func (s *stubEngine) Answer(ctx context.Context, req rag.AnswerRequest) (rag.AnswerResponse, error) {
	s.gotReq = req
	return s.resp, s.err
}

type chatTestEnv struct {
	router    http.Handler
	engine    *stubEngine
	db        *sql.DB
	chats     *storage.ChatRepo
	messages  *storage.MessageRepo
	studentID int
	subjectID int
	branchID  int
}

func newChatTestEnv(t *testing.T) *chatTestEnv {
	t.Helper()

	db := openTestDB(t)
	h := seedTestHierarchy(t, db)

	chats := storage.NewChatRepo(db)
	messages := storage.NewMessageRepo(db)
	academics := storage.NewAcademicsRepo(db)
	engine := &stubEngine{}

	handler := NewChatHandler(chats, messages, academics, engine)

	r := chi.NewRouter()
	r.Use(testIdentity)
	r.Post("/api/chats", handler.StartChat)
	r.Get("/api/chats", handler.ListChats)
	r.Get("/api/chats/{chatID}/messages", handler.ListMessages)
	r.Post("/api/chats/{chatID}/message", handler.SendMessage)

	return &chatTestEnv{
		router:    r,
		engine:    engine,
		db:        db,
		chats:     chats,
		messages:  messages,
		studentID: h.studentID,
		subjectID: h.subjectID,
		branchID:  h.branchID,
	}
}

type testHierarchy struct {
	universityID int
	branchID     int
	subjectID    int
	studentID    int
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func seedTestHierarchy(t *testing.T, db *sql.DB) testHierarchy {
	t.Helper()
	ctx := context.Background()
	repo := storage.NewAcademicsRepo(db)

	uniID, err := repo.CreateUniversity(ctx, "Test University")
	if err != nil {
		t.Fatalf("CreateUniversity() error = %v", err)
	}
	branchID, err := repo.CreateBranch(ctx, uniID, "CSE")
	if err != nil {
		t.Fatalf("CreateBranch() error = %v", err)
	}
	semID, err := repo.CreateSemester(ctx, branchID, 4, "Semester 4")
	if err != nil {
		t.Fatalf("CreateSemester() error = %v", err)
	}
	subjectID, err := repo.CreateSubject(ctx, semID, "DBMS")
	if err != nil {
		t.Fatalf("CreateSubject() error = %v", err)
	}
	studentID, err := repo.CreateStudent(ctx, "Asha", uniID, &branchID)
	if err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}

	return testHierarchy{universityID: uniID, branchID: branchID, subjectID: subjectID, studentID: studentID}
}

// testIdentity mirrors the production identity middleware for handler tests.
func testIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get("X-Student-ID"); raw != "" {
			if id, err := strconv.Atoi(raw); err == nil {
				r = r.WithContext(contextutil.WithStudent(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, studentID int, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if studentID != 0 {
		req.Header.Set("X-Student-ID", strconv.Itoa(studentID))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChatHandler_StartChat(t *testing.T) {
	env := newChatTestEnv(t)

	rec := doJSON(t, env.router, http.MethodPost, "/api/chats", env.studentID,
		StartChatRequest{SubjectID: &env.subjectID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("StartChat status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == 0 {
		t.Error("StartChat response has no chat ID")
	}
	if resp.SubjectID == nil || *resp.SubjectID != env.subjectID {
		t.Error("StartChat response lost subject scope")
	}
	if resp.Title != "DBMS" {
		t.Errorf("StartChat title = %q, want subject name placeholder", resp.Title)
	}
}

func TestChatHandler_StartChat_Validation(t *testing.T) {
	env := newChatTestEnv(t)
	missing := 9999

	tests := []struct {
		name       string
		studentID  int
		payload    any
		wantStatus int
	}{
		{"no identity", 0, StartChatRequest{SubjectID: &env.subjectID}, http.StatusUnauthorized},
		{"neither scope", env.studentID, StartChatRequest{}, http.StatusBadRequest},
		{"both scopes", env.studentID, StartChatRequest{SubjectID: &env.subjectID, BranchID: &env.branchID}, http.StatusBadRequest},
		{"unknown subject", env.studentID, StartChatRequest{SubjectID: &missing}, http.StatusNotFound},
		{"unknown student", 12345, StartChatRequest{SubjectID: &env.subjectID}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, env.router, http.MethodPost, "/api/chats", tt.studentID, tt.payload)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestChatHandler_StartChat_CrossUniversity(t *testing.T) {
	env := newChatTestEnv(t)
	ctx := context.Background()
	repo := storage.NewAcademicsRepo(env.db)

	// A second university with its own subject; our student must not be
	// able to open a chat against it.
	otherUni, err := repo.CreateUniversity(ctx, "Other University")
	if err != nil {
		t.Fatalf("CreateUniversity() error = %v", err)
	}
	otherBranch, err := repo.CreateBranch(ctx, otherUni, "ECE")
	if err != nil {
		t.Fatalf("CreateBranch() error = %v", err)
	}
	otherSem, err := repo.CreateSemester(ctx, otherBranch, 1, "Semester 1")
	if err != nil {
		t.Fatalf("CreateSemester() error = %v", err)
	}
	otherSubject, err := repo.CreateSubject(ctx, otherSem, "Circuits")
	if err != nil {
		t.Fatalf("CreateSubject() error = %v", err)
	}

	rec := doJSON(t, env.router, http.MethodPost, "/api/chats", env.studentID,
		StartChatRequest{SubjectID: &otherSubject})
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign subject status = %d, want 403", rec.Code)
	}

	rec = doJSON(t, env.router, http.MethodPost, "/api/chats", env.studentID,
		StartChatRequest{BranchID: &otherBranch})
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign branch status = %d, want 403", rec.Code)
	}
}

func TestChatHandler_ListChats(t *testing.T) {
	env := newChatTestEnv(t)

	chat := &storage.Chat{StudentID: env.studentID, SubjectID: &env.subjectID, Title: "Mine"}
	if err := env.chats.Create(context.Background(), chat); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	rec := doJSON(t, env.router, http.MethodGet, "/api/chats", env.studentID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ListChats status = %d", rec.Code)
	}

	var resp []ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Title != "Mine" {
		t.Errorf("ListChats = %+v", resp)
	}
	if resp[0].SubjectName == nil || *resp[0].SubjectName != "DBMS" {
		t.Error("ListChats missing joined subject name")
	}
}

func TestChatHandler_ListMessages_Ownership(t *testing.T) {
	env := newChatTestEnv(t)
	ctx := context.Background()

	chat := &storage.Chat{StudentID: env.studentID, SubjectID: &env.subjectID}
	if err := env.chats.Create(ctx, chat); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := env.messages.Insert(ctx, &storage.Message{ChatID: chat.ID, Sender: "USER", Body: "Hi"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	path := fmt.Sprintf("/api/chats/%d/messages", chat.ID)

	rec := doJSON(t, env.router, http.MethodGet, path, env.studentID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ListMessages status = %d", rec.Code)
	}
	var msgs []MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &msgs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Body != "Hi" {
		t.Errorf("ListMessages = %+v", msgs)
	}

	// Another student sees a 404, not a 403, so chat existence leaks nothing.
	rec = doJSON(t, env.router, http.MethodGet, path, env.studentID+50, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign ListMessages status = %d, want 404", rec.Code)
	}
}

func TestChatHandler_SendMessage(t *testing.T) {
	env := newChatTestEnv(t)

	chat := &storage.Chat{StudentID: env.studentID, SubjectID: &env.subjectID}
	if err := env.chats.Create(context.Background(), chat); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	title := "What is 2NF"
	env.engine.resp = rag.AnswerResponse{
		Answer:    "2NF removes partial dependencies.",
		Sources:   []rag.Citation{{Type: rag.CitationRetrieved, Title: "Unit 2"}},
		ChatTitle: &title,
	}

	rec := doJSON(t, env.router, http.MethodPost, fmt.Sprintf("/api/chats/%d/message", chat.ID),
		env.studentID, SendMessageRequest{Message: "  What is 2NF?  "})
	if rec.Code != http.StatusOK {
		t.Fatalf("SendMessage status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp rag.AnswerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer != "2NF removes partial dependencies." {
		t.Errorf("SendMessage answer = %q", resp.Answer)
	}
	if env.engine.gotReq.Question != "What is 2NF?" {
		t.Errorf("SendMessage passed question %q, want trimmed", env.engine.gotReq.Question)
	}
	if env.engine.gotReq.ChatID != chat.ID || env.engine.gotReq.StudentID != env.studentID {
		t.Errorf("SendMessage request = %+v", env.engine.gotReq)
	}
}

func TestChatHandler_SendMessage_Errors(t *testing.T) {
	env := newChatTestEnv(t)

	tests := []struct {
		name       string
		path       string
		studentID  int
		payload    any
		engineErr  error
		wantStatus int
	}{
		{"empty message", "/api/chats/1/message", env.studentID, SendMessageRequest{Message: "   "}, nil, http.StatusBadRequest},
		{"bad chat id", "/api/chats/abc/message", env.studentID, SendMessageRequest{Message: "q"}, nil, http.StatusBadRequest},
		{"no identity", "/api/chats/1/message", 0, SendMessageRequest{Message: "q"}, nil, http.StatusUnauthorized},
		{"chat access denied", "/api/chats/1/message", env.studentID, SendMessageRequest{Message: "q"}, rag.ErrChatAccess, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.engine.err = tt.engineErr
			rec := doJSON(t, env.router, http.MethodPost, tt.path, tt.studentID, tt.payload)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
