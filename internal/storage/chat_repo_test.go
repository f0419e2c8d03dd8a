package storage

import (
	"context"
	"errors"
	"testing"
)

func TestChatRepo_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)
	repo := NewChatRepo(db)

	chat := &Chat{StudentID: h.StudentID, SubjectID: &h.SubjectID}
	if err := repo.Create(context.Background(), chat); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if chat.ID == 0 {
		t.Error("Create() did not set ID")
	}
	if chat.Title != "New chat" {
		t.Errorf("Create() title = %q, want default New chat", chat.Title)
	}

	got, err := repo.GetByID(context.Background(), chat.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.StudentID != h.StudentID {
		t.Errorf("GetByID() student = %d, want %d", got.StudentID, h.StudentID)
	}
	if got.SubjectID == nil || *got.SubjectID != h.SubjectID {
		t.Error("GetByID() lost subject scope")
	}
	if got.BranchID != nil {
		t.Error("GetByID() branch should be nil for a subject chat")
	}
	if got.CreatedAt.IsZero() {
		t.Error("GetByID() created_at not parsed")
	}
}

func TestChatRepo_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepo(db)

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestChatRepo_ListByStudent(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)
	repo := NewChatRepo(db)
	ctx := context.Background()

	first := &Chat{StudentID: h.StudentID, SubjectID: &h.SubjectID, Title: "First"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second := &Chat{StudentID: h.StudentID, BranchID: &h.BranchID, Title: "Second"}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	chats, err := repo.ListByStudent(ctx, h.StudentID)
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if len(chats) != 2 {
		t.Fatalf("ListByStudent() = %d chats, want 2", len(chats))
	}
	// Newest first.
	if chats[0].Title != "Second" || chats[1].Title != "First" {
		t.Errorf("ListByStudent() order = %q, %q", chats[0].Title, chats[1].Title)
	}
	// Subject name joined for subject chats, nil for branch chats.
	if chats[1].SubjectName == nil || *chats[1].SubjectName != "DBMS" {
		t.Error("ListByStudent() missing subject name")
	}
	if chats[0].SubjectName != nil {
		t.Error("ListByStudent() branch chat should have nil subject name")
	}

	other, err := repo.ListByStudent(ctx, h.StudentID+100)
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("ListByStudent() leaked %d chats across students", len(other))
	}
}

func TestChatRepo_UpdateTitle(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)
	repo := NewChatRepo(db)
	ctx := context.Background()

	chat := &Chat{StudentID: h.StudentID, SubjectID: &h.SubjectID}
	if err := repo.Create(ctx, chat); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.UpdateTitle(ctx, chat.ID, "What is 2NF"); err != nil {
		t.Fatalf("UpdateTitle() error = %v", err)
	}

	got, err := repo.GetByID(ctx, chat.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "What is 2NF" {
		t.Errorf("UpdateTitle() title = %q", got.Title)
	}
}
