package storage

import (
	"context"
	"errors"
	"testing"
)

func TestAcademicsRepo_SubjectScope(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)
	repo := NewAcademicsRepo(db)

	scope, err := repo.SubjectScope(context.Background(), h.SubjectID)
	if err != nil {
		t.Fatalf("SubjectScope() error = %v", err)
	}
	if scope.SubjectID != h.SubjectID {
		t.Errorf("SubjectScope() subject = %d, want %d", scope.SubjectID, h.SubjectID)
	}
	if scope.Name != "DBMS" {
		t.Errorf("SubjectScope() name = %q, want DBMS", scope.Name)
	}
	if scope.BranchID != h.BranchID {
		t.Errorf("SubjectScope() branch = %d, want %d", scope.BranchID, h.BranchID)
	}
	if scope.UniversityID != h.UniversityID {
		t.Errorf("SubjectScope() university = %d, want %d", scope.UniversityID, h.UniversityID)
	}
}

func TestAcademicsRepo_SubjectScope_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAcademicsRepo(db)

	_, err := repo.SubjectScope(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("SubjectScope() error = %v, want ErrNotFound", err)
	}
}

func TestAcademicsRepo_BranchByID(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)
	repo := NewAcademicsRepo(db)

	branch, err := repo.BranchByID(context.Background(), h.BranchID)
	if err != nil {
		t.Fatalf("BranchByID() error = %v", err)
	}
	if branch.Name != "CSE" || branch.UniversityID != h.UniversityID {
		t.Errorf("BranchByID() = %+v", branch)
	}

	if _, err := repo.BranchByID(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("BranchByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestAcademicsRepo_StudentByID(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)
	repo := NewAcademicsRepo(db)

	student, err := repo.StudentByID(context.Background(), h.StudentID)
	if err != nil {
		t.Fatalf("StudentByID() error = %v", err)
	}
	if student.Name != "Asha" || student.UniversityID != h.UniversityID {
		t.Errorf("StudentByID() = %+v", student)
	}
	if student.BranchID == nil || *student.BranchID != h.BranchID {
		t.Error("StudentByID() lost branch placement")
	}

	if _, err := repo.StudentByID(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("StudentByID(missing) error = %v, want ErrNotFound", err)
	}
}
