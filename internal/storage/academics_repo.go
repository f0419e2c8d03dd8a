package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_academics_store.go -package=mocks coursemate-ai/internal/storage AcademicsStore

import (
	"context"
	"database/sql"
	"fmt"
)

// AcademicsStore defines the interface for academic hierarchy lookups.
type AcademicsStore interface {
	// SubjectScope resolves a subject to its tenant hierarchy.
	// Returns ErrNotFound if the subject does not exist.
	SubjectScope(ctx context.Context, subjectID int) (*SubjectScope, error)
	// BranchByID gets a branch by ID. Returns ErrNotFound if not found.
	BranchByID(ctx context.Context, branchID int) (*Branch, error)
	// StudentByID gets a student by ID. Returns ErrNotFound if not found.
	StudentByID(ctx context.Context, studentID int) (*Student, error)
}

// AcademicsRepo provides methods for academic hierarchy operations.
// It implements the AcademicsStore interface.
type AcademicsRepo struct {
	db *sql.DB
}

// NewAcademicsRepo creates a new AcademicsRepo.
func NewAcademicsRepo(db *sql.DB) *AcademicsRepo {
	return &AcademicsRepo{db: db}
}

// SubjectScope resolves a subject to its tenant hierarchy by joining
// up through semesters and branches.
func (r *AcademicsRepo) SubjectScope(ctx context.Context, subjectID int) (*SubjectScope, error) {
	var scope SubjectScope
	err := r.db.QueryRowContext(ctx,
		`SELECT s.id, s.name, s.semester_id, sem.branch_id, b.university_id
		 FROM subjects s
		 JOIN semesters sem ON s.semester_id = sem.id
		 JOIN branches b ON sem.branch_id = b.id
		 WHERE s.id = ?`,
		subjectID,
	).Scan(&scope.SubjectID, &scope.Name, &scope.SemesterID, &scope.BranchID, &scope.UniversityID)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve subject scope: %w", err)
	}

	return &scope, nil
}

// BranchByID gets a branch by ID.
func (r *AcademicsRepo) BranchByID(ctx context.Context, branchID int) (*Branch, error) {
	var branch Branch
	err := r.db.QueryRowContext(ctx,
		"SELECT id, university_id, name FROM branches WHERE id = ?",
		branchID,
	).Scan(&branch.ID, &branch.UniversityID, &branch.Name)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query branch: %w", err)
	}

	return &branch, nil
}

// StudentByID gets a student by ID.
func (r *AcademicsRepo) StudentByID(ctx context.Context, studentID int) (*Student, error) {
	var student Student
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, university_id, branch_id FROM students WHERE id = ?",
		studentID,
	).Scan(&student.ID, &student.Name, &student.UniversityID, &student.BranchID)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query student: %w", err)
	}

	return &student, nil
}

// CreateUniversity inserts a university and returns its ID.
func (r *AcademicsRepo) CreateUniversity(ctx context.Context, name string) (int, error) {
	res, err := r.db.ExecContext(ctx, "INSERT INTO universities (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert university: %w", err)
	}
	return lastInsertID(res)
}

// CreateBranch inserts a branch and returns its ID.
func (r *AcademicsRepo) CreateBranch(ctx context.Context, universityID int, name string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO branches (university_id, name) VALUES (?, ?)", universityID, name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert branch: %w", err)
	}
	return lastInsertID(res)
}

// CreateSemester inserts a semester and returns its ID.
func (r *AcademicsRepo) CreateSemester(ctx context.Context, branchID, number int, name string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO semesters (branch_id, semester_number, name) VALUES (?, ?, ?)",
		branchID, number, name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert semester: %w", err)
	}
	return lastInsertID(res)
}

// CreateSubject inserts a subject and returns its ID.
func (r *AcademicsRepo) CreateSubject(ctx context.Context, semesterID int, name string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO subjects (semester_id, name) VALUES (?, ?)", semesterID, name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert subject: %w", err)
	}
	return lastInsertID(res)
}

// CreateStudent inserts a student and returns its ID.
func (r *AcademicsRepo) CreateStudent(ctx context.Context, name string, universityID int, branchID *int) (int, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO students (name, university_id, branch_id) VALUES (?, ?, ?)",
		name, universityID, branchID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert student: %w", err)
	}
	return lastInsertID(res)
}

func lastInsertID(res sql.Result) (int, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read insert id: %w", err)
	}
	return int(id), nil
}
