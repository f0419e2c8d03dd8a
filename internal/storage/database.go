package storage

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS universities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS branches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			university_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY (university_id) REFERENCES universities(id)
		);`,
		`CREATE TABLE IF NOT EXISTS semesters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			branch_id INTEGER NOT NULL,
			semester_number INTEGER NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY (branch_id) REFERENCES branches(id)
		);`,
		`CREATE TABLE IF NOT EXISTS subjects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			semester_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY (semester_id) REFERENCES semesters(id)
		);`,
		`CREATE TABLE IF NOT EXISTS students (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			university_id INTEGER NOT NULL,
			branch_id INTEGER,
			FOREIGN KEY (university_id) REFERENCES universities(id),
			FOREIGN KEY (branch_id) REFERENCES branches(id)
		);`,
		`CREATE TABLE IF NOT EXISTS chats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id INTEGER NOT NULL,
			subject_id INTEGER,
			branch_id INTEGER,
			title TEXT NOT NULL DEFAULT 'New chat',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (student_id) REFERENCES students(id),
			FOREIGN KEY (subject_id) REFERENCES subjects(id),
			FOREIGN KEY (branch_id) REFERENCES branches(id)
		);`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id INTEGER NOT NULL,
			sender TEXT NOT NULL,
			body TEXT NOT NULL,
			sources TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (chat_id) REFERENCES chats(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS material_documents (
			id TEXT PRIMARY KEY,
			subject_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			storage_key TEXT,
			source_type TEXT NOT NULL DEFAULT 'manual',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (subject_id) REFERENCES subjects(id)
		);`,
		`CREATE TABLE IF NOT EXISTS material_chunks (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			heading TEXT,
			text TEXT NOT NULL,
			keywords TEXT,
			page_number INTEGER,
			FOREIGN KEY (document_id) REFERENCES material_documents(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_chat ON chat_messages(chat_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_material_chunks_document ON material_chunks(document_id, chunk_index);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
