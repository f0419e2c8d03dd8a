package storage

import "time"

// University is the top-level tenant.
type University struct {
	ID        int
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// Branch is an academic branch (department) within a university.
type Branch struct {
	ID           int
	UniversityID int
	Name         string
}

// Semester groups subjects within a branch.
type Semester struct {
	ID       int
	BranchID int
	Number   int
	Name     string
}

// Subject is the unit study material and chats are scoped to.
type Subject struct {
	ID         int
	SemesterID int
	Name       string
}

// SubjectScope is a subject with its resolved tenant hierarchy,
// produced by joining up through semesters and branches.
type SubjectScope struct {
	SubjectID    int
	Name         string
	SemesterID   int
	BranchID     int
	UniversityID int
}

// Student represents a student account. Authentication is handled
// upstream; only identity and placement matter here.
type Student struct {
	ID           int
	Name         string
	UniversityID int
	BranchID     *int
}

// Chat is a conversation between a student and the tutor, scoped to
// either a subject or a branch (exactly one is set).
type Chat struct {
	ID        int
	StudentID int
	SubjectID *int
	BranchID  *int
	Title     string
	CreatedAt time.Time
}

// ChatSummary is a chat joined with its subject name for listing.
type ChatSummary struct {
	Chat
	SubjectName *string
}

// Message is a single USER or BOT message within a chat.
// Sources holds the BOT message's citation list as JSON; it is nil for
// USER messages and for BOT messages whose citations were suppressed.
type Message struct {
	ID        int64
	ChatID    int
	Sender    string
	Body      string
	Sources   *string
	CreatedAt time.Time
}

// MaterialDocument is an uploaded piece of study material for a subject.
type MaterialDocument struct {
	ID         string // UUID
	SubjectID  int
	Title      string
	StorageKey string
	SourceType string // "manual" or "pdf"
	CreatedAt  time.Time
}

// MaterialChunk is a locally stored excerpt of a material document,
// tagged with comma-separated keywords for the fallback retriever.
type MaterialChunk struct {
	ID         string // UUID
	DocumentID string
	ChunkIndex int
	Heading    string
	Text       string
	Keywords   string
	PageNumber *int
}

// ChunkWithDocument is a material chunk joined with its document title,
// the shape the fallback retriever consumes.
type ChunkWithDocument struct {
	MaterialChunk
	DocumentTitle string
}
