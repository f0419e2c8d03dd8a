package retrieval

// Kind discriminates the two result shapes the search index returns.
// The union is closed: extraction switches exhaustively on it.
type Kind string

const (
	// KindDocument is a passage retrieved from an indexed document.
	KindDocument Kind = "DOCUMENT"
	// KindAnswer is a direct answer synthesized by the index itself.
	// Treated as higher trust: it bypasses the quality filter.
	KindAnswer Kind = "ANSWER"
)

// Tier is the index's relevance confidence for a hit.
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// Excerpt is a single retrieved, normalized, filtered search hit.
type Excerpt struct {
	// Text is the raw excerpt text.
	Text string
	// DocumentTitle is the human-readable source title. May be an
	// opaque identifier when the index has no title metadata.
	DocumentTitle string
	// SourceURI is the locator exactly as the index returned it.
	SourceURI string
	// NormalizedKey is the canonical storage-key path derived from SourceURI.
	NormalizedKey string
	// PageNumber is the source page, when the index reported one.
	PageNumber *int
	// Relevance is the index's confidence tier (TierMedium when absent).
	Relevance Tier
	// Kind is the result shape discriminator.
	Kind Kind
}

// Scope identifies the tenant slice a retrieval call is allowed to see:
// a university plus exactly one of a subject or a branch.
type Scope struct {
	UniversityID int
	SubjectID    int
	BranchID     int
}

// Validate returns ErrInvalidScope unless exactly one of SubjectID or
// BranchID is set. Passing neither is a caller bug, not a runtime
// condition, and fails loudly.
func (s Scope) Validate() error {
	if s.SubjectID == 0 && s.BranchID == 0 {
		return ErrInvalidScope
	}
	if s.SubjectID != 0 && s.BranchID != 0 {
		return ErrInvalidScope
	}
	return nil
}
