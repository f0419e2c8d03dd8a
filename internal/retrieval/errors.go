package retrieval

import "errors"

var (
	// ErrNotConfigured is returned when the managed search index has no
	// credentials or index configured. Callers recover by falling back
	// to the local retriever; it is never surfaced to the end user.
	ErrNotConfigured = errors.New("search index is not configured")

	// ErrInvalidScope is returned when a retrieval call sets neither or
	// both of subject and branch. This is an integration error upstream
	// of the core and is not swallowed.
	ErrInvalidScope = errors.New("retrieval scope must set exactly one of subject or branch")
)
