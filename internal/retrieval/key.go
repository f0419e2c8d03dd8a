package retrieval

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeKey extracts the canonical storage-key path from the
// heterogeneous URI formats the search index returns:
//
//   - s3://bucket/universities/1/...                       (key after bucket)
//   - https://bucket.s3.amazonaws.com/universities/1/...   (URL path)
//   - https://bucket.s3.region.amazonaws.com/universities/1/...
//   - universities/1/...                                   (already a bare key)
//
// NormalizeKey is pure and total: it never fails, and on malformed
// input it degrades to returning the input unchanged.
func NormalizeKey(uri string) string {
	switch {
	case strings.HasPrefix(uri, "s3://"):
		parts := strings.SplitN(uri, "/", 4)
		if len(parts) == 4 {
			return parts[3]
		}
		return uri
	case strings.HasPrefix(uri, "https://"):
		if parsed, err := url.Parse(uri); err == nil && parsed.Path != "" {
			return strings.TrimPrefix(parsed.Path, "/")
		}
		if i := strings.Index(uri, ".amazonaws.com/"); i != -1 {
			return uri[i+len(".amazonaws.com/"):]
		}
		if i := strings.Index(uri, ".s3."); i != -1 {
			rest := uri[i+len(".s3."):]
			if slash := strings.Index(rest, "/"); slash != -1 {
				return rest[slash+1:]
			}
		}
		return uri
	default:
		return uri
	}
}

// KeyInScope reports whether a normalized storage key belongs to the
// given tenant scope. Keys follow the pattern
// universities/{universityID}/branches/{branchID}/subjects/{subjectID}/materials/{uuid}.ext,
// so membership reduces to two substring checks; segment order within
// the key does not matter.
//
// disableFiltering forces a match unconditionally. It exists for
// diagnostics only and must stay off in production.
func KeyInScope(key string, scope Scope, disableFiltering bool) bool {
	if disableFiltering {
		return true
	}

	tenantPattern := fmt.Sprintf("universities/%d/", scope.UniversityID)
	var scopePattern string
	if scope.SubjectID != 0 {
		scopePattern = fmt.Sprintf("subjects/%d/", scope.SubjectID)
	} else {
		scopePattern = fmt.Sprintf("branches/%d/", scope.BranchID)
	}

	return strings.Contains(key, tenantPattern) && strings.Contains(key, scopePattern)
}
