package retrieval

import (
	"context"
	"fmt"
	"strings"

	"coursemate-ai/internal/contextutil"
	"coursemate-ai/internal/storage"
)

const (
	// keywordMatchLimit caps how many keyword-matched chunks are used.
	keywordMatchLimit = 5
	// headChunkCount is how many chunks the last-resort tier takes.
	headChunkCount = 3
)

// LocalRetriever is the fallback retrieval path: crude keyword matching
// over locally stored material chunks. It runs only when the managed
// index is unavailable or returned nothing, so its job is graceful
// degradation, not search quality — no stemming, no ranking.
//
// Degradation ladder, in order: keyword-matched chunks (up to 5), then
// the first 3 chunks in storage order when the scope has material but
// nothing matched, then empty.
type LocalRetriever struct {
	materials storage.MaterialStore
}

// NewLocalRetriever creates a fallback retriever over the material store.
func NewLocalRetriever(materials storage.MaterialStore) *LocalRetriever {
	return &LocalRetriever{materials: materials}
}

// RetrieveLocal returns chunks for the scope that plausibly relate to
// the question. A chunk matches when any of its comma-separated
// keywords appears in the lower-cased question, or any question word
// longer than two characters appears inside a keyword.
func (r *LocalRetriever) RetrieveLocal(ctx context.Context, question string, scope Scope) ([]storage.ChunkWithDocument, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var chunks []storage.ChunkWithDocument
	var err error
	if scope.SubjectID != 0 {
		chunks, err = r.materials.ListChunksBySubject(ctx, scope.SubjectID)
	} else {
		chunks, err = r.materials.ListChunksByBranch(ctx, scope.BranchID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load material chunks: %w", err)
	}

	questionLower := strings.ToLower(question)
	questionWords := questionWordsOver2(questionLower)

	var relevant []storage.ChunkWithDocument
	for _, chunk := range chunks {
		if chunk.Keywords == "" {
			continue
		}
		if chunkMatches(chunk.Keywords, questionLower, questionWords) {
			relevant = append(relevant, chunk)
			if len(relevant) >= keywordMatchLimit {
				break
			}
		}
	}

	// Keyword tagging may be poor or absent; as long as the scope has
	// any material at all, hand back the head of it rather than nothing.
	if len(relevant) == 0 && len(chunks) > 0 {
		n := headChunkCount
		if n > len(chunks) {
			n = len(chunks)
		}
		relevant = chunks[:n]
		logger.InfoContext(ctx, "no keyword matches, using head chunks", "count", n)
	}

	logger.InfoContext(ctx, "local retrieval completed",
		"scope_subject", scope.SubjectID,
		"scope_branch", scope.BranchID,
		"total_chunks", len(chunks),
		"selected", len(relevant),
	)

	return relevant, nil
}

func chunkMatches(keywords, questionLower string, questionWords []string) bool {
	for _, kw := range strings.Split(keywords, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(questionLower, kw) {
			return true
		}
		for _, qw := range questionWords {
			if strings.Contains(kw, qw) {
				return true
			}
		}
	}
	return false
}

func questionWordsOver2(questionLower string) []string {
	var words []string
	for _, w := range strings.Fields(questionLower) {
		if w = strings.TrimSpace(w); len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}
