package retrieval

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_search_index.go -package=mocks coursemate-ai/internal/retrieval SearchIndex

import (
	"context"
	"fmt"
	"log/slog"

	"coursemate-ai/internal/contextutil"
	"coursemate-ai/internal/search"
)

// SearchIndex is the adapter's view of the managed search service.
// Defined from the consumer's perspective; search.Client implements it.
type SearchIndex interface {
	// Configured reports whether the index can be queried at all.
	Configured() bool
	// Query returns ranked hits for the query text.
	Query(ctx context.Context, queryText string, pageSize int, requestedAttributes []string) ([]search.ResultItem, error)
}

// overFetchFactor is how many raw hits are requested per accepted
// result slot, leaving room for scope and quality filtering.
const overFetchFactor = 3

// requestedAttributes asks the index to attach source and title
// metadata to each hit.
var requestedAttributes = []string{"_source_uri", "_document_title"}

// pageAttributeKeys are the attribute key spellings under which the
// index has been observed to report page numbers.
var pageAttributeKeys = []string{
	"_excerpt_page_number", "_page_number", "PageNumber", "page_number", "_document_page",
}

// Adapter queries the managed search index and turns raw hits into
// scope-checked, quality-filtered excerpts. It is read-only: the only
// side effect is the outbound query.
type Adapter struct {
	index            SearchIndex
	quality          QualityConfig
	disableFiltering bool
	logger           *slog.Logger
}

// NewAdapter creates a retrieval adapter. disableFiltering globally
// bypasses tenant scope checks (diagnostics only).
func NewAdapter(index SearchIndex, quality QualityConfig, disableFiltering bool) *Adapter {
	return &Adapter{
		index:            index,
		quality:          quality,
		disableFiltering: disableFiltering,
		logger:           slog.Default(),
	}
}

// Retrieve queries the index and returns up to maxResults accepted
// excerpts in the index's original ranking order. It returns
// ErrNotConfigured when the index has no credentials, ErrInvalidScope
// for a malformed scope, and wraps any transport failure.
func (a *Adapter) Retrieve(ctx context.Context, question string, scope Scope, maxResults int, allowUnfiltered bool) ([]Excerpt, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if a.index == nil || !a.index.Configured() {
		return nil, ErrNotConfigured
	}

	// Over-fetch so post-filtering still fills maxResults slots.
	items, err := a.index.Query(ctx, question, maxResults*overFetchFactor, requestedAttributes)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}

	unfiltered := allowUnfiltered || a.disableFiltering

	var results []Excerpt
	var filteredOut int
	for _, item := range items {
		if len(results) >= maxResults {
			break
		}

		key := NormalizeKey(item.DocumentURI)
		if !unfiltered && !KeyInScope(key, scope, false) {
			filteredOut++
			continue
		}

		excerpt, ok := a.buildExcerpt(ctx, item, key)
		if !ok || excerpt.Text == "" {
			filteredOut++
			continue
		}

		if !a.quality.Accept(excerpt, question) {
			filteredOut++
			continue
		}

		results = append(results, excerpt)
	}

	logger.InfoContext(ctx, "search retrieval completed",
		"raw_hits", len(items),
		"accepted", len(results),
		"filtered_out", filteredOut,
		"max_results", maxResults,
		"unfiltered", unfiltered,
	)

	return results, nil
}

// buildExcerpt converts one raw hit into an Excerpt. The second return
// value is false when the hit's kind is unknown; the kind union is
// closed, so an unrecognized tag is logged as an error rather than
// silently yielding empty text.
func (a *Adapter) buildExcerpt(ctx context.Context, item search.ResultItem, key string) (Excerpt, bool) {
	excerpt := Excerpt{
		DocumentTitle: documentTitle(item),
		SourceURI:     item.DocumentURI,
		NormalizedKey: key,
		PageNumber:    extractPageNumber(item),
		Relevance:     relevanceTier(item),
	}

	kind := Kind(item.Type)
	if kind == "" {
		kind = KindDocument
	}

	// The two kinds store their text in different places: DOCUMENT hits
	// carry a passage excerpt, ANSWER hits carry the synthesized text
	// in a tagged additional attribute.
	switch kind {
	case KindDocument:
		if item.DocumentExcerpt != nil {
			excerpt.Text = item.DocumentExcerpt.Text
		}
	case KindAnswer:
		excerpt.Text = answerText(item.AdditionalAttributes)
	default:
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "unknown search result kind",
			"kind", item.Type, "uri", item.DocumentURI)
		return Excerpt{}, false
	}

	excerpt.Kind = kind
	return excerpt, true
}

// documentTitle reads the hit's title, falling back to "Unknown" when
// the index attached no title metadata.
func documentTitle(item search.ResultItem) string {
	if item.DocumentTitle != nil && item.DocumentTitle.Text != "" {
		return item.DocumentTitle.Text
	}
	return "Unknown"
}

// relevanceTier reads the confidence tag, defaulting to TierMedium
// when the index omitted it.
func relevanceTier(item search.ResultItem) Tier {
	if item.ScoreAttributes != nil && item.ScoreAttributes.ScoreConfidence != "" {
		return Tier(item.ScoreAttributes.ScoreConfidence)
	}
	return TierMedium
}

// answerText reads the synthesized answer text from an ANSWER hit's
// additional attributes.
func answerText(attrs []search.Attribute) string {
	for _, attr := range attrs {
		if attr.Key != "AnswerText" {
			continue
		}
		if attr.Value.TextWithHighlightsValue != nil {
			return attr.Value.TextWithHighlightsValue.Text
		}
		if attr.Value.TextValue != "" {
			return attr.Value.TextValue
		}
	}
	return ""
}

// pageExtractor tries one metadata location and returns nil when the
// location has no page number.
type pageExtractor func(search.ResultItem) *int

// pageExtractors are tried in order; the first hit wins. Adding a new
// metadata location is a one-line change here.
var pageExtractors = []pageExtractor{
	func(item search.ResultItem) *int { return pageFromAttributes(item.DocumentAttributes) },
	func(item search.ResultItem) *int { return pageFromAttributes(item.AdditionalAttributes) },
	pageFromExcerptMetadata,
}

// extractPageNumber checks each known metadata location in order.
func extractPageNumber(item search.ResultItem) *int {
	for _, extract := range pageExtractors {
		if page := extract(item); page != nil {
			return page
		}
	}
	return nil
}

func pageFromAttributes(attrs []search.Attribute) *int {
	for _, attr := range attrs {
		if !isPageKey(attr.Key) {
			continue
		}
		if attr.Value.LongValue != nil {
			page := int(*attr.Value.LongValue)
			return &page
		}
		if attr.Value.NumberValue != nil {
			page := int(*attr.Value.NumberValue)
			return &page
		}
	}
	return nil
}

func pageFromExcerptMetadata(item search.ResultItem) *int {
	if item.DocumentExcerpt == nil || item.DocumentExcerpt.Metadata == nil {
		return nil
	}
	meta := item.DocumentExcerpt.Metadata
	if meta.PageNumber != nil {
		page := int(*meta.PageNumber)
		return &page
	}
	if meta.PageNumberSnake != nil {
		page := int(*meta.PageNumberSnake)
		return &page
	}
	return nil
}

func isPageKey(key string) bool {
	for _, k := range pageAttributeKeys {
		if key == k {
			return true
		}
	}
	return false
}
