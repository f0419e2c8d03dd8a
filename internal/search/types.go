package search

// Wire types for the managed search index's JSON query contract.
// Every field is optional on the wire; consumers must treat absent
// values as empty rather than failing.

// QueryInput is the request payload for a search query.
type QueryInput struct {
	IndexID                     string   `json:"IndexId"`
	QueryText                   string   `json:"QueryText"`
	PageSize                    int      `json:"PageSize"`
	RequestedDocumentAttributes []string `json:"RequestedDocumentAttributes,omitempty"`
}

// QueryOutput is the response payload for a search query.
type QueryOutput struct {
	ResultItems []ResultItem `json:"ResultItems"`
}

// Result kinds returned by the index. DOCUMENT is a passage hit;
// ANSWER is a synthesized direct answer. The set is closed: extraction
// switches exhaustively on it so a new kind fails loudly.
const (
	TypeDocument = "DOCUMENT"
	TypeAnswer   = "ANSWER"
)

// ResultItem is a single ranked hit.
type ResultItem struct {
	ID                   string              `json:"Id,omitempty"`
	Type                 string              `json:"Type,omitempty"`
	DocumentURI          string              `json:"DocumentURI,omitempty"`
	DocumentTitle        *TextWithHighlights `json:"DocumentTitle,omitempty"`
	DocumentExcerpt      *DocumentExcerpt    `json:"DocumentExcerpt,omitempty"`
	DocumentAttributes   []Attribute         `json:"DocumentAttributes,omitempty"`
	AdditionalAttributes []Attribute         `json:"AdditionalAttributes,omitempty"`
	ScoreAttributes      *ScoreAttributes    `json:"ScoreAttributes,omitempty"`
}

// TextWithHighlights is text plus (ignored) highlight offsets.
type TextWithHighlights struct {
	Text string `json:"Text,omitempty"`
}

// DocumentExcerpt is the passage text of a DOCUMENT hit.
type DocumentExcerpt struct {
	Text     string           `json:"Text,omitempty"`
	Metadata *ExcerptMetadata `json:"Metadata,omitempty"`
}

// ExcerptMetadata carries excerpt-level metadata. The index has used
// both key spellings for the page number over time.
type ExcerptMetadata struct {
	PageNumber      *int64 `json:"PageNumber,omitempty"`
	PageNumberSnake *int64 `json:"page_number,omitempty"`
}

// Attribute is a tagged attribute on a hit.
type Attribute struct {
	Key   string         `json:"Key,omitempty"`
	Value AttributeValue `json:"Value,omitempty"`
}

// AttributeValue is the variant value of an attribute. Exactly one
// field is populated per attribute, but nothing on the wire enforces
// that, so all are checked.
type AttributeValue struct {
	LongValue               *int64              `json:"LongValue,omitempty"`
	NumberValue             *float64            `json:"NumberValue,omitempty"`
	TextValue               string              `json:"TextValue,omitempty"`
	TextWithHighlightsValue *TextWithHighlights `json:"TextWithHighlightsValue,omitempty"`
}

// ScoreAttributes carries the index's relevance confidence tag.
type ScoreAttributes struct {
	ScoreConfidence string `json:"ScoreConfidence,omitempty"`
}
