package rag

import (
	"strings"
	"testing"

	"coursemate-ai/internal/retrieval"
	"coursemate-ai/internal/storage"
)

func TestBuildContext_Empty(t *testing.T) {
	text, citations := buildContext(nil)
	if text != "" {
		t.Errorf("buildContext(nil) text = %q, want empty", text)
	}
	if citations != nil {
		t.Errorf("buildContext(nil) citations = %v, want nil", citations)
	}
}

func TestBuildContext_FromExcerpts(t *testing.T) {
	page := 12
	items := itemsFromExcerpts([]retrieval.Excerpt{
		{
			Text:          "Normalization reduces redundancy.",
			DocumentTitle: "DBMS Unit 2",
			SourceURI:     "s3://bucket/universities/1/subjects/3/a.pdf",
			PageNumber:    &page,
			Relevance:     retrieval.TierHigh,
		},
		{
			Text:          "A schedule is serializable when...",
			DocumentTitle: "DBMS Unit 4",
			SourceURI:     "s3://bucket/universities/1/subjects/3/b.pdf",
			Relevance:     retrieval.TierMedium,
		},
	})

	text, citations := buildContext(items)

	if !strings.HasPrefix(text, "Reference material:\n") {
		t.Errorf("buildContext() missing header: %q", text)
	}
	if !strings.Contains(text, "Title: DBMS Unit 2\nPage: 12\n") {
		t.Errorf("buildContext() missing titled page block: %q", text)
	}
	if !strings.Contains(text, "Content: Normalization reduces redundancy.\n\n") {
		t.Errorf("buildContext() missing content block: %q", text)
	}
	if strings.Contains(strings.Split(text, "DBMS Unit 4")[1], "Page:") {
		t.Error("buildContext() emitted a Page line for an excerpt without one")
	}

	if len(citations) != 2 {
		t.Fatalf("buildContext() citations = %d, want 2", len(citations))
	}
	if citations[0].Type != CitationRetrieved {
		t.Errorf("citation type = %q, want %q", citations[0].Type, CitationRetrieved)
	}
	if citations[0].Relevance != "HIGH" {
		t.Errorf("citation relevance = %q, want HIGH", citations[0].Relevance)
	}
	if citations[0].Page == nil || *citations[0].Page != 12 {
		t.Error("citation page lost in conversion")
	}
	// Order parity: citation i describes context block i.
	if citations[1].Title != "DBMS Unit 4" {
		t.Errorf("citation order broken: %q", citations[1].Title)
	}
}

func TestBuildContext_FromChunks(t *testing.T) {
	items := itemsFromChunks([]storage.ChunkWithDocument{
		{
			MaterialChunk: storage.MaterialChunk{
				Heading: "Normal Forms",
				Text:    "1NF requires atomic values.",
			},
			DocumentTitle: "Unit 2 Notes",
		},
	})

	text, citations := buildContext(items)

	if !strings.Contains(text, "Heading: Normal Forms\n") {
		t.Errorf("buildContext() missing heading line: %q", text)
	}
	if len(citations) != 1 {
		t.Fatalf("buildContext() citations = %d, want 1", len(citations))
	}
	if citations[0].Type != CitationLocalSnippet {
		t.Errorf("citation type = %q, want %q", citations[0].Type, CitationLocalSnippet)
	}
	if citations[0].URI != "" || citations[0].Relevance != "" {
		t.Error("local snippet citations should carry no URI or relevance")
	}
}
