package ingest

import (
	"strings"
	"testing"
)

func TestChunker_HeadingSections(t *testing.T) {
	content := `# Normal Forms

First normal form requires atomic values in every column and no repeating groups anywhere.

## Second Normal Form

2NF removes partial dependencies on a composite key, splitting the table when needed.
`
	chunks := NewChunker().ChunkText(content, "DBMS Unit 2")

	if len(chunks) != 2 {
		t.Fatalf("ChunkText() = %d chunks, want 2", len(chunks))
	}
	if chunks[0].Heading != "Normal Forms" {
		t.Errorf("chunk 0 heading = %q", chunks[0].Heading)
	}
	if !strings.Contains(chunks[0].Text, "atomic values") {
		t.Errorf("chunk 0 text = %q", chunks[0].Text)
	}
	if chunks[1].Heading != "Second Normal Form" {
		t.Errorf("chunk 1 heading = %q", chunks[1].Heading)
	}
	if chunks[0].Index != 0 || chunks[1].Index != 1 {
		t.Errorf("chunk indices = %d, %d", chunks[0].Index, chunks[1].Index)
	}
}

func TestChunker_PlainTextUsesDocTitle(t *testing.T) {
	content := "A transaction is a unit of work that is either fully committed or fully rolled back, preserving consistency."
	chunks := NewChunker().ChunkText(content, "Transactions Handout")

	if len(chunks) != 1 {
		t.Fatalf("ChunkText() = %d chunks, want 1", len(chunks))
	}
	if chunks[0].Heading != "Transactions Handout" {
		t.Errorf("heading = %q, want doc title", chunks[0].Heading)
	}
}

func TestChunker_EmptyInput(t *testing.T) {
	if chunks := NewChunker().ChunkText("   \n  ", "Title"); chunks != nil {
		t.Errorf("ChunkText(blank) = %v, want nil", chunks)
	}
}

func TestChunker_TinySectionMerged(t *testing.T) {
	content := `# Intro

This introductory section carries a full paragraph of genuinely explanatory material for the test.

# Stub

Tiny.
`
	chunks := NewChunker().ChunkText(content, "Doc")

	if len(chunks) != 1 {
		t.Fatalf("ChunkText() = %d chunks, want tiny section merged into 1", len(chunks))
	}
	if !strings.Contains(chunks[0].Text, "Tiny.") {
		t.Error("merged chunk lost the tiny section's text")
	}
}

func TestChunker_OversizedSectionSplit(t *testing.T) {
	var b strings.Builder
	b.WriteString("# Big Section\n\n")
	for i := 0; i < 60; i++ {
		b.WriteString("This sentence pads the section well past the maximum chunk size limit. ")
	}
	chunks := NewChunker().ChunkText(b.String(), "Doc")

	if len(chunks) < 2 {
		t.Fatalf("ChunkText() = %d chunks, want oversized section split", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.Heading != "Big Section" {
			t.Errorf("chunk %d heading = %q, want inherited heading", i, chunk.Heading)
		}
		if n := len([]rune(chunk.Text)); n > maxChunkSize {
			t.Errorf("chunk %d is %d runes, exceeds max", i, n)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two! Three? Four")
	if len(got) != 4 {
		t.Fatalf("splitSentences() = %d pieces, want 4: %q", len(got), got)
	}
	if !strings.HasPrefix(got[3], " Four") {
		t.Errorf("last piece = %q", got[3])
	}
}
