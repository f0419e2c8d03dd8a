package rag

import (
	"fmt"
	"strings"

	"coursemate-ai/internal/retrieval"
	"coursemate-ai/internal/storage"
)

// contextItem is the retrieval-path-neutral shape the assembler works
// on: both primary excerpts and local chunks reduce to it.
type contextItem struct {
	title    string
	page     *int
	heading  string
	text     string
	citation Citation
}

// itemsFromExcerpts converts primary retrieval results, preserving order.
func itemsFromExcerpts(excerpts []retrieval.Excerpt) []contextItem {
	items := make([]contextItem, 0, len(excerpts))
	for _, e := range excerpts {
		items = append(items, contextItem{
			title: e.DocumentTitle,
			page:  e.PageNumber,
			text:  e.Text,
			citation: Citation{
				Type:      CitationRetrieved,
				Title:     e.DocumentTitle,
				Page:      e.PageNumber,
				URI:       e.SourceURI,
				Relevance: string(e.Relevance),
			},
		})
	}
	return items
}

// itemsFromChunks converts fallback chunks, preserving order.
func itemsFromChunks(chunks []storage.ChunkWithDocument) []contextItem {
	items := make([]contextItem, 0, len(chunks))
	for _, c := range chunks {
		items = append(items, contextItem{
			title:   c.DocumentTitle,
			page:    c.PageNumber,
			heading: c.Heading,
			text:    c.Text,
			citation: Citation{
				Type:  CitationLocalSnippet,
				Title: c.DocumentTitle,
				Page:  c.PageNumber,
			},
		})
	}
	return items
}

// buildContext merges the items into one bounded plain-text block plus
// a parallel citation list, both in input order. Empty input yields an
// empty context and no citations; that is the expected "no material
// found" state, not an error.
func buildContext(items []contextItem) (string, []Citation) {
	if len(items) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("Reference material:\n")
	citations := make([]Citation, 0, len(items))

	for _, item := range items {
		fmt.Fprintf(&b, "Title: %s\n", item.title)
		if item.page != nil {
			fmt.Fprintf(&b, "Page: %d\n", *item.page)
		}
		if item.heading != "" {
			fmt.Fprintf(&b, "Heading: %s\n", item.heading)
		}
		fmt.Fprintf(&b, "Content: %s\n\n", item.text)
		citations = append(citations, item.citation)
	}

	return b.String(), citations
}
