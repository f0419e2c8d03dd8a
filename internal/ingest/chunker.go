package ingest

import (
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const (
	// minChunkSize merges fragments shorter than this into their neighbor.
	minChunkSize = 50
	// maxChunkSize splits sections longer than this (runes).
	maxChunkSize = 1500
)

// Chunk is one heading-scoped section of a material document.
type Chunk struct {
	Index   int
	Heading string
	Text    string
}

// Chunker splits material text into heading-scoped chunks using
// goldmark AST parsing. Plain text without headings becomes a single
// sequence of size-bounded chunks.
type Chunker struct {
	parser goldmark.Markdown
}

// NewChunker creates a new material chunker.
func NewChunker() *Chunker {
	return &Chunker{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// ChunkText parses the material content and returns its chunks.
// The document title is used as the heading for any leading content
// that appears before the first heading.
func (c *Chunker) ChunkText(content, docTitle string) []Chunk {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	source := []byte(content)
	doc := c.parser.Parser().Parse(text.NewReader(source))

	var chunks []Chunk
	var current *Chunk

	flush := func() {
		if current != nil && strings.TrimSpace(current.Text) != "" {
			current.Text = strings.TrimSpace(current.Text)
			chunks = append(chunks, *current)
		}
		current = nil
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			flush()
			current = &Chunk{Heading: nodeText(node, source)}
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if current == nil {
				current = &Chunk{Heading: docTitle}
			}
			current.Text += string(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				current.Text += " "
			}
		case *ast.String:
			if current == nil {
				current = &Chunk{Heading: docTitle}
			}
			current.Text += string(node.Value)
		case *ast.Paragraph, *ast.ListItem, *ast.Blockquote:
			if current != nil && current.Text != "" && !strings.HasSuffix(current.Text, " ") {
				current.Text += " "
			}
		}

		return ast.WalkContinue, nil
	})
	flush()

	chunks = applySizeConstraints(chunks)

	for i := range chunks {
		chunks[i].Index = i
	}
	return chunks
}

// applySizeConstraints merges tiny chunks into their predecessor and
// splits oversized ones at sentence boundaries.
func applySizeConstraints(chunks []Chunk) []Chunk {
	var merged []Chunk
	for _, chunk := range chunks {
		if len(merged) > 0 && len([]rune(chunk.Text)) < minChunkSize {
			prev := &merged[len(merged)-1]
			prev.Text = prev.Text + " " + chunk.Text
			continue
		}
		merged = append(merged, chunk)
	}

	var result []Chunk
	for _, chunk := range merged {
		if len([]rune(chunk.Text)) <= maxChunkSize {
			result = append(result, chunk)
			continue
		}
		for _, piece := range splitBySentence(chunk.Text, maxChunkSize) {
			result = append(result, Chunk{Heading: chunk.Heading, Text: piece})
		}
	}
	return result
}

// splitBySentence splits s into pieces of at most maxRunes runes,
// preferring sentence boundaries.
func splitBySentence(s string, maxRunes int) []string {
	var pieces []string
	var buf strings.Builder
	bufRunes := 0

	for _, sentence := range splitSentences(s) {
		n := len([]rune(sentence))
		if bufRunes > 0 && bufRunes+n > maxRunes {
			pieces = append(pieces, strings.TrimSpace(buf.String()))
			buf.Reset()
			bufRunes = 0
		}
		buf.WriteString(sentence)
		bufRunes += n
	}
	if strings.TrimSpace(buf.String()) != "" {
		pieces = append(pieces, strings.TrimSpace(buf.String()))
	}
	return pieces
}

// splitSentences splits on sentence-ending punctuation followed by space.
func splitSentences(s string) []string {
	var sentences []string
	var buf strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		buf.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && (i+1 >= len(runes) || unicode.IsSpace(runes[i+1])) {
			sentences = append(sentences, buf.String())
			buf.Reset()
		}
	}
	if buf.Len() > 0 {
		sentences = append(sentences, buf.String())
	}
	return sentences
}

// nodeText extracts the plain text of an AST node.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := child.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
		case *ast.String:
			b.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
