package ingest

import (
	"sort"
	"strings"
	"unicode"
)

// maxKeywords caps the keyword tags stored per chunk.
const maxKeywords = 8

var keywordStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "from": true,
	"as": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "this": true, "that": true,
	"these": true, "those": true, "it": true, "its": true, "can": true,
	"will": true, "would": true, "should": true, "could": true,
	"has": true, "have": true, "had": true, "not": true, "which": true,
	"when": true, "where": true, "what": true, "how": true, "why": true,
	"also": true, "into": true, "than": true, "then": true, "there": true,
	"their": true, "such": true, "each": true, "other": true, "more": true,
	"some": true, "any": true, "all": true, "may": true, "used": true,
	"using": true, "between": true, "both": true, "called": true,
}

// ExtractKeywords tags a chunk with its most frequent content words.
// Heading words are weighted double since headings name the topic. The
// result is lowercase, comma-joinable, and capped at maxKeywords terms
// ordered by frequency then alphabetically for determinism.
func ExtractKeywords(heading, text string) []string {
	freq := make(map[string]int)
	for _, w := range tokenize(heading) {
		freq[w] += 2
	}
	for _, w := range tokenize(text) {
		freq[w]++
	}

	terms := make([]string, 0, len(freq))
	for w := range freq {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > maxKeywords {
		terms = terms[:maxKeywords]
	}
	return terms
}

// tokenize lowercases and splits on non-alphanumeric runes, dropping
// stopwords and words of three characters or fewer.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) <= 3 || keywordStopwords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}
