package retrieval

import (
	"strings"
	"unicode"
)

// questionStopwords are dropped before the keyword-density check so
// that interrogative scaffolding does not count as content overlap.
var questionStopwords = map[string]struct{}{
	"the": {}, "what": {}, "are": {}, "is": {}, "how": {}, "why": {},
	"when": {}, "where": {}, "can": {}, "does": {}, "do": {}, "did": {},
	"will": {}, "would": {}, "should": {}, "could": {},
}

// QualityConfig holds the tunable thresholds of the excerpt quality
// filter. All values come from configuration; nothing here is a fixed
// policy.
type QualityConfig struct {
	// MinExcerptChars is the minimum trimmed excerpt length in bytes.
	MinExcerptChars int
	// MinExcerptWords is the minimum whitespace-delimited word count.
	MinExcerptWords int
	// MinAlnumRatio is the minimum fraction of alphanumeric runes.
	MinAlnumRatio float64
	// ExcludeLowRelevance rejects TierLow excerpts when set.
	ExcludeLowRelevance bool
}

// DefaultQualityConfig returns the default filter thresholds.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		MinExcerptChars:     40,
		MinExcerptWords:     8,
		MinAlnumRatio:       0.4,
		ExcludeLowRelevance: false,
	}
}

// Accept reports whether an excerpt carries enough substance to be
// worth grounding an answer on. The filter trades recall for
// precision: its job is to suppress hits that are pure keyword echoes
// of the question with no explanatory content.
//
// ANSWER-kind excerpts are index-synthesized and skip every check
// except non-emptiness.
func (c QualityConfig) Accept(e Excerpt, question string) bool {
	text := strings.TrimSpace(e.Text)

	if e.Kind == KindAnswer {
		return text != ""
	}

	if len(text) < c.MinExcerptChars {
		return false
	}

	if c.ExcludeLowRelevance && e.Relevance == TierLow {
		return false
	}

	if len(strings.Fields(text)) < c.MinExcerptWords {
		return false
	}

	if alnumRatio(text) < c.MinAlnumRatio {
		return false
	}

	// An excerpt that contains almost every question keyword yet stays
	// short is a keyword echo, not an explanation.
	keywords := questionKeywords(question)
	if len(keywords) > 0 {
		textLower := strings.ToLower(text)
		matched := 0
		for _, kw := range keywords {
			if strings.Contains(textLower, kw) {
				matched++
			}
		}
		ratio := float64(matched) / float64(len(keywords))
		if ratio > 0.8 && len(text) < 2*c.MinExcerptChars+20 {
			return false
		}
	}

	return true
}

// alnumRatio returns the fraction of runes that are letters or digits.
func alnumRatio(text string) float64 {
	if text == "" {
		return 0
	}
	var total, alnum int
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}
	return float64(alnum) / float64(total)
}

// questionKeywords extracts meaningful lower-cased words (length > 2,
// stopwords removed) from the question.
func questionKeywords(question string) []string {
	var keywords []string
	for _, w := range strings.Fields(strings.ToLower(question)) {
		w = strings.TrimSpace(w)
		if len(w) <= 2 {
			continue
		}
		if _, stop := questionStopwords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
	}
	return keywords
}
