package rag

import "strings"

// insufficiencyPhrases are checked (case-insensitively) against the
// model's answer. The first entries cover the instructed refusal
// sentence; the rest catch close paraphrases models produce anyway.
var insufficiencyPhrases = []string{
	"i don't have enough information",
	"i do not have enough information",
	"refer to your textbook",
	"refer to your class notes",
}

// maxTitleLength bounds auto-derived chat titles.
const maxTitleLength = 40

// newChatTitle is the placeholder a chat starts with.
const newChatTitle = "New chat"

// FinalizeSources suppresses citations when the answer declares the
// context insufficient: citations would be misleading if the model
// itself says it could not use them. Otherwise the input list is
// returned unchanged. The boolean reports whether suppression fired.
func FinalizeSources(answer string, citations []Citation) ([]Citation, bool) {
	answerLower := strings.ToLower(answer)
	for _, phrase := range insufficiencyPhrases {
		if strings.Contains(answerLower, phrase) {
			return nil, true
		}
	}
	return citations, false
}

// DeriveTitle produces a chat title from the first question. It only
// applies while the current title is still a placeholder ("New chat",
// empty, or the scope's own name), so each chat is titled exactly once.
// The question is trimmed to at most 40 characters, cut at the last
// whitespace boundary so words are never split.
func DeriveTitle(currentTitle, scopeLabel, question string) (string, bool) {
	if currentTitle != newChatTitle && currentTitle != "" && currentTitle != scopeLabel {
		return "", false
	}

	title := strings.TrimSpace(question)
	runes := []rune(title)
	if len(runes) > maxTitleLength {
		cut := string(runes[:maxTitleLength])
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		title = cut
	}

	return title, true
}
