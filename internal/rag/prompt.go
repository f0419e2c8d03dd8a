package rag

import "fmt"

// RefusalSentence is the fixed sentence the model is instructed to
// emit verbatim when the context cannot answer the question. The
// post-processor's insufficiency detection keys off it; changing one
// side without the other breaks citation suppression.
const RefusalSentence = "I don't have enough information in the provided notes to fully answer this. Please refer to your textbook or class notes."

// BuildPrompt wraps the assembled context (or its absence) and the
// student's question into the tutor instruction template. Pure function.
func BuildPrompt(subjectLabel, contextText, question string) string {
	systemPrompt := fmt.Sprintf(`You are a helpful AI tutor for a university student.

Subject: %s

You must answer ONLY using the reference material provided in the <context> section.
If the context does not contain enough information to answer properly, say:
"%s"

Style requirements:
- Explain in a clear, exam-oriented way.
- Structure answers like 5-10 mark exam answers when appropriate.
- Do NOT introduce new definitions, formulas, or examples that are not supported by the context.
- You may reorganize and simplify the context, but do not add external knowledge.`, subjectLabel, RefusalSentence)

	if contextText != "" {
		return fmt.Sprintf(`%s

<context>
%s
</context>

Student question: %s

Now answer using ONLY the information inside <context>.`, systemPrompt, contextText, question)
	}

	return fmt.Sprintf(`%s

No context was found for this question.

Student question: %s

Explain briefly, and mention that this answer is based on general knowledge, not on the uploaded study material.`, systemPrompt, question)
}
