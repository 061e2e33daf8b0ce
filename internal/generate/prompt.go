package generate

import "strings"

const FlashcardPrompt = `Create question/answer flashcards covering the important material in the attached document. Return a JSON object with a single key "flashcards" holding an array of cards. Each card must have exactly these fields:

- "question": a clear, self-contained question (string)
- "answer": the correct answer, concise but complete (string)

Rules:
- Cover definitions, key concepts, named entities, figures, and relationships
- Every question must be answerable from the document alone
- Write questions that stand on their own without seeing the document
- Do not number the cards or reference page numbers
- Do not add any fields beyond "question" and "answer"
- Return {"flashcards": []} if the document contains nothing worth studying

Respond with ONLY the JSON object, no other text.`

// BuildTextPrompt appends extracted document text to the prompt, for
// backends that take text rather than the document bytes themselves.
func BuildTextPrompt(docText string) string {
	var sb strings.Builder
	sb.WriteString(FlashcardPrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(docText)
	return sb.String()
}
