// Package flashcard defines the question/answer record produced by the
// generation pipeline and its CSV serialization.
package flashcard

// Flashcard is a single question/answer pair. Both fields may be empty;
// the serializer does not assume otherwise.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
