package generate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/flashgen/internal/flashcard"
)

// DecodeBatch parses a backend response into flashcards, strictly: the text
// must be a JSON object whose only key is "flashcards", holding an array of
// objects that each carry exactly the two string fields "question" and
// "answer". Anything else is a SchemaError; no fields are coerced or
// dropped. An empty array is a valid empty batch.
func DecodeBatch(text string) ([]flashcard.Flashcard, error) {
	text = stripCodeBlock(text)

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &top); err != nil {
		return nil, &SchemaError{Reason: "response is not a JSON object: " + err.Error(), Raw: text}
	}
	if len(top) != 1 {
		return nil, &SchemaError{Reason: fmt.Sprintf("expected a single top-level key, got %d", len(top)), Raw: text}
	}
	rawCards, ok := top["flashcards"]
	if !ok {
		return nil, &SchemaError{Reason: `missing "flashcards" key`, Raw: text}
	}
	if trimmed := bytes.TrimSpace(rawCards); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &SchemaError{Reason: `"flashcards" is not an array`, Raw: text}
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(rawCards, &items); err != nil {
		return nil, &SchemaError{Reason: "cards are not objects: " + err.Error(), Raw: text}
	}

	cards := make([]flashcard.Flashcard, 0, len(items))
	for i, item := range items {
		if len(item) != 2 {
			return nil, &SchemaError{
				Reason: fmt.Sprintf("card %d: expected exactly the question and answer fields, got %d fields", i, len(item)),
				Raw:    text,
			}
		}
		q, err := stringField(item, "question")
		if err != nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("card %d: %v", i, err), Raw: text}
		}
		a, err := stringField(item, "answer")
		if err != nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("card %d: %v", i, err), Raw: text}
		}
		cards = append(cards, flashcard.Flashcard{Question: q, Answer: a})
	}
	return cards, nil
}

func stringField(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", fmt.Errorf("missing %q field", key)
	}
	// Unmarshalling null into a string is a silent no-op, so check the raw
	// value first.
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '"' {
		return "", fmt.Errorf("%q is not a string", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%q is not a string", key)
	}
	return s, nil
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// stripCodeBlock unwraps a response fenced in a markdown code block.
func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
