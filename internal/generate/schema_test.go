package generate

import (
	"errors"
	"testing"
)

func TestDecodeBatch_ValidResponse(t *testing.T) {
	text := `{"flashcards": [
		{"question": "What is a monad?", "answer": "A monoid in the category of endofunctors."},
		{"question": "Who wrote SICP?", "answer": "Abelson and Sussman."}
	]}`
	cards, err := DecodeBatch(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if cards[0].Question != "What is a monad?" {
		t.Errorf("card 0 question: got %q", cards[0].Question)
	}
	if cards[1].Answer != "Abelson and Sussman." {
		t.Errorf("card 1 answer: got %q", cards[1].Answer)
	}
}

func TestDecodeBatch_CodeFencedResponse(t *testing.T) {
	text := "```json\n{\"flashcards\": [{\"question\": \"q\", \"answer\": \"a\"}]}\n```"
	cards, err := DecodeBatch(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 || cards[0].Question != "q" || cards[0].Answer != "a" {
		t.Errorf("unexpected cards: %+v", cards)
	}
}

func TestDecodeBatch_EmptyArrayIsValid(t *testing.T) {
	cards, err := DecodeBatch(`{"flashcards": []}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("expected 0 cards, got %d", len(cards))
	}
}

func TestDecodeBatch_OrderPreserved(t *testing.T) {
	text := `{"flashcards": [
		{"question": "q1", "answer": "a1"},
		{"question": "q2", "answer": "a2"},
		{"question": "q3", "answer": "a3"}
	]}`
	cards, err := DecodeBatch(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"q1", "q2", "q3"}
	for i, w := range want {
		if cards[i].Question != w {
			t.Errorf("card %d: expected %q, got %q", i, w, cards[i].Question)
		}
	}
}

func TestDecodeBatch_RejectsMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "the model rambled instead"},
		{"bare array", `[{"question": "q", "answer": "a"}]`},
		{"wrong top-level key", `{"cards": [{"question": "q", "answer": "a"}]}`},
		{"extra top-level key", `{"flashcards": [], "count": 0}`},
		{"null array", `{"flashcards": null}`},
		{"array is a string", `{"flashcards": "none"}`},
		{"card is a string", `{"flashcards": ["q and a"]}`},
		{"card missing answer", `{"flashcards": [{"question": "q"}]}`},
		{"card with extra field", `{"flashcards": [{"question": "q", "answer": "a", "page": 3}]}`},
		{"non-string question", `{"flashcards": [{"question": 7, "answer": "a"}]}`},
		{"non-string answer", `{"flashcards": [{"question": "q", "answer": false}]}`},
		{"null question", `{"flashcards": [{"question": null, "answer": "a"}]}`},
		{"null answer", `{"flashcards": [{"question": "q", "answer": null}]}`},
		{"json null", `null`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBatch(tc.text)
			if err == nil {
				t.Fatalf("expected error for %q", tc.text)
			}
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Errorf("expected SchemaError, got %T: %v", err, err)
			}
		})
	}
}

func TestDecodeBatch_LaterBadCardRejectsWholeBatch(t *testing.T) {
	text := `{"flashcards": [
		{"question": "good", "answer": "fine"},
		{"question": "bad", "answer": 42}
	]}`
	cards, err := DecodeBatch(text)
	if err == nil {
		t.Fatalf("expected error, got %d cards", len(cards))
	}
}

func TestStripCodeBlock_Variants(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeBlock(tc.in); got != tc.want {
				t.Errorf("stripCodeBlock(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
