// Package generate turns document chunks into flashcards by calling an
// external language model. The concrete backend is behind the Generator
// interface so the pipeline stays swappable and mockable.
package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/dgallion1/flashgen/internal/flashcard"
)

// Generator produces flashcards from one document chunk's bytes.
type Generator interface {
	Generate(ctx context.Context, doc []byte) ([]flashcard.Flashcard, error)
}

// CallError reports a failed call to the generation backend: transport
// errors, service errors, and timeouts.
type CallError struct {
	Provider string
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s generate call: %v", e.Provider, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// SchemaError reports a backend response that did not match the expected
// flashcard JSON shape.
type SchemaError struct {
	Reason string
	Raw    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid generator response: %s (raw: %s)", e.Reason, truncate(e.Raw, 200))
}

// record feeds one call outcome into the rolling stats. A nil Stats is a
// no-op so backends can run without instrumentation.
func record(s *Stats, start time.Time, cards int, err error) {
	if s == nil {
		return
	}
	s.Record(time.Since(start).Milliseconds(), cards, err != nil)
}
