// Package pipeline drives one document through split, per-chunk generation,
// and aggregation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/flashgen/internal/document"
	"github.com/dgallion1/flashgen/internal/flashcard"
	"github.com/dgallion1/flashgen/internal/generate"
	"github.com/dgallion1/flashgen/internal/splitter"
)

// Pipeline turns a document into flashcards. Chunks are generated strictly
// sequentially in position order, with at most one backend call in flight
// per request.
type Pipeline struct {
	gen   generate.Generator
	split splitter.Config
	log   *slog.Logger
}

func New(gen generate.Generator, split splitter.Config, log *slog.Logger) *Pipeline {
	return &Pipeline{
		gen:   gen,
		split: split,
		log:   log,
	}
}

// Process runs the full pipeline for one document. The first failing chunk
// aborts the whole run; partial results are never returned. Cancelling ctx
// abandons the in-flight call and discards anything aggregated so far.
func (p *Pipeline) Process(ctx context.Context, doc document.Document) ([]flashcard.Flashcard, error) {
	chunks, err := splitter.Split(doc, p.split)
	if err != nil {
		return nil, err
	}
	p.log.Info("document split",
		"pages", doc.PageCount(),
		"chunks", len(chunks),
	)

	var cards []flashcard.Flashcard
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch, err := p.gen.Generate(ctx, chunk.Doc.Bytes())
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunk.Index, err)
		}
		p.log.Info("chunk generated",
			"chunk", chunk.Index,
			"pages", chunk.Doc.PageCount(),
			"cards", len(batch),
		)
		cards = append(cards, batch...)
	}
	return cards, nil
}
