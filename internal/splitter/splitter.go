// Package splitter partitions a document into bounded page-range chunks
// ahead of per-chunk generation.
package splitter

import (
	"errors"
	"fmt"

	"github.com/dgallion1/flashgen/internal/document"
)

// Config controls the split decision.
type Config struct {
	ThresholdPages int // Documents with more pages than this get split.
	ChunkPages     int // Pages per chunk when splitting.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ThresholdPages: 500,
		ChunkPages:     100,
	}
}

// Chunk is one bounded slice of a source document plus its 0-based position
// in the split sequence.
type Chunk struct {
	Doc   document.Document
	Index int
}

// Split partitions doc into ordered chunks of at most cfg.ChunkPages pages.
// Documents at or below the threshold come back as a single chunk wrapping
// doc itself, unmodified. The chunks' page ranges are contiguous,
// non-overlapping, and cover every page exactly once.
func Split(doc document.Document, cfg Config) ([]Chunk, error) {
	if cfg.ThresholdPages <= 0 {
		cfg.ThresholdPages = 500
	}
	if cfg.ChunkPages <= 0 {
		cfg.ChunkPages = 100
	}

	n := doc.PageCount()
	if n == 0 {
		return nil, &document.FormatError{Err: errors.New("document has no pages")}
	}
	if n <= cfg.ThresholdPages {
		return []Chunk{{Doc: doc, Index: 0}}, nil
	}

	chunks := make([]Chunk, 0, (n+cfg.ChunkPages-1)/cfg.ChunkPages)
	for start := 0; start < n; start += cfg.ChunkPages {
		end := start + cfg.ChunkPages
		if end > n {
			end = n
		}
		sub, err := doc.ExtractRange(start, end)
		if err != nil {
			return nil, fmt.Errorf("split pages %d-%d: %w", start+1, end, err)
		}
		chunks = append(chunks, Chunk{Doc: sub, Index: len(chunks)})
	}
	return chunks, nil
}
