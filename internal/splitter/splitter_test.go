package splitter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dgallion1/flashgen/internal/document"
)

// fakeDoc is an in-memory Document tracked by page range only. lo is the
// first page of this doc within the original, 0-based, so extraction order
// and contiguity can be checked without real document bytes.
type fakeDoc struct {
	pages  int
	lo     int
	failAt int // extraction call ordinal that errors, 0 = never
	ncalls *int
}

func newFakeDoc(pages int) *fakeDoc {
	var calls int
	return &fakeDoc{pages: pages, ncalls: &calls}
}

func (d *fakeDoc) PageCount() int { return d.pages }

func (d *fakeDoc) Bytes() []byte {
	return []byte(fmt.Sprintf("pages %d-%d", d.lo, d.lo+d.pages))
}

func (d *fakeDoc) ExtractRange(start, end int) (document.Document, error) {
	*d.ncalls++
	if d.failAt > 0 && *d.ncalls == d.failAt {
		return nil, errors.New("extraction exploded")
	}
	if start < 0 || end > d.pages || start >= end {
		return nil, fmt.Errorf("bad range [%d, %d) for %d pages", start, end, d.pages)
	}
	return &fakeDoc{pages: end - start, lo: d.lo + start, ncalls: d.ncalls}, nil
}

func TestSplit_SmallDocReturnsOriginal(t *testing.T) {
	doc := newFakeDoc(120)
	chunks, err := Split(doc, Config{ThresholdPages: 500, ChunkPages: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Doc != document.Document(doc) {
		t.Error("expected the chunk to wrap the original document, not a copy")
	}
	if chunks[0].Index != 0 {
		t.Errorf("expected index 0, got %d", chunks[0].Index)
	}
	if *doc.ncalls != 0 {
		t.Errorf("expected no extraction calls below threshold, got %d", *doc.ncalls)
	}
}

func TestSplit_ThresholdBoundaryStaysWhole(t *testing.T) {
	// Exactly at the threshold is not "more than" the threshold.
	doc := newFakeDoc(500)
	chunks, err := Split(doc, Config{ThresholdPages: 500, ChunkPages: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for 500 pages at threshold 500, got %d", len(chunks))
	}
}

func TestSplit_LargeDocPartition(t *testing.T) {
	doc := newFakeDoc(650)
	chunks, err := Split(doc, Config{ThresholdPages: 500, ChunkPages: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 7 {
		t.Fatalf("expected 7 chunks for 650 pages, got %d", len(chunks))
	}

	wantPages := []int{100, 100, 100, 100, 100, 100, 50}
	total := 0
	nextLo := 0
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
		fd := c.Doc.(*fakeDoc)
		if fd.pages != wantPages[i] {
			t.Errorf("chunk %d: expected %d pages, got %d", i, wantPages[i], fd.pages)
		}
		// Contiguous and non-overlapping: each chunk starts where the
		// previous one ended.
		if fd.lo != nextLo {
			t.Errorf("chunk %d: expected to start at page %d, got %d", i, nextLo, fd.lo)
		}
		nextLo = fd.lo + fd.pages
		total += fd.pages
	}
	if total != 650 {
		t.Errorf("expected chunk pages to sum to 650, got %d", total)
	}
}

func TestSplit_ExactMultipleHasNoShortTail(t *testing.T) {
	doc := newFakeDoc(600)
	chunks, err := Split(doc, Config{ThresholdPages: 500, ChunkPages: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 6 {
		t.Fatalf("expected 6 chunks for 600 pages, got %d", len(chunks))
	}
	for i, c := range chunks {
		if got := c.Doc.PageCount(); got != 100 {
			t.Errorf("chunk %d: expected 100 pages, got %d", i, got)
		}
	}
}

func TestSplit_OnePageOverThreshold(t *testing.T) {
	doc := newFakeDoc(501)
	chunks, err := Split(doc, Config{ThresholdPages: 500, ChunkPages: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 6 {
		t.Fatalf("expected 6 chunks for 501 pages, got %d", len(chunks))
	}
	if got := chunks[5].Doc.PageCount(); got != 1 {
		t.Errorf("expected final chunk of 1 page, got %d", got)
	}
}

func TestSplit_ZeroPagesRejected(t *testing.T) {
	doc := newFakeDoc(0)
	_, err := Split(doc, DefaultConfig())
	if err == nil {
		t.Fatal("expected error for zero-page document")
	}
	var formatErr *document.FormatError
	if !errors.As(err, &formatErr) {
		t.Errorf("expected FormatError, got %T: %v", err, err)
	}
}

func TestSplit_ZeroConfigUsesDefaults(t *testing.T) {
	// Zero-value config falls back to threshold 500 / chunk 100.
	doc := newFakeDoc(501)
	chunks, err := Split(doc, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 6 {
		t.Fatalf("expected 6 chunks with default config, got %d", len(chunks))
	}
}

func TestSplit_ExtractionFailureAborts(t *testing.T) {
	doc := newFakeDoc(650)
	doc.failAt = 3
	_, err := Split(doc, Config{ThresholdPages: 500, ChunkPages: 100})
	if err == nil {
		t.Fatal("expected error when extraction fails")
	}
	if *doc.ncalls != 3 {
		t.Errorf("expected extraction to stop at call 3, got %d calls", *doc.ncalls)
	}
}
