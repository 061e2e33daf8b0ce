package document

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDF is a Document backed by PDF bytes. The original upload is kept as-is;
// sub-documents carry freshly written bytes of their own.
type PDF struct {
	data  []byte
	pages int
}

// OpenPDF parses and validates PDF bytes and records the page count.
// Unparseable input returns a FormatError.
func OpenPDF(data []byte) (*PDF, error) {
	if len(data) == 0 {
		return nil, &FormatError{Err: errors.New("empty payload")}
	}
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), readConf())
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	return &PDF{data: data, pages: pdfCtx.PageCount}, nil
}

func (p *PDF) PageCount() int { return p.pages }

func (p *PDF) Bytes() []byte { return p.data }

// ExtractRange extracts pages [start, end) into a new standalone PDF,
// preserving page order and content.
func (p *PDF) ExtractRange(start, end int) (Document, error) {
	if start < 0 || end > p.pages || start >= end {
		return nil, fmt.Errorf("page range [%d, %d) out of bounds for %d pages", start, end, p.pages)
	}
	// pdfcpu selections are 1-based and inclusive.
	sel := []string{fmt.Sprintf("%d-%d", start+1, end)}
	var buf bytes.Buffer
	if err := api.Trim(bytes.NewReader(p.data), &buf, sel, readConf()); err != nil {
		return nil, &FormatError{Err: fmt.Errorf("extract pages %d-%d: %w", start+1, end, err)}
	}
	return &PDF{data: buf.Bytes(), pages: end - start}, nil
}

// readConf builds a fresh configuration per call; pdfcpu api functions
// mutate the command field of the configuration they are given.
func readConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
