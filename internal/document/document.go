// Package document models the paginated payload the pipeline operates on.
// A Document knows its page count and can extract a contiguous page range
// into a new standalone Document of the same format.
package document

import "bytes"

// Document is an opaque paginated payload. Extracted sub-documents are
// independently owned values with no aliasing back to the original.
type Document interface {
	// PageCount returns the number of pages, >= 0.
	PageCount() int
	// ExtractRange extracts pages [start, end), 0-based, into a new Document.
	ExtractRange(start, end int) (Document, error)
	// Bytes returns the serialized form of the document.
	Bytes() []byte
}

// FormatError reports bytes that could not be understood as a valid document
// of the expected format, or a failed page extraction.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return "invalid document: " + e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

var pdfMagic = []byte("%PDF")

// IsPDF reports whether data starts with the PDF file header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}
