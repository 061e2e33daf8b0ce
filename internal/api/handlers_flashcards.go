package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/flashgen/internal/document"
	"github.com/dgallion1/flashgen/internal/flashcard"
	"github.com/dgallion1/flashgen/internal/generate"
)

// handleGenerate accepts one uploaded PDF in the "file" form field, runs the
// generation pipeline on it, and returns the flashcards as a CSV download.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if !document.IsPDF(data) {
		jsonError(w, "file is not a PDF", http.StatusBadRequest)
		return
	}

	doc, err := document.OpenPDF(data)
	if err != nil {
		jsonError(w, "unreadable PDF: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.log.Info("processing upload",
		"filename", filename,
		"bytes", len(data),
		"pages", doc.PageCount(),
	)

	cards, err := s.pipeline.Process(r.Context(), doc)
	if err != nil {
		s.writeProcessError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="flashcards.csv"`)
	w.Write(flashcard.MarshalCSV(cards))
}

// writeProcessError maps pipeline failures onto statuses: document problems
// are the client's fault, generator and schema problems are upstream faults.
func (s *Server) writeProcessError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		// Caller is gone; nothing useful left to write.
		s.log.Warn("request abandoned", "error", err)
		return
	}

	var formatErr *document.FormatError
	var callErr *generate.CallError
	var schemaErr *generate.SchemaError

	switch {
	case errors.As(err, &formatErr):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &callErr):
		jsonError(w, err.Error(), http.StatusBadGateway)
	case errors.As(err, &schemaErr):
		jsonError(w, err.Error(), http.StatusBadGateway)
	default:
		s.log.Error("generation failed", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
