package document

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// ExtractText pulls plain text out of PDF bytes, pages separated by form
// feeds. It tries the Go library first; when that errors or comes back
// empty (scanned documents, exotic encodings) and fallbackPdftotext is set,
// it shells out to pdftotext.
func ExtractText(data []byte, fallbackPdftotext bool) (string, error) {
	text, err := extractEmbeddedText(data)
	if (err != nil || strings.TrimSpace(text) == "") && fallbackPdftotext {
		if out, fbErr := extractPdftotext(data); fbErr == nil {
			return out, nil
		}
	}
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	return text, nil
}

func extractEmbeddedText(data []byte) (string, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// extractPdftotext writes the bytes to a temp file and runs pdftotext on it.
func extractPdftotext(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "flashgen-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.Command("pdftotext", "-layout", tmpPath, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
