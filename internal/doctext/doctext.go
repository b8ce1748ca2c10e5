// Package doctext turns a document file into plain text for mining and
// validation. Conversion is two-stage: docconv handles the broad format
// range (PDF via pdftotext, plus office formats), and a pure-Go PDF
// text walk is the fallback when docconv is unavailable or comes back
// empty.
package doctext

import (
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/ledongthuc/pdf"
)

// Reader extracts document text.
type Reader struct {
	// MaxPages bounds the fallback PDF walk. Zero means all pages.
	MaxPages int
}

// Text returns the plain text of the file at path. The boolean is
// false when no stage produced any text; an unreadable document
// degrades the pipeline rather than failing it.
func (r Reader) Text(path string) (string, bool) {
	if response, err := docconv.ConvertPath(path); err == nil {
		if body := strings.TrimSpace(response.Body); body != "" {
			return response.Body, true
		}
	}

	text, err := r.pdfText(path)
	if err != nil || strings.TrimSpace(text) == "" {
		return "", false
	}

	return text, true
}

// Lines returns the text split into lines, empty ones dropped.
func (r Reader) Lines(path string) ([]string, bool) {
	text, ok := r.Text(path)
	if !ok {
		return nil, false
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	return lines, len(lines) > 0
}

// pdfText walks the PDF page tree directly. Pages that fail to decode
// are skipped; one bad content stream should not hide the rest.
func (r Reader) pdfText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	maxPages := reader.NumPage()
	if r.MaxPages > 0 && r.MaxPages < maxPages {
		maxPages = r.MaxPages
	}

	var builder strings.Builder

	for i := 1; i <= maxPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}
