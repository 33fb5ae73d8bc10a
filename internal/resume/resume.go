// Package resume extracts plain text from uploaded resume documents.
package resume

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/okian/ascent/pkg/metrics"
)

// ExtractPDF pulls the plain text out of a PDF document. Pages without
// readable content are skipped rather than failing the whole document.
func ExtractPDF(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
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
		textBuilder.WriteString(text)
	}

	out := strings.TrimSpace(textBuilder.String())
	if out == "" {
		return "", ErrNoText
	}

	metrics.RecordResumeExtraction()
	return out, nil
}
