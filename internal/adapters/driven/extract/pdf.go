package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Ensure PDFExtractor implements TextExtractor
var _ driven.TextExtractor = (*PDFExtractor)(nil)

// PDFExtractor extracts text from PDF documents page by page.
// Image-only pages and pages that fail to parse are skipped; a document
// where every page is empty yields ErrNoExtractableText.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF text extractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract extracts text from the PDF payload
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (*driven.ExtractedText, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	result := &driven.ExtractedText{}
	var full strings.Builder

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Some pages fail to parse; keep going with the rest
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		result.Pages = append(result.Pages, driven.PageText{Number: i, Text: text})
		if full.Len() > 0 {
			full.WriteString("\n\n")
		}
		full.WriteString(text)
	}

	result.Text = full.String()
	if result.Text == "" {
		return nil, fmt.Errorf("PDF with %d pages: %w", numPages, domain.ErrNoExtractableText)
	}

	return result, nil
}

// ContentType returns the MIME type this extractor handles
func (e *PDFExtractor) ContentType() string {
	return "application/pdf"
}
