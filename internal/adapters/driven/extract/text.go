package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Ensure PlainTextExtractor implements TextExtractor
var _ driven.TextExtractor = (*PlainTextExtractor)(nil)

// PlainTextExtractor handles plain-text uploads. Form feeds mark page
// boundaries; without them the document is a single page.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a new plain text extractor
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract extracts text from the plain text payload
func (e *PlainTextExtractor) Extract(ctx context.Context, data []byte) (*driven.ExtractedText, error) {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty document: %w", domain.ErrNoExtractableText)
	}

	result := &driven.ExtractedText{}
	var full strings.Builder

	pageNum := 0
	for _, page := range strings.Split(text, "\f") {
		pageNum++
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}

		result.Pages = append(result.Pages, driven.PageText{Number: pageNum, Text: page})
		if full.Len() > 0 {
			full.WriteString("\n\n")
		}
		full.WriteString(page)
	}

	result.Text = full.String()
	return result, nil
}

// ContentType returns the MIME type this extractor handles
func (e *PlainTextExtractor) ContentType() string {
	return "text/plain"
}
