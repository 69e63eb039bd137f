package extract

import (
	"bytes"
	"context"

	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

var pdfMagic = []byte("%PDF-")

// Ensure AutoDetect implements TextExtractor
var _ driven.TextExtractor = (*AutoDetect)(nil)

// AutoDetect routes a payload to the right extractor by sniffing its
// leading bytes. PDFs open with "%PDF-"; everything else is treated as
// plain text.
type AutoDetect struct {
	pdf  *PDFExtractor
	text *PlainTextExtractor
}

// NewAutoDetect creates an extractor that dispatches on payload format
func NewAutoDetect() *AutoDetect {
	return &AutoDetect{
		pdf:  NewPDFExtractor(),
		text: NewPlainTextExtractor(),
	}
}

// Extract extracts text from the payload using the format-appropriate extractor
func (e *AutoDetect) Extract(ctx context.Context, data []byte) (*driven.ExtractedText, error) {
	if bytes.HasPrefix(data, pdfMagic) {
		return e.pdf.Extract(ctx, data)
	}
	return e.text.Extract(ctx, data)
}

// ContentType returns a generic MIME type; the real type is sniffed per payload
func (e *AutoDetect) ContentType() string {
	return "application/octet-stream"
}
