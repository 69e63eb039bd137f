package driven

import (
	"context"
)

// PageText is the extracted text of one document page
type PageText struct {
	Number int // 1-based page number
	Text   string
}

// ExtractedText is the result of pulling text out of an uploaded document
type ExtractedText struct {
	Pages []PageText

	// Text is the concatenated text of all pages
	Text string
}

// TextExtractor pulls raw text from an uploaded binary document.
// Implementations must return domain.ErrNoExtractableText when the
// document yields no usable text.
type TextExtractor interface {
	// Extract extracts text from the document payload
	Extract(ctx context.Context, data []byte) (*ExtractedText, error)

	// ContentType returns the MIME type this extractor handles
	ContentType() string
}
