package mocks

import (
	"context"
	"strings"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// MockExtractor is a mock TextExtractor that treats the payload as the
// extracted text itself, one page per form-feed separated section.
type MockExtractor struct {
	// Err, if set, is returned by Extract
	Err error
}

// NewMockExtractor creates a new MockExtractor
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

func (m *MockExtractor) Extract(ctx context.Context, data []byte) (*driven.ExtractedText, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoExtractableText
	}

	var pages []driven.PageText
	for i, section := range strings.Split(text, "\f") {
		pages = append(pages, driven.PageText{Number: i + 1, Text: section})
	}
	return &driven.ExtractedText{Pages: pages, Text: text}, nil
}

func (m *MockExtractor) ContentType() string { return "text/plain" }
