package ai

import (
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Settings configure the OpenAI-backed AI services. BaseURL is overridable
// for tests and for OpenAI-compatible gateways.
type Settings struct {
	APIKey         string
	EmbeddingModel string
	ChatModel      string
	BaseURL        string
}

// IsConfigured reports whether the settings carry enough to build a service
func (s *Settings) IsConfigured() bool {
	return s != nil && s.APIKey != ""
}

// Factory creates AI services from settings
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateEmbeddingService creates an embedding service from settings.
// Returns (nil, nil) when unconfigured; the caller degrades gracefully.
func (f *Factory) CreateEmbeddingService(settings *Settings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}
	return NewOpenAIEmbedding(settings.APIKey, settings.EmbeddingModel, settings.BaseURL)
}

// CreateChatService creates a chat completion service from settings.
// Returns (nil, nil) when unconfigured; the caller degrades gracefully.
func (f *Factory) CreateChatService(settings *Settings) (driven.ChatService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}
	return NewOpenAIChat(settings.APIKey, settings.ChatModel, settings.BaseURL)
}
