package runtime

import (
	"context"
	"sync"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Services holds references to dynamically configurable services.
// AI services (embedding, chat) can be reconfigured while the process runs,
// e.g. when an API key is added or rotated. Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	// Config tracks capability flags
	config *domain.RuntimeConfig

	// Dynamic services (can be nil, updated at runtime)
	embeddingService driven.EmbeddingService
	chatService      driven.ChatService
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	return &Services{
		config: config,
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// ChatService returns the current chat service (may be nil)
func (s *Services) ChatService() driven.ChatService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chatService
}

// SetEmbeddingService updates the embedding service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}

	s.embeddingService = svc
	s.config.SetEmbeddingAvailable(svc != nil)
}

// SetChatService updates the chat service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetChatService(svc driven.ChatService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chatService != nil {
		_ = s.chatService.Close()
	}

	s.chatService = svc
	s.config.SetChatAvailable(svc != nil)
}

// ValidateAndSetEmbedding validates connectivity before setting the embedding service
func (s *Services) ValidateAndSetEmbedding(ctx context.Context, svc driven.EmbeddingService) error {
	if svc == nil {
		s.SetEmbeddingService(nil)
		return nil
	}

	if err := svc.HealthCheck(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetEmbeddingService(svc)
	return nil
}

// ValidateAndSetChat validates connectivity before setting the chat service
func (s *Services) ValidateAndSetChat(ctx context.Context, svc driven.ChatService) error {
	if svc == nil {
		s.SetChatService(nil)
		return nil
	}

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetChatService(svc)
	return nil
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.chatService != nil {
		_ = s.chatService.Close()
		s.chatService = nil
	}

	s.config.SetEmbeddingAvailable(false)
	s.config.SetChatAvailable(false)

	return nil
}
