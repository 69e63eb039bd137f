package domain

import "sync"

// RuntimeConfig tracks which services are available at runtime.
// AI capability flags can change while the process runs (keys configured or
// revoked via the settings API); everything else is fixed at startup.
// Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	QueueBackend string // "redis" or "postgres"

	// Dynamic capability flags (updated when AI services change)
	embeddingAvailable bool
	chatAvailable      bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(queueBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		QueueBackend: queueBackend,
	}
}

// EmbeddingAvailable returns whether an embedding service is configured
func (c *RuntimeConfig) EmbeddingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable
}

// ChatAvailable returns whether a chat completion service is configured
func (c *RuntimeConfig) ChatAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chatAvailable
}

// SetEmbeddingAvailable updates the embedding availability flag
func (c *RuntimeConfig) SetEmbeddingAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddingAvailable = available
}

// SetChatAvailable updates the chat availability flag
func (c *RuntimeConfig) SetChatAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chatAvailable = available
}

// CanIngest returns true if the ingestion pipeline can run end to end
func (c *RuntimeConfig) CanIngest() bool {
	return c.EmbeddingAvailable()
}

// CanTutor returns true if tutor dialogue can produce responses
func (c *RuntimeConfig) CanTutor() bool {
	return c.ChatAvailable()
}
