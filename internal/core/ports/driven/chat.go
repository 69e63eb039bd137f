package driven

import (
	"context"
)

// Message is one turn in a chat-completion request
type Message struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// ChatRequest describes a single chat-completion call
type ChatRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int

	// JSONResponse requests a structured JSON object response
	// (response_format: json_object on providers that support it).
	JSONResponse bool
}

// ChatResponse contains the completion result
type ChatResponse struct {
	Content      string
	Model        string
	PromptTokens int
	TotalTokens  int
}

// ChatService provides chat-completion capabilities for the tutor dialogue
// and problem generation. One blocking request per call; no retry, no
// streaming.
type ChatService interface {
	// Complete performs a single chat-completion call
	Complete(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the chat service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the chat service
	Close() error
}
