package mocks

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// MockEmbedding is a deterministic embedding service for testing.
// Vectors are derived from an FNV hash of the text, so identical input
// always embeds identically.
type MockEmbedding struct {
	mu    sync.Mutex
	dims  int
	calls int

	// Err, if set, is returned by Embed/EmbedQuery. ErrAfter limits the
	// failure to calls after the first n successful ones.
	Err      error
	ErrAfter int
}

// NewMockEmbedding creates a MockEmbedding with the given dimensionality
func NewMockEmbedding(dims int) *MockEmbedding {
	if dims <= 0 {
		dims = 8
	}
	return &MockEmbedding{dims: dims}
}

// Calls returns how many embedding calls have been made
func (m *MockEmbedding) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil && m.calls >= m.ErrAfter {
		return nil, m.Err
	}
	m.calls++

	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vector(text)
	}
	return out, nil
}

func (m *MockEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vecs, err := m.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *MockEmbedding) Dimensions() int { return m.dims }

func (m *MockEmbedding) Model() string { return "mock-embedding" }

func (m *MockEmbedding) HealthCheck(ctx context.Context) error { return m.Err }

func (m *MockEmbedding) Close() error { return nil }

func (m *MockEmbedding) vector(text string) []float32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum32()

	vec := make([]float32, m.dims)
	for i := range vec {
		seed = seed*1664525 + 1013904223
		vec[i] = float32(seed%1000) / 1000
	}
	return vec
}

// MockChat is a scriptable chat-completion service for testing.
// Responses are returned in FIFO order; when the script is exhausted a
// generic response is produced.
type MockChat struct {
	mu        sync.Mutex
	responses []*driven.ChatResponse
	requests  []driven.ChatRequest

	// Err, if set, is returned by Complete
	Err error
}

// NewMockChat creates a new MockChat
func NewMockChat() *MockChat {
	return &MockChat{}
}

// Script queues a response content to return from the next Complete call
func (m *MockChat) Script(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, &driven.ChatResponse{Content: content, Model: "mock-chat"})
}

// Requests returns a copy of all requests received so far
func (m *MockChat) Requests() []driven.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]driven.ChatRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockChat) Complete(ctx context.Context, req driven.ChatRequest) (*driven.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.responses) == 0 {
		return &driven.ChatResponse{
			Content: fmt.Sprintf("mock response %d", len(m.requests)),
			Model:   "mock-chat",
		}, nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

func (m *MockChat) Model() string { return "mock-chat" }

func (m *MockChat) Ping(ctx context.Context) error { return m.Err }

func (m *MockChat) Close() error { return nil }
