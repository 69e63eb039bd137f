package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven"
)

// Ensure OpenAIChat implements ChatService
var _ driven.ChatService = (*OpenAIChat)(nil)

// OpenAIChat implements ChatService using OpenAI's chat completions API
type OpenAIChat struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIChat creates a new OpenAI chat completion service
func NewOpenAIChat(apiKey, model, baseURL string) (driven.ChatService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIChat{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// chatCompletionRequest is the request body for the chat completions API
type chatCompletionRequest struct {
	Model          string           `json:"model"`
	Messages       []driven.Message `json:"messages"`
	Temperature    float64          `json:"temperature,omitempty"`
	MaxTokens      int              `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat  `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatCompletionResponse is the response from the chat completions API
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Model string `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
	Error *apiError `json:"error,omitempty"`
}

// Complete performs a single chat-completion call
func (c *OpenAIChat) Complete(ctx context.Context, req driven.ChatRequest) (*driven.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	reqBody := chatCompletionRequest{
		Model:       c.model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONResponse {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, classifyAPIError(resp.StatusCode, chatResp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyAPIError(resp.StatusCode, nil)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	return &driven.ChatResponse{
		Content:      chatResp.Choices[0].Message.Content,
		Model:        chatResp.Model,
		PromptTokens: chatResp.Usage.PromptTokens,
		TotalTokens:  chatResp.Usage.TotalTokens,
	}, nil
}

// Model returns the model name being used
func (c *OpenAIChat) Model() string {
	return c.model
}

// Ping verifies the chat service is available with a minimal completion
func (c *OpenAIChat) Ping(ctx context.Context) error {
	_, err := c.Complete(ctx, driven.ChatRequest{
		Messages:  []driven.Message{{Role: "user", Content: "ping"}},
		MaxTokens: 1,
	})
	return err
}

// Close releases resources held by the chat service
func (c *OpenAIChat) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
