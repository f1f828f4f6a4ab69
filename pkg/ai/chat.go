package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/haulhire/crm/pkg/config"
)

// ChatClient is a minimal client for the OpenAI chat completion API
type ChatClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewChatClient creates a chat client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewChatClient(cfg *config.OpenAIConfig) *ChatClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("OPENAI_BASE_URL")
		if base == "" {
			base = "https://api.openai.com"
		}
	}

	model := "gpt-4o"
	if cfg != nil && cfg.ChatModel != "" {
		model = cfg.ChatModel
	}

	return &ChatClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

// ChatMessage is one turn in a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []ChatMessage   `json:"messages,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ResponseFormat requests a structured output mode
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CreateCompletion sends the messages and returns the assistant content.
// The request always asks for JSON output.
func (c *ChatClient) CreateCompletion(ctx context.Context, messages []ChatMessage) (string, error) {
	reqBody := ChatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    0.7,
		MaxTokens:      4000,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, readAPIError(resp.Body))
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from chat API")
	}
	return cr.Choices[0].Message.Content, nil
}
