package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/haulhire/crm/pkg/config"
)

func TestCreateCompletionSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4o" {
			t.Errorf("expected model gpt-4o, got %q", req.Model)
		}
		if req.Temperature != 0.7 {
			t.Errorf("expected temperature 0.7, got %v", req.Temperature)
		}
		if req.MaxTokens != 4000 {
			t.Errorf("expected max_tokens 4000, got %d", req.MaxTokens)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %+v", req.ResponseFormat)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"overallSummary\":\"ok\"}"}}]}`))
	}))
	defer server.Close()

	client := NewChatClient(&config.OpenAIConfig{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		ChatModel: "gpt-4o",
	})

	content, err := client.CreateCompletion(context.Background(), []ChatMessage{
		{Role: "system", Content: "you are a recruiter"},
		{Role: "user", Content: "transcript here"},
	})
	if err != nil {
		t.Fatalf("CreateCompletion error: %v", err)
	}
	if content != `{"overallSummary":"ok"}` {
		t.Errorf("unexpected content %q", content)
	}
}

func TestCreateCompletionEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewChatClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.CreateCompletion(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestCreateCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached."}}`))
	}))
	defer server.Close()

	client := NewChatClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.CreateCompletion(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Rate limit reached.") {
		t.Errorf("expected API message in error, got %q", err.Error())
	}
}
