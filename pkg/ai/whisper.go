package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/haulhire/crm/pkg/config"
)

// WhisperClient is a minimal client for the OpenAI audio transcription API
type WhisperClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewWhisperClient creates a transcription client using values from the
// provided config. Pass a nil config to fall back to environment variables.
func NewWhisperClient(cfg *config.OpenAIConfig) *WhisperClient {
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

	model := "whisper-1"
	if cfg != nil && cfg.WhisperModel != "" {
		model = cfg.WhisperModel
	}

	return &WhisperClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe uploads one audio chunk and returns its transcript text
func (w *WhisperClient) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := mw.WriteField("model", w.model); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	endpoint := w.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("transcription API returned status %d: %s", resp.StatusCode, readAPIError(resp.Body))
	}

	var tr transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}
	if strings.TrimSpace(tr.Text) == "" {
		return "", fmt.Errorf("transcription API returned empty text for %s", filename)
	}
	return tr.Text, nil
}

// readAPIError extracts error.message from an OpenAI error body,
// falling back to a generic label when the body is not that shape.
func readAPIError(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil {
		return "unknown error"
	}

	var apiErr apiErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	if len(raw) > 0 {
		return string(raw)
	}
	return "unknown error"
}
