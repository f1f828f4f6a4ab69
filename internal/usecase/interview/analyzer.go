package interview

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/domain/entities"
	"github.com/haulhire/crm/pkg/ai"
)

// chatCompleter is the slice of the chat client the analyzer needs
type chatCompleter interface {
	CreateCompletion(ctx context.Context, messages []ai.ChatMessage) (string, error)
}

// Analyzer turns a transcript into a structured candidate analysis.
// Transport failures and malformed content are reported as distinct
// error codes so callers can tell a dead API from a confused model.
type Analyzer struct {
	chat   chatCompleter
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer backed by the chat client
func NewAnalyzer(chat chatCompleter, logger *zap.Logger) *Analyzer {
	return &Analyzer{chat: chat, logger: logger}
}

// Analyze submits the transcript for analysis and parses the response
func (a *Analyzer) Analyze(ctx context.Context, transcript string) (*entities.AnalysisResult, error) {
	messages := []ai.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildAnalysisPrompt(transcript)},
	}

	content, err := a.chat.CreateCompletion(ctx, messages)
	if err != nil {
		a.logger.Error("❌ Analysis request failed", zap.Error(err))
		return nil, apperrors.ErrAnalysisEnvelope(err)
	}

	result, err := parseAnalysisResponse(content)
	if err != nil {
		a.logger.Error("❌ Analysis content unusable", zap.Error(err))
		return nil, err
	}

	a.logger.Info("🤖 Analysis parsed",
		zap.Int("recommendation_score", result.RecommendationScore),
		zap.String("recommendation", result.Recommendation))
	return result, nil
}

// parseAnalysisResponse strips markdown fences, decodes the payload, and
// normalizes sparse fields. Only a missing overallSummary fails loudly;
// everything else degrades to placeholders.
func parseAnalysisResponse(content string) (*entities.AnalysisResult, error) {
	cleaned := extractJSON(content)

	var result entities.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, apperrors.ErrAnalysisContent(err)
	}

	result.Normalize()

	if result.OverallSummary == "" {
		return nil, apperrors.ErrAnalysisContent(nil).WithDetail("reason", "missing overallSummary")
	}

	return &result, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
