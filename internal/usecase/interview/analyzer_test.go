package interview

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/domain/entities"
	"github.com/haulhire/crm/pkg/ai"
)

const validAnalysisJSON = `{
	"overallSummary": "A seasoned freight sales professional with a strong Asia-US book.",
	"strengths": ["Consistent quota attainment", "Deep NVOCC relationships"],
	"weaknesses": ["Limited air freight exposure"],
	"keySkills": ["Prospecting", "Ocean freight pricing"],
	"cultureFit": "Collaborative and self-driven",
	"recommendationScore": 85,
	"recommendation": "Highly Recommend",
	"notableQuotes": ["I grew my lane revenue 40% in two years"],
	"redFlags": [],
	"candidateProfile": {
		"tradeLane": "Asia-US",
		"currentRole": "Senior Sales Executive"
	}
}`

type fakeChat struct {
	content string
	err     error
	gotMsgs []ai.ChatMessage
}

func (f *fakeChat) CreateCompletion(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	f.gotMsgs = messages
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func TestAnalyzeSuccess(t *testing.T) {
	chat := &fakeChat{content: validAnalysisJSON}
	analyzer := NewAnalyzer(chat, zap.NewNop())

	result, err := analyzer.Analyze(context.Background(), "the full transcript")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if result.RecommendationScore != 85 {
		t.Errorf("unexpected score %d", result.RecommendationScore)
	}
	if result.CandidateProfile.TradeLane != "Asia-US" {
		t.Errorf("unexpected trade lane %q", result.CandidateProfile.TradeLane)
	}
	// Fields the model skipped are backfilled.
	if result.CandidateProfile.SalaryExpectation != entities.NotMentioned {
		t.Errorf("expected placeholder, got %q", result.CandidateProfile.SalaryExpectation)
	}
	if result.RedFlags == nil {
		t.Error("expected non-nil red flags slice")
	}

	if len(chat.gotMsgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(chat.gotMsgs))
	}
	if chat.gotMsgs[0].Role != "system" || !strings.Contains(chat.gotMsgs[0].Content, "expert sales recruiter") {
		t.Errorf("unexpected system message %+v", chat.gotMsgs[0])
	}
	if !strings.Contains(chat.gotMsgs[1].Content, "the full transcript") {
		t.Error("user message must embed the transcript")
	}
}

func TestAnalyzeStripsMarkdownFences(t *testing.T) {
	chat := &fakeChat{content: "```json\n" + validAnalysisJSON + "\n```"}
	analyzer := NewAnalyzer(chat, zap.NewNop())

	result, err := analyzer.Analyze(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if result.OverallSummary == "" {
		t.Error("expected parsed summary")
	}
}

func TestAnalyzeEnvelopeFailure(t *testing.T) {
	chat := &fakeChat{err: fmt.Errorf("chat API returned status 500: upstream down")}
	analyzer := NewAnalyzer(chat, zap.NewNop())

	_, err := analyzer.Analyze(context.Background(), "transcript")
	if !apperrors.IsCode(err, apperrors.ErrorCode_ANALYSIS_ENVELOPE) {
		t.Errorf("expected ANALYSIS_ENVELOPE, got %v", err)
	}
}

func TestAnalyzeMalformedContent(t *testing.T) {
	chat := &fakeChat{content: "I could not produce JSON, sorry."}
	analyzer := NewAnalyzer(chat, zap.NewNop())

	_, err := analyzer.Analyze(context.Background(), "transcript")
	if !apperrors.IsCode(err, apperrors.ErrorCode_ANALYSIS_CONTENT) {
		t.Errorf("expected ANALYSIS_CONTENT, got %v", err)
	}
}

func TestAnalyzeMissingSummary(t *testing.T) {
	chat := &fakeChat{content: `{"strengths":["good"]}`}
	analyzer := NewAnalyzer(chat, zap.NewNop())

	_, err := analyzer.Analyze(context.Background(), "transcript")
	if !apperrors.IsCode(err, apperrors.ErrorCode_ANALYSIS_CONTENT) {
		t.Errorf("expected ANALYSIS_CONTENT for missing summary, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
