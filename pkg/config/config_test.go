package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AIRTABLE_API_KEY", "pat-test")
	t.Setenv("AIRTABLE_BASE_ID", "appTestBase")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.OpenAI.WhisperModel != "whisper-1" {
		t.Errorf("expected whisper-1, got %s", cfg.OpenAI.WhisperModel)
	}
	if cfg.OpenAI.ChatModel != "gpt-4o" {
		t.Errorf("expected gpt-4o, got %s", cfg.OpenAI.ChatModel)
	}
	if cfg.Airtable.Table != "Candidates_V2" {
		t.Errorf("expected Candidates_V2, got %s", cfg.Airtable.Table)
	}
	if cfg.Media.SegmentCount != 3 {
		t.Errorf("expected 3 segments, got %d", cfg.Media.SegmentCount)
	}
	if cfg.Media.FFmpegPath != "ffmpeg" {
		t.Errorf("expected ffmpeg, got %s", cfg.Media.FFmpegPath)
	}
	if cfg.JWT.AccessExpiry != 15*time.Minute {
		t.Errorf("expected 15m access expiry, got %s", cfg.JWT.AccessExpiry)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("AUDIO_SEGMENT_COUNT", "5")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Media.SegmentCount != 5 {
		t.Errorf("expected 5 segments, got %d", cfg.Media.SegmentCount)
	}
	if cfg.JWT.AccessExpiry != 30*time.Minute {
		t.Errorf("expected 30m access expiry, got %s", cfg.JWT.AccessExpiry)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing openai key", "OPENAI_API_KEY"},
		{"missing airtable key", "AIRTABLE_API_KEY"},
		{"missing airtable base", "AIRTABLE_BASE_ID"},
		{"missing admin hash", "ADMIN_PASSWORD_HASH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			if _, err := Load(); err == nil {
				t.Errorf("expected error when %s is empty", tt.unset)
			}
		})
	}
}

func TestValidateSegmentCount(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUDIO_SEGMENT_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Error("expected error for zero segment count")
	}
}
