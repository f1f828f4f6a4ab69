package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	JWT      JWTConfig
	Auth     AuthConfig
	OpenAI   OpenAIConfig
	Airtable AirtableConfig
	Media    MediaConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// AuthConfig holds admin login configuration
type AuthConfig struct {
	AdminUsername     string
	AdminPasswordHash string
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string
	WhisperModel string
	ChatModel    string
}

// AirtableConfig holds candidate record store configuration
type AirtableConfig struct {
	Token   string
	BaseID  string
	Table   string
	BaseURL string
}

// MediaConfig holds audio processing configuration
type MediaConfig struct {
	FFmpegPath   string
	SegmentCount int
	Bitrate      string
	SampleRate   int
	RunTimeout   time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-change-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		Auth: AuthConfig{
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			BaseURL:      getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			WhisperModel: getEnv("OPENAI_WHISPER_MODEL", "whisper-1"),
			ChatModel:    getEnv("OPENAI_CHAT_MODEL", "gpt-4o"),
		},
		Airtable: AirtableConfig{
			Token:   getEnv("AIRTABLE_API_KEY", ""),
			BaseID:  getEnv("AIRTABLE_BASE_ID", ""),
			Table:   getEnv("AIRTABLE_TABLE", "Candidates_V2"),
			BaseURL: getEnv("AIRTABLE_BASE_URL", "https://api.airtable.com"),
		},
		Media: MediaConfig{
			FFmpegPath:   getEnv("FFMPEG_PATH", "ffmpeg"),
			SegmentCount: getEnvAsInt("AUDIO_SEGMENT_COUNT", 3),
			Bitrate:      getEnv("AUDIO_BITRATE", "128k"),
			SampleRate:   getEnvAsInt("AUDIO_SAMPLE_RATE", 44100),
			RunTimeout:   getEnvAsDuration("PIPELINE_RUN_TIMEOUT", "30m"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Airtable.Token == "" {
		return fmt.Errorf("AIRTABLE_API_KEY is required")
	}
	if c.Airtable.BaseID == "" {
		return fmt.Errorf("AIRTABLE_BASE_ID is required")
	}
	if c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if c.Media.SegmentCount < 1 {
		return fmt.Errorf("AUDIO_SEGMENT_COUNT must be at least 1")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
