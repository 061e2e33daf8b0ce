package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Generator backend selection
	Provider string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI, or any OpenAI-compatible server
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Anthropic
	AnthropicAPIKey string
	AnthropicModel  string

	// Per-call deadline for generation requests
	GenerateTimeout time.Duration

	// Split decision
	ThresholdPages int
	ChunkPages     int

	// Upload limits
	MaxUploadBytes int64

	// PDF text extraction
	PDFFallbackPdftotext bool

	// LLM stats rolling window
	StatsWindow time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		Provider: envOr("GENERATOR_PROVIDER", "gemini"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.0-flash"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o-mini"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		GenerateTimeout: envDuration("GENERATE_TIMEOUT", 2*time.Minute),

		ThresholdPages: envInt("SPLIT_THRESHOLD_PAGES", 500),
		ChunkPages:     envInt("SPLIT_CHUNK_PAGES", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		StatsWindow: envDuration("LLM_STATS_WINDOW", 1*time.Hour),
	}

	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 2 * time.Minute
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	case "openai":
		if c.OpenAIAPIKey == "" && c.OpenAIBaseURL == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown GENERATOR_PROVIDER %q", c.Provider)
	}
	if c.ThresholdPages < 1 {
		return fmt.Errorf("SPLIT_THRESHOLD_PAGES must be at least 1")
	}
	if c.ChunkPages < 1 {
		return fmt.Errorf("SPLIT_CHUNK_PAGES must be at least 1")
	}
	return nil
}

// ActiveModel returns the model name for the selected provider.
func (c Config) ActiveModel() string {
	switch c.Provider {
	case "openai":
		return c.OpenAIModel
	case "anthropic":
		return c.AnthropicModel
	default:
		return c.GeminiModel
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
