package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration. It is loaded once at process
// start and handed to the factory — nothing reads the environment at call
// time, so a bad credential fails the same way on every request.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openrouter", "openai", "gemini", "anthropic", "mock"
	Provider string

	OpenRouter OpenRouterConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single provider attempt.
	// Default: 30s.
	Timeout time.Duration
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "deepseek/deepseek-chat-v3-0324:free"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openrouter",
		OpenRouter: OpenRouterConfig{
			Model: "deepseek/deepseek-chat-v3-0324:free",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Retry: RetryConfig{
			MaxAttempts: 5,
			InitialWait: 1 * time.Second,
			MaxWait:     30 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("LEARNFLOW_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}
	if u := os.Getenv("OPENROUTER_BASE_URL"); u != "" {
		cfg.OpenRouter.BaseURL = u
	}

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	return cfg
}

// Model returns the model identifier for the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case "openrouter":
		return c.OpenRouter.Model
	case "openai":
		return c.OpenAI.Model
	case "gemini":
		return c.Gemini.Model
	case "anthropic":
		return c.Anthropic.Model
	default:
		return c.Provider
	}
}

// Validate checks that the selected provider has a usable API key.
// A missing or placeholder key is returned as *ErrConfiguration so callers
// can fail fast without making an outbound call.
func (c Config) Validate() error {
	switch c.Provider {
	case "openrouter":
		return checkCredential("OPENROUTER_API_KEY", c.OpenRouter.APIKey)
	case "openai":
		return checkCredential("OPENAI_API_KEY", c.OpenAI.APIKey)
	case "gemini":
		return checkCredential("GEMINI_API_KEY", c.Gemini.APIKey)
	case "anthropic":
		return checkCredential("ANTHROPIC_API_KEY", c.Anthropic.APIKey)
	case "mock":
		return nil
	default:
		return &ErrConfiguration{Reason: fmt.Sprintf("unknown LLM provider %q", c.Provider)}
	}
}

func checkCredential(envVar, key string) error {
	if key == "" {
		return &ErrConfiguration{Reason: envVar + " is not set"}
	}
	// Keys copied verbatim from a sample .env are not credentials.
	lower := strings.ToLower(key)
	if strings.HasPrefix(lower, "your") || lower == "changeme" {
		return &ErrConfiguration{Reason: envVar + " holds a placeholder value"}
	}
	return nil
}
