package llm

import (
	"context"
	"fmt"

	"github.com/learnflow/learnflow/internal/logger"
)

// NewProvider creates a Provider from configuration, wrapped with logging
// and retry middleware.
//
// A missing or placeholder credential does not fail construction: the
// process still starts and serves its health endpoint, and every Generate
// call reports the configuration error without touching the network.
func NewProvider(ctx context.Context, cfg Config, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return &faultProvider{model: cfg.Model(), err: err}, nil
	}

	var base Provider

	switch cfg.Provider {
	case "openrouter":
		base = NewOpenRouterProvider(cfg.OpenRouter, cfg.Timeout)
	case "openai":
		base = NewOpenAIProvider(cfg.OpenAI, cfg.Timeout)
	case "gemini":
		g, err := NewGeminiProvider(ctx, cfg.Gemini, cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("initializing gemini provider: %w", err)
		}
		base = g
	case "anthropic":
		base = NewAnthropicProvider(cfg.Anthropic, cfg.Timeout)
	case "mock":
		return NewMockProvider(), nil
	default:
		// Validate already rejects unknown providers.
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, log)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// faultProvider stands in for a misconfigured provider. Every call fails
// deterministically with the stored configuration error.
type faultProvider struct {
	model string
	err   error
}

func (f *faultProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, f.err
}

func (f *faultProvider) ModelID() string {
	return f.model
}
