package llm

import (
	"context"
	"errors"
	"time"

	"github.com/learnflow/learnflow/internal/logger"
)

type purposeKey struct{}

// WithPurpose labels the context with what the call is for (for example
// "learning-package") so the log line can carry it.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func purposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}

// LoggingProvider is a decorator that records every LLM call in the
// structured log. Failures are logged with enough detail to diagnose
// (including the offending payload on parse failures); callers further up
// never see that detail.
type LoggingProvider struct {
	inner Provider
	log   *logger.Logger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, log: log.With("component", "llm")}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := purposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	if err != nil {
		l.log.Error("llm request failed",
			"purpose", purpose,
			"model", l.inner.ModelID(),
			"latency_ms", latency.Milliseconds(),
			"error", err.Error(),
			"payload", failedPayload(err),
		)
		return nil, err
	}

	l.log.Info("llm request complete",
		"purpose", purpose,
		"model", resp.Model,
		"latency_ms", latency.Milliseconds(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"stop_reason", resp.StopReason,
	)

	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

const maxLoggedPayload = 2048

// failedPayload pulls the raw response text out of parse and validation
// errors so the log entry shows what the provider actually sent.
func failedPayload(err error) string {
	var content []byte

	var invalid *ErrInvalidJSON
	var violation *ErrSchemaViolation
	var truncated *ErrMaxTokensExceeded
	switch {
	case errors.As(err, &invalid):
		content = invalid.Content
	case errors.As(err, &violation):
		content = violation.Content
	case errors.As(err, &truncated):
		content = truncated.Content
	default:
		return ""
	}

	if len(content) > maxLoggedPayload {
		content = content[:maxLoggedPayload]
	}
	return string(content)
}
