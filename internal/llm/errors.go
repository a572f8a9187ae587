package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrConfiguration indicates the selected provider has a missing or
// placeholder credential. It is never retried and makes no outbound call.
type ErrConfiguration struct {
	Reason string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("provider configuration error: %s", e.Reason)
}

// ErrRateLimit indicates a single attempt was rejected with HTTP 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrRateLimitExhausted indicates every retry attempt was rejected with
// HTTP 429 and the retry ceiling was reached.
type ErrRateLimitExhausted struct {
	Attempts int
	Err      error // last per-attempt error
}

func (e *ErrRateLimitExhausted) Error() string {
	return fmt.Sprintf("rate limit retries exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ErrRateLimitExhausted) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or returned a
// non-2xx, non-429 status. Not retried.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMalformedEnvelope indicates a 2xx provider response whose body lacks
// the expected nested path (no choices, no candidates, no text part).
// Reported before any JSON parsing is attempted.
type ErrMalformedEnvelope struct {
	Err error
}

func (e *ErrMalformedEnvelope) Error() string {
	return fmt.Sprintf("malformed provider envelope: %v", e.Err)
}

func (e *ErrMalformedEnvelope) Unwrap() error { return e.Err }

// ErrInvalidJSON indicates the text extracted from the provider envelope
// is not valid JSON.
type ErrInvalidJSON struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidJSON) Error() string {
	return fmt.Sprintf("invalid JSON in LLM response: %v", e.Err)
}

func (e *ErrInvalidJSON) Unwrap() error { return e.Err }

// ErrSchemaViolation indicates the extracted JSON parsed but does not
// conform to the requested schema.
type ErrSchemaViolation struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrSchemaViolation) Error() string {
	return fmt.Sprintf("LLM response violates schema: %v", e.Err)
}

func (e *ErrSchemaViolation) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}
