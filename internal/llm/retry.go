package llm

import (
	"context"
	"errors"
	"math"
	"time"
)

// RetryConfig is an explicit bounded-retry policy: attempt ceiling plus an
// exponential backoff curve. Only rate-limit errors are retried — any other
// failure reflects a bad response or an outage, not a transient rejection.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// RetryProvider is a decorator that retries rate-limited attempts with
// exponential backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}

		// The backoff sleep follows every rate-limited attempt, the last
		// one included, mirroring the provider's own cool-down window.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt, err)):
		}
	}

	return nil, &ErrRateLimitExhausted{
		Attempts: r.config.MaxAttempts,
		Err:      lastErr,
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable reports whether an error is a transient rate-limit rejection.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rl *ErrRateLimit
	return errors.As(err, &rl)
}

// backoff computes the wait duration for the given attempt:
// InitialWait * Multiplier^attempt, capped at MaxWait.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	// Respect the server's cool-down hint when it sends one.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}
	return time.Duration(wait)
}
