package database

import (
	"context"
	"fmt"
	"time"
)

type RetryConfig struct {
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	MaxAttempts int
}

type LogFunc func(format string, args ...any)

// Retry calls fn until it succeeds, attempts run out or ctx is done.
// The delay doubles after every failure, capped at MaxDelay.
func Retry(ctx context.Context, cfg RetryConfig, logf LogFunc, fn func(context.Context) error) error {
	cfg = normalizeRetry(cfg)
	backoff := cfg.BaseDelay
	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if logf != nil {
			logf("attempt %d/%d failed: %v", attempt, cfg.MaxAttempts, err)
		}
		if attempt == cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > cfg.MaxDelay {
			backoff = cfg.MaxDelay
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", cfg.MaxAttempts, err)
}

func normalizeRetry(cfg RetryConfig) RetryConfig {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return cfg
}
