package connector

import (
	"context"
	"time"
)

// retryConnect calls connectFn until it succeeds, the retries run out or ctx
// is done. The delay between attempts grows by cfg.Backoff up to cfg.MaxDelay.
func retryConnect(ctx context.Context, cfg *RetryConfig, connectFn func(context.Context) error) error {
	var err error
	delay := cfg.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}
	backoff := cfg.Backoff
	if backoff <= 1 {
		backoff = 2
	}

	for i := 0; i < cfg.MaxRetries; i++ {
		if err = connectFn(ctx); err == nil {
			return nil
		}
		if i == cfg.MaxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * backoff)
			if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}
	}
	return err
}
