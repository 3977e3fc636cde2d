package timeutils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrAllAttemptsFailed = errors.New("all attempts failed")
)

// Retry runs function until it succeeds, sleeping for the next delay after
// each failure. The number of attempts equals len(attemptDelays) + 1.
func Retry(
	ctx context.Context,
	attemptDelays []time.Duration,
	function func(context.Context) error,
) error {
	lastErr := error(nil)
	for attempt := 0; attempt <= len(attemptDelays); attempt++ {
		if ctx.Err() != nil {
			return fmt.Errorf("retry canceled: %w", ctx.Err())
		}
		err := function(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if attempt < len(attemptDelays) {
			if err := SleepCtx(ctx, attemptDelays[attempt]); err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("%w: %w", ErrAllAttemptsFailed, lastErr)
}

func SleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("sleep canceled: %w", ctx.Err())
	case <-time.After(d):
		return nil
	}
}
