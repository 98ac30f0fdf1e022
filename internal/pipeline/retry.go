package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/alanpramil7/ytetl/internal/yt"
)

// RetryPolicy controls how a failed run is repeated.
type RetryPolicy struct {
	// Retries is the number of extra attempts after the first failure.
	Retries int
	// Delay is the fixed wait between attempts.
	Delay time.Duration
}

// runFunc is one attempt of a run.
type runFunc func(ctx context.Context) (*RunSummary, error)

// RunWithRetry runs r, repeating failed runs per policy. Failures that cannot
// succeed on repeat (quota, credentials, malformed data) stop immediately.
func RunWithRetry(ctx context.Context, r *Runner, policy RetryPolicy) (*RunSummary, error) {
	return retry(ctx, r.Run, policy, r.logger)
}

func retry(ctx context.Context, run runFunc, policy RetryPolicy, logger *slog.Logger) (*RunSummary, error) {
	if policy.Retries < 0 {
		policy.Retries = 0
	}
	attempt := 0
	operation := func() (*RunSummary, error) {
		attempt++
		summary, err := run(ctx)
		if err != nil && !yt.IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return summary, err
	}

	notify := func(err error, next time.Duration) {
		logger.Warn("run failed, retrying",
			"attempt", attempt,
			"max_attempts", policy.Retries+1,
			"retry_in", next.String(),
			"error", err,
		)
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(policy.Delay)),
		backoff.WithMaxTries(uint(policy.Retries+1)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)
}
