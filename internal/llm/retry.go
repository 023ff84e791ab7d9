package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// withRetry wraps a provider with exponential backoff for transient
// failures. Rate limits honor the provider's suggested wait when it gave
// one. A bad payload gets exactly one fresh sample; a second failure
// means the prompt or schema is the problem, not luck.
func withRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{next: p, cfg: cfg}
}

type retrier struct {
	next Provider
	cfg  RetryConfig
}

func (r *retrier) ModelID() string { return r.next.ModelID() }

func (r *retrier) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	var lastErr error
	resampled := false

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		out, err := r.next.Complete(ctx, p)
		if err == nil {
			return out, nil
		}
		lastErr = err

		wait, retry := r.classify(err, attempt, &resampled)
		if !retry || attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

// classify decides whether err warrants another attempt and how long to
// wait first.
func (r *retrier) classify(err error, attempt int, resampled *bool) (time.Duration, bool) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	var perr *Error
	if errors.As(err, &perr) {
		switch perr.Kind {
		case KindBadPayload:
			if *resampled {
				return 0, false
			}
			*resampled = true
			return r.backoff(attempt), true
		case KindRateLimited:
			if perr.RetryAfter > 0 {
				return perr.RetryAfter, true
			}
		}
	}

	// Unavailable, rate-limited without a hint, and unclassified
	// transport errors are all assumed transient.
	return r.backoff(attempt), true
}

func (r *retrier) backoff(attempt int) time.Duration {
	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	wait *= 1 + 0.2*(2*rand.Float64()-1) // +/-20% jitter
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
