package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/poofware/vacancy-watch/internal/models"
	"github.com/poofware/vacancy-watch/internal/utils"
)

// RetryPolicy is the one shared retry-with-backoff policy applied at
// the adapter-call boundary. Scraped sites fail transiently all the
// time, so every fetch gets a small fixed attempt budget with linear
// backoff; the whole call is additionally bounded by RunDeadline so a
// stuck property cannot starve the rest of a batch.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	AttemptTimeout time.Duration
	RunDeadline    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 2 * time.Second,
		AttemptTimeout: 30 * time.Second,
		RunDeadline:    3 * time.Minute,
	}
}

// Fetch runs adapter.FetchUnits under the policy and classifies the
// result. It never panics and never returns a nil-status outcome.
func (p RetryPolicy) Fetch(ctx context.Context, adapter Adapter, prop *models.Property) FetchOutcome {
	start := time.Now()

	if p.RunDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.RunDeadline)
		defer cancel()
	}

	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	attempts := 0
	backoff := p.InitialBackoff
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attempts = attempt
		attemptCtx := ctx
		var cancel context.CancelFunc
		if p.AttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
		}
		units, err := adapter.FetchUnits(attemptCtx, prop)
		if cancel != nil {
			cancel()
		}

		if err == nil {
			status := FetchOK
			if len(units) == 0 {
				status = FetchSuspectEmpty
			}
			return FetchOutcome{
				Status:   status,
				Units:    units,
				Attempts: attempt,
				Latency:  time.Since(start),
			}
		}
		lastErr = err

		if ctx.Err() != nil {
			// Deadline for the whole property run expired; no point
			// sleeping into a dead context.
			break
		}
		if attempt < maxAttempts {
			utils.Logger.WithError(err).Warnf(
				"Adapter %s fetch failed for property %s on attempt %d/%d, retrying in %v",
				adapter.Name(), prop.Slug, attempt, maxAttempts, backoff,
			)
			select {
			case <-ctx.Done():
			case <-time.After(backoff):
			}
			backoff += p.InitialBackoff
		}
	}

	return FetchOutcome{
		Status:   FetchFailed,
		Err:      fmt.Errorf("%w after %d attempt(s): %v", utils.ErrAdapterExhausted, attempts, lastErr),
		Attempts: attempts,
		Latency:  time.Since(start),
	}
}
