package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/vacancy-watch/internal/models"
	"github.com/poofware/vacancy-watch/internal/utils"
)

// flakyAdapter fails a fixed number of times before succeeding.
type flakyAdapter struct {
	failures int
	calls    int
	units    []RawUnitRecord
}

func (a *flakyAdapter) Name() string { return "flaky" }

func (a *flakyAdapter) FetchUnits(context.Context, *models.Property) ([]RawUnitRecord, error) {
	a.calls++
	if a.calls <= a.failures {
		return nil, errors.New("transient fetch error")
	}
	return a.units, nil
}

func retryProp() *models.Property {
	return &models.Property{ID: uuid.New(), Slug: "arbor-flats", TimeZone: "UTC"}
}

func TestFetchSucceedsAfterTransientFailures(t *testing.T) {
	adapter := &flakyAdapter{failures: 2, units: []RawUnitRecord{{UnitNumber: "101"}}}
	policy := RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond}

	outcome := policy.Fetch(context.Background(), adapter, retryProp())

	require.Equal(t, FetchOK, outcome.Status)
	assert.Equal(t, 3, outcome.Attempts)
	assert.Len(t, outcome.Units, 1)
	assert.NoError(t, outcome.Err)
}

func TestFetchExhaustsBudget(t *testing.T) {
	adapter := &flakyAdapter{failures: 10}
	policy := RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond}

	outcome := policy.Fetch(context.Background(), adapter, retryProp())

	require.Equal(t, FetchFailed, outcome.Status)
	assert.Equal(t, 3, outcome.Attempts)
	assert.Equal(t, 3, adapter.calls)
	assert.ErrorIs(t, outcome.Err, utils.ErrAdapterExhausted)
	assert.Contains(t, outcome.Err.Error(), "transient fetch error")
}

func TestFetchClassifiesZeroUnitsAsSuspectEmpty(t *testing.T) {
	adapter := &flakyAdapter{failures: 0, units: nil}
	policy := RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond}

	outcome := policy.Fetch(context.Background(), adapter, retryProp())

	require.Equal(t, FetchSuspectEmpty, outcome.Status)
	assert.Equal(t, 1, outcome.Attempts, "suspect-empty is not an error and must not be retried")
	assert.NoError(t, outcome.Err)
}

func TestFetchHonorsRunDeadline(t *testing.T) {
	adapter := &flakyAdapter{failures: 100}
	policy := RetryPolicy{
		MaxAttempts:    100,
		InitialBackoff: 50 * time.Millisecond,
		RunDeadline:    10 * time.Millisecond,
	}

	start := time.Now()
	outcome := policy.Fetch(context.Background(), adapter, retryProp())

	require.Equal(t, FetchFailed, outcome.Status)
	assert.Less(t, time.Since(start), time.Second, "deadline must cut the retry loop short")
	assert.Less(t, outcome.Attempts, 100)
}

func TestFetchZeroValuePolicyStillRunsOnce(t *testing.T) {
	adapter := &flakyAdapter{failures: 0, units: []RawUnitRecord{{UnitNumber: "7"}}}

	outcome := RetryPolicy{}.Fetch(context.Background(), adapter, retryProp())

	require.Equal(t, FetchOK, outcome.Status)
	assert.Equal(t, 1, outcome.Attempts)
}

func TestFetchStatusString(t *testing.T) {
	assert.Equal(t, "ok", FetchOK.String())
	assert.Equal(t, "suspect_empty", FetchSuspectEmpty.String())
	assert.Equal(t, "failed", FetchFailed.String())
}
