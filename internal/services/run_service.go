package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/poofware/vacancy-watch/internal/adapters"
	"github.com/poofware/vacancy-watch/internal/models"
	"github.com/poofware/vacancy-watch/internal/repositories"
	"github.com/poofware/vacancy-watch/internal/utils"
)

type RunState string

const (
	RunSucceeded    RunState = "succeeded"
	RunSuspectEmpty RunState = "suspect_empty"
	RunFailed       RunState = "failed"
)

// RunResult summarizes one property's pipeline run. Failures are
// reported here as values, never raised; the batch driver aggregates
// them without one bad property unwinding its siblings.
type RunResult struct {
	PropertyID    uuid.UUID `json:"property_id"`
	PropertySlug  string    `json:"property_slug"`
	Date          string    `json:"date"`
	Source        string    `json:"source"`
	State         RunState  `json:"state"`
	UnitCount     int       `json:"unit_count"`
	DroppedRows   int       `json:"dropped_rows"`
	Appeared      int       `json:"appeared"`
	Disappeared   int       `json:"disappeared"`
	EventsWritten int       `json:"events_written"`
	FetchAttempts int       `json:"fetch_attempts"`
	Error         string    `json:"error,omitempty"`

	err error
}

func (r RunResult) Err() error { return r.err }

// RunService executes the per-property pipeline:
// fetch -> canonicalize -> baseline -> diff -> upsert snapshot ->
// replace events. Steps run strictly in order; only the fetch blocks
// on external I/O.
type RunService struct {
	snapRepo  repositories.SnapshotRepository
	eventRepo repositories.UnitEventRepository
	retry     adapters.RetryPolicy
}

func NewRunService(
	snapRepo repositories.SnapshotRepository,
	eventRepo repositories.UnitEventRepository,
	retry adapters.RetryPolicy,
) *RunService {
	return &RunService{
		snapRepo:  snapRepo,
		eventRepo: eventRepo,
		retry:     retry,
	}
}

// RunProperty runs the full pipeline for one property and day. A zero
// date means the property-local calendar day; an empty source defaults
// to the adapter name.
func (s *RunService) RunProperty(
	ctx context.Context,
	prop *models.Property,
	adapter adapters.Adapter,
	date time.Time,
	source string,
) RunResult {
	if date.IsZero() {
		date = prop.LocalToday(time.Now())
	}
	if source == "" {
		source = adapter.Name()
	}
	result := RunResult{
		PropertyID:   prop.ID,
		PropertySlug: prop.Slug,
		Date:         date.Format("2006-01-02"),
		Source:       source,
	}

	outcome := s.retry.Fetch(ctx, adapter, prop)
	result.FetchAttempts = outcome.Attempts
	if outcome.Status == adapters.FetchFailed {
		return result.failed(outcome.Err)
	}

	units, dropped := BuildUnits(outcome.Units)
	result.UnitCount = len(units)
	result.DroppedRows = dropped
	if dropped > 0 {
		utils.Logger.Debugf("Dropped %d unkeyable rows for property %s", dropped, prop.Slug)
	}

	baseline, err := s.snapRepo.GetLatestBefore(ctx, prop.ID, date)
	if err != nil {
		return result.failed(err)
	}
	var prevUnits []models.CanonicalUnit
	if baseline != nil {
		prevUnits = baseline.Units
	}

	diff := Diff(prevUnits, units)
	result.Appeared = len(diff.Appeared)
	result.Disappeared = len(diff.Disappeared)

	snap := &models.Snapshot{
		ID:           uuid.New(),
		PropertyID:   prop.ID,
		SnapshotDate: date,
		Units:        units,
		UnitCount:    len(units),
		SuspectEmpty: outcome.Status == adapters.FetchSuspectEmpty,
		Source:       source,
	}
	if err := s.snapRepo.Upsert(ctx, snap); err != nil {
		return result.failed(err)
	}

	events := buildEvents(prop.ID, date, source, diff, units, prevUnits)
	written, err := s.eventRepo.ReplaceForRun(ctx, prop.ID, date, source, events)
	if err != nil {
		return result.failed(err)
	}
	result.EventsWritten = written

	if outcome.Status == adapters.FetchSuspectEmpty {
		utils.Logger.Warnf(
			"Property %s scraped zero units without an adapter error; snapshot flagged suspect-empty",
			prop.Slug,
		)
		result.State = RunSuspectEmpty
	} else {
		result.State = RunSucceeded
	}
	return result
}

func (r RunResult) failed(err error) RunResult {
	r.State = RunFailed
	r.err = err
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// buildEvents turns a diff into persistable rows. The display number
// comes from the current snapshot for appeared keys and the previous
// one for disappeared keys, falling back to recovering it from the key
// itself; downstream consumers index on unit_number, so it is never
// left empty when either path can supply it.
func buildEvents(
	propertyID uuid.UUID,
	date time.Time,
	source string,
	diff DiffResult,
	currUnits, prevUnits []models.CanonicalUnit,
) []models.UnitEvent {
	events := make([]models.UnitEvent, 0, len(diff.Appeared)+len(diff.Disappeared))

	currByKey := unitsByKey(currUnits)
	prevByKey := unitsByKey(prevUnits)

	for _, key := range diff.Appeared {
		events = append(events, models.UnitEvent{
			ID:         uuid.New(),
			PropertyID: propertyID,
			EventDate:  date,
			UnitKey:    key,
			UnitNumber: displayNumber(currByKey[key], key),
			EventType:  models.EventAppeared,
			Source:     source,
		})
	}
	for _, key := range diff.Disappeared {
		events = append(events, models.UnitEvent{
			ID:         uuid.New(),
			PropertyID: propertyID,
			EventDate:  date,
			UnitKey:    key,
			UnitNumber: displayNumber(prevByKey[key], key),
			EventType:  models.EventDisappeared,
			Source:     source,
		})
	}
	return events
}

func unitsByKey(units []models.CanonicalUnit) map[string]*models.CanonicalUnit {
	byKey := make(map[string]*models.CanonicalUnit, len(units))
	for i := range units {
		byKey[units[i].UnitKey] = &units[i]
	}
	return byKey
}

func displayNumber(u *models.CanonicalUnit, key string) string {
	if u != nil {
		if n := u.DisplayNumber(); n != "" {
			return n
		}
	}
	return models.NumberFromKey(key)
}
