// Package adapters holds the extraction boundary: everything that turns
// a third-party leasing website into RawUnitRecords. Adapters own the
// source-specific concerns (HTTP, payload shape, anti-bot behavior);
// the pipeline only requires that each record expose something a unit
// number or id can be read from.
package adapters

import (
	"context"
	"time"

	"github.com/poofware/vacancy-watch/internal/models"
)

// RawUnitRecord is an adapter-produced, source-specific unit row. None
// of the fields are guaranteed; rows with no identifying field at all
// get dropped during canonicalization.
type RawUnitRecord struct {
	// UnitKey is an already-canonical key, used verbatim when present.
	UnitKey string `json:"unit_key,omitempty"`

	UnitNumber  string `json:"unit_number,omitempty"`
	SourceID    string `json:"source_id,omitempty"`
	PriceText   string `json:"price,omitempty"`
	AvailableOn string `json:"available_on,omitempty"`
	FloorPlanID string `json:"floor_plan_id,omitempty"`

	// Meta is free-form diagnostics (page URL, matched text, ...)
	// carried through to the snapshot for audit.
	Meta map[string]string `json:"meta,omitempty"`
}

// Adapter fetches the current raw unit inventory for one property.
type Adapter interface {
	// Name labels events and snapshots produced from this adapter's
	// records; it is part of the event replacement key.
	Name() string

	FetchUnits(ctx context.Context, prop *models.Property) ([]RawUnitRecord, error)
}

type FetchStatus int

const (
	FetchOK FetchStatus = iota

	// FetchSuspectEmpty: the adapter returned zero units without an
	// error. Could be genuine zero vacancy, could be a blocked or
	// broken extractor; the pipeline persists the snapshot but keeps
	// the ambiguity visible.
	FetchSuspectEmpty

	FetchFailed
)

func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "ok"
	case FetchSuspectEmpty:
		return "suspect_empty"
	default:
		return "failed"
	}
}

// FetchOutcome is the typed result of an adapter call made through the
// retry policy.
type FetchOutcome struct {
	Status   FetchStatus
	Units    []RawUnitRecord
	Err      error
	Attempts int
	Latency  time.Duration
}
