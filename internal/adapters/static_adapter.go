package adapters

import (
	"context"

	"github.com/poofware/vacancy-watch/internal/models"
)

// StaticAdapter serves a fixed set of records per property slug. Used
// for demos and in tests that need a deterministic extraction source.
type StaticAdapter struct {
	name    string
	records map[string][]RawUnitRecord
	err     error
}

func NewStaticAdapter(name string, records map[string][]RawUnitRecord) *StaticAdapter {
	if name == "" {
		name = "static"
	}
	return &StaticAdapter{name: name, records: records}
}

// NewFailingAdapter always returns err, for exercising retry and
// failure-isolation paths.
func NewFailingAdapter(name string, err error) *StaticAdapter {
	return &StaticAdapter{name: name, err: err}
}

func (a *StaticAdapter) Name() string { return a.name }

func (a *StaticAdapter) FetchUnits(_ context.Context, prop *models.Property) ([]RawUnitRecord, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.records[prop.Slug], nil
}

// SetRecords swaps the inventory for one slug; handy for simulating a
// unit appearing or disappearing between runs.
func (a *StaticAdapter) SetRecords(slug string, records []RawUnitRecord) {
	if a.records == nil {
		a.records = map[string][]RawUnitRecord{}
	}
	a.records[slug] = records
}
