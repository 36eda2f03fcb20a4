package models

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the full canonical-unit inventory of one property on one
// calendar day. Exactly one row exists per (property, snapshot_date);
// a later run for the same day overwrites the earlier one.
type Snapshot struct {
	ID           uuid.UUID       `json:"id"`
	PropertyID   uuid.UUID       `json:"property_id"`
	SnapshotDate time.Time       `json:"snapshot_date"`
	Units        []CanonicalUnit `json:"units"`
	UnitCount    int             `json:"unit_count"`

	// SuspectEmpty marks a snapshot persisted from a zero-unit fetch
	// that completed without an adapter error, so operators can tell
	// "no vacancies today" from "scraper broke".
	SuspectEmpty bool `json:"suspect_empty"`

	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// UnitByKey returns the unit with the given key, or nil.
func (s *Snapshot) UnitByKey(key string) *CanonicalUnit {
	for i := range s.Units {
		if s.Units[i].UnitKey == key {
			return &s.Units[i]
		}
	}
	return nil
}
