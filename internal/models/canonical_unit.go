package models

import "strings"

const (
	// UnitKeyPrefix keys units by their human-readable number.
	UnitKeyPrefix = "unit:"
	// SourceIDKeyPrefix keys units by a source-internal id when no
	// human unit number is recoverable.
	SourceIDKeyPrefix = "id:"
)

// CanonicalUnit is the normalized, deduplicated representation of one
// rental unit inside a snapshot. UnitKey is the stable identity used
// for matching across days; everything else is descriptive.
type CanonicalUnit struct {
	UnitKey     string   `json:"unit_key"`
	UnitNumber  *string  `json:"unit_number"`
	AvailableOn *string  `json:"available_on"`
	Price       *float64 `json:"price"`
	FloorPlanID *string  `json:"floor_plan_id"`

	// Meta is carried for audit only and never interpreted by the
	// snapshot or diff layers.
	Meta map[string]string `json:"meta,omitempty"`
}

// NumberFromKey recovers a display unit number from a "unit:<n>" key.
// Returns "" for id-keyed or malformed keys.
func NumberFromKey(key string) string {
	if n := strings.TrimPrefix(key, UnitKeyPrefix); n != key && strings.TrimSpace(n) != "" {
		return n
	}
	return ""
}

// DisplayNumber prefers the stored unit number and falls back to
// recovering one from the key.
func (u *CanonicalUnit) DisplayNumber() string {
	if u.UnitNumber != nil && *u.UnitNumber != "" {
		return *u.UnitNumber
	}
	return NumberFromKey(u.UnitKey)
}
