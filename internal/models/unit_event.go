package models

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventAppeared    EventType = "appeared"
	EventDisappeared EventType = "disappeared"
)

// UnitEvent records one unit appearing on or disappearing from a
// property's inventory between two snapshots. The stored rows for a
// fixed (property, event_date, source) always equal exactly the latest
// computed diff; reruns replace, never accumulate.
type UnitEvent struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	EventDate  time.Time `json:"event_date"`
	UnitKey    string    `json:"unit_key"`
	UnitNumber string    `json:"unit_number"`
	EventType  EventType `json:"event_type"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}
