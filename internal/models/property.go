package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is one managed apartment community whose public listing page
// gets scraped for unit availability.
type Property struct {
	ID             uuid.UUID `json:"id"`
	PropertyName   string    `json:"property_name"`
	Slug           string    `json:"slug"`
	ListingURL     string    `json:"listing_url"`
	SourcePlatform string    `json:"source_platform"`
	TimeZone       string    `json:"timezone"`
	CreatedAt      time.Time `json:"created_at"`
}

// LocalToday returns the property-local calendar day, falling back to
// UTC when the stored zone name is invalid.
func (p *Property) LocalToday(now time.Time) time.Time {
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil || p.TimeZone == "" {
		loc = time.UTC
	}
	localNow := now.In(loc)
	return time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, time.UTC)
}
