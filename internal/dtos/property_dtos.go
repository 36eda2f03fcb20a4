package dtos

import (
	"time"

	"github.com/google/uuid"
)

/*
CreatePropertyRequest is the payload for POST /api/v1/properties.
*/
type CreatePropertyRequest struct {
	PropertyName   string `json:"property_name" validate:"required,min=2"`
	Slug           string `json:"slug" validate:"required,min=2,lowercase,excludesall=0x20"`
	ListingURL     string `json:"listing_url" validate:"omitempty,url"`
	SourcePlatform string `json:"source_platform"`
	TimeZone       string `json:"timezone"`
}

type PropertyDTO struct {
	ID             uuid.UUID `json:"id"`
	PropertyName   string    `json:"property_name"`
	Slug           string    `json:"slug"`
	ListingURL     string    `json:"listing_url"`
	SourcePlatform string    `json:"source_platform"`
	TimeZone       string    `json:"timezone"`
	CreatedAt      time.Time `json:"created_at"`
}
