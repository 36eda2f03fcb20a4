package services

import (
	"strconv"
	"strings"

	"github.com/poofware/vacancy-watch/internal/adapters"
	"github.com/poofware/vacancy-watch/internal/models"
)

// normalizeKey derives the stable canonical identity for one raw row.
// Precedence: explicit key verbatim, then "unit:<trimmed number>", then
// "id:<source id>". Rows with none of the three are unkeyable (ok
// false) and must never reach a snapshot or diff.
//
// Only whitespace is normalized; keys are case-sensitive on purpose,
// since upstream sources have not been observed to vary casing for the
// same physical unit.
func normalizeKey(raw adapters.RawUnitRecord) (key, number string, ok bool) {
	if raw.UnitKey != "" {
		key = raw.UnitKey
		number = strings.TrimSpace(raw.UnitNumber)
		if number == "" {
			number = models.NumberFromKey(key)
		}
		return key, number, true
	}
	if trimmed := strings.TrimSpace(raw.UnitNumber); trimmed != "" {
		return models.UnitKeyPrefix + trimmed, trimmed, true
	}
	if raw.SourceID != "" {
		return models.SourceIDKeyPrefix + raw.SourceID, "", true
	}
	return "", "", false
}

// parsePrice strips everything but digits and '.' before parsing, so
// "$1,525/mo" and "1525" both work. Unparsable or empty input yields
// nil, never an error; scraped price text is too messy to treat a bad
// value as fatal.
func parsePrice(text string) *float64 {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// BuildUnits maps raw adapter rows into canonical units: normalize the
// key, parse the price, pass availability text through unchanged, and
// dedupe first-seen-wins by key. Unkeyable rows (floor-plan cards,
// marketing filler) are dropped silently and only counted.
func BuildUnits(raws []adapters.RawUnitRecord) ([]models.CanonicalUnit, int) {
	units := make([]models.CanonicalUnit, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	dropped := 0

	for _, raw := range raws {
		key, number, ok := normalizeKey(raw)
		if !ok {
			dropped++
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		u := models.CanonicalUnit{
			UnitKey: key,
			Price:   parsePrice(raw.PriceText),
			Meta:    raw.Meta,
		}
		if number != "" {
			u.UnitNumber = &number
		}
		if raw.AvailableOn != "" {
			availableOn := raw.AvailableOn
			u.AvailableOn = &availableOn
		}
		if raw.FloorPlanID != "" {
			floorPlanID := raw.FloorPlanID
			u.FloorPlanID = &floorPlanID
		}
		units = append(units, u)
	}
	return units, dropped
}
