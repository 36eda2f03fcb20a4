package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/vacancy-watch/internal/adapters"
)

func TestNormalizeKeyWhitespaceStability(t *testing.T) {
	k1, n1, ok1 := normalizeKey(adapters.RawUnitRecord{UnitNumber: "217"})
	k2, n2, ok2 := normalizeKey(adapters.RawUnitRecord{UnitNumber: " 217 "})

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, "unit:217", k1)
	assert.Equal(t, k1, k2)
	assert.Equal(t, "217", n1)
	assert.Equal(t, n1, n2)
}

func TestNormalizeKeyExplicitKeyWinsVerbatim(t *testing.T) {
	key, number, ok := normalizeKey(adapters.RawUnitRecord{
		UnitKey:    "unit:B-104",
		UnitNumber: "",
		SourceID:   "99887",
	})
	require.True(t, ok)
	assert.Equal(t, "unit:B-104", key)
	// number recovered from the key when the raw field is blank
	assert.Equal(t, "B-104", number)
}

func TestNormalizeKeySourceIDFallback(t *testing.T) {
	key, number, ok := normalizeKey(adapters.RawUnitRecord{SourceID: "fp-2x2-a"})
	require.True(t, ok)
	assert.Equal(t, "id:fp-2x2-a", key)
	assert.Empty(t, number)
}

func TestNormalizeKeyUnkeyable(t *testing.T) {
	_, _, ok := normalizeKey(adapters.RawUnitRecord{PriceText: "$1,995", AvailableOn: "Available Now"})
	assert.False(t, ok)

	// whitespace-only unit number is still unkeyable
	_, _, ok = normalizeKey(adapters.RawUnitRecord{UnitNumber: "   "})
	assert.False(t, ok)
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"$1,525/mo", f(1525)},
		{"1525", f(1525)},
		{"Call for pricing", nil},
		{"", nil},
		{"$1,299.50", f(1299.50)},
		{"1.2.3", nil},
	}
	for _, tc := range cases {
		got := parsePrice(tc.in)
		if tc.want == nil {
			assert.Nil(t, got, "input %q", tc.in)
		} else {
			require.NotNil(t, got, "input %q", tc.in)
			assert.Equal(t, *tc.want, *got, "input %q", tc.in)
		}
	}
}

func TestBuildUnitsDropsUnkeyableRows(t *testing.T) {
	raws := []adapters.RawUnitRecord{
		{UnitNumber: "101", PriceText: "$1,525"},
		{PriceText: "$1,995", AvailableOn: "Available Now"}, // floor-plan card, no identity
		{UnitNumber: "102"},
	}
	units, dropped := BuildUnits(raws)
	require.Len(t, units, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "unit:101", units[0].UnitKey)
	assert.Equal(t, "unit:102", units[1].UnitKey)
}

func TestBuildUnitsDedupeFirstSeenWins(t *testing.T) {
	raws := []adapters.RawUnitRecord{
		{UnitNumber: "101", PriceText: "$1,500"},
		{UnitNumber: " 101 ", PriceText: "$9,999"},
	}
	units, dropped := BuildUnits(raws)
	require.Len(t, units, 1)
	assert.Equal(t, 0, dropped)
	require.NotNil(t, units[0].Price)
	assert.Equal(t, 1500.0, *units[0].Price)
}

func TestBuildUnitsCarriesFieldsThrough(t *testing.T) {
	raws := []adapters.RawUnitRecord{{
		UnitNumber:  "305",
		PriceText:   "$2,100/mo",
		AvailableOn: "Available Now",
		FloorPlanID: "b2",
		Meta:        map[string]string{"page_url": "https://example.com/floorplans"},
	}}
	units, _ := BuildUnits(raws)
	require.Len(t, units, 1)

	u := units[0]
	assert.Equal(t, "unit:305", u.UnitKey)
	require.NotNil(t, u.UnitNumber)
	assert.Equal(t, "305", *u.UnitNumber)
	require.NotNil(t, u.Price)
	assert.Equal(t, 2100.0, *u.Price)
	require.NotNil(t, u.AvailableOn)
	assert.Equal(t, "Available Now", *u.AvailableOn)
	require.NotNil(t, u.FloorPlanID)
	assert.Equal(t, "b2", *u.FloorPlanID)
	assert.Equal(t, "https://example.com/floorplans", u.Meta["page_url"])
}

func f(v float64) *float64 { return &v }
