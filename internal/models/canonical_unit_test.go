package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberFromKey(t *testing.T) {
	assert.Equal(t, "217", NumberFromKey("unit:217"))
	assert.Equal(t, "B-104", NumberFromKey("unit:B-104"))
	assert.Equal(t, "", NumberFromKey("id:99887"))
	assert.Equal(t, "", NumberFromKey("unit:"))
	assert.Equal(t, "", NumberFromKey(""))
}

func TestDisplayNumberPrefersStoredNumber(t *testing.T) {
	n := "217A"
	u := CanonicalUnit{UnitKey: "unit:217", UnitNumber: &n}
	assert.Equal(t, "217A", u.DisplayNumber())
}

func TestDisplayNumberFallsBackToKey(t *testing.T) {
	u := CanonicalUnit{UnitKey: "unit:103"}
	assert.Equal(t, "103", u.DisplayNumber())

	idKeyed := CanonicalUnit{UnitKey: "id:99887"}
	assert.Equal(t, "", idKeyed.DisplayNumber())
}

// Snapshots round-trip units through JSONB; nil optional fields must
// survive as nulls, not zero values.
func TestCanonicalUnitJSONRoundTrip(t *testing.T) {
	n := "101"
	price := 1525.0
	u := CanonicalUnit{
		UnitKey:    "unit:101",
		UnitNumber: &n,
		Price:      &price,
		Meta:       map[string]string{"adapter": "httpjson"},
	}

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var back CanonicalUnit
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, u, back)
	assert.Nil(t, back.AvailableOn)
	assert.Nil(t, back.FloorPlanID)
}

func TestSnapshotUnitByKey(t *testing.T) {
	s := Snapshot{Units: []CanonicalUnit{{UnitKey: "unit:1"}, {UnitKey: "unit:2"}}}
	require.NotNil(t, s.UnitByKey("unit:2"))
	assert.Nil(t, s.UnitByKey("unit:3"))
}
