package services

import (
	"sort"

	"github.com/poofware/vacancy-watch/internal/models"
)

// DiffResult holds the key-set difference between two snapshots.
// Appeared and Disappeared are disjoint and each sorted by key, so a
// given (prev, curr) pair always produces byte-identical output.
type DiffResult struct {
	Appeared    []string
	Disappeared []string
}

func (d DiffResult) Empty() bool {
	return len(d.Appeared) == 0 && len(d.Disappeared) == 0
}

// Diff computes appeared = keys(curr) \ keys(prev) and
// disappeared = keys(prev) \ keys(curr). Pure and total: no I/O, never
// fails, nil inputs behave as empty sets.
func Diff(prev, curr []models.CanonicalUnit) DiffResult {
	prevKeys := keySet(prev)
	currKeys := keySet(curr)

	var result DiffResult
	for key := range currKeys {
		if !prevKeys[key] {
			result.Appeared = append(result.Appeared, key)
		}
	}
	for key := range prevKeys {
		if !currKeys[key] {
			result.Disappeared = append(result.Disappeared, key)
		}
	}
	sort.Strings(result.Appeared)
	sort.Strings(result.Disappeared)
	return result
}

func keySet(units []models.CanonicalUnit) map[string]bool {
	set := make(map[string]bool, len(units))
	for i := range units {
		set[units[i].UnitKey] = true
	}
	return set
}
