// Package classify decides whether a record is the first notification for an
// appointment or a repeat. Frequency tables are built once per batch and
// never refreshed mid-batch, so colliding keys within a batch classify
// consistently off the same snapshot.
package classify

import (
	"strings"

	"c3track/internal"
)

// FrequencyTable reports how often a natural key occurred in the historical
// window. The two vendors count differently, hence the interface.
type FrequencyTable interface {
	Count(key string) int
}

// KeyCounts is a plain occurrence map. Loblaw uses it for Reference # values
// found in update bodies of items created within the lookback window.
type KeyCounts map[string]int

func (t KeyCounts) Count(key string) int { return t[key] }

// NameSubstringCounts counts items whose name contains the key. Sobeys uses
// it across every item name on the board, with no time bound.
type NameSubstringCounts []string

func (t NameSubstringCounts) Count(key string) int {
	if strings.TrimSpace(key) == "" {
		return 0
	}
	total := 0
	for _, name := range t {
		if strings.Contains(name, key) {
			total++
		}
	}
	return total
}

// Classify assigns New when the key occurred at most once, Update otherwise.
// An absent key always counts zero and classifies New.
func Classify(key string, table FrequencyTable) internal.RowType {
	key = strings.TrimSpace(key)
	if key == "" {
		return internal.RowTypeNew
	}
	if table.Count(key) <= 1 {
		return internal.RowTypeNew
	}
	return internal.RowTypeUpdate
}
