package history

import "sort"

// Merge combines record sets into one chronological feed, oldest first.
// Records sharing a timestamp keep chain order: block number, then log index.
// The sort is stable, so equal records keep their input order.
func Merge(sets ...[]Record) []Record {
	var merged []Record
	for _, set := range sets {
		merged = append(merged, set...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.BlockNumber != b.BlockNumber {
			return a.BlockNumber < b.BlockNumber
		}
		return a.LogIndex < b.LogIndex
	})
	return merged
}
