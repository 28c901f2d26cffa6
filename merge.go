package auragold

import (
	"cmp"
	"slices"
)

// MergeLedgers reconciles incoming ledgers with existing ones, by ledger ID.
//
// A ledger whose ID is new is added as is. A ledger whose ID already exists is
// merged into it: incoming records with an unknown ID are appended, records
// are sorted newest first, the incoming name wins unless it is empty, and the
// oldest createdAt is kept.
//
// Records are never removed, so merging the same incoming ledgers twice gives
// the same result as merging them once. The result is sorted by createdAt,
// oldest first. Neither input is modified.
func MergeLedgers(existing, incoming []Ledger) []Ledger {
	// index of each ledger ID in 'merged', which keeps the insertion order.
	index := make(map[string]int, len(existing)+len(incoming))
	merged := make([]Ledger, 0, len(existing)+len(incoming))

	add := func(l Ledger) {
		if i, ok := index[l.ID]; ok {
			merged[i] = mergeLedger(merged[i], l)
			return
		}
		index[l.ID] = len(merged)
		merged = append(merged, l.clone())
	}
	for _, l := range existing {
		add(l)
	}
	for _, l := range incoming {
		add(l)
	}

	slices.SortStableFunc(merged, func(a, b Ledger) int {
		return cmp.Compare(a.CreatedAt, b.CreatedAt)
	})
	return merged
}

// mergeLedger merges the records of 'in' into 'into' which it owns.
func mergeLedger(into, in Ledger) Ledger {
	known := make(map[string]struct{}, len(into.Records)+len(in.Records))
	for _, r := range into.Records {
		known[r.ID] = struct{}{}
	}
	for _, r := range in.Records {
		if _, ok := known[r.ID]; ok {
			continue
		}
		known[r.ID] = struct{}{}
		into.Records = append(into.Records, r)
	}
	sortRecords(into.Records)

	if in.Name != "" {
		into.Name = in.Name
	}
	into.CreatedAt = min(into.CreatedAt, in.CreatedAt)
	return into
}
