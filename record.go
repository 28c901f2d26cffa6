package auragold

import (
	"cmp"
	"slices"
)

// TradeRecord is a single gold buy/sell transaction.
//
// Prices are unit prices per gram. The profit fields are computed once when
// the record is entered (see NewTradeRecord) and are never recomputed after.
type TradeRecord struct {
	ID              string  `json:"id"`
	Grams           float64 `json:"grams"`
	CostPrice       float64 `json:"costPrice"`
	SellingPrice    float64 `json:"sellingPrice"`
	HandlingFeeRate float64 `json:"handlingFeeRate"`
	ActualProfit    float64 `json:"actualProfit"`
	DesiredPrice    float64 `json:"desiredPrice"`
	ProjectedProfit float64 `json:"projectedProfit"`
	ProfitMargin    float64 `json:"profitMargin"`
	// Timestamp is in milliseconds since epoch. It is the only ordering key.
	Timestamp int64 `json:"timestamp"`
}

// sortRecords sorts records newest first.
// The sort is stable: records with the same timestamp keep their relative order.
func sortRecords(records []TradeRecord) {
	slices.SortStableFunc(records, func(a, b TradeRecord) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})
}

// dedupRecords returns records without duplicated IDs, keeping the first occurrence.
func dedupRecords(records []TradeRecord) []TradeRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]TradeRecord, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
