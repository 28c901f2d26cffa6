package auragold

import (
	"encoding/json"
	"strings"
	"testing"
)

// rec is a helper for tests to create a record with only an id and a timestamp set.
func rec(id string, ts int64) TradeRecord {
	return TradeRecord{ID: id, Grams: 1, CostPrice: 500, SellingPrice: 510, Timestamp: ts}
}

// ledger is a helper for tests to create a ledger.
func ledger(id, name string, createdAt int64, records ...TradeRecord) Ledger {
	if records == nil {
		records = []TradeRecord{}
	}
	return Ledger{ID: id, Name: name, CreatedAt: createdAt, Records: records}
}

// decode is a helper for tests to decode a JSON literal the way imports do.
func decode(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("invalid test JSON %q: %v", s, err)
	}
	return v
}

// recordIDs returns the ids of records in order.
func recordIDs(l Ledger) []string {
	ids := make([]string, 0, len(l.Records))
	for _, r := range l.Records {
		ids = append(ids, r.ID)
	}
	return ids
}

// recordJSON is a valid record with the given id and timestamp.
const recordJSON = `{"id":%q,"grams":10,"costPrice":500.5,"sellingPrice":520,"handlingFeeRate":0.004,"actualProfit":174.2,"desiredPrice":530,"projectedProfit":273.8,"profitMargin":0.0348,"timestamp":%d}`
