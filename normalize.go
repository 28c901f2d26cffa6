package auragold

import (
	"fmt"
)

// this file turns untrusted JSON values into domain values.
// It guards against malformed JSON, not against semantically odd trades:
// negative grams or prices are kept as they are.
// Any defect rejects the whole value, there is no partial record or ledger.

// numberFields lists the numeric fields of a record in their JSON order.
var numberFields = []struct {
	name string
	set  func(*TradeRecord, float64)
}{
	{"grams", func(r *TradeRecord, v float64) { r.Grams = v }},
	{"costPrice", func(r *TradeRecord, v float64) { r.CostPrice = v }},
	{"sellingPrice", func(r *TradeRecord, v float64) { r.SellingPrice = v }},
	{"handlingFeeRate", func(r *TradeRecord, v float64) { r.HandlingFeeRate = v }},
	{"actualProfit", func(r *TradeRecord, v float64) { r.ActualProfit = v }},
	{"desiredPrice", func(r *TradeRecord, v float64) { r.DesiredPrice = v }},
	{"projectedProfit", func(r *TradeRecord, v float64) { r.ProjectedProfit = v }},
	{"profitMargin", func(r *TradeRecord, v float64) { r.ProfitMargin = v }},
}

// NormalizeRecord validates v and rebuilds a TradeRecord from it.
//
// All ten fields are required: 'id' as a string, 'timestamp' and the other
// fields as numbers (numeric strings are accepted). Unknown fields are dropped.
func NormalizeRecord(v any) (TradeRecord, error) {
	obj, ok := AsObject(v)
	if !ok {
		return TradeRecord{}, &NormalizeError{Reason: "record is not an object"}
	}

	var r TradeRecord
	if r.ID, ok = AsString(obj["id"]); !ok {
		return TradeRecord{}, invalidField("id", "string", obj["id"])
	}
	for _, f := range numberFields {
		n, ok := AsNumber(obj[f.name])
		if !ok {
			return TradeRecord{}, invalidField(f.name, "number", obj[f.name])
		}
		f.set(&r, n)
	}
	if r.Timestamp, ok = asInt(obj["timestamp"]); !ok {
		return TradeRecord{}, invalidField("timestamp", "number", obj["timestamp"])
	}
	return r, nil
}

// NormalizeLedger validates v and rebuilds a Ledger from it.
//
// 'id' and 'name' must be strings, 'createdAt' a number and 'records' an
// array of valid records. Records are deduplicated by ID keeping the first
// occurrence, then sorted newest first.
func NormalizeLedger(v any) (Ledger, error) {
	obj, ok := AsObject(v)
	if !ok {
		return Ledger{}, &NormalizeError{Reason: "ledger is not an object"}
	}

	var l Ledger
	if l.ID, ok = AsString(obj["id"]); !ok {
		return Ledger{}, invalidField("id", "string", obj["id"])
	}
	if l.Name, ok = AsString(obj["name"]); !ok {
		return Ledger{}, invalidField("name", "string", obj["name"])
	}
	if l.CreatedAt, ok = asInt(obj["createdAt"]); !ok {
		return Ledger{}, invalidField("createdAt", "number", obj["createdAt"])
	}
	items, ok := AsArray(obj["records"])
	if !ok {
		return Ledger{}, invalidField("records", "array", obj["records"])
	}

	records := make([]TradeRecord, 0, len(items))
	for i, item := range items {
		r, err := NormalizeRecord(item)
		if err != nil {
			return Ledger{}, at(fmt.Sprintf("records[%d]", i), err)
		}
		records = append(records, r)
	}
	l.Records = dedupRecords(records)
	sortRecords(l.Records)
	return l, nil
}

// normalizeLedgers normalizes every element of items, failing on the first invalid one.
func normalizeLedgers(items []any) ([]Ledger, error) {
	ledgers := make([]Ledger, 0, len(items))
	for i, item := range items {
		l, err := NormalizeLedger(item)
		if err != nil {
			return nil, at(fmt.Sprintf("[%d]", i), err)
		}
		ledgers = append(ledgers, l)
	}
	return ledgers, nil
}

func invalidField(name, want string, got any) error {
	if got == nil {
		return &NormalizeError{Path: name, Reason: "missing " + want}
	}
	return &NormalizeError{Path: name, Reason: fmt.Sprintf("expected %s, got %T", want, got)}
}
