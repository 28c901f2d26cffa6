package auragold

import (
	"encoding/json"
	"slices"
)

// Ledger is a named collection of trade records.
//
// In a normalized Ledger, records have unique IDs and are sorted newest first.
type Ledger struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt int64         `json:"createdAt"` // milliseconds since epoch
	Records   []TradeRecord `json:"records"`
}

// MarshalJSON encodes the ledger, always writing records as an array.
func (l Ledger) MarshalJSON() ([]byte, error) {
	type plain Ledger
	p := plain(l)
	if p.Records == nil {
		p.Records = []TradeRecord{}
	}
	return json.Marshal(p)
}

// Record returns the record with the given id.
func (l Ledger) Record(id string) (TradeRecord, bool) {
	i := slices.IndexFunc(l.Records, func(r TradeRecord) bool { return r.ID == id })
	if i < 0 {
		return TradeRecord{}, false
	}
	return l.Records[i], true
}

// clone returns a copy of l that does not share its records.
func (l Ledger) clone() Ledger {
	l.Records = slices.Clone(l.Records)
	if l.Records == nil {
		l.Records = []TradeRecord{}
	}
	return l
}

func cloneLedgers(ls []Ledger) []Ledger {
	out := make([]Ledger, len(ls))
	for i, l := range ls {
		out[i] = l.clone()
	}
	return out
}
