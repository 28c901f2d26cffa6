package auragold

import (
	"testing"
	"time"
)

func TestNewTradeRecord(t *testing.T) {
	now := time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)
	in := TradeInput{Grams: 10, CostPrice: 500, SellingPrice: 520, HandlingFeeRate: 0.004, DesiredPrice: 530}

	r, err := NewTradeRecord(in, now)
	if err != nil {
		t.Fatalf("NewTradeRecord() unexpected error: %v", err)
	}
	if r.ID == "" {
		t.Errorf("NewTradeRecord() must set an id")
	}
	if r.Timestamp != now.UnixMilli() {
		t.Errorf("NewTradeRecord() timestamp = %d, want %d", r.Timestamp, now.UnixMilli())
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"actualProfit", r.ActualProfit, 179.2},
		{"projectedProfit", r.ProjectedProfit, 278.8},
		{"profitMargin", r.ProfitMargin, 0.0358},
		{"grams", r.Grams, 10},
		{"handlingFeeRate", r.HandlingFeeRate, 0.004},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("NewTradeRecord() %s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestNewTradeRecord_ZeroCost(t *testing.T) {
	r, err := NewTradeRecord(TradeInput{Grams: 1, SellingPrice: 100}, time.Now())
	if err != nil {
		t.Fatalf("NewTradeRecord() unexpected error: %v", err)
	}
	if r.ProfitMargin != 0 || r.ActualProfit != 100 {
		t.Errorf("NewTradeRecord() = %+v, want a 0 margin and a 100 profit", r)
	}
}

func TestNewTradeRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   TradeInput
	}{
		{"zero grams", TradeInput{Grams: 0, CostPrice: 1}},
		{"negative grams", TradeInput{Grams: -1}},
		{"negative cost", TradeInput{Grams: 1, CostPrice: -1}},
		{"fee too high", TradeInput{Grams: 1, HandlingFeeRate: 1}},
		{"negative fee", TradeInput{Grams: 1, HandlingFeeRate: -0.1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if r, err := NewTradeRecord(tc.in, time.Now()); err == nil {
				t.Errorf("NewTradeRecord(%+v) = %+v, expected an error", tc.in, r)
			}
		})
	}
}
