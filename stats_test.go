package auragold

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAggregateStats(t *testing.T) {
	ledgers := []Ledger{
		ledger("A", "a", 1, TradeRecord{ID: "r1", Grams: 10, CostPrice: 500, SellingPrice: 520, HandlingFeeRate: 0.004, ActualProfit: 179.2, ProjectedProfit: 278.8, Timestamp: 100}),
		ledger("B", "b", 2, TradeRecord{ID: "r2", Grams: 2, CostPrice: 510, SellingPrice: 500, ActualProfit: -20, Timestamp: 50}),
		ledger("C", "c", 3),
	}

	s := AggregateStats(ledgers)

	if s.Trades != 2 || s.Wins != 1 || s.Losses != 1 {
		t.Errorf("AggregateStats() counts = %d/%d/%d, want 2/1/1", s.Trades, s.Wins, s.Losses)
	}
	if s.First != 50 || s.Last != 100 {
		t.Errorf("AggregateStats() first/last = %d/%d, want 50/100", s.First, s.Last)
	}
	amounts := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"grams", s.Grams, "12"},
		{"cost", s.Cost, "6020"},
		{"revenue", s.Revenue, "6200"},
		{"fees", s.Fees, "20.8"},
		{"actual profit", s.ActualProfit, "159.2"},
		{"projected profit", s.ProjectedProfit, "278.8"},
		{"margin", s.Margin, "0.0264"},
		{"win rate", s.WinRate(), "0.5"},
	}
	for _, a := range amounts {
		if !a.got.Equal(decimal.RequireFromString(a.want)) {
			t.Errorf("AggregateStats() %s = %v, want %s", a.name, a.got, a.want)
		}
	}
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(ledger("A", "a", 1))
	if s.Trades != 0 || !s.Margin.IsZero() || !s.WinRate().IsZero() || s.First != 0 {
		t.Errorf("ComputeStats() of an empty ledger = %+v", s)
	}
}

func TestComputeStats_MatchesNewTradeRecord(t *testing.T) {
	r, err := NewTradeRecord(TradeInput{Grams: 3, CostPrice: 600, SellingPrice: 630, HandlingFeeRate: 0.002}, time.Now())
	if err != nil {
		t.Fatalf("NewTradeRecord() unexpected error: %v", err)
	}
	s := ComputeStats(ledger("A", "a", 1, r))
	want := s.Revenue.Sub(s.Fees).Sub(s.Cost)
	if !s.ActualProfit.Equal(want) {
		t.Errorf("ComputeStats() actual profit = %v, want revenue - fees - cost = %v", s.ActualProfit, want)
	}
}

func TestMoney(t *testing.T) {
	if got, want := MF(1234.5, "USD").String(), "$1,234.50"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := MF(20, "USD").SignedString(), "+$20.00"; got != want {
		t.Errorf("SignedString() = %q, want %q", got, want)
	}
	if got := MF(0, "USD").SignedString(); got != "-" {
		t.Errorf("SignedString() of zero = %q, want -", got)
	}
}

func TestQuery(t *testing.T) {
	got, err := Query(sampleState(), "$.payload.ledgers[*].name", exportTime)
	if err != nil {
		t.Fatalf("Query() unexpected error: %v", err)
	}
	if want := []any{"Main", "Side"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Query() = %#v, want %#v", got, want)
	}

	got, err = Query(sampleState(), "$.payload.activeLedgerId", exportTime)
	if err != nil || got != "L2" {
		t.Errorf("Query() = %#v, %v; want L2", got, err)
	}

	if _, err := Query(sampleState(), "$.[", exportTime); err == nil {
		t.Errorf("Query() with an invalid path expected an error")
	}
}
