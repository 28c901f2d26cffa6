package auragold

import (
	"github.com/shopspring/decimal"
)

// Stats summarizes the profit and loss of a set of trades.
type Stats struct {
	Trades          int
	Wins            int // trades with a positive actual profit
	Losses          int // trades with a negative actual profit
	Grams           decimal.Decimal
	Cost            decimal.Decimal // total purchase amount
	Revenue         decimal.Decimal // total selling amount, before fees
	Fees            decimal.Decimal
	ActualProfit    decimal.Decimal
	ProjectedProfit decimal.Decimal
	// Margin is the actual profit over the total cost, i.e. the average
	// margin weighted by cost.
	Margin decimal.Decimal
	First  int64 // timestamp of the oldest trade, 0 without trades
	Last   int64 // timestamp of the newest trade, 0 without trades
}

// WinRate returns the fraction of winning trades.
func (s Stats) WinRate() decimal.Decimal {
	if s.Trades == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.Wins)).Div(decimal.NewFromInt(int64(s.Trades)))
}

// ComputeStats computes the statistics of a single ledger.
func ComputeStats(l Ledger) Stats { return AggregateStats([]Ledger{l}) }

// AggregateStats computes the statistics over all the records of all ledgers.
// It is the master view across ledgers.
func AggregateStats(ledgers []Ledger) Stats {
	s := Stats{}
	for _, l := range ledgers {
		for _, r := range l.Records {
			s.add(r)
		}
	}
	if !s.Cost.IsZero() {
		s.Margin = s.ActualProfit.Div(s.Cost).Round(amountPlaces)
	}
	return s
}

func (s *Stats) add(r TradeRecord) {
	grams := decimal.NewFromFloat(r.Grams)
	revenue := grams.Mul(decimal.NewFromFloat(r.SellingPrice))
	profit := decimal.NewFromFloat(r.ActualProfit)

	s.Trades++
	switch profit.Sign() {
	case 1:
		s.Wins++
	case -1:
		s.Losses++
	}
	s.Grams = s.Grams.Add(grams)
	s.Cost = s.Cost.Add(grams.Mul(decimal.NewFromFloat(r.CostPrice)))
	s.Revenue = s.Revenue.Add(revenue)
	s.Fees = s.Fees.Add(revenue.Mul(decimal.NewFromFloat(r.HandlingFeeRate)))
	s.ActualProfit = s.ActualProfit.Add(profit)
	s.ProjectedProfit = s.ProjectedProfit.Add(decimal.NewFromFloat(r.ProjectedProfit))

	if s.Trades == 1 || r.Timestamp < s.First {
		s.First = r.Timestamp
	}
	if s.Trades == 1 || r.Timestamp > s.Last {
		s.Last = r.Timestamp
	}
}
