package auragold

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// amountPlaces is the number of decimal places kept in computed amounts.
const amountPlaces = 4

// TradeInput holds what the user types when entering a trade.
type TradeInput struct {
	Grams           float64
	CostPrice       float64 // per gram
	SellingPrice    float64 // per gram
	HandlingFeeRate float64 // fraction of the selling amount, e.g. 0.004
	DesiredPrice    float64 // target selling price per gram
}

// Validate checks that the input describes a possible trade.
func (in TradeInput) Validate() error {
	var errs error
	if !(in.Grams > 0) || !isFinite(in.Grams) {
		errs = errors.Join(errs, fmt.Errorf("grams must be positive, got %v", in.Grams))
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"cost price", in.CostPrice},
		{"selling price", in.SellingPrice},
		{"desired price", in.DesiredPrice},
	} {
		if p.value < 0 || !isFinite(p.value) {
			errs = errors.Join(errs, fmt.Errorf("%s must not be negative, got %v", p.name, p.value))
		}
	}
	if in.HandlingFeeRate < 0 || in.HandlingFeeRate >= 1 || !isFinite(in.HandlingFeeRate) {
		errs = errors.Join(errs, fmt.Errorf("handling fee rate must be in [0, 1), got %v", in.HandlingFeeRate))
	}
	return errs
}

// NewTradeRecord computes the profit figures of a trade and returns the record.
//
//	fee              = grams × sellingPrice × feeRate
//	actualProfit     = grams × sellingPrice − fee − grams × costPrice
//	projectedProfit  = grams × desiredPrice × (1 − feeRate) − grams × costPrice
//	profitMargin     = actualProfit / (grams × costPrice), 0 when there is no cost
//
// The record gets a new ID and is timestamped at now.
func NewTradeRecord(in TradeInput, now time.Time) (TradeRecord, error) {
	if err := in.Validate(); err != nil {
		return TradeRecord{}, fmt.Errorf("invalid trade: %w", err)
	}
	grams := decimal.NewFromFloat(in.Grams)
	rate := decimal.NewFromFloat(in.HandlingFeeRate)
	net := decimal.NewFromInt(1).Sub(rate)

	cost := grams.Mul(decimal.NewFromFloat(in.CostPrice))
	revenue := grams.Mul(decimal.NewFromFloat(in.SellingPrice))
	actual := revenue.Sub(revenue.Mul(rate)).Sub(cost)
	projected := grams.Mul(decimal.NewFromFloat(in.DesiredPrice)).Mul(net).Sub(cost)

	margin := decimal.Zero
	if !cost.IsZero() {
		margin = actual.Div(cost)
	}

	return TradeRecord{
		ID:              NewID(now),
		Grams:           in.Grams,
		CostPrice:       in.CostPrice,
		SellingPrice:    in.SellingPrice,
		HandlingFeeRate: in.HandlingFeeRate,
		ActualProfit:    round(actual),
		DesiredPrice:    in.DesiredPrice,
		ProjectedProfit: round(projected),
		ProfitMargin:    round(margin),
		Timestamp:       now.UnixMilli(),
	}, nil
}

func round(d decimal.Decimal) float64 {
	f, _ := d.Round(amountPlaces).Float64()
	return f
}
