package auragold

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency gold prices are entered in unless configured otherwise.
const DefaultCurrency = "CNY"

// Money is an amount in a currency, used to present computed figures.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from an amount and an ISO currency code.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// MF creates a Money from a float amount.
func MF(value float64, currency string) Money {
	return M(decimal.NewFromFloat(value), currency)
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency symbol and its usual number of
// decimal places, e.g. "$1,234.50" for USD.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string { return m.cur }
func (m Money) IsZero() bool     { return m.value.IsZero() }
