package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/auragold"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// dateFormat is used for ledger creation dates and trade timestamps.
const dateFormat = "2006-01-02 15:04"

func formatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format(dateFormat)
}

func formatPercent(d decimal.Decimal) string {
	return d.Shift(2).StringFixed(2) + "%"
}

func formatGrams(g float64) string {
	return decimal.NewFromFloat(g).StringFixed(3) + " g"
}

// LedgersMarkdown lists the ledgers in s, marking the active one, with their
// trade count and actual profit.
func LedgersMarkdown(s auragold.State, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Ledgers")
	if len(s.Ledgers) == 0 {
		doc.PlainText("No ledgers yet. Create one with `auragold new <name>`.")
		return doc.String()
	}

	rows := make([][]string, 0, len(s.Ledgers))
	for _, l := range s.Ledgers {
		name := l.Name
		if l.ID == s.ActiveLedgerID {
			name = md.Bold(name) + " (active)"
		}
		st := auragold.ComputeStats(l)
		rows = append(rows, []string{
			name,
			l.ID,
			formatMillis(l.CreatedAt),
			fmt.Sprint(st.Trades),
			auragold.M(st.ActualProfit, currency).SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Name", "ID", "Created", "Trades", "Actual Profit"},
		Rows:   rows,
	})
	return doc.String()
}

// RecordsMarkdown renders the trade records of l, newest first.
func RecordsMarkdown(l auragold.Ledger, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Trades of %s", l.Name))
	if len(l.Records) == 0 {
		doc.PlainText("No trades recorded.")
		return doc.String()
	}

	price := func(v float64) string { return auragold.MF(v, currency).String() }
	rows := make([][]string, 0, len(l.Records))
	for _, r := range l.Records {
		rows = append(rows, []string{
			formatMillis(r.Timestamp),
			formatGrams(r.Grams),
			price(r.CostPrice),
			price(r.SellingPrice),
			formatPercent(decimal.NewFromFloat(r.HandlingFeeRate)),
			auragold.MF(r.ActualProfit, currency).SignedString(),
			price(r.DesiredPrice),
			auragold.MF(r.ProjectedProfit, currency).SignedString(),
			formatPercent(decimal.NewFromFloat(r.ProfitMargin)),
			r.ID,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Date", "Weight", "Cost", "Sold", "Fee", "Profit", "Target", "Projected", "Margin", "ID"},
		Rows:   rows,
	})
	return doc.String()
}

// StatsMarkdown renders trade statistics under the given title.
func StatsMarkdown(title string, s auragold.Stats, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if s.Trades == 0 {
		doc.PlainText("No trades recorded.")
		return doc.String()
	}
	doc.PlainText(fmt.Sprintf("%d trades from %s to %s.", s.Trades, formatMillis(s.First), formatMillis(s.Last)))

	m := func(d decimal.Decimal) string { return auragold.M(d, currency).String() }
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Weight traded", s.Grams.StringFixed(3) + " g"},
			{"Total cost", m(s.Cost)},
			{"Total revenue", m(s.Revenue)},
			{"Handling fees", m(s.Fees)},
			{md.Bold("Actual profit"), md.Bold(auragold.M(s.ActualProfit, currency).SignedString())},
			{"Projected profit", auragold.M(s.ProjectedProfit, currency).SignedString()},
			{"Margin", formatPercent(s.Margin)},
			{"Win rate", fmt.Sprintf("%s (%d won, %d lost)", formatPercent(s.WinRate()), s.Wins, s.Losses)},
		},
	})
	return doc.String()
}

// SettingsMarkdown renders the persisted user preferences.
func SettingsMarkdown(s auragold.State) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	orDefault := func(v, def string) string {
		if v == "" {
			return def + " (default)"
		}
		return v
	}
	active := "-"
	if l, ok := s.Active(); ok {
		active = fmt.Sprintf("%s (%s)", l.Name, l.ID)
	}
	doc.H1("Settings")
	doc.Table(md.TableSet{
		Header: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Active ledger", active},
			{"Language", orDefault(string(s.Lang), string(auragold.LangEn))},
			{"Theme", orDefault(string(s.Theme), string(auragold.ThemeLight))},
		},
	})
	return doc.String()
}
