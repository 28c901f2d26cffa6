package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/etnz/auragold"
	"github.com/etnz/auragold/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	ledger string
	in     auragold.TradeInput
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a gold trade" }
func (*addCmd) Usage() string {
	return `auragold add -g <grams> -cost <price> -sell <price> [-fee <rate>] [-target <price>] [-l <ledger>]

  Records a trade in the active ledger, or the one given by -l.
  Prices are per gram. The handling fee rate is a fraction of the selling
  amount, e.g. 0.004 for 0.4%. The actual profit, the projected profit at
  the target price, and the margin are computed and stored with the trade.

Usage Examples:
$ auragold add -g 10 -cost 480.5 -sell 512 -fee 0.004 -target 530
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger id or name. Defaults to the active ledger.")
	f.Float64Var(&c.in.Grams, "g", 0, "Weight traded, in grams.")
	f.Float64Var(&c.in.CostPrice, "cost", 0, "Purchase price per gram.")
	f.Float64Var(&c.in.SellingPrice, "sell", 0, "Selling price per gram.")
	f.Float64Var(&c.in.HandlingFeeRate, "fee", 0, "Handling fee rate, as a fraction of the selling amount.")
	f.Float64Var(&c.in.DesiredPrice, "target", 0, "Desired selling price per gram. Defaults to the selling price.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := c.in
	if in.DesiredPrice == 0 {
		in.DesiredPrice = in.SellingPrice
	}
	if err := in.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid trade: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	l, err := s.ledger(c.ledger)
	if err != nil {
		return fail("%v", err)
	}
	r, err := auragold.NewTradeRecord(in, now())
	if err != nil {
		return fail("%v", err)
	}
	state, err := auragold.AddRecord(s.state, l.ID, r)
	if err != nil {
		return fail("%v", err)
	}
	if err := s.save(ctx, state); err != nil {
		return fail("%v", err)
	}
	slog.Info("trade recorded", "ledger", l.ID, "id", r.ID)
	fmt.Fprintf(stdout, "Recorded trade %s in %q: actual profit %s, projected %s.\n",
		r.ID, l.Name,
		auragold.MF(r.ActualProfit, s.cfg.Currency).SignedString(),
		auragold.MF(r.ProjectedProfit, s.cfg.Currency).SignedString())
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	ledger string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a trade" }
func (*deleteCmd) Usage() string {
	return `auragold delete [-l <ledger>] <trade id>

  Deletes a trade from the active ledger, or the one given by -l.
  Trade ids are listed by 'auragold records'.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger id or name. Defaults to the active ledger.")
}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one trade id is required.")
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	l, err := s.ledger(c.ledger)
	if err != nil {
		return fail("%v", err)
	}
	state, err := auragold.RemoveRecord(s.state, l.ID, f.Arg(0))
	if err != nil {
		return fail("%v", err)
	}
	if err := s.save(ctx, state); err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(stdout, "Deleted trade %s from %q.\n", f.Arg(0), l.Name)
	return subcommands.ExitSuccess
}

type recordsCmd struct {
	ledger string
	head   int
}

func (*recordsCmd) Name() string     { return "records" }
func (*recordsCmd) Synopsis() string { return "list the trades of a ledger" }
func (*recordsCmd) Usage() string {
	return `auragold records [-l <ledger>] [-head <n>]

  Lists the trades of the active ledger, or the one given by -l, newest first.
`
}

func (c *recordsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger id or name. Defaults to the active ledger.")
	f.IntVar(&c.head, "head", 0, "Show only the N most recent trades.")
}

func (c *recordsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	l, err := s.ledger(c.ledger)
	if err != nil {
		return fail("%v", err)
	}
	if c.head > 0 && len(l.Records) > c.head {
		l.Records = l.Records[:c.head]
	}
	printMarkdown(renderer.RecordsMarkdown(l, s.cfg.Currency), s.state.Theme)
	return subcommands.ExitSuccess
}
