package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/auragold"
	"github.com/etnz/auragold/agent"
	"github.com/etnz/auragold/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// reportFlags selects the ledgers a report covers.
type reportFlags struct {
	ledger string
	all    bool
}

func (r *reportFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.ledger, "l", "", "Ledger id or name. Defaults to the active ledger.")
	f.BoolVar(&r.all, "all", false, "Report on all ledgers together.")
}

// statistics returns the report title and statistics selected by the flags.
func (r *reportFlags) statistics(s *session) (string, auragold.Stats, error) {
	if r.all {
		return "Statistics of all ledgers", auragold.AggregateStats(s.state.Ledgers), nil
	}
	l, err := s.ledger(r.ledger)
	if err != nil {
		return "", auragold.Stats{}, err
	}
	return fmt.Sprintf("Statistics of %s", l.Name), auragold.ComputeStats(l), nil
}

type statsCmd struct {
	reportFlags
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display profit and loss statistics" }
func (*statsCmd) Usage() string {
	return `auragold stats [-l <ledger> | -all]

  Displays the statistics of the active ledger, the one given by -l, or of
  all ledgers together: weight traded, cost, revenue, fees, actual and
  projected profit, margin and win rate.
`
}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	title, st, err := c.statistics(s)
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(renderer.StatsMarkdown(title, st, s.cfg.Currency), s.state.Theme)
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	reportFlags
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "ask Gemini to review the statistics" }
func (*summaryCmd) Usage() string {
	return `auragold summary [-l <ledger> | -all]

  Sends the statistics, as displayed by 'auragold stats', to a Gemini model
  and prints its review. The answer follows the language setting.
  Requires GEMINI_API_KEY (or GOOGLE_API_KEY) to be set.
`
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	title, st, err := c.statistics(s)
	if err != nil {
		return fail("%v", err)
	}
	if st.Trades == 0 {
		fmt.Fprintln(stdout, "No trades to review.")
		return subcommands.ExitSuccess
	}
	doc := renderer.StatsMarkdown(title, st, s.cfg.Currency)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("could not initialize Gemini's client: %v", err)
	}
	summarizer := agent.NewSummarizer(s.cfg.Model)
	if err := summarizer.Start(ctx, client); err != nil {
		return fail("%v", err)
	}
	review, err := summarizer.Summarize(ctx, doc, s.state.Lang)
	if err != nil {
		return fail("summary failed: %v", err)
	}
	printMarkdown(doc+"\n"+review+"\n", s.state.Theme)
	return subcommands.ExitSuccess
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on all data" }
func (*queryCmd) Usage() string {
	return `auragold query <jsonpath>

  Evaluates a JSONPath expression on the "all data" export, as written by
  'auragold export -all', and prints the result as JSON.

Usage Examples:
$ auragold query '$.payload.ledgers[*].name'
$ auragold query '$.payload.ledgers[?(@.name == "Main")].records[*].actualProfit'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one JSONPath expression is required.")
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	v, err := auragold.Query(s.state, f.Arg(0), now())
	if err != nil {
		return fail("%v", err)
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fail("could not print result: %v", err)
	}
	return subcommands.ExitSuccess
}
