package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/etnz/auragold"
	"github.com/etnz/auragold/renderer"
	"github.com/google/subcommands"
)

type ledgersCmd struct{}

func (*ledgersCmd) Name() string     { return "ledgers" }
func (*ledgersCmd) Synopsis() string { return "list all ledgers" }
func (*ledgersCmd) Usage() string {
	return `auragold ledgers

  Lists all ledgers with their number of trades and actual profit.
  The active ledger, used by default by other commands, is marked.
`
}

func (*ledgersCmd) SetFlags(f *flag.FlagSet) {}

func (*ledgersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	printMarkdown(renderer.LedgersMarkdown(s.state, s.cfg.Currency), s.state.Theme)
	return subcommands.ExitSuccess
}

type newCmd struct{}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create a new ledger and make it active" }
func (*newCmd) Usage() string {
	return `auragold new <name>

  Creates a new empty ledger, and makes it the active ledger.

Usage Examples:
$ auragold new "Bank bars"
`
}

func (*newCmd) SetFlags(f *flag.FlagSet) {}

func (*newCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(os.Stderr, "Error: a ledger name is required.")
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	state, l, err := auragold.AddLedger(s.state, name, now())
	if err != nil {
		return fail("%v", err)
	}
	if err := s.save(ctx, state); err != nil {
		return fail("%v", err)
	}
	slog.Info("ledger created", "id", l.ID, "name", l.Name)
	fmt.Fprintf(stdout, "Created ledger %q (%s).\n", l.Name, l.ID)
	return subcommands.ExitSuccess
}

type renameCmd struct {
	ledger string
}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename a ledger" }
func (*renameCmd) Usage() string {
	return `auragold rename [-l <ledger>] <name>

  Renames the active ledger, or the one given by -l.
`
}

func (c *renameCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger id or name. Defaults to the active ledger.")
}

func (c *renameCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(os.Stderr, "Error: a new name is required.")
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
	state, err := auragold.RenameLedger(s.state, l.ID, name)
	if err != nil {
		return fail("%v", err)
	}
	if err := s.save(ctx, state); err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(stdout, "Renamed ledger %q to %q.\n", l.Name, strings.TrimSpace(name))
	return subcommands.ExitSuccess
}

type removeCmd struct {
	yes bool
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a ledger and all its trades" }
func (*removeCmd) Usage() string {
	return `auragold remove [-y] <ledger>

  Removes a ledger, given by id or name, with all its trades.
  It asks for confirmation unless -y is set.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation.")
}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ledger is required.")
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	l, err := s.ledger(f.Arg(0))
	if err != nil {
		return fail("%v", err)
	}
	if !confirm(c.yes, "Remove ledger %q and its %d trades?", l.Name, len(l.Records)) {
		return subcommands.ExitSuccess
	}
	state, err := auragold.RemoveLedger(s.state, l.ID)
	if err != nil {
		return fail("%v", err)
	}
	if err := s.save(ctx, state); err != nil {
		return fail("%v", err)
	}
	slog.Info("ledger removed", "id", l.ID, "records", len(l.Records))
	fmt.Fprintf(stdout, "Removed ledger %q.\n", l.Name)
	return subcommands.ExitSuccess
}

type useCmd struct{}

func (*useCmd) Name() string     { return "use" }
func (*useCmd) Synopsis() string { return "select the active ledger" }
func (*useCmd) Usage() string {
	return `auragold use <ledger>

  Makes the ledger, given by id or name, the active ledger.
`
}

func (*useCmd) SetFlags(f *flag.FlagSet) {}

func (*useCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one ledger is required.")
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	l, err := s.ledger(f.Arg(0))
	if err != nil {
		return fail("%v", err)
	}
	state, err := auragold.SetActive(s.state, l.ID)
	if err != nil {
		return fail("%v", err)
	}
	if err := s.save(ctx, state); err != nil {
		return fail("%v", err)
	}
	fmt.Fprintf(stdout, "Active ledger is now %q.\n", l.Name)
	return subcommands.ExitSuccess
}
