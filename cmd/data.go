package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/etnz/auragold"
	"github.com/google/subcommands"
)

type exportCmd struct {
	all    bool
	ledger string
	dir    string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export all data or a single ledger as JSON" }
func (*exportCmd) Usage() string {
	return `auragold export [-all | -l <ledger>] [-d <dir> | -o <file>]

  Exports the active ledger, the one given by -l, or all data with -all.
  The file is named after the ledger and the export time, and written in the
  current directory unless -d is set. Use '-o -' to write to the standard output.
  See 'auragold topic format' for the file format.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Export all ledgers and settings.")
	f.StringVar(&c.ledger, "l", "", "Ledger id or name. Defaults to the active ledger.")
	f.StringVar(&c.dir, "d", ".", "Directory to write the export to.")
	f.StringVar(&c.output, "o", "", "File to write the export to, '-' for the standard output. Overrides -d.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.all && c.ledger != "" {
		fmt.Fprintln(os.Stderr, "Error: -all and -l cannot be used together.")
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	at := now()
	var buf bytes.Buffer
	var name, what string
	if c.all {
		if err := auragold.ExportAll(&buf, s.state, at); err != nil {
			return fail("%v", err)
		}
		name, what = auragold.AllFileName(at), fmt.Sprintf("%d ledgers", len(s.state.Ledgers))
	} else {
		l, err := s.ledger(c.ledger)
		if err != nil {
			return fail("%v", err)
		}
		if err := auragold.ExportLedger(&buf, l, at); err != nil {
			return fail("%v", err)
		}
		name, what = auragold.LedgerFileName(l, at), fmt.Sprintf("ledger %q", l.Name)
	}

	if c.output == "-" {
		stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}
	path := c.output
	if path == "" {
		path = filepath.Join(c.dir, name)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fail("could not write export: %v", err)
	}
	slog.Info("exported", "path", path, "bytes", buf.Len())
	fmt.Fprintf(stdout, "Exported %s to %s.\n", what, path)
	return subcommands.ExitSuccess
}

type importCmd struct {
	all  bool
	mode string
	into string
	yes  bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import all data or a single ledger from JSON" }
func (*importCmd) Usage() string {
	return `auragold import [-all] [-mode <mode>] [-into <ledger>] [-y] <file | ->

  Imports a file written by 'auragold export', '-' reads the standard input.
  The whole file is validated first: on any error nothing is changed.

  With -all, mode is 'merge' (default) or 'replace'.
  For a single ledger, mode is 'add' (default), 'merge' or 'replace', the
  last two applying to the ledger given by -into, the active one by default.
  Replacing asks for confirmation unless -y is set.
  See 'auragold topic import'.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "Import all data instead of a single ledger.")
	f.StringVar(&c.mode, "mode", "", "Import mode: add, merge or replace.")
	f.StringVar(&c.into, "into", "", "Target ledger id or name for the merge and replace modes.")
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation.")
}

// importMode returns the mode selected by the flags.
func (c *importCmd) importMode() (auragold.ImportMode, error) {
	if c.mode == "" {
		if c.all {
			return auragold.MergeMode, nil
		}
		return auragold.AddMode, nil
	}
	mode, err := auragold.ParseImportMode(c.mode)
	if err != nil {
		return mode, err
	}
	if c.all && mode == auragold.AddMode {
		return mode, fmt.Errorf("mode %q is not available with -all", c.mode)
	}
	return mode, nil
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one file is required.")
		return subcommands.ExitUsageError
	}
	mode, err := c.importMode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var r io.Reader = stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return fail("could not open import: %v", err)
		}
		defer file.Close()
		r = file
	}

	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	var state auragold.State
	var done string
	if c.all {
		imp, err := auragold.DecodeAllImport(r)
		if err != nil {
			return fail("%v", err)
		}
		if mode == auragold.ReplaceMode && !confirm(c.yes, "Replace all %d ledgers with the %d imported ones?", len(s.state.Ledgers), len(imp.Ledgers)) {
			return subcommands.ExitSuccess
		}
		state = auragold.ApplyAllImport(s.state, imp, mode)
		done = fmt.Sprintf("Imported %d ledgers (%s), %d ledgers in total.", len(imp.Ledgers), mode, len(state.Ledgers))
	} else {
		l, err := auragold.DecodeLedgerImport(r)
		if err != nil {
			return fail("%v", err)
		}
		target := ""
		if mode != auragold.AddMode {
			t, err := s.ledger(c.into)
			if err != nil {
				return fail("%v", err)
			}
			target = t.ID
			if mode == auragold.ReplaceMode && !confirm(c.yes, "Replace the %d trades of %q with the %d imported ones?", len(t.Records), t.Name, len(l.Records)) {
				return subcommands.ExitSuccess
			}
		}
		state, err = auragold.ApplyLedgerImport(s.state, l, mode, target)
		if err != nil {
			return fail("%v", err)
		}
		done = fmt.Sprintf("Imported ledger %q with %d trades (%s).", l.Name, len(l.Records), mode)
	}

	if err := s.save(ctx, state); err != nil {
		return fail("%v", err)
	}
	slog.Info("imported", "file", f.Arg(0), "mode", mode.String(), "ledgers", len(state.Ledgers))
	fmt.Fprintln(stdout, done)
	return subcommands.ExitSuccess
}
