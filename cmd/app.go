// Package cmd implements the CLI application to keep a gold trading ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/etnz/auragold"
	"github.com/etnz/auragold/config"
	"github.com/etnz/auragold/store"
	"github.com/google/subcommands"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&ledgersCmd{}, "ledgers")
	c.Register(&newCmd{}, "ledgers")
	c.Register(&renameCmd{}, "ledgers")
	c.Register(&removeCmd{}, "ledgers")
	c.Register(&useCmd{}, "ledgers")

	c.Register(&addCmd{}, "trades")
	c.Register(&deleteCmd{}, "trades")
	c.Register(&recordsCmd{}, "trades")

	c.Register(&statsCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")

	c.Register(&settingsCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", config.DefaultFile(), "Path to the configuration file")
	storePath   = flag.String("store", "", "Path to the store. Overrides the configuration.")
	storeDriver = flag.String("driver", "", "Store driver, 'file' or 'sqlite'. Overrides the configuration.")
	Verbose     = flag.Bool("v", false, "Enable verbose logging")
	plain       = flag.Bool("plain", false, "Print markdown as is, without terminal rendering")
)

// EnvTestingNow fixes the current time, in RFC 3339, for reproducible outputs.
const EnvTestingNow = "AURAGOLD_TESTING_NOW"

// user facing input and output.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

func now() time.Time {
	if s := os.Getenv(EnvTestingNow); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// loadConfig loads the configuration file and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *storeDriver != "" {
		cfg.Store.Driver = *storeDriver
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	return cfg, cfg.Validate()
}

// session holds the state loaded from the store for the duration of a command.
type session struct {
	cfg    *config.Config
	store  auragold.Store
	closer func() error
	state  auragold.State
}

// openSession loads the configuration, sets up logging and loads the state.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	SetupLogger(os.Stderr, *Verbose, cfg.LogFormat)

	st, closer, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	state, err := st.Load(ctx)
	if err != nil {
		closer()
		return nil, fmt.Errorf("could not load store %q: %w", cfg.Store.Path, err)
	}
	slog.Debug("store loaded", "driver", cfg.Store.Driver, "path", cfg.Store.Path, "ledgers", len(state.Ledgers))
	return &session{cfg: cfg, store: st, closer: closer, state: state}, nil
}

// save persists s as the new state.
func (s *session) save(ctx context.Context, state auragold.State) error {
	if err := s.store.Save(ctx, state); err != nil {
		return fmt.Errorf("could not save store %q: %w", s.cfg.Store.Path, err)
	}
	s.state = state
	slog.Debug("store saved", "path", s.cfg.Store.Path, "ledgers", len(state.Ledgers))
	return nil
}

func (s *session) Close() {
	if err := s.closer(); err != nil {
		slog.Warn("could not close store", "path", s.cfg.Store.Path, "error", err)
	}
}

// ledger resolves a ledger by id or name, or the active ledger when query is empty.
func (s *session) ledger(query string) (auragold.Ledger, error) {
	if query != "" {
		return s.state.FindLedger(query)
	}
	l, ok := s.state.Active()
	if !ok {
		return auragold.Ledger{}, fmt.Errorf("no active ledger, create one with 'auragold new <name>'")
	}
	return l, nil
}

// fail prints an error message and returns the failure status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
