package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/auragold"
	"github.com/etnz/auragold/renderer"
	"github.com/google/subcommands"
)

type settingsCmd struct {
	lang  string
	theme string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "display or change the preferences" }
func (*settingsCmd) Usage() string {
	return `auragold settings [-lang en|zh] [-theme light|dark]

  Displays the preferences, after changing those given by flags.
  The language applies to AI summaries, the theme to the terminal rendering.
  Preferences are stored with the ledgers and exported with -all.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.lang, "lang", "", "Language: en or zh.")
	f.StringVar(&c.theme, "theme", "", "Theme: light or dark.")
}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lang, err := auragold.ParseLang(c.lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	theme, err := auragold.ParseTheme(c.theme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		return fail("%v", err)
	}
	defer s.Close()

	if lang != "" || theme != "" {
		state := s.state
		if lang != "" {
			state.Lang = lang
		}
		if theme != "" {
			state.Theme = theme
		}
		if err := s.save(ctx, state); err != nil {
			return fail("%v", err)
		}
	}
	printMarkdown(renderer.SettingsMarkdown(s.state), s.state.Theme)
	return subcommands.ExitSuccess
}
