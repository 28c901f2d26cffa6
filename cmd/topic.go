package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/auragold/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `auragold topic [-list] [<topic>...]

Show documentation for the given topics, '*' for all of them.
Without topic, shows the documentation index.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "List the available topics.")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		topics, err := docs.GetAllTopics()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing topics: %v\n", err)
			return subcommands.ExitFailure
		}
		var b strings.Builder
		b.WriteString("# Topics\n\n")
		for _, t := range topics {
			title, err := docs.Title(t)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Fprintf(&b, "* %s: %s\n", t, title)
		}
		printMarkdown(b.String(), "")
		return subcommands.ExitSuccess
	}

	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc, "")
	return subcommands.ExitSuccess
}
