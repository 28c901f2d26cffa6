package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/auragold/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when invoked by the shell for completion.
	cmd.Completion(commander, flag.CommandLine).Complete(name)

	flag.Parse()

	// unknown subcommands are looked up as auragold-<subcommand> extensions.
	if sub := flag.Arg(0); sub != "" && !isCommand(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isCommand(cdr *subcommands.Commander, name string) (found bool) {
	cdr.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
