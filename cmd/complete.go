package cmd

import (
	"flag"

	"github.com/etnz/auragold/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagValues predicts the values of flags with a fixed set of values.
var flagValues = map[string]complete.Predictor{
	"driver": predict.Set{"file", "sqlite"},
	"mode":   predict.Set{"add", "merge", "replace"},
	"lang":   predict.Set{"en", "zh"},
	"theme":  predict.Set{"light", "dark"},
	"config": predict.Files("*.yaml"),
	"store":  predict.Files("*"),
	"o":      predict.Files("*.json"),
	"d":      predict.Dirs("*"),
}

// Completion returns the shell completion of the commands registered in cdr
// and of the global flags in top.
func Completion(cdr *subcommands.Commander, top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(top),
	}
	cdr.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(f),
			Args:  argsPredictor(c.Name()),
		}
	})
	return root
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		if p, ok := flagValues[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}

func argsPredictor(command string) complete.Predictor {
	switch command {
	case "import":
		return predict.Files("*.json")
	case "topic":
		topics, _ := docs.GetAllTopics()
		return predict.Set(append(topics, "readme"))
	default:
		return nil
	}
}
