package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete answers shell completion requests for the program name and
// exits when one is being served. It returns immediately otherwise.
//
//	complete -C ipro ipro
func Complete(name string) {
	Completion(flag.CommandLine).Complete(name)
}

// Completion describes the ipro command line: global flags from top, and
// every subcommand with its own flags.
func Completion(top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(top),
	}
	for _, cmds := range Commands() {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			sub := &complete.Command{Flags: flagPredictors(fs)}
			switch c.(type) {
			case *orderCmd:
				sub.Args = complete.PredictFunc(predictTickers)
			case *topicCmd:
				sub.Args = complete.PredictFunc(predictTopics)
			default:
				sub.Args = predict.Nothing
			}
			root.Sub[c.Name()] = sub
		}
	}
	root.Sub["help"] = &complete.Command{Args: predict.Set(commandNames())}
	return root
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		switch f.Name {
		case "type":
			flags[f.Name] = predict.Set{"stock", "reit", "bond"}
		case "period":
			flags[f.Name] = predict.Set{"day", "week", "month", "quarter", "year"}
		case "profile":
			flags[f.Name] = predict.Set{string(investpro.Client), string(investpro.Advisor), string(investpro.Manager)}
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

func commandNames() []string {
	var names []string
	for _, cmds := range Commands() {
		for _, c := range cmds {
			names = append(names, c.Name())
		}
	}
	return names
}

// predictTickers lists the catalog, or nothing if the backend does not
// answer quickly.
func predictTickers(prefix string) []string {
	client, err := newClient()
	if err != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assets, err := client.Assets(ctx)
	if err != nil {
		return nil
	}
	tickers := make([]string, 0, len(assets))
	for _, a := range assets {
		tickers = append(tickers, a.Ticker)
	}
	return tickers
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(topics, "*")
}

var _ subcommands.Command = (*orderCmd)(nil)
