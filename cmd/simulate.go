package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/renderer"
	"github.com/google/subcommands"
)

type simulateCmd struct{}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "estimate the return of an investment" }
func (*simulateCmd) Usage() string {
	return `ipro simulate <ticker> <amount> <months>

  Asks the backend for the estimated value of amount invested in ticker
  after the given number of months.
`
}

func (*simulateCmd) SetFlags(*flag.FlagSet) {}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	req, err := investpro.SimulationForm{Ticker: f.Arg(0), InitialAmount: f.Arg(1), Months: f.Arg(2)}.Validate()
	if err != nil {
		return fail(err)
	}
	client, err := newClient()
	if err != nil {
		return fail(err)
	}
	res, err := client.Simulate(ctx, req)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderSimulation(renderer.Simulation{Request: req, Result: res}))
	return subcommands.ExitSuccess
}
