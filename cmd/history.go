package cmd

import (
	"context"
	"flag"

	"github.com/etnz/investpro/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list the latest orders of the account" }
func (*historyCmd) Usage() string {
	return `ipro [-account <id>] history [-n <count>]

  Lists the latest executed orders of the account, most recent first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "number of operations")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient()
	if err != nil {
		return fail(err)
	}
	id, err := currentAccount(ctx, client)
	if err != nil {
		return fail(err)
	}
	ops, err := client.History(ctx, id, c.limit)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderHistory(ops))
	return subcommands.ExitSuccess
}
