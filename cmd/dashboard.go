package cmd

import (
	"context"
	"flag"

	"github.com/etnz/investpro/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the account balance and portfolio" }
func (*dashboardCmd) Usage() string {
	return `ipro [-account <id>] dashboard

  Displays the cash, invested value and equity of the account, and its
  positions valued at current prices.
`
}

func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, _, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	st := s.State()
	printMarkdown(renderer.RenderDashboard(renderer.Dashboard{Account: st.Account, Summary: st.Summary, Holdings: st.Holdings}))
	return subcommands.ExitSuccess
}
