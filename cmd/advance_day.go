package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/investpro/renderer"
	"github.com/etnz/investpro/session"
	"github.com/google/subcommands"
)

type advanceDayCmd struct{}

func (*advanceDayCmd) Name() string     { return "advance-day" }
func (*advanceDayCmd) Synopsis() string { return "move the platform to the next day" }
func (*advanceDayCmd) Usage() string {
	return `ipro [-account <id>] advance-day

  Asks the backend to move to the next business day, which reprices the
  assets. When an account is given, its refreshed dashboard is shown.
`
}

func (*advanceDayCmd) SetFlags(*flag.FlagSet) {}

func (*advanceDayCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client, err := newClient()
	if err != nil {
		return fail(err)
	}
	s := session.New(client, logger())
	if accountFlag > 0 || cpfFlag != "" {
		id, err := currentAccount(ctx, client)
		if err != nil {
			return fail(err)
		}
		if err := s.Select(ctx, id); err != nil {
			return fail(err)
		}
	}
	if err := s.AdvanceDay(ctx); err != nil {
		return fail(err)
	}
	fmt.Fprintln(stdout, "Day advanced.")
	if st := s.State(); st.Account != 0 {
		printMarkdown(renderer.RenderDashboard(renderer.Dashboard{Account: st.Account, Summary: st.Summary, Holdings: st.Holdings}))
	}
	return subcommands.ExitSuccess
}
