package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/renderer"
	"github.com/google/subcommands"
)

// cashCmd is either deposit or withdraw.
type cashCmd struct {
	kind   investpro.CashKind
	dryRun bool
}

func (c *cashCmd) Name() string { return c.kind.String() }
func (c *cashCmd) Synopsis() string {
	if c.kind == investpro.Withdraw {
		return "withdraw cash from the account"
	}
	return "deposit cash into the account"
}
func (c *cashCmd) Usage() string {
	return fmt.Sprintf(`ipro [-account <id>] %s [-n] <amount>

  Shows the balance after the operation, then submits it unless -n is given.
  Amounts accept both 1234.56 and 1.234,56.
`, c.Name())
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "only show the projected balance")
}

func (c *cashCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	s, _, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	form := investpro.CashForm{Kind: c.kind, Amount: f.Arg(0)}
	p := s.SetCashForm(form)
	printMarkdown(renderer.RenderCashProjection(renderer.CashView{Form: form, Projection: p}))
	if c.dryRun || !p.Valid() {
		if p.Err != nil {
			return fail(p.Err)
		}
		return subcommands.ExitSuccess
	}

	out, err := s.SubmitCash(ctx)
	if err != nil {
		return fail(err)
	}
	return reportOutcome(s.State(), out)
}
