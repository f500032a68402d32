package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/renderer"
	"github.com/etnz/investpro/session"
	"github.com/google/subcommands"
)

// orderCmd is either buy or sell.
type orderCmd struct {
	kind   investpro.OrderKind
	dryRun bool
}

func (c *orderCmd) Name() string { return c.kind.String() }
func (c *orderCmd) Synopsis() string {
	if c.kind == investpro.Sell {
		return "sell shares of an asset at its current price"
	}
	return "buy shares of an asset at its current price"
}
func (c *orderCmd) Usage() string {
	return fmt.Sprintf(`ipro [-account <id>] %s [-n] <ticker> <quantity>

  Prices the order with the current catalog, then submits it unless -n is
  given.
`, c.Name())
}

func (c *orderCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "only show the order total")
}

func (c *orderCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	s, _, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	ticker := strings.ToUpper(f.Arg(0))
	s.SelectAsset(ticker)
	form := investpro.OrderForm{Kind: c.kind, Ticker: ticker, Quantity: f.Arg(1)}
	p := s.SetOrderForm(form)
	st := s.State()
	view := renderer.OrderView{Form: form, Asset: st.SelectedAsset(), Projection: p}
	if st.Summary != nil {
		view.Cash = st.Summary.Cash
	}
	printMarkdown(renderer.RenderOrderProjection(view))
	if c.dryRun || !p.Valid() {
		if p.Err != nil {
			return fail(p.Err)
		}
		return subcommands.ExitSuccess
	}

	out, err := s.SubmitOrder(ctx)
	if err != nil {
		return fail(err)
	}
	return reportOutcome(s.State(), out)
}

// reportOutcome prints the confirmation of a mutation and the refreshed
// balance.
func reportOutcome(st investpro.ViewState, out session.Outcome) subcommands.ExitStatus {
	fmt.Fprintln(stdout, out.Message)
	if out.RefreshErr != nil {
		fmt.Fprintf(stderr, "Warning: balance not refreshed: %s\n", investpro.Message(out.RefreshErr))
		return subcommands.ExitSuccess
	}
	if st.Summary != nil {
		fmt.Fprintf(stdout, "Cash: %s\n", st.Summary.Cash)
	}
	return subcommands.ExitSuccess
}
