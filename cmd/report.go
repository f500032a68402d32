package cmd

import (
	"context"
	"flag"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/date"
	"github.com/etnz/investpro/renderer"
	"github.com/etnz/investpro/session"
	"github.com/google/subcommands"
)

type reportCmd struct {
	from   string
	to     string
	period string
	on     string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "profit and loss report over a period" }
func (*reportCmd) Usage() string {
	return `ipro -cpf <cpf> report [-from <date> -to <date>] [-period week|month|quarter|year [-d <date>]]

  Reports the profit and loss of the client between two dates, both
  included. -period reports the calendar period containing -d instead.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	today := date.Today()
	f.StringVar(&c.from, "from", today.StartOf(date.Monthly).String(), "first day of the report")
	f.StringVar(&c.to, "to", today.String(), "last day of the report")
	f.StringVar(&c.period, "period", "", "calendar period: day, week, month, quarter or year")
	f.StringVar(&c.on, "d", today.String(), "a day of the -period")
}

// bounds returns the first and last day to report. Malformed dates and
// periods are validation errors of the period field.
func (c *reportCmd) bounds() (from, to date.Date, err error) {
	from, to, err = c.parseBounds()
	if err != nil {
		err = &investpro.ValidationError{Field: "period", Err: err}
	}
	return from, to, err
}

func (c *reportCmd) parseBounds() (from, to date.Date, err error) {
	if c.period != "" {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			return from, to, err
		}
		on, err := date.Parse(c.on)
		if err != nil {
			return from, to, err
		}
		r := date.NewRange(on, p)
		return r.From, r.To, nil
	}
	if from, err = date.Parse(c.from); err != nil {
		return from, to, err
	}
	to, err = date.Parse(c.to)
	return from, to, err
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, to, err := c.bounds()
	if err != nil {
		return fail(err)
	}
	cpf, err := currentCPF()
	if err != nil {
		return fail(err)
	}
	client, err := newClient()
	if err != nil {
		return fail(err)
	}
	res, err := session.New(client, logger()).Report(ctx, cpf, from, to)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderReport(renderer.Report{CPF: cpf, Result: res}))
	return subcommands.ExitSuccess
}
