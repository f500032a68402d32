// Package cmd implements ipro, the command line client of the investment
// platform.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/investpro"
	"github.com/etnz/investpro/api"
	"github.com/etnz/investpro/config"
	"github.com/etnz/investpro/session"
	"github.com/google/subcommands"
)

// Commands lists every ipro subcommand with its group.
func Commands() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"account": {
			&loginCmd{},
			&dashboardCmd{},
			&historyCmd{},
			&cashCmd{kind: investpro.Deposit},
			&cashCmd{kind: investpro.Withdraw},
		},
		"market": {
			&orderCmd{kind: investpro.Buy},
			&orderCmd{kind: investpro.Sell},
			&assetsCmd{},
			&sectorsCmd{},
			&simulateCmd{},
		},
		"reports": {
			&reportCmd{},
		},
		"staff": {
			&clientsCmd{},
			&teamCmd{},
			&advanceDayCmd{},
		},
		"tools": {
			&serveFakeCmd{},
			&topicCmd{},
		},
	}
}

// Register the subcommands and the global flags, whose defaults come from
// cfg. A main package calls Register, then Execute on the commander.
func Register(c *subcommands.Commander, cfg config.Config) {
	settings = cfg
	flag.StringVar(&apiURL, "api-url", cfg.APIURL, "backend base url")
	flag.Int64Var(&accountFlag, "account", cfg.Account, "account number, resolved from -cpf when 0")
	flag.StringVar(&cpfFlag, "cpf", cfg.CPF, "CPF of the user")
	flag.BoolVar(&verbose, "v", false, "log backend calls")
	flag.BoolVar(&plain, "plain", false, "print raw markdown")

	for group, cmds := range Commands() {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	settings    config.Config
	apiURL      string
	accountFlag int64
	cpfFlag     string
	verbose     bool
	plain       bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func logger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return settings.Logger(stderr)
}

// newClient returns a backend client configured from the settings and flags.
func newClient() (*api.Client, error) {
	opts := []api.Option{
		api.WithLogger(logger()),
		api.WithCache(settings.CacheTTL),
	}
	if settings.Timeout > 0 {
		opts = append(opts, api.WithTimeout(settings.Timeout))
	}
	if settings.RateLimit > 0 {
		opts = append(opts, api.WithRateLimit(settings.RateLimit, settings.RateBurst))
	}
	return api.New(apiURL, opts...)
}

// currentCPF parses the -cpf flag.
func currentCPF() (investpro.CPF, error) {
	if cpfFlag == "" {
		return "", errors.New("missing CPF: use -cpf or IPRO_CPF")
	}
	return investpro.ParseCPF(cpfFlag)
}

// currentAccount returns the -account flag, or the account of -cpf.
func currentAccount(ctx context.Context, c *api.Client) (investpro.AccountID, error) {
	if accountFlag > 0 {
		return investpro.AccountID(accountFlag), nil
	}
	cpf, err := currentCPF()
	if err != nil {
		return 0, fmt.Errorf("missing account: use -account, -cpf or IPRO_ACCOUNT")
	}
	return c.ResolveAccount(ctx, cpf)
}

// openSession returns a session with the current account selected.
func openSession(ctx context.Context) (*session.Session, *api.Client, error) {
	c, err := newClient()
	if err != nil {
		return nil, nil, err
	}
	id, err := currentAccount(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	s := session.New(c, logger())
	if err := s.Select(ctx, id); err != nil {
		return nil, nil, err
	}
	return s, c, nil
}

// printMarkdown renders md for the terminal, or prints it raw with -plain.
func printMarkdown(md string) {
	if !plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Fprint(stdout, out)
				return
			}
		}
	}
	fmt.Fprint(stdout, md)
}

// fail reports err to the user and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: %s\n", investpro.Message(err))
	logger().Debug("command failed", "err", err)
	if investpro.IsValidation(err) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
