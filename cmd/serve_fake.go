package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/investpro/fakebackend"
	"github.com/google/subcommands"
)

type serveFakeCmd struct {
	addr string
}

func (*serveFakeCmd) Name() string     { return "serve-fake" }
func (*serveFakeCmd) Synopsis() string { return "run an in-memory backend for demos and tests" }
func (*serveFakeCmd) Usage() string {
	return `ipro serve-fake [-addr <host:port>]

  Serves the platform API from a seeded in-memory ledger until interrupted.
  Nothing is persisted.
`
}

func (c *serveFakeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "127.0.0.1:8000", "listen address")
}

func (c *serveFakeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger()
	srv := &http.Server{
		Addr:              c.addr,
		Handler:           fakebackend.New(fakebackend.WithLogger(log)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	fmt.Fprintf(stdout, "fake backend listening on http://%s\n", c.addr)

	select {
	case err := <-errc:
		return fail(err)
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
