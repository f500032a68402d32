package cmd

import (
	"bytes"
	"context"
	"flag"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/etnz/investpro/config"
	"github.com/etnz/investpro/fakebackend"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swap sets *p to v and returns a func restoring the previous value.
func swap[T any](p *T, v T) func() {
	old := *p
	*p = v
	return func() { *p = old }
}

// command returns a fresh instance of the subcommand called name.
func command(t *testing.T, name string) subcommands.Command {
	t.Helper()
	for _, cmds := range Commands() {
		for _, c := range cmds {
			if c.Name() == name {
				return c
			}
		}
	}
	t.Fatalf("no command %q", name)
	return nil
}

// harness runs commands against an in-memory backend, with plain output.
type harness struct {
	t              *testing.T
	stdout, stderr bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := fakebackend.New(fakebackend.WithLedger(fakebackend.Seed(func() time.Time {
		return time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	})))
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	h := &harness{t: t}
	restore := []func(){
		swap(&settings, config.Config{LogLevel: "error", Timeout: 5 * time.Second}),
		swap(&apiURL, srv.URL),
		swap(&accountFlag, int64(0)),
		swap(&cpfFlag, ""),
		swap(&plain, true),
		swap(&verbose, false),
		swap[io.Writer](&stdout, &h.stdout),
		swap[io.Writer](&stderr, &h.stderr),
	}
	t.Cleanup(func() {
		for _, r := range restore {
			r()
		}
	})
	return h
}

// run executes the subcommand name with args and returns its status and
// output, resetting the buffers.
func (h *harness) run(name string, args ...string) (subcommands.ExitStatus, string, string) {
	h.t.Helper()
	c := command(h.t, name)
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.SetFlags(fs)
	require.NoError(h.t, fs.Parse(args))
	status := c.Execute(context.Background(), fs)
	out, errOut := h.stdout.String(), h.stderr.String()
	h.stdout.Reset()
	h.stderr.Reset()
	return status, out, errOut
}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	status, _, errOut := h.run("login")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "missing CPF")

	cpfFlag = "111.222.333-44"
	status, out, _ := h.run("login")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "IPRO_ACCOUNT=1")

	cpfFlag = "80000000001"
	status, out, _ = h.run("login", "-profile", "assessor")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "111.222.333-44")

	cpfFlag = "99999999999"
	status, _, errOut = h.run("login")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "não encontrado")
}

func TestCashCommands(t *testing.T) {
	h := newHarness(t)
	accountFlag = 1

	status, out, _ := h.run("withdraw", "-n", "1.000,00")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "R$9.000,00")

	status, _, errOut := h.run("withdraw", "20000")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "insufficient funds")

	status, out, _ = h.run("deposit", "500")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Cash: R$10.500,00")

	status, _, _ = h.run("deposit")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestOrderCommands(t *testing.T) {
	h := newHarness(t)
	accountFlag = 2

	status, out, _ := h.run("buy", "itub4", "10")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "R$331,00")
	assert.Contains(t, out, "Cash: R$2.169,00")

	status, _, errOut := h.run("sell", "ITUB4", "11")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, errOut, "Quantidade insuficiente em carteira")

	status, _, errOut = h.run("buy", "PETR26", "1")
	assert.Equal(t, subcommands.ExitUsageError, status)
	assert.NotEmpty(t, errOut)

	status, _, _ = h.run("buy", "-n", "VALE29", "1")
	assert.Equal(t, subcommands.ExitSuccess, status)

	status, out, _ = h.run("dashboard")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "ITUB4")
}

func TestAssetsCommands(t *testing.T) {
	h := newHarness(t)

	status, out, _ := h.run("assets", "-type", "reit")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "HGLG11")
	assert.NotContains(t, out, "PETR4")

	status, out, _ = h.run("sectors", "-type", "reit")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "- Logística")

	status, _, _ = h.run("assets", "-type", "crypto")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestReportCommand(t *testing.T) {
	h := newHarness(t)
	cpfFlag = "22233344455"
	accountFlag = 2

	status, _, _ := h.run("buy", "PETR4", "10")
	require.Equal(t, subcommands.ExitSuccess, status)

	status, out, _ := h.run("report", "-from", "2025-03-01", "-to", "2025-03-10")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "-R$385,00")

	status, _, errOut := h.run("report", "-from", "2025-03-10", "-to", "2025-03-01")
	assert.Equal(t, subcommands.ExitUsageError, status)
	assert.NotEmpty(t, errOut)

	for _, args := range [][]string{
		{"-from", "2025-13-01"},
		{"-to", "yesterday"},
		{"-period", "fortnight"},
		{"-period", "month", "-d", "03/10/2025"},
	} {
		status, _, errOut := h.run("report", args...)
		assert.Equal(t, subcommands.ExitUsageError, status, "report %v", args)
		assert.NotEmpty(t, errOut, "report %v", args)
	}
}

func TestTopicCommand(t *testing.T) {
	h := newHarness(t)
	status, out, _ := h.run("topic")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "* orders:")

	status, out, _ = h.run("topic", "-l")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "fake-backend\n")

	status, _, _ = h.run("topic", "nope")
	assert.Equal(t, subcommands.ExitFailure, status)
}

func TestCompletion(t *testing.T) {
	top := flag.NewFlagSet("ipro", flag.ContinueOnError)
	top.String("api-url", "", "")
	top.Bool("v", false, "")

	c := Completion(top)
	for _, name := range []string{"deposit", "withdraw", "buy", "sell", "report", "topic", "help"} {
		assert.Contains(t, c.Sub, name)
	}
	assert.Contains(t, c.Flags, "api-url")
	assert.Contains(t, c.Sub["report"].Flags, "period")
	assert.Contains(t, predictTopics(""), "orders")
}
