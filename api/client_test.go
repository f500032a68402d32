package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/date"
	"github.com/etnz/investpro/fakebackend"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects the requests received by the fake backend.
type recorder struct {
	mu   sync.Mutex
	reqs []*http.Request
}

func (r *recorder) hook(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
}

func (r *recorder) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var p []string
	for _, req := range r.reqs {
		p = append(p, req.Method+" "+req.URL.Path)
	}
	return p
}

func newTestClient(t *testing.T, opts ...Option) (*Client, *fakebackend.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	fake := fakebackend.New(
		fakebackend.WithLedger(fakebackend.Seed(func() time.Time { return time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC) })),
		fakebackend.WithHook(rec.hook),
	)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c, fake, rec
}

func TestNew_InvalidURL(t *testing.T) {
	for _, u := range []string{"", "localhost:8000", "/contas", "http://%zz"} {
		_, err := New(u)
		assert.Error(t, err, "New(%q)", u)
	}
}

func TestClient_AccountFlow(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestClient(t)

	id, err := c.ResolveAccount(ctx, fakebackend.AnaCPF)
	require.NoError(t, err)
	assert.Equal(t, fakebackend.AnaAccount, id)

	conf, err := c.Deposit(ctx, id, investpro.M(500))
	require.NoError(t, err)
	assert.Equal(t, "Depósito realizado com sucesso", conf.Message)

	_, err = c.Buy(ctx, id, "VALE3", 10)
	require.NoError(t, err)

	sum, err := c.Summary(ctx, id)
	require.NoError(t, err)
	assert.True(t, sum.Cash.Equal(investpro.M(9888)), "cash = %v", sum.Cash)
	assert.True(t, sum.Invested.Equal(investpro.M(612)), "invested = %v", sum.Invested)
	assert.True(t, sum.Equity.Equal(investpro.M(10500)), "equity = %v", sum.Equity)

	holdings, err := c.Holdings(ctx, id)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "VALE3", holdings[0].Ticker)
	assert.Equal(t, int64(10), holdings[0].Quantity)

	_, err = c.Submit(ctx, id, investpro.PendingOrder{Kind: investpro.Sell, Ticker: "VALE3", Quantity: 4})
	require.NoError(t, err)

	ops, err := c.History(ctx, id, 1)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "VENDA", ops[0].Type)
	assert.True(t, ops[0].CashFlow.IsPositive())
}

func TestClient_BackendDetail(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestClient(t)

	_, err := c.Withdraw(ctx, fakebackend.CarlaAccount, investpro.M(1))
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Saldo insuficiente", apiErr.UserMessage())
	assert.Equal(t, "Saldo insuficiente", investpro.Message(err))

	_, err = c.Summary(ctx, 999)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Conta não encontrada", apiErr.UserMessage())
}

func TestClient_FallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Assets(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "", apiErr.Detail)
	assert.Equal(t, "could not list assets", investpro.Message(err))
}

func TestDetailOf(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"detail":"Saldo insuficiente"}`, "Saldo insuficiente"},
		{`{"detail":[{"msg":"bad"}]}`, `[{"msg":"bad"}]`},
		{`{"detail":null}`, ""},
		{`{"error":"x"}`, ""},
		{`not json`, ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, detailOf([]byte(tc.body)), "detailOf(%s)", tc.body)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	c, _, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Summary(ctx, fakebackend.AnaAccount)
	assert.True(t, errors.Is(err, context.Canceled), "err = %v", err)
}

func TestClient_Assets(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestClient(t)

	all, err := c.Assets(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 9)
	unpriced := investpro.LookupAsset(all, "PETR26")
	require.NotNil(t, unpriced)
	assert.Nil(t, unpriced.Price)

	fii, err := c.FilterAssets(ctx, investpro.AssetFilter{Type: investpro.REIT})
	require.NoError(t, err)
	assert.Len(t, fii, 3)

	sectors, err := c.Sectors(ctx, investpro.REIT)
	require.NoError(t, err)
	assert.Equal(t, []string{"Híbrido", "Logística", "Shoppings"}, sectors)

	sectors, err = c.Sectors(ctx, investpro.Stock)
	require.NoError(t, err)
	assert.Equal(t, []string{"Financeiro", "Mineração", "Petróleo e Gás"}, sectors)

	sectors, err = c.Sectors(ctx, investpro.Bond)
	require.NoError(t, err)
	assert.Empty(t, sectors)
}

func TestClient_Cache(t *testing.T) {
	ctx := context.Background()
	c, _, rec := newTestClient(t, WithCache(time.Minute))

	for i := 0; i < 3; i++ {
		_, err := c.Assets(ctx)
		require.NoError(t, err)
		_, err = c.Summary(ctx, fakebackend.AnaAccount)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{
		"GET /ativos",
		"GET /contas/1/resumo",
		"GET /contas/1/resumo",
		"GET /contas/1/resumo",
	}, rec.paths())

	require.NoError(t, c.AdvanceDay(ctx))
	_, err := c.Assets(ctx)
	require.NoError(t, err)
	assert.Equal(t, "GET /ativos", rec.paths()[len(rec.paths())-1], "catalog must be refetched after a day advance")
}

func TestClient_CacheUnderBasePath(t *testing.T) {
	rec := &recorder{}
	fake := fakebackend.New(fakebackend.WithHook(rec.hook))
	srv := httptest.NewServer(http.StripPrefix("/api", fake))
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api", WithCache(time.Minute))
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := c.Assets(ctx)
		require.NoError(t, err)
		_, err = c.Sectors(ctx, investpro.REIT)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"GET /ativos", "GET /ativos/fii/setores"}, rec.paths())

	c.FlushCache()
	_, err = c.Assets(ctx)
	require.NoError(t, err)
	assert.Len(t, rec.paths(), 3)
}

func TestClient_RequestID(t *testing.T) {
	c, _, rec := newTestClient(t)
	_, err := c.Summary(context.Background(), fakebackend.AnaAccount)
	require.NoError(t, err)
	_, err = c.Summary(context.Background(), fakebackend.AnaAccount)
	require.NoError(t, err)

	require.Len(t, rec.reqs, 2)
	first := rec.reqs[0].Header.Get(RequestIDHeader)
	_, err = uuid.Parse(first)
	assert.NoError(t, err, "request id %q", first)
	assert.NotEqual(t, first, rec.reqs[1].Header.Get(RequestIDHeader))
}

func TestClient_Report(t *testing.T) {
	ctx := context.Background()
	c, fake, rec := newTestClient(t)

	_, err := c.Buy(ctx, fakebackend.AnaAccount, "PETR4", 10)
	require.NoError(t, err)
	fake.AdvanceDay()
	_, err = c.Sell(ctx, fakebackend.AnaAccount, "PETR4", 10)
	require.NoError(t, err)

	// the whole of the last day is included
	period := date.Range{From: date.New(2025, 3, 10), To: date.New(2025, 3, 11)}
	r, err := c.Report(ctx, fakebackend.AnaCPF, period)
	require.NoError(t, err)
	assert.Len(t, r.History, 2)
	assert.True(t, r.Total.Equal(investpro.M(3.9)), "total = %v", r.Total)

	last := rec.reqs[len(rec.reqs)-1]
	assert.Equal(t, "2025-03-10", last.URL.Query().Get("inicio"))
	assert.Equal(t, "2025-03-12", last.URL.Query().Get("fim"))
}

func TestClient_Panels(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newTestClient(t)

	clients, err := c.AdvisorClients(ctx, fakebackend.AdvisorCPF)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, fakebackend.AnaCPF, clients[0].CPF)

	team, err := c.ManagerTeam(ctx, fakebackend.ManagerCPF)
	require.NoError(t, err)
	assert.Len(t, team, 3)

	res, err := c.Simulate(ctx, investpro.SimulationRequest{Ticker: "HGLG11", InitialAmount: investpro.M(1000), Months: 1})
	require.NoError(t, err)
	assert.True(t, res.EstimatedFinal.Equal(investpro.M(1008)), "final = %v", res.EstimatedFinal)
}
