package fakebackend

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/etnz/investpro"
	"github.com/shopspring/decimal"
)

// ledger failures, worded like the platform's stored procedures.
var (
	errAccountNotFound   = errors.New("Conta não encontrada")
	errClientNotFound    = errors.New("Cliente não encontrado")
	errAssetNotFound     = errors.New("Ativo não encontrado")
	errNoPrice           = errors.New("Ativo sem preço de mercado")
	errNonPositiveAmount = errors.New("Valor deve ser positivo")
	errNonPositiveQty    = errors.New("Quantidade deve ser positiva")
	errInsufficientCash  = errors.New("Saldo insuficiente")
	errInsufficientQty   = errors.New("Quantidade insuficiente em carteira")
)

// Operation types as stored in the order history.
const (
	opBuy  = "COMPRA"
	opSell = "VENDA"
)

// Client is a holder of exactly one account.
type Client struct {
	Name    string
	CPF     investpro.CPF
	Account investpro.AccountID
	Advisor investpro.CPF
	Cash    decimal.Decimal
}

// Advisor serves clients and reports to a manager.
type Advisor struct {
	Name    string
	CPF     investpro.CPF
	Manager investpro.CPF
}

type position struct {
	quantity int64
	cost     decimal.Decimal // total acquisition cost of the shares held
}

type account struct {
	id        investpro.AccountID
	owner     investpro.CPF
	cash      decimal.Decimal
	positions map[string]*position
}

type order struct {
	at       time.Time
	account  investpro.AccountID
	kind     string
	ticker   string
	quantity int64
	price    decimal.Decimal
}

// cashFlow is negative for buys and positive for sells.
func (o order) cashFlow() decimal.Decimal {
	v := o.price.Mul(decimal.NewFromInt(o.quantity))
	if o.kind == opBuy {
		return v.Neg()
	}
	return v
}

// Ledger is the in-memory state of the fake platform. It is safe for
// concurrent use.
type Ledger struct {
	mu       sync.Mutex
	now      func() time.Time
	shift    time.Duration // added to now() by day advances
	clients  map[investpro.CPF]*Client
	advisors map[investpro.CPF]*Advisor
	managers map[investpro.CPF]string
	accounts map[investpro.AccountID]*account
	assets   []investpro.Asset
	orders   []order
}

// NewLedger returns an empty ledger using now as its clock.
func NewLedger(now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		now:      now,
		clients:  make(map[investpro.CPF]*Client),
		advisors: make(map[investpro.CPF]*Advisor),
		managers: make(map[investpro.CPF]string),
		accounts: make(map[investpro.AccountID]*account),
	}
}

// Now returns the current time of the ledger, day advances included.
func (l *Ledger) Now() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.clock()
}

func (l *Ledger) clock() time.Time { return l.now().UTC().Add(l.shift) }

// AddAsset lists a tradable asset. A nil price makes the asset unpriced.
func (l *Ledger) AddAsset(a investpro.Asset) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.assets = append(l.assets, a)
	// listed by type then ticker
	sort.SliceStable(l.assets, func(i, j int) bool {
		if l.assets[i].Type != l.assets[j].Type {
			return l.assets[i].Type < l.assets[j].Type
		}
		return l.assets[i].Ticker < l.assets[j].Ticker
	})
}

// AddManager registers a manager.
func (l *Ledger) AddManager(name string, cpf investpro.CPF) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.managers[cpf] = name
}

// AddAdvisor registers an advisor.
func (l *Ledger) AddAdvisor(a Advisor) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.advisors[a.CPF] = &a
}

// AddClient opens the account of c with c.Cash as initial balance.
func (l *Ledger) AddClient(c Client) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clients[c.CPF] = &c
	l.accounts[c.Account] = &account{
		id:        c.Account,
		owner:     c.CPF,
		cash:      c.Cash,
		positions: make(map[string]*position),
	}
}

func (l *Ledger) account(id investpro.AccountID) (*account, error) {
	a, ok := l.accounts[id]
	if !ok {
		return nil, errAccountNotFound
	}
	return a, nil
}

func (l *Ledger) asset(ticker string) (investpro.Asset, error) {
	for _, a := range l.assets {
		if a.Ticker == ticker {
			return a, nil
		}
	}
	return investpro.Asset{}, errAssetNotFound
}

// AccountOf returns the account of the client cpf.
func (l *Ledger) AccountOf(cpf investpro.CPF) (investpro.AccountID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.clients[cpf]
	if !ok {
		return 0, errClientNotFound
	}
	return c.Account, nil
}

// invested values the positions of a at current prices.
func (l *Ledger) invested(a *account) decimal.Decimal {
	total := decimal.Zero
	for ticker, p := range a.positions {
		asset, err := l.asset(ticker)
		if err != nil || asset.Price == nil {
			continue
		}
		total = total.Add(asset.Price.Decimal().Mul(decimal.NewFromInt(p.quantity)))
	}
	return total
}

// Summary returns the cash, invested value and equity of account id.
func (l *Ledger) Summary(id investpro.AccountID) (investpro.AccountSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.account(id)
	if err != nil {
		return investpro.AccountSummary{}, err
	}
	inv := l.invested(a)
	return investpro.AccountSummary{
		Cash:     investpro.M(a.cash),
		Invested: investpro.M(inv),
		Equity:   investpro.M(a.cash.Add(inv)),
	}, nil
}

// Holdings returns the positions of account id sorted by asset name.
func (l *Ledger) Holdings(id investpro.AccountID) ([]investpro.Holding, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.account(id)
	if err != nil {
		return nil, err
	}
	holdings := []investpro.Holding{}
	for ticker, p := range a.positions {
		asset, err := l.asset(ticker)
		if err != nil {
			continue
		}
		qty := decimal.NewFromInt(p.quantity)
		avg := p.cost.Div(qty).Round(2)
		h := investpro.Holding{
			Ticker:      ticker,
			Name:        asset.Name,
			Sector:      asset.Sector,
			Quantity:    p.quantity,
			AverageCost: investpro.M(avg),
		}
		if asset.Price != nil {
			price := asset.Price.Decimal()
			h.Price = investpro.M(price)
			h.Gain = investpro.M(price.Sub(avg).Mul(qty))
			if !avg.IsZero() {
				h.GainPercent = price.Div(avg).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Round(2)
			}
		}
		holdings = append(holdings, h)
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Name < holdings[j].Name })
	return holdings, nil
}

// Deposit credits amount to account id.
func (l *Ledger) Deposit(id investpro.AccountID, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.account(id)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errNonPositiveAmount
	}
	a.cash = a.cash.Add(amount)
	return nil
}

// Withdraw debits amount from account id.
func (l *Ledger) Withdraw(id investpro.AccountID, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.account(id)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errNonPositiveAmount
	}
	if amount.GreaterThan(a.cash) {
		return errInsufficientCash
	}
	a.cash = a.cash.Sub(amount)
	return nil
}

// Buy executes a buy of quantity shares of ticker at the current price.
func (l *Ledger) Buy(id investpro.AccountID, ticker string, quantity int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, price, err := l.prepare(id, ticker, quantity)
	if err != nil {
		return err
	}
	total := price.Mul(decimal.NewFromInt(quantity))
	if total.GreaterThan(a.cash) {
		return errInsufficientCash
	}
	a.cash = a.cash.Sub(total)
	p, ok := a.positions[ticker]
	if !ok {
		p = &position{}
		a.positions[ticker] = p
	}
	p.quantity += quantity
	p.cost = p.cost.Add(total)
	l.record(a.id, opBuy, ticker, quantity, price)
	return nil
}

// Sell executes a sale of quantity shares of ticker at the current price.
func (l *Ledger) Sell(id investpro.AccountID, ticker string, quantity int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, price, err := l.prepare(id, ticker, quantity)
	if err != nil {
		return err
	}
	p, ok := a.positions[ticker]
	if !ok || p.quantity < quantity {
		return errInsufficientQty
	}
	// the remaining shares keep their average cost
	p.cost = p.cost.Sub(p.cost.Mul(decimal.NewFromInt(quantity)).Div(decimal.NewFromInt(p.quantity)))
	p.quantity -= quantity
	if p.quantity == 0 {
		delete(a.positions, ticker)
	}
	a.cash = a.cash.Add(price.Mul(decimal.NewFromInt(quantity)))
	l.record(a.id, opSell, ticker, quantity, price)
	return nil
}

func (l *Ledger) prepare(id investpro.AccountID, ticker string, quantity int64) (*account, decimal.Decimal, error) {
	a, err := l.account(id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	asset, err := l.asset(ticker)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if quantity <= 0 {
		return nil, decimal.Zero, errNonPositiveQty
	}
	if asset.Price == nil {
		return nil, decimal.Zero, errNoPrice
	}
	return a, asset.Price.Decimal(), nil
}

func (l *Ledger) record(id investpro.AccountID, kind, ticker string, quantity int64, price decimal.Decimal) {
	l.orders = append(l.orders, order{
		at:       l.clock(),
		account:  id,
		kind:     kind,
		ticker:   ticker,
		quantity: quantity,
		price:    price,
	})
}

func (l *Ledger) operation(o order) investpro.HistoricalOperation {
	op := investpro.HistoricalOperation{
		Time:           investpro.Timestamp{Time: o.at},
		Type:           o.kind,
		Ticker:         o.ticker,
		Quantity:       o.quantity,
		ExecutionPrice: investpro.M(o.price),
		CashFlow:       investpro.M(o.cashFlow()),
	}
	if a, err := l.asset(o.ticker); err == nil {
		op.AssetName = a.Name
	}
	return op
}

// History returns the last limit orders of account id, most recent first.
func (l *Ledger) History(id investpro.AccountID, limit int) ([]investpro.HistoricalOperation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.account(id); err != nil {
		return nil, err
	}
	ops := []investpro.HistoricalOperation{}
	for i := len(l.orders) - 1; i >= 0 && len(ops) < limit; i-- {
		if l.orders[i].account == id {
			ops = append(ops, l.operation(l.orders[i]))
		}
	}
	return ops, nil
}

// Report computes the profit and loss of the client cpf over [from, to).
// Per-asset results are sorted by decreasing profit.
func (l *Ledger) Report(cpf investpro.CPF, from, to time.Time) (investpro.BackendReport, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.clients[cpf]
	if !ok {
		return investpro.BackendReport{}, errClientNotFound
	}
	r := investpro.BackendReport{
		PerAsset: []investpro.AssetProfitLoss{},
		History:  []investpro.HistoricalOperation{},
	}
	total := decimal.Zero
	perAsset := make(map[string]decimal.Decimal)
	for _, o := range l.orders {
		if o.account != c.Account || o.at.Before(from) || !o.at.Before(to) {
			continue
		}
		op := l.operation(o)
		r.History = append(r.History, op)
		total = total.Add(o.cashFlow())
		if _, seen := perAsset[o.ticker]; !seen {
			r.PerAsset = append(r.PerAsset, investpro.AssetProfitLoss{Ticker: o.ticker, AssetName: op.AssetName})
		}
		perAsset[o.ticker] = perAsset[o.ticker].Add(o.cashFlow())
	}
	for i := range r.PerAsset {
		r.PerAsset[i].ProfitLoss = investpro.M(perAsset[r.PerAsset[i].Ticker])
	}
	sort.SliceStable(r.PerAsset, func(i, j int) bool {
		return r.PerAsset[i].ProfitLoss.GreaterThan(r.PerAsset[j].ProfitLoss)
	})
	r.Total = investpro.M(total)
	return r, nil
}

// Assets returns the catalog, restricted to type t and to sectors containing
// sector (case-insensitive) when they are not empty.
func (l *Ledger) Assets(t investpro.AssetType, sector string) []investpro.Asset {
	l.mu.Lock()
	defer l.mu.Unlock()
	sector = strings.ToLower(sector)
	assets := []investpro.Asset{}
	for _, a := range l.assets {
		if t != "" && a.Type != t {
			continue
		}
		if sector != "" && !strings.Contains(strings.ToLower(a.Sector), sector) {
			continue
		}
		assets = append(assets, a)
	}
	return assets
}

// Sectors returns the distinct sectors of type t, sorted.
func (l *Ledger) Sectors(t investpro.AssetType) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	seen := make(map[string]bool)
	sectors := []string{}
	for _, a := range l.assets {
		if a.Type != t || a.Sector == "" || seen[a.Sector] {
			continue
		}
		seen[a.Sector] = true
		sectors = append(sectors, a.Sector)
	}
	sort.Strings(sectors)
	return sectors
}

// AdvanceDay moves the clock one day forward and reprices every priced
// asset by its daily drift.
func (l *Ledger) AdvanceDay() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shift += 24 * time.Hour
	for i, a := range l.assets {
		if a.Price == nil {
			continue
		}
		p := investpro.M(a.Price.Decimal().Mul(decimal.NewFromInt(1).Add(drift(a.Type))).Round(2))
		l.assets[i].Price = &p
	}
}

// drift is the daily price change of assets of type t, also used as the
// monthly rate of simulations.
func drift(t investpro.AssetType) decimal.Decimal {
	switch t {
	case investpro.Stock:
		return decimal.RequireFromString("0.01")
	case investpro.REIT:
		return decimal.RequireFromString("0.008")
	default:
		return decimal.RequireFromString("0.005")
	}
}

// Simulate compounds the initial amount monthly at the rate of the asset type.
func (l *Ledger) Simulate(req investpro.SimulationRequest) (investpro.SimulationResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.asset(req.Ticker)
	if err != nil {
		return investpro.SimulationResult{}, err
	}
	if !req.InitialAmount.IsPositive() {
		return investpro.SimulationResult{}, errNonPositiveAmount
	}
	factor := decimal.NewFromInt(1).Add(drift(a.Type)).Pow(decimal.NewFromInt(int64(req.Months)))
	final := req.InitialAmount.Decimal().Mul(factor).Round(2)
	return investpro.SimulationResult{
		EstimatedFinal:     investpro.M(final),
		TotalReturnPercent: factor.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100)).Round(2),
	}, nil
}

// AdvisorClients lists the clients of the advisor cpf by name.
func (l *Ledger) AdvisorClients(cpf investpro.CPF) []investpro.AdvisorClient {
	l.mu.Lock()
	defer l.mu.Unlock()
	clients := []investpro.AdvisorClient{}
	for _, c := range l.clients {
		if c.Advisor != cpf {
			continue
		}
		a := l.accounts[c.Account]
		inv := l.invested(a)
		clients = append(clients, investpro.AdvisorClient{
			Name:     c.Name,
			CPF:      c.CPF,
			Cash:     investpro.M(a.cash),
			Invested: investpro.M(inv),
			Equity:   investpro.M(a.cash.Add(inv)),
		})
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients
}

// ManagerTeam lists every advisor of the manager cpf with each of their
// clients, by advisor then client name.
func (l *Ledger) ManagerTeam(cpf investpro.CPF) []investpro.TeamMember {
	l.mu.Lock()
	defer l.mu.Unlock()
	team := []investpro.TeamMember{}
	for _, adv := range l.advisors {
		if adv.Manager != cpf {
			continue
		}
		for _, c := range l.clients {
			if c.Advisor == adv.CPF {
				team = append(team, investpro.TeamMember{
					AdvisorName: adv.Name,
					AdvisorCPF:  adv.CPF,
					ClientName:  c.Name,
					ClientCPF:   c.CPF,
				})
			}
		}
	}
	sort.Slice(team, func(i, j int) bool {
		if team[i].AdvisorName != team[j].AdvisorName {
			return team[i].AdvisorName < team[j].AdvisorName
		}
		return team[i].ClientName < team[j].ClientName
	})
	return team
}
