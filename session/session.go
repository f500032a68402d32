// Package session keeps the client state of one user and sequences the
// backend calls that feed it.
//
// A Session holds the current investpro.ViewState. Selecting an account
// starts a new generation: fetches issued for an older generation are
// canceled, and their results are dropped if they arrive anyway. Mutations
// are followed by a summary refresh issued only once the mutation has
// resolved.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/date"
	"golang.org/x/sync/errgroup"
)

// Backend is the part of the platform API the session drives.
type Backend interface {
	Summary(ctx context.Context, id investpro.AccountID) (investpro.AccountSummary, error)
	Holdings(ctx context.Context, id investpro.AccountID) ([]investpro.Holding, error)
	Assets(ctx context.Context) ([]investpro.Asset, error)
	Deposit(ctx context.Context, id investpro.AccountID, amount investpro.Money) (investpro.Confirmation, error)
	Withdraw(ctx context.Context, id investpro.AccountID, amount investpro.Money) (investpro.Confirmation, error)
	Submit(ctx context.Context, id investpro.AccountID, o investpro.PendingOrder) (investpro.Confirmation, error)
	Report(ctx context.Context, cpf investpro.CPF, period date.Range) (investpro.BackendReport, error)
	AdvanceDay(ctx context.Context) error
}

// ErrNoAccount is returned by operations that need a selected account.
var ErrNoAccount = errors.New("no account selected")

// errStale marks a response that belongs to a superseded generation.
var errStale = errors.New("stale response")

// Outcome is the result of a successful mutation. RefreshErr reports a
// failure of the summary refresh that follows; the mutation itself stands.
type Outcome struct {
	Message    string
	RefreshErr error
}

// Session is safe for concurrent use. Its lock guards the state only and is
// never held during backend calls.
type Session struct {
	backend Backend
	log     *slog.Logger

	mu     sync.Mutex
	state  investpro.ViewState
	gen    uint64
	cancel context.CancelFunc
}

// New returns a session with no account selected.
func New(b Backend, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{backend: b, log: log}
}

// State returns the current view state.
func (s *Session) State() investpro.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// update applies f to the state.
func (s *Session) update(f func(investpro.ViewState) investpro.ViewState) investpro.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = f(s.state)
	return s.state
}

// begin starts a new generation, canceling the fetches of the previous one.
// prepare is applied to the state under the same lock.
func (s *Session) begin(ctx context.Context, prepare func(investpro.ViewState) investpro.ViewState) (context.Context, uint64, investpro.ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	ctx, s.cancel = context.WithCancel(ctx)
	s.state = prepare(s.state)
	return ctx, s.gen, s.state
}

// apply runs f on the state if gen is still the current generation and
// account id is still selected; otherwise it returns errStale.
func (s *Session) apply(gen uint64, id investpro.AccountID, f func(investpro.ViewState) investpro.ViewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.state.Account != id {
		return errStale
	}
	s.state = f(s.state)
	return nil
}

// Select makes id the current account and loads its summary and holdings,
// and the catalog if it has not been loaded yet. Results that arrive after
// another selection are dropped and Select returns nil.
func (s *Session) Select(ctx context.Context, id investpro.AccountID) error {
	ctx, gen, st := s.begin(ctx, func(v investpro.ViewState) investpro.ViewState { return v.WithAccount(id) })
	return s.load(ctx, gen, id, len(st.Catalog) == 0)
}

// flusher is implemented by backends that cache reference data.
type flusher interface {
	FlushCache()
}

// Refresh reloads the summary, holdings and catalog of the current account,
// bypassing any cached catalog. Pending forms are kept.
func (s *Session) Refresh(ctx context.Context) error {
	ctx, gen, st := s.begin(ctx, func(v investpro.ViewState) investpro.ViewState { return v })
	if st.Account == 0 {
		return ErrNoAccount
	}
	if f, ok := s.backend.(flusher); ok {
		f.FlushCache()
	}
	return s.load(ctx, gen, st.Account, true)
}

// load fetches the account data of generation gen concurrently and applies
// whatever succeeded.
func (s *Session) load(ctx context.Context, gen uint64, id investpro.AccountID, withCatalog bool) error {
	var (
		summary  investpro.AccountSummary
		holdings []investpro.Holding
		catalog  []investpro.Asset
		sumErr   error
		holdErr  error
		catErr   error
	)
	var g errgroup.Group
	g.Go(func() error {
		summary, sumErr = s.backend.Summary(ctx, id)
		return sumErr
	})
	g.Go(func() error {
		holdings, holdErr = s.backend.Holdings(ctx, id)
		return holdErr
	})
	if withCatalog {
		g.Go(func() error {
			catalog, catErr = s.backend.Assets(ctx)
			return catErr
		})
	}
	err := g.Wait()

	stale := s.apply(gen, id, func(v investpro.ViewState) investpro.ViewState {
		if sumErr == nil {
			v = v.WithSummary(summary)
		}
		if holdErr == nil {
			v = v.WithHoldings(holdings)
		}
		if withCatalog && catErr == nil {
			v = v.WithCatalog(catalog)
		}
		return v
	})
	if stale != nil {
		s.log.Debug("dropping stale account data", "account", id, "generation", gen)
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot load account %s: %w", id, err)
	}
	return nil
}

// refreshSummary reloads the summary of account id after a mutation. It is
// skipped if another account has been selected meanwhile.
func (s *Session) refreshSummary(ctx context.Context, id investpro.AccountID) error {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	summary, err := s.backend.Summary(ctx, id)
	if err != nil {
		if s.apply(gen, id, func(v investpro.ViewState) investpro.ViewState { return v }) == errStale {
			return nil
		}
		return err
	}
	if s.apply(gen, id, func(v investpro.ViewState) investpro.ViewState { return v.WithSummary(summary) }) == errStale {
		s.log.Debug("dropping stale summary", "account", id, "generation", gen)
	}
	return nil
}

// SetTypeFilter filters the catalog on type t, resetting the sector filter
// and the selection.
func (s *Session) SetTypeFilter(t investpro.AssetType) investpro.ViewState {
	return s.update(func(v investpro.ViewState) investpro.ViewState { return v.WithTypeFilter(t) })
}

// SetSectorFilter filters the catalog on sector.
func (s *Session) SetSectorFilter(sector string) investpro.ViewState {
	return s.update(func(v investpro.ViewState) investpro.ViewState { return v.WithSectorFilter(sector) })
}

// SelectAsset selects the asset of the order form.
func (s *Session) SelectAsset(ticker string) investpro.ViewState {
	return s.update(func(v investpro.ViewState) investpro.ViewState { return v.WithSelection(ticker) })
}

// SetCashForm replaces the cash form and returns its projection.
func (s *Session) SetCashForm(f investpro.CashForm) investpro.BalanceProjection {
	return s.update(func(v investpro.ViewState) investpro.ViewState { return v.WithCashForm(f) }).CashProjection()
}

// SetOrderForm replaces the order form and returns its projection.
func (s *Session) SetOrderForm(f investpro.OrderForm) investpro.OrderProjection {
	return s.update(func(v investpro.ViewState) investpro.ViewState { return v.WithOrderForm(f) }).OrderProjection()
}

// SubmitCash submits the cash form if its projection is valid. Nothing is
// sent otherwise, and the projection error is returned.
func (s *Session) SubmitCash(ctx context.Context) (Outcome, error) {
	st := s.State()
	if st.Account == 0 {
		return Outcome{}, ErrNoAccount
	}
	p := st.CashProjection()
	if !p.Valid() {
		return Outcome{}, p.Err
	}

	var conf investpro.Confirmation
	var err error
	switch p.Operation.Kind {
	case investpro.Withdraw:
		conf, err = s.backend.Withdraw(ctx, st.Account, p.Operation.Amount)
	default:
		conf, err = s.backend.Deposit(ctx, st.Account, p.Operation.Amount)
	}
	if err != nil {
		return Outcome{}, err
	}
	s.log.Info("cash operation done", "account", st.Account, "kind", p.Operation.Kind, "amount", p.Operation.Amount)
	s.afterMutation(st.Account, investpro.ViewState.AfterCash)
	return Outcome{Message: conf.Message, RefreshErr: s.refreshSummary(ctx, st.Account)}, nil
}

// SubmitOrder submits the order form if its projection is valid. Nothing is
// sent otherwise, and the projection error is returned.
func (s *Session) SubmitOrder(ctx context.Context) (Outcome, error) {
	st := s.State()
	if st.Account == 0 {
		return Outcome{}, ErrNoAccount
	}
	p := st.OrderProjection()
	if !p.Valid() {
		return Outcome{}, p.Err
	}

	conf, err := s.backend.Submit(ctx, st.Account, p.Order)
	if err != nil {
		return Outcome{}, err
	}
	s.log.Info("order executed", "account", st.Account, "kind", p.Order.Kind, "ticker", p.Order.Ticker, "quantity", p.Order.Quantity)
	s.afterMutation(st.Account, investpro.ViewState.AfterOrder)
	return Outcome{Message: conf.Message, RefreshErr: s.refreshSummary(ctx, st.Account)}, nil
}

// afterMutation clears the submitted form unless the account has changed.
func (s *Session) afterMutation(id investpro.AccountID, f func(investpro.ViewState) investpro.ViewState) {
	s.update(func(v investpro.ViewState) investpro.ViewState {
		if v.Account != id {
			return v
		}
		return f(v)
	})
}

// AdvanceDay moves the platform to the next day and refreshes the current
// account, if any.
func (s *Session) AdvanceDay(ctx context.Context) error {
	if err := s.backend.AdvanceDay(ctx); err != nil {
		return err
	}
	if s.State().Account == 0 {
		return nil
	}
	return s.Refresh(ctx)
}

// Report computes the profit/loss report of the client cpf between from and
// to inclusive. The backend total is only used as a consistency check.
func (s *Session) Report(ctx context.Context, cpf investpro.CPF, from, to date.Date) (investpro.ReportResult, error) {
	period, err := investpro.ValidatePeriod(from, to)
	if err != nil {
		return investpro.ReportResult{}, err
	}
	r, err := s.backend.Report(ctx, cpf, period)
	if err != nil {
		return investpro.ReportResult{}, err
	}
	res := investpro.Aggregate(r.History, period)
	if err := res.Reconcile(r.Total); err != nil {
		s.log.Warn("report totals disagree", "cpf", cpf, "period", period, "err", err)
	}
	return res, nil
}
