// Package fakebackend is an in-memory implementation of the investment
// platform HTTP API. It backs the tests and the serve-fake command.
package fakebackend

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/date"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

// Server serves a Ledger over HTTP.
type Server struct {
	*Ledger
	router chi.Router
	log    *slog.Logger
	hook   func(*http.Request)
}

// Option configures a Server.
type Option func(*Server)

// WithLedger serves l instead of the seeded ledger.
func WithLedger(l *Ledger) Option { return func(s *Server) { s.Ledger = l } }

// WithHook calls h before handling every request. Tests use it to observe
// or delay requests.
func WithHook(h func(*http.Request)) Option { return func(s *Server) { s.hook = h } }

// WithLogger sets the logger, slog.Default() by default.
func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.log = l } }

// New returns a server over the seeded ledger unless WithLedger is given.
func New(opts ...Option) *Server {
	s := &Server{log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.Ledger == nil {
		s.Ledger = Seed(nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/clientes/{cpf}/conta", s.handleAccountOf)
	r.Route("/contas/{id}", func(r chi.Router) {
		r.Get("/resumo", s.handleSummary)
		r.Get("/carteira", s.handleHoldings)
		r.Get("/historico", s.handleHistory)
		r.Post("/deposito", s.handleCash(s.Ledger.Deposit, "Depósito realizado com sucesso"))
		r.Post("/retirada", s.handleCash(s.Ledger.Withdraw, "Retirada realizada com sucesso"))
	})
	r.Post("/ordens/compra", s.handleOrder(s.Ledger.Buy, "Compra executada com sucesso"))
	r.Post("/ordens/venda", s.handleOrder(s.Ledger.Sell, "Venda executada com sucesso"))
	r.Get("/ativos", s.handleAssets)
	r.Get("/ativos/filtro", s.handleAssets)
	r.Get("/ativos/fii/setores", s.handleSectors(investpro.REIT))
	r.Get("/ativos/acao/setores", s.handleSectors(investpro.Stock))
	r.Get("/relatorio/{cpf}", s.handleReport)
	r.Post("/simulacao", s.handleSimulation)
	r.Post("/admin/virar-dia", s.handleAdvanceDay)
	r.Get("/assessor/{cpf}/clientes", s.handleAdvisorClients)
	r.Get("/gerente/{cpf}/equipe", s.handleManagerTeam)
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.router.ServeHTTP(w, r) }

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.hook != nil {
			s.hook(r)
		}
		s.log.Debug("fake backend", "method", r.Method, "path", r.URL.Path, "request_id", r.Header.Get("X-Request-Id"))
		next.ServeHTTP(w, r)
	})
}

func sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// sendDetail replies with the platform's error shape {"detail": ...}.
func sendDetail(w http.ResponseWriter, status int, detail any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"detail": detail})
}

// sendErr maps ledger errors to statuses: lookups are 404, the rest 400.
func sendErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errAccountNotFound), errors.Is(err, errClientNotFound):
		sendDetail(w, http.StatusNotFound, err.Error())
	default:
		sendDetail(w, http.StatusBadRequest, err.Error())
	}
}

// unprocessable mimics request validation failures, whose detail is a list.
func unprocessable(w http.ResponseWriter, loc, msg string) {
	sendDetail(w, http.StatusUnprocessableEntity, []map[string]any{
		{"loc": []string{loc}, "msg": msg, "type": "value_error"},
	})
}

func accountParam(w http.ResponseWriter, r *http.Request) (investpro.AccountID, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		unprocessable(w, "id_conta", "value is not a valid integer")
		return 0, false
	}
	return investpro.AccountID(id), true
}

func cpfParam(r *http.Request) investpro.CPF { return investpro.CPF(chi.URLParam(r, "cpf")) }

func (s *Server) handleAccountOf(w http.ResponseWriter, r *http.Request) {
	id, err := s.AccountOf(cpfParam(r))
	if err != nil {
		sendErr(w, err)
		return
	}
	sendJSON(w, map[string]any{"id_conta": id})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := accountParam(w, r)
	if !ok {
		return
	}
	sum, err := s.Summary(id)
	if err != nil {
		sendErr(w, err)
		return
	}
	sendJSON(w, struct {
		ID investpro.AccountID `json:"id_conta"`
		investpro.AccountSummary
	}{id, sum})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	id, ok := accountParam(w, r)
	if !ok {
		return
	}
	h, err := s.Holdings(id)
	if err != nil {
		sendErr(w, err)
		return
	}
	sendJSON(w, h)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := accountParam(w, r)
	if !ok {
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limite"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			unprocessable(w, "limite", "value is not a valid integer")
			return
		}
		limit = n
	}
	ops, err := s.History(id, limit)
	if err != nil {
		sendErr(w, err)
		return
	}
	sendJSON(w, ops)
}

func (s *Server) handleCash(op func(investpro.AccountID, decimal.Decimal) error, done string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := accountParam(w, r)
		if !ok {
			return
		}
		var body struct {
			Amount decimal.Decimal `json:"valor"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			unprocessable(w, "valor", "value is not a valid float")
			return
		}
		if err := op(id, body.Amount); err != nil {
			sendErr(w, err)
			return
		}
		sendJSON(w, investpro.Confirmation{Message: done})
	}
}

func (s *Server) handleOrder(op func(investpro.AccountID, string, int64) error, done string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Account  investpro.AccountID `json:"id_conta"`
			Ticker   string              `json:"ticker"`
			Quantity int64               `json:"quantidade"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			unprocessable(w, "body", "invalid order")
			return
		}
		if err := op(body.Account, body.Ticker, body.Quantity); err != nil {
			sendErr(w, err)
			return
		}
		sendJSON(w, investpro.Confirmation{Message: done})
	}
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sendJSON(w, s.Assets(investpro.AssetType(strings.ToUpper(q.Get("tipo"))), q.Get("setor")))
}

func (s *Server) handleSectors(t investpro.AssetType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := []map[string]string{}
		for _, sector := range s.Sectors(t) {
			rows = append(rows, map[string]string{"setor": sector})
		}
		sendJSON(w, rows)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := date.Parse(q.Get("inicio"))
	if err != nil {
		unprocessable(w, "inicio", "invalid date")
		return
	}
	to, err := date.Parse(q.Get("fim"))
	if err != nil {
		unprocessable(w, "fim", "invalid date")
		return
	}
	rep, err := s.Report(cpfParam(r), startOf(from), startOf(to))
	if err != nil {
		sendErr(w, err)
		return
	}
	sendJSON(w, rep)
}

func startOf(d date.Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Server) handleSimulation(w http.ResponseWriter, r *http.Request) {
	var req investpro.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		unprocessable(w, "body", "invalid simulation")
		return
	}
	res, err := s.Simulate(req)
	if err != nil {
		sendErr(w, err)
		return
	}
	sendJSON(w, res)
}

func (s *Server) handleAdvanceDay(w http.ResponseWriter, r *http.Request) {
	s.AdvanceDay()
	sendJSON(w, map[string]any{"message": "Dia avançado", "data": date.FromTime(s.Now())})
}

func (s *Server) handleAdvisorClients(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, s.AdvisorClients(cpfParam(r)))
}

func (s *Server) handleManagerTeam(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, s.ManagerTeam(cpfParam(r)))
}
