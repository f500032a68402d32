package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/etnz/investpro"
)

// ResolveAccount returns the account of the client identified by cpf.
func (c *Client) ResolveAccount(ctx context.Context, cpf investpro.CPF) (investpro.AccountID, error) {
	var resp struct {
		ID investpro.AccountID `json:"id_conta"`
	}
	err := c.get(ctx, "/clientes/"+url.PathEscape(string(cpf))+"/conta", nil, "could not find the client's account", &resp)
	return resp.ID, err
}

// Summary returns the cash, invested value and equity of an account.
func (c *Client) Summary(ctx context.Context, id investpro.AccountID) (investpro.AccountSummary, error) {
	var s investpro.AccountSummary
	err := c.get(ctx, "/contas/"+id.String()+"/resumo", nil, "could not load the account summary", &s)
	return s, err
}

// Holdings returns the portfolio positions of an account.
func (c *Client) Holdings(ctx context.Context, id investpro.AccountID) ([]investpro.Holding, error) {
	var h []investpro.Holding
	err := c.get(ctx, "/contas/"+id.String()+"/carteira", nil, "could not load the portfolio", &h)
	return h, err
}

// History returns the latest executed orders of an account, most recent
// first. A non-positive limit uses the backend default.
func (c *Client) History(ctx context.Context, id investpro.AccountID, limit int) ([]investpro.HistoricalOperation, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limite": {strconv.Itoa(limit)}}
	}
	var ops []investpro.HistoricalOperation
	err := c.get(ctx, "/contas/"+id.String()+"/historico", q, "could not load the operation history", &ops)
	return ops, err
}

type cashRequest struct {
	Amount investpro.Money `json:"valor"`
}

// Deposit credits amount to the account.
func (c *Client) Deposit(ctx context.Context, id investpro.AccountID, amount investpro.Money) (investpro.Confirmation, error) {
	var conf investpro.Confirmation
	err := c.post(ctx, "/contas/"+id.String()+"/deposito", cashRequest{amount}, "deposit failed", &conf)
	return conf, err
}

// Withdraw debits amount from the account.
func (c *Client) Withdraw(ctx context.Context, id investpro.AccountID, amount investpro.Money) (investpro.Confirmation, error) {
	var conf investpro.Confirmation
	err := c.post(ctx, "/contas/"+id.String()+"/retirada", cashRequest{amount}, "withdrawal failed", &conf)
	return conf, err
}
