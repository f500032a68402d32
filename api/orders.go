package api

import (
	"context"

	"github.com/etnz/investpro"
)

type orderRequest struct {
	Account  investpro.AccountID `json:"id_conta"`
	Ticker   string              `json:"ticker"`
	Quantity int64               `json:"quantidade"`
}

// Buy places a buy order of quantity shares of ticker.
func (c *Client) Buy(ctx context.Context, id investpro.AccountID, ticker string, quantity int64) (investpro.Confirmation, error) {
	var conf investpro.Confirmation
	err := c.post(ctx, "/ordens/compra", orderRequest{id, ticker, quantity}, "buy order failed", &conf)
	return conf, err
}

// Sell places a sell order of quantity shares of ticker.
func (c *Client) Sell(ctx context.Context, id investpro.AccountID, ticker string, quantity int64) (investpro.Confirmation, error) {
	var conf investpro.Confirmation
	err := c.post(ctx, "/ordens/venda", orderRequest{id, ticker, quantity}, "sell order failed", &conf)
	return conf, err
}

// Submit places a validated order.
func (c *Client) Submit(ctx context.Context, id investpro.AccountID, o investpro.PendingOrder) (investpro.Confirmation, error) {
	if o.Kind == investpro.Sell {
		return c.Sell(ctx, id, o.Ticker, o.Quantity)
	}
	return c.Buy(ctx, id, o.Ticker, o.Quantity)
}
