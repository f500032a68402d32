package api

import (
	"context"
	"net/url"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/date"
)

// Report returns the backend report of the client cpf over period. The
// backend excludes its end date, so the day after period.To is sent to
// cover the whole period.
func (c *Client) Report(ctx context.Context, cpf investpro.CPF, period date.Range) (investpro.BackendReport, error) {
	q := url.Values{
		"inicio": {period.From.String()},
		"fim":    {period.End().String()},
	}
	var r investpro.BackendReport
	err := c.get(ctx, "/relatorio/"+url.PathEscape(string(cpf)), q, "could not load the report", &r)
	return r, err
}

// Simulate asks the backend to project an investment.
func (c *Client) Simulate(ctx context.Context, req investpro.SimulationRequest) (investpro.SimulationResult, error) {
	var res investpro.SimulationResult
	err := c.post(ctx, "/simulacao", req, "simulation failed", &res)
	return res, err
}
