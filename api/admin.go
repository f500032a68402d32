package api

import (
	"context"
	"net/url"

	"github.com/etnz/investpro"
)

// AdvanceDay moves the backend clock to the next business day. Prices
// change, so cached reference data is dropped.
func (c *Client) AdvanceDay(ctx context.Context) error {
	err := c.post(ctx, "/admin/virar-dia", nil, "could not advance the day", nil)
	if err == nil {
		c.FlushCache()
	}
	return err
}

// AdvisorClients lists the clients of the advisor cpf.
func (c *Client) AdvisorClients(ctx context.Context, cpf investpro.CPF) ([]investpro.AdvisorClient, error) {
	var clients []investpro.AdvisorClient
	err := c.get(ctx, "/assessor/"+url.PathEscape(string(cpf))+"/clientes", nil, "could not list the advisor's clients", &clients)
	return clients, err
}

// ManagerTeam lists the advisors of the manager cpf with their clients.
func (c *Client) ManagerTeam(ctx context.Context, cpf investpro.CPF) ([]investpro.TeamMember, error) {
	var team []investpro.TeamMember
	err := c.get(ctx, "/gerente/"+url.PathEscape(string(cpf))+"/equipe", nil, "could not list the manager's team", &team)
	return team, err
}
