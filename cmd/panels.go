package cmd

import (
	"context"
	"flag"

	"github.com/etnz/investpro/renderer"
	"github.com/google/subcommands"
)

type clientsCmd struct{}

func (*clientsCmd) Name() string     { return "clients" }
func (*clientsCmd) Synopsis() string { return "list the clients of an advisor" }
func (*clientsCmd) Usage() string {
	return `ipro -cpf <advisor cpf> clients

  Lists the clients of the advisor with their balances.
`
}

func (*clientsCmd) SetFlags(*flag.FlagSet) {}

func (*clientsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cpf, err := currentCPF()
	if err != nil {
		return fail(err)
	}
	client, err := newClient()
	if err != nil {
		return fail(err)
	}
	clients, err := client.AdvisorClients(ctx, cpf)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderClients(renderer.Clients{Advisor: cpf, Clients: clients}))
	return subcommands.ExitSuccess
}

type teamCmd struct{}

func (*teamCmd) Name() string     { return "team" }
func (*teamCmd) Synopsis() string { return "list the advisors and clients of a manager" }
func (*teamCmd) Usage() string {
	return `ipro -cpf <manager cpf> team

  Lists every advisor reporting to the manager, with each of their clients.
`
}

func (*teamCmd) SetFlags(*flag.FlagSet) {}

func (*teamCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cpf, err := currentCPF()
	if err != nil {
		return fail(err)
	}
	client, err := newClient()
	if err != nil {
		return fail(err)
	}
	team, err := client.ManagerTeam(ctx, cpf)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderTeam(renderer.Team{Manager: cpf, Members: team}))
	return subcommands.ExitSuccess
}
