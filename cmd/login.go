package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/investpro"
	"github.com/etnz/investpro/renderer"
	"github.com/google/subcommands"
)

type loginCmd struct {
	profile string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "identify a user by CPF and profile" }
func (*loginCmd) Usage() string {
	return `ipro -cpf <cpf> login [-profile cliente|assessor|gerente]

  Checks the CPF and opens the view of the profile: the account of a client,
  the clients of an advisor or the team of a manager.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.profile, "profile", settings.Profile, "profile: cliente, assessor or gerente")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cpf, err := currentCPF()
	if err != nil {
		return fail(err)
	}
	profile, err := investpro.ParseProfile(c.profile)
	if err != nil {
		return fail(err)
	}
	client, err := newClient()
	if err != nil {
		return fail(err)
	}

	switch profile {
	case investpro.Advisor:
		clients, err := client.AdvisorClients(ctx, cpf)
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.RenderClients(renderer.Clients{Advisor: cpf, Clients: clients}))
	case investpro.Manager:
		team, err := client.ManagerTeam(ctx, cpf)
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.RenderTeam(renderer.Team{Manager: cpf, Members: team}))
	default:
		id, err := client.ResolveAccount(ctx, cpf)
		if err != nil {
			return fail(err)
		}
		fmt.Fprintf(stdout, "Welcome %s, your account is %s.\nexport IPRO_CPF=%s IPRO_ACCOUNT=%s\n", cpf, id, string(cpf), id)
	}
	return subcommands.ExitSuccess
}
