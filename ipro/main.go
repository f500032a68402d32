// Command ipro is the command line client of the investment platform.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/investpro/cmd"
	"github.com/etnz/investpro/config"
	"github.com/google/subcommands"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander, cfg)

	cmd.Complete(name)
	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !isCommand(sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func isCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, cmds := range cmd.Commands() {
		for _, c := range cmds {
			if c.Name() == name {
				return true
			}
		}
	}
	return false
}
