package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/investpro/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "read the ipro documentation" }
func (*topicCmd) Usage() string {
	return `ipro topic [-l] [<topic>...]

  Prints the documentation topics given, "*" for all of them. Without a
  topic, prints the introduction and the list of topics.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "l", false, "only list the topic names")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		names, err := docs.GetAllTopics()
		if err != nil {
			return fail(err)
		}
		for _, name := range names {
			fmt.Fprintln(stdout, name)
		}
		return subcommands.ExitSuccess
	}

	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}
	doc, err := docs.GetTopics(names...)
	if err != nil {
		return fail(err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
