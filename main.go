package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"aot/cmd"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&cmd.AsmCmd{}, "")
	subcommands.Register(&cmd.CompileCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
