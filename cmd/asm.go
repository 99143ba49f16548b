package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"aot/compiler"
)

// AsmCmd implements the "asm" subcommand: compile a source file (or stdin)
// down to assembly text and print it to stdout.
type AsmCmd struct{}

func (*AsmCmd) Name() string     { return "asm" }
func (*AsmCmd) Synopsis() string { return "Compile source to x86-64 assembly and print it" }
func (*AsmCmd) Usage() string {
	return `asm [source_file]:
  Compile a program to assembly and print it to stdout. Reads from
  stdin when source_file is omitted.
`
}
func (*AsmCmd) SetFlags(f *flag.FlagSet) {}

func (c *AsmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var sourcePath string
	if f.NArg() > 0 {
		sourcePath = f.Arg(0)
	}

	src, err := readSource(sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read source: %v\n", err)
		return subcommands.ExitFailure
	}

	asm, err := compiler.CompileToAssembly(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Print(asm)
	return subcommands.ExitSuccess
}
