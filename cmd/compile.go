package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"aot/assemble"
	"aot/compiler"
)

const defaultOutputPath = "compiled_program"

// CompileCmd implements the "compile" subcommand: compile a source file (or
// stdin) to assembly and link it into an executable via the system
// toolchain.
type CompileCmd struct{}

func (*CompileCmd) Name() string     { return "compile" }
func (*CompileCmd) Synopsis() string { return "Compile source to a linked executable" }
func (*CompileCmd) Usage() string {
	return `compile [source_file] [output_file]:
  Compile a program and link it into an executable. Reads from stdin
  when source_file is omitted. output_file defaults to "compiled_program".
`
}
func (*CompileCmd) SetFlags(f *flag.FlagSet) {}

func (c *CompileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var sourcePath string
	if f.NArg() > 0 {
		sourcePath = f.Arg(0)
	}
	outputPath := defaultOutputPath
	if f.NArg() > 1 {
		outputPath = f.Arg(1)
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

	if err := assemble.Assemble(asm, outputPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
