// Package compiler wires the lexer, parser, type checker, IR generator and
// assembly generator into a single source-to-assembly pipeline.
package compiler

import (
	"aot/codegen"
	"aot/irgen"
	"aot/lexer"
	"aot/parser"
	"aot/typecheck"
)

// CompileToAssembly runs the full pipeline over src and returns the
// generated assembly text. Any stage's error is returned as-is; each
// stage's Error type already formats a source-aware diagnostic.
func CompileToAssembly(src string) (string, error) {
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		return "", err
	}

	root, err := parser.Make(tokens).Parse()
	if err != nil {
		return "", err
	}

	if err := typecheck.Check(root); err != nil {
		return "", err
	}

	instructions, err := irgen.Generate(root)
	if err != nil {
		return "", err
	}

	asm, err := codegen.Generate(instructions)
	if err != nil {
		return "", err
	}

	return asm, nil
}
