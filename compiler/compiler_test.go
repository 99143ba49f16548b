package compiler

import (
	"strings"
	"testing"
)

func TestCompileToAssemblyProducesMainAndReturn(t *testing.T) {
	asm, err := CompileToAssembly("1 + 2")
	if err != nil {
		t.Fatalf("CompileToAssembly returned error: %v", err)
	}
	for _, want := range []string{"main:", "call print_int", "ret"} {
		if !strings.Contains(asm, want) {
			t.Errorf("assembly missing %q\n%s", want, asm)
		}
	}
}

func TestCompileToAssemblyPropagatesLexError(t *testing.T) {
	_, err := CompileToAssembly("1 @ 2")
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

func TestCompileToAssemblyPropagatesParseError(t *testing.T) {
	_, err := CompileToAssembly("(var a = 1)")
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

func TestCompileToAssemblyPropagatesTypeError(t *testing.T) {
	_, err := CompileToAssembly("1 - true")
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

func TestCompileToAssemblyWhileLoopWithBreak(t *testing.T) {
	asm, err := CompileToAssembly("var a = 10; while a > 0 do { a = a - 1; if a == 5 then break; print_int(a); }")
	if err != nil {
		t.Fatalf("CompileToAssembly returned error: %v", err)
	}
	if !strings.Contains(asm, "jmp") {
		t.Errorf("expected loop/break control flow in output:\n%s", asm)
	}
}
