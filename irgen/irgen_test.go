package irgen

import (
	"testing"

	"aot/ir"
	"aot/lexer"
	"aot/parser"
	"aot/typecheck"
)

func generateSource(t *testing.T, src string) []ir.Instruction {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	expr, err := parser.Make(tokens).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := typecheck.Check(expr); err != nil {
		t.Fatalf("typecheck error: %v", err)
	}
	instrs, err := Generate(expr)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	return instrs
}

func TestGenerateStartsAndEndsWithBracketingInstructions(t *testing.T) {
	instrs := generateSource(t, "1")
	if _, ok := instrs[0].(ir.Label); !ok || instrs[0].(ir.Label).Name != "Start" {
		t.Errorf("instrs[0] = %v, want Label(Start)", instrs[0])
	}
	if _, ok := instrs[len(instrs)-1].(ir.Return); !ok {
		t.Errorf("last instruction = %v, want Return", instrs[len(instrs)-1])
	}
}

func TestGenerateImplicitPrintForIntRoot(t *testing.T) {
	instrs := generateSource(t, "1 + 2")
	found := false
	for _, instr := range instrs {
		if call, ok := instr.(ir.Call); ok && call.Fun.Name == "print_int" {
			found = true
		}
	}
	if !found {
		t.Errorf("no implicit print_int call found in %v", instrs)
	}
}

func TestGenerateNoImplicitPrintForVariableDeclaration(t *testing.T) {
	instrs := generateSource(t, "var a = 1")
	for _, instr := range instrs {
		if call, ok := instr.(ir.Call); ok && (call.Fun.Name == "print_int" || call.Fun.Name == "print_bool") {
			t.Errorf("unexpected implicit print for a bare variable declaration: %v", instr)
		}
	}
}

func TestGenerateNoImplicitPrintForWhile(t *testing.T) {
	instrs := generateSource(t, "while false do { }")
	for _, instr := range instrs {
		if call, ok := instr.(ir.Call); ok && (call.Fun.Name == "print_int" || call.Fun.Name == "print_bool") {
			t.Errorf("unexpected implicit print for a while loop: %v", instr)
		}
	}
}

func TestGenerateAssignmentEmitsCopyToSameVar(t *testing.T) {
	instrs := generateSource(t, "var a = 1; a = 2")
	var copies []ir.Copy
	for _, instr := range instrs {
		if c, ok := instr.(ir.Copy); ok {
			copies = append(copies, c)
		}
	}
	if len(copies) < 2 {
		t.Fatalf("expected at least 2 Copy instructions (decl + assignment), got %d", len(copies))
	}
	// The declaration's destination and the assignment's destination must
	// be the same IR variable.
	if copies[0].Dest != copies[len(copies)-1].Dest {
		t.Errorf("assignment copy dest %v does not match declaration dest %v", copies[len(copies)-1].Dest, copies[0].Dest)
	}
}

func TestGenerateShortCircuitAndHasThreeLabels(t *testing.T) {
	instrs := generateSource(t, "true and false")
	labelCount := 0
	for _, instr := range instrs {
		if _, ok := instr.(ir.Label); ok {
			labelCount++
		}
	}
	// "Start" plus the three and/or labels.
	if labelCount < 4 {
		t.Errorf("labelCount = %d, want at least 4", labelCount)
	}
}

func TestGenerateWhileLoopStructure(t *testing.T) {
	instrs := generateSource(t, "while true do { break }")
	var jumps []ir.Jump
	for _, instr := range instrs {
		if j, ok := instr.(ir.Jump); ok {
			jumps = append(jumps, j)
		}
	}
	if len(jumps) == 0 {
		t.Fatal("expected at least one Jump instruction (break)")
	}
}
