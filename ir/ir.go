// Package ir defines the three-address intermediate representation
// produced by irgen and consumed by codegen, together with the
// scope-chained symbol table used while lowering the AST.
package ir

import (
	"fmt"
	"strings"
)

// Var names a memory location or a built-in operator/function. Vars
// compare by value, so two Vars with the same Name refer to the same
// location.
type Var struct {
	Name string
}

func (v Var) String() string { return v.Name }

// builtins is the set of names SymTab.Require resolves without a lookup,
// mirroring the built-in operator and intrinsic vocabulary of the
// assembly generator's intrinsic dispatch table.
var builtins = map[string]bool{
	"=": true, "+": true, "-": true, "*": true, "/": true, "%": true,
	">": true, "<": true, ">=": true, "<=": true, "==": true, "!=": true,
	"unary_-": true, "unary_not": true,
	"and": true, "or": true,
	"print_int": true, "print_bool": true, "read_int": true,
}

// SymTab is a scope-chained binding of source identifiers to IR Vars. A
// nil parent marks the outermost scope.
type SymTab struct {
	symbols []symbolBinding
	parent  *SymTab
}

type symbolBinding struct {
	name string
	v    Var
}

// NewSymTab creates a new scope nested inside parent. parent may be nil.
func NewSymTab(parent *SymTab) *SymTab {
	return &SymTab{parent: parent}
}

// AddLocal binds symbol to v in this scope. It panics if symbol is
// already bound in this exact scope, matching the reference
// implementation's "already defined" invariant; callers validate this
// during type checking, where it surfaces as a proper diagnostic instead.
func (t *SymTab) AddLocal(symbol string, v Var) {
	if t.definedHere(symbol) {
		panic(fmt.Sprintf("ir: symbol %q already defined in this scope", symbol))
	}
	t.symbols = append(t.symbols, symbolBinding{name: symbol, v: v})
}

func (t *SymTab) definedHere(symbol string) bool {
	for _, b := range t.symbols {
		if b.name == symbol {
			return true
		}
	}
	return false
}

// Find searches this scope and its ancestors for symbol, returning the
// bound Var and true, or the zero Var and false.
func (t *SymTab) Find(symbol string) (Var, bool) {
	for s := t; s != nil; s = s.parent {
		for _, b := range s.symbols {
			if b.name == symbol {
				return b.v, true
			}
		}
	}
	return Var{}, false
}

// Require resolves name to a Var, treating built-in operator and
// intrinsic names as always bound. It panics if name is neither a
// built-in nor found in scope; this is an internal-invariant failure,
// since the type checker rejects unresolved identifiers before irgen
// ever runs.
func (t *SymTab) Require(name string) Var {
	if builtins[name] {
		return Var{Name: name}
	}
	if v, ok := t.Find(name); ok {
		return v
	}
	panic(fmt.Sprintf("ir: symbol %q not found", name))
}

// Instruction is implemented by every IR instruction kind. instrNode is
// unexported so the set of instruction kinds is closed to this package.
type Instruction interface {
	instrNode()
	String() string
}

// Label marks a jump destination.
type Label struct {
	Name string
}

func (Label) instrNode() {}
func (l Label) String() string { return fmt.Sprintf("Label(%s)", l.Name) }

// LoadIntConst loads an integer constant into Dest.
type LoadIntConst struct {
	Value int64
	Dest  Var
}

func (LoadIntConst) instrNode() {}
func (i LoadIntConst) String() string {
	return fmt.Sprintf("LoadIntConst(%d, %s)", i.Value, i.Dest)
}

// LoadBoolConst loads a boolean constant into Dest.
type LoadBoolConst struct {
	Value bool
	Dest  Var
}

func (LoadBoolConst) instrNode() {}
func (i LoadBoolConst) String() string {
	return fmt.Sprintf("LoadBoolConst(%t, %s)", i.Value, i.Dest)
}

// Copy copies Source into Dest.
type Copy struct {
	Source Var
	Dest   Var
}

func (Copy) instrNode() {}
func (i Copy) String() string { return fmt.Sprintf("Copy(%s, %s)", i.Source, i.Dest) }

// Call invokes Fun (a built-in operator or intrinsic) with Args, storing
// the result in Dest.
type Call struct {
	Fun  Var
	Args []Var
	Dest Var
}

func (Call) instrNode() {}
func (i Call) String() string {
	args := make([]string, len(i.Args))
	for k, a := range i.Args {
		args[k] = a.String()
	}
	return fmt.Sprintf("Call(%s, [%s], %s)", i.Fun, strings.Join(args, ", "), i.Dest)
}

// Jump unconditionally transfers control to Target.
type Jump struct {
	Target Label
}

func (Jump) instrNode() {}
func (i Jump) String() string { return fmt.Sprintf("Jump(%s)", i.Target) }

// CondJump transfers control to ThenLabel if Cond is true at runtime,
// otherwise to ElseLabel.
type CondJump struct {
	Cond      Var
	ThenLabel Label
	ElseLabel Label
}

func (CondJump) instrNode() {}
func (i CondJump) String() string {
	return fmt.Sprintf("CondJump(%s, %s, %s)", i.Cond, i.ThenLabel, i.ElseLabel)
}

// Return ends execution of the generated program.
type Return struct{}

func (Return) instrNode() {}
func (Return) String() string { return "Return()" }
