// Package ast defines the expression-oriented abstract syntax tree produced
// by the parser and decorated in place by the type checker.
//
// Every node kind is a distinct struct implementing Expression; the set is
// closed, so downstream stages use exhaustive Go type switches rather than
// a visitor-object hierarchy.
package ast

import (
	"aot/source"
	"aot/types"
)

// Expression is implemented by every AST node kind. exprNode is unexported
// so the set of expression kinds cannot grow outside this package.
type Expression interface {
	exprNode()
	Location() source.Location
	// Type returns the node's type slot. It is types.Unit until the type
	// checker overwrites it via SetType.
	Type() types.Type
	SetType(types.Type)
}

// base is embedded by every concrete node to provide the Location/Type
// bookkeeping common to all of them.
type base struct {
	Loc source.Location
	typ types.Type
}

func (b *base) Location() source.Location { return b.Loc }
func (b *base) Type() types.Type {
	if b.typ == nil {
		return types.UnitType
	}
	return b.typ
}
func (b *base) SetType(t types.Type) { b.typ = t }

// LiteralValue is the Go-side representation of a Literal's value: an int64
// for Int, a bool for Bool, or nil for Unit.
type LiteralValue = any

// Literal is an integer, boolean, or unit constant.
type Literal struct {
	base
	Value LiteralValue
}

func (*Literal) exprNode() {}

// NewLiteral constructs a Literal at the given location.
func NewLiteral(loc source.Location, value LiteralValue) *Literal {
	return &Literal{base: base{Loc: loc}, Value: value}
}

// Identifier is a reference to a previously bound name.
type Identifier struct {
	base
	Name string
}

func (*Identifier) exprNode() {}

func NewIdentifier(loc source.Location, name string) *Identifier {
	return &Identifier{base: base{Loc: loc}, Name: name}
}

// BinaryOp covers both binary operators (Left present) and unary prefix
// operators (Left nil, Op one of "unary_-", "unary_not").
type BinaryOp struct {
	base
	Left  Expression // nil for unary forms
	Op    string
	Right Expression
}

func (*BinaryOp) exprNode() {}

func NewBinaryOp(loc source.Location, left Expression, op string, right Expression) *BinaryOp {
	return &BinaryOp{base: base{Loc: loc}, Left: left, Op: op, Right: right}
}

// IfExpression is `if COND then THEN [else ELSE]`. Else is nil when absent.
type IfExpression struct {
	base
	Condition  Expression
	ThenClause Expression
	ElseClause Expression // nil if absent
}

func (*IfExpression) exprNode() {}

func NewIfExpression(loc source.Location, cond, then, els Expression) *IfExpression {
	return &IfExpression{base: base{Loc: loc}, Condition: cond, ThenClause: then, ElseClause: els}
}

// FunctionExpression is a call to one of the built-in I/O primitives.
type FunctionExpression struct {
	base
	Name      string
	Arguments []Expression
}

func (*FunctionExpression) exprNode() {}

func NewFunctionExpression(loc source.Location, name string, args []Expression) *FunctionExpression {
	return &FunctionExpression{base: base{Loc: loc}, Name: name, Arguments: args}
}

// BlockExpression is a `{ ... }` block. Result is never nil; an empty block
// has Result set to a Literal(nil) (Unit).
type BlockExpression struct {
	base
	Expressions []Expression
	Result      Expression
}

func (*BlockExpression) exprNode() {}

func NewBlockExpression(loc source.Location, exprs []Expression, result Expression) *BlockExpression {
	return &BlockExpression{base: base{Loc: loc}, Expressions: exprs, Result: result}
}

// TypeAnnotation names a declared type in a var/const declaration. It is
// one of IntTypeExpression/BoolTypeExpression/UnitTypeExpression in the
// original taxonomy; here it is simply the declared types.Type, since the
// annotation carries no other information once parsed.
type TypeAnnotation struct {
	Present bool
	Type    types.Type
}

// VariableDeclarationExpression is a `var`/`const` binding.
type VariableDeclarationExpression struct {
	base
	Name       string
	Value      Expression
	Annotation TypeAnnotation
	IsConst    bool
}

func (*VariableDeclarationExpression) exprNode() {}

func NewVariableDeclarationExpression(loc source.Location, name string, value Expression, ann TypeAnnotation, isConst bool) *VariableDeclarationExpression {
	return &VariableDeclarationExpression{base: base{Loc: loc}, Name: name, Value: value, Annotation: ann, IsConst: isConst}
}

// WhileExpression is `while COND do BODY`.
type WhileExpression struct {
	base
	Condition Expression
	Body      *BlockExpression
}

func (*WhileExpression) exprNode() {}

func NewWhileExpression(loc source.Location, cond Expression, body *BlockExpression) *WhileExpression {
	return &WhileExpression{base: base{Loc: loc}, Condition: cond, Body: body}
}

// BreakExpression and ContinueExpression exit or restart the nearest
// enclosing while loop.
type BreakExpression struct{ base }

func (*BreakExpression) exprNode() {}

func NewBreakExpression(loc source.Location) *BreakExpression {
	return &BreakExpression{base: base{Loc: loc}}
}

type ContinueExpression struct{ base }

func (*ContinueExpression) exprNode() {}

func NewContinueExpression(loc source.Location) *ContinueExpression {
	return &ContinueExpression{base: base{Loc: loc}}
}
