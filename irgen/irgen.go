// Package irgen lowers a type-checked AST into the flat three-address IR
// defined in package ir.
package irgen

import (
	"fmt"

	"aot/ast"
	"aot/ir"
	"aot/stack"
	"aot/types"
)

var unitVar = ir.Var{Name: "unit"}

type loopState struct {
	start ir.Label
	end   ir.Label
}

// Generator accumulates IR instructions while lowering a single root
// expression. It owns the variable/label counters and the loop-state
// stack consulted by Break/Continue.
type Generator struct {
	instructions []ir.Instruction
	varCounter   int
	labelCounter int
	loops        stack.Stack[loopState]
}

// Generate lowers root (already type-checked, so every node's Type() is
// populated) into a flat instruction list bracketed by Label("Start") and
// Return, emitting an implicit terminal print when applicable.
func Generate(root ast.Expression) ([]ir.Instruction, error) {
	g := &Generator{}
	g.emit(ir.Label{Name: "Start"})

	resultVar, err := g.visit(root, ir.NewSymTab(nil))
	if err != nil {
		return nil, err
	}

	if needsImplicitPrint(root) {
		g.emitImplicitPrint(root, resultVar)
	}

	g.emit(ir.Return{})
	return g.instructions, nil
}

// needsImplicitPrint reports whether the root expression's value should be
// printed automatically. VariableDeclarationExpression is excluded
// explicitly because its Type() may be Int or Bool (the declared type)
// even though declaring a binding has no value to print; While is always
// Unit-typed, so it is excluded for clarity though the type check alone
// would already rule it out.
func needsImplicitPrint(root ast.Expression) bool {
	t := root.Type()
	if !(t.Equal(types.IntType) || t.Equal(types.BoolType)) {
		return false
	}
	switch root.(type) {
	case *ast.WhileExpression, *ast.VariableDeclarationExpression:
		return false
	default:
		return true
	}
}

func (g *Generator) emitImplicitPrint(root ast.Expression, v ir.Var) {
	name := "print_int"
	if root.Type().Equal(types.BoolType) {
		name = "print_bool"
	}
	dest := g.newVar()
	g.emit(ir.Call{Fun: ir.Var{Name: name}, Args: []ir.Var{v}, Dest: dest})
}

func (g *Generator) emit(instr ir.Instruction) {
	g.instructions = append(g.instructions, instr)
}

func (g *Generator) newVar() ir.Var {
	v := ir.Var{Name: fmt.Sprintf("v%d", g.varCounter)}
	g.varCounter++
	return v
}

func (g *Generator) newLabel(hint string) ir.Label {
	l := ir.Label{Name: fmt.Sprintf("%s%d", hint, g.labelCounter)}
	g.labelCounter++
	return l
}

func (g *Generator) visit(expr ast.Expression, sym *ir.SymTab) (ir.Var, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return g.visitLiteral(e)
	case *ast.Identifier:
		return sym.Require(e.Name), nil
	case *ast.BinaryOp:
		return g.visitBinaryOp(e, sym)
	case *ast.FunctionExpression:
		return g.visitFunctionExpression(e, sym)
	case *ast.IfExpression:
		return g.visitIfExpression(e, sym)
	case *ast.BlockExpression:
		return g.visitBlockExpression(e, sym)
	case *ast.VariableDeclarationExpression:
		return g.visitVariableDeclaration(e, sym)
	case *ast.WhileExpression:
		return g.visitWhileExpression(e, sym)
	case *ast.BreakExpression:
		return g.visitBreak()
	case *ast.ContinueExpression:
		return g.visitContinue()
	default:
		panic(fmt.Sprintf("irgen: unhandled expression kind %T", expr))
	}
}

func (g *Generator) visitLiteral(e *ast.Literal) (ir.Var, error) {
	switch v := e.Value.(type) {
	case int64:
		dest := g.newVar()
		g.emit(ir.LoadIntConst{Value: v, Dest: dest})
		return dest, nil
	case bool:
		dest := g.newVar()
		g.emit(ir.LoadBoolConst{Value: v, Dest: dest})
		return dest, nil
	case nil:
		return unitVar, nil
	default:
		panic(fmt.Sprintf("irgen: unhandled literal value %#v", e.Value))
	}
}

func (g *Generator) visitBinaryOp(e *ast.BinaryOp, sym *ir.SymTab) (ir.Var, error) {
	if e.Left == nil {
		rightVar, err := g.visit(e.Right, sym)
		if err != nil {
			return ir.Var{}, err
		}
		dest := g.newVar()
		g.emit(ir.Call{Fun: sym.Require(e.Op), Args: []ir.Var{rightVar}, Dest: dest})
		return dest, nil
	}

	if e.Op == "=" {
		return g.visitAssignment(e, sym)
	}

	if e.Op == "and" || e.Op == "or" {
		return g.visitShortCircuit(e, sym)
	}

	leftVar, err := g.visit(e.Left, sym)
	if err != nil {
		return ir.Var{}, err
	}
	rightVar, err := g.visit(e.Right, sym)
	if err != nil {
		return ir.Var{}, err
	}
	dest := g.newVar()
	g.emit(ir.Call{Fun: sym.Require(e.Op), Args: []ir.Var{leftVar, rightVar}, Dest: dest})
	return dest, nil
}

func (g *Generator) visitAssignment(e *ast.BinaryOp, sym *ir.SymTab) (ir.Var, error) {
	// The type checker has already confirmed e.Left is an Identifier bound
	// to a non-const variable.
	ident := e.Left.(*ast.Identifier)
	leftVar := sym.Require(ident.Name)

	rightVar, err := g.visit(e.Right, sym)
	if err != nil {
		return ir.Var{}, err
	}
	g.emit(ir.Copy{Source: rightVar, Dest: leftVar})
	return leftVar, nil
}

// visitShortCircuit lowers "and"/"or" without evaluating the right operand
// when the left operand already determines the result.
func (g *Generator) visitShortCircuit(e *ast.BinaryOp, sym *ir.SymTab) (ir.Var, error) {
	skip := g.newLabel("and_or_skip")
	right := g.newLabel("and_or_right")
	end := g.newLabel("and_or_end")

	leftVar, err := g.visit(e.Left, sym)
	if err != nil {
		return ir.Var{}, err
	}

	result := g.newVar()

	if e.Op == "and" {
		g.emit(ir.CondJump{Cond: leftVar, ThenLabel: right, ElseLabel: skip})
	} else {
		g.emit(ir.CondJump{Cond: leftVar, ThenLabel: skip, ElseLabel: right})
	}

	g.emit(skip)
	g.emit(ir.LoadBoolConst{Value: e.Op == "or", Dest: result})
	g.emit(ir.Jump{Target: end})

	g.emit(right)
	rightVar, err := g.visit(e.Right, sym)
	if err != nil {
		return ir.Var{}, err
	}
	g.emit(ir.Copy{Source: rightVar, Dest: result})
	g.emit(ir.Jump{Target: end})

	g.emit(end)
	return result, nil
}

func (g *Generator) visitFunctionExpression(e *ast.FunctionExpression, sym *ir.SymTab) (ir.Var, error) {
	args := make([]ir.Var, len(e.Arguments))
	for i, a := range e.Arguments {
		v, err := g.visit(a, sym)
		if err != nil {
			return ir.Var{}, err
		}
		args[i] = v
	}
	dest := g.newVar()
	g.emit(ir.Call{Fun: ir.Var{Name: e.Name}, Args: args, Dest: dest})
	return dest, nil
}

func (g *Generator) visitIfExpression(e *ast.IfExpression, sym *ir.SymTab) (ir.Var, error) {
	condVar, err := g.visit(e.Condition, sym)
	if err != nil {
		return ir.Var{}, err
	}

	if e.ElseClause == nil {
		thenLabel := g.newLabel("if_then")
		endLabel := g.newLabel("if_end")
		g.emit(ir.CondJump{Cond: condVar, ThenLabel: thenLabel, ElseLabel: endLabel})
		g.emit(thenLabel)
		if _, err := g.visit(e.ThenClause, sym); err != nil {
			return ir.Var{}, err
		}
		g.emit(endLabel)
		return unitVar, nil
	}

	thenLabel := g.newLabel("if_then")
	elseLabel := g.newLabel("if_else")
	endLabel := g.newLabel("if_end")
	g.emit(ir.CondJump{Cond: condVar, ThenLabel: thenLabel, ElseLabel: elseLabel})

	result := g.newVar()

	g.emit(thenLabel)
	thenVar, err := g.visit(e.ThenClause, sym)
	if err != nil {
		return ir.Var{}, err
	}
	g.emit(ir.Copy{Source: thenVar, Dest: result})
	g.emit(ir.Jump{Target: endLabel})

	g.emit(elseLabel)
	elseVar, err := g.visit(e.ElseClause, sym)
	if err != nil {
		return ir.Var{}, err
	}
	g.emit(ir.Copy{Source: elseVar, Dest: result})

	g.emit(endLabel)
	return result, nil
}

func (g *Generator) visitBlockExpression(e *ast.BlockExpression, sym *ir.SymTab) (ir.Var, error) {
	child := ir.NewSymTab(sym)
	for _, stmt := range e.Expressions {
		if _, err := g.visit(stmt, child); err != nil {
			return ir.Var{}, err
		}
	}
	return g.visit(e.Result, child)
}

func (g *Generator) visitVariableDeclaration(e *ast.VariableDeclarationExpression, sym *ir.SymTab) (ir.Var, error) {
	valueVar, err := g.visit(e.Value, sym)
	if err != nil {
		return ir.Var{}, err
	}
	dest := g.newVar()
	g.emit(ir.Copy{Source: valueVar, Dest: dest})
	sym.AddLocal(e.Name, dest)
	return dest, nil
}

func (g *Generator) visitWhileExpression(e *ast.WhileExpression, sym *ir.SymTab) (ir.Var, error) {
	startLabel := g.newLabel("while_start")
	bodyLabel := g.newLabel("while_body")
	endLabel := g.newLabel("while_end")

	g.emit(startLabel)
	condVar, err := g.visit(e.Condition, sym)
	if err != nil {
		return ir.Var{}, err
	}
	g.emit(ir.CondJump{Cond: condVar, ThenLabel: bodyLabel, ElseLabel: endLabel})

	g.emit(bodyLabel)
	g.loops.Push(loopState{start: startLabel, end: endLabel})
	child := ir.NewSymTab(sym)
	bodyErr := g.visitBlockBody(e.Body, child)
	g.loops.Pop()
	if bodyErr != nil {
		return ir.Var{}, bodyErr
	}

	g.emit(ir.Jump{Target: startLabel})
	g.emit(endLabel)
	return unitVar, nil
}

func (g *Generator) visitBlockBody(block *ast.BlockExpression, sym *ir.SymTab) error {
	for _, stmt := range block.Expressions {
		if _, err := g.visit(stmt, sym); err != nil {
			return err
		}
	}
	_, err := g.visit(block.Result, sym)
	return err
}

func (g *Generator) visitBreak() (ir.Var, error) {
	top, ok := g.loops.Peek()
	if !ok {
		return ir.Var{}, Error{Kind: BreakOutsideLoop, Message: "'break' used outside of a while loop"}
	}
	g.emit(ir.Jump{Target: top.end})
	return unitVar, nil
}

func (g *Generator) visitContinue() (ir.Var, error) {
	top, ok := g.loops.Peek()
	if !ok {
		return ir.Var{}, Error{Kind: ContinueOutsideLoop, Message: "'continue' used outside of a while loop"}
	}
	g.emit(ir.Jump{Target: top.start})
	return unitVar, nil
}
