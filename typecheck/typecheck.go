// Package typecheck walks the AST produced by the parser, decorating each
// node with its type and rejecting programs that violate the language's
// static typing rules.
package typecheck

import (
	"fmt"

	"aot/ast"
	"aot/types"
)

// Check type-checks root in a fresh top-level scope, returning the first
// error encountered. On success every node reachable from root has had
// SetType called with its resolved type.
func Check(root ast.Expression) error {
	return check(root, newScope(nil))
}

func check(expr ast.Expression, sc *scope) error {
	switch e := expr.(type) {
	case *ast.Literal:
		return checkLiteral(e)
	case *ast.Identifier:
		return checkIdentifier(e, sc)
	case *ast.BinaryOp:
		return checkBinaryOp(e, sc)
	case *ast.FunctionExpression:
		return checkFunctionExpression(e, sc)
	case *ast.IfExpression:
		return checkIfExpression(e, sc)
	case *ast.VariableDeclarationExpression:
		return checkVariableDeclaration(e, sc)
	case *ast.BlockExpression:
		return checkBlockExpression(e, sc)
	case *ast.WhileExpression:
		return checkWhileExpression(e, sc)
	case *ast.BreakExpression:
		e.SetType(types.UnitType)
		return nil
	case *ast.ContinueExpression:
		e.SetType(types.UnitType)
		return nil
	default:
		panic(fmt.Sprintf("typecheck: unhandled expression kind %T", expr))
	}
}

func checkLiteral(e *ast.Literal) error {
	switch e.Value.(type) {
	case int64:
		e.SetType(types.IntType)
	case bool:
		e.SetType(types.BoolType)
	case nil:
		e.SetType(types.UnitType)
	default:
		panic(fmt.Sprintf("typecheck: unhandled literal value %#v", e.Value))
	}
	return nil
}

func checkIdentifier(e *ast.Identifier, sc *scope) error {
	t, ok := sc.lookup(e.Name)
	if !ok {
		return errorf(UnknownIdentifier, e.Location(), "unknown identifier %q", e.Name)
	}
	e.SetType(t)
	return nil
}

func checkBinaryOp(e *ast.BinaryOp, sc *scope) error {
	if e.Left == nil {
		return checkUnaryOp(e, sc)
	}

	if err := check(e.Left, sc); err != nil {
		return err
	}
	if err := check(e.Right, sc); err != nil {
		return err
	}

	if e.Op == "=" {
		return checkAssignment(e)
	}

	switch e.Op {
	case "+", "-", "*", "/", "%":
		if !e.Left.Type().Equal(types.IntType) || !e.Right.Type().Equal(types.IntType) {
			return errorf(IncompatibleType, e.Location(), "operator %q requires two Int operands", e.Op)
		}
		e.SetType(types.IntType)
	case "<", "<=", ">", ">=", "==", "!=":
		if !e.Left.Type().Equal(types.IntType) || !e.Right.Type().Equal(types.IntType) {
			return errorf(IncompatibleType, e.Location(), "operator %q requires two Int operands", e.Op)
		}
		e.SetType(types.BoolType)
	case "and", "or":
		if !e.Left.Type().Equal(types.BoolType) || !e.Right.Type().Equal(types.BoolType) {
			return errorf(IncompatibleType, e.Location(), "operator %q requires two Bool operands", e.Op)
		}
		e.SetType(types.BoolType)
	default:
		return errorf(UnknownOperator, e.Location(), "unknown operator %q", e.Op)
	}
	return nil
}

func checkUnaryOp(e *ast.BinaryOp, sc *scope) error {
	if err := check(e.Right, sc); err != nil {
		return err
	}
	switch e.Op {
	case "unary_-":
		if !e.Right.Type().Equal(types.IntType) {
			return errorf(IncompatibleType, e.Location(), "unary \"-\" requires an Int operand")
		}
		e.SetType(types.IntType)
	case "unary_not":
		if !e.Right.Type().Equal(types.BoolType) {
			return errorf(IncompatibleType, e.Location(), "unary \"not\" requires a Bool operand")
		}
		e.SetType(types.BoolType)
	default:
		return errorf(UnknownOperator, e.Location(), "unknown unary operator %q", e.Op)
	}
	return nil
}

func checkAssignment(e *ast.BinaryOp) error {
	ident, ok := e.Left.(*ast.Identifier)
	if !ok {
		return errorf(IncompatibleType, e.Location(), "left-hand side of \"=\" must be an identifier")
	}
	if !e.Left.Type().Equal(e.Right.Type()) {
		return errorf(IncompatibleType, e.Location(), "cannot assign %s to %q of type %s", e.Right.Type(), ident.Name, e.Left.Type())
	}
	if e.Left.Type().IsConst() {
		return errorf(IncompatibleType, e.Location(), "cannot assign to const %q", ident.Name)
	}
	e.SetType(e.Left.Type())
	return nil
}

func checkFunctionExpression(e *ast.FunctionExpression, sc *scope) error {
	for _, arg := range e.Arguments {
		if err := check(arg, sc); err != nil {
			return err
		}
	}

	switch e.Name {
	case "print_int":
		if len(e.Arguments) != 1 {
			return errorf(WrongNumberOfArguments, e.Location(), "print_int expects 1 argument, got %d", len(e.Arguments))
		}
		if !e.Arguments[0].Type().Equal(types.IntType) {
			return errorf(IncompatibleType, e.Location(), "print_int expects an Int argument")
		}
		e.SetType(types.IntType)
	case "print_bool":
		if len(e.Arguments) != 1 {
			return errorf(WrongNumberOfArguments, e.Location(), "print_bool expects 1 argument, got %d", len(e.Arguments))
		}
		if !e.Arguments[0].Type().Equal(types.BoolType) {
			return errorf(IncompatibleType, e.Location(), "print_bool expects a Bool argument")
		}
		e.SetType(types.BoolType)
	case "read_int":
		if len(e.Arguments) != 0 {
			return errorf(WrongNumberOfArguments, e.Location(), "read_int expects 0 arguments, got %d", len(e.Arguments))
		}
		e.SetType(types.IntType)
	default:
		return errorf(UnknownIdentifier, e.Location(), "unknown function %q", e.Name)
	}
	return nil
}

func checkIfExpression(e *ast.IfExpression, sc *scope) error {
	if err := check(e.Condition, sc); err != nil {
		return err
	}
	if !e.Condition.Type().Equal(types.BoolType) {
		return errorf(IncompatibleType, e.Location(), "if condition must be Bool")
	}
	if err := check(e.ThenClause, sc); err != nil {
		return err
	}

	if e.ElseClause == nil {
		e.SetType(types.UnitType)
		return nil
	}

	if err := check(e.ElseClause, sc); err != nil {
		return err
	}
	if !e.ThenClause.Type().Equal(e.ElseClause.Type()) {
		return errorf(IncompatibleType, e.Location(), "if branches have mismatched types %s and %s", e.ThenClause.Type(), e.ElseClause.Type())
	}
	e.SetType(e.ThenClause.Type())
	return nil
}

func checkVariableDeclaration(e *ast.VariableDeclarationExpression, sc *scope) error {
	if err := check(e.Value, sc); err != nil {
		return err
	}

	valueType := e.Value.Type()
	if e.Annotation.Present && !valueType.Equal(e.Annotation.Type) {
		return errorf(IncompatibleType, e.Location(), "declared type %s does not match value type %s", e.Annotation.Type, valueType)
	}

	declaredType := valueType
	if e.IsConst {
		declaredType = types.Const(valueType.BaseName())
	}

	if sc.definedHere(e.Name) {
		return errorf(IncompatibleType, e.Location(), "%q is already declared in this scope", e.Name)
	}

	sc.define(e.Name, declaredType)
	e.SetType(declaredType)
	return nil
}

func checkBlockExpression(e *ast.BlockExpression, sc *scope) error {
	child := newScope(sc)
	for _, stmt := range e.Expressions {
		if err := check(stmt, child); err != nil {
			return err
		}
	}
	if err := check(e.Result, child); err != nil {
		return err
	}
	e.SetType(e.Result.Type())
	return nil
}

func checkWhileExpression(e *ast.WhileExpression, sc *scope) error {
	if err := check(e.Condition, sc); err != nil {
		return err
	}
	if !e.Condition.Type().Equal(types.BoolType) {
		return errorf(IncompatibleType, e.Location(), "while condition must be Bool")
	}
	if err := check(e.Body, sc); err != nil {
		return err
	}
	e.SetType(types.UnitType)
	return nil
}
