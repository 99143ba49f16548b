package parser

import (
	"testing"

	"aot/ast"
	"aot/lexer"
)

func parseSource(t *testing.T, src string) (ast.Expression, error) {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	return Make(tokens).Parse()
}

func mustParse(t *testing.T, src string) ast.Expression {
	t.Helper()
	expr, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return expr
}

func TestParseIntLiteral(t *testing.T) {
	expr := mustParse(t, "1")
	lit, ok := expr.(*ast.Literal)
	if !ok {
		t.Fatalf("got %T, want *ast.Literal", expr)
	}
	if lit.Value != int64(1) {
		t.Errorf("Value = %v, want int64(1)", lit.Value)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3)
	expr := mustParse(t, "1 + 2 * 3")
	top, ok := expr.(*ast.BinaryOp)
	if !ok || top.Op != "+" {
		t.Fatalf("got %#v, want top-level \"+\"", expr)
	}
	right, ok := top.Right.(*ast.BinaryOp)
	if !ok || right.Op != "*" {
		t.Fatalf("right operand = %#v, want \"*\"", top.Right)
	}
}

func TestParseAssignmentIsRightAssociativeAndLoosest(t *testing.T) {
	expr := mustParse(t, "a = b or c")
	top, ok := expr.(*ast.BinaryOp)
	if !ok || top.Op != "=" {
		t.Fatalf("got %#v, want top-level \"=\"", expr)
	}
	right, ok := top.Right.(*ast.BinaryOp)
	if !ok || right.Op != "or" {
		t.Fatalf("rhs of \"=\" = %#v, want \"or\" expression", top.Right)
	}
}

func TestParseOrBindsBeforeAssignment(t *testing.T) {
	expr := mustParse(t, "a or b = c")
	top, ok := expr.(*ast.BinaryOp)
	if !ok || top.Op != "=" {
		t.Fatalf("got %#v, want top-level \"=\"", expr)
	}
	left, ok := top.Left.(*ast.BinaryOp)
	if !ok || left.Op != "or" {
		t.Fatalf("lhs of \"=\" = %#v, want \"or\" expression", top.Left)
	}
}

func TestParseUnaryChaining(t *testing.T) {
	expr := mustParse(t, "- - 5")
	outer, ok := expr.(*ast.BinaryOp)
	if !ok || outer.Op != "unary_-" || outer.Left != nil {
		t.Fatalf("got %#v, want outer unary_-", expr)
	}
	inner, ok := outer.Right.(*ast.BinaryOp)
	if !ok || inner.Op != "unary_-" || inner.Left != nil {
		t.Fatalf("got %#v, want inner unary_-", outer.Right)
	}
}

func TestParseIfThenElse(t *testing.T) {
	expr := mustParse(t, "if true then 1 else 2")
	ifExpr, ok := expr.(*ast.IfExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.IfExpression", expr)
	}
	if ifExpr.ElseClause == nil {
		t.Errorf("ElseClause is nil, want present")
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	expr := mustParse(t, "if true then 1")
	ifExpr, ok := expr.(*ast.IfExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.IfExpression", expr)
	}
	if ifExpr.ElseClause != nil {
		t.Errorf("ElseClause = %#v, want nil", ifExpr.ElseClause)
	}
}

func TestParseBlockTailResultWithoutSemicolon(t *testing.T) {
	expr := mustParse(t, "{ var x = 1; x }")
	block, ok := expr.(*ast.BlockExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.BlockExpression", expr)
	}
	if len(block.Expressions) != 1 {
		t.Fatalf("len(Expressions) = %d, want 1", len(block.Expressions))
	}
	if _, ok := block.Result.(*ast.Identifier); !ok {
		t.Errorf("Result = %#v, want *ast.Identifier", block.Result)
	}
}

func TestParseEmptyBlockIsUnit(t *testing.T) {
	expr := mustParse(t, "{}")
	block, ok := expr.(*ast.BlockExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.BlockExpression", expr)
	}
	lit, ok := block.Result.(*ast.Literal)
	if !ok || lit.Value != nil {
		t.Errorf("Result = %#v, want Unit literal", block.Result)
	}
}

func TestParseIfWithoutSemicolonFollowedByExpression(t *testing.T) {
	// The if-expression needs no trailing ";" before the next statement.
	expr := mustParse(t, "{ if true then 1 else 2 3 }")
	block, ok := expr.(*ast.BlockExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.BlockExpression", expr)
	}
	if len(block.Expressions) != 1 {
		t.Fatalf("len(Expressions) = %d, want 1", len(block.Expressions))
	}
	if _, ok := block.Expressions[0].(*ast.IfExpression); !ok {
		t.Errorf("Expressions[0] = %#v, want *ast.IfExpression", block.Expressions[0])
	}
	lit, ok := block.Result.(*ast.Literal)
	if !ok || lit.Value != int64(3) {
		t.Errorf("Result = %#v, want Literal(3)", block.Result)
	}
}

func TestParseWhileDo(t *testing.T) {
	expr := mustParse(t, "while true do { break }")
	whileExpr, ok := expr.(*ast.WhileExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.WhileExpression", expr)
	}
	if len(whileExpr.Body.Expressions) != 0 {
		t.Fatalf("body Expressions len = %d, want 0", len(whileExpr.Body.Expressions))
	}
	if _, ok := whileExpr.Body.Result.(*ast.BreakExpression); !ok {
		t.Errorf("Result = %#v, want *ast.BreakExpression", whileExpr.Body.Result)
	}
}

func TestParseBreakOutsideWhileIsError(t *testing.T) {
	_, err := parseSource(t, "break")
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	perr, ok := err.(Error)
	if !ok || perr.Kind != WrongScope {
		t.Errorf("got %#v, want Kind == WrongScope", err)
	}
}

func TestParseFunctionCall(t *testing.T) {
	expr := mustParse(t, "print_int(1)")
	call, ok := expr.(*ast.FunctionExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionExpression", expr)
	}
	if call.Name != "print_int" || len(call.Arguments) != 1 {
		t.Errorf("got %#v", call)
	}
}

func TestParseFunctionCallTrailingCommaIsError(t *testing.T) {
	_, err := parseSource(t, "print_int(1,)")
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

func TestParseVariableDeclarationWithTypeAnnotation(t *testing.T) {
	expr := mustParse(t, "var x: Int = 1")
	decl, ok := expr.(*ast.VariableDeclarationExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.VariableDeclarationExpression", expr)
	}
	if !decl.Annotation.Present || decl.Annotation.Type.String() != "Int" {
		t.Errorf("Annotation = %#v, want present Int", decl.Annotation)
	}
	if decl.IsConst {
		t.Errorf("IsConst = true, want false")
	}
}

func TestParseConstDeclaration(t *testing.T) {
	expr := mustParse(t, "const pi = 3")
	decl, ok := expr.(*ast.VariableDeclarationExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.VariableDeclarationExpression", expr)
	}
	if !decl.IsConst {
		t.Errorf("IsConst = false, want true")
	}
}

func TestParseDeclarationInsideParensIsError(t *testing.T) {
	_, err := parseSource(t, "(var a = 1)")
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	perr, ok := err.(Error)
	if !ok || perr.Kind != VariableCannotBeDeclared {
		t.Errorf("got %#v, want Kind == VariableCannotBeDeclared", err)
	}
}

func TestParseTopLevelSemicolonSequenceBuildsBlock(t *testing.T) {
	expr := mustParse(t, "var a = 1; var b = 2; a + b")
	block, ok := expr.(*ast.BlockExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.BlockExpression", expr)
	}
	if len(block.Expressions) != 2 {
		t.Fatalf("len(Expressions) = %d, want 2", len(block.Expressions))
	}
	if _, ok := block.Result.(*ast.BinaryOp); !ok {
		t.Errorf("Result = %#v, want *ast.BinaryOp", block.Result)
	}
}

func TestParseTopLevelTrailingSemicolonYieldsUnitResult(t *testing.T) {
	expr := mustParse(t, "var a = 1;")
	block, ok := expr.(*ast.BlockExpression)
	if !ok {
		t.Fatalf("got %T, want *ast.BlockExpression", expr)
	}
	lit, ok := block.Result.(*ast.Literal)
	if !ok || lit.Value != nil {
		t.Errorf("Result = %#v, want Unit literal", block.Result)
	}
}

func TestParseTrailingGarbageIsError(t *testing.T) {
	_, err := parseSource(t, "1 2")
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	perr, ok := err.(Error)
	if !ok || perr.Kind != EndOfInputExpected {
		t.Errorf("got %#v, want Kind == EndOfInputExpected", err)
	}
}
