// Package parser implements a recursive-descent, precedence-climbing
// parser producing the expression-oriented AST in package ast.
package parser

import (
	"strconv"

	"aot/ast"
	"aot/source"
	"aot/stack"
	"aot/token"
	"aot/types"
)

// ladder is the left-associative binary operator precedence ladder, low to
// high. Index 0 ("or") is handled manually in parseExpression rather than
// through parseBinary, matching the reference grammar's unusual merging of
// assignment, "or", and top-level semicolon-sequencing into one loop.
var ladder = [][]string{
	{"or"},
	{"and"},
	{"==", "!="},
	{"<", "<=", ">", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

// Parser turns a token slice into a single root Expression.
type Parser struct {
	cursor *token.Cursor
	scopes stack.Stack[ScopeTag]
}

// Make constructs a Parser over the given tokens (as produced by the
// lexer, including its trailing End token).
func Make(tokens []token.Token) *Parser {
	return &Parser{cursor: token.NewCursor(tokens)}
}

func (p *Parser) pushScope(tag ScopeTag) { p.scopes.Push(tag) }
func (p *Parser) popScope()              { p.scopes.Pop() }

func (p *Parser) topScope() ScopeTag {
	top, ok := p.scopes.Peek()
	if !ok {
		return TopLevel
	}
	return top
}

func (p *Parser) inWhileScope() bool {
	return p.scopes.Any(func(t ScopeTag) bool { return t == While })
}

// Parse consumes the whole token stream and returns the single root
// expression, or the first parse error encountered.
func (p *Parser) Parse() (ast.Expression, error) {
	if p.cursor.Empty() {
		return ast.NewLiteral(source.None, nil), nil
	}

	p.pushScope(TopLevel)
	result, err := p.parseExpression()
	p.popScope()
	if err != nil {
		return nil, err
	}

	// A top-level program with no trailing ";" or "}" yields an implicit
	// BlockExpression whose last statement is really the program's result;
	// promote it out of Expressions into Result.
	if block, ok := result.(*ast.BlockExpression); ok {
		prev := p.cursor.PrevToken()
		if prev.Text != ";" && prev.Text != "}" && len(block.Expressions) > 0 {
			last := block.Expressions[len(block.Expressions)-1]
			block.Expressions = block.Expressions[:len(block.Expressions)-1]
			block.Result = last
		}
	}

	if p.cursor.Peek().Kind != token.End {
		tok := p.cursor.Peek()
		return nil, errorf(EndOfInputExpected, tok.Loc, "expected end of input, found %q", tok.Text)
	}

	return result, nil
}

// parseExpression implements the reference grammar's single interleaved
// loop for right-associative assignment, left-associative "or", and
// top-level ";"-sequencing into an implicit block.
func (p *Parser) parseExpression() (ast.Expression, error) {
	left, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}

	for {
		if p.cursor.Peek().Text == "=" {
			eqTok := p.cursor.NextToken()
			right, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			left = ast.NewBinaryOp(eqTok.Loc, left, "=", right)
			continue
		}

		if p.cursor.Peek().Text == token.KeywordOr {
			opTok := p.cursor.NextToken()
			right, err := p.parseBinary(1)
			if err != nil {
				return nil, err
			}
			left = ast.NewBinaryOp(opTok.Loc, left, "or", right)
			continue
		}

		if p.topScope() == TopLevel && p.cursor.Peek().Text == ";" {
			p.cursor.NextToken()
			exprs := []ast.Expression{left}
			if p.cursor.Peek().Kind != token.End && p.cursor.Peek().Text != "}" {
				p.pushScope(TopLevelExpression)
				for p.cursor.Peek().Kind != token.End && p.cursor.Peek().Text != "}" {
					e, err := p.parseExpression()
					if err != nil {
						p.popScope()
						return nil, err
					}
					exprs = append(exprs, e)
				}
				p.popScope()
			}
			return ast.NewBlockExpression(left.Location(), exprs, ast.NewLiteral(source.None, nil)), nil
		}

		if p.topScope() == TopLevelExpression && p.cursor.Peek().Text == ";" {
			p.cursor.NextToken()
			return left, nil
		}

		return left, nil
	}
}

// parseBinary implements parse_left_associative_binary_operators: a
// recursive-descent precedence climb that bottoms out at parseLeaf once
// level reaches the end of the ladder.
func (p *Parser) parseBinary(level int) (ast.Expression, error) {
	if level >= len(ladder) {
		return p.parseLeaf()
	}

	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}

	for opIn(ladder[level], p.cursor.Peek()) {
		opTok := p.cursor.NextToken()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOp(opTok.Loc, left, opTok.Text, right)
	}

	return left, nil
}

func opIn(ops []string, tok token.Token) bool {
	for _, op := range ops {
		if tok.Text == op {
			return true
		}
	}
	return false
}

func (p *Parser) parseLeaf() (ast.Expression, error) {
	tok := p.cursor.Peek()

	switch {
	case tok.Text == "(":
		return p.parseParenExpression()
	case tok.Text == "{":
		return p.parseBlockExpression()
	case tok.Text == token.KeywordVar, tok.Text == token.KeywordConst:
		return p.parseVariableDeclaration()
	case tok.Text == token.KeywordIf:
		return p.parseIfExpression()
	case tok.Text == token.KeywordWhile:
		return p.parseWhileExpression()
	case tok.Text == "-", tok.Text == token.KeywordNot:
		return p.parseUnary()
	case tok.Kind == token.IntLiteral:
		p.cursor.NextToken()
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, errorf(WrongToken, tok.Loc, "invalid integer literal %q", tok.Text)
		}
		return ast.NewLiteral(tok.Loc, value), nil
	case tok.Kind == token.BoolLiteral:
		p.cursor.NextToken()
		return ast.NewLiteral(tok.Loc, tok.Text == token.LiteralTrue), nil
	case tok.Text == token.KeywordBreak:
		p.cursor.NextToken()
		if !p.inWhileScope() {
			return nil, errorf(WrongScope, tok.Loc, "'break' used outside of a while loop")
		}
		return ast.NewBreakExpression(tok.Loc), nil
	case tok.Text == token.KeywordContinue:
		p.cursor.NextToken()
		if !p.inWhileScope() {
			return nil, errorf(WrongScope, tok.Loc, "'continue' used outside of a while loop")
		}
		return ast.NewContinueExpression(tok.Loc), nil
	case tok.Kind == token.Identifier:
		p.cursor.NextToken()
		if p.cursor.Peek().Text == "(" {
			return p.parseFunctionCall(tok)
		}
		return ast.NewIdentifier(tok.Loc, tok.Text), nil
	default:
		return nil, errorf(WrongToken, tok.Loc, "unexpected token %q", tok.Text)
	}
}

func (p *Parser) parseParenExpression() (ast.Expression, error) {
	p.cursor.NextToken() // "("
	p.pushScope(Local)
	inner, err := p.parseExpression()
	p.popScope()
	if err != nil {
		return nil, err
	}
	if _, ok := p.cursor.Consume(")"); !ok {
		tok := p.cursor.Peek()
		return nil, errorf(ExpectedLiteral, tok.Loc, "expected \")\", found %q", tok.Text)
	}
	return inner, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	opTok := p.cursor.NextToken()
	op := "unary_-"
	if opTok.Text == token.KeywordNot {
		op = "unary_not"
	}
	operand, err := p.parseLeaf()
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryOp(opTok.Loc, nil, op, operand), nil
}

func (p *Parser) parseFunctionCall(nameTok token.Token) (ast.Expression, error) {
	p.cursor.NextToken() // "("
	p.pushScope(Local)
	defer p.popScope()

	var args []ast.Expression
	for p.cursor.Peek().Text != ")" {
		if len(args) > 0 {
			if _, ok := p.cursor.Consume(","); !ok {
				tok := p.cursor.Peek()
				return nil, errorf(ExpectedOneOf, tok.Loc, "expected \",\" or \")\" in argument list, found %q", tok.Text)
			}
			if p.cursor.Peek().Text == ")" {
				tok := p.cursor.Peek()
				return nil, errorf(WrongToken, tok.Loc, "trailing comma not allowed in argument list")
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.cursor.NextToken() // ")"
	return ast.NewFunctionExpression(nameTok.Loc, nameTok.Text, args), nil
}

func (p *Parser) parseIfExpression() (ast.Expression, error) {
	ifTok := p.cursor.NextToken()
	p.pushScope(Local)
	defer p.popScope()

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, ok := p.cursor.Consume(token.KeywordThen); !ok {
		tok := p.cursor.Peek()
		return nil, errorf(ExpectedLiteral, tok.Loc, "expected \"then\", found %q", tok.Text)
	}
	thenExpr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	var elseExpr ast.Expression
	if _, ok := p.cursor.Consume(token.KeywordElse); ok {
		elseExpr, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	return ast.NewIfExpression(ifTok.Loc, cond, thenExpr, elseExpr), nil
}

func (p *Parser) parseWhileExpression() (ast.Expression, error) {
	whileTok := p.cursor.NextToken()
	p.pushScope(While)
	defer p.popScope()

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, ok := p.cursor.Consume(token.KeywordDo); !ok {
		tok := p.cursor.Peek()
		return nil, errorf(ExpectedLiteral, tok.Loc, "expected \"do\", found %q", tok.Text)
	}
	body, err := p.parseBlockExpression()
	if err != nil {
		return nil, err
	}
	block, ok := body.(*ast.BlockExpression)
	if !ok {
		return nil, errorf(WrongToken, whileTok.Loc, "while body must be a block expression")
	}
	return ast.NewWhileExpression(whileTok.Loc, cond, block), nil
}

// parseBlockExpression implements the block-disambiguation rule: a Block,
// Function, or If result may omit the trailing ";" when directly followed
// by another expression; any other expression kind must either be
// terminated by ";" or be the block's final, brace-closing expression.
func (p *Parser) parseBlockExpression() (ast.Expression, error) {
	lbrace, ok := p.cursor.Consume("{")
	if !ok {
		tok := p.cursor.Peek()
		return nil, errorf(ExpectedLiteral, tok.Loc, "expected \"{\", found %q", tok.Text)
	}
	p.pushScope(Block)
	defer p.popScope()

	var exprs []ast.Expression

	for {
		if _, ok := p.cursor.Consume("}"); ok {
			return ast.NewBlockExpression(lbrace.Loc, exprs, ast.NewLiteral(lbrace.Loc, nil)), nil
		}

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		switch expr.(type) {
		case *ast.BlockExpression, *ast.FunctionExpression, *ast.IfExpression:
			if _, ok := p.cursor.Consume(";"); ok {
				exprs = append(exprs, expr)
				continue
			}
			if _, ok := p.cursor.Consume("}"); ok {
				return ast.NewBlockExpression(lbrace.Loc, exprs, expr), nil
			}
			exprs = append(exprs, expr)
			continue
		default:
			if _, ok := p.cursor.Consume(";"); ok {
				exprs = append(exprs, expr)
				continue
			}
			if _, ok := p.cursor.Consume("}"); ok {
				return ast.NewBlockExpression(lbrace.Loc, exprs, expr), nil
			}
			tok := p.cursor.Peek()
			return nil, errorf(MissingSemicolon, tok.Loc, "expected \";\" or \"}\" after expression, found %q", tok.Text)
		}
	}
}

func (p *Parser) parseVariableDeclaration() (ast.Expression, error) {
	if !declarationAllowedHere(p.topScope()) {
		tok := p.cursor.Peek()
		return nil, errorf(VariableCannotBeDeclared, tok.Loc, "%q declarations are not allowed here", tok.Text)
	}

	kwTok := p.cursor.NextToken()
	isConst := kwTok.Text == token.KeywordConst

	nameTok := p.cursor.Peek()
	if nameTok.Kind != token.Identifier {
		return nil, errorf(WrongToken, nameTok.Loc, "expected variable name, found %q", nameTok.Text)
	}
	p.cursor.NextToken()

	var annotation ast.TypeAnnotation
	if _, ok := p.cursor.Consume(":"); ok {
		annotation, err := p.parseTypeAnnotation()
		if err != nil {
			return nil, err
		}
		return p.finishVariableDeclaration(kwTok, nameTok, annotation, isConst)
	}

	return p.finishVariableDeclaration(kwTok, nameTok, annotation, isConst)
}

func (p *Parser) parseTypeAnnotation() (ast.TypeAnnotation, error) {
	typeTok := p.cursor.Peek()
	if typeTok.Kind != token.Type {
		if typeTok.Kind == token.End {
			return ast.TypeAnnotation{}, errorf(MissingType, typeTok.Loc, "expected a type after \":\"")
		}
		return ast.TypeAnnotation{}, errorf(UnknownType, typeTok.Loc, "unknown type %q", typeTok.Text)
	}
	p.cursor.NextToken()

	switch typeTok.Text {
	case token.TypeInt:
		return ast.TypeAnnotation{Present: true, Type: types.IntType}, nil
	case token.TypeBool:
		return ast.TypeAnnotation{Present: true, Type: types.BoolType}, nil
	default:
		return ast.TypeAnnotation{}, errorf(UnknownType, typeTok.Loc, "unknown type %q", typeTok.Text)
	}
}

func (p *Parser) finishVariableDeclaration(kwTok, nameTok token.Token, annotation ast.TypeAnnotation, isConst bool) (ast.Expression, error) {
	if _, ok := p.cursor.Consume("="); !ok {
		tok := p.cursor.Peek()
		return nil, errorf(ExpectedLiteral, tok.Loc, "expected \"=\" in declaration of %q, found %q", nameTok.Text, tok.Text)
	}

	value, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}

	return ast.NewVariableDeclarationExpression(kwTok.Loc, nameTok.Text, value, annotation, isConst), nil
}
