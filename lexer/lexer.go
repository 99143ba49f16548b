// Package lexer turns source text into a token stream.
package lexer

import (
	"fmt"

	"aot/source"
	"aot/token"
)

func isLetter(char rune) bool {
	return rune('a') <= char && char <= rune('z') || rune('A') <= char && char <= rune('Z') || char == rune('_')
}

func isDigit(char rune) bool {
	return rune('0') <= char && char <= rune('9')
}

func isIdentifierChar(char rune) bool {
	return isLetter(char) || isDigit(char)
}

// Lexer scans source text one rune at a time, recording tokens and their
// positions as it goes.
type Lexer struct {
	characters []rune
	totalChars int

	tokens []token.Token

	// position of the character under the cursor; readPosition is one past
	// it, so characters[position] == currentChar after every readChar.
	position     int
	readPosition int
	currentChar  rune

	line   int
	column int
}

// New creates a Lexer over the given source text.
func New(input string) *Lexer {
	lex := &Lexer{
		characters: []rune(input),
		line:       1,
		column:     0,
	}
	lex.totalChars = len(lex.characters)
	lex.readChar()
	return lex
}

func (lex *Lexer) isFinished() bool {
	return lex.readPosition > lex.totalChars
}

func (lex *Lexer) readChar() {
	if lex.readPosition >= lex.totalChars {
		lex.currentChar = rune(0)
	} else {
		lex.currentChar = lex.characters[lex.readPosition]
	}
	lex.position = lex.readPosition
	lex.readPosition++
	lex.column++
}

func (lex *Lexer) peek() rune {
	if lex.readPosition >= lex.totalChars {
		return rune(0)
	}
	return lex.characters[lex.readPosition]
}

func (lex *Lexer) loc() source.Location {
	return source.Location{Line: lex.line, Column: lex.column}
}

func (lex *Lexer) isWhiteSpace(char rune) bool {
	return char == ' ' || char == '\r' || char == '\t' || char == '\n'
}

func (lex *Lexer) skipWhiteSpace() {
	for !lex.isFinished() && lex.isWhiteSpace(lex.currentChar) {
		if lex.currentChar == '\n' {
			lex.line++
			lex.column = 0
		}
		lex.readChar()
	}
}

// skipComment consumes a comment starting at the current character,
// reporting whether one was actually found. Handles `#`/`//` to end of
// line and non-greedy `/* ... */`.
func (lex *Lexer) skipComment() (bool, error) {
	if lex.currentChar == '#' {
		for !lex.isFinished() && lex.currentChar != '\n' {
			lex.readChar()
		}
		return true, nil
	}
	if lex.currentChar == '/' && lex.peek() == '/' {
		for !lex.isFinished() && lex.currentChar != '\n' {
			lex.readChar()
		}
		return true, nil
	}
	if lex.currentChar == '/' && lex.peek() == '*' {
		startLine, startCol := lex.line, lex.column
		lex.readChar()
		lex.readChar()
		for {
			if lex.isFinished() {
				return true, fmt.Errorf("unterminated block comment starting at line %d, column %d", startLine, startCol)
			}
			if lex.currentChar == '*' && lex.peek() == '/' {
				lex.readChar()
				lex.readChar()
				return true, nil
			}
			if lex.currentChar == '\n' {
				lex.line++
				lex.column = 0
			}
			lex.readChar()
		}
	}
	return false, nil
}

func (lex *Lexer) readIdentifierOrKeyword() token.Token {
	loc := lex.loc()
	start := lex.position
	for !lex.isFinished() && isIdentifierChar(lex.currentChar) {
		lex.readChar()
	}
	text := string(lex.characters[start:lex.position])

	switch text {
	case token.TypeInt, token.TypeBool:
		return token.New(token.Type, text, loc)
	case token.LiteralTrue, token.LiteralFalse:
		return token.New(token.BoolLiteral, text, loc)
	default:
		return token.New(token.Identifier, text, loc)
	}
}

func (lex *Lexer) readNumber() token.Token {
	loc := lex.loc()
	start := lex.position
	for !lex.isFinished() && isDigit(lex.currentChar) {
		lex.readChar()
	}
	text := string(lex.characters[start:lex.position])
	return token.New(token.IntLiteral, text, loc)
}

var twoCharOperators = []string{"==", "!=", "<=", ">="}
var oneCharOperators = "=<>+-*/%"
var punctuation = "(){},;:"

func (lex *Lexer) readOperatorOrPunctuation() (token.Token, error) {
	loc := lex.loc()
	first := lex.currentChar
	second := lex.peek()

	for _, op := range twoCharOperators {
		if rune(op[0]) == first && rune(op[1]) == second {
			lex.readChar()
			lex.readChar()
			return token.New(token.Operator, op, loc), nil
		}
	}

	for _, r := range oneCharOperators {
		if r == first {
			lex.readChar()
			return token.New(token.Operator, string(first), loc), nil
		}
	}

	for _, r := range punctuation {
		if r == first {
			lex.readChar()
			return token.New(token.Punctuation, string(first), loc), nil
		}
	}

	lex.readChar()
	return token.Token{}, fmt.Errorf("unrecognized byte %q at line %d, column %d", string(first), loc.Line, loc.Column)
}

// Scan lexes the full input and returns the resulting tokens (terminated by
// an End token) or the first lexical error encountered.
func (lex *Lexer) Scan() ([]token.Token, error) {
	for {
		lex.skipWhiteSpace()
		if lex.isFinished() {
			break
		}

		if consumed, err := lex.skipComment(); err != nil {
			return lex.tokens, err
		} else if consumed {
			continue
		}

		switch {
		case isLetter(lex.currentChar):
			lex.tokens = append(lex.tokens, lex.readIdentifierOrKeyword())
		case isDigit(lex.currentChar):
			lex.tokens = append(lex.tokens, lex.readNumber())
		default:
			tok, err := lex.readOperatorOrPunctuation()
			if err != nil {
				return lex.tokens, err
			}
			lex.tokens = append(lex.tokens, tok)
		}
	}

	lex.tokens = append(lex.tokens, token.New(token.End, "", lex.loc()))
	return lex.tokens, nil
}
