package parser

import (
	"fmt"

	"aot/source"
)

// Kind enumerates the parse error taxonomy from the error handling design.
type Kind string

const (
	EndOfInputExpected       Kind = "end-of-input-expected"
	ExpectedLiteral          Kind = "expected-literal"
	ExpectedOneOf            Kind = "expected-one-of"
	WrongToken               Kind = "wrong-token"
	MissingSemicolon         Kind = "missing-semicolon"
	VariableCannotBeDeclared Kind = "variable-cannot-be-declared-here"
	MissingType              Kind = "missing-type"
	UnknownType              Kind = "unknown-type"
	WrongScope               Kind = "wrong-scope"
)

// Error is the single error type the parser returns. Parsing is fatal on
// the first error, matching the reference implementation's exception-based
// control flow.
type Error struct {
	Kind    Kind
	Loc     source.Location
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("💥 Parse error: %s\n%s - %s", e.Kind, e.Loc, e.Message)
}

func errorf(kind Kind, loc source.Location, format string, args ...any) Error {
	return Error{Kind: kind, Loc: loc, Message: fmt.Sprintf(format, args...)}
}
