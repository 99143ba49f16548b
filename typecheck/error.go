package typecheck

import (
	"fmt"

	"aot/source"
)

// Kind enumerates the type checker's error taxonomy.
type Kind string

const (
	UnknownType            Kind = "unknown-type"
	UnknownOperator        Kind = "unknown-operator"
	UnknownIdentifier      Kind = "unknown-identifier"
	IncompatibleType       Kind = "incompatible-type"
	WrongNumberOfArguments Kind = "wrong-number-of-arguments"
)

// Error is the single error type the type checker returns.
type Error struct {
	Kind    Kind
	Loc     source.Location
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("💥 Type error: %s\n%s - %s", e.Kind, e.Loc, e.Message)
}

func errorf(kind Kind, loc source.Location, format string, args ...any) Error {
	return Error{Kind: kind, Loc: loc, Message: fmt.Sprintf(format, args...)}
}
