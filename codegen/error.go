package codegen

import "fmt"

// Kind enumerates the assembly generator's error taxonomy.
type Kind string

const (
	TooManyArguments       Kind = "too-many-arguments"
	WrongNumberOfArguments Kind = "wrong-number-of-arguments"
	UnknownFunction        Kind = "unknown-function"
)

// Error is the single error type the assembly generator returns.
type Error struct {
	Kind    Kind
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("💥 Codegen error: %s - %s", e.Kind, e.Message)
}

func errorf(kind Kind, format string, args ...any) Error {
	return Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
