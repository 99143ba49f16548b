package irgen

import "fmt"

// Kind enumerates the IR generator's error taxonomy. Both cases here are
// defensive: the parser's scope-stack discipline already rejects
// break/continue outside a while loop before irgen ever runs.
type Kind string

const (
	BreakOutsideLoop    Kind = "break-outside-loop"
	ContinueOutsideLoop Kind = "continue-outside-loop"
)

// Error is the single error type the IR generator returns.
type Error struct {
	Kind    Kind
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("💥 IR generation error: %s - %s", e.Kind, e.Message)
}
