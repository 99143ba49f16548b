// Package source tracks positions within a compiled source file.
package source

import "fmt"

// Location identifies a single point in a source file by line and column.
// Both are 1-based, matching the convention the lexer reports in
// diagnostics.
type Location struct {
	Line   int
	Column int
}

// None is the zero Location, used when a node has no meaningful source
// position (e.g. synthetic AST nodes introduced by the parser itself).
var None = Location{}

func (l Location) String() string {
	return fmt.Sprintf("line:%d, column:%d", l.Line, l.Column)
}
