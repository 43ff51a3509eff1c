package builder

import (
	"fmt"

	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// BuildError reports a tree the parser accepted but that does not form a
// valid statement. Span and Rule identify the offending node.
type BuildError struct {
	Span    token.Span
	Rule    cst.Rule
	Message string
}

func newBuildError(n *cst.Node, format string, args ...any) *BuildError {
	e := &BuildError{Message: fmt.Sprintf(format, args...)}
	if n != nil {
		e.Span = n.Span
		e.Rule = n.Rule
	}
	return e
}

func (e *BuildError) Error() string {
	pos := e.Span.Start
	return fmt.Sprintf("build error at line %d, column %d (offset %d): %s",
		pos.Line, pos.Column, pos.Offset, e.Message)
}

// Pos returns the position of the offending node.
func (e *BuildError) Pos() token.Position {
	return e.Span.Start
}
