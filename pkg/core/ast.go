package core

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// End returns the position of the character immediately after the node.
	End() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// TableRef is a marker interface for FROM-clause items.
type TableRef interface {
	Node
	tableRefNode()
}

// QueryExpr is a marker interface for the operands of a query expression:
// SELECT blocks, set operations, parenthesised queries, TABLE and VALUES.
type QueryExpr interface {
	Node
	queryExprNode()
}

// NodeInfo carries the source span of a node.
type NodeInfo struct {
	Span token.Span
}

// Pos implements Node.
func (n NodeInfo) Pos() token.Position { return n.Span.Start }

// End implements Node.
func (n NodeInfo) End() token.Position { return n.Span.End }

// SpanOf returns the span covered by a node.
func SpanOf(n Node) token.Span {
	return token.Span{Start: n.Pos(), End: n.End()}
}

// Identifier is a name as written in the source. Value is the unquoted text;
// Quoted records whether it was delimited (backticks or double quotes).
// Keywords accepted in identifier position also end up here.
type Identifier struct {
	NodeInfo
	Value  string
	Quoted bool
}

// Name returns the identifier text or "" for a nil identifier.
func (i *Identifier) Name() string {
	if i == nil {
		return ""
	}
	return i.Value
}

// EqualFold compares identifier text case-insensitively.
func (i *Identifier) EqualFold(s string) bool {
	return i != nil && strings.EqualFold(i.Value, s)
}

// Ident is a convenience constructor used by tests and rewriters.
func Ident(s string) *Identifier {
	return &Identifier{Value: s}
}
