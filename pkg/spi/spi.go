// Package spi provides Service Provider Interface types for dialect grammar
// branches to interact with the parser without circular dependencies.
//
// Handlers build concrete syntax tree nodes (pkg/cst). Every token a handler
// consumes is attached to a node as a leaf, so the tree stays complete.
package spi

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// IdentContext is a position in which a keyword may be accepted as an
// identifier. Which keyword classes are allowed depends on the context.
type IdentContext int

// IdentContext constants.
const (
	// IdentGeneral accepts every non-reserved keyword class.
	IdentGeneral IdentContext = iota
	// IdentLabel is a label position: roles-and-labels and labels keywords are excluded.
	IdentLabel
	// IdentRole is a role position: roles-and-labels and roles keywords are excluded.
	IdentRole
	// IdentLValue is the target of SET: system-variable scope keywords are excluded.
	IdentLValue
)

// ParserOps exposes parser operations to dialect grammar handlers.
// This interface allows dialect-specific code to interact with the parser
// without creating circular dependencies.
type ParserOps interface {
	// Token access
	Token() token.Token
	Peek() token.Token
	PeekN(n int) token.Token

	// Tests (never consume)
	Check(t token.TokenType) bool
	CheckWord(word string) bool
	CheckWords(words ...string) bool

	// Consumption: consumed tokens are attached to n under label
	Consume(n *cst.Node, label string) token.Token
	Match(n *cst.Node, label string, t token.TokenType) bool
	MatchWord(n *cst.Node, label string, word string) bool
	Expect(n *cst.Node, label string, t token.TokenType) error
	ExpectWord(n *cst.Node, label string, word string) error

	// Speculation
	Mark() int
	Reset(mark int)

	// Sub-parsers
	ParseExpression() (*cst.Node, error)
	ParseExpressionList(n *cst.Node, label string) error
	ParseIdentifier(ctx IdentContext) (*cst.Node, error)
	ParseQualifiedName() (*cst.Node, error)
	ParseTableName() (*cst.Node, error)
	ParseTableReferences(n *cst.Node, label string) error
	ParseQuery() (*cst.Node, error)
	ParseStatement() (*cst.Node, error)
	ParseWhere() (*cst.Node, error)
	ParseOrderBy() (*cst.Node, error)
	ParseLimit() (*cst.Node, error)
	ParseWindowSpec() (*cst.Node, error)
	ParseAssignments(n *cst.Node, label string) error
	ParseExportOptions() (*cst.Node, error)
	ParseStringLiteral() (*cst.Node, error)
	IsIdentifier(tok token.Token, ctx IdentContext) bool

	// Error handling
	Unexpected(expected ...string) error
	Errorf(format string, args ...any) error
	Position() token.Position
}

// ClauseHandler parses the body of a clause.
// Called AFTER the clause keyword has been consumed into clause.
type ClauseHandler func(p ParserOps, clause *cst.Node) error

// StatementHandler parses a dialect-specific statement.
// Called BEFORE the leading keyword has been consumed, so the handler can
// attach it to the node it returns.
type StatementHandler func(p ParserOps) (*cst.Node, error)

// InfixHandler parses a dialect-specific infix or postfix operator.
// Called BEFORE the operator has been consumed. left is the already-parsed
// left operand.
type InfixHandler func(p ParserOps, left *cst.Node) (*cst.Node, error)
