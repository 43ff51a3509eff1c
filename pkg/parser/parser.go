// Package parser turns SQL text into a concrete syntax tree for one dialect.
//
// # Usage
//
//	toks, err := parser.Tokenize("SELECT a, b FROM t", d)
//	if err != nil {
//	    // *parser.LexError
//	}
//	tree, err := parser.ParseTokens(toks, d)
//	if err != nil {
//	    // *parser.ParseError
//	}
//
// The dialect is required. Use the dialect registry to resolve one by name:
//
//	d, err := dialect.Resolve("mysql")
//
// # Grammar Overview
//
// The parser is a recursive descent parser with unbounded lookahead over the
// token slice and speculative parsing (Mark/Reset) where the grammar is not
// LL(1):
//
//	statement     → select_stmt | insert | replace | update | delete | call
//	              | dialect statement
//	select_stmt   → [WITH cte_list] query_expr [ORDER BY ...] [LIMIT ...]
//	                [INTO ...] {lock_clause} [INTO ...]
//	query_expr    → query_term {(UNION|EXCEPT) [ALL|DISTINCT] query_term}
//	query_term    → query_primary {INTERSECT [ALL|DISTINCT] query_primary}
//	query_primary → query_spec | '(' select_stmt ')' | TABLE t | VALUES row_list
//	query_spec    → SELECT [options] select_list [INTO ...] [FROM refs]
//	                dialect clause sequence (WHERE, GROUP BY, HAVING, WINDOW)
//
// Every consumed token is attached to the tree, so each node's span is exactly
// the source range it was parsed from. Parsing is all-or-nothing: on failure
// no tree is returned.
//
// See each file for the grammar rules of that section.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Parser parses a token slice into a concrete syntax tree.
type Parser struct {
	d      *dialect.Dialect
	toks   []token.Token
	pos    int
	depth  int
	limits Limits
}

var _ spi.ParserOps = (*Parser)(nil)

// NewParser creates a parser over tokens. A missing trailing EOF is added.
func NewParser(tokens []token.Token, d *dialect.Dialect, opts ...Option) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Type != token.EOF {
		eof := token.Token{Type: token.EOF}
		if n > 0 {
			eof.Pos = tokens[n-1].End
			eof.End = tokens[n-1].End
		}
		tokens = append(tokens[:n:n], eof)
	}
	return &Parser{d: d, toks: tokens, limits: buildLimits(opts)}
}

// Parse lexes and parses a single statement.
func Parse(text string, d *dialect.Dialect, opts ...Option) (*cst.Node, error) {
	toks, err := Tokenize(text, d, opts...)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks, d, opts...)
}

// ParseTokens parses exactly one statement, optionally followed by a
// semicolon.
func ParseTokens(tokens []token.Token, d *dialect.Dialect, opts ...Option) (*cst.Node, error) {
	p := NewParser(tokens, d, opts...)
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	p.Match(nil, "", token.SEMICOLON)
	if !p.Check(token.EOF) {
		return nil, p.Unexpected("end of statement")
	}
	return stmt, nil
}

// ParseScript parses statements separated by semicolons. Empty statements
// are skipped. The result is a RuleScript node with one "stmt" child per
// statement; it has no children when the script is empty.
func ParseScript(tokens []token.Token, d *dialect.Dialect, opts ...Option) (*cst.Node, error) {
	p := NewParser(tokens, d, opts...)
	script := cst.New(cst.RuleScript)
	for {
		for p.Match(nil, "", token.SEMICOLON) {
		}
		if p.Check(token.EOF) {
			return script, nil
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		script.Add("stmt", stmt)
		if !p.Check(token.EOF) && !p.Check(token.SEMICOLON) {
			return nil, p.Unexpected("';'", "end of input")
		}
	}
}

// Dialect returns the parser's dialect.
func (p *Parser) Dialect() *dialect.Dialect {
	return p.d
}

// ---------- Nesting ----------

// enter records one level of nesting and fails once MaxDepth is exceeded.
func (p *Parser) enter() error {
	p.depth++
	if p.limits.MaxDepth > 0 && p.depth > p.limits.MaxDepth {
		tok := p.Token()
		return &ParseError{
			Pos:     tok.Pos,
			Found:   tok,
			Message: ErrDepthExceeded.Error(),
			Err:     ErrDepthExceeded,
		}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// ---------- spi.ParserOps Implementation ----------
// These methods implement the spi.ParserOps interface for dialect grammar
// handlers; the shared grammar uses them too.

// Token returns the current token.
func (p *Parser) Token() token.Token {
	return p.toks[p.pos]
}

// Peek returns the token after the current one.
func (p *Parser) Peek() token.Token {
	return p.PeekN(1)
}

// PeekN returns the token n positions after the current one. PeekN(0) is the
// current token; positions past the end yield EOF.
func (p *Parser) PeekN(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return p.toks[i]
}

// Check reports whether the current token has type t.
func (p *Parser) Check(t token.TokenType) bool {
	return p.toks[p.pos].Type == t
}

// CheckWord reports whether the current token is the unquoted word.
func (p *Parser) CheckWord(word string) bool {
	return p.toks[p.pos].IsWord(word)
}

// CheckWords reports whether the upcoming tokens spell words in order.
func (p *Parser) CheckWords(words ...string) bool {
	for i, w := range words {
		if !p.PeekN(i).IsWord(w) {
			return false
		}
	}
	return true
}

// Consume attaches the current token to n under label and advances.
// n may be nil to drop the token. EOF is never consumed.
func (p *Parser) Consume(n *cst.Node, label string) token.Token {
	tok := p.toks[p.pos]
	if n != nil {
		n.Add(label, cst.Leaf(tok, ""))
	}
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}

// Match consumes the current token if it has type t.
func (p *Parser) Match(n *cst.Node, label string, t token.TokenType) bool {
	if !p.Check(t) {
		return false
	}
	p.Consume(n, label)
	return true
}

// MatchWord consumes the current token if it is the unquoted word.
func (p *Parser) MatchWord(n *cst.Node, label string, word string) bool {
	if !p.CheckWord(word) {
		return false
	}
	p.Consume(n, label)
	return true
}

// Expect consumes a token of type t or fails.
func (p *Parser) Expect(n *cst.Node, label string, t token.TokenType) error {
	if p.Match(n, label, t) {
		return nil
	}
	return p.Unexpected(describe(t))
}

// ExpectWord consumes the unquoted word or fails.
func (p *Parser) ExpectWord(n *cst.Node, label string, word string) error {
	if p.MatchWord(n, label, word) {
		return nil
	}
	return p.Unexpected(strings.ToUpper(word))
}

// Mark returns the current position for a later Reset.
func (p *Parser) Mark() int {
	return p.pos
}

// Reset rewinds to a position returned by Mark. Nodes built since then must
// be discarded by the caller.
func (p *Parser) Reset(mark int) {
	p.pos = mark
}

// IsIdentifier reports whether tok may be used as an identifier in ctx.
func (p *Parser) IsIdentifier(tok token.Token, ctx spi.IdentContext) bool {
	return p.d.IsIdentifier(tok, ctx)
}

// ParseIdentifier parses a single identifier. Keywords are accepted when
// their class allows the context.
func (p *Parser) ParseIdentifier(ctx spi.IdentContext) (*cst.Node, error) {
	tok := p.Token()
	if !p.IsIdentifier(tok, ctx) {
		return nil, p.Unexpected("identifier")
	}
	p.pos++
	return cst.Leaf(tok, ""), nil
}

// Unexpected reports the current token as unexpected.
func (p *Parser) Unexpected(expected ...string) error {
	tok := p.Token()
	return &ParseError{
		Pos:      tok.Pos,
		Found:    tok,
		Expected: expected,
		Message:  unexpectedMessage(tok, expected),
	}
}

// Errorf reports an error at the current token.
func (p *Parser) Errorf(format string, args ...any) error {
	tok := p.Token()
	return &ParseError{Pos: tok.Pos, Found: tok, Message: fmt.Sprintf(format, args...)}
}

// Position returns the current token's position.
func (p *Parser) Position() token.Position {
	return p.Token().Pos
}

// ---------- Token Helpers ----------

// isWord reports whether tok is an identifier or keyword, quoted or not.
// Names after a qualifier dot may be any word.
func isWord(tok token.Token) bool {
	return tok.Type == token.IDENT || token.IsKeyword(tok.Type)
}

// checkAny reports whether the current token has one of the given types.
func (p *Parser) checkAny(types ...token.TokenType) bool {
	cur := p.Token().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

// hasKeyword reports whether the dialect lists word as a keyword. Words a
// dialect does not list are lexed as identifiers.
func (p *Parser) hasKeyword(word string) bool {
	_, ok := p.d.LookupKeyword(word)
	return ok
}

// parseList parses item {, item}, adding each result to n under label.
func (p *Parser) parseList(n *cst.Node, label string, item func() (*cst.Node, error)) error {
	for {
		child, err := item()
		if err != nil {
			return err
		}
		n.Add(label, child)
		if !p.Match(n, "", token.COMMA) {
			return nil
		}
	}
}

// parseParenList parses '(' item {, item} ')'. Empty lists are accepted when
// allowEmpty is set.
func (p *Parser) parseParenList(n *cst.Node, label string, allowEmpty bool, item func() (*cst.Node, error)) error {
	if err := p.Expect(n, "", token.LPAREN); err != nil {
		return err
	}
	if allowEmpty && p.Match(n, "", token.RPAREN) {
		return nil
	}
	if err := p.parseList(n, label, item); err != nil {
		return err
	}
	return p.Expect(n, "", token.RPAREN)
}

func (p *Parser) generalIdent() (*cst.Node, error) {
	return p.ParseIdentifier(spi.IdentGeneral)
}

// describe names a token type for "expected" messages.
func describe(t token.TokenType) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.NUMBER:
		return "number"
	case token.STRING:
		return "string"
	case token.EOF:
		return "end of input"
	}
	if token.IsKeyword(t) {
		return t.String()
	}
	return "'" + t.String() + "'"
}
