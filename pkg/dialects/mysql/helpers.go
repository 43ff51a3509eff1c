package mysql

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Shared Pieces ----------

// statement starts a node for rule with the leading keyword consumed.
func statement(p spi.ParserOps, rule cst.Rule) *cst.Node {
	n := cst.New(rule)
	p.Consume(n, "")
	return n
}

// list parses item {, item}, adding each result to n under label.
func list(p spi.ParserOps, n *cst.Node, label string, item func(spi.ParserOps) (*cst.Node, error)) error {
	for {
		child, err := item(p)
		if err != nil {
			return err
		}
		n.Add(label, child)
		if !p.Match(n, "", token.COMMA) {
			return nil
		}
	}
}

// parenList parses '(' item {, item} ')'.
func parenList(p spi.ParserOps, n *cst.Node, label string, item func(spi.ParserOps) (*cst.Node, error)) error {
	if err := p.Expect(n, "", token.LPAREN); err != nil {
		return err
	}
	if err := list(p, n, label, item); err != nil {
		return err
	}
	return p.Expect(n, "", token.RPAREN)
}

func ident(p spi.ParserOps) (*cst.Node, error) {
	return p.ParseIdentifier(spi.IdentGeneral)
}

func stringLit(p spi.ParserOps) (*cst.Node, error) {
	return p.ParseStringLiteral()
}

// tableName parses a bare, possibly qualified, table name.
func tableName(p spi.ParserOps) (*cst.Node, error) {
	t := cst.New(cst.RuleTableName)
	qn, err := p.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	t.Add("name", qn)
	return t, nil
}

// matchWords consumes the current token under label when it is one of words.
func matchWords(p spi.ParserOps, n *cst.Node, label string, words ...string) bool {
	for _, w := range words {
		if p.CheckWord(w) {
			p.Consume(n, label)
			return true
		}
	}
	return false
}

// expectWords is matchWords that fails when none of words is present.
func expectWords(p spi.ParserOps, n *cst.Node, label string, words ...string) error {
	if !matchWords(p, n, label, words...) {
		return p.Unexpected(words...)
	}
	return nil
}

// optionalEquals consumes an optional '='.
func optionalEquals(p spi.ParserOps, n *cst.Node) {
	p.Match(n, "", token.EQ)
}

// isWordToken reports whether tok is an identifier or keyword.
func isWordToken(tok token.Token) bool {
	return tok.Type == token.IDENT || token.IsKeyword(tok.Type)
}

// atEnd reports whether the statement ends at the current token.
func atEnd(p spi.ParserOps) bool {
	return p.Check(token.EOF) || p.Check(token.SEMICOLON)
}

// charsetName accepts a character set or collation name: a word or string.
func charsetName(p spi.ParserOps, n *cst.Node, label string) error {
	tok := p.Token()
	if !isWordToken(tok) && tok.Type != token.STRING {
		return p.Unexpected("character set name")
	}
	p.Consume(n, label)
	return nil
}

// number parses an unsigned integer literal.
func number(p spi.ParserOps) (*cst.Node, error) {
	if !p.Check(token.NUMBER) {
		return nil, p.Unexpected("number")
	}
	lit := cst.New(cst.RuleLiteral)
	p.Consume(lit, "part")
	return lit, nil
}

// signedNumber parses an integer literal with an optional leading minus.
func signedNumber(p spi.ParserOps) (*cst.Node, error) {
	lit := cst.New(cst.RuleLiteral)
	p.Match(lit, "sign", token.MINUS)
	if !p.Check(token.NUMBER) {
		return nil, p.Unexpected("number")
	}
	p.Consume(lit, "part")
	return lit, nil
}

// binlogOption parses the optional NO_WRITE_TO_BINLOG or LOCAL modifier of
// the maintenance and FLUSH statements.
func binlogOption(p spi.ParserOps, n *cst.Node) {
	matchWords(p, n, "binlog", "NO_WRITE_TO_BINLOG", "LOCAL")
}

// ---------- Accounts ----------

// userSpec parses 'user'[@'host'] or CURRENT_USER[()].
func userSpec(p spi.ParserOps) (*cst.Node, error) {
	u := cst.New(cst.RuleUserSpec)
	if p.Check(token.CURRENT_USER) {
		p.Consume(u, "current_user")
		if p.Check(token.LPAREN) && p.Peek().Is(token.RPAREN) {
			p.Consume(u, "")
			p.Consume(u, "")
		}
		return u, nil
	}
	tok := p.Token()
	if tok.Type != token.STRING && !p.IsIdentifier(tok, spi.IdentRole) {
		return nil, p.Unexpected("user name")
	}
	p.Consume(u, "name")
	if p.Check(token.USER_VAR) {
		p.Consume(u, "host")
	}
	return u, nil
}

// ---------- Word Sequences ----------

// phrase groups a multi-word option under one node so the builder can
// read it back as a single upper-cased string.
func phrase(p spi.ParserOps, words ...string) *cst.Node {
	ph := cst.New(cst.RuleIdentList)
	for range words {
		p.Consume(ph, "word")
	}
	return ph
}

// matchPhrase consumes the first of the candidate word sequences that is
// present, adding it to n under label.
func matchPhrase(p spi.ParserOps, n *cst.Node, label string, candidates [][]string) bool {
	for _, words := range candidates {
		if p.CheckWords(words...) {
			n.Add(label, phrase(p, words...))
			return true
		}
	}
	return false
}
