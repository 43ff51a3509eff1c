package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Expression parsing uses precedence climbing over the dialect's operator
// table (core.Precedence*, lowest first):
//
//	:=  OR ||  XOR  AND &&  NOT  BETWEEN  comparison/IS/LIKE/IN  |  &  << >>
//	+ -  * / DIV % MOD  ^  unary - ~  !  COLLATE BINARY  -> ->> ::
//
// Operators are left-associative except := which is right-associative.
// A token is an infix operator only when the dialect's table lists it, so
// REGEXP is a plain word in a dialect without it.

// ParseExpression parses a complete expression.
func (p *Parser) ParseExpression() (*cst.Node, error) {
	return p.parseExpr(core.PrecedenceNone)
}

// ParseExpressionList parses expr {, expr}, adding each to n under label.
func (p *Parser) ParseExpressionList(n *cst.Node, label string) error {
	return p.parseList(n, label, p.ParseExpression)
}

// parseExpr parses an expression whose infix operators all bind tighter
// than minPrec.
func (p *Parser) parseExpr(minPrec int) (*cst.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		prec := p.infixPrecedence()
		if prec <= minPrec {
			return left, nil
		}
		if left, err = p.parseInfix(left, prec); err != nil {
			return nil, err
		}
	}
}

// infixPrecedence returns the binding power of the current token as an
// infix operator, or PrecedenceNone.
func (p *Parser) infixPrecedence() int {
	tok := p.Token()
	switch tok.Type {
	case token.NOT:
		switch next := p.Peek().Type; next {
		case token.IN, token.LIKE, token.BETWEEN, token.REGEXP, token.RLIKE, token.ILIKE:
			return p.d.Precedence(next)
		}
		return core.PrecedenceNone
	case token.SOUNDS:
		if p.Peek().Type != token.LIKE {
			return core.PrecedenceNone
		}
	case token.MEMBER:
		if p.Peek().Type != token.OF {
			return core.PrecedenceNone
		}
	}
	return p.d.Precedence(tok.Type)
}

func (p *Parser) parseInfix(left *cst.Node, prec int) (*cst.Node, error) {
	tok := p.Token()
	if h := p.d.InfixHandler(tok.Type); h != nil {
		return h(p, left)
	}

	switch tok.Type {
	case token.NOT, token.IN, token.BETWEEN, token.LIKE, token.ILIKE, token.REGEXP, token.RLIKE:
		return p.parsePredicate(left)
	case token.IS:
		return p.parseIs(left)
	case token.COLLATE:
		c := cst.New(cst.RuleCollate)
		c.Add("expr", left)
		p.Consume(c, "")
		if err := p.parseCharsetName(c, "collation"); err != nil {
			return nil, err
		}
		return c, nil
	case token.DCOLON:
		c := cst.New(cst.RuleCast)
		c.Add("expr", left)
		p.Consume(c, "")
		dt, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		c.Add("type", dt)
		return c, nil
	}

	b := cst.New(cst.RuleBinary)
	b.Add("left", left)
	p.Consume(b, "op")
	switch tok.Type {
	case token.SOUNDS:
		p.Consume(b, "op")
	case token.MEMBER:
		p.Consume(b, "op")
	}

	if isComparison(tok.Type) && p.checkAny(token.ANY, token.SOME, token.ALL) && p.Peek().Type == token.LPAREN {
		sq := cst.New(cst.RuleSubquery)
		p.Consume(sq, "quantifier")
		if err := p.parseParenQuery(sq); err != nil {
			return nil, err
		}
		b.Add("right", sq)
		return b, nil
	}

	rightPrec := prec
	if tok.Type == token.ASSIGN {
		rightPrec = prec - 1
	}
	right, err := p.parseExpr(rightPrec)
	if err != nil {
		return nil, err
	}
	b.Add("right", right)
	return b, nil
}

func isComparison(t token.TokenType) bool {
	switch t {
	case token.EQ, token.NSEQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return true
	}
	return false
}

// ---------- Predicates ----------

// parsePredicate parses [NOT] IN, BETWEEN, LIKE, ILIKE, REGEXP or RLIKE
// applied to left.
func (p *Parser) parsePredicate(left *cst.Node) (*cst.Node, error) {
	op := p.Token().Type
	if op == token.NOT {
		op = p.Peek().Type
	}
	var n *cst.Node
	switch op {
	case token.IN:
		n = cst.New(cst.RuleIn)
	case token.BETWEEN:
		n = cst.New(cst.RuleBetween)
	case token.LIKE, token.ILIKE:
		n = cst.New(cst.RuleLike)
	default:
		n = cst.New(cst.RuleRegexp)
	}
	n.Add("expr", left)
	p.Match(n, "not", token.NOT)

	switch op {
	case token.IN:
		p.Consume(n, "")
		return n, p.parseInList(n)
	case token.BETWEEN:
		p.Consume(n, "")
		low, err := p.parseExpr(core.PrecedenceComparison)
		if err != nil {
			return nil, err
		}
		n.Add("low", low)
		if err := p.Expect(n, "", token.AND); err != nil {
			return nil, err
		}
		high, err := p.parseExpr(core.PrecedenceComparison)
		if err != nil {
			return nil, err
		}
		n.Add("high", high)
		return n, nil
	}

	p.Consume(n, "op")
	pattern, err := p.parseExpr(core.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	n.Add("pattern", pattern)
	if n.Rule == cst.RuleLike && p.Match(n, "", token.ESCAPE) {
		esc, err := p.parseExpr(core.PrecedenceComparison)
		if err != nil {
			return nil, err
		}
		n.Add("escape", esc)
	}
	return n, nil
}

// parseInList parses the right side of IN: a subquery or a list of
// expressions.
func (p *Parser) parseInList(n *cst.Node) error {
	if p.queryAhead() {
		mark := p.Mark()
		scratch := cst.New(n.Rule)
		qerr := p.parseParenQuery(scratch)
		if qerr == nil {
			graft(n, scratch)
			return nil
		}
		p.Reset(mark)
		lerr := p.parseParenList(n, "item", false, p.ParseExpression)
		if lerr != nil {
			return furthest(qerr, lerr)
		}
		return nil
	}
	return p.parseParenList(n, "item", false, p.ParseExpression)
}

// parseParenQuery parses '(' select_stmt ')' into n under "query".
func (p *Parser) parseParenQuery(n *cst.Node) error {
	if err := p.Expect(n, "", token.LPAREN); err != nil {
		return err
	}
	q, err := p.parseSelectStmt(nil)
	if err != nil {
		return err
	}
	n.Add("query", q)
	return p.Expect(n, "", token.RPAREN)
}

// graft moves the children of src to dst, keeping their labels.
func graft(dst, src *cst.Node) {
	for _, c := range src.Children {
		dst.Add(c.Label, c)
	}
}

// parseIs parses IS [NOT] NULL|TRUE|FALSE|UNKNOWN.
func (p *Parser) parseIs(left *cst.Node) (*cst.Node, error) {
	n := cst.New(cst.RuleIs)
	n.Add("expr", left)
	p.Consume(n, "")
	p.Match(n, "not", token.NOT)
	if !p.checkAny(token.NULL, token.TRUE, token.FALSE, token.UNKNOWN) {
		return nil, p.Unexpected("NULL", "TRUE", "FALSE", "UNKNOWN")
	}
	p.Consume(n, "value")
	return n, nil
}

// ---------- Prefix Operators ----------

func (p *Parser) parsePrefix() (*cst.Node, error) {
	switch p.Token().Type {
	case token.NOT:
		return p.parseUnary(core.PrecedenceNot)
	case token.BANG:
		return p.parseUnary(core.PrecedenceBang)
	case token.MINUS, token.PLUS, token.TILDE:
		return p.parseUnary(core.PrecedenceUnary)
	case token.BINARY:
		return p.parseUnary(core.PrecedenceCollate)
	}
	return p.parsePrimary()
}

func (p *Parser) parseUnary(prec int) (*cst.Node, error) {
	u := cst.New(cst.RuleUnary)
	p.Consume(u, "op")
	operand, err := p.parseExpr(prec)
	if err != nil {
		return nil, err
	}
	u.Add("operand", operand)
	return u, nil
}
