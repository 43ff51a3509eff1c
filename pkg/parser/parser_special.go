package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Special Functions ----------
// Functions whose argument lists are not plain expression lists:
//
//	CAST(expr AS type [ARRAY])
//	CONVERT(expr, type) | CONVERT(expr USING charset)
//	EXTRACT(unit FROM expr)
//	TRIM([BOTH|LEADING|TRAILING] [remove] FROM expr) | TRIM(expr)
//	SUBSTRING(expr FROM pos [FOR len]) | SUBSTRING(expr, pos [, len])
//	POSITION(substr IN str)
//	CHAR(exprs [USING charset])
//	GROUP_CONCAT([DISTINCT] exprs [ORDER BY ...] [SEPARATOR 'sep'])

// specialFunction returns the parser for a special function keyword, or nil.
// The current token is the keyword and a '(' follows.
func (p *Parser) specialFunction(t token.TokenType) func() (*cst.Node, error) {
	switch t {
	case token.CAST:
		return p.parseCast
	case token.CONVERT:
		return p.parseConvert
	case token.EXTRACT:
		return p.parseExtract
	case token.TRIM:
		return p.parseTrim
	case token.SUBSTRING, token.SUBSTR:
		return p.parseSubstring
	case token.POSITION:
		return p.parsePosition
	case token.CHAR:
		return p.parseChar
	case token.GROUP_CONCAT:
		return p.parseGroupConcat
	}
	return nil
}

// open consumes the function keyword and its '(' into n.
func (p *Parser) open(n *cst.Node, label string) error {
	p.Consume(n, label)
	return p.Expect(n, "", token.LPAREN)
}

func (p *Parser) parseCast() (*cst.Node, error) {
	c := cst.New(cst.RuleCast)
	if err := p.open(c, ""); err != nil {
		return nil, err
	}
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	c.Add("expr", e)
	if err := p.Expect(c, "", token.AS); err != nil {
		return nil, err
	}
	dt, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	c.Add("type", dt)
	p.Match(c, "array", token.ARRAY)
	if err := p.Expect(c, "", token.RPAREN); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseConvert() (*cst.Node, error) {
	c := cst.New(cst.RuleConvert)
	if err := p.open(c, ""); err != nil {
		return nil, err
	}
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	c.Add("expr", e)
	if p.Match(c, "", token.USING) {
		if err := p.parseCharsetName(c, "charset"); err != nil {
			return nil, err
		}
	} else {
		if err := p.Expect(c, "", token.COMMA); err != nil {
			return nil, err
		}
		dt, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		c.Add("type", dt)
	}
	if err := p.Expect(c, "", token.RPAREN); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseExtract() (*cst.Node, error) {
	x := cst.New(cst.RuleExtract)
	if err := p.open(x, ""); err != nil {
		return nil, err
	}
	if !isWord(p.Token()) {
		return nil, p.Unexpected("unit")
	}
	p.Consume(x, "unit")
	if err := p.Expect(x, "", token.FROM); err != nil {
		return nil, err
	}
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	x.Add("expr", e)
	if err := p.Expect(x, "", token.RPAREN); err != nil {
		return nil, err
	}
	return x, nil
}

func (p *Parser) parseTrim() (*cst.Node, error) {
	t := cst.New(cst.RuleTrim)
	if err := p.open(t, ""); err != nil {
		return nil, err
	}
	if p.checkAny(token.BOTH, token.LEADING, token.TRAILING) {
		p.Consume(t, "mode")
		if !p.Check(token.FROM) {
			remove, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			t.Add("remove", remove)
		}
		if err := p.Expect(t, "", token.FROM); err != nil {
			return nil, err
		}
		e, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		t.Add("expr", e)
	} else {
		first, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if p.Check(token.FROM) {
			t.Add("remove", first)
			p.Consume(t, "")
			e, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			t.Add("expr", e)
		} else {
			t.Add("expr", first)
		}
	}
	if err := p.Expect(t, "", token.RPAREN); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Parser) parseSubstring() (*cst.Node, error) {
	s := cst.New(cst.RuleSubstring)
	if err := p.open(s, "name"); err != nil {
		return nil, err
	}
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	s.Add("expr", e)

	sep, forSep := token.COMMA, token.COMMA
	if p.Check(token.FROM) {
		sep, forSep = token.FROM, token.FOR
	}
	if !p.Check(sep) {
		return nil, p.Unexpected("','", "FROM")
	}
	if sep == token.FROM {
		p.Consume(s, "from_kw")
	} else {
		p.Consume(s, "")
	}
	from, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	s.Add("from", from)
	if p.Match(s, "", forSep) {
		n, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		s.Add("for", n)
	}
	if err := p.Expect(s, "", token.RPAREN); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parsePosition() (*cst.Node, error) {
	n := cst.New(cst.RulePosition)
	if err := p.open(n, ""); err != nil {
		return nil, err
	}
	substr, err := p.parseExpr(core.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	n.Add("substr", substr)
	if err := p.Expect(n, "", token.IN); err != nil {
		return nil, err
	}
	str, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	n.Add("str", str)
	if err := p.Expect(n, "", token.RPAREN); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseChar() (*cst.Node, error) {
	c := cst.New(cst.RuleChar)
	if err := p.open(c, ""); err != nil {
		return nil, err
	}
	if err := p.ParseExpressionList(c, "arg"); err != nil {
		return nil, err
	}
	if p.Match(c, "", token.USING) {
		if err := p.parseCharsetName(c, "charset"); err != nil {
			return nil, err
		}
	}
	if err := p.Expect(c, "", token.RPAREN); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseGroupConcat() (*cst.Node, error) {
	g := cst.New(cst.RuleGroupConcat)
	if err := p.open(g, ""); err != nil {
		return nil, err
	}
	p.Match(g, "distinct", token.DISTINCT)
	if err := p.ParseExpressionList(g, "arg"); err != nil {
		return nil, err
	}
	if p.Check(token.ORDER) {
		ob, err := p.ParseOrderBy()
		if err != nil {
			return nil, err
		}
		g.Add("order", ob)
	}
	if p.Match(g, "", token.SEPARATOR) {
		sep, err := p.ParseStringLiteral()
		if err != nil {
			return nil, err
		}
		g.Add("separator", sep)
	}
	if err := p.Expect(g, "", token.RPAREN); err != nil {
		return nil, err
	}
	if err := p.parseOver(g); err != nil {
		return nil, err
	}
	return g, nil
}

// ---------- Data Types ----------

// parseDataType parses a type name as used by CAST, CONVERT and ::.
//
//	type → name [INTEGER|INT|PRECISION|VARYING] ['(' param, ... ')']
//	       [CHARACTER SET cs] [COLLATE coll]
func (p *Parser) parseDataType() (*cst.Node, error) {
	dt := cst.New(cst.RuleDataType)
	tok := p.Token()
	if !isWord(tok) {
		return nil, p.Unexpected("data type")
	}
	p.Consume(dt, "name")
	switch strings.ToUpper(tok.Literal) {
	case "SIGNED", "UNSIGNED":
		if !p.MatchWord(dt, "name", "INTEGER") {
			p.MatchWord(dt, "name", "INT")
		}
	case "DOUBLE":
		p.MatchWord(dt, "name", "PRECISION")
	case "CHARACTER", "CHAR":
		p.MatchWord(dt, "name", "VARYING")
	}
	if p.Check(token.LPAREN) {
		if err := p.parseParenList(dt, "param", false, p.parseTypeParam); err != nil {
			return nil, err
		}
	}
	if err := p.parseCharsetClause(dt); err != nil {
		return nil, err
	}
	if p.Match(dt, "", token.COLLATE) {
		if err := p.parseCharsetName(dt, "collate"); err != nil {
			return nil, err
		}
	}
	return dt, nil
}

func (p *Parser) parseTypeParam() (*cst.Node, error) {
	switch p.Token().Type {
	case token.NUMBER, token.STRING:
		return cst.Leaf(p.Consume(nil, ""), ""), nil
	}
	return nil, p.Unexpected("number")
}
