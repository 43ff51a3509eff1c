package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Primary Expressions ----------
//
//	primary → literal | param | @var | @@[scope.]var | '(' ... ')' | CASE ...
//	        | EXISTS (query) | DEFAULT [(col)] | ROW (exprs) | MATCH ...
//	        | INTERVAL expr unit | special_function | [schema.]func(args) [OVER ...]
//	        | niladic_function | column_ref | table.*

// notFunction lists words that are never function names even when a '('
// follows them.
var notFunction = map[token.TokenType]bool{
	token.SELECT: true, token.WITH: true, token.FROM: true, token.WHERE: true,
	token.GROUP: true, token.HAVING: true, token.ORDER: true, token.LIMIT: true,
	token.UNION: true, token.EXCEPT: true, token.INTERSECT: true, token.ON: true,
	token.USING: true, token.AND: true, token.OR: true, token.XOR: true, token.NOT: true,
	token.IN: true, token.IS: true, token.LIKE: true, token.BETWEEN: true, token.WHEN: true,
	token.THEN: true, token.ELSE: true, token.END: true, token.AS: true, token.INTO: true,
	token.JOIN: true, token.SET: true, token.TABLE: true, token.DISTINCT: true, token.ALL: true,
	token.ANY: true, token.SOME: true, token.BY: true,
}

// intervalUnits are the temporal units accepted by INTERVAL and EXTRACT.
var intervalUnits = map[string]bool{
	"MICROSECOND": true, "SECOND": true, "MINUTE": true, "HOUR": true, "DAY": true,
	"WEEK": true, "MONTH": true, "QUARTER": true, "YEAR": true,
	"SECOND_MICROSECOND": true, "MINUTE_MICROSECOND": true, "MINUTE_SECOND": true,
	"HOUR_MICROSECOND": true, "HOUR_SECOND": true, "HOUR_MINUTE": true,
	"DAY_MICROSECOND": true, "DAY_SECOND": true, "DAY_MINUTE": true, "DAY_HOUR": true,
	"YEAR_MONTH": true,
}

func isIntervalUnit(tok token.Token) bool {
	return isWord(tok) && !tok.Quoted && intervalUnits[strings.ToUpper(tok.Literal)]
}

func (p *Parser) parsePrimary() (*cst.Node, error) {
	tok := p.Token()
	next := p.Peek()

	switch tok.Type {
	case token.NUMBER, token.HEX_STRING, token.BIT_STRING, token.TRUE, token.FALSE, token.NULL:
		lit := cst.New(cst.RuleLiteral)
		p.Consume(lit, "part")
		return lit, nil
	case token.STRING, token.NSTRING:
		lit := cst.New(cst.RuleLiteral)
		p.Consume(lit, "part")
		for p.Check(token.STRING) {
			p.Consume(lit, "part")
		}
		return lit, nil
	case token.PARAM:
		param := cst.New(cst.RuleParam)
		p.Consume(param, "marker")
		return param, nil
	case token.USER_VAR:
		v := cst.New(cst.RuleUserVar)
		p.Consume(v, "name")
		return v, nil
	case token.AT_AT:
		return p.parseSysVar()
	case token.LPAREN:
		return p.parseParenPrimary()
	case token.CASE:
		return p.parseCase()
	case token.EXISTS:
		if next.Type == token.LPAREN {
			ex := cst.New(cst.RuleExists)
			p.Consume(ex, "")
			if err := p.parseParenQuery(ex); err != nil {
				return nil, err
			}
			return ex, nil
		}
	case token.DEFAULT:
		return p.parseDefault()
	case token.ROW:
		if next.Type == token.LPAREN {
			row := cst.New(cst.RuleRow)
			p.Consume(row, "")
			if err := p.parseParenList(row, "item", false, p.ParseExpression); err != nil {
				return nil, err
			}
			return row, nil
		}
	case token.MATCH:
		if next.Type == token.LPAREN {
			return p.parseMatch()
		}
	case token.INTERVAL:
		return p.parseInterval()
	}

	if next.Type == token.LPAREN && !tok.Quoted {
		if special := p.specialFunction(tok.Type); special != nil {
			return special()
		}
	}

	switch {
	case p.isCharsetIntroducer(tok, next):
		lit := cst.New(cst.RuleLiteral)
		p.Consume(lit, "charset")
		p.Consume(lit, "part")
		for p.Check(token.STRING) {
			p.Consume(lit, "part")
		}
		return lit, nil
	case next.Type == token.STRING && isTemporalWord(tok):
		lit := cst.New(cst.RuleLiteral)
		p.Consume(lit, "temporal")
		p.Consume(lit, "part")
		return lit, nil
	case isWord(tok) && next.Type == token.LPAREN && !notFunction[tok.Type]:
		return p.parseFuncCall()
	case p.IsIdentifier(tok, spi.IdentGeneral) && next.Type == token.DOT &&
		isWord(p.PeekN(2)) && p.PeekN(3).Type == token.LPAREN:
		return p.parseFuncCall()
	case !tok.Quoted && token.IsKeyword(tok.Type) && p.d.IsNiladic(tok.Literal):
		fn := cst.New(cst.RuleFuncCall)
		p.Consume(fn, "name")
		return fn, nil
	case p.IsIdentifier(tok, spi.IdentGeneral):
		return p.parseColumnRef()
	}
	return nil, p.Unexpected("expression")
}

// isCharsetIntroducer reports whether tok is a _charset prefix of a string.
func (p *Parser) isCharsetIntroducer(tok, next token.Token) bool {
	if tok.Type != token.IDENT || tok.Quoted || !strings.HasPrefix(tok.Literal, "_") {
		return false
	}
	switch next.Type {
	case token.STRING, token.HEX_STRING, token.BIT_STRING:
		return true
	}
	return false
}

func isTemporalWord(tok token.Token) bool {
	return tok.IsWord("DATE") || tok.IsWord("TIME") || tok.IsWord("TIMESTAMP")
}

// parseSysVar parses @@[GLOBAL.|SESSION.|LOCAL.|PERSIST.|PERSIST_ONLY.]name{.name}.
func (p *Parser) parseSysVar() (*cst.Node, error) {
	v := cst.New(cst.RuleSysVar)
	p.Consume(v, "")
	tok := p.Token()
	if _, ok := core.ParseScope(tok.Literal); ok && isWord(tok) && !tok.Quoted && p.Peek().Type == token.DOT {
		p.Consume(v, "scope")
		p.Consume(v, "")
	}
	if !isWord(p.Token()) {
		return nil, p.Unexpected("variable name")
	}
	p.Consume(v, "name")
	for p.Check(token.DOT) && isWord(p.Peek()) {
		p.Consume(v, "")
		p.Consume(v, "name")
	}
	return v, nil
}

// parseParenPrimary parses a subquery, a parenthesised expression or a row
// constructor.
func (p *Parser) parseParenPrimary() (*cst.Node, error) {
	if !p.queryAhead() {
		return p.parseParenExpr()
	}
	mark := p.Mark()
	sq := cst.New(cst.RuleSubquery)
	qerr := p.parseParenQuery(sq)
	if qerr == nil {
		return sq, nil
	}
	p.Reset(mark)
	n, perr := p.parseParenExpr()
	if perr != nil {
		return nil, furthest(qerr, perr)
	}
	return n, nil
}

func (p *Parser) parseParenExpr() (*cst.Node, error) {
	n := cst.New(cst.RuleParen)
	p.Consume(n, "")
	first, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.Check(token.COMMA) {
		n.Add("expr", first)
		return n, p.Expect(n, "", token.RPAREN)
	}
	n.Rule = cst.RuleRow
	n.Add("item", first)
	for p.Match(n, "", token.COMMA) {
		item, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		n.Add("item", item)
	}
	return n, p.Expect(n, "", token.RPAREN)
}

// parseColumnRef parses name{.name} with up to three parts, or table.* .
func (p *Parser) parseColumnRef() (*cst.Node, error) {
	col := cst.New(cst.RuleColumnRef)
	if !p.IsIdentifier(p.Token(), spi.IdentGeneral) {
		return nil, p.Unexpected("column name")
	}
	p.Consume(col, "part")
	for parts := 1; parts < 3 && p.Check(token.DOT); parts++ {
		next := p.Peek()
		if next.Type == token.STAR {
			col.Rule = cst.RuleStar
			p.Consume(col, "")
			p.Consume(col, "")
			return col, nil
		}
		if !isWord(next) {
			break
		}
		p.Consume(col, "")
		p.Consume(col, "part")
	}
	return col, nil
}

func (p *Parser) parseCase() (*cst.Node, error) {
	c := cst.New(cst.RuleCase)
	p.Consume(c, "")
	if !p.Check(token.WHEN) {
		operand, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		c.Add("operand", operand)
	}
	if !p.Check(token.WHEN) {
		return nil, p.Unexpected("WHEN")
	}
	for p.Check(token.WHEN) {
		w := cst.New(cst.RuleWhen)
		p.Consume(w, "")
		cond, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		w.Add("cond", cond)
		if err := p.Expect(w, "", token.THEN); err != nil {
			return nil, err
		}
		result, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		w.Add("result", result)
		c.Add("when", w)
	}
	if p.Match(c, "", token.ELSE) {
		e, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		c.Add("else", e)
	}
	if err := p.Expect(c, "", token.END); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseDefault() (*cst.Node, error) {
	d := cst.New(cst.RuleDefault)
	p.Consume(d, "")
	if p.Match(d, "", token.LPAREN) {
		col, err := p.parseColumnRef()
		if err != nil {
			return nil, err
		}
		d.Add("column", col)
		if err := p.Expect(d, "", token.RPAREN); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// parseMatch parses MATCH (cols) AGAINST (expr [modifier]).
func (p *Parser) parseMatch() (*cst.Node, error) {
	m := cst.New(cst.RuleMatch)
	p.Consume(m, "")
	if err := p.parseParenList(m, "col", false, p.parseColumnRef); err != nil {
		return nil, err
	}
	if err := p.Expect(m, "", token.AGAINST); err != nil {
		return nil, err
	}
	if err := p.Expect(m, "", token.LPAREN); err != nil {
		return nil, err
	}
	against, err := p.parseExpr(core.PrecedenceComparison)
	if err != nil {
		return nil, err
	}
	m.Add("against", against)

	switch {
	case p.Check(token.IN):
		p.Consume(m, "modifier")
		switch {
		case p.Check(token.NATURAL):
			p.Consume(m, "modifier")
			if err := p.ExpectWord(m, "modifier", "LANGUAGE"); err != nil {
				return nil, err
			}
		case p.CheckWord("BOOLEAN"):
			p.Consume(m, "modifier")
		default:
			return nil, p.Unexpected("NATURAL LANGUAGE", "BOOLEAN")
		}
		if err := p.Expect(m, "modifier", token.MODE); err != nil {
			return nil, err
		}
		if !strings.Contains(m.Words("modifier"), "BOOLEAN") && p.Check(token.WITH) {
			if err := p.queryExpansion(m); err != nil {
				return nil, err
			}
		}
	case p.Check(token.WITH):
		if err := p.queryExpansion(m); err != nil {
			return nil, err
		}
	}
	if err := p.Expect(m, "", token.RPAREN); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Parser) queryExpansion(m *cst.Node) error {
	p.Consume(m, "modifier")
	if err := p.ExpectWord(m, "modifier", "QUERY"); err != nil {
		return err
	}
	return p.ExpectWord(m, "modifier", "EXPANSION")
}

// parseInterval parses INTERVAL expr unit. INTERVAL(n, n1, ...) is the
// function of the same name.
func (p *Parser) parseInterval() (*cst.Node, error) {
	callable := p.Peek().Type == token.LPAREN
	mark := p.Mark()
	iv := cst.New(cst.RuleInterval)
	p.Consume(iv, "")
	value, err := p.ParseExpression()
	if err == nil {
		iv.Add("value", value)
		switch {
		case isIntervalUnit(p.Token()):
			p.Consume(iv, "unit")
			return iv, nil
		case p.d.Features.IntervalLiterals && value.Rule == cst.RuleLiteral && value.Child("part").Token.Type == token.STRING:
			return iv, nil
		case !callable:
			return nil, p.Unexpected("interval unit")
		}
	} else if !callable {
		return nil, err
	}
	p.Reset(mark)
	return p.parseFuncCall()
}

// ---------- Function Calls ----------

// parseFuncCall parses [schema.]name([DISTINCT] args | *) [OVER ...].
func (p *Parser) parseFuncCall() (*cst.Node, error) {
	fn := cst.New(cst.RuleFuncCall)
	if p.Peek().Type == token.DOT {
		p.Consume(fn, "schema")
		p.Consume(fn, "")
	}
	p.Consume(fn, "name")
	if err := p.Expect(fn, "", token.LPAREN); err != nil {
		return nil, err
	}
	if !p.Match(fn, "", token.RPAREN) {
		p.Match(fn, "distinct", token.DISTINCT)
		if p.Check(token.STAR) && p.Peek().Type == token.RPAREN {
			p.Consume(fn, "star")
		} else if err := p.ParseExpressionList(fn, "arg"); err != nil {
			return nil, err
		}
		if err := p.Expect(fn, "", token.RPAREN); err != nil {
			return nil, err
		}
	}
	if err := p.parseOver(fn); err != nil {
		return nil, err
	}
	return fn, nil
}

// parseOver parses OVER name or OVER (window spec) onto fn.
func (p *Parser) parseOver(fn *cst.Node) error {
	if !p.Match(fn, "", token.OVER) {
		return nil
	}
	if p.Check(token.LPAREN) {
		spec, err := p.ParseWindowSpec()
		if err != nil {
			return err
		}
		fn.Add("over", spec)
		return nil
	}
	name, err := p.generalIdent()
	if err != nil {
		return err
	}
	fn.Add("over_name", name)
	return nil
}
