package parser

import (
	"errors"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Table References ----------
//
//	table_refs   → table_ref {, table_ref}
//	table_ref    → table_factor {join}
//	join         → [NATURAL] [join_type [OUTER]] JOIN table_factor [ON expr | USING (cols)]
//	             | STRAIGHT_JOIN table_factor [ON expr]
//	table_factor → table_name [PARTITION (p, ...)] [[AS] alias] {index_hint}
//	             | [LATERAL] '(' select_stmt ')' [AS] alias [(cols)]
//	             | '(' table_refs ')'

// ParseTableReferences parses a comma separated list of table references,
// adding each to n under label.
func (p *Parser) ParseTableReferences(n *cst.Node, label string) error {
	return p.parseList(n, label, p.parseTableRef)
}

func (p *Parser) parseTableRef() (*cst.Node, error) {
	left, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	for {
		def, ok := p.joinAhead()
		if !ok {
			return left, nil
		}
		if left, err = p.parseJoin(left, def); err != nil {
			return nil, err
		}
	}
}

// plainJoin is the definition used for a bare JOIN.
func (p *Parser) plainJoin() dialect.JoinTypeDef {
	if def, ok := p.d.JoinTypeDef(token.INNER); ok {
		return def
	}
	return dialect.JoinTypeDef{Token: token.INNER, Type: core.JoinInner, AllowsUsing: true}
}

// joinAhead reports whether a join starts at the current token and returns
// its definition.
func (p *Parser) joinAhead() (dialect.JoinTypeDef, bool) {
	i := 0
	natural := p.Check(token.NATURAL)
	if natural {
		i = 1
	}
	tok := p.PeekN(i)
	if tok.Type == token.JOIN {
		return p.plainJoin(), true
	}
	def, ok := p.d.JoinTypeDef(tok.Type)
	if !ok {
		return def, false
	}
	if def.Standalone {
		return def, !natural
	}
	next := p.PeekN(i + 1)
	if def.OptionalToken != 0 && next.Type == def.OptionalToken {
		next = p.PeekN(i + 2)
	}
	return def, next.Type == token.JOIN
}

func (p *Parser) parseJoin(left *cst.Node, def dialect.JoinTypeDef) (*cst.Node, error) {
	j := cst.New(cst.RuleJoin)
	j.Add("left", left)
	natural := p.Match(j, "natural", token.NATURAL)
	switch {
	case def.Standalone:
		p.Consume(j, "type")
	default:
		if !p.Check(token.JOIN) {
			p.Consume(j, "type")
			if def.OptionalToken != 0 {
				p.Match(j, "type", def.OptionalToken)
			}
		}
		if err := p.Expect(j, "", token.JOIN); err != nil {
			return nil, err
		}
	}

	right, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	j.Add("right", right)
	if natural {
		return j, nil
	}

	switch {
	case p.Check(token.ON) && (def.RequiresOn || def.AllowsUsing || def.Standalone):
		p.Consume(j, "")
		cond, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		j.Add("on", cond)
	case p.Check(token.USING) && def.AllowsUsing:
		p.Consume(j, "")
		if err := p.parseParenList(j, "col", false, p.generalIdent); err != nil {
			return nil, err
		}
	case def.RequiresOn:
		if def.AllowsUsing {
			return nil, p.Unexpected("ON", "USING")
		}
		return nil, p.Unexpected("ON")
	}
	return j, nil
}

func (p *Parser) parseTableFactor() (*cst.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch {
	case p.Check(token.LATERAL):
		return p.parseDerivedTable()
	case p.Check(token.LPAREN):
		if !p.queryAhead() {
			return p.parseParenTableRef()
		}
		mark := p.Mark()
		dt, derr := p.parseDerivedTable()
		if derr == nil {
			return dt, nil
		}
		p.Reset(mark)
		pt, perr := p.parseParenTableRef()
		if perr == nil {
			return pt, nil
		}
		return nil, furthest(derr, perr)
	}
	if !p.IsIdentifier(p.Token(), spi.IdentGeneral) {
		return nil, p.Unexpected("table reference")
	}
	return p.ParseTableName()
}

// queryAhead reports whether the tokens after one or more '(' start a query.
func (p *Parser) queryAhead() bool {
	i := 0
	for p.PeekN(i).Type == token.LPAREN {
		i++
	}
	switch p.PeekN(i).Type {
	case token.SELECT, token.WITH, token.TABLE, token.VALUES:
		return i > 0
	}
	return false
}

// furthest returns the error that got further into the input. Speculative
// alternatives report the one that matched more tokens.
func furthest(a, b error) error {
	var pa, pb *ParseError
	if !errors.As(a, &pa) || !errors.As(b, &pb) {
		return a
	}
	if pb.Pos.Offset > pa.Pos.Offset {
		return b
	}
	return a
}

func (p *Parser) parseDerivedTable() (*cst.Node, error) {
	dt := cst.New(cst.RuleDerivedTable)
	p.Match(dt, "lateral", token.LATERAL)
	if err := p.Expect(dt, "", token.LPAREN); err != nil {
		return nil, err
	}
	q, err := p.parseSelectStmt(nil)
	if err != nil {
		return nil, err
	}
	dt.Add("query", q)
	if err := p.Expect(dt, "", token.RPAREN); err != nil {
		return nil, err
	}
	if err := p.parseTableAlias(dt); err != nil {
		return nil, err
	}
	if dt.Has("alias") && p.Check(token.LPAREN) {
		if err := p.parseParenList(dt, "col", false, p.generalIdent); err != nil {
			return nil, err
		}
	}
	return dt, nil
}

func (p *Parser) parseParenTableRef() (*cst.Node, error) {
	pt := cst.New(cst.RuleParenTableRef)
	p.Consume(pt, "")
	if err := p.ParseTableReferences(pt, "ref"); err != nil {
		return nil, err
	}
	if err := p.Expect(pt, "", token.RPAREN); err != nil {
		return nil, err
	}
	return pt, nil
}

// ---------- Table Names ----------

// ParseTableName parses a table name with its optional partition list,
// alias and index hints.
func (p *Parser) ParseTableName() (*cst.Node, error) {
	t, err := p.parseTableNameOnly()
	if err != nil {
		return nil, err
	}
	if p.Check(token.PARTITION) {
		p.Consume(t, "")
		if err := p.parseParenList(t, "partition", false, p.generalIdent); err != nil {
			return nil, err
		}
	}
	if err := p.parseTableAlias(t); err != nil {
		return nil, err
	}
	if p.d.Features.IndexHints {
		for p.atIndexHint() {
			h, err := p.parseIndexHint()
			if err != nil {
				return nil, err
			}
			t.Add("hint", h)
		}
	}
	return t, nil
}

// parseTableNameOnly parses a bare, possibly qualified, table name.
func (p *Parser) parseTableNameOnly() (*cst.Node, error) {
	t := cst.New(cst.RuleTableName)
	qn, err := p.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	t.Add("name", qn)
	return t, nil
}

// ParseQualifiedName parses name {. name}. Parts after a dot may be any word.
func (p *Parser) ParseQualifiedName() (*cst.Node, error) {
	qn := cst.New(cst.RuleQualifiedName)
	first, err := p.generalIdent()
	if err != nil {
		return nil, err
	}
	qn.Add("part", first)
	for p.Check(token.DOT) && isWord(p.Peek()) {
		p.Consume(qn, "")
		p.Consume(qn, "part")
	}
	return qn, nil
}

// parseTableAlias parses [AS] alias onto n. Table aliases are identifiers.
func (p *Parser) parseTableAlias(n *cst.Node) error {
	if p.Match(n, "", token.AS) {
		alias, err := p.generalIdent()
		if err != nil {
			return err
		}
		n.Add("alias", alias)
		return nil
	}
	if p.isAliasCandidate() {
		p.Consume(n, "alias")
	}
	return nil
}

// ---------- Index Hints ----------

func (p *Parser) atIndexHint() bool {
	if !p.checkAny(token.USE, token.FORCE, token.IGNORE) {
		return false
	}
	next := p.Peek().Type
	return next == token.INDEX || next == token.KEY
}

// parseIndexHint parses USE|FORCE|IGNORE INDEX|KEY [FOR JOIN|ORDER BY|GROUP BY] (names).
// USE accepts an empty list.
func (p *Parser) parseIndexHint() (*cst.Node, error) {
	h := cst.New(cst.RuleIndexHint)
	action := p.Consume(h, "action")
	p.Consume(h, "")
	if p.Match(h, "", token.FOR) {
		switch {
		case p.Check(token.JOIN):
			p.Consume(h, "for")
		case p.checkAny(token.ORDER, token.GROUP):
			p.Consume(h, "for")
			if err := p.Expect(h, "for", token.BY); err != nil {
				return nil, err
			}
		default:
			return nil, p.Unexpected("JOIN", "ORDER BY", "GROUP BY")
		}
	}
	if err := p.parseParenList(h, "index", action.Type == token.USE, p.parseIndexName); err != nil {
		return nil, err
	}
	return h, nil
}

// parseIndexName accepts an identifier or PRIMARY.
func (p *Parser) parseIndexName() (*cst.Node, error) {
	if p.CheckWord("PRIMARY") {
		return cst.Leaf(p.Consume(nil, ""), ""), nil
	}
	return p.generalIdent()
}
