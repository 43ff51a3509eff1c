package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Statements ----------
//
//	statement → [WITH ...] select_stmt | [WITH ...] UPDATE ... | [WITH ...] DELETE ...
//	          | INSERT ... | REPLACE ... | CALL ... | dialect statement

// ParseStatement parses one statement. Statements outside the shared
// grammar are dispatched to the dialect by their leading keyword.
func (p *Parser) ParseStatement() (*cst.Node, error) {
	tok := p.Token()
	switch tok.Type {
	case token.WITH:
		with, err := p.parseWith()
		if err != nil {
			return nil, err
		}
		switch p.Token().Type {
		case token.UPDATE:
			return p.parseUpdate(with)
		case token.DELETE:
			return p.parseDelete(with)
		}
		return p.parseSelectStmt(with)
	case token.SELECT, token.TABLE, token.VALUES:
		return p.ParseQuery()
	case token.LPAREN:
		if p.queryAhead() {
			return p.ParseQuery()
		}
	case token.INSERT:
		return p.parseInsert(cst.RuleInsert)
	case token.REPLACE:
		if p.d.Features.Replace {
			return p.parseInsert(cst.RuleReplace)
		}
	case token.UPDATE:
		return p.parseUpdate(nil)
	case token.DELETE:
		return p.parseDelete(nil)
	case token.CALL:
		return p.parseCall()
	}
	if !tok.Quoted {
		if h := p.d.StatementHandler(tok.Type); h != nil {
			return h(p)
		}
	}
	return nil, p.Unexpected("statement")
}

// ---------- INSERT / REPLACE ----------
//
//	insert → INSERT [LOW_PRIORITY|DELAYED|HIGH_PRIORITY] [IGNORE] [INTO] table
//	         [PARTITION (p, ...)] [(cols)]
//	         ( {VALUES|VALUE} rows [AS alias [(cols)]]
//	         | SET assignments [AS alias]
//	         | select_stmt )
//	         [ON DUPLICATE KEY UPDATE assignments]
//
// REPLACE takes the same form without IGNORE and ON DUPLICATE KEY UPDATE.

func (p *Parser) parseInsert(rule cst.Rule) (*cst.Node, error) {
	ins := cst.New(rule)
	p.Consume(ins, "")
	if p.checkAny(token.LOW_PRIORITY, token.DELAYED) ||
		(rule == cst.RuleInsert && p.Check(token.HIGH_PRIORITY)) {
		p.Consume(ins, "priority")
	}
	if rule == cst.RuleInsert {
		p.Match(ins, "ignore", token.IGNORE)
	}
	p.Match(ins, "", token.INTO)

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
	ins.Add("table", t)

	if p.Check(token.LPAREN) && !p.queryAhead() {
		if err := p.parseParenList(ins, "column", true, p.parseColumnRef); err != nil {
			return nil, err
		}
	}

	switch {
	case p.checkAny(token.VALUES, token.VALUE):
		p.Consume(ins, "values_kw")
		if err := p.parseList(ins, "row", p.parseInsertRow); err != nil {
			return nil, err
		}
		if err := p.parseRowAlias(ins, true); err != nil {
			return nil, err
		}
	case p.Check(token.SET):
		p.Consume(ins, "")
		if err := p.ParseAssignments(ins, "set"); err != nil {
			return nil, err
		}
		if err := p.parseRowAlias(ins, false); err != nil {
			return nil, err
		}
	case p.checkAny(token.SELECT, token.WITH, token.TABLE) || (p.Check(token.LPAREN) && p.queryAhead()):
		q, err := p.ParseQuery()
		if err != nil {
			return nil, err
		}
		ins.Add("query", q)
	default:
		return nil, p.Unexpected("VALUES", "SET", "SELECT")
	}

	if rule == cst.RuleInsert && p.d.Features.OnDuplicateKey &&
		p.Check(token.ON) && p.Peek().Type == token.DUPLICATE {
		p.Consume(ins, "")
		p.Consume(ins, "")
		if err := p.Expect(ins, "", token.KEY); err != nil {
			return nil, err
		}
		if err := p.Expect(ins, "", token.UPDATE); err != nil {
			return nil, err
		}
		if err := p.ParseAssignments(ins, "dup"); err != nil {
			return nil, err
		}
	}
	return ins, nil
}

// parseInsertRow parses [ROW] (expr, ...). Empty rows are allowed.
func (p *Parser) parseInsertRow() (*cst.Node, error) {
	row := cst.New(cst.RuleRow)
	p.Match(row, "", token.ROW)
	if err := p.parseParenList(row, "item", true, p.ParseExpression); err != nil {
		return nil, err
	}
	return row, nil
}

// parseRowAlias parses AS alias [(cols)] naming the new row for
// ON DUPLICATE KEY UPDATE.
func (p *Parser) parseRowAlias(ins *cst.Node, withColumns bool) error {
	if !p.d.Features.OnDuplicateKey || !p.Match(ins, "", token.AS) {
		return nil
	}
	alias, err := p.generalIdent()
	if err != nil {
		return err
	}
	ins.Add("row_alias", alias)
	if withColumns && p.Check(token.LPAREN) {
		return p.parseParenList(ins, "alias_col", false, p.generalIdent)
	}
	return nil
}

// ParseAssignments parses col = expr {, col = expr}.
func (p *Parser) ParseAssignments(n *cst.Node, label string) error {
	return p.parseList(n, label, p.parseAssignment)
}

func (p *Parser) parseAssignment() (*cst.Node, error) {
	a := cst.New(cst.RuleAssignment)
	col, err := p.parseColumnRef()
	if err != nil {
		return nil, err
	}
	if col.Rule == cst.RuleStar {
		return nil, p.Unexpected("column name")
	}
	a.Add("column", col)
	if err := p.Expect(a, "", token.EQ); err != nil {
		return nil, err
	}
	v, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	a.Add("value", v)
	return a, nil
}

// ---------- UPDATE ----------
//
//	update → [WITH ...] UPDATE [LOW_PRIORITY] [IGNORE] table_refs SET assignments
//	         [WHERE expr] [ORDER BY ...] [LIMIT n]

func (p *Parser) parseUpdate(with *cst.Node) (*cst.Node, error) {
	upd := cst.New(cst.RuleUpdate)
	upd.Add("with", with)
	p.Consume(upd, "")
	p.Match(upd, "low_priority", token.LOW_PRIORITY)
	p.Match(upd, "ignore", token.IGNORE)
	if err := p.ParseTableReferences(upd, "table"); err != nil {
		return nil, err
	}
	if err := p.Expect(upd, "", token.SET); err != nil {
		return nil, err
	}
	if err := p.ParseAssignments(upd, "set"); err != nil {
		return nil, err
	}
	if err := p.parseFilterTail(upd); err != nil {
		return nil, err
	}
	return upd, nil
}

// parseFilterTail parses the [WHERE] [ORDER BY] [LIMIT] tail of UPDATE and
// DELETE.
func (p *Parser) parseFilterTail(n *cst.Node) error {
	if p.Check(token.WHERE) {
		w, err := p.ParseWhere()
		if err != nil {
			return err
		}
		n.Add("where", w)
	}
	if p.Check(token.ORDER) {
		ob, err := p.ParseOrderBy()
		if err != nil {
			return err
		}
		n.Add("order", ob)
	}
	if p.Check(token.LIMIT) {
		lim, err := p.ParseLimit()
		if err != nil {
			return err
		}
		n.Add("limit", lim)
	}
	return nil
}

// ---------- DELETE ----------
//
//	delete → [WITH ...] DELETE [LOW_PRIORITY] [QUICK] [IGNORE]
//	         ( FROM table [[AS] alias] [WHERE] [ORDER BY] [LIMIT]
//	         | targets FROM table_refs [WHERE]
//	         | FROM targets USING table_refs [WHERE] )

func (p *Parser) parseDelete(with *cst.Node) (*cst.Node, error) {
	del := cst.New(cst.RuleDelete)
	del.Add("with", with)
	p.Consume(del, "")
	for p.checkAny(token.LOW_PRIORITY, token.QUICK, token.IGNORE) {
		p.Consume(del, "option")
	}

	multi := p.d.Features.MultiTableDelete
	switch {
	case p.Check(token.FROM):
		p.Consume(del, "from_kw")
		if multi {
			mark := p.Mark()
			scratch := cst.New(cst.RuleDelete)
			if err := p.parseList(scratch, "target", p.parseDeleteTarget); err == nil && p.Check(token.USING) {
				graft(del, scratch)
				p.Consume(del, "using_kw")
				if err := p.ParseTableReferences(del, "ref"); err != nil {
					return nil, err
				}
				break
			}
			p.Reset(mark)
		}
		t, err := p.ParseTableName()
		if err != nil {
			return nil, err
		}
		del.Add("ref", t)
	case multi:
		if err := p.parseList(del, "target", p.parseDeleteTarget); err != nil {
			return nil, err
		}
		if err := p.Expect(del, "from_kw", token.FROM); err != nil {
			return nil, err
		}
		if err := p.ParseTableReferences(del, "ref"); err != nil {
			return nil, err
		}
	default:
		return nil, p.Unexpected("FROM")
	}

	if err := p.parseFilterTail(del); err != nil {
		return nil, err
	}
	return del, nil
}

// parseDeleteTarget parses a table name optionally followed by .* .
func (p *Parser) parseDeleteTarget() (*cst.Node, error) {
	t, err := p.parseTableNameOnly()
	if err != nil {
		return nil, err
	}
	if p.Check(token.DOT) && p.Peek().Type == token.STAR {
		p.Consume(t, "")
		p.Consume(t, "")
	}
	return t, nil
}

// ---------- CALL ----------

// parseCall parses CALL name [([args])].
func (p *Parser) parseCall() (*cst.Node, error) {
	c := cst.New(cst.RuleCall)
	p.Consume(c, "")
	name, err := p.ParseQualifiedName()
	if err != nil {
		return nil, err
	}
	c.Add("name", name)
	if p.Match(c, "lparen", token.LPAREN) {
		if !p.Match(c, "", token.RPAREN) {
			if err := p.ParseExpressionList(c, "arg"); err != nil {
				return nil, err
			}
			if err := p.Expect(c, "", token.RPAREN); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// ---------- Shared Pieces ----------

// ParseWhere parses WHERE expr.
func (p *Parser) ParseWhere() (*cst.Node, error) {
	w := cst.New(cst.RuleWhereClause)
	if err := p.Expect(w, "", token.WHERE); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	w.Add("cond", cond)
	return w, nil
}

// ParseStringLiteral parses a string literal; adjacent strings are joined.
func (p *Parser) ParseStringLiteral() (*cst.Node, error) {
	if !p.checkAny(token.STRING, token.NSTRING) {
		return nil, p.Unexpected("string")
	}
	lit := cst.New(cst.RuleLiteral)
	p.Consume(lit, "part")
	for p.Check(token.STRING) {
		p.Consume(lit, "part")
	}
	return lit, nil
}
