package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Query Expressions ----------
//
//	select_stmt   → [with] query_expr [order_by] [limit] [into] {lock} [into]
//	query_expr    → query_term {(UNION|EXCEPT) [ALL|DISTINCT] query_term}
//	query_term    → query_primary {INTERSECT [ALL|DISTINCT] query_primary}
//	query_primary → query_spec | '(' select_stmt ')' | TABLE t | VALUES row, ...

// ParseQuery parses a complete query, including a leading WITH clause.
func (p *Parser) ParseQuery() (*cst.Node, error) {
	return p.parseSelectStmt(nil)
}

// parseSelectStmt parses select_stmt. with is a WITH clause the caller has
// already parsed, or nil.
func (p *Parser) parseSelectStmt(with *cst.Node) (*cst.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	stmt := cst.New(cst.RuleSelectStmt)
	if with == nil && p.Check(token.WITH) {
		w, err := p.parseWith()
		if err != nil {
			return nil, err
		}
		with = w
	}
	stmt.Add("with", with)

	q, err := p.parseQueryExpr()
	if err != nil {
		return nil, err
	}
	stmt.Add("query", q)

	if p.Check(token.ORDER) {
		ob, err := p.ParseOrderBy()
		if err != nil {
			return nil, err
		}
		stmt.Add("order", ob)
	}
	if p.atLimit() {
		lim, err := p.ParseLimit()
		if err != nil {
			return nil, err
		}
		stmt.Add("limit", lim)
	}
	if p.atInto() {
		into, err := p.parseInto()
		if err != nil {
			return nil, err
		}
		stmt.Add("into", into)
	}
	for p.atLock() {
		lock, err := p.parseLock()
		if err != nil {
			return nil, err
		}
		stmt.Add("lock", lock)
	}
	if !stmt.Has("into") && p.atInto() {
		into, err := p.parseInto()
		if err != nil {
			return nil, err
		}
		stmt.Add("into", into)
	}
	return stmt, nil
}

func (p *Parser) parseQueryExpr() (*cst.Node, error) {
	left, err := p.parseQueryTerm()
	if err != nil {
		return nil, err
	}
	for p.checkAny(token.UNION, token.EXCEPT) {
		if left, err = p.parseSetOperation(left, p.parseQueryTerm); err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseQueryTerm binds INTERSECT tighter than UNION and EXCEPT.
func (p *Parser) parseQueryTerm() (*cst.Node, error) {
	left, err := p.parseQueryPrimary()
	if err != nil {
		return nil, err
	}
	for p.Check(token.INTERSECT) {
		if left, err = p.parseSetOperation(left, p.parseQueryPrimary); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseSetOperation(left *cst.Node, operand func() (*cst.Node, error)) (*cst.Node, error) {
	op := cst.New(cst.RuleSetOperation)
	op.Add("left", left)
	p.Consume(op, "op")
	if p.checkAny(token.ALL, token.DISTINCT) {
		p.Consume(op, "quantifier")
	}
	right, err := operand()
	if err != nil {
		return nil, err
	}
	op.Add("right", right)
	return op, nil
}

func (p *Parser) parseQueryPrimary() (*cst.Node, error) {
	switch p.Token().Type {
	case token.SELECT:
		return p.parseQuerySpec()
	case token.LPAREN:
		pq := cst.New(cst.RuleParenQuery)
		p.Consume(pq, "")
		inner, err := p.parseSelectStmt(nil)
		if err != nil {
			return nil, err
		}
		pq.Add("select", inner)
		if err := p.Expect(pq, "", token.RPAREN); err != nil {
			return nil, err
		}
		return pq, nil
	case token.TABLE:
		tq := cst.New(cst.RuleTableQuery)
		p.Consume(tq, "")
		t, err := p.parseTableNameOnly()
		if err != nil {
			return nil, err
		}
		tq.Add("table", t)
		return tq, nil
	case token.VALUES:
		vq := cst.New(cst.RuleValuesQuery)
		p.Consume(vq, "")
		if err := p.parseList(vq, "row", p.parseValuesRow); err != nil {
			return nil, err
		}
		return vq, nil
	}
	return nil, p.Unexpected("query")
}

// parseValuesRow parses [ROW] (expr, ...).
func (p *Parser) parseValuesRow() (*cst.Node, error) {
	row := cst.New(cst.RuleRow)
	p.Match(row, "", token.ROW)
	if err := p.parseParenList(row, "item", false, p.ParseExpression); err != nil {
		return nil, err
	}
	return row, nil
}

// ---------- Query Specification ----------

var selectOptions = map[token.TokenType]bool{
	token.ALL:                 true,
	token.DISTINCT:            true,
	token.DISTINCTROW:         true,
	token.HIGH_PRIORITY:       true,
	token.STRAIGHT_JOIN:       true,
	token.SQL_SMALL_RESULT:    true,
	token.SQL_BIG_RESULT:      true,
	token.SQL_BUFFER_RESULT:   true,
	token.SQL_NO_CACHE:        true,
	token.SQL_CALC_FOUND_ROWS: true,
}

func (p *Parser) parseQuerySpec() (*cst.Node, error) {
	spec := cst.New(cst.RuleQuerySpec)
	p.Consume(spec, "")
	for selectOptions[p.Token().Type] {
		p.Consume(spec, "option")
	}
	if err := p.parseList(spec, "item", p.parseSelectItem); err != nil {
		return nil, err
	}
	if p.atInto() {
		into, err := p.parseInto()
		if err != nil {
			return nil, err
		}
		spec.Add("into", into)
	}
	if p.Check(token.FROM) {
		from := cst.New(cst.RuleFromClause)
		p.Consume(from, "")
		if p.Check(token.DUAL) {
			p.Consume(from, "dual")
		} else if err := p.ParseTableReferences(from, "ref"); err != nil {
			return nil, err
		}
		spec.Add("from", from)
	}
	for _, tt := range p.d.ClauseSequence() {
		if !p.Check(tt) {
			continue
		}
		if err := p.parseClause(spec, tt); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

// clauseNode maps a clause slot to its rule and label in the query spec.
func clauseNode(slot core.ClauseSlot) (cst.Rule, string) {
	switch slot {
	case core.SlotWhere:
		return cst.RuleWhereClause, "where"
	case core.SlotGroupBy:
		return cst.RuleGroupBy, "group"
	case core.SlotHaving:
		return cst.RuleHaving, "having"
	case core.SlotWindow:
		return cst.RuleWindowClause, "window"
	}
	return "", ""
}

// parseClause consumes the clause keywords and hands the body to the
// dialect's clause handler.
func (p *Parser) parseClause(spec *cst.Node, tt token.TokenType) error {
	def, _ := p.d.ClauseDef(tt)
	handler := p.d.ClauseHandler(tt)
	rule, label := clauseNode(def.Slot)
	if handler == nil || rule == "" {
		return p.Errorf("no handler registered for clause %s", tt)
	}
	clause := cst.New(rule)
	if len(def.Keywords) == 0 {
		p.Consume(clause, "")
	} else {
		for _, w := range def.Keywords {
			if err := p.ExpectWord(clause, "", w); err != nil {
				return err
			}
		}
	}
	if err := handler(p, clause); err != nil {
		return err
	}
	spec.Add(label, clause)
	return nil
}

func (p *Parser) parseSelectItem() (*cst.Node, error) {
	item := cst.New(cst.RuleSelectItem)
	if p.Check(token.STAR) {
		star := cst.New(cst.RuleStar)
		p.Consume(star, "")
		item.Add("expr", star)
		return item, nil
	}
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	item.Add("expr", e)
	if e.Rule == cst.RuleStar {
		return item, nil
	}
	switch {
	case p.Match(item, "", token.AS):
		if p.Check(token.STRING) {
			p.Consume(item, "alias")
			break
		}
		alias, err := p.generalIdent()
		if err != nil {
			return nil, err
		}
		item.Add("alias", alias)
	case p.Check(token.STRING) || p.isAliasCandidate():
		p.Consume(item, "alias")
	}
	return item, nil
}

// aliasStop lists words that end an expression or table reference rather
// than naming an implicit alias, even where the dialect does not reserve them.
var aliasStop = map[token.TokenType]bool{
	token.FROM: true, token.WHERE: true, token.GROUP: true, token.HAVING: true,
	token.WINDOW: true, token.ORDER: true, token.LIMIT: true, token.OFFSET: true,
	token.FOR: true, token.LOCK: true, token.INTO: true, token.UNION: true,
	token.EXCEPT: true, token.INTERSECT: true, token.ON: true, token.USING: true,
	token.JOIN: true, token.INNER: true, token.CROSS: true, token.LEFT: true,
	token.RIGHT: true, token.FULL: true, token.NATURAL: true, token.STRAIGHT_JOIN: true,
	token.USE: true, token.FORCE: true, token.IGNORE: true, token.PARTITION: true,
	token.SET: true, token.VALUES: true, token.VALUE: true, token.SELECT: true,
	token.FETCH: true, token.WITH: true,
}

// isAliasCandidate reports whether the current token can be an alias
// written without AS.
func (p *Parser) isAliasCandidate() bool {
	tok := p.Token()
	if tok.Type == token.IDENT {
		return true
	}
	if !p.IsIdentifier(tok, spi.IdentGeneral) || aliasStop[tok.Type] {
		return false
	}
	return !p.d.IsClauseToken(tok.Type) && !p.d.IsJoinTypeToken(tok.Type)
}

// ---------- WITH ----------

func (p *Parser) parseWith() (*cst.Node, error) {
	w := cst.New(cst.RuleWith)
	p.Consume(w, "")
	p.Match(w, "recursive", token.RECURSIVE)
	if err := p.parseList(w, "cte", p.parseCTE); err != nil {
		return nil, err
	}
	return w, nil
}

func (p *Parser) parseCTE() (*cst.Node, error) {
	cte := cst.New(cst.RuleCTE)
	name, err := p.generalIdent()
	if err != nil {
		return nil, err
	}
	cte.Add("name", name)
	if p.Check(token.LPAREN) {
		if err := p.parseParenList(cte, "col", false, p.generalIdent); err != nil {
			return nil, err
		}
	}
	if err := p.Expect(cte, "", token.AS); err != nil {
		return nil, err
	}
	if err := p.Expect(cte, "", token.LPAREN); err != nil {
		return nil, err
	}
	q, err := p.parseSelectStmt(nil)
	if err != nil {
		return nil, err
	}
	cte.Add("query", q)
	if err := p.Expect(cte, "", token.RPAREN); err != nil {
		return nil, err
	}
	return cte, nil
}

// ---------- ORDER BY / LIMIT ----------

// ParseOrderBy parses ORDER BY item, ...
func (p *Parser) ParseOrderBy() (*cst.Node, error) {
	ob := cst.New(cst.RuleOrderBy)
	if err := p.Expect(ob, "", token.ORDER); err != nil {
		return nil, err
	}
	if err := p.Expect(ob, "", token.BY); err != nil {
		return nil, err
	}
	if err := p.parseList(ob, "item", p.parseOrderItem); err != nil {
		return nil, err
	}
	return ob, nil
}

func (p *Parser) parseOrderItem() (*cst.Node, error) {
	item := cst.New(cst.RuleOrderItem)
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	item.Add("expr", e)
	if p.checkAny(token.ASC, token.DESC) {
		p.Consume(item, "dir")
	}
	if p.d.Features.NullsOrdering && p.Check(token.NULLS) {
		p.Consume(item, "nulls")
		if !p.checkAny(token.FIRST, token.LAST) {
			return nil, p.Unexpected("FIRST", "LAST")
		}
		p.Consume(item, "nulls")
	}
	return item, nil
}

// atLimit reports whether a LIMIT clause (or a bare OFFSET where the dialect
// has one) starts here.
func (p *Parser) atLimit() bool {
	return p.Check(token.LIMIT) || (p.Check(token.OFFSET) && !p.d.Features.LimitComma)
}

// ParseLimit parses LIMIT count [OFFSET offset], LIMIT offset, count, or a
// bare OFFSET offset.
func (p *Parser) ParseLimit() (*cst.Node, error) {
	lim := cst.New(cst.RuleLimit)
	if p.Match(lim, "", token.OFFSET) {
		off, err := p.parseLimitValue()
		if err != nil {
			return nil, err
		}
		lim.Add("offset", off)
		return lim, nil
	}
	if err := p.Expect(lim, "", token.LIMIT); err != nil {
		return nil, err
	}
	if !p.d.Features.LimitComma && p.Check(token.ALL) {
		p.Consume(lim, "all")
	} else {
		first, err := p.parseLimitValue()
		if err != nil {
			return nil, err
		}
		if p.d.Features.LimitComma && p.Check(token.COMMA) {
			lim.Add("offset", first)
			p.Consume(lim, "")
			count, err := p.parseLimitValue()
			if err != nil {
				return nil, err
			}
			lim.Add("count", count)
			return lim, nil
		}
		lim.Add("count", first)
	}
	if p.Match(lim, "", token.OFFSET) {
		off, err := p.parseLimitValue()
		if err != nil {
			return nil, err
		}
		lim.Add("offset", off)
	}
	return lim, nil
}

// parseLimitValue accepts a number, a parameter marker or a local variable.
func (p *Parser) parseLimitValue() (*cst.Node, error) {
	tok := p.Token()
	switch {
	case tok.Type == token.NUMBER:
		lit := cst.New(cst.RuleLiteral)
		p.Consume(lit, "part")
		return lit, nil
	case tok.Type == token.PARAM:
		param := cst.New(cst.RuleParam)
		p.Consume(param, "marker")
		return param, nil
	case p.IsIdentifier(tok, spi.IdentGeneral):
		col := cst.New(cst.RuleColumnRef)
		p.Consume(col, "part")
		return col, nil
	}
	return nil, p.Unexpected("number", "parameter marker")
}

// ---------- Locking ----------

func (p *Parser) atLock() bool {
	if p.Check(token.FOR) {
		next := p.Peek()
		return next.Type == token.UPDATE || next.Type == token.SHARE
	}
	return p.d.Features.LockInShareMode && p.Check(token.LOCK) && p.Peek().Type == token.IN
}

// parseLock parses FOR UPDATE|SHARE [OF t, ...] [NOWAIT|SKIP LOCKED] or
// LOCK IN SHARE MODE.
func (p *Parser) parseLock() (*cst.Node, error) {
	lock := cst.New(cst.RuleLock)
	if p.Check(token.LOCK) {
		p.Consume(lock, "strength")
		p.Consume(lock, "strength")
		if err := p.Expect(lock, "strength", token.SHARE); err != nil {
			return nil, err
		}
		if err := p.Expect(lock, "strength", token.MODE); err != nil {
			return nil, err
		}
		return lock, nil
	}
	p.Consume(lock, "strength")
	p.Consume(lock, "strength")
	if p.Match(lock, "", token.OF) {
		if err := p.parseList(lock, "table", p.parseTableNameOnly); err != nil {
			return nil, err
		}
	}
	switch {
	case p.Check(token.NOWAIT):
		p.Consume(lock, "wait")
	case p.Check(token.SKIP) && p.Peek().Type == token.LOCKED:
		p.Consume(lock, "wait")
		p.Consume(lock, "wait")
	}
	return lock, nil
}

// ---------- INTO ----------

func (p *Parser) atInto() bool {
	return p.d.Features.SelectInto && p.Check(token.INTO)
}

// parseInto parses INTO OUTFILE 'f' [CHARACTER SET cs] [export options],
// INTO DUMPFILE 'f' or INTO var, ...
func (p *Parser) parseInto() (*cst.Node, error) {
	into := cst.New(cst.RuleInto)
	p.Consume(into, "")
	switch {
	case p.Check(token.OUTFILE):
		p.Consume(into, "outfile")
		file, err := p.ParseStringLiteral()
		if err != nil {
			return nil, err
		}
		into.Add("file", file)
		if err := p.parseCharsetClause(into); err != nil {
			return nil, err
		}
		ex, err := p.ParseExportOptions()
		if err != nil {
			return nil, err
		}
		into.Add("export", ex)
	case p.Check(token.DUMPFILE):
		p.Consume(into, "dumpfile")
		file, err := p.ParseStringLiteral()
		if err != nil {
			return nil, err
		}
		into.Add("file", file)
	default:
		if err := p.parseList(into, "var", p.parseVariableTarget); err != nil {
			return nil, err
		}
	}
	return into, nil
}

// parseVariableTarget parses @user_var or a local variable name.
func (p *Parser) parseVariableTarget() (*cst.Node, error) {
	tok := p.Token()
	switch {
	case tok.Type == token.USER_VAR:
		v := cst.New(cst.RuleUserVar)
		p.Consume(v, "name")
		return v, nil
	case p.IsIdentifier(tok, spi.IdentGeneral):
		col := cst.New(cst.RuleColumnRef)
		p.Consume(col, "part")
		return col, nil
	}
	return nil, p.Unexpected("variable")
}

// parseCharsetClause parses an optional CHARACTER SET cs or CHARSET cs,
// adding the name under "charset".
func (p *Parser) parseCharsetClause(n *cst.Node) error {
	switch {
	case p.Check(token.CHARACTER) && p.Peek().Type == token.SET:
		p.Consume(n, "")
		p.Consume(n, "")
	case p.Check(token.CHARSET):
		p.Consume(n, "")
	default:
		return nil
	}
	return p.parseCharsetName(n, "charset")
}

// parseCharsetName accepts a charset or collation name: any word or string.
func (p *Parser) parseCharsetName(n *cst.Node, label string) error {
	tok := p.Token()
	if !isWord(tok) && tok.Type != token.STRING {
		return p.Unexpected("character set name")
	}
	p.Consume(n, label)
	return nil
}

// ParseExportOptions parses the FIELDS|COLUMNS and LINES options shared by
// SELECT ... INTO OUTFILE and LOAD DATA. It returns nil when neither is
// present.
func (p *Parser) ParseExportOptions() (*cst.Node, error) {
	ex := cst.New(cst.RuleExportOptions)
	if p.Check(token.FIELDS) || p.CheckWord("COLUMNS") {
		p.Consume(ex, "fields")
		before := len(ex.Children)
		for {
			var label string
			switch {
			case p.Check(token.TERMINATED):
				p.Consume(ex, "")
				label = "fields_terminated"
			case p.Check(token.OPTIONALLY) || p.Check(token.ENCLOSED):
				p.Match(ex, "optionally", token.OPTIONALLY)
				if err := p.Expect(ex, "", token.ENCLOSED); err != nil {
					return nil, err
				}
				label = "enclosed"
			case p.Check(token.ESCAPED):
				p.Consume(ex, "")
				label = "escaped"
			}
			if label == "" {
				break
			}
			if err := p.byString(ex, label); err != nil {
				return nil, err
			}
		}
		if len(ex.Children) == before {
			return nil, p.Unexpected("TERMINATED", "ENCLOSED", "ESCAPED")
		}
	}
	if p.Check(token.LINES) {
		p.Consume(ex, "lines")
		before := len(ex.Children)
		for {
			var label string
			switch {
			case p.Check(token.STARTING):
				label = "lines_starting"
			case p.Check(token.TERMINATED):
				label = "lines_terminated"
			}
			if label == "" {
				break
			}
			p.Consume(ex, "")
			if err := p.byString(ex, label); err != nil {
				return nil, err
			}
		}
		if len(ex.Children) == before {
			return nil, p.Unexpected("STARTING", "TERMINATED")
		}
	}
	if len(ex.Children) == 0 {
		return nil, nil
	}
	return ex, nil
}

// byString parses BY 'string'.
func (p *Parser) byString(n *cst.Node, label string) error {
	if err := p.Expect(n, "", token.BY); err != nil {
		return err
	}
	s, err := p.ParseStringLiteral()
	if err != nil {
		return err
	}
	n.Add(label, s)
	return nil
}
