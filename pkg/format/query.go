package format

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

func (p *Printer) formatSelectStmt(stmt *core.SelectStmt) {
	if stmt == nil {
		return
	}

	if stmt.With != nil {
		p.formatWithClause(stmt.With)
	}

	p.formatQueryExpr(stmt.Query)

	p.formatOrderLimit(stmt.OrderBy, stmt.Limit)
	if stmt.Into != nil && !stmt.IntoAfterLock {
		p.newline()
		p.formatInto(stmt.Into)
	}
	for _, l := range stmt.Locks {
		p.newline()
		p.formatLock(l)
	}
	if stmt.Into != nil && stmt.IntoAfterLock {
		p.newline()
		p.formatInto(stmt.Into)
	}
}

// formatOrderLimit prints the ORDER BY and LIMIT lines shared by queries,
// UPDATE and DELETE.
func (p *Printer) formatOrderLimit(orderBy []*core.OrderByItem, limit *core.Limit) {
	if len(orderBy) > 0 {
		p.newline()
		p.formatOrderBy(orderBy)
	}
	if limit != nil {
		p.newline()
		p.formatLimit(limit)
	}
}

func (p *Printer) formatWithClause(with *core.WithClause) {
	p.kw(token.WITH)
	if with.Recursive {
		p.space()
		p.kw(token.RECURSIVE)
	}
	p.writeln()

	p.indent()
	p.formatList(len(with.CTEs), func(i int) {
		cte := with.CTEs[i]
		p.ident(cte.Name)
		if len(cte.Columns) > 0 {
			p.space()
			p.parenIdents(cte.Columns)
		}
		p.space()
		p.kw(token.AS)
		p.space()
		p.formatSubquery(cte.Query)
	}, ",", true)
	p.writeln()
	p.dedent()
}

func (p *Printer) formatQueryExpr(q core.QueryExpr) {
	switch q := q.(type) {
	case *core.QuerySpec:
		p.formatQuerySpec(q)
	case *core.SetOperation:
		p.formatQueryExpr(q.Left)
		p.newline()
		p.keyword(q.Op.String())
		if q.Quantifier != "" {
			p.space()
			p.keyword(q.Quantifier)
		}
		p.writeln()
		p.formatQueryExpr(q.Right)
	case *core.ParenQuery:
		p.formatSubquery(q.Select)
	case *core.TableQuery:
		p.kw(token.TABLE)
		p.space()
		p.formatTableName(q.Table)
	case *core.ValuesQuery:
		p.kw(token.VALUES)
		p.space()
		p.formatList(len(q.Rows), func(i int) { p.formatExpr(q.Rows[i]) }, ", ", false)
	}
}

func (p *Printer) formatQuerySpec(q *core.QuerySpec) {
	p.kw(token.SELECT)
	for _, opt := range q.Options {
		p.space()
		p.keyword(string(opt))
	}
	p.writeln()

	p.indent()
	p.formatList(len(q.Items), func(i int) { p.formatSelectItem(q.Items[i]) }, ",", true)
	p.writeln()
	p.dedent()

	if q.Into != nil {
		p.formatInto(q.Into)
		p.writeln()
	}

	switch {
	case q.FromDual:
		p.kw(token.FROM)
		p.space()
		p.kw(token.DUAL)
		p.writeln()
	case len(q.From) > 0:
		p.kw(token.FROM)
		p.space()
		p.formatTableRefs(q.From)
		p.writeln()
	}

	if q.Where != nil {
		p.formatCondition(token.WHERE, q.Where)
	}

	if q.GroupBy != nil {
		p.kw(token.GROUP, token.BY)
		p.space()
		p.exprs(q.GroupBy.Items)
		if q.GroupBy.WithRollup {
			p.space()
			p.kw(token.WITH, token.ROLLUP)
		}
		p.writeln()
	}

	if q.Having != nil {
		p.formatCondition(token.HAVING, q.Having)
	}

	if len(q.Windows) > 0 {
		p.kw(token.WINDOW)
		p.space()
		p.formatList(len(q.Windows), func(i int) {
			w := q.Windows[i]
			p.ident(w.Name)
			p.space()
			p.kw(token.AS)
			p.space()
			p.formatWindowSpec(w.Spec)
		}, ", ", false)
		p.writeln()
	}
}

// formatCondition prints WHERE or HAVING with the condition indented below.
func (p *Printer) formatCondition(kw token.TokenType, cond core.Expr) {
	p.kw(kw)
	p.writeln()
	p.indent()
	p.formatExpr(cond)
	p.dedent()
	p.writeln()
}

func (p *Printer) formatSelectItem(item *core.SelectItem) {
	p.formatExpr(item.Expr)
	if item.Alias != nil {
		p.space()
		p.kw(token.AS)
		p.space()
		p.ident(item.Alias)
	}
}

func (p *Printer) formatOrderBy(items []*core.OrderByItem) {
	p.kw(token.ORDER, token.BY)
	p.space()
	p.formatList(len(items), func(i int) { p.formatOrderByItem(items[i]) }, ", ", false)
}

func (p *Printer) formatOrderByItem(item *core.OrderByItem) {
	p.formatExpr(item.Expr)
	if item.Desc {
		p.space()
		p.kw(token.DESC)
	}
	if item.NullsFirst != nil {
		p.space()
		if *item.NullsFirst {
			p.kw(token.NULLS, token.FIRST)
		} else {
			p.kw(token.NULLS, token.LAST)
		}
	}
}

func (p *Printer) formatLimit(l *core.Limit) {
	p.kw(token.LIMIT)
	p.space()
	p.formatExpr(l.Count)
	if l.Offset != nil {
		p.space()
		p.kw(token.OFFSET)
		p.space()
		p.formatExpr(l.Offset)
	}
}

func (p *Printer) formatLock(l *core.LockClause) {
	p.keyword(l.Strength.String())
	if len(l.Tables) > 0 {
		p.space()
		p.kw(token.OF)
		p.space()
		p.formatList(len(l.Tables), func(i int) { p.formatTableName(l.Tables[i]) }, ", ", false)
	}
	if l.Wait != core.LockWaitDefault {
		p.space()
		p.keyword(l.Wait.String())
	}
}

func (p *Printer) formatInto(into *core.IntoClause) {
	p.kw(token.INTO)
	p.space()
	switch into.Kind {
	case core.IntoOutfile:
		p.kw(token.OUTFILE)
		p.space()
		p.str(into.File)
		if into.Charset != "" {
			p.space()
			p.kw(token.CHARACTER, token.SET)
			p.space()
			p.word(into.Charset)
		}
		p.formatExportOptions(into.Export)
	case core.IntoDumpfile:
		p.kw(token.DUMPFILE)
		p.space()
		p.str(into.File)
	default:
		p.exprs(into.Vars)
	}
}

func (p *Printer) formatExportOptions(e *core.ExportOptions) {
	if e == nil {
		return
	}
	if e.HasFields() {
		p.space()
		p.kw(token.FIELDS)
		p.optionalString(e.FieldsTerminatedBy, token.TERMINATED, token.BY)
		if e.FieldsEnclosedBy != nil {
			if e.OptionallyEnclosed {
				p.space()
				p.kw(token.OPTIONALLY)
			}
			p.optionalString(e.FieldsEnclosedBy, token.ENCLOSED, token.BY)
		}
		p.optionalString(e.FieldsEscapedBy, token.ESCAPED, token.BY)
	}
	if e.HasLines() {
		p.space()
		p.kw(token.LINES)
		p.optionalString(e.LinesStartingBy, token.STARTING, token.BY)
		p.optionalString(e.LinesTerminatedBy, token.TERMINATED, token.BY)
	}
}

func (p *Printer) optionalString(s *string, kws ...token.TokenType) {
	if s == nil {
		return
	}
	p.space()
	p.kw(kws...)
	p.space()
	p.str(*s)
}

// ---------- Table References ----------

func (p *Printer) formatTableRefs(refs []core.TableRef) {
	p.formatList(len(refs), func(i int) { p.formatTableRef(refs[i]) }, ", ", false)
}

func (p *Printer) formatTableRef(ref core.TableRef) {
	switch t := ref.(type) {
	case *core.TableName:
		p.formatTableName(t)
	case *core.DerivedTable:
		if t.Lateral {
			p.kw(token.LATERAL)
			p.space()
		}
		p.formatSubquery(t.Query)
		if t.Alias != nil {
			p.space()
			p.kw(token.AS)
			p.space()
			p.ident(t.Alias)
		}
		if len(t.Columns) > 0 {
			p.space()
			p.parenIdents(t.Columns)
		}
	case *core.JoinExpr:
		p.formatJoin(t)
	case *core.ParenTableRef:
		p.write("(")
		p.formatTableRefs(t.Items)
		p.write(")")
	}
}

func (p *Printer) formatTableName(t *core.TableName) {
	if t == nil {
		return
	}
	p.qualified(t.Schema, t.Name)
	if len(t.Partitions) > 0 {
		p.space()
		p.kw(token.PARTITION)
		p.space()
		p.parenIdents(t.Partitions)
	}
	if t.Alias != nil {
		p.space()
		p.kw(token.AS)
		p.space()
		p.ident(t.Alias)
	}
	for _, h := range t.IndexHints {
		p.space()
		p.keyword(string(h.Action))
		p.space()
		p.kw(token.INDEX)
		if h.For != "" {
			p.space()
			p.kw(token.FOR)
			p.space()
			p.keyword(h.For)
		}
		p.space()
		p.parenIdents(h.Indexes)
	}
}

var joinKeywords = map[core.JoinType][]token.TokenType{
	core.JoinInner:    {token.JOIN},
	core.JoinCross:    {token.CROSS, token.JOIN},
	core.JoinStraight: {token.STRAIGHT_JOIN},
	core.JoinLeft:     {token.LEFT, token.JOIN},
	core.JoinRight:    {token.RIGHT, token.JOIN},
	core.JoinFull:     {token.FULL, token.JOIN},
}

func (p *Printer) formatJoin(j *core.JoinExpr) {
	p.formatTableRef(j.Left)
	p.writeln()
	if j.Natural {
		p.kw(token.NATURAL)
		p.space()
	}
	p.kw(joinKeywords[j.Type]...)
	p.space()
	p.formatTableRef(j.Right)
	switch {
	case j.On != nil:
		p.space()
		p.kw(token.ON)
		p.space()
		p.formatExpr(j.On)
	case len(j.Using) > 0:
		p.space()
		p.kw(token.USING)
		p.space()
		p.parenIdents(j.Using)
	}
}
