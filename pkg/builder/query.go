package builder

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
)

// ---------- SELECT ----------

func (b *builder) selectStmt(n *cst.Node) *core.SelectStmt {
	if n == nil || b.failed() {
		return nil
	}
	if n.Rule != cst.RuleSelectStmt {
		b.fail(n, "%s is not a query", n.Rule)
		return nil
	}
	s := &core.SelectStmt{
		NodeInfo: info(n),
		With:     b.withClause(n.Child("with")),
		Query:    b.queryExpr(n.Child("query")),
		OrderBy:  b.orderBy(n.Child("order")),
		Limit:    b.limit(n.Child("limit")),
		Into:     b.into(n.Child("into")),
	}
	for _, l := range n.All("lock") {
		s.Locks = append(s.Locks, b.lock(l))
	}
	lockAt := childIndex(n, "lock")
	s.IntoAfterLock = lockAt >= 0 && childIndex(n, "into") > lockAt
	if b.failed() {
		return nil
	}
	return s
}

func (b *builder) withClause(n *cst.Node) *core.WithClause {
	if n == nil {
		return nil
	}
	w := &core.WithClause{NodeInfo: info(n), Recursive: n.Has("recursive")}
	seen := make(map[string]bool)
	for _, c := range n.All("cte") {
		name := c.Child("name")
		key := strings.ToLower(name.Text())
		if seen[key] {
			b.fail(name, "duplicate common table expression name %q", name.Text())
			return nil
		}
		seen[key] = true
		w.CTEs = append(w.CTEs, &core.CTE{
			NodeInfo: info(c),
			Name:     b.ident(name),
			Columns:  b.idents(c.All("col")),
			Query:    b.selectStmt(c.Child("query")),
		})
	}
	return w
}

func buildQuerySpec(b *builder, n *cst.Node) core.QueryExpr {
	q := &core.QuerySpec{NodeInfo: info(n)}
	for _, o := range n.All("option") {
		q.Options = append(q.Options, core.SelectOption(o.Upper()))
	}
	for _, it := range n.All("item") {
		q.Items = append(q.Items, b.selectItem(it))
	}
	q.Into = b.into(n.Child("into"))
	if from := n.Child("from"); from != nil {
		q.FromDual = from.Has("dual")
		q.From = b.tableRefs(from.All("ref"))
	}
	q.Where = b.where(n.Child("where"))
	if g := n.Child("group"); g != nil {
		q.GroupBy = &core.GroupByClause{
			NodeInfo:   info(g),
			Items:      b.exprs(g.All("item")),
			WithRollup: g.Has("rollup"),
		}
	}
	q.Having = b.where(n.Child("having"))
	q.Windows = b.namedWindows(n.Child("window"))
	return q
}

func (b *builder) selectItem(n *cst.Node) *core.SelectItem {
	item := &core.SelectItem{NodeInfo: info(n)}
	if e := n.Child("expr"); e.Rule == cst.RuleStar {
		item.Expr = b.star(e)
	} else {
		item.Expr = b.expr(e)
	}
	item.Alias = b.ident(n.Child("alias"))
	return item
}

// where returns the condition of a WHERE or HAVING clause.
func (b *builder) where(n *cst.Node) core.Expr {
	if n == nil {
		return nil
	}
	return b.expr(n.Child("cond"))
}

func (b *builder) namedWindows(n *cst.Node) []*core.NamedWindow {
	if n == nil {
		return nil
	}
	var out []*core.NamedWindow
	seen := make(map[string]bool)
	for _, w := range n.All("window") {
		name := w.Child("name")
		key := strings.ToLower(name.Text())
		if seen[key] {
			b.fail(name, "window %q is defined twice", name.Text())
			return nil
		}
		seen[key] = true
		out = append(out, &core.NamedWindow{
			NodeInfo: info(w),
			Name:     b.ident(name),
			Spec:     b.windowSpec(w.Child("spec")),
		})
	}
	return out
}

// ---------- Set Operations and Other Query Forms ----------

var setOps = map[string]core.SetOp{
	"UNION":     core.SetUnion,
	"EXCEPT":    core.SetExcept,
	"INTERSECT": core.SetIntersect,
}

func buildSetOperation(b *builder, n *cst.Node) core.QueryExpr {
	opNode := n.Child("op")
	op, ok := setOps[opNode.Upper()]
	if !ok {
		b.fail(opNode, "unknown set operator %s", opNode.Text())
		return nil
	}
	s := &core.SetOperation{
		NodeInfo: info(n),
		Left:     b.queryExpr(n.Child("left")),
		Op:       op,
		Right:    b.queryExpr(n.Child("right")),
	}
	if q := n.Child("quantifier"); q != nil {
		s.Quantifier = q.Upper()
	}
	return s
}

func buildParenQuery(b *builder, n *cst.Node) core.QueryExpr {
	return &core.ParenQuery{NodeInfo: info(n), Select: b.selectStmt(n.Child("select"))}
}

func buildTableQuery(b *builder, n *cst.Node) core.QueryExpr {
	return &core.TableQuery{NodeInfo: info(n), Table: b.tableName(n.Child("table"))}
}

func buildValuesQuery(b *builder, n *cst.Node) core.QueryExpr {
	v := &core.ValuesQuery{NodeInfo: info(n)}
	rows := n.All("row")
	for _, r := range rows {
		v.Rows = append(v.Rows, b.row(r))
	}
	for i, r := range v.Rows {
		if len(r.Items) != len(v.Rows[0].Items) {
			b.fail(rows[i], "row %d has %d values, expected %d", i+1, len(r.Items), len(v.Rows[0].Items))
			return nil
		}
	}
	return v
}

// ---------- ORDER BY / LIMIT ----------

func (b *builder) orderBy(n *cst.Node) []*core.OrderByItem {
	if n == nil {
		return nil
	}
	var out []*core.OrderByItem
	for _, it := range n.All("item") {
		o := &core.OrderByItem{
			NodeInfo: info(it),
			Expr:     b.expr(it.Child("expr")),
			Desc:     it.Child("dir").Upper() == "DESC",
		}
		if nulls := it.All("nulls"); len(nulls) == 2 {
			o.NullsFirst = boolPtr(nulls[1].Upper() == "FIRST")
		}
		out = append(out, o)
	}
	return out
}

func (b *builder) limit(n *cst.Node) *core.Limit {
	if n == nil {
		return nil
	}
	l := &core.Limit{
		NodeInfo: info(n),
		Count:    b.limitValue(n.Child("count")),
		Offset:   b.limitValue(n.Child("offset")),
	}
	if b.failed() {
		return nil
	}
	return l
}

// limitValue rejects numeric literals that are not written as plain digits.
// MySQL refuses 1.0 and 1e2 here even though both denote integers.
func (b *builder) limitValue(n *cst.Node) core.Expr {
	e := b.expr(n)
	lit, ok := e.(*core.Literal)
	if !ok || lit.Kind != core.LiteralNumber {
		return e
	}
	if lit.Value == "" || strings.Trim(lit.Value, "0123456789") != "" {
		b.fail(n, "row count %s is not a non-negative integer", lit.Value)
		return nil
	}
	return e
}

// ---------- Locking and INTO ----------

var lockStrengths = map[string]core.LockStrength{
	"FOR UPDATE":         core.LockForUpdate,
	"FOR SHARE":          core.LockForShare,
	"LOCK IN SHARE MODE": core.LockInShareMode,
}

func (b *builder) lock(n *cst.Node) *core.LockClause {
	strength, ok := lockStrengths[n.Words("strength")]
	if !ok {
		b.fail(n, "unknown locking clause %s", n.Words("strength"))
		return nil
	}
	l := &core.LockClause{NodeInfo: info(n), Strength: strength}
	for _, t := range n.All("table") {
		l.Tables = append(l.Tables, b.tableName(t))
	}
	switch n.Words("wait") {
	case "NOWAIT":
		l.Wait = core.LockNowait
	case "SKIP LOCKED":
		l.Wait = core.LockSkipLocked
	}
	return l
}

func (b *builder) into(n *cst.Node) *core.IntoClause {
	if n == nil {
		return nil
	}
	in := &core.IntoClause{NodeInfo: info(n)}
	switch {
	case n.Has("outfile"):
		in.Kind = core.IntoOutfile
	case n.Has("dumpfile"):
		in.Kind = core.IntoDumpfile
	default:
		in.Kind = core.IntoVariables
		in.Vars = b.exprs(n.All("var"))
	}
	in.File = b.str(n.Child("file"))
	if cs := n.Child("charset"); cs != nil {
		in.Charset = cs.Text()
	}
	in.Export = b.exportOptions(n.Child("export"))
	return in
}

func (b *builder) exportOptions(n *cst.Node) *core.ExportOptions {
	if n == nil {
		return nil
	}
	opt := func(label string) *string {
		if c := n.Child(label); c != nil {
			return strPtr(b.str(c))
		}
		return nil
	}
	return &core.ExportOptions{
		NodeInfo:           info(n),
		FieldsTerminatedBy: opt("fields_terminated"),
		FieldsEnclosedBy:   opt("enclosed"),
		OptionallyEnclosed: n.Has("optionally"),
		FieldsEscapedBy:    opt("escaped"),
		LinesStartingBy:    opt("lines_starting"),
		LinesTerminatedBy:  opt("lines_terminated"),
	}
}
