package builder

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
)

// ---------- INSERT / REPLACE ----------

func (b *builder) insertBody(n *cst.Node) core.InsertBody {
	body := core.InsertBody{
		Table:    b.tableName(n.Child("table")),
		Select:   b.selectStmt(n.Child("query")),
		Set:      b.assignments(n.All("set")),
		RowAlias: b.ident(n.Child("row_alias")),
	}
	if p := n.Child("priority"); p != nil {
		body.Priority = p.Upper()
	}
	for _, c := range n.All("column") {
		if col := b.columnRef(c); col != nil {
			body.Columns = append(body.Columns, col.Name)
		}
	}
	if kw := n.Child("values_kw"); kw != nil {
		body.ValuesKeyword = kw.Upper()
	}
	body.RowAliasColumns = b.idents(n.All("alias_col"))

	rows := n.All("row")
	for _, r := range rows {
		body.Values = append(body.Values, b.exprs(r.All("item")))
	}
	b.checkArity(rows, body.Values, len(body.Columns))
	return body
}

// checkArity requires every VALUES row to have the same number of values,
// matching the column list when one is given.
func (b *builder) checkArity(rows []*cst.Node, values [][]core.Expr, columns int) {
	if len(values) == 0 {
		return
	}
	want := columns
	if want == 0 {
		want = len(values[0])
	}
	for i, row := range values {
		if len(row) != want {
			b.fail(rows[i], "row %d has %d values, expected %d", i+1, len(row), want)
			return
		}
	}
}

func buildInsert(b *builder, n *cst.Node) core.Stmt {
	return &core.InsertStmt{
		NodeInfo:    info(n),
		InsertBody:  b.insertBody(n),
		Ignore:      n.Has("ignore"),
		OnDuplicate: b.assignments(n.All("dup")),
	}
}

func buildReplace(b *builder, n *cst.Node) core.Stmt {
	return &core.ReplaceStmt{NodeInfo: info(n), InsertBody: b.insertBody(n)}
}

func (b *builder) assignments(nodes []*cst.Node) []*core.Assignment {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*core.Assignment, 0, len(nodes))
	for _, a := range nodes {
		out = append(out, &core.Assignment{
			NodeInfo: info(a),
			Column:   b.columnRef(a.Child("column")),
			Value:    b.expr(a.Child("value")),
		})
	}
	return out
}

// ---------- UPDATE / DELETE ----------

func buildUpdate(b *builder, n *cst.Node) core.Stmt {
	u := &core.UpdateStmt{
		NodeInfo:    info(n),
		With:        b.withClause(n.Child("with")),
		LowPriority: n.Has("low_priority"),
		Ignore:      n.Has("ignore"),
		Tables:      b.tableRefs(n.All("table")),
		Set:         b.assignments(n.All("set")),
		Where:       b.where(n.Child("where")),
		OrderBy:     b.orderBy(n.Child("order")),
		Limit:       b.limit(n.Child("limit")),
	}
	if u.MultiTable() {
		b.rejectMultiTableTail(n, "UPDATE")
	}
	return u
}

func (b *builder) rejectMultiTableTail(n *cst.Node, stmt string) {
	if o := n.Child("order"); o != nil {
		b.fail(o, "multiple-table %s does not allow ORDER BY", stmt)
	} else if l := n.Child("limit"); l != nil {
		b.fail(l, "multiple-table %s does not allow LIMIT", stmt)
	}
}

func buildDelete(b *builder, n *cst.Node) core.Stmt {
	d := &core.DeleteStmt{
		NodeInfo: info(n),
		With:     b.withClause(n.Child("with")),
		From:     b.tableRefs(n.All("ref")),
		Where:    b.where(n.Child("where")),
		OrderBy:  b.orderBy(n.Child("order")),
		Limit:    b.limit(n.Child("limit")),
	}
	for _, o := range n.All("option") {
		switch o.Upper() {
		case "LOW_PRIORITY":
			d.LowPriority = true
		case "QUICK":
			d.Quick = true
		case "IGNORE":
			d.Ignore = true
		}
	}
	for _, t := range n.All("target") {
		d.Targets = append(d.Targets, b.tableName(t))
	}
	switch {
	case n.Has("using_kw"):
		d.Form = core.DeleteMultiUsing
	case len(d.Targets) > 0:
		d.Form = core.DeleteMultiFrom
	default:
		d.Form = core.DeleteSingle
	}
	if d.Form != core.DeleteSingle {
		b.rejectMultiTableTail(n, "DELETE")
	}
	return d
}

// ---------- CALL / DO ----------

func buildCall(b *builder, n *cst.Node) core.Stmt {
	c := &core.CallStmt{
		NodeInfo: info(n),
		Args:     b.exprs(n.All("arg")),
		Parens:   n.Has("lparen"),
	}
	c.Schema, c.Name = b.qualifiedName(n.Child("name"), "procedure")
	return c
}

func buildDo(b *builder, n *cst.Node) core.Stmt {
	return &core.DoStmt{NodeInfo: info(n), Exprs: b.exprs(n.All("expr"))}
}

// ---------- HANDLER ----------

func buildHandlerOpen(b *builder, n *cst.Node) core.Stmt {
	return &core.HandlerOpenStmt{
		NodeInfo: info(n),
		Table:    b.tableName(n.Child("table")),
		Alias:    b.ident(n.Child("alias")),
	}
}

func buildHandlerRead(b *builder, n *cst.Node) core.Stmt {
	h := &core.HandlerReadStmt{
		NodeInfo: info(n),
		Table:    b.tableName(n.Child("table")),
		Index:    b.ident(n.Child("index")),
		Values:   b.exprs(n.All("value")),
		Where:    b.where(n.Child("where")),
		Limit:    b.limit(n.Child("limit")),
	}
	if d := n.Child("direction"); d != nil {
		h.Direction = d.Upper()
	}
	if op := n.Child("op"); op != nil {
		bop, ok := b.d.BinaryOp(op.Token.Type)
		if !ok {
			b.fail(op, "unsupported HANDLER comparison %s", op.Token.Raw)
			return nil
		}
		h.Op = bop
	}
	return h
}

func buildHandlerClose(b *builder, n *cst.Node) core.Stmt {
	return &core.HandlerCloseStmt{NodeInfo: info(n), Table: b.tableName(n.Child("table"))}
}

// ---------- LOAD / IMPORT ----------

func (b *builder) loadBody(n *cst.Node) core.LoadBody {
	body := core.LoadBody{
		Local:      n.Has("local"),
		File:       b.str(n.Child("file")),
		Table:      b.tableName(n.Child("table")),
		IgnoreRows: b.literal(n.Child("ignore_rows")),
		Columns:    b.exprs(n.All("column")),
		Set:        b.assignments(n.All("set")),
	}
	if body.Table != nil {
		body.Table.Partitions = b.idents(n.All("partition"))
	}
	if p := n.Child("priority"); p != nil {
		body.Priority = p.Upper()
	}
	if d := n.Child("duplicate"); d != nil {
		body.Duplicate = d.Upper()
	}
	if cs := n.Child("charset"); cs != nil {
		body.Charset = cs.Text()
	}
	if u := n.Child("ignore_unit"); u != nil {
		body.IgnoreUnit = u.Upper()
	}
	return body
}

func buildLoadData(b *builder, n *cst.Node) core.Stmt {
	return &core.LoadDataStmt{
		NodeInfo: info(n),
		LoadBody: b.loadBody(n),
		Export:   b.exportOptions(n.Child("export")),
	}
}

func buildLoadXML(b *builder, n *cst.Node) core.Stmt {
	return &core.LoadXMLStmt{
		NodeInfo:         info(n),
		LoadBody:         b.loadBody(n),
		RowsIdentifiedBy: b.str(n.Child("rows_identified")),
	}
}

func buildImportTable(b *builder, n *cst.Node) core.Stmt {
	return &core.ImportTableStmt{NodeInfo: info(n), Files: b.strs(n.All("file"))}
}
