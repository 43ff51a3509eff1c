package format

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

func (p *Printer) formatStmt(stmt core.Stmt) {
	switch s := stmt.(type) {
	case nil:
		return
	case *core.SelectStmt:
		p.formatSelectStmt(s)
	case *core.InsertStmt:
		p.formatInsert(s)
	case *core.ReplaceStmt:
		p.formatReplace(s)
	case *core.UpdateStmt:
		p.formatUpdate(s)
	case *core.DeleteStmt:
		p.formatDelete(s)
	case *core.CallStmt:
		p.formatCall(s)
	case *core.DoStmt:
		p.keyword("DO")
		p.space()
		p.exprs(s.Exprs)
	case *core.HandlerOpenStmt, *core.HandlerReadStmt, *core.HandlerCloseStmt:
		p.formatHandler(s)
	case *core.LoadDataStmt:
		p.formatLoadData(s)
	case *core.LoadXMLStmt:
		p.formatLoadXML(s)
	case *core.ImportTableStmt:
		p.keyword("IMPORT")
		p.space()
		p.kw(token.TABLE, token.FROM)
		p.space()
		p.strs(s.Files)
	default:
		p.formatDALStmt(stmt)
	}
}

// ---------- INSERT / REPLACE ----------

func (p *Printer) formatInsert(s *core.InsertStmt) {
	p.kw(token.INSERT)
	p.formatPriority(s.Priority)
	if s.Ignore {
		p.space()
		p.kw(token.IGNORE)
	}
	p.formatInsertBody(&s.InsertBody)

	if len(s.OnDuplicate) > 0 {
		p.newline()
		p.kw(token.ON, token.DUPLICATE, token.KEY, token.UPDATE)
		p.writeln()
		p.formatAssignments(s.OnDuplicate)
	}
}

func (p *Printer) formatReplace(s *core.ReplaceStmt) {
	p.kw(token.REPLACE)
	p.formatPriority(s.Priority)
	p.formatInsertBody(&s.InsertBody)
}

func (p *Printer) formatPriority(priority string) {
	if priority != "" {
		p.space()
		p.keyword(priority)
	}
}

func (p *Printer) formatInsertBody(body *core.InsertBody) {
	p.space()
	p.kw(token.INTO)
	p.space()
	p.formatTableName(body.Table)
	if len(body.Columns) > 0 {
		p.space()
		p.parenIdents(body.Columns)
	}
	p.writeln()

	switch {
	case body.Select != nil:
		p.formatSelectStmt(body.Select)
	case len(body.Set) > 0:
		p.kw(token.SET)
		p.writeln()
		p.formatAssignments(body.Set)
	default:
		kw := body.ValuesKeyword
		if kw == "" {
			kw = "VALUES"
		}
		p.keyword(kw)
		p.writeln()
		p.indent()
		p.formatList(len(body.Values), func(i int) {
			p.write("(")
			p.exprs(body.Values[i])
			p.write(")")
		}, ",", true)
		p.dedent()
	}

	if body.RowAlias != nil {
		p.newline()
		p.kw(token.AS)
		p.space()
		p.ident(body.RowAlias)
		if len(body.RowAliasColumns) > 0 {
			p.space()
			p.parenIdents(body.RowAliasColumns)
		}
	}
}

// formatAssignments prints one indented col = value pair per line.
func (p *Printer) formatAssignments(list []*core.Assignment) {
	p.indent()
	p.formatList(len(list), func(i int) {
		p.formatColumnRef(list[i].Column)
		p.write(" = ")
		p.formatExpr(list[i].Value)
	}, ",", true)
	p.dedent()
}

// ---------- UPDATE / DELETE ----------

func (p *Printer) formatUpdate(s *core.UpdateStmt) {
	if s.With != nil {
		p.formatWithClause(s.With)
	}
	p.kw(token.UPDATE)
	if s.LowPriority {
		p.space()
		p.kw(token.LOW_PRIORITY)
	}
	if s.Ignore {
		p.space()
		p.kw(token.IGNORE)
	}
	p.space()
	p.formatTableRefs(s.Tables)
	p.writeln()

	p.kw(token.SET)
	p.writeln()
	p.formatAssignments(s.Set)
	p.writeln()

	if s.Where != nil {
		p.formatCondition(token.WHERE, s.Where)
	}
	p.formatOrderLimit(s.OrderBy, s.Limit)
}

func (p *Printer) formatDelete(s *core.DeleteStmt) {
	if s.With != nil {
		p.formatWithClause(s.With)
	}
	p.kw(token.DELETE)
	if s.LowPriority {
		p.space()
		p.kw(token.LOW_PRIORITY)
	}
	if s.Quick {
		p.space()
		p.kw(token.QUICK)
	}
	if s.Ignore {
		p.space()
		p.kw(token.IGNORE)
	}

	targets := func() {
		p.formatList(len(s.Targets), func(i int) {
			p.qualified(s.Targets[i].Schema, s.Targets[i].Name)
		}, ", ", false)
	}

	p.space()
	switch s.Form {
	case core.DeleteMultiFrom:
		targets()
		p.writeln()
		p.kw(token.FROM)
		p.space()
		p.formatTableRefs(s.From)
	case core.DeleteMultiUsing:
		p.kw(token.FROM)
		p.space()
		targets()
		p.writeln()
		p.kw(token.USING)
		p.space()
		p.formatTableRefs(s.From)
	default:
		p.kw(token.FROM)
		p.space()
		p.formatTableRefs(s.From)
	}
	p.writeln()

	if s.Where != nil {
		p.formatCondition(token.WHERE, s.Where)
	}
	p.formatOrderLimit(s.OrderBy, s.Limit)
}

// ---------- CALL / HANDLER ----------

func (p *Printer) formatCall(s *core.CallStmt) {
	p.kw(token.CALL)
	p.space()
	p.qualified(s.Schema, s.Name)
	if s.Parens || len(s.Args) > 0 {
		p.write("(")
		p.exprs(s.Args)
		p.write(")")
	}
}

func (p *Printer) formatHandler(stmt core.Stmt) {
	p.keyword("HANDLER")
	p.space()
	switch s := stmt.(type) {
	case *core.HandlerOpenStmt:
		p.formatTableName(s.Table)
		p.space()
		p.keyword("OPEN")
		if s.Alias != nil {
			p.space()
			p.kw(token.AS)
			p.space()
			p.ident(s.Alias)
		}
	case *core.HandlerCloseStmt:
		p.formatTableName(s.Table)
		p.space()
		p.keyword("CLOSE")
	case *core.HandlerReadStmt:
		p.formatTableName(s.Table)
		p.space()
		p.keyword("READ")
		if s.Index != nil {
			p.space()
			p.ident(s.Index)
		}
		p.space()
		if s.Direction != "" {
			p.keyword(s.Direction)
		} else {
			p.write(s.Op.String())
			p.write(" (")
			p.exprs(s.Values)
			p.write(")")
		}
		if s.Where != nil {
			p.space()
			p.kw(token.WHERE)
			p.space()
			p.formatExpr(s.Where)
		}
		if s.Limit != nil {
			p.space()
			p.formatLimit(s.Limit)
		}
	}
}

// ---------- LOAD ----------

func (p *Printer) formatLoadHead(kind string, body *core.LoadBody) {
	p.keyword("LOAD", kind)
	p.formatPriority(body.Priority)
	if body.Local {
		p.space()
		p.keyword("LOCAL")
	}
	p.space()
	p.keyword("INFILE")
	p.space()
	p.str(body.File)
	if body.Duplicate != "" {
		p.space()
		p.keyword(body.Duplicate)
	}
	p.writeln()
	p.kw(token.INTO, token.TABLE)
	p.space()
	p.formatTableName(body.Table)
	if body.Charset != "" {
		p.space()
		p.kw(token.CHARACTER, token.SET)
		p.space()
		p.word(body.Charset)
	}
}

func (p *Printer) formatLoadTail(body *core.LoadBody) {
	if body.IgnoreRows != nil {
		p.newline()
		p.kw(token.IGNORE)
		p.space()
		p.formatLiteral(body.IgnoreRows)
		p.space()
		p.keyword(body.IgnoreUnit)
	}
	if len(body.Columns) > 0 {
		p.newline()
		p.write("(")
		p.exprs(body.Columns)
		p.write(")")
	}
	if len(body.Set) > 0 {
		p.newline()
		p.kw(token.SET)
		p.writeln()
		p.formatAssignments(body.Set)
	}
}

func (p *Printer) formatLoadData(s *core.LoadDataStmt) {
	p.formatLoadHead("DATA", &s.LoadBody)
	if s.Export != nil && (s.Export.HasFields() || s.Export.HasLines()) {
		p.writeln()
		p.formatExportOptions(s.Export)
	}
	p.formatLoadTail(&s.LoadBody)
}

func (p *Printer) formatLoadXML(s *core.LoadXMLStmt) {
	p.formatLoadHead("XML", &s.LoadBody)
	if s.RowsIdentifiedBy != "" {
		p.writeln()
		p.kw(token.ROWS)
		p.space()
		p.keyword("IDENTIFIED")
		p.space()
		p.kw(token.BY)
		p.space()
		p.str(s.RowsIdentifiedBy)
	}
	p.formatLoadTail(&s.LoadBody)
}
