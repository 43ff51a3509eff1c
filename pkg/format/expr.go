package format

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

const complexityThreshold = 5

func (p *Printer) formatExpr(e core.Expr) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *core.Literal:
		p.formatLiteral(expr)
	case *core.ColumnRef:
		p.formatColumnRef(expr)
	case *core.ParamMarker:
		p.write(expr.Text)
	case *core.UserVariable:
		p.formatUserVariable(expr)
	case *core.SystemVariable:
		p.formatSystemVariable(expr)
	case *core.BinaryExpr:
		p.formatBinaryExpr(expr)
	case *core.UnaryExpr:
		p.formatUnaryExpr(expr)
	case *core.FuncCall:
		p.formatFuncCall(expr)
	case *core.GroupConcatExpr:
		p.formatGroupConcat(expr)
	case *core.CastExpr:
		p.formatCastExpr(expr)
	case *core.ConvertExpr:
		p.formatConvertExpr(expr)
	case *core.ExtractExpr:
		p.kw(token.EXTRACT)
		p.write("(")
		p.keyword(expr.Unit)
		p.space()
		p.kw(token.FROM)
		p.space()
		p.formatExpr(expr.Expr)
		p.write(")")
	case *core.TrimExpr:
		p.formatTrimExpr(expr)
	case *core.SubstringExpr:
		p.formatSubstringExpr(expr)
	case *core.PositionExpr:
		p.kw(token.POSITION)
		p.write("(")
		p.formatExpr(expr.Substr)
		p.space()
		p.kw(token.IN)
		p.space()
		p.formatExpr(expr.Str)
		p.write(")")
	case *core.CharExpr:
		p.formatCharExpr(expr)
	case *core.CaseExpr:
		p.formatCaseExpr(expr)
	case *core.IntervalExpr:
		p.kw(token.INTERVAL)
		p.space()
		p.formatExpr(expr.Value)
		if expr.Unit != "" {
			p.space()
			p.keyword(expr.Unit)
		}
	case *core.SubqueryExpr:
		if expr.Quantifier != "" {
			p.keyword(expr.Quantifier)
			p.space()
		}
		p.formatSubquery(expr.Query)
	case *core.ExistsExpr:
		p.kw(token.EXISTS)
		p.space()
		p.formatSubquery(expr.Query)
	case *core.InExpr:
		p.formatInExpr(expr)
	case *core.BetweenExpr:
		p.formatBetweenExpr(expr)
	case *core.LikeExpr:
		p.formatLikeExpr(expr)
	case *core.RegexpExpr:
		p.formatExpr(expr.Expr)
		p.space()
		p.not(expr.Not)
		p.kw(token.REGEXP)
		p.space()
		p.formatExpr(expr.Pattern)
	case *core.IsExpr:
		p.formatExpr(expr.Expr)
		p.space()
		p.kw(token.IS)
		p.space()
		p.not(expr.Not)
		p.keyword(expr.Value.String())
	case *core.CollateExpr:
		p.formatExpr(expr.Expr)
		p.space()
		p.kw(token.COLLATE)
		p.space()
		p.word(expr.Collation)
	case *core.MatchExpr:
		p.formatMatchExpr(expr)
	case *core.RowExpr:
		if expr.Explicit {
			p.kw(token.ROW)
		}
		p.write("(")
		p.exprs(expr.Items)
		p.write(")")
	case *core.ParenExpr:
		p.write("(")
		p.formatExpr(expr.Expr)
		p.write(")")
	case *core.DefaultExpr:
		p.kw(token.DEFAULT)
		if expr.Column != nil {
			p.write("(")
			p.formatColumnRef(expr.Column)
			p.write(")")
		}
	case *core.StarExpr:
		p.formatStarExpr(expr)
	}
}

func (p *Printer) exprs(list []core.Expr) {
	p.formatList(len(list), func(i int) { p.formatExpr(list[i]) }, ", ", false)
}

func (p *Printer) not(not bool) {
	if not {
		p.kw(token.NOT)
		p.space()
	}
}

func (p *Printer) exprComplexity(e core.Expr) int {
	if e == nil {
		return 0
	}

	switch expr := e.(type) {
	case *core.Literal, *core.ColumnRef, *core.StarExpr, *core.ParamMarker:
		return 1
	case *core.BinaryExpr:
		return 1 + p.exprComplexity(expr.Left) + p.exprComplexity(expr.Right)
	case *core.UnaryExpr:
		return 1 + p.exprComplexity(expr.Operand)
	case *core.FuncCall:
		score := 2
		for _, arg := range expr.Args {
			score += p.exprComplexity(arg)
		}
		return score
	case *core.ParenExpr:
		return p.exprComplexity(expr.Expr)
	case *core.CaseExpr:
		score := 2
		for _, w := range expr.Whens {
			score += p.exprComplexity(w.Condition) + p.exprComplexity(w.Result)
		}
		return score
	case *core.InExpr:
		score := 1 + p.exprComplexity(expr.Expr)
		for _, item := range expr.List {
			score += p.exprComplexity(item)
		}
		return score
	case *core.BetweenExpr:
		return 1 + p.exprComplexity(expr.Expr) + p.exprComplexity(expr.Low) + p.exprComplexity(expr.High)
	default:
		return 1
	}
}

func isLogicalOp(op core.BinaryOp) bool {
	return op == core.OpAnd || op == core.OpOr || op == core.OpXor
}

// ---------- Literals and Names ----------

func (p *Printer) formatLiteral(lit *core.Literal) {
	switch lit.Kind {
	case core.LiteralString:
		switch {
		case lit.Charset == "N":
			p.write("N")
		case lit.Charset != "":
			p.write(lit.Charset)
		}
		p.str(lit.Value)
	case core.LiteralHex:
		p.write("X'" + lit.Value + "'")
	case core.LiteralBit:
		p.write("B'" + lit.Value + "'")
	case core.LiteralBool:
		if strings.EqualFold(lit.Value, "TRUE") {
			p.kw(token.TRUE)
		} else {
			p.kw(token.FALSE)
		}
	case core.LiteralNull:
		p.kw(token.NULL)
	case core.LiteralTemporal:
		p.keyword(lit.Temporal)
		p.space()
		p.str(lit.Value)
	default:
		p.write(lit.Value)
	}
}

func (p *Printer) formatColumnRef(col *core.ColumnRef) {
	if col.Schema != nil {
		p.ident(col.Schema)
		p.write(".")
	}
	if col.Table != nil {
		p.ident(col.Table)
		p.write(".")
	}
	p.ident(col.Name)
}

func (p *Printer) formatUserVariable(v *core.UserVariable) {
	if v.Quoted {
		p.write("@" + p.dialect.QuoteIdentifier(v.Name))
		return
	}
	p.write("@" + v.Name)
}

func (p *Printer) formatSystemVariable(v *core.SystemVariable) {
	switch v.Form {
	case core.VarAtAt:
		p.write("@@" + v.Name)
	case core.VarAtAtDot:
		p.write("@@" + strings.ToLower(v.Scope.String()) + "." + v.Name)
	case core.VarKeyword:
		p.keyword(v.Scope.String())
		p.space()
		p.write(v.Name)
	default:
		p.write(v.Name)
	}
}

func (p *Printer) formatStarExpr(s *core.StarExpr) {
	if s.Schema != nil {
		p.ident(s.Schema)
		p.write(".")
	}
	if s.Table != nil {
		p.ident(s.Table)
		p.write(".")
	}
	p.write("*")
}

// ---------- Operators ----------

func (p *Printer) formatBinaryExpr(expr *core.BinaryExpr) {
	shouldBreak := p.exprComplexity(expr) > complexityThreshold && isLogicalOp(expr.Op)

	p.formatExpr(expr.Left)

	if shouldBreak {
		p.writeln()
	} else {
		p.space()
	}
	p.write(expr.Op.String())
	p.space()

	p.formatExpr(expr.Right)
}

func (p *Printer) formatUnaryExpr(expr *core.UnaryExpr) {
	p.write(expr.Op.String())
	switch expr.Op {
	case core.OpNot, core.OpBinary:
		p.space()
	case core.OpNeg, core.OpPlus:
		// "- -1" must not collapse into a line comment.
		if startsWithSign(expr.Operand) {
			p.space()
		}
	}
	p.formatExpr(expr.Operand)
}

func startsWithSign(e core.Expr) bool {
	switch x := e.(type) {
	case *core.UnaryExpr:
		return x.Op == core.OpNeg || x.Op == core.OpPlus
	case *core.Literal:
		return strings.HasPrefix(x.Value, "-")
	}
	return false
}

// ---------- Functions ----------

func (p *Printer) formatFuncCall(fn *core.FuncCall) {
	p.qualified(fn.Schema, fn.Name)
	if fn.NoParens {
		return
	}
	p.write("(")

	if fn.Distinct {
		p.kw(token.DISTINCT)
		p.space()
	}

	if fn.Star {
		p.write("*")
	} else {
		p.exprs(fn.Args)
	}

	p.write(")")
	p.formatOver(fn.OverName, fn.Over)
}

func (p *Printer) formatOver(name *core.Identifier, spec *core.WindowSpec) {
	switch {
	case name != nil:
		p.space()
		p.kw(token.OVER)
		p.space()
		p.ident(name)
	case spec != nil:
		p.space()
		p.kw(token.OVER)
		p.space()
		p.formatWindowSpec(spec)
	}
}

func (p *Printer) formatGroupConcat(g *core.GroupConcatExpr) {
	p.kw(token.GROUP_CONCAT)
	p.write("(")
	if g.Distinct {
		p.kw(token.DISTINCT)
		p.space()
	}
	p.exprs(g.Args)
	if len(g.OrderBy) > 0 {
		p.space()
		p.formatOrderBy(g.OrderBy)
	}
	if g.Separator != nil {
		p.space()
		p.kw(token.SEPARATOR)
		p.space()
		p.formatLiteral(g.Separator)
	}
	p.write(")")
	p.formatOver(g.OverName, g.Over)
}

func (p *Printer) formatDataType(dt *core.DataType) {
	if dt == nil {
		return
	}
	p.keyword(dt.Name)
	if len(dt.Params) > 0 {
		p.write("(" + strings.Join(dt.Params, ", ") + ")")
	}
	if dt.Charset != "" {
		p.space()
		p.kw(token.CHARACTER, token.SET)
		p.space()
		p.word(dt.Charset)
	}
	if dt.Collate != "" {
		p.space()
		p.kw(token.COLLATE)
		p.space()
		p.word(dt.Collate)
	}
}

func (p *Printer) formatCastExpr(c *core.CastExpr) {
	if c.Postfix {
		p.formatExpr(c.Expr)
		p.write("::")
		p.formatDataType(c.Type)
		return
	}
	p.kw(token.CAST)
	p.write("(")
	p.formatExpr(c.Expr)
	p.space()
	p.kw(token.AS)
	p.space()
	p.formatDataType(c.Type)
	if c.Array {
		p.space()
		p.kw(token.ARRAY)
	}
	p.write(")")
}

func (p *Printer) formatConvertExpr(c *core.ConvertExpr) {
	p.kw(token.CONVERT)
	p.write("(")
	p.formatExpr(c.Expr)
	if c.Type != nil {
		p.write(", ")
		p.formatDataType(c.Type)
	} else {
		p.space()
		p.kw(token.USING)
		p.space()
		p.word(c.Charset)
	}
	p.write(")")
}

func (p *Printer) formatTrimExpr(t *core.TrimExpr) {
	p.kw(token.TRIM)
	p.write("(")
	if t.Mode != "" {
		p.keyword(t.Mode)
		p.space()
	}
	if t.Remove != nil {
		p.formatExpr(t.Remove)
		p.space()
	}
	if t.Mode != "" || t.Remove != nil {
		p.kw(token.FROM)
		p.space()
	}
	p.formatExpr(t.Expr)
	p.write(")")
}

func (p *Printer) formatSubstringExpr(s *core.SubstringExpr) {
	name := s.Name
	if name == "" {
		name = "SUBSTRING"
	}
	p.keyword(name)
	p.write("(")
	p.formatExpr(s.Expr)
	if s.FromForm {
		p.space()
		p.kw(token.FROM)
		p.space()
		p.formatExpr(s.From)
		if s.For != nil {
			p.space()
			p.kw(token.FOR)
			p.space()
			p.formatExpr(s.For)
		}
	} else {
		p.write(", ")
		p.formatExpr(s.From)
		if s.For != nil {
			p.write(", ")
			p.formatExpr(s.For)
		}
	}
	p.write(")")
}

func (p *Printer) formatCharExpr(c *core.CharExpr) {
	p.kw(token.CHAR)
	p.write("(")
	p.exprs(c.Args)
	if c.Charset != "" {
		p.space()
		p.kw(token.USING)
		p.space()
		p.word(c.Charset)
	}
	p.write(")")
}

func (p *Printer) formatMatchExpr(m *core.MatchExpr) {
	p.kw(token.MATCH)
	p.write("(")
	p.formatList(len(m.Columns), func(i int) { p.formatColumnRef(m.Columns[i]) }, ", ", false)
	p.write(") ")
	p.kw(token.AGAINST)
	p.write(" (")
	p.formatExpr(m.Against)
	if m.Modifier != "" {
		p.space()
		p.keyword(m.Modifier)
	}
	p.write(")")
}

// ---------- Compound Expressions ----------

func (p *Printer) formatCaseExpr(c *core.CaseExpr) {
	p.kw(token.CASE)

	if c.Operand != nil {
		p.space()
		p.formatExpr(c.Operand)
	}

	for _, w := range c.Whens {
		p.space()
		p.kw(token.WHEN)
		p.space()
		p.formatExpr(w.Condition)
		p.space()
		p.kw(token.THEN)
		p.space()
		p.formatExpr(w.Result)
	}

	if c.Else != nil {
		p.space()
		p.kw(token.ELSE)
		p.space()
		p.formatExpr(c.Else)
	}

	p.space()
	p.kw(token.END)
}

func (p *Printer) formatInExpr(in *core.InExpr) {
	p.formatExpr(in.Expr)
	p.space()
	p.not(in.Not)
	p.kw(token.IN)
	p.space()
	if in.Query != nil {
		p.formatSubquery(in.Query)
		return
	}
	p.write("(")
	p.exprs(in.List)
	p.write(")")
}

func (p *Printer) formatBetweenExpr(b *core.BetweenExpr) {
	p.formatExpr(b.Expr)
	p.space()
	p.not(b.Not)
	p.kw(token.BETWEEN)
	p.space()
	p.formatExpr(b.Low)
	p.space()
	p.kw(token.AND)
	p.space()
	p.formatExpr(b.High)
}

func (p *Printer) formatLikeExpr(l *core.LikeExpr) {
	p.formatExpr(l.Expr)
	p.space()
	p.not(l.Not)
	if l.ILike {
		p.kw(token.ILIKE)
	} else {
		p.kw(token.LIKE)
	}
	p.space()
	p.formatExpr(l.Pattern)
	if l.Escape != nil {
		p.space()
		p.kw(token.ESCAPE)
		p.space()
		p.formatExpr(l.Escape)
	}
}

// formatSubquery prints a parenthesized query indented one level.
func (p *Printer) formatSubquery(s *core.SelectStmt) {
	p.write("(")
	p.writeln()
	p.indent()
	p.formatSelectStmt(s)
	p.dedent()
	p.newline()
	p.write(")")
}

// ---------- Windows ----------

func (p *Printer) formatWindowSpec(w *core.WindowSpec) {
	p.write("(")
	sep := false
	next := func() {
		if sep {
			p.space()
		}
		sep = true
	}

	if w.Name != nil {
		next()
		p.ident(w.Name)
	}

	if len(w.PartitionBy) > 0 {
		next()
		p.kw(token.PARTITION, token.BY)
		p.space()
		p.exprs(w.PartitionBy)
	}

	if len(w.OrderBy) > 0 {
		next()
		p.formatOrderBy(w.OrderBy)
	}

	if w.Frame != nil {
		next()
		p.formatFrameSpec(w.Frame)
	}

	p.write(")")
}

func (p *Printer) formatFrameSpec(f *core.FrameSpec) {
	p.keyword(f.Units.String())
	p.space()
	if f.EndBound == nil {
		p.formatFrameBound(f.Start)
		return
	}
	p.kw(token.BETWEEN)
	p.space()
	p.formatFrameBound(f.Start)
	p.space()
	p.kw(token.AND)
	p.space()
	p.formatFrameBound(f.EndBound)
}

func (p *Printer) formatFrameBound(b *core.FrameBound) {
	if b == nil {
		return
	}
	if b.Offset != nil {
		p.formatExpr(b.Offset)
		p.space()
	}
	p.keyword(b.Kind.String())
}
