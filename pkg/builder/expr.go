package builder

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Literals and Names ----------

func (b *builder) literal(n *cst.Node) *core.Literal {
	if n == nil {
		return nil
	}
	lit := &core.Literal{NodeInfo: info(n)}
	parts := n.All("part")
	if len(parts) == 0 {
		b.fail(n, "literal without a value")
		return nil
	}
	first := parts[0].Token
	switch first.Type {
	case token.NUMBER:
		lit.Kind = core.LiteralNumber
		lit.Value = first.Literal
	case token.STRING, token.NSTRING:
		lit.Kind = core.LiteralString
		lit.Value = b.str(n)
		if first.Type == token.NSTRING {
			lit.Charset = "N"
		}
	case token.HEX_STRING:
		lit.Kind = core.LiteralHex
		lit.Value = first.Literal
	case token.BIT_STRING:
		lit.Kind = core.LiteralBit
		lit.Value = first.Literal
	case token.TRUE, token.FALSE:
		lit.Kind = core.LiteralBool
		lit.Value = strings.ToUpper(first.Literal)
	case token.NULL:
		lit.Kind = core.LiteralNull
		lit.Value = "NULL"
	default:
		b.fail(parts[0], "unexpected literal %s", first.Type)
		return nil
	}
	if n.Has("sign") {
		lit.Value = "-" + lit.Value
	}
	if cs := n.Child("charset"); cs != nil {
		lit.Charset = cs.Text()
	}
	if t := n.Child("temporal"); t != nil {
		lit.Kind = core.LiteralTemporal
		lit.Temporal = t.Upper()
	}
	return lit
}

// columnRef converts [[schema.]table.]name.
func (b *builder) columnRef(n *cst.Node) *core.ColumnRef {
	if n == nil {
		return nil
	}
	parts := b.idents(n.All("part"))
	col := &core.ColumnRef{NodeInfo: info(n)}
	switch len(parts) {
	case 1:
		col.Name = parts[0]
	case 2:
		col.Table, col.Name = parts[0], parts[1]
	case 3:
		col.Schema, col.Table, col.Name = parts[0], parts[1], parts[2]
	default:
		b.fail(n, "column name has %d parts", len(parts))
		return nil
	}
	return col
}

func buildParam(b *builder, n *cst.Node) core.Expr {
	p := &core.ParamMarker{NodeInfo: info(n), Index: b.params, Text: n.Child("marker").Text()}
	b.params++
	return p
}

func buildUserVar(b *builder, n *cst.Node) core.Expr {
	name := n.Child("name")
	return &core.UserVariable{NodeInfo: info(n), Name: name.Text(), Quoted: name.Token.Quoted}
}

// sysVar converts a system variable. scope is the keyword scope of the
// enclosing SET assignment, or nil outside SET.
func (b *builder) sysVar(n *cst.Node, scope *cst.Node) *core.SystemVariable {
	v := &core.SystemVariable{NodeInfo: info(n), Scope: core.ScopeSession}
	var names []string
	for _, c := range n.All("name") {
		names = append(names, c.Text())
	}
	v.Name = strings.Join(names, ".")
	if n.Has("time_zone") {
		v.Name = "timezone"
	}

	atAt := hasToken(n, token.AT_AT)
	switch {
	case n.Has("scope"):
		if scope != nil {
			b.fail(scope, "scope %s given twice for @@%s", scope.Upper(), v.Name)
			return nil
		}
		v.Form = core.VarAtAtDot
		v.Scope = b.scope(n.Child("scope"))
	case atAt:
		if scope != nil {
			b.fail(scope, "scope keyword %s cannot qualify @@%s", scope.Upper(), v.Name)
			return nil
		}
		v.Form = core.VarAtAt
	case scope != nil:
		v.Form = core.VarKeyword
		v.Scope = b.scope(scope)
	default:
		v.Form = core.VarBare
	}
	return v
}

func (b *builder) scope(n *cst.Node) core.VariableScope {
	s, ok := core.ParseScope(n.Text())
	if !ok {
		b.fail(n, "unknown variable scope %q", n.Text())
	}
	return s
}

// ---------- Operators ----------

func buildBinary(b *builder, n *cst.Node) core.Expr {
	opTok := n.Child("op").Token
	op, ok := b.d.BinaryOp(opTok.Type)
	if !ok {
		b.fail(n.Child("op"), "unsupported operator %s", opTok.Raw)
		return nil
	}
	return &core.BinaryExpr{
		NodeInfo: info(n),
		Left:     b.expr(n.Child("left")),
		Op:       op,
		Right:    b.expr(n.Child("right")),
	}
}

var unaryOps = map[token.TokenType]core.UnaryOp{
	token.MINUS:  core.OpNeg,
	token.PLUS:   core.OpPlus,
	token.TILDE:  core.OpBitNot,
	token.NOT:    core.OpNot,
	token.BANG:   core.OpBang,
	token.BINARY: core.OpBinary,
}

func buildUnary(b *builder, n *cst.Node) core.Expr {
	opNode := n.Child("op")
	op, ok := unaryOps[opNode.Token.Type]
	if !ok {
		b.fail(opNode, "unsupported prefix operator %s", opNode.Token.Raw)
		return nil
	}
	return &core.UnaryExpr{NodeInfo: info(n), Op: op, Operand: b.expr(n.Child("operand"))}
}

// ---------- Functions ----------

func buildFuncCall(b *builder, n *cst.Node) core.Expr {
	fn := &core.FuncCall{
		NodeInfo: info(n),
		Schema:   b.ident(n.Child("schema")),
		Name:     b.ident(n.Child("name")),
		Distinct: n.Has("distinct"),
		Star:     n.Has("star"),
		Args:     b.exprs(n.All("arg")),
		NoParens: !hasToken(n, token.LPAREN),
		OverName: b.ident(n.Child("over_name")),
		Over:     b.windowSpec(n.Child("over")),
	}
	fn.Kind = b.d.FunctionKind(fn.Name.Name())
	if fn.Over != nil || fn.OverName != nil {
		fn.Kind = core.FuncWindow
	}
	return fn
}

func buildGroupConcat(b *builder, n *cst.Node) core.Expr {
	return &core.GroupConcatExpr{
		NodeInfo:  info(n),
		Distinct:  n.Has("distinct"),
		Args:      b.exprs(n.All("arg")),
		OrderBy:   b.orderBy(n.Child("order")),
		Separator: b.literal(n.Child("separator")),
		OverName:  b.ident(n.Child("over_name")),
		Over:      b.windowSpec(n.Child("over")),
	}
}

func (b *builder) dataType(n *cst.Node) *core.DataType {
	if n == nil {
		return nil
	}
	dt := &core.DataType{NodeInfo: info(n), Name: n.Words("name")}
	for _, p := range n.All("param") {
		dt.Params = append(dt.Params, p.Text())
	}
	if cs := n.Child("charset"); cs != nil {
		dt.Charset = cs.Text()
	}
	if c := n.Child("collate"); c != nil {
		dt.Collate = c.Text()
	}
	return dt
}

// buildCast handles CAST(expr AS type) and the postfix expr::type, which
// starts with its operand.
func buildCast(b *builder, n *cst.Node) core.Expr {
	return &core.CastExpr{
		NodeInfo: info(n),
		Expr:     b.expr(n.Child("expr")),
		Type:     b.dataType(n.Child("type")),
		Array:    n.Has("array"),
		Postfix:  len(n.Children) > 0 && n.Children[0].Label == "expr",
	}
}

func buildConvert(b *builder, n *cst.Node) core.Expr {
	c := &core.ConvertExpr{
		NodeInfo: info(n),
		Expr:     b.expr(n.Child("expr")),
		Type:     b.dataType(n.Child("type")),
	}
	if cs := n.Child("charset"); cs != nil {
		c.Charset = cs.Text()
	}
	return c
}

func buildExtract(b *builder, n *cst.Node) core.Expr {
	return &core.ExtractExpr{
		NodeInfo: info(n),
		Unit:     n.Child("unit").Upper(),
		Expr:     b.expr(n.Child("expr")),
	}
}

func buildTrim(b *builder, n *cst.Node) core.Expr {
	t := &core.TrimExpr{
		NodeInfo: info(n),
		Remove:   b.expr(n.Child("remove")),
		Expr:     b.expr(n.Child("expr")),
	}
	if m := n.Child("mode"); m != nil {
		t.Mode = m.Upper()
	}
	return t
}

func buildSubstring(b *builder, n *cst.Node) core.Expr {
	return &core.SubstringExpr{
		NodeInfo: info(n),
		Name:     n.Child("name").Upper(),
		Expr:     b.expr(n.Child("expr")),
		From:     b.expr(n.Child("from")),
		For:      b.expr(n.Child("for")),
		FromForm: n.Has("from_kw"),
	}
}

func buildPosition(b *builder, n *cst.Node) core.Expr {
	return &core.PositionExpr{
		NodeInfo: info(n),
		Substr:   b.expr(n.Child("substr")),
		Str:      b.expr(n.Child("str")),
	}
}

func buildChar(b *builder, n *cst.Node) core.Expr {
	c := &core.CharExpr{NodeInfo: info(n), Args: b.exprs(n.All("arg"))}
	if cs := n.Child("charset"); cs != nil {
		c.Charset = cs.Text()
	}
	return c
}

// ---------- Compound Expressions ----------

func buildCase(b *builder, n *cst.Node) core.Expr {
	c := &core.CaseExpr{NodeInfo: info(n), Operand: b.expr(n.Child("operand"))}
	for _, w := range n.All("when") {
		c.Whens = append(c.Whens, &core.WhenClause{
			NodeInfo:  info(w),
			Condition: b.expr(w.Child("cond")),
			Result:    b.expr(w.Child("result")),
		})
	}
	c.Else = b.expr(n.Child("else"))
	return c
}

func buildInterval(b *builder, n *cst.Node) core.Expr {
	iv := &core.IntervalExpr{NodeInfo: info(n), Value: b.expr(n.Child("value"))}
	if u := n.Child("unit"); u != nil {
		iv.Unit = u.Upper()
	}
	return iv
}

func buildSubquery(b *builder, n *cst.Node) core.Expr {
	sq := &core.SubqueryExpr{NodeInfo: info(n), Query: b.selectStmt(n.Child("query"))}
	if q := n.Child("quantifier"); q != nil {
		sq.Quantifier = q.Upper()
	}
	return sq
}

func buildExists(b *builder, n *cst.Node) core.Expr {
	return &core.ExistsExpr{NodeInfo: info(n), Query: b.selectStmt(n.Child("query"))}
}

func buildIn(b *builder, n *cst.Node) core.Expr {
	return &core.InExpr{
		NodeInfo: info(n),
		Expr:     b.expr(n.Child("expr")),
		Not:      n.Has("not"),
		List:     b.exprs(n.All("item")),
		Query:    b.selectStmt(n.Child("query")),
	}
}

func buildBetween(b *builder, n *cst.Node) core.Expr {
	return &core.BetweenExpr{
		NodeInfo: info(n),
		Expr:     b.expr(n.Child("expr")),
		Not:      n.Has("not"),
		Low:      b.expr(n.Child("low")),
		High:     b.expr(n.Child("high")),
	}
}

func buildLike(b *builder, n *cst.Node) core.Expr {
	return &core.LikeExpr{
		NodeInfo: info(n),
		Expr:     b.expr(n.Child("expr")),
		Not:      n.Has("not"),
		ILike:    n.Child("op").Token.Type == token.ILIKE,
		Pattern:  b.expr(n.Child("pattern")),
		Escape:   b.expr(n.Child("escape")),
	}
}

func buildRegexp(b *builder, n *cst.Node) core.Expr {
	return &core.RegexpExpr{
		NodeInfo: info(n),
		Expr:     b.expr(n.Child("expr")),
		Not:      n.Has("not"),
		Pattern:  b.expr(n.Child("pattern")),
	}
}

var isValues = map[token.TokenType]core.IsValue{
	token.NULL:    core.IsNull,
	token.TRUE:    core.IsTrue,
	token.FALSE:   core.IsFalse,
	token.UNKNOWN: core.IsUnknown,
}

func buildIs(b *builder, n *cst.Node) core.Expr {
	value := n.Child("value")
	v, ok := isValues[value.Token.Type]
	if !ok {
		b.fail(value, "IS cannot test for %s", value.Token.Raw)
		return nil
	}
	return &core.IsExpr{NodeInfo: info(n), Expr: b.expr(n.Child("expr")), Not: n.Has("not"), Value: v}
}

func buildCollate(b *builder, n *cst.Node) core.Expr {
	return &core.CollateExpr{
		NodeInfo:  info(n),
		Expr:      b.expr(n.Child("expr")),
		Collation: n.Child("collation").Text(),
	}
}

func buildMatch(b *builder, n *cst.Node) core.Expr {
	m := &core.MatchExpr{
		NodeInfo: info(n),
		Against:  b.expr(n.Child("against")),
		Modifier: n.Words("modifier"),
	}
	for _, c := range n.All("col") {
		m.Columns = append(m.Columns, b.columnRef(c))
	}
	return m
}

// row converts (a, b), ROW(a, b) and the rows of VALUES lists.
func (b *builder) row(n *cst.Node) *core.RowExpr {
	return &core.RowExpr{
		NodeInfo: info(n),
		Items:    b.exprs(n.All("item")),
		Explicit: hasToken(n, token.ROW),
	}
}

func buildParen(b *builder, n *cst.Node) core.Expr {
	return &core.ParenExpr{NodeInfo: info(n), Expr: b.expr(n.Child("expr"))}
}

func buildDefault(b *builder, n *cst.Node) core.Expr {
	return &core.DefaultExpr{NodeInfo: info(n), Column: b.columnRef(n.Child("column"))}
}

// star converts * and [schema.]table.* in a select list.
func (b *builder) star(n *cst.Node) *core.StarExpr {
	s := &core.StarExpr{NodeInfo: info(n)}
	parts := b.idents(n.All("part"))
	switch len(parts) {
	case 0:
	case 1:
		s.Table = parts[0]
	case 2:
		s.Schema, s.Table = parts[0], parts[1]
	default:
		b.fail(n, "qualified * has %d qualifiers", len(parts))
		return nil
	}
	return s
}

func buildMisplacedStar(b *builder, n *cst.Node) core.Expr {
	b.fail(n, "* is only allowed as a select list item")
	return nil
}

// buildSetValue converts the keyword values of SET (ON, OFF, ALL ...).
// DEFAULT keeps its meaning.
func buildSetValue(b *builder, n *cst.Node) core.Expr {
	v := n.Child("value")
	if v.Token.Type == token.DEFAULT {
		return &core.DefaultExpr{NodeInfo: info(n)}
	}
	return &core.ColumnRef{NodeInfo: info(n), Name: b.ident(v)}
}

// buildExprList converts a value list (SET search_path TO a, b).
func buildExprList(b *builder, n *cst.Node) core.Expr {
	return &core.RowExpr{NodeInfo: info(n), Items: b.exprs(n.All("item"))}
}

// ---------- Windows ----------

func (b *builder) windowSpec(n *cst.Node) *core.WindowSpec {
	if n == nil || b.failed() {
		return nil
	}
	return &core.WindowSpec{
		NodeInfo:    info(n),
		Name:        b.ident(n.Child("name")),
		PartitionBy: b.exprs(n.All("partition")),
		OrderBy:     b.orderBy(n.Child("order")),
		Frame:       b.frame(n.Child("frame")),
	}
}

// frame converts a frame clause and checks that its bounds are in order.
func (b *builder) frame(n *cst.Node) *core.FrameSpec {
	if n == nil || b.failed() {
		return nil
	}
	f := &core.FrameSpec{NodeInfo: info(n), Units: core.FrameRows}
	if n.Child("units").Token.Type == token.RANGE {
		f.Units = core.FrameRange
	}
	f.Start = b.frameBound(n.Child("start"))
	f.EndBound = b.frameBound(n.Child("end"))
	if b.failed() {
		return nil
	}

	switch {
	case f.EndBound == nil && (f.Start.Kind == core.BoundFollowing || f.Start.Kind == core.BoundUnboundedFollowing):
		b.fail(n.Child("start"), "frame has only an end bound: %s needs BETWEEN ... AND", f.Start.Kind)
	case f.Start.Kind == core.BoundUnboundedFollowing:
		b.fail(n.Child("start"), "frame cannot start at UNBOUNDED FOLLOWING")
	case f.EndBound != nil && f.EndBound.Kind == core.BoundUnboundedPreceding:
		b.fail(n.Child("end"), "frame cannot end at UNBOUNDED PRECEDING")
	case f.EndBound != nil && f.Start.Kind > f.EndBound.Kind:
		b.fail(n, "frame starts at %s but ends at %s", f.Start.Kind, f.EndBound.Kind)
	}
	if b.failed() {
		return nil
	}
	return f
}

var boundKinds = map[string]core.BoundKind{
	"UNBOUNDED PRECEDING": core.BoundUnboundedPreceding,
	"PRECEDING":           core.BoundPreceding,
	"CURRENT ROW":         core.BoundCurrentRow,
	"FOLLOWING":           core.BoundFollowing,
	"UNBOUNDED FOLLOWING": core.BoundUnboundedFollowing,
}

func (b *builder) frameBound(n *cst.Node) *core.FrameBound {
	if n == nil {
		return nil
	}
	kind, ok := boundKinds[n.Words("kind")]
	if !ok {
		b.fail(n, "unknown frame bound %s", n.Words("kind"))
		return nil
	}
	return &core.FrameBound{NodeInfo: info(n), Kind: kind, Offset: b.expr(n.Child("offset"))}
}
