package builder_test

import (
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/builder"
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildWith(t *testing.T, sql string, d *dialect.Dialect) core.Stmt {
	t.Helper()
	tree, err := parser.Parse(sql, d)
	require.NoError(t, err, sql)
	stmt, err := builder.Build(tree, d)
	require.NoError(t, err, sql)
	require.NotNil(t, stmt, sql)
	return stmt
}

func buildMySQL(t *testing.T, sql string) core.Stmt {
	t.Helper()
	return buildWith(t, sql, mysql.MySQL)
}

func buildErr(t *testing.T, sql string) *builder.BuildError {
	t.Helper()
	tree, err := parser.Parse(sql, mysql.MySQL)
	require.NoError(t, err, sql)
	stmt, err := builder.Build(tree, mysql.MySQL)
	assert.Nil(t, stmt, "a failed build returns no statement")
	var berr *builder.BuildError
	require.ErrorAs(t, err, &berr, sql)
	return berr
}

func spec(t *testing.T, stmt core.Stmt) *core.QuerySpec {
	t.Helper()
	sel, ok := stmt.(*core.SelectStmt)
	require.True(t, ok, "got %T", stmt)
	q := sel.Spec()
	require.NotNil(t, q)
	return q
}

func firstItem(t *testing.T, sql string, d *dialect.Dialect) core.Expr {
	t.Helper()
	return spec(t, buildWith(t, sql, d)).Items[0].Expr
}

// ---------- Scenario Tests ----------

func TestBuildSelect(t *testing.T) {
	stmt := buildMySQL(t, "SELECT id, name FROM users WHERE id = 1 LIMIT 10")
	sel := stmt.(*core.SelectStmt)
	q := spec(t, stmt)

	require.Len(t, q.Items, 2)
	assert.Equal(t, "id", q.Items[0].Expr.(*core.ColumnRef).Name.Value)
	assert.Equal(t, "name", q.Items[1].Expr.(*core.ColumnRef).Name.Value)

	require.Len(t, q.From, 1)
	assert.Equal(t, "users", q.From[0].(*core.TableName).Name.Value)

	where := q.Where.(*core.BinaryExpr)
	assert.Equal(t, core.OpEq, where.Op)
	assert.Equal(t, "id", where.Left.(*core.ColumnRef).Name.Value)
	one := where.Right.(*core.Literal)
	assert.Equal(t, core.LiteralNumber, one.Kind)
	assert.Equal(t, "1", one.Value)

	require.NotNil(t, sel.Limit)
	n, ok := sel.Limit.RowCount()
	assert.True(t, ok)
	assert.Equal(t, int64(10), n)
	assert.Nil(t, sel.Limit.Offset)
}

func TestBuildUpdate(t *testing.T) {
	upd := buildMySQL(t, "UPDATE t SET a = 1, b = 2 WHERE c > 3").(*core.UpdateStmt)

	require.Len(t, upd.Tables, 1)
	assert.Equal(t, "t", upd.Tables[0].(*core.TableName).Name.Value)
	assert.False(t, upd.MultiTable())

	require.Len(t, upd.Set, 2)
	assert.Equal(t, "a", upd.Set[0].Column.Name.Value)
	assert.Equal(t, "1", upd.Set[0].Value.(*core.Literal).Value)
	assert.Equal(t, "b", upd.Set[1].Column.Name.Value)
	assert.Equal(t, "2", upd.Set[1].Value.(*core.Literal).Value)

	assert.Equal(t, core.OpGt, upd.Where.(*core.BinaryExpr).Op)
	assert.Nil(t, upd.OrderBy)
	assert.Nil(t, upd.Limit)
}

func TestBuildShowVariables(t *testing.T) {
	show := buildMySQL(t, "SHOW VARIABLES LIKE 'auto%'").(*core.ShowVariablesStmt)

	assert.Equal(t, core.ScopeDefault, show.Scope)
	require.NotNil(t, show.Filter)
	require.NotNil(t, show.Filter.Like)
	assert.Equal(t, "auto%", show.Filter.Like.Value)
	assert.Equal(t, core.LiteralString, show.Filter.Like.Kind)
	assert.Nil(t, show.Filter.Where)
}

func TestBuildInsertOnDuplicate(t *testing.T) {
	ins := buildMySQL(t, "INSERT INTO t (a,b) VALUES (1,2) ON DUPLICATE KEY UPDATE a = a + 1").(*core.InsertStmt)

	assert.Equal(t, "t", ins.Table.Name.Value)
	require.Len(t, ins.Columns, 2)
	assert.Equal(t, "a", ins.Columns[0].Value)
	assert.Equal(t, "b", ins.Columns[1].Value)
	assert.Equal(t, "VALUES", ins.ValuesKeyword)

	require.Len(t, ins.Values, 1)
	require.Len(t, ins.Values[0], 2)
	assert.Equal(t, "2", ins.Values[0][1].(*core.Literal).Value)

	require.Len(t, ins.OnDuplicate, 1)
	dup := ins.OnDuplicate[0]
	assert.Equal(t, "a", dup.Column.Name.Value)
	add := dup.Value.(*core.BinaryExpr)
	assert.Equal(t, core.OpAdd, add.Op)
	assert.Equal(t, "a", add.Left.(*core.ColumnRef).Name.Value)
}

func TestBuildLimitAllRows(t *testing.T) {
	sel := buildMySQL(t, "SELECT * FROM t LIMIT 5, 18446744073709551615").(*core.SelectStmt)
	require.NotNil(t, sel.Limit)

	_, ok := sel.Limit.RowCount()
	assert.False(t, ok, "count beyond int64 is not a usable row count")
	assert.Equal(t, "18446744073709551615", sel.Limit.Count.(*core.Literal).Value)

	offset, ok := sel.Limit.OffsetValue()
	assert.True(t, ok)
	assert.Equal(t, int64(5), offset)
}

// ---------- Query Tests ----------

func TestBuildQueryClauses(t *testing.T) {
	stmt := buildMySQL(t, "SELECT DISTINCT a, COUNT(*) AS n FROM t GROUP BY a WITH ROLLUP HAVING n > 1 ORDER BY n DESC LIMIT 5, 10 FOR UPDATE NOWAIT")
	sel := stmt.(*core.SelectStmt)
	q := spec(t, stmt)

	assert.True(t, q.Distinct())
	assert.Equal(t, "n", q.Items[1].Alias.Value)
	count := q.Items[1].Expr.(*core.FuncCall)
	assert.True(t, count.Star)
	assert.Equal(t, core.FuncAggregate, count.Kind)

	require.NotNil(t, q.GroupBy)
	assert.True(t, q.GroupBy.WithRollup)
	assert.NotNil(t, q.Having)

	require.Len(t, sel.OrderBy, 1)
	assert.True(t, sel.OrderBy[0].Desc)

	rows, _ := sel.Limit.RowCount()
	offset, _ := sel.Limit.OffsetValue()
	assert.Equal(t, int64(10), rows)
	assert.Equal(t, int64(5), offset)

	require.Len(t, sel.Locks, 1)
	assert.Equal(t, core.LockForUpdate, sel.Locks[0].Strength)
	assert.Equal(t, core.LockNowait, sel.Locks[0].Wait)
}

func TestBuildStarItems(t *testing.T) {
	q := spec(t, buildMySQL(t, "SELECT *, t.*, db.t.* FROM db.t"))
	require.Len(t, q.Items, 3)

	bare := q.Items[0].Expr.(*core.StarExpr)
	assert.Nil(t, bare.Table)

	qualified := q.Items[1].Expr.(*core.StarExpr)
	assert.Equal(t, "t", qualified.Table.Value)
	assert.Nil(t, qualified.Schema)

	full := q.Items[2].Expr.(*core.StarExpr)
	assert.Equal(t, "db", full.Schema.Value)
	assert.Equal(t, "t", full.Table.Value)

	assert.Equal(t, "db.t", q.From[0].(*core.TableName).QualifiedName())
}

func TestBuildSetOperation(t *testing.T) {
	sel := buildMySQL(t, "SELECT a FROM t UNION ALL SELECT b FROM u ORDER BY 1").(*core.SelectStmt)

	op, ok := sel.Query.(*core.SetOperation)
	require.True(t, ok, "got %T", sel.Query)
	assert.Equal(t, core.SetUnion, op.Op)
	assert.Equal(t, "ALL", op.Quantifier)
	assert.IsType(t, &core.QuerySpec{}, op.Left)
	assert.IsType(t, &core.QuerySpec{}, op.Right)
	assert.Len(t, sel.OrderBy, 1)
}

func TestBuildWith(t *testing.T) {
	sel := buildMySQL(t, "WITH RECURSIVE c (n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM c WHERE n < 5) SELECT n FROM c").(*core.SelectStmt)

	require.NotNil(t, sel.With)
	assert.True(t, sel.With.Recursive)
	require.Len(t, sel.With.CTEs, 1)
	cte := sel.With.CTEs[0]
	assert.Equal(t, "c", cte.Name.Value)
	require.Len(t, cte.Columns, 1)
	assert.Equal(t, "n", cte.Columns[0].Value)
	assert.IsType(t, &core.SetOperation{}, cte.Query.Query)
}

func TestBuildJoins(t *testing.T) {
	q := spec(t, buildMySQL(t, "SELECT * FROM a LEFT OUTER JOIN b USING (id) JOIN (SELECT 1 AS x) AS d ON d.x = a.id"))
	require.Len(t, q.From, 1)

	outer := q.From[0].(*core.JoinExpr)
	assert.Equal(t, core.JoinInner, outer.Type)
	assert.NotNil(t, outer.On)
	derived := outer.Right.(*core.DerivedTable)
	assert.Equal(t, "d", derived.Alias.Value)

	inner := outer.Left.(*core.JoinExpr)
	assert.Equal(t, core.JoinLeft, inner.Type)
	require.Len(t, inner.Using, 1)
	assert.Equal(t, "id", inner.Using[0].Value)
}

func TestBuildIndexHints(t *testing.T) {
	q := spec(t, buildMySQL(t, "SELECT * FROM t AS x FORCE INDEX FOR ORDER BY (idx_a, PRIMARY)"))
	tbl := q.From[0].(*core.TableName)

	assert.Equal(t, "x", tbl.Alias.Value)
	require.Len(t, tbl.IndexHints, 1)
	h := tbl.IndexHints[0]
	assert.Equal(t, core.HintForce, h.Action)
	assert.Equal(t, "ORDER BY", h.For)
	require.Len(t, h.Indexes, 2)
	assert.Equal(t, "PRIMARY", h.Indexes[1].Value)
}

func TestBuildIntoOutfile(t *testing.T) {
	sel := buildMySQL(t, "SELECT a FROM t INTO OUTFILE '/tmp/a.csv' FIELDS TERMINATED BY ',' OPTIONALLY ENCLOSED BY '\"' LINES TERMINATED BY '\\n'").(*core.SelectStmt)

	require.NotNil(t, sel.Into)
	assert.Equal(t, core.IntoOutfile, sel.Into.Kind)
	assert.Equal(t, "/tmp/a.csv", sel.Into.File)
	ex := sel.Into.Export
	require.NotNil(t, ex)
	assert.Equal(t, ",", *ex.FieldsTerminatedBy)
	assert.Equal(t, "\"", *ex.FieldsEnclosedBy)
	assert.True(t, ex.OptionallyEnclosed)
	assert.Equal(t, "\n", *ex.LinesTerminatedBy)
	assert.Nil(t, ex.LinesStartingBy)
}

func TestBuildIntoAfterLock(t *testing.T) {
	sel := buildMySQL(t, "SELECT a FROM t FOR UPDATE INTO @x").(*core.SelectStmt)

	require.NotNil(t, sel.Into)
	assert.True(t, sel.IntoAfterLock)
	require.Len(t, sel.Into.Vars, 1)
	assert.Equal(t, "x", sel.Into.Vars[0].(*core.UserVariable).Name)
}

// ---------- Expression Tests ----------

func TestBuildPredicates(t *testing.T) {
	q := spec(t, buildMySQL(t, "SELECT a FROM t WHERE b NOT IN (1, 2) AND c IS NOT NULL AND d LIKE 'x%' ESCAPE '!' AND e BETWEEN 1 AND 5"))

	var found []string
	core.Walk(q.Where, func(n core.Node) bool {
		switch e := n.(type) {
		case *core.InExpr:
			assert.True(t, e.Not)
			assert.Len(t, e.List, 2)
			found = append(found, "in")
		case *core.IsExpr:
			assert.True(t, e.Not)
			assert.Equal(t, core.IsNull, e.Value)
			found = append(found, "is")
		case *core.LikeExpr:
			assert.Equal(t, "!", e.Escape.(*core.Literal).Value)
			found = append(found, "like")
		case *core.BetweenExpr:
			assert.Equal(t, "5", e.High.(*core.Literal).Value)
			found = append(found, "between")
		}
		return true
	})
	assert.ElementsMatch(t, []string{"in", "is", "like", "between"}, found)
}

func TestBuildFunctionKinds(t *testing.T) {
	q := spec(t, buildMySQL(t, "SELECT SUM(a), ROW_NUMBER() OVER (PARTITION BY b ORDER BY c), SUM(a) OVER w, LOWER(a), CURRENT_TIMESTAMP FROM t WINDOW w AS (ORDER BY c)"))
	require.Len(t, q.Items, 5)

	assert.Equal(t, core.FuncAggregate, q.Items[0].Expr.(*core.FuncCall).Kind)

	rn := q.Items[1].Expr.(*core.FuncCall)
	assert.Equal(t, core.FuncWindow, rn.Kind)
	require.NotNil(t, rn.Over)
	assert.Len(t, rn.Over.PartitionBy, 1)
	assert.Len(t, rn.Over.OrderBy, 1)

	named := q.Items[2].Expr.(*core.FuncCall)
	assert.Equal(t, core.FuncWindow, named.Kind)
	assert.Equal(t, "w", named.OverName.Value)

	assert.Equal(t, core.FuncRegular, q.Items[3].Expr.(*core.FuncCall).Kind)
	assert.True(t, q.Items[4].Expr.(*core.FuncCall).NoParens)

	require.Len(t, q.Windows, 1)
	assert.Equal(t, "w", q.Windows[0].Name.Value)
}

func TestBuildFrame(t *testing.T) {
	fn := firstItem(t, "SELECT SUM(a) OVER (ORDER BY b ROWS BETWEEN 2 PRECEDING AND CURRENT ROW) FROM t", mysql.MySQL).(*core.FuncCall)

	f := fn.Over.Frame
	require.NotNil(t, f)
	assert.Equal(t, core.FrameRows, f.Units)
	assert.Equal(t, core.BoundPreceding, f.Start.Kind)
	assert.Equal(t, "2", f.Start.Offset.(*core.Literal).Value)
	assert.Equal(t, core.BoundCurrentRow, f.EndBound.Kind)
}

func TestBuildSpecialForms(t *testing.T) {
	q := spec(t, buildMySQL(t, "SELECT CAST(a AS CHAR(10)), SUBSTRING(b FROM 2 FOR 3), TRIM(LEADING 'x' FROM c), CASE d WHEN 1 THEN 'one' ELSE 'many' END, doc->>'$.a' FROM t"))
	require.Len(t, q.Items, 5)

	cast := q.Items[0].Expr.(*core.CastExpr)
	assert.False(t, cast.Postfix)
	assert.Equal(t, "CHAR", cast.Type.Name)
	assert.Equal(t, []string{"10"}, cast.Type.Params)

	sub := q.Items[1].Expr.(*core.SubstringExpr)
	assert.Equal(t, "SUBSTRING", sub.Name)
	assert.True(t, sub.FromForm)
	assert.NotNil(t, sub.For)

	trim := q.Items[2].Expr.(*core.TrimExpr)
	assert.Equal(t, "LEADING", trim.Mode)
	assert.NotNil(t, trim.Remove)

	c := q.Items[3].Expr.(*core.CaseExpr)
	assert.NotNil(t, c.Operand)
	assert.Len(t, c.Whens, 1)
	assert.NotNil(t, c.Else)

	assert.Equal(t, core.OpJSONUnquote, q.Items[4].Expr.(*core.BinaryExpr).Op)
}

func TestBuildPostfixCast(t *testing.T) {
	cast := firstItem(t, "SELECT a::int FROM t", postgres.Postgres).(*core.CastExpr)
	assert.True(t, cast.Postfix)
	assert.Equal(t, "INT", cast.Type.Name)
}

func TestBuildLiterals(t *testing.T) {
	q := spec(t, buildMySQL(t, "SELECT 'a' 'b', X'0A', b'01', TRUE, NULL, _utf8mb4'x', DATE '2024-01-01'"))
	require.Len(t, q.Items, 7)

	lit := func(i int) *core.Literal { return q.Items[i].Expr.(*core.Literal) }
	assert.Equal(t, "ab", lit(0).Value)
	assert.Equal(t, core.LiteralHex, lit(1).Kind)
	assert.Equal(t, "0A", lit(1).Value)
	assert.Equal(t, core.LiteralBit, lit(2).Kind)
	assert.Equal(t, "TRUE", lit(3).Value)
	assert.Equal(t, core.LiteralNull, lit(4).Kind)
	assert.Equal(t, "_utf8mb4", lit(5).Charset)
	assert.Equal(t, core.LiteralTemporal, lit(6).Kind)
	assert.Equal(t, "DATE", lit(6).Temporal)
}

func TestParamIndexing(t *testing.T) {
	q := spec(t, buildMySQL(t, "SELECT ? FROM t WHERE a = ? AND b = ?"))

	var got []int
	core.Walk(q, func(n core.Node) bool {
		if p, ok := n.(*core.ParamMarker); ok {
			got = append(got, p.Index)
			assert.Equal(t, "?", p.Text)
		}
		return true
	})
	assert.Equal(t, []int{0, 1, 2}, got)
}

func TestParamIndexingPerStatement(t *testing.T) {
	tokens, err := parser.Tokenize("SELECT ?, ?; SELECT ?", mysql.MySQL)
	require.NoError(t, err)
	tree, err := parser.ParseScript(tokens, mysql.MySQL)
	require.NoError(t, err)

	stmts, err := builder.BuildScript(tree, mysql.MySQL)
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(t, 0, spec(t, stmts[1]).Items[0].Expr.(*core.ParamMarker).Index)
}

// ---------- DML Tests ----------

func TestBuildDeleteForms(t *testing.T) {
	tests := []struct {
		sql     string
		form    core.DeleteForm
		targets int
	}{
		{"DELETE FROM t WHERE a = 1 ORDER BY a LIMIT 3", core.DeleteSingle, 0},
		{"DELETE t1, t2 FROM t1 JOIN t2 ON t1.id = t2.id", core.DeleteMultiFrom, 2},
		{"DELETE FROM t1.* USING t1 JOIN t2 ON t1.id = t2.id", core.DeleteMultiUsing, 1},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			del := buildMySQL(t, tt.sql).(*core.DeleteStmt)
			assert.Equal(t, tt.form, del.Form)
			assert.Len(t, del.Targets, tt.targets)
			assert.Len(t, del.From, 1)
		})
	}
}

func TestBuildDeleteOptions(t *testing.T) {
	del := buildMySQL(t, "DELETE LOW_PRIORITY QUICK IGNORE FROM t").(*core.DeleteStmt)
	assert.True(t, del.LowPriority)
	assert.True(t, del.Quick)
	assert.True(t, del.Ignore)
}

func TestBuildInsertForms(t *testing.T) {
	set := buildMySQL(t, "INSERT IGNORE INTO t SET a = 1, b = DEFAULT").(*core.InsertStmt)
	assert.True(t, set.Ignore)
	require.Len(t, set.Set, 2)
	assert.IsType(t, &core.DefaultExpr{}, set.Set[1].Value)

	sel := buildMySQL(t, "INSERT INTO t (a) SELECT b FROM u").(*core.InsertStmt)
	require.NotNil(t, sel.Select)
	assert.Nil(t, sel.Values)

	alias := buildMySQL(t, "INSERT INTO t VALUES (1, 2) AS new (x, y) ON DUPLICATE KEY UPDATE a = new.x").(*core.InsertStmt)
	assert.Equal(t, "new", alias.RowAlias.Value)
	assert.Len(t, alias.RowAliasColumns, 2)

	rep := buildMySQL(t, "REPLACE LOW_PRIORITY INTO t VALUES (1), (2)").(*core.ReplaceStmt)
	assert.Equal(t, "LOW_PRIORITY", rep.Priority)
	assert.Len(t, rep.Values, 2)
}

func TestBuildCallAndDo(t *testing.T) {
	call := buildMySQL(t, "CALL db.proc(1, 'a')").(*core.CallStmt)
	assert.Equal(t, "db", call.Schema.Value)
	assert.Equal(t, "proc", call.Name.Value)
	assert.True(t, call.Parens)
	assert.Len(t, call.Args, 2)

	bare := buildMySQL(t, "CALL proc").(*core.CallStmt)
	assert.False(t, bare.Parens)

	do := buildMySQL(t, "DO SLEEP(1), 2").(*core.DoStmt)
	assert.Len(t, do.Exprs, 2)
}

func TestBuildHandler(t *testing.T) {
	open := buildMySQL(t, "HANDLER t OPEN AS h").(*core.HandlerOpenStmt)
	assert.Equal(t, "h", open.Alias.Value)

	read := buildMySQL(t, "HANDLER t READ idx >= (1, 2) WHERE a > 0 LIMIT 5").(*core.HandlerReadStmt)
	assert.Equal(t, "idx", read.Index.Value)
	assert.Equal(t, core.OpGe, read.Op)
	assert.Len(t, read.Values, 2)
	assert.NotNil(t, read.Where)
	assert.NotNil(t, read.Limit)

	next := buildMySQL(t, "HANDLER t READ NEXT").(*core.HandlerReadStmt)
	assert.Equal(t, "NEXT", next.Direction)

	assert.IsType(t, &core.HandlerCloseStmt{}, buildMySQL(t, "HANDLER t CLOSE"))
}

func TestBuildLoadData(t *testing.T) {
	load := buildMySQL(t, "LOAD DATA LOCAL INFILE '/tmp/x' REPLACE INTO TABLE t PARTITION (p0) CHARACTER SET utf8mb4 FIELDS TERMINATED BY ',' IGNORE 1 LINES (a, @b) SET c = @b").(*core.LoadDataStmt)

	assert.True(t, load.Local)
	assert.Equal(t, "/tmp/x", load.File)
	assert.Equal(t, "REPLACE", load.Duplicate)
	assert.Equal(t, "t", load.Table.Name.Value)
	require.Len(t, load.Table.Partitions, 1)
	assert.Equal(t, "p0", load.Table.Partitions[0].Value)
	assert.Equal(t, "utf8mb4", load.Charset)
	assert.Equal(t, ",", *load.Export.FieldsTerminatedBy)
	assert.Equal(t, "1", load.IgnoreRows.Value)
	assert.Equal(t, "LINES", load.IgnoreUnit)
	require.Len(t, load.Columns, 2)
	assert.IsType(t, &core.UserVariable{}, load.Columns[1])
	assert.Len(t, load.Set, 1)

	xml := buildMySQL(t, "LOAD XML INFILE 'p.xml' INTO TABLE person ROWS IDENTIFIED BY '<person>'").(*core.LoadXMLStmt)
	assert.Equal(t, "<person>", xml.RowsIdentifiedBy)
}

// ---------- DAL Tests ----------

func TestBuildShowStatements(t *testing.T) {
	tables := buildMySQL(t, "SHOW FULL TABLES FROM db LIKE 'a%'").(*core.ShowTablesStmt)
	assert.True(t, tables.Full)
	assert.Equal(t, "db", tables.From.Value)
	assert.Equal(t, "a%", tables.Filter.Like.Value)

	status := buildMySQL(t, "SHOW GLOBAL STATUS WHERE Variable_name = 'Uptime'").(*core.ShowStatusStmt)
	assert.Equal(t, core.ScopeGlobal, status.Scope)
	assert.NotNil(t, status.Filter.Where)

	cols := buildMySQL(t, "SHOW EXTENDED FULL COLUMNS FROM t FROM db").(*core.ShowColumnsStmt)
	assert.True(t, cols.Extended)
	assert.True(t, cols.Full)
	assert.Equal(t, "t", cols.Table.Name.Value)
	assert.Equal(t, "db", cols.From.Value)

	create := buildMySQL(t, "SHOW CREATE TABLE db.t").(*core.ShowCreateStmt)
	assert.Equal(t, "TABLE", create.Object)
	assert.Equal(t, "db", create.Name.Schema.Value)

	grants := buildMySQL(t, "SHOW GRANTS FOR 'u'@'localhost'").(*core.ShowGrantsStmt)
	require.NotNil(t, grants.For)
	assert.Equal(t, "u", grants.For.Name)
	assert.True(t, grants.For.HasHost)
	assert.Equal(t, "localhost", grants.For.Host)

	diag := buildMySQL(t, "SHOW COUNT(*) WARNINGS").(*core.ShowDiagnosticsStmt)
	assert.True(t, diag.Count)
	assert.Equal(t, "WARNINGS", diag.Kind)

	simple := buildMySQL(t, "SHOW MASTER STATUS").(*core.ShowSimpleStmt)
	assert.Equal(t, "MASTER STATUS", simple.What)

	routine := buildMySQL(t, "SHOW PROCEDURE STATUS LIKE 'p%'").(*core.ShowRoutineStatusStmt)
	assert.Equal(t, "PROCEDURE", routine.Kind)
}

func TestBuildSetVariables(t *testing.T) {
	set := buildMySQL(t, "SET autocommit = 1, PERSIST max_connections = 10, @@session.sql_mode = 'ANSI', @@wait_timeout = 5, @x := 2, names_var = ON").(*core.SetVariableStmt)
	require.Len(t, set.Assignments, 6)

	sys := func(i int) *core.SystemVariable {
		return set.Assignments[i].Variable.(*core.SystemVariable)
	}
	assert.Equal(t, core.VarBare, sys(0).Form)
	assert.Equal(t, core.ScopeSession, sys(0).Scope)

	assert.Equal(t, core.VarKeyword, sys(1).Form)
	assert.Equal(t, core.ScopePersist, sys(1).Scope)
	assert.Equal(t, "max_connections", sys(1).Name)

	assert.Equal(t, core.VarAtAtDot, sys(2).Form)
	assert.Equal(t, core.ScopeSession, sys(2).Scope)
	assert.Equal(t, "sql_mode", sys(2).Name)

	assert.Equal(t, core.VarAtAt, sys(3).Form)
	assert.Equal(t, core.ScopeSession, sys(3).Scope)

	assert.Equal(t, "x", set.Assignments[4].Variable.(*core.UserVariable).Name)
	assert.Equal(t, "ON", set.Assignments[5].Value.(*core.ColumnRef).Name.Value)
}

func TestBuildSystemVariableExpression(t *testing.T) {
	v := firstItem(t, "SELECT @@global.max_connections", mysql.MySQL).(*core.SystemVariable)
	assert.Equal(t, core.VarAtAtDot, v.Form)
	assert.Equal(t, core.ScopeGlobal, v.Scope)
	assert.Equal(t, "max_connections", v.Name)
}

func TestBuildSetNamesAndCharset(t *testing.T) {
	names := buildMySQL(t, "SET NAMES utf8mb4 COLLATE utf8mb4_bin").(*core.SetNamesStmt)
	assert.Equal(t, "utf8mb4", names.Charset)
	assert.Equal(t, "utf8mb4_bin", names.Collate)

	def := buildMySQL(t, "SET NAMES DEFAULT").(*core.SetNamesStmt)
	assert.True(t, def.Default)

	cs := buildMySQL(t, "SET CHARACTER SET latin1").(*core.SetCharsetStmt)
	assert.Equal(t, "latin1", cs.Charset)
}

func TestBuildPostgresSetAndShow(t *testing.T) {
	pg := postgres.Postgres

	list := buildWith(t, "SET search_path TO a, b", pg).(*core.SetVariableStmt)
	require.Len(t, list.Assignments, 1)
	assert.Equal(t, "search_path", list.Assignments[0].Variable.(*core.SystemVariable).Name)
	assert.Len(t, list.Assignments[0].Value.(*core.RowExpr).Items, 2)

	local := buildWith(t, "SET LOCAL statement_timeout = 0", pg).(*core.SetVariableStmt)
	v := local.Assignments[0].Variable.(*core.SystemVariable)
	assert.Equal(t, core.VarKeyword, v.Form)
	assert.Equal(t, core.ScopeLocal, v.Scope)

	tz := buildWith(t, "SET TIME ZONE 'UTC'", pg).(*core.SetVariableStmt)
	assert.Equal(t, "timezone", tz.Assignments[0].Variable.(*core.SystemVariable).Name)

	def := buildWith(t, "SET work_mem TO DEFAULT", pg).(*core.SetVariableStmt)
	assert.IsType(t, &core.DefaultExpr{}, def.Assignments[0].Value)

	all := buildWith(t, "SHOW ALL", pg).(*core.ShowVariablesStmt)
	assert.True(t, all.All)

	name := buildWith(t, "SHOW search_path", pg).(*core.ShowVariablesStmt)
	assert.Equal(t, "search_path", name.Name.Value)
}

func TestBuildUtilityStatements(t *testing.T) {
	use := buildMySQL(t, "USE db").(*core.UseStmt)
	assert.Equal(t, "db", use.Schema.Value)

	explain := buildMySQL(t, "EXPLAIN FORMAT = JSON SELECT 1").(*core.ExplainStmt)
	assert.Equal(t, "EXPLAIN", explain.Keyword)
	assert.Equal(t, "JSON", explain.Format)
	assert.IsType(t, &core.SelectStmt{}, explain.Stmt)

	desc := buildMySQL(t, "DESCRIBE t col").(*core.DescribeStmt)
	assert.Equal(t, "DESCRIBE", desc.Keyword)
	assert.Equal(t, "col", desc.Column.Value)

	kill := buildMySQL(t, "KILL QUERY 42").(*core.KillStmt)
	assert.Equal(t, "QUERY", kill.Kind)
	assert.Equal(t, "42", kill.ID.(*core.Literal).Value)
}

func TestBuildMaintenance(t *testing.T) {
	analyze := buildMySQL(t, "ANALYZE NO_WRITE_TO_BINLOG TABLE t UPDATE HISTOGRAM ON a, b WITH 16 BUCKETS").(*core.AnalyzeTableStmt)
	assert.Equal(t, "NO_WRITE_TO_BINLOG", analyze.Option)
	require.NotNil(t, analyze.Histogram)
	assert.False(t, analyze.Histogram.Drop)
	assert.Len(t, analyze.Histogram.Columns, 2)
	assert.Equal(t, "16", analyze.Histogram.Buckets.Value)

	check := buildMySQL(t, "CHECK TABLE a, b FOR UPGRADE QUICK").(*core.CheckTableStmt)
	assert.Len(t, check.Tables, 2)
	assert.Equal(t, []string{"FOR UPGRADE", "QUICK"}, check.Options)

	repair := buildMySQL(t, "REPAIR TABLE t QUICK USE_FRM").(*core.RepairTableStmt)
	assert.Equal(t, []string{"QUICK", "USE_FRM"}, repair.Options)
}

func TestBuildAdministration(t *testing.T) {
	flush := buildMySQL(t, "FLUSH TABLES t1, t2 WITH READ LOCK").(*core.FlushStmt)
	assert.True(t, flush.Tables)
	assert.Len(t, flush.TableNames, 2)
	assert.True(t, flush.WithReadLock)

	logs := buildMySQL(t, "FLUSH BINARY LOGS, PRIVILEGES").(*core.FlushStmt)
	assert.Equal(t, []string{"BINARY LOGS", "PRIVILEGES"}, logs.Options)

	cache := buildMySQL(t, "CACHE INDEX t1 INDEX (i1), t2 IN hot_cache").(*core.CacheIndexStmt)
	require.Len(t, cache.Tables, 2)
	assert.Len(t, cache.Tables[0].Indexes, 1)
	assert.Equal(t, "hot_cache", cache.Cache.Value)

	preload := buildMySQL(t, "LOAD INDEX INTO CACHE t1 PARTITION (ALL) IGNORE LEAVES").(*core.LoadIndexStmt)
	assert.True(t, preload.Tables[0].PartitionAll)
	assert.True(t, preload.Tables[0].IgnoreLeaves)

	persist := buildMySQL(t, "RESET PERSIST IF EXISTS max_connections").(*core.ResetPersistStmt)
	assert.True(t, persist.IfExists)
	assert.Equal(t, "max_connections", persist.Name.Value)

	plugin := buildMySQL(t, "INSTALL PLUGIN audit SONAME 'audit.so'").(*core.InstallPluginStmt)
	assert.Equal(t, "audit.so", plugin.Soname)

	comp := buildMySQL(t, "UNINSTALL COMPONENT 'file://a', 'file://b'").(*core.UninstallComponentStmt)
	assert.Equal(t, []string{"file://a", "file://b"}, comp.Components)
}

func TestBuildResourceGroups(t *testing.T) {
	create := buildMySQL(t, "CREATE RESOURCE GROUP rg TYPE = USER VCPU = 0-3, 5 THREAD_PRIORITY = -5 DISABLE").(*core.CreateResourceGroupStmt)
	assert.Equal(t, "rg", create.Name.Value)
	assert.Equal(t, "USER", create.Type)
	require.Len(t, create.VCPUs, 2)
	assert.Equal(t, "0", create.VCPUs[0].Start)
	assert.Equal(t, "3", create.VCPUs[0].Last)
	assert.Equal(t, "", create.VCPUs[1].Last)
	assert.Equal(t, "-5", create.Priority.Value)
	require.NotNil(t, create.Enabled)
	assert.False(t, *create.Enabled)

	alter := buildMySQL(t, "ALTER RESOURCE GROUP rg ENABLE FORCE").(*core.AlterResourceGroupStmt)
	assert.True(t, *alter.Enabled)
	assert.True(t, alter.Force)

	drop := buildMySQL(t, "DROP RESOURCE GROUP rg").(*core.DropResourceGroupStmt)
	assert.False(t, drop.Force)

	set := buildMySQL(t, "SET RESOURCE GROUP rg FOR 1, 2").(*core.SetResourceGroupStmt)
	assert.Len(t, set.Threads, 2)
}

// ---------- Build Error Tests ----------

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		message string
	}{
		{"frame with only an end bound", "SELECT SUM(a) OVER (ROWS 1 FOLLOWING) FROM t", "only an end bound"},
		{"frame starts after it ends", "SELECT SUM(a) OVER (ROWS BETWEEN CURRENT ROW AND 1 PRECEDING) FROM t", "starts at CURRENT ROW"},
		{"frame starts at unbounded following", "SELECT SUM(a) OVER (ROWS BETWEEN UNBOUNDED FOLLOWING AND CURRENT ROW) FROM t", "UNBOUNDED FOLLOWING"},
		{"frame ends at unbounded preceding", "SELECT SUM(a) OVER (ROWS BETWEEN CURRENT ROW AND UNBOUNDED PRECEDING) FROM t", "UNBOUNDED PRECEDING"},
		{"duplicate cte", "WITH a AS (SELECT 1), A AS (SELECT 2) SELECT * FROM a", "duplicate common table expression"},
		{"duplicate window", "SELECT SUM(x) OVER w FROM t WINDOW w AS (ORDER BY x), w AS (ORDER BY y)", "defined twice"},
		{"scoped user variable", "SET GLOBAL @x = 1", "user variables have no scope"},
		{"scope given twice", "SET GLOBAL @@session.x = 1", "given twice"},
		{"keyword scope on @@", "SET GLOBAL @@x = 1", "cannot qualify"},
		{"multi-table update with order", "UPDATE a, b SET a.x = 1 ORDER BY a.x", "does not allow ORDER BY"},
		{"multi-table delete with limit", "DELETE a FROM a JOIN b ON a.id = b.id LIMIT 1", "does not allow LIMIT"},
		{"row shorter than column list", "INSERT INTO t (a, b) VALUES (1)", "row 1 has 1 values, expected 2"},
		{"rows of different arity", "INSERT INTO t VALUES (1, 2), (3)", "row 2 has 1 values, expected 2"},
		{"table name too qualified", "SELECT * FROM a.b.c", "too many qualifiers"},
		{"fractional limit", "SELECT a FROM t LIMIT 1.5", "not a non-negative integer"},
		{"limit with decimal point", "SELECT a FROM t LIMIT 1.0", "not a non-negative integer"},
		{"limit with exponent", "SELECT a FROM t LIMIT 1e2", "not a non-negative integer"},
		{"offset with decimal point", "SELECT a FROM t LIMIT 10 OFFSET 2.0", "not a non-negative integer"},
		{"reversed vcpu range", "CREATE RESOURCE GROUP rg TYPE = USER VCPU = 3-1", "reversed"},
		{"histogram over two tables", "ANALYZE TABLE a, b UPDATE HISTOGRAM ON c", "exactly one table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			berr := buildErr(t, tt.sql)
			assert.Contains(t, berr.Message, tt.message)
			assert.Contains(t, berr.Error(), "build error at line 1")
		})
	}
}

func TestBuildErrorPosition(t *testing.T) {
	berr := buildErr(t, "WITH a AS (SELECT 1), A AS (SELECT 2) SELECT * FROM a")
	assert.Equal(t, 22, berr.Pos().Offset)
	assert.Equal(t, 23, berr.Pos().Column)
}

func TestBuildNil(t *testing.T) {
	stmt, err := builder.Build(nil, mysql.MySQL)
	assert.Nil(t, stmt)
	var berr *builder.BuildError
	assert.ErrorAs(t, err, &berr)
}
