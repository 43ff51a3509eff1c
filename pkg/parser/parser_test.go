package parser_test

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWith(t *testing.T, sql string, d *dialect.Dialect) *cst.Node {
	t.Helper()
	tree, err := parser.Parse(sql, d)
	require.NoError(t, err, sql)
	require.NoError(t, cst.Verify(tree), sql)
	return tree
}

func parseMySQL(t *testing.T, sql string) *cst.Node {
	t.Helper()
	return parseWith(t, sql, mysql.MySQL)
}

// selectItem returns the expression of the i-th select item of a plain
// SELECT statement.
func selectItem(t *testing.T, tree *cst.Node, i int) *cst.Node {
	t.Helper()
	items := tree.Child("query").All("item")
	require.Greater(t, len(items), i)
	return items[i].Child("expr")
}

// ---------- Statement Shape Tests ----------

func TestSelectShape(t *testing.T) {
	tree := parseMySQL(t, "SELECT id, name FROM users WHERE id = 1 LIMIT 10")
	require.Equal(t, cst.RuleSelectStmt, tree.Rule)

	spec := tree.Child("query")
	require.Equal(t, cst.RuleQuerySpec, spec.Rule)
	assert.Len(t, spec.All("item"), 2)

	from := spec.Child("from")
	require.NotNil(t, from)
	ref := from.Child("ref")
	assert.Equal(t, cst.RuleTableName, ref.Rule)
	assert.Equal(t, "users", ref.Child("name").Child("part").Text())

	cond := spec.Child("where").Child("cond")
	assert.Equal(t, cst.RuleBinary, cond.Rule)
	assert.Equal(t, "=", cond.Child("op").Text())

	limit := tree.Child("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "10", limit.Child("count").Child("part").Text())
	assert.False(t, limit.Has("offset"))

	assert.Equal(t, 0, tree.Span.Start.Offset)
	assert.Equal(t, len("SELECT id, name FROM users WHERE id = 1 LIMIT 10"), tree.Span.End.Offset)
}

func TestUpdateShape(t *testing.T) {
	tree := parseMySQL(t, "UPDATE t SET a = 1, b = 2 WHERE c > 3")
	require.Equal(t, cst.RuleUpdate, tree.Rule)

	sets := tree.All("set")
	require.Len(t, sets, 2)
	assert.Equal(t, cst.RuleAssignment, sets[0].Rule)
	assert.Equal(t, "a", sets[0].Child("column").Child("part").Text())
	assert.Equal(t, cst.RuleLiteral, sets[1].Child("value").Rule)

	cond := tree.Child("where").Child("cond")
	assert.Equal(t, ">", cond.Child("op").Text())
}

func TestShowVariablesShape(t *testing.T) {
	tree := parseMySQL(t, "SHOW VARIABLES LIKE 'auto%'")
	assert.Equal(t, cst.RuleShowVariables, tree.Rule)
}

func TestInsertShape(t *testing.T) {
	tree := parseMySQL(t, "INSERT INTO t (a,b) VALUES (1,2) ON DUPLICATE KEY UPDATE a = a + 1")
	require.Equal(t, cst.RuleInsert, tree.Rule)
	assert.Len(t, tree.All("column"), 2)

	rows := tree.All("row")
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].All("item"), 2)

	dup := tree.All("dup")
	require.Len(t, dup, 1)
	assert.Equal(t, cst.RuleBinary, dup[0].Child("value").Rule)
}

func TestInsertForms(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		check func(t *testing.T, n *cst.Node)
	}{
		{"set form", "INSERT LOW_PRIORITY IGNORE t SET a = 1, b = DEFAULT", func(t *testing.T, n *cst.Node) {
			assert.Equal(t, "LOW_PRIORITY", n.Child("priority").Upper())
			assert.True(t, n.Has("ignore"))
			assert.Len(t, n.All("set"), 2)
			assert.Equal(t, cst.RuleDefault, n.All("set")[1].Child("value").Rule)
		}},
		{"select form", "INSERT INTO t (a) SELECT x FROM s", func(t *testing.T, n *cst.Node) {
			assert.Equal(t, cst.RuleSelectStmt, n.Child("query").Rule)
		}},
		{"parenthesised select", "INSERT INTO t ((SELECT x FROM s))", func(t *testing.T, n *cst.Node) {
			assert.False(t, n.Has("column"))
			assert.Equal(t, cst.RuleParenQuery, n.Child("query").Child("query").Rule)
		}},
		{"multiple rows", "INSERT INTO t VALUES (1, 2), ROW(3, 4), ()", func(t *testing.T, n *cst.Node) {
			assert.Len(t, n.All("row"), 3)
			assert.Empty(t, n.All("row")[2].All("item"))
		}},
		{"row alias", "INSERT INTO t VALUES (1) AS new (x) ON DUPLICATE KEY UPDATE a = new.x", func(t *testing.T, n *cst.Node) {
			assert.Equal(t, "new", n.Child("row_alias").Text())
			assert.Len(t, n.All("alias_col"), 1)
			assert.Len(t, n.All("dup"), 1)
		}},
		{"partition", "INSERT INTO t PARTITION (p0, p1) VALUES (1)", func(t *testing.T, n *cst.Node) {
			assert.Len(t, n.Child("table").All("partition"), 2)
		}},
		{"replace", "REPLACE INTO t (a) VALUES (1)", func(t *testing.T, n *cst.Node) {
			assert.Equal(t, cst.RuleReplace, n.Rule)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, parseMySQL(t, tt.sql))
		})
	}
}

func TestDeleteForms(t *testing.T) {
	tree := parseMySQL(t, "DELETE LOW_PRIORITY QUICK FROM t WHERE id = 1 ORDER BY id LIMIT 5")
	require.Equal(t, cst.RuleDelete, tree.Rule)
	assert.Len(t, tree.All("option"), 2)
	assert.False(t, tree.Has("target"))
	assert.Equal(t, cst.RuleTableName, tree.Child("ref").Rule)
	assert.True(t, tree.Has("where"))
	assert.True(t, tree.Has("order"))
	assert.True(t, tree.Has("limit"))

	tree = parseMySQL(t, "DELETE t1, t2.* FROM t1 JOIN t2 ON t1.id = t2.id WHERE t1.x = 1")
	assert.Len(t, tree.All("target"), 2)
	assert.Equal(t, cst.RuleJoin, tree.Child("ref").Rule)
	assert.False(t, tree.Has("using_kw"))

	tree = parseMySQL(t, "DELETE FROM t1 USING t1 JOIN t2 ON t1.id = t2.id")
	assert.Len(t, tree.All("target"), 1)
	assert.True(t, tree.Has("using_kw"))
	assert.Equal(t, cst.RuleJoin, tree.Child("ref").Rule)

	_, err := parser.Parse("DELETE t1 FROM t1", ansi.ANSI)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr, "multi-table delete is a MySQL form")
}

func TestUpdateMultiTable(t *testing.T) {
	tree := parseMySQL(t, "WITH s AS (SELECT 1 AS id) UPDATE LOW_PRIORITY IGNORE a, b SET a.x = b.y WHERE a.id = b.id")
	require.Equal(t, cst.RuleUpdate, tree.Rule)
	assert.True(t, tree.Has("with"))
	assert.True(t, tree.Has("low_priority"))
	assert.True(t, tree.Has("ignore"))
	assert.Len(t, tree.All("table"), 2)
}

func TestCall(t *testing.T) {
	tree := parseMySQL(t, "CALL db.proc(1, 'a')")
	require.Equal(t, cst.RuleCall, tree.Rule)
	assert.Len(t, tree.Child("name").All("part"), 2)
	assert.Len(t, tree.All("arg"), 2)

	tree = parseMySQL(t, "CALL proc")
	assert.False(t, tree.Has("lparen"))

	tree = parseMySQL(t, "CALL proc()")
	assert.True(t, tree.Has("lparen"))
	assert.Empty(t, tree.All("arg"))
}

// ---------- Query Expression Tests ----------

func TestSetOperations(t *testing.T) {
	tree := parseMySQL(t, "SELECT a FROM t1 UNION ALL SELECT b FROM t2 ORDER BY 1 LIMIT 5, 10")
	q := tree.Child("query")
	require.Equal(t, cst.RuleSetOperation, q.Rule)
	assert.Equal(t, "UNION", q.Child("op").Upper())
	assert.Equal(t, "ALL", q.Child("quantifier").Upper())
	assert.True(t, tree.Has("order"))

	limit := tree.Child("limit")
	assert.Equal(t, "5", limit.Child("offset").Child("part").Text())
	assert.Equal(t, "10", limit.Child("count").Child("part").Text())

	// INTERSECT binds tighter than UNION.
	tree = parseMySQL(t, "SELECT 1 UNION SELECT 2 INTERSECT SELECT 3")
	q = tree.Child("query")
	assert.Equal(t, "UNION", q.Child("op").Upper())
	assert.Equal(t, cst.RuleSetOperation, q.Child("right").Rule)
	assert.Equal(t, "INTERSECT", q.Child("right").Child("op").Upper())
}

func TestQueryPrimaries(t *testing.T) {
	tree := parseMySQL(t, "(SELECT 1) UNION (SELECT 2)")
	q := tree.Child("query")
	assert.Equal(t, cst.RuleParenQuery, q.Child("left").Rule)

	tree = parseMySQL(t, "TABLE t")
	assert.Equal(t, cst.RuleTableQuery, tree.Child("query").Rule)

	tree = parseMySQL(t, "VALUES ROW(1, 2), ROW(3, 4)")
	vq := tree.Child("query")
	assert.Equal(t, cst.RuleValuesQuery, vq.Rule)
	assert.Len(t, vq.All("row"), 2)
}

func TestWith(t *testing.T) {
	tree := parseMySQL(t, "WITH RECURSIVE c (n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM c WHERE n < 5), d AS (SELECT 2) SELECT n FROM c")
	w := tree.Child("with")
	require.NotNil(t, w)
	assert.True(t, w.Has("recursive"))

	ctes := w.All("cte")
	require.Len(t, ctes, 2)
	assert.Equal(t, "c", ctes[0].Child("name").Text())
	assert.Len(t, ctes[0].All("col"), 1)
	assert.Equal(t, cst.RuleSetOperation, ctes[0].Child("query").Child("query").Rule)
}

func TestSelectOptionsAndClauses(t *testing.T) {
	tree := parseMySQL(t, "SELECT DISTINCT SQL_NO_CACHE a, COUNT(*) AS n FROM t GROUP BY a WITH ROLLUP HAVING n > 1")
	spec := tree.Child("query")
	assert.Len(t, spec.All("option"), 2)

	count := spec.All("item")[1]
	assert.Equal(t, "n", count.Child("alias").Text())
	assert.True(t, count.Child("expr").Has("star"))

	group := spec.Child("group")
	require.NotNil(t, group)
	assert.Len(t, group.All("item"), 1)
	assert.True(t, group.Has("rollup"))
	assert.True(t, spec.Has("having"))
}

func TestSelectItems(t *testing.T) {
	tree := parseMySQL(t, "SELECT *, t.*, a alias1, b AS 'alias 2', c `alias 3` FROM t")
	items := tree.Child("query").All("item")
	require.Len(t, items, 5)
	assert.Equal(t, cst.RuleStar, items[0].Child("expr").Rule)
	assert.Equal(t, cst.RuleStar, items[1].Child("expr").Rule)
	assert.Equal(t, "alias1", items[2].Child("alias").Text())
	assert.Equal(t, "alias 2", items[3].Child("alias").Text())
	assert.Equal(t, "alias 3", items[4].Child("alias").Text())

	tree = parseMySQL(t, "SELECT 1 FROM DUAL")
	assert.True(t, tree.Child("query").Child("from").Has("dual"))
}

func TestLockingAndInto(t *testing.T) {
	tree := parseMySQL(t, "SELECT * FROM t FOR UPDATE OF t SKIP LOCKED")
	lock := tree.Child("lock")
	require.NotNil(t, lock)
	assert.Equal(t, "FOR UPDATE", lock.Words("strength"))
	assert.Equal(t, "SKIP LOCKED", lock.Words("wait"))
	assert.Len(t, lock.All("table"), 1)

	tree = parseMySQL(t, "SELECT * FROM t LOCK IN SHARE MODE")
	assert.Equal(t, "LOCK IN SHARE MODE", tree.Child("lock").Words("strength"))

	tree = parseMySQL(t, "SELECT a FROM t INTO OUTFILE '/tmp/a.csv' CHARACTER SET utf8mb4 FIELDS TERMINATED BY ',' OPTIONALLY ENCLOSED BY '\"' LINES TERMINATED BY '\\n'")
	into := tree.Child("into")
	require.NotNil(t, into)
	assert.True(t, into.Has("outfile"))
	assert.Equal(t, "utf8mb4", into.Child("charset").Text())
	ex := into.Child("export")
	require.NotNil(t, ex)
	assert.Equal(t, ",", ex.Child("fields_terminated").Child("part").Text())
	assert.True(t, ex.Has("optionally"))
	assert.Equal(t, "\n", ex.Child("lines_terminated").Child("part").Text())

	tree = parseMySQL(t, "SELECT a, b INTO @x, @y FROM t")
	assert.Len(t, tree.Child("query").Child("into").All("var"), 2)
}

func TestLimitForms(t *testing.T) {
	tree := parseWith(t, "SELECT a FROM t LIMIT 10 OFFSET 5", postgres.Postgres)
	limit := tree.Child("limit")
	assert.Equal(t, "10", limit.Child("count").Child("part").Text())
	assert.Equal(t, "5", limit.Child("offset").Child("part").Text())

	tree = parseWith(t, "SELECT a FROM t LIMIT ALL", postgres.Postgres)
	assert.True(t, tree.Child("limit").Has("all"))

	tree = parseWith(t, "SELECT a FROM t OFFSET 3", ansi.ANSI)
	assert.Equal(t, "3", tree.Child("limit").Child("offset").Child("part").Text())

	tree = parseMySQL(t, "SELECT a FROM t LIMIT ?")
	assert.Equal(t, cst.RuleParam, tree.Child("limit").Child("count").Rule)
}

// ---------- Table Reference Tests ----------

func TestJoins(t *testing.T) {
	tree := parseMySQL(t, "SELECT * FROM a JOIN b ON a.id = b.id LEFT OUTER JOIN c USING (id, k)")
	ref := tree.Child("query").Child("from").Child("ref")
	require.Equal(t, cst.RuleJoin, ref.Rule)
	assert.Equal(t, "LEFT OUTER", ref.Words("type"))
	assert.Len(t, ref.All("col"), 2)

	inner := ref.Child("left")
	require.Equal(t, cst.RuleJoin, inner.Rule)
	assert.False(t, inner.Has("type"))
	assert.Equal(t, cst.RuleBinary, inner.Child("on").Rule)

	tree = parseMySQL(t, "SELECT * FROM a NATURAL LEFT JOIN b CROSS JOIN c STRAIGHT_JOIN d ON c.x = d.x")
	ref = tree.Child("query").Child("from").Child("ref")
	assert.Equal(t, "STRAIGHT_JOIN", ref.Words("type"))
	assert.True(t, ref.Has("on"))
	natural := ref.Child("left").Child("left")
	assert.True(t, natural.Has("natural"))

	// MySQL joins without a condition are cross joins.
	parseMySQL(t, "SELECT * FROM a INNER JOIN b")
}

func TestTableFactors(t *testing.T) {
	tree := parseMySQL(t, "SELECT * FROM db.t AS x USE INDEX (i1) FORCE KEY FOR JOIN (i2, PRIMARY)")
	ref := tree.Child("query").Child("from").Child("ref")
	assert.Len(t, ref.Child("name").All("part"), 2)
	assert.Equal(t, "x", ref.Child("alias").Text())
	hints := ref.All("hint")
	require.Len(t, hints, 2)
	assert.Equal(t, "FORCE", hints[1].Child("action").Upper())
	assert.Equal(t, "JOIN", hints[1].Words("for"))
	assert.Len(t, hints[1].All("index"), 2)

	tree = parseMySQL(t, "SELECT * FROM (SELECT 1 AS a) AS d (x)")
	dt := tree.Child("query").Child("from").Child("ref")
	require.Equal(t, cst.RuleDerivedTable, dt.Rule)
	assert.Equal(t, "d", dt.Child("alias").Text())
	assert.Len(t, dt.All("col"), 1)

	tree = parseMySQL(t, "SELECT * FROM t1, LATERAL (SELECT t1.a) AS l")
	refs := tree.Child("query").Child("from").All("ref")
	require.Len(t, refs, 2)
	assert.True(t, refs[1].Has("lateral"))

	tree = parseMySQL(t, "SELECT * FROM (a, b JOIN c ON b.id = c.id)")
	pt := tree.Child("query").Child("from").Child("ref")
	require.Equal(t, cst.RuleParenTableRef, pt.Rule)
	assert.Len(t, pt.All("ref"), 2)

	tree = parseMySQL(t, "SELECT * FROM t PARTITION (p1) WHERE a = 1")
	assert.Len(t, tree.Child("query").Child("from").Child("ref").All("partition"), 1)
}

// ---------- Expression Tests ----------

func TestOperatorPrecedence(t *testing.T) {
	tree := parseMySQL(t, "SELECT 1 + 2 * 3")
	e := selectItem(t, tree, 0)
	assert.Equal(t, "+", e.Child("op").Text())
	assert.Equal(t, "*", e.Child("right").Child("op").Text())

	tree = parseMySQL(t, "SELECT a OR b AND NOT c")
	e = selectItem(t, tree, 0)
	assert.Equal(t, "OR", e.Child("op").Upper())
	and := e.Child("right")
	assert.Equal(t, "AND", and.Child("op").Upper())
	assert.Equal(t, cst.RuleUnary, and.Child("right").Rule)

	tree = parseMySQL(t, "SELECT 10 - 4 - 3")
	e = selectItem(t, tree, 0)
	assert.Equal(t, cst.RuleBinary, e.Child("left").Rule, "subtraction is left-associative")

	tree = parseMySQL(t, "SELECT @a := @b := 1")
	e = selectItem(t, tree, 0)
	assert.Equal(t, cst.RuleUserVar, e.Child("left").Rule)
	assert.Equal(t, cst.RuleBinary, e.Child("right").Rule, ":= is right-associative")

	tree = parseMySQL(t, "SELECT -a * b")
	e = selectItem(t, tree, 0)
	assert.Equal(t, cst.RuleUnary, e.Child("left").Rule)
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		sql  string
		rule cst.Rule
		not  bool
	}{
		{"SELECT a IN (1, 2, 3)", cst.RuleIn, false},
		{"SELECT a NOT IN (SELECT b FROM t)", cst.RuleIn, true},
		{"SELECT a BETWEEN 1 AND 5", cst.RuleBetween, false},
		{"SELECT a NOT BETWEEN 1 AND 5 AND b", cst.RuleBinary, false},
		{"SELECT a LIKE 'x%' ESCAPE '!'", cst.RuleLike, false},
		{"SELECT a NOT REGEXP '^x'", cst.RuleRegexp, true},
		{"SELECT a IS NOT NULL", cst.RuleIs, true},
		{"SELECT a IS TRUE", cst.RuleIs, false},
		{"SELECT a SOUNDS LIKE b", cst.RuleBinary, false},
		{"SELECT 1 MEMBER OF ('[1]')", cst.RuleBinary, false},
		{"SELECT a = ANY (SELECT b FROM t)", cst.RuleBinary, false},
		{"SELECT EXISTS (SELECT 1)", cst.RuleExists, false},
		{"SELECT a COLLATE utf8mb4_bin", cst.RuleCollate, false},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			e := selectItem(t, parseMySQL(t, tt.sql), 0)
			assert.Equal(t, tt.rule, e.Rule)
			assert.Equal(t, tt.not, e.Has("not"))
		})
	}

	e := selectItem(t, parseMySQL(t, "SELECT a NOT IN (SELECT b FROM t)"), 0)
	assert.True(t, e.Has("query"))
	e = selectItem(t, parseMySQL(t, "SELECT (a, b) IN ((1, 2), (3, 4))"), 0)
	assert.Equal(t, cst.RuleRow, e.Child("expr").Rule)
	assert.Len(t, e.All("item"), 2)
}

func TestPrimaries(t *testing.T) {
	tests := []struct {
		sql  string
		rule cst.Rule
	}{
		{"SELECT 'a' 'b'", cst.RuleLiteral},
		{"SELECT _utf8mb4'x'", cst.RuleLiteral},
		{"SELECT DATE '2024-01-01'", cst.RuleLiteral},
		{"SELECT ?", cst.RuleParam},
		{"SELECT @v", cst.RuleUserVar},
		{"SELECT @@session.sql_mode", cst.RuleSysVar},
		{"SELECT (1)", cst.RuleParen},
		{"SELECT (1, 2)", cst.RuleRow},
		{"SELECT ROW(1, 2)", cst.RuleRow},
		{"SELECT (SELECT 1)", cst.RuleSubquery},
		{"SELECT CASE a WHEN 1 THEN 'x' ELSE 'y' END", cst.RuleCase},
		{"SELECT CASE WHEN a > 1 THEN 'x' END", cst.RuleCase},
		{"SELECT CURRENT_TIMESTAMP", cst.RuleFuncCall},
		{"SELECT db.f(1)", cst.RuleFuncCall},
		{"SELECT a.b.c", cst.RuleColumnRef},
		{"SELECT DEFAULT(a)", cst.RuleDefault},
		{"SELECT INTERVAL 1 DAY + d", cst.RuleBinary},
		{"SELECT INTERVAL(5, 1, 10)", cst.RuleFuncCall},
		{"SELECT MATCH (title, body) AGAINST ('x' IN BOOLEAN MODE)", cst.RuleMatch},
		{"SELECT MATCH (title) AGAINST ('x' WITH QUERY EXPANSION)", cst.RuleMatch},
		{"SELECT doc->>'$.name'", cst.RuleBinary},
		{"SELECT BINARY a", cst.RuleUnary},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			e := selectItem(t, parseMySQL(t, tt.sql), 0)
			assert.Equal(t, tt.rule, e.Rule)
		})
	}

	e := selectItem(t, parseMySQL(t, "SELECT @@GLOBAL.max_connections"), 0)
	assert.Equal(t, "GLOBAL", e.Child("scope").Upper())
	assert.Equal(t, "max_connections", e.Child("name").Text())

	e = selectItem(t, parseMySQL(t, "SELECT 'a' 'b'"), 0)
	assert.Len(t, e.All("part"), 2)
}

func TestSpecialFunctions(t *testing.T) {
	tests := []struct {
		sql  string
		rule cst.Rule
	}{
		{"SELECT CAST(a AS UNSIGNED INTEGER)", cst.RuleCast},
		{"SELECT CAST(a AS DECIMAL(10, 2))", cst.RuleCast},
		{"SELECT CAST(a AS CHAR(10) CHARACTER SET utf8mb4)", cst.RuleCast},
		{"SELECT CONVERT(a, SIGNED)", cst.RuleConvert},
		{"SELECT CONVERT(a USING latin1)", cst.RuleConvert},
		{"SELECT EXTRACT(YEAR FROM d)", cst.RuleExtract},
		{"SELECT TRIM(LEADING 'x' FROM a)", cst.RuleTrim},
		{"SELECT TRIM('x' FROM a)", cst.RuleTrim},
		{"SELECT TRIM(a)", cst.RuleTrim},
		{"SELECT SUBSTRING(a FROM 2 FOR 3)", cst.RuleSubstring},
		{"SELECT SUBSTR(a, 2)", cst.RuleSubstring},
		{"SELECT POSITION('a' IN b)", cst.RulePosition},
		{"SELECT CHAR(77, 121 USING utf8mb4)", cst.RuleChar},
		{"SELECT GROUP_CONCAT(DISTINCT a ORDER BY a DESC SEPARATOR ';')", cst.RuleGroupConcat},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			e := selectItem(t, parseMySQL(t, tt.sql), 0)
			assert.Equal(t, tt.rule, e.Rule)
		})
	}

	e := selectItem(t, parseMySQL(t, "SELECT CAST(a AS UNSIGNED INTEGER)"), 0)
	assert.Equal(t, "UNSIGNED INTEGER", e.Child("type").Words("name"))

	e = selectItem(t, parseMySQL(t, "SELECT SUBSTRING(a FROM 2 FOR 3)"), 0)
	assert.True(t, e.Has("from_kw"))
	assert.True(t, e.Has("for"))

	e = selectItem(t, parseWith(t, "SELECT a::varchar(10)", postgres.Postgres), 0)
	assert.Equal(t, cst.RuleCast, e.Rule)
	assert.Len(t, e.Child("type").All("param"), 1)
}

func TestWindowFunctions(t *testing.T) {
	tree := parseMySQL(t, `SELECT ROW_NUMBER() OVER (PARTITION BY a ORDER BY b ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW),
		SUM(x) OVER w, LAG(x, 1) OVER (w ORDER BY c RANGE 3 PRECEDING)
		FROM t WINDOW w AS (PARTITION BY a)`)

	rn := selectItem(t, tree, 0)
	spec := rn.Child("over")
	require.NotNil(t, spec)
	assert.Len(t, spec.All("partition"), 1)
	frame := spec.Child("frame")
	require.NotNil(t, frame)
	assert.Equal(t, "ROWS", frame.Child("units").Upper())
	assert.Equal(t, "UNBOUNDED PRECEDING", frame.Child("start").Words("kind"))
	assert.Equal(t, "CURRENT ROW", frame.Child("end").Words("kind"))

	sum := selectItem(t, tree, 1)
	assert.Equal(t, "w", sum.Child("over_name").Text())

	lag := selectItem(t, tree, 2)
	assert.Equal(t, "w", lag.Child("over").Child("name").Text())
	bound := lag.Child("over").Child("frame").Child("start")
	assert.Equal(t, cst.RuleLiteral, bound.Child("offset").Rule)

	window := tree.Child("query").Child("window")
	require.NotNil(t, window)
	named := window.All("window")
	require.Len(t, named, 1)
	assert.Equal(t, "w", named[0].Child("name").Text())
}

func TestNullsOrdering(t *testing.T) {
	tree := parseWith(t, "SELECT a FROM t ORDER BY a DESC NULLS LAST", postgres.Postgres)
	item := tree.Child("order").Child("item")
	assert.Equal(t, "DESC", item.Child("dir").Upper())
	assert.Equal(t, "NULLS LAST", item.Words("nulls"))
}

// ---------- Identifier Tests ----------

func TestKeywordsAsIdentifiers(t *testing.T) {
	tests := []string{
		"SELECT status, comment, `select` FROM `from`",
		"SELECT t.select FROM t",
		"SELECT first, last FROM logs",
		"SELECT value FROM settings WHERE name = 'x'",
		"SELECT x FROM t AS help",
	}
	for _, sql := range tests {
		t.Run(sql, func(t *testing.T) {
			parseMySQL(t, sql)
		})
	}

	_, err := parser.Parse("SELECT * FROM select", mysql.MySQL)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
}

// ---------- Script Tests ----------

func TestParseScript(t *testing.T) {
	toks, err := parser.Tokenize("SELECT 1; ; UPDATE t SET a = 1;\nSHOW DATABASES", mysql.MySQL)
	require.NoError(t, err)

	script, err := parser.ParseScript(toks, mysql.MySQL)
	require.NoError(t, err)
	require.NoError(t, cst.Verify(script))
	assert.Equal(t, cst.RuleScript, script.Rule)

	stmts := script.All("stmt")
	require.Len(t, stmts, 3)
	assert.Equal(t, cst.RuleSelectStmt, stmts[0].Rule)
	assert.Equal(t, cst.RuleUpdate, stmts[1].Rule)
	assert.Equal(t, cst.RuleShowDatabases, stmts[2].Rule)
}

func TestParseScriptEmpty(t *testing.T) {
	toks, err := parser.Tokenize(" ; ;; ", mysql.MySQL)
	require.NoError(t, err)

	script, err := parser.ParseScript(toks, mysql.MySQL)
	require.NoError(t, err)
	assert.Empty(t, script.Children)
}

func TestParseScriptMissingSeparator(t *testing.T) {
	toks, err := parser.Tokenize("SELECT 1 SELECT 2", mysql.MySQL)
	require.NoError(t, err)

	_, err = parser.ParseScript(toks, mysql.MySQL)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 9, perr.Pos.Offset)
	assert.Contains(t, perr.Expected, "';'")
}

func TestTrailingSemicolon(t *testing.T) {
	tree := parseMySQL(t, "SELECT 1;")
	assert.Equal(t, cst.RuleSelectStmt, tree.Rule)
}

// ---------- Tree Invariant Tests ----------

func TestTreeReproducesTokens(t *testing.T) {
	queries := []string{
		"SELECT a, b + 1 AS c FROM t1 JOIN t2 USING (id) WHERE a IN (1, 2) ORDER BY c LIMIT 3",
		"INSERT INTO t (a) VALUES (1), (2) ON DUPLICATE KEY UPDATE a = VALUES(a)",
		"WITH x AS (SELECT 1) SELECT * FROM x UNION SELECT 2",
		"DELETE FROM t WHERE a BETWEEN 1 AND 2",
		"SET @a = 1, SESSION sql_mode = 'ANSI'",
	}

	for _, sql := range queries {
		t.Run(sql, func(t *testing.T) {
			toks, err := parser.Tokenize(sql, mysql.MySQL)
			require.NoError(t, err)
			tree, err := parser.ParseTokens(toks, mysql.MySQL)
			require.NoError(t, err)
			require.NoError(t, cst.Verify(tree))

			// Every token except EOF is attached exactly once, in order.
			assert.Equal(t, toks[:len(toks)-1], tree.Tokens())
		})
	}
}

func TestDump(t *testing.T) {
	tree := parseMySQL(t, "SELECT a FROM t")
	dump := cst.Dump(tree)
	assert.True(t, strings.HasPrefix(dump, "select_stmt [0,15)"))
	assert.Contains(t, dump, "query: query_spec")
}
