package format

import (
	"reflect"
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/builder"
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, sql string, d *dialect.Dialect) core.Stmt {
	t.Helper()
	tree, err := parser.Parse(sql, d)
	require.NoError(t, err, sql)
	stmt, err := builder.Build(tree, d)
	require.NoError(t, err, sql)
	return stmt
}

type formatCase struct {
	name     string
	input    string
	expected string
}

func runFormatCases(t *testing.T, d *dialect.Dialect, tests []formatCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(build(t, tt.input, d), d)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormat_Scenarios(t *testing.T) {
	runFormatCases(t, mysql.MySQL, []formatCase{
		{
			name:  "select with limit",
			input: "SELECT id, name FROM users WHERE id = 1 LIMIT 10",
			expected: `SELECT
  id,
  name
FROM users
WHERE
  id = 1
LIMIT 10
`,
		},
		{
			name:  "update",
			input: "UPDATE t SET a = 1, b = 2 WHERE c > 3",
			expected: `UPDATE t
SET
  a = 1,
  b = 2
WHERE
  c > 3
`,
		},
		{
			name:     "show variables",
			input:    "SHOW VARIABLES LIKE 'auto%'",
			expected: "SHOW VARIABLES LIKE 'auto%'\n",
		},
		{
			name:  "insert on duplicate key",
			input: "INSERT INTO t (a,b) VALUES (1,2) ON DUPLICATE KEY UPDATE a = a + 1",
			expected: `INSERT INTO t (a, b)
VALUES
  (1, 2)
ON DUPLICATE KEY UPDATE
  a = a + 1
`,
		},
	})
}

func TestFormat_BasicSelect(t *testing.T) {
	runFormatCases(t, mysql.MySQL, []formatCase{
		{
			name:  "select with alias",
			input: "select a as col1, b col2 from t",
			expected: `SELECT
  a AS col1,
  b AS col2
FROM t
`,
		},
		{
			name:  "select table star",
			input: "SELECT t.* FROM db.t",
			expected: `SELECT
  t.*
FROM db.t
`,
		},
		{
			name:  "quoted identifiers are kept",
			input: "SELECT `select` FROM `my table`",
			expected: "SELECT\n  `select`\nFROM `my table`\n",
		},
		{
			name:  "options and dual",
			input: "SELECT DISTINCT SQL_NO_CACHE 1 FROM DUAL",
			expected: `SELECT DISTINCT SQL_NO_CACHE
  1
FROM DUAL
`,
		},
		{
			name:  "group by having order",
			input: "SELECT a, COUNT(*) FROM t GROUP BY a WITH ROLLUP HAVING COUNT(*) > 1 ORDER BY a DESC",
			expected: `SELECT
  a,
  COUNT(*)
FROM t
GROUP BY a WITH ROLLUP
HAVING
  COUNT(*) > 1
ORDER BY a DESC
`,
		},
		{
			name:  "limit with offset comma",
			input: "SELECT a FROM t LIMIT 5, 10",
			expected: `SELECT
  a
FROM t
LIMIT 10 OFFSET 5
`,
		},
		{
			name:  "locking read",
			input: "SELECT a FROM t FOR UPDATE NOWAIT",
			expected: `SELECT
  a
FROM t
FOR UPDATE NOWAIT
`,
		},
	})
}

func TestFormat_Conditions(t *testing.T) {
	runFormatCases(t, mysql.MySQL, []formatCase{
		{
			name:  "long conjunction breaks before AND",
			input: "SELECT a FROM t WHERE x = 1 AND y = 2 AND z = 3",
			expected: `SELECT
  a
FROM t
WHERE
  x = 1
  AND y = 2
  AND z = 3
`,
		},
		{
			name:  "short conjunction stays inline",
			input: "SELECT a FROM t WHERE x AND y",
			expected: `SELECT
  a
FROM t
WHERE
  x AND y
`,
		},
		{
			name:  "predicates",
			input: "SELECT a FROM t WHERE b NOT IN (1, 2) AND c BETWEEN 1 AND 5",
			expected: `SELECT
  a
FROM t
WHERE
  b NOT IN (1, 2)
  AND c BETWEEN 1 AND 5
`,
		},
	})
}

func TestFormat_Joins(t *testing.T) {
	runFormatCases(t, mysql.MySQL, []formatCase{
		{
			name:  "left outer join",
			input: "SELECT a FROM t LEFT OUTER JOIN u ON t.id = u.id",
			expected: `SELECT
  a
FROM t
LEFT JOIN u ON t.id = u.id
`,
		},
		{
			name:  "join using",
			input: "SELECT a FROM t AS x JOIN u USING (id)",
			expected: `SELECT
  a
FROM t AS x
JOIN u USING (id)
`,
		},
		{
			name:  "index hint",
			input: "SELECT a FROM t FORCE INDEX FOR ORDER BY (i1, i2)",
			expected: `SELECT
  a
FROM t FORCE INDEX FOR ORDER BY (i1, i2)
`,
		},
	})
}

func TestFormat_Subqueries(t *testing.T) {
	runFormatCases(t, mysql.MySQL, []formatCase{
		{
			name:  "derived table",
			input: "SELECT a FROM (SELECT b FROM u) AS x",
			expected: `SELECT
  a
FROM (
  SELECT
    b
  FROM u
) AS x
`,
		},
		{
			name:  "union all",
			input: "SELECT a FROM t UNION ALL SELECT b FROM u",
			expected: `SELECT
  a
FROM t
UNION ALL
SELECT
  b
FROM u
`,
		},
		{
			name:  "with clause",
			input: "WITH c AS (SELECT 1) SELECT * FROM c",
			expected: `WITH
  c AS (
    SELECT
      1
  )
SELECT
  *
FROM c
`,
		},
	})
}

func TestFormat_DML(t *testing.T) {
	runFormatCases(t, mysql.MySQL, []formatCase{
		{
			name:  "insert select",
			input: "INSERT IGNORE INTO t (a) SELECT b FROM u",
			expected: `INSERT IGNORE INTO t (a)
SELECT
  b
FROM u
`,
		},
		{
			name:  "replace set",
			input: "REPLACE LOW_PRIORITY INTO t SET a = 1",
			expected: `REPLACE LOW_PRIORITY INTO t
SET
  a = 1
`,
		},
		{
			name:  "single table delete",
			input: "DELETE QUICK FROM t WHERE id = 1 ORDER BY id LIMIT 5",
			expected: `DELETE QUICK FROM t
WHERE
  id = 1
ORDER BY id
LIMIT 5
`,
		},
		{
			name:  "multiple table delete",
			input: "DELETE t1 FROM t1 JOIN t2 ON t1.id = t2.id",
			expected: `DELETE t1
FROM t1
JOIN t2 ON t1.id = t2.id
`,
		},
		{
			name:     "call",
			input:    "call db.p(1, @x)",
			expected: "CALL db.p(1, @x)\n",
		},
		{
			name:     "handler read",
			input:    "HANDLER t READ idx >= (1, 2) LIMIT 3",
			expected: "HANDLER t READ idx >= (1, 2) LIMIT 3\n",
		},
	})
}

func TestFormat_DAL(t *testing.T) {
	runFormatCases(t, mysql.MySQL, []formatCase{
		{name: "show tables", input: "show full tables from db like 'a%'", expected: "SHOW FULL TABLES FROM db LIKE 'a%'\n"},
		{name: "show status", input: "SHOW GLOBAL STATUS WHERE Variable_name = 'x'", expected: "SHOW GLOBAL STATUS WHERE Variable_name = 'x'\n"},
		{name: "show grants", input: "SHOW GRANTS FOR 'u'@'h'", expected: "SHOW GRANTS FOR 'u'@'h'\n"},
		{name: "show simple", input: "show master status", expected: "SHOW MASTER STATUS\n"},
		{name: "set keyword scope", input: "SET GLOBAL max_connections = 100", expected: "SET GLOBAL max_connections = 100\n"},
		{name: "set dotted scope", input: "SET @@SESSION.sql_mode = 'x', @a := 1", expected: "SET @@session.sql_mode = 'x', @a = 1\n"},
		{name: "set names", input: "set names utf8mb4 collate utf8mb4_bin", expected: "SET NAMES utf8mb4 COLLATE utf8mb4_bin\n"},
		{name: "use", input: "use db", expected: "USE db\n"},
		{name: "analyze histogram", input: "ANALYZE TABLE t UPDATE HISTOGRAM ON a, b WITH 16 BUCKETS", expected: "ANALYZE TABLE t UPDATE HISTOGRAM ON a, b WITH 16 BUCKETS\n"},
		{name: "flush tables", input: "FLUSH TABLES t1, t2 WITH READ LOCK", expected: "FLUSH TABLES t1, t2 WITH READ LOCK\n"},
		{name: "kill", input: "KILL QUERY 42", expected: "KILL QUERY 42\n"},
		{name: "explain", input: "EXPLAIN FORMAT = JSON SELECT 1", expected: "EXPLAIN FORMAT = JSON\nSELECT\n  1\n"},
		{name: "resource group", input: "CREATE RESOURCE GROUP g TYPE = USER VCPU = 0-3, 5 THREAD_PRIORITY = 10 DISABLE", expected: "CREATE RESOURCE GROUP g TYPE = USER VCPU = 0-3, 5 THREAD_PRIORITY = 10 DISABLE\n"},
	})
}

func TestFormat_Postgres(t *testing.T) {
	runFormatCases(t, postgres.Postgres, []formatCase{
		{name: "set list", input: "SET search_path TO public, audit", expected: "SET search_path = public, audit\n"},
		{name: "show all", input: "SHOW ALL", expected: "SHOW ALL\n"},
		{
			name:  "quoted identifier",
			input: `SELECT "Mixed Case" FROM t`,
			expected: `SELECT
  "Mixed Case"
FROM t
`,
		},
	})
}

func TestFormat_StringEscapes(t *testing.T) {
	stmt := build(t, `SELECT 'it''s a\\b'`, mysql.MySQL)
	assert.Equal(t, "SELECT\n  'it''s a\\\\b'\n", Format(stmt, mysql.MySQL))

	stmt = build(t, `SELECT 'it''s a\b'`, postgres.Postgres)
	assert.Equal(t, "SELECT\n  'it''s a\\b'\n", Format(stmt, postgres.Postgres))
}

// Formatting is a fixed point: the output parses back to a statement that
// formats to the same text.
func TestFormat_RoundTrip(t *testing.T) {
	mysqlInputs := []string{
		"SELECT id, name FROM users WHERE id = 1 LIMIT 10",
		"SELECT a, b FROM t WHERE (a = 1 OR b = 2) AND c IS NOT NULL AND d LIKE 'x%' ESCAPE '!'",
		"SELECT -(-1), - -2, NOT a, !b, ~c, BINARY d FROM t",
		"SELECT CASE WHEN a > 1 THEN 'x' ELSE 'y' END FROM t",
		"SELECT CAST(a AS CHAR(10)), CONVERT(b USING latin1) FROM t",
		"SELECT TRIM(LEADING 'x' FROM a), SUBSTRING(b FROM 1 FOR 2), POSITION('a' IN b) FROM t",
		"SELECT EXTRACT(YEAR FROM d), DATE '2024-01-01', INTERVAL 1 DAY + d FROM t",
		"SELECT GROUP_CONCAT(DISTINCT a ORDER BY a DESC SEPARATOR ';') FROM t",
		"SELECT ROW_NUMBER() OVER (PARTITION BY a ORDER BY b ROWS BETWEEN 1 PRECEDING AND CURRENT ROW) FROM t",
		"SELECT SUM(a) OVER w FROM t WINDOW w AS (ORDER BY b)",
		"SELECT a FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id)",
		"SELECT a FROM t WHERE b = ANY (SELECT c FROM u)",
		"SELECT MATCH (a, b) AGAINST ('x' IN BOOLEAN MODE) FROM t",
		"SELECT X'0A', B'01', N'abc', _utf8mb4'x', TRUE, NULL, 1.5e3",
		"SELECT @a, @@global.max_connections, @@autocommit, ?, ?",
		"SELECT a FROM t1, t2 NATURAL JOIN t3 STRAIGHT_JOIN t4 ON t3.a = t4.a",
		"SELECT a FROM t PARTITION (p0) AS x USE INDEX (i) IGNORE INDEX FOR JOIN (j)",
		"SELECT a FROM t, LATERAL (SELECT b FROM u WHERE u.a = t.a) AS d",
		"(SELECT a FROM t) UNION DISTINCT (SELECT b FROM u) ORDER BY 1 LIMIT 2",
		"WITH RECURSIVE c (n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM c WHERE n < 5) SELECT n FROM c",
		"SELECT a FROM t FOR SHARE OF t SKIP LOCKED",
		"SELECT a INTO @x FROM t",
		"SELECT a FROM t INTO OUTFILE '/tmp/x' FIELDS TERMINATED BY ',' OPTIONALLY ENCLOSED BY '\"' LINES TERMINATED BY '\\n'",
		"TABLE t",
		"VALUES ROW(1, 2), ROW(3, 4)",
		"INSERT INTO t VALUES (1, DEFAULT), (2, 3) AS new (x, y) ON DUPLICATE KEY UPDATE a = new.x",
		"INSERT DELAYED INTO t SET a = 1, b = b + 1",
		"REPLACE INTO t (a) VALUE (1)",
		"UPDATE LOW_PRIORITY IGNORE t1 JOIN t2 ON t1.id = t2.id SET t1.a = t2.a WHERE t2.b > 0",
		"UPDATE t SET a = 1 ORDER BY b LIMIT 3",
		"DELETE FROM t1, t2 USING t1 JOIN t2 ON t1.id = t2.id WHERE t1.a = 1",
		"CALL p",
		"CALL p()",
		"DO SLEEP(1), 2",
		"HANDLER t OPEN AS h",
		"HANDLER t READ idx NEXT WHERE a > 1",
		"HANDLER t READ FIRST",
		"HANDLER t CLOSE",
		"LOAD DATA LOCAL INFILE 'x.csv' REPLACE INTO TABLE t PARTITION (p1) CHARACTER SET utf8 FIELDS TERMINATED BY ',' IGNORE 1 LINES (a, @b) SET c = @b",
		"LOAD XML INFILE 'x.xml' INTO TABLE t ROWS IDENTIFIED BY '<row>' IGNORE 2 ROWS",
		"IMPORT TABLE FROM 'a.sdi', 'b.sdi'",
		"SHOW VARIABLES LIKE 'auto%'",
		"SHOW SESSION VARIABLES WHERE Variable_name = 'x'",
		"SHOW EXTENDED FULL COLUMNS FROM t FROM db LIKE 'a%'",
		"SHOW INDEX FROM t FROM db",
		"SHOW CREATE TABLE db.t",
		"SHOW CREATE DATABASE IF NOT EXISTS db",
		"SHOW CREATE USER 'u'@'%'",
		"SHOW COUNT(*) WARNINGS",
		"SHOW ERRORS LIMIT 5",
		"SHOW FULL PROCESSLIST",
		"SHOW TRIGGERS FROM db",
		"SHOW CHARACTER SET LIKE 'utf%'",
		"SHOW COLLATION",
		"SHOW PROCEDURE STATUS LIKE 'p%'",
		"SHOW BINLOG EVENTS IN 'log.1' FROM 4 LIMIT 2",
		"SHOW OPEN TABLES FROM db",
		"SHOW TABLE STATUS FROM db",
		"SHOW DATABASES",
		"SHOW EVENTS",
		"SET @a = 1, GLOBAL b = ON, @@persist.c = DEFAULT",
		"SET CHARACTER SET DEFAULT",
		"SET NAMES DEFAULT",
		"SET RESOURCE GROUP g FOR 1, 2",
		"DESCRIBE t col",
		"DESC t 'a%'",
		"EXPLAIN ANALYZE SELECT a FROM t",
		"EXPLAIN FOR CONNECTION 4",
		"HELP 'contents'",
		"CHECK TABLE t1, t2 FOR UPGRADE QUICK",
		"CHECKSUM TABLE t EXTENDED",
		"OPTIMIZE NO_WRITE_TO_BINLOG TABLE t",
		"REPAIR LOCAL TABLE t QUICK USE_FRM",
		"ANALYZE TABLE t DROP HISTOGRAM ON a",
		"FLUSH LOCAL PRIVILEGES, STATUS",
		"FLUSH TABLES t FOR EXPORT",
		"CACHE INDEX t1 INDEX (i1), t2 PARTITION (ALL) IN hot",
		"LOAD INDEX INTO CACHE t1 PARTITION (p0) IGNORE LEAVES",
		"RESET MASTER, SLAVE",
		"RESET PERSIST IF EXISTS x",
		"RESTART",
		"SHUTDOWN",
		"CLONE LOCAL DATA DIRECTORY = '/tmp/c'",
		"CLONE INSTANCE FROM 'u'@'h':3306 IDENTIFIED BY 'pw' REQUIRE NO SSL",
		"INSTALL COMPONENT 'file://a', 'file://b'",
		"INSTALL PLUGIN p SONAME 'p.so'",
		"UNINSTALL PLUGIN p",
		"BINLOG 'AAA='",
		"ALTER RESOURCE GROUP g VCPU = 1 ENABLE FORCE",
		"DROP RESOURCE GROUP g",
	}
	postgresInputs := []string{
		"SELECT a::int, $1 FROM t WHERE b ILIKE 'x%'",
		"SET LOCAL search_path TO public, audit",
		"SET TIME ZONE 'UTC'",
		"SET work_mem TO DEFAULT",
		"SHOW search_path",
		"SELECT a FROM t FULL JOIN u ON t.id = u.id ORDER BY a NULLS FIRST",
	}

	roundTrip := func(t *testing.T, inputs []string, d *dialect.Dialect) {
		for _, input := range inputs {
			t.Run(input, func(t *testing.T) {
				original := build(t, input, d)
				first := Format(original, d)
				reparsed := build(t, first, d)
				assert.Equal(t, withoutSpans(original), withoutSpans(reparsed), first)

				second := Format(reparsed, d)
				assert.Equal(t, first, second)
			})
		}
	}

	t.Run("mysql", func(t *testing.T) { roundTrip(t, mysqlInputs, mysql.MySQL) })
	t.Run("postgres", func(t *testing.T) { roundTrip(t, postgresInputs, postgres.Postgres) })
}

func TestFormat_RoundTripDetectsDroppedClause(t *testing.T) {
	full := build(t, "SELECT a FROM t LIMIT 10", mysql.MySQL)
	trimmed := build(t, "SELECT a FROM t", mysql.MySQL)
	assert.NotEqual(t, withoutSpans(full), withoutSpans(trimmed))

	spaced := build(t, "SELECT  a\nFROM   t  LIMIT 10", mysql.MySQL)
	assert.Equal(t, withoutSpans(full), withoutSpans(spaced))
}

// withoutSpans returns a deep copy of the AST with every source position
// zeroed, so trees parsed from differently laid out text compare equal.
func withoutSpans(stmt core.Stmt) core.Stmt {
	v := reflect.New(reflect.TypeOf(stmt)).Elem()
	v.Set(reflect.ValueOf(stmt))
	return clearSpans(v).Interface().(core.Stmt)
}

var (
	spanType     = reflect.TypeOf(token.Span{})
	positionType = reflect.TypeOf(token.Position{})
)

func clearSpans(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		cp := reflect.New(v.Type().Elem())
		cp.Elem().Set(clearSpans(v.Elem()))
		return cp
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(clearSpans(v.Elem()))
		return out
	case reflect.Struct:
		if v.Type() == spanType || v.Type() == positionType {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if f := out.Field(i); f.CanSet() {
				f.Set(clearSpans(v.Field(i)))
			}
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(clearSpans(v.Index(i)))
		}
		return out
	default:
		return v
	}
}

func TestFormat_Script(t *testing.T) {
	stmts := []core.Stmt{
		build(t, "SELECT 1", mysql.MySQL),
		build(t, "USE db", mysql.MySQL),
	}
	assert.Equal(t, "SELECT\n  1;\n\nUSE db;\n", Script(stmts, mysql.MySQL))
}

func TestFormat_WithComments(t *testing.T) {
	sql := "-- lead\nSELECT a FROM t -- tail"
	lx := parser.NewLexer(sql, mysql.MySQL)
	_, err := lx.All()
	require.NoError(t, err)
	require.Len(t, lx.Comments, 2)

	result := WithComments(build(t, sql, mysql.MySQL), lx.Comments, mysql.MySQL)
	assert.Equal(t, "-- lead\nSELECT\n  a\nFROM t\n-- tail\n", result)
}

func TestFormat_ScriptWithComments(t *testing.T) {
	sql := "-- lead\nSELECT a FROM t; /* mid */ USE db; -- tail"
	lx := parser.NewLexer(sql, mysql.MySQL)
	toks, err := lx.All()
	require.NoError(t, err)
	require.Len(t, lx.Comments, 3)

	tree, err := parser.ParseScript(toks, mysql.MySQL)
	require.NoError(t, err)
	stmts, err := builder.BuildScript(tree, mysql.MySQL)
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	result := ScriptWithComments(stmts, lx.Comments, mysql.MySQL)
	assert.Equal(t, "-- lead\nSELECT\n  a\nFROM t;\n\n/* mid */\nUSE db;\n-- tail\n", result)

	assert.Equal(t, "-- lead\n", ScriptWithComments(nil, lx.Comments[:1], mysql.MySQL))
}

func TestFormat_Nil(t *testing.T) {
	assert.Equal(t, "\n", Format(nil, mysql.MySQL))
}
