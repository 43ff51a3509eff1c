package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseErr(t *testing.T, sql string, d *dialect.Dialect, opts ...parser.Option) *parser.ParseError {
	t.Helper()
	tree, err := parser.Parse(sql, d, opts...)
	require.Error(t, err, sql)
	assert.Nil(t, tree, "a failed parse returns no tree")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr, "%s: %v", sql, err)
	return perr
}

// ---------- Parse Error Tests ----------

func TestMissingTableReference(t *testing.T) {
	perr := parseErr(t, "SELECT * FROM WHERE x = 1", mysql.MySQL)

	assert.Equal(t, 14, perr.Pos.Offset)
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Equal(t, 15, perr.Pos.Column)
	assert.Equal(t, token.WHERE, perr.Found.Type)
	assert.Equal(t, []string{"table reference"}, perr.Expected)
	assert.Contains(t, perr.Error(), "expected table reference")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		d        *dialect.Dialect
		offset   int
		expected string
	}{
		{"empty statement", "", mysql.MySQL, 0, "statement"},
		{"unknown statement", "FROB t", mysql.MySQL, 0, "statement"},
		{"missing select list", "SELECT", mysql.MySQL, 6, "expression"},
		{"dangling operator", "SELECT 1 +", mysql.MySQL, 10, "expression"},
		{"missing condition", "SELECT * FROM t WHERE", mysql.MySQL, 21, "expression"},
		{"unclosed paren", "SELECT (1", mysql.MySQL, 9, "')'"},
		{"trailing tokens", "SELECT 1 2", mysql.MySQL, 9, "end of statement"},
		{"insert without source", "INSERT INTO t", mysql.MySQL, 13, "VALUES"},
		{"update without set", "UPDATE t WHERE a = 1", mysql.MySQL, 9, "SET"},
		{"ansi join needs condition", "SELECT * FROM a JOIN b", ansi.ANSI, 22, "ON"},
		{"left join needs condition", "SELECT * FROM a LEFT JOIN b WHERE 1", mysql.MySQL, 28, "ON"},
		{"case without when", "SELECT CASE a END", mysql.MySQL, 14, "WHEN"},
		{"is needs a value", "SELECT a IS 1", mysql.MySQL, 12, "NULL"},
		{"interval needs unit", "SELECT INTERVAL 1", mysql.MySQL, 17, "interval unit"},
		{"bad frame bound", "SELECT SUM(a) OVER (ROWS UNBOUNDED) FROM t", mysql.MySQL, 34, "PRECEDING"},
		{"bad limit", "SELECT a FROM t LIMIT 'x'", mysql.MySQL, 22, "number"},
		{"quoted word is not a statement", "`SELECT` 1", mysql.MySQL, 0, "statement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseErr(t, tt.sql, tt.d)
			assert.Equal(t, tt.offset, perr.Pos.Offset, perr.Message)
			assert.Contains(t, perr.Expected, tt.expected, perr.Message)
		})
	}
}

func TestSpeculativeErrorReportsFurthest(t *testing.T) {
	// Both the derived table and the parenthesised join fail; the derived
	// table got further, so its error wins.
	perr := parseErr(t, "SELECT * FROM (SELECT 1 FROM) x", mysql.MySQL)
	assert.Equal(t, 28, perr.Pos.Offset)
	assert.Equal(t, []string{"table reference"}, perr.Expected)
}

func TestErrorPositionOnLaterLine(t *testing.T) {
	perr := parseErr(t, "SELECT a,\n       b\nFROM\nWHERE", mysql.MySQL)
	assert.Equal(t, 4, perr.Pos.Line)
	assert.Equal(t, 1, perr.Pos.Column)
}

// ---------- Resource Limit Tests ----------

func TestDepthLimit(t *testing.T) {
	deep := "SELECT " + strings.Repeat("(", 600) + "1" + strings.Repeat(")", 600)

	perr := parseErr(t, deep, mysql.MySQL)
	assert.True(t, errors.Is(perr, parser.ErrDepthExceeded))
	assert.Contains(t, perr.Error(), "nesting depth")

	shallow := "SELECT " + strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20)
	_, err := parser.Parse(shallow, mysql.MySQL)
	require.NoError(t, err)

	_, err = parser.Parse(shallow, mysql.MySQL, parser.WithMaxDepth(10))
	assert.ErrorIs(t, err, parser.ErrDepthExceeded)
}

func TestDepthLimitNestedQueries(t *testing.T) {
	var sb strings.Builder
	for range 40 {
		sb.WriteString("SELECT * FROM (")
	}
	sb.WriteString("SELECT 1")
	for i := range 40 {
		sb.WriteString(") AS t")
		sb.WriteString(strings.Repeat("x", i%3+1))
	}

	_, err := parser.Parse(sb.String(), mysql.MySQL)
	require.NoError(t, err)

	_, err = parser.Parse(sb.String(), mysql.MySQL, parser.WithLimits(parser.Limits{MaxDepth: 30}))
	assert.ErrorIs(t, err, parser.ErrDepthExceeded)
}

func TestDefaultLimits(t *testing.T) {
	lim := parser.DefaultLimits()
	assert.Equal(t, parser.DefaultMaxDepth, lim.MaxDepth)
	assert.Equal(t, parser.DefaultMaxInputBytes, lim.MaxInputBytes)
}
