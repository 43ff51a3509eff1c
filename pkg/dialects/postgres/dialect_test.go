package postgres

import (
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	d := Postgres

	require.NotNil(t, d)
	assert.Equal(t, "postgresql", d.Name)
	assert.Equal(t, `"`, d.Identifiers.Quote)
	assert.Equal(t, "public", d.DefaultSchema)

	assert.True(t, Config.Features.ILike)
	assert.True(t, Config.Lexical.CastOperator)
	assert.True(t, Config.Lexical.EscapeStrings)
	assert.False(t, Config.Features.OnDuplicateKey)
	assert.False(t, Config.Features.LimitComma)
}

func TestDialectRegistration(t *testing.T) {
	for _, name := range []string{"postgresql", "postgres", "PG"} {
		d, ok := dialect.Get(name)
		require.True(t, ok, "%s should resolve", name)
		assert.Same(t, Postgres, d)
	}
	assert.Contains(t, dialect.List(), "postgresql")
	assert.NotContains(t, dialect.List(), "postgres")
}

func TestFunctionClassifications(t *testing.T) {
	d := Postgres

	assert.True(t, d.IsAggregate("string_agg"))
	assert.True(t, d.IsAggregate("count"))
	assert.True(t, d.IsWindow("row_number"))
	assert.True(t, d.IsWindow("lag"))
	assert.True(t, d.IsNiladic("current_timestamp"))
	assert.True(t, d.IsNiladic("session_user"))
	assert.False(t, d.IsAggregate("group_concat"))
}

func TestIdentifierQuoting(t *testing.T) {
	d := Postgres

	assert.Equal(t, `"my_table"`, d.QuoteIdentifier("my_table"))
	assert.Equal(t, `"table""name"`, d.QuoteIdentifier(`table"name`))
	assert.Equal(t, "$3", d.FormatPlaceholder(3))
}

func TestReservedWords(t *testing.T) {
	d := Postgres

	assert.True(t, d.IsReservedWord("SELECT"))
	assert.True(t, d.IsReservedWord("user"))
	assert.True(t, d.IsReservedWord("returning"))
	assert.False(t, d.IsReservedWord("first"))
	assert.False(t, d.IsReservedWord("my_column"))
}

func parse(t *testing.T, sql string) *cst.Node {
	t.Helper()
	tree, err := parser.Parse(sql, Postgres)
	require.NoError(t, err, sql)
	require.NoError(t, cst.Verify(tree), sql)
	return tree
}

func TestShow(t *testing.T) {
	tree := parse(t, "SHOW ALL")
	assert.Equal(t, cst.RuleShowVariables, tree.Rule)
	assert.True(t, tree.Has("all"))

	tree = parse(t, "SHOW search_path")
	assert.True(t, tree.Has("name"))

	tree = parse(t, "SHOW myapp.tenant")
	assert.Len(t, tree.Child("name").All("part"), 2)

	tree = parse(t, "SHOW TIME ZONE")
	assert.True(t, tree.Has("time_zone"))
}

func TestSet(t *testing.T) {
	tree := parse(t, "SET search_path TO public, audit")
	require.Equal(t, cst.RuleSetVariable, tree.Rule)
	a := tree.Child("assignment")
	assert.False(t, a.Has("scope"))
	assert.Equal(t, cst.RuleExprList, a.Child("value").Rule)
	assert.Len(t, a.Child("value").All("item"), 2)

	tree = parse(t, "SET LOCAL statement_timeout = '5s'")
	a = tree.Child("assignment")
	assert.Equal(t, "LOCAL", a.Child("scope").Upper())
	assert.Equal(t, cst.RuleLiteral, a.Child("value").Rule)

	tree = parse(t, "SET enable_seqscan TO off")
	assert.Equal(t, cst.RuleSetValue, tree.Child("assignment").Child("value").Rule)

	tree = parse(t, "SET work_mem TO DEFAULT")
	assert.Equal(t, "DEFAULT", tree.Child("assignment").Child("value").Child("value").Upper())

	tree = parse(t, "SET SESSION TIME ZONE 'UTC'")
	v := tree.Child("assignment").Child("var")
	assert.True(t, v.Has("time_zone"))
}

func TestSetErrors(t *testing.T) {
	for _, sql := range []string{
		"SET",
		"SET x",
		"SET x := 1",
		"SET select = 1",
	} {
		t.Run(sql, func(t *testing.T) {
			_, err := parser.Parse(sql, Postgres)
			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestCastAndILike(t *testing.T) {
	tree := parse(t, "SELECT a::int FROM t WHERE name ILIKE 'x%' LIMIT $1")
	assert.Equal(t, cst.RuleSelectStmt, tree.Rule)
}
