package commands

import (
	"testing"

	"github.com/leapstack-labs/sqlfront/pkg/sql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	res, err := sql.Parse("SELECT a AS x FROM db.t WHERE b = 1", "mysql")
	require.NoError(t, err)

	n := describe(res.Statement)
	require.NotNil(t, n)
	assert.Equal(t, "SelectStmt", n.Type)
	assert.True(t, n.HasSpan)
	assert.Equal(t, 0, n.Start)
	assert.Equal(t, 35, n.End)

	m := n.Map()
	assert.Equal(t, []int{0, 35}, m["span"])
	query, ok := m["Query"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "QuerySpec", query["type"])

	items, ok := query["Items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "x", item["Alias"], "identifiers collapse to their value")
	assert.NotContains(t, query, "Having", "unset fields are omitted")

	from := query["From"].([]any)[0].(map[string]any)
	assert.Equal(t, "TableName", from["type"])
	assert.Equal(t, "db", from["Schema"])
	assert.Equal(t, "t", from["Name"])
}

func TestDescribe_Tree(t *testing.T) {
	res, err := sql.Parse("USE db", "mysql")
	require.NoError(t, err)

	tree := describe(res.Statement).Tree()
	assert.Equal(t, "UseStmt", tree.Label)
	require.NotEmpty(t, tree.Children)
	assert.Contains(t, tree.Children[0].Label, "db")
}

func TestDescribe_Nil(t *testing.T) {
	assert.Nil(t, describe(nil))
	var n *astNode
	assert.Nil(t, n.Map())
}
