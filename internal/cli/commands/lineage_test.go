package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	clitestutil "github.com/leapstack-labs/sqlfront/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineage_Structured(t *testing.T) {
	out, _, err := execCommand(t, NewLineageCommand(), testConfig("json"), "",
		"-e", "SELECT u.name, SUM(o.total) AS spent FROM users u JOIN orders o ON o.uid = u.id GROUP BY u.name")
	require.NoError(t, err)

	var got []lineageOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Len(t, got[0].Statements, 1)

	stmt := got[0].Statements[0]
	assert.Equal(t, "SelectStmt", stmt.Type)
	assert.Equal(t, []string{"orders", "users"}, stmt.Sources)
	assert.Empty(t, stmt.Targets)
	require.Len(t, stmt.Tables, 2)
	assert.Equal(t, tableOutput{Name: "users", Alias: "u", Access: "read", Line: 1, Column: 43}, stmt.Tables[0])

	require.Len(t, stmt.Columns, 2)
	assert.Equal(t, columnOutput{Name: "name", Sources: []string{"users.name"}}, stmt.Columns[0])
	assert.Equal(t, columnOutput{
		Name:      "spent",
		Sources:   []string{"orders.total"},
		Transform: "EXPR",
		Function:  "SUM",
	}, stmt.Columns[1])
}

func TestLineage_Text(t *testing.T) {
	out, _, err := execCommand(t, NewLineageCommand(), testConfig("markdown"), "",
		"-e", "DELETE s FROM sessions s JOIN users u ON u.id = s.uid WHERE u.banned = 1")
	require.NoError(t, err)

	assert.Contains(t, out, "## DeleteStmt")
	assert.Contains(t, out, "Writes")
	assert.Contains(t, out, "| sessions")
	assert.Contains(t, out, "write")
	assert.NotContains(t, out, "| Column", "only queries list output columns")
	clitestutil.AssertValidMarkdown(t, out)
}

func TestLineage_Directory(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	out, _, err := execCommand(t, NewLineageCommand(), testConfig("json"), "", filepath.Join(dir, "queries", "reports"))
	require.NoError(t, err)

	var got []lineageOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Len(t, got[0].Statements, 2)
	assert.Equal(t, []string{"orders"}, got[0].Statements[1].Targets)
}

func TestLineage_SchemaFile(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(schema, []byte("users: [id, name]\n"), 0o600))

	out, _, err := execCommand(t, NewLineageCommand(), testConfig("json"), "",
		"--schema", schema, "-e", "SELECT * FROM users")
	require.NoError(t, err)

	var got []lineageOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	cols := got[0].Statements[0].Columns
	require.Len(t, cols, 2)
	assert.Equal(t, []string{"users.id"}, cols[0].Sources)
	assert.Equal(t, "name", cols[1].Name)
}

func TestLineage_Errors(t *testing.T) {
	t.Run("invalid SQL", func(t *testing.T) {
		_, errOut, err := execCommand(t, NewLineageCommand(), testConfig("text"), "", "-e", "SELECT FROM")
		require.Error(t, err)
		assert.ErrorIs(t, err, errParseFailed)
		assert.Contains(t, errOut, "parse error")
	})

	t.Run("missing schema", func(t *testing.T) {
		_, _, err := execCommand(t, NewLineageCommand(), testConfig("text"), "",
			"--schema", filepath.Join(t.TempDir(), "none.yaml"), "-e", "SELECT 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read schema file")
	})

	t.Run("invalid schema", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("users: {id: 1}\n"), 0o600))
		_, _, err := execCommand(t, NewLineageCommand(), testConfig("text"), "", "--schema", path, "-e", "SELECT 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid schema file")
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "s.yaml"), expandHome("~/s.yaml"))
	assert.Equal(t, "rel/s.yaml", expandHome("rel/s.yaml"))
}
