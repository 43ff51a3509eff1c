package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlfront/internal/cli/testutil"
	"github.com/leapstack-labs/sqlfront/pkg/sql"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputs(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	users := filepath.Join(dir, "queries", "users.sql")

	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("SELECT 1"))

	inputs, err := readInputs(cmd, []string{users, "-"}, []string{"SELECT a", "USE db"}, []string{".sql"})
	require.NoError(t, err)
	require.Len(t, inputs, 4)

	assert.Equal(t, input{Name: "-e#1", Text: "SELECT a", Single: true}, inputs[0])
	assert.Equal(t, "-e#2", inputs[1].Name)
	assert.Equal(t, users, inputs[2].Path)
	assert.Equal(t, testutil.ProjectFiles["queries/users.sql"], inputs[2].Text)
	assert.False(t, inputs[2].Single)
	assert.Equal(t, input{Name: stdinName, Text: "SELECT 1"}, inputs[3])
}

func TestReadInputs_DefaultsToStdin(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("USE db"))

	inputs, err := readInputs(cmd, nil, nil, []string{".sql"})
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, stdinName, inputs[0].Name)
	assert.Equal(t, "USE db", inputs[0].Text)
}

func TestExpandPath(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	queries := filepath.Join(dir, "queries")

	files, err := expandPath(queries, []string{".sql"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(queries, "reports", "orders.sql"),
		filepath.Join(queries, "users.sql"),
	}, files)

	files, err = expandPath(queries, []string{".TXT"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(queries, "notes.txt")}, files)

	_, err = expandPath(queries, []string{".ddl"})
	assert.ErrorContains(t, err, "no files matching .ddl")

	_, err = expandPath(filepath.Join(dir, "missing.sql"), []string{".sql"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewErrorInfo(t *testing.T) {
	assert.Nil(t, newErrorInfo(nil))

	_, err := sql.Parse("SELECT a FROM WHERE", "mysql")
	require.Error(t, err)
	info := newErrorInfo(err)
	assert.Equal(t, "parse", info.Stage)
	assert.Equal(t, 1, info.Line)
	assert.Equal(t, 15, info.Column)
	assert.Equal(t, 14, info.Offset)
	assert.NotEmpty(t, info.Message)

	_, err = sql.Parse("SELECT 1", "oracle")
	info = newErrorInfo(err)
	assert.Empty(t, info.Stage)
	assert.Contains(t, info.Message, "oracle")
}
