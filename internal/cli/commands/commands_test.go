package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	clitestutil "github.com/leapstack-labs/sqlfront/internal/cli/testutil"
	"github.com/leapstack-labs/sqlfront/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig returns the default configuration with the given output mode.
func testConfig(output string) *config.Config {
	cfg := config.Default()
	cfg.Output = output
	return cfg
}

// execCommand runs cmd with cfg in its context and returns stdout and stderr.
func execCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, stdin string, args ...string) (string, string, error) {
	t.Helper()
	ctx := context.WithValue(context.Background(), config.LoggerKey(), testutil.NewTestLogger(t))
	ctx = config.NewContext(ctx, cfg)

	// Match the root command: errors are reported by the caller, not cobra.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

// ---------- Command Metadata Tests ----------

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewParseCommand(), "parse [file|dir|-]...", []string{"exec", "watch"}},
		{NewTokenizeCommand(), "tokenize [file|dir|-]...", []string{"exec", "comments"}},
		{NewFormatCommand(), "format [file|dir|-]...", []string{"exec", "write", "check", "comments"}},
		{NewDialectsCommand(), "dialects", nil},
		{NewReplCommand(), "repl", nil},
		{NewLineageCommand(), "lineage [file|dir|-]...", []string{"exec", "schema"}},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

// ---------- Parse Tests ----------

func TestParse_TextTree(t *testing.T) {
	out, _, err := execCommand(t, NewParseCommand(), testConfig("text"), "", "-e", "SELECT a FROM t")
	require.NoError(t, err)
	assert.Contains(t, out, "SelectStmt")
	assert.Contains(t, out, "Query: QuerySpec")
	assert.Contains(t, out, "From: [1]")
	clitestutil.AssertNoANSI(t, out)
}

func TestParse_Markdown(t *testing.T) {
	out, _, err := execCommand(t, NewParseCommand(), testConfig("markdown"), "",
		"-e", "SELECT a FROM t", "-e", "USE db")
	require.NoError(t, err)
	assert.Contains(t, out, "## -e#1")
	assert.Contains(t, out, "## -e#2")
	assert.Contains(t, out, "UseStmt")
	clitestutil.AssertValidMarkdown(t, out)
}

func TestParse_Directory(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)

	out, _, err := execCommand(t, NewParseCommand(), testConfig("json"), "", filepath.Join(dir, "queries"))
	require.NoError(t, err)

	var got []parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2, "hidden directories and non-SQL files are skipped")
	assert.Equal(t, filepath.Join(dir, "queries", "reports", "orders.sql"), got[0].Source)
	require.Len(t, got[0].Statements, 2)
	assert.Equal(t, "UpdateStmt", got[0].Statements[1].Type)
	assert.Equal(t, "UPDATE orders SET state = 'done' WHERE id = 7", got[0].Statements[1].Text)
	assert.Equal(t, filepath.Join(dir, "queries", "users.sql"), got[1].Source)
}

func TestParse_FailuresAreReported(t *testing.T) {
	out, errOut, err := execCommand(t, NewParseCommand(), testConfig("markdown"), "",
		"-e", "SELECT a FROM t", "-e", "SELECT a FROM WHERE")
	require.Error(t, err)
	assert.ErrorIs(t, err, errParseFailed)
	assert.Contains(t, err.Error(), "1 of 2 inputs rejected")
	assert.Contains(t, errOut, "-e#2:1:15: parse error:")
	assert.Contains(t, out, "| -e#2")
}

func TestParse_StructuredError(t *testing.T) {
	out, _, err := execCommand(t, NewParseCommand(), testConfig("json"), "", "-e", "SELECT 'open")
	require.Error(t, err)

	var got []parseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Error)
	assert.Equal(t, "lex", got[0].Error.Stage)
	assert.Empty(t, got[0].Statements)
}

func TestParse_LogsProgress(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)
	logger, logs := testutil.NewCaptureLogger()

	ctx := context.WithValue(context.Background(), config.LoggerKey(), logger)
	ctx = config.NewContext(ctx, testConfig("json"))
	cmd := NewParseCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-e", "SELECT 1", filepath.Join(dir, "queries", "users.sql")})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Contains(t, logs.String(), "parsed script")
	assert.Contains(t, logs.String(), "users.sql")
	assert.Contains(t, logs.String(), "parsed batch")
	assert.Contains(t, logs.String(), "statements=1")
}

// ---------- Tokenize Tests ----------

func TestTokenize_Table(t *testing.T) {
	out, _, err := execCommand(t, NewTokenizeCommand(), testConfig("text"), "",
		"--comments", "-e", "SELECT a /* c */ FROM t")
	require.NoError(t, err)
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "keyword")
	assert.Contains(t, out, "/* c */")
}

func TestTokenize_Stdin(t *testing.T) {
	out, _, err := execCommand(t, NewTokenizeCommand(), testConfig("json"), "SELECT 1")
	require.NoError(t, err)

	var got []tokenizeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, stdinName, got[0].Source)
	require.Len(t, got[0].Tokens, 3)
	assert.Equal(t, "1", got[0].Tokens[1].Text)
	assert.Equal(t, 8, got[0].Tokens[1].Column)
}

// ---------- Format Tests ----------

func TestFormat_Exec(t *testing.T) {
	out, _, err := execCommand(t, NewFormatCommand(), testConfig("markdown"), "", "-e", "select a from t")
	require.NoError(t, err)
	assert.Equal(t, "```sql\nSELECT\n  a\nFROM t\n```\n", out)
}

func TestFormat_Comments(t *testing.T) {
	out, _, err := execCommand(t, NewFormatCommand(), testConfig("text"), "",
		"--comments", "-e", "-- lead\nselect a from t")
	require.NoError(t, err)
	assert.Equal(t, "-- lead\nSELECT\n  a\nFROM t\n", out)
}

func TestFormat_WriteAndCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")
	require.NoError(t, os.WriteFile(path, []byte("select a from t; use db"), 0o644))

	_, errOut, err := execCommand(t, NewFormatCommand(), testConfig("text"), "", "--check", path)
	require.Error(t, err)
	assert.Contains(t, errOut, path+" is not formatted")

	_, _, err = execCommand(t, NewFormatCommand(), testConfig("text"), "", "--write", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT\n  a\nFROM t;\n\nUSE db;\n", string(data))

	_, _, err = execCommand(t, NewFormatCommand(), testConfig("text"), "", "--check", path)
	assert.NoError(t, err)
}

func TestStructuredOutputIsSoleStdout(t *testing.T) {
	out, errOut, err := execCommand(t, NewLineageCommand(), testConfig("json"), "", "-e", "SELECT FROM")
	require.Error(t, err)
	assert.NotContains(t, out, "Usage:")
	assert.NotContains(t, errOut, "Usage:")
	assert.True(t, json.Valid([]byte(out)), "stdout is a single JSON document: %q", out)
}

func TestFormat_Structured(t *testing.T) {
	out, _, err := execCommand(t, NewFormatCommand(), testConfig("json"), "", "-e", "SELECT\n  a\nFROM t\n", "-e", "select")
	require.Error(t, err)

	var got []formatOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.False(t, got[0].Changed)
	assert.NotNil(t, got[1].Error)
}

// ---------- Dialects Tests ----------

func TestDialects_List(t *testing.T) {
	out, _, err := execCommand(t, NewDialectsCommand(), testConfig("text"), "")
	require.NoError(t, err)
	assert.Contains(t, out, "mysql *")
	assert.Contains(t, out, "postgresql")
	assert.Contains(t, out, "postgres, pg")
	assert.Contains(t, out, "$1")
}

func TestDialects_Show(t *testing.T) {
	out, _, err := execCommand(t, NewDialectsCommand(), testConfig("json"), "", "show", "pg")
	require.NoError(t, err)

	var got dialectInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "postgresql", got.Name)
	assert.Equal(t, `"x"`, got.Quote)
	assert.Equal(t, "$1", got.Placeholder)
	assert.NotEmpty(t, got.Statements)

	out, _, err = execCommand(t, NewDialectsCommand(), testConfig("text"), "", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "mysql")
	assert.Contains(t, out, "Ambiguous Roles And Labels")
	assert.Contains(t, out, "OnDuplicateKey")
}

func TestDialects_Keywords(t *testing.T) {
	out, _, err := execCommand(t, NewDialectsCommand(), testConfig("json"), "",
		"keywords", "mysql", "--class", "ambiguous roles and labels")
	require.NoError(t, err)

	var got []struct {
		Word  string `json:"word"`
		Class string `json:"class"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got)
	var words []string
	for _, kw := range got {
		assert.Equal(t, "ambiguous roles and labels", kw.Class)
		words = append(words, kw.Word)
	}
	assert.Contains(t, words, "EXECUTE")
}

func TestDialects_Unknown(t *testing.T) {
	_, _, err := execCommand(t, NewDialectsCommand(), testConfig("text"), "", "show", "oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: ansi, mysql, postgresql")
}
