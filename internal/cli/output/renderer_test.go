package output

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTestRenderer(mode OutputMode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

// ---------- Mode Tests ----------

func TestMode(t *testing.T) {
	tests := map[string]OutputMode{
		"":         ModeAuto,
		"auto":     ModeAuto,
		"TEXT":     ModeText,
		"md":       ModeMarkdown,
		"markdown": ModeMarkdown,
		"json":     ModeJSON,
		"yml":      ModeYAML,
		"yaml":     ModeYAML,
		"xml":      ModeAuto,
	}
	for in, want := range tests {
		assert.Equal(t, want, Mode(in), "Mode(%q)", in)
	}
}

func TestEffectiveMode(t *testing.T) {
	r, _, _ := newTestRenderer(ModeAuto, true)
	assert.Equal(t, ModeText, r.EffectiveMode())

	r, _, _ = newTestRenderer(ModeAuto, false)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())

	r, _, _ = newTestRenderer(ModeJSON, true)
	assert.Equal(t, ModeJSON, r.EffectiveMode())
	assert.True(t, r.IsStructured())
}

// ---------- Rendering Tests ----------

func TestHeaderAndStatus(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Header(2, "Tokens")
	r.StatusLine("dialect", "mysql")
	assert.Equal(t, "## Tokens\n- **dialect:** mysql\n", out.String())

	r, out, _ = newTestRenderer(ModeText, false)
	r.Header(1, "Tokens")
	r.StatusLine("dialect", "mysql")
	assert.Equal(t, "Tokens\ndialect: mysql\n", out.String())
}

func TestCode(t *testing.T) {
	r, out, _ := newTestRenderer(ModeMarkdown, false)
	r.Code("sql", "SELECT\n  1\n")
	assert.Equal(t, "```sql\nSELECT\n  1\n```\n", out.String())

	r, out, _ = newTestRenderer(ModeText, false)
	r.Code("sql", "SELECT\n  1\n")
	assert.Equal(t, "SELECT\n  1\n", out.String())
}

func TestTable(t *testing.T) {
	header := []string{"Name", "Aliases"}
	rows := [][]string{{"mysql", "mariadb"}}

	r, out, _ := newTestRenderer(ModeText, false)
	r.Table(header, rows)
	assert.Contains(t, out.String(), "┌")
	assert.Contains(t, out.String(), "mariadb")

	r, out, _ = newTestRenderer(ModeMarkdown, false)
	r.Table(header, rows)
	assert.Contains(t, out.String(), "| mysql")
	assert.NotContains(t, out.String(), "┌")

	r, out, _ = newTestRenderer(ModeText, false)
	r.Table(header, nil)
	assert.Equal(t, "(0 rows)\n", out.String())
}

func TestTree(t *testing.T) {
	root := &TreeNode{Label: "SelectStmt"}
	spec := root.Add("QuerySpec")
	spec.Add("Items: %d", 2)

	r, out, _ := newTestRenderer(ModeText, false)
	r.Tree(root)
	for _, want := range []string{"SelectStmt", "QuerySpec", "Items: 2"} {
		assert.Contains(t, out.String(), want)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 3)
}

func TestStructured(t *testing.T) {
	v := map[string]any{"dialect": "mysql", "count": 2}

	r, out, _ := newTestRenderer(ModeJSON, false)
	require.NoError(t, r.Structured(v))
	assert.JSONEq(t, `{"dialect":"mysql","count":2}`, out.String())

	r, out, _ = newTestRenderer(ModeYAML, false)
	require.NoError(t, r.Structured(v))
	assert.YAMLEq(t, "dialect: mysql\ncount: 2\n", out.String())
}

// ---------- Diagnostic Tests ----------

func TestDiagnostic(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeText, false)
	r.Diagnostic(Diagnostic{
		Source:   "q.sql",
		Text:     "SELECT * FROM WHERE x = 1",
		Stage:    "parse",
		Line:     1,
		Column:   15,
		Offset:   14,
		Message:  "unexpected WHERE",
		Expected: []string{"table reference"},
	})

	assert.Empty(t, out.String())
	want := "q.sql:1:15: parse error: unexpected WHERE\n" +
		"   1 | SELECT * FROM WHERE x = 1\n" +
		"     |               ^\n" +
		"expected: table reference\n"
	assert.Equal(t, want, errOut.String())
	assert.False(t, ansiPattern.MatchString(errOut.String()))
}

func TestSourceLine(t *testing.T) {
	text := "SELECT a\nFROM\tt WHERE"

	line, caret, ok := sourceLine(text, strings.Index(text, "WHERE"))
	require.True(t, ok)
	assert.Equal(t, "FROM    t WHERE", line)
	assert.Equal(t, 10, caret)

	line, caret, ok = sourceLine(text, len(text))
	require.True(t, ok)
	assert.Equal(t, "FROM    t WHERE", line)
	assert.Equal(t, 15, caret)

	_, _, ok = sourceLine(text, 99)
	assert.False(t, ok)
}
