package commands

import (
	"testing"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	clitestutil "github.com/leapstack-labs/sqlfront/internal/cli/testutil"
	"github.com/leapstack-labs/sqlfront/internal/testutil"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*replSession, *clitestutil.TestRenderer) {
	t.Helper()
	tr := clitestutil.NewTestRendererText()
	cc := &CommandContext{
		Cfg:      config.Default(),
		Logger:   testutil.NewTestLogger(t),
		Renderer: tr.Renderer,
		Dialect:  mysql.MySQL,
	}
	return newReplSession(cc), tr
}

func TestRepl_Prompt(t *testing.T) {
	s, _ := newTestSession(t)
	assert.Equal(t, "sqlfront(mysql)> ", s.prompt())

	assert.False(t, s.handleLine("SELECT a"))
	cont := s.prompt()
	assert.Len(t, cont, len("sqlfront(mysql)> "))
	assert.Equal(t, "...> ", cont[len(cont)-5:])

	s.reset()
	assert.Equal(t, "sqlfront(mysql)> ", s.prompt())
}

func TestRepl_MultiLineStatement(t *testing.T) {
	s, tr := newTestSession(t)

	assert.False(t, s.handleLine("SELECT a"))
	assert.Empty(t, tr.Output())
	assert.False(t, s.handleLine("FROM t;"))
	assert.Contains(t, tr.Output(), "SelectStmt")
	assert.Equal(t, "sqlfront(mysql)> ", s.prompt())
}

func TestRepl_Modes(t *testing.T) {
	s, tr := newTestSession(t)

	s.handleLine(".mode format")
	assert.Contains(t, tr.Output(), "mode set to format")
	tr.Reset()
	s.handleLine("select a from t;")
	assert.Equal(t, "SELECT\n  a\nFROM t;\n\n", tr.Output())

	s.handleLine(".mode tokens")
	tr.Reset()
	s.handleLine("USE db;")
	assert.Contains(t, tr.Output(), "identifier")

	tr.Reset()
	s.handleLine(".mode fancy")
	assert.Contains(t, tr.ErrorOutput(), `unknown mode "fancy"`)
	assert.Equal(t, replModeTokens, s.mode)
}

func TestRepl_Dialect(t *testing.T) {
	s, tr := newTestSession(t)

	s.handleLine(".dialect pg")
	assert.Equal(t, "postgresql", s.dialect.GetName())
	assert.Equal(t, "sqlfront(postgresql)> ", s.prompt())

	tr.Reset()
	s.handleLine(".dialect oracle")
	assert.Contains(t, tr.ErrorOutput(), "unknown dialect")
	assert.Equal(t, "postgresql", s.dialect.GetName())
}

func TestRepl_Errors(t *testing.T) {
	s, tr := newTestSession(t)

	s.handleLine("SELECT a FROM WHERE;")
	assert.Contains(t, tr.ErrorOutput(), replName+":1:15: parse error:")

	tr.Reset()
	s.handleLine(".bogus")
	assert.Contains(t, tr.ErrorOutput(), "unknown command: .bogus")
}

func TestRepl_Quit(t *testing.T) {
	s, tr := newTestSession(t)
	s.handleLine(".help")
	assert.Contains(t, tr.Output(), ".dialect <name>")
	assert.True(t, s.handleLine(".quit"))
	assert.True(t, s.handleLine(".EXIT"))
}

func TestRepl_Completer(t *testing.T) {
	s, _ := newTestSession(t)
	line := []rune(".mo")
	candidates, length := s.completer().Do(line, len(line))
	require.Len(t, candidates, 1)
	assert.Equal(t, 3, length)
	assert.Equal(t, "de ", string(candidates[0]))
}

func TestHistoryPath(t *testing.T) {
	assert.Equal(t, "", historyPath(""))
	assert.Equal(t, "/tmp/h", historyPath("/tmp/h"))
	t.Setenv("HOME", "/home/u")
	assert.Equal(t, "/home/u/.sqlfront_history", historyPath(".sqlfront_history"))
}
