package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/sql"
	"github.com/spf13/cobra"
)

// replName labels REPL input in diagnostics.
const replName = "<repl>"

// REPL display modes.
const (
	replModeTree   = "tree"
	replModeFormat = "format"
	replModeTokens = "tokens"
)

var replModes = []string{replModeTree, replModeFormat, replModeTokens}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive SQL parser shell",
		Long: `Start an interactive shell that parses each statement as it is entered.

Statements may span several lines and end with a semicolon. Dot-commands
switch the dialect or what is printed for each statement:

  .dialect <name>   Switch the dialect
  .mode <mode>      Print the syntax tree (tree), canonical SQL (format)
                    or the token stream (tokens)
  .help             Show help
  .quit, .exit      Leave the shell`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	s := newReplSession(cc)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     historyPath(cc.Cfg.HistoryFile),
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cc.Renderer
	r.Println(fmt.Sprintf("sqlfront REPL (dialect: %s)", s.dialect.GetName()))
	r.Muted("Type .help for commands, .quit to exit")
	r.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.reset()
			rl.SetPrompt(s.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.handleLine(line) {
			return nil
		}
		rl.SetPrompt(s.prompt())
	}
}

// historyPath places a relative history file in the home directory.
func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}

// replSession is the state of one interactive session.
type replSession struct {
	cc      *CommandContext
	dialect *dialect.Dialect
	mode    string
	buf     strings.Builder
}

func newReplSession(cc *CommandContext) *replSession {
	return &replSession{cc: cc, dialect: cc.Dialect, mode: replModeTree}
}

func (s *replSession) prompt() string {
	p := fmt.Sprintf("sqlfront(%s)> ", s.dialect.GetName())
	if s.buf.Len() > 0 {
		return strings.Repeat(" ", len(p)-5) + "...> "
	}
	return p
}

func (s *replSession) reset() {
	s.buf.Reset()
}

// handleLine consumes one line of input and reports whether the session
// should end.
func (s *replSession) handleLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if s.buf.Len() == 0 && strings.HasPrefix(line, ".") {
		return s.dotCommand(line)
	}

	if s.buf.Len() > 0 {
		s.buf.WriteString("\n")
	}
	s.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		return false
	}

	text := s.buf.String()
	s.buf.Reset()
	s.run(text)
	s.cc.Renderer.Println()
	return false
}

func (s *replSession) dotCommand(line string) bool {
	r := s.cc.Renderer
	parts := strings.Fields(line)

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		r.Println(".dialect <name>   switch the dialect (" + strings.Join(dialect.List(), ", ") + ")")
		r.Println(".mode <mode>      set the display mode (" + strings.Join(replModes, ", ") + ")")
		r.Println(".help             show this help")
		r.Println(".quit             leave the shell")

	case ".dialect":
		if len(parts) < 2 {
			r.StatusLine("dialect", s.dialect.GetName())
			break
		}
		d, err := dialect.Resolve(parts[1])
		if err != nil {
			r.Error(err.Error())
			break
		}
		s.dialect = d
		r.Success("dialect set to " + d.GetName())

	case ".mode":
		if len(parts) < 2 {
			r.StatusLine("mode", s.mode)
			break
		}
		mode := strings.ToLower(parts[1])
		if !slices.Contains(replModes, mode) {
			r.Error(fmt.Sprintf("unknown mode %q (available: %s)", mode, strings.Join(replModes, ", ")))
			break
		}
		s.mode = mode
		r.Success("mode set to " + mode)

	default:
		r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", parts[0]))
	}
	return false
}

func (s *replSession) options() []sql.Option {
	return []sql.Option{
		sql.WithLimits(s.cc.Cfg.LimitsFor(s.dialect.GetName())),
		sql.WithConcurrency(s.cc.Cfg.Concurrency),
	}
}

// run parses text and prints it in the current mode.
func (s *replSession) run(text string) {
	r := s.cc.Renderer
	in := input{Name: replName, Text: text}
	name := s.dialect.GetName()

	if s.mode == replModeTokens {
		toks, err := sql.Tokenize(text, name, s.options()...)
		if err != nil {
			reportError(r, in, err)
			return
		}
		out := tokenizeOutput{Source: replName, Dialect: name}
		for _, tok := range toks {
			out.Tokens = append(out.Tokens, newTokenOutput(tok))
		}
		renderTokens(s.cc, out)
		return
	}

	results, err := sql.ParseScript(text, name, s.options()...)
	if err != nil {
		reportError(r, in, err)
		return
	}
	s.cc.Logger.Debug("parsed", "statements", len(results), "dialect", name)

	if s.mode == replModeFormat {
		stmts := make([]core.Stmt, 0, len(results))
		for _, res := range results {
			stmts = append(stmts, res.Statement)
		}
		r.Code("sql", format.Script(stmts, s.dialect))
		return
	}
	for _, res := range results {
		r.Tree(describe(res.Statement).Tree())
	}
}

// completer offers dot-commands and the statement keywords of the dialect
// the session started with.
func (s *replSession) completer() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".dialect", readline.PcItemDynamic(func(string) []string {
			return dialect.List()
		})),
		readline.PcItem(".mode",
			readline.PcItem(replModeTree),
			readline.PcItem(replModeFormat),
			readline.PcItem(replModeTokens),
		),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	for _, kw := range s.dialect.StatementKeywords() {
		items = append(items, readline.PcItem(kw))
	}
	return readline.NewPrefixCompleter(items...)
}
