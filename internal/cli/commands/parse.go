package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/sql"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Exprs []string
	Watch bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [file|dir|-]...",
		Short: "Parse SQL and print the syntax tree",
		Long: `Parse SQL text into a syntax tree using the selected dialect.

Files and standard input are parsed as scripts of semicolon-separated
statements. Each -e value is parsed as exactly one statement; several -e
values are parsed concurrently. Directories are searched for files with a
configured extension (.sql by default).

Rejected input is reported with its stage (lex, parse or build), position and
the expected tokens, and the command exits with status 1.

Output adapts to environment:
  - Terminal: Tree view
  - Piped/Scripted: Markdown format
  - JSON/YAML: Machine-readable syntax tree`,
		Example: `  # Parse a single statement
  sqlfront parse -e "SELECT id FROM users WHERE id = 1"

  # Parse a PostgreSQL script as JSON
  sqlfront parse -d postgres -o json schema.sql

  # Re-parse a file whenever it changes
  sqlfront parse --watch query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Exprs, "exec", "e", nil, "SQL statement to parse (repeatable)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-parse the file on every change")

	return cmd
}

// parseOutcome is the result of parsing one input.
type parseOutcome struct {
	input
	Results []*sql.Result
	Err     error
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cmd, args, opts.Exprs, cc.Cfg.Extensions)
	if err != nil {
		return err
	}

	if opts.Watch {
		return runParseWatch(cmd.Context(), cc, inputs)
	}

	outcomes, err := parseInputs(cmd.Context(), cc, inputs)
	if err != nil {
		return err
	}
	if err := renderParse(cc, outcomes); err != nil {
		return err
	}
	return failureError(outcomes)
}

// parseInputs parses scripts concurrently, bounded by the configured
// concurrency, and -e statements through sql.ParseBatch.
func parseInputs(ctx context.Context, cc *CommandContext, inputs []input) ([]parseOutcome, error) {
	outcomes := make([]parseOutcome, len(inputs))
	name := cc.Dialect.GetName()

	limit := cc.Cfg.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	var singles []int
	for i, in := range inputs {
		if in.Single {
			singles = append(singles, i)
			continue
		}
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			results, err := sql.ParseScript(in.Text, name, cc.ParseOptions()...)
			outcomes[i] = parseOutcome{input: in, Results: results, Err: err}
			cc.Logger.Debug("parsed script",
				"source", in.Name,
				"statements", len(results),
				"tokens", tokenCount(results),
				"elapsed", time.Since(start))
			return nil
		})
	}

	if len(singles) > 0 {
		texts := make([]string, len(singles))
		for j, i := range singles {
			texts[j] = inputs[i].Text
		}
		start := time.Now()
		batch, err := sql.ParseBatch(ctx, texts, name, cc.ParseOptions()...)
		if err != nil {
			_ = eg.Wait()
			return nil, err
		}
		for j, br := range batch {
			i := singles[j]
			outcomes[i] = parseOutcome{input: inputs[i], Err: br.Err}
			if br.Result != nil {
				outcomes[i].Results = []*sql.Result{br.Result}
			}
		}
		cc.Logger.Debug("parsed batch", "statements", len(texts), "elapsed", time.Since(start))
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func tokenCount(results []*sql.Result) int {
	if len(results) == 0 {
		return 0
	}
	return len(results[0].Tokens)
}

// statementOutput is the structured form of one parsed statement.
type statementOutput struct {
	Type string         `json:"type" yaml:"type"`
	Text string         `json:"text" yaml:"text"`
	AST  map[string]any `json:"ast" yaml:"ast"`
}

// parseOutput is the structured form of one parsed input.
type parseOutput struct {
	Source     string            `json:"source" yaml:"source"`
	Dialect    string            `json:"dialect" yaml:"dialect"`
	Statements []statementOutput `json:"statements" yaml:"statements"`
	Error      *errorInfo        `json:"error,omitempty" yaml:"error,omitempty"`
}

func renderParse(cc *CommandContext, outcomes []parseOutcome) error {
	r := cc.Renderer
	if r.IsStructured() {
		out := make([]parseOutput, 0, len(outcomes))
		for _, o := range outcomes {
			out = append(out, newParseOutput(cc, o))
		}
		return r.Structured(out)
	}

	for i, o := range outcomes {
		if len(outcomes) > 1 {
			if i > 0 {
				r.Println()
			}
			r.Header(2, o.Name)
		}
		if o.Err != nil {
			reportError(r, o.input, o.Err)
			continue
		}
		if len(o.Results) == 0 {
			r.Muted("(no statements)")
		}
		for _, res := range o.Results {
			r.Tree(describe(res.Statement).Tree())
		}
	}

	if len(outcomes) > 1 {
		r.Println()
		renderParseSummary(r, outcomes)
	}
	return nil
}

func newParseOutput(cc *CommandContext, o parseOutcome) parseOutput {
	out := parseOutput{
		Source:     o.Name,
		Dialect:    cc.Dialect.GetName(),
		Statements: []statementOutput{},
		Error:      newErrorInfo(o.Err),
	}
	for _, res := range o.Results {
		ast := describe(res.Statement)
		out.Statements = append(out.Statements, statementOutput{
			Type: ast.Type,
			Text: res.Fragment(res.Statement),
			AST:  ast.Map(),
		})
	}
	return out
}

func renderParseSummary(r *output.Renderer, outcomes []parseOutcome) {
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		status := "ok"
		if o.Err != nil {
			status = "failed"
			if info := newErrorInfo(o.Err); info.Stage != "" {
				status = fmt.Sprintf("%s error at %d:%d", info.Stage, info.Line, info.Column)
			}
		}
		rows = append(rows, []string{o.Name, fmt.Sprintf("%d", len(o.Results)), status})
	}
	r.Table([]string{"Source", "Statements", "Result"}, rows)
}

// errParseFailed is returned after failures were reported.
var errParseFailed = errors.New("parse failed")

func failureError(outcomes []parseOutcome) error {
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	switch {
	case failed == 0:
		return nil
	case len(outcomes) == 1:
		return errParseFailed
	}
	return fmt.Errorf("%w: %d of %d inputs rejected", errParseFailed, failed, len(outcomes))
}

func runParseWatch(ctx context.Context, cc *CommandContext, inputs []input) error {
	if len(inputs) != 1 || inputs[0].Path == "" {
		return errors.New("--watch needs exactly one file")
	}
	in := inputs[0]

	reparse := func() {
		if data, err := os.ReadFile(in.Path); err == nil {
			in.Text = string(data)
		} else {
			cc.Renderer.Error(err.Error())
			return
		}
		outcomes, err := parseInputs(ctx, cc, []input{in})
		if err != nil {
			cc.Renderer.Error(err.Error())
			return
		}
		if err := renderParse(cc, outcomes); err != nil {
			cc.Renderer.Error(err.Error())
		}
	}

	w, err := newFileWatcher(in.Path, cc.Logger)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", in.Path, err)
	}
	defer func() { _ = w.Close() }()

	reparse()
	cc.Renderer.Muted(fmt.Sprintf("watching %s (Ctrl-C to stop)", in.Path))
	return w.Run(ctx, cc.Cfg.WatchDebounce, func() {
		cc.Renderer.Println()
		cc.Renderer.Muted(fmt.Sprintf("-- %s changed at %s", in.Path, time.Now().Format(time.TimeOnly)))
		reparse()
	})
}
