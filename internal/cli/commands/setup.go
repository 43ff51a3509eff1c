package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/sql"
	"github.com/spf13/cobra"
)

// stdinName labels input read from standard input.
const stdinName = "<stdin>"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Dialect  *dialect.Dialect
}

// NewCommandContext resolves the configured dialect and builds a renderer
// for the configured output mode.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	d, err := dialect.Resolve(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
		Dialect:  d,
	}, nil
}

// Limits returns the parser limits for the active dialect.
func (c *CommandContext) Limits() parser.Limits {
	return c.Cfg.LimitsFor(c.Dialect.GetName())
}

// ParseOptions returns the options passed to the sql package.
func (c *CommandContext) ParseOptions() []sql.Option {
	return []sql.Option{
		sql.WithLimits(c.Limits()),
		sql.WithConcurrency(c.Cfg.Concurrency),
	}
}

// input is one SQL text to process.
type input struct {
	Name   string
	Path   string // empty for stdin and -e text
	Text   string
	Single bool // -e text: exactly one statement
}

// readInputs collects the inputs of a command: each -e text, then each path
// argument. Directories are walked for files with one of exts. With neither,
// or with the path "-", standard input is read.
func readInputs(cmd *cobra.Command, args, exprs []string, exts []string) ([]input, error) {
	var inputs []input
	for i, e := range exprs {
		inputs = append(inputs, input{Name: fmt.Sprintf("-e#%d", i+1), Text: e, Single: true})
	}

	for _, arg := range args {
		if arg == "-" {
			in, err := readStdin(cmd)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, in)
			continue
		}
		files, err := expandPath(arg, exts)
		if err != nil {
			return nil, err
		}
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
			inputs = append(inputs, input{Name: path, Path: path, Text: string(data)})
		}
	}

	if len(exprs) == 0 && len(args) == 0 {
		in, err := readStdin(cmd)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func readStdin(cmd *cobra.Command) (input, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return input{}, fmt.Errorf("failed to read stdin: %w", err)
	}
	return input{Name: stdinName, Text: string(data)}, nil
}

// expandPath returns path itself for a file, or the matching files below it
// for a directory, in lexical order.
func expandPath(path string, exts []string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExtension(p, exts) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files matching %s in %s", strings.Join(exts, ", "), path)
	}
	return files, nil
}

func hasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// diagnosticFor converts a parse failure into a renderable diagnostic.
// Errors without a source position report false.
func diagnosticFor(in input, err error) (output.Diagnostic, bool) {
	var serr *sql.Error
	if !errors.As(err, &serr) {
		return output.Diagnostic{}, false
	}
	return output.Diagnostic{
		Source:   in.Name,
		Text:     in.Text,
		Stage:    serr.Stage.String(),
		Line:     serr.Line,
		Column:   serr.Column,
		Offset:   serr.Offset,
		Message:  serr.Message,
		Expected: serr.Expected,
	}, true
}

// reportError renders err for in on stderr.
func reportError(r *output.Renderer, in input, err error) {
	if diag, ok := diagnosticFor(in, err); ok {
		r.Diagnostic(diag)
		return
	}
	r.Error(fmt.Sprintf("%s: %v", in.Name, err))
}

// errorInfo is the structured form of a failure.
type errorInfo struct {
	Stage    string   `json:"stage,omitempty" yaml:"stage,omitempty"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int      `json:"column,omitempty" yaml:"column,omitempty"`
	Offset   int      `json:"offset" yaml:"offset"`
	Message  string   `json:"message" yaml:"message"`
	Expected []string `json:"expected,omitempty" yaml:"expected,omitempty"`
}

func newErrorInfo(err error) *errorInfo {
	if err == nil {
		return nil
	}
	var serr *sql.Error
	if errors.As(err, &serr) {
		return &errorInfo{
			Stage:    serr.Stage.String(),
			Line:     serr.Line,
			Column:   serr.Column,
			Offset:   serr.Offset,
			Message:  serr.Message,
			Expected: serr.Expected,
		}
	}
	return &errorInfo{Message: err.Error()}
}
