package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/sql"
	"github.com/spf13/cobra"
)

// FormatOptions holds options for the format command.
type FormatOptions struct {
	Exprs    []string
	Write    bool
	Check    bool
	Comments bool
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}
	cmd := &cobra.Command{
		Use:   "format [file|dir|-]...",
		Short: "Print SQL in canonical form",
		Long: `Parse SQL and print it back in canonical layout: upper-case keywords,
one clause per line and indented select lists. Formatting is idempotent and
the output parses to the same syntax tree as the input.`,
		Example: `  # Format a statement
  sqlfront format -e "select a,b from t where x=1"

  # Rewrite files in place, keeping comments
  sqlfront format --write --comments queries/

  # Fail when a file is not formatted
  sqlfront format --check schema.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Exprs, "exec", "e", nil, "SQL text to format (repeatable)")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to each file")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Report files whose formatting differs and exit non-zero")
	cmd.Flags().BoolVar(&opts.Comments, "comments", false, "Keep comments")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

type formatOutput struct {
	Source    string     `json:"source" yaml:"source"`
	Formatted string     `json:"formatted,omitempty" yaml:"formatted,omitempty"`
	Changed   bool       `json:"changed" yaml:"changed"`
	Error     *errorInfo `json:"error,omitempty" yaml:"error,omitempty"`
}

func runFormat(cmd *cobra.Command, args []string, opts *FormatOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cmd, args, opts.Exprs, cc.Cfg.Extensions)
	if err != nil {
		return err
	}

	r := cc.Renderer
	var (
		outputs           []formatOutput
		failed, unchanged int
	)
	for _, in := range inputs {
		formatted, err := formatInput(cc, in, opts.Comments)
		out := formatOutput{Source: in.Name, Formatted: formatted, Changed: formatted != in.Text, Error: newErrorInfo(err)}
		outputs = append(outputs, out)

		if err != nil {
			failed++
			if !r.IsStructured() {
				reportError(r, in, err)
			}
			continue
		}
		if !out.Changed {
			unchanged++
		}

		switch {
		case opts.Check:
			if out.Changed && !r.IsStructured() {
				r.Warning(fmt.Sprintf("%s is not formatted", in.Name))
			}
		case opts.Write && in.Path != "":
			if out.Changed {
				if err := os.WriteFile(in.Path, []byte(formatted), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", in.Path, err)
				}
				cc.Logger.Info("formatted", "file", in.Path)
			}
		case !r.IsStructured():
			r.Code("sql", formatted)
		}
	}

	if r.IsStructured() {
		if err := r.Structured(outputs); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs rejected", errParseFailed, failed, len(inputs))
	}
	if opts.Check && unchanged < len(inputs) {
		return fmt.Errorf("%d of %d inputs are not formatted", len(inputs)-unchanged, len(inputs))
	}
	return nil
}

// formatInput formats one input. -e text is a single statement, anything
// else a script.
func formatInput(cc *CommandContext, in input, keepComments bool) (string, error) {
	name := cc.Dialect.GetName()

	var stmts []core.Stmt
	if in.Single {
		res, err := sql.Parse(in.Text, name, cc.ParseOptions()...)
		if err != nil {
			return "", err
		}
		stmts = []core.Stmt{res.Statement}
	} else {
		results, err := sql.ParseScript(in.Text, name, cc.ParseOptions()...)
		if err != nil {
			return "", err
		}
		for _, res := range results {
			stmts = append(stmts, res.Statement)
		}
	}

	if !keepComments {
		if in.Single {
			return format.Format(stmts[0], cc.Dialect), nil
		}
		return format.Script(stmts, cc.Dialect), nil
	}

	lx := parser.NewLexer(in.Text, cc.Dialect)
	if _, err := lx.All(); err != nil {
		return "", err
	}
	if in.Single {
		return format.WithComments(stmts[0], lx.Comments, cc.Dialect), nil
	}
	return format.ScriptWithComments(stmts, lx.Comments, cc.Dialect), nil
}
