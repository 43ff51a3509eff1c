package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/lineage"
	"github.com/leapstack-labs/sqlfront/pkg/sql"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// LineageOptions holds options for the lineage command.
type LineageOptions struct {
	Exprs      []string
	SchemaFile string
}

// NewLineageCommand creates the lineage command.
func NewLineageCommand() *cobra.Command {
	opts := &LineageOptions{}

	cmd := &cobra.Command{
		Use:   "lineage [file|dir|-]...",
		Short: "Show the tables and source columns of statements",
		Long: `Display the tables each statement reads and modifies and, for queries, the
source columns behind every output column.

Names in CTEs, derived tables and aliases are resolved to the physical tables
they stand for. A schema file lets SELECT * expand to real columns and lets
unqualified columns of a join resolve to their table:

  orders: [id, user_id, total]
  shop.users: [id, name]`,
		Example: `  # Tables and columns of one query
  sqlfront lineage -e "SELECT u.name, SUM(o.total) FROM users u JOIN orders o ON o.user_id = u.id GROUP BY u.name"

  # Expand stars using known columns
  sqlfront lineage --schema schema.yaml queries/

  # Output as JSON
  sqlfront lineage -o json report.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineage(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Exprs, "exec", "e", nil, "SQL statement to analyze (repeatable)")
	cmd.Flags().StringVar(&opts.SchemaFile, "schema", "", "YAML file mapping table names to their columns")

	return cmd
}

func runLineage(cmd *cobra.Command, args []string, opts *LineageOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	schema, err := loadSchema(opts.SchemaFile)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cmd, args, opts.Exprs, cc.Cfg.Extensions)
	if err != nil {
		return err
	}

	outcomes, err := parseInputs(cmd.Context(), cc, inputs)
	if err != nil {
		return err
	}
	if err := renderLineage(cc, outcomes, lineage.Options{Schema: schema}); err != nil {
		return err
	}
	return failureError(outcomes)
}

// loadSchema reads a table-to-columns mapping. An empty path means no schema.
func loadSchema(path string) (lineage.Schema, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	var schema lineage.Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("invalid schema file %s: %w", path, err)
	}
	return schema, nil
}

// expandHome replaces a leading ~/ with the home directory.
func expandHome(path string) string {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

// tableOutput is the structured form of one table occurrence.
type tableOutput struct {
	Name   string `json:"name" yaml:"name"`
	Alias  string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Access string `json:"access" yaml:"access"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// columnOutput is the structured form of one output column.
type columnOutput struct {
	Name      string   `json:"name" yaml:"name"`
	Sources   []string `json:"sources" yaml:"sources"`
	Transform string   `json:"transform,omitempty" yaml:"transform,omitempty"`
	Function  string   `json:"function,omitempty" yaml:"function,omitempty"`
}

// statementLineageOutput is the structured lineage of one statement.
type statementLineageOutput struct {
	Type    string         `json:"type" yaml:"type"`
	Text    string         `json:"text" yaml:"text"`
	Tables  []tableOutput  `json:"tables" yaml:"tables"`
	Sources []string       `json:"sources" yaml:"sources"`
	Targets []string       `json:"targets" yaml:"targets"`
	Columns []columnOutput `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// lineageOutput is the structured lineage of one input.
type lineageOutput struct {
	Source     string                   `json:"source" yaml:"source"`
	Dialect    string                   `json:"dialect" yaml:"dialect"`
	Statements []statementLineageOutput `json:"statements" yaml:"statements"`
	Error      *errorInfo               `json:"error,omitempty" yaml:"error,omitempty"`
}

func newStatementLineageOutput(res *sql.Result, l *lineage.StatementLineage) statementLineageOutput {
	out := statementLineageOutput{
		Type:    describe(res.Statement).Type,
		Text:    res.Fragment(res.Statement),
		Tables:  []tableOutput{},
		Sources: l.Sources,
		Targets: l.Targets,
	}
	for _, t := range l.Tables {
		out.Tables = append(out.Tables, tableOutput{
			Name:   t.QualifiedName(),
			Alias:  t.Alias,
			Access: t.Access.String(),
			Line:   t.Span.Start.Line,
			Column: t.Span.Start.Column,
		})
	}
	for _, c := range l.Columns {
		out.Columns = append(out.Columns, columnOutput{
			Name:      c.Name,
			Sources:   sourceNames(c.Sources),
			Transform: string(c.Transform),
			Function:  c.Function,
		})
	}
	return out
}

func sourceNames(sources []lineage.SourceColumn) []string {
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		if s.Table == "" {
			names = append(names, s.Column)
			continue
		}
		names = append(names, s.Table+"."+s.Column)
	}
	return names
}

func renderLineage(cc *CommandContext, outcomes []parseOutcome, opts lineage.Options) error {
	r := cc.Renderer

	if r.IsStructured() {
		out := make([]lineageOutput, 0, len(outcomes))
		for _, o := range outcomes {
			lo := lineageOutput{
				Source:     o.Name,
				Dialect:    cc.Dialect.GetName(),
				Statements: []statementLineageOutput{},
				Error:      newErrorInfo(o.Err),
			}
			for _, res := range o.Results {
				l := lineage.ExtractWithOptions(res.Statement, cc.Dialect, opts)
				lo.Statements = append(lo.Statements, newStatementLineageOutput(res, l))
			}
			out = append(out, lo)
		}
		return r.Structured(out)
	}

	for i, o := range outcomes {
		if len(outcomes) > 1 {
			if i > 0 {
				r.Println()
			}
			r.Header(1, o.Name)
		}
		if o.Err != nil {
			reportError(r, o.input, o.Err)
			continue
		}
		for _, res := range o.Results {
			l := lineage.ExtractWithOptions(res.Statement, cc.Dialect, opts)
			renderStatementLineage(r, newStatementLineageOutput(res, l))
		}
	}
	return nil
}

func renderStatementLineage(r *output.Renderer, s statementLineageOutput) {
	r.Header(2, s.Type)
	r.Code("sql", s.Text)

	r.StatusLine("Reads", orNone(strings.Join(s.Sources, ", ")))
	r.StatusLine("Writes", orNone(strings.Join(s.Targets, ", ")))

	if len(s.Tables) > 0 {
		rows := make([][]string, 0, len(s.Tables))
		for _, t := range s.Tables {
			rows = append(rows, []string{
				t.Name,
				t.Alias,
				t.Access,
				fmt.Sprintf("%d:%d", t.Line, t.Column),
			})
		}
		r.Println()
		r.Table([]string{"Table", "Alias", "Access", "Position"}, rows)
	}

	if len(s.Columns) > 0 {
		rows := make([][]string, 0, len(s.Columns))
		for _, c := range s.Columns {
			transform := "direct"
			if c.Transform != "" {
				transform = "expression"
			}
			rows = append(rows, []string{
				c.Name,
				orNone(strings.Join(c.Sources, ", ")),
				transform,
				c.Function,
			})
		}
		r.Println()
		r.Table([]string{"Column", "Sources", "Transform", "Function"}, rows)
	}
	r.Println()
}
