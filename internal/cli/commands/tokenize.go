package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/sql"
	"github.com/leapstack-labs/sqlfront/pkg/token"
	"github.com/spf13/cobra"
)

// TokenizeOptions holds options for the tokenize command.
type TokenizeOptions struct {
	Exprs    []string
	Comments bool
}

// NewTokenizeCommand creates the tokenize command.
func NewTokenizeCommand() *cobra.Command {
	opts := &TokenizeOptions{}
	cmd := &cobra.Command{
		Use:   "tokenize [file|dir|-]...",
		Short: "Print the token stream of SQL text",
		Long: `Run only the lexer of the selected dialect and print every token with its
kind, type and position. Keywords are classified by the dialect, so the same
text may tokenize differently under mysql and postgresql.`,
		Example: `  # Tokenize a statement
  sqlfront tokenize -e "SELECT a FROM t WHERE b = ?"

  # Include comments
  sqlfront tokenize --comments query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokenize(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Exprs, "exec", "e", nil, "SQL text to tokenize (repeatable)")
	cmd.Flags().BoolVar(&opts.Comments, "comments", false, "Also list comments")

	return cmd
}

// tokenOutput is the structured form of a token.
type tokenOutput struct {
	Kind   string `json:"kind" yaml:"kind"`
	Type   string `json:"type" yaml:"type"`
	Text   string `json:"text" yaml:"text"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Offset int    `json:"offset" yaml:"offset"`
}

type commentOutput struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Body   string `json:"body" yaml:"body"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

type tokenizeOutput struct {
	Source   string          `json:"source" yaml:"source"`
	Dialect  string          `json:"dialect" yaml:"dialect"`
	Tokens   []tokenOutput   `json:"tokens" yaml:"tokens"`
	Comments []commentOutput `json:"comments,omitempty" yaml:"comments,omitempty"`
	Error    *errorInfo      `json:"error,omitempty" yaml:"error,omitempty"`
}

func runTokenize(cmd *cobra.Command, args []string, opts *TokenizeOptions) error {
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
		outputs []tokenizeOutput
		failed  int
	)
	for i, in := range inputs {
		start := time.Now()
		out := tokenizeOutput{Source: in.Name, Dialect: cc.Dialect.GetName(), Tokens: []tokenOutput{}}

		toks, err := sql.Tokenize(in.Text, cc.Dialect.GetName(), cc.ParseOptions()...)
		if err == nil && opts.Comments {
			lx := parser.NewLexer(in.Text, cc.Dialect)
			if _, lerr := lx.All(); lerr == nil {
				out.Comments = newCommentOutputs(lx.Comments)
			}
		}
		cc.Logger.Debug("tokenized", "source", in.Name, "tokens", len(toks), "elapsed", time.Since(start))

		if err != nil {
			failed++
			out.Error = newErrorInfo(err)
		}
		for _, tok := range toks {
			out.Tokens = append(out.Tokens, newTokenOutput(tok))
		}

		if r.IsStructured() {
			outputs = append(outputs, out)
			continue
		}
		if len(inputs) > 1 {
			if i > 0 {
				r.Println()
			}
			r.Header(2, in.Name)
		}
		if err != nil {
			reportError(r, in, err)
			continue
		}
		renderTokens(cc, out)
	}

	if r.IsStructured() {
		if err := r.Structured(outputs); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs rejected by the lexer", errParseFailed, failed, len(inputs))
	}
	return nil
}

func newTokenOutput(tok token.Token) tokenOutput {
	out := tokenOutput{
		Kind:   tok.Kind().String(),
		Type:   tok.Type.String(),
		Text:   tok.Raw,
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column,
		Offset: tok.Pos.Offset,
	}
	if tok.Literal != tok.Raw {
		out.Value = tok.Literal
	}
	return out
}

func newCommentOutputs(comments []*token.Comment) []commentOutput {
	out := make([]commentOutput, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentOutput{
			Kind:   c.Kind.String(),
			Text:   c.Text,
			Body:   c.Body(),
			Line:   c.Span.Start.Line,
			Column: c.Span.Start.Column,
		})
	}
	return out
}

func renderTokens(cc *CommandContext, out tokenizeOutput) {
	r := cc.Renderer
	rows := make([][]string, 0, len(out.Tokens))
	for i, tok := range out.Tokens {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d:%d", tok.Line, tok.Column),
			tok.Kind,
			tok.Type,
			tok.Text,
			tok.Value,
		})
	}
	r.Table([]string{"#", "Pos", "Kind", "Type", "Text", "Value"}, rows)

	if len(out.Comments) > 0 {
		crows := make([][]string, 0, len(out.Comments))
		for _, c := range out.Comments {
			crows = append(crows, []string{fmt.Sprintf("%d:%d", c.Line, c.Column), c.Text})
		}
		r.Println()
		r.Table([]string{"Pos", "Comment"}, crows)
	}
}
