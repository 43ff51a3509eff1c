package sql

import (
	"github.com/leapstack-labs/sqlfront/pkg/builder"
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"

	// Registered dialects.
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
)

// Result is a parsed statement with the text it was parsed from.
type Result struct {
	Statement core.Stmt
	// Dialect is the canonical name of the dialect used.
	Dialect string
	Text    string
	// Tokens is the full token stream of Text, ending with EOF.
	Tokens []token.Token
}

// Fragment returns the source text covered by n. It returns "" for nodes
// whose span lies outside the text.
func (r *Result) Fragment(n core.Node) string {
	if n == nil {
		return ""
	}
	start, end := n.Pos().Offset, n.End().Offset
	if start < 0 || end > len(r.Text) || start > end {
		return ""
	}
	return r.Text[start:end]
}

// Parse parses exactly one statement of the named dialect.
func Parse(text, dialectName string, opts ...Option) (*Result, error) {
	d, err := dialect.Resolve(dialectName)
	if err != nil {
		return nil, err
	}
	return parseWith(text, d, buildOptions(opts))
}

func parseWith(text string, d *dialect.Dialect, o Options) (*Result, error) {
	popts := o.parserOptions()
	toks, err := parser.Tokenize(text, d, popts...)
	if err != nil {
		return nil, wrapError(err)
	}
	tree, err := parser.ParseTokens(toks, d, popts...)
	if err != nil {
		return nil, wrapError(err)
	}
	stmt, err := builder.Build(tree, d)
	if err != nil {
		return nil, wrapError(err)
	}
	return &Result{Statement: stmt, Dialect: d.GetName(), Text: text, Tokens: toks}, nil
}

// ParseScript parses semicolon-separated statements. All results share the
// text and token stream of the script. Empty statements are skipped.
func ParseScript(text, dialectName string, opts ...Option) ([]*Result, error) {
	d, err := dialect.Resolve(dialectName)
	if err != nil {
		return nil, err
	}
	popts := buildOptions(opts).parserOptions()

	toks, err := parser.Tokenize(text, d, popts...)
	if err != nil {
		return nil, wrapError(err)
	}
	tree, err := parser.ParseScript(toks, d, popts...)
	if err != nil {
		return nil, wrapError(err)
	}
	stmts, err := builder.BuildScript(tree, d)
	if err != nil {
		return nil, wrapError(err)
	}

	results := make([]*Result, 0, len(stmts))
	for _, stmt := range stmts {
		results = append(results, &Result{Statement: stmt, Dialect: d.GetName(), Text: text, Tokens: toks})
	}
	return results, nil
}

// Tokenize runs only the lexer of the named dialect and returns every token
// of text, ending with EOF.
func Tokenize(text, dialectName string, opts ...Option) ([]token.Token, error) {
	d, err := dialect.Resolve(dialectName)
	if err != nil {
		return nil, err
	}
	toks, err := parser.Tokenize(text, d, buildOptions(opts).parserOptions()...)
	if err != nil {
		return nil, wrapError(err)
	}
	return toks, nil
}
