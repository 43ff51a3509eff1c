package format

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Format renders stmt as canonical SQL for d. Parsing the output with the
// same dialect yields a structurally equal statement.
func Format(stmt core.Stmt, d *dialect.Dialect) string {
	p := newPrinter(d)
	p.formatStmt(stmt)
	return p.String()
}

// Script renders statements separated by semicolons.
func Script(stmts []core.Stmt, d *dialect.Dialect) string {
	p := newPrinter(d)
	for i, stmt := range stmts {
		if i > 0 {
			p.writeln()
		}
		p.formatStmt(stmt)
		p.trimNewlines()
		p.write(";")
		p.writeln()
	}
	return p.String()
}

// WithComments formats a statement with comment preservation. Comments
// ending before the statement are printed above it, the rest after it.
func WithComments(stmt core.Stmt, comments []*token.Comment, d *dialect.Dialect) string {
	leading, trailing := splitComments(stmt, comments)
	p := newPrinter(d)
	p.formatComments(leading)
	p.formatStmt(stmt)
	p.formatTrailingComments(trailing)
	return p.String()
}

// ScriptWithComments is Script with comment preservation. A comment belongs
// to the first statement ending after it starts; comments past the last
// statement follow it.
func ScriptWithComments(stmts []core.Stmt, comments []*token.Comment, d *dialect.Dialect) string {
	p := newPrinter(d)
	if len(stmts) == 0 {
		p.formatComments(comments)
		return p.String()
	}

	rest := comments
	for i, stmt := range stmts {
		var own []*token.Comment
		if i == len(stmts)-1 {
			own, rest = rest, nil
		} else {
			end := stmt.End().Offset
			n := 0
			for n < len(rest) && rest[n].Span.Start.Offset < end {
				n++
			}
			own, rest = rest[:n], rest[n:]
		}

		leading, trailing := splitComments(stmt, own)
		if i > 0 {
			p.writeln()
		}
		p.formatComments(leading)
		p.formatStmt(stmt)
		p.trimNewlines()
		p.write(";")
		p.formatTrailingComments(trailing)
		p.writeln()
	}
	return p.String()
}
