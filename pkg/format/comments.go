package format

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// splitComments partitions comments around the statement span.
func splitComments(stmt core.Stmt, comments []*token.Comment) (leading, trailing []*token.Comment) {
	if stmt == nil {
		return nil, comments
	}
	span := core.SpanOf(stmt)
	for _, c := range comments {
		if c.Span.End.Offset <= span.Start.Offset {
			leading = append(leading, c)
		} else {
			trailing = append(trailing, c)
		}
	}
	return leading, trailing
}

func (p *Printer) formatComments(comments []*token.Comment) {
	for _, c := range comments {
		p.write(c.Text)
		p.writeln()
	}
}

// formatTrailingComments puts each comment on its own line so a line
// comment never swallows SQL that follows it.
func (p *Printer) formatTrailingComments(comments []*token.Comment) {
	for _, c := range comments {
		p.newline()
		p.write(c.Text)
	}
}
