package dialect

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// --- Standard Clause Definitions ---
// Pre-configured ClauseDefs that dialects compose. Handlers are explicitly
// typed to spi.ClauseHandler so the type assertion at the call site holds.

var (
	// StandardWhere is the standard WHERE clause definition.
	StandardWhere = core.ClauseDef{
		Token:   token.WHERE,
		Handler: spi.ClauseHandler(ParseWhere),
		Slot:    core.SlotWhere,
	}

	// StandardGroupBy is the standard GROUP BY clause definition.
	StandardGroupBy = core.ClauseDef{
		Token:    token.GROUP,
		Handler:  spi.ClauseHandler(ParseGroupBy),
		Slot:     core.SlotGroupBy,
		Keywords: []string{"GROUP", "BY"},
	}

	// StandardHaving is the standard HAVING clause definition.
	StandardHaving = core.ClauseDef{
		Token:   token.HAVING,
		Handler: spi.ClauseHandler(ParseHaving),
		Slot:    core.SlotHaving,
	}

	// StandardWindow is the standard WINDOW clause definition.
	StandardWindow = core.ClauseDef{
		Token:   token.WINDOW,
		Handler: spi.ClauseHandler(ParseWindow),
		Slot:    core.SlotWindow,
	}
)

// StandardSelectClauses is the typical ANSI SELECT clause sequence.
// ORDER BY, LIMIT and the lock clause belong to the query expression, not to
// a single SELECT block, and are parsed by the shared grammar.
var StandardSelectClauses = []core.ClauseDef{
	StandardWhere,
	StandardGroupBy,
	StandardHaving,
	StandardWindow,
}

// GroupByOpts configures GROUP BY clause behavior.
type GroupByOpts struct {
	AllowRollup bool // Support GROUP BY ... WITH ROLLUP
}

// GroupBy returns a ClauseDef for GROUP BY with options.
func GroupBy(opts GroupByOpts) core.ClauseDef {
	if opts.AllowRollup {
		return core.ClauseDef{
			Token:    token.GROUP,
			Handler:  spi.ClauseHandler(ParseGroupByWithRollup),
			Slot:     core.SlotGroupBy,
			Keywords: []string{"GROUP", "BY"},
		}
	}
	return StandardGroupBy
}
