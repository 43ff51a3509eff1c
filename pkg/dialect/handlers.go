package dialect

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Standard Clause Handlers ----------
// These are stateless functions that can be composed into any dialect.
// The clause keywords have already been consumed into clause when these are
// called.

// ParseWhere handles the standard WHERE clause.
func ParseWhere(p spi.ParserOps, clause *cst.Node) error {
	cond, err := p.ParseExpression()
	if err != nil {
		return err
	}
	clause.Add("cond", cond)
	return nil
}

// ParseGroupBy handles the standard GROUP BY clause.
func ParseGroupBy(p spi.ParserOps, clause *cst.Node) error {
	return p.ParseExpressionList(clause, "item")
}

// ParseGroupByWithRollup handles GROUP BY with MySQL's trailing WITH ROLLUP.
func ParseGroupByWithRollup(p spi.ParserOps, clause *cst.Node) error {
	if err := p.ParseExpressionList(clause, "item"); err != nil {
		return err
	}
	if p.Check(token.WITH) && p.Peek().Is(token.ROLLUP) {
		p.Consume(clause, "rollup")
		p.Consume(clause, "rollup")
	}
	return nil
}

// ParseHaving handles the standard HAVING clause.
func ParseHaving(p spi.ParserOps, clause *cst.Node) error {
	return ParseWhere(p, clause)
}

// ParseWindow handles named window definitions: WINDOW w AS (spec), ...
func ParseWindow(p spi.ParserOps, clause *cst.Node) error {
	for {
		w := cst.New(cst.RuleNamedWindow)
		name, err := p.ParseIdentifier(spi.IdentGeneral)
		if err != nil {
			return err
		}
		w.Add("name", name)
		if err := p.Expect(w, "", token.AS); err != nil {
			return err
		}
		spec, err := p.ParseWindowSpec()
		if err != nil {
			return err
		}
		w.Add("spec", spec)
		clause.Add("window", w)
		if !p.Match(clause, "", token.COMMA) {
			return nil
		}
	}
}
