package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Window Specifications ----------
//
//	window_spec → '(' [base_window] [PARTITION BY exprs] [ORDER BY items] [frame] ')'
//	frame       → (ROWS|RANGE) (bound | BETWEEN bound AND bound)
//	bound       → UNBOUNDED PRECEDING | UNBOUNDED FOLLOWING | CURRENT ROW
//	            | expr PRECEDING | expr FOLLOWING

// ParseWindowSpec parses a parenthesised window specification.
func (p *Parser) ParseWindowSpec() (*cst.Node, error) {
	ws := cst.New(cst.RuleWindowSpec)
	if err := p.Expect(ws, "", token.LPAREN); err != nil {
		return nil, err
	}
	if p.IsIdentifier(p.Token(), spi.IdentGeneral) &&
		!p.checkAny(token.PARTITION, token.ORDER, token.ROWS, token.RANGE) {
		p.Consume(ws, "name")
	}
	if p.Match(ws, "", token.PARTITION) {
		if err := p.Expect(ws, "", token.BY); err != nil {
			return nil, err
		}
		if err := p.ParseExpressionList(ws, "partition"); err != nil {
			return nil, err
		}
	}
	if p.Check(token.ORDER) {
		ob, err := p.ParseOrderBy()
		if err != nil {
			return nil, err
		}
		ws.Add("order", ob)
	}
	if p.checkAny(token.ROWS, token.RANGE) {
		frame, err := p.parseFrame()
		if err != nil {
			return nil, err
		}
		ws.Add("frame", frame)
	}
	if err := p.Expect(ws, "", token.RPAREN); err != nil {
		return nil, err
	}
	return ws, nil
}

func (p *Parser) parseFrame() (*cst.Node, error) {
	f := cst.New(cst.RuleFrame)
	p.Consume(f, "units")
	if !p.Match(f, "", token.BETWEEN) {
		start, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		f.Add("start", start)
		return f, nil
	}
	start, err := p.parseFrameBound()
	if err != nil {
		return nil, err
	}
	f.Add("start", start)
	if err := p.Expect(f, "", token.AND); err != nil {
		return nil, err
	}
	end, err := p.parseFrameBound()
	if err != nil {
		return nil, err
	}
	f.Add("end", end)
	return f, nil
}

func (p *Parser) parseFrameBound() (*cst.Node, error) {
	b := cst.New(cst.RuleFrameBound)
	switch {
	case p.Check(token.UNBOUNDED):
		p.Consume(b, "kind")
		if !p.checkAny(token.PRECEDING, token.FOLLOWING) {
			return nil, p.Unexpected("PRECEDING", "FOLLOWING")
		}
		p.Consume(b, "kind")
	case p.Check(token.CURRENT) && p.Peek().Type == token.ROW:
		p.Consume(b, "kind")
		p.Consume(b, "kind")
	default:
		off, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		b.Add("offset", off)
		if !p.checkAny(token.PRECEDING, token.FOLLOWING) {
			return nil, p.Unexpected("PRECEDING", "FOLLOWING")
		}
		p.Consume(b, "kind")
	}
	return b, nil
}
