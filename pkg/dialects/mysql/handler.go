package mysql

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- HANDLER ----------
//
//	handler → HANDLER t OPEN [[AS] alias]
//	        | HANDLER t READ {FIRST|NEXT} [WHERE expr] [LIMIT ...]
//	        | HANDLER t READ index {= | <= | >= | < | >} (value, ...) [WHERE expr] [LIMIT ...]
//	        | HANDLER t READ index {FIRST|NEXT|PREV|LAST} [WHERE expr] [LIMIT ...]
//	        | HANDLER t CLOSE

var handlerCompare = map[token.TokenType]bool{
	token.EQ: true, token.LE: true, token.GE: true, token.LT: true, token.GT: true,
}

func parseHandler(p spi.ParserOps) (*cst.Node, error) {
	n := statement(p, cst.RuleHandlerOpen)
	t, err := tableName(p)
	if err != nil {
		return nil, err
	}
	n.Add("table", t)

	switch {
	case p.CheckWord("OPEN"):
		p.Consume(n, "")
		if p.Match(n, "", token.AS) {
			alias, err := ident(p)
			if err != nil {
				return nil, err
			}
			n.Add("alias", alias)
		} else if p.IsIdentifier(p.Token(), spi.IdentGeneral) {
			p.Consume(n, "alias")
		}
		return n, nil
	case p.CheckWord("CLOSE"):
		n.Rule = cst.RuleHandlerClose
		p.Consume(n, "")
		return n, nil
	case p.CheckWord("READ"):
		n.Rule = cst.RuleHandlerRead
		p.Consume(n, "")
		if err := handlerReadTarget(p, n); err != nil {
			return nil, err
		}
		return n, handlerReadTail(p, n)
	}
	return nil, p.Unexpected("OPEN", "READ", "CLOSE")
}

func handlerReadTarget(p spi.ParserOps, n *cst.Node) error {
	// READ FIRST and READ NEXT scan in natural order unless the word is
	// followed by something only an index name can precede.
	if p.CheckWord("FIRST") || p.CheckWord("NEXT") {
		next := p.Peek()
		if !handlerCompare[next.Type] && !isHandlerDirection(next) {
			p.Consume(n, "direction")
			return nil
		}
	}

	if !p.IsIdentifier(p.Token(), spi.IdentGeneral) {
		return p.Unexpected("index name", "FIRST", "NEXT")
	}
	p.Consume(n, "index")
	if handlerCompare[p.Token().Type] {
		p.Consume(n, "op")
		return parenList(p, n, "value", func(p spi.ParserOps) (*cst.Node, error) {
			return p.ParseExpression()
		})
	}
	if !isHandlerDirection(p.Token()) {
		return p.Unexpected("FIRST", "NEXT", "PREV", "LAST", "comparison")
	}
	p.Consume(n, "direction")
	return nil
}

func isHandlerDirection(tok token.Token) bool {
	return tok.IsWord("FIRST") || tok.IsWord("NEXT") || tok.IsWord("PREV") || tok.IsWord("LAST")
}

func handlerReadTail(p spi.ParserOps, n *cst.Node) error {
	if p.Check(token.WHERE) {
		w, err := p.ParseWhere()
		if err != nil {
			return err
		}
		n.Add("where", w)
	}
	if p.Check(token.LIMIT) {
		lim, err := p.ParseLimit()
		if err != nil {
			return err
		}
		n.Add("limit", lim)
	}
	return nil
}
