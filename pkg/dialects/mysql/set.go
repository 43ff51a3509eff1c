package mysql

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- SET ----------
//
//	set → SET NAMES {charset [COLLATE collation] | DEFAULT}
//	    | SET {CHARACTER SET | CHARSET} {charset | DEFAULT}
//	    | SET RESOURCE GROUP name [FOR thread_id, ...]
//	    | SET assignment {, assignment}
//	assignment → [scope] name {=|:=} value | @var {=|:=} value
//	           | @@[scope.]name {=|:=} value

func parseSet(p spi.ParserOps) (*cst.Node, error) {
	switch {
	case p.Peek().IsWord("NAMES") && !isAssignOp(p.PeekN(2)):
		return parseSetNames(p)
	case p.Peek().IsWord("CHARSET") && !isAssignOp(p.PeekN(2)):
		set := statement(p, cst.RuleSetCharset)
		p.Consume(set, "")
		return set, setCharsetValue(p, set)
	case p.Peek().Is(token.CHARACTER) && p.PeekN(2).Is(token.SET):
		set := statement(p, cst.RuleSetCharset)
		p.Consume(set, "")
		p.Consume(set, "")
		return set, setCharsetValue(p, set)
	case p.Peek().IsWord("RESOURCE") && p.PeekN(2).Is(token.GROUP):
		return parseSetResourceGroup(p)
	}

	set := statement(p, cst.RuleSetVariable)
	if err := list(p, set, "assignment", parseVariableAssignment); err != nil {
		return nil, err
	}
	return set, nil
}

func isAssignOp(tok token.Token) bool {
	return tok.Type == token.EQ || tok.Type == token.ASSIGN
}

func parseSetNames(p spi.ParserOps) (*cst.Node, error) {
	set := statement(p, cst.RuleSetNames)
	p.Consume(set, "")
	if p.Match(set, "default", token.DEFAULT) {
		return set, nil
	}
	if err := charsetName(p, set, "charset"); err != nil {
		return nil, err
	}
	if p.Match(set, "", token.COLLATE) {
		if err := charsetName(p, set, "collate"); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func setCharsetValue(p spi.ParserOps, set *cst.Node) error {
	if p.Match(set, "default", token.DEFAULT) {
		return nil
	}
	return charsetName(p, set, "charset")
}

func parseSetResourceGroup(p spi.ParserOps) (*cst.Node, error) {
	set := statement(p, cst.RuleSetResourceGroup)
	p.Consume(set, "")
	p.Consume(set, "")
	name, err := ident(p)
	if err != nil {
		return nil, err
	}
	set.Add("name", name)
	if p.Match(set, "", token.FOR) {
		if err := list(p, set, "thread", number); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// setValueWords are keywords accepted as the whole value of a SET
// assignment.
var setValueWords = []string{"ON", "ALL", "BINARY", "ROW", "SYSTEM"}

func parseVariableAssignment(p spi.ParserOps) (*cst.Node, error) {
	a := cst.New(cst.RuleVariableAssignment)
	if isScopeWord(p.Token()) && !isAssignOp(p.Peek()) {
		p.Consume(a, "scope")
	}

	v, err := parseSetTarget(p)
	if err != nil {
		return nil, err
	}
	a.Add("var", v)
	if !isAssignOp(p.Token()) {
		return nil, p.Unexpected("'='", "':='")
	}
	p.Consume(a, "")

	next := p.Peek()
	if next.Type == token.COMMA || next.Type == token.EOF || next.Type == token.SEMICOLON {
		val := cst.New(cst.RuleSetValue)
		if matchWords(p, val, "value", setValueWords...) {
			a.Add("value", val)
			return a, nil
		}
	}
	val, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	a.Add("value", val)
	return a, nil
}

func isScopeWord(tok token.Token) bool {
	if tok.Quoted {
		return false
	}
	_, ok := core.ParseScope(tok.Literal)
	return ok && isWordToken(tok)
}

// parseSetTarget parses the variable of an assignment. A bare name is a
// system variable unless its keyword class excludes it from SET.
func parseSetTarget(p spi.ParserOps) (*cst.Node, error) {
	tok := p.Token()
	switch {
	case tok.Type == token.USER_VAR:
		v := cst.New(cst.RuleUserVar)
		p.Consume(v, "name")
		return v, nil
	case tok.Type == token.AT_AT:
		v := cst.New(cst.RuleSysVar)
		p.Consume(v, "")
		if isScopeWord(p.Token()) && p.Peek().Is(token.DOT) {
			p.Consume(v, "scope")
			p.Consume(v, "")
		}
		if !isWordToken(p.Token()) {
			return nil, p.Unexpected("variable name")
		}
		return sysVarName(p, v), nil
	case p.IsIdentifier(tok, spi.IdentLValue):
		v := cst.New(cst.RuleSysVar)
		return sysVarName(p, v), nil
	}
	return nil, p.Unexpected("variable")
}

// sysVarName parses name{.name} into v.
func sysVarName(p spi.ParserOps, v *cst.Node) *cst.Node {
	p.Consume(v, "name")
	for p.Check(token.DOT) && isWordToken(p.Peek()) {
		p.Consume(v, "")
		p.Consume(v, "name")
	}
	return v
}
