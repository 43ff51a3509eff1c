package postgres

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- SHOW ----------
//
//	show → SHOW ALL | SHOW TIME ZONE | SHOW name{.name}

func parseShow(p spi.ParserOps) (*cst.Node, error) {
	show := cst.New(cst.RuleShowVariables)
	p.Consume(show, "")

	switch {
	case p.Check(token.ALL):
		p.Consume(show, "all")
	case p.CheckWords("TIME", "ZONE"):
		p.Consume(show, "time_zone")
		p.Consume(show, "")
	default:
		name, err := p.ParseQualifiedName()
		if err != nil {
			return nil, err
		}
		show.Add("name", name)
	}
	return show, nil
}

// ---------- SET ----------
//
//	set   → SET [SESSION|LOCAL] name {TO|=} {value {, value} | DEFAULT}
//	      | SET [SESSION|LOCAL] TIME ZONE {value | LOCAL | DEFAULT}
//	value → ON | OFF | expr

func parseSet(p spi.ParserOps) (*cst.Node, error) {
	set := cst.New(cst.RuleSetVariable)
	p.Consume(set, "")

	a := cst.New(cst.RuleVariableAssignment)
	if (p.CheckWord("SESSION") || p.CheckWord("LOCAL")) && !isAssignWord(p.Peek()) {
		p.Consume(a, "scope")
	}

	v := cst.New(cst.RuleSysVar)
	if p.CheckWords("TIME", "ZONE") {
		p.Consume(v, "name")
		p.Consume(v, "time_zone")
		a.Add("var", v)
		val := cst.New(cst.RuleSetValue)
		if p.MatchWord(val, "value", "LOCAL") || p.Match(val, "value", token.DEFAULT) {
			a.Add("value", val)
		} else {
			expr, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			a.Add("value", expr)
		}
		set.Add("assignment", a)
		return set, nil
	}

	if !p.IsIdentifier(p.Token(), spi.IdentLValue) {
		return nil, p.Unexpected("configuration parameter")
	}
	p.Consume(v, "name")
	for p.Check(token.DOT) {
		p.Consume(v, "")
		tok := p.Token()
		if tok.Type != token.IDENT && !token.IsKeyword(tok.Type) {
			return nil, p.Unexpected("configuration parameter")
		}
		p.Consume(v, "name")
	}
	a.Add("var", v)

	if !isAssignWord(p.Token()) {
		return nil, p.Unexpected("TO", "'='")
	}
	p.Consume(a, "")

	value, err := parseSetValues(p)
	if err != nil {
		return nil, err
	}
	a.Add("value", value)
	set.Add("assignment", a)
	return set, nil
}

func isAssignWord(tok token.Token) bool {
	return tok.Type == token.EQ || tok.IsWord("TO")
}

// parseSetValues parses DEFAULT or a value list. A list of more than one
// value becomes an expression list.
func parseSetValues(p spi.ParserOps) (*cst.Node, error) {
	if p.Check(token.DEFAULT) {
		val := cst.New(cst.RuleSetValue)
		p.Consume(val, "value")
		return val, nil
	}

	first, err := parseSetValue(p)
	if err != nil {
		return nil, err
	}
	if !p.Check(token.COMMA) {
		return first, nil
	}
	list := cst.New(cst.RuleExprList)
	list.Add("item", first)
	for p.Match(list, "", token.COMMA) {
		item, err := parseSetValue(p)
		if err != nil {
			return nil, err
		}
		list.Add("item", item)
	}
	return list, nil
}

// parseSetValue accepts the boolean words ON and OFF alongside expressions.
func parseSetValue(p spi.ParserOps) (*cst.Node, error) {
	if p.CheckWord("ON") || p.CheckWord("OFF") {
		next := p.Peek()
		if next.Type == token.COMMA || next.Type == token.EOF || next.Type == token.SEMICOLON {
			val := cst.New(cst.RuleSetValue)
			p.Consume(val, "value")
			return val, nil
		}
	}
	return p.ParseExpression()
}
