package mysql

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- LOAD ----------
//
//	load → LOAD {DATA|XML} [LOW_PRIORITY|CONCURRENT] [LOCAL] INFILE 'file'
//	       [REPLACE|IGNORE] INTO TABLE t [PARTITION (p, ...)] [CHARACTER SET cs]
//	       [export_options | ROWS IDENTIFIED BY 'tag'] [IGNORE n {LINES|ROWS}]
//	       [(column_or_var, ...)] [SET assignment, ...]
//	     | LOAD INDEX INTO CACHE table_index_list, ...

func parseLoad(p spi.ParserOps) (*cst.Node, error) {
	next := p.Peek()
	switch {
	case next.IsWord("DATA"):
		return parseLoadFile(p, cst.RuleLoadData)
	case next.IsWord("XML"):
		return parseLoadFile(p, cst.RuleLoadXML)
	case next.Is(token.INDEX):
		return parseLoadIndex(p)
	}
	statement(p, cst.RuleLoadData)
	return nil, p.Unexpected("DATA", "XML", "INDEX")
}

func parseLoadFile(p spi.ParserOps, rule cst.Rule) (*cst.Node, error) {
	n := statement(p, rule)
	p.Consume(n, "")

	if !p.Match(n, "priority", token.LOW_PRIORITY) {
		matchWords(p, n, "priority", "CONCURRENT")
	}
	matchWords(p, n, "local", "LOCAL")
	if err := expectWords(p, n, "", "INFILE"); err != nil {
		return nil, err
	}
	file, err := p.ParseStringLiteral()
	if err != nil {
		return nil, err
	}
	n.Add("file", file)
	if !p.Match(n, "duplicate", token.REPLACE) {
		p.Match(n, "duplicate", token.IGNORE)
	}
	if err := p.Expect(n, "", token.INTO); err != nil {
		return nil, err
	}
	if err := p.Expect(n, "", token.TABLE); err != nil {
		return nil, err
	}
	t, err := tableName(p)
	if err != nil {
		return nil, err
	}
	n.Add("table", t)

	if p.Match(n, "", token.PARTITION) {
		if err := parenList(p, n, "partition", ident); err != nil {
			return nil, err
		}
	}
	if p.Check(token.CHARACTER) && p.Peek().Is(token.SET) {
		p.Consume(n, "")
		p.Consume(n, "")
		if err := charsetName(p, n, "charset"); err != nil {
			return nil, err
		}
	} else if p.Match(n, "", token.CHARSET) {
		if err := charsetName(p, n, "charset"); err != nil {
			return nil, err
		}
	}

	if rule == cst.RuleLoadXML {
		if p.CheckWords("ROWS", "IDENTIFIED") {
			p.Consume(n, "")
			p.Consume(n, "")
			if err := p.Expect(n, "", token.BY); err != nil {
				return nil, err
			}
			tag, err := p.ParseStringLiteral()
			if err != nil {
				return nil, err
			}
			n.Add("rows_identified", tag)
		}
	} else {
		ex, err := p.ParseExportOptions()
		if err != nil {
			return nil, err
		}
		n.Add("export", ex)
	}

	if p.Match(n, "", token.IGNORE) {
		rows, err := number(p)
		if err != nil {
			return nil, err
		}
		n.Add("ignore_rows", rows)
		if !p.Match(n, "ignore_unit", token.LINES) {
			if err := p.Expect(n, "ignore_unit", token.ROWS); err != nil {
				return nil, err
			}
		}
	}

	if p.Match(n, "", token.LPAREN) {
		if !p.Check(token.RPAREN) {
			if err := list(p, n, "column", columnOrVar); err != nil {
				return nil, err
			}
		}
		if err := p.Expect(n, "", token.RPAREN); err != nil {
			return nil, err
		}
	}
	if p.Match(n, "", token.SET) {
		if err := p.ParseAssignments(n, "set"); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// columnOrVar parses a target column or a @user_variable.
func columnOrVar(p spi.ParserOps) (*cst.Node, error) {
	if p.Check(token.USER_VAR) {
		v := cst.New(cst.RuleUserVar)
		p.Consume(v, "name")
		return v, nil
	}
	col := cst.New(cst.RuleColumnRef)
	if !p.IsIdentifier(p.Token(), spi.IdentGeneral) {
		return nil, p.Unexpected("column name", "user variable")
	}
	p.Consume(col, "part")
	for parts := 1; parts < 3 && p.Check(token.DOT) && isWordToken(p.Peek()); parts++ {
		p.Consume(col, "")
		p.Consume(col, "part")
	}
	return col, nil
}

// ---------- Key Caches ----------
//
//	cache_index → CACHE INDEX table_index_list, ... IN cache
//	load_index  → LOAD INDEX INTO CACHE table_index_list [IGNORE LEAVES], ...
//	table_index_list → t [PARTITION ({p, ... | ALL})] [{INDEX|KEY} (idx, ...)]

func parseCacheIndex(p spi.ParserOps) (*cst.Node, error) {
	n := statement(p, cst.RuleCacheIndex)
	if !p.Match(n, "", token.INDEX) {
		if err := p.Expect(n, "", token.KEY); err != nil {
			return nil, err
		}
	}
	if err := list(p, n, "table", func(p spi.ParserOps) (*cst.Node, error) {
		return tableIndexList(p, false)
	}); err != nil {
		return nil, err
	}
	if err := p.Expect(n, "", token.IN); err != nil {
		return nil, err
	}
	cache, err := ident(p)
	if err != nil {
		return nil, err
	}
	n.Add("cache", cache)
	return n, nil
}

func parseLoadIndex(p spi.ParserOps) (*cst.Node, error) {
	n := statement(p, cst.RuleLoadIndex)
	p.Consume(n, "")
	if err := p.Expect(n, "", token.INTO); err != nil {
		return nil, err
	}
	if err := expectWords(p, n, "", "CACHE"); err != nil {
		return nil, err
	}
	if err := list(p, n, "table", func(p spi.ParserOps) (*cst.Node, error) {
		return tableIndexList(p, true)
	}); err != nil {
		return nil, err
	}
	return n, nil
}

func tableIndexList(p spi.ParserOps, leaves bool) (*cst.Node, error) {
	n := cst.New(cst.RuleTableIndexList)
	t, err := tableName(p)
	if err != nil {
		return nil, err
	}
	n.Add("table", t)

	if p.Match(n, "", token.PARTITION) {
		if err := p.Expect(n, "", token.LPAREN); err != nil {
			return nil, err
		}
		if !p.Match(n, "all", token.ALL) {
			if err := list(p, n, "partition", ident); err != nil {
				return nil, err
			}
		}
		if err := p.Expect(n, "", token.RPAREN); err != nil {
			return nil, err
		}
	}
	if p.Check(token.INDEX) || p.Check(token.KEY) {
		p.Consume(n, "")
		if err := parenList(p, n, "index", ident); err != nil {
			return nil, err
		}
	}
	if leaves && p.Check(token.IGNORE) && p.Peek().IsWord("LEAVES") {
		p.Consume(n, "ignore_leaves")
		p.Consume(n, "")
	}
	return n, nil
}
