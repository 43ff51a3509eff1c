package mysql

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- EXPLAIN / DESCRIBE ----------
//
//	explain  → {EXPLAIN|DESCRIBE|DESC} [ANALYZE] [FORMAT = name] statement
//	         | {EXPLAIN|DESCRIBE|DESC} FOR CONNECTION id
//	describe → {EXPLAIN|DESCRIBE|DESC} table [column | 'pattern']

// explainable lists the tokens that start a statement EXPLAIN accepts.
var explainable = map[token.TokenType]bool{
	token.SELECT: true, token.WITH: true, token.TABLE: true, token.VALUES: true,
	token.LPAREN: true, token.INSERT: true, token.REPLACE: true, token.UPDATE: true,
	token.DELETE: true,
}

func parseExplain(p spi.ParserOps) (*cst.Node, error) {
	next := p.Peek()
	isExplain := explainable[next.Type] || next.IsWord("ANALYZE") || next.IsWord("FORMAT") ||
		(next.Is(token.FOR) && p.PeekN(2).IsWord("CONNECTION"))
	if !isExplain {
		return parseDescribe(p)
	}

	ex := cst.New(cst.RuleExplain)
	p.Consume(ex, "keyword")
	if p.Check(token.FOR) {
		p.Consume(ex, "")
		p.Consume(ex, "")
		id, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		ex.Add("connection", id)
		return ex, nil
	}
	matchWords(p, ex, "analyze", "ANALYZE")
	if p.CheckWord("FORMAT") && p.Peek().Is(token.EQ) {
		p.Consume(ex, "")
		p.Consume(ex, "")
		tok := p.Token()
		if !isWordToken(tok) && tok.Type != token.STRING {
			return nil, p.Unexpected("format name")
		}
		p.Consume(ex, "format")
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	ex.Add("stmt", stmt)
	return ex, nil
}

func parseDescribe(p spi.ParserOps) (*cst.Node, error) {
	d := cst.New(cst.RuleDescribe)
	p.Consume(d, "keyword")
	t, err := tableName(p)
	if err != nil {
		return nil, err
	}
	d.Add("table", t)
	switch {
	case p.Check(token.STRING):
		pattern, err := p.ParseStringLiteral()
		if err != nil {
			return nil, err
		}
		d.Add("pattern", pattern)
	case p.IsIdentifier(p.Token(), spi.IdentGeneral):
		p.Consume(d, "column")
	}
	return d, nil
}

// ---------- USE / HELP / DO / BINLOG ----------

func parseUse(p spi.ParserOps) (*cst.Node, error) {
	use := statement(p, cst.RuleUse)
	db, err := ident(p)
	if err != nil {
		return nil, err
	}
	use.Add("schema", db)
	return use, nil
}

func parseHelp(p spi.ParserOps) (*cst.Node, error) {
	help := statement(p, cst.RuleHelp)
	topic, err := p.ParseStringLiteral()
	if err != nil {
		return nil, err
	}
	help.Add("topic", topic)
	return help, nil
}

func parseDo(p spi.ParserOps) (*cst.Node, error) {
	do := statement(p, cst.RuleDo)
	if err := p.ParseExpressionList(do, "expr"); err != nil {
		return nil, err
	}
	return do, nil
}

func parseBinlog(p spi.ParserOps) (*cst.Node, error) {
	b := statement(p, cst.RuleBinlog)
	v, err := p.ParseStringLiteral()
	if err != nil {
		return nil, err
	}
	b.Add("value", v)
	return b, nil
}

// ---------- KILL / RESTART / SHUTDOWN ----------

func parseKill(p spi.ParserOps) (*cst.Node, error) {
	k := statement(p, cst.RuleKill)
	matchWords(p, k, "kind", "CONNECTION", "QUERY")
	id, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	k.Add("id", id)
	return k, nil
}

func parseRestart(p spi.ParserOps) (*cst.Node, error) {
	return statement(p, cst.RuleRestart), nil
}

func parseShutdown(p spi.ParserOps) (*cst.Node, error) {
	return statement(p, cst.RuleShutdown), nil
}

// ---------- FLUSH / RESET ----------

// flushOptions are the FLUSH targets other than TABLES.
var flushOptions = [][]string{
	{"BINARY", "LOGS"}, {"ENGINE", "LOGS"}, {"ERROR", "LOGS"}, {"GENERAL", "LOGS"},
	{"RELAY", "LOGS"}, {"SLOW", "LOGS"}, {"LOGS"}, {"HOSTS"}, {"PRIVILEGES"},
	{"OPTIMIZER_COSTS"}, {"STATUS"}, {"USER_RESOURCES"},
}

// parseFlush parses FLUSH:
//
//	flush → FLUSH [NO_WRITE_TO_BINLOG|LOCAL]
//	        ( option, ...
//	        | {TABLES|TABLE} [t, ...] [WITH READ LOCK | FOR EXPORT] )
func parseFlush(p spi.ParserOps) (*cst.Node, error) {
	f := statement(p, cst.RuleFlush)
	binlogOption(p, f)

	if matchWords(p, f, "tables", "TABLES", "TABLE") {
		if p.IsIdentifier(p.Token(), spi.IdentGeneral) {
			if err := list(p, f, "table", tableName); err != nil {
				return nil, err
			}
		}
		switch {
		case p.Check(token.WITH) && p.Peek().IsWord("READ"):
			p.Consume(f, "read_lock")
			p.Consume(f, "")
			if err := p.Expect(f, "", token.LOCK); err != nil {
				return nil, err
			}
		case p.Check(token.FOR) && p.Peek().IsWord("EXPORT"):
			p.Consume(f, "export")
			p.Consume(f, "")
		}
		return f, nil
	}

	for {
		if !matchPhrase(p, f, "option", flushOptions) {
			return nil, p.Unexpected("flush option")
		}
		if !p.Match(f, "", token.COMMA) {
			return f, nil
		}
	}
}

// resetOptions are the targets of RESET.
var resetOptions = [][]string{
	{"MASTER"}, {"REPLICA", "ALL"}, {"REPLICA"}, {"SLAVE", "ALL"}, {"SLAVE"},
	{"QUERY", "CACHE"}, {"BINARY", "LOGS", "AND", "GTIDS"},
}

// parseReset parses RESET and RESET PERSIST:
//
//	reset → RESET PERSIST [[IF EXISTS] name] | RESET option, ...
func parseReset(p spi.ParserOps) (*cst.Node, error) {
	if p.Peek().IsWord("PERSIST") {
		r := statement(p, cst.RuleResetPersist)
		p.Consume(r, "")
		if p.CheckWords("IF", "EXISTS") {
			p.Consume(r, "if_exists")
			p.Consume(r, "")
		}
		if p.IsIdentifier(p.Token(), spi.IdentGeneral) {
			p.Consume(r, "name")
		}
		return r, nil
	}

	r := statement(p, cst.RuleReset)
	for {
		if !matchPhrase(p, r, "option", resetOptions) {
			return nil, p.Unexpected("reset option")
		}
		if !p.Match(r, "", token.COMMA) {
			return r, nil
		}
	}
}

// ---------- CLONE ----------
//
//	clone → CLONE LOCAL DATA DIRECTORY [=] 'dir'
//	      | CLONE INSTANCE FROM user@host:port IDENTIFIED BY 'password'
//	        [DATA DIRECTORY [=] 'dir'] [REQUIRE [NO] SSL]

func parseClone(p spi.ParserOps) (*cst.Node, error) {
	c := statement(p, cst.RuleClone)
	if matchWords(p, c, "local", "LOCAL") {
		if err := cloneDirectory(p, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	if err := expectWords(p, c, "", "INSTANCE"); err != nil {
		return nil, err
	}
	if err := p.Expect(c, "", token.FROM); err != nil {
		return nil, err
	}
	u, err := userSpec(p)
	if err != nil {
		return nil, err
	}
	c.Add("user", u)
	if err := p.Expect(c, "", token.COLON); err != nil {
		return nil, err
	}
	port, err := number(p)
	if err != nil {
		return nil, err
	}
	c.Add("port", port)
	if err := expectWords(p, c, "", "IDENTIFIED"); err != nil {
		return nil, err
	}
	if err := p.Expect(c, "", token.BY); err != nil {
		return nil, err
	}
	pw, err := p.ParseStringLiteral()
	if err != nil {
		return nil, err
	}
	c.Add("password", pw)

	if p.CheckWord("DATA") {
		if err := cloneDirectory(p, c); err != nil {
			return nil, err
		}
	}
	if matchWords(p, c, "", "REQUIRE") {
		matchWords(p, c, "no", "NO")
		if err := expectWords(p, c, "ssl", "SSL"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func cloneDirectory(p spi.ParserOps, c *cst.Node) error {
	if err := expectWords(p, c, "", "DATA"); err != nil {
		return err
	}
	if err := expectWords(p, c, "", "DIRECTORY"); err != nil {
		return err
	}
	optionalEquals(p, c)
	dir, err := p.ParseStringLiteral()
	if err != nil {
		return err
	}
	c.Add("directory", dir)
	return nil
}

// ---------- INSTALL / UNINSTALL ----------

func parseInstall(p spi.ParserOps) (*cst.Node, error) {
	if p.Peek().IsWord("COMPONENT") {
		n := statement(p, cst.RuleInstallComponent)
		p.Consume(n, "")
		return n, list(p, n, "component", stringLit)
	}
	n := statement(p, cst.RuleInstallPlugin)
	if err := expectWords(p, n, "", "PLUGIN"); err != nil {
		return nil, err
	}
	name, err := ident(p)
	if err != nil {
		return nil, err
	}
	n.Add("name", name)
	if err := expectWords(p, n, "", "SONAME"); err != nil {
		return nil, err
	}
	lib, err := p.ParseStringLiteral()
	if err != nil {
		return nil, err
	}
	n.Add("soname", lib)
	return n, nil
}

func parseUninstall(p spi.ParserOps) (*cst.Node, error) {
	if p.Peek().IsWord("COMPONENT") {
		n := statement(p, cst.RuleUninstallComponent)
		p.Consume(n, "")
		return n, list(p, n, "component", stringLit)
	}
	n := statement(p, cst.RuleUninstallPlugin)
	if err := expectWords(p, n, "", "PLUGIN"); err != nil {
		return nil, err
	}
	name, err := ident(p)
	if err != nil {
		return nil, err
	}
	n.Add("name", name)
	return n, nil
}

// ---------- IMPORT TABLE ----------

func parseImport(p spi.ParserOps) (*cst.Node, error) {
	n := statement(p, cst.RuleImportTable)
	if err := p.Expect(n, "", token.TABLE); err != nil {
		return nil, err
	}
	if err := p.Expect(n, "", token.FROM); err != nil {
		return nil, err
	}
	if err := list(p, n, "file", stringLit); err != nil {
		return nil, err
	}
	return n, nil
}
