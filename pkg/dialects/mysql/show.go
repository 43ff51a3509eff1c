package mysql

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- SHOW ----------
//
//	show → SHOW [GLOBAL|SESSION] {VARIABLES|STATUS} [filter]
//	     | SHOW [EXTENDED] [FULL] {TABLES|COLUMNS|FIELDS|INDEX|...} ...
//	     | SHOW CREATE object name
//	     | SHOW simple_words
//	filter → LIKE 'pattern' | WHERE expr

// simpleShows are the SHOW forms without arguments, longest first where
// they share a prefix.
var simpleShows = [][]string{
	{"STORAGE", "ENGINES"},
	{"ENGINES"},
	{"PLUGINS"},
	{"PRIVILEGES"},
	{"PROFILES"},
	{"MASTER", "STATUS"},
	{"MASTER", "LOGS"},
	{"BINARY", "LOG", "STATUS"},
	{"BINARY", "LOGS"},
	{"REPLICA", "STATUS"},
	{"SLAVE", "STATUS"},
	{"REPLICAS"},
	{"SLAVE", "HOSTS"},
}

func parseShow(p spi.ParserOps) (*cst.Node, error) {
	show := cst.New(cst.RuleShowSimple)
	p.Consume(show, "")

	switch {
	case p.CheckWord("GLOBAL") || p.CheckWord("SESSION"):
		p.Consume(show, "scope")
		return showVariables(p, show)
	case p.CheckWord("VARIABLES") || p.CheckWord("STATUS"):
		return showVariables(p, show)
	case p.CheckWord("DATABASES") || p.CheckWord("SCHEMAS"):
		show.Rule = cst.RuleShowDatabases
		p.Consume(show, "")
		return show, showFilter(p, show)
	case p.CheckWords("TABLE", "STATUS"):
		show.Rule = cst.RuleShowTableStatus
		p.Consume(show, "")
		p.Consume(show, "")
		return showFromFiltered(p, show)
	case p.CheckWord("CREATE"):
		return showCreate(p, show)
	case p.CheckWord("PROCESSLIST"):
		show.Rule = cst.RuleShowProcessList
		p.Consume(show, "")
		return show, nil
	case p.CheckWord("WARNINGS") || p.CheckWord("ERRORS") || p.CheckWord("COUNT"):
		return showDiagnostics(p, show)
	case p.CheckWord("EVENTS"):
		show.Rule = cst.RuleShowEvents
		p.Consume(show, "")
		return showFromFiltered(p, show)
	case p.CheckWords("CHARACTER", "SET"):
		show.Rule = cst.RuleShowCharset
		p.Consume(show, "")
		p.Consume(show, "")
		return show, showFilter(p, show)
	case p.CheckWord("CHARSET"):
		show.Rule = cst.RuleShowCharset
		p.Consume(show, "")
		return show, showFilter(p, show)
	case p.CheckWord("COLLATION"):
		show.Rule = cst.RuleShowCollation
		p.Consume(show, "")
		return show, showFilter(p, show)
	case p.CheckWord("GRANTS"):
		return showGrants(p, show)
	case p.CheckWords("OPEN", "TABLES"):
		show.Rule = cst.RuleShowOpenTables
		p.Consume(show, "")
		p.Consume(show, "")
		return showFromFiltered(p, show)
	case p.CheckWords("PROCEDURE", "STATUS") || p.CheckWords("FUNCTION", "STATUS"):
		show.Rule = cst.RuleShowRoutineStatus
		p.Consume(show, "kind")
		p.Consume(show, "")
		return show, showFilter(p, show)
	case p.CheckWords("BINLOG", "EVENTS") || p.CheckWords("RELAYLOG", "EVENTS"):
		return showBinlogEvents(p, show)
	}

	if show, ok, err := showModified(p, show); ok || err != nil {
		return show, err
	}

	for _, words := range simpleShows {
		if p.CheckWords(words...) {
			for range words {
				p.Consume(show, "what")
			}
			return show, nil
		}
	}
	return nil, p.Unexpected("SHOW target")
}

// showModified handles the forms taking EXTENDED and FULL modifiers:
// TABLES, COLUMNS|FIELDS, INDEX|INDEXES|KEYS, PROCESSLIST and TRIGGERS.
func showModified(p spi.ParserOps, show *cst.Node) (*cst.Node, bool, error) {
	mark := p.Mark()
	scratch := cst.New(show.Rule)
	extended := matchWords(p, scratch, "extended", "EXTENDED")
	full := matchWords(p, scratch, "full", "FULL")

	var err error
	switch {
	case p.CheckWord("TABLES"):
		scratch.Rule = cst.RuleShowTables
		p.Consume(scratch, "")
		_, err = showFromFiltered(p, scratch)
	case p.CheckWord("COLUMNS") || p.CheckWord("FIELDS"):
		scratch.Rule = cst.RuleShowColumns
		p.Consume(scratch, "")
		err = showOfTable(p, scratch)
		if err == nil {
			err = showFilter(p, scratch)
		}
	case !full && (p.CheckWord("INDEX") || p.CheckWord("INDEXES") || p.CheckWord("KEYS")):
		scratch.Rule = cst.RuleShowIndex
		p.Consume(scratch, "")
		err = showOfTable(p, scratch)
		if err == nil && p.Check(token.WHERE) {
			var w *cst.Node
			if w, err = p.ParseWhere(); err == nil {
				scratch.Add("where", w)
			}
		}
	case !extended && p.CheckWord("PROCESSLIST"):
		scratch.Rule = cst.RuleShowProcessList
		p.Consume(scratch, "")
	case !extended && p.CheckWord("TRIGGERS"):
		scratch.Rule = cst.RuleShowTriggers
		p.Consume(scratch, "")
		_, err = showFromFiltered(p, scratch)
	default:
		p.Reset(mark)
		return show, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	for _, c := range scratch.Children {
		show.Add(c.Label, c)
	}
	show.Rule = scratch.Rule
	return show, true, nil
}

func showVariables(p spi.ParserOps, show *cst.Node) (*cst.Node, error) {
	switch {
	case p.CheckWord("VARIABLES"):
		show.Rule = cst.RuleShowVariables
	case p.CheckWord("STATUS"):
		show.Rule = cst.RuleShowStatus
	default:
		return nil, p.Unexpected("VARIABLES", "STATUS")
	}
	p.Consume(show, "")
	return show, showFilter(p, show)
}

// showFilter parses the optional LIKE 'pattern' or WHERE expr suffix.
func showFilter(p spi.ParserOps, show *cst.Node) error {
	f := cst.New(cst.RuleShowFilter)
	switch {
	case p.Check(token.LIKE):
		p.Consume(f, "")
		pattern, err := p.ParseStringLiteral()
		if err != nil {
			return err
		}
		f.Add("like", pattern)
	case p.Check(token.WHERE):
		p.Consume(f, "")
		cond, err := p.ParseExpression()
		if err != nil {
			return err
		}
		f.Add("where", cond)
	default:
		return nil
	}
	show.Add("filter", f)
	return nil
}

// showFrom parses the optional {FROM|IN} schema.
func showFrom(p spi.ParserOps, show *cst.Node) error {
	if !p.Check(token.FROM) && !p.Check(token.IN) {
		return nil
	}
	p.Consume(show, "")
	db, err := ident(p)
	if err != nil {
		return err
	}
	show.Add("from", db)
	return nil
}

func showFromFiltered(p spi.ParserOps, show *cst.Node) (*cst.Node, error) {
	if err := showFrom(p, show); err != nil {
		return nil, err
	}
	return show, showFilter(p, show)
}

// showOfTable parses {FROM|IN} table [{FROM|IN} schema].
func showOfTable(p spi.ParserOps, show *cst.Node) error {
	if !p.Check(token.FROM) && !p.Check(token.IN) {
		return p.Unexpected("FROM", "IN")
	}
	p.Consume(show, "")
	t, err := tableName(p)
	if err != nil {
		return err
	}
	show.Add("table", t)
	return showFrom(p, show)
}

// createObjects are the object kinds of SHOW CREATE.
var createObjects = []string{
	"TABLE", "VIEW", "DATABASE", "SCHEMA", "PROCEDURE", "FUNCTION", "TRIGGER", "EVENT", "USER",
}

func showCreate(p spi.ParserOps, show *cst.Node) (*cst.Node, error) {
	show.Rule = cst.RuleShowCreate
	p.Consume(show, "")
	if err := expectWords(p, show, "object", createObjects...); err != nil {
		return nil, err
	}
	object := show.Child("object").Upper()

	if object == "USER" {
		u, err := userSpec(p)
		if err != nil {
			return nil, err
		}
		show.Add("user", u)
		return show, nil
	}
	if (object == "DATABASE" || object == "SCHEMA") && p.CheckWords("IF", "NOT", "EXISTS") {
		p.Consume(show, "if_not_exists")
		p.Consume(show, "")
		p.Consume(show, "")
	}
	name, err := tableName(p)
	if err != nil {
		return nil, err
	}
	show.Add("name", name)
	return show, nil
}

// showDiagnostics parses WARNINGS|ERRORS [LIMIT ...] and
// COUNT(*) WARNINGS|ERRORS.
func showDiagnostics(p spi.ParserOps, show *cst.Node) (*cst.Node, error) {
	show.Rule = cst.RuleShowDiagnostics
	if p.CheckWord("COUNT") {
		p.Consume(show, "count")
		if err := p.Expect(show, "", token.LPAREN); err != nil {
			return nil, err
		}
		if err := p.Expect(show, "", token.STAR); err != nil {
			return nil, err
		}
		if err := p.Expect(show, "", token.RPAREN); err != nil {
			return nil, err
		}
		return show, expectWords(p, show, "kind", "WARNINGS", "ERRORS")
	}
	p.Consume(show, "kind")
	if p.Check(token.LIMIT) {
		lim, err := p.ParseLimit()
		if err != nil {
			return nil, err
		}
		show.Add("limit", lim)
	}
	return show, nil
}

// showGrants parses GRANTS [FOR user [USING role, ...]].
func showGrants(p spi.ParserOps, show *cst.Node) (*cst.Node, error) {
	show.Rule = cst.RuleShowGrants
	p.Consume(show, "")
	if !p.Match(show, "", token.FOR) {
		return show, nil
	}
	u, err := userSpec(p)
	if err != nil {
		return nil, err
	}
	show.Add("for", u)
	if p.Match(show, "", token.USING) {
		if err := list(p, show, "using", userSpec); err != nil {
			return nil, err
		}
	}
	return show, nil
}

// showBinlogEvents parses {BINLOG|RELAYLOG} EVENTS [IN 'log'] [FROM pos] [LIMIT ...].
func showBinlogEvents(p spi.ParserOps, show *cst.Node) (*cst.Node, error) {
	show.Rule = cst.RuleShowBinlogEvents
	p.Consume(show, "kind")
	p.Consume(show, "")
	if p.Match(show, "", token.IN) {
		log, err := p.ParseStringLiteral()
		if err != nil {
			return nil, err
		}
		show.Add("in", log)
	}
	if p.Match(show, "", token.FROM) {
		pos, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		show.Add("from", pos)
	}
	if p.Check(token.LIMIT) {
		lim, err := p.ParseLimit()
		if err != nil {
			return nil, err
		}
		show.Add("limit", lim)
	}
	return show, nil
}
