package mysql

import (
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Table Maintenance ----------
//
//	analyze  → ANALYZE [binlog] TABLE t, ... [histogram]
//	check    → CHECK TABLE t, ... [option ...]
//	checksum → CHECKSUM TABLE t, ... [QUICK|EXTENDED]
//	optimize → OPTIMIZE [binlog] TABLE t, ...
//	repair   → REPAIR [binlog] TABLE t, ... [QUICK] [EXTENDED] [USE_FRM]

// maintenanceTables parses {TABLE|TABLES} t, ... into n.
func maintenanceTables(p spi.ParserOps, n *cst.Node) error {
	if err := expectWords(p, n, "", "TABLE", "TABLES"); err != nil {
		return err
	}
	return list(p, n, "table", tableName)
}

func parseAnalyze(p spi.ParserOps) (*cst.Node, error) {
	n := statement(p, cst.RuleAnalyzeTable)
	binlogOption(p, n)
	if err := maintenanceTables(p, n); err != nil {
		return nil, err
	}
	if p.CheckWords("UPDATE", "HISTOGRAM") || p.CheckWords("DROP", "HISTOGRAM") {
		h, err := parseHistogram(p)
		if err != nil {
			return nil, err
		}
		n.Add("histogram", h)
	}
	return n, nil
}

// parseHistogram parses the histogram clause of ANALYZE TABLE:
//
//	histogram → UPDATE HISTOGRAM ON col, ... [WITH n BUCKETS]
//	          | DROP HISTOGRAM ON col, ...
func parseHistogram(p spi.ParserOps) (*cst.Node, error) {
	h := cst.New(cst.RuleHistogram)
	p.Consume(h, "action")
	p.Consume(h, "")
	if err := p.Expect(h, "", token.ON); err != nil {
		return nil, err
	}
	if err := list(p, h, "column", ident); err != nil {
		return nil, err
	}
	if h.Child("action").Upper() == "UPDATE" && p.Match(h, "", token.WITH) {
		buckets, err := number(p)
		if err != nil {
			return nil, err
		}
		h.Add("buckets", buckets)
		if err := expectWords(p, h, "", "BUCKETS"); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// checkOptions are the options of CHECK TABLE.
var checkOptions = [][]string{
	{"FOR", "UPGRADE"}, {"QUICK"}, {"FAST"}, {"MEDIUM"}, {"EXTENDED"}, {"CHANGED"},
}

func parseCheck(p spi.ParserOps) (*cst.Node, error) {
	n := statement(p, cst.RuleCheckTable)
	if err := maintenanceTables(p, n); err != nil {
		return nil, err
	}
	for matchPhrase(p, n, "option", checkOptions) {
	}
	return n, nil
}

func parseChecksum(p spi.ParserOps) (*cst.Node, error) {
	n := statement(p, cst.RuleChecksumTable)
	if err := maintenanceTables(p, n); err != nil {
		return nil, err
	}
	matchWords(p, n, "option", "QUICK", "EXTENDED")
	return n, nil
}

func parseOptimize(p spi.ParserOps) (*cst.Node, error) {
	n := statement(p, cst.RuleOptimizeTable)
	binlogOption(p, n)
	if err := maintenanceTables(p, n); err != nil {
		return nil, err
	}
	return n, nil
}

func parseRepair(p spi.ParserOps) (*cst.Node, error) {
	n := statement(p, cst.RuleRepairTable)
	binlogOption(p, n)
	if err := maintenanceTables(p, n); err != nil {
		return nil, err
	}
	matchWords(p, n, "option", "QUICK")
	matchWords(p, n, "option", "EXTENDED")
	matchWords(p, n, "option", "USE_FRM")
	return n, nil
}
