// Package builder turns the concrete syntax tree produced by pkg/parser into
// the typed statement model of pkg/core.
//
// Every grammar rule has exactly one build function, held in dispatch tables
// keyed by cst.Rule. The build is a single depth-first pass over the tree and
// a pure function of it: the same tree always yields the same statement.
//
// The parser accepts some shapes that are syntactically valid but make no
// sense as statements (a window frame ending before it starts, INSERT rows of
// different widths, a scope on a user variable). The builder rejects those
// with a *BuildError pointing at the offending node.
package builder

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/cst"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Dialect is the part of a dialect the builder consults. *dialect.Dialect
// implements it.
type Dialect interface {
	// FunctionKind classifies a function by name.
	FunctionKind(name string) core.FuncKind
	// BinaryOp maps an infix operator token to its operator.
	BinaryOp(t token.TokenType) (core.BinaryOp, bool)
}

// Build converts a statement tree into a core statement.
func Build(n *cst.Node, d Dialect) (core.Stmt, error) {
	if n == nil {
		return nil, &BuildError{Message: "empty tree"}
	}
	b := &builder{d: d}
	stmt := b.stmt(n)
	if b.err != nil {
		return nil, b.err
	}
	return stmt, nil
}

// BuildScript converts a script tree (see parser.ParseScript) into its
// statements. Parameter markers are numbered per statement.
func BuildScript(n *cst.Node, d Dialect) ([]core.Stmt, error) {
	if n == nil || n.Rule != cst.RuleScript {
		return nil, &BuildError{Message: "expected a script"}
	}
	stmts := make([]core.Stmt, 0, len(n.Children))
	for _, c := range n.All("stmt") {
		stmt, err := Build(c, d)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// builder carries the state of one statement build. The first error wins;
// build functions return nil once it is set and callers need not check.
type builder struct {
	d      Dialect
	params int
	err    error
}

func (b *builder) fail(n *cst.Node, format string, args ...any) {
	if b.err != nil {
		return
	}
	b.err = newBuildError(n, format, args...)
}

func (b *builder) failed() bool {
	return b.err != nil
}

// ---------- Dispatch ----------

type (
	stmtFunc  func(*builder, *cst.Node) core.Stmt
	exprFunc  func(*builder, *cst.Node) core.Expr
	tableFunc func(*builder, *cst.Node) core.TableRef
	queryFunc func(*builder, *cst.Node) core.QueryExpr
)

// The tables are filled in init: their functions reach back into them.
var (
	stmtBuilders  map[cst.Rule]stmtFunc
	exprBuilders  map[cst.Rule]exprFunc
	tableBuilders map[cst.Rule]tableFunc
	queryBuilders map[cst.Rule]queryFunc
)

// partBuilders lists the rules built in place by their parent's build
// function, with the function that owns them.
var partBuilders = map[cst.Rule]string{
	cst.RuleToken:              "leaf",
	cst.RuleScript:             "BuildScript",
	cst.RuleWith:               "withClause",
	cst.RuleCTE:                "withClause",
	cst.RuleSelectItem:         "selectItem",
	cst.RuleFromClause:         "buildQuerySpec",
	cst.RuleWhereClause:        "where",
	cst.RuleGroupBy:            "buildQuerySpec",
	cst.RuleHaving:             "buildQuerySpec",
	cst.RuleWindowClause:       "namedWindows",
	cst.RuleNamedWindow:        "namedWindows",
	cst.RuleOrderBy:            "orderBy",
	cst.RuleOrderItem:          "orderBy",
	cst.RuleLimit:              "limit",
	cst.RuleLock:               "lock",
	cst.RuleInto:               "into",
	cst.RuleExportOptions:      "exportOptions",
	cst.RuleQualifiedName:      "qualifiedName",
	cst.RuleIndexHint:          "indexHint",
	cst.RuleWhen:               "buildCase",
	cst.RuleDataType:           "dataType",
	cst.RuleWindowSpec:         "windowSpec",
	cst.RuleFrame:              "frame",
	cst.RuleFrameBound:         "frameBound",
	cst.RuleIdentList:          "words",
	cst.RuleAssignment:         "assignments",
	cst.RuleShowFilter:         "showFilter",
	cst.RuleUserSpec:           "userSpec",
	cst.RuleVariableAssignment: "variableAssignment",
	cst.RuleHistogram:          "buildAnalyzeTable",
	cst.RuleTableIndexList:     "tableIndexList",
	cst.RuleVCPU:               "vcpus",
}

func init() {
	stmtBuilders = map[cst.Rule]stmtFunc{
		cst.RuleSelectStmt: func(b *builder, n *cst.Node) core.Stmt { return b.selectStmt(n) },

		cst.RuleInsert:       buildInsert,
		cst.RuleReplace:      buildReplace,
		cst.RuleUpdate:       buildUpdate,
		cst.RuleDelete:       buildDelete,
		cst.RuleCall:         buildCall,
		cst.RuleDo:           buildDo,
		cst.RuleHandlerOpen:  buildHandlerOpen,
		cst.RuleHandlerRead:  buildHandlerRead,
		cst.RuleHandlerClose: buildHandlerClose,
		cst.RuleLoadData:     buildLoadData,
		cst.RuleLoadXML:      buildLoadXML,
		cst.RuleImportTable:  buildImportTable,

		cst.RuleUse:               buildUse,
		cst.RuleHelp:              buildHelp,
		cst.RuleExplain:           buildExplain,
		cst.RuleDescribe:          buildDescribe,
		cst.RuleShowDatabases:     buildShowDatabases,
		cst.RuleShowTables:        buildShowTables,
		cst.RuleShowTableStatus:   buildShowTableStatus,
		cst.RuleShowColumns:       buildShowColumns,
		cst.RuleShowIndex:         buildShowIndex,
		cst.RuleShowCreate:        buildShowCreate,
		cst.RuleShowVariables:     buildShowVariables,
		cst.RuleShowStatus:        buildShowStatus,
		cst.RuleShowProcessList:   buildShowProcessList,
		cst.RuleShowDiagnostics:   buildShowDiagnostics,
		cst.RuleShowTriggers:      buildShowTriggers,
		cst.RuleShowEvents:        buildShowEvents,
		cst.RuleShowCharset:       buildShowCharset,
		cst.RuleShowCollation:     buildShowCollation,
		cst.RuleShowGrants:        buildShowGrants,
		cst.RuleShowOpenTables:    buildShowOpenTables,
		cst.RuleShowRoutineStatus: buildShowRoutineStatus,
		cst.RuleShowBinlogEvents:  buildShowBinlogEvents,
		cst.RuleShowSimple:        buildShowSimple,

		cst.RuleSetVariable:      buildSetVariable,
		cst.RuleSetNames:         buildSetNames,
		cst.RuleSetCharset:       buildSetCharset,
		cst.RuleSetResourceGroup: buildSetResourceGroup,

		cst.RuleAnalyzeTable:  buildAnalyzeTable,
		cst.RuleCheckTable:    buildCheckTable,
		cst.RuleChecksumTable: buildChecksumTable,
		cst.RuleOptimizeTable: buildOptimizeTable,
		cst.RuleRepairTable:   buildRepairTable,

		cst.RuleFlush:              buildFlush,
		cst.RuleKill:               buildKill,
		cst.RuleCacheIndex:         buildCacheIndex,
		cst.RuleLoadIndex:          buildLoadIndex,
		cst.RuleReset:              buildReset,
		cst.RuleResetPersist:       buildResetPersist,
		cst.RuleRestart:            buildRestart,
		cst.RuleShutdown:           buildShutdown,
		cst.RuleClone:              buildClone,
		cst.RuleInstallComponent:   buildInstallComponent,
		cst.RuleInstallPlugin:      buildInstallPlugin,
		cst.RuleUninstallComponent: buildUninstallComponent,
		cst.RuleUninstallPlugin:    buildUninstallPlugin,
		cst.RuleBinlog:             buildBinlog,

		cst.RuleCreateResourceGroup: buildCreateResourceGroup,
		cst.RuleAlterResourceGroup:  buildAlterResourceGroup,
		cst.RuleDropResourceGroup:   buildDropResourceGroup,
	}

	exprBuilders = map[cst.Rule]exprFunc{
		cst.RuleBinary:      buildBinary,
		cst.RuleUnary:       buildUnary,
		cst.RuleLiteral:     func(b *builder, n *cst.Node) core.Expr { return b.literal(n) },
		cst.RuleColumnRef:   func(b *builder, n *cst.Node) core.Expr { return b.columnRef(n) },
		cst.RuleParam:       buildParam,
		cst.RuleUserVar:     buildUserVar,
		cst.RuleSysVar:      func(b *builder, n *cst.Node) core.Expr { return b.sysVar(n, nil) },
		cst.RuleFuncCall:    buildFuncCall,
		cst.RuleGroupConcat: buildGroupConcat,
		cst.RuleCast:        buildCast,
		cst.RuleConvert:     buildConvert,
		cst.RuleExtract:     buildExtract,
		cst.RuleTrim:        buildTrim,
		cst.RuleSubstring:   buildSubstring,
		cst.RulePosition:    buildPosition,
		cst.RuleChar:        buildChar,
		cst.RuleCase:        buildCase,
		cst.RuleInterval:    buildInterval,
		cst.RuleSubquery:    buildSubquery,
		cst.RuleExists:      buildExists,
		cst.RuleIn:          buildIn,
		cst.RuleBetween:     buildBetween,
		cst.RuleLike:        buildLike,
		cst.RuleRegexp:      buildRegexp,
		cst.RuleIs:          buildIs,
		cst.RuleCollate:     buildCollate,
		cst.RuleMatch:       buildMatch,
		cst.RuleRow:         func(b *builder, n *cst.Node) core.Expr { return b.row(n) },
		cst.RuleParen:       buildParen,
		cst.RuleDefault:     buildDefault,
		cst.RuleStar:        buildMisplacedStar,
		cst.RuleSetValue:    buildSetValue,
		cst.RuleExprList:    buildExprList,
	}

	tableBuilders = map[cst.Rule]tableFunc{
		cst.RuleTableName:     func(b *builder, n *cst.Node) core.TableRef { return b.tableName(n) },
		cst.RuleDerivedTable:  buildDerivedTable,
		cst.RuleJoin:          buildJoin,
		cst.RuleParenTableRef: buildParenTableRef,
	}

	queryBuilders = map[cst.Rule]queryFunc{
		cst.RuleQuerySpec:    buildQuerySpec,
		cst.RuleSetOperation: buildSetOperation,
		cst.RuleParenQuery:   buildParenQuery,
		cst.RuleTableQuery:   buildTableQuery,
		cst.RuleValuesQuery:  buildValuesQuery,
	}
}

func (b *builder) stmt(n *cst.Node) core.Stmt {
	if n == nil || b.failed() {
		return nil
	}
	fn, ok := stmtBuilders[n.Rule]
	if !ok {
		b.fail(n, "%s is not a statement", n.Rule)
		return nil
	}
	s := fn(b, n)
	if b.failed() {
		return nil
	}
	return s
}

func (b *builder) expr(n *cst.Node) core.Expr {
	if n == nil || b.failed() {
		return nil
	}
	fn, ok := exprBuilders[n.Rule]
	if !ok {
		b.fail(n, "%s is not an expression", n.Rule)
		return nil
	}
	e := fn(b, n)
	if b.failed() {
		return nil
	}
	return e
}

func (b *builder) exprs(nodes []*cst.Node) []core.Expr {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]core.Expr, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.expr(n))
	}
	return out
}

func (b *builder) tableRef(n *cst.Node) core.TableRef {
	if n == nil || b.failed() {
		return nil
	}
	fn, ok := tableBuilders[n.Rule]
	if !ok {
		b.fail(n, "%s is not a table reference", n.Rule)
		return nil
	}
	t := fn(b, n)
	if b.failed() {
		return nil
	}
	return t
}

func (b *builder) tableRefs(nodes []*cst.Node) []core.TableRef {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]core.TableRef, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.tableRef(n))
	}
	return out
}

func (b *builder) queryExpr(n *cst.Node) core.QueryExpr {
	if n == nil || b.failed() {
		return nil
	}
	fn, ok := queryBuilders[n.Rule]
	if !ok {
		b.fail(n, "%s is not a query", n.Rule)
		return nil
	}
	q := fn(b, n)
	if b.failed() {
		return nil
	}
	return q
}

// ---------- Leaves ----------

func info(n *cst.Node) core.NodeInfo {
	return core.NodeInfo{Span: n.Span}
}

// ident converts an identifier leaf. Keywords used as names arrive here too.
func (b *builder) ident(n *cst.Node) *core.Identifier {
	if n == nil {
		return nil
	}
	return &core.Identifier{NodeInfo: info(n), Value: n.Text(), Quoted: n.Token.Quoted}
}

func (b *builder) idents(nodes []*cst.Node) []*core.Identifier {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*core.Identifier, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.ident(n))
	}
	return out
}

// str returns the decoded text of a string literal node.
func (b *builder) str(n *cst.Node) string {
	if n == nil {
		return ""
	}
	if n.IsLeaf() {
		return n.Text()
	}
	var s string
	for _, part := range n.All("part") {
		s += part.Text()
	}
	return s
}

func (b *builder) strs(nodes []*cst.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.str(n))
	}
	return out
}

// words returns the upper-cased words of an ident_list phrase.
func (b *builder) words(n *cst.Node) string {
	if n == nil {
		return ""
	}
	if n.IsLeaf() {
		return n.Upper()
	}
	return n.Words("word")
}

func (b *builder) phrases(nodes []*cst.Node) []string {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.words(n))
	}
	return out
}

// hasToken reports whether n has a direct leaf of type t.
func hasToken(n *cst.Node, t token.TokenType) bool {
	for _, c := range n.Children {
		if c.IsLeaf() && c.Token.Type == t {
			return true
		}
	}
	return false
}

// childIndex returns the position of the first child labelled label, or -1.
func childIndex(n *cst.Node, label string) int {
	for i, c := range n.Children {
		if c.Label == label {
			return i
		}
	}
	return -1
}

func boolPtr(v bool) *bool {
	return &v
}

func strPtr(v string) *string {
	return &v
}
