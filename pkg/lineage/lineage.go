// Package lineage extracts the tables a statement touches and, for queries,
// the source columns behind every output column.
//
// Extraction works on the built AST, so it supports every statement and
// dialect the parser does. Tables are reported both as occurrences in source
// order (with their spans, for rewriters) and as deduplicated read and write
// sets (for routing decisions).
package lineage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// TransformType describes how source columns are transformed.
type TransformType string

const (
	// TransformDirect means the column is a direct copy (no transformation).
	TransformDirect TransformType = ""
	// TransformExpression means the column is derived from an expression.
	TransformExpression TransformType = "EXPR"
)

// Access says whether a table occurrence is read or modified.
type Access int

// Access constants.
const (
	AccessRead Access = iota
	AccessWrite
)

func (a Access) String() string {
	if a == AccessWrite {
		return "write"
	}
	return "read"
}

// Table is one occurrence of a physical table in a statement.
type Table struct {
	Schema string
	Name   string
	Alias  string
	Access Access
	Span   token.Span
}

// QualifiedName returns schema.name or name.
func (t Table) QualifiedName() string {
	if t.Schema != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}

// SourceColumn represents a source column in the lineage.
type SourceColumn struct {
	Table  string // Source table name (may be qualified: schema.table); empty when ambiguous
	Column string // Column name, or * for an unexpanded star
}

// ColumnLineage describes the lineage of a single output column.
type ColumnLineage struct {
	Name      string         // Output column name
	Sources   []SourceColumn // Source columns this output derives from
	Transform TransformType  // Type of transformation applied
	Function  string         // Function name (for aggregates/window functions)
}

// StatementLineage describes the tables and columns of one statement.
type StatementLineage struct {
	Tables  []Table          // Physical table occurrences in source order
	Sources []string         // Tables read (deduplicated, sorted)
	Targets []string         // Tables modified (deduplicated, sorted)
	Columns []*ColumnLineage // Output columns of a query; nil for other statements
}

// Schema lists the columns of known tables, keyed by table name or
// schema.table. It is optional and only used to expand stars.
type Schema map[string][]string

// Options configures the extraction.
type Options struct {
	Schema Schema
}

// Extract extracts the lineage of a statement. Names are matched using the
// identifier rules of d; a nil d matches case-insensitively.
func Extract(stmt core.Stmt, d *dialect.Dialect) *StatementLineage {
	return ExtractWithOptions(stmt, d, Options{})
}

// ExtractWithOptions extracts lineage with full configuration options.
func ExtractWithOptions(stmt core.Stmt, d *dialect.Dialect, opts Options) *StatementLineage {
	e := &extractor{
		dialect: d,
		schema:  opts.Schema,
		reads:   make(map[string]string),
		writes:  make(map[string]string),
	}
	cols := e.statement(stmt)
	return &StatementLineage{
		Tables:  e.tables,
		Sources: sortedValues(e.reads),
		Targets: sortedValues(e.writes),
		Columns: cols,
	}
}

// extractor walks the AST to extract lineage information.
type extractor struct {
	dialect *dialect.Dialect
	schema  Schema
	tables  []Table
	reads   map[string]string // normalized name -> name as first written
	writes  map[string]string
}

func (e *extractor) normalize(name string) string {
	if e.dialect == nil {
		return strings.ToLower(name)
	}
	return e.dialect.NormalizeName(name)
}

// addTable records a physical table occurrence and returns its index.
func (e *extractor) addTable(t *core.TableName, access Access) int {
	tbl := Table{
		Schema: t.Schema.Name(),
		Name:   t.Name.Name(),
		Alias:  t.Alias.Name(),
		Access: access,
		Span:   core.SpanOf(t),
	}
	e.tables = append(e.tables, tbl)
	e.record(tbl.QualifiedName(), access)
	return len(e.tables) - 1
}

func (e *extractor) record(name string, access Access) {
	set := e.reads
	if access == AccessWrite {
		set = e.writes
	}
	key := e.normalize(name)
	if _, ok := set[key]; !ok {
		set[key] = name
	}
}

// markWritten turns a read occurrence into the target of a modification.
func (e *extractor) markWritten(idx int) {
	e.tables[idx].Access = AccessWrite
	e.record(e.tables[idx].QualifiedName(), AccessWrite)
}

func (e *extractor) statement(stmt core.Stmt) []*ColumnLineage {
	root := newScope(nil)

	switch s := stmt.(type) {
	case *core.SelectStmt:
		return e.query(s, root)

	case *core.InsertStmt:
		e.insert(&s.InsertBody, root)
		sc := e.targetScope(s.Table, root)
		e.assignments(s.OnDuplicate, sc)
	case *core.ReplaceStmt:
		e.insert(&s.InsertBody, root)

	case *core.UpdateStmt:
		sc := e.with(s.With, root)
		sc = newScope(sc)
		for _, ref := range s.Tables {
			e.tableRef(ref, sc)
		}
		for _, a := range s.Set {
			if idx, ok := sc.occurrence(e, a.Column.Table.Name()); ok {
				e.markWritten(idx)
			}
			e.visit(a.Value, sc)
		}
		e.visit(s.Where, sc)
		e.visitOrderBy(s.OrderBy, sc)

	case *core.DeleteStmt:
		sc := e.with(s.With, root)
		sc = newScope(sc)
		for _, ref := range s.From {
			e.tableRef(ref, sc)
		}
		if s.Form == core.DeleteSingle {
			if idx, ok := sc.occurrence(e, ""); ok {
				e.markWritten(idx)
			}
		}
		for _, t := range s.Targets {
			if idx, ok := sc.occurrence(e, t.Name.Name()); ok {
				e.markWritten(idx)
			}
		}
		e.visit(s.Where, sc)
		e.visitOrderBy(s.OrderBy, sc)

	case *core.LoadDataStmt:
		e.load(&s.LoadBody, root)
	case *core.LoadXMLStmt:
		e.load(&s.LoadBody, root)

	case *core.ExplainStmt:
		if s.Stmt != nil {
			inner := e.statement(s.Stmt)
			if _, ok := s.Stmt.(*core.SelectStmt); ok {
				return inner
			}
		}

	default:
		e.visit(stmt, root)
	}
	return nil
}

func (e *extractor) insert(body *core.InsertBody, root *scope) {
	e.addTable(body.Table, AccessWrite)
	if body.Select != nil {
		e.query(body.Select, root)
	}
	for _, row := range body.Values {
		for _, v := range row {
			e.visit(v, root)
		}
	}
	e.assignments(body.Set, root)
}

func (e *extractor) load(body *core.LoadBody, root *scope) {
	e.addTable(body.Table, AccessWrite)
	e.assignments(body.Set, root)
}

// targetScope makes the columns of an INSERT target resolvable.
func (e *extractor) targetScope(t *core.TableName, parent *scope) *scope {
	sc := newScope(parent)
	sc.entries = append(sc.entries, &scopeEntry{
		key:        e.normalize(t.Name.Name()),
		table:      qualifiedName(t),
		occurrence: -1,
	})
	return sc
}

func (e *extractor) assignments(list []*core.Assignment, sc *scope) {
	for _, a := range list {
		e.visit(a.Value, sc)
	}
}

// with registers the CTEs of a WITH clause in a new scope.
func (e *extractor) with(w *core.WithClause, parent *scope) *scope {
	if w == nil {
		return parent
	}
	sc := newScope(parent)
	for _, cte := range w.CTEs {
		rel := &relation{}
		// registered first so a recursive CTE refers to itself, not a table
		sc.ctes[e.normalize(cte.Name.Name())] = rel
		rel.columns = renameColumns(e.query(cte.Query, sc), cte.Columns)
	}
	return sc
}

// query extracts a query and returns its output columns.
func (e *extractor) query(s *core.SelectStmt, parent *scope) []*ColumnLineage {
	if s == nil {
		return nil
	}
	sc := e.with(s.With, parent)
	cols := e.queryExpr(s.Query, sc)
	e.visitOrderBy(s.OrderBy, sc)
	return cols
}

func (e *extractor) queryExpr(q core.QueryExpr, sc *scope) []*ColumnLineage {
	switch q := q.(type) {
	case *core.QuerySpec:
		return e.querySpec(q, sc)

	case *core.SetOperation:
		left := e.queryExpr(q.Left, sc)
		right := e.queryExpr(q.Right, sc)
		// For set operations, we merge the lineage from both sides by position
		for i, col := range left {
			if i < len(right) {
				col.Sources = mergeSources(col.Sources, right[i].Sources)
				if right[i].Transform != col.Transform {
					col.Transform = TransformExpression
				}
			}
		}
		return left

	case *core.ParenQuery:
		return e.query(q.Select, sc)

	case *core.TableQuery:
		e.addTable(q.Table, AccessRead)
		return e.starColumns(&scopeEntry{table: qualifiedName(q.Table)}, "*")

	case *core.ValuesQuery:
		var cols []*ColumnLineage
		for i, row := range q.Rows {
			for j, item := range row.Items {
				e.visit(item, sc)
				if i == 0 {
					cols = append(cols, &ColumnLineage{Name: fmt.Sprintf("column_%d", j), Transform: TransformExpression})
				}
			}
		}
		return cols
	}
	return nil
}

func (e *extractor) querySpec(q *core.QuerySpec, parent *scope) []*ColumnLineage {
	sc := newScope(parent)
	for _, ref := range q.From {
		e.tableRef(ref, sc)
	}

	var cols []*ColumnLineage
	for i, item := range q.Items {
		cols = append(cols, e.selectItem(item, i, sc)...)
	}

	e.visit(q.Where, sc)
	if q.GroupBy != nil {
		e.visit(q.GroupBy, sc)
	}
	e.visit(q.Having, sc)
	for _, w := range q.Windows {
		e.visit(w, sc)
	}
	return cols
}

// tableRef registers a FROM item in sc.
func (e *extractor) tableRef(ref core.TableRef, sc *scope) {
	switch t := ref.(type) {
	case *core.TableName:
		key := e.normalize(t.Name.Name())
		if t.Alias != nil {
			key = e.normalize(t.Alias.Value)
		}
		// Check if it's a CTE reference
		if t.Schema == nil {
			if rel, ok := sc.lookupCTE(e.normalize(t.Name.Name())); ok {
				sc.entries = append(sc.entries, &scopeEntry{key: key, rel: rel, occurrence: -1})
				return
			}
		}
		idx := e.addTable(t, AccessRead)
		sc.entries = append(sc.entries, &scopeEntry{key: key, table: qualifiedName(t), occurrence: idx})

	case *core.DerivedTable:
		cols := renameColumns(e.query(t.Query, sc), t.Columns)
		sc.entries = append(sc.entries, &scopeEntry{
			key:        e.normalize(t.Alias.Name()),
			rel:        &relation{columns: cols},
			occurrence: -1,
		})

	case *core.JoinExpr:
		e.tableRef(t.Left, sc)
		e.tableRef(t.Right, sc)
		e.visit(t.On, sc)

	case *core.ParenTableRef:
		for _, item := range t.Items {
			e.tableRef(item, sc)
		}
	}
}

// visit walks n for nested queries and tables outside a FROM clause.
func (e *extractor) visit(n core.Node, sc *scope) {
	if n == nil {
		return
	}
	core.Walk(n, func(n core.Node) bool {
		switch n := n.(type) {
		case *core.SelectStmt:
			e.query(n, sc)
			return false
		case *core.TableName:
			e.addTable(n, AccessRead)
			return false
		}
		return true
	})
}

func (e *extractor) visitOrderBy(items []*core.OrderByItem, sc *scope) {
	for _, o := range items {
		e.visit(o, sc)
	}
}

// selectItem extracts lineage from a single SELECT item.
func (e *extractor) selectItem(item *core.SelectItem, index int, sc *scope) []*ColumnLineage {
	// Handle SELECT * and SELECT t.*
	if star, ok := item.Expr.(*core.StarExpr); ok {
		return e.expandStar(star, sc)
	}

	lineage := e.exprLineage(item.Expr, sc)
	lineage.Name = item.Alias.Name()
	if lineage.Name == "" {
		lineage.Name = inferColumnName(item.Expr, index)
	}
	return []*ColumnLineage{lineage}
}

// exprLineage extracts lineage from an expression.
func (e *extractor) exprLineage(expr core.Expr, sc *scope) *ColumnLineage {
	lineage := &ColumnLineage{
		Sources:   e.collectSources(expr, sc),
		Transform: TransformExpression,
	}

	switch ex := unwrap(expr).(type) {
	case *core.ColumnRef:
		// Direct column reference, possibly through a derived table
		if len(lineage.Sources) == 1 {
			lineage.Transform = TransformDirect
		}
	case *core.FuncCall:
		if ex.Kind != core.FuncRegular || ex.Over != nil || ex.OverName != nil {
			lineage.Function = strings.ToUpper(ex.Name.Name())
		}
	case *core.GroupConcatExpr:
		lineage.Function = "GROUP_CONCAT"
	}
	return lineage
}

// collectSources collects all source columns from an expression. Subqueries
// contribute the sources of their first output column.
func (e *extractor) collectSources(expr core.Expr, sc *scope) []SourceColumn {
	var sources []SourceColumn
	if expr == nil {
		return nil
	}
	core.Walk(expr, func(n core.Node) bool {
		switch n := n.(type) {
		case *core.SelectStmt:
			if cols := e.query(n, sc); len(cols) > 0 {
				sources = mergeSources(sources, cols[0].Sources)
			}
			return false
		case *core.ColumnRef:
			sources = mergeSources(sources, e.resolveColumn(n, sc))
			return false
		}
		return true
	})
	return sources
}

// resolveColumn resolves a column reference to its sources.
func (e *extractor) resolveColumn(ref *core.ColumnRef, sc *scope) []SourceColumn {
	column := ref.Name.Name()
	if ref.Table == nil {
		if entry, ok := sc.resolveUnqualified(e, column); ok {
			return entry.column(e, column)
		}
		// Unqualified column with no resolution - still include it
		return []SourceColumn{{Column: column}}
	}

	if entry, ok := sc.lookup(e.normalize(ref.Table.Value)); ok && ref.Schema == nil {
		return entry.column(e, column)
	}
	// Fallback: use the reference as-is
	table := ref.Table.Value
	if ref.Schema != nil {
		table = ref.Schema.Value + "." + table
	}
	return []SourceColumn{{Table: table, Column: column}}
}

// expandStar expands a SELECT * or table.* into individual column lineages.
func (e *extractor) expandStar(star *core.StarExpr, sc *scope) []*ColumnLineage {
	if star.Table != nil {
		name := star.Table.Value + ".*"
		if entry, ok := sc.lookup(e.normalize(star.Table.Value)); ok {
			return e.starColumns(entry, name)
		}
		return []*ColumnLineage{{Name: name, Sources: []SourceColumn{{Table: star.Table.Value, Column: "*"}}}}
	}

	entries := sc.local()
	if len(entries) == 0 {
		return []*ColumnLineage{{Name: "*"}}
	}
	var cols []*ColumnLineage
	for _, entry := range entries {
		cols = append(cols, e.starColumns(entry, "*")...)
	}
	return cols
}

// starColumns lists the columns of one FROM entry. Derived tables and tables
// in the schema expand to their columns; other tables yield a single * column.
func (e *extractor) starColumns(entry *scopeEntry, name string) []*ColumnLineage {
	if entry.rel != nil {
		out := make([]*ColumnLineage, 0, len(entry.rel.columns))
		for _, c := range entry.rel.columns {
			cp := *c
			out = append(out, &cp)
		}
		return out
	}
	if cols, ok := e.schemaColumns(entry.table); ok {
		out := make([]*ColumnLineage, 0, len(cols))
		for _, c := range cols {
			out = append(out, &ColumnLineage{
				Name:    c,
				Sources: []SourceColumn{{Table: entry.table, Column: c}},
			})
		}
		return out
	}
	return []*ColumnLineage{{Name: name, Sources: []SourceColumn{{Table: entry.table, Column: "*"}}}}
}

func (e *extractor) schemaColumns(table string) ([]string, bool) {
	if e.schema == nil {
		return nil, false
	}
	want := e.normalize(table)
	for name, cols := range e.schema {
		if e.normalize(name) == want {
			return cols, true
		}
	}
	return nil, false
}

func (e *extractor) hasColumn(table, column string) bool {
	cols, ok := e.schemaColumns(table)
	if !ok {
		return false
	}
	for _, c := range cols {
		if e.normalize(c) == e.normalize(column) {
			return true
		}
	}
	return false
}

func qualifiedName(t *core.TableName) string {
	if t.Schema != nil {
		return t.Schema.Value + "." + t.Name.Value
	}
	return t.Name.Name()
}

func unwrap(expr core.Expr) core.Expr {
	for {
		p, ok := expr.(*core.ParenExpr)
		if !ok {
			return expr
		}
		expr = p.Expr
	}
}

// inferColumnName infers a column name from an expression.
func inferColumnName(expr core.Expr, index int) string {
	switch ex := unwrap(expr).(type) {
	case *core.ColumnRef:
		return ex.Name.Name()
	case *core.FuncCall:
		return strings.ToLower(ex.Name.Name())
	case *core.CastExpr:
		return inferColumnName(ex.Expr, index)
	}
	return fmt.Sprintf("column_%d", index)
}

// renameColumns applies a column list such as d(a, b) to query columns.
func renameColumns(cols []*ColumnLineage, names []*core.Identifier) []*ColumnLineage {
	for i, n := range names {
		if i < len(cols) {
			cols[i].Name = n.Value
		}
	}
	return cols
}

// mergeSources merges two source lists, removing duplicates.
func mergeSources(a, b []SourceColumn) []SourceColumn {
	seen := make(map[SourceColumn]struct{}, len(a)+len(b))
	var result []SourceColumn
	for _, list := range [][]SourceColumn{a, b} {
		for _, s := range list {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				result = append(result, s)
			}
		}
	}
	return result
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
