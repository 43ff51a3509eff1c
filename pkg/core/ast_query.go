package core

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ---------- Query Statements ----------

// SelectStmt is a complete query: an optional WITH clause, a query
// expression, and the trailing clauses that apply to the whole expression.
type SelectStmt struct {
	NodeInfo
	With          *WithClause
	Query         QueryExpr
	OrderBy       []*OrderByItem
	Limit         *Limit
	Locks         []*LockClause
	Into          *IntoClause // trailing INTO
	IntoAfterLock bool        // INTO written after the locking clauses
}

func (*SelectStmt) stmtNode() {}

// Spec returns the leading SELECT block when the query is a plain SELECT, or nil.
func (s *SelectStmt) Spec() *QuerySpec {
	if q, ok := s.Query.(*QuerySpec); ok {
		return q
	}
	return nil
}

// WithClause is WITH [RECURSIVE] cte, ...
type WithClause struct {
	NodeInfo
	Recursive bool
	CTEs      []*CTE
}

// CTE is a common table expression.
type CTE struct {
	NodeInfo
	Name    *Identifier
	Columns []*Identifier
	Query   *SelectStmt
}

// SelectOption is a query modifier written after SELECT.
type SelectOption string

// SelectOption constants.
const (
	SelectAll           SelectOption = "ALL"
	SelectDistinct      SelectOption = "DISTINCT"
	SelectDistinctRow   SelectOption = "DISTINCTROW"
	SelectHighPriority  SelectOption = "HIGH_PRIORITY"
	SelectStraightJoin  SelectOption = "STRAIGHT_JOIN"
	SelectSmallResult   SelectOption = "SQL_SMALL_RESULT"
	SelectBigResult     SelectOption = "SQL_BIG_RESULT"
	SelectBufferResult  SelectOption = "SQL_BUFFER_RESULT"
	SelectNoCache       SelectOption = "SQL_NO_CACHE"
	SelectCalcFoundRows SelectOption = "SQL_CALC_FOUND_ROWS"
)

// QuerySpec is a single SELECT block.
type QuerySpec struct {
	NodeInfo
	Options  []SelectOption
	Items    []*SelectItem
	Into     *IntoClause // INTO written before FROM
	From     []TableRef
	FromDual bool
	Where    Expr
	GroupBy  *GroupByClause
	Having   Expr
	Windows  []*NamedWindow
}

func (*QuerySpec) queryExprNode() {}

// Distinct reports whether the block carries DISTINCT or DISTINCTROW.
func (q *QuerySpec) Distinct() bool {
	for _, o := range q.Options {
		if o == SelectDistinct || o == SelectDistinctRow {
			return true
		}
	}
	return false
}

// SetOp is a set operator.
type SetOp int

// SetOp constants.
const (
	SetUnion SetOp = iota
	SetExcept
	SetIntersect
)

var setOpNames = [...]string{"UNION", "EXCEPT", "INTERSECT"}

func (o SetOp) String() string {
	if int(o) < len(setOpNames) {
		return setOpNames[o]
	}
	return fmt.Sprintf("SetOp(%d)", int(o))
}

// SetOperation combines two query expressions.
// Quantifier is "", "ALL" or "DISTINCT".
type SetOperation struct {
	NodeInfo
	Left       QueryExpr
	Op         SetOp
	Quantifier string
	Right      QueryExpr
}

func (*SetOperation) queryExprNode() {}

// ParenQuery is a parenthesised query with its own trailing clauses.
type ParenQuery struct {
	NodeInfo
	Select *SelectStmt
}

func (*ParenQuery) queryExprNode() {}

// TableQuery is TABLE t.
type TableQuery struct {
	NodeInfo
	Table *TableName
}

func (*TableQuery) queryExprNode() {}

// ValuesQuery is VALUES ROW(...), ROW(...).
type ValuesQuery struct {
	NodeInfo
	Rows []*RowExpr
}

func (*ValuesQuery) queryExprNode() {}

// SelectItem is one projection. Expr is a *StarExpr for * and t.*.
type SelectItem struct {
	NodeInfo
	Expr  Expr
	Alias *Identifier
}

// GroupByClause is GROUP BY items [WITH ROLLUP].
type GroupByClause struct {
	NodeInfo
	Items      []Expr
	WithRollup bool
}

// NamedWindow is one entry of a WINDOW clause.
type NamedWindow struct {
	NodeInfo
	Name *Identifier
	Spec *WindowSpec
}

// OrderByItem is one ORDER BY key. NullsFirst is nil when unspecified.
type OrderByItem struct {
	NodeInfo
	Expr       Expr
	Desc       bool
	NullsFirst *bool
}

// Limit is LIMIT count [OFFSET offset] (also written LIMIT offset, count).
// Count is nil for a bare OFFSET.
type Limit struct {
	NodeInfo
	Count  Expr
	Offset Expr
}

// RowCount returns the literal row count, if the count is a numeric literal
// that fits in an int64. MySQL's 18446744073709551615 "all rows" idiom does not.
func (l *Limit) RowCount() (int64, bool) {
	return literalInt(l.Count)
}

// OffsetValue returns the literal offset, if present and numeric.
func (l *Limit) OffsetValue() (int64, bool) {
	return literalInt(l.Offset)
}

func literalInt(e Expr) (int64, bool) {
	lit, ok := e.(*Literal)
	if !ok || lit.Kind != LiteralNumber {
		return 0, false
	}
	d, err := decimal.NewFromString(lit.Value)
	if err != nil || !d.IsInteger() || d.Sign() < 0 || d.GreaterThan(maxLiteralInt) {
		return 0, false
	}
	return d.IntPart(), true
}

var maxLiteralInt = decimal.NewFromInt(math.MaxInt64)

// LockStrength is the kind of row lock requested.
type LockStrength int

// LockStrength constants.
const (
	LockForUpdate LockStrength = iota
	LockForShare
	LockInShareMode
)

var lockStrengthNames = [...]string{"FOR UPDATE", "FOR SHARE", "LOCK IN SHARE MODE"}

func (s LockStrength) String() string {
	if int(s) < len(lockStrengthNames) {
		return lockStrengthNames[s]
	}
	return fmt.Sprintf("LockStrength(%d)", int(s))
}

// LockWait is the locked-row action.
type LockWait int

// LockWait constants.
const (
	LockWaitDefault LockWait = iota
	LockNowait
	LockSkipLocked
)

var lockWaitNames = [...]string{"", "NOWAIT", "SKIP LOCKED"}

func (w LockWait) String() string {
	if int(w) < len(lockWaitNames) {
		return lockWaitNames[w]
	}
	return fmt.Sprintf("LockWait(%d)", int(w))
}

// LockClause is FOR UPDATE|SHARE [OF t, ...] [NOWAIT|SKIP LOCKED] or LOCK IN SHARE MODE.
type LockClause struct {
	NodeInfo
	Strength LockStrength
	Tables   []*TableName
	Wait     LockWait
}

// IntoKind is the target of SELECT ... INTO.
type IntoKind int

// IntoKind constants.
const (
	IntoVariables IntoKind = iota
	IntoOutfile
	IntoDumpfile
)

// IntoClause is INTO OUTFILE 'f' [...] | INTO DUMPFILE 'f' | INTO var, ...
type IntoClause struct {
	NodeInfo
	Kind    IntoKind
	File    string
	Charset string
	Export  *ExportOptions
	Vars    []Expr // *UserVariable or *ColumnRef (local variables)
}

// ExportOptions are the FIELDS/LINES options shared by INTO OUTFILE and LOAD DATA.
// Nil pointers mean the option was not given.
type ExportOptions struct {
	NodeInfo
	FieldsTerminatedBy *string
	FieldsEnclosedBy   *string
	OptionallyEnclosed bool
	FieldsEscapedBy    *string
	LinesStartingBy    *string
	LinesTerminatedBy  *string
}

// HasFields reports whether any FIELDS option is present.
func (e *ExportOptions) HasFields() bool {
	return e != nil && (e.FieldsTerminatedBy != nil || e.FieldsEnclosedBy != nil || e.FieldsEscapedBy != nil)
}

// HasLines reports whether any LINES option is present.
func (e *ExportOptions) HasLines() bool {
	return e != nil && (e.LinesStartingBy != nil || e.LinesTerminatedBy != nil)
}
