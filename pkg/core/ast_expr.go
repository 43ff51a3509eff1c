package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ---------- Literals and Names ----------

// LiteralKind classifies a literal value.
type LiteralKind int

// LiteralKind constants.
const (
	LiteralNull LiteralKind = iota
	LiteralBool
	LiteralNumber
	LiteralString
	LiteralHex      // X'0A' or 0x0A, Value holds the hex digits
	LiteralBit      // B'01' or 0b01, Value holds the binary digits
	LiteralTemporal // DATE '2024-01-01', TIME '..', TIMESTAMP '..'
)

var literalKindNames = [...]string{"NULL", "BOOL", "NUMBER", "STRING", "HEX", "BIT", "TEMPORAL"}

func (k LiteralKind) String() string {
	if int(k) < len(literalKindNames) {
		return literalKindNames[k]
	}
	return fmt.Sprintf("LiteralKind(%d)", int(k))
}

// Literal represents a literal value. For strings Value is the decoded
// content; adjacent string literals ('a' 'b') are concatenated.
type Literal struct {
	NodeInfo
	Kind     LiteralKind
	Value    string
	Charset  string // introducer such as _utf8mb4, or "N" for national strings
	Temporal string // DATE, TIME or TIMESTAMP for LiteralTemporal
}

func (*Literal) exprNode() {}

// Decimal returns the numeric value of a number literal.
func (l *Literal) Decimal() (decimal.Decimal, error) {
	if l.Kind != LiteralNumber {
		return decimal.Zero, fmt.Errorf("literal %q is not numeric", l.Value)
	}
	return decimal.NewFromString(l.Value)
}

// True reports whether a boolean literal is TRUE.
func (l *Literal) True() bool {
	return l.Kind == LiteralBool && l.Value == "TRUE"
}

// ColumnRef is a possibly qualified column name: [[schema.]table.]name.
// An unqualified ColumnRef is the identifier expression of the model.
type ColumnRef struct {
	NodeInfo
	Schema *Identifier
	Table  *Identifier
	Name   *Identifier
}

func (*ColumnRef) exprNode() {}

// ParamMarker is a positional parameter (? or $n). Index is the 0-based
// ordinal of the marker within its statement.
type ParamMarker struct {
	NodeInfo
	Index int
	Text  string
}

func (*ParamMarker) exprNode() {}

// UserVariable is a user-defined variable (@name).
type UserVariable struct {
	NodeInfo
	Name   string
	Quoted bool
}

func (*UserVariable) exprNode() {}

// VariableScope is the scope of a system variable.
type VariableScope int

// VariableScope constants.
const (
	ScopeDefault VariableScope = iota
	ScopeGlobal
	ScopeSession
	ScopeLocal
	ScopePersist
	ScopePersistOnly
)

var scopeNames = [...]string{"", "GLOBAL", "SESSION", "LOCAL", "PERSIST", "PERSIST_ONLY"}

func (s VariableScope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return fmt.Sprintf("VariableScope(%d)", int(s))
}

// ParseScope maps a scope keyword to a VariableScope.
func ParseScope(word string) (VariableScope, bool) {
	for i, name := range scopeNames {
		if i > 0 && strings.EqualFold(name, word) {
			return VariableScope(i), true
		}
	}
	return ScopeDefault, false
}

// VariableForm records how a system variable was written.
type VariableForm int

// VariableForm constants.
const (
	VarBare    VariableForm = iota // autocommit
	VarAtAt                        // @@autocommit
	VarAtAtDot                     // @@global.autocommit
	VarKeyword                     // GLOBAL autocommit (SET only)
)

// SystemVariable is a server variable. Scope is the effective scope: a bare
// or @@-prefixed name without a scope resolves to SESSION.
type SystemVariable struct {
	NodeInfo
	Scope VariableScope
	Form  VariableForm
	Name  string // may be dotted (component.variable)
}

func (*SystemVariable) exprNode() {}

// ---------- Operators ----------

// BinaryOp is a binary operator.
type BinaryOp int

// BinaryOp constants.
const (
	OpOr BinaryOp = iota
	OpXor
	OpAnd
	OpEq
	OpNullSafeEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpBitOr
	OpBitAnd
	OpShiftLeft
	OpShiftRight
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpIntDiv
	OpMod
	OpBitXor
	OpConcat
	OpAssign
	OpJSONExtract
	OpJSONUnquote
	OpSoundsLike
	OpMemberOf
)

var binaryOpNames = [...]string{
	OpOr: "OR", OpXor: "XOR", OpAnd: "AND", OpEq: "=", OpNullSafeEq: "<=>", OpNe: "<>",
	OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=", OpBitOr: "|", OpBitAnd: "&",
	OpShiftLeft: "<<", OpShiftRight: ">>", OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/",
	OpIntDiv: "DIV", OpMod: "%", OpBitXor: "^", OpConcat: "||", OpAssign: ":=",
	OpJSONExtract: "->", OpJSONUnquote: "->>", OpSoundsLike: "SOUNDS LIKE", OpMemberOf: "MEMBER OF",
}

func (o BinaryOp) String() string {
	if int(o) < len(binaryOpNames) {
		return binaryOpNames[o]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(o))
}

// IsComparison reports whether the operator compares its operands.
func (o BinaryOp) IsComparison() bool {
	return o >= OpEq && o <= OpGe
}

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	NodeInfo
	Left  Expr
	Op    BinaryOp
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryOp is a prefix operator.
type UnaryOp int

// UnaryOp constants.
const (
	OpNeg    UnaryOp = iota // -
	OpPlus                  // +
	OpBitNot                // ~
	OpNot                   // NOT
	OpBang                  // ! (binds tighter than NOT)
	OpBinary                // BINARY
)

var unaryOpNames = [...]string{"-", "+", "~", "NOT", "!", "BINARY"}

func (o UnaryOp) String() string {
	if int(o) < len(unaryOpNames) {
		return unaryOpNames[o]
	}
	return fmt.Sprintf("UnaryOp(%d)", int(o))
}

// UnaryExpr represents a unary expression.
type UnaryExpr struct {
	NodeInfo
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// ---------- Functions ----------

// FuncKind classifies a function call.
type FuncKind int

// FuncKind constants.
const (
	FuncRegular FuncKind = iota
	FuncAggregate
	FuncWindow
)

var funcKindNames = [...]string{"regular", "aggregate", "window"}

func (k FuncKind) String() string {
	if int(k) < len(funcKindNames) {
		return funcKindNames[k]
	}
	return fmt.Sprintf("FuncKind(%d)", int(k))
}

// FuncCall represents a function call. Kind is derived from the dialect's
// function classification; a call with an OVER clause is always a window call.
type FuncCall struct {
	NodeInfo
	Schema   *Identifier
	Name     *Identifier
	Kind     FuncKind
	Distinct bool
	Star     bool // COUNT(*)
	Args     []Expr
	NoParens bool        // CURRENT_TIMESTAMP without ()
	OverName *Identifier // OVER w
	Over     *WindowSpec // OVER (...)
}

func (*FuncCall) exprNode() {}

// GroupConcatExpr is GROUP_CONCAT([DISTINCT] args [ORDER BY ...] [SEPARATOR s]).
type GroupConcatExpr struct {
	NodeInfo
	Distinct  bool
	Args      []Expr
	OrderBy   []*OrderByItem
	Separator *Literal
	OverName  *Identifier
	Over      *WindowSpec
}

func (*GroupConcatExpr) exprNode() {}

// DataType is a type name as used by CAST and CONVERT.
type DataType struct {
	NodeInfo
	Name    string   // upper-cased, possibly multi-word (SIGNED INTEGER)
	Params  []string // length/precision arguments
	Charset string
	Collate string
}

// CastExpr is CAST(expr AS type [ARRAY]) or the postfix expr::type form.
type CastExpr struct {
	NodeInfo
	Expr    Expr
	Type    *DataType
	Array   bool
	Postfix bool
}

func (*CastExpr) exprNode() {}

// ConvertExpr is CONVERT(expr, type) or CONVERT(expr USING charset).
type ConvertExpr struct {
	NodeInfo
	Expr    Expr
	Type    *DataType
	Charset string
}

func (*ConvertExpr) exprNode() {}

// ExtractExpr is EXTRACT(unit FROM expr).
type ExtractExpr struct {
	NodeInfo
	Unit string
	Expr Expr
}

func (*ExtractExpr) exprNode() {}

// TrimExpr is TRIM([BOTH|LEADING|TRAILING] [remove] FROM expr) or TRIM(expr).
type TrimExpr struct {
	NodeInfo
	Mode   string
	Remove Expr
	Expr   Expr
}

func (*TrimExpr) exprNode() {}

// SubstringExpr is SUBSTRING(expr FROM pos [FOR len]) or the comma form.
type SubstringExpr struct {
	NodeInfo
	Name     string // SUBSTRING or SUBSTR
	Expr     Expr
	From     Expr
	For      Expr
	FromForm bool
}

func (*SubstringExpr) exprNode() {}

// PositionExpr is POSITION(substr IN str).
type PositionExpr struct {
	NodeInfo
	Substr Expr
	Str    Expr
}

func (*PositionExpr) exprNode() {}

// CharExpr is CHAR(args [USING charset]).
type CharExpr struct {
	NodeInfo
	Args    []Expr
	Charset string
}

func (*CharExpr) exprNode() {}

// ---------- Compound Expressions ----------

// CaseExpr represents CASE [operand] WHEN ... THEN ... [ELSE ...] END.
type CaseExpr struct {
	NodeInfo
	Operand Expr
	Whens   []*WhenClause
	Else    Expr
}

func (*CaseExpr) exprNode() {}

// WhenClause is one WHEN ... THEN ... arm.
type WhenClause struct {
	NodeInfo
	Condition Expr
	Result    Expr
}

// IntervalExpr is INTERVAL expr unit.
type IntervalExpr struct {
	NodeInfo
	Value Expr
	Unit  string
}

func (*IntervalExpr) exprNode() {}

// SubqueryExpr is a scalar or row subquery. Quantifier is ANY, SOME or ALL
// when the subquery is the right operand of a quantified comparison.
type SubqueryExpr struct {
	NodeInfo
	Quantifier string
	Query      *SelectStmt
}

func (*SubqueryExpr) exprNode() {}

// ExistsExpr is EXISTS (subquery).
type ExistsExpr struct {
	NodeInfo
	Query *SelectStmt
}

func (*ExistsExpr) exprNode() {}

// InExpr is expr [NOT] IN (list) or expr [NOT] IN (subquery).
type InExpr struct {
	NodeInfo
	Expr  Expr
	Not   bool
	List  []Expr
	Query *SelectStmt
}

func (*InExpr) exprNode() {}

// BetweenExpr is expr [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	NodeInfo
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) exprNode() {}

// LikeExpr is expr [NOT] LIKE|ILIKE pattern [ESCAPE esc].
type LikeExpr struct {
	NodeInfo
	Expr    Expr
	Not     bool
	ILike   bool
	Pattern Expr
	Escape  Expr
}

func (*LikeExpr) exprNode() {}

// RegexpExpr is expr [NOT] REGEXP|RLIKE pattern.
type RegexpExpr struct {
	NodeInfo
	Expr    Expr
	Not     bool
	Pattern Expr
}

func (*RegexpExpr) exprNode() {}

// IsValue is the right-hand side of an IS test.
type IsValue int

// IsValue constants.
const (
	IsNull IsValue = iota
	IsTrue
	IsFalse
	IsUnknown
)

var isValueNames = [...]string{"NULL", "TRUE", "FALSE", "UNKNOWN"}

func (v IsValue) String() string {
	if int(v) < len(isValueNames) {
		return isValueNames[v]
	}
	return fmt.Sprintf("IsValue(%d)", int(v))
}

// IsExpr is expr IS [NOT] NULL|TRUE|FALSE|UNKNOWN.
type IsExpr struct {
	NodeInfo
	Expr  Expr
	Not   bool
	Value IsValue
}

func (*IsExpr) exprNode() {}

// CollateExpr is expr COLLATE collation.
type CollateExpr struct {
	NodeInfo
	Expr      Expr
	Collation string
}

func (*CollateExpr) exprNode() {}

// MatchExpr is MATCH (cols) AGAINST (expr [modifier]).
type MatchExpr struct {
	NodeInfo
	Columns  []*ColumnRef
	Against  Expr
	Modifier string
}

func (*MatchExpr) exprNode() {}

// RowExpr is a row constructor: (a, b) or ROW(a, b).
type RowExpr struct {
	NodeInfo
	Items    []Expr
	Explicit bool // written with the ROW keyword
}

func (*RowExpr) exprNode() {}

// ParenExpr is a parenthesised expression.
type ParenExpr struct {
	NodeInfo
	Expr Expr
}

func (*ParenExpr) exprNode() {}

// DefaultExpr is DEFAULT or DEFAULT(col).
type DefaultExpr struct {
	NodeInfo
	Column *ColumnRef
}

func (*DefaultExpr) exprNode() {}

// StarExpr is * or table.* in a select list.
type StarExpr struct {
	NodeInfo
	Schema *Identifier
	Table  *Identifier
}

func (*StarExpr) exprNode() {}

// ---------- Windows ----------

// WindowSpec is a window specification. Name refers to a base window.
type WindowSpec struct {
	NodeInfo
	Name        *Identifier
	PartitionBy []Expr
	OrderBy     []*OrderByItem
	Frame       *FrameSpec
}

// FrameUnits is ROWS or RANGE.
type FrameUnits int

// FrameUnits constants.
const (
	FrameRows FrameUnits = iota
	FrameRange
)

func (u FrameUnits) String() string {
	if u == FrameRange {
		return "RANGE"
	}
	return "ROWS"
}

// FrameSpec is a window frame. EndBound is nil for a single-bound frame.
type FrameSpec struct {
	NodeInfo
	Units    FrameUnits
	Start    *FrameBound
	EndBound *FrameBound
}

// BoundKind classifies a frame bound.
type BoundKind int

// BoundKind constants, ordered from the start of the partition to its end.
const (
	BoundUnboundedPreceding BoundKind = iota
	BoundPreceding
	BoundCurrentRow
	BoundFollowing
	BoundUnboundedFollowing
)

var boundKindNames = [...]string{"UNBOUNDED PRECEDING", "PRECEDING", "CURRENT ROW", "FOLLOWING", "UNBOUNDED FOLLOWING"}

func (k BoundKind) String() string {
	if int(k) < len(boundKindNames) {
		return boundKindNames[k]
	}
	return fmt.Sprintf("BoundKind(%d)", int(k))
}

// FrameBound is one end of a frame. Offset is set for PRECEDING/FOLLOWING.
type FrameBound struct {
	NodeInfo
	Kind   BoundKind
	Offset Expr
}
