package core

import "github.com/leapstack-labs/sqlfront/pkg/token"

// ClauseSlot specifies which optional clause of a SELECT block a clause
// definition fills.
type ClauseSlot int

// ClauseSlot constants.
const (
	SlotWhere ClauseSlot = iota
	SlotGroupBy
	SlotHaving
	SlotWindow
	SlotExtensions // custom/dialect-specific clauses
)

// String returns the slot name for debugging.
func (s ClauseSlot) String() string {
	switch s {
	case SlotWhere:
		return "WHERE"
	case SlotGroupBy:
		return "GROUP BY"
	case SlotHaving:
		return "HAVING"
	case SlotWindow:
		return "WINDOW"
	case SlotExtensions:
		return "EXTENSIONS"
	default:
		return "UNKNOWN"
	}
}

// Precedence constants for operator precedence parsing, lowest first.
// The ladder follows MySQL.
const (
	PrecedenceNone       = 0
	PrecedenceAssign     = 1  // :=
	PrecedenceOr         = 2  // OR, ||
	PrecedenceXor        = 3  // XOR
	PrecedenceAnd        = 4  // AND, &&
	PrecedenceNot        = 5  // NOT
	PrecedenceBetween    = 6  // BETWEEN, CASE
	PrecedenceComparison = 7  // = <=> <> < <= > >= IS LIKE REGEXP IN MEMBER OF SOUNDS LIKE
	PrecedenceBitOr      = 8  // |
	PrecedenceBitAnd     = 9  // &
	PrecedenceShift      = 10 // << >>
	PrecedenceAddition   = 11 // + -
	PrecedenceMultiply   = 12 // * / DIV % MOD
	PrecedenceBitXor     = 13 // ^
	PrecedenceUnary      = 14 // - ~
	PrecedenceBang       = 15 // !
	PrecedenceCollate    = 16 // COLLATE, BINARY
	PrecedencePostfix    = 17 // -> ->> ::
)

// ClauseDef bundles clause parsing logic with its destination.
// Handler is stored as 'any' to avoid import cycles with pkg/spi.
// Consumers cast to spi.ClauseHandler when invoking.
type ClauseDef struct {
	Token    token.TokenType
	Handler  any // spi.ClauseHandler - cast at call site
	Slot     ClauseSlot
	Keywords []string
}

// OperatorDef defines an infix operator with precedence.
type OperatorDef struct {
	Token      token.TokenType
	Symbol     string
	Precedence int
	Op         BinaryOp
}
