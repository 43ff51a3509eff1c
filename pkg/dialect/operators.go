package dialect

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Predicate operators build their own expression node (LIKE, IN, BETWEEN,
// IS, REGEXP, COLLATE); their Op is not used.
var predicateOperators = []core.OperatorDef{
	{Token: token.LIKE, Precedence: core.PrecedenceComparison},
	{Token: token.IN, Precedence: core.PrecedenceComparison},
	{Token: token.IS, Precedence: core.PrecedenceComparison},
	{Token: token.BETWEEN, Precedence: core.PrecedenceBetween},
	{Token: token.COLLATE, Precedence: core.PrecedenceCollate},
}

// ANSIOperators contains standard SQL operators with their precedence.
var ANSIOperators = append([]core.OperatorDef{
	// Logical operators (lowest precedence)
	{Token: token.OR, Precedence: core.PrecedenceOr, Op: core.OpOr},
	{Token: token.AND, Precedence: core.PrecedenceAnd, Op: core.OpAnd},

	// Comparison operators
	{Token: token.EQ, Precedence: core.PrecedenceComparison, Op: core.OpEq},
	{Token: token.NE, Precedence: core.PrecedenceComparison, Op: core.OpNe},
	{Token: token.LT, Precedence: core.PrecedenceComparison, Op: core.OpLt},
	{Token: token.GT, Precedence: core.PrecedenceComparison, Op: core.OpGt},
	{Token: token.LE, Precedence: core.PrecedenceComparison, Op: core.OpLe},
	{Token: token.GE, Precedence: core.PrecedenceComparison, Op: core.OpGe},

	// Arithmetic operators
	{Token: token.PLUS, Precedence: core.PrecedenceAddition, Op: core.OpAdd},
	{Token: token.MINUS, Precedence: core.PrecedenceAddition, Op: core.OpSub},
	{Token: token.DPIPE, Precedence: core.PrecedenceBitOr, Op: core.OpConcat}, // || string concatenation

	// Multiplicative operators
	{Token: token.STAR, Precedence: core.PrecedenceMultiply, Op: core.OpMul},
	{Token: token.SLASH, Precedence: core.PrecedenceMultiply, Op: core.OpDiv},
	{Token: token.PERCENT, Precedence: core.PrecedenceMultiply, Op: core.OpMod},
}, predicateOperators...)

// MySQLOperators contains the MySQL operator ladder.
var MySQLOperators = append([]core.OperatorDef{
	{Token: token.ASSIGN, Precedence: core.PrecedenceAssign, Op: core.OpAssign},

	{Token: token.OR, Precedence: core.PrecedenceOr, Op: core.OpOr},
	{Token: token.DPIPE, Precedence: core.PrecedenceOr, Op: core.OpOr},
	{Token: token.XOR, Precedence: core.PrecedenceXor, Op: core.OpXor},
	{Token: token.AND, Precedence: core.PrecedenceAnd, Op: core.OpAnd},
	{Token: token.AMPAMP, Precedence: core.PrecedenceAnd, Op: core.OpAnd},

	{Token: token.EQ, Precedence: core.PrecedenceComparison, Op: core.OpEq},
	{Token: token.NSEQ, Precedence: core.PrecedenceComparison, Op: core.OpNullSafeEq},
	{Token: token.NE, Precedence: core.PrecedenceComparison, Op: core.OpNe},
	{Token: token.LT, Precedence: core.PrecedenceComparison, Op: core.OpLt},
	{Token: token.GT, Precedence: core.PrecedenceComparison, Op: core.OpGt},
	{Token: token.LE, Precedence: core.PrecedenceComparison, Op: core.OpLe},
	{Token: token.GE, Precedence: core.PrecedenceComparison, Op: core.OpGe},
	{Token: token.REGEXP, Precedence: core.PrecedenceComparison},
	{Token: token.RLIKE, Precedence: core.PrecedenceComparison},
	{Token: token.SOUNDS, Precedence: core.PrecedenceComparison, Op: core.OpSoundsLike},
	{Token: token.MEMBER, Precedence: core.PrecedenceComparison, Op: core.OpMemberOf},

	{Token: token.PIPE, Precedence: core.PrecedenceBitOr, Op: core.OpBitOr},
	{Token: token.AMP, Precedence: core.PrecedenceBitAnd, Op: core.OpBitAnd},
	{Token: token.SHL, Precedence: core.PrecedenceShift, Op: core.OpShiftLeft},
	{Token: token.SHR, Precedence: core.PrecedenceShift, Op: core.OpShiftRight},
	{Token: token.PLUS, Precedence: core.PrecedenceAddition, Op: core.OpAdd},
	{Token: token.MINUS, Precedence: core.PrecedenceAddition, Op: core.OpSub},
	{Token: token.STAR, Precedence: core.PrecedenceMultiply, Op: core.OpMul},
	{Token: token.SLASH, Precedence: core.PrecedenceMultiply, Op: core.OpDiv},
	{Token: token.DIV, Precedence: core.PrecedenceMultiply, Op: core.OpIntDiv},
	{Token: token.PERCENT, Precedence: core.PrecedenceMultiply, Op: core.OpMod},
	{Token: token.MOD, Precedence: core.PrecedenceMultiply, Op: core.OpMod},
	{Token: token.CARET, Precedence: core.PrecedenceBitXor, Op: core.OpBitXor},
}, predicateOperators...)
