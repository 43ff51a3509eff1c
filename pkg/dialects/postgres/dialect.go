package postgres

import (
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

func init() {
	dialect.MustRegister(Postgres)
}

// reservedWords are the PostgreSQL reserved key words, including those that
// may still name functions and types.
var reservedWords = []string{
	"ALL", "ANALYSE", "ANALYZE", "AND", "ANY", "ARRAY", "AS", "ASC", "ASYMMETRIC",
	"AUTHORIZATION", "BETWEEN", "BOTH", "CASE", "CAST", "CHECK", "COLLATE", "COLLATION",
	"COLUMN", "CONCURRENTLY", "CONSTRAINT", "CREATE", "CROSS", "CURRENT_CATALOG",
	"CURRENT_DATE", "CURRENT_ROLE", "CURRENT_SCHEMA", "CURRENT_TIME", "CURRENT_TIMESTAMP",
	"CURRENT_USER", "DEFAULT", "DEFERRABLE", "DESC", "DISTINCT", "DO", "ELSE", "END", "EXCEPT",
	"FALSE", "FETCH", "FOR", "FOREIGN", "FREEZE", "FROM", "FULL", "GRANT", "GROUP", "HAVING",
	"IN", "INITIALLY", "INNER", "INTERSECT", "INTO", "IS", "ISNULL", "JOIN", "LATERAL",
	"LEADING", "LEFT", "LIKE", "LIMIT", "LOCALTIME", "LOCALTIMESTAMP", "NATURAL", "NOT",
	"NOTNULL", "NULL", "OFFSET", "ON", "ONLY", "OR", "ORDER", "OUTER", "OVERLAPS", "PLACING",
	"PRIMARY", "REFERENCES", "RETURNING", "RIGHT", "SELECT", "SESSION_USER", "SIMILAR", "SOME",
	"SYMMETRIC", "TABLE", "TABLESAMPLE", "THEN", "TO", "TRAILING", "TRUE", "UNION", "UNIQUE",
	"USER", "USING", "VARIADIC", "VERBOSE", "WHEN", "WHERE", "WINDOW", "WITH",
}

// Postgres is the PostgreSQL dialect.
// Builder reads Config flags and auto-wires:
// - ILIKE operator (Features.ILike)
// - :: cast operator (Lexical.CastOperator)
// - || concatenation (Lexical.PipesAsConcat)
var Postgres = dialect.New(Config).
	Keywords(dialect.NonReserved, dialect.CoreKeywords...).
	Keywords(dialect.Reserved, reservedWords...).
	// Clause Sequence - standard ANSI clauses
	Clauses(dialect.StandardSelectClauses...).
	// Operators - standard ANSI operators (ILIKE and DCOLON are auto-wired)
	Operators(dialect.ANSIOperators).
	// Join Types - standard ANSI only
	JoinTypes(dialect.ANSIJoinTypes).
	// Session statements
	Statement("SHOW", parseShow).
	Statement("SET", parseSet).
	Build()
