// Package ansi provides the base ANSI SQL dialect: the shared grammar with
// standard keywords, operators and join types and no dialect branches.
package ansi

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

func init() {
	dialect.MustRegister(ANSI)
}

// Config is the ANSI dialect configuration.
var Config = &core.DialectConfig{
	Name: "ansi",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase,
	},
	Placeholder: core.PlaceholderQuestion,
	Lexical: core.LexicalFeatures{
		AnsiQuotes:    true,
		PipesAsConcat: true,
	},
	Features: core.GrammarFeatures{
		NullsOrdering: true,
	},
	Aggregates: []string{
		"SUM", "COUNT", "AVG", "MIN", "MAX",
		"STDDEV_POP", "STDDEV_SAMP", "VAR_POP", "VAR_SAMP",
		"EVERY", "ANY_VALUE", "ARRAY_AGG", "LISTAGG",
		"COVAR_POP", "COVAR_SAMP", "CORR",
		"PERCENTILE_CONT", "PERCENTILE_DISC",
	},
	Windows: []string{
		"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE",
		"PERCENT_RANK", "CUME_DIST",
		"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
	},
	NiladicFunctions: []string{
		"CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER",
		"LOCALTIME", "LOCALTIMESTAMP",
	},
}

// ANSI is the base ANSI SQL dialect.
var ANSI = dialect.New(Config).
	Keywords(dialect.NonReserved, dialect.CoreKeywords...).
	Keywords(dialect.Reserved, dialect.ANSIReserved...).
	Clauses(dialect.StandardSelectClauses...).
	Operators(dialect.ANSIOperators).
	JoinTypes(dialect.ANSIJoinTypes).
	Build()
