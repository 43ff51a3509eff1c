// Package postgres provides the PostgreSQL dialect: the shared grammar with
// PostgreSQL lexing ($n parameters, E'' strings, :: casts) plus the SHOW and
// SET statement branches.
package postgres

import "github.com/leapstack-labs/sqlfront/pkg/core"

// Config is the PostgreSQL dialect configuration.
// The Builder reads feature flags and auto-wires ILIKE, the :: cast operator
// and || concatenation.
var Config = &core.DialectConfig{
	Name:          "postgresql",
	Aliases:       []string{"postgres", "pg"},
	DefaultSchema: "public",
	Placeholder:   core.PlaceholderDollar,
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase, // unquoted names fold to lowercase
	},

	Lexical: core.LexicalFeatures{
		AnsiQuotes:    true,
		EscapeStrings: true,
		CastOperator:  true,
		PipesAsConcat: true,
	},

	Features: core.GrammarFeatures{
		ILike:            true,
		NullsOrdering:    true,
		IntervalLiterals: true,
	},

	// Function classifications
	Aggregates: []string{
		// Standard aggregates
		"SUM", "COUNT", "AVG", "MIN", "MAX",
		"STDDEV", "STDDEV_POP", "STDDEV_SAMP",
		"VARIANCE", "VAR_POP", "VAR_SAMP",
		// PostgreSQL specific
		"ARRAY_AGG", "STRING_AGG",
		"JSONB_AGG", "JSONB_OBJECT_AGG", "JSON_AGG", "JSON_OBJECT_AGG",
		"BOOL_AND", "BOOL_OR", "EVERY",
		"BIT_AND", "BIT_OR", "BIT_XOR",
		"CORR", "COVAR_POP", "COVAR_SAMP",
		"REGR_AVGX", "REGR_AVGY", "REGR_COUNT", "REGR_INTERCEPT",
		"REGR_R2", "REGR_SLOPE", "REGR_SXX", "REGR_SXY", "REGR_SYY",
		"PERCENTILE_CONT", "PERCENTILE_DISC",
		"MODE",
		"XMLAGG",
	},
	Windows: []string{
		// Ranking functions
		"ROW_NUMBER", "RANK", "DENSE_RANK", "NTILE",
		"PERCENT_RANK", "CUME_DIST",
		// Value functions
		"LAG", "LEAD", "FIRST_VALUE", "LAST_VALUE", "NTH_VALUE",
	},
	NiladicFunctions: []string{
		"CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
		"LOCALTIME", "LOCALTIMESTAMP",
		"CURRENT_USER", "CURRENT_ROLE", "SESSION_USER", "USER",
		"CURRENT_CATALOG", "CURRENT_SCHEMA",
	},
}
