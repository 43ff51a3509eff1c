package core

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data, no handler functions.
//
// The runtime behavior (clause handlers, statement handlers, keyword table)
// lives in pkg/dialect.Dialect, which embeds this config.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "mysql", "postgresql")
	Name string

	// Aliases are alternative names resolving to the same dialect.
	Aliases []string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// DefaultSchema is the default schema name, empty when the dialect has none.
	DefaultSchema string

	// Placeholder defines how query parameters are written
	Placeholder PlaceholderStyle

	// Lexical switches the lexer consults.
	Lexical LexicalFeatures

	// Features gates extensions of the shared grammar.
	Features GrammarFeatures

	// Function classifications (normalized names)
	Aggregates []string // SUM, COUNT, AVG, etc.
	Windows    []string // ROW_NUMBER, LAG, LEAD, etc.

	// NiladicFunctions may be called without parentheses (CURRENT_DATE).
	NiladicFunctions []string
}

// LexicalFeatures are dialect switches for the lexer.
type LexicalFeatures struct {
	HashComments          bool // # starts a line comment
	DashCommentNeedsSpace bool // -- must be followed by whitespace
	ExecutableComments    bool // /*! ... */ is lexed as SQL
	BackslashEscapes      bool // \n, \t ... inside string literals
	AnsiQuotes            bool // "x" is an identifier rather than a string
	BacktickIdentifiers   bool // `x` is an identifier
	EscapeStrings         bool // E'..' strings with backslash escapes
	DigitLeadingIdents    bool // 1abc is an identifier
	CastOperator          bool // expr::type
	PipesAsConcat         bool // || concatenates instead of OR
}

// GrammarFeatures gate optional productions of the shared grammar.
type GrammarFeatures struct {
	OnDuplicateKey   bool
	LimitComma       bool // LIMIT offset, count
	IndexHints       bool
	LockInShareMode  bool
	SelectInto       bool
	MultiTableDelete bool
	Replace          bool
	StraightJoin     bool
	ILike            bool
	NullsOrdering    bool // ORDER BY x NULLS FIRST
	JSONOperators    bool // -> and ->>
	IntervalLiterals bool // INTERVAL '1 day' without a unit
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL table names on Linux).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison.
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are written.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (MySQL).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: " or `
	QuoteEnd      string                // End quote character (usually same as Quote)
	Escape        string                // Escape sequence: "" or ``
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}
