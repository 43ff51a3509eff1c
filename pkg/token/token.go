// Package token defines the token types for SQL parsing.
//
// Operators, literal classes and the keywords the shared grammar relies on are
// constants (IDs 0-999) for switch performance. Dialect-specific keywords are
// registered dynamically via Register().
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // ALL_CAPS names follow SQL token conventions
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals and names
	IDENT       // identifier, possibly quoted
	NUMBER      // 123, 45.67, 1e10
	STRING      // 'hello'
	NSTRING     // N'hello'
	HEX_STRING  // X'0A' or 0x0A
	BIT_STRING  // B'01' or 0b01
	PARAM       // ? or $1
	USER_VAR    // @name
	AT_AT       // @@ (system variable marker)
	literalsEnd // sentinel

	// Operators and punctuation
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NSEQ      // <=>
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	ASSIGN    // :=
	AMPAMP    // &&
	BANG      // !
	TILDE     // ~
	CARET     // ^
	AMP       // &
	PIPE      // |
	SHL       // <<
	SHR       // >>
	ARROW     // ->
	DARROW    // ->>
	DCOLON    // ::
	COLON     // :
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	operatorsEnd

	// Keywords used by the shared grammar (alphabetical)
	keywordsBeg
	AGAINST
	ALL
	AND
	ANY
	ARRAY
	AS
	ASC
	BETWEEN
	BINARY
	BOTH
	BY
	CALL
	CASE
	CAST
	CHAR
	CHARACTER
	CHARSET
	COLLATE
	CONVERT
	CROSS
	CURRENT
	CURRENT_DATE
	CURRENT_TIME
	CURRENT_TIMESTAMP
	CURRENT_USER
	DEFAULT
	DELAYED
	DELETE
	DESC
	DISTINCT
	DISTINCTROW
	DIV
	DUAL
	DUMPFILE
	DUPLICATE
	ELSE
	ENCLOSED
	END
	ESCAPE
	ESCAPED
	EXCEPT
	EXISTS
	EXTRACT
	FALSE
	FETCH
	FIELDS
	FIRST
	FOLLOWING
	FOR
	FORCE
	FROM
	FULL
	GROUP
	GROUP_CONCAT
	HAVING
	HIGH_PRIORITY
	IGNORE
	ILIKE
	IN
	INDEX
	INNER
	INSERT
	INTERSECT
	INTERVAL
	INTO
	IS
	JOIN
	KEY
	LAST
	LATERAL
	LEADING
	LEFT
	LIKE
	LIMIT
	LINES
	LOCALTIME
	LOCALTIMESTAMP
	LOCK
	LOCKED
	LOW_PRIORITY
	MATCH
	MEMBER
	MOD
	MODE
	NATURAL
	NOT
	NOWAIT
	NULL
	NULLS
	OF
	OFFSET
	ON
	ONLY
	OPTIONALLY
	OR
	ORDER
	OUTER
	OUTFILE
	OVER
	PARTITION
	POSITION
	PRECEDING
	QUICK
	RANGE
	RECURSIVE
	REGEXP
	REPLACE
	RIGHT
	RLIKE
	ROLLUP
	ROW
	ROWS
	SELECT
	SEPARATOR
	SET
	SHARE
	SKIP
	SOME
	SOUNDS
	SQL_BIG_RESULT
	SQL_BUFFER_RESULT
	SQL_CALC_FOUND_ROWS
	SQL_NO_CACHE
	SQL_SMALL_RESULT
	STARTING
	STRAIGHT_JOIN
	SUBSTR
	SUBSTRING
	TABLE
	TERMINATED
	THEN
	TRAILING
	TRIM
	TRUE
	UNBOUNDED
	UNION
	UNKNOWN
	UPDATE
	USE
	USING
	VALUE
	VALUES
	WHEN
	WHERE
	WINDOW
	WITH
	XOR
	keywordsEnd

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	if t > keywordsBeg && t < keywordsEnd {
		return keywordNames[t-keywordsBeg-1]
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps builtin non-keyword token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:      "IDENT",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	NSTRING:    "NSTRING",
	HEX_STRING: "HEX_STRING",
	BIT_STRING: "BIT_STRING",
	PARAM:      "PARAM",
	USER_VAR:   "USER_VAR",
	AT_AT:      "@@",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NSEQ:      "<=>",
	NE:        "<>",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	ASSIGN:    ":=",
	AMPAMP:    "&&",
	BANG:      "!",
	TILDE:     "~",
	CARET:     "^",
	AMP:       "&",
	PIPE:      "|",
	SHL:       "<<",
	SHR:       ">>",
	ARROW:     "->",
	DARROW:    "->>",
	DCOLON:    "::",
	COLON:     ":",
	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LBRACE:    "{",
	RBRACE:    "}",
}

// keywordNames lists the builtin keywords in declaration order.
var keywordNames = [...]string{
	"AGAINST", "ALL", "AND", "ANY", "ARRAY", "AS", "ASC", "BETWEEN", "BINARY", "BOTH", "BY",
	"CALL", "CASE", "CAST", "CHAR", "CHARACTER", "CHARSET", "COLLATE", "CONVERT", "CROSS",
	"CURRENT", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER",
	"DEFAULT", "DELAYED", "DELETE", "DESC", "DISTINCT", "DISTINCTROW", "DIV", "DUAL",
	"DUMPFILE", "DUPLICATE", "ELSE", "ENCLOSED", "END", "ESCAPE", "ESCAPED", "EXCEPT",
	"EXISTS", "EXTRACT", "FALSE", "FETCH", "FIELDS", "FIRST", "FOLLOWING", "FOR", "FORCE",
	"FROM", "FULL", "GROUP", "GROUP_CONCAT", "HAVING", "HIGH_PRIORITY", "IGNORE", "ILIKE",
	"IN", "INDEX", "INNER", "INSERT", "INTERSECT", "INTERVAL", "INTO", "IS", "JOIN", "KEY",
	"LAST", "LATERAL", "LEADING", "LEFT", "LIKE", "LIMIT", "LINES", "LOCALTIME",
	"LOCALTIMESTAMP", "LOCK", "LOCKED", "LOW_PRIORITY", "MATCH", "MEMBER", "MOD", "MODE",
	"NATURAL", "NOT", "NOWAIT", "NULL", "NULLS", "OF", "OFFSET", "ON", "ONLY", "OPTIONALLY",
	"OR", "ORDER", "OUTER", "OUTFILE", "OVER", "PARTITION", "POSITION", "PRECEDING", "QUICK",
	"RANGE", "RECURSIVE", "REGEXP", "REPLACE", "RIGHT", "RLIKE", "ROLLUP", "ROW", "ROWS",
	"SELECT", "SEPARATOR", "SET", "SHARE", "SKIP", "SOME", "SOUNDS", "SQL_BIG_RESULT",
	"SQL_BUFFER_RESULT", "SQL_CALC_FOUND_ROWS", "SQL_NO_CACHE", "SQL_SMALL_RESULT",
	"STARTING", "STRAIGHT_JOIN", "SUBSTR", "SUBSTRING", "TABLE", "TERMINATED", "THEN",
	"TRAILING", "TRIM", "TRUE", "UNBOUNDED", "UNION", "UNKNOWN", "UPDATE", "USE", "USING",
	"VALUE", "VALUES", "WHEN", "WHERE", "WINDOW", "WITH", "XOR",
}

// keywords maps lowercase keyword strings to their builtin token types.
var keywords = make(map[string]TokenType, len(keywordNames))

func init() {
	if int(keywordsEnd-keywordsBeg-1) != len(keywordNames) {
		panic("token: keyword name table out of sync with keyword constants")
	}
	for i, name := range keywordNames {
		keywords[strings.ToLower(name)] = keywordsBeg + 1 + TokenType(i)
	}
}

// LookupIdent returns the builtin keyword type for the given lowercase word,
// or IDENT when the word is not a builtin keyword.
// Dialects decide which of these keywords they actually recognize.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Lookup returns the builtin or registered keyword type for a word of any case.
func Lookup(word string) (TokenType, bool) {
	lower := strings.ToLower(word)
	if tok, ok := keywords[lower]; ok {
		return tok, true
	}
	return LookupDynamicKeyword(strings.ToUpper(word))
}

// IsKeyword returns true if the token type is a builtin or registered keyword.
func IsKeyword(t TokenType) bool {
	return (t > keywordsBeg && t < keywordsEnd) || IsDynamic(t)
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t > literalsEnd && t < operatorsEnd
}

// IsLiteral returns true for literal token types.
func IsLiteral(t TokenType) bool {
	switch t {
	case NUMBER, STRING, NSTRING, HEX_STRING, BIT_STRING:
		return true
	}
	return false
}

// Kind is the syntactic category of a token.
type Kind int

// Token kinds.
const (
	KindEOF Kind = iota
	KindIllegal
	KindIdentifier
	KindKeyword
	KindLiteral
	KindOperator
	KindPunctuation
	KindParameter
	KindVariable
)

var kindNames = [...]string{
	KindEOF:         "eof",
	KindIllegal:     "illegal",
	KindIdentifier:  "identifier",
	KindKeyword:     "keyword",
	KindLiteral:     "literal",
	KindOperator:    "operator",
	KindPunctuation: "punctuation",
	KindParameter:   "parameter",
	KindVariable:    "variable",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token represents a lexical token with position information.
// Literal holds the decoded value (unquoted, escapes resolved) while Raw is
// the exact source text between Pos and End.
type Token struct {
	Type    TokenType
	Literal string
	Raw     string
	Quoted  bool // identifier or variable was written with quotes
	Pos     Position
	End     Position
}

// Kind classifies the token.
func (t Token) Kind() Kind {
	switch {
	case t.Type == EOF:
		return KindEOF
	case t.Type == ILLEGAL:
		return KindIllegal
	case t.Type == IDENT:
		return KindIdentifier
	case IsLiteral(t.Type):
		return KindLiteral
	case t.Type == PARAM:
		return KindParameter
	case t.Type == USER_VAR || t.Type == AT_AT:
		return KindVariable
	case IsKeyword(t.Type):
		return KindKeyword
	}
	switch t.Type {
	case DOT, COMMA, SEMICOLON, LPAREN, RPAREN, LBRACKET, RBRACKET, LBRACE, RBRACE, COLON:
		return KindPunctuation
	}
	return KindOperator
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}

// Is reports whether the token has the given type.
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// IsWord reports whether the token is an identifier or keyword spelled as word
// (case-insensitive). Quoted identifiers never match.
func (t Token) IsWord(word string) bool {
	if t.Quoted || (t.Type != IDENT && !IsKeyword(t.Type)) {
		return false
	}
	return strings.EqualFold(t.Literal, word)
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	if t.Raw != "" {
		return fmt.Sprintf("%q", t.Raw)
	}
	return t.Type.String()
}
