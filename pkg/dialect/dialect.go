// Package dialect provides the SQL dialect descriptor and the process-wide
// dialect registry.
//
// A Dialect bundles everything dialect specific the lexer, parser and AST
// builder consult: the keyword table with its ambiguity classes, the operator
// and precedence table, the SELECT clause sequence, join types, function
// classification and the statement handlers that implement dialect grammar
// branches. Concrete dialects are registered from pkg/dialects/*/ packages.
package dialect

import (
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// JoinTypeDef defines a join keyword.
type JoinTypeDef struct {
	Token         token.TokenType // The trigger token for this join type
	Type          core.JoinType   // Resulting join type
	OptionalToken token.TokenType // Optional modifier token (OUTER) - 0 means none
	RequiresOn    bool            // true if ON or USING is required
	AllowsUsing   bool            // true if USING clause is allowed
	Standalone    bool            // the trigger is the whole join keyword (STRAIGHT_JOIN)
}

// Dialect represents a SQL dialect. It is immutable once built.
type Dialect struct {
	core.DialectConfig

	// Function classifications (upper-cased)
	aggregates map[string]struct{}
	windows    map[string]struct{}
	niladic    map[string]struct{}

	// Keyword table, keyed by lower-case word
	keywords map[string]Keyword
	classes  map[token.TokenType]KeywordClass

	// Parsing behavior
	clauseSequence []token.TokenType
	clauseDefs     map[token.TokenType]core.ClauseDef
	symbols        map[string]token.TokenType
	operators      map[token.TokenType]core.OperatorDef
	infixHandlers  map[token.TokenType]spi.InfixHandler
	joinTypes      map[token.TokenType]JoinTypeDef
	statements     map[token.TokenType]spi.StatementHandler
}

// Config returns a copy of the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	cfg := d.DialectConfig
	return &cfg
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// ---------- Functions ----------

// FunctionKind classifies a function by name. Function names are
// case-insensitive in every supported dialect.
func (d *Dialect) FunctionKind(name string) core.FuncKind {
	upper := strings.ToUpper(name)
	if _, ok := d.windows[upper]; ok {
		return core.FuncWindow
	}
	if _, ok := d.aggregates[upper]; ok {
		return core.FuncAggregate
	}
	return core.FuncRegular
}

// IsAggregate returns true if the function is an aggregate function.
func (d *Dialect) IsAggregate(name string) bool {
	return d.FunctionKind(name) == core.FuncAggregate
}

// IsWindow returns true if the function is a window-only function.
func (d *Dialect) IsWindow(name string) bool {
	return d.FunctionKind(name) == core.FuncWindow
}

// IsNiladic reports whether the function may be called without parentheses.
func (d *Dialect) IsNiladic(name string) bool {
	_, ok := d.niladic[strings.ToUpper(name)]
	return ok
}

// ---------- Keywords ----------

// LookupKeyword returns the keyword entry for a word of any case.
// Words missing from the table are identifiers in this dialect.
func (d *Dialect) LookupKeyword(word string) (Keyword, bool) {
	kw, ok := d.keywords[strings.ToLower(word)]
	return kw, ok
}

// KeywordClass returns the class of a keyword token type.
func (d *Dialect) KeywordClass(t token.TokenType) (KeywordClass, bool) {
	c, ok := d.classes[t]
	return c, ok
}

// IsIdentifier reports whether tok may be used as an identifier in ctx.
// Quoted identifiers always qualify; keywords qualify when their class
// allows the context.
func (d *Dialect) IsIdentifier(tok token.Token, ctx spi.IdentContext) bool {
	if tok.Type == token.IDENT {
		return true
	}
	c, ok := d.classes[tok.Type]
	return ok && c.Allows(ctx)
}

// Keywords returns the keyword table sorted by word.
func (d *Dialect) Keywords() []Keyword {
	out := make([]Keyword, 0, len(d.keywords))
	for _, kw := range d.keywords {
		out = append(out, kw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	kw, ok := d.LookupKeyword(word)
	return ok && kw.Class == Reserved
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar style.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier when it is reserved or is not
// a plain word.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) || !IsPlainWord(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// IsPlainWord reports whether s lexes as a single unquoted word: letters,
// digits, '_' and '$', not starting with a digit.
func IsPlainWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '$', c >= 0x80:
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// ---------- Parsing Behavior Methods ----------

// ClauseSequence returns the ordered list of clause token types for this dialect.
func (d *Dialect) ClauseSequence() []token.TokenType {
	return d.clauseSequence
}

// ClauseHandler returns the handler for a clause token type.
func (d *Dialect) ClauseHandler(t token.TokenType) spi.ClauseHandler {
	if def, ok := d.clauseDefs[t]; ok {
		if h, ok := def.Handler.(spi.ClauseHandler); ok {
			return h
		}
	}
	return nil
}

// ClauseDef returns the definition (handler + slot) for a clause token type.
func (d *Dialect) ClauseDef(t token.TokenType) (core.ClauseDef, bool) {
	def, ok := d.clauseDefs[t]
	return def, ok
}

// IsClauseToken returns true if this dialect supports the given clause token.
func (d *Dialect) IsClauseToken(t token.TokenType) bool {
	_, ok := d.clauseDefs[t]
	return ok
}

// Symbols returns the dialect operators the lexer matches in addition to the
// builtin ones.
func (d *Dialect) Symbols() map[string]token.TokenType {
	return d.symbols
}

// Precedence returns the precedence level for an operator token.
// Returns 0 (PrecedenceNone) if the operator is not recognized.
func (d *Dialect) Precedence(t token.TokenType) int {
	if op, ok := d.operators[t]; ok {
		return op.Precedence
	}
	return core.PrecedenceNone
}

// Operator returns the operator definition for a token type.
func (d *Dialect) Operator(t token.TokenType) (core.OperatorDef, bool) {
	op, ok := d.operators[t]
	return op, ok
}

// BinaryOp returns the binary operator a token stands for.
func (d *Dialect) BinaryOp(t token.TokenType) (core.BinaryOp, bool) {
	op, ok := d.operators[t]
	return op.Op, ok
}

// InfixHandler returns the custom infix handler for an operator token.
func (d *Dialect) InfixHandler(t token.TokenType) spi.InfixHandler {
	return d.infixHandlers[t]
}

// JoinTypeDef returns the definition for a join keyword.
func (d *Dialect) JoinTypeDef(t token.TokenType) (JoinTypeDef, bool) {
	def, ok := d.joinTypes[t]
	return def, ok
}

// IsJoinTypeToken returns true if the token starts a join in this dialect.
func (d *Dialect) IsJoinTypeToken(t token.TokenType) bool {
	_, ok := d.joinTypes[t]
	return ok
}

// StatementHandler returns the grammar branch for statements starting with t.
func (d *Dialect) StatementHandler(t token.TokenType) spi.StatementHandler {
	return d.statements[t]
}

// StatementKeywords lists the leading keywords of the dialect grammar branches.
func (d *Dialect) StatementKeywords() []string {
	out := make([]string, 0, len(d.statements))
	for t := range d.statements {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return out
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
	config  *core.DialectConfig
}

// New creates a dialect builder from a DialectConfig.
// Build() auto-wires features from the config flags.
func New(cfg *core.DialectConfig) *Builder {
	return &Builder{
		config: cfg,
		dialect: &Dialect{
			DialectConfig: *cfg,
			aggregates:    make(map[string]struct{}),
			windows:       make(map[string]struct{}),
			niladic:       make(map[string]struct{}),
			keywords:      make(map[string]Keyword),
			classes:       make(map[token.TokenType]KeywordClass),
			clauseDefs:    make(map[token.TokenType]core.ClauseDef),
			symbols:       make(map[string]token.TokenType),
			operators:     make(map[token.TokenType]core.OperatorDef),
			infixHandlers: make(map[token.TokenType]spi.InfixHandler),
			joinTypes:     make(map[token.TokenType]JoinTypeDef),
			statements:    make(map[token.TokenType]spi.StatementHandler),
		},
	}
}

// NewDialect creates a builder for a dialect with default settings.
func NewDialect(name string) *Builder {
	return New(&core.DialectConfig{
		Name: name,
		Identifiers: core.IdentifierConfig{
			Quote:         `"`,
			QuoteEnd:      `"`,
			Escape:        `""`,
			Normalization: core.NormLowercase,
		},
	})
}

// Keywords adds words to the keyword table with the given class. A word that
// is already present is reclassified. Words unknown to pkg/token are
// registered as dynamic tokens.
func (b *Builder) Keywords(class KeywordClass, words ...string) *Builder {
	for _, w := range words {
		b.keyword(w, class)
	}
	return b
}

func (b *Builder) keyword(word string, class KeywordClass) token.TokenType {
	t := token.Register(word)
	b.dialect.keywords[strings.ToLower(word)] = Keyword{Word: strings.ToUpper(word), Type: t, Class: class}
	b.dialect.classes[t] = class
	return t
}

// Statement registers a grammar branch for statements starting with word.
// The word is added to the keyword table as non-reserved unless it is
// already present.
func (b *Builder) Statement(word string, handler spi.StatementHandler) *Builder {
	kw, ok := b.dialect.keywords[strings.ToLower(word)]
	t := kw.Type
	if !ok {
		t = b.keyword(word, NonReserved)
	}
	b.dialect.statements[t] = handler
	return b
}

// Aggregates adds aggregate functions to the dialect.
func (b *Builder) Aggregates(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.aggregates[strings.ToUpper(f)] = struct{}{}
	}
	return b
}

// Windows adds window-only functions to the dialect.
func (b *Builder) Windows(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.windows[strings.ToUpper(f)] = struct{}{}
	}
	return b
}

// Niladic adds functions that may be called without parentheses.
func (b *Builder) Niladic(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.niladic[strings.ToUpper(f)] = struct{}{}
	}
	return b
}

// ClauseSequence sets the full clause sequence (for base dialects).
func (b *Builder) ClauseSequence(tokens ...token.TokenType) *Builder {
	b.dialect.clauseSequence = tokens
	return b
}

// Clauses sets the clause sequence from a list of ClauseDefs.
func (b *Builder) Clauses(defs ...core.ClauseDef) *Builder {
	b.dialect.clauseSequence = make([]token.TokenType, len(defs))
	for i, def := range defs {
		b.dialect.clauseSequence[i] = def.Token
		b.dialect.clauseDefs[def.Token] = def
	}
	return b
}

// AddClauseAfter inserts a clause into the sequence after another clause.
// A clause already in the sequence is moved.
func (b *Builder) AddClauseAfter(after token.TokenType, def core.ClauseDef) *Builder {
	b.RemoveClause(def.Token)
	seq := b.dialect.clauseSequence
	for i, tok := range seq {
		if tok == after {
			newSeq := make([]token.TokenType, 0, len(seq)+1)
			newSeq = append(newSeq, seq[:i+1]...)
			newSeq = append(newSeq, def.Token)
			newSeq = append(newSeq, seq[i+1:]...)
			b.dialect.clauseSequence = newSeq
			break
		}
	}
	b.dialect.clauseDefs[def.Token] = def
	return b
}

// RemoveClause removes a clause from the sequence.
func (b *Builder) RemoveClause(t token.TokenType) *Builder {
	for i, tok := range b.dialect.clauseSequence {
		if tok == t {
			b.dialect.clauseSequence = append(b.dialect.clauseSequence[:i:i], b.dialect.clauseSequence[i+1:]...)
			break
		}
	}
	delete(b.dialect.clauseDefs, t)
	return b
}

// Operators adds operator definitions in bulk.
// If Symbol is provided, it's registered with the lexer.
func (b *Builder) Operators(sets ...[]core.OperatorDef) *Builder {
	for _, set := range sets {
		for _, op := range set {
			b.AddInfix(op)
		}
	}
	return b
}

// AddInfix registers an infix operator.
func (b *Builder) AddInfix(op core.OperatorDef) *Builder {
	b.dialect.operators[op.Token] = op
	if op.Symbol != "" {
		b.dialect.symbols[op.Symbol] = op.Token
	}
	return b
}

// AddInfixWithHandler registers an infix operator with custom handler.
func (b *Builder) AddInfixWithHandler(op core.OperatorDef, handler spi.InfixHandler) *Builder {
	b.AddInfix(op)
	b.dialect.infixHandlers[op.Token] = handler
	return b
}

// JoinTypes adds join type definitions in bulk.
func (b *Builder) JoinTypes(sets ...[]JoinTypeDef) *Builder {
	for _, set := range sets {
		for _, jt := range set {
			b.dialect.joinTypes[jt.Token] = jt
		}
	}
	return b
}

// Build returns the constructed dialect, auto-wiring features based on the
// config flags.
func (b *Builder) Build() *Dialect {
	cfg := b.config
	d := b.dialect

	b.Aggregates(cfg.Aggregates...)
	b.Windows(cfg.Windows...)
	b.Niladic(cfg.NiladicFunctions...)

	if cfg.Features.ILike {
		if _, ok := d.keywords["ilike"]; !ok {
			b.keyword("ILIKE", Reserved)
		}
		b.AddInfix(core.OperatorDef{Token: token.ILIKE, Precedence: core.PrecedenceComparison})
	}
	if cfg.Lexical.CastOperator {
		b.AddInfix(core.OperatorDef{Token: token.DCOLON, Symbol: "::", Precedence: core.PrecedencePostfix})
	}
	if cfg.Lexical.PipesAsConcat {
		b.AddInfix(core.OperatorDef{Token: token.DPIPE, Precedence: core.PrecedenceBitOr, Op: core.OpConcat})
	}
	if cfg.Features.JSONOperators {
		b.AddInfix(core.OperatorDef{Token: token.ARROW, Precedence: core.PrecedencePostfix, Op: core.OpJSONExtract})
		b.AddInfix(core.OperatorDef{Token: token.DARROW, Precedence: core.PrecedencePostfix, Op: core.OpJSONUnquote})
	}
	if cfg.Features.StraightJoin {
		b.JoinTypes([]JoinTypeDef{StraightJoin})
	}
	return d
}
