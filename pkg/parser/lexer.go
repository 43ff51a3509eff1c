package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Lexer tokenizes SQL input for one dialect.
//
// Keywords are classified through the dialect keyword table: a word the
// dialect does not list is an identifier, even when another dialect treats it
// as a keyword. Comments never become tokens; they are collected in Comments.
type Lexer struct {
	input        string
	d            *dialect.Dialect
	lex          core.LexicalFeatures
	dollarParams bool

	pos  int // offset of the next unread byte
	line int
	col  int

	inExec    bool // inside /*! ... */
	execStart token.Position
	prev      token.Token

	// Comments collected during lexing (for formatter)
	Comments []*token.Comment
}

// NewLexer creates a Lexer for input using the lexical rules of d.
func NewLexer(input string, d *dialect.Dialect) *Lexer {
	cfg := d.Config()
	return &Lexer{
		input:        input,
		d:            d,
		lex:          cfg.Lexical,
		dollarParams: cfg.Placeholder == core.PlaceholderDollar,
		line:         1,
		col:          1,
	}
}

// Tokenize returns all tokens of text, ending with EOF.
func Tokenize(text string, d *dialect.Dialect, opts ...Option) ([]token.Token, error) {
	if err := checkInput(text, buildLimits(opts)); err != nil {
		return nil, err
	}
	return NewLexer(text, d).All()
}

func checkInput(text string, lim Limits) error {
	if lim.MaxInputBytes <= 0 || len(text) <= lim.MaxInputBytes {
		return nil
	}
	return &LexError{
		Reason:  InputTooLarge,
		Pos:     positionAt(text, lim.MaxInputBytes),
		Message: fmt.Sprintf("input of %d bytes exceeds the limit of %d bytes", len(text), lim.MaxInputBytes),
		Err:     ErrInputTooLarge,
	}
}

// positionAt computes the line and column of a byte offset.
func positionAt(text string, offset int) token.Position {
	if offset > len(text) {
		offset = len(text)
	}
	head := text[:offset]
	line := strings.Count(head, "\n") + 1
	col := offset - strings.LastIndexByte(head, '\n')
	return token.Position{Line: line, Column: col, Offset: offset}
}

// All lexes the remaining input.
func (l *Lexer) All() ([]token.Token, error) {
	toks := make([]token.Token, 0, len(l.input)/5+1)
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// Next returns the next token.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}
	start := l.position()
	if l.pos >= len(l.input) {
		if l.inExec {
			return token.Token{}, l.errorAt(UnterminatedLiteral, l.execStart, "unterminated executable comment")
		}
		return token.Token{Type: token.EOF, Pos: start, End: start}, nil
	}
	tok, err := l.scan(start)
	if err != nil {
		return token.Token{}, err
	}
	l.prev = tok
	return tok, nil
}

// ---------- Cursor ----------

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) peekByte(n int) byte {
	if l.pos+n < len(l.input) {
		return l.input[l.pos+n]
	}
	return 0
}

func (l *Lexer) advance(n int) {
	for ; n > 0 && l.pos < len(l.input); n-- {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) emit(tt token.TokenType, start token.Position, literal string) token.Token {
	return token.Token{
		Type:    tt,
		Literal: literal,
		Raw:     l.input[start.Offset:l.pos],
		Pos:     start,
		End:     l.position(),
	}
}

func (l *Lexer) errorAt(reason LexReason, pos token.Position, format string, args ...any) *LexError {
	return &LexError{Reason: reason, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ---------- Whitespace and Comments ----------

func (l *Lexer) skipTrivia() error {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case isSpace(c):
			l.advance(1)
		case c == '#' && l.lex.HashComments:
			l.lineComment()
		case c == '-' && l.peekByte(1) == '-' && l.dashComment():
			l.lineComment()
		case c == '/' && l.peekByte(1) == '*':
			if l.lex.ExecutableComments && l.peekByte(2) == '!' && !l.inExec {
				l.openExecutable()
				continue
			}
			if err := l.blockComment(); err != nil {
				return err
			}
		case c == '*' && l.peekByte(1) == '/' && l.inExec:
			l.advance(2)
			l.inExec = false
		default:
			return nil
		}
	}
	return nil
}

// dashComment reports whether "--" at the cursor starts a comment. MySQL
// requires whitespace or a control character after the dashes.
func (l *Lexer) dashComment() bool {
	if !l.lex.DashCommentNeedsSpace {
		return true
	}
	next := l.peekByte(2)
	return l.pos+2 >= len(l.input) || next <= ' '
}

func (l *Lexer) lineComment() {
	start := l.position()
	end := strings.IndexByte(l.input[l.pos:], '\n')
	if end < 0 {
		end = len(l.input) - l.pos
	}
	l.advance(end)
	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.LineComment,
		Text: l.input[start.Offset:l.pos],
		Span: token.Span{Start: start, End: l.position()},
	})
}

func (l *Lexer) blockComment() error {
	start := l.position()
	end := strings.Index(l.input[l.pos+2:], "*/")
	if end < 0 {
		return l.errorAt(UnterminatedLiteral, start, "unterminated block comment")
	}
	l.advance(end + 4)
	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[start.Offset:l.pos],
		Span: token.Span{Start: start, End: l.position()},
	})
	return nil
}

// openExecutable enters a /*! or /*!NNNNN comment whose body is lexed as SQL.
func (l *Lexer) openExecutable() {
	l.execStart = l.position()
	l.advance(3)
	for i := 0; i < 6 && isDigit(l.peekByte(0)); i++ {
		l.advance(1)
	}
	l.inExec = true
}

// ---------- Tokens ----------

func (l *Lexer) scan(start token.Position) (token.Token, error) {
	c := l.input[l.pos]
	switch {
	case c == '\'':
		return l.scanString(start, 0, token.STRING)
	case c == '"':
		if l.lex.AnsiQuotes {
			return l.scanQuotedIdent(start)
		}
		return l.scanString(start, 0, token.STRING)
	case c == '`' && l.lex.BacktickIdentifiers:
		return l.scanQuotedIdent(start)
	case isDigit(c):
		return l.scanNumber(start)
	case c == '.' && isDigit(l.peekByte(1)) && !l.afterName():
		return l.scanNumber(start)
	case c == '@':
		return l.scanVariable(start)
	case c == '?':
		l.advance(1)
		return l.emit(token.PARAM, start, "?"), nil
	case c == '$' && l.dollarParams && isDigit(l.peekByte(1)):
		l.advance(1)
		for isDigit(l.peekByte(0)) {
			l.advance(1)
		}
		return l.emit(token.PARAM, start, l.input[start.Offset:l.pos]), nil
	case isIdentStart(c) && l.identRun(l.pos) > 0:
		return l.scanWord(start)
	}
	if tok, ok := l.scanSymbol(start); ok {
		return tok, nil
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if r == utf8.RuneError && size <= 1 {
		return token.Token{}, l.errorAt(UnrecognizedCharacter, start, "invalid UTF-8 byte %#x", c)
	}
	return token.Token{}, l.errorAt(UnrecognizedCharacter, start, "unrecognized character %q", r)
}

// afterName reports whether the previous token is a name ending right at the
// cursor, so that ".5" in "t.5" is a qualifier dot rather than a number.
func (l *Lexer) afterName() bool {
	if l.prev.End.Offset != l.pos || l.pos == 0 {
		return false
	}
	return l.prev.Type == token.IDENT || token.IsKeyword(l.prev.Type)
}

func (l *Lexer) scanWord(start token.Position) (token.Token, error) {
	c, next := l.input[l.pos], l.peekByte(1)
	if next == '\'' {
		switch c {
		case 'x', 'X':
			return l.scanHexString(start)
		case 'b', 'B':
			return l.scanBitString(start)
		case 'n', 'N':
			return l.scanString(start, 1, token.NSTRING)
		case 'e', 'E':
			if l.lex.EscapeStrings {
				return l.scanEscapeString(start)
			}
		}
	}
	l.advance(l.identRun(l.pos))
	word := l.input[start.Offset:l.pos]
	if kw, ok := l.d.LookupKeyword(word); ok {
		return l.emit(kw.Type, start, word), nil
	}
	return l.emit(token.IDENT, start, word), nil
}

// identRun returns the length of the identifier-character run at offset.
// Bytes that are not valid UTF-8 end the run.
func (l *Lexer) identRun(offset int) int {
	n := 0
	for offset+n < len(l.input) {
		c := l.input[offset+n]
		if c < utf8.RuneSelf {
			if !isIdentChar(c) {
				break
			}
			n++
			continue
		}
		r, size := utf8.DecodeRuneInString(l.input[offset+n:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		n += size
	}
	return n
}

// readDelimited reads a quoted run starting at the opening quote. Doubled
// quotes stand for the quote itself; backslash escapes are resolved when
// escapes is set.
func (l *Lexer) readDelimited(escapes bool) (string, bool) {
	quote := l.input[l.pos]
	l.advance(1)
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == quote:
			if l.peekByte(1) == quote {
				sb.WriteByte(quote)
				l.advance(2)
				continue
			}
			l.advance(1)
			return sb.String(), true
		case c == '\\' && escapes:
			if l.pos+1 >= len(l.input) {
				return "", false
			}
			sb.WriteString(mysqlEscape(l.input[l.pos+1]))
			l.advance(2)
		default:
			sb.WriteByte(c)
			l.advance(1)
		}
	}
	return "", false
}

// mysqlEscape resolves the character after a backslash. \% and \_ keep
// their backslash so LIKE patterns can still tell them from wildcards.
func mysqlEscape(c byte) string {
	switch c {
	case '0':
		return "\x00"
	case 'b':
		return "\b"
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	case 't':
		return "\t"
	case 'Z':
		return "\x1a"
	case '%', '_':
		return "\\" + string(c)
	}
	return string(c)
}

func (l *Lexer) scanString(start token.Position, prefix int, tt token.TokenType) (token.Token, error) {
	l.advance(prefix)
	s, ok := l.readDelimited(l.lex.BackslashEscapes)
	if !ok {
		return token.Token{}, l.errorAt(UnterminatedLiteral, start, "unterminated string literal")
	}
	return l.emit(tt, start, s), nil
}

func (l *Lexer) scanQuotedIdent(start token.Position) (token.Token, error) {
	s, ok := l.readDelimited(false)
	if !ok {
		return token.Token{}, l.errorAt(UnterminatedLiteral, start, "unterminated quoted identifier")
	}
	tok := l.emit(token.IDENT, start, s)
	tok.Quoted = true
	return tok, nil
}

func (l *Lexer) scanHexString(start token.Position) (token.Token, error) {
	l.advance(1)
	digits, ok := l.readDelimited(false)
	if !ok {
		return token.Token{}, l.errorAt(UnterminatedLiteral, start, "unterminated hexadecimal literal")
	}
	if !allOf(digits, isHexDigit) || len(digits)%2 != 0 {
		return token.Token{}, l.errorAt(InvalidEscape, start, "invalid hexadecimal literal X'%s'", digits)
	}
	return l.emit(token.HEX_STRING, start, digits), nil
}

func (l *Lexer) scanBitString(start token.Position) (token.Token, error) {
	l.advance(1)
	digits, ok := l.readDelimited(false)
	if !ok {
		return token.Token{}, l.errorAt(UnterminatedLiteral, start, "unterminated bit literal")
	}
	if !allOf(digits, isBitDigit) {
		return token.Token{}, l.errorAt(InvalidEscape, start, "invalid bit literal B'%s'", digits)
	}
	return l.emit(token.BIT_STRING, start, digits), nil
}

// scanEscapeString reads a PostgreSQL E'...' string.
func (l *Lexer) scanEscapeString(start token.Position) (token.Token, error) {
	l.advance(2)
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == '\'':
			if l.peekByte(1) == '\'' {
				sb.WriteByte('\'')
				l.advance(2)
				continue
			}
			l.advance(1)
			return l.emit(token.STRING, start, sb.String()), nil
		case c == '\\':
			if err := l.escapeSequence(&sb); err != nil {
				return token.Token{}, err
			}
		default:
			sb.WriteByte(c)
			l.advance(1)
		}
	}
	return token.Token{}, l.errorAt(UnterminatedLiteral, start, "unterminated string literal")
}

func (l *Lexer) escapeSequence(sb *strings.Builder) error {
	at := l.position()
	l.advance(1)
	if l.pos >= len(l.input) {
		return l.errorAt(UnterminatedLiteral, at, "unterminated escape sequence")
	}
	c := l.input[l.pos]
	if c >= '0' && c <= '7' {
		n := l.countRun(isOctalDigit, 3)
		v, _ := strconv.ParseUint(l.input[l.pos:l.pos+n], 8, 16)
		sb.WriteByte(byte(v))
		l.advance(n)
		return nil
	}
	l.advance(1)
	switch c {
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'x':
		n := l.countRun(isHexDigit, 2)
		if n == 0 {
			return l.errorAt(InvalidEscape, at, `invalid escape \x: expected hexadecimal digits`)
		}
		v, _ := strconv.ParseUint(l.input[l.pos:l.pos+n], 16, 8)
		sb.WriteByte(byte(v))
		l.advance(n)
	case 'u', 'U':
		width := 4
		if c == 'U' {
			width = 8
		}
		if l.countRun(isHexDigit, width) != width {
			return l.errorAt(InvalidEscape, at, `invalid escape \%c: expected %d hexadecimal digits`, c, width)
		}
		v, _ := strconv.ParseUint(l.input[l.pos:l.pos+width], 16, 32)
		if !utf8.ValidRune(rune(v)) {
			return l.errorAt(InvalidEscape, at, "invalid Unicode code point %X", v)
		}
		sb.WriteRune(rune(v))
		l.advance(width)
	default:
		sb.WriteByte(c)
	}
	return nil
}

// countRun counts up to max bytes at the cursor satisfying pred.
func (l *Lexer) countRun(pred func(byte) bool, limit int) int {
	n := 0
	for n < limit && l.pos+n < len(l.input) && pred(l.input[l.pos+n]) {
		n++
	}
	return n
}

func (l *Lexer) scanNumber(start token.Position) (token.Token, error) {
	run := l.input[l.pos : l.pos+l.identRun(l.pos)]
	if len(run) > 2 && run[0] == '0' {
		switch run[1] {
		case 'x', 'X':
			if allOf(run[2:], isHexDigit) {
				l.advance(len(run))
				return l.emit(token.HEX_STRING, start, run[2:]), nil
			}
		case 'b', 'B':
			if allOf(run[2:], isBitDigit) {
				l.advance(len(run))
				return l.emit(token.BIT_STRING, start, run[2:]), nil
			}
		}
	}
	if run != "" && !allOf(run, isDigit) && !l.exponentAhead(run) && l.lex.DigitLeadingIdents {
		l.advance(len(run))
		return l.emit(token.IDENT, start, run), nil
	}

	for isDigit(l.peekByte(0)) {
		l.advance(1)
	}
	if l.peekByte(0) == '.' {
		l.advance(1)
		for isDigit(l.peekByte(0)) {
			l.advance(1)
		}
	}
	if e := l.peekByte(0); e == 'e' || e == 'E' {
		n := 1
		if s := l.peekByte(1); s == '+' || s == '-' {
			n++
		}
		if isDigit(l.peekByte(n)) {
			l.advance(n)
			for isDigit(l.peekByte(0)) {
				l.advance(1)
			}
		}
	}
	text := l.input[start.Offset:l.pos]
	return l.emit(token.NUMBER, start, text), nil
}

// exponentAhead reports whether an identifier-character run such as "1e10"
// or "1e" followed by a signed exponent is really a number.
func (l *Lexer) exponentAhead(run string) bool {
	i := 0
	for i < len(run) && isDigit(run[i]) {
		i++
	}
	if i == 0 || i >= len(run) || (run[i] != 'e' && run[i] != 'E') {
		return false
	}
	rest := run[i+1:]
	if rest == "" {
		after := l.pos + len(run)
		return after+1 < len(l.input) && (l.input[after] == '+' || l.input[after] == '-') && isDigit(l.input[after+1])
	}
	return allOf(rest, isDigit)
}

func (l *Lexer) scanVariable(start token.Position) (token.Token, error) {
	next := l.peekByte(1)
	switch {
	case next == '@':
		l.advance(2)
		return l.emit(token.AT_AT, start, "@@"), nil
	case next == '\'' || next == '"' || next == '`':
		l.advance(1)
		name, ok := l.readDelimited(false)
		if !ok {
			return token.Token{}, l.errorAt(UnterminatedLiteral, start, "unterminated variable name")
		}
		tok := l.emit(token.USER_VAR, start, name)
		tok.Quoted = true
		return tok, nil
	case l.identRun(l.pos+1) > 0 || next == '.':
		l.advance(1)
		for {
			if n := l.identRun(l.pos); n > 0 {
				l.advance(n)
			} else if l.peekByte(0) == '.' {
				l.advance(1)
			} else {
				break
			}
		}
		return l.emit(token.USER_VAR, start, l.input[start.Offset+1:l.pos]), nil
	}
	return token.Token{}, l.errorAt(UnrecognizedCharacter, start, "unrecognized character '@'")
}

type symbol struct {
	text string
	tt   token.TokenType
	cast bool // only with the :: cast operator enabled
}

// builtinSymbols is ordered so that longer operators match first.
var builtinSymbols = []symbol{
	{text: "<=>", tt: token.NSEQ},
	{text: "->>", tt: token.DARROW},
	{text: "->", tt: token.ARROW},
	{text: "::", tt: token.DCOLON, cast: true},
	{text: ":=", tt: token.ASSIGN},
	{text: "<<", tt: token.SHL},
	{text: ">>", tt: token.SHR},
	{text: "<=", tt: token.LE},
	{text: ">=", tt: token.GE},
	{text: "<>", tt: token.NE},
	{text: "!=", tt: token.NE},
	{text: "&&", tt: token.AMPAMP},
	{text: "||", tt: token.DPIPE},
	{text: "+", tt: token.PLUS},
	{text: "-", tt: token.MINUS},
	{text: "*", tt: token.STAR},
	{text: "/", tt: token.SLASH},
	{text: "%", tt: token.PERCENT},
	{text: "=", tt: token.EQ},
	{text: "<", tt: token.LT},
	{text: ">", tt: token.GT},
	{text: "!", tt: token.BANG},
	{text: "~", tt: token.TILDE},
	{text: "^", tt: token.CARET},
	{text: "&", tt: token.AMP},
	{text: "|", tt: token.PIPE},
	{text: ":", tt: token.COLON},
	{text: ".", tt: token.DOT},
	{text: ",", tt: token.COMMA},
	{text: ";", tt: token.SEMICOLON},
	{text: "(", tt: token.LPAREN},
	{text: ")", tt: token.RPAREN},
	{text: "[", tt: token.LBRACKET},
	{text: "]", tt: token.RBRACKET},
	{text: "{", tt: token.LBRACE},
	{text: "}", tt: token.RBRACE},
}

// scanSymbol matches dialect symbols first, then the builtin operators,
// longest match first.
func (l *Lexer) scanSymbol(start token.Position) (token.Token, bool) {
	rest := l.input[l.pos:]
	best, bestType := "", token.ILLEGAL
	for text, tt := range l.d.Symbols() {
		if len(text) > len(best) && strings.HasPrefix(rest, text) {
			best, bestType = text, tt
		}
	}
	for _, s := range builtinSymbols {
		if len(s.text) <= len(best) {
			break
		}
		if s.cast && !l.lex.CastOperator {
			continue
		}
		if strings.HasPrefix(rest, s.text) {
			best, bestType = s.text, s.tt
			break
		}
	}
	if best == "" {
		return token.Token{}, false
	}
	l.advance(len(best))
	return l.emit(bestType, start, best), true
}

// ---------- Character Classes ----------

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

func isBitDigit(c byte) bool {
	return c == '0' || c == '1'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '$' || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func allOf(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return false
		}
	}
	return true
}
