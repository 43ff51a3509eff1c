// Package format renders core statements back to canonical SQL text.
package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

const indentSize = 2

// Printer handles SQL formatting with proper indentation and style.
type Printer struct {
	dialect     *dialect.Dialect
	output      *bytes.Buffer
	depth       int
	atLineStart bool
}

func newPrinter(d *dialect.Dialect) *Printer {
	return &Printer{
		dialect:     d,
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n") + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

// newline ends the current line unless it is already empty.
func (p *Printer) newline() {
	if !p.atLineStart {
		p.writeln()
	}
}

// trimNewlines drops trailing line breaks so a terminator can follow the
// last token.
func (p *Printer) trimNewlines() {
	b := p.output.Bytes()
	n := len(b)
	for n > 0 && b[n-1] == '\n' {
		n--
	}
	p.output.Truncate(n)
	p.atLineStart = n == 0
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

// keyword writes one or more words separated by spaces, upper-cased.
func (p *Printer) keyword(words ...string) {
	for i, w := range words {
		if i > 0 {
			p.space()
		}
		p.write(strings.ToUpper(w))
	}
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	if p.atLineStart {
		return
	}
	p.output.WriteByte(' ')
}

// kw prints keywords from their token types.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// formatList prints a list of items with separators.
// count is the number of items, format is called for each index,
// sep is the separator string, multiline adds newlines after separators.
func (p *Printer) formatList(count int, format func(i int), sep string, multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
			if multiline {
				p.writeln()
			}
		}
	}
}

// ---------- Names and Strings ----------

func (p *Printer) ident(id *core.Identifier) {
	if id == nil {
		return
	}
	if id.Quoted || !dialect.IsPlainWord(id.Value) {
		p.write(p.dialect.QuoteIdentifier(id.Value))
		return
	}
	p.write(id.Value)
}

func (p *Printer) idents(ids []*core.Identifier) {
	p.formatList(len(ids), func(i int) { p.ident(ids[i]) }, ", ", false)
}

// parenIdents prints (a, b, c).
func (p *Printer) parenIdents(ids []*core.Identifier) {
	p.write("(")
	p.idents(ids)
	p.write(")")
}

func (p *Printer) qualified(schema, name *core.Identifier) {
	if schema != nil {
		p.ident(schema)
		p.write(".")
	}
	p.ident(name)
}

// str writes s as a single-quoted string literal for the dialect.
func (p *Printer) str(s string) {
	if p.dialect.Config().Lexical.BackslashEscapes {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	p.write("'" + strings.ReplaceAll(s, "'", "''") + "'")
}

func (p *Printer) strs(list []string) {
	p.formatList(len(list), func(i int) { p.str(list[i]) }, ", ", false)
}

// word writes a name that was accepted as either a word or a string, such
// as a character set name.
func (p *Printer) word(s string) {
	if dialect.IsPlainWord(s) {
		p.write(s)
		return
	}
	p.str(s)
}
