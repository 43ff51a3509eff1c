package output

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Diagnostic describes a rejected input for display.
type Diagnostic struct {
	Source   string // file name, or "<stdin>"
	Text     string // the full input
	Stage    string
	Line     int
	Column   int
	Offset   int
	Message  string
	Expected []string
}

// Diagnostic writes d to stderr: a location header, the offending source
// line and a caret under the error position.
func (r *Renderer) Diagnostic(d Diagnostic) {
	w := r.errOut
	s := r.styles

	header := fmt.Sprintf("%s:%d:%d: %s error: %s", d.Source, d.Line, d.Column, d.Stage, d.Message)
	_, _ = fmt.Fprintln(w, s.Error.Render(header))

	line, caret, ok := sourceLine(d.Text, d.Offset)
	if ok {
		gutter := fmt.Sprintf("%4d | ", d.Line)
		pad := strings.Repeat(" ", len(gutter)-2) + "| "
		_, _ = fmt.Fprintln(w, s.Muted.Render(gutter)+line)
		_, _ = fmt.Fprintln(w, s.Muted.Render(pad)+strings.Repeat(" ", caret)+s.Caret.Render("^"))
	}
	if len(d.Expected) > 0 {
		_, _ = fmt.Fprintln(w, s.Muted.Render("expected: ")+strings.Join(d.Expected, ", "))
	}
}

// sourceLine returns the line of text containing offset and the caret column
// within it, counted in runes. Tabs expand to four spaces.
func sourceLine(text string, offset int) (line string, caret int, ok bool) {
	if offset < 0 || offset > len(text) {
		return "", 0, false
	}
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += offset
	}
	line = strings.TrimRight(text[start:end], "\r")
	prefix := text[start:offset]
	caret = utf8.RuneCountInString(prefix)
	if tabs := strings.Count(prefix, "\t"); tabs > 0 {
		line = strings.ReplaceAll(line, "\t", "    ")
		caret += tabs * 3
	}
	return line, caret, true
}
