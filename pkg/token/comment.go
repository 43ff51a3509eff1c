package token

import "strings"

// CommentKind is the syntactic form of a comment.
type CommentKind int

// Comment kinds. Executable /*! */ comments are not comments: their body is
// lexed as SQL.
const (
	LineComment  CommentKind = iota // -- text or # text
	BlockComment                    // /* text */
)

func (k CommentKind) String() string {
	if k == BlockComment {
		return "block"
	}
	return "line"
}

// Comment is a comment skipped by the lexer, kept for formatting.
type Comment struct {
	Kind CommentKind
	Text string // as written, delimiters included
	Span Span
}

// Body returns the comment text without its delimiters and surrounding
// whitespace.
func (c *Comment) Body() string {
	text := c.Text
	if c.Kind == BlockComment {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	} else if rest, ok := strings.CutPrefix(text, "--"); ok {
		text = rest
	} else {
		text = strings.TrimPrefix(text, "#")
	}
	return strings.TrimSpace(text)
}
