package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Sentinel errors for resource limits.
var (
	// ErrInputTooLarge is returned when the SQL text exceeds Limits.MaxInputBytes.
	ErrInputTooLarge = errors.New("input too large")
	// ErrDepthExceeded is wrapped by the ParseError raised when nesting
	// exceeds Limits.MaxDepth.
	ErrDepthExceeded = errors.New("maximum nesting depth exceeded")
)

// LexReason classifies a lexical error.
type LexReason int

// LexReason constants.
const (
	UnterminatedLiteral LexReason = iota
	InvalidEscape
	UnrecognizedCharacter
	InputTooLarge
)

var lexReasonNames = [...]string{
	"unterminated literal",
	"invalid escape",
	"unrecognized character",
	"input too large",
}

func (r LexReason) String() string {
	if int(r) < len(lexReasonNames) {
		return lexReasonNames[r]
	}
	return fmt.Sprintf("LexReason(%d)", int(r))
}

// LexError represents a lexical analysis error.
type LexError struct {
	Reason  LexReason
	Pos     token.Position
	Message string
	Err     error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d (offset %d): %s",
		e.Pos.Line, e.Pos.Column, e.Pos.Offset, e.Message)
}

// Unwrap returns the sentinel behind the error, if any.
func (e *LexError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing error at the offending token.
// Expected lists the productions that were viable at that position.
type ParseError struct {
	Pos      token.Position
	Found    token.Token
	Expected []string
	Message  string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d (offset %d): %s",
		e.Pos.Line, e.Pos.Column, e.Pos.Offset, e.Message)
}

// Unwrap returns the sentinel behind the error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// unexpectedMessage renders "unexpected X, expected a or b".
func unexpectedMessage(found token.Token, expected []string) string {
	if len(expected) == 0 {
		return fmt.Sprintf("unexpected %s", found)
	}
	return fmt.Sprintf("unexpected %s, expected %s", found, joinAlternatives(expected))
}

func joinAlternatives(items []string) string {
	switch len(items) {
	case 1:
		return items[0]
	case 2:
		return items[0] + " or " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
