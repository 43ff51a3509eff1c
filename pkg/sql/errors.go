package sql

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlfront/pkg/builder"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Stage names the pipeline stage that rejected the input.
type Stage int

// Stage constants.
const (
	StageLex Stage = iota
	StageParse
	StageBuild
)

var stageNames = [...]string{"lex", "parse", "build"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Error is the unified failure of Parse. It flattens the position of the
// stage error and wraps it, so errors.As still reaches *parser.LexError,
// *parser.ParseError or *builder.BuildError.
type Error struct {
	Stage    Stage
	Offset   int
	Line     int
	Column   int
	Message  string
	Expected []string
	Err      error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the stage error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Position returns the location of the error.
func (e *Error) Position() token.Position {
	return token.Position{Line: e.Line, Column: e.Column, Offset: e.Offset}
}

// wrapError converts a stage error. Errors of any other kind pass through.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var (
		lexErr   *parser.LexError
		parseErr *parser.ParseError
		buildErr *builder.BuildError
	)
	switch {
	case errors.As(err, &lexErr):
		return newError(StageLex, lexErr.Pos, lexErr.Message, nil, err)
	case errors.As(err, &parseErr):
		return newError(StageParse, parseErr.Pos, parseErr.Message, parseErr.Expected, err)
	case errors.As(err, &buildErr):
		return newError(StageBuild, buildErr.Pos(), buildErr.Message, nil, err)
	}
	return err
}

func newError(stage Stage, pos token.Position, msg string, expected []string, err error) *Error {
	return &Error{
		Stage:    stage,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
		Message:  msg,
		Expected: expected,
		Err:      err,
	}
}
