package parser

import (
	"fmt"
	"unicode/utf8"
)

const maxExcerpt = 40

// ParseError is a single diagnostic. Excerpt holds the source text at the
// error location, up to the end of its line.
type ParseError struct {
	Message  string
	Position Position
	Excerpt  string
}

func (e ParseError) Error() string {
	return e.Position.String() + ": " + e.Message
}

// NewError builds a diagnostic located at offset.
func NewError(s *Scanner, offset int, format string, args ...any) *ParseError {
	pos := s.Position(offset)
	line := s.LineText(offset)
	excerpt := ""
	if col := pos.Column - 1; col <= len(line) {
		excerpt = line[col:]
	}
	if len(excerpt) > maxExcerpt {
		cut := maxExcerpt
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
		Excerpt:  excerpt,
	}
}

// ParseResult accumulates the diagnostics of one parse invocation.
type ParseResult struct {
	Errors ParseErrors
}

func (r *ParseResult) Add(err ParseError) {
	r.Errors = append(r.Errors, err)
}

func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err returns the diagnostics as an error, or nil when there are none.
func (r *ParseResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors
}

type ParseErrors []ParseError

func (el ParseErrors) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
}
