package parser

import "strings"

// Terminal recognizes a pattern at the scanner position. On success the
// cursor moves past the match only when advance is true; on failure the
// cursor never moves. Terminals do not report diagnostics.
type Terminal interface {
	Match(s *Scanner, advance bool) bool
}

var reserved = map[string]bool{
	"if":       true,
	"else":     true,
	"for":      true,
	"foreach":  true,
	"while":    true,
	"do":       true,
	"break":    true,
	"continue": true,
	"return":   true,
	"discard":  true,
	"true":     true,
	"false":    true,
}

// IsReserved reports whether word cannot be used as an identifier.
func IsReserved(word string) bool {
	return reserved[word]
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == '\v'
}

type Lit string

func (l Lit) Match(s *Scanner, advance bool) bool {
	if !s.HasPrefix(string(l)) {
		return false
	}
	if advance {
		s.Advance(len(l))
	}
	return true
}

type Char byte

func (c Char) Match(s *Scanner, advance bool) bool {
	if s.IsEOF() || s.Peek() != byte(c) {
		return false
	}
	if advance {
		s.Advance(1)
	}
	return true
}

// AnyChar matches one byte out of the set.
type AnyChar string

func (a AnyChar) Match(s *Scanner, advance bool) bool {
	if s.IsEOF() || strings.IndexByte(string(a), s.Peek()) < 0 {
		return false
	}
	if advance {
		s.Advance(1)
	}
	return true
}

// Keyword matches a word that is not immediately followed by an
// identifier character, so "for" does not match the start of "format".
type Keyword string

func (k Keyword) Match(s *Scanner, advance bool) bool {
	if !s.HasPrefix(string(k)) || isIdentChar(s.PeekAt(len(k))) {
		return false
	}
	if advance {
		s.Advance(len(k))
	}
	return true
}

// Op matches an operator that is not followed by any byte of Not.
// "+" with Not "+=" refuses the start of "++" and "+=".
type Op struct {
	Text string
	Not  string
}

func (o Op) Match(s *Scanner, advance bool) bool {
	if !s.HasPrefix(o.Text) {
		return false
	}
	if next := s.PeekAt(len(o.Text)); next != 0 && strings.IndexByte(o.Not, next) >= 0 {
		return false
	}
	if advance {
		s.Advance(len(o.Text))
	}
	return true
}

// Ident matches an identifier that is not a reserved word.
type Ident struct{}

func (Ident) Match(s *Scanner, advance bool) bool {
	n := identLen(s)
	if n == 0 || reserved[s.Text(s.Pos(), s.Pos()+n)] {
		return false
	}
	if advance {
		s.Advance(n)
	}
	return true
}

func identLen(s *Scanner) int {
	if !isLetter(s.Peek()) {
		return 0
	}
	n := 1
	for isIdentChar(s.PeekAt(n)) {
		n++
	}
	return n
}

// Number matches integer, hexadecimal and floating point literals with
// their optional suffixes.
type Number struct{}

func (Number) Match(s *Scanner, advance bool) bool {
	n, _ := numberLen(s)
	if n == 0 {
		return false
	}
	if advance {
		s.Advance(n)
	}
	return true
}

func numberLen(s *Scanner) (int, LiteralKind) {
	n := 0
	if s.Peek() == '0' && (s.PeekAt(1) == 'x' || s.PeekAt(1) == 'X') && isHexDigit(s.PeekAt(2)) {
		n = 2
		for isHexDigit(s.PeekAt(n)) {
			n++
		}
		n += intSuffixLen(s, n)
		if isIdentChar(s.PeekAt(n)) {
			return 0, 0
		}
		return n, LiteralInt
	}

	intDigits := 0
	for isDigit(s.PeekAt(n)) {
		n++
		intDigits++
	}
	isFloat := false
	bareDot := false
	if s.PeekAt(n) == '.' && (intDigits > 0 || isDigit(s.PeekAt(n+1))) {
		n++
		isFloat = true
		bareDot = !isDigit(s.PeekAt(n))
		for isDigit(s.PeekAt(n)) {
			n++
		}
	}
	if intDigits == 0 && !isFloat {
		return 0, 0
	}
	if e := s.PeekAt(n); e == 'e' || e == 'E' {
		m := n + 1
		if sign := s.PeekAt(m); sign == '+' || sign == '-' {
			m++
		}
		if isDigit(s.PeekAt(m)) {
			for isDigit(s.PeekAt(m)) {
				m++
			}
			n = m
			isFloat = true
		}
	}
	switch s.PeekAt(n) {
	case 'f', 'F', 'h', 'H', 'd', 'D':
		n++
		isFloat = true
	default:
		if !isFloat {
			n += intSuffixLen(s, n)
		} else if l := s.PeekAt(n); l == 'l' || l == 'L' {
			n++
		}
	}
	if isIdentChar(s.PeekAt(n)) {
		// 1.x is a swizzle of the integer 1.
		if bareDot {
			return intDigits, LiteralInt
		}
		return 0, 0
	}
	if isFloat {
		return n, LiteralFloat
	}
	return n, LiteralInt
}

func intSuffixLen(s *Scanner, at int) int {
	switch s.PeekAt(at) {
	case 'u', 'U', 'l', 'L':
		return 1
	}
	return 0
}

// Whitespace matches a single whitespace byte.
type Whitespace struct{}

func (Whitespace) Match(s *Scanner, advance bool) bool {
	if s.IsEOF() || !isSpace(s.Peek()) {
		return false
	}
	if advance {
		s.Advance(1)
	}
	return true
}

// EOL matches a line terminator: "\n" or "\r\n".
type EOL struct{}

func (EOL) Match(s *Scanner, advance bool) bool {
	n := 0
	switch {
	case s.HasPrefix("\r\n"):
		n = 2
	case s.HasPrefix("\n"):
		n = 1
	default:
		return false
	}
	if advance {
		s.Advance(n)
	}
	return true
}
