package parser

import (
	"fmt"
	"sort"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// Comment is a comment skipped as whitespace during the parse.
type Comment struct {
	Span Span
	Text string
}

// Scanner owns the source buffer and the cursor every parser moves.
// Saving a position is reading Pos; backtracking is SetPos with the saved
// value. A Scanner belongs to a single parse and must not be shared.
type Scanner struct {
	input []byte
	file  string
	pos   int
	end   int
	lines []int

	depth    int
	maxDepth int

	captureComments bool
	comments        map[int]Comment
}

const defaultMaxDepth = 256

func NewScanner(input []byte, file string) *Scanner {
	s := &Scanner{
		input:    input,
		file:     file,
		end:      len(input),
		lines:    []int{0},
		maxDepth: defaultMaxDepth,
	}
	for i, ch := range input {
		if ch == '\n' {
			s.lines = append(s.lines, i+1)
		}
	}
	return s
}

func (s *Scanner) File() string   { return s.file }
func (s *Scanner) Source() []byte { return s.input }
func (s *Scanner) Pos() int       { return s.pos }
func (s *Scanner) End() int       { return s.end }
func (s *Scanner) IsEOF() bool    { return s.pos >= s.end }

// SetPos restores a position previously read with Pos.
func (s *Scanner) SetPos(pos int) {
	switch {
	case pos < 0:
		s.pos = 0
	case pos > s.end:
		s.pos = s.end
	default:
		s.pos = pos
	}
}

// Poison moves the cursor to the end of input so that no enclosing
// alternative can match again.
func (s *Scanner) Poison() {
	s.pos = s.end
}

func (s *Scanner) Peek() byte {
	return s.PeekAt(0)
}

func (s *Scanner) PeekAt(n int) byte {
	if s.pos+n >= s.end || s.pos+n < 0 {
		return 0
	}
	return s.input[s.pos+n]
}

func (s *Scanner) Advance(n int) {
	s.SetPos(s.pos + n)
}

func (s *Scanner) HasPrefix(lit string) bool {
	if s.pos+len(lit) > s.end {
		return false
	}
	return string(s.input[s.pos:s.pos+len(lit)]) == lit
}

func (s *Scanner) Text(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > s.end {
		end = s.end
	}
	if start >= end {
		return ""
	}
	return string(s.input[start:end])
}

// Position resolves a byte offset into a line/column position.
func (s *Scanner) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > s.end {
		offset = s.end
	}
	line := sort.Search(len(s.lines), func(i int) bool { return s.lines[i] > offset }) - 1
	return Position{
		File:   s.file,
		Offset: offset,
		Line:   line + 1,
		Column: offset - s.lines[line] + 1,
	}
}

func (s *Scanner) Span(start, end int) Span {
	return Span{Start: s.Position(start), End: s.Position(end)}
}

// LineText returns the full text of the line containing offset, without
// the line terminator.
func (s *Scanner) LineText(offset int) string {
	p := s.Position(offset)
	start := s.lines[p.Line-1]
	end := s.end
	if p.Line < len(s.lines) {
		end = s.lines[p.Line] - 1
	}
	if end > start && s.input[end-1] == '\r' {
		end--
	}
	return s.Text(start, end)
}

// Enter records one more level of grammar nesting. It reports false once
// the configured maximum depth is exceeded; callers still call Leave.
func (s *Scanner) Enter() bool {
	s.depth++
	return s.depth <= s.maxDepth
}

func (s *Scanner) Leave() {
	s.depth--
}

func (s *Scanner) recordComment(start, end int) {
	if !s.captureComments {
		return
	}
	if s.comments == nil {
		s.comments = make(map[int]Comment)
	}
	if _, ok := s.comments[start]; ok {
		return
	}
	s.comments[start] = Comment{Span: s.Span(start, end), Text: s.Text(start, end)}
}

// Comments returns the recorded comments in source order.
func (s *Scanner) Comments() []Comment {
	out := make([]Comment, 0, len(s.comments))
	for _, c := range s.comments {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Span.Start.Offset < out[j].Span.Start.Offset })
	return out
}
