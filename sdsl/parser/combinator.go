package parser

// ParseFunc is a non-terminal parser. It returns the parsed value and
// whether it matched. A parser that fails must leave through Exit.
type ParseFunc[T any] func(s *Scanner, r *ParseResult) (T, bool)

// Exit is the single failure path of every non-terminal.
//
// With a hard error the diagnostic is recorded and the scanner is poisoned,
// so that no enclosing alternative can silently recover. Without one the
// cursor returns to start, but only while no diagnostic has been recorded
// anywhere in the parse; afterwards it stays where the parser stopped.
func Exit[T any](s *Scanner, r *ParseResult, start int, hard *ParseError) (T, bool) {
	var zero T
	fail(s, r, start, hard)
	return zero, false
}

func fail(s *Scanner, r *ParseResult, start int, hard *ParseError) bool {
	if hard != nil {
		r.Add(*hard)
		s.Poison()
		return false
	}
	if !r.HasErrors() {
		s.SetPos(start)
	}
	return false
}

// Spaces0 skips whitespace and comments. It always succeeds.
func Spaces0(s *Scanner) bool {
	for !s.IsEOF() {
		switch {
		case isSpace(s.Peek()):
			s.Advance(1)
		case s.HasPrefix("//"):
			start := s.Pos()
			Until(s, EOL{}, false)
			s.recordComment(start, s.Pos())
		case s.HasPrefix("/*"):
			start := s.Pos()
			s.Advance(2)
			Until(s, Lit("*/"), true)
			s.recordComment(start, s.Pos())
		default:
			return true
		}
	}
	return true
}

// FollowedBy tests for a terminal, optionally after whitespace. When
// advance is false the cursor is restored even on success.
func FollowedBy(s *Scanner, t Terminal, withSpaces, advance bool) bool {
	start := s.Pos()
	if withSpaces {
		Spaces0(s)
	}
	if t.Match(s, advance) {
		if !advance {
			s.SetPos(start)
		}
		return true
	}
	s.SetPos(start)
	return false
}

// FollowedByParser is FollowedBy for non-terminals.
func FollowedByParser[T any](s *Scanner, r *ParseResult, p ParseFunc[T], withSpaces, advance bool) (T, bool) {
	start := s.Pos()
	if withSpaces {
		Spaces0(s)
	}
	if v, ok := p(s, r); ok {
		if !advance {
			s.SetPos(start)
		}
		return v, true
	}
	return Exit[T](s, r, start, nil)
}

// Optional runs p, optionally after whitespace. matched reports whether p
// matched; ok is false only when a diagnostic has been recorded, which the
// caller must pass on through Exit.
func Optional[T any](s *Scanner, r *ParseResult, p ParseFunc[T], withSpaces bool) (v T, matched, ok bool) {
	if v, found := FollowedByParser(s, r, p, withSpaces, true); found {
		return v, true, true
	}
	return v, false, !r.HasErrors()
}

// Alternatives tries each parser in order and commits to the first match.
func Alternatives[T any](s *Scanner, r *ParseResult, hard *ParseError, parsers ...ParseFunc[T]) (T, bool) {
	start := s.Pos()
	for _, p := range parsers {
		if v, ok := p(s, r); ok {
			return v, true
		}
		if r.HasErrors() {
			break
		}
	}
	return Exit[T](s, r, start, hard)
}

// Sequence runs every parser in order and fails as a whole if one fails.
func Sequence[T any](s *Scanner, r *ParseResult, hard *ParseError, parsers ...ParseFunc[T]) ([]T, bool) {
	start := s.Pos()
	out := make([]T, 0, len(parsers))
	for _, p := range parsers {
		v, ok := p(s, r)
		if !ok {
			return Exit[[]T](s, r, start, hard)
		}
		out = append(out, v)
	}
	return out, true
}

// Until advances one byte at a time until the delimiter matches or the
// input ends. It reports whether the delimiter was found; with advance the
// delimiter itself is consumed.
func Until(s *Scanner, delimiter Terminal, advance bool) bool {
	for !s.IsEOF() {
		if delimiter.Match(s, advance) {
			return true
		}
		s.Advance(1)
	}
	return false
}

// Repeat collects items parsed by p. With a separator, items must be
// separated by it and a consumed separator requires a following item.
// Whitespace after the last item is left unconsumed. Fewer than minimum
// items is a failure.
func Repeat[T any](s *Scanner, r *ParseResult, p ParseFunc[T], minimum int, withSpaces bool, separator Terminal, hard *ParseError) ([]T, bool) {
	start := s.Pos()
	last := start
	var items []T
	for {
		before := s.Pos()
		v, ok := p(s, r)
		if !ok {
			if r.HasErrors() {
				return Exit[[]T](s, r, start, nil)
			}
			if separator != nil && len(items) > 0 {
				return Exit[[]T](s, r, start, hard)
			}
			s.SetPos(last)
			break
		}
		items = append(items, v)
		if s.Pos() == before {
			break
		}
		last = s.Pos()
		if withSpaces {
			Spaces0(s)
		}
		if separator == nil {
			continue
		}
		if !separator.Match(s, true) {
			s.SetPos(last)
			break
		}
		if withSpaces {
			Spaces0(s)
		}
	}
	if len(items) < minimum {
		return Exit[[]T](s, r, start, hard)
	}
	return items, true
}

// List parses p {separator p}. The first item may fail softly; once a
// separator is consumed the next item is required and its absence is
// reported as a hard error with msg at the missing item.
func List[T any](s *Scanner, r *ParseResult, p ParseFunc[T], separator Terminal, msg string) ([]T, bool) {
	start := s.Pos()
	first, ok := p(s, r)
	if !ok {
		return Exit[[]T](s, r, start, nil)
	}
	items := []T{first}
	for FollowedBy(s, separator, true, true) {
		Spaces0(s)
		v, ok := p(s, r)
		if !ok {
			return Exit[[]T](s, r, start, missing(s, r, "%s", msg))
		}
		items = append(items, v)
	}
	return items, true
}
