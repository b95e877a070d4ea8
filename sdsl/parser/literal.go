package parser

// widen adapts a parser of a concrete node type to one of an interface
// type, so it can sit in an Alternatives list.
func widen[T any, U any](p ParseFunc[T]) ParseFunc[U] {
	return func(s *Scanner, r *ParseResult) (U, bool) {
		v, ok := p(s, r)
		if !ok {
			var zero U
			return zero, false
		}
		return any(v).(U), true
	}
}

// nextTokenOffset is the offset of the next non-blank byte, used to place
// diagnostics on the token that is actually wrong.
func nextTokenOffset(s *Scanner) int {
	pos := s.Pos()
	Spaces0(s)
	next := s.Pos()
	s.SetPos(pos)
	return next
}

// missing builds the hard error for a required construct, unless a
// diagnostic for this failure has already been recorded deeper down.
func missing(s *Scanner, r *ParseResult, format string, args ...any) *ParseError {
	if r.HasErrors() {
		return nil
	}
	return NewError(s, nextTokenOffset(s), format, args...)
}

// expect consumes t after optional whitespace or reports msg as a hard
// error.
func expect(s *Scanner, r *ParseResult, start int, t Terminal, msg string) bool {
	if FollowedBy(s, t, true, true) {
		return true
	}
	return fail(s, r, start, missing(s, r, "%s", msg))
}

func parseIdentifier(s *Scanner, r *ParseResult) (*Identifier, bool) {
	start := s.Pos()
	if !(Ident{}).Match(s, true) {
		return Exit[*Identifier](s, r, start, nil)
	}
	return &Identifier{
		node: node{span: s.Span(start, s.Pos())},
		Name: s.Text(start, s.Pos()),
	}, true
}

func parseLiteral(s *Scanner, r *ParseResult) (*Literal, bool) {
	start := s.Pos()
	kind := LiteralKind(0)
	switch {
	case Keyword("true").Match(s, true), Keyword("false").Match(s, true):
		kind = LiteralBool
	default:
		n, k := numberLen(s)
		if n == 0 {
			return Exit[*Literal](s, r, start, nil)
		}
		s.Advance(n)
		kind = k
	}
	return &Literal{
		node:        node{span: s.Span(start, s.Pos())},
		LiteralKind: kind,
		Value:       s.Text(start, s.Pos()),
	}, true
}

// parseTypeName parses a type reference with optional generic arguments
// and array sizes: float4, Texture2D<float4>, matrix<float, 4, 4>, float[3].
func parseTypeName(s *Scanner, r *ParseResult) (*TypeName, bool) {
	start := s.Pos()
	if !(Ident{}).Match(s, true) {
		return Exit[*TypeName](s, r, start, nil)
	}
	t := &TypeName{Name: s.Text(start, s.Pos())}
	generics, _, ok := Optional(s, r, parseGenericArguments, true)
	if !ok {
		return Exit[*TypeName](s, r, start, nil)
	}
	sizes, _, ok := Optional(s, r, parseArraySizes, true)
	if !ok {
		return Exit[*TypeName](s, r, start, nil)
	}
	t.Generics = generics
	t.ArraySizes = sizes
	t.span = s.Span(start, s.Pos())
	return t, true
}

// parseGenericArguments parses <arg, ...>. Arguments may be generic types
// themselves, so each level counts against the nesting limit.
func parseGenericArguments(s *Scanner, r *ParseResult) ([]Node, bool) {
	start := s.Pos()
	if !Char('<').Match(s, true) {
		return Exit[[]Node](s, r, start, nil)
	}
	defer s.Leave()
	if !s.Enter() {
		return Exit[[]Node](s, r, start, missing(s, r, "nesting too deep"))
	}
	Spaces0(s)
	args, ok := Repeat(s, r, parseTypeArgument, 1, true, Char(','), nil)
	if !ok || !FollowedBy(s, Char('>'), true, true) {
		return Exit[[]Node](s, r, start, nil)
	}
	return args, true
}

func parseTypeArgument(s *Scanner, r *ParseResult) (Node, bool) {
	return Alternatives(s, r, nil,
		widen[*TypeName, Node](parseTypeName),
		widen[*Literal, Node](parseLiteral),
	)
}

// parseArraySizes parses one or more [size] suffixes. An empty pair of
// brackets yields an EmptyExpression.
func parseArraySizes(s *Scanner, r *ParseResult) ([]Expression, bool) {
	return Repeat(s, r, parseArraySize, 1, true, nil, nil)
}

func parseArraySize(s *Scanner, r *ParseResult) (Expression, bool) {
	start := s.Pos()
	if !Char('[').Match(s, true) {
		return Exit[Expression](s, r, start, nil)
	}
	Spaces0(s)
	if Char(']').Match(s, false) {
		pos := s.Pos()
		s.Advance(1)
		return &EmptyExpression{node: node{span: s.Span(pos, pos)}}, true
	}
	size, ok := parseExpression(s, r)
	if !ok {
		return Exit[Expression](s, r, start, missing(s, r, "expected array size or ']'"))
	}
	if !expect(s, r, start, Char(']'), "expected ']' after array size") {
		return nil, false
	}
	return size, true
}
