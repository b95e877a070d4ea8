package parser

// Binary operator levels, loosest first. Each Op refuses the bytes that
// would turn it into a different operator, so "+" never eats the start of
// "++" or "+=" and "<" never eats "<<" or "<=".
var (
	logicalOrOps      = []Op{{Text: "||"}}
	logicalAndOps     = []Op{{Text: "&&"}}
	bitOrOps          = []Op{{Text: "|", Not: "|="}}
	bitXorOps         = []Op{{Text: "^", Not: "="}}
	bitAndOps         = []Op{{Text: "&", Not: "&="}}
	equalityOps       = []Op{{Text: "=="}, {Text: "!="}}
	relationalOps     = []Op{{Text: "<="}, {Text: ">="}, {Text: "<", Not: "<="}, {Text: ">", Not: ">="}}
	shiftOps          = []Op{{Text: "<<", Not: "="}, {Text: ">>", Not: "="}}
	additiveOps       = []Op{{Text: "+", Not: "+="}, {Text: "-", Not: "-="}}
	multiplicativeOps = []Op{{Text: "*", Not: "="}, {Text: "/", Not: "="}, {Text: "%", Not: "="}}

	unaryOps = []Op{{Text: "++"}, {Text: "--"}, {Text: "+", Not: "="}, {Text: "-", Not: "="}, {Text: "!", Not: "="}, {Text: "~"}}
)

func matchOp(s *Scanner, ops []Op) (string, bool) {
	for _, op := range ops {
		if op.Match(s, true) {
			return op.Text, true
		}
	}
	return "", false
}

// parseExpression is the entry point of the precedence chain.
func parseExpression(s *Scanner, r *ParseResult) (Expression, bool) {
	start := s.Pos()
	defer s.Leave()
	if !s.Enter() {
		return Exit[Expression](s, r, start, missing(s, r, "nesting too deep"))
	}
	return parseConditional(s, r)
}

func parseConditional(s *Scanner, r *ParseResult) (Expression, bool) {
	start := s.Pos()
	cond, ok := parseLogicalOr(s, r)
	if !ok {
		return Exit[Expression](s, r, start, nil)
	}
	if !FollowedBy(s, Char('?'), true, true) {
		return cond, true
	}
	Spaces0(s)
	then, ok := parseExpression(s, r)
	if !ok {
		return Exit[Expression](s, r, start, missing(s, r, "expected expression after '?'"))
	}
	if !expect(s, r, start, Char(':'), "expected ':' in conditional expression") {
		return nil, false
	}
	Spaces0(s)
	els, ok := parseExpression(s, r)
	if !ok {
		return Exit[Expression](s, r, start, missing(s, r, "expected expression after ':'"))
	}
	return &ConditionalExpression{
		node:      node{span: s.Span(start, s.Pos())},
		Condition: cond,
		Then:      then,
		Else:      els,
	}, true
}

// parseBinary parses one left-associative level: operands from next,
// joined by any of ops.
func parseBinary(s *Scanner, r *ParseResult, next ParseFunc[Expression], ops []Op) (Expression, bool) {
	start := s.Pos()
	left, ok := next(s, r)
	if !ok {
		return Exit[Expression](s, r, start, nil)
	}
	for {
		mark := s.Pos()
		Spaces0(s)
		op, found := matchOp(s, ops)
		if !found {
			s.SetPos(mark)
			return left, true
		}
		Spaces0(s)
		right, ok := next(s, r)
		if !ok {
			return Exit[Expression](s, r, start, missing(s, r, "expected expression after '%s'", op))
		}
		left = &BinaryExpression{
			node:  node{span: s.Span(start, s.Pos())},
			Left:  left,
			Op:    op,
			Right: right,
		}
	}
}

func parseLogicalOr(s *Scanner, r *ParseResult) (Expression, bool) {
	return parseBinary(s, r, parseLogicalAnd, logicalOrOps)
}

func parseLogicalAnd(s *Scanner, r *ParseResult) (Expression, bool) {
	return parseBinary(s, r, parseBitOr, logicalAndOps)
}

func parseBitOr(s *Scanner, r *ParseResult) (Expression, bool) {
	return parseBinary(s, r, parseBitXor, bitOrOps)
}

func parseBitXor(s *Scanner, r *ParseResult) (Expression, bool) {
	return parseBinary(s, r, parseBitAnd, bitXorOps)
}

func parseBitAnd(s *Scanner, r *ParseResult) (Expression, bool) {
	return parseBinary(s, r, parseEquality, bitAndOps)
}

func parseEquality(s *Scanner, r *ParseResult) (Expression, bool) {
	return parseBinary(s, r, parseRelational, equalityOps)
}

func parseRelational(s *Scanner, r *ParseResult) (Expression, bool) {
	return parseBinary(s, r, parseShift, relationalOps)
}

func parseShift(s *Scanner, r *ParseResult) (Expression, bool) {
	return parseBinary(s, r, parseAdditive, shiftOps)
}

func parseAdditive(s *Scanner, r *ParseResult) (Expression, bool) {
	return parseBinary(s, r, parseMultiplicative, additiveOps)
}

func parseMultiplicative(s *Scanner, r *ParseResult) (Expression, bool) {
	return parseBinary(s, r, parseUnary, multiplicativeOps)
}

func parseUnary(s *Scanner, r *ParseResult) (Expression, bool) {
	start := s.Pos()
	op, found := matchOp(s, unaryOps)
	if !found {
		return parsePostfix(s, r)
	}
	defer s.Leave()
	if !s.Enter() {
		return Exit[Expression](s, r, start, missing(s, r, "nesting too deep"))
	}
	Spaces0(s)
	operand, ok := parseUnary(s, r)
	if !ok {
		return Exit[Expression](s, r, start, missing(s, r, "expected expression after '%s'", op))
	}
	return &UnaryExpression{
		node:    node{span: s.Span(start, s.Pos())},
		Op:      op,
		Operand: operand,
	}, true
}

func parsePostfix(s *Scanner, r *ParseResult) (Expression, bool) {
	start := s.Pos()
	source, ok := parsePrimary(s, r)
	if !ok {
		return Exit[Expression](s, r, start, nil)
	}
	accessors, ok := Repeat(s, r, parseAccessor, 0, false, nil, nil)
	if !ok {
		return Exit[Expression](s, r, start, nil)
	}
	if len(accessors) == 0 {
		return source, true
	}
	return &PostfixExpression{
		node:      node{span: s.Span(start, s.Pos())},
		Source:    source,
		Accessors: accessors,
	}, true
}

// parseAccessor parses one postfix link, including the whitespace before
// it, so that a failed attempt leaves that whitespace unconsumed.
func parseAccessor(s *Scanner, r *ParseResult) (Accessor, bool) {
	before := s.Pos()
	Spaces0(s)
	start := s.Pos()
	switch {
	case Op{Text: "++"}.Match(s, true), Op{Text: "--"}.Match(s, true):
		return &IncrementAccess{
			node: node{span: s.Span(start, s.Pos())},
			Op:   s.Text(start, s.Pos()),
		}, true
	case Char('.').Match(s, true):
		Spaces0(s)
		name, ok := parseIdentifier(s, r)
		if !ok {
			return Exit[Accessor](s, r, before, missing(s, r, "expected member name after '.'"))
		}
		args, isCall, ok := Optional(s, r, parseArguments, true)
		if !ok {
			return Exit[Accessor](s, r, before, nil)
		}
		if isCall {
			return &MethodAccess{
				node:      node{span: s.Span(start, s.Pos())},
				Name:      name,
				Arguments: args,
			}, true
		}
		return &MemberAccess{
			node:   node{span: s.Span(start, s.Pos())},
			Member: name,
		}, true
	case Char('[').Match(s, true):
		Spaces0(s)
		index, ok := parseExpression(s, r)
		if !ok {
			return Exit[Accessor](s, r, before, missing(s, r, "expected index expression after '['"))
		}
		if !expect(s, r, before, Char(']'), "expected ']' after index expression") {
			return nil, false
		}
		return &IndexAccess{
			node:  node{span: s.Span(start, s.Pos())},
			Index: index,
		}, true
	}
	return Exit[Accessor](s, r, before, nil)
}

// parseArguments parses a parenthesized, comma separated argument list.
// Once the opening parenthesis is seen the closing one is required.
func parseArguments(s *Scanner, r *ParseResult) ([]Expression, bool) {
	start := s.Pos()
	if !Char('(').Match(s, true) {
		return Exit[[]Expression](s, r, start, nil)
	}
	var args []Expression
	if !FollowedBy(s, Char(')'), true, false) {
		Spaces0(s)
		list, ok := List(s, r, parseExpression, Char(','), "expected argument after ','")
		if !ok && r.HasErrors() {
			return Exit[[]Expression](s, r, start, nil)
		}
		args = list
	}
	if !expect(s, r, start, Char(')'), "expected ')' to close argument list") {
		return nil, false
	}
	return args, true
}

func parsePrimary(s *Scanner, r *ParseResult) (Expression, bool) {
	return Alternatives(s, r, nil,
		parseParenthesized,
		parseArrayLiteral,
		parseCall,
		widen[*Literal, Expression](parseLiteral),
		widen[*Identifier, Expression](parseIdentifier),
	)
}

func parseParenthesized(s *Scanner, r *ParseResult) (Expression, bool) {
	start := s.Pos()
	if !Char('(').Match(s, true) {
		return Exit[Expression](s, r, start, nil)
	}
	Spaces0(s)
	inner, ok := parseExpression(s, r)
	if !ok {
		return Exit[Expression](s, r, start, missing(s, r, "expected expression after '('"))
	}
	if !expect(s, r, start, Char(')'), "expected ')' to close parenthesized expression") {
		return nil, false
	}
	return &ParenthesizedExpression{
		node:  node{span: s.Span(start, s.Pos())},
		Inner: inner,
	}, true
}

// parseArrayLiteral parses {a, b, c}. A brace also opens a block, so
// every failure here is soft.
func parseArrayLiteral(s *Scanner, r *ParseResult) (Expression, bool) {
	start := s.Pos()
	if !Char('{').Match(s, true) {
		return Exit[Expression](s, r, start, nil)
	}
	Spaces0(s)
	values, ok := Repeat(s, r, parseExpression, 1, true, Char(','), nil)
	if !ok || !FollowedBy(s, Char('}'), true, true) {
		return Exit[Expression](s, r, start, nil)
	}
	return &ArrayLiteral{
		node:   node{span: s.Span(start, s.Pos())},
		Values: values,
	}, true
}

func parseCall(s *Scanner, r *ParseResult) (Expression, bool) {
	start := s.Pos()
	name, ok := parseIdentifier(s, r)
	if !ok {
		return Exit[Expression](s, r, start, nil)
	}
	args, ok := FollowedByParser(s, r, parseArguments, true, true)
	if !ok {
		return Exit[Expression](s, r, start, nil)
	}
	return &CallExpression{
		node:      node{span: s.Span(start, s.Pos())},
		Name:      name,
		Arguments: args,
	}, true
}
