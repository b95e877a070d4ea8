package parser

var declarationModifiers = []string{
	"const", "static", "uniform", "groupshared", "extern", "shared",
	"volatile", "precise", "nointerpolation", "linear", "centroid",
	"noperspective", "sample", "stage", "stream",
}

var assignOps = []Op{
	{Text: "<<="}, {Text: ">>="},
	{Text: "+="}, {Text: "-="}, {Text: "*="}, {Text: "/="}, {Text: "%="},
	{Text: "&="}, {Text: "|="}, {Text: "^="},
	{Text: "=", Not: "="},
}

// parseStatement tries every statement form in a fixed order. The order
// matters: declarations and assignments need the most lookahead and come
// last.
func parseStatement(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	defer s.Leave()
	if !s.Enter() {
		return Exit[Statement](s, r, start, missing(s, r, "nesting too deep"))
	}
	return Alternatives(s, r, nil,
		parseEmpty,
		parseConditionalFlow,
		parseLoopFlow,
		parseExpressionStatement,
		parseBreak,
		parseReturn,
		parseContinue,
		parseDiscard,
		parseDeclaration,
		parseAssignment,
		parseBlock,
	)
}

func parseEmpty(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	if !Char(';').Match(s, true) {
		return Exit[Statement](s, r, start, nil)
	}
	return &EmptyStatement{node: node{span: s.Span(start, s.Pos())}}, true
}

// parseExpressionStatement parses "expr;". A missing semicolon is a soft
// failure, since "a = b;" starts with the expression "a".
func parseExpressionStatement(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	if declarationAhead(s, r) || r.HasErrors() {
		return Exit[Statement](s, r, start, nil)
	}
	expr, ok := parseExpression(s, r)
	if !ok || !FollowedBy(s, Char(';'), true, true) {
		return Exit[Statement](s, r, start, nil)
	}
	return &ExpressionStatement{
		node:       node{span: s.Span(start, s.Pos())},
		Expression: expr,
	}, true
}

// declarationAhead reports whether a type name followed by an identifier
// starts at the cursor. It never moves the cursor unless a diagnostic was
// recorded on the way.
func declarationAhead(s *Scanner, r *ParseResult) bool {
	start := s.Pos()
	ok := false
	if _, found := parseTypeName(s, r); found {
		ok = FollowedBy(s, Ident{}, true, false)
	}
	if !r.HasErrors() {
		s.SetPos(start)
	}
	return ok
}

// keywordStatement parses "keyword;" for break, continue and discard.
func keywordStatement(s *Scanner, r *ParseResult, keyword string) (int, bool) {
	start := s.Pos()
	if !Keyword(keyword).Match(s, true) {
		return start, fail(s, r, start, nil)
	}
	return start, expect(s, r, start, Char(';'), "expected ';' after '"+keyword+"'")
}

func parseBreak(s *Scanner, r *ParseResult) (Statement, bool) {
	start, ok := keywordStatement(s, r, "break")
	if !ok {
		return nil, false
	}
	return &Break{node: node{span: s.Span(start, s.Pos())}}, true
}

func parseContinue(s *Scanner, r *ParseResult) (Statement, bool) {
	start, ok := keywordStatement(s, r, "continue")
	if !ok {
		return nil, false
	}
	return &Continue{node: node{span: s.Span(start, s.Pos())}}, true
}

func parseDiscard(s *Scanner, r *ParseResult) (Statement, bool) {
	start, ok := keywordStatement(s, r, "discard")
	if !ok {
		return nil, false
	}
	return &Discard{node: node{span: s.Span(start, s.Pos())}}, true
}

func parseReturn(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	if !Keyword("return").Match(s, true) {
		return Exit[Statement](s, r, start, nil)
	}
	value, _, ok := Optional(s, r, parseExpression, true)
	if !ok {
		return Exit[Statement](s, r, start, nil)
	}
	ret := &Return{Value: value}
	if !expect(s, r, start, Char(';'), "expected ';' after return") {
		return nil, false
	}
	ret.span = s.Span(start, s.Pos())
	return ret, true
}

func parseModifiers(s *Scanner) []string {
	var mods []string
	for {
		matched := ""
		for _, m := range declarationModifiers {
			if Keyword(m).Match(s, false) {
				matched = m
				break
			}
		}
		if matched == "" {
			return mods
		}
		mark := s.Pos()
		s.Advance(len(matched))
		if !FollowedBy(s, Ident{}, true, false) {
			s.SetPos(mark)
			return mods
		}
		Spaces0(s)
		mods = append(mods, matched)
	}
}

// parseDeclareBody parses a declaration without its semicolon. It commits
// once the type name and the first variable name have been seen.
func parseDeclareBody(s *Scanner, r *ParseResult) (*Declare, bool) {
	start := s.Pos()
	mods := parseModifiers(s)
	typ, ok := parseTypeName(s, r)
	if !ok {
		return Exit[*Declare](s, r, start, nil)
	}
	Spaces0(s)
	if !(Ident{}).Match(s, false) {
		return Exit[*Declare](s, r, start, nil)
	}
	vars, ok := List(s, r, parseVariable, Char(','), "expected variable name after ','")
	if !ok {
		return Exit[*Declare](s, r, start, nil)
	}
	return &Declare{
		node:      node{span: s.Span(start, s.Pos())},
		Modifiers: mods,
		Type:      typ,
		Variables: vars,
	}, true
}

func parseVariable(s *Scanner, r *ParseResult) (*Variable, bool) {
	start := s.Pos()
	name, ok := parseIdentifier(s, r)
	if !ok {
		return Exit[*Variable](s, r, start, nil)
	}
	sizes, _, ok := Optional(s, r, parseArraySizes, true)
	if !ok {
		return Exit[*Variable](s, r, start, nil)
	}
	v := &Variable{Name: name, ArraySizes: sizes}
	if FollowedBy(s, Op{Text: "=", Not: "="}, true, true) {
		Spaces0(s)
		value, ok := parseExpression(s, r)
		if !ok {
			return Exit[*Variable](s, r, start, missing(s, r, "expected initializer after '='"))
		}
		v.Value = value
	}
	v.span = s.Span(start, s.Pos())
	return v, true
}

func parseDeclaration(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	decl, ok := parseDeclareBody(s, r)
	if !ok {
		return Exit[Statement](s, r, start, nil)
	}
	if !expect(s, r, start, Char(';'), "expected ';' after declaration") {
		return nil, false
	}
	decl.span = s.Span(start, s.Pos())
	return decl, true
}

// parseAssignmentPair parses "target op value". It commits once the
// operator has been seen.
func parseAssignmentPair(s *Scanner, r *ParseResult) (*Assignment, bool) {
	start := s.Pos()
	target, ok := parsePostfix(s, r)
	if !ok {
		return Exit[*Assignment](s, r, start, nil)
	}
	Spaces0(s)
	op, found := matchOp(s, assignOps)
	if !found {
		return Exit[*Assignment](s, r, start, nil)
	}
	Spaces0(s)
	value, ok := parseExpression(s, r)
	if !ok {
		return Exit[*Assignment](s, r, start, missing(s, r, "expected expression after '%s'", op))
	}
	return &Assignment{
		node:   node{span: s.Span(start, s.Pos())},
		Target: target,
		Op:     op,
		Value:  value,
	}, true
}

// parseAssignBody parses one or more comma separated assignments without
// the semicolon.
func parseAssignBody(s *Scanner, r *ParseResult) (*Assign, bool) {
	start := s.Pos()
	pairs, ok := List(s, r, parseAssignmentPair, Char(','), "expected assignment after ','")
	if !ok {
		return Exit[*Assign](s, r, start, nil)
	}
	return &Assign{
		node:        node{span: s.Span(start, s.Pos())},
		Assignments: pairs,
	}, true
}

func parseAssignment(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	assign, ok := parseAssignBody(s, r)
	if !ok {
		return Exit[Statement](s, r, start, nil)
	}
	if !expect(s, r, start, Char(';'), "expected ';' after assignment") {
		return nil, false
	}
	assign.span = s.Span(start, s.Pos())
	return assign, true
}

func parseBlock(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	if !Char('{').Match(s, true) {
		return Exit[Statement](s, r, start, nil)
	}
	Spaces0(s)
	stmts, ok := Repeat(s, r, parseStatement, 0, true, nil, nil)
	if !ok {
		return Exit[Statement](s, r, start, nil)
	}
	if !expect(s, r, start, Char('}'), "expected statement or '}'") {
		return nil, false
	}
	return &Block{
		node:       node{span: s.Span(start, s.Pos())},
		Statements: stmts,
	}, true
}
