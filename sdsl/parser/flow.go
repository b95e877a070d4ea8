package parser

// conditionalFlowBuilder assembles a ConditionalFlow while its clauses are
// recognized. The node is only handed out by finish.
type conditionalFlowBuilder struct {
	flow *ConditionalFlow
}

func newConditionalFlowBuilder(ifClause *If) *conditionalFlowBuilder {
	return &conditionalFlowBuilder{flow: &ConditionalFlow{If: ifClause}}
}

func (b *conditionalFlowBuilder) addElseIf(clause *ElseIf) {
	b.flow.ElseIfs = append(b.flow.ElseIfs, clause)
}

// setElse fills the else slot. It reports false if the slot is taken.
func (b *conditionalFlowBuilder) setElse(clause *Else) bool {
	if b.flow.Else != nil {
		return false
	}
	b.flow.Else = clause
	return true
}

func (b *conditionalFlowBuilder) finish(span Span) *ConditionalFlow {
	flow := b.flow
	flow.span = span
	b.flow = nil
	return flow
}

// parseConditionalFlow parses if, any number of else-if clauses and an
// optional else. An else with no if before it is a hard error.
func parseConditionalFlow(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	if Keyword("else").Match(s, false) {
		return Exit[Statement](s, r, start, NewError(s, start, "'else' without a matching 'if'"))
	}
	ifClause, ok := parseIf(s, r)
	if !ok {
		return Exit[Statement](s, r, start, nil)
	}
	b := newConditionalFlowBuilder(ifClause)
	for {
		clause, ok := FollowedByParser(s, r, parseElseIf, true, true)
		if !ok {
			break
		}
		b.addElseIf(clause)
	}
	if r.HasErrors() {
		return Exit[Statement](s, r, start, nil)
	}
	if clause, ok := FollowedByParser(s, r, parseElse, true, true); ok {
		b.setElse(clause)
	} else if r.HasErrors() {
		return Exit[Statement](s, r, start, nil)
	}
	return b.finish(s.Span(start, s.Pos())), true
}

// parseCondition parses "( expression )" after a control keyword.
func parseCondition(s *Scanner, r *ParseResult, start int, keyword string) (Expression, bool) {
	if !expect(s, r, start, Char('('), "expected '(' after '"+keyword+"'") {
		return nil, false
	}
	Spaces0(s)
	cond, ok := parseExpression(s, r)
	if !ok {
		return Exit[Expression](s, r, start, missing(s, r, "expected condition after '%s ('", keyword))
	}
	if !expect(s, r, start, Char(')'), "expected ')' after '"+keyword+"' condition") {
		return nil, false
	}
	return cond, true
}

// parseBody parses the statement controlled by a keyword.
func parseBody(s *Scanner, r *ParseResult, start int, what string) (Statement, bool) {
	Spaces0(s)
	body, ok := parseStatement(s, r)
	if !ok {
		return Exit[Statement](s, r, start, missing(s, r, "expected statement after %s", what))
	}
	return body, true
}

func parseIf(s *Scanner, r *ParseResult) (*If, bool) {
	start := s.Pos()
	if !Keyword("if").Match(s, true) {
		return Exit[*If](s, r, start, nil)
	}
	cond, ok := parseCondition(s, r, start, "if")
	if !ok {
		return nil, false
	}
	body, ok := parseBody(s, r, start, "'if' condition")
	if !ok {
		return nil, false
	}
	return &If{
		node:      node{span: s.Span(start, s.Pos())},
		Condition: cond,
		Body:      body,
	}, true
}

func parseElseIf(s *Scanner, r *ParseResult) (*ElseIf, bool) {
	start := s.Pos()
	if !Keyword("else").Match(s, true) || !FollowedBy(s, Keyword("if"), true, true) {
		return Exit[*ElseIf](s, r, start, nil)
	}
	cond, ok := parseCondition(s, r, start, "else if")
	if !ok {
		return nil, false
	}
	body, ok := parseBody(s, r, start, "'else if' condition")
	if !ok {
		return nil, false
	}
	return &ElseIf{
		node:      node{span: s.Span(start, s.Pos())},
		Condition: cond,
		Body:      body,
	}, true
}

func parseElse(s *Scanner, r *ParseResult) (*Else, bool) {
	start := s.Pos()
	if !Keyword("else").Match(s, true) {
		return Exit[*Else](s, r, start, nil)
	}
	body, ok := parseBody(s, r, start, "'else'")
	if !ok {
		return nil, false
	}
	return &Else{
		node: node{span: s.Span(start, s.Pos())},
		Body: body,
	}, true
}

// parseLoopFlow parses while, for and foreach loops. Attributes may
// precede while and for, never foreach.
func parseLoopFlow(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	attrs, ok := parseAttributes(s, r)
	if !ok && r.HasErrors() {
		return Exit[Statement](s, r, start, nil)
	}
	if len(attrs) > 0 {
		Spaces0(s)
	}
	switch {
	case Keyword("while").Match(s, false):
		return parseWhile(s, r, start, attrs)
	case Keyword("for").Match(s, false):
		return parseFor(s, r, start, attrs)
	case Keyword("foreach").Match(s, false):
		if len(attrs) > 0 {
			return Exit[Statement](s, r, start, NewError(s, s.Pos(), "attributes are not allowed on 'foreach'"))
		}
		return parseForEach(s, r, start)
	}
	if len(attrs) > 0 {
		return Exit[Statement](s, r, start, NewError(s, s.Pos(), "expected 'while' or 'for' after attributes"))
	}
	return Exit[Statement](s, r, start, nil)
}

func parseAttributes(s *Scanner, r *ParseResult) ([]*Attribute, bool) {
	return Repeat(s, r, parseAttribute, 1, true, nil, nil)
}

// parseAttribute parses [name] or [name(args)].
func parseAttribute(s *Scanner, r *ParseResult) (*Attribute, bool) {
	start := s.Pos()
	if !Char('[').Match(s, true) {
		return Exit[*Attribute](s, r, start, nil)
	}
	Spaces0(s)
	name, ok := parseIdentifier(s, r)
	if !ok {
		return Exit[*Attribute](s, r, start, missing(s, r, "expected attribute name after '['"))
	}
	args, _, ok := Optional(s, r, parseArguments, true)
	if !ok {
		return Exit[*Attribute](s, r, start, nil)
	}
	attr := &Attribute{Name: name, Arguments: args}
	if !expect(s, r, start, Char(']'), "expected ']' after attribute") {
		return nil, false
	}
	attr.span = s.Span(start, s.Pos())
	return attr, true
}

func parseWhile(s *Scanner, r *ParseResult, start int, attrs []*Attribute) (Statement, bool) {
	Keyword("while").Match(s, true)
	cond, ok := parseCondition(s, r, start, "while")
	if !ok {
		return nil, false
	}
	body, ok := parseBody(s, r, start, "'while' condition")
	if !ok {
		return nil, false
	}
	return &While{
		node:       node{span: s.Span(start, s.Pos())},
		Attributes: attrs,
		Condition:  cond,
		Body:       body,
	}, true
}

// parseForInit parses the first for-loop clause: a declaration, an
// assignment list or an expression.
func parseForInit(s *Scanner, r *ParseResult) (Statement, bool) {
	return Alternatives(s, r, nil,
		widen[*Declare, Statement](parseDeclareBody),
		widen[*Assign, Statement](parseAssignBody),
		parseBareExpression,
	)
}

// parseForUpdate parses one item of the update list: a single assignment
// or an expression.
func parseForUpdate(s *Scanner, r *ParseResult) (Statement, bool) {
	return Alternatives(s, r, nil,
		parseSingleAssign,
		parseBareExpression,
	)
}

func parseSingleAssign(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	pair, ok := parseAssignmentPair(s, r)
	if !ok {
		return Exit[Statement](s, r, start, nil)
	}
	return &Assign{
		node:        node{span: pair.Span()},
		Assignments: []*Assignment{pair},
	}, true
}

// parseBareExpression parses an expression statement with no semicolon.
func parseBareExpression(s *Scanner, r *ParseResult) (Statement, bool) {
	start := s.Pos()
	expr, ok := parseExpression(s, r)
	if !ok {
		return Exit[Statement](s, r, start, nil)
	}
	return &ExpressionStatement{
		node:       node{span: expr.Span()},
		Expression: expr,
	}, true
}

func parseFor(s *Scanner, r *ParseResult, start int, attrs []*Attribute) (Statement, bool) {
	Keyword("for").Match(s, true)
	if !expect(s, r, start, Char('('), "expected '(' after 'for'") {
		return nil, false
	}
	Spaces0(s)

	var init Statement = &EmptyStatement{node: node{span: s.Span(s.Pos(), s.Pos())}}
	if !Char(';').Match(s, false) {
		clause, ok := parseForInit(s, r)
		if !ok {
			return Exit[Statement](s, r, start, missing(s, r, "expected for-loop initializer or ';'"))
		}
		init = clause
	}
	if !expect(s, r, start, Char(';'), "expected ';' after for-loop initializer") {
		return nil, false
	}
	Spaces0(s)

	var cond Expression = &EmptyExpression{node: node{span: s.Span(s.Pos(), s.Pos())}}
	if !Char(';').Match(s, false) {
		expr, ok := parseExpression(s, r)
		if !ok {
			return Exit[Statement](s, r, start, missing(s, r, "expected for-loop condition or ';'"))
		}
		cond = expr
	}
	if !expect(s, r, start, Char(';'), "expected ';' after for-loop condition") {
		return nil, false
	}
	Spaces0(s)

	update := []Statement{&EmptyStatement{node: node{span: s.Span(s.Pos(), s.Pos())}}}
	if !Char(')').Match(s, false) {
		list, ok := List(s, r, parseForUpdate, Char(','), "expected for-loop update after ','")
		if !ok {
			return Exit[Statement](s, r, start, missing(s, r, "expected for-loop update or ')'"))
		}
		update = list
	}
	if !expect(s, r, start, Char(')'), "expected ')' after for-loop update") {
		return nil, false
	}

	body, ok := parseBody(s, r, start, "for-loop header")
	if !ok {
		return nil, false
	}
	return &For{
		node:       node{span: s.Span(start, s.Pos())},
		Attributes: attrs,
		Init:       init,
		Condition:  cond,
		Update:     update,
		Body:       body,
	}, true
}

// parseForEach parses foreach (Type name in collection) body.
func parseForEach(s *Scanner, r *ParseResult, start int) (Statement, bool) {
	Keyword("foreach").Match(s, true)
	if !expect(s, r, start, Char('('), "expected '(' after 'foreach'") {
		return nil, false
	}
	Spaces0(s)
	typ, ok := parseTypeName(s, r)
	if !ok {
		return Exit[Statement](s, r, start, missing(s, r, "expected type in foreach"))
	}
	Spaces0(s)
	name, ok := parseIdentifier(s, r)
	if !ok {
		return Exit[Statement](s, r, start, missing(s, r, "expected variable name in foreach"))
	}
	if !expect(s, r, start, Keyword("in"), "expected 'in' in foreach") {
		return nil, false
	}
	Spaces0(s)
	collection, ok := parseExpression(s, r)
	if !ok {
		return Exit[Statement](s, r, start, missing(s, r, "expected collection after 'in'"))
	}
	if !expect(s, r, start, Char(')'), "expected ')' after foreach collection") {
		return nil, false
	}
	body, ok := parseBody(s, r, start, "foreach header")
	if !ok {
		return nil, false
	}
	return &ForEach{
		node:       node{span: s.Span(start, s.Pos())},
		Type:       typ,
		Variable:   name,
		Collection: collection,
		Body:       body,
	}, true
}
