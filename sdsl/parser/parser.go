package parser

import "io"

type Option func(*Parser)

// WithFile sets the file name reported in positions and diagnostics.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithMaxDepth bounds grammar nesting. Deeper input is rejected with a
// diagnostic instead of growing the stack.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// WithRecovery keeps parsing after a failed top-level statement. Each
// statement gets its own diagnostics, and parsing resumes after the next
// ';' or '}'.
func WithRecovery() Option {
	return func(p *Parser) {
		p.recover = true
	}
}

type entryFunc func(p *Parser, s *Scanner) Node

type Parser struct {
	file            string
	maxDepth        int
	includeComments bool
	recover         bool
	reader          io.Reader
	input           []byte
	entry           entryFunc

	scanner  *Scanner
	result   ParseResult
	partial  []Statement
	readErr  error
	finished bool
	root     Node
}

// ParseStatements parses a sequence of statements into a Unit.
func ParseStatements(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseUnit, opts)
}

// ParseExpression parses a single expression that must span the whole
// input, surrounding whitespace aside.
func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseSingleExpression, opts)
}

func newParser(r io.Reader, entry entryFunc, opts []Option) *Parser {
	p := &Parser{
		maxDepth: defaultMaxDepth,
		reader:   r,
		entry:    entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) readAll() error {
	if p.input != nil || p.readErr != nil {
		return p.readErr
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		p.readErr = err
		return err
	}
	if data == nil {
		data = []byte{}
	}
	p.input = data
	return nil
}

// Finish runs the parse and returns the root node, or nil when the input
// has syntax errors or could not be read. The parse runs once; later calls
// return the same result.
func (p *Parser) Finish() Node {
	if p.finished {
		return p.root
	}
	p.finished = true
	if err := p.readAll(); err != nil {
		return nil
	}
	p.scanner = NewScanner(p.input, p.file)
	p.scanner.maxDepth = p.maxDepth
	p.scanner.captureComments = p.includeComments
	root := p.entry(p, p.scanner)
	if p.result.HasErrors() {
		return nil
	}
	p.root = root
	return root
}

// Err returns the read error or the syntax errors of the parse, if any.
func (p *Parser) Err() error {
	p.Finish()
	if p.readErr != nil {
		return p.readErr
	}
	return p.result.Err()
}

// Result returns the diagnostics sink of the parse.
func (p *Parser) Result() *ParseResult {
	p.Finish()
	return &p.result
}

func (p *Parser) Errors() ParseErrors {
	p.Finish()
	return p.result.Errors
}

// Partial returns the top-level statements that parsed successfully, also
// when the parse as a whole failed.
func (p *Parser) Partial() []Statement {
	p.Finish()
	return p.partial
}

func (p *Parser) Comments() []Comment {
	p.Finish()
	if p.scanner == nil {
		return nil
	}
	return p.scanner.Comments()
}

// Source returns the input that was parsed.
func (p *Parser) Source() []byte {
	p.Finish()
	return p.input
}

// Scanner returns the scanner used for the parse, for position lookups.
func (p *Parser) Scanner() *Scanner {
	p.Finish()
	return p.scanner
}

func (p *Parser) parseUnit(s *Scanner) Node {
	for {
		Spaces0(s)
		if s.IsEOF() {
			break
		}
		if p.recover {
			p.parseRecovering(s)
			continue
		}
		start := s.Pos()
		stmt, ok := parseStatement(s, &p.result)
		if !ok {
			if !p.result.HasErrors() {
				p.result.Add(*NewError(s, start, "unexpected input"))
			}
			break
		}
		p.partial = append(p.partial, stmt)
	}
	return &Unit{
		node:       node{span: s.Span(0, s.End())},
		File:       p.file,
		Statements: p.partial,
	}
}

// parseRecovering parses one statement against a fresh sink. On failure
// the diagnostics are kept and the scanner skips past the next ';' or '}'.
func (p *Parser) parseRecovering(s *Scanner) {
	start := s.Pos()
	var local ParseResult
	stmt, ok := parseStatement(s, &local)
	if ok {
		p.partial = append(p.partial, stmt)
		return
	}
	if !local.HasErrors() {
		local.Add(*NewError(s, start, "unexpected input"))
	}
	p.result.Errors = append(p.result.Errors, local.Errors...)
	s.SetPos(start)
	if !Until(s, AnyChar(";}"), true) {
		s.Poison()
	}
}

func (p *Parser) parseSingleExpression(s *Scanner) Node {
	Spaces0(s)
	start := s.Pos()
	expr, ok := parseExpression(s, &p.result)
	if !ok {
		if !p.result.HasErrors() {
			p.result.Add(*NewError(s, start, "expected expression"))
		}
		return nil
	}
	Spaces0(s)
	if !s.IsEOF() {
		p.result.Add(*NewError(s, s.Pos(), "unexpected input after expression"))
		return nil
	}
	return expr
}
