package grammar

import (
	"fmt"
	"io"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

// Token is one lexeme. Kind is the name of the lexical production that
// matched it, or ErrorKind for a byte no production accepts.
type Token struct {
	Kind     string
	Literal  string
	Position parser.Position
}

const (
	ErrorKind = "ERROR"
	EOFKind   = "EOF"
)

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

type memoKey struct {
	name   string
	offset int
}

// Lexer splits input into the token kinds of a grammar. At each offset it
// tries every kind and keeps the longest match; ties go to the kind listed
// first.
type Lexer struct {
	grammar  ebnf.Grammar
	kinds    []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func NewLexer(g *Grammar, input []byte, filename string) *Lexer {
	return &Lexer{
		grammar:  g.Productions,
		kinds:    g.TokenKinds(),
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

func (l *Lexer) Position() parser.Position {
	return parser.Position{
		File:   l.filename,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

// NextToken returns the next token, or an EOF token and io.EOF at the end
// of input.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: EOFKind, Position: l.Position()}, io.EOF
	}

	start := l.Position()
	// Memoized lengths are keyed by offset and stay valid for the whole
	// input; only the cycle guard is per token.
	l.visiting = make(map[memoKey]bool)

	bestKind, bestLen := "", 0
	for _, kind := range l.kinds {
		if n, ok := l.matchName(kind, l.pos); ok && n > bestLen {
			bestKind, bestLen = kind, n
		}
	}

	if bestLen == 0 {
		l.advance()
		return Token{
			Kind:     ErrorKind,
			Literal:  string(l.input[start.Offset:l.pos]),
			Position: start,
		}, nil
	}
	for i := 0; i < bestLen; i++ {
		l.advance()
	}
	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[start.Offset:l.pos]),
		Position: start,
	}, nil
}

// match returns the length matched by expr at offset. Unlike a plain
// length, ok distinguishes an empty match (an option or repetition that
// matched nothing) from a failure.
func (l *Lexer) match(expr ebnf.Expression, offset int) (int, bool) {
	switch e := expr.(type) {
	case nil:
		return 0, true

	case *ebnf.Token:
		return l.matchToken(e.String, offset)

	case *ebnf.Range:
		return l.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		pos := offset
		for _, item := range e {
			n, ok := l.match(item, pos)
			if !ok {
				return 0, false
			}
			pos += n
		}
		return pos - offset, true

	case ebnf.Alternative:
		best, found := 0, false
		for _, alt := range e {
			if n, ok := l.match(alt, offset); ok && (!found || n > best) {
				best, found = n, true
			}
		}
		return best, found

	case *ebnf.Repetition:
		pos := offset
		for {
			n, ok := l.match(e.Body, pos)
			if !ok || n == 0 {
				break
			}
			pos += n
		}
		return pos - offset, true

	case *ebnf.Option:
		if n, ok := l.match(e.Body, offset); ok {
			return n, true
		}
		return 0, true

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return 0, false
}

// matchName matches a production with memoization. A production that
// reaches itself at the same offset fails there, which cuts left
// recursion.
func (l *Lexer) matchName(name string, offset int) (int, bool) {
	key := memoKey{name: name, offset: offset}
	if n, ok := l.memo[key]; ok {
		return n, n >= 0
	}
	if l.visiting[key] {
		return 0, false
	}
	prod, ok := l.grammar[name]
	if !ok {
		l.memo[key] = -1
		return 0, false
	}

	l.visiting[key] = true
	n, ok := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	if !ok {
		l.memo[key] = -1
		return 0, false
	}
	l.memo[key] = n
	return n, true
}

func (l *Lexer) matchToken(lit string, offset int) (int, bool) {
	if offset+len(lit) > len(l.input) || string(l.input[offset:offset+len(lit)]) != lit {
		return 0, false
	}
	return len(lit), true
}

func (l *Lexer) matchRange(begin, end string, offset int) (int, bool) {
	if offset >= len(l.input) || len(begin) != 1 || len(end) != 1 {
		return 0, false
	}
	if ch := l.input[offset]; ch >= begin[0] && ch <= end[0] {
		return 1, true
	}
	return 0, false
}

// Tokenize reads all tokens, ending with the EOF token.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		tokens = append(tokens, tok)
		if err == io.EOF {
			return tokens
		}
	}
}

// Significant drops whitespace and comment tokens.
func Significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == "whitespace" || t.Kind == "comment" {
			continue
		}
		out = append(out, t)
	}
	return out
}
