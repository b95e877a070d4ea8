// Package grammar holds the reference EBNF grammar of the SDSL statement
// language and a lexer driven by its lexical productions.
//
// The grammar documents the language the hand-written parser in
// sdsl/parser accepts. It is not used to parse; tests use it to
// cross-check the parser's terminals, and the ahi tool verifies it.
package grammar

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/exp/ebnf"
)

//go:embed sdsl.ebnf
var source []byte

const (
	// DefaultStart is the root of the syntax productions.
	DefaultStart = "Unit"
	// DefaultTokenStart is the lexical production whose alternatives are
	// the token kinds.
	DefaultTokenStart = "token"
)

// Grammar is a parsed EBNF grammar with a syntactic and a lexical root.
type Grammar struct {
	Filename    string
	Productions ebnf.Grammar
	Start       string
	TokenStart  string
}

// Source returns the text of the embedded SDSL grammar.
func Source() []byte {
	return bytes.Clone(source)
}

// Default parses the embedded SDSL grammar.
func Default() (*Grammar, error) {
	return Load("sdsl.ebnf", bytes.NewReader(source))
}

// Load parses a grammar from r. Parse errors are returned as reported by
// golang.org/x/exp/ebnf.
func Load(filename string, r io.Reader) (*Grammar, error) {
	prods, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	return &Grammar{
		Filename:    filename,
		Productions: prods,
		Start:       DefaultStart,
		TokenStart:  DefaultTokenStart,
	}, nil
}

// LoadFile parses the grammar stored in filename.
func LoadFile(filename string) (*Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	g, err := Load(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks the productions reachable from Start and from TokenStart
// with ebnf.Verify, and reports every production neither root reaches.
// An empty TokenStart verifies the syntax root alone.
func (g *Grammar) Verify() error {
	var errs []error
	reached := make(map[string]bool)
	for _, start := range []string{g.Start, g.TokenStart} {
		if start == "" {
			continue
		}
		sub := g.reachable(start, reached)
		if err := ebnf.Verify(sub, start); err != nil {
			errs = append(errs, err)
		}
	}

	var unreached []string
	for name := range g.Productions {
		if !reached[name] {
			unreached = append(unreached, name)
		}
	}
	sort.Strings(unreached)
	for _, name := range unreached {
		errs = append(errs, fmt.Errorf("%s: %s is unreachable", g.Productions[name].Pos(), name))
	}
	return errors.Join(errs...)
}

// reachable returns the productions reachable from start and marks them in
// reached. Names without a production are left for ebnf.Verify to report.
func (g *Grammar) reachable(start string, reached map[string]bool) ebnf.Grammar {
	sub := make(ebnf.Grammar)
	var visit func(name string)
	visit = func(name string) {
		prod, ok := g.Productions[name]
		if !ok {
			return
		}
		if _, seen := sub[name]; seen {
			return
		}
		sub[name] = prod
		reached[name] = true
		walk(prod.Expr, func(n *ebnf.Name) { visit(n.String) })
	}
	visit(start)
	return sub
}

// walk calls f for every name referenced in expr.
func walk(expr ebnf.Expression, f func(*ebnf.Name)) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for _, x := range e {
			walk(x, f)
		}
	case ebnf.Sequence:
		for _, x := range e {
			walk(x, f)
		}
	case *ebnf.Group:
		walk(e.Body, f)
	case *ebnf.Option:
		walk(e.Body, f)
	case *ebnf.Repetition:
		walk(e.Body, f)
	case *ebnf.Name:
		f(e)
	}
}

// TokenKinds returns the names listed as alternatives of the TokenStart
// production, in grammar order.
func (g *Grammar) TokenKinds() []string {
	prod, ok := g.Productions[g.TokenStart]
	if !ok || prod.Expr == nil {
		return nil
	}
	var kinds []string
	add := func(x ebnf.Expression) {
		if n, ok := x.(*ebnf.Name); ok {
			kinds = append(kinds, n.String)
		}
	}
	if alt, ok := prod.Expr.(ebnf.Alternative); ok {
		for _, x := range alt {
			add(x)
		}
	} else {
		add(prod.Expr)
	}
	return kinds
}

// Literals returns every quoted token used by the syntax productions,
// sorted. These are the keywords, operators and punctuation of the
// language as the syntax sees them.
func (g *Grammar) Literals() []string {
	seen := make(map[string]bool)
	for name, prod := range g.Productions {
		if !isSyntactic(name) {
			continue
		}
		collectTokens(prod.Expr, seen)
	}
	out := make([]string, 0, len(seen))
	for lit := range seen {
		out = append(out, lit)
	}
	sort.Strings(out)
	return out
}

func collectTokens(expr ebnf.Expression, seen map[string]bool) {
	switch e := expr.(type) {
	case ebnf.Alternative:
		for _, x := range e {
			collectTokens(x, seen)
		}
	case ebnf.Sequence:
		for _, x := range e {
			collectTokens(x, seen)
		}
	case *ebnf.Group:
		collectTokens(e.Body, seen)
	case *ebnf.Option:
		collectTokens(e.Body, seen)
	case *ebnf.Repetition:
		collectTokens(e.Body, seen)
	case *ebnf.Token:
		seen[e.String] = true
	}
}

func isSyntactic(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}
