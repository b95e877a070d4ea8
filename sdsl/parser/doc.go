// Package parser is a backtracking recursive-descent parser for the
// statement and expression subset of SDSL, the shading language of the
// Stride engine.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Scanner   │────▶│ Combinators │────▶│   Grammar   │────▶ AST
//	│  (cursor)   │     │  (generic)  │     │ (ParseFunc) │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	       ▲                   │
//	       │                   ▼
//	  Terminals          ParseResult
//	                    (diagnostics)
//
// There is no token stream. Every parser works directly on the Scanner
// cursor: saving a position is reading Pos, backtracking is SetPos.
// Terminals (Lit, Char, Keyword, Op, Ident, Number, ...) test the input at
// the cursor and never report diagnostics. Non-terminals have the shape
//
//	type ParseFunc[T any] func(s *Scanner, r *ParseResult) (T, bool)
//
// and are composed with Alternatives, Sequence, Repeat, List, FollowedBy,
// FollowedByParser and Until.
//
// # Failure
//
// A non-terminal that fails leaves through Exit, which distinguishes two
// cases:
//
//   - Soft: the alternative does not apply here. The cursor goes back to
//     where the parser started, so the caller can try the next
//     alternative. Once any diagnostic has been recorded the cursor is
//     left where it is instead.
//   - Hard: a required piece is missing, for example the ')' of a call.
//     The diagnostic is recorded and the scanner is moved to the end of
//     input, which stops the parse with exactly one root cause.
//
// Alternatives are tried in the order they are listed and the first match
// wins. The statement dispatcher relies on that order:
//
//	empty, if/else, loops, expression statement, break, return,
//	continue, discard, declaration, assignment, block
//
// # Expressions
//
// Binary levels, loosest first:
//
//	?:   ||   &&   |   ^   &   == !=   < > <= >=   << >>   + -   * / %
//
// followed by prefix operators (+ - ! ~ ++ --), postfix accessors
// (.member, .method(args), [index], ++, --) and primaries (parenthesized
// expressions, {array, literals}, calls, literals, identifiers).
//
// # Example Usage
//
//	p := parser.ParseStatements(strings.NewReader(src), parser.WithFile("Lighting.sdsl"))
//	unit := p.Finish()
//	if unit == nil {
//	    for _, e := range p.Errors() {
//	        fmt.Println(e)
//	    }
//	}
//
// A Parser, like its Scanner, belongs to one goroutine.
package parser
