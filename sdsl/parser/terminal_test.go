package parser

import "testing"

func TestTerminals(t *testing.T) {
	tests := []struct {
		name     string
		terminal Terminal
		input    string
		want     bool
		length   int
	}{
		{"lit", Lit("*/"), "*/x", true, 2},
		{"lit mismatch", Lit("*/"), "*x", false, 0},
		{"char", Char(';'), ";", true, 1},
		{"any char", AnyChar(";}"), "}", true, 1},
		{"keyword", Keyword("for"), "for(", true, 3},
		{"keyword prefix", Keyword("for"), "format", false, 0},
		{"keyword at end", Keyword("if"), "if", true, 2},
		{"op", Op{Text: "+", Not: "+="}, "+1", true, 1},
		{"op refuses increment", Op{Text: "+", Not: "+="}, "++", false, 0},
		{"op refuses compound", Op{Text: "+", Not: "+="}, "+=", false, 0},
		{"op shift", Op{Text: "<<", Not: "="}, "<<=", false, 0},
		{"ident", Ident{}, "color;", true, 5},
		{"ident underscore", Ident{}, "_a1 ", true, 3},
		{"ident reserved", Ident{}, "if", false, 0},
		{"ident reserved prefix", Ident{}, "iffy", true, 4},
		{"ident digit", Ident{}, "1a", false, 0},
		{"whitespace", Whitespace{}, "\tx", true, 1},
		{"eol", EOL{}, "\r\nx", true, 2},
		{"eol lf", EOL{}, "\n", true, 1},
		{"eol none", EOL{}, "x", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner([]byte(tt.input), "")
			if got := tt.terminal.Match(s, false); got != tt.want {
				t.Fatalf("Match(advance=false) = %v, want %v", got, tt.want)
			}
			if s.Pos() != 0 {
				t.Fatalf("Match(advance=false) moved cursor to %d", s.Pos())
			}
			tt.terminal.Match(s, true)
			if s.Pos() != tt.length {
				t.Errorf("Match(advance=true) moved cursor to %d, want %d", s.Pos(), tt.length)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input  string
		length int
		kind   LiteralKind
	}{
		{"42", 2, LiteralInt},
		{"42;", 2, LiteralInt},
		{"10u", 3, LiteralInt},
		{"0x1F", 4, LiteralInt},
		{"0xffL", 5, LiteralInt},
		{"3.14", 4, LiteralFloat},
		{"1.0f", 4, LiteralFloat},
		{"1.", 2, LiteralFloat},
		{"1.f", 3, LiteralFloat},
		{"1.e3", 4, LiteralFloat},
		{"1.x", 1, LiteralInt},
		{"1.xxx;", 1, LiteralInt},
		{"2.rgb", 1, LiteralInt},
		{".5", 2, LiteralFloat},
		{"1e10", 4, LiteralFloat},
		{"2.5e-3h", 7, LiteralFloat},
		{"2f", 2, LiteralFloat},
		{"abc", 0, 0},
		{"12ab", 0, 0},
		{"1e", 0, 0},
		{"0x", 0, 0},
		{".", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := NewScanner([]byte(tt.input), "")
			n, kind := numberLen(s)
			if n != tt.length || kind != tt.kind {
				t.Errorf("numberLen(%q) = %d, %v; want %d, %v", tt.input, n, kind, tt.length, tt.kind)
			}
			if got := (Number{}).Match(s, false); got != (tt.length > 0) {
				t.Errorf("Number.Match(%q) = %v", tt.input, got)
			}
		})
	}
}

func TestIsReserved(t *testing.T) {
	for _, word := range []string{"if", "else", "for", "foreach", "while", "do", "break", "continue", "return", "discard", "true", "false"} {
		if !IsReserved(word) {
			t.Errorf("IsReserved(%q) = false", word)
		}
	}
	for _, word := range []string{"float4", "in", "var", "static"} {
		if IsReserved(word) {
			t.Errorf("IsReserved(%q) = true", word)
		}
	}
}
