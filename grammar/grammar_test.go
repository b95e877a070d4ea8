package grammar

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

func mustDefault(t *testing.T) *Grammar {
	t.Helper()
	g, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return g
}

func TestDefaultVerifies(t *testing.T) {
	if err := mustDefault(t).Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unreachable", `Unit = a . a = "x" . b = "y" .`, "b is unreachable"},
		{"missing", `Unit = Missing .`, "missing production Missing"},
		{"lexical", `Unit = a . a = B . B = "x" .`, "reference to non-lexical production B"},
		{"no start", `Other = "x" .`, "no start production Unit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Load("test.ebnf", strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			g.TokenStart = ""
			err = g.Verify()
			if err == nil {
				t.Fatal("Verify succeeded")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	if _, err := Load("bad.ebnf", strings.NewReader(`Unit = "x"`)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTokenKinds(t *testing.T) {
	want := []string{"whitespace", "comment", "keyword", "identifier", "number", "operator", "punctuation"}
	if got := mustDefault(t).TokenKinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestKeywordsMatchReservedWords(t *testing.T) {
	g := mustDefault(t)
	seen := make(map[string]bool)
	collectTokens(g.Productions["keyword"].Expr, seen)
	if len(seen) != 12 {
		t.Errorf("grammar lists %d keywords, want 12", len(seen))
	}
	for word := range seen {
		if !parser.IsReserved(word) {
			t.Errorf("keyword %q is not reserved in the parser", word)
		}
	}
}

func TestLiteralsLexAsOneToken(t *testing.T) {
	g := mustDefault(t)
	for _, lit := range g.Literals() {
		toks := NewLexer(g, []byte(lit), "").Tokenize()
		if len(toks) != 2 || toks[0].Literal != lit || toks[0].Kind == ErrorKind {
			t.Errorf("%q lexes as %v", lit, toks)
		}
	}
}

func TestLexer(t *testing.T) {
	src := "float4 x = 1.5f; // c\nif (x >= 0x1F) x <<= 2;"
	toks := NewLexer(mustDefault(t), []byte(src), "a.sdsl").Tokenize()

	var comment Token
	for _, tok := range toks {
		if tok.Kind == "comment" {
			comment = tok
		}
	}
	if comment.Literal != "// c" || comment.Position.String() != "a.sdsl:1:18" {
		t.Errorf("comment = %v", comment)
	}

	var got []string
	for _, tok := range Significant(toks) {
		got = append(got, tok.Kind+" "+tok.Literal)
	}
	want := []string{
		"identifier float4", "identifier x", "operator =", "number 1.5f", "punctuation ;",
		"keyword if", "punctuation (", "identifier x", "operator >=", "number 0x1F", "punctuation )",
		"identifier x", "operator <<=", "number 2", "punctuation ;", "EOF ",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q\nwant %q", got, want)
	}
	if last := toks[len(toks)-1]; last.Position.Line != 2 || last.Position.Offset != len(src) {
		t.Errorf("EOF at %v", last.Position)
	}
}

func TestLexerComments(t *testing.T) {
	tests := []string{"/**/", "/* a */", "/* a ** b */", "/* a **/", "/* x\n * y\n */", "// to the end"}
	g := mustDefault(t)
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			toks := NewLexer(g, []byte(src), "").Tokenize()
			if len(toks) != 2 || toks[0].Kind != "comment" || toks[0].Literal != src {
				t.Errorf("got %v", toks)
			}
		})
	}
}

func TestLexerErrorToken(t *testing.T) {
	toks := NewLexer(mustDefault(t), []byte("a @ b"), "").Tokenize()
	sig := Significant(toks)
	if len(sig) != 4 || sig[1].Kind != ErrorKind || sig[1].Literal != "@" {
		t.Errorf("got %v", sig)
	}
}

// The grammar's number and identifier productions accept the same text as
// the parser's terminals.
func TestTerminalsAgreeWithParser(t *testing.T) {
	g := mustDefault(t)
	tests := []struct {
		input string
		kind  string
	}{
		{"42", "number"},
		{"10u", "number"},
		{"0x1F", "number"},
		{"0xffL", "number"},
		{"3.14", "number"},
		{"1.0f", "number"},
		{"1.", "number"},
		{".5", "number"},
		{"1e10", "number"},
		{"2.5e-3h", "number"},
		{"2f", "number"},
		{"float4", "identifier"},
		{"_tmp", "identifier"},
		{"in", "identifier"},
		{"iffy", "identifier"},
		{"static", "identifier"},
		{"foreach", "keyword"},
		{"discard", "keyword"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := NewLexer(g, []byte(tt.input), "").NextToken()
			if err != nil {
				t.Fatal(err)
			}
			if tok.Kind != tt.kind || tok.Literal != tt.input {
				t.Errorf("lexer: %s %q, want %s %q", tok.Kind, tok.Literal, tt.kind, tt.input)
			}

			s := parser.NewScanner([]byte(tt.input), "")
			var term parser.Terminal
			switch tt.kind {
			case "number":
				term = parser.Number{}
			case "identifier":
				term = parser.Ident{}
			case "keyword":
				if !parser.IsReserved(tt.input) {
					t.Errorf("%q not reserved", tt.input)
				}
				return
			}
			if !term.Match(s, true) || s.Pos() != len(tt.input) {
				t.Errorf("parser terminal stopped at %d", s.Pos())
			}
		})
	}
}

func TestWalkFindsNames(t *testing.T) {
	g := mustDefault(t)
	var names []string
	walk(g.Productions["Literal"].Expr, func(n *ebnf.Name) { names = append(names, n.String) })
	if !reflect.DeepEqual(names, []string{"number"}) {
		t.Errorf("got %v", names)
	}
}
