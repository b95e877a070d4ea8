package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

func mustParse(t *testing.T, src string) parser.Node {
	t.Helper()
	p := parser.ParseStatements(strings.NewReader(src))
	root := p.Finish()
	if root == nil {
		t.Fatalf("parse failed: %v", p.Err())
	}
	return root
}

func parseErrors(t *testing.T, src string, opts ...parser.Option) parser.ParseErrors {
	t.Helper()
	p := parser.ParseStatements(strings.NewReader(src), opts...)
	if p.Finish() != nil {
		t.Fatalf("parse of %q succeeded", src)
	}
	return p.Errors()
}

func TestTreeEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf).Encode(mustParse(t, "x = 1;")); err != nil {
		t.Fatal(err)
	}
	want := `Unit 1:1-1:7
  Assign 1:1-1:7
    Assignment 1:1-1:6 =
      Identifier 1:1-1:2 x
      Literal 1:5-1:6 1
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeEncoderModifiers(t *testing.T) {
	text, err := NewTreeEncoder(nil).MarshalText(mustParse(t, "static const int n;"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(text), "\n")
	if len(lines) < 2 || !strings.HasSuffix(lines[1], "[static const]") {
		t.Errorf("declare line = %q", lines[1])
	}
}

func TestASTJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(mustParse(t, "float4 c = a + b;")); err != nil {
		t.Fatal(err)
	}
	var root astJSONNode
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Kind != "Unit" || len(root.Children) != 1 {
		t.Fatalf("root = %s with %d children", root.Kind, len(root.Children))
	}
	decl := root.Children[0]
	if decl.Kind != "Declare" || decl.Span.End.Offset != 17 {
		t.Errorf("declare = %s ending at %d", decl.Kind, decl.Span.End.Offset)
	}
	if len(decl.Children) != 2 || decl.Children[0].Text != "float4" {
		t.Fatalf("declare children = %+v", decl.Children)
	}
	variable := decl.Children[1]
	if variable.Kind != "Variable" || len(variable.Children) != 2 {
		t.Fatalf("variable = %+v", variable)
	}
	if bin := variable.Children[1]; bin.Kind != "BinaryExpr" || bin.Text != "+" {
		t.Errorf("initializer = %s %q", bin.Kind, bin.Text)
	}
}

func TestLineEncoder(t *testing.T) {
	errs := parseErrors(t, "x = ;\ny = ;\n", parser.WithRecovery())
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode("a.sdsl", nil, errs); err != nil {
		t.Fatal(err)
	}
	want := "a.sdsl:1:5: expected expression after '='\na.sdsl:2:5: expected expression after '='\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDiagnosticJSONEncoder(t *testing.T) {
	src := "float x"
	errs := parseErrors(t, src)
	var buf bytes.Buffer
	if err := NewDiagnosticJSONEncoder(&buf).Encode("b.sdsl", []byte(src), errs); err != nil {
		t.Fatal(err)
	}
	var report jsonReport
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.File != "b.sdsl" || report.OK || len(report.Diagnostics) != 1 {
		t.Fatalf("report = %+v", report)
	}
	d := report.Diagnostics[0]
	if d.Message != "expected ';' after declaration" || d.Line != 1 || d.Column != 8 {
		t.Errorf("diagnostic = %+v", d)
	}

	text, err := NewDiagnosticJSONEncoder(nil).MarshalText("ok.sdsl", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(text), `"ok": true`) || !strings.Contains(string(text), `"diagnostics": []`) {
		t.Errorf("clean report = %s", text)
	}
}

func TestCaretEncoder(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		color bool
		want  string
	}{
		{
			name: "plain",
			src:  "x = 1;\nfloat x",
			want: "error: expected ';' after declaration\n" +
				"  --> shader.sdsl:2:8\n" +
				"   |\n" +
				"  2| float x\n" +
				"   |        ^\n",
		},
		{
			name: "tabs",
			src:  "\tx = ;",
			want: "error: expected expression after '='\n" +
				"  --> shader.sdsl:1:6\n" +
				"   |\n" +
				"  1| \tx = ;\n" +
				"   | \t    ^\n",
		},
		{
			name:  "color",
			src:   "@",
			color: true,
			want: "\x1b[1m\x1b[31merror\x1b[0m: \x1b[1munexpected input\x1b[0m\n" +
				"  \x1b[34m-->\x1b[0m shader.sdsl:1:1\n" +
				"\x1b[34m   |\x1b[0m\n" +
				"\x1b[34m  1|\x1b[0m @\n" +
				"\x1b[34m   |\x1b[0m \x1b[1m\x1b[31m^\x1b[0m\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseErrors(t, tt.src)
			got := NewCaretEncoder(nil, tt.color).MarshalText("shader.sdsl", []byte(tt.src), errs)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
