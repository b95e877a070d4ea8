package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

func printSource(t *testing.T, src string) string {
	t.Helper()
	p := parser.ParseStatements(strings.NewReader(src), parser.WithComments())
	root := p.Finish()
	if root == nil {
		t.Fatalf("parse failed: %v", p.Err())
	}
	var buf bytes.Buffer
	if err := NewPrettyPrinter(&buf).Print(root, p.Comments()); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestPrettyPrint(t *testing.T) {
	src := `// header
static const int N=4;
float4 c = float4(1,0,0,1); // red

for(int i=0;i<N;i++){ c.x+=i; }
if (a) x++; else if(b){y--;} else { }
while(true) break;
`
	want := `// header
static const int N = 4;
float4 c = float4(1, 0, 0, 1); // red

for (int i = 0; i < N; i++) {
    c.x += i;
}
if (a)
    x++;
else if (b) {
    y--;
} else {}
while (true)
    break;
`
	if got := printSource(t, src); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyPrintStatements(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x=a+-b;", "x = a + -b;\n"},
		{"y = - -x;", "y = - -x;\n"},
		{"z = (a+b)*c;", "z = (a + b) * c;\n"},
		{"return a?b:c;", "return a ? b : c;\n"},
		{"return;", "return;\n"},
		{"discard;", "discard;\n"},
		{"Texture2D<float4> tex;", "Texture2D<float4> tex;\n"},
		{"float w[3]={1,2,3}, v;", "float w[3] = {1, 2, 3}, v;\n"},
		{"for(;;){}", "for (;;) {}\n"},
		{"for(i=0,j=1;;i++,j++) ;", "for (i = 0, j = 1;; i++, j++)\n    ;\n"},
		{"[unroll(4)] [loop] while (i<4) { i++; }", "[unroll(4)] [loop] while (i < 4) {\n    i++;\n}\n"},
		{"foreach(var l in lights){l.Apply();}", "foreach (var l in lights) {\n    l.Apply();\n}\n"},
		{"m[0][1].x*=s.Sample(t,uv).r;", "m[0][1].x *= s.Sample(t, uv).r;\n"},
		{"{ /* empty */ }", "{\n    /* empty */\n}\n"},
		{"a = 1; /* one */ /* two */", "a = 1; /* one */ /* two */\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := printSource(t, tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrettyPrintNestedElse(t *testing.T) {
	got := printSource(t, "if (a) if (b) x++; else y++;")
	want := "if (a)\n    if (b)\n        x++;\n    else\n        y++;\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

const roundTripSource = `// Lighting accumulation
static const int MaxLights = 8;
float3 accum = float3(0, 0, 0);

[unroll]
for (int i = 0; i < MaxLights; i++) {
    float3 l = normalize(Lights[i].Position - worldPos);
    // clamp to the lit hemisphere
    float ndotl = saturate(dot(normal, l));
    if (ndotl <= 0) {
        continue;
    } else if (Lights[i].Shadowed) {
        ndotl *= Shadow.Sample(ShadowSampler, uv).r;
    } else {
        ;
    }
    accum += Lights[i].Color * ndotl; /* diffuse */
}
foreach (var probe in Probes) {
    accum = accum + probe.Evaluate(normal);
}
while (accum.x > 1.0f) accum.x -= 1.0f;
Texture2D<float4> tex;
float weights[3] = {0.25, 0.5, 0.25};
// trailing comment
return accum.x > 0.5 ? accum : float3(0, 0, 0);
`

// Printing is idempotent and keeps every comment.
func TestPrettyPrintRoundTrip(t *testing.T) {
	first := printSource(t, roundTripSource)
	second := printSource(t, first)
	if first != second {
		t.Errorf("second pass differs:\n--- first\n%s\n--- second\n%s", first, second)
	}
	for _, c := range []string{"// Lighting accumulation", "// clamp to the lit hemisphere", "/* diffuse */", "// trailing comment"} {
		if strings.Count(first, c) != 1 {
			t.Errorf("comment %q appears %d times", c, strings.Count(first, c))
		}
	}
	if !strings.Contains(first, "accum += Lights[i].Color * ndotl; /* diffuse */\n") {
		t.Errorf("trailing comment moved:\n%s", first)
	}
	if !strings.Contains(first, "float3 accum = float3(0, 0, 0);\n\n[unroll] for") {
		t.Errorf("blank line lost:\n%s", first)
	}
}

func TestPrettyPrintExpression(t *testing.T) {
	p := parser.ParseExpression(strings.NewReader("a+b*(c-1)"))
	root := p.Finish()
	if root == nil {
		t.Fatal(p.Err())
	}
	var buf bytes.Buffer
	if err := NewPrettyPrinter(&buf).Print(root, nil); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "a + b * (c - 1)\n" {
		t.Errorf("got %q", got)
	}
}
