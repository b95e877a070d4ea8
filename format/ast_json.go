package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(node parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind      string         `json:"kind"`
	Span      astJSONSpan    `json:"span"`
	Text      string         `json:"text,omitempty"`
	Modifiers []string       `json:"modifiers,omitempty"`
	Children  []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func nodeToJSON(n parser.Node) *astJSONNode {
	sp := n.Span()
	jn := &astJSONNode{
		Kind: n.Kind().String(),
		Span: astJSONSpan{
			Start: astJSONPosition{Offset: sp.Start.Offset, Line: sp.Start.Line, Column: sp.Start.Column},
			End:   astJSONPosition{Offset: sp.End.Offset, Line: sp.End.Line, Column: sp.End.Column},
		},
		Text: nodeText(n),
	}
	if d, ok := n.(*parser.Declare); ok {
		jn.Modifiers = d.Modifiers
	}
	children := parser.Children(n)
	if len(children) > 0 {
		jn.Children = make([]*astJSONNode, len(children))
		for i, child := range children {
			jn.Children[i] = nodeToJSON(child)
		}
	}
	return jn
}

// nodeText returns the token-level payload of n: a name, a literal value
// or an operator. Structural nodes have none.
func nodeText(n parser.Node) string {
	switch n := n.(type) {
	case *parser.Unit:
		return n.File
	case *parser.Literal:
		return n.Value
	case *parser.Identifier:
		return n.Name
	case *parser.TypeName:
		return n.Name
	case *parser.UnaryExpression:
		return n.Op
	case *parser.BinaryExpression:
		return n.Op
	case *parser.Assignment:
		return n.Op
	case *parser.IncrementAccess:
		return n.Op
	}
	return ""
}
