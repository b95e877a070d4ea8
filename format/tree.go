package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

// TreeEncoder prints one node per line, indented by depth:
//
//	Declare 1:1-1:12 [const]
//	  TypeName 1:7-1:10 int
type TreeEncoder struct {
	w      io.Writer
	indent string
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w, indent: "  "}
}

func (e *TreeEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(node parser.Node) ([]byte, error) {
	var sb strings.Builder
	e.writeNode(&sb, node, 0)
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) writeNode(sb *strings.Builder, n parser.Node, depth int) {
	sp := n.Span()
	sb.WriteString(strings.Repeat(e.indent, depth))
	fmt.Fprintf(sb, "%s %d:%d-%d:%d", n.Kind(), sp.Start.Line, sp.Start.Column, sp.End.Line, sp.End.Column)
	if text := nodeText(n); text != "" {
		sb.WriteString(" ")
		sb.WriteString(text)
	}
	if d, ok := n.(*parser.Declare); ok && len(d.Modifiers) > 0 {
		fmt.Fprintf(sb, " [%s]", strings.Join(d.Modifiers, " "))
	}
	sb.WriteString("\n")
	for _, child := range parser.Children(n) {
		e.writeNode(sb, child, depth+1)
	}
}
