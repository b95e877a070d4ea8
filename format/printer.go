package format

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

// PrettyPrinter re-emits a parsed unit in canonical layout. Comments
// captured during the parse are placed before the statement that follows
// them, or after a statement when they start on the line it ends.
// Single blank lines between statements survive.
type PrettyPrinter struct {
	w         io.Writer
	buf       bytes.Buffer
	comments  []parser.Comment
	next      int
	indent    int
	indentStr string
	lastLine  int
}

func NewPrettyPrinter(w io.Writer) *PrettyPrinter {
	return &PrettyPrinter{w: w, indentStr: "    "}
}

func (p *PrettyPrinter) Print(node parser.Node, comments []parser.Comment) error {
	p.buf.Reset()
	p.comments = append([]parser.Comment(nil), comments...)
	sort.Slice(p.comments, func(i, j int) bool {
		return p.comments[i].Span.Start.Offset < p.comments[j].Span.Start.Offset
	})
	p.next = 0
	p.indent = 0
	p.lastLine = 0

	switch n := node.(type) {
	case *parser.Unit:
		p.statements(n.Statements)
	case parser.Statement:
		p.statements([]parser.Statement{n})
	case parser.Expression:
		p.buf.WriteString(exprString(n))
		p.buf.WriteByte('\n')
	default:
		return fmt.Errorf("cannot print %s", node.Kind())
	}
	p.commentsBefore(-1)

	_, err := p.w.Write(p.buf.Bytes())
	return err
}

func (p *PrettyPrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *PrettyPrinter) newline() {
	p.buf.WriteByte('\n')
}

func (p *PrettyPrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString(p.indentStr)
	}
}

// separate emits a blank line when the source had one before line.
func (p *PrettyPrinter) separate(line int) {
	if p.lastLine > 0 && line > p.lastLine+1 {
		p.newline()
	}
}

// commentsBefore emits, one per line, every pending comment starting
// before offset. A negative offset flushes all of them.
func (p *PrettyPrinter) commentsBefore(offset int) {
	for p.next < len(p.comments) {
		c := p.comments[p.next]
		if offset >= 0 && c.Span.Start.Offset >= offset {
			return
		}
		p.separate(c.Span.Start.Line)
		p.writeIndent()
		p.write(c.Text)
		p.newline()
		p.lastLine = c.Span.End.Line
		p.next++
	}
}

func (p *PrettyPrinter) hasCommentBefore(offset int) bool {
	return p.next < len(p.comments) && p.comments[p.next].Span.Start.Offset < offset
}

// trailing appends the comments that start on the line where st ends.
func (p *PrettyPrinter) trailing(st parser.Statement) {
	end := st.Span().End
	for p.next < len(p.comments) {
		c := p.comments[p.next]
		if c.Span.Start.Offset < end.Offset || c.Span.Start.Line != end.Line {
			return
		}
		p.write(" ")
		p.write(c.Text)
		p.lastLine = c.Span.End.Line
		p.next++
	}
}

func (p *PrettyPrinter) statements(list []parser.Statement) {
	for _, st := range list {
		sp := st.Span()
		p.commentsBefore(sp.Start.Offset)
		p.separate(sp.Start.Line)
		p.writeIndent()
		p.statement(st)
		p.lastLine = sp.End.Line
		p.trailing(st)
		p.newline()
	}
}

func (p *PrettyPrinter) statement(st parser.Statement) {
	switch n := st.(type) {
	case *parser.EmptyStatement:
		p.write(";")
	case *parser.ExpressionStatement:
		p.write(exprString(n.Expression) + ";")
	case *parser.Declare:
		p.write(declareString(n) + ";")
	case *parser.Assign:
		p.write(assignString(n) + ";")
	case *parser.Break:
		p.write("break;")
	case *parser.Continue:
		p.write("continue;")
	case *parser.Discard:
		p.write("discard;")
	case *parser.Return:
		if n.Value == nil {
			p.write("return;")
		} else {
			p.write("return " + exprString(n.Value) + ";")
		}
	case *parser.Block:
		p.block(n)
	case *parser.ConditionalFlow:
		p.conditionalFlow(n)
	case *parser.While:
		p.write(attributesString(n.Attributes))
		p.write("while (" + exprString(n.Condition) + ")")
		p.body(n.Body)
	case *parser.For:
		p.write(attributesString(n.Attributes))
		p.write(forHeader(n))
		p.body(n.Body)
	case *parser.ForEach:
		p.write(fmt.Sprintf("foreach (%s %s in %s)", typeString(n.Type), n.Variable.Name, exprString(n.Collection)))
		p.body(n.Body)
	}
}

func (p *PrettyPrinter) block(b *parser.Block) {
	end := b.Span().End.Offset
	if len(b.Statements) == 0 && !p.hasCommentBefore(end) {
		p.write("{}")
		return
	}
	p.write("{")
	p.newline()
	p.indent++
	p.lastLine = 0
	p.statements(b.Statements)
	p.commentsBefore(end)
	p.indent--
	p.writeIndent()
	p.write("}")
}

// body prints a loop or branch body and reports whether it was a block.
// Other statements go on their own line one level deeper.
func (p *PrettyPrinter) body(st parser.Statement) bool {
	if b, ok := st.(*parser.Block); ok {
		p.write(" ")
		p.block(b)
		return true
	}
	p.newline()
	p.indent++
	p.lastLine = 0
	p.commentsBefore(st.Span().Start.Offset)
	p.writeIndent()
	p.statement(st)
	p.trailing(st)
	p.indent--
	return false
}

func (p *PrettyPrinter) conditionalFlow(n *parser.ConditionalFlow) {
	p.write("if (" + exprString(n.If.Condition) + ")")
	afterBlock := p.body(n.If.Body)
	for _, ei := range n.ElseIfs {
		p.continuation(afterBlock)
		p.write("else if (" + exprString(ei.Condition) + ")")
		afterBlock = p.body(ei.Body)
	}
	if n.Else != nil {
		p.continuation(afterBlock)
		p.write("else")
		p.body(n.Else.Body)
	}
}

func (p *PrettyPrinter) continuation(afterBlock bool) {
	if afterBlock {
		p.write(" ")
		return
	}
	p.newline()
	p.writeIndent()
}

func attributesString(attrs []*parser.Attribute) string {
	var sb strings.Builder
	for _, a := range attrs {
		sb.WriteString("[" + a.Name.Name)
		if len(a.Arguments) > 0 {
			sb.WriteString("(" + exprList(a.Arguments) + ")")
		}
		sb.WriteString("] ")
	}
	return sb.String()
}

func forHeader(n *parser.For) string {
	var sb strings.Builder
	sb.WriteString("for (")
	sb.WriteString(clauseString(n.Init))
	sb.WriteString(";")
	if _, empty := n.Condition.(*parser.EmptyExpression); !empty && n.Condition != nil {
		sb.WriteString(" " + exprString(n.Condition))
	}
	sb.WriteString(";")
	var update []string
	for _, st := range n.Update {
		if c := clauseString(st); c != "" {
			update = append(update, c)
		}
	}
	if len(update) > 0 {
		sb.WriteString(" " + strings.Join(update, ", "))
	}
	sb.WriteString(")")
	return sb.String()
}

// clauseString prints a for-loop clause without its semicolon.
func clauseString(st parser.Statement) string {
	switch n := st.(type) {
	case *parser.ExpressionStatement:
		return exprString(n.Expression)
	case *parser.Declare:
		return declareString(n)
	case *parser.Assign:
		return assignString(n)
	}
	return ""
}

func declareString(d *parser.Declare) string {
	var sb strings.Builder
	for _, m := range d.Modifiers {
		sb.WriteString(m + " ")
	}
	sb.WriteString(typeString(d.Type))
	sb.WriteString(" ")
	for i, v := range d.Variables {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.Name.Name)
		sb.WriteString(arraySizesString(v.ArraySizes))
		if v.Value != nil {
			sb.WriteString(" = " + exprString(v.Value))
		}
	}
	return sb.String()
}

func assignString(a *parser.Assign) string {
	parts := make([]string, len(a.Assignments))
	for i, as := range a.Assignments {
		parts[i] = exprString(as.Target) + " " + as.Op + " " + exprString(as.Value)
	}
	return strings.Join(parts, ", ")
}

func typeString(t *parser.TypeName) string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Generics) > 0 {
		args := make([]string, len(t.Generics))
		for i, g := range t.Generics {
			args[i] = exprString(g)
		}
		sb.WriteString("<" + strings.Join(args, ", ") + ">")
	}
	sb.WriteString(arraySizesString(t.ArraySizes))
	return sb.String()
}

func arraySizesString(sizes []parser.Expression) string {
	var sb strings.Builder
	for _, size := range sizes {
		sb.WriteString("[" + exprString(size) + "]")
	}
	return sb.String()
}

func exprList(list []parser.Expression) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = exprString(e)
	}
	return strings.Join(parts, ", ")
}

// exprString prints an expression on one line. Parentheses appear only
// where the source had them, which the tree records.
func exprString(n parser.Node) string {
	switch n := n.(type) {
	case *parser.Literal:
		return n.Value
	case *parser.Identifier:
		return n.Name
	case *parser.TypeName:
		return typeString(n)
	case *parser.EmptyExpression:
		return ""
	case *parser.ParenthesizedExpression:
		return "(" + exprString(n.Inner) + ")"
	case *parser.BinaryExpression:
		return exprString(n.Left) + " " + n.Op + " " + exprString(n.Right)
	case *parser.UnaryExpression:
		operand := exprString(n.Operand)
		// "- -x" must not collapse into "--x".
		if last := n.Op[len(n.Op)-1]; (last == '+' || last == '-') && strings.HasPrefix(operand, string(last)) {
			return n.Op + " " + operand
		}
		return n.Op + operand
	case *parser.ConditionalExpression:
		return exprString(n.Condition) + " ? " + exprString(n.Then) + " : " + exprString(n.Else)
	case *parser.CallExpression:
		return n.Name.Name + "(" + exprList(n.Arguments) + ")"
	case *parser.ArrayLiteral:
		return "{" + exprList(n.Values) + "}"
	case *parser.PostfixExpression:
		var sb strings.Builder
		sb.WriteString(exprString(n.Source))
		for _, a := range n.Accessors {
			sb.WriteString(exprString(a))
		}
		return sb.String()
	case *parser.MemberAccess:
		return "." + n.Member.Name
	case *parser.MethodAccess:
		return "." + n.Name.Name + "(" + exprList(n.Arguments) + ")"
	case *parser.IndexAccess:
		return "[" + exprString(n.Index) + "]"
	case *parser.IncrementAccess:
		return n.Op
	}
	return ""
}
