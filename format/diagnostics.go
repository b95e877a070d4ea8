package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

// CaretEncoder renders each diagnostic with the offending source line and
// a caret under the error column:
//
//	error: expected ';' after declaration
//	  --> shader.sdsl:1:8
//	   |
//	  1| float x
//	   |        ^
type CaretEncoder struct {
	w     io.Writer
	color bool
}

func NewCaretEncoder(w io.Writer, color bool) *CaretEncoder {
	return &CaretEncoder{w: w, color: color}
}

func (e *CaretEncoder) Encode(file string, source []byte, errs parser.ParseErrors) error {
	_, err := io.WriteString(e.w, e.MarshalText(file, source, errs))
	return err
}

func (e *CaretEncoder) MarshalText(file string, source []byte, errs parser.ParseErrors) string {
	lines := strings.Split(string(source), "\n")
	var sb strings.Builder
	for i, pe := range errs {
		if i > 0 {
			sb.WriteString("\n")
		}
		e.writeDiagnostic(&sb, file, lines, pe)
	}
	return sb.String()
}

func (e *CaretEncoder) writeDiagnostic(sb *strings.Builder, file string, lines []string, pe parser.ParseError) {
	pos := pe.Position
	if pos.File == "" {
		pos.File = file
	}
	fmt.Fprintf(sb, "%s: %s\n", e.paint(ansiBold+ansiRed, "error"), e.paint(ansiBold, pe.Message))

	if pos.Line < 1 || pos.Line > len(lines) {
		fmt.Fprintf(sb, "  %s %s\n", e.paint(ansiBlue, "-->"), pos)
		return
	}
	line := strings.TrimSuffix(lines[pos.Line-1], "\r")
	col := pos.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}
	pos.Column = col

	gutter := e.paint(ansiBlue, "   |")
	fmt.Fprintf(sb, "  %s %s\n", e.paint(ansiBlue, "-->"), pos)
	fmt.Fprintf(sb, "%s\n", gutter)
	fmt.Fprintf(sb, "%s %s\n", e.paint(ansiBlue, fmt.Sprintf("%3d|", pos.Line)), line)
	fmt.Fprintf(sb, "%s %s%s\n", gutter, caretPadding(line, col), e.paint(ansiBold+ansiRed, "^"))
}

// caretPadding keeps tabs from the source line so the caret lines up
// however the terminal expands them.
func caretPadding(line string, col int) string {
	var sb strings.Builder
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func (e *CaretEncoder) paint(code, text string) string {
	if !e.color {
		return text
	}
	return code + text + ansiReset
}
