package format

import (
	"github.com/dhamidi/sdsl/sdsl/parser"
)

// Encoder renders a syntax tree.
type Encoder interface {
	Encode(node parser.Node) error
	MarshalText(node parser.Node) ([]byte, error)
}

// DiagnosticEncoder renders the diagnostics of one parse.
type DiagnosticEncoder interface {
	Encode(file string, source []byte, errs parser.ParseErrors) error
}

var (
	_ Encoder           = (*ASTJSONEncoder)(nil)
	_ Encoder           = (*TreeEncoder)(nil)
	_ DiagnosticEncoder = (*DiagnosticJSONEncoder)(nil)
	_ DiagnosticEncoder = (*LineEncoder)(nil)
	_ DiagnosticEncoder = (*CaretEncoder)(nil)
)
