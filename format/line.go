package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

// LineEncoder writes one "file:line:column: message" line per diagnostic,
// the form compilers print and editors jump to.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(file string, source []byte, errs parser.ParseErrors) error {
	_, err := io.WriteString(e.w, e.MarshalText(file, errs))
	return err
}

func (e *LineEncoder) MarshalText(file string, errs parser.ParseErrors) string {
	var sb strings.Builder
	for _, pe := range errs {
		pos := pe.Position
		if pos.File == "" {
			pos.File = file
		}
		fmt.Fprintf(&sb, "%s: %s\n", pos, pe.Message)
	}
	return sb.String()
}
