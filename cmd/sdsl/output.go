package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/dhamidi/sdsl/format"
	"github.com/dhamidi/sdsl/sdsl/codebase"
)

// errReported is returned by commands that already printed their
// diagnostics and only need a non-zero exit status.
var errReported = errors.New("errors reported")

// readSource reads the named file, or stdin when args is empty. The
// returned name is used in diagnostics.
func readSource(stdin io.Reader, args []string) (string, []byte, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", data, nil
	}
	filename := args[0]
	if !codebase.IsSource(filename) {
		return "", nil, fmt.Errorf("expected a %v file, got %s", codebase.Extensions, filepath.Base(filename))
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", nil, fmt.Errorf("read file: %w", err)
	}
	return filename, data, nil
}

// useColor resolves a --color flag value for w.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	}
	return false, fmt.Errorf("unknown color mode: %s (expected auto, always or never)", mode)
}

func newDiagnosticEncoder(name string, w io.Writer, color bool) (format.DiagnosticEncoder, error) {
	switch name {
	case "caret":
		return format.NewCaretEncoder(w, color), nil
	case "line":
		return format.NewLineEncoder(w), nil
	case "json":
		return format.NewDiagnosticJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown diagnostics format: %s (expected caret, line or json)", name)
}
