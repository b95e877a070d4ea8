package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

// DiagnosticJSONEncoder writes one JSON document per file.
type DiagnosticJSONEncoder struct {
	w io.Writer
}

func NewDiagnosticJSONEncoder(w io.Writer) *DiagnosticJSONEncoder {
	return &DiagnosticJSONEncoder{w: w}
}

type jsonReport struct {
	File        string           `json:"file"`
	OK          bool             `json:"ok"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

type jsonDiagnostic struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
	Excerpt string `json:"excerpt,omitempty"`
}

func (e *DiagnosticJSONEncoder) Encode(file string, source []byte, errs parser.ParseErrors) error {
	text, err := e.MarshalText(file, errs)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *DiagnosticJSONEncoder) MarshalText(file string, errs parser.ParseErrors) ([]byte, error) {
	report := jsonReport{
		File:        file,
		OK:          len(errs) == 0,
		Diagnostics: make([]jsonDiagnostic, 0, len(errs)),
	}
	for _, pe := range errs {
		report.Diagnostics = append(report.Diagnostics, jsonDiagnostic{
			Message: pe.Message,
			Line:    pe.Position.Line,
			Column:  pe.Position.Column,
			Offset:  pe.Position.Offset,
			Excerpt: pe.Excerpt,
		})
	}
	return json.MarshalIndent(report, "", "  ")
}
