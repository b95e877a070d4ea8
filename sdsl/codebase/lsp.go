package codebase

import (
	"bytes"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/sdsl/format"
	"github.com/dhamidi/sdsl/sdsl/parser"
)

const lsName = "sdsl"

// LSPServer publishes parse diagnostics for open documents and formats
// them on request.
type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version:  version,
		codebase: New("."),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentFormatting: ls.textDocumentFormatting,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}

	ls.codebase = New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

// initialized parses the workspace and reports every file with problems,
// open or not.
func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(); err != nil {
		log.Errorf("scan workspace: %s", err)
	}
	for _, f := range ls.codebase.Files() {
		if !f.OK() {
			ls.publish(ctx, f)
		}
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.publish(ctx, ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text)))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.publish(ctx, ls.codebase.UpdateFile(path, []byte(textChange.Text)))
		}
	}
	return nil
}

// textDocumentDidClose reloads the file from disk, dropping unsaved
// edits, and clears its diagnostics when it no longer exists.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	info, err := ls.codebase.ScanFile(path)
	if err != nil {
		ls.codebase.RemoveFile(path)
		ls.publish(ctx, &FileInfo{Path: path})
		return nil
	}
	ls.publish(ctx, info)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var info *FileInfo
	if params.Text != nil {
		info = ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if info, err = ls.codebase.ScanFile(path); err != nil {
		log.Warningf("%s", err)
		return nil
	}
	ls.publish(ctx, info)
	return nil
}

// textDocumentFormatting replaces the whole document with its pretty
// printed form. Documents with diagnostics are left alone.
func (ls *LSPServer) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := ls.codebase.GetFile(path)
	if f == nil || !f.OK() {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := format.NewPrettyPrinter(&buf).Print(f.AST, f.Comments); err != nil {
		return nil, err
	}
	if bytes.Equal(buf.Bytes(), f.Content) {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   endPosition(f.Content),
		},
		NewText: buf.String(),
	}}, nil
}

func (ls *LSPServer) publish(ctx *glsp.Context, f *FileInfo) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(f.Path),
		Diagnostics: Diagnostics(f),
	})
}

// Diagnostics converts the parse errors of f to LSP diagnostics. Each one
// covers the rest of the offending token on its line.
func Diagnostics(f *FileInfo) []protocol.Diagnostic {
	lines := strings.Split(string(f.Content), "\n")
	out := make([]protocol.Diagnostic, 0, len(f.Errors))
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, pe := range f.Errors {
		start := toProtocolPosition(lines, pe.Position)
		end := start
		if n := tokenLen(pe.Excerpt); n > 0 {
			end.Character += protocol.UInteger(utf16Len(pe.Excerpt[:n]))
		}
		out = append(out, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Source:   &source,
			Message:  pe.Message,
		})
	}
	return out
}

// toProtocolPosition converts a 1-based byte column into the 0-based
// UTF-16 offset LSP clients count in.
func toProtocolPosition(lines []string, pos parser.Position) protocol.Position {
	line := pos.Line - 1
	if line < 0 {
		line = 0
	}
	char := 0
	if line < len(lines) {
		text := lines[line]
		col := pos.Column - 1
		if col > len(text) {
			col = len(text)
		}
		if col > 0 {
			char = utf16Len(text[:col])
		}
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

// tokenLen returns the length of the word or symbol run at the start of
// excerpt.
func tokenLen(excerpt string) int {
	for i, r := range excerpt {
		if r == ' ' || r == '\t' || r == '\r' {
			return i
		}
	}
	return len(excerpt)
}

func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

func endPosition(content []byte) protocol.Position {
	lines := strings.Split(string(content), "\n")
	last := len(lines) - 1
	return protocol.Position{
		Line:      protocol.UInteger(last),
		Character: protocol.UInteger(utf16Len(lines[last])),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
