// Package codebase keeps the shader files of a directory tree parsed and
// serves their diagnostics to editors and the watch command.
package codebase

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/sdsl/sdsl/parser"
)

var log = commonlog.GetLogger("sdsl.codebase")

// Extensions lists the file extensions treated as shader sources.
var Extensions = []string{".sdsl", ".sdsli"}

func IsSource(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

// FileInfo is the state of one file after its last parse. AST is nil when
// the file has diagnostics; Partial then holds the statements that did
// parse.
type FileInfo struct {
	Path     string
	Content  []byte
	AST      parser.Node
	Partial  []parser.Statement
	Comments []parser.Comment
	Errors   parser.ParseErrors
}

func (f *FileInfo) OK() bool {
	return len(f.Errors) == 0
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll parses every source file below the root directory. Hidden
// directories are skipped. Unreadable entries are logged and skipped.
func (c *Codebase) ScanAll() error {
	return filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warningf("scan %s: %s", path, err)
			return nil
		}
		if d.IsDir() {
			if path != c.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path) {
			if _, err := c.ScanFile(path); err != nil {
				log.Warningf("%s", err)
			}
		}
		return nil
	})
}

func (c *Codebase) ScanFile(path string) (*FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c.UpdateFile(path, content), nil
}

// UpdateFile replaces the content of path and parses it in recovery mode,
// so every top-level statement gets a chance to report.
func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	info := Parse(path, content)

	c.mu.Lock()
	c.files[path] = info
	c.mu.Unlock()

	log.Debugf("parsed %s: %d diagnostics", path, len(info.Errors))
	return info
}

// Parse parses content without storing it.
func Parse(path string, content []byte) *FileInfo {
	p := parser.ParseStatements(bytes.NewReader(content),
		parser.WithFile(filepath.Base(path)),
		parser.WithComments(),
		parser.WithRecovery(),
	)
	ast := p.Finish()
	return &FileInfo{
		Path:     path,
		Content:  content,
		AST:      ast,
		Partial:  p.Partial(),
		Comments: p.Comments(),
		Errors:   p.Errors(),
	}
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns the known files ordered by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// ErrorCount returns the number of diagnostics across all files.
func (c *Codebase) ErrorCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, f := range c.files {
		n += len(f.Errors)
	}
	return n
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}
