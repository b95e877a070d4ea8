package codebase

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.sdsl"), "float4 c = float4(1, 0, 0, 1);\n")
	writeFile(t, filepath.Join(root, "shaders", "bad.sdsl"), "x = ;\ny = 2;\nz = ;\n")
	writeFile(t, filepath.Join(root, "shaders", "notes.txt"), "x = ;")
	writeFile(t, filepath.Join(root, ".cache", "hidden.sdsl"), "x = ;")

	c := New(root)
	if err := c.ScanAll(); err != nil {
		t.Fatal(err)
	}
	files := c.Files()
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if filepath.Base(files[0].Path) != "good.sdsl" || filepath.Base(files[1].Path) != "bad.sdsl" {
		t.Errorf("files = %s, %s", files[0].Path, files[1].Path)
	}

	good, bad := files[0], files[1]
	if !good.OK() || good.AST == nil {
		t.Errorf("good.sdsl: %v", good.Errors)
	}
	if bad.OK() || bad.AST != nil {
		t.Fatal("bad.sdsl parsed cleanly")
	}
	if len(bad.Errors) != 2 {
		t.Errorf("bad.sdsl has %d errors, want 2 in recovery mode", len(bad.Errors))
	}
	if bad.Errors[0].Position.File != "bad.sdsl" {
		t.Errorf("error file = %q", bad.Errors[0].Position.File)
	}
	if len(bad.Partial) != 1 {
		t.Errorf("bad.sdsl kept %d statements, want 1", len(bad.Partial))
	}
	if got := c.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount = %d", got)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	c := New(t.TempDir())
	info := c.UpdateFile("a.sdsl", []byte("// lit\nx = 1;"))
	if !info.OK() || len(info.Comments) != 1 {
		t.Fatalf("info = %+v", info)
	}
	if c.GetFile("a.sdsl") != info {
		t.Error("GetFile returned a different entry")
	}

	info = c.UpdateFile("a.sdsl", []byte("x = ;"))
	if info.OK() || c.GetFile("a.sdsl").OK() {
		t.Error("update did not replace the entry")
	}

	c.RemoveFile("a.sdsl")
	if c.GetFile("a.sdsl") != nil || len(c.Files()) != 0 {
		t.Error("file not removed")
	}
}

func TestScanFileMissing(t *testing.T) {
	c := New(t.TempDir())
	if _, err := c.ScanFile(filepath.Join(c.RootDir(), "nope.sdsl")); err == nil {
		t.Fatal("expected error")
	}
}

func TestIsSource(t *testing.T) {
	tests := map[string]bool{
		"a.sdsl":      true,
		"dir/b.sdsli": true,
		"c.hlsl":      false,
		"sdsl":        false,
		"d.sdsl.orig": false,
	}
	for path, want := range tests {
		if got := IsSource(path); got != want {
			t.Errorf("IsSource(%q) = %v", path, got)
		}
	}
}
