package parser

import "testing"

func TestScannerPosition(t *testing.T) {
	s := NewScanner([]byte("ab\ncd\r\nef"), "test.sdsl")
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{3, 2, 1},
		{4, 2, 2},
		{7, 3, 1},
		{9, 3, 3},
		{42, 3, 3},
	}
	for _, tt := range tests {
		pos := s.Position(tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
		if pos.File != "test.sdsl" {
			t.Errorf("Position(%d).File = %q", tt.offset, pos.File)
		}
	}
	if got := s.Position(4).String(); got != "test.sdsl:2:2" {
		t.Errorf("String() = %q", got)
	}
}

func TestScannerLineText(t *testing.T) {
	s := NewScanner([]byte("ab\ncd\r\nef"), "")
	tests := []struct {
		offset int
		want   string
	}{
		{0, "ab"},
		{1, "ab"},
		{4, "cd"},
		{8, "ef"},
	}
	for _, tt := range tests {
		if got := s.LineText(tt.offset); got != tt.want {
			t.Errorf("LineText(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func TestScannerCursor(t *testing.T) {
	s := NewScanner([]byte("abc"), "")
	if s.Peek() != 'a' || s.PeekAt(2) != 'c' || s.PeekAt(3) != 0 {
		t.Fatalf("unexpected peek results")
	}
	s.Advance(2)
	if s.Pos() != 2 || s.IsEOF() {
		t.Fatalf("Pos() = %d after Advance(2)", s.Pos())
	}
	s.SetPos(10)
	if s.Pos() != 3 || !s.IsEOF() {
		t.Errorf("SetPos beyond end: Pos() = %d, want 3", s.Pos())
	}
	s.SetPos(-1)
	if s.Pos() != 0 {
		t.Errorf("SetPos(-1): Pos() = %d, want 0", s.Pos())
	}
	s.Poison()
	if s.Pos() != s.End() {
		t.Errorf("Poison: Pos() = %d, want %d", s.Pos(), s.End())
	}
	if got := s.Text(1, 10); got != "bc" {
		t.Errorf("Text(1, 10) = %q", got)
	}
}

func TestScannerDepth(t *testing.T) {
	s := NewScanner(nil, "")
	s.maxDepth = 2
	if !s.Enter() || !s.Enter() {
		t.Fatal("Enter failed below the limit")
	}
	if s.Enter() {
		t.Error("Enter succeeded above the limit")
	}
	s.Leave()
	s.Leave()
	s.Leave()
	if s.depth != 0 {
		t.Errorf("depth = %d after balanced Leave", s.depth)
	}
}

func TestScannerComments(t *testing.T) {
	s := NewScanner([]byte("  // hi\n/* c */x"), "")
	s.captureComments = true
	Spaces0(s)
	if s.Peek() != 'x' {
		t.Fatalf("Spaces0 stopped at %q", s.Peek())
	}
	// A second pass over the same input must not duplicate comments.
	s.SetPos(0)
	Spaces0(s)

	comments := s.Comments()
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].Text != "// hi" || comments[1].Text != "/* c */" {
		t.Errorf("comments = %q, %q", comments[0].Text, comments[1].Text)
	}
	if comments[1].Span.Start.Line != 2 {
		t.Errorf("second comment on line %d", comments[1].Span.Start.Line)
	}
}
