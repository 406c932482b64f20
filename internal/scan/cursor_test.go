package scan

import "testing"

func TestCursorWalksLines(t *testing.T) {
	cur := New("first\nsecond\nthird\n")

	if cur.Remaining() != 3 {
		t.Fatalf("expected 3 remaining lines, got %d", cur.Remaining())
	}
	if cur.Line() != 1 {
		t.Fatalf("expected line numbering to start at 1, got %d", cur.Line())
	}
	if got := cur.Next(); got != "first" {
		t.Fatalf("expected first line, got %q", got)
	}
	if got := cur.Peek(); got != "second" {
		t.Fatalf("expected peek to see second line, got %q", got)
	}
	if cur.Line() != 2 {
		t.Fatalf("expected line 2 after one consume, got %d", cur.Line())
	}
	cur.Next()
	cur.Next()
	if cur.More() {
		t.Fatal("expected cursor to be exhausted")
	}
	if got := cur.Next(); got != "" {
		t.Fatalf("expected empty read past end, got %q", got)
	}
}

func TestCursorStripsCarriageReturns(t *testing.T) {
	cur := New("alpha\r\nbeta\r\n")
	if got := cur.Next(); got != "alpha" {
		t.Fatalf("expected CR to be stripped, got %q", got)
	}
	if got := cur.Next(); got != "beta" {
		t.Fatalf("expected CR to be stripped, got %q", got)
	}
}

func TestCursorTrailingNewlineProducesNoEmptyLine(t *testing.T) {
	if cur := New("only\n"); cur.Remaining() != 1 {
		t.Fatalf("expected a single line, got %d", cur.Remaining())
	}
	if cur := New(""); cur.More() {
		t.Fatal("expected empty input to have no lines")
	}
}

func TestCursorWithBaseOffsetsLineNumbers(t *testing.T) {
	cur := New("body").WithBase(4)
	if cur.Line() != 5 {
		t.Fatalf("expected base offset in line numbers, got %d", cur.Line())
	}
}

func TestCursorPeekAtAndBack(t *testing.T) {
	cur := New("a\nb\nc")
	if got := cur.PeekAt(2); got != "c" {
		t.Fatalf("expected lookahead to see c, got %q", got)
	}
	if got := cur.PeekAt(5); got != "" {
		t.Fatalf("expected lookahead past end to be empty, got %q", got)
	}
	cur.Next()
	cur.Back()
	if got := cur.Peek(); got != "a" {
		t.Fatalf("expected rewind to first line, got %q", got)
	}
}

func TestCursorBlankHandling(t *testing.T) {
	cur := New("text\n\n   \nnext")
	cur.Next()
	if cur.PrevBlank() {
		t.Fatal("expected previous line to be non-blank")
	}
	if !cur.SkipBlank() {
		t.Fatal("expected blanks to be skipped")
	}
	if got := cur.Peek(); got != "next" {
		t.Fatalf("expected cursor at next, got %q", got)
	}
	if !cur.PrevBlank() {
		t.Fatal("expected previous line to be blank after skipping")
	}
}

func TestIndent(t *testing.T) {
	cases := []struct {
		line string
		want int
	}{
		{"none", 0},
		{"  two", 2},
		{"\tone", 1},
		{"    ", 4},
	}
	for _, tc := range cases {
		if got := Indent(tc.line); got != tc.want {
			t.Fatalf("Indent(%q): expected %d, got %d", tc.line, tc.want, got)
		}
	}
}
