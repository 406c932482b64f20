// Package scan provides the shared line cursor both format readers are built
// on. It owns line splitting and 1-based numbering so parse errors report
// positions consistently across grammars.
package scan

import "strings"

// Cursor walks the lines of an in-memory text buffer. The whole input is
// split up front; there is no streaming.
type Cursor struct {
	lines []string
	pos   int
	base  int
}

// New builds a cursor over text. A trailing newline does not produce a final
// empty line; carriage returns are stripped so CRLF input parses like LF.
func New(text string) *Cursor {
	text = strings.TrimSuffix(text, "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimSuffix(line, "\r")
		}
	}
	return &Cursor{lines: lines}
}

// WithBase offsets reported line numbers by base, for inputs whose leading
// lines (front matter) were consumed before the cursor was built.
func (c *Cursor) WithBase(base int) *Cursor {
	c.base = base
	return c
}

// More reports whether any lines remain.
func (c *Cursor) More() bool {
	return c.pos < len(c.lines)
}

// Peek returns the next line without consuming it, or "" at end of input.
func (c *Cursor) Peek() string {
	return c.PeekAt(0)
}

// PeekAt returns the line off positions ahead without consuming anything.
func (c *Cursor) PeekAt(off int) string {
	if c.pos+off >= len(c.lines) {
		return ""
	}
	return c.lines[c.pos+off]
}

// Next consumes and returns the next line.
func (c *Cursor) Next() string {
	line := c.Peek()
	if c.pos < len(c.lines) {
		c.pos++
	}
	return line
}

// Back rewinds the cursor by one line.
func (c *Cursor) Back() {
	if c.pos > 0 {
		c.pos--
	}
}

// Remaining is the count of unconsumed lines.
func (c *Cursor) Remaining() int {
	return len(c.lines) - c.pos
}

// Line is the 1-based number of the next unconsumed line.
func (c *Cursor) Line() int {
	return c.base + c.pos + 1
}

// PrevBlank reports whether the line immediately before the cursor is blank.
// Readers use it to record the blank-line-before flag on comments.
func (c *Cursor) PrevBlank() bool {
	if c.pos == 0 {
		return false
	}
	return strings.TrimSpace(c.lines[c.pos-1]) == ""
}

// SkipBlank consumes consecutive blank lines and reports whether any were
// consumed.
func (c *Cursor) SkipBlank() bool {
	skipped := false
	for c.More() && strings.TrimSpace(c.Peek()) == "" {
		c.Next()
		skipped = true
	}
	return skipped
}

// Indent returns the count of leading spaces on line, with tabs counted as a
// single column.
func Indent(line string) int {
	n := 0
	for _, r := range line {
		if r == ' ' || r == '\t' {
			n++
			continue
		}
		break
	}
	return n
}
