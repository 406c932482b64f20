package md2qti

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readFixture(t *testing.T, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(parts...))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return string(data)
}

func TestMarkdownRoundTripThroughPlaintext(t *testing.T) {
	src := readFixture(t, "markdown", "testdata", "canonical.md")

	txt, err := MarkdownToPlaintext(src)
	if err != nil {
		t.Fatalf("markdown to plaintext: %v", err)
	}
	back, err := PlaintextToMarkdown(txt)
	if err != nil {
		t.Fatalf("plaintext to markdown: %v", err)
	}
	if back != src {
		t.Fatalf("cross-format round trip diverged:\n--- want ---\n%s\n--- got ---\n%s", src, back)
	}
}

func TestPlaintextRoundTripThroughMarkdown(t *testing.T) {
	src := readFixture(t, "plaintext", "testdata", "canonical.txt")

	md, err := PlaintextToMarkdown(src)
	if err != nil {
		t.Fatalf("plaintext to markdown: %v", err)
	}
	back, err := MarkdownToPlaintext(md)
	if err != nil {
		t.Fatalf("markdown to plaintext: %v", err)
	}
	if back != src {
		t.Fatalf("cross-format round trip diverged:\n--- want ---\n%s\n--- got ---\n%s", src, back)
	}
}

func TestConversionIsIdempotentOnCanonicalForm(t *testing.T) {
	src := readFixture(t, "markdown", "testdata", "canonical.md")
	txt, err := MarkdownToPlaintext(src)
	if err != nil {
		t.Fatalf("markdown to plaintext: %v", err)
	}

	q, anns, err := ReadPlaintext(txt)
	if err != nil {
		t.Fatalf("read plaintext: %v", err)
	}
	if again := WritePlaintext(q, anns); again != txt {
		t.Fatalf("plaintext canonical form not stable:\n--- want ---\n%s\n--- got ---\n%s", txt, again)
	}
}

func TestReadMarkdownValidates(t *testing.T) {
	src := "# T\n\n## Q (points: 1) {type=mc}\n\nPick.\n\n- [x] a\n- [x] b\n"
	_, _, err := ReadMarkdown(src)
	if err == nil {
		t.Fatal("expected validation failure for two correct mc choices")
	}
	if !errors.Is(err, ErrTypeConstraint) {
		t.Fatalf("expected type constraint error, got %v", err)
	}
	if !strings.Contains(err.Error(), "expected exactly 1 correct choice, found 2") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestReadPlaintextValidates(t *testing.T) {
	src := "Quiz title: T\n\n1. Stem?\n... feedback only, no answers\n"
	_, _, err := ReadPlaintext(src)
	if err == nil {
		t.Fatal("expected validation failure for fill question without answers")
	}
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected missing-field error, got %v", err)
	}
}

func TestValidateRunsOnHandBuiltModels(t *testing.T) {
	q := &Quiz{Title: "T"}
	if err := Validate(q); err != nil {
		t.Fatalf("expected empty quiz to validate, got %v", err)
	}
}
