package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tpavlic/md2qti/cmd/internal/bootstrap"
	"github.com/tpavlic/md2qti/internal/logging"
)

func stubRuntime(t *testing.T) {
	t.Helper()
	original := runtimeBuilder
	runtimeBuilder = func(string, bootstrap.Options) (*bootstrap.Runtime, error) {
		return &bootstrap.Runtime{Logger: logging.NoOp()}, nil
	}
	t.Cleanup(func() { runtimeBuilder = original })
}

func TestRunConvertWritesPlaintext(t *testing.T) {
	stubRuntime(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "quiz.md")
	output := filepath.Join(dir, "quiz.txt")
	src := "# Sample Quiz\n\n## 1. Warmup (points: 1) {type=mc}\n\nWhat is 2 + 2?\n\n- [ ] 3\n- [x] 4\n"
	if err := os.WriteFile(input, []byte(src), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := runConvert([]string{"-in", input, "-out", output}); err != nil {
		t.Fatalf("runConvert returned error: %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(got), "Quiz title: Sample Quiz\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}
}

func TestRunConvertValidateOnlyWritesNothing(t *testing.T) {
	stubRuntime(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "quiz.md")
	src := "# Sample Quiz\n\n## 1. Warmup (points: 1) {type=mc}\n\nWhat is 2 + 2?\n\n- [ ] 3\n- [x] 4\n"
	if err := os.WriteFile(input, []byte(src), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := runConvert([]string{"-in", input, "-validate-only"}); err != nil {
		t.Fatalf("runConvert returned error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no output files, got %d entries", len(entries))
	}
}

func TestRunConvertValidateOnlyReportsErrors(t *testing.T) {
	stubRuntime(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "broken.md")
	src := "# T\n\n## 1. Q (points: 1) {type=mc}\n\nPick.\n\n- [x] a\n- [x] b\n"
	if err := os.WriteFile(input, []byte(src), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := runConvert([]string{"-in", input, "-validate-only"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRunConvertRequiresInput(t *testing.T) {
	stubRuntime(t)

	if err := runConvert(nil); err == nil {
		t.Fatal("expected error when -in is missing")
	}
}
