package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	md2qti "github.com/tpavlic/md2qti"
)

const markdownSource = "# Sample Quiz\n\n## 1. Warmup (points: 1) {type=mc}\n\nWhat is 2 + 2?\n\n- [ ] 3\n- [x] 4\n"

const plaintextSource = "Quiz title: Sample Quiz\n\nPoints: 1\n1. What is 2 + 2?\na) 3\n*b) 4\n"

func TestMarkdownToPlaintextHandler(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "quiz.md")
	output := filepath.Join(dir, "quiz.txt")
	if err := os.WriteFile(input, []byte(markdownSource), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	handler := NewMarkdownToPlaintextHandler(nil)
	cmd := MarkdownToPlaintextCommand{
		RunID:      uuid.New(),
		InputPath:  input,
		OutputPath: output,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute: %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want, err := md2qti.MarkdownToPlaintext(markdownSource)
	if err != nil {
		t.Fatalf("reference conversion: %v", err)
	}
	if string(got) != want {
		t.Fatalf("output diverged:\n--- want ---\n%s\n--- got ---\n%s", want, got)
	}
}

func TestPlaintextToMarkdownHandler(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "quiz.txt")
	output := filepath.Join(dir, "quiz.md")
	if err := os.WriteFile(input, []byte(plaintextSource), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	handler := NewPlaintextToMarkdownHandler(nil)
	cmd := PlaintextToMarkdownCommand{
		RunID:      uuid.New(),
		InputPath:  input,
		OutputPath: output,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute: %v", err)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(got), "# Sample Quiz") {
		t.Fatalf("expected markdown title in output:\n%s", got)
	}
}

func TestHandlerDerivesOutputPathFromTitle(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.md")
	if err := os.WriteFile(input, []byte(markdownSource), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	handler := NewMarkdownToPlaintextHandler(nil)
	cmd := MarkdownToPlaintextCommand{RunID: uuid.New(), InputPath: input}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute: %v", err)
	}

	derived := filepath.Join(dir, "sample-quiz.txt")
	if _, err := os.Stat(derived); err != nil {
		t.Fatalf("expected derived output at %s: %v", derived, err)
	}
}

func TestHandlerRejectsBlankInputPath(t *testing.T) {
	handler := NewMarkdownToPlaintextHandler(nil)
	err := handler.Execute(context.Background(), MarkdownToPlaintextCommand{RunID: uuid.New()})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestHandlerSurfacesConversionErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.md")
	broken := "# T\n\n## Q (points: 1) {type=mc}\n\nPick.\n\n- [x] a\n- [x] b\n"
	if err := os.WriteFile(input, []byte(broken), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	handler := NewMarkdownToPlaintextHandler(nil)
	cmd := MarkdownToPlaintextCommand{RunID: uuid.New(), InputPath: input}
	err := handler.Execute(context.Background(), cmd)
	if err == nil {
		t.Fatal("expected conversion error")
	}
	if !errors.Is(err, md2qti.ErrTypeConstraint) {
		t.Fatalf("expected type constraint cause, got %v", err)
	}
}

func TestHandlerReportsMissingInput(t *testing.T) {
	handler := NewMarkdownToPlaintextHandler(nil)
	cmd := MarkdownToPlaintextCommand{
		RunID:     uuid.New(),
		InputPath: filepath.Join(t.TempDir(), "does-not-exist.md"),
	}
	err := handler.Execute(context.Background(), cmd)
	if err == nil {
		t.Fatal("expected read error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist cause, got %v", err)
	}
}
