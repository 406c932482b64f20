// Package convert exposes the conversion operations as command handlers so
// the CLIs and any future dispatcher share one execution path.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	command "github.com/goliatone/go-command"
	slug "github.com/goliatone/go-slug"

	md2qti "github.com/tpavlic/md2qti"
	"github.com/tpavlic/md2qti/internal/commands"
	"github.com/tpavlic/md2qti/pkg/interfaces"
)

const outputFileMode = 0o644

// MarkdownToPlaintextHandler executes MarkdownToPlaintextCommand messages.
type MarkdownToPlaintextHandler struct {
	handler *commands.Handler[MarkdownToPlaintextCommand]
}

var _ command.Commander[MarkdownToPlaintextCommand] = (*MarkdownToPlaintextHandler)(nil)

// NewMarkdownToPlaintextHandler builds the handler with the shared command
// concerns wired in.
func NewMarkdownToPlaintextHandler(logger interfaces.Logger, opts ...commands.HandlerOption[MarkdownToPlaintextCommand]) *MarkdownToPlaintextHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg MarkdownToPlaintextCommand) error {
		return runConversion(ctx, baseLogger, conversion{
			direction:  "markdown_to_plaintext",
			inputPath:  msg.InputPath,
			outputPath: msg.OutputPath,
			outputExt:  ".txt",
			convert:    convertMarkdownToPlaintext,
		})
	}

	handlerOpts := []commands.HandlerOption[MarkdownToPlaintextCommand]{
		commands.WithLogger[MarkdownToPlaintextCommand](baseLogger),
		commands.WithOperation[MarkdownToPlaintextCommand]("convert.markdown_to_plaintext"),
		commands.WithMessageFields[MarkdownToPlaintextCommand](func(msg MarkdownToPlaintextCommand) map[string]any {
			return map[string]any{
				"run_id":      msg.RunID.String(),
				"input_path":  msg.InputPath,
				"output_path": msg.OutputPath,
			}
		}),
		commands.WithTelemetry[MarkdownToPlaintextCommand](commands.DefaultTelemetry[MarkdownToPlaintextCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MarkdownToPlaintextHandler{
		handler: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander.
func (h *MarkdownToPlaintextHandler) Execute(ctx context.Context, msg MarkdownToPlaintextCommand) error {
	return h.handler.Execute(ctx, msg)
}

// PlaintextToMarkdownHandler executes PlaintextToMarkdownCommand messages.
type PlaintextToMarkdownHandler struct {
	handler *commands.Handler[PlaintextToMarkdownCommand]
}

var _ command.Commander[PlaintextToMarkdownCommand] = (*PlaintextToMarkdownHandler)(nil)

// NewPlaintextToMarkdownHandler builds the handler with the shared command
// concerns wired in.
func NewPlaintextToMarkdownHandler(logger interfaces.Logger, opts ...commands.HandlerOption[PlaintextToMarkdownCommand]) *PlaintextToMarkdownHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg PlaintextToMarkdownCommand) error {
		return runConversion(ctx, baseLogger, conversion{
			direction:  "plaintext_to_markdown",
			inputPath:  msg.InputPath,
			outputPath: msg.OutputPath,
			outputExt:  ".md",
			convert:    convertPlaintextToMarkdown,
		})
	}

	handlerOpts := []commands.HandlerOption[PlaintextToMarkdownCommand]{
		commands.WithLogger[PlaintextToMarkdownCommand](baseLogger),
		commands.WithOperation[PlaintextToMarkdownCommand]("convert.plaintext_to_markdown"),
		commands.WithMessageFields[PlaintextToMarkdownCommand](func(msg PlaintextToMarkdownCommand) map[string]any {
			return map[string]any{
				"run_id":      msg.RunID.String(),
				"input_path":  msg.InputPath,
				"output_path": msg.OutputPath,
			}
		}),
		commands.WithTelemetry[PlaintextToMarkdownCommand](commands.DefaultTelemetry[PlaintextToMarkdownCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PlaintextToMarkdownHandler{
		handler: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander.
func (h *PlaintextToMarkdownHandler) Execute(ctx context.Context, msg PlaintextToMarkdownCommand) error {
	return h.handler.Execute(ctx, msg)
}

type conversion struct {
	direction  string
	inputPath  string
	outputPath string
	outputExt  string
	convert    func(text string) (*md2qti.Quiz, md2qti.Annotations, string, error)
}

func runConversion(ctx context.Context, logger interfaces.Logger, c conversion) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := os.ReadFile(c.inputPath)
	if err != nil {
		return fmt.Errorf("read input %s: %w", c.inputPath, err)
	}

	q, anns, out, err := c.convert(string(raw))
	if err != nil {
		return fmt.Errorf("convert %s: %w", c.inputPath, err)
	}

	outputPath := c.outputPath
	if outputPath == "" {
		outputPath = derivedOutputPath(c.inputPath, q.Title, c.outputExt)
	}

	if err := os.WriteFile(outputPath, []byte(out), outputFileMode); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	logger.Info("convert.complete",
		"direction", c.direction,
		"input_path", c.inputPath,
		"output_path", outputPath,
		"questions", len(q.Questions),
		"annotations", len(anns),
	)
	return nil
}

func convertMarkdownToPlaintext(text string) (*md2qti.Quiz, md2qti.Annotations, string, error) {
	q, anns, err := md2qti.ReadMarkdown(text)
	if err != nil {
		return nil, nil, "", err
	}
	return q, anns, md2qti.WritePlaintext(q, anns), nil
}

func convertPlaintextToMarkdown(text string) (*md2qti.Quiz, md2qti.Annotations, string, error) {
	q, anns, err := md2qti.ReadPlaintext(text)
	if err != nil {
		return nil, nil, "", err
	}
	return q, anns, md2qti.WriteMarkdown(q, anns), nil
}

// derivedOutputPath names the output after the quiz title when possible,
// falling back to the input file name, and places it next to the input.
func derivedOutputPath(inputPath, title, ext string) string {
	base := ""
	if normalized, err := slug.Normalize(title); err == nil {
		base = normalized
	}
	if strings.TrimSpace(base) == "" {
		name := filepath.Base(inputPath)
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return filepath.Join(filepath.Dir(inputPath), base+ext)
}
