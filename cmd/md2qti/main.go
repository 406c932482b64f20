package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	md2qti "github.com/tpavlic/md2qti"
	"github.com/tpavlic/md2qti/cmd/internal/bootstrap"
	"github.com/tpavlic/md2qti/internal/commands/convert"
)

var runtimeBuilder = bootstrap.Build

func main() {
	if err := runConvert(os.Args[1:]); err != nil {
		log.Fatalf("md2qti: %v", err)
	}
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("md2qti", flag.ExitOnError)
	input := fs.String("in", "", "Markdown quiz file to convert")
	output := fs.String("out", "", "Output plaintext file, '-' for stdout (defaults to a name derived from the quiz title)")
	validateOnly := fs.Bool("validate-only", false, "Parse and validate the input without writing output")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")
	logSource := fs.Bool("log-source", false, "Include source locations in log output")
	logFocus := fs.String("log-focus", "", "Comma separated logger names to focus on")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *input == "" {
		return fmt.Errorf("-in is required")
	}

	rt, err := runtimeBuilder("markdown_to_plaintext", bootstrap.Options{
		LogLevel:  *logLevel,
		LogFormat: *logFormat,
		AddSource: *logSource,
		Focus:     *logFocus,
	})
	if err != nil {
		return err
	}

	if *validateOnly || *output == "-" {
		raw, err := os.ReadFile(*input)
		if err != nil {
			return fmt.Errorf("read input %s: %w", *input, err)
		}
		out, err := md2qti.MarkdownToPlaintext(string(raw))
		if err != nil {
			return fmt.Errorf("convert %s: %w", *input, err)
		}
		if *validateOnly {
			rt.Logger.Info("validate.complete", "input_path", *input)
			return nil
		}
		_, err = os.Stdout.WriteString(out)
		return err
	}

	handler := convert.NewMarkdownToPlaintextHandler(rt.Logger)
	cmd := convert.MarkdownToPlaintextCommand{
		RunID:      uuid.New(),
		InputPath:  *input,
		OutputPath: *output,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute conversion: %w", err)
	}
	return nil
}
