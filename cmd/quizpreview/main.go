package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	md2qti "github.com/tpavlic/md2qti"
	"github.com/tpavlic/md2qti/cmd/internal/bootstrap"
	"github.com/tpavlic/md2qti/preview"
)

var runtimeBuilder = bootstrap.Build

func main() {
	if err := runPreview(os.Args[1:]); err != nil {
		log.Fatalf("quizpreview: %v", err)
	}
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("quizpreview", flag.ExitOnError)
	input := fs.String("in", "", "Quiz file to preview (.md or .txt)")
	output := fs.String("out", "", "HTML output file (defaults to stdout)")
	hardWraps := fs.Bool("hard-wraps", false, "Render single newlines as <br> tags")
	safe := fs.Bool("safe", false, "Suppress raw HTML in the rendered output")
	extensions := fs.String("extensions", "", "Comma separated goldmark extensions (gfm, table, strikethrough, linkify, tasklist, footnote)")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *input == "" {
		return fmt.Errorf("-in is required")
	}

	rt, err := runtimeBuilder("preview", bootstrap.Options{
		LogLevel:  *logLevel,
		LogFormat: *logFormat,
	})
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(*input)
	if err != nil {
		return fmt.Errorf("read input %s: %w", *input, err)
	}

	var (
		q    *md2qti.Quiz
		anns md2qti.Annotations
	)
	if strings.EqualFold(filepath.Ext(*input), ".md") {
		q, anns, err = md2qti.ReadMarkdown(string(raw))
	} else {
		q, anns, err = md2qti.ReadPlaintext(string(raw))
	}
	if err != nil {
		return fmt.Errorf("parse quiz %s: %w", *input, err)
	}

	renderer := preview.New(preview.Options{
		HardWraps:  *hardWraps,
		Safe:       *safe,
		Extensions: bootstrap.SplitList(*extensions),
	})
	html, err := renderer.Render(q, anns)
	if err != nil {
		return err
	}

	if *output == "" {
		if _, err := os.Stdout.Write(html); err != nil {
			return err
		}
		return nil
	}
	if err := os.WriteFile(*output, html, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", *output, err)
	}
	rt.Logger.Info("preview.complete", "input_path", *input, "output_path", *output, "questions", len(q.Questions))
	return nil
}
