// Package bootstrap wires the shared runtime pieces the converter CLIs need:
// logger provider construction and common flag plumbing.
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/tpavlic/md2qti/internal/commands"
	"github.com/tpavlic/md2qti/internal/logging/gologger"
	"github.com/tpavlic/md2qti/pkg/interfaces"
)

// Options captures logging configuration shared by every CLI.
type Options struct {
	LogLevel  string
	LogFormat string
	AddSource bool
	Focus     string
}

// Runtime bundles the provider and the command logger handed to handlers.
type Runtime struct {
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
}

// Build constructs the logging runtime for a CLI. The module name scopes the
// command logger, e.g. "markdown_to_plaintext".
func Build(module string, opts Options) (*Runtime, error) {
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     opts.LogLevel,
		Format:    opts.LogFormat,
		AddSource: opts.AddSource,
		Focus:     SplitList(opts.Focus),
	})
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	return &Runtime{
		Provider: provider,
		Logger:   commands.CommandLogger(provider, module),
	}, nil
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
