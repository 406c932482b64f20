package logging

import (
	"context"
	"strings"

	"github.com/tpavlic/md2qti/pkg/interfaces"
)

const (
	rootModule      = "md2qti"
	convertModule   = "md2qti.convert"
	markdownModule  = "md2qti.markdown"
	plaintextModule = "md2qti.plaintext"
	previewModule   = "md2qti.preview"
)

const (
	fieldInputPath  = "input_path"
	fieldOutputPath = "output_path"
	fieldDirection  = "direction"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ConvertLogger returns the logger namespace reserved for conversion commands.
func ConvertLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, convertModule)
}

// MarkdownLogger returns the logger namespace reserved for the Markdown format.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// PlaintextLogger returns the logger namespace reserved for the plaintext format.
func PlaintextLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, plaintextModule)
}

// PreviewLogger returns the logger namespace reserved for preview rendering.
func PreviewLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, previewModule)
}

// WithConvertContext enriches the provided logger with common conversion
// fields such as input path, output path, and direction. Empty values are
// ignored.
func WithConvertContext(logger interfaces.Logger, input, output, direction string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(input); trimmed != "" {
		fields[fieldInputPath] = trimmed
	}
	if trimmed := strings.TrimSpace(output); trimmed != "" {
		fields[fieldOutputPath] = trimmed
	}
	if trimmed := strings.TrimSpace(direction); trimmed != "" {
		fields[fieldDirection] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so callers can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
