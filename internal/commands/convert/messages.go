package convert

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	// MarkdownToPlaintextMessageType identifies the markdown-to-plaintext conversion command.
	MarkdownToPlaintextMessageType = "md2qti.convert.markdown_to_plaintext"
	// PlaintextToMarkdownMessageType identifies the plaintext-to-markdown conversion command.
	PlaintextToMarkdownMessageType = "md2qti.convert.plaintext_to_markdown"
)

// MarkdownToPlaintextCommand converts a Markdown quiz document into the
// text2qti plaintext format.
type MarkdownToPlaintextCommand struct {
	RunID      uuid.UUID `json:"run_id"`
	InputPath  string    `json:"input_path"`
	OutputPath string    `json:"output_path"`
}

// Type returns the message type identifier for command routing.
func (MarkdownToPlaintextCommand) Type() string { return MarkdownToPlaintextMessageType }

// Validate implements command message validation.
func (c MarkdownToPlaintextCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.InputPath, validation.By(requiredPath("input path"))),
	)
}

// PlaintextToMarkdownCommand converts a text2qti plaintext quiz into the
// Markdown format.
type PlaintextToMarkdownCommand struct {
	RunID      uuid.UUID `json:"run_id"`
	InputPath  string    `json:"input_path"`
	OutputPath string    `json:"output_path"`
}

// Type returns the message type identifier for command routing.
func (PlaintextToMarkdownCommand) Type() string { return PlaintextToMarkdownMessageType }

// Validate implements command message validation.
func (c PlaintextToMarkdownCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.InputPath, validation.By(requiredPath("input path"))),
	)
}

func requiredPath(label string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_required", label+" is required")
		}
		return nil
	}
}
