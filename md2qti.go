// Package md2qti converts quizzes between two surface formats that share one
// in-memory model: a Markdown schema built on ATX headings and task lists,
// and the text2qti plaintext format. Comments and blank-line spacing travel
// through conversions in an annotation side-channel, so converting a file and
// converting it back reproduces the canonical form byte for byte.
package md2qti

import (
	"github.com/tpavlic/md2qti/markdown"
	"github.com/tpavlic/md2qti/plaintext"
	"github.com/tpavlic/md2qti/quiz"
	"github.com/tpavlic/md2qti/validate"
)

// Quiz exports the shared quiz model.
type Quiz = quiz.Quiz

// Question exports a single quiz item.
type Question = quiz.Question

// Choice exports one entry of a choice question.
type Choice = quiz.Choice

// Option exports a quiz-level option assignment.
type Option = quiz.Option

// Numeric exports the numeric answer spec.
type Numeric = quiz.Numeric

// Feedback exports the question-level feedback channels.
type Feedback = quiz.Feedback

// Kind exports the question type token.
type Kind = quiz.Kind

// Annotations exports the comment/spacing side-channel.
type Annotations = quiz.Annotations

// Annotation exports one captured comment.
type Annotation = quiz.Annotation

// StructuralError exports the grammar violation error type.
type StructuralError = quiz.StructuralError

// TypeConstraintError exports the type rule violation error type.
type TypeConstraintError = quiz.TypeConstraintError

// MissingFieldError exports the missing required field error type.
type MissingFieldError = quiz.MissingFieldError

// Error sentinels for errors.Is checks on conversion failures.
var (
	ErrStructural     = quiz.ErrStructural
	ErrTypeConstraint = quiz.ErrTypeConstraint
	ErrMissingField   = quiz.ErrMissingField
)

// ReadMarkdown parses and validates Markdown source. The returned annotations
// belong to the returned quiz and feed either writer.
func ReadMarkdown(text string) (*Quiz, Annotations, error) {
	q, anns, err := markdown.Read(text)
	if err != nil {
		return nil, nil, err
	}
	if err := validate.Quiz(q); err != nil {
		return nil, nil, err
	}
	return q, anns, nil
}

// ReadPlaintext parses and validates text2qti plaintext.
func ReadPlaintext(text string) (*Quiz, Annotations, error) {
	q, anns, err := plaintext.Read(text)
	if err != nil {
		return nil, nil, err
	}
	if err := validate.Quiz(q); err != nil {
		return nil, nil, err
	}
	return q, anns, nil
}

// WriteMarkdown serializes a validated quiz to canonical Markdown.
func WriteMarkdown(q *Quiz, anns Annotations) string {
	return markdown.Write(q, anns)
}

// WritePlaintext serializes a validated quiz to canonical text2qti plaintext.
func WritePlaintext(q *Quiz, anns Annotations) string {
	return plaintext.Write(q, anns)
}

// Validate runs the shared semantic rules against a model built by hand.
// Quizzes returned by the readers have already passed it.
func Validate(q *Quiz) error {
	return validate.Quiz(q)
}

// MarkdownToPlaintext converts Markdown source to canonical plaintext.
func MarkdownToPlaintext(text string) (string, error) {
	q, anns, err := ReadMarkdown(text)
	if err != nil {
		return "", err
	}
	return WritePlaintext(q, anns), nil
}

// PlaintextToMarkdown converts text2qti plaintext to canonical Markdown.
func PlaintextToMarkdown(text string) (string, error) {
	q, anns, err := ReadPlaintext(text)
	if err != nil {
		return "", err
	}
	return WriteMarkdown(q, anns), nil
}
