package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural marks grammar violations: bad indentation, stray trailing
	// content, missing required sub-blocks.
	ErrStructural = errors.New("quiz: structural error")
	// ErrTypeConstraint marks values that are present but violate a
	// type-specific rule, such as a wrong correct-choice count.
	ErrTypeConstraint = errors.New("quiz: type constraint violated")
	// ErrMissingField marks required fields that are entirely absent.
	ErrMissingField = errors.New("quiz: required field missing")
)

// StructuralError reports a grammar violation at a 1-based source line,
// describing the expected versus found construct.
type StructuralError struct {
	Line     int
	Expected string
	Found    string
}

func (e *StructuralError) Error() string {
	if e == nil {
		return ErrStructural.Error()
	}
	if e.Found == "" {
		return fmt.Sprintf("line %d: expected %s", e.Line, e.Expected)
	}
	return fmt.Sprintf("line %d: expected %s, found %s", e.Line, e.Expected, e.Found)
}

func (e *StructuralError) Unwrap() error {
	return ErrStructural
}

// TypeConstraintError reports a type-specific rule violation, naming the
// offending question's position and the violated rule.
type TypeConstraintError struct {
	Line     int
	Question int
	Rule     string
}

func (e *TypeConstraintError) Error() string {
	if e == nil {
		return ErrTypeConstraint.Error()
	}
	return fmt.Sprintf("line %d: question %d: %s", e.Line, e.Question, e.Rule)
}

func (e *TypeConstraintError) Unwrap() error {
	return ErrTypeConstraint
}

// MissingFieldError reports a required field that is absent from a question.
type MissingFieldError struct {
	Line     int
	Question int
	Field    string
}

func (e *MissingFieldError) Error() string {
	if e == nil {
		return ErrMissingField.Error()
	}
	if e.Question > 0 {
		return fmt.Sprintf("line %d: question %d: missing %s", e.Line, e.Question, e.Field)
	}
	return fmt.Sprintf("line %d: missing %s", e.Line, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// LineOf extracts the 1-based source line carried by a conversion error, or
// zero when the error carries none.
func LineOf(err error) int {
	var structural *StructuralError
	if errors.As(err, &structural) {
		return structural.Line
	}
	var constraint *TypeConstraintError
	if errors.As(err, &constraint) {
		return constraint.Line
	}
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return missing.Line
	}
	return 0
}
