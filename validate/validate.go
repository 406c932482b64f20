// Package validate holds the semantic rules shared by both format readers.
// Readers enforce grammar only; everything about counts, points, and payload
// shape is checked here so the rules cannot drift between formats.
package validate

import (
	"fmt"
	"math"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/tpavlic/md2qti/quiz"
)

// Quiz checks the whole model and returns the first violation found, as one
// of the typed quiz errors. A nil return means the model is safe to hand to
// either writer.
func Quiz(q *quiz.Quiz) error {
	for _, opt := range q.Options {
		if err := validation.Validate(string(opt.Name), validation.Required, validation.In(optionNames()...)); err != nil {
			return &quiz.StructuralError{
				Line:     opt.Line,
				Expected: "recognized quiz option",
				Found:    string(opt.Name),
			}
		}
	}
	for i := range q.Questions {
		if err := Question(&q.Questions[i]); err != nil {
			return err
		}
	}
	return nil
}

// Question checks a single question against the rules of its kind.
func Question(que *quiz.Question) error {
	if !que.Kind.Valid() {
		return &quiz.TypeConstraintError{
			Line:     que.Line,
			Question: que.Position,
			Rule:     fmt.Sprintf("unknown question type %q", string(que.Kind)),
		}
	}
	if que.Kind == quiz.KindText {
		return textRegion(que)
	}
	if err := points(que); err != nil {
		return err
	}

	switch que.Kind {
	case quiz.KindSingleChoice:
		if len(que.Choices) == 0 {
			return missing(que, "choices")
		}
		if len(que.Choices) > 26 {
			return constraint(que, fmt.Sprintf("at most 26 choices supported, found %d", len(que.Choices)))
		}
		if n := que.CorrectCount(); n != 1 {
			return constraint(que, fmt.Sprintf("expected exactly 1 correct choice, found %d", n))
		}
	case quiz.KindMultiChoice:
		if len(que.Choices) == 0 {
			return missing(que, "choices")
		}
		if que.CorrectCount() == 0 {
			return constraint(que, "expected at least 1 correct choice, found 0")
		}
	case quiz.KindNumeric:
		if que.Numeric == nil {
			return missing(que, "numeric answer spec")
		}
		if err := numeric(que, que.Numeric); err != nil {
			return err
		}
	case quiz.KindShortAnswer:
		if len(que.FillAnswers) == 0 {
			return missing(que, "accepted answers")
		}
	}
	return nil
}

func textRegion(que *quiz.Question) error {
	if que.HasPoints {
		return constraint(que, "text regions carry no points")
	}
	if !que.Feedback.Empty() {
		return constraint(que, "text regions carry no feedback")
	}
	if len(que.Choices) > 0 || que.Numeric != nil || len(que.FillAnswers) > 0 {
		return constraint(que, "text regions carry no answer payload")
	}
	return nil
}

func points(que *quiz.Question) error {
	if !que.HasPoints {
		return missing(que, "points")
	}
	if err := validation.Validate(que.Points, validation.Min(0.0)); err != nil {
		return constraint(que, fmt.Sprintf("points must be >= 0, got %g", que.Points))
	}
	if twice := que.Points * 2; twice != math.Trunc(twice) {
		return constraint(que, fmt.Sprintf("points must be an integer or half-integer, got %g", que.Points))
	}
	return nil
}

func numeric(que *quiz.Question, n *quiz.Numeric) error {
	switch n.Form {
	case quiz.NumericTolerance:
		tol, err := strconv.ParseFloat(n.Tolerance, 64)
		if err != nil || tol < 0 {
			return constraint(que, fmt.Sprintf("numeric tolerance must be >= 0, got %s", n.Tolerance))
		}
	case quiz.NumericRange:
		low, lerr := strconv.ParseFloat(n.Low, 64)
		high, herr := strconv.ParseFloat(n.High, 64)
		if lerr != nil || herr != nil || low > high {
			return constraint(que, fmt.Sprintf("numeric range low %s exceeds high %s", n.Low, n.High))
		}
	}
	return nil
}

func constraint(que *quiz.Question, rule string) error {
	return &quiz.TypeConstraintError{Line: que.Line, Question: que.Position, Rule: rule}
}

func missing(que *quiz.Question, field string) error {
	return &quiz.MissingFieldError{Line: que.Line, Question: que.Position, Field: field}
}

func optionNames() []interface{} {
	names := make([]interface{}, 0, len(quiz.RecognizedOptions()))
	for _, name := range quiz.RecognizedOptions() {
		names = append(names, string(name))
	}
	return names
}
