package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/tpavlic/md2qti/quiz"
)

func gradeable(kind quiz.Kind) quiz.Question {
	return quiz.Question{
		Position:  1,
		Line:      3,
		Kind:      kind,
		Points:    1,
		HasPoints: true,
		Prompt:    []string{"Stem?"},
	}
}

func choices(correct ...bool) []quiz.Choice {
	out := make([]quiz.Choice, len(correct))
	for i, c := range correct {
		out[i] = quiz.Choice{Text: []string{"choice"}, Correct: c}
	}
	return out
}

func TestQuizRejectsUnknownOption(t *testing.T) {
	q := &quiz.Quiz{
		Title:   "T",
		Options: []quiz.Option{{Line: 2, Name: "grade on a curve", Value: true}},
	}
	err := Quiz(q)
	if !errors.Is(err, quiz.ErrStructural) {
		t.Fatalf("expected structural error, got %v", err)
	}
	if quiz.LineOf(err) != 2 {
		t.Fatalf("expected option line, got %d", quiz.LineOf(err))
	}
}

func TestQuizAcceptsRecognizedOptions(t *testing.T) {
	var opts []quiz.Option
	for _, name := range quiz.RecognizedOptions() {
		opts = append(opts, quiz.Option{Line: 1, Name: name, Value: true})
	}
	if err := Quiz(&quiz.Quiz{Title: "T", Options: opts}); err != nil {
		t.Fatalf("expected recognized options to validate, got %v", err)
	}
}

func TestQuestionSingleChoiceCorrectCount(t *testing.T) {
	cases := []struct {
		name    string
		correct []bool
		rule    string
	}{
		{"none correct", []bool{false, false}, "expected exactly 1 correct choice, found 0"},
		{"two correct", []bool{true, true, false}, "expected exactly 1 correct choice, found 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			que := gradeable(quiz.KindSingleChoice)
			que.Choices = choices(tc.correct...)
			err := Question(&que)
			if !errors.Is(err, quiz.ErrTypeConstraint) {
				t.Fatalf("expected type constraint error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.rule) {
				t.Fatalf("expected rule %q, got %q", tc.rule, err.Error())
			}
		})
	}

	que := gradeable(quiz.KindSingleChoice)
	que.Choices = choices(false, true, false)
	if err := Question(&que); err != nil {
		t.Fatalf("expected valid mc question, got %v", err)
	}
}

func TestQuestionSingleChoiceLimits(t *testing.T) {
	que := gradeable(quiz.KindSingleChoice)
	if err := Question(&que); !errors.Is(err, quiz.ErrMissingField) {
		t.Fatalf("expected missing choices, got %v", err)
	}

	que = gradeable(quiz.KindSingleChoice)
	flags := make([]bool, 27)
	flags[0] = true
	que.Choices = choices(flags...)
	err := Question(&que)
	if !errors.Is(err, quiz.ErrTypeConstraint) || !strings.Contains(err.Error(), "at most 26 choices") {
		t.Fatalf("expected choice limit violation, got %v", err)
	}
}

func TestQuestionMultiChoice(t *testing.T) {
	que := gradeable(quiz.KindMultiChoice)
	que.Choices = choices(false, false)
	err := Question(&que)
	if !errors.Is(err, quiz.ErrTypeConstraint) || !strings.Contains(err.Error(), "at least 1 correct choice") {
		t.Fatalf("expected at-least-one violation, got %v", err)
	}

	que.Choices = choices(true, true, false)
	if err := Question(&que); err != nil {
		t.Fatalf("expected valid ma question, got %v", err)
	}
}

func TestQuestionNumeric(t *testing.T) {
	que := gradeable(quiz.KindNumeric)
	if err := Question(&que); !errors.Is(err, quiz.ErrMissingField) {
		t.Fatalf("expected missing spec, got %v", err)
	}

	que.Numeric = &quiz.Numeric{Form: quiz.NumericRange, Low: "5", High: "1"}
	err := Question(&que)
	if !errors.Is(err, quiz.ErrTypeConstraint) || !strings.Contains(err.Error(), "low 5 exceeds high 1") {
		t.Fatalf("expected inverted range violation, got %v", err)
	}

	que.Numeric = &quiz.Numeric{Form: quiz.NumericTolerance, Value: "1", Tolerance: "0.5"}
	if err := Question(&que); err != nil {
		t.Fatalf("expected valid tolerance spec, got %v", err)
	}
}

func TestQuestionShortAnswer(t *testing.T) {
	que := gradeable(quiz.KindShortAnswer)
	if err := Question(&que); !errors.Is(err, quiz.ErrMissingField) {
		t.Fatalf("expected missing answers, got %v", err)
	}
	que.FillAnswers = []string{"yes"}
	if err := Question(&que); err != nil {
		t.Fatalf("expected valid fill question, got %v", err)
	}
}

func TestQuestionPoints(t *testing.T) {
	que := gradeable(quiz.KindEssay)
	que.HasPoints = false
	if err := Question(&que); !errors.Is(err, quiz.ErrMissingField) {
		t.Fatalf("expected missing points, got %v", err)
	}

	que = gradeable(quiz.KindEssay)
	que.Points = -1
	err := Question(&que)
	if !errors.Is(err, quiz.ErrTypeConstraint) || !strings.Contains(err.Error(), "points must be >= 0") {
		t.Fatalf("expected negative points violation, got %v", err)
	}

	que = gradeable(quiz.KindEssay)
	que.Points = 1.25
	err = Question(&que)
	if !errors.Is(err, quiz.ErrTypeConstraint) || !strings.Contains(err.Error(), "integer or half-integer") {
		t.Fatalf("expected half-integer violation, got %v", err)
	}

	que = gradeable(quiz.KindEssay)
	que.Points = 2.5
	if err := Question(&que); err != nil {
		t.Fatalf("expected half-integer points to validate, got %v", err)
	}
}

func TestQuestionUnknownKind(t *testing.T) {
	que := gradeable(quiz.Kind("matching"))
	err := Question(&que)
	if !errors.Is(err, quiz.ErrTypeConstraint) || !strings.Contains(err.Error(), `unknown question type "matching"`) {
		t.Fatalf("expected unknown kind violation, got %v", err)
	}
}

func TestTextRegionRules(t *testing.T) {
	base := quiz.Question{Position: 1, Line: 5, Kind: quiz.KindText, Prompt: []string{"Read."}}

	if err := Question(&base); err != nil {
		t.Fatalf("expected bare text region to validate, got %v", err)
	}

	que := base
	que.Points, que.HasPoints = 1, true
	if err := Question(&que); !errors.Is(err, quiz.ErrTypeConstraint) {
		t.Fatalf("expected points violation, got %v", err)
	}

	que = base
	que.Feedback.General = []string{"nope"}
	if err := Question(&que); !errors.Is(err, quiz.ErrTypeConstraint) {
		t.Fatalf("expected feedback violation, got %v", err)
	}

	que = base
	que.FillAnswers = []string{"nope"}
	if err := Question(&que); !errors.Is(err, quiz.ErrTypeConstraint) {
		t.Fatalf("expected payload violation, got %v", err)
	}
}
