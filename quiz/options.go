package quiz

import "strings"

// OptionName is a recognized quiz-level option. The names form a closed set;
// anything outside it is rejected during validation so silent typos cannot be
// accepted as no-ops.
type OptionName string

const (
	OptionFeedbackIsSolution       OptionName = "feedback is solution"
	OptionSolutionsSampleGroups    OptionName = "solutions sample groups"
	OptionSolutionsRandomizeGroups OptionName = "solutions randomize groups"
	OptionShuffleAnswers           OptionName = "shuffle answers"
	OptionShowCorrectAnswers       OptionName = "show correct answers"
	OptionOneQuestionAtATime       OptionName = "one question at a time"
	OptionCantGoBack               OptionName = "can't go back"
)

// RecognizedOptions lists the closed option set in canonical emission order.
func RecognizedOptions() []OptionName {
	return []OptionName{
		OptionFeedbackIsSolution,
		OptionSolutionsSampleGroups,
		OptionSolutionsRandomizeGroups,
		OptionShuffleAnswers,
		OptionShowCorrectAnswers,
		OptionOneQuestionAtATime,
		OptionCantGoBack,
	}
}

// Valid reports whether the name belongs to the recognized set.
func (n OptionName) Valid() bool {
	switch n {
	case OptionFeedbackIsSolution, OptionSolutionsSampleGroups,
		OptionSolutionsRandomizeGroups, OptionShuffleAnswers,
		OptionShowCorrectAnswers, OptionOneQuestionAtATime, OptionCantGoBack:
		return true
	}
	return false
}

// NormalizeOptionName maps an input spelling onto the canonical name. The
// grammar tolerates case differences and the apostrophe-less "cant go back".
func NormalizeOptionName(raw string) (OptionName, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	if key == "cant go back" {
		key = string(OptionCantGoBack)
	}
	name := OptionName(key)
	return name, name.Valid()
}

// Option is one quiz-level option assignment. Options keep their input order
// so writers can reproduce the author's ordering.
type Option struct {
	Line  int
	Name  OptionName
	Value bool
}

// OptionValue looks up an option by name, reporting whether it was set.
func (q *Quiz) OptionValue(name OptionName) (bool, bool) {
	for _, opt := range q.Options {
		if opt.Name == name {
			return opt.Value, true
		}
	}
	return false, false
}
