package quiz

import "strings"

// Kind identifies the question type. The string values are the tokens used in
// the Markdown header attribute block ({type=mc}) and are fixed by the schema.
type Kind string

const (
	// KindSingleChoice is a multiple-choice question with exactly one correct choice.
	KindSingleChoice Kind = "mc"
	// KindMultiChoice is a multiple-answer question with one or more correct choices.
	KindMultiChoice Kind = "ma"
	// KindNumeric is answered with a number matched against a target spec.
	KindNumeric Kind = "num"
	// KindShortAnswer is a fill-in-the-blank question with a set of acceptable strings.
	KindShortAnswer Kind = "fill"
	// KindEssay collects a free-form text response.
	KindEssay Kind = "essay"
	// KindFileUpload collects an uploaded file.
	KindFileUpload Kind = "file"
	// KindText is an ungraded text region shown between questions.
	KindText Kind = "text"
)

// Kinds lists every recognized question kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindSingleChoice,
		KindMultiChoice,
		KindNumeric,
		KindShortAnswer,
		KindEssay,
		KindFileUpload,
		KindText,
	}
}

// Valid reports whether the kind belongs to the closed set.
func (k Kind) Valid() bool {
	switch k {
	case KindSingleChoice, KindMultiChoice, KindNumeric, KindShortAnswer,
		KindEssay, KindFileUpload, KindText:
		return true
	}
	return false
}

// Gradeable reports whether the kind carries a point value. Every kind except
// the text region does.
func (k Kind) Gradeable() bool {
	return k.Valid() && k != KindText
}

// HasChoices reports whether the kind carries an ordered choice list.
func (k Kind) HasChoices() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

// Quiz is the shared in-memory representation both formats parse into and
// serialize from. It carries no knowledge of either surface grammar; comments
// and blank-line spacing live in the Annotations side-channel instead.
type Quiz struct {
	Title       string
	Description []string
	Options     []Option
	Questions   []Question
}

// Question is a single quiz item. Position is the stable 1-based ordinal used
// for error reporting and for recomputing display numbers on write;
// SourceNumber preserves an explicit number found in the input and is
// informational only.
type Question struct {
	Position     int
	SourceNumber int
	Line         int
	Title        string
	Kind         Kind
	Points       float64
	HasPoints    bool
	Attrs        map[string]string
	Prompt       []string
	Choices      []Choice
	Numeric      *Numeric
	FillAnswers  []string
	Feedback     Feedback
}

// Choice is one entry of a single- or multi-choice question. Text holds the
// first line followed by any continuation lines.
type Choice struct {
	Line     int
	Text     []string
	Correct  bool
	Feedback []string
}

// CorrectCount returns how many choices are flagged correct.
func (q *Question) CorrectCount() int {
	n := 0
	for _, c := range q.Choices {
		if c.Correct {
			n++
		}
	}
	return n
}

// NumericForm discriminates the accepted numeric answer spellings.
type NumericForm int

const (
	// NumericExact matches a single value with zero tolerance.
	NumericExact NumericForm = iota
	// NumericTolerance matches value +- tolerance, optionally percentual.
	NumericTolerance
	// NumericRange matches any value inside [Low, High].
	NumericRange
)

// Numeric is the parsed answer spec of a numeric question. The numeric fields
// keep the source spelling so writers can re-emit the author's literals; the
// validator parses them when checking bounds.
type Numeric struct {
	Form      NumericForm
	Value     string
	Tolerance string
	Percent   bool
	Low       string
	High      string
}

// Spec renders the canonical single-line answer spec shared by both formats.
func (n *Numeric) Spec() string {
	switch n.Form {
	case NumericRange:
		return "[" + n.Low + ", " + n.High + "]"
	case NumericTolerance:
		spec := n.Value + " +- " + n.Tolerance
		if n.Percent {
			spec += "%"
		}
		return spec
	default:
		return n.Value
	}
}

// Feedback groups the question-level feedback channels. Correct and Incorrect
// apply only to gradeable kinds; General and Information are unconditional.
type Feedback struct {
	Correct     []string
	Incorrect   []string
	General     []string
	Information []string
}

// Empty reports whether no feedback channel carries text.
func (f Feedback) Empty() bool {
	return len(f.Correct) == 0 && len(f.Incorrect) == 0 &&
		len(f.General) == 0 && len(f.Information) == 0
}

// Numbering returns the display number for each question in order. Numbers
// are always recomputed from sequence position so reordering between
// conversions stays consistent; text regions carry none and are reported as
// zero without consuming a number.
func (q *Quiz) Numbering() []int {
	nums := make([]int, len(q.Questions))
	n := 0
	for i := range q.Questions {
		if q.Questions[i].Kind == KindText {
			continue
		}
		n++
		nums[i] = n
	}
	return nums
}

// TrimBlank returns lines with leading and trailing blank lines removed.
// Interior blanks are preserved; both readers use it to normalize rich-text
// blocks without touching intentional paragraph breaks.
func TrimBlank(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	out := make([]string, end-start)
	copy(out, lines[start:end])
	return out
}
