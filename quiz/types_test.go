package quiz

import (
	"reflect"
	"testing"
)

func TestKindPredicates(t *testing.T) {
	for _, kind := range Kinds() {
		if !kind.Valid() {
			t.Fatalf("expected %q to be valid", kind)
		}
	}
	if Kind("matching").Valid() {
		t.Fatal("expected unknown kind to be invalid")
	}
	if KindText.Gradeable() {
		t.Fatal("expected text regions to be ungraded")
	}
	if !KindEssay.Gradeable() {
		t.Fatal("expected essay questions to be gradeable")
	}
	if !KindSingleChoice.HasChoices() || !KindMultiChoice.HasChoices() {
		t.Fatal("expected choice kinds to carry choices")
	}
	if KindNumeric.HasChoices() {
		t.Fatal("expected numeric questions to carry no choices")
	}
}

func TestNumberingSkipsTextRegions(t *testing.T) {
	q := &Quiz{Questions: []Question{
		{Position: 1, Kind: KindSingleChoice},
		{Position: 2, Kind: KindText},
		{Position: 3, Kind: KindNumeric},
		{Position: 4, Kind: KindEssay},
	}}

	got := q.Numbering()
	want := []int{1, 0, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected numbering %v, got %v", want, got)
	}
}

func TestCorrectCount(t *testing.T) {
	q := Question{Choices: []Choice{
		{Correct: true},
		{Correct: false},
		{Correct: true},
	}}
	if got := q.CorrectCount(); got != 2 {
		t.Fatalf("expected 2 correct choices, got %d", got)
	}
}

func TestNumericSpec(t *testing.T) {
	cases := []struct {
		name string
		num  Numeric
		want string
	}{
		{"exact", Numeric{Form: NumericExact, Value: "42"}, "42"},
		{"tolerance", Numeric{Form: NumericTolerance, Value: "3.14", Tolerance: "0.01"}, "3.14 +- 0.01"},
		{"percent", Numeric{Form: NumericTolerance, Value: "100", Tolerance: "5", Percent: true}, "100 +- 5%"},
		{"range", Numeric{Form: NumericRange, Low: "-1.5", High: "2.5"}, "[-1.5, 2.5]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.num.Spec(); got != tc.want {
				t.Fatalf("expected spec %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFeedbackEmpty(t *testing.T) {
	if !(Feedback{}).Empty() {
		t.Fatal("expected zero feedback to be empty")
	}
	fb := Feedback{Information: []string{"note"}}
	if fb.Empty() {
		t.Fatal("expected feedback with information lines to be non-empty")
	}
}

func TestTrimBlank(t *testing.T) {
	got := TrimBlank([]string{"", "  ", "first", "", "second", "", "\t"})
	want := []string{"first", "", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if out := TrimBlank([]string{"", "   "}); len(out) != 0 {
		t.Fatalf("expected all-blank input to trim to nothing, got %v", out)
	}
}
