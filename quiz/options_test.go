package quiz

import "testing"

func TestNormalizeOptionName(t *testing.T) {
	cases := []struct {
		raw  string
		want OptionName
		ok   bool
	}{
		{"shuffle answers", OptionShuffleAnswers, true},
		{"Shuffle  Answers", OptionShuffleAnswers, true},
		{"SHOW CORRECT ANSWERS", OptionShowCorrectAnswers, true},
		{"cant go back", OptionCantGoBack, true},
		{"Can't go back", OptionCantGoBack, true},
		{"one question at a time", OptionOneQuestionAtATime, true},
		{"randomize everything", "", false},
	}
	for _, tc := range cases {
		name, ok := NormalizeOptionName(tc.raw)
		if ok != tc.ok {
			t.Fatalf("NormalizeOptionName(%q): expected ok=%v, got %v", tc.raw, tc.ok, ok)
		}
		if ok && name != tc.want {
			t.Fatalf("NormalizeOptionName(%q): expected %q, got %q", tc.raw, tc.want, name)
		}
	}
}

func TestRecognizedOptionsAreValid(t *testing.T) {
	names := RecognizedOptions()
	if len(names) != 7 {
		t.Fatalf("expected 7 recognized options, got %d", len(names))
	}
	for _, name := range names {
		if !name.Valid() {
			t.Fatalf("expected %q to be valid", name)
		}
	}
	if OptionName("grade on a curve").Valid() {
		t.Fatal("expected unknown option to be invalid")
	}
}

func TestOptionValue(t *testing.T) {
	q := &Quiz{Options: []Option{
		{Name: OptionShuffleAnswers, Value: true},
		{Name: OptionCantGoBack, Value: false},
	}}

	if v, ok := q.OptionValue(OptionShuffleAnswers); !ok || !v {
		t.Fatalf("expected shuffle answers to be set true, got %v/%v", v, ok)
	}
	if v, ok := q.OptionValue(OptionCantGoBack); !ok || v {
		t.Fatalf("expected can't go back to be set false, got %v/%v", v, ok)
	}
	if _, ok := q.OptionValue(OptionFeedbackIsSolution); ok {
		t.Fatal("expected unset option to report not found")
	}
}
