package quiz

import "testing"

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		raw  string
		want Numeric
	}{
		{"42", Numeric{Form: NumericExact, Value: "42"}},
		{"-3.5", Numeric{Form: NumericExact, Value: "-3.5"}},
		{"3.14 +- 0.01", Numeric{Form: NumericTolerance, Value: "3.14", Tolerance: "0.01"}},
		{"100 +- 5%", Numeric{Form: NumericTolerance, Value: "100", Tolerance: "5", Percent: true}},
		{"-2+-0.5", Numeric{Form: NumericTolerance, Value: "-2", Tolerance: "0.5"}},
		{"[1, 10]", Numeric{Form: NumericRange, Low: "1", High: "10"}},
		{"[-0.5,0.5]", Numeric{Form: NumericRange, Low: "-0.5", High: "0.5"}},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, ok := ParseNumeric(tc.raw)
			if !ok {
				t.Fatalf("expected %q to parse", tc.raw)
			}
			if *got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, *got)
			}
		})
	}
}

func TestParseNumericRejectsMalformedSpecs(t *testing.T) {
	for _, raw := range []string{"", "abc", "1 +-", "+- 2", "[1, ]", "[1 2]", "1 .. 2", "1 +- -2"} {
		if _, ok := ParseNumeric(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestParseNumericKeepsSourceSpelling(t *testing.T) {
	got, ok := ParseNumeric("003.1400 +- 0.0100")
	if !ok {
		t.Fatal("expected spec to parse")
	}
	if got.Value != "003.1400" || got.Tolerance != "0.0100" {
		t.Fatalf("expected source spellings to be preserved, got %+v", got)
	}
	if spec := got.Spec(); spec != "003.1400 +- 0.0100" {
		t.Fatalf("expected canonical spec to reuse the literals, got %q", spec)
	}
}
