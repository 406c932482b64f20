package quiz

import "regexp"

var (
	reNumericRange     = regexp.MustCompile(`^\[\s*(-?[0-9]+(?:\.[0-9]+)?)\s*,\s*(-?[0-9]+(?:\.[0-9]+)?)\s*\]$`)
	reNumericTolerance = regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?)\s*\+-\s*([0-9]+(?:\.[0-9]+)?)(%?)$`)
	reNumericExact     = regexp.MustCompile(`^-?[0-9]+(?:\.[0-9]+)?$`)
)

// ParseNumeric parses the single-line numeric answer spec shared by both
// surface grammars: an exact value, "value +- tolerance" with an optional
// percent suffix, or an inclusive "[low, high]" interval. The source number
// spellings are kept verbatim so writers reproduce the author's literals.
func ParseNumeric(raw string) (*Numeric, bool) {
	if m := reNumericRange.FindStringSubmatch(raw); m != nil {
		return &Numeric{Form: NumericRange, Low: m[1], High: m[2]}, true
	}
	if m := reNumericTolerance.FindStringSubmatch(raw); m != nil {
		return &Numeric{
			Form:      NumericTolerance,
			Value:     m[1],
			Tolerance: m[2],
			Percent:   m[3] == "%",
		}, true
	}
	if reNumericExact.MatchString(raw) {
		return &Numeric{Form: NumericExact, Value: raw}, true
	}
	return nil, false
}
