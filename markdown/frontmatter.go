package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/tpavlic/md2qti/quiz"
)

// matter is the optional YAML front matter accepted on Markdown input. It is
// an input convenience only: the writer always emits the inline equivalents,
// never a front matter block.
type matter struct {
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Options     map[string]bool `yaml:"options"`
}

// splitFrontMatter strips a leading YAML front matter block when present and
// returns the remaining body together with the number of source lines the
// block occupied, so the body cursor can keep reporting document-absolute
// line numbers.
func splitFrontMatter(text string) (string, int, matter, error) {
	var fm matter
	if !strings.HasPrefix(text, "---\n") && !strings.HasPrefix(text, "---\r\n") {
		return text, 0, fm, nil
	}
	rest, err := frontmatter.Parse(strings.NewReader(text), &fm)
	if err != nil {
		return "", 0, fm, &quiz.StructuralError{
			Line:     1,
			Expected: "valid YAML front matter",
			Found:    err.Error(),
		}
	}
	body := string(rest)
	base := strings.Count(text, "\n") - strings.Count(body, "\n")
	return body, base, fm, nil
}

// apply seeds the quiz from front matter values. Option names must be
// recognized; matching values land in the canonical option order since YAML
// maps carry none of their own.
func (fm matter) apply(q *quiz.Quiz) error {
	q.Title = fm.Title
	if fm.Description != "" {
		q.Description = strings.Split(strings.TrimRight(fm.Description, "\n"), "\n")
	}
	var unknown []string
	for raw := range fm.Options {
		if _, ok := quiz.NormalizeOptionName(raw); !ok {
			unknown = append(unknown, raw)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &quiz.StructuralError{
			Line:     1,
			Expected: fmt.Sprintf("recognized quiz option, one of %s", strings.Join(optionNames(), ", ")),
			Found:    strings.Join(unknown, ", "),
		}
	}
	for _, name := range quiz.RecognizedOptions() {
		for raw, value := range fm.Options {
			if norm, _ := quiz.NormalizeOptionName(raw); norm == name {
				q.Options = append(q.Options, quiz.Option{Line: 1, Name: name, Value: value})
			}
		}
	}
	return nil
}

func optionNames() []string {
	names := make([]string, 0, len(quiz.RecognizedOptions()))
	for _, name := range quiz.RecognizedOptions() {
		names = append(names, string(name))
	}
	return names
}
