package markdown

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tpavlic/md2qti/quiz"
)

// Write serializes the quiz model to canonical Markdown: exactly one blank
// line between structural blocks, comments re-attached at their anchors, and
// a single trailing newline. Question numbers are recomputed from sequence
// position.
func Write(q *quiz.Quiz, anns quiz.Annotations) string {
	var out []string

	out = append(out, "# "+q.Title)
	emitAnnotations(&out, anns.At(quiz.Anchor{Site: quiz.SiteBeforeDescription}))

	if len(q.Description) > 0 {
		ensureBlank(&out)
		out = append(out, q.Description...)
	}
	emitAnnotations(&out, anns.At(quiz.Anchor{Site: quiz.SiteAfterDescription}))

	if len(q.Options) > 0 {
		ensureBlank(&out)
		for _, opt := range q.Options {
			out = append(out, fmt.Sprintf("> %s: %t", opt.Name, opt.Value))
		}
	}
	emitAnnotations(&out, anns.At(quiz.Anchor{Site: quiz.SiteAfterOptions}))

	nums := q.Numbering()
	for i := range q.Questions {
		writeQuestion(&out, &q.Questions[i], nums[i], anns)
	}
	emitAnnotations(&out, anns.At(quiz.Anchor{Site: quiz.SiteEndOfFile}))

	return strings.Join(out, "\n") + "\n"
}

func writeQuestion(out *[]string, que *quiz.Question, num int, anns quiz.Annotations) {
	ensureBlank(out)
	*out = append(*out, questionHeader(que, num))

	if len(que.Prompt) > 0 {
		ensureBlank(out)
		*out = append(*out, que.Prompt...)
	}
	emitAnnotations(out, anns.At(quiz.Anchor{Site: quiz.SiteAfterPrompt, Question: que.Position}))

	switch {
	case que.Kind.HasChoices():
		ensureBlank(out)
		for k := range que.Choices {
			writeChoice(out, &que.Choices[k])
			emitAnnotations(out, anns.At(quiz.Anchor{
				Site:     quiz.SiteAfterChoice,
				Question: que.Position,
				Choice:   k + 1,
			}))
		}
	case que.Kind == quiz.KindNumeric && que.Numeric != nil:
		ensureBlank(out)
		*out = append(*out, "### Answer", "", "= "+que.Numeric.Spec())
	case que.Kind == quiz.KindShortAnswer && len(que.FillAnswers) > 0:
		ensureBlank(out)
		*out = append(*out, "### Answers", "")
		for _, ans := range que.FillAnswers {
			*out = append(*out, "- "+ans)
		}
	}

	writeQuestionFeedback(out, que)
	emitAnnotations(out, anns.At(quiz.Anchor{Site: quiz.SiteAfterQuestion, Question: que.Position}))
}

func questionHeader(que *quiz.Question, num int) string {
	var b strings.Builder
	b.WriteString("## ")
	if num > 0 {
		fmt.Fprintf(&b, "%d. ", num)
	}
	if que.Title != "" {
		b.WriteString(que.Title)
		b.WriteString(" ")
	}
	if que.Kind.Gradeable() {
		fmt.Fprintf(&b, "(points: %s) ", formatPoints(que.Points))
	}
	b.WriteString("{type=")
	b.WriteString(string(que.Kind))
	for _, key := range sortedAttrKeys(que.Attrs) {
		fmt.Fprintf(&b, ", %s=%s", key, que.Attrs[key])
	}
	b.WriteString("}")
	return b.String()
}

func writeChoice(out *[]string, c *quiz.Choice) {
	marker := "- [ ] "
	if c.Correct {
		marker = "- [x] "
	}
	text := ""
	if len(c.Text) > 0 {
		text = c.Text[0]
	}
	*out = append(*out, marker+text)
	for _, cont := range c.Text[1:] {
		*out = append(*out, "  "+cont)
	}
	for _, fb := range c.Feedback {
		*out = append(*out, "  > "+fb)
	}
}

func writeQuestionFeedback(out *[]string, que *quiz.Question) {
	if que.Feedback.Empty() {
		return
	}
	ensureBlank(out)
	writeFeedbackChannel(out, "Correct", que.Feedback.Correct)
	writeFeedbackChannel(out, "Incorrect", que.Feedback.Incorrect)
	writeFeedbackChannel(out, "General", que.Feedback.General)
	writeFeedbackChannel(out, "Information", que.Feedback.Information)
}

func writeFeedbackChannel(out *[]string, label string, lines []string) {
	if len(lines) == 0 {
		return
	}
	*out = append(*out, "> "+label+": "+lines[0])
	for _, line := range lines[1:] {
		*out = append(*out, "> "+line)
	}
}

func emitAnnotations(out *[]string, anns []quiz.Annotation) {
	for _, ann := range anns {
		writeComment(out, ann)
	}
}

func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func sortedAttrKeys(attrs map[string]string) []string {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
