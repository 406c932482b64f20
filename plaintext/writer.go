package plaintext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tpavlic/md2qti/quiz"
)

// Write serializes the quiz model to canonical text2qti plaintext: one blank
// line between items, question-level feedback before the answer payload,
// comments re-attached at their anchors, and a single trailing newline.
// Question numbers are recomputed from sequence position.
func Write(q *quiz.Quiz, anns quiz.Annotations) string {
	var out []string

	out = append(out, "Quiz title: "+q.Title)
	emitAnnotations(&out, anns.At(quiz.Anchor{Site: quiz.SiteBeforeDescription}))

	if len(q.Description) > 0 {
		out = append(out, "Quiz description: "+q.Description[0])
		appendContinuations(&out, q.Description[1:])
	}
	emitAnnotations(&out, anns.At(quiz.Anchor{Site: quiz.SiteAfterDescription}))

	for _, opt := range q.Options {
		out = append(out, fmt.Sprintf("%s: %t", opt.Name, opt.Value))
	}
	emitAnnotations(&out, anns.At(quiz.Anchor{Site: quiz.SiteAfterOptions}))

	nums := q.Numbering()
	for i := range q.Questions {
		writeItem(&out, &q.Questions[i], nums[i], anns)
	}
	emitAnnotations(&out, anns.At(quiz.Anchor{Site: quiz.SiteEndOfFile}))

	return strings.Join(out, "\n") + "\n"
}

func writeItem(out *[]string, que *quiz.Question, num int, anns quiz.Annotations) {
	ensureBlank(out)

	if que.Kind == quiz.KindText {
		*out = append(*out, "Text title: "+que.Title)
		if len(que.Prompt) > 0 {
			*out = append(*out, "Text: "+que.Prompt[0])
			appendContinuations(out, que.Prompt[1:])
		} else {
			*out = append(*out, "Text:")
		}
		emitAnnotations(out, anns.At(quiz.Anchor{Site: quiz.SiteAfterPrompt, Question: que.Position}))
		emitAnnotations(out, anns.At(quiz.Anchor{Site: quiz.SiteAfterQuestion, Question: que.Position}))
		return
	}

	if que.Title != "" {
		*out = append(*out, "Title: "+que.Title)
	}
	*out = append(*out, "Points: "+formatPoints(que.Points))

	stem := ""
	if len(que.Prompt) > 0 {
		stem = que.Prompt[0]
	}
	*out = append(*out, fmt.Sprintf("%d. %s", num, stem))
	if len(que.Prompt) > 1 {
		appendContinuations(out, que.Prompt[1:])
	}
	emitAnnotations(out, anns.At(quiz.Anchor{Site: quiz.SiteAfterPrompt, Question: que.Position}))

	writeItemFeedback(out, que)

	switch que.Kind {
	case quiz.KindSingleChoice:
		for k := range que.Choices {
			c := &que.Choices[k]
			letter := string(rune('a' + k))
			marker := letter + ") "
			if c.Correct {
				marker = "*" + marker
			}
			writeChoice(out, c, marker)
			emitAnnotations(out, anns.At(quiz.Anchor{
				Site:     quiz.SiteAfterChoice,
				Question: que.Position,
				Choice:   k + 1,
			}))
		}
	case quiz.KindMultiChoice:
		for k := range que.Choices {
			c := &que.Choices[k]
			marker := "[ ] "
			if c.Correct {
				marker = "[*] "
			}
			writeChoice(out, c, marker)
			emitAnnotations(out, anns.At(quiz.Anchor{
				Site:     quiz.SiteAfterChoice,
				Question: que.Position,
				Choice:   k + 1,
			}))
		}
	case quiz.KindNumeric:
		if que.Numeric != nil {
			*out = append(*out, "=   "+que.Numeric.Spec())
		}
	case quiz.KindShortAnswer:
		for _, ans := range que.FillAnswers {
			*out = append(*out, "*   "+ans)
		}
	case quiz.KindEssay:
		*out = append(*out, "____")
	case quiz.KindFileUpload:
		*out = append(*out, "^^^^")
	}

	emitAnnotations(out, anns.At(quiz.Anchor{Site: quiz.SiteAfterQuestion, Question: que.Position}))
}

func writeChoice(out *[]string, c *quiz.Choice, marker string) {
	text := ""
	if len(c.Text) > 0 {
		text = c.Text[0]
	}
	*out = append(*out, marker+text)
	appendContinuations(out, c.Text[1:])
	for _, fb := range c.Feedback {
		*out = append(*out, "... "+fb)
	}
}

func writeItemFeedback(out *[]string, que *quiz.Question) {
	for _, line := range que.Feedback.Correct {
		*out = append(*out, "+ "+line)
	}
	for _, line := range que.Feedback.Incorrect {
		*out = append(*out, "- "+line)
	}
	for _, line := range que.Feedback.General {
		*out = append(*out, "... "+line)
	}
	for _, line := range que.Feedback.Information {
		*out = append(*out, "! "+line)
	}
}

// appendContinuations indents follow-on lines by the 4-space continuation
// marker, leaving interior blanks bare.
func appendContinuations(out *[]string, lines []string) {
	for _, line := range lines {
		if line == "" {
			*out = append(*out, "")
			continue
		}
		*out = append(*out, "    "+line)
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
