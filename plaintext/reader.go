// Package plaintext reads and writes the text2qti plaintext quiz format:
// "Quiz title:" and "Quiz description:" headers, bare option lines, and
// numbered items whose kind is inferred from the answer payload.
package plaintext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tpavlic/md2qti/internal/scan"
	"github.com/tpavlic/md2qti/quiz"
)

var (
	reQuizTitle = regexp.MustCompile(`^\s*Quiz title:\s*(.*?)\s*$`)
	reQuizDesc  = regexp.MustCompile(`^\s*Quiz description:\s*(.*?)\s*$`)
	reTextTitle = regexp.MustCompile(`^\s*Text title:\s*(.*?)\s*$`)
	reTextBody  = regexp.MustCompile(`^\s*Text:\s*(.*?)\s*$`)
	reItemTitle = regexp.MustCompile(`^\s*Title:\s*(.*?)\s*$`)
	reItemPts   = regexp.MustCompile(`^\s*Points:\s*([0-9]+(?:\.[0-9]+)?)\s*$`)
	reStemFirst = regexp.MustCompile(`^\s*([0-9]+)\.\s+(.*?)\s*$`)
	reCont      = regexp.MustCompile(`^\s{4,}(.*)$`)

	reFbGeneral     = regexp.MustCompile(`^\s*\.\.\.\s(.*?)\s*$`)
	reFbCorrect     = regexp.MustCompile(`^\s*\+\s(.*?)\s*$`)
	reFbIncorrect   = regexp.MustCompile(`^\s*-\s(.*?)\s*$`)
	reFbInformation = regexp.MustCompile(`^\s*!\s(.*?)\s*$`)

	reMcChoice = regexp.MustCompile(`^\s*(\*?)([a-z])\)\s(.*?)\s*$`)
	reMaChoice = regexp.MustCompile(`^\s*(\[\*]|\[\s])\s(.*?)\s*$`)

	reNumSpec    = regexp.MustCompile(`^\s*=\s+(.*?)\s*$`)
	reFillAnswer = regexp.MustCompile(`^\s*\*\s+(.*?)\s*$`)
	reEssayBody  = regexp.MustCompile(`^\s*____\s*$`)
	reFileBody   = regexp.MustCompile(`^\s*\^\^\^\^\s*$`)

	reOption = regexp.MustCompile(`(?i)^\s*(feedback is solution|solutions sample groups|solutions randomize groups|shuffle answers|show correct answers|one question at a time|can'?t go back)\s*:\s*(true|false)\s*$`)
)

// Read parses text2qti plaintext into the quiz model plus the comment/spacing
// side-channel. Question kinds are inferred from the payload; semantic rules
// beyond the grammar are left to the validator.
func Read(text string) (*quiz.Quiz, quiz.Annotations, error) {
	p := &parser{cur: scan.New(text), q: &quiz.Quiz{}}
	if err := p.parse(); err != nil {
		return nil, nil, err
	}
	return p.q, p.anns, nil
}

type parser struct {
	cur  *scan.Cursor
	q    *quiz.Quiz
	anns quiz.Annotations
}

func (p *parser) parse() error {
	p.cur.SkipBlank()
	if p.cur.More() {
		if m := reQuizTitle.FindStringSubmatch(p.cur.Peek()); m != nil {
			p.q.Title = m[1]
			p.cur.Next()
		}
	}
	if err := p.parseHead(); err != nil {
		return err
	}
	for p.cur.More() {
		line := p.cur.Peek()
		if strings.TrimSpace(line) == "" {
			p.cur.Next()
			continue
		}
		// Option lines are tolerated between items and folded into the
		// quiz-level set.
		if m := reOption.FindStringSubmatch(line); m != nil {
			p.addOption(m[1], m[2])
			p.cur.Next()
			continue
		}
		if err := p.parseItem(); err != nil {
			return err
		}
	}
	return nil
}

// parseHead collects the description and option lines that precede the first
// item. The description must come before any option line.
func (p *parser) parseHead() error {
	descDone := false
	optionsStarted := false
	for p.cur.More() {
		line := p.cur.Peek()
		if strings.TrimSpace(line) == "" {
			p.cur.Next()
			continue
		}
		if isCommentStart(line) {
			ann, err := consumeComment(p.cur)
			if err != nil {
				return err
			}
			site := quiz.SiteBeforeDescription
			switch {
			case optionsStarted:
				site = quiz.SiteAfterOptions
			case descDone:
				site = quiz.SiteAfterDescription
			}
			ann.Anchor = quiz.Anchor{Site: site}
			p.anns = append(p.anns, ann)
			continue
		}
		if !descDone && !optionsStarted {
			if m := reQuizDesc.FindStringSubmatch(line); m != nil {
				p.cur.Next()
				desc := append([]string{m[1]}, p.continuations()...)
				p.q.Description = quiz.TrimBlank(desc)
				descDone = true
				continue
			}
		}
		if m := reOption.FindStringSubmatch(line); m != nil {
			p.addOption(m[1], m[2])
			optionsStarted = true
			p.cur.Next()
			continue
		}
		break
	}
	return nil
}

func (p *parser) addOption(rawName, rawValue string) {
	name, _ := quiz.NormalizeOptionName(rawName)
	p.q.Options = append(p.q.Options, quiz.Option{
		Line:  p.cur.Line(),
		Name:  name,
		Value: strings.EqualFold(strings.TrimSpace(rawValue), "true"),
	})
}

// continuations collects 4-space-indented continuation lines, preserving
// interior blanks when a further continuation follows them.
func (p *parser) continuations() []string {
	var out []string
	for p.cur.More() {
		line := p.cur.Peek()
		if m := reCont.FindStringSubmatch(line); m != nil {
			out = append(out, m[1])
			p.cur.Next()
			continue
		}
		if strings.TrimSpace(line) == "" {
			off := 1
			for off < p.cur.Remaining() && strings.TrimSpace(p.cur.PeekAt(off)) == "" {
				off++
			}
			if off < p.cur.Remaining() && reCont.MatchString(p.cur.PeekAt(off)) {
				out = append(out, "")
				p.cur.Next()
				continue
			}
		}
		break
	}
	return out
}

func (p *parser) parseItem() error {
	line := p.cur.Peek()

	if m := reTextTitle.FindStringSubmatch(line); m != nil {
		return p.parseTextRegion(m[1])
	}
	if !reItemTitle.MatchString(line) && !reItemPts.MatchString(line) && !reStemFirst.MatchString(line) {
		return &quiz.StructuralError{
			Line:     p.cur.Line(),
			Expected: "'Text title:', 'Title:', 'Points:', or a numbered stem",
			Found:    strings.TrimSpace(line),
		}
	}

	pos := len(p.q.Questions) + 1
	que := quiz.Question{Position: pos, Line: p.cur.Line()}

	if m := reItemTitle.FindStringSubmatch(p.cur.Peek()); m != nil {
		que.Title = m[1]
		p.cur.Next()
	}
	if p.cur.More() {
		if m := reItemPts.FindStringSubmatch(p.cur.Peek()); m != nil {
			que.Points, _ = strconv.ParseFloat(m[1], 64)
			que.HasPoints = true
			p.cur.Next()
		}
	}
	if !que.HasPoints {
		que.Points, que.HasPoints = 1, true
	}

	if !p.cur.More() || !reStemFirst.MatchString(p.cur.Peek()) {
		found := ""
		if p.cur.More() {
			found = strings.TrimSpace(p.cur.Peek())
		}
		return &quiz.StructuralError{
			Line:     p.cur.Line(),
			Expected: "numbered stem like '1. ...'",
			Found:    found,
		}
	}
	m := reStemFirst.FindStringSubmatch(p.cur.Peek())
	que.SourceNumber, _ = strconv.Atoi(m[1])
	p.cur.Next()
	stem := append([]string{m[2]}, p.continuations()...)
	que.Prompt = quiz.TrimBlank(stem)

	if err := p.checkStemEnd(); err != nil {
		return err
	}
	if err := p.consumePromptComments(pos); err != nil {
		return err
	}
	p.parseQuestionFeedback(&que)

	if err := p.parsePayload(&que); err != nil {
		return err
	}
	if err := p.parseTrailing(pos); err != nil {
		return err
	}
	p.q.Questions = append(p.q.Questions, que)
	return nil
}

// checkStemEnd rejects unindented lines that neither start a recognized
// section nor a new item: those are wrapped stems missing their continuation
// indent.
func (p *parser) checkStemEnd() error {
	if !p.cur.More() {
		return nil
	}
	line := p.cur.Peek()
	if strings.TrimSpace(line) == "" || isCommentStart(line) {
		return nil
	}
	allowed := reFbGeneral.MatchString(line) || reFbCorrect.MatchString(line) ||
		reFbIncorrect.MatchString(line) || reFbInformation.MatchString(line) ||
		reNumSpec.MatchString(line) || reEssayBody.MatchString(line) ||
		reFileBody.MatchString(line) || reMcChoice.MatchString(line) ||
		reMaChoice.MatchString(line) || reFillAnswer.MatchString(line)
	if !allowed {
		return &quiz.StructuralError{
			Line:     p.cur.Line(),
			Expected: "stem continuation indented 4+ spaces, feedback, or an answer section",
			Found:    strings.TrimSpace(line),
		}
	}
	return nil
}

func (p *parser) consumePromptComments(pos int) error {
	for p.cur.More() && isCommentStart(p.cur.Peek()) {
		ann, err := consumeComment(p.cur)
		if err != nil {
			return err
		}
		ann.Anchor = quiz.Anchor{Site: quiz.SiteAfterPrompt, Question: pos}
		p.anns = append(p.anns, ann)
	}
	return nil
}

// parseQuestionFeedback reads the question-level feedback markers that come
// between the stem and the answer payload: "+" correct, "-" incorrect, "..."
// general, "!" information.
func (p *parser) parseQuestionFeedback(que *quiz.Question) {
	for p.cur.More() {
		line := p.cur.Peek()
		switch {
		case reFbGeneral.MatchString(line):
			que.Feedback.General = append(que.Feedback.General, reFbGeneral.FindStringSubmatch(line)[1])
		case reFbCorrect.MatchString(line):
			que.Feedback.Correct = append(que.Feedback.Correct, reFbCorrect.FindStringSubmatch(line)[1])
		case reFbIncorrect.MatchString(line):
			que.Feedback.Incorrect = append(que.Feedback.Incorrect, reFbIncorrect.FindStringSubmatch(line)[1])
		case reFbInformation.MatchString(line):
			que.Feedback.Information = append(que.Feedback.Information, reFbInformation.FindStringSubmatch(line)[1])
		default:
			return
		}
		p.cur.Next()
	}
}

// parsePayload dispatches on the first payload line to infer the question
// kind and read its answer block.
func (p *parser) parsePayload(que *quiz.Question) error {
	if p.cur.More() {
		line := p.cur.Peek()
		switch {
		case reNumSpec.MatchString(line):
			que.Kind = quiz.KindNumeric
			raw := reNumSpec.FindStringSubmatch(line)[1]
			num, ok := quiz.ParseNumeric(raw)
			if !ok {
				return &quiz.StructuralError{
					Line:     p.cur.Line(),
					Expected: "numeric answer (value, value +- tolerance, or [low, high])",
					Found:    raw,
				}
			}
			que.Numeric = num
			p.cur.Next()
			return nil
		case reEssayBody.MatchString(line):
			que.Kind = quiz.KindEssay
			p.cur.Next()
			return nil
		case reFileBody.MatchString(line):
			que.Kind = quiz.KindFileUpload
			p.cur.Next()
			return nil
		case reMcChoice.MatchString(line):
			que.Kind = quiz.KindSingleChoice
			return p.parseChoices(que, reMcChoice, func(m []string) (bool, string) {
				return m[1] == "*", m[3]
			})
		case reMaChoice.MatchString(line):
			que.Kind = quiz.KindMultiChoice
			return p.parseChoices(que, reMaChoice, func(m []string) (bool, string) {
				return m[1] == "[*]", m[2]
			})
		case reFillAnswer.MatchString(line):
			que.Kind = quiz.KindShortAnswer
			for p.cur.More() {
				m := reFillAnswer.FindStringSubmatch(p.cur.Peek())
				if m == nil {
					break
				}
				que.FillAnswers = append(que.FillAnswers, m[1])
				p.cur.Next()
			}
			return nil
		}
	}
	// A feedback-only body still identifies a fill question; the validator
	// flags the missing answers.
	if !que.Feedback.Empty() {
		que.Kind = quiz.KindShortAnswer
		return nil
	}
	found := "end of input"
	if p.cur.More() {
		found = strings.TrimSpace(p.cur.Peek())
	}
	return &quiz.StructuralError{
		Line:     p.cur.Line(),
		Expected: "question body: choices, '=' numeric answer, '*' fill answers, '____', or '^^^^'",
		Found:    found,
	}
}

// parseChoices reads a contiguous choice list, with 4-space continuations and
// "..." per-choice feedback after each choice. Comments between choices are
// anchored after the preceding choice.
func (p *parser) parseChoices(que *quiz.Question, re *regexp.Regexp, decode func([]string) (bool, string)) error {
	for p.cur.More() {
		line := p.cur.Peek()
		if m := re.FindStringSubmatch(line); m != nil {
			correct, text := decode(m)
			choice := quiz.Choice{Line: p.cur.Line(), Text: []string{text}, Correct: correct}
			p.cur.Next()
			choice.Text = append(choice.Text, p.continuations()...)
			for p.cur.More() {
				fb := reFbGeneral.FindStringSubmatch(p.cur.Peek())
				if fb == nil {
					break
				}
				choice.Feedback = append(choice.Feedback, fb[1])
				p.cur.Next()
			}
			que.Choices = append(que.Choices, choice)
			continue
		}
		if isCommentStart(line) {
			ann, err := consumeComment(p.cur)
			if err != nil {
				return err
			}
			ann.Anchor = quiz.Anchor{
				Site:     quiz.SiteAfterChoice,
				Question: que.Position,
				Choice:   len(que.Choices),
			}
			p.anns = append(p.anns, ann)
			continue
		}
		break
	}
	return nil
}

// parseTrailing consumes comments after an item's payload, anchoring them to
// the finished item, or to the end of the file when nothing follows.
func (p *parser) parseTrailing(pos int) error {
	var pending []quiz.Annotation
	for p.cur.More() {
		line := p.cur.Peek()
		if strings.TrimSpace(line) == "" {
			p.cur.Next()
			continue
		}
		if !isCommentStart(line) {
			break
		}
		ann, err := consumeComment(p.cur)
		if err != nil {
			return err
		}
		pending = append(pending, ann)
	}
	site := quiz.SiteEndOfFile
	question := 0
	if p.cur.More() {
		site = quiz.SiteAfterQuestion
		question = pos
	}
	for _, ann := range pending {
		ann.Anchor = quiz.Anchor{Site: site, Question: question}
		p.anns = append(p.anns, ann)
	}
	return nil
}

func (p *parser) parseTextRegion(title string) error {
	pos := len(p.q.Questions) + 1
	que := quiz.Question{Position: pos, Line: p.cur.Line(), Kind: quiz.KindText, Title: title}
	p.cur.Next()

	if !p.cur.More() || !reTextBody.MatchString(p.cur.Peek()) {
		found := "end of input"
		if p.cur.More() {
			found = strings.TrimSpace(p.cur.Peek())
		}
		return &quiz.StructuralError{
			Line:     p.cur.Line(),
			Expected: "'Text:' line after 'Text title:'",
			Found:    found,
		}
	}
	first := reTextBody.FindStringSubmatch(p.cur.Peek())[1]
	p.cur.Next()
	body := append([]string{first}, p.continuations()...)
	que.Prompt = quiz.TrimBlank(body)

	if err := p.parseTrailing(pos); err != nil {
		return err
	}
	p.q.Questions = append(p.q.Questions, que)
	return nil
}
