// Package markdown reads and writes the Markdown quiz schema: an H1 title,
// free description, blockquote options, and one H2 block per question whose
// header attribute block carries the question type.
package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tpavlic/md2qti/internal/scan"
	"github.com/tpavlic/md2qti/quiz"
)

var (
	reHeading1      = regexp.MustCompile(`^#\s+(.*?)\s*$`)
	reHeading2      = regexp.MustCompile(`^##\s+(.*?)\s*$`)
	reAnswerHeading = regexp.MustCompile(`(?i)^###\s+answers?\s*:?\s*$`)
	reAttrs         = regexp.MustCompile(`\{([^{}]*)\}$`)
	reLeadingNumber = regexp.MustCompile(`^([0-9]+)\.\s+(.*)$`)
	rePoints        = regexp.MustCompile(`(?i)\(points:\s*([0-9]+(?:\.[0-9]+)?)\s*\)`)
	reChoiceLine    = regexp.MustCompile(`^-\s*\[( |x|X)\]\s+(.*)$`)
	reBulletLine    = regexp.MustCompile(`^-\s+(.*?)\s*$`)
	reQuoteLine     = regexp.MustCompile(`^>\s?(.*)$`)
	reIndentedQuote = regexp.MustCompile(`^\s+>\s?(.*)$`)
	reFeedbackLabel = regexp.MustCompile(`(?i)^(correct|incorrect|general|information):\s*(.*)$`)
	reNumericAnswer = regexp.MustCompile(`^=\s*(.+)$`)
	reOptionQuote   = regexp.MustCompile(`^>\s*([^:]+?)\s*:\s*(\S+)\s*$`)
	reOptionComment = regexp.MustCompile(`^<!--#\s*([^:]+?)\s*:\s*(\S+)\s*-->\s*$`)
)

// Read parses Markdown source into the quiz model plus the comment/spacing
// side-channel. It performs grammar-level checks only; semantic rules are the
// validator's job.
func Read(text string) (*quiz.Quiz, quiz.Annotations, error) {
	body, base, fm, err := splitFrontMatter(text)
	if err != nil {
		return nil, nil, err
	}
	p := &parser{cur: scan.New(body).WithBase(base), q: &quiz.Quiz{}}
	if err := fm.apply(p.q); err != nil {
		return nil, nil, err
	}
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
	if err := p.parseTitle(); err != nil {
		return err
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
		m := reHeading2.FindStringSubmatch(line)
		if m == nil {
			return &quiz.StructuralError{
				Line:     p.cur.Line(),
				Expected: "question header (## ...)",
				Found:    strings.TrimSpace(line),
			}
		}
		headerLine := p.cur.Line()
		p.cur.Next()
		if err := p.parseQuestion(m[1], headerLine); err != nil {
			return err
		}
	}
	return nil
}

// parseTitle consumes the H1 title, or falls back to the first non-blank line
// when the document has no heading at all. Front matter titles are kept unless
// an inline H1 overrides them.
func (p *parser) parseTitle() error {
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
			ann.Anchor = quiz.Anchor{Site: quiz.SiteBeforeDescription}
			p.anns = append(p.anns, ann)
			continue
		}
		if m := reHeading1.FindStringSubmatch(line); m != nil {
			p.q.Title = m[1]
			p.cur.Next()
			return nil
		}
		if reHeading2.MatchString(line) {
			break
		}
		if p.q.Title == "" {
			p.q.Title = strings.TrimSpace(line)
			p.cur.Next()
			return nil
		}
		break
	}
	if p.q.Title == "" {
		p.q.Title = "Untitled Quiz"
	}
	return nil
}

// parseHead collects the description and the quiz options up to the first
// question header. Option lines may use either the blockquote form
// ("> shuffle answers: true") or the HTML-comment form.
func (p *parser) parseHead() error {
	var desc []string
	descStarted := len(p.q.Description) > 0
	optionsStarted := len(p.q.Options) > 0
	for p.cur.More() {
		line := p.cur.Peek()
		if reHeading2.MatchString(line) {
			break
		}
		if strings.TrimSpace(line) == "" {
			desc = append(desc, "")
			p.cur.Next()
			continue
		}
		if m := reOptionComment.FindStringSubmatch(line); m != nil {
			if _, ok := quiz.NormalizeOptionName(m[1]); !ok {
				return p.unknownOptionError(m[1])
			}
			if err := p.addOption(m[1], m[2]); err != nil {
				return err
			}
			optionsStarted = true
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
			case descStarted:
				site = quiz.SiteAfterDescription
			}
			ann.Anchor = quiz.Anchor{Site: site}
			p.anns = append(p.anns, ann)
			continue
		}
		if m := reOptionQuote.FindStringSubmatch(line); m != nil {
			if _, ok := quiz.NormalizeOptionName(m[1]); ok {
				if err := p.addOption(m[1], m[2]); err != nil {
					return err
				}
				optionsStarted = true
				p.cur.Next()
				continue
			}
			// An unknown name with a boolean value is almost certainly a
			// misspelled option, not description text.
			if _, looksBool := parseBool(m[2]); looksBool {
				return p.unknownOptionError(m[1])
			}
		}
		desc = append(desc, line)
		descStarted = true
		p.cur.Next()
	}
	p.q.Description = append(p.q.Description, quiz.TrimBlank(desc)...)
	return nil
}

func (p *parser) addOption(rawName, rawValue string) error {
	name, _ := quiz.NormalizeOptionName(rawName)
	value, ok := parseBool(rawValue)
	if !ok {
		return &quiz.StructuralError{
			Line:     p.cur.Line(),
			Expected: fmt.Sprintf("boolean value for option %q", name),
			Found:    rawValue,
		}
	}
	p.q.Options = append(p.q.Options, quiz.Option{Line: p.cur.Line(), Name: name, Value: value})
	return nil
}

func (p *parser) unknownOptionError(rawName string) error {
	return &quiz.StructuralError{
		Line:     p.cur.Line(),
		Expected: "recognized quiz option, one of " + strings.Join(optionNames(), ", "),
		Found:    strings.TrimSpace(rawName),
	}
}

func (p *parser) parseQuestion(header string, line int) error {
	pos := len(p.q.Questions) + 1
	que, err := parseHeader(pos, header, line)
	if err != nil {
		return err
	}
	if err := p.parsePrompt(&que); err != nil {
		return err
	}
	switch {
	case que.Kind.HasChoices():
		if err := p.parseChoices(&que); err != nil {
			return err
		}
	case que.Kind == quiz.KindNumeric:
		if err := p.parseNumericAnswer(&que); err != nil {
			return err
		}
	case que.Kind == quiz.KindShortAnswer:
		if err := p.parseFillAnswers(&que); err != nil {
			return err
		}
	}
	if que.Kind != quiz.KindText {
		if err := p.parseFeedback(&que); err != nil {
			return err
		}
	}
	if err := p.parseTrailing(pos); err != nil {
		return err
	}
	p.q.Questions = append(p.q.Questions, que)
	return nil
}

// parsePrompt collects prompt text until the payload or feedback for the
// question's kind begins.
func (p *parser) parsePrompt(que *quiz.Question) error {
	var prompt []string
	for p.cur.More() {
		line := p.cur.Peek()
		if reHeading2.MatchString(line) {
			break
		}
		if isCommentStart(line) {
			ann, err := consumeComment(p.cur)
			if err != nil {
				return err
			}
			ann.Anchor = quiz.Anchor{Site: quiz.SiteAfterPrompt, Question: que.Position}
			p.anns = append(p.anns, ann)
			continue
		}
		if reChoiceLine.MatchString(line) {
			if que.Kind.HasChoices() {
				break
			}
			if !que.Kind.Gradeable() || que.Kind == quiz.KindEssay || que.Kind == quiz.KindFileUpload {
				return &quiz.StructuralError{
					Line:     p.cur.Line(),
					Expected: fmt.Sprintf("prompt text (%s questions take no choice list)", que.Kind),
					Found:    strings.TrimSpace(line),
				}
			}
		}
		if reAnswerHeading.MatchString(line) {
			if que.Kind == quiz.KindNumeric || que.Kind == quiz.KindShortAnswer {
				break
			}
			if !que.Kind.Gradeable() || que.Kind == quiz.KindEssay || que.Kind == quiz.KindFileUpload {
				return &quiz.StructuralError{
					Line:     p.cur.Line(),
					Expected: fmt.Sprintf("prompt text (%s questions take no answer section)", que.Kind),
					Found:    strings.TrimSpace(line),
				}
			}
		}
		if strings.HasPrefix(line, ">") {
			if que.Kind == quiz.KindText {
				return &quiz.StructuralError{
					Line:     p.cur.Line(),
					Expected: "text content (text regions take no feedback)",
					Found:    strings.TrimSpace(line),
				}
			}
			break
		}
		prompt = append(prompt, line)
		p.cur.Next()
	}
	que.Prompt = quiz.TrimBlank(prompt)
	return nil
}

// parseChoices reads the choice list with per-choice feedback blockquotes and
// wrapped choice-text continuations, both indented under the choice marker.
func (p *parser) parseChoices(que *quiz.Question) error {
	for p.cur.More() {
		line := p.cur.Peek()
		if reHeading2.MatchString(line) {
			break
		}
		if strings.TrimSpace(line) == "" {
			p.cur.Next()
			continue
		}
		if m := reChoiceLine.FindStringSubmatch(line); m != nil {
			que.Choices = append(que.Choices, quiz.Choice{
				Line:    p.cur.Line(),
				Text:    []string{m[2]},
				Correct: m[1] != " ",
			})
			p.cur.Next()
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
		if scan.Indent(line) > 0 {
			if len(que.Choices) == 0 {
				return &quiz.StructuralError{
					Line:     p.cur.Line(),
					Expected: "choice line (- [ ] ...)",
					Found:    strings.TrimSpace(line),
				}
			}
			choice := &que.Choices[len(que.Choices)-1]
			if m := reIndentedQuote.FindStringSubmatch(line); m != nil {
				choice.Feedback = append(choice.Feedback, m[1])
				p.cur.Next()
				continue
			}
			// Wrapped choice text. The canonical two-space continuation
			// indent is stripped; anything deeper belongs to the text.
			cont := line
			if strings.HasPrefix(cont, "  ") {
				cont = cont[2:]
			} else {
				cont = strings.TrimLeft(cont, " \t")
			}
			choice.Text = append(choice.Text, cont)
			p.cur.Next()
			continue
		}
		if strings.HasPrefix(line, ">") {
			break
		}
		return &quiz.StructuralError{
			Line:     p.cur.Line(),
			Expected: "next choice, choice feedback, question feedback, or question header",
			Found:    strings.TrimSpace(line),
		}
	}
	return nil
}

// parseNumericAnswer reads the "### Answer" section holding the single
// "= spec" line. A question without the section is left for the validator to
// flag as missing.
func (p *parser) parseNumericAnswer(que *quiz.Question) error {
	if !p.cur.More() || !reAnswerHeading.MatchString(p.cur.Peek()) {
		return nil
	}
	p.cur.Next()
	p.cur.SkipBlank()
	if p.cur.More() {
		if m := reNumericAnswer.FindStringSubmatch(p.cur.Peek()); m != nil {
			raw := strings.TrimSpace(m[1])
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
		}
	}
	return &quiz.MissingFieldError{
		Line:     p.cur.Line(),
		Question: que.Position,
		Field:    "numeric answer ('= ...' line)",
	}
}

// parseFillAnswers reads the "### Answers" bullet list of accepted strings.
func (p *parser) parseFillAnswers(que *quiz.Question) error {
	if !p.cur.More() || !reAnswerHeading.MatchString(p.cur.Peek()) {
		return nil
	}
	p.cur.Next()
	for p.cur.More() {
		line := p.cur.Peek()
		if strings.TrimSpace(line) == "" {
			p.cur.Next()
			continue
		}
		m := reBulletLine.FindStringSubmatch(line)
		if m == nil {
			break
		}
		que.FillAnswers = append(que.FillAnswers, m[1])
		p.cur.Next()
	}
	return nil
}

// parseFeedback reads the question-level feedback blockquote. A channel label
// switches the destination; unlabeled lines continue the current channel and
// default to General before any label appears.
func (p *parser) parseFeedback(que *quiz.Question) error {
	var current *[]string
	for p.cur.More() {
		line := p.cur.Peek()
		if strings.TrimSpace(line) == "" {
			p.cur.Next()
			continue
		}
		if !strings.HasPrefix(line, ">") {
			break
		}
		content := reQuoteLine.FindStringSubmatch(line)[1]
		if m := reFeedbackLabel.FindStringSubmatch(content); m != nil {
			switch strings.ToLower(m[1]) {
			case "correct":
				current = &que.Feedback.Correct
			case "incorrect":
				current = &que.Feedback.Incorrect
			case "general":
				current = &que.Feedback.General
			case "information":
				current = &que.Feedback.Information
			}
			content = m[2]
		} else if current == nil {
			current = &que.Feedback.General
		}
		*current = append(*current, content)
		p.cur.Next()
	}
	return nil
}

// parseTrailing consumes comments between a question's end and the next
// header, anchoring them to the finished question, or to the end of the file
// when no further question follows.
func (p *parser) parseTrailing(pos int) error {
	var pending []quiz.Annotation
	for p.cur.More() {
		line := p.cur.Peek()
		if strings.TrimSpace(line) == "" {
			p.cur.Next()
			continue
		}
		if reHeading2.MatchString(line) {
			for _, ann := range pending {
				ann.Anchor = quiz.Anchor{Site: quiz.SiteAfterQuestion, Question: pos}
				p.anns = append(p.anns, ann)
			}
			return nil
		}
		if isCommentStart(line) {
			ann, err := consumeComment(p.cur)
			if err != nil {
				return err
			}
			pending = append(pending, ann)
			continue
		}
		return &quiz.StructuralError{
			Line:     p.cur.Line(),
			Expected: "comment or next question header",
			Found:    strings.TrimSpace(line),
		}
	}
	for _, ann := range pending {
		ann.Anchor = quiz.Anchor{Site: quiz.SiteEndOfFile}
		p.anns = append(p.anns, ann)
	}
	return nil
}

// parseHeader splits a question header into number, title, points, and the
// attribute block. Gradeable kinds default to one point when none is given.
func parseHeader(pos int, text string, line int) (quiz.Question, error) {
	que := quiz.Question{Position: pos, Line: line}
	rest := strings.TrimSpace(text)

	am := reAttrs.FindStringSubmatchIndex(rest)
	if am == nil {
		return que, &quiz.StructuralError{
			Line:     line,
			Expected: "header attribute block {type=<kind>}",
			Found:    rest,
		}
	}
	attrText := rest[am[2]:am[3]]
	rest = strings.TrimSpace(rest[:am[0]])

	attrs := map[string]string{}
	for _, part := range strings.Split(attrText, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return que, &quiz.StructuralError{
				Line:     line,
				Expected: "key=value pair in attribute block",
				Found:    part,
			}
		}
		attrs[strings.ToLower(strings.TrimSpace(kv[0]))] = strings.TrimSpace(kv[1])
	}

	kindRaw, ok := attrs["type"]
	if !ok {
		return que, &quiz.StructuralError{
			Line:     line,
			Expected: "type=<kind> in attribute block",
			Found:    "{" + attrText + "}",
		}
	}
	kind := quiz.Kind(strings.ToLower(kindRaw))
	if !kind.Valid() {
		return que, &quiz.StructuralError{
			Line:     line,
			Expected: "question type, one of mc, ma, num, fill, essay, file, text",
			Found:    kindRaw,
		}
	}
	que.Kind = kind
	delete(attrs, "type")

	if m := reLeadingNumber.FindStringSubmatch(rest); m != nil {
		que.SourceNumber, _ = strconv.Atoi(m[1])
		rest = m[2]
	}
	if pm := rePoints.FindStringSubmatchIndex(rest); pm != nil {
		que.Points, _ = strconv.ParseFloat(rest[pm[2]:pm[3]], 64)
		que.HasPoints = true
		rest = strings.TrimSpace(rest[:pm[0]] + rest[pm[1]:])
	}
	if raw, ok := attrs["points"]; ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return que, &quiz.StructuralError{
				Line:     line,
				Expected: "numeric point value in attribute block",
				Found:    raw,
			}
		}
		que.Points, que.HasPoints = v, true
		delete(attrs, "points")
	}
	if !que.HasPoints && kind.Gradeable() {
		que.Points, que.HasPoints = 1, true
	}
	if len(attrs) > 0 {
		que.Attrs = attrs
	}
	que.Title = strings.TrimSpace(rest)
	return que, nil
}

// parseBool accepts the boolean spellings the option grammar allows.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
