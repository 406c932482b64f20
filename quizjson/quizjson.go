// Package quizjson provides a JSON interchange form of the quiz model,
// validated against an embedded JSON Schema (draft 2020-12). It exists for
// tooling that wants to inspect or generate quizzes without touching either
// surface grammar; both text formats remain the source of truth.
package quizjson

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tpavlic/md2qti/quiz"
	"github.com/tpavlic/md2qti/validate"
)

//go:embed schema.json
var schemaSource []byte

// ErrSchema marks documents rejected by the embedded JSON Schema.
var ErrSchema = errors.New("quizjson: schema validation failed")

// Issue captures a single schema validation failure.
type Issue struct {
	Location string
	Message  string
}

// SchemaError surfaces the individual schema violations of a document.
type SchemaError struct {
	Issues []Issue
	Cause  error
}

func (e *SchemaError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchema.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// Document is the top-level interchange shape.
type Document struct {
	Title       string       `json:"title"`
	Description []string     `json:"description,omitempty"`
	Options     []Option     `json:"options,omitempty"`
	Questions   []Question   `json:"questions"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Option is a quiz-level option assignment.
type Option struct {
	Name  string `json:"name"`
	Value bool   `json:"value"`
}

// Question is one quiz item. Points is a pointer so text regions can omit it.
type Question struct {
	Kind        string            `json:"type"`
	Title       string            `json:"title,omitempty"`
	Points      *float64          `json:"points,omitempty"`
	Prompt      []string          `json:"prompt,omitempty"`
	Choices     []Choice          `json:"choices,omitempty"`
	Numeric     *Numeric          `json:"numeric,omitempty"`
	FillAnswers []string          `json:"answers,omitempty"`
	Feedback    *Feedback         `json:"feedback,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
}

// Choice is one entry of a choice question.
type Choice struct {
	Text     []string `json:"text"`
	Correct  bool     `json:"correct,omitempty"`
	Feedback []string `json:"feedback,omitempty"`
}

// Numeric mirrors the numeric answer spec with its source spellings.
type Numeric struct {
	Form      string `json:"form"`
	Value     string `json:"value,omitempty"`
	Tolerance string `json:"tolerance,omitempty"`
	Percent   bool   `json:"percent,omitempty"`
	Low       string `json:"low,omitempty"`
	High      string `json:"high,omitempty"`
}

// Feedback mirrors the question-level feedback channels.
type Feedback struct {
	Correct     []string `json:"correct,omitempty"`
	Incorrect   []string `json:"incorrect,omitempty"`
	General     []string `json:"general,omitempty"`
	Information []string `json:"information,omitempty"`
}

// Annotation is one captured comment with its anchor flattened to JSON.
type Annotation struct {
	Site        string   `json:"site"`
	Question    int      `json:"question,omitempty"`
	Choice      int      `json:"choice,omitempty"`
	Lines       []string `json:"lines,omitempty"`
	Block       bool     `json:"block,omitempty"`
	BlankBefore bool     `json:"blank_before,omitempty"`
}

// Encode serializes a quiz and its annotations to indented interchange JSON.
func Encode(q *quiz.Quiz, anns quiz.Annotations) ([]byte, error) {
	doc := fromModel(q, anns)
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses interchange JSON, validates it against the embedded schema
// and the shared semantic rules, and returns the quiz model.
func Decode(data []byte) (*quiz.Quiz, quiz.Annotations, error) {
	if err := validateSchema(data); err != nil {
		return nil, nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("quizjson: decode: %w", err)
	}
	q, anns, err := doc.toModel()
	if err != nil {
		return nil, nil, err
	}
	if err := validate.Quiz(q); err != nil {
		return nil, nil, err
	}
	return q, anns, nil
}

func validateSchema(data []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaSource)); err != nil {
		return fmt.Errorf("quizjson: schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("quizjson: schema compile: %w", err)
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("quizjson: decode: %w", err)
	}
	if err := compiled.Validate(payload); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &SchemaError{Issues: collectIssues(validationErr), Cause: err}
		}
		return &SchemaError{Cause: err}
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

func fromModel(q *quiz.Quiz, anns quiz.Annotations) Document {
	doc := Document{
		Title:       q.Title,
		Description: q.Description,
		Questions:   make([]Question, 0, len(q.Questions)),
	}
	for _, opt := range q.Options {
		doc.Options = append(doc.Options, Option{Name: string(opt.Name), Value: opt.Value})
	}
	for i := range q.Questions {
		doc.Questions = append(doc.Questions, questionFromModel(&q.Questions[i]))
	}
	for _, ann := range anns {
		doc.Annotations = append(doc.Annotations, Annotation{
			Site:        siteName(ann.Anchor.Site),
			Question:    ann.Anchor.Question,
			Choice:      ann.Anchor.Choice,
			Lines:       ann.Lines,
			Block:       ann.Block,
			BlankBefore: ann.BlankBefore,
		})
	}
	return doc
}

func questionFromModel(que *quiz.Question) Question {
	out := Question{
		Kind:        string(que.Kind),
		Title:       que.Title,
		Prompt:      que.Prompt,
		FillAnswers: que.FillAnswers,
		Attrs:       que.Attrs,
	}
	if que.HasPoints {
		points := que.Points
		out.Points = &points
	}
	for _, c := range que.Choices {
		out.Choices = append(out.Choices, Choice{Text: c.Text, Correct: c.Correct, Feedback: c.Feedback})
	}
	if que.Numeric != nil {
		out.Numeric = &Numeric{
			Form:      formName(que.Numeric.Form),
			Value:     que.Numeric.Value,
			Tolerance: que.Numeric.Tolerance,
			Percent:   que.Numeric.Percent,
			Low:       que.Numeric.Low,
			High:      que.Numeric.High,
		}
	}
	if !que.Feedback.Empty() {
		out.Feedback = &Feedback{
			Correct:     que.Feedback.Correct,
			Incorrect:   que.Feedback.Incorrect,
			General:     que.Feedback.General,
			Information: que.Feedback.Information,
		}
	}
	return out
}

func (doc Document) toModel() (*quiz.Quiz, quiz.Annotations, error) {
	q := &quiz.Quiz{Title: doc.Title, Description: doc.Description}
	for _, opt := range doc.Options {
		name, ok := quiz.NormalizeOptionName(opt.Name)
		if !ok {
			return nil, nil, &quiz.StructuralError{
				Expected: "recognized quiz option",
				Found:    opt.Name,
			}
		}
		q.Options = append(q.Options, quiz.Option{Name: name, Value: opt.Value})
	}
	for i, dq := range doc.Questions {
		que, err := dq.toModel(i + 1)
		if err != nil {
			return nil, nil, err
		}
		q.Questions = append(q.Questions, que)
	}
	var anns quiz.Annotations
	for _, ann := range doc.Annotations {
		site, ok := siteFromName(ann.Site)
		if !ok {
			return nil, nil, &quiz.StructuralError{
				Expected: "recognized annotation site",
				Found:    ann.Site,
			}
		}
		anns = append(anns, quiz.Annotation{
			Anchor:      quiz.Anchor{Site: site, Question: ann.Question, Choice: ann.Choice},
			Lines:       ann.Lines,
			Block:       ann.Block,
			BlankBefore: ann.BlankBefore,
		})
	}
	return q, anns, nil
}

func (dq Question) toModel(pos int) (quiz.Question, error) {
	que := quiz.Question{
		Position:    pos,
		Title:       dq.Title,
		Kind:        quiz.Kind(dq.Kind),
		Prompt:      dq.Prompt,
		FillAnswers: dq.FillAnswers,
		Attrs:       dq.Attrs,
	}
	if dq.Points != nil {
		que.Points, que.HasPoints = *dq.Points, true
	} else if que.Kind.Gradeable() {
		que.Points, que.HasPoints = 1, true
	}
	for _, c := range dq.Choices {
		que.Choices = append(que.Choices, quiz.Choice{Text: c.Text, Correct: c.Correct, Feedback: c.Feedback})
	}
	if dq.Numeric != nil {
		form, ok := formFromName(dq.Numeric.Form)
		if !ok {
			return que, &quiz.StructuralError{
				Expected: "numeric form: exact, tolerance, or range",
				Found:    dq.Numeric.Form,
			}
		}
		que.Numeric = &quiz.Numeric{
			Form:      form,
			Value:     dq.Numeric.Value,
			Tolerance: dq.Numeric.Tolerance,
			Percent:   dq.Numeric.Percent,
			Low:       dq.Numeric.Low,
			High:      dq.Numeric.High,
		}
	}
	if dq.Feedback != nil {
		que.Feedback = quiz.Feedback{
			Correct:     dq.Feedback.Correct,
			Incorrect:   dq.Feedback.Incorrect,
			General:     dq.Feedback.General,
			Information: dq.Feedback.Information,
		}
	}
	return que, nil
}

func siteName(site quiz.Site) string {
	switch site {
	case quiz.SiteBeforeDescription:
		return "before_description"
	case quiz.SiteAfterDescription:
		return "after_description"
	case quiz.SiteAfterOptions:
		return "after_options"
	case quiz.SiteAfterPrompt:
		return "after_prompt"
	case quiz.SiteAfterChoice:
		return "after_choice"
	case quiz.SiteAfterQuestion:
		return "after_question"
	default:
		return "end_of_file"
	}
}

func siteFromName(name string) (quiz.Site, bool) {
	switch name {
	case "before_description":
		return quiz.SiteBeforeDescription, true
	case "after_description":
		return quiz.SiteAfterDescription, true
	case "after_options":
		return quiz.SiteAfterOptions, true
	case "after_prompt":
		return quiz.SiteAfterPrompt, true
	case "after_choice":
		return quiz.SiteAfterChoice, true
	case "after_question":
		return quiz.SiteAfterQuestion, true
	case "end_of_file":
		return quiz.SiteEndOfFile, true
	}
	return 0, false
}

func formName(form quiz.NumericForm) string {
	switch form {
	case quiz.NumericTolerance:
		return "tolerance"
	case quiz.NumericRange:
		return "range"
	default:
		return "exact"
	}
}

func formFromName(name string) (quiz.NumericForm, bool) {
	switch name {
	case "exact":
		return quiz.NumericExact, true
	case "tolerance":
		return quiz.NumericTolerance, true
	case "range":
		return quiz.NumericRange, true
	}
	return 0, false
}
