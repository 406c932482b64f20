package quiz

// Site names a structural position an annotation can anchor to. Anchors are
// resolved against the quiz model, never against source line numbers, so a
// comment keeps its place even when the surrounding text is re-serialized in
// the other format.
type Site int

const (
	// SiteBeforeDescription anchors between the quiz title and the description.
	SiteBeforeDescription Site = iota
	// SiteAfterDescription anchors after the description, before the options block.
	SiteAfterDescription
	// SiteAfterOptions anchors between the options block and the first question.
	SiteAfterOptions
	// SiteAfterPrompt anchors between a question's prompt and its payload.
	SiteAfterPrompt
	// SiteAfterChoice anchors directly after choice k of a question.
	SiteAfterChoice
	// SiteAfterQuestion anchors after a question's payload and feedback.
	SiteAfterQuestion
	// SiteEndOfFile anchors comments trailing the final structural element.
	SiteEndOfFile
)

// Anchor points an annotation at a structural position. Question and Choice
// are 1-based ordinals and are zero when the site does not need them.
type Anchor struct {
	Site     Site
	Question int
	Choice   int
}

// Annotation is one comment captured out-of-band. Lines holds the comment
// text without markers; Block distinguishes a delimited multi-line comment
// from a single-line one. BlankBefore records whether the source had a blank
// line before the comment; writers re-emit exactly one blank line when it is
// set and none otherwise, regardless of how many the source had.
type Annotation struct {
	Anchor      Anchor
	Lines       []string
	Block       bool
	BlankBefore bool
}

// Annotations is the comment/spacing side-channel produced by a reader and
// consumed by a writer, kept in document order.
type Annotations []Annotation

// At returns the annotations anchored to the given position, in order.
func (a Annotations) At(anchor Anchor) []Annotation {
	var out []Annotation
	for _, ann := range a {
		if ann.Anchor == anchor {
			out = append(out, ann)
		}
	}
	return out
}
