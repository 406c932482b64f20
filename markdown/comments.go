package markdown

import (
	"regexp"
	"strings"

	"github.com/tpavlic/md2qti/internal/scan"
	"github.com/tpavlic/md2qti/quiz"
)

var (
	reCommentSingle = regexp.MustCompile(`^\s*<!--\s*(.*?)\s*-->\s*$`)
	reCommentOpen   = regexp.MustCompile(`^\s*<!--\s*$`)
	reCommentClose  = regexp.MustCompile(`^\s*-->\s*$`)
)

// isCommentStart reports whether line opens an HTML comment, either the
// single-line form or the first line of a block.
func isCommentStart(line string) bool {
	return reCommentSingle.MatchString(line) || reCommentOpen.MatchString(line)
}

// consumeComment reads one HTML comment from the cursor, recording whether a
// blank line preceded it. The anchor is left for the caller to assign. An
// unterminated block comment is a structural error rather than being silently
// closed at end of input.
func consumeComment(cur *scan.Cursor) (quiz.Annotation, error) {
	ann := quiz.Annotation{BlankBefore: cur.PrevBlank()}

	line := cur.Peek()
	if m := reCommentSingle.FindStringSubmatch(line); m != nil {
		cur.Next()
		ann.Lines = []string{m[1]}
		return ann, nil
	}

	openLine := cur.Line()
	cur.Next()
	ann.Block = true
	for cur.More() {
		if reCommentClose.MatchString(cur.Peek()) {
			cur.Next()
			return ann, nil
		}
		ann.Lines = append(ann.Lines, cur.Next())
	}
	return quiz.Annotation{}, &quiz.StructuralError{
		Line:     openLine,
		Expected: "closing '-->' for comment block",
		Found:    "end of input",
	}
}

// writeComment renders an annotation back to its HTML form, honoring the
// blank-line-before flag: exactly one blank line when set, none otherwise.
func writeComment(out *[]string, ann quiz.Annotation) {
	if ann.BlankBefore {
		ensureBlank(out)
	}
	if !ann.Block {
		text := ""
		if len(ann.Lines) > 0 {
			text = ann.Lines[0]
		}
		*out = append(*out, "<!-- "+text+" -->")
		return
	}
	*out = append(*out, "<!--")
	*out = append(*out, ann.Lines...)
	*out = append(*out, "-->")
}

// ensureBlank appends a blank line unless the output already ends with one.
func ensureBlank(out *[]string) {
	if len(*out) > 0 && strings.TrimSpace((*out)[len(*out)-1]) != "" {
		*out = append(*out, "")
	}
}
