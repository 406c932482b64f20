package plaintext

import (
	"strings"

	"github.com/tpavlic/md2qti/internal/scan"
	"github.com/tpavlic/md2qti/quiz"
)

// isCommentStart reports whether line opens a comment: a "%" line comment or
// the COMMENT marker of a delimited block.
func isCommentStart(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "%") || trimmed == "COMMENT"
}

// consumeComment reads one comment from the cursor, recording whether a blank
// line preceded it. Line comments drop the "%" marker and one optional space;
// block comment bodies are kept verbatim.
func consumeComment(cur *scan.Cursor) (quiz.Annotation, error) {
	ann := quiz.Annotation{BlankBefore: cur.PrevBlank()}

	line := cur.Peek()
	if trimmed := strings.TrimLeft(line, " \t"); strings.HasPrefix(trimmed, "%") {
		cur.Next()
		content := trimmed[1:]
		content = strings.TrimPrefix(content, " ")
		ann.Lines = []string{content}
		return ann, nil
	}

	openLine := cur.Line()
	cur.Next()
	ann.Block = true
	for cur.More() {
		if strings.TrimSpace(cur.Peek()) == "END_COMMENT" {
			cur.Next()
			return ann, nil
		}
		ann.Lines = append(ann.Lines, cur.Next())
	}
	return quiz.Annotation{}, &quiz.StructuralError{
		Line:     openLine,
		Expected: "END_COMMENT closing the comment block",
		Found:    "end of input",
	}
}

// writeComment renders an annotation in plaintext form, honoring the
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
		*out = append(*out, "% "+text)
		return
	}
	*out = append(*out, "COMMENT")
	*out = append(*out, ann.Lines...)
	*out = append(*out, "END_COMMENT")
}

// ensureBlank appends a blank line unless the output already ends with one.
func ensureBlank(out *[]string) {
	if len(*out) > 0 && strings.TrimSpace((*out)[len(*out)-1]) != "" {
		*out = append(*out, "")
	}
}
