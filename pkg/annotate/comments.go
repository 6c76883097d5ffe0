// File: pkg/annotate/comments.go
package annotate

// CommentStyle holds the delimiters of a single-line comment.
// End is empty for languages whose comments run to the end of the line.
type CommentStyle struct {
	Start string
	End   string
}

var (
	slashStyle  = CommentStyle{Start: "//"}
	hashStyle   = CommentStyle{Start: "#"}
	markupStyle = CommentStyle{Start: "<!--", End: "-->"}
	blockStyle  = CommentStyle{Start: "/*", End: "*/"}
)

// commentStyles maps language identifiers to their comment delimiters.
var commentStyles = map[string]CommentStyle{
	"javascript": slashStyle,
	"typescript": slashStyle,
	"java":       slashStyle,
	"c":          slashStyle,
	"cpp":        slashStyle,
	"python":     hashStyle,
	"html":       markupStyle,
	"xml":        markupStyle,
	"css":        blockStyle,
}

// CommentStyleFor returns the comment delimiters for a language identifier,
// falling back to "//" for anything unlisted.
func CommentStyleFor(languageID string) CommentStyle {
	if style, ok := commentStyles[languageID]; ok {
		return style
	}
	return slashStyle
}

// Wrap renders text as a comment line.
func (c CommentStyle) Wrap(text string) string {
	if c.End != "" {
		return c.Start + " " + text + " " + c.End
	}
	return c.Start + " " + text
}
