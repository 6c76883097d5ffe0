// File: pkg/annotate/types.go
package annotate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelection is returned when a line range does not fit the document.
var ErrInvalidSelection = errors.New("invalid selection")

// Document is a read-only view of a buffer supplied by the host.
type Document struct {
	Path       string // Absolute path of the backing file.
	LanguageID string // Language identifier used to pick comment delimiters.
	LineCount  int    // Number of lines as the editor counts them.
	Text       string // Full text of the document.
	IsOpen     bool   // False once the host has closed the document.
}

// Selection is a contiguous range of lines within a document.
type Selection struct {
	StartLine int    // First selected line (0-based).
	EndLine   int    // Last selected line (0-based, inclusive).
	Text      string // The selected text.
}

// Lines returns the number of lines the selection spans.
func (s Selection) Lines() int {
	return s.EndLine - s.StartLine + 1
}

// Host is the set of editor capabilities the annotator depends on.
type Host interface {
	ListDocuments() ([]Document, error)
	ListVisibleEditors() ([]Document, error)
	ReadClipboard() (string, error)
	WriteClipboard(text string) error
	Notify(message string)
	ResolveWorkspaceRoot(path string) (string, bool)
}

// CountLines counts lines the way an editor does: a trailing newline
// opens one more, empty line.
func CountLines(text string) int {
	return strings.Count(text, "\n") + 1
}

// Select builds the selection covering lines start through end (0-based, inclusive).
func (d Document) Select(start, end int) (Selection, error) {
	if start < 0 || end < start || end >= d.LineCount {
		return Selection{}, fmt.Errorf("%w: lines %d-%d of %d", ErrInvalidSelection, start, end, d.LineCount)
	}

	lines := strings.SplitAfter(d.Text, "\n")
	if end >= len(lines) {
		return Selection{}, fmt.Errorf("%w: line %d beyond end of text", ErrInvalidSelection, end)
	}
	return Selection{
		StartLine: start,
		EndLine:   end,
		Text:      strings.TrimSuffix(strings.Join(lines[start:end+1], ""), "\n"),
	}, nil
}

// SelectAll selects the whole document.
func (d Document) SelectAll() Selection {
	end := d.LineCount - 1
	if end < 0 {
		end = 0
	}
	return Selection{StartLine: 0, EndLine: end, Text: d.Text}
}
