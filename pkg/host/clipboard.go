package host

import (
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"gitlab.com/tozd/go/errors"
)

// Clipboard is where copied text ends up.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard is the desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("system clipboard is not supported on this platform")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", errors.Errorf("reading system clipboard: %w", err)
	}
	return text, nil
}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("system clipboard is not supported on this platform")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Errorf("writing system clipboard: %w", err)
	}
	return nil
}

// WriterClipboard prints copied text to a writer, typically stdout.
// It remembers the last text written so ReadAll can return it.
type WriterClipboard struct {
	w    io.Writer
	last string
}

// NewWriterClipboard returns a clipboard that writes to w.
func NewWriterClipboard(w io.Writer) *WriterClipboard {
	return &WriterClipboard{w: w}
}

func (c *WriterClipboard) ReadAll() (string, error) {
	return c.last, nil
}

func (c *WriterClipboard) WriteAll(text string) error {
	out := text
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	if _, err := io.WriteString(c.w, out); err != nil {
		return errors.Errorf("writing clipboard output: %w", err)
	}
	c.last = text
	return nil
}
