// File: pkg/annotate/annotate.go
package annotate

import (
	"fmt"
	"path/filepath"
	"strings"

	"colophon/pkg/config"

	"go.uber.org/zap"
)

// fileSeparator follows every file in a concatenated payload.
const fileSeparator = "\n\n"

// Annotator decides which copies get a file header and builds the clipboard payloads.
type Annotator struct {
	host   Host
	logger *zap.Logger
}

// New returns an Annotator bound to host.
func New(host Host, logger *zap.Logger) *Annotator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Annotator{host: host, logger: logger}
}

// ShouldInclude reports whether the file at path qualifies for annotation.
// Ignore patterns are checked before file patterns.
func ShouldInclude(path string, cfg *config.Config) bool {
	return newPathMatcher(cfg).include(path)
}

// BuildHeader returns the comment line naming doc, followed by a blank line.
func (a *Annotator) BuildHeader(doc Document, cfg *config.Config) string {
	return CommentStyleFor(doc.LanguageID).Wrap(a.displayPath(doc, cfg)) + "\n\n"
}

// displayPath is the workspace-relative path when requested and resolvable,
// the base name otherwise.
func (a *Annotator) displayPath(doc Document, cfg *config.Config) string {
	name := filepath.Base(doc.Path)
	if !cfg.UseRelativePath {
		return name
	}

	root, ok := a.host.ResolveWorkspaceRoot(doc.Path)
	if !ok {
		a.logger.Debug("No workspace root for document, using base name", zap.String("path", doc.Path))
		return name
	}

	rel, err := filepath.Rel(root, doc.Path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		a.logger.Debug("Document outside workspace root",
			zap.String("path", doc.Path),
			zap.String("root", root))
		return name
	}
	return normalizePath(rel)
}

// SelectionPercentage is the share of doc's lines covered by sel, from 0 to 100.
// An empty document counts as fully selected.
func SelectionPercentage(doc Document, sel Selection) float64 {
	if doc.LineCount <= 0 {
		return 100
	}
	// Scale before dividing so whole percentages come out exact.
	return float64(sel.Lines()*100) / float64(doc.LineCount)
}

// CopySelection returns the clipboard text for a copy of sel and whether a
// header was prepended.
func (a *Annotator) CopySelection(doc Document, sel Selection, cfg *config.Config) (string, bool) {
	if !ShouldInclude(doc.Path, cfg) {
		a.logger.Debug("Document excluded, copying selection as is", zap.String("path", doc.Path))
		return sel.Text, false
	}

	percentage := SelectionPercentage(doc, sel)
	if percentage < cfg.MinimumCopyPercentage {
		a.logger.Debug("Selection below threshold",
			zap.String("path", doc.Path),
			zap.Float64("percentage", percentage),
			zap.Float64("minimum", cfg.MinimumCopyPercentage))
		return sel.Text, false
	}

	return a.BuildHeader(doc, cfg) + sel.Text, true
}

// Copy writes the payload for sel to the clipboard. With appendMode the
// payload follows the current clipboard contents after a blank line.
func (a *Annotator) Copy(doc Document, sel Selection, cfg *config.Config, appendMode bool) (bool, error) {
	text, annotated := a.CopySelection(doc, sel, cfg)

	if appendMode {
		existing, err := a.host.ReadClipboard()
		if err != nil {
			a.logger.Error("Failed to read clipboard", zap.Error(err))
			return false, fmt.Errorf("failed to read clipboard: %w", err)
		}
		if existing != "" {
			text = existing + fileSeparator + text
		}
	}

	if err := a.host.WriteClipboard(text); err != nil {
		a.logger.Error("Failed to write clipboard", zap.String("path", doc.Path), zap.Error(err))
		return false, fmt.Errorf("failed to write clipboard: %w", err)
	}

	a.logger.Info("Copied selection",
		zap.String("path", doc.Path),
		zap.Int("lines", sel.Lines()),
		zap.Bool("annotated", annotated))
	return annotated, nil
}

// ConcatenateOpenFiles joins every qualifying document, each preceded by its
// header, and returns the text with the number of documents included.
// Closed documents are skipped unless the document set is "all".
func (a *Annotator) ConcatenateOpenFiles(docs []Document, cfg *config.Config) (string, int) {
	var out strings.Builder
	count := 0
	matcher := newPathMatcher(cfg)

	for _, doc := range docs {
		if !doc.IsOpen && cfg.DocumentSet != config.DocumentSetAll {
			a.logger.Debug("Skipping closed document", zap.String("path", doc.Path))
			continue
		}
		if !matcher.include(doc.Path) {
			a.logger.Debug("Skipping excluded document", zap.String("path", doc.Path))
			continue
		}

		out.WriteString(a.BuildHeader(doc, cfg))
		out.WriteString(doc.Text)
		out.WriteString(fileSeparator)
		count++
	}

	return strings.TrimSuffix(out.String(), fileSeparator), count
}

// CopyAllOpenFiles concatenates the configured document set into the
// clipboard and tells the user how many files it took.
func (a *Annotator) CopyAllOpenFiles(cfg *config.Config) (int, error) {
	docs, err := a.documents(cfg)
	if err != nil {
		a.logger.Error("Failed to list documents", zap.Error(err))
		return 0, fmt.Errorf("failed to list documents: %w", err)
	}

	text, count := a.ConcatenateOpenFiles(docs, cfg)
	if err := a.host.WriteClipboard(text); err != nil {
		a.logger.Error("Failed to write clipboard", zap.Error(err))
		return 0, fmt.Errorf("failed to write clipboard: %w", err)
	}

	a.host.Notify(fmt.Sprintf("%d open files copied with comments.", count))
	a.logger.Info("Copied open files",
		zap.Int("candidates", len(docs)),
		zap.Int("included", count))
	return count, nil
}

// documents returns the candidate set selected by cfg.DocumentSet.
func (a *Annotator) documents(cfg *config.Config) ([]Document, error) {
	if cfg.DocumentSet == config.DocumentSetVisible {
		return a.host.ListVisibleEditors()
	}
	return a.host.ListDocuments()
}
