// Package host implements the editor capabilities the annotator needs over
// the local filesystem and the system clipboard.
package host

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"colophon/pkg/annotate"

	"github.com/go-git/go-git/v5"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/zap"
)

var (
	// ErrBinaryDocument is returned when a file that looks binary is opened as a document.
	ErrBinaryDocument = errors.Base("binary file")
	// ErrDocumentTooLarge is returned when a file exceeds the size limit.
	ErrDocumentTooLarge = errors.Base("file too large")
	// ErrNoDocuments is returned when none of the requested files could be opened.
	ErrNoDocuments = errors.Base("no documents")
)

// DefaultMaxFileSizeKB bounds the files loaded as documents.
const DefaultMaxFileSizeKB = 1024

// Options configures a Workspace.
type Options struct {
	Roots         []string  // Workspace folders, in addition to git worktree detection.
	DetectGitRoot bool      // Fall back to the enclosing git worktree as the workspace root.
	MaxFileSizeKB int       // Larger files are not loaded. Zero means DefaultMaxFileSizeKB.
	LanguageID    string    // Overrides extension-based language detection when set.
	Clipboard     Clipboard // Defaults to SystemClipboard.
	Notify        io.Writer // Receives user notifications. Defaults to stderr.
	Logger        *zap.Logger
}

// Workspace is an annotate.Host backed by files on disk.
type Workspace struct {
	opts      Options
	roots     []string
	docs      []annotate.Document
	visible   []bool
	gitRoots  map[string]string
	clipboard Clipboard
	notify    io.Writer
	logger    *zap.Logger
}

var _ annotate.Host = (*Workspace)(nil)

// NewWorkspace returns an empty workspace.
func NewWorkspace(opts Options) (*Workspace, error) {
	if opts.MaxFileSizeKB <= 0 {
		opts.MaxFileSizeKB = DefaultMaxFileSizeKB
	}
	w := &Workspace{
		opts:      opts,
		gitRoots:  map[string]string{},
		clipboard: opts.Clipboard,
		notify:    opts.Notify,
		logger:    opts.Logger,
	}
	if w.clipboard == nil {
		w.clipboard = SystemClipboard{}
	}
	if w.notify == nil {
		w.notify = os.Stderr
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}

	for _, root := range opts.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.Errorf("resolving workspace root %s: %w", root, err)
		}
		w.roots = append(w.roots, filepath.Clean(abs))
	}
	// Longest first so nested folders win.
	sort.SliceStable(w.roots, func(i, j int) bool { return len(w.roots[i]) > len(w.roots[j]) })

	return w, nil
}

// Open loads entries as open documents. Binary and oversized files are
// skipped with a warning; any other read failure aborts.
func (w *Workspace) Open(entries []Entry) error {
	for _, entry := range entries {
		doc, err := w.LoadDocument(entry.Path)
		if err != nil {
			if errors.Is(err, ErrBinaryDocument) || errors.Is(err, ErrDocumentTooLarge) {
				w.logger.Warn("Skipping file", zap.String("path", entry.Path), zap.Error(err))
				continue
			}
			return err
		}
		w.docs = append(w.docs, doc)
		w.visible = append(w.visible, entry.Visible)
	}

	if len(entries) > 0 && len(w.docs) == 0 {
		return errors.Errorf("%w: none of %d files could be opened", ErrNoDocuments, len(entries))
	}
	w.logger.Debug("Opened documents", zap.Int("documents", len(w.docs)))
	return nil
}

// LoadDocument reads a file into a Document.
func (w *Workspace) LoadDocument(path string) (annotate.Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return annotate.Document{}, errors.Errorf("resolving %s: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return annotate.Document{}, errors.Errorf("accessing %s: %w", path, err)
	}
	if info.Size() > int64(w.opts.MaxFileSizeKB)*1024 {
		return annotate.Document{}, errors.Errorf("%w: %s is %d bytes, limit is %d KB", ErrDocumentTooLarge, path, info.Size(), w.opts.MaxFileSizeKB)
	}

	isBinary, err := IsBinaryFile(absPath)
	if err != nil {
		return annotate.Document{}, err
	}
	if isBinary {
		return annotate.Document{}, errors.Errorf("%w: %s", ErrBinaryDocument, path)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return annotate.Document{}, errors.Errorf("reading %s: %w", path, err)
	}

	lang := w.opts.LanguageID
	if lang == "" {
		lang = LanguageForPath(absPath)
	}

	text := string(content)
	return annotate.Document{
		Path:       absPath,
		LanguageID: lang,
		LineCount:  annotate.CountLines(text),
		Text:       text,
		IsOpen:     true,
	}, nil
}

// ListDocuments returns every open document in the order it was opened.
func (w *Workspace) ListDocuments() ([]annotate.Document, error) {
	docs := make([]annotate.Document, len(w.docs))
	copy(docs, w.docs)
	return docs, nil
}

// ListVisibleEditors returns the documents that were named directly.
func (w *Workspace) ListVisibleEditors() ([]annotate.Document, error) {
	var docs []annotate.Document
	for i, doc := range w.docs {
		if w.visible[i] {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (w *Workspace) ReadClipboard() (string, error) {
	return w.clipboard.ReadAll()
}

func (w *Workspace) WriteClipboard(text string) error {
	return w.clipboard.WriteAll(text)
}

// Notify shows a message to the user.
func (w *Workspace) Notify(message string) {
	w.logger.Info("Notification", zap.String("message", message))
	fmt.Fprintln(w.notify, message)
}

// ResolveWorkspaceRoot returns the workspace folder that contains path. The
// configured roots are tried first, then the enclosing git worktree.
func (w *Workspace) ResolveWorkspaceRoot(path string) (string, bool) {
	for _, root := range w.roots {
		if isWithin(root, path) {
			return root, true
		}
	}

	if !w.opts.DetectGitRoot {
		return "", false
	}
	return w.gitRoot(filepath.Dir(path))
}

// gitRoot finds the worktree root of the repository enclosing dir.
func (w *Workspace) gitRoot(dir string) (string, bool) {
	if root, ok := w.gitRoots[dir]; ok {
		return root, root != ""
	}

	root := ""
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		w.logger.Debug("No git repository found", zap.String("dir", dir), zap.Error(err))
	} else if wt, err := repo.Worktree(); err != nil {
		w.logger.Debug("Repository has no worktree", zap.String("dir", dir), zap.Error(err))
	} else {
		root = wt.Filesystem.Root()
	}

	w.gitRoots[dir] = root
	return root, root != ""
}

// RemoveSelection deletes the selected lines of doc from its file, the way
// an editor completes a cut.
func (w *Workspace) RemoveSelection(doc annotate.Document, sel annotate.Selection) error {
	lines := strings.SplitAfter(doc.Text, "\n")
	if sel.StartLine < 0 || sel.EndLine >= len(lines) || sel.EndLine < sel.StartLine {
		return errors.Errorf("%w: lines %d-%d of %s", annotate.ErrInvalidSelection, sel.StartLine, sel.EndLine, doc.Path)
	}

	remaining := strings.Join(lines[:sel.StartLine], "") + strings.Join(lines[sel.EndLine+1:], "")

	info, err := os.Stat(doc.Path)
	if err != nil {
		return errors.Errorf("accessing %s: %w", doc.Path, err)
	}
	if err := os.WriteFile(doc.Path, []byte(remaining), info.Mode().Perm()); err != nil {
		return errors.Errorf("writing %s: %w", doc.Path, err)
	}

	w.logger.Debug("Removed selection from file",
		zap.String("path", doc.Path),
		zap.Int("startLine", sel.StartLine),
		zap.Int("endLine", sel.EndLine))
	return nil
}

// isWithin reports whether path lies inside root.
func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
