package host

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"colophon/pkg/annotate"
	"colophon/pkg/config"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, content []byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func newTestWorkspace(t *testing.T, opts Options) (*Workspace, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	notes := &bytes.Buffer{}
	if opts.Clipboard == nil {
		opts.Clipboard = NewWriterClipboard(out)
	}
	opts.Notify = notes
	ws, err := NewWorkspace(opts)
	require.NoError(t, err)
	return ws, out, notes
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "src", "app.py"), []byte("import os\nprint(os.name)\n"))
	ws, _, _ := newTestWorkspace(t, Options{})

	doc, err := ws.LoadDocument(path)

	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "python", doc.LanguageID)
	assert.Equal(t, 3, doc.LineCount)
	assert.Equal(t, "import os\nprint(os.name)\n", doc.Text)
	assert.True(t, doc.IsOpen)
}

func TestLoadDocument_LanguageOverride(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "page.tmpl"), []byte("<p></p>"))
	ws, _, _ := newTestWorkspace(t, Options{LanguageID: "html"})

	doc, err := ws.LoadDocument(path)

	require.NoError(t, err)
	assert.Equal(t, "html", doc.LanguageID)
}

func TestLoadDocument_Rejections(t *testing.T) {
	dir := t.TempDir()
	binary := writeFile(t, filepath.Join(dir, "image.bin"), []byte{0x89, 'P', 'N', 'G', 0x00, 0x01})
	large := writeFile(t, filepath.Join(dir, "large.txt"), bytes.Repeat([]byte("a"), 2048))
	ws, _, _ := newTestWorkspace(t, Options{MaxFileSizeKB: 1})

	_, err := ws.LoadDocument(binary)
	assert.ErrorIs(t, err, ErrBinaryDocument)

	_, err = ws.LoadDocument(large)
	assert.ErrorIs(t, err, ErrDocumentTooLarge)

	_, err = ws.LoadDocument(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_SkipsBinaryAndTracksVisibility(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.go"), []byte("package a"))
	b := writeFile(t, filepath.Join(dir, "b.go"), []byte("package b"))
	bin := writeFile(t, filepath.Join(dir, "c.bin"), []byte{0, 0, 0})
	ws, _, _ := newTestWorkspace(t, Options{})

	err := ws.Open([]Entry{{Path: a, Visible: true}, {Path: bin, Visible: true}, {Path: b}})
	require.NoError(t, err)

	docs, err := ws.ListDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, a, docs[0].Path)
	assert.Equal(t, b, docs[1].Path)

	visible, err := ws.ListVisibleEditors()
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, a, visible[0].Path)
}

func TestOpen_NothingReadable(t *testing.T) {
	bin := writeFile(t, filepath.Join(t.TempDir(), "c.bin"), []byte{0, 1, 2})
	ws, _, _ := newTestWorkspace(t, Options{})

	err := ws.Open([]Entry{{Path: bin}})

	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestResolveWorkspaceRoot_ConfiguredRoots(t *testing.T) {
	dir := t.TempDir()
	outer := filepath.Join(dir, "repo")
	inner := filepath.Join(outer, "packages", "web")
	ws, _, _ := newTestWorkspace(t, Options{Roots: []string{outer, inner}})

	root, ok := ws.ResolveWorkspaceRoot(filepath.Join(inner, "src", "index.ts"))
	assert.True(t, ok)
	assert.Equal(t, inner, root)

	root, ok = ws.ResolveWorkspaceRoot(filepath.Join(outer, "README.md"))
	assert.True(t, ok)
	assert.Equal(t, outer, root)

	_, ok = ws.ResolveWorkspaceRoot(filepath.Join(dir, "repo-other", "x.go"))
	assert.False(t, ok)
}

func TestResolveWorkspaceRoot_GitWorktree(t *testing.T) {
	repoDir := t.TempDir()
	_, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)
	file := writeFile(t, filepath.Join(repoDir, "cmd", "main.go"), []byte("package main"))

	ws, _, _ := newTestWorkspace(t, Options{DetectGitRoot: true})
	root, ok := ws.ResolveWorkspaceRoot(file)
	assert.True(t, ok)
	assert.Equal(t, repoDir, root)

	disabled, _, _ := newTestWorkspace(t, Options{})
	_, ok = disabled.ResolveWorkspaceRoot(file)
	assert.False(t, ok)
}

func TestWorkspaceAsHost(t *testing.T) {
	repoDir := t.TempDir()
	a := writeFile(t, filepath.Join(repoDir, "src", "a.py"), []byte("a = 1"))
	b := writeFile(t, filepath.Join(repoDir, "index.html"), []byte("<p>b</p>"))
	ws, out, notes := newTestWorkspace(t, Options{Roots: []string{repoDir}})
	require.NoError(t, ws.Open([]Entry{{Path: a, Visible: true}, {Path: b, Visible: true}}))

	count, err := annotate.New(ws, nil).CopyAllOpenFiles(config.Default())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "# src/a.py\n\na = 1\n\n<!-- index.html -->\n\n<p>b</p>\n", out.String())
	assert.Equal(t, "2 open files copied with comments.\n", notes.String())
}

func TestRemoveSelection(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "list.txt"), []byte("one\ntwo\nthree\nfour\n"))
	ws, _, _ := newTestWorkspace(t, Options{})
	doc, err := ws.LoadDocument(path)
	require.NoError(t, err)
	sel, err := doc.Select(1, 2)
	require.NoError(t, err)

	require.NoError(t, ws.RemoveSelection(doc, sel))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\nfour\n", string(content))

	err = ws.RemoveSelection(doc, annotate.Selection{StartLine: 3, EndLine: 9})
	assert.ErrorIs(t, err, annotate.ErrInvalidSelection)
}

func TestWriterClipboard(t *testing.T) {
	out := &bytes.Buffer{}
	clip := NewWriterClipboard(out)

	require.NoError(t, clip.WriteAll("first"))
	require.NoError(t, clip.WriteAll("second\n"))

	assert.Equal(t, "first\nsecond\n", out.String())
	last, err := clip.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "second\n", last)
}
