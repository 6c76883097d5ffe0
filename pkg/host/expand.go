package host

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/zap"
)

// Entry is a file found while expanding command-line arguments.
type Entry struct {
	Path    string // Absolute file path.
	Visible bool   // Named directly rather than reached through a directory or glob.
}

// skippedDirs are never descended into while walking a directory.
var skippedDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// ExpandPaths turns files, directories and doublestar globs into a list of
// files in argument order. Files named directly are visible; files found by
// walking a directory or matching a glob are not. Duplicates keep their
// first position.
func ExpandPaths(args []string, logger *zap.Logger) ([]Entry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var entries []Entry
	seen := map[string]int{}
	add := func(path string, visible bool) {
		if i, ok := seen[path]; ok {
			entries[i].Visible = entries[i].Visible || visible
			return
		}
		seen[path] = len(entries)
		entries = append(entries, Entry{Path: path, Visible: visible})
	}

	for _, arg := range args {
		if !isGlob(arg) {
			absPath, err := filepath.Abs(arg)
			if err != nil {
				return nil, errors.Errorf("resolving %s: %w", arg, err)
			}
			info, err := os.Stat(absPath)
			if err != nil {
				return nil, errors.Errorf("accessing %s: %w", arg, err)
			}
			if !info.IsDir() {
				add(absPath, true)
				continue
			}
			files, err := walkFiles(absPath, logger)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f, false)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", arg, err)
		}
		sort.Strings(matches)
		logger.Debug("Expanded glob", zap.String("pattern", arg), zap.Int("matches", len(matches)))
		for _, match := range matches {
			absPath, err := filepath.Abs(match)
			if err != nil {
				return nil, errors.Errorf("resolving %s: %w", match, err)
			}
			if info, err := os.Stat(absPath); err != nil || info.IsDir() {
				continue
			}
			add(absPath, false)
		}
	}

	return entries, nil
}

// isGlob reports whether arg holds glob metacharacters and is not an existing path.
func isGlob(arg string) bool {
	if _, err := os.Stat(arg); err == nil {
		return false
	}
	for _, r := range arg {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// walkFiles lists regular files under dir in lexical order.
func walkFiles(dir string, logger *zap.Logger) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if path != dir && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", dir, err)
	}
	return files, nil
}
