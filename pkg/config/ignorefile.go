package config

import (
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
	"go.uber.org/zap"
)

// IgnoreFileName is the per-directory ignore file.
const IgnoreFileName = ".colophonignore"

// LoadIgnoreFiles collects ignore patterns from the global file and from
// every .colophonignore between the filesystem root and dir. Patterns from
// the global file come first, then root-most directories.
func LoadIgnoreFiles(dir, globalPath string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var patterns []string
	if globalPath != "" {
		lines, err := ReadIgnoreFile(globalPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to load global ignore file", zap.String("file", globalPath), zap.Error(err))
		} else {
			patterns = append(patterns, lines...)
		}
	}

	var ignoreFiles []string
	current := dir
	for {
		candidate := filepath.Join(current, IgnoreFileName)
		if _, err := os.Stat(candidate); err == nil {
			ignoreFiles = append([]string{candidate}, ignoreFiles...) // Root-most first.
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	for _, file := range ignoreFiles {
		lines, err := ReadIgnoreFile(file)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded ignore file", zap.String("file", file), zap.Int("patterns", len(lines)))
		patterns = append(patterns, lines...)
	}

	return patterns, nil
}

// ReadIgnoreFile returns the patterns in an ignore file. Blank lines and
// lines starting with '#' are skipped; "\#" escapes a literal '#'.
func ReadIgnoreFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading ignore file %s: %w", path, err)
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, `\#`) {
			trimmed = trimmed[1:]
		}
		patterns = append(patterns, trimmed)
	}
	return patterns, nil
}
