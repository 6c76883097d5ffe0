// File: pkg/annotate/patterns.go
package annotate

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"colophon/pkg/config"
)

// ErrEmptyPattern is returned when compiling an empty glob.
var ErrEmptyPattern = errors.New("empty glob pattern")

// Paths that name virtual buffers rather than files on disk.
const (
	scmInputPath = "git/scm0/input" // Source-control commit message input.
	vcsSuffix    = ".git"           // Diff views over version-control metadata.
)

// CompileGlob converts a glob into a regular expression anchored at both ends.
//
// '*' matches any run of characters, path separators included, and '?'
// matches a single character. A "**/" segment also matches nothing at all, so
// "**/*" accepts a bare file name as well as a nested path.
func CompileGlob(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	var expr strings.Builder
	expr.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		switch {
		case strings.HasPrefix(pattern[i:], "**/"):
			expr.WriteString("(?:.*/)?")
			i += 2
		case pattern[i] == '*':
			// Runs of stars collapse into one wildcard.
			for i+1 < len(pattern) && pattern[i+1] == '*' && !strings.HasPrefix(pattern[i+1:], "**/") {
				i++
			}
			expr.WriteString(".*")
		case pattern[i] == '?':
			expr.WriteString(".")
		default:
			expr.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}
	expr.WriteString("$")

	return regexp.Compile(expr.String())
}

// MatchGlob reports whether path matches pattern in full.
func MatchGlob(pattern, path string) (bool, error) {
	re, err := CompileGlob(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(normalizePath(path)), nil
}

// pathMatcher holds the compiled ignore and file patterns of one configuration.
type pathMatcher struct {
	ignore []*regexp.Regexp
	files  []*regexp.Regexp
}

func newPathMatcher(cfg *config.Config) *pathMatcher {
	return &pathMatcher{
		ignore: compileGlobs(cfg.IgnorePatterns),
		files:  compileGlobs(cfg.FilePatterns),
	}
}

// compileGlobs skips patterns that fail to compile; Config.Validate rejects them up front.
func compileGlobs(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		if re, err := CompileGlob(pattern); err == nil {
			compiled = append(compiled, re)
		}
	}
	return compiled
}

// include reports whether path is a real file matching no ignore pattern
// and at least one file pattern.
func (m *pathMatcher) include(path string) bool {
	normalized := normalizePath(path)
	if isVirtualPath(normalized) {
		return false
	}

	for _, re := range m.ignore {
		if re.MatchString(normalized) {
			return false
		}
	}
	for _, re := range m.files {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// isVirtualPath reports whether path names a host-internal buffer.
func isVirtualPath(path string) bool {
	return path == scmInputPath || strings.HasSuffix(path, vcsSuffix)
}

// normalizePath converts OS-specific path separators to forward slashes.
func normalizePath(path string) string {
	return filepath.ToSlash(path)
}
