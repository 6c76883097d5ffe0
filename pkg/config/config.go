// Package config resolves the annotator's settings for a single invocation.
package config

// DocumentSet selects which documents the bulk copy considers.
type DocumentSet string

const (
	DocumentSetOpen    DocumentSet = "open"    // Every document not yet closed.
	DocumentSetVisible DocumentSet = "visible" // Only documents shown in an editor.
	DocumentSetAll     DocumentSet = "all"     // Every known document, closed or not.
)

// Default values applied before any file or flag.
const (
	DefaultMinimumCopyPercentage = 20
	DefaultFilePattern           = "**/*"
)

// Config holds the annotation settings. It is built once per command and
// never modified afterwards.
type Config struct {
	FilePatterns          []string    `json:"filePatterns" yaml:"filePatterns"`
	IgnorePatterns        []string    `json:"ignorePatterns" yaml:"ignorePatterns"`
	MinimumCopyPercentage float64     `json:"minimumCopyPercentage" yaml:"minimumCopyPercentage"`
	UseRelativePath       bool        `json:"useRelativePath" yaml:"useRelativePath"`
	DocumentSet           DocumentSet `json:"documentSet" yaml:"documentSet"`

	// IgnorePaths is the older name of IgnorePatterns. Loaded entries are
	// moved into IgnorePatterns.
	IgnorePaths []string `json:"ignorePaths,omitempty" yaml:"ignorePaths,omitempty"`

	location string
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		FilePatterns:          []string{DefaultFilePattern},
		IgnorePatterns:        []string{},
		MinimumCopyPercentage: DefaultMinimumCopyPercentage,
		UseRelativePath:       true,
		DocumentSet:           DocumentSetOpen,
	}
}

// Location is the path of the file the configuration was read from, if any.
func (c *Config) Location() string {
	return c.location
}

// mergeLegacy folds IgnorePaths into IgnorePatterns.
func (c *Config) mergeLegacy() {
	if len(c.IgnorePaths) == 0 {
		return
	}
	c.IgnorePatterns = append(c.IgnorePatterns, c.IgnorePaths...)
	c.IgnorePaths = nil
}
