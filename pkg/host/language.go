package host

import (
	"path/filepath"
	"strings"
)

// PlainText is the language identifier for unrecognized files.
const PlainText = "plaintext"

// languageByExtension maps lowercase file extensions to editor language identifiers.
var languageByExtension = map[string]string{
	".js":   "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".jsx":  "javascriptreact",
	".ts":   "typescript",
	".mts":  "typescript",
	".cts":  "typescript",
	".tsx":  "typescriptreact",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cxx":  "cpp",
	".hpp":  "cpp",
	".hh":   "cpp",
	".py":   "python",
	".pyi":  "python",
	".html": "html",
	".htm":  "html",
	".xml":  "xml",
	".svg":  "xml",
	".xsd":  "xml",
	".css":  "css",
	".go":   "go",
	".rs":   "rust",
	".rb":   "ruby",
	".sh":   "shellscript",
	".bash": "shellscript",
	".md":   "markdown",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".sql":  "sql",
}

// LanguageForPath guesses the language identifier of a file from its extension.
func LanguageForPath(path string) string {
	if lang, ok := languageByExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return PlainText
}
