package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	t.Setenv(GlobalIgnoreEnv, "")
	dir := t.TempDir()

	cfg, err := Load(Options{WorkDir: dir}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"**/*"}, cfg.FilePatterns)
	assert.Empty(t, cfg.IgnorePatterns)
	assert.Equal(t, 20.0, cfg.MinimumCopyPercentage)
	assert.True(t, cfg.UseRelativePath)
	assert.Equal(t, DocumentSetOpen, cfg.DocumentSet)
	assert.Empty(t, cfg.Location())
}

func TestLoad_YAMLInParentDirectory(t *testing.T) {
	t.Setenv(GlobalIgnoreEnv, "")
	root := t.TempDir()
	path := filepath.Join(root, ".colophon.yaml")
	writeFile(t, path, `
filePatterns:
  - "*.go"
  - "*.py"
minimumCopyPercentage: 0
useRelativePath: false
`)
	workDir := filepath.Join(root, "nested", "deeper")
	require.NoError(t, os.MkdirAll(workDir, 0o755))

	cfg, err := Load(Options{WorkDir: workDir}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"*.go", "*.py"}, cfg.FilePatterns)
	assert.Equal(t, 0.0, cfg.MinimumCopyPercentage)
	assert.False(t, cfg.UseRelativePath)
	assert.Equal(t, DocumentSetOpen, cfg.DocumentSet) // default kept
	assert.Equal(t, path, cfg.Location())
}

func TestLoad_ExplicitJSONPath(t *testing.T) {
	t.Setenv(GlobalIgnoreEnv, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	writeFile(t, path, `{"minimumCopyPercentage": 55.5, "documentSet": "visible", "ignorePatterns": ["*.lock"]}`)

	cfg, err := Load(Options{Path: path, WorkDir: dir}, nil)

	require.NoError(t, err)
	assert.Equal(t, 55.5, cfg.MinimumCopyPercentage)
	assert.Equal(t, DocumentSetVisible, cfg.DocumentSet)
	assert.Equal(t, []string{"*.lock"}, cfg.IgnorePatterns)
	assert.Equal(t, []string{"**/*"}, cfg.FilePatterns)
}

func TestLoad_LegacyIgnorePathsMerged(t *testing.T) {
	t.Setenv(GlobalIgnoreEnv, "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".colophon.yml"), `
ignorePatterns: ["*.min.js"]
ignorePaths: ["**/vendor/**"]
`)

	cfg, err := Load(Options{WorkDir: dir}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"*.min.js", "**/vendor/**"}, cfg.IgnorePatterns)
	assert.Nil(t, cfg.IgnorePaths)
}

func TestLoad_EmptyYAMLKeepsDefaults(t *testing.T) {
	t.Setenv(GlobalIgnoreEnv, "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".colophon.yaml"), "")

	cfg, err := Load(Options{WorkDir: dir}, nil)

	require.NoError(t, err)
	assert.Equal(t, Default().FilePatterns, cfg.FilePatterns)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		errContains string
		invalid     bool
	}{
		{name: "unknown_yaml_field", file: ".colophon.yaml", content: "filePattern: ['*']\n", errContains: "parsing YAML"},
		{name: "unknown_json_field", file: ".colophon.json", content: `{"useRelative": true}`, errContains: "parsing JSON"},
		{name: "malformed_json", file: ".colophon.json", content: `{"filePatterns": [`, errContains: "parsing JSON"},
		{name: "percentage_out_of_range", file: ".colophon.yaml", content: "minimumCopyPercentage: 120\n", errContains: "minimumCopyPercentage", invalid: true},
		{name: "empty_pattern", file: ".colophon.json", content: `{"filePatterns": [""]}`, errContains: "filePatterns[0]", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(GlobalIgnoreEnv, "")
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, tt.file), tt.content)

			_, err := Load(Options{WorkDir: dir}, nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colophon.toml")
	writeFile(t, path, "x = 1")

	_, err := Load(Options{Path: path, WorkDir: dir}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file extension")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(Options{Path: filepath.Join(dir, "nope.yaml"), WorkDir: dir}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_IgnoreFilesAppended(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".colophon.yaml"), "ignorePatterns: ['*.log']\n")
	writeFile(t, filepath.Join(root, IgnoreFileName), "# build output\n*.o\n\n")
	writeFile(t, filepath.Join(root, "sub", IgnoreFileName), "*.tmp\n")
	global := filepath.Join(t.TempDir(), "global-ignore")
	writeFile(t, global, "*.swp\n")
	t.Setenv(GlobalIgnoreEnv, global)

	cfg, err := Load(Options{WorkDir: filepath.Join(root, "sub")}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"*.log", "*.swp", "*.o", "*.tmp"}, cfg.IgnorePatterns)
}
