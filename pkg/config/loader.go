package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// GlobalIgnoreEnv names an ignore file read in addition to the local ones.
const GlobalIgnoreEnv = "COLOPHON_IGNORE_GLOBAL"

// configFileNames are searched for in this order in each directory.
var configFileNames = []string{".colophon.yaml", ".colophon.yml", ".colophon.json"}

// Options controls where Load looks for settings.
type Options struct {
	Path             string // Explicit config file. Skips the directory search when set.
	WorkDir          string // Directory the search starts from. Defaults to the working directory.
	GlobalIgnoreFile string // Extra ignore file. Defaults to $COLOPHON_IGNORE_GLOBAL.
}

// Load builds the configuration for one invocation: defaults, then the
// config file, then every .colophonignore file. Keys present in the file
// override defaults, including explicit zero values.
func Load(opts Options, logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	cfg := Default()

	path := opts.Path
	if path == "" {
		path = findConfigFile(workDir)
	}
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
		cfg.location = path
		logger.Debug("Loaded config file", zap.String("file", path))
	} else {
		logger.Debug("No config file found, using defaults", zap.String("workDir", workDir))
	}
	cfg.mergeLegacy()

	globalIgnore := opts.GlobalIgnoreFile
	if globalIgnore == "" {
		globalIgnore = os.Getenv(GlobalIgnoreEnv)
	}
	patterns, err := LoadIgnoreFiles(workDir, globalIgnore, logger)
	if err != nil {
		return nil, err
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, patterns...)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// decodeFile reads path over cfg, choosing the format by extension.
func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("reading config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return decodeJSON(data, cfg)
	case ".yaml", ".yml":
		return decodeYAML(data, cfg)
	default:
		return errors.Errorf("unsupported config file extension %q", ext)
	}
}

func decodeJSON(data []byte, cfg *Config) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Errorf("parsing JSON: %w", err)
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Errorf("parsing YAML: %w", err)
	}
	return nil
}

// findConfigFile returns the nearest config file at or above dir.
func findConfigFile(dir string) string {
	current := dir
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(current, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}
