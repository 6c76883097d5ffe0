package config

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.Base("invalid config")

// Validate checks config values for correctness.
// All violations are reported together.
func (c *Config) Validate() error {
	var errs []string

	if c.MinimumCopyPercentage < 0 || c.MinimumCopyPercentage > 100 {
		errs = append(errs, fmt.Sprintf("minimumCopyPercentage must be between 0 and 100, got %v", c.MinimumCopyPercentage))
	}

	for i, p := range c.FilePatterns {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Sprintf("filePatterns[%d] must not be empty", i))
		}
	}
	for i, p := range c.IgnorePatterns {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Sprintf("ignorePatterns[%d] must not be empty", i))
		}
	}

	switch c.DocumentSet {
	case DocumentSetOpen, DocumentSetVisible, DocumentSetAll:
	default:
		errs = append(errs, fmt.Sprintf("documentSet must be one of open, visible, all, got %q", c.DocumentSet))
	}

	if len(errs) > 0 {
		return errors.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
