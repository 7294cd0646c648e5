package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/leapstack-labs/benchboard/internal/theme"
)

// OutputModes are the accepted values of the output key.
var OutputModes = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Dataset == "" {
		errs = append(errs, fmt.Errorf("dataset is required"))
	}
	if !slices.Contains(OutputModes, c.OutputFormat) {
		errs = append(errs, fmt.Errorf("output must be one of %v, got %q", OutputModes, c.OutputFormat))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}

	if c.UI != nil {
		if c.UI.Port < 0 || c.UI.Port > 65535 {
			errs = append(errs, fmt.Errorf("ui.port must be between 0 and 65535, got %d", c.UI.Port))
		}
		if c.UI.Theme != "" {
			if _, err := theme.ParseMode(c.UI.Theme); err != nil {
				errs = append(errs, fmt.Errorf("ui.theme: %w", err))
			}
		}
	}

	return errors.Join(errs...)
}

// ValidateDataset checks that the dataset file exists.
// Only commands that read the dataset call it, so help works without one.
func (c *Config) ValidateDataset() error {
	info, err := os.Stat(c.Dataset)
	if os.IsNotExist(err) {
		return fmt.Errorf("dataset file does not exist: %s\nHint: use --dataset or set dataset in benchboard.yaml", c.Dataset)
	}
	if err != nil {
		return fmt.Errorf("failed to stat dataset %s: %w", c.Dataset, err)
	}
	if info.IsDir() {
		return fmt.Errorf("dataset path is a directory: %s", c.Dataset)
	}
	return nil
}

// ForcedTheme returns the configured ui.theme, or "" when none is forced.
func (c *Config) ForcedTheme() theme.Mode {
	if c.UI == nil || c.UI.Theme == "" {
		return ""
	}
	mode, err := theme.ParseMode(c.UI.Theme)
	if err != nil {
		return ""
	}
	return mode
}
