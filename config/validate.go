package config

import (
	"errors"
	"fmt"
	"slices"
)

var (
	outputFormats = []string{"parquet", "csv", "jsonl"}
	logFormats    = []string{"console", "json"}
	logLevels     = []string{"debug", "info", "warn", "warning", "error"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.DataFolder == "" {
		return errors.New("paths.data_folder must be set")
	}
	if c.Paths.LogsFolder == "" {
		return errors.New("paths.logs_folder must be set")
	}
	if err := c.ExtractConfig().Validate(); err != nil {
		return fmt.Errorf("extraction: %w", err)
	}
	if !slices.Contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %v, got %q", outputFormats, c.Output.Format)
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format must be one of %v, got %q", logFormats, c.Logging.Format)
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %v, got %q", logLevels, c.Logging.Level)
	}
	return nil
}
