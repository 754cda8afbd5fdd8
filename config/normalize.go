package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataFolder, err = expandPath(strings.TrimSpace(c.Paths.DataFolder)); err != nil {
		return fmt.Errorf("paths.data_folder: %w", err)
	}
	if c.Paths.LogsFolder, err = expandPath(strings.TrimSpace(c.Paths.LogsFolder)); err != nil {
		return fmt.Errorf("paths.logs_folder: %w", err)
	}

	c.Extraction.EgoMode = strings.ToLower(strings.TrimSpace(c.Extraction.EgoMode))
	if c.Extraction.EgoMode == "" {
		c.Extraction.EgoMode = defaultEgoMode
	}
	sensors := make([]string, 0, len(c.Extraction.Sensors))
	for _, s := range c.Extraction.Sensors {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			sensors = append(sensors, s)
		}
	}
	c.Extraction.Sensors = sensors
	if c.Extraction.TargetPoints == 0 {
		c.Extraction.TargetPoints = defaultTargetPoints
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultFormat
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
