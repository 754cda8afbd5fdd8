package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Haoqing-Wu/ro-labeling-tool/extract"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the input and output locations.
type Paths struct {
	DataFolder string `toml:"data_folder"`
	LogsFolder string `toml:"logs_folder"`
}

// Extraction contains window and fragment geometry.
type Extraction struct {
	WindowSeconds   float64  `toml:"window_seconds"`
	FragmentSeconds float64  `toml:"fragment_seconds"`
	StartFrame      int      `toml:"start_frame"`
	EgoMode         string   `toml:"ego_mode"` // sliding|disjoint
	Sensors         []string `toml:"sensors"`
	EmitIncomplete  bool     `toml:"emit_incomplete"`
	TargetPoints    int      `toml:"target_points"`
}

// Output contains label bundle settings.
type Output struct {
	Format     string `toml:"format"` // parquet|csv|jsonl
	SQLite     bool   `toml:"sqlite"`
	Overwrite  bool   `toml:"overwrite"`
	CopySource bool   `toml:"copy_source"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"` // console|json
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values of the labeling tool.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Extraction Extraction `toml:"extraction"`
	Output     Output     `toml:"output"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/rolabel/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file
// yields the defaults. It also reports the resolved path and whether the
// file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("rolabel.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// ExtractConfig maps the extraction section onto the extractor settings.
func (c *Config) ExtractConfig() extract.Config {
	return extract.Config{
		WindowSeconds:   c.Extraction.WindowSeconds,
		FragmentSeconds: c.Extraction.FragmentSeconds,
		StartFrame:      c.Extraction.StartFrame,
		EgoMode:         extract.EgoMode(c.Extraction.EgoMode),
		Sensors:         append([]string(nil), c.Extraction.Sensors...),
		EmitOnBreak:     c.Extraction.EmitIncomplete,
		TargetPoints:    c.Extraction.TargetPoints,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
