package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haoqing-Wu/ro-labeling-tool/config"
	"github.com/Haoqing-Wu/ro-labeling-tool/extract"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "absent.toml")

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.False(t, exists)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "data"), cfg.Paths.DataFolder)
	assert.Equal(t, filepath.Join(wd, "labels"), cfg.Paths.LogsFolder)
	assert.Equal(t, "parquet", cfg.Output.Format)
	assert.True(t, cfg.Output.CopySource)

	got := cfg.ExtractConfig()
	want := extract.DefaultConfig()
	assert.Equal(t, want, got)
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "rolabel.toml")
	content := `
[paths]
data_folder = "~/drives"
logs_folder = "/tmp/labels"

[extraction]
window_seconds = 2.0
ego_mode = " Disjoint "
sensors = ["bv2", " lrr1 "]
emit_incomplete = true

[output]
format = "CSV"
sqlite = true

[logging]
level = "DEBUG"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, filepath.Join(home, "drives"), cfg.Paths.DataFolder)
	assert.Equal(t, "/tmp/labels", cfg.Paths.LogsFolder)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.True(t, cfg.Output.SQLite)
	assert.Equal(t, "debug", cfg.Logging.Level)

	ex := cfg.ExtractConfig()
	assert.Equal(t, 2.0, ex.WindowSeconds)
	assert.Equal(t, 4.0, ex.FragmentSeconds)
	assert.Equal(t, extract.Disjoint, ex.EgoMode)
	assert.Equal(t, []string{"BV2", "LRR1"}, ex.Sensors)
	assert.True(t, ex.EmitOnBreak)
	assert.Equal(t, 40, ex.TargetPoints)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown sensor", "[extraction]\nsensors = [\"SRR9\"]\n", "unknown sensor"},
		{"bad ego mode", "[extraction]\nego_mode = \"zigzag\"\n", "ego_mode"},
		{"negative start", "[extraction]\nstart_frame = -1\n", "start_frame"},
		{"bad format", "[output]\nformat = \"xlsx\"\n", "output.format"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"unknown key", "[extraction]\nwindow = 3\n", "parse config"},
		{"malformed", "[paths\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, _, _, err := config.Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, config.CreateSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded config.Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, config.Default().Extraction, decoded.Extraction)
	assert.Equal(t, config.Default().Output, decoded.Output)

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "sliding", cfg.Extraction.EgoMode)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/x/y")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y"), got)

	empty, err := config.ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
