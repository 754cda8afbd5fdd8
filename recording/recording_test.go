package recording

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const nestedJSON = `{
  "__header__": "exported",
  "FlexRay": {
    "Time": [[0.0], [0.04], [0.08]],
    "EML": {
      "EML_PositionX": [1.5, 2.5, 3.5],
      "EML_PositionY": [[0], [0.5], [1]],
      "EML_Debug": [9, 9, 9]
    },
    "BV2": {
      "BV2_Obj_01_ID": [255, 4, 4],
      "BV2_Obj_01_Klasse": [0, 2, null]
    },
    "Diagnostics": {"Counter": [1, 2, 3]}
  }
}`

func TestLoadNestedJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "drive.json", nestedJSON)

	rec, err := Load(path, nil)
	require.NoError(t, err)

	want := map[string][]float64{
		"Time":              {0, 0.04, 0.08},
		"EML_PositionX":     {1.5, 2.5, 3.5},
		"EML_PositionY":     {0, 0.5, 1},
		"BV2_Obj_01_ID":     {255, 4, 4},
		"BV2_Obj_01_Klasse": {0, 2, 0},
	}
	if diff := cmp.Diff(want, rec.Signals); diff != "" {
		t.Fatalf("signals mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Diagnostics", "EML/EML_Debug", "__header__"}, rec.Ignored)
	assert.Len(t, rec.SHA256, 64)
	assert.Equal(t, int64(len(nestedJSON)), rec.SizeBytes)

	table := rec.Table()
	assert.Equal(t, 3, table.Frames())
	assert.Equal(t, 4.0, table.Value("BV2_Obj_01_ID", 2))
}

func TestLoadFlatJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "flat.json", `{"Time": [0, 1], "EML_GeschwX": [3, 4], "Other": [1]}`)
	rec, err := Load(path, DefaultSchema())
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, rec.Signals["EML_GeschwX"])
	assert.Equal(t, []string{"Other"}, rec.Ignored)
}

func TestLoadFieldInWrongGroupIsIgnored(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "x.json", `{"EML": {"BV2_Obj_01_ID": [1, 2]}}`)
	rec, err := Load(path, nil)
	require.NoError(t, err)
	assert.Empty(t, rec.Signals)
	assert.Equal(t, []string{"EML/BV2_Obj_01_ID"}, rec.Ignored)
}

func TestLoadJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"not an object", `[1, 2, 3]`, "decode json object"},
		{"column is not an array", `{"Time": 3}`, "signal Time"},
		{"sample is text", `{"EML": {"EML_PositionX": [1, "a"]}}`, "sample 1"},
		{"sample is a row", `{"Time": [[1, 2]]}`, "single value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.json", tt.content)
			_, err := Load(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	content := "Time,EML_PositionX,BV2_Obj_01_ID,Comment\n" +
		"0,1.25,255,a\n" +
		"0.04,1.5,7,b\n" +
		"0.08,,7,c\n"
	path := writeFile(t, t.TempDir(), "drive.csv", content)

	rec, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.04, 0.08}, rec.Signals["Time"])
	assert.Equal(t, []float64{1.25, 1.5}, rec.Signals["EML_PositionX"])
	assert.Equal(t, []float64{255, 7, 7}, rec.Signals["BV2_Obj_01_ID"])
	assert.Equal(t, []string{"Comment"}, rec.Ignored)

	table := rec.Table()
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 3, table.Frames())
}

func TestLoadCSVErrors(t *testing.T) {
	t.Parallel()

	empty := writeFile(t, t.TempDir(), "empty.csv", "")
	_, err := Load(empty, nil)
	require.Error(t, err)

	bad := writeFile(t, t.TempDir(), "bad.csv", "Time\n0\nabc\n")
	_, err = Load(bad, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3 column Time")
}

func TestLoadUnsupported(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "drive.mat", "MATLAB 5.0")
	_, err := Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported recording format")

	_, err = Load("", nil)
	require.Error(t, err)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "x")
	writeFile(t, dir, "b_drive.csv", "Time\n0\n")
	writeFile(t, dir, "a_drive.json", "{}")

	got, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_drive.json"), got)

	direct, err := Discover(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes.txt"), direct)
}

func TestDiscoverMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "drive.mat", "x")

	_, err := Discover(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRecording))

	_, err = Discover(filepath.Join(dir, "nope"))
	assert.True(t, errors.Is(err, ErrNoRecording))
}

func TestDefaultSchema(t *testing.T) {
	t.Parallel()

	s := DefaultSchema()
	group, ok := s.Knows("EML_Gierwinkel")
	require.True(t, ok)
	assert.Equal(t, "EML", group)

	group, ok = s.Knows("LRR1_Obj_20_RadialGeschw_UF")
	require.True(t, ok)
	assert.Equal(t, "LRR1", group)

	_, ok = s.Knows("LRR1_Obj_21_ID_UF")
	assert.False(t, ok)

	group, ok = s.Knows("Time")
	require.True(t, ok)
	assert.Equal(t, "Time", group)
}
