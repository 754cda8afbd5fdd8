// Package recording discovers and loads exported vehicle-bus recordings into
// a signal table, keeping only the signals a Schema declares.
package recording

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Haoqing-Wu/ro-labeling-tool/signals"
)

// ErrNoRecording is returned when a data folder holds no supported recording.
var ErrNoRecording = errors.New("no recording found")

// Extensions lists the supported recording file extensions.
var Extensions = []string{".json", ".csv"}

// Recording is one loaded log export.
type Recording struct {
	Path      string
	SHA256    string
	SizeBytes int64
	Signals   map[string][]float64
	// Ignored lists container entries that the schema does not declare.
	Ignored []string
}

// Table builds the frame-indexed signal table of the recording.
func (r *Recording) Table() *signals.Table {
	return signals.NewTable(r.Signals)
}

// Discover returns the first supported recording in dir, in lexical order.
// A path naming a file is returned as is.
func Discover(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s does not exist", ErrNoRecording, dir)
		}
		return "", fmt.Errorf("stat data folder: %w", err)
	}
	if !info.IsDir() {
		return dir, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read data folder: %w", err)
	}
	var candidates []string
	for _, e := range entries {
		if e.IsDir() || !supported(e.Name()) {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, e.Name()))
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w in %s (expected %s)", ErrNoRecording, dir, strings.Join(Extensions, ", "))
	}
	sort.Strings(candidates)
	return candidates[0], nil
}

// Load reads the recording at path, keeping the fields declared by schema.
// A nil schema means DefaultSchema.
func Load(path string, schema *Schema) (*Recording, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("recording path is required")
	}
	if schema == nil {
		schema = DefaultSchema()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	sum := sha256.Sum256(data)

	var (
		cols    map[string][]float64
		ignored []string
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		cols, ignored, err = parseJSON(data, schema)
	case ".csv":
		cols, ignored, err = parseCSV(data, schema)
	default:
		return nil, fmt.Errorf("unsupported recording format %q (expected %s)", ext, strings.Join(Extensions, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("parse recording %s: %w", filepath.Base(path), err)
	}
	sort.Strings(ignored)

	return &Recording{
		Path:      path,
		SHA256:    hex.EncodeToString(sum[:]),
		SizeBytes: int64(len(data)),
		Signals:   cols,
		Ignored:   ignored,
	}, nil
}

func supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
