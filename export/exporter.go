// Package export writes label bundles: the manifest and the JSON, JSONL and
// raw-copy files that sit next to the extracted trajectories.
package export

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Haoqing-Wu/ro-labeling-tool/extract"
	"github.com/Haoqing-Wu/ro-labeling-tool/signals"
)

// NewManifest starts a manifest for one extraction run over table.
func NewManifest(src Source, table *signals.Table, ignored []string, cfg extract.Config) Manifest {
	return Manifest{
		FormatVersion:     FormatVersion,
		RunID:             uuid.NewString(),
		GeneratedAt:       time.Now().UTC(),
		SourceFile:        src.Path,
		SourceFileName:    filepath.Base(src.Path),
		SourceSHA256:      src.SHA256,
		SourceSizeBytes:   src.SizeBytes,
		FrameCount:        table.Frames(),
		UsableFrames:      table.Len(),
		SignalCount:       len(table.Names()),
		DroppedSignals:    table.Dropped(),
		IgnoredFields:     ignored,
		FragmentsBySensor: map[string]int{},
		Settings:          cfg,
	}
}

// WriteManifest writes m as manifest.json under dir and returns its path.
func WriteManifest(dir string, m Manifest) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if err := WriteJSON(path, m); err != nil {
		return "", fmt.Errorf("write %s: %w", ManifestName, err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// EnsureOutputDir creates path and refuses a non-empty directory unless
// overwrite is set.
func EnsureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteJSONL writes one JSON document per line.
func WriteJSONL[T any](path string, records []T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewWriterSize(f, 1<<20)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return buf.Flush()
}

// CopySource copies the recording byte for byte into dir, keeping its
// extension as source<ext>.
func CopySource(src, dir string) (string, error) {
	dst := filepath.Join(dir, "source"+filepath.Ext(src))
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("copy source recording: %w", err)
	}
	return dst, nil
}

// Describe hashes a generated file for the manifest. The recorded path is
// relative to dir.
func Describe(dir, path, role, format string) (FileEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileEntry{}, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return FileEntry{}, fmt.Errorf("hash %s: %w", filepath.Base(path), err)
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return FileEntry{
		Role:      role,
		Path:      filepath.ToSlash(rel),
		Format:    format,
		SHA256:    hex.EncodeToString(h.Sum(nil)),
		SizeBytes: n,
	}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
