package export

import (
	"time"

	"github.com/Haoqing-Wu/ro-labeling-tool/extract"
)

const (
	// FormatVersion identifies the on-disk schema of a label bundle.
	FormatVersion = "ro_label_bundle_v1"

	// ManifestName is the file name of the bundle manifest.
	ManifestName = "manifest.json"
)

// Manifest captures extraction metadata and pointers to the exported files.
type Manifest struct {
	FormatVersion   string    `json:"format_version"`
	RunID           string    `json:"run_id"`
	GeneratedAt     time.Time `json:"generated_at"`
	SourceFile      string    `json:"source_file"`
	SourceFileName  string    `json:"source_file_name"`
	SourceSHA256    string    `json:"source_sha256"`
	SourceSizeBytes int64     `json:"source_size_bytes"`

	FrameCount     int      `json:"frame_count"`
	UsableFrames   int      `json:"usable_frames"`
	SignalCount    int      `json:"signal_count"`
	DroppedSignals []string `json:"dropped_signals,omitempty"`
	IgnoredFields  []string `json:"ignored_fields,omitempty"`

	EgoPathCount       int            `json:"ego_path_count"`
	ActorFragmentCount int            `json:"actor_fragment_count"`
	FragmentsBySensor  map[string]int `json:"fragments_by_sensor"`

	Settings extract.Config `json:"settings"`
	Files    []FileEntry    `json:"files"`
	Warnings []string       `json:"warnings,omitempty"`
}

// FileEntry describes one generated file, relative to the bundle directory.
type FileEntry struct {
	Role      string `json:"role"`
	Path      string `json:"path"`
	Format    string `json:"format"`
	SHA256    string `json:"sha256"`
	SizeBytes int64  `json:"size_bytes"`
}

// Source describes the recording a bundle was extracted from.
type Source struct {
	Path      string
	SHA256    string
	SizeBytes int64
}
