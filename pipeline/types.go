package pipeline

import (
	"log/slog"

	"github.com/Haoqing-Wu/ro-labeling-tool/actortrack"
	"github.com/Haoqing-Wu/ro-labeling-tool/extract"
)

// Output formats for the trajectory tables.
const (
	FormatParquet = "parquet"
	FormatCSV     = "csv"
	FormatJSONL   = "jsonl"
)

// Formats lists the supported trajectory table formats.
var Formats = []string{FormatParquet, FormatCSV, FormatJSONL}

// Options configures one labeling run.
type Options struct {
	// DataFolder holds the recording, or names the recording file directly.
	DataFolder string
	// LogsFolder receives the label bundle.
	LogsFolder string
	Format     string // parquet|csv|jsonl
	Overwrite  bool
	CopySource bool
	// SQLite additionally writes labels.db with every row of the run.
	SQLite  bool
	Extract extract.Config

	Logger   *slog.Logger
	Progress extract.ProgressFunc
}

// Result returns generated output paths and counts.
type Result struct {
	OutputDir          string         `json:"output_dir"`
	RecordingPath      string         `json:"recording_path"`
	ManifestPath       string         `json:"manifest_path"`
	EgoPathsPath       string         `json:"ego_paths_path"`
	ActorFragmentsPath string         `json:"actor_fragments_path"`
	SQLitePath         string         `json:"sqlite_path,omitempty"`
	SourceCopyPath     string         `json:"source_copy_path,omitempty"`
	RunID              string         `json:"run_id"`
	Frames             int            `json:"frames"`
	UsableFrames       int            `json:"usable_frames"`
	EgoPathCount       int            `json:"ego_path_count"`
	ActorFragmentCount int            `json:"actor_fragment_count"`
	FragmentsBySensor  map[string]int `json:"fragments_by_sensor"`
	Warnings           []string       `json:"warnings,omitempty"`
}

// EgoRow is one ego trajectory point flattened for tabular output.
type EgoRow struct {
	PathIndex  int
	StartFrame int
	PointIndex int
	Time       float64
	X          float64
	Y          float64
	Yaw        float64
	Curvature  float64
	VX         float64
	AX         float64
	Distance   float64
}

// ActorRow is one actor sample flattened for tabular output.
type ActorRow struct {
	FragmentIndex int
	Sensor        string
	Slot          int
	ObjectID      float64
	Frame         int
	Class         float64
	X             float64
	Y             float64
	VX            float64
	VY            float64
}

// FlattenEgoPaths expands paths into one row per point, in path order.
func FlattenEgoPaths(paths []extract.EgoPath) []EgoRow {
	var rows []EgoRow
	for i, p := range paths {
		for j, pt := range p.Points {
			rows = append(rows, EgoRow{
				PathIndex:  i,
				StartFrame: p.StartFrame,
				PointIndex: j,
				Time:       pt.Time,
				X:          pt.X,
				Y:          pt.Y,
				Yaw:        pt.Yaw,
				Curvature:  pt.Curvature,
				VX:         pt.VX,
				AX:         pt.AX,
				Distance:   pt.Distance,
			})
		}
	}
	return rows
}

// FlattenFragments expands fragments into one row per sample.
func FlattenFragments(fragments []actortrack.Fragment) []ActorRow {
	var rows []ActorRow
	for i, f := range fragments {
		for _, s := range f.Samples {
			rows = append(rows, ActorRow{
				FragmentIndex: i,
				Sensor:        f.Sensor,
				Slot:          f.Slot,
				ObjectID:      s.ObjectID,
				Frame:         s.Frame,
				Class:         s.Class,
				X:             s.X,
				Y:             s.Y,
				VX:            s.VX,
				VY:            s.VY,
			})
		}
	}
	return rows
}
