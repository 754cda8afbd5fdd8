// Package extract drives the ego path builder and the actor segmenter over a
// whole recording.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Haoqing-Wu/ro-labeling-tool/actortrack"
	"github.com/Haoqing-Wu/ro-labeling-tool/egopath"
	"github.com/Haoqing-Wu/ro-labeling-tool/signals"
	"github.com/Haoqing-Wu/ro-labeling-tool/transform"
)

// EgoMode selects how successive ego windows are placed.
type EgoMode string

const (
	// Sliding starts one window at every frame.
	Sliding EgoMode = "sliding"
	// Disjoint consumes back-to-back, non-overlapping windows.
	Disjoint EgoMode = "disjoint"
)

// Config controls window and fragment geometry.
type Config struct {
	WindowSeconds   float64  `json:"window_seconds"`
	FragmentSeconds float64  `json:"fragment_seconds"`
	StartFrame      int      `json:"start_frame"`
	EgoMode         EgoMode  `json:"ego_mode"`
	Sensors         []string `json:"sensors"`
	EmitOnBreak     bool     `json:"emit_on_break"`
	TargetPoints    int      `json:"target_points"`
}

// DefaultConfig mirrors the labeling defaults: 4 s windows and fragments from
// frame 0, sliding ego windows, camera objects only.
func DefaultConfig() Config {
	return Config{
		WindowSeconds:   4.0,
		FragmentSeconds: actortrack.DefaultFragmentSeconds,
		EgoMode:         Sliding,
		Sensors:         []string{signals.BV2.Name},
		TargetPoints:    egopath.DefaultTargetPoints,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs []error
	if actortrack.FramesFor(c.WindowSeconds, signals.TimeStep) <= 0 {
		errs = append(errs, fmt.Errorf("window_seconds must cover at least one frame, got %v", c.WindowSeconds))
	}
	if actortrack.FramesFor(c.FragmentSeconds, signals.TimeStep) <= 0 {
		errs = append(errs, fmt.Errorf("fragment_seconds must cover at least one frame, got %v", c.FragmentSeconds))
	}
	if c.StartFrame < 0 {
		errs = append(errs, fmt.Errorf("start_frame must be >= 0, got %d", c.StartFrame))
	}
	switch c.EgoMode {
	case Sliding, Disjoint:
	default:
		errs = append(errs, fmt.Errorf("ego_mode must be %q or %q, got %q", Sliding, Disjoint, c.EgoMode))
	}
	if c.TargetPoints <= 0 {
		errs = append(errs, fmt.Errorf("target_points must be > 0, got %d", c.TargetPoints))
	}
	for _, name := range c.Sensors {
		if _, err := signals.LookupSensor(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EgoPath is the trajectory of one ego window.
type EgoPath struct {
	StartFrame int             `json:"start_frame"`
	Points     []egopath.Point `json:"points"`
}

// ProgressFunc receives stage progress as done out of total units.
type ProgressFunc func(stage string, done, total int)

// Stage names reported to ProgressFunc.
const (
	StageEgo    = "ego"
	StageActors = "actors"
)

// Extractor produces ego paths and actor fragments from one signal table.
type Extractor struct {
	table    *signals.Table
	cfg      Config
	sensors  []signals.Sensor
	window   int
	fragment int
	progress ProgressFunc
}

// New validates cfg and binds it to table.
func New(table *signals.Table, cfg Config) (*Extractor, error) {
	if table == nil {
		return nil, errors.New("signal table is required")
	}
	cfg.EgoMode = EgoMode(strings.ToLower(strings.TrimSpace(string(cfg.EgoMode))))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extract config: %w", err)
	}

	sensors := make([]signals.Sensor, 0, len(cfg.Sensors))
	for _, name := range cfg.Sensors {
		s, _ := signals.LookupSensor(name)
		sensors = append(sensors, s)
	}

	return &Extractor{
		table:    table,
		cfg:      cfg,
		sensors:  sensors,
		window:   actortrack.FramesFor(cfg.WindowSeconds, signals.TimeStep),
		fragment: actortrack.FramesFor(cfg.FragmentSeconds, signals.TimeStep),
	}, nil
}

// SetProgress installs a progress callback. A nil func disables reporting.
func (e *Extractor) SetProgress(fn ProgressFunc) {
	e.progress = fn
}

// WindowFrames is the ego window length in frames.
func (e *Extractor) WindowFrames() int { return e.window }

// FragmentFrames is the actor fragment length in frames.
func (e *Extractor) FragmentFrames() int { return e.fragment }

// WindowStarts lists the first frame of every ego window that fits in the
// usable recording length.
func (e *Extractor) WindowStarts() []int {
	stride := 1
	if e.cfg.EgoMode == Disjoint {
		stride = e.window
	}
	var out []int
	for start := e.cfg.StartFrame; start+e.window <= e.table.Len(); start += stride {
		out = append(out, start)
	}
	return out
}

// GenerateEgoPaths builds one ego trajectory per window, in frame order. The
// world-frame unwrap state is threaded through the windows in that order.
func (e *Extractor) GenerateEgoPaths() []EgoPath {
	starts := e.WindowStarts()
	if len(starts) == 0 {
		return nil
	}

	builder := egopath.NewBuilder()
	builder.TargetPoints = e.cfg.TargetPoints
	if e.cfg.EgoMode == Disjoint {
		builder.Stride = e.window
	}

	out := make([]EgoPath, 0, len(starts))
	state := transform.WorldState{}
	for i, start := range starts {
		var points []egopath.Point
		points, state = builder.Build(state, e.egoWindow(start))
		out = append(out, EgoPath{StartFrame: start, Points: points})
		e.report(StageEgo, i+1, len(starts))
	}
	return out
}

// GenerateActorPaths segments every slot of every configured sensor over the
// total frame count. Fragments are grouped by sensor in configuration order,
// then by slot.
func (e *Extractor) GenerateActorPaths() []actortrack.Fragment {
	seg := actortrack.Segmenter{Length: e.fragment, EmitOnBreak: e.cfg.EmitOnBreak}

	var out []actortrack.Fragment
	for i, sensor := range e.sensors {
		out = append(out, seg.SegmentSensor(e.table, sensor, e.table.Frames())...)
		e.report(StageActors, i+1, len(e.sensors))
	}
	return out
}

// BySensor groups fragments by sensor name, keeping their order.
func BySensor(fragments []actortrack.Fragment) map[string][]actortrack.Fragment {
	out := make(map[string][]actortrack.Fragment)
	for _, f := range fragments {
		out[f.Sensor] = append(out[f.Sensor], f)
	}
	return out
}

func (e *Extractor) egoWindow(start int) []egopath.Sample {
	stop := min(start+e.window, e.table.Len())
	out := make([]egopath.Sample, 0, max(stop-start, 0))
	for frame := start; frame < stop; frame++ {
		out = append(out, egopath.SampleFromValues(e.table.Lookup(frame, signals.EgoSignals)))
	}
	return out
}

func (e *Extractor) report(stage string, done, total int) {
	if e.progress != nil {
		e.progress(stage, done, total)
	}
}
