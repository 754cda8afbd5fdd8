// Package actortrack follows the object identity reported in one slot of a
// sensor object list and cuts uninterrupted identity runs into fixed-length
// fragments.
package actortrack

import (
	"math"

	"github.com/Haoqing-Wu/ro-labeling-tool/signals"
)

// DefaultFragmentSeconds is the duration of one emitted fragment.
const DefaultFragmentSeconds = 4.0

// Sample is one frame of an actor fragment.
type Sample struct {
	Frame    int     `json:"frame"`
	ObjectID float64 `json:"object_id"`
	Class    float64 `json:"class"`
	X        float64 `json:"position_x"`
	Y        float64 `json:"position_y"`
	VX       float64 `json:"velocity_x"`
	VY       float64 `json:"velocity_y"`
}

// Fragment is one uninterrupted identity run of a sensor slot.
type Fragment struct {
	Sensor   string   `json:"sensor"`
	Slot     int      `json:"slot"`
	ObjectID float64  `json:"object_id"`
	Samples  []Sample `json:"samples"`
}

// Source yields the actor reading of one slot at a frame.
type Source interface {
	ActorSample(frame int) Sample
}

// TableSource reads one slot from a signal table. Names holds the six slot
// signals in the order of signals.Sensor.Fields.
type TableSource struct {
	Table *signals.Table
	Names []string
}

// ActorSample implements Source.
func (s TableSource) ActorSample(frame int) Sample {
	v := s.Table.Lookup(frame, s.Names)
	sample := Sample{Frame: frame}
	fields := []*float64{&sample.ObjectID, &sample.Class, &sample.X, &sample.Y, &sample.VX, &sample.VY}
	for i := range fields {
		if i < len(v) {
			*fields[i] = v[i]
		}
	}
	return sample
}

// Segmenter cuts identity runs into fragments.
type Segmenter struct {
	// Length is the fragment length in frames.
	Length int
	// EmitOnBreak keeps runs that end on an identity change before reaching
	// Length. By default such runs are dropped.
	EmitOnBreak bool
}

// NewSegmenter returns a Segmenter producing fragments of
// DefaultFragmentSeconds.
func NewSegmenter() Segmenter {
	return Segmenter{Length: FramesFor(DefaultFragmentSeconds, signals.TimeStep)}
}

// FramesFor converts a duration into a whole number of frames.
func FramesFor(seconds, step float64) int {
	if seconds <= 0 || step <= 0 {
		return 0
	}
	return int(math.Round(seconds / step))
}

// Segment walks frames [0, frames) of src and returns the fragments in frame
// order.
//
// The slot is seeking while it reports signals.NoActor and tracking otherwise.
// A run grows while the identity stays the same and is emitted once it holds
// Length frames; the next frame starts a fresh run of the same identity. A
// change of identity, or a switch to NoActor, ends the open run. A run still
// open when the recording ends is never emitted.
func (s Segmenter) Segment(src Source, frames int) [][]Sample {
	if s.Length <= 0 || frames <= 0 {
		return nil
	}

	var (
		out   [][]Sample
		run   []Sample
		known = signals.NoActor
	)
	closeRun := func() {
		if s.EmitOnBreak && len(run) > 0 {
			out = append(out, run)
		}
		run = nil
	}

	for frame := 0; frame < frames; frame++ {
		sample := src.ActorSample(frame)
		switch {
		case sample.ObjectID == signals.NoActor:
			closeRun()
			known = signals.NoActor
			continue
		case sample.ObjectID != known:
			closeRun()
			known = sample.ObjectID
		}

		if run == nil {
			run = make([]Sample, 0, s.Length)
		}
		run = append(run, sample)
		if len(run) >= s.Length {
			out = append(out, run)
			run = nil
		}
	}
	return out
}

// SegmentSensor runs one Segmenter per slot of sensor and concatenates the
// fragments in slot order. Slots whose identity signal was not recorded are
// skipped: their identity would read as a constant 0.
func (s Segmenter) SegmentSensor(table *signals.Table, sensor signals.Sensor, frames int) []Fragment {
	var out []Fragment
	for slot := 0; slot < sensor.Slots; slot++ {
		names := sensor.SlotSignals(slot)
		if !table.Has(names[0]) {
			continue
		}
		src := TableSource{Table: table, Names: names}
		for _, run := range s.Segment(src, frames) {
			out = append(out, Fragment{
				Sensor:   sensor.Name,
				Slot:     slot,
				ObjectID: run[0].ObjectID,
				Samples:  run,
			})
		}
	}
	return out
}
