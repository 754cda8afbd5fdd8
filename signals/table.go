package signals

import "sort"

const (
	// TimeStep is the scan period of the recorded bus signals in seconds.
	TimeStep = 0.04

	// NoActor is the object identity a sensor reports for an empty slot.
	NoActor = 255.0

	// TimeSignal names the per-frame timestamp column of a recording.
	TimeSignal = "Time"
)

// Table is a read-only, frame-indexed view over recorded signals.
// Missing signals and out-of-range frames read as 0.
type Table struct {
	signals map[string][]float64
	dropped []string
	frames  int
	usable  int
}

// NewTable builds a Table from raw signal columns.
// Columns that are empty or all zero are dropped. The usable length is the
// shortest retained column; the total frame count follows the Time column
// when the recording carries one.
func NewTable(raw map[string][]float64) *Table {
	t := &Table{signals: make(map[string][]float64, len(raw))}

	timeLen, hasTime := 0, false
	if col, ok := raw[TimeSignal]; ok {
		timeLen, hasTime = len(col), true
	}

	for name, col := range raw {
		if allZero(col) {
			t.dropped = append(t.dropped, name)
			continue
		}
		t.signals[name] = col
	}
	sort.Strings(t.dropped)

	first := true
	for _, col := range t.signals {
		if first || len(col) < t.usable {
			t.usable = len(col)
			first = false
		}
	}

	t.frames = t.usable
	if hasTime {
		t.frames = timeLen
	}
	return t
}

// Lookup returns one value per requested signal, in request order.
func (t *Table) Lookup(frame int, names []string) []float64 {
	out := make([]float64, len(names))
	for i, name := range names {
		out[i] = t.Value(name, frame)
	}
	return out
}

// Value returns the sample of name at frame, or 0 when the signal is absent
// or shorter than frame.
func (t *Table) Value(name string, frame int) float64 {
	col, ok := t.signals[name]
	if !ok || frame < 0 || frame >= len(col) {
		return 0
	}
	return col[frame]
}

// Has reports whether name survived loading.
func (t *Table) Has(name string) bool {
	_, ok := t.signals[name]
	return ok
}

// Names lists the retained signal names in sorted order.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.signals))
	for name := range t.signals {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dropped lists the signals removed because they carried no data.
func (t *Table) Dropped() []string {
	return append([]string(nil), t.dropped...)
}

// Len is the usable recording length: the shortest retained signal.
func (t *Table) Len() int { return t.usable }

// Frames is the total frame count of the recording.
func (t *Table) Frames() int { return t.frames }

func allZero(col []float64) bool {
	for _, v := range col {
		if v != 0 {
			return false
		}
	}
	return true
}
