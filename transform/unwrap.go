package transform

const (
	// wrapModulus is the span after which a scan-scaled position field wraps.
	wrapModulus = 16.0
	// wrapThreshold is the largest frame-to-frame step accepted as real motion.
	wrapThreshold = wrapModulus / 2
)

// Accumulator is the running world-frame state of one wrapped position axis.
// Position is the unwrapped world coordinate at the last committed sample and
// Prev is the raw (wrapped) value of that sample.
type Accumulator struct {
	Position float64
	Prev     float64
}

// WorldState carries both horizontal axes across successive windows.
type WorldState struct {
	X Accumulator
	Y Accumulator
}

// Unwrap reconstructs a monotonically accumulating world coordinate from
// raw wrapping samples, starting from acc. The accumulator is not modified;
// use Commit to advance it.
func Unwrap(acc Accumulator, raw []float64) []float64 {
	out := make([]float64, len(raw))
	position, prev := acc.Position, acc.Prev
	for i, cur := range raw {
		delta := cur - prev
		switch {
		case delta < -wrapThreshold:
			delta += wrapModulus
		case delta > wrapThreshold:
			delta -= wrapModulus
		}
		position += delta
		out[i] = position
		prev = cur
	}
	return out
}

// Commit returns the accumulator positioned at sample i of a previous Unwrap
// call, so the next window continues from that frame.
func (a Accumulator) Commit(raw, world []float64, i int) Accumulator {
	if i < 0 || i >= len(raw) || i >= len(world) {
		return a
	}
	return Accumulator{Position: world[i], Prev: raw[i]}
}
