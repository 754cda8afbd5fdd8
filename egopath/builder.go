// Package egopath turns a window of ego-motion frames into a fixed-size
// trajectory expressed relative to the ego pose at the window's first frame.
package egopath

import (
	"github.com/Haoqing-Wu/ro-labeling-tool/signals"
	"github.com/Haoqing-Wu/ro-labeling-tool/transform"
)

// DefaultTargetPoints is the number of trajectory points a long window is
// downsampled to.
const DefaultTargetPoints = 40

// Sample is one frame of raw ego signals.
type Sample struct {
	X   float64
	Y   float64
	Yaw float64
	VX  float64
	AX  float64
	AY  float64
}

// SampleFromValues maps values read in signals.EgoSignals order onto a Sample.
func SampleFromValues(v []float64) Sample {
	var s Sample
	fields := []*float64{&s.X, &s.Y, &s.Yaw, &s.VX, &s.AX, &s.AY}
	for i := range fields {
		if i < len(v) {
			*fields[i] = v[i]
		}
	}
	return s
}

// Point is one ego trajectory node in the ego-relative frame.
type Point struct {
	Time      float64 `json:"time_s"`
	X         float64 `json:"x_rel_m"`
	Y         float64 `json:"y_rel_m"`
	Yaw       float64 `json:"yaw_rel_rad"`
	Curvature float64 `json:"curvature"` // not computed, always 0
	VX        float64 `json:"velocity_x_mps"`
	AX        float64 `json:"accel_x_mps2"`
	Distance  float64 `json:"distance_at_node_m"` // not computed, always 0
}

// Builder converts ego windows into trajectories.
type Builder struct {
	// TargetPoints caps the number of points of a long window.
	TargetPoints int
	// TimeStep is the frame period in seconds.
	TimeStep float64
	// Stride is the number of frames between the first frames of two
	// successive windows. The returned world state is committed at the last
	// frame before the next window starts.
	Stride int
}

// NewBuilder returns a Builder with the recording defaults and a stride of
// one frame.
func NewBuilder() Builder {
	return Builder{
		TargetPoints: DefaultTargetPoints,
		TimeStep:     signals.TimeStep,
		Stride:       1,
	}
}

// Build unwraps the window from state, projects it into the frame of its
// first pose and downsamples it. It returns the trajectory and the world
// state to pass to the next window.
func (b Builder) Build(state transform.WorldState, window []Sample) ([]Point, transform.WorldState) {
	if len(window) == 0 {
		return nil, state
	}

	rawX := make([]float64, len(window))
	rawY := make([]float64, len(window))
	for i, s := range window {
		rawX[i] = s.X
		rawY[i] = s.Y
	}
	worldX := transform.Unwrap(state.X, rawX)
	worldY := transform.Unwrap(state.Y, rawY)

	commit := b.commitIndex(len(window))
	next := transform.WorldState{
		X: state.X.Commit(rawX, worldX, commit),
		Y: state.Y.Commit(rawY, worldY, commit),
	}

	poses := make([]transform.Pose, len(window))
	for i, s := range window {
		poses[i] = transform.NewPose(worldX[i], worldY[i], s.Yaw)
	}
	rel, _ := transform.Relative(poses[0], poses)

	step, end := downsample(len(window), b.targetPoints())
	out := make([]Point, 0, (end+step-1)/step)
	for i := 0; i < end; i += step {
		out = append(out, Point{
			Time: float64(i) * b.timeStep(),
			X:    rel[i].Point.X,
			Y:    rel[i].Point.Y,
			Yaw:  rel[i].Yaw,
			VX:   window[i].VX,
			AX:   window[i].AX,
		})
	}
	return out, next
}

// ExpectedPoints is the number of points Build emits for a window of n
// frames and a target of target points.
func ExpectedPoints(n, target int) int {
	if n <= 0 {
		return 0
	}
	step, end := downsample(n, target)
	return (end + step - 1) / step
}

// downsample returns the index step and the exclusive end index used to pick
// points from a window of n frames.
func downsample(n, target int) (step, end int) {
	if target <= 0 || n <= target {
		return 1, n
	}
	step = n/target + 1
	return step, min(step*target, n)
}

func (b Builder) commitIndex(n int) int {
	stride := b.Stride
	if stride <= 0 {
		stride = 1
	}
	return min(stride, n) - 1
}

func (b Builder) targetPoints() int {
	if b.TargetPoints <= 0 {
		return DefaultTargetPoints
	}
	return b.TargetPoints
}

func (b Builder) timeStep() float64 {
	if b.TimeStep <= 0 {
		return signals.TimeStep
	}
	return b.TimeStep
}
