package transform

import (
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"
)

// Pose is a planar position with heading in radians.
type Pose struct {
	Point r2.Point
	Yaw   float64
}

// NewPose builds a Pose from scalar components.
func NewPose(x, y, yaw float64) Pose {
	return Pose{Point: r2.Point{X: x, Y: y}, Yaw: yaw}
}

// NormalizeAngle wraps a into [-pi, pi].
func NormalizeAngle(a float64) float64 {
	return math.Atan2(math.Sin(a), math.Cos(a))
}

// Relative expresses poses in the frame of origin (ego-relative).
// The second result re-projects the relative points back into the world
// frame with Global, for consumers that need both representations.
func Relative(origin Pose, poses []Pose) ([]Pose, []r2.Point) {
	if len(poses) == 0 {
		return nil, nil
	}

	deltas := mat.NewDense(len(poses), 2, nil)
	for i, p := range poses {
		d := p.Point.Sub(origin.Point)
		deltas.Set(i, 0, d.X)
		deltas.Set(i, 1, d.Y)
	}

	// x_rel = cos*dx + sin*dy, y_rel = -sin*dx + cos*dy
	var rel mat.Dense
	rel.Mul(deltas, rotation(origin.Yaw).T())

	out := make([]Pose, len(poses))
	points := make([]r2.Point, len(poses))
	for i, p := range poses {
		points[i] = r2.Point{X: rel.At(i, 0), Y: rel.At(i, 1)}
		out[i] = Pose{
			Point: points[i],
			Yaw:   NormalizeAngle(p.Yaw - origin.Yaw),
		}
	}
	return out, Global(origin, points)
}

// Global maps points given in the frame of origin back into the world frame.
func Global(origin Pose, points []r2.Point) []r2.Point {
	if len(points) == 0 {
		return nil
	}

	local := mat.NewDense(len(points), 2, nil)
	for i, p := range points {
		local.Set(i, 0, p.X)
		local.Set(i, 1, p.Y)
	}

	// x = cos*xr - sin*yr + ox, y = sin*xr + cos*yr + oy
	var world mat.Dense
	world.Mul(local, rotation(origin.Yaw))

	out := make([]r2.Point, len(points))
	for i := range points {
		out[i] = r2.Point{X: world.At(i, 0), Y: world.At(i, 1)}.Add(origin.Point)
	}
	return out
}

// rotation is the world-to-origin rotation [[cos, sin], [-sin, cos]].
func rotation(yaw float64) *mat.Dense {
	s, c := math.Sincos(yaw)
	return mat.NewDense(2, 2, []float64{
		c, s,
		-s, c,
	})
}
