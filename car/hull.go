package car

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kvark/vange-rs-sub000/vmath"
)

const (
	// DefaultSampleStep is the hull sample spacing in hull units
	DefaultSampleStep = 4
	// DefaultMinWallDelta is the penetration depth that turns a soft touch into a wall hit
	DefaultMinWallDelta = 4.0

	wheelInsetX = 0.8
	wheelInsetY = 0.7
)

// face describes one axis-aligned rectangle of the box hull
type face struct {
	normal vmath.Vec3
	lo, hi [3]int // inclusive bounds, the normal axis has lo == hi
}

// gridCoords spreads n points evenly over [lo, hi], rounding away from zero
func gridCoords(lo, hi, step int) []int8 {
	if lo == hi {
		return []int8{int8(lo)}
	}
	n := (hi - lo) / step
	if n < 1 {
		n = 1
	}
	spacing := float64(hi-lo) / float64(n)
	out := make([]int8, n)
	for i := range out {
		out[i] = int8(math.Round(float64(lo) + spacing*(float64(i)+0.5)))
	}
	return out
}

// addFace appends one polygon with its sample grid
func addFace(p *Profile, f face, step int) {
	start := len(p.Samples)
	for _, x := range gridCoords(f.lo[0], f.hi[0], step) {
		for _, y := range gridCoords(f.lo[1], f.hi[1], step) {
			for _, z := range gridCoords(f.lo[2], f.hi[2], step) {
				p.Samples = append(p.Samples, Sample{x, y, z})
			}
		}
	}
	var middle vmath.Vec3
	for i := 0; i < 3; i++ {
		middle[i] = 0.5 * float32(f.lo[i]+f.hi[i])
	}
	p.Polygons = append(p.Polygons, Polygon{
		Middle:  middle,
		Normal:  f.normal,
		Samples: [2]int{start, len(p.Samples)},
	})
}

// BoxHull builds a six-face hull for a box of the given half extents in hull units
// The bottom and top faces are split into four quadrants so uneven ground produces torque
// either side up, and both carry the same sample count
func BoxHull(half [3]int8, step int) ([]Polygon, []Sample) {
	if step <= 0 {
		step = DefaultSampleStep
	}
	hx, hy, hz := int(half[0]), int(half[1]), int(half[2])
	p := &Profile{}

	// Bottom quadrants first, then the top ones
	caps := []struct {
		z      int
		normal vmath.Vec3
	}{{-hz, vmath.Vec3{0, 0, -1}}, {hz, vmath.Vec3{0, 0, 1}}}
	for _, c := range caps {
		for _, qx := range [2][2]int{{-hx, 0}, {0, hx}} {
			for _, qy := range [2][2]int{{-hy, 0}, {0, hy}} {
				addFace(p, face{
					normal: c.normal,
					lo:     [3]int{qx[0], qy[0], c.z},
					hi:     [3]int{qx[1], qy[1], c.z},
				}, step)
			}
		}
	}

	faces := []face{
		{normal: vmath.Vec3{1, 0, 0}, lo: [3]int{hx, -hy, -hz}, hi: [3]int{hx, hy, hz}},
		{normal: vmath.Vec3{-1, 0, 0}, lo: [3]int{-hx, -hy, -hz}, hi: [3]int{-hx, hy, hz}},
		{normal: vmath.Vec3{0, 1, 0}, lo: [3]int{-hx, hy, -hz}, hi: [3]int{hx, hy, hz}},
		{normal: vmath.Vec3{0, -1, 0}, lo: [3]int{-hx, -hy, -hz}, hi: [3]int{hx, -hy, hz}},
	}
	for _, f := range faces {
		addFace(p, f, step)
	}
	return p.Polygons, p.Samples
}

// BoxJacobian returns volume-weighted inertia of a solid box with half extents h
func BoxJacobian(h vmath.Vec3, volume float32) mgl32.Mat3 {
	x2, y2, z2 := h[0]*h[0], h[1]*h[1], h[2]*h[2]
	return mgl32.Diag3(vmath.Vec3{
		(y2 + z2) / 3,
		(x2 + z2) / 3,
		(x2 + y2) / 3,
	}).Mul(volume)
}

// NewBoxProfile creates a box car with four wheels, the front pair steerable
func NewBoxProfile(name string, half [3]int8) *Profile {
	polys, samples := BoxHull(half, DefaultSampleStep)
	h := Sample(half).Vec3()
	volume := 8 * h[0] * h[1] * h[2]

	wheels := make([]Wheel, 0, 4)
	for _, sy := range []float32{1, -1} {
		for _, sx := range []float32{-1, 1} {
			wheels = append(wheels, Wheel{
				Pos:   vmath.Vec3{sx * wheelInsetX * h[0], sy * wheelInsetY * h[1], -h[2]},
				Steer: sy > 0,
			})
		}
	}

	return &Profile{
		Name:     name,
		Bounds:   Bounds{Min: h.Mul(-1), Max: h},
		Wheels:   wheels,
		Polygons: polys,
		Samples:  samples,
		Physics: Physics{
			ScaleBound:     1,
			MobilityFactor: 1,
			SpeedFactor:    1,
			MinWallDelta:   DefaultMinWallDelta,
			Volume:         volume,
			Jacobian:       BoxJacobian(h, volume),
		},
	}
}
