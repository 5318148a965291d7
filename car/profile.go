package car

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kvark/vange-rs-sub000/vmath"
)

// Sample is a hull point in integer hull units
type Sample [3]int8

func (s Sample) Vec3() vmath.Vec3 {
	return vmath.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}

// Polygon is one collision hull face
// Samples is the half-open range [start, end) into Profile.Samples
type Polygon struct {
	Middle  vmath.Vec3
	Normal  vmath.Vec3
	Samples [2]int
}

// Wheel is a wheel contact position in model units
type Wheel struct {
	Pos   vmath.Vec3
	Steer bool
}

// Bounds is the body bounding box in model units
type Bounds struct {
	Min vmath.Vec3
	Max vmath.Vec3
}

// Radius returns half of the box diagonal
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Len() * 0.5
}

// Physics holds per-car scale factors and mass distribution
type Physics struct {
	// ScaleBound maps hull units of samples and polygon middles into model units
	ScaleBound          float32
	MobilityFactor      float32
	SpeedFactor         float32
	ZOffsetOfMassCenter float32
	// MinWallDelta is the penetration depth above which a sample is a wall hit
	MinWallDelta float32
	Volume       float32
	Jacobian     mgl32.Mat3
}

// Profile is the immutable description of a car model
// Produced by the model loader, shared read-only between vehicles of the same model
type Profile struct {
	Name     string
	Bounds   Bounds
	Wheels   []Wheel
	Polygons []Polygon
	Samples  []Sample
	Physics  Physics
}

// PolygonSamples returns the sample slice of one polygon
func (p *Profile) PolygonSamples(poly Polygon) []Sample {
	return p.Samples[poly.Samples[0]:poly.Samples[1]]
}

// Validate checks hull ranges and mass data
func (p *Profile) Validate() error {
	for i, poly := range p.Polygons {
		start, end := poly.Samples[0], poly.Samples[1]
		if start < 0 || end < start || end > len(p.Samples) {
			return fmt.Errorf("car %q: polygon %d sample range [%d,%d) outside %d samples", p.Name, i, start, end, len(p.Samples))
		}
	}
	if p.Physics.Volume <= 0 {
		return fmt.Errorf("car %q: non-positive volume %g", p.Name, p.Physics.Volume)
	}
	if p.Physics.ScaleBound <= 0 {
		return fmt.Errorf("car %q: non-positive scale_bound %g", p.Name, p.Physics.ScaleBound)
	}
	if p.Physics.SpeedFactor <= 0 {
		return fmt.Errorf("car %q: non-positive speed_factor %g", p.Name, p.Physics.SpeedFactor)
	}
	if det := p.Physics.Jacobian.Det(); det == 0 {
		return fmt.Errorf("car %q: singular jacobian", p.Name)
	}
	return nil
}
