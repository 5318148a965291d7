package car

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/kvark/vange-rs-sub000/vmath"
)

// File is the TOML layout of a car description
type File struct {
	Name        string        `toml:"name"`
	HalfExtents [3]int8       `toml:"half_extents"`
	SampleStep  int           `toml:"sample_step"`
	Physics     PhysicsFile   `toml:"physics"`
	Wheels      []WheelFile   `toml:"wheel"`
	Polygons    []PolygonFile `toml:"polygon"`
}

// PhysicsFile holds optional overrides, zero values keep the box defaults
type PhysicsFile struct {
	ScaleBound          float32   `toml:"scale_bound"`
	MobilityFactor      float32   `toml:"mobility_factor"`
	SpeedFactor         float32   `toml:"speed_factor"`
	ZOffsetOfMassCenter float32   `toml:"z_offset_of_mass_center"`
	MinWallDelta        float32   `toml:"min_wall_delta"`
	Volume              float32   `toml:"volume"`
	Jacobian            []float32 `toml:"jacobian"` // row-major 3x3
}

type WheelFile struct {
	Pos   [3]float32 `toml:"pos"`
	Steer bool       `toml:"steer"`
}

type PolygonFile struct {
	Middle  [3]float32 `toml:"middle"`
	Normal  [3]float32 `toml:"normal"`
	Samples [][3]int8  `toml:"samples"`
}

// Load reads a car description from disk
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read car %s: %w", path, err)
	}
	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("car %s: %w", path, err)
	}
	return p, nil
}

// Decode builds a profile from TOML
// Without explicit polygons the hull is generated from half_extents
func Decode(data []byte) (*Profile, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if f.HalfExtents == ([3]int8{}) {
		return nil, fmt.Errorf("half_extents is required")
	}

	p := NewBoxProfile(f.Name, f.HalfExtents)
	if f.SampleStep > 0 {
		p.Polygons, p.Samples = BoxHull(f.HalfExtents, f.SampleStep)
	}

	if len(f.Polygons) > 0 {
		p.Polygons = p.Polygons[:0]
		p.Samples = p.Samples[:0]
		for _, pf := range f.Polygons {
			start := len(p.Samples)
			for _, s := range pf.Samples {
				p.Samples = append(p.Samples, Sample(s))
			}
			p.Polygons = append(p.Polygons, Polygon{
				Middle:  vmath.Vec3(pf.Middle),
				Normal:  vmath.Vec3(pf.Normal).Normalize(),
				Samples: [2]int{start, len(p.Samples)},
			})
		}
	}

	if len(f.Wheels) > 0 {
		p.Wheels = p.Wheels[:0]
		for _, w := range f.Wheels {
			p.Wheels = append(p.Wheels, Wheel{Pos: vmath.Vec3(w.Pos), Steer: w.Steer})
		}
	}

	if err := applyPhysics(&p.Physics, f.Physics); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func applyPhysics(dst *Physics, src PhysicsFile) error {
	override := func(dst *float32, v float32) {
		if v != 0 {
			*dst = v
		}
	}
	override(&dst.ScaleBound, src.ScaleBound)
	override(&dst.MobilityFactor, src.MobilityFactor)
	override(&dst.SpeedFactor, src.SpeedFactor)
	override(&dst.MinWallDelta, src.MinWallDelta)
	override(&dst.Volume, src.Volume)
	dst.ZOffsetOfMassCenter = src.ZOffsetOfMassCenter

	switch len(src.Jacobian) {
	case 0:
	case 9:
		j := src.Jacobian
		// mgl32 is column-major
		dst.Jacobian = mgl32.Mat3{
			j[0], j[3], j[6],
			j[1], j[4], j[7],
			j[2], j[5], j[8],
		}
	default:
		return fmt.Errorf("jacobian needs 9 values, got %d", len(src.Jacobian))
	}
	return nil
}
