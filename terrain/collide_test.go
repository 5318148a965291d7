package terrain

import (
	"testing"

	"github.com/kvark/vange-rs-sub000/car"
	"github.com/kvark/vange-rs-sub000/vmath"
)

const wall = 4.0

// square returns four samples of a 2x2 hull patch at z=0 with one polygon over them
func square() (car.Polygon, []car.Sample) {
	samples := []car.Sample{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	poly := car.Polygon{Normal: vmath.Vec3{0, 0, -1}, Samples: [2]int{0, len(samples)}}
	return poly, samples
}

func at(x, y, z float32) vmath.Transform {
	return vmath.NewTransform(vmath.Vec3{x, y, z}, 1)
}

// TestCollideLowNoContact verifies a body above ground produces nothing
func TestCollideLowNoContact(t *testing.T) {
	lvl := NewFlatLevel(16, 16, 40, KindMain)
	poly, samples := square()
	c := CollideLow(poly, samples, 1, at(4, 4, 50), lvl, wall)
	if c.Soft != nil || c.Hard != nil || c.HardDominant {
		t.Errorf("expected empty contact, got %+v", c)
	}
}

// TestCollideLowSoft verifies shallow penetration averages into a soft contact
func TestCollideLowSoft(t *testing.T) {
	lvl := NewFlatLevel(16, 16, 40, KindMain) // height 20
	poly, samples := square()
	c := CollideLow(poly, samples, 1, at(4, 4, 19), lvl, wall)
	if c.Hard != nil {
		t.Errorf("unexpected hard contact %+v", c.Hard)
	}
	if c.HardDominant {
		t.Error("soft-only contact reported hard dominant")
	}
	if c.Soft == nil {
		t.Fatal("expected soft contact")
	}
	if c.Soft.Depth < 0.999 || c.Soft.Depth > 1.001 {
		t.Errorf("soft depth = %g, want 1", c.Soft.Depth)
	}
	want := vmath.Vec3{4.5, 4.5, 19}
	if c.Soft.Pos.Sub(want).Len() > 1e-4 {
		t.Errorf("soft pos = %v, want %v", c.Soft.Pos, want)
	}
}

// TestCollideLowHardFallback verifies deep penetration yields a hard contact and reuses it as soft
func TestCollideLowHardFallback(t *testing.T) {
	lvl := NewFlatLevel(16, 16, 40, KindMain)
	poly, samples := square()
	c := CollideLow(poly, samples, 1, at(4, 4, 10), lvl, wall)
	if c.Hard == nil {
		t.Fatal("expected hard contact")
	}
	if !c.HardDominant {
		t.Error("all-hard contact should be hard dominant")
	}
	if c.Soft == nil || *c.Soft != *c.Hard {
		t.Errorf("soft should fall back to hard, got soft=%+v hard=%+v", c.Soft, c.Hard)
	}
	if c.Hard.Depth < 9.999 || c.Hard.Depth > 10.001 {
		t.Errorf("hard depth = %g, want 10", c.Hard.Depth)
	}
}

// TestCollideLowHardThreshold verifies a few wall hits below the ratio are ignored
func TestCollideLowHardThreshold(t *testing.T) {
	const n = 40
	samples := make([]car.Sample, n)
	for i := range samples {
		samples[i] = car.Sample{int8(i), 0, 0}
	}
	poly := car.Polygon{Normal: vmath.Vec3{0, 0, -1}, Samples: [2]int{0, n}}

	for _, tc := range []struct {
		walls   int32
		hasHard bool
	}{
		{0, false},
		{2, false},
		{3, true},
	} {
		walls := tc.walls
		lvl := NewLevelFunc(64, 4, func(x, y int32) Texel {
			if x < walls {
				return Single(60, KindMain) // height 30
			}
			return Single(40, KindMain) // height 20
		})
		c := CollideLow(poly, samples, 1, at(0.5, 0.5, 19), lvl, wall)
		if (c.Hard != nil) != tc.hasHard {
			t.Errorf("%d wall samples: hard=%v, want present=%v", walls, c.Hard, tc.hasHard)
		}
		if c.Soft == nil || c.Soft.Depth > 1.001 {
			t.Errorf("%d wall samples: soft should come from the shallow samples, got %+v", walls, c.Soft)
		}
		if c.HardDominant {
			t.Errorf("%d wall samples: unexpected hard dominant", walls)
		}
	}
}

// TestCollideLowSampleScale verifies samples are scaled before placement
func TestCollideLowSampleScale(t *testing.T) {
	lvl := NewFlatLevel(16, 16, 40, KindMain)
	samples := []car.Sample{{0, 0, -1}}
	poly := car.Polygon{Normal: vmath.Vec3{0, 0, -1}, Samples: [2]int{0, 1}}

	// Unscaled the sample would sit at 21, above the ground at 20
	c := CollideLow(poly, samples, 3, at(4, 4, 22), lvl, wall)
	if c.Soft == nil {
		t.Fatal("scaled sample should touch")
	}
	if c.Soft.Depth < 0.999 || c.Soft.Depth > 1.001 {
		t.Errorf("depth = %g, want 1", c.Soft.Depth)
	}
}

// TestCollideLowDualTexel verifies layer selection and the skipped band between layers
func TestCollideLowDualTexel(t *testing.T) {
	// Low at 10, high at 50, band midpoint at 30
	lvl := NewFlatLevel(16, 16, 0, KindMain)
	for y := int32(0); y < 16; y++ {
		for x := int32(0); x < 16; x++ {
			lvl.SetTexel(x, y, NewDual(Layer{20, KindMain}, Layer{100, KindMain}, 40))
		}
	}
	samples := []car.Sample{{0, 0, 0}}
	poly := car.Polygon{Normal: vmath.Vec3{0, 0, -1}, Samples: [2]int{0, 1}}

	cases := []struct {
		name  string
		z     float32
		depth float32 // 0 for no contact
	}{
		{"under bridge above low", 25, 0},
		{"in low ground", 8, 2},
		{"band skipped", 35, 0},
		{"on top of high", 47, 3},
	}
	for _, c := range cases {
		got := CollideLow(poly, samples, 1, at(4, 4, c.z), lvl, wall)
		if c.depth == 0 {
			if got.Soft != nil || got.Hard != nil {
				t.Errorf("%s: expected no contact, got %+v", c.name, got)
			}
			continue
		}
		if got.Soft == nil || got.Soft.Depth < c.depth-0.001 || got.Soft.Depth > c.depth+0.001 {
			t.Errorf("%s: soft=%+v, want depth %g", c.name, got.Soft, c.depth)
		}
	}
}

// TestImmersion verifies the wet sample fraction
func TestImmersion(t *testing.T) {
	water := NewFlatLevel(16, 16, 20, KindWater) // ground 10
	water.FloodMap = []uint8{60}                 // sea 30
	samples := []car.Sample{{0, 0, 0}, {0, 0, 10}}

	if got := Immersion(samples, 1, at(4, 4, 25), water); got != 0.5 {
		t.Errorf("half submerged immersion = %g, want 0.5", got)
	}
	if got := Immersion(samples, 1, at(4, 4, 10), water); got != 1 {
		t.Errorf("fully submerged immersion = %g, want 1", got)
	}
	if got := Immersion(samples, 1, at(4, 4, 40), water); got != 0 {
		t.Errorf("dry immersion = %g, want 0", got)
	}

	land := NewFlatLevel(16, 16, 20, KindMain)
	land.FloodMap = []uint8{60}
	if got := Immersion(samples, 1, at(4, 4, 25), land); got != 0 {
		t.Errorf("immersion over land = %g, want 0", got)
	}
	if got := Immersion(nil, 1, at(4, 4, 25), water); got != 0 {
		t.Errorf("immersion without samples = %g, want 0", got)
	}
}
