package terrain

import (
	"github.com/kvark/vange-rs-sub000/car"
	"github.com/kvark/vange-rs-sub000/vmath"
)

// hardHitRatio is the share of polygon samples a hard contact needs to register
// Tuned, keep as-is
const hardHitRatio = 0.05

// ContactPoint is an averaged penetration in world space
type ContactPoint struct {
	Pos   vmath.Vec3
	Depth float32
}

// Contact is the result of testing one hull polygon against the terrain
type Contact struct {
	Soft         *ContactPoint
	Hard         *ContactPoint
	HardDominant bool
}

type aggregate struct {
	pos   vmath.Vec3
	depth float32
	count int
}

func (a *aggregate) add(pos vmath.Vec3, depth float32) {
	a.pos = a.pos.Add(pos)
	a.depth += depth
	a.count++
}

func (a *aggregate) finish(minCount float32) *ContactPoint {
	if float32(a.count) <= minCount || a.count == 0 {
		return nil
	}
	inv := 1 / float32(a.count)
	return &ContactPoint{
		Pos:   a.pos.Mul(inv),
		Depth: a.depth * inv,
	}
}

// surfaceHeight returns the height a world point is tested against
// ok is false when the point sits in the band between the layers of a dual texel
// and is skipped entirely, which is inherited behavior that may under-count contacts
func surfaceHeight(t Texel, z float32) (h float32, kind Kind, ok bool) {
	if !t.Dual {
		return HeightOf(t.Low.Altitude), t.Low.Kind, true
	}
	low := HeightOf(t.Low.Altitude)
	high := HeightOf(t.High.Altitude)
	mid := 0.5 * (low + high)
	if z < mid {
		return low, t.Low.Kind, true
	}
	if z-mid > high-z {
		return high, t.High.Kind, true
	}
	return 0, 0, false
}

// CollideLow tests the samples of one polygon against the terrain
// Samples deeper than wallThreshold count as hard, shallower positive depths as soft
func CollideLow(poly car.Polygon, samples []car.Sample, sampleScale float32, transform vmath.Transform, level *Level, wallThreshold float32) Contact {
	var soft, hard aggregate
	start, end := poly.Samples[0], poly.Samples[1]
	total := end - start

	for _, s := range samples[start:end] {
		pos := transform.TransformPoint(s.Vec3().Mul(sampleScale))
		h, _, ok := surfaceHeight(level.TexelAtPoint(pos), pos[2])
		if !ok {
			continue
		}
		dz := h - pos[2]
		if dz > wallThreshold {
			hard.add(pos, dz)
		} else if dz > 0 {
			soft.add(pos, dz)
		}
	}

	c := Contact{
		Hard:         hard.finish(hardHitRatio * float32(total)),
		HardDominant: hard.count*2 >= total,
	}
	if soft.count != 0 {
		c.Soft = soft.finish(0)
	} else {
		c.Soft = hard.finish(0)
	}
	return c
}

// Immersion returns the fraction of samples under the sea level above water texels
func Immersion(samples []car.Sample, sampleScale float32, transform vmath.Transform, level *Level) float32 {
	if len(samples) == 0 {
		return 0
	}
	sea := level.SeaLevel()
	wet := 0
	for _, s := range samples {
		pos := transform.TransformPoint(s.Vec3().Mul(sampleScale))
		if pos[2] >= sea {
			continue
		}
		if _, kind, ok := surfaceHeight(level.TexelAtPoint(pos), pos[2]); ok && kind == KindWater {
			wet++
		}
	}
	return float32(wet) / float32(len(samples))
}
