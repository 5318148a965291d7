package terrain

import "math"

// Demo level layout, in texels
const (
	demoGroundAlt = 40
	demoSeaAlt    = 36
	demoLakeAlt   = 16
	demoBridgeAlt = 64
	demoWallAlt   = 90
)

// NewDemoLevel builds a size×size test ground with gentle hills, a lake crossed by a bridge
// and a wall block. The car start at the center is flat.
func NewDemoLevel(size int32) *Level {
	s := float64(size)
	lvl := NewLevelFunc(size, size, func(x, y int32) Texel {
		fx, fy := float64(x)/s, float64(y)/s

		// Lake band across the lower quarter, bridged in the middle
		if fy > 0.15 && fy < 0.25 {
			water := Layer{Altitude: demoLakeAlt, Kind: KindWater}
			if fx > 0.45 && fx < 0.55 {
				return NewDual(water, Layer{Altitude: demoBridgeAlt, Kind: KindMain}, demoBridgeAlt-demoLakeAlt)
			}
			return Texel{Low: water}
		}

		// Wall block in the upper right
		if fx > 0.7 && fx < 0.8 && fy > 0.7 && fy < 0.75 {
			return Single(demoWallAlt, KindMain)
		}

		// Hills fade out toward the center so the start is flat
		d := math.Hypot(fx-0.5, fy-0.5)
		hill := 12 * math.Sin(fx*4*math.Pi) * math.Sin(fy*4*math.Pi) * math.Min(1, math.Max(0, d*4-0.6))
		return Single(uint8(demoGroundAlt+hill), KindMain)
	})
	lvl.FloodMap = []uint8{demoSeaAlt}
	return lvl
}
