package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kvark/vange-rs-sub000/terrain"
)

// RGB is a 24-bit terminal color
type RGB struct {
	R, G, B uint8
}

// Terrain palette
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWater = RGB{30, 70, 150}
	RGBMain  = RGB{110, 150, 70}
	RGBHUD   = RGB{220, 220, 220}
)

// FromRGBA unpacks a 0xRRGGBBAA debug color, alpha is dropped
func FromRGBA(c uint32) RGB {
	return RGB{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
	}
}

// Color converts to a tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Scale multiplies every channel by f
func Scale(c RGB, f float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * f),
		G: clamp(float64(c.G) * f),
		B: clamp(float64(c.B) * f),
	}
}

// Blend optimizes alpha blending
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// TerrainColor shades a layer by its height, darker is lower
func TerrainColor(l terrain.Layer) RGB {
	base := RGBMain
	if l.Kind == terrain.KindWater {
		base = RGBWater
	}
	h := float64(terrain.HeightOf(l.Altitude)) / terrain.HeightScale
	return Scale(base, 0.35+0.65*h)
}
