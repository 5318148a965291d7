package terrain

import (
	"fmt"

	"github.com/kvark/vange-rs-sub000/vmath"
)

// HeightScale is the world height of a full altitude byte
const HeightScale = 128

// Kind is the material of a terrain layer
type Kind uint8

const (
	KindWater Kind = iota
	KindMain
)

func (k Kind) String() string {
	switch k {
	case KindWater:
		return "water"
	case KindMain:
		return "main"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Layer is one height surface of a texel
type Layer struct {
	Altitude uint8
	Kind     Kind
}

// Texel is one grid cell, either a single surface or two stacked surfaces
// Single texels only use Low
type Texel struct {
	Low   Layer
	High  Layer
	Delta uint8 // vertical gap between the layers, in altitude units
	Dual  bool
}

// Single creates a one-layer texel
func Single(alt uint8, kind Kind) Texel {
	return Texel{Low: Layer{Altitude: alt, Kind: kind}}
}

// NewDual creates a two-layer texel
func NewDual(low, high Layer, delta uint8) Texel {
	return Texel{Low: low, High: high, Delta: delta, Dual: true}
}

// Top returns the highest surface of the texel
func (t Texel) Top() Layer {
	if t.Dual {
		return t.High
	}
	return t.Low
}

// HeightOf converts an altitude byte to world units
func HeightOf(alt uint8) float32 {
	return float32(alt) * HeightScale / 256
}

// Level is a toroidal heightfield with a flood map
// Immutable during a physics step, shared read-only between vehicles
type Level struct {
	Size     [2]int32
	Texels   []Texel // row-major, Size[0] columns
	FloodMap []uint8 // ambient water altitude per region, [0] is the sea level
}

// NewLevel creates a w×h level filled with one texel
func NewLevel(w, h int32, fill Texel) *Level {
	texels := make([]Texel, int(w)*int(h))
	for i := range texels {
		texels[i] = fill
	}
	return &Level{
		Size:     [2]int32{w, h},
		Texels:   texels,
		FloodMap: []uint8{0},
	}
}

// NewFlatLevel creates a single-layer level at one altitude
func NewFlatLevel(w, h int32, alt uint8, kind Kind) *Level {
	return NewLevel(w, h, Single(alt, kind))
}

// NewLevelFunc creates a level whose texels are produced by fn
func NewLevelFunc(w, h int32, fn func(x, y int32) Texel) *Level {
	lvl := NewLevel(w, h, Texel{})
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			lvl.Texels[int(y)*int(w)+int(x)] = fn(x, y)
		}
	}
	return lvl
}

// Validate checks the grid dimensions against the texel storage
func (l *Level) Validate() error {
	if l.Size[0] <= 0 || l.Size[1] <= 0 {
		return fmt.Errorf("terrain: invalid size %dx%d", l.Size[0], l.Size[1])
	}
	if want := int(l.Size[0]) * int(l.Size[1]); len(l.Texels) != want {
		return fmt.Errorf("terrain: %d texels for %dx%d grid, want %d", len(l.Texels), l.Size[0], l.Size[1], want)
	}
	return nil
}

// wrap maps v into [0, size)
func wrap(v, size int32) int32 {
	for v < 0 {
		v += size
	}
	return v % size
}

// TexelAt returns the texel at grid coordinates, wrapping on both axes
func (l *Level) TexelAt(x, y int32) Texel {
	x = wrap(x, l.Size[0])
	y = wrap(y, l.Size[1])
	return l.Texels[int(y)*int(l.Size[0])+int(x)]
}

// TexelAtPoint returns the texel under a world point
func (l *Level) TexelAtPoint(p vmath.Vec3) Texel {
	return l.TexelAt(floor(p[0]), floor(p[1]))
}

// SetTexel stores a texel at wrapped grid coordinates
func (l *Level) SetTexel(x, y int32, t Texel) {
	x = wrap(x, l.Size[0])
	y = wrap(y, l.Size[1])
	l.Texels[int(y)*int(l.Size[0])+int(x)] = t
}

// SeaLevel returns the global water height
// Region lookup is not needed by the physics core; index 0 stands for the whole map
func (l *Level) SeaLevel() float32 {
	if len(l.FloodMap) == 0 {
		return 0
	}
	return HeightOf(l.FloodMap[0])
}

func floor(f float32) int32 {
	i := int32(f)
	if float32(i) > f {
		i--
	}
	return i
}
