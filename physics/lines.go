package physics

import "github.com/kvark/vange-rs-sub000/vmath"

// Debug line colors, 0xRRGGBBAA
const (
	ColorContact   uint32 = 0xFFFF00FF
	ColorCollision uint32 = 0xFF0000FF
	ColorSpring    uint32 = 0x00FF00FF
	ColorWheel     uint32 = 0x00FFFFFF
	ColorForce     uint32 = 0xFF00FFFF
	ColorVelocity  uint32 = 0xFFFFFFFF
)

// LineSink receives world-space debug segments
// Observation only, the step never reads anything back
type LineSink interface {
	Add(from, to vmath.Vec3, color uint32)
}

// NopSink discards all segments
type NopSink struct{}

func (NopSink) Add(from, to vmath.Vec3, color uint32) {}
