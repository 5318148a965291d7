package render

import "github.com/kvark/vange-rs-sub000/vmath"

// Line is one world-space debug segment
type Line struct {
	From, To vmath.Vec3
	Color    uint32
}

// LineBuffer collects debug segments of one frame
type LineBuffer struct {
	lines []Line
}

func NewLineBuffer() *LineBuffer {
	return &LineBuffer{lines: make([]Line, 0, 64)}
}

func (b *LineBuffer) Add(from, to vmath.Vec3, color uint32) {
	b.lines = append(b.lines, Line{From: from, To: to, Color: color})
}

// Lines returns the collected segments, valid until the next Reset
func (b *LineBuffer) Lines() []Line {
	return b.lines
}

// Reset drops all segments, keeping capacity
func (b *LineBuffer) Reset() {
	b.lines = b.lines[:0]
}
