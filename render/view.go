package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kvark/vange-rs-sub000/terrain"
	"github.com/kvark/vange-rs-sub000/vmath"
)

// maxLineCells bounds the rasterized length of a single debug segment
const maxLineCells = 512

// View is a top-down orthographic camera over the world XY plane
// World Y points up the screen; one row covers two columns of world space
type View struct {
	Center vmath.Vec3
	Zoom   float32 // world units per column
	Width  int
	Height int
}

// NewView fits a view to the screen size
func NewView(s tcell.Screen, center vmath.Vec3, zoom float32) View {
	w, h := s.Size()
	return View{Center: center, Zoom: zoom, Width: w, Height: h}
}

// Project maps a world point to a cell, ok is false off screen
func (v View) Project(p vmath.Vec3) (x, y int, ok bool) {
	fx := (p.X()-v.Center.X())/v.Zoom + float32(v.Width)/2
	fy := float32(v.Height)/2 - (p.Y()-v.Center.Y())/(2*v.Zoom)
	x, y = floorInt(fx), floorInt(fy)
	return x, y, x >= 0 && y >= 0 && x < v.Width && y < v.Height
}

// Unproject returns the world XY at the center of a cell
func (v View) Unproject(x, y int) vmath.Vec3 {
	return vmath.Vec3{
		v.Center.X() + (float32(x)+0.5-float32(v.Width)/2)*v.Zoom,
		v.Center.Y() - (float32(y)+0.5-float32(v.Height)/2)*2*v.Zoom,
		0,
	}
}

func floorInt(f float32) int {
	i := int(f)
	if float32(i) > f {
		i--
	}
	return i
}

// DrawTerrain fills every cell with the shade of the top layer under it
// Dual texels are drawn with a half block to mark the gap
func DrawTerrain(s tcell.Screen, v View, level *terrain.Level) {
	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			t := level.TexelAtPoint(v.Unproject(x, y))
			style := tcell.StyleDefault.Background(TerrainColor(t.Top()).Color())
			ch := ' '
			if t.Dual {
				ch = '▄'
				style = style.Foreground(TerrainColor(t.Low).Color())
			}
			s.SetContent(x, y, ch, nil, style)
		}
	}
}

// DrawPoints marks world points with a glyph, keeping the cell background
func DrawPoints(s tcell.Screen, v View, points []vmath.Vec3, ch rune, color RGB) {
	for _, p := range points {
		x, y, ok := v.Project(p)
		if !ok {
			continue
		}
		plot(s, x, y, ch, color)
	}
}

// DrawLines rasterizes debug segments projected onto the ground plane
func DrawLines(s tcell.Screen, v View, lines []Line) {
	for _, l := range lines {
		x0, y0, _ := v.Project(l.From)
		x1, y1, _ := v.Project(l.To)
		color := FromRGBA(l.Color)
		bresenham(x0, y0, x1, y1, func(x, y int) {
			if x >= 0 && y >= 0 && x < v.Width && y < v.Height {
				plot(s, x, y, '·', color)
			}
		})
	}
}

// DrawText writes a string starting at a cell, clipped to the screen width
func DrawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func plot(s tcell.Screen, x, y int, ch rune, color RGB) {
	_, _, style, _ := s.GetContent(x, y)
	s.SetContent(x, y, ch, nil, style.Foreground(color.Color()))
}

func bresenham(x0, y0, x1, y1 int, fn func(x, y int)) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	if dx-dy > maxLineCells {
		return
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		fn(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
