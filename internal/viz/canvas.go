package viz

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBase = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells, each holding 2x4 dots, with an optional
// text overlay drawn on top.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	overlay       map[[2]int]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		overlay: make(map[[2]int]rune),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// DotsWide and DotsHigh give the canvas size in dots.
func (c *Canvas) DotsWide() int { return c.Width * 2 }
func (c *Canvas) DotsHigh() int { return c.Height * 4 }

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
	clear(c.overlay)
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisc fills every dot within r of (cx, cy).
func (c *Canvas) DrawDisc(cx, cy, r int) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.Set(cx+x, cy+y)
			}
		}
	}
}

// Label writes text into the overlay starting at the cell holding dot (x, y).
// Characters past the right edge are dropped.
func (c *Canvas) Label(x, y int, text string) {
	col, row := x/2, y/4
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range text {
		if col >= c.Width {
			return
		}
		if col >= 0 {
			c.overlay[[2]int{row, col}] = r
		}
		col++
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if o, ok := c.overlay[[2]int{i, j}]; ok {
				r = o
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps a world box onto canvas dots, keeping the aspect ratio and
// flipping y so that up is up.
type Viewport struct {
	world  r2.Box
	scale  float64
	offX   float64
	offY   float64
	height int
}

func NewViewport(c *Canvas, world r2.Box) Viewport {
	size := world.Size()
	if size.X <= 0 {
		size.X = 1
	}
	if size.Y <= 0 {
		size.Y = 1
	}
	w, h := float64(c.DotsWide()-1), float64(c.DotsHigh()-1)
	scale := math.Min(w/size.X, h/size.Y)
	return Viewport{
		world:  world,
		scale:  scale,
		offX:   (w - size.X*scale) / 2,
		offY:   (h - size.Y*scale) / 2,
		height: c.DotsHigh() - 1,
	}
}

func (v Viewport) Project(p r2.Vec) (int, int) {
	x := v.offX + (p.X-v.world.Min.X)*v.scale
	y := v.offY + (p.Y-v.world.Min.Y)*v.scale
	return int(math.Round(x)), v.height - int(math.Round(y))
}

// FitBox returns the bounding box of points grown by pad of its size on
// every side.
func FitBox(points []r2.Vec, pad float64) r2.Box {
	if len(points) == 0 {
		return r2.NewBox(-1, -1, 1, 1)
	}
	b := r2.Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	grow := r2.Scale(pad, b.Size())
	grow.X = math.Max(grow.X, 1)
	grow.Y = math.Max(grow.Y, 1)
	return r2.Box{Min: r2.Sub(b.Min, grow), Max: r2.Add(b.Max, grow)}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
