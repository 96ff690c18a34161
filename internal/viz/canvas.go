package viz

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	brailleBlank = 0x2800
	dotsX        = 2
	dotsY        = 4
	maxMarker    = 3
)

// brailleBits[row][col] is the code point bit of one dot in a braille cell.
var brailleBits = [dotsY][dotsX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas rasterizes world coordinates onto braille cells. The world origin
// sits at the centre, y points up, and Scale gives dots per world unit.
type Canvas struct {
	Cols, Rows int
	Scale      float64
	cells      [][]rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{Cols: cols, Rows: rows, Scale: 1, cells: make([][]rune, rows)}
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
	}
	c.Clear()
	return c
}

// Dots returns the raster size in braille dots.
func (c *Canvas) Dots() (w, h int) {
	return c.Cols * dotsX, c.Rows * dotsY
}

// Fit returns the scale at which a circle of radius extent around the
// origin fills fraction of the shorter side.
func (c *Canvas) Fit(extent, fraction float64) float64 {
	w, h := c.Dots()
	if !(extent > 0) {
		return c.Scale
	}
	return fraction * float64(min(w, h)) / 2 / extent
}

// Project maps a world position to dot coordinates.
func (c *Canvas) Project(p r2.Vec) (int, int) {
	w, h := c.Dots()
	return w/2 + int(math.Round(p.X*c.Scale)), h/2 - int(math.Round(p.Y*c.Scale))
}

func (c *Canvas) dot(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/dotsX, y/dotsY
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row][col] |= brailleBits[y%dotsY][x%dotsX]
}

// Point marks the dot under p.
func (c *Canvas) Point(p r2.Vec) {
	c.dot(c.Project(p))
}

// Segment marks every dot along a to b.
func (c *Canvas) Segment(a, b r2.Vec) {
	x0, y0 := c.Project(a)
	x1, y1 := c.Project(b)
	n := max(abs(x1-x0), abs(y1-y0))
	if n == 0 {
		c.dot(x0, y0)
		return
	}
	for k := 0; k <= n; k++ {
		f := float64(k) / float64(n)
		c.dot(x0+int(math.Round(f*float64(x1-x0))), y0+int(math.Round(f*float64(y1-y0))))
	}
}

// Body draws a filled marker at p whose radius grows with log10 of mass.
// Bodies without positive mass get a single dot.
func (c *Canvas) Body(p r2.Vec, mass float64) {
	x, y := c.Project(p)
	r := MarkerRadius(mass)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.dot(x+dx, y+dy)
			}
		}
	}
}

// MarkerRadius is the dot radius Body uses for mass.
func MarkerRadius(mass float64) int {
	if !(mass > 0) {
		return 0
	}
	return min(maxMarker, 1+int(math.Log10(1+mass)))
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = brailleBlank
		}
	}
}

// Lit counts the dots currently set.
func (c *Canvas) Lit() int {
	n := 0
	for _, row := range c.cells {
		for _, r := range row {
			for bits := r - brailleBlank; bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
