package gosieterm

import (
	"fmt"
	"image"
	"strings"
)

// Canvas is a fixed size grid of cells, the only output surface of the engine.
type Canvas struct {
	width      int
	height     int
	background Cell
	cells      []Cell
}

func NewCanvas(width, height int, background Cell) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas %dx%d: %w", width, height, ErrInvalidDimension)
	}
	c := &Canvas{
		width:      width,
		height:     height,
		background: background,
		cells:      make([]Cell, width*height),
	}
	c.Clear()
	return c, nil
}

func (c *Canvas) Width() int {
	return c.width
}

func (c *Canvas) Height() int {
	return c.height
}

func (c *Canvas) Background() Cell {
	return c.background
}

func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// Plot writes a cell. Coordinates outside the canvas are ignored.
func (c *Canvas) Plot(x, y int, cell Cell) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell
}

func (c *Canvas) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Cell{}, false
	}
	return c.cells[y*c.width+x], true
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = c.background
	}
}

// Draw rasterizes a single shape onto the canvas, clipped to its bounds.
func (c *Canvas) Draw(s Shape) error {
	return rasterize(s, c.Bounds(), func(p Vec2, cell Cell) {
		c.Plot(p.X, p.Y, cell)
	})
}

// Render returns the canvas rows, row 0 first, each exactly Width runes long.
func (c *Canvas) Render() []string {
	lines := make([]string, c.height)
	var sb strings.Builder
	for y := 0; y < c.height; y++ {
		sb.Reset()
		for _, cell := range c.cells[y*c.width : (y+1)*c.width] {
			sb.WriteRune(cell.Char)
		}
		lines[y] = sb.String()
	}
	return lines
}

// Row returns a copy of row y, or nil when y is out of range.
func (c *Canvas) Row(y int) []Cell {
	if y < 0 || y >= c.height {
		return nil
	}
	row := make([]Cell, c.width)
	copy(row, c.cells[y*c.width:(y+1)*c.width])
	return row
}

// Pixels returns every cell that differs from the background.
func (c *Canvas) Pixels() []Pixel {
	pixels := make([]Pixel, 0)
	for i, cell := range c.cells {
		if cell == c.background {
			continue
		}
		pixels = append(pixels, Pixel{Pos: Vec2{X: i % c.width, Y: i / c.width}, Cell: cell})
	}
	return pixels
}

func (c *Canvas) String() string {
	return strings.Join(c.Render(), "\n")
}
