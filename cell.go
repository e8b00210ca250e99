package gosieterm

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

type ModifierKind int

const (
	ModNone ModifierKind = iota
	ModColour
	ModBold
	ModItalic
	ModUnderline
)

// Modifier is the optional display attribute of a cell. Only ModColour uses Col.
type Modifier struct {
	Kind ModifierKind
	Col  color.RGBA
}

// Cell is what a single character position on the canvas looks like.
type Cell struct {
	Char rune
	Mod  Modifier
}

var (
	CellSolid      = Cell{Char: '*'}
	CellBackground = Cell{Char: '.'}
	CellEmpty      = Cell{Char: ' '}
	// CellVoid marks a cell that was never drawn, for debugging layouts.
	CellVoid       = Cell{Char: '-'}
)

func NewCell(ch rune) Cell {
	return Cell{Char: ch}
}

func (c Cell) WithChar(ch rune) Cell {
	c.Char = ch
	return c
}

func (c Cell) WithMod(m Modifier) Cell {
	c.Mod = m
	return c
}

func (c Cell) WithRGB(r, g, b uint8) Cell {
	c.Mod = Modifier{Kind: ModColour, Col: color.RGBA{R: r, G: g, B: b, A: 255}}
	return c
}

// WithHSV sets a colour from hue, saturation and value. All three use the
// full 0-255 range; hue 0 is red and 128 is cyan.
func (c Cell) WithHSV(h, s, v uint8) Cell {
	r, g, b := colorful.Hsv(float64(h)/256*360, float64(s)/255, float64(v)/255).RGB255()
	return c.WithRGB(r, g, b)
}

func (c Cell) WithColour(col color.RGBA) Cell {
	col.A = 255
	c.Mod = Modifier{Kind: ModColour, Col: col}
	return c
}

func (c Cell) String() string {
	return string(c.Char)
}
