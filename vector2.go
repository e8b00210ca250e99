package gosieterm

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is an integer grid position on the canvas.
type Vec2 struct {
	X int
	Y int
}

func V2(x, y int) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) In(r image.Rectangle) bool {
	return v.X >= r.Min.X && v.X < r.Max.X && v.Y >= r.Min.Y && v.Y < r.Max.Y
}

// maxCoord bounds rounded coordinates so line stepping arithmetic on them
// cannot overflow.
const maxCoord = 1 << 28

// RoundVec2 snaps a floating screen coordinate to the nearest cell. Values
// beyond maxCoord are clamped and NaN becomes 0.
func RoundVec2(x, y float64) Vec2 {
	return Vec2{X: roundCoord(x), Y: roundCoord(y)}
}

func roundCoord(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(mgl64.Clamp(v, -maxCoord, maxCoord)))
}

// Pixel is a single cell write produced by rasterizing a shape.
type Pixel struct {
	Pos  Vec2
	Cell Cell
}
