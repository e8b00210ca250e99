package gosieterm

import (
	"fmt"
	"image"
	"math"
	"sort"
)

type plotFunc func(p Vec2, c Cell)

// Pixels returns every cell write a shape produces, without clipping.
func Pixels(s Shape) ([]Pixel, error) {
	pixels := make([]Pixel, 0, 16)
	err := rasterize(s, image.Rectangle{}, func(p Vec2, c Cell) {
		pixels = append(pixels, Pixel{Pos: p, Cell: c})
	})
	if err != nil {
		return nil, err
	}
	return pixels, nil
}

// rasterize dispatches on the shape variant. An empty clip rectangle means
// no clipping.
func rasterize(s Shape, clip image.Rectangle, plot plotFunc) error {
	switch sh := s.(type) {
	case Point:
		plotClipped(sh.Pos, sh.Fill, clip, plot)
	case Line:
		drawLine(sh.A, sh.B, sh.Fill, clip, plot)
	case Polygon:
		if len(sh.Vertices) < 3 {
			return fmt.Errorf("polygon with %d vertices: %w", len(sh.Vertices), ErrInvalidGeometry)
		}
		if sh.Filled {
			fillPolygon(sh.Vertices, sh.Fill, clip, plot)
		}
		drawOutline(sh.Vertices, sh.Fill, clip, plot)
	case Rect:
		fillRect(sh, clip, plot)
	case TextBlob:
		drawText(sh, clip, plot)
	case Toggle:
		if !sh.Visible {
			return validateShape(sh.Shape)
		}
		return rasterize(sh.Shape, clip, plot)
	case nil:
		return fmt.Errorf("nil shape: %w", ErrInvalidGeometry)
	default:
		return fmt.Errorf("unknown shape %T: %w", s, ErrInvalidGeometry)
	}
	return nil
}

func plotClipped(p Vec2, c Cell, clip image.Rectangle, plot plotFunc) {
	if clip.Empty() || p.In(clip) {
		plot(p, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// lineStepper walks the cells of a Bresenham line. Every step moves one
// cell along the major axis, and the minor offset after k steps has a closed
// form, so a walk can start anywhere on the line.
type lineStepper struct {
	origin       Vec2
	major, minor int
	sx, sy       int
	xMajor       bool
}

func newLineStepper(a, b Vec2) lineStepper {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	s := lineStepper{origin: a, sx: 1, sy: 1, xMajor: dx >= dy}
	if b.X < a.X {
		s.sx = -1
	}
	if b.Y < a.Y {
		s.sy = -1
	}
	if s.xMajor {
		s.major, s.minor = dx, dy
	} else {
		s.major, s.minor = dy, dx
	}
	return s
}

// at returns cell k of the line, 0 <= k <= major. The minor offset is
// floor((2k*minor + major) / (2*major)), the same cell the incremental error
// term picks, ties included.
func (s lineStepper) at(k int) Vec2 {
	j := 0
	if s.major > 0 {
		j = (2*k*s.minor + s.major) / (2 * s.major)
	}
	if s.xMajor {
		return Vec2{X: s.origin.X + k*s.sx, Y: s.origin.Y + j*s.sy}
	}
	return Vec2{X: s.origin.X + j*s.sx, Y: s.origin.Y + k*s.sy}
}

// steps returns the range of k whose major coordinate lies inside clip. An
// empty clip gives the whole line; lo > hi means nothing is visible.
func (s lineStepper) steps(clip image.Rectangle) (lo, hi int) {
	lo, hi = 0, s.major
	if clip.Empty() {
		return lo, hi
	}
	o, dir, cmin, cmax := s.origin.X, s.sx, clip.Min.X, clip.Max.X-1
	if !s.xMajor {
		o, dir, cmin, cmax = s.origin.Y, s.sy, clip.Min.Y, clip.Max.Y-1
	}
	if dir > 0 {
		return max(lo, cmin-o), min(hi, cmax-o)
	}
	return max(lo, o-cmax), min(hi, o-cmin)
}

// bresenham visits every cell from a to b inclusive, once each.
func bresenham(a, b Vec2, visit func(Vec2)) {
	s := newLineStepper(a, b)
	for k := 0; k <= s.major; k++ {
		visit(s.at(k))
	}
}

// drawLine plots the cells of ab that fall inside clip. Only the steps whose
// major coordinate is on the canvas are visited, so lines from projected
// geometry that end far outside it stay cheap.
func drawLine(a, b Vec2, c Cell, clip image.Rectangle, plot plotFunc) {
	s := newLineStepper(a, b)
	lo, hi := s.steps(clip)
	for k := lo; k <= hi; k++ {
		plotClipped(s.at(k), c, clip, plot)
	}
}

func drawOutline(verts []Vec2, c Cell, clip image.Rectangle, plot plotFunc) {
	for i := range verts {
		drawLine(verts[i], verts[(i+1)%len(verts)], c, clip, plot)
	}
}

// fillPolygon is a scanline fill with the even-odd rule. An edge crosses row
// y when y lies in [min(y0,y1), max(y0,y1)), so shared vertices count once.
func fillPolygon(verts []Vec2, c Cell, clip image.Rectangle, plot plotFunc) {
	minY, maxY := verts[0].Y, verts[0].Y
	for _, v := range verts[1:] {
		minY = min(minY, v.Y)
		maxY = max(maxY, v.Y)
	}
	if !clip.Empty() {
		minY = max(minY, clip.Min.Y)
		maxY = min(maxY, clip.Max.Y-1)
	}

	crossings := make([]float64, 0, len(verts))
	for y := minY; y <= maxY; y++ {
		crossings = crossings[:0]
		for i := range verts {
			p, q := verts[i], verts[(i+1)%len(verts)]
			if (p.Y <= y && q.Y > y) || (q.Y <= y && p.Y > y) {
				x := float64(p.X) + float64(y-p.Y)*float64(q.X-p.X)/float64(q.Y-p.Y)
				crossings = append(crossings, x)
			}
		}
		sort.Float64s(crossings)
		for i := 0; i+1 < len(crossings); i += 2 {
			x0 := int(math.Ceil(crossings[i]))
			x1 := int(math.Floor(crossings[i+1]))
			if !clip.Empty() {
				x0 = max(x0, clip.Min.X)
				x1 = min(x1, clip.Max.X-1)
			}
			for x := x0; x <= x1; x++ {
				plot(Vec2{X: x, Y: y}, c)
			}
		}
	}
}

func fillRect(r Rect, clip image.Rectangle, plot plotFunc) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	area := image.Rect(r.Pos.X, r.Pos.Y, r.Pos.X+r.Width, r.Pos.Y+r.Height)
	if !clip.Empty() {
		area = area.Intersect(clip)
	}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			plot(Vec2{X: x, Y: y}, r.Fill)
		}
	}
}

func drawText(t TextBlob, clip image.Rectangle, plot plotFunc) {
	x, y := t.Pos.X, t.Pos.Y
	for _, ch := range t.Text {
		switch ch {
		case '\n':
			x = t.Pos.X
			y++
			continue
		case ' ':
		default:
			plotClipped(Vec2{X: x, Y: y}, Cell{Char: ch, Mod: t.Mod}, clip, plot)
		}
		x++
	}
}
