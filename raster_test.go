package gosieterm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plotted(c *Canvas) map[Vec2]rune {
	m := make(map[Vec2]rune)
	for _, p := range c.Pixels() {
		m[p.Pos] = p.Cell.Char
	}
	return m
}

func TestDiagonalLine(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	require.NoError(t, c.Draw(NewLine(V2(0, 0), V2(9, 9), NewCell('#'))))

	got := plotted(c)
	assert.Len(t, got, 10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, '#', got[V2(i, i)], "cell %d,%d", i, i)
	}
}

func TestLineIsConnected(t *testing.T) {
	testCases := []struct {
		name string
		a, b Vec2
	}{
		{"single cell", V2(3, 3), V2(3, 3)},
		{"horizontal", V2(0, 4), V2(19, 4)},
		{"vertical up", V2(5, 14), V2(5, 0)},
		{"shallow", V2(0, 0), V2(19, 6)},
		{"steep backwards", V2(17, 14), V2(2, 1)},
		{"negative slope", V2(0, 14), V2(19, 0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pixels, err := Pixels(NewLine(tc.a, tc.b, CellSolid))
			require.NoError(t, err)

			want := max(abs(tc.b.X-tc.a.X), abs(tc.b.Y-tc.a.Y)) + 1
			require.Len(t, pixels, want)
			assert.Equal(t, tc.a, pixels[0].Pos)
			assert.Equal(t, tc.b, pixels[len(pixels)-1].Pos)

			seen := map[Vec2]bool{}
			for i, p := range pixels {
				assert.False(t, seen[p.Pos], "cell %v visited twice", p.Pos)
				seen[p.Pos] = true
				if i == 0 {
					continue
				}
				step := p.Pos.Sub(pixels[i-1].Pos)
				assert.LessOrEqual(t, abs(step.X), 1)
				assert.LessOrEqual(t, abs(step.Y), 1)
			}
		})
	}
}

func TestLineFarOutsideIsClipped(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	require.NoError(t, c.Draw(NewLine(V2(-1000, -1000), V2(1000, 1000), NewCell('#'))))

	got := plotted(c)
	assert.Len(t, got, 10)
	for i := 0; i < 10; i++ {
		assert.Equal(t, '#', got[V2(i, i)])
	}
}

// stepLine is the incremental form of Bresenham's algorithm, one error term
// updated per cell.
func stepLine(a, b Vec2) []Vec2 {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	var cells []Vec2
	err := dx + dy
	x, y := a.X, a.Y
	for {
		cells = append(cells, Vec2{X: x, Y: y})
		if x == b.X && y == b.Y {
			return cells
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func TestLineStepperMatchesIncremental(t *testing.T) {
	for ax := -4; ax <= 4; ax++ {
		for ay := -4; ay <= 4; ay++ {
			for bx := -7; bx <= 7; bx++ {
				for by := -7; by <= 7; by++ {
					a, b := V2(ax, ay), V2(bx, by)
					var got []Vec2
					bresenham(a, b, func(p Vec2) { got = append(got, p) })
					require.Equal(t, stepLine(a, b), got, "%v -> %v", a, b)
				}
			}
		}
	}
}

func TestLongLineDrawMatchesPixels(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	coord := func() int { return rng.Intn(4001) - 2000 }

	lines := [][2]Vec2{
		{V2(-1838, 1089), V2(23, 9)},
		{V2(-2000, 3), V2(2000, 17)},
		{V2(5, -1999), V2(14, 1999)},
	}
	for i := 0; i < 500; i++ {
		lines = append(lines, [2]Vec2{V2(coord(), coord()), V2(coord(), coord())})
		lines = append(lines, [2]Vec2{V2(coord(), coord()), V2(rng.Intn(20), rng.Intn(20))})
	}

	c := newTestCanvas(t, 20, 20)
	for _, l := range lines {
		line := NewLine(l[0], l[1], NewCell('#'))
		c.Clear()
		require.NoError(t, c.Draw(line))

		all, err := Pixels(line)
		require.NoError(t, err)
		want := make(map[Vec2]rune)
		for _, p := range all {
			if p.Pos.In(c.Bounds()) {
				want[p.Pos] = '#'
			}
		}
		require.Equal(t, want, plotted(c), "%v -> %v", l[0], l[1])
	}
}

func TestConvexPolygonFill(t *testing.T) {
	// both shapes have edges of slope 0 or 1 so the boundary is exact
	testCases := []struct {
		name     string
		vertices []Vec2
		// inside returns <0 strictly inside, 0 on the boundary, >0 outside
		inside func(x, y int) int
	}{
		{
			name:     "diamond",
			vertices: []Vec2{{10, 2}, {16, 8}, {10, 14}, {4, 8}},
			inside: func(x, y int) int {
				return abs(x-10) + abs(y-8) - 6
			},
		},
		{
			name:     "right triangle",
			vertices: []Vec2{{2, 2}, {12, 2}, {2, 12}},
			inside: func(x, y int) int {
				if x < 2 || y < 2 || x+y > 14 {
					return 1
				}
				if x == 2 || y == 2 || x+y == 14 {
					return 0
				}
				return -1
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestCanvas(t, 20, 16)
			require.NoError(t, c.Draw(Polygon{Vertices: tc.vertices, Filled: true, Fill: CellSolid}))
			got := plotted(c)

			for y := 0; y < 16; y++ {
				for x := 0; x < 20; x++ {
					_, hit := got[V2(x, y)]
					switch in := tc.inside(x, y); {
					case in < 0:
						assert.True(t, hit, "inside cell %d,%d not plotted", x, y)
					case in > 0:
						assert.False(t, hit, "outside cell %d,%d plotted", x, y)
					default:
						assert.True(t, hit, "boundary cell %d,%d not plotted", x, y)
					}
				}
			}
		})
	}
}

func TestPolygonOutlineOnly(t *testing.T) {
	c := newTestCanvas(t, 20, 16)
	diamond := Polygon{Vertices: []Vec2{{10, 2}, {16, 8}, {10, 14}, {4, 8}}, Fill: CellSolid}
	require.NoError(t, c.Draw(diamond))

	got := plotted(c)
	assert.Len(t, got, 24)
	_, centre := got[V2(10, 8)]
	assert.False(t, centre)
}

func TestDegeneratePolygon(t *testing.T) {
	testCases := []struct {
		name     string
		vertices []Vec2
	}{
		{"empty", nil},
		{"one vertex", []Vec2{{1, 1}}},
		{"two vertices", []Vec2{{1, 1}, {5, 5}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestCanvas(t, 8, 8)
			err := c.Draw(Polygon{Vertices: tc.vertices, Filled: true, Fill: CellSolid})
			assert.ErrorIs(t, err, ErrInvalidGeometry)
			assert.Empty(t, c.Pixels())

			_, err = Pixels(Polygon{Vertices: tc.vertices})
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestNilShape(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	assert.ErrorIs(t, c.Draw(nil), ErrInvalidGeometry)
}

func TestRect(t *testing.T) {
	testCases := []struct {
		name string
		rect Rect
		want []string
	}{
		{
			name: "inside",
			rect: Rect{Pos: V2(1, 1), Width: 3, Height: 2, Fill: NewCell('#')},
			want: []string{".....", ".###.", ".###.", "....."},
		},
		{
			name: "clipped at the corner",
			rect: Rect{Pos: V2(3, -2), Width: 10, Height: 3, Fill: NewCell('#')},
			want: []string{"...##", ".....", ".....", "....."},
		},
		{
			name: "zero width",
			rect: Rect{Pos: V2(1, 1), Width: 0, Height: 2, Fill: NewCell('#')},
			want: []string{".....", ".....", ".....", "....."},
		},
		{
			name: "negative height",
			rect: Rect{Pos: V2(1, 1), Width: 2, Height: -2, Fill: NewCell('#')},
			want: []string{".....", ".....", ".....", "....."},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestCanvas(t, 5, 4)
			require.NoError(t, c.Draw(tc.rect))
			assert.Equal(t, tc.want, c.Render())
		})
	}
}

func TestTextBlob(t *testing.T) {
	c := newTestCanvas(t, 6, 3)
	require.NoError(t, c.Draw(Rect{Pos: V2(0, 0), Width: 6, Height: 3, Fill: NewCell('=')}))
	require.NoError(t, c.Draw(TextBlob{Pos: V2(1, 0), Text: "a b\ncd"}))

	assert.Equal(t, []string{"=a=b==", "=cd===", "======"}, c.Render())
}

func TestTextBlobModifier(t *testing.T) {
	bold := Modifier{Kind: ModBold}
	pixels, err := Pixels(TextBlob{Pos: V2(0, 0), Text: "hi", Mod: bold})
	require.NoError(t, err)
	require.Len(t, pixels, 2)
	assert.Equal(t, Cell{Char: 'i', Mod: bold}, pixels[1].Cell)
	assert.Equal(t, V2(1, 0), pixels[1].Pos)
}

func TestPointOutsideCanvas(t *testing.T) {
	c := newTestCanvas(t, 3, 3)
	require.NoError(t, c.Draw(Point{Pos: V2(5, 5), Fill: CellSolid}))
	assert.Empty(t, c.Pixels())

	pixels, err := Pixels(Point{Pos: V2(5, 5), Fill: CellSolid})
	require.NoError(t, err)
	assert.Equal(t, []Pixel{{Pos: V2(5, 5), Cell: CellSolid}}, pixels)
}

func TestToggle(t *testing.T) {
	box := Rect{Pos: V2(1, 1), Width: 2, Height: 2, Z: 3, Fill: NewCell('#')}

	testCases := []struct {
		name    string
		visible bool
		want    int
	}{
		{"shown", true, 4},
		{"hidden", false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toggle := Toggle{Shape: box, Visible: tc.visible}
			assert.Equal(t, 3, toggle.ZIndex())

			c := newTestCanvas(t, 5, 5)
			require.NoError(t, c.Draw(toggle))
			assert.Len(t, plotted(c), tc.want)
		})
	}
}

func TestHiddenToggleStillValidates(t *testing.T) {
	c := newTestCanvas(t, 5, 5)
	err := c.Draw(Toggle{Shape: Polygon{Vertices: []Vec2{{0, 0}}}})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	assert.ErrorIs(t, c.Draw(Toggle{}), ErrInvalidGeometry)
}
