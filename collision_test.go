package gosieterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	box := Rect{Pos: V2(0, 0), Width: 4, Height: 4, Fill: CellSolid}

	testCases := []struct {
		name  string
		other Shape
		want  bool
	}{
		{"overlapping rect", Rect{Pos: V2(3, 3), Width: 2, Height: 2}, true},
		{"touching edge only", Rect{Pos: V2(4, 0), Width: 2, Height: 2}, false},
		{"point inside", Point{Pos: V2(2, 1)}, true},
		{"line across", NewLine(V2(-5, 2), V2(10, 2), CellSolid), true},
		{"line below", NewLine(V2(-5, 6), V2(10, 6), CellSolid), false},
		{"text over it", TextBlob{Pos: V2(2, 3), Text: "hi"}, true},
		{"spaces are not solid", TextBlob{Pos: V2(0, 0), Text: "    \n  "}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Overlaps(box, tc.other)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWillOverlap(t *testing.T) {
	a := Rect{Pos: V2(0, 0), Width: 3, Height: 3}
	b := Point{Pos: V2(5, 1)}

	testCases := []struct {
		name   string
		offset Vec2
		want   bool
	}{
		{"no move", V2(0, 0), false},
		{"one step left", V2(-1, 0), false},
		{"three steps left", V2(-3, 0), true},
		{"left and down out", V2(-3, 2), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := WillOverlap(a, b, tc.offset)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOverlapsInvalid(t *testing.T) {
	_, err := Overlaps(Polygon{Vertices: []Vec2{{0, 0}}}, Point{})
	assert.ErrorIs(t, err, ErrInvalidGeometry)
	_, err = Overlaps(Point{}, nil)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}
