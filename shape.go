package gosieterm

// Shape is a 2D drawable. The set of shapes is closed: Point, Line, Polygon,
// Rect, TextBlob and the Toggle wrapper. Higher Z values are drawn later, on top of lower ones.
type Shape interface {
	ZIndex() int
	isShape()
}

type Point struct {
	Pos  Vec2
	Z    int
	Fill Cell
}

type Line struct {
	A, B Vec2
	Z    int
	Fill Cell
}

// Polygon is drawn as an outline unless Filled is set.
type Polygon struct {
	Vertices []Vec2
	Filled   bool
	Z        int
	Fill     Cell
}

// Rect is a filled axis aligned rectangle with its top left corner at Pos.
type Rect struct {
	Pos    Vec2
	Width  int
	Height int
	Z      int
	Fill   Cell
}

// TextBlob lays out Text from Pos. A newline starts the next row and spaces
// are transparent.
type TextBlob struct {
	Pos  Vec2
	Text string
	Z    int
	Mod  Modifier
}

// Toggle wraps another shape and draws it only while Visible is set. It takes
// the Z index of the shape inside.
type Toggle struct {
	Shape   Shape
	Visible bool
}

func NewLine(a, b Vec2, fill Cell) Line {
	return Line{A: a, B: b, Fill: fill}
}

func NewTriangle(a, b, c Vec2, fill Cell) Polygon {
	return Polygon{Vertices: []Vec2{a, b, c}, Filled: true, Fill: fill}
}

func (p Point) ZIndex() int    { return p.Z }
func (l Line) ZIndex() int     { return l.Z }
func (p Polygon) ZIndex() int  { return p.Z }
func (r Rect) ZIndex() int     { return r.Z }
func (t TextBlob) ZIndex() int { return t.Z }

func (t Toggle) ZIndex() int {
	if t.Shape == nil {
		return 0
	}
	return t.Shape.ZIndex()
}

func (Point) isShape()    {}
func (Line) isShape()     {}
func (Polygon) isShape()  {}
func (Rect) isShape()     {}
func (TextBlob) isShape() {}
func (Toggle) isShape()   {}
