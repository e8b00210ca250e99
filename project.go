package gosieterm

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Primitive is a 2D shape tagged with the depth used for draw ordering.
type Primitive struct {
	Shape Shape
	Depth float64
}

// ProjectObject turns a 3D object into screen space primitives. Culled
// geometry is left out; it is not an error.
func (c *Camera) ProjectObject(o Object3D) ([]Primitive, error) {
	switch obj := o.(type) {
	case *Mesh:
		if obj == nil {
			return nil, fmt.Errorf("nil mesh: %w", ErrInvalidGeometry)
		}
		return c.projectMesh(obj)
	case *Line3D:
		if obj == nil {
			return nil, fmt.Errorf("nil line: %w", ErrInvalidGeometry)
		}
		return c.projectLine(obj), nil
	case nil:
		return nil, fmt.Errorf("nil object: %w", ErrInvalidGeometry)
	default:
		return nil, fmt.Errorf("unknown object %T: %w", o, ErrInvalidGeometry)
	}
}

func (c *Camera) modelView(t Transform3D) mgl64.Mat4 {
	return c.ViewMatrix().Mul4(t.Matrix())
}

func (c *Camera) projectMesh(m *Mesh) ([]Primitive, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	mv := c.modelView(m.Transform)
	view := make([]Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		view[i] = transformPoint(mv, v)
	}
	focal := c.FocalLength()

	if m.Mode == DisplayPoints {
		return c.projectPoints(m, view, focal), nil
	}

	prims := make([]Primitive, 0, len(m.Faces))
	facePoints := make([]Vec3, 0, 8)
	for _, f := range m.Faces {
		facePoints = facePoints[:0]
		for _, idx := range f.Indices {
			facePoints = append(facePoints, view[idx])
		}

		if m.BackfaceCulling && !frontFacing(facePoints) {
			continue
		}

		pointsToUse := facePoints
		if c.NearPolicy == NearClip {
			pointsToUse = clipPolygonNear(facePoints, c.nearDist())
			if len(pointsToUse) < 3 {
				continue
			}
		} else if anyBehind(facePoints, c.nearDist()) {
			continue
		}

		screen := make([]Vec2, len(pointsToUse))
		depth := 0.0
		for i, p := range pointsToUse {
			proj := c.perspective(p, focal)
			screen[i] = RoundVec2(proj.X, proj.Y)
			depth += proj.Depth
		}
		prims = append(prims, Primitive{
			Shape: Polygon{
				Vertices: screen,
				Filled:   m.Mode == DisplaySolid,
				Fill:     f.Fill,
			},
			Depth: depth / float64(len(pointsToUse)),
		})
	}
	return prims, nil
}

func (c *Camera) projectPoints(m *Mesh, view []Vec3, focal float64) []Primitive {
	fills := make([]Cell, len(m.Vertices))
	seen := make([]bool, len(m.Vertices))
	for _, f := range m.Faces {
		for _, idx := range f.Indices {
			if !seen[idx] {
				fills[idx] = f.Fill
				seen[idx] = true
			}
		}
	}

	prims := make([]Primitive, 0, len(view))
	for i, v := range view {
		proj, ok := c.projectView(v, focal)
		if !ok {
			continue
		}
		fill := CellSolid
		if seen[i] {
			fill = fills[i]
		}
		prims = append(prims, Primitive{
			Shape: Point{Pos: RoundVec2(proj.X, proj.Y), Fill: fill},
			Depth: proj.Depth,
		})
	}
	return prims
}

func (c *Camera) projectLine(l *Line3D) []Primitive {
	mv := c.modelView(l.Transform)
	a, b := transformPoint(mv, l.A), transformPoint(mv, l.B)
	if c.NearPolicy == NearClip {
		var ok bool
		a, b, ok = clipSegmentNear(a, b, c.nearDist())
		if !ok {
			return nil
		}
	} else if anyBehind([]Vec3{a, b}, c.nearDist()) {
		return nil
	}
	focal := c.FocalLength()
	pa, pb := c.perspective(a, focal), c.perspective(b, focal)
	return []Primitive{{
		Shape: Line{A: RoundVec2(pa.X, pa.Y), B: RoundVec2(pb.X, pb.Y), Fill: l.Fill},
		Depth: (pa.Depth + pb.Depth) / 2,
	}}
}

func anyBehind(points []Vec3, near float64) bool {
	for _, p := range points {
		if -p.Z() <= near {
			return true
		}
	}
	return false
}

// frontFacing reports whether a view space face turns its counter-clockwise
// side towards the camera at the origin.
func frontFacing(points []Vec3) bool {
	n := faceNormal(points[0], points[1], points[2])
	return n.Dot(points[0].Mul(-1)) > 0
}
