package gosieterm

import (
	"fmt"
	"log"
)

// Object3D is a 3D drawable: a Mesh or a Line3D.
type Object3D interface {
	GetTransform() Transform3D
	isObject3D()
}

type DisplayMode int

const (
	DisplaySolid DisplayMode = iota
	DisplayWireframe
	DisplayPoints
)

func (d DisplayMode) String() string {
	switch d {
	case DisplaySolid:
		return "solid"
	case DisplayWireframe:
		return "wireframe"
	case DisplayPoints:
		return "points"
	}
	return fmt.Sprintf("DisplayMode(%d)", int(d))
}

// Face references at least 3 mesh vertices, wound counter-clockwise when
// seen from the front.
type Face struct {
	Indices []int
	Fill    Cell
}

type Mesh struct {
	Transform       Transform3D
	Vertices        []Vec3
	Faces           []Face
	Mode            DisplayMode
	BackfaceCulling bool

	pointIndex map[Vec3]int
}

func NewMesh() *Mesh {
	return &Mesh{
		Transform:  DefaultTransform,
		pointIndex: make(map[Vec3]int),
	}
}

func (m *Mesh) GetTransform() Transform3D { return m.Transform }
func (*Mesh) isObject3D()                 {}

// AddVertex returns the index of v, reusing an existing identical vertex.
func (m *Mesh) AddVertex(v Vec3) int {
	if m.pointIndex == nil {
		m.pointIndex = make(map[Vec3]int, len(m.Vertices))
		for i, p := range m.Vertices {
			if _, found := m.pointIndex[p]; !found {
				m.pointIndex[p] = i
			}
		}
	}
	if index, found := m.pointIndex[v]; found {
		return index
	}
	m.Vertices = append(m.Vertices, v)
	m.pointIndex[v] = len(m.Vertices) - 1
	return len(m.Vertices) - 1
}

// AddFace adds a face through its vertex positions.
func (m *Mesh) AddFace(fill Cell, points ...Vec3) error {
	if len(points) < 3 {
		return fmt.Errorf("face with %d vertices: %w", len(points), ErrInvalidGeometry)
	}
	indices := make([]int, len(points))
	for i, p := range points {
		indices[i] = m.AddVertex(p)
	}
	m.Faces = append(m.Faces, Face{Indices: indices, Fill: fill})
	return nil
}

// Validate checks every face has at least 3 in-range vertex indices.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		if len(f.Indices) < 3 {
			return fmt.Errorf("face %d has %d vertices: %w", i, len(f.Indices), ErrInvalidGeometry)
		}
		for _, idx := range f.Indices {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("face %d references vertex %d of %d: %w", i, idx, len(m.Vertices), ErrInvalidGeometry)
			}
		}
	}
	return nil
}

// SetFill changes the cell of every face.
func (m *Mesh) SetFill(c Cell) {
	for i := range m.Faces {
		m.Faces[i].Fill = c
	}
}

func (m *Mesh) bounds() (Vec3, Vec3) {
	if len(m.Vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, p := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

// Centre moves the vertices so the bounding box centre is at the origin.
func (m *Mesh) Centre() {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi := m.bounds()
	centre := lo.Add(hi).Mul(0.5)
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Sub(centre)
	}
	m.pointIndex = nil
}

// Extents returns the size of the bounding box along each axis.
func (m *Mesh) Extents() Vec3 {
	lo, hi := m.bounds()
	return hi.Sub(lo)
}

func (m *Mesh) ScaleAllPoints(scale float64) {
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Mul(scale)
	}
	m.pointIndex = nil
}

// Clone shares nothing with m, so the copy can be transformed on its own.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Transform:       m.Transform,
		Vertices:        make([]Vec3, len(m.Vertices)),
		Faces:           make([]Face, len(m.Faces)),
		Mode:            m.Mode,
		BackfaceCulling: m.BackfaceCulling,
	}
	copy(c.Vertices, m.Vertices)
	for i, f := range m.Faces {
		c.Faces[i] = Face{Indices: append([]int(nil), f.Indices...), Fill: f.Fill}
	}
	return c
}

func (m *Mesh) logStats(source string) {
	ext := m.Extents()
	log.Printf("%s: %d vertices, %d faces, size X: %.2f, Y: %.2f, Z: %.2f",
		source, len(m.Vertices), len(m.Faces), ext.X(), ext.Y(), ext.Z())
}

// Line3D is a single segment between two points in object space.
type Line3D struct {
	Transform Transform3D
	A, B      Vec3
	Fill      Cell
}

func NewLine3D(a, b Vec3, fill Cell) *Line3D {
	return &Line3D{Transform: DefaultTransform, A: a, B: b, Fill: fill}
}

func (l *Line3D) GetTransform() Transform3D { return l.Transform }
func (*Line3D) isObject3D()                 {}
