package gosieterm

import "math"

var defaultCubeFills = []Cell{
	NewCell('#'), NewCell('@'), NewCell('%'), NewCell('+'), NewCell('='), NewCell('~'),
}

// NewCube builds an axis aligned cube of the given edge length centred on
// the origin. Faces take fills in order front, back, right, left, top,
// bottom, cycling when fewer are given.
func NewCube(size float64, fills ...Cell) *Mesh {
	if len(fills) == 0 {
		fills = defaultCubeFills
	}
	h := size / 2
	faces := [6][4]Vec3{
		{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}},
		{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}},
		{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}},
		{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}},
		{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}},
		{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}},
	}
	m := NewMesh()
	m.BackfaceCulling = true
	for i, f := range faces {
		// four distinct corners, cannot fail
		_ = m.AddFace(fills[i%len(fills)], f[0], f[1], f[2], f[3])
	}
	return m
}

// NewGrid builds a flat square grid on the XZ plane facing +Y, drawn as a
// wireframe.
func NewGrid(size float64, divisions int, fill Cell) *Mesh {
	if divisions < 1 {
		divisions = 1
	}
	m := NewMesh()
	m.Mode = DisplayWireframe
	step := size / float64(divisions)
	start := -size / 2
	for i := 0; i < divisions; i++ {
		x0, x1 := start+float64(i)*step, start+float64(i+1)*step
		for j := 0; j < divisions; j++ {
			z0, z1 := start+float64(j)*step, start+float64(j+1)*step
			_ = m.AddFace(fill, Vec3{x0, 0, z1}, Vec3{x1, 0, z1}, Vec3{x1, 0, z0}, Vec3{x0, 0, z0})
		}
	}
	return m
}

// NewUVSphere builds a sphere from latitude rings and longitude segments.
// Bands of stripe segments alternate between fillA and fillB.
func NewUVSphere(radius float64, segments, rings int, fillA, fillB Cell, stripe int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)
	stripe = max(stripe, 1)

	vertex := func(i, j int) Vec3 {
		if i == 0 {
			return Vec3{0, radius, 0}
		}
		if i == rings {
			return Vec3{0, -radius, 0}
		}
		theta := math.Pi * float64(i) / float64(rings)
		phi := 2 * math.Pi * float64(j%segments) / float64(segments)
		return Vec3{
			radius * math.Sin(theta) * math.Cos(phi),
			radius * math.Cos(theta),
			radius * math.Sin(theta) * math.Sin(phi),
		}
	}

	m := NewMesh()
	m.BackfaceCulling = true
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			fill := fillA
			if (j/stripe)%2 == 1 {
				fill = fillB
			}
			switch i {
			case 0:
				_ = m.AddFace(fill, vertex(0, j), vertex(1, j+1), vertex(1, j))
			case rings - 1:
				_ = m.AddFace(fill, vertex(i, j), vertex(i, j+1), vertex(rings, j))
			default:
				_ = m.AddFace(fill, vertex(i, j), vertex(i, j+1), vertex(i+1, j+1), vertex(i+1, j))
			}
		}
	}
	return m
}
