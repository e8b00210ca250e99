package gosieterm

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// LoadOptions controls how mesh files become meshes.
type LoadOptions struct {
	// Fill is the cell for every face; colours found in the file replace
	// its modifier.
	Fill Cell
	// Reverse flips the winding of every face.
	Reverse bool
	// Centre moves the mesh so its bounding box is centred on the origin.
	Centre bool
}

func (o LoadOptions) fill() Cell {
	if o.Fill == (Cell{}) {
		return CellSolid
	}
	return o.Fill
}

type plyVertex struct {
	pos    Vec3
	col    color.RGBA
	hasCol bool
}

// LoadMeshPLY reads an ASCII PLY file. Vertex colours are averaged per face
// unless the faces carry their own colour.
func LoadMeshPLY(reader io.Reader, opts LoadOptions) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, fmt.Errorf("missing ply magic")
	}

	var vertexCount, faceCount int
	var hasVertexColor, hasFaceColor bool
	var currentElement string
	headerDone := false

	for !headerDone && scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("unsupported ply format %q", strings.Join(parts[1:], " "))
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("malformed element line %q", scanner.Text())
			}
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("element %s count: %w", parts[1], err)
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				vertexCount = n
			case "face":
				faceCount = n
			}
		case "property":
			if len(parts) > 2 && (parts[len(parts)-1] == "red" || parts[len(parts)-1] == "diffuse_red") {
				switch currentElement {
				case "vertex":
					hasVertexColor = true
				case "face":
					hasFaceColor = true
				}
			}
		case "end_header":
			headerDone = true
		}
	}
	if !headerDone {
		return nil, fmt.Errorf("unexpected end of file in ply header")
	}

	vertices := make([]plyVertex, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertex %d", i)
		}
		parts := strings.Fields(scanner.Text())
		want := 3
		if hasVertexColor {
			want = 6
		}
		if len(parts) < want {
			return nil, fmt.Errorf("invalid vertex data on vertex %d", i)
		}
		pos, err := parseVec3(parts[0], parts[1], parts[2])
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		v := plyVertex{pos: pos}
		if hasVertexColor {
			v.col, err = parseRGB(parts[3], parts[4], parts[5])
			if err != nil {
				return nil, fmt.Errorf("vertex %d colour: %w", i, err)
			}
			v.hasCol = true
		}
		vertices = append(vertices, v)
	}

	mesh := NewMesh()
	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading face %d", i)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face line %d", i)
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("face %d vertex count: %w", i, err)
		}
		want := n + 1
		if hasFaceColor {
			want += 3
		}
		if n < 3 || len(parts) < want {
			return nil, fmt.Errorf("face %d with %d vertices: %w", i, n, ErrInvalidGeometry)
		}

		points := make([]Vec3, n)
		var r, g, b uint32
		for j := 0; j < n; j++ {
			idx, err := strconv.Atoi(parts[j+1])
			if err != nil {
				return nil, fmt.Errorf("face %d index: %w", i, err)
			}
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d references vertex %d of %d: %w", i, idx, len(vertices), ErrInvalidGeometry)
			}
			points[j] = vertices[idx].pos
			r += uint32(vertices[idx].col.R)
			g += uint32(vertices[idx].col.G)
			b += uint32(vertices[idx].col.B)
		}

		fill := opts.fill()
		switch {
		case hasFaceColor:
			col, err := parseRGB(parts[n+1], parts[n+2], parts[n+3])
			if err != nil {
				return nil, fmt.Errorf("face %d colour: %w", i, err)
			}
			fill = fill.WithColour(col)
		case hasVertexColor:
			fill = fill.WithRGB(uint8(r/uint32(n)), uint8(g/uint32(n)), uint8(b/uint32(n)))
		}

		if opts.Reverse {
			reversePoints(points)
		}
		if err := mesh.AddFace(fill, points...); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	if opts.Centre {
		mesh.Centre()
	}
	mesh.logStats("ply")
	return mesh, nil
}

// WritePLY writes the mesh as ASCII PLY with per face colours.
func WritePLY(w io.Writer, m *Mesh) error {
	writer := bufio.NewWriter(w)

	fmt.Fprintln(writer, "ply")
	fmt.Fprintln(writer, "format ascii 1.0")
	fmt.Fprintln(writer, "comment Generated by gosieterm with face colors")
	fmt.Fprintf(writer, "element vertex %d\n", len(m.Vertices))
	fmt.Fprintln(writer, "property float x")
	fmt.Fprintln(writer, "property float y")
	fmt.Fprintln(writer, "property float z")
	fmt.Fprintf(writer, "element face %d\n", len(m.Faces))
	fmt.Fprintln(writer, "property list uchar int vertex_indices")
	fmt.Fprintln(writer, "property uchar red")
	fmt.Fprintln(writer, "property uchar green")
	fmt.Fprintln(writer, "property uchar blue")
	fmt.Fprintln(writer, "end_header")

	for _, v := range m.Vertices {
		fmt.Fprintf(writer, "%g %g %g\n", v.X(), v.Y(), v.Z())
	}
	for _, f := range m.Faces {
		fmt.Fprintf(writer, "%d", len(f.Indices))
		for _, idx := range f.Indices {
			fmt.Fprintf(writer, " %d", idx)
		}
		col := color.RGBA{R: 255, G: 255, B: 255}
		if f.Fill.Mod.Kind == ModColour {
			col = f.Fill.Mod.Col
		}
		fmt.Fprintf(writer, " %d %d %d\n", col.R, col.G, col.B)
	}
	return writer.Flush()
}

func parseVec3(xs, ys, zs string) (Vec3, error) {
	var v Vec3
	for i, s := range []string{xs, ys, zs} {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Vec3{}, fmt.Errorf("could not parse float value '%s': %w", s, err)
		}
		v[i] = f
	}
	return v, nil
}

func parseRGB(rs, gs, bs string) (color.RGBA, error) {
	var c [3]uint8
	for i, s := range []string{rs, gs, bs} {
		n, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return color.RGBA{}, err
		}
		c[i] = uint8(n)
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}, nil
}

func reversePoints(points []Vec3) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}
