package gosieterm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadMeshDXF reads the 3DFACE entities of a DXF file. Each face has four
// corners; a fourth corner equal to the third makes a triangle.
func LoadMeshDXF(reader io.Reader, opts LoadOptions) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)
	mesh := NewMesh()

	// group codes and values alternate, one per line
	line := 0
	nextPair := func() (int, string, bool, error) {
		if !scanner.Scan() {
			return 0, "", false, nil
		}
		line++
		code, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			return 0, "", false, fmt.Errorf("line %d: bad group code %q: %w", line, scanner.Text(), err)
		}
		if !scanner.Scan() {
			return 0, "", false, nil
		}
		line++
		return code, strings.TrimSpace(scanner.Text()), true, nil
	}

	inFace := false
	var corners [4]Vec3
	flush := func() error {
		points := []Vec3{corners[0], corners[1], corners[2]}
		if corners[3] != corners[2] {
			points = append(points, corners[3])
		}
		if opts.Reverse {
			reversePoints(points)
		}
		return mesh.AddFace(opts.fill(), points...)
	}

	for {
		code, value, ok, err := nextPair()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if code == 0 {
			if inFace {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			inFace = value == "3DFACE"
			corners = [4]Vec3{}
			continue
		}
		if !inFace || code < 10 || code > 33 {
			continue
		}
		corner, axis := code%10, code/10-1
		if corner > 3 {
			continue
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse float value '%s': %w", value, err)
		}
		corners[corner][axis] = f
	}
	if inFace {
		if err := flush(); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	if opts.Centre {
		mesh.Centre()
	}
	mesh.logStats("dxf")
	return mesh, nil
}

// WriteDXF writes every face as a 3DFACE entity. Faces with more than four
// vertices are written as a fan of triangles.
func WriteDXF(w io.Writer, m *Mesh) error {
	writer := bufio.NewWriter(w)
	writePair := func(code int, value interface{}) {
		_, _ = fmt.Fprintf(writer, "%d\n%v\n", code, value)
	}

	writeFace := func(pts []Vec3) {
		if len(pts) == 3 {
			pts = append(pts, pts[2])
		}
		writePair(0, "3DFACE")
		writePair(8, "0")
		for i, p := range pts {
			writePair(10+i, p.X())
			writePair(20+i, p.Y())
			writePair(30+i, p.Z())
		}
	}

	writePair(0, "SECTION")
	writePair(2, "HEADER")
	writePair(0, "ENDSEC")
	writePair(0, "SECTION")
	writePair(2, "ENTITIES")
	for _, f := range m.Faces {
		if len(f.Indices) < 3 {
			continue
		}
		pts := make([]Vec3, len(f.Indices))
		for i, idx := range f.Indices {
			pts[i] = m.Vertices[idx]
		}
		if len(pts) <= 4 {
			writeFace(pts)
			continue
		}
		for i := 1; i+1 < len(pts); i++ {
			writeFace([]Vec3{pts[0], pts[i], pts[i+1]})
		}
	}
	writePair(0, "ENDSEC")
	writePair(0, "EOF")
	return writer.Flush()
}

// OpenMesh loads a .ply or .dxf file by extension.
func OpenMesh(fileName string, opts LoadOptions) (*Mesh, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh file %s: %w", fileName, err)
	}
	defer file.Close()

	var mesh *Mesh
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".ply":
		mesh, err = LoadMeshPLY(file, opts)
	case ".dxf":
		mesh, err = LoadMeshDXF(file, opts)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing mesh file %s: %w", fileName, err)
	}
	return mesh, nil
}
