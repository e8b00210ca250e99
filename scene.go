package gosieterm

import (
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CameraDef is the camera block of a scene file. Angles are in degrees.
type CameraDef struct {
	Position   []float64 `yaml:"position"`
	Rotation   []float64 `yaml:"rotation"`
	LookAt     []float64 `yaml:"look_at"`
	FOV        float64   `yaml:"fov"`
	Near       float64   `yaml:"near"`
	CharAspect float64   `yaml:"char_aspect"`
	NearPolicy string    `yaml:"near_policy"`
}

// ShapeDef describes one 2D shape. Type is point, line, polygon, rect or text.
type ShapeDef struct {
	Type   string  `yaml:"type"`
	Pos    []int   `yaml:"pos"`
	Size   []int   `yaml:"size"`
	Points [][]int `yaml:"points"`
	Filled bool    `yaml:"filled"`
	Text   string  `yaml:"text"`
	Z      int     `yaml:"z"`
	Char   string  `yaml:"char"`
	RGB    []uint8 `yaml:"rgb"`
	Hidden bool    `yaml:"hidden"`
}

// ObjectDef describes one 3D object. Type is cube, sphere, grid, mesh or
// line3d. Rotation and Spin are in degrees and degrees per second.
type ObjectDef struct {
	Type      string    `yaml:"type"`
	Size      float64   `yaml:"size"`
	Radius    float64   `yaml:"radius"`
	Segments  int       `yaml:"segments"`
	Rings     int       `yaml:"rings"`
	Divisions int       `yaml:"divisions"`
	File      string    `yaml:"file"`
	From      []float64 `yaml:"from"`
	To        []float64 `yaml:"to"`
	Position  []float64 `yaml:"position"`
	Rotation  []float64 `yaml:"rotation"`
	Scale     []float64 `yaml:"scale"`
	Spin      []float64 `yaml:"spin"`
	Mode      string    `yaml:"mode"`
	Backface  *bool     `yaml:"backface_culling"`
	Char      string    `yaml:"char"`
	Chars     []string  `yaml:"chars"`
	RGB       []uint8   `yaml:"rgb"`
}

type sceneFile struct {
	Camera  CameraDef   `yaml:"camera"`
	Shapes  []ShapeDef  `yaml:"shapes"`
	Objects []ObjectDef `yaml:"objects"`
}

// Scene is a decoded scene file, ready to be added to a viewport.
type Scene struct {
	Camera  CameraDef
	Shapes  []Shape
	Objects []Object3D

	spins []Vec3
}

// LoadScene decodes a YAML scene. Mesh file paths are relative to dir.
func LoadScene(r io.Reader, dir string) (*Scene, error) {
	var f sceneFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}

	s := &Scene{Camera: f.Camera}
	for i, d := range f.Shapes {
		shape, err := d.build()
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, d.Type, err)
		}
		if d.Hidden {
			shape = Toggle{Shape: shape}
		}
		s.Shapes = append(s.Shapes, shape)
	}
	for i, d := range f.Objects {
		obj, err := d.build(dir)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, d.Type, err)
		}
		spin, err := optionalVec3(d.Spin)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): spin: %w", i, d.Type, err)
		}
		s.Objects = append(s.Objects, obj)
		s.spins = append(s.spins, degreesVec(spin))
	}
	return s, nil
}

// Configure applies the camera block to cam. Zero values leave cam alone.
func (s *Scene) Configure(cam *Camera) error {
	c := s.Camera
	if c.Position != nil {
		p, err := vec3(c.Position)
		if err != nil {
			return fmt.Errorf("camera position: %w", err)
		}
		cam.Position = p
	}
	if c.Rotation != nil {
		r, err := vec3(c.Rotation)
		if err != nil {
			return fmt.Errorf("camera rotation: %w", err)
		}
		cam.Rotation = degreesVec(r)
	}
	if c.LookAt != nil {
		target, err := vec3(c.LookAt)
		if err != nil {
			return fmt.Errorf("camera look_at: %w", err)
		}
		cam.LookAt(target)
	}
	if c.FOV > 0 {
		cam.FOV = c.FOV
	}
	if c.Near > 0 {
		cam.Near = c.Near
	}
	if c.CharAspect > 0 {
		cam.CharAspect = c.CharAspect
	}
	switch c.NearPolicy {
	case "":
	case "cull":
		cam.NearPolicy = NearCull
	case "clip":
		cam.NearPolicy = NearClip
	default:
		return fmt.Errorf("unknown near_policy %q", c.NearPolicy)
	}
	return nil
}

// Populate configures the viewport camera and adds every shape and object.
func (s *Scene) Populate(vp *Viewport) error {
	if err := s.Configure(vp.Camera); err != nil {
		return err
	}
	for _, o := range s.Objects {
		vp.AddObject(o)
	}
	for _, sh := range s.Shapes {
		vp.AddShape(sh)
	}
	return nil
}

// SetSpin sets the rotation rate, in radians per second, of object i.
func (s *Scene) SetSpin(i int, spin Vec3) {
	for len(s.spins) <= i {
		s.spins = append(s.spins, Vec3{})
	}
	s.spins[i] = spin
}

// Advance turns each object by its spin for dt seconds.
func (s *Scene) Advance(dt float64) {
	for i, o := range s.Objects {
		if i >= len(s.spins) {
			break
		}
		spin := s.spins[i].Mul(dt)
		switch obj := o.(type) {
		case *Mesh:
			obj.Transform.Rotation = obj.Transform.Rotation.Add(spin)
		case *Line3D:
			obj.Transform.Rotation = obj.Transform.Rotation.Add(spin)
		}
	}
}

func (d ShapeDef) fill() (Cell, error) {
	return cellFromDef(d.Char, d.RGB, CellSolid)
}

func (d ShapeDef) build() (Shape, error) {
	fill, err := d.fill()
	if err != nil {
		return nil, err
	}
	pos, err := vec2(d.Pos, true)
	if err != nil {
		return nil, fmt.Errorf("pos: %w", err)
	}
	points := make([]Vec2, len(d.Points))
	for i, p := range d.Points {
		if points[i], err = vec2(p, false); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}

	switch d.Type {
	case "point":
		return Point{Pos: pos, Z: d.Z, Fill: fill}, nil
	case "line":
		if len(points) != 2 {
			return nil, fmt.Errorf("line needs 2 points, got %d: %w", len(points), ErrInvalidGeometry)
		}
		return Line{A: points[0], B: points[1], Z: d.Z, Fill: fill}, nil
	case "polygon":
		if len(points) < 3 {
			return nil, fmt.Errorf("polygon needs 3 points, got %d: %w", len(points), ErrInvalidGeometry)
		}
		return Polygon{Vertices: points, Filled: d.Filled, Z: d.Z, Fill: fill}, nil
	case "rect":
		size, err := vec2(d.Size, false)
		if err != nil {
			return nil, fmt.Errorf("size: %w", err)
		}
		return Rect{Pos: pos, Width: size.X, Height: size.Y, Z: d.Z, Fill: fill}, nil
	case "text":
		return TextBlob{Pos: pos, Text: d.Text, Z: d.Z, Mod: fill.Mod}, nil
	}
	return nil, fmt.Errorf("unknown shape type %q", d.Type)
}

func (d ObjectDef) transform() (Transform3D, error) {
	t := DefaultTransform
	if d.Position != nil {
		p, err := vec3(d.Position)
		if err != nil {
			return t, fmt.Errorf("position: %w", err)
		}
		t.Translation = p
	}
	if d.Rotation != nil {
		r, err := vec3(d.Rotation)
		if err != nil {
			return t, fmt.Errorf("rotation: %w", err)
		}
		t.Rotation = degreesVec(r)
	}
	switch len(d.Scale) {
	case 0:
	case 1:
		t.Scale = Vec3{d.Scale[0], d.Scale[0], d.Scale[0]}
	case 3:
		t.Scale = Vec3{d.Scale[0], d.Scale[1], d.Scale[2]}
	default:
		return t, fmt.Errorf("scale needs 1 or 3 values, got %d", len(d.Scale))
	}
	return t, nil
}

func (d ObjectDef) build(dir string) (Object3D, error) {
	t, err := d.transform()
	if err != nil {
		return nil, err
	}
	fill, err := cellFromDef(d.Char, d.RGB, CellSolid)
	if err != nil {
		return nil, err
	}

	var mesh *Mesh
	switch d.Type {
	case "line3d":
		a, err := vec3(d.From)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		b, err := vec3(d.To)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		l := NewLine3D(a, b, fill)
		l.Transform = t
		return l, nil
	case "cube":
		fills := make([]Cell, 0, len(d.Chars))
		for _, ch := range d.Chars {
			c, err := cellFromDef(ch, d.RGB, CellSolid)
			if err != nil {
				return nil, err
			}
			fills = append(fills, c)
		}
		if len(fills) == 0 && d.Char != "" {
			fills = append(fills, fill)
		}
		mesh = NewCube(orDefault(d.Size, 1), fills...)
	case "sphere":
		alt := fill
		if len(d.Chars) > 0 {
			if alt, err = cellFromDef(d.Chars[0], d.RGB, CellSolid); err != nil {
				return nil, err
			}
		}
		mesh = NewUVSphere(orDefault(d.Radius, 1), d.Segments, d.Rings, fill, alt, 1)
	case "grid":
		mesh = NewGrid(orDefault(d.Size, 10), d.Divisions, fill)
	case "mesh":
		if d.File == "" {
			return nil, fmt.Errorf("mesh needs a file")
		}
		path := d.File
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		mesh, err = OpenMesh(path, LoadOptions{Fill: fill, Centre: true})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown object type %q", d.Type)
	}

	mesh.Transform = t
	// An empty mode keeps the builder's default: grids are wireframe, the
	// rest solid.
	switch d.Mode {
	case "":
	case "solid":
		mesh.Mode = DisplaySolid
	case "wireframe":
		mesh.Mode = DisplayWireframe
	case "points":
		mesh.Mode = DisplayPoints
	default:
		return nil, fmt.Errorf("unknown display mode %q", d.Mode)
	}
	if d.Backface != nil {
		mesh.BackfaceCulling = *d.Backface
	}
	return mesh, nil
}

func cellFromDef(ch string, rgb []uint8, def Cell) (Cell, error) {
	c := def
	if ch != "" {
		runes := []rune(ch)
		if len(runes) != 1 {
			return c, fmt.Errorf("char %q must be a single character", ch)
		}
		c = NewCell(runes[0])
	}
	switch len(rgb) {
	case 0:
	case 3:
		c = c.WithRGB(rgb[0], rgb[1], rgb[2])
	default:
		return c, fmt.Errorf("rgb needs 3 values, got %d", len(rgb))
	}
	return c, nil
}

func vec2(v []int, optional bool) (Vec2, error) {
	if len(v) == 0 && optional {
		return Vec2{}, nil
	}
	if len(v) != 2 {
		return Vec2{}, fmt.Errorf("need 2 values, got %d", len(v))
	}
	return Vec2{X: v[0], Y: v[1]}, nil
}

func vec3(v []float64) (Vec3, error) {
	if len(v) != 3 {
		return Vec3{}, fmt.Errorf("need 3 values, got %d", len(v))
	}
	return Vec3{v[0], v[1], v[2]}, nil
}

// optionalVec3 is vec3 where an absent value means zero.
func optionalVec3(v []float64) (Vec3, error) {
	if len(v) == 0 {
		return Vec3{}, nil
	}
	return vec3(v)
}

func degreesVec(v Vec3) Vec3 {
	return Vec3{degreesToRadians(v[0]), degreesToRadians(v[1]), degreesToRadians(v[2])}
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
