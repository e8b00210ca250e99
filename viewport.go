package gosieterm

import (
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

type entry struct {
	shape  Shape
	object Object3D
}

// Viewport owns a canvas, a camera and everything to be drawn this frame.
// Render resolves depth order for the whole frame before writing any cell.
type Viewport struct {
	Canvas  *Canvas
	Camera  *Camera
	Workers int

	entries []entry
}

// NewViewport wires a camera to a canvas. A camera without a size takes the
// canvas size.
func NewViewport(canvas *Canvas, camera *Camera) *Viewport {
	if camera == nil {
		camera = NewCamera(canvas.Width(), canvas.Height(), 90, 0.1)
	}
	if camera.Width == 0 && camera.Height == 0 {
		camera.Width, camera.Height = canvas.Width(), canvas.Height()
	}
	return &Viewport{Canvas: canvas, Camera: camera}
}

func NewViewportSized(width, height int, background Cell, fov, near float64) (*Viewport, error) {
	canvas, err := NewCanvas(width, height, background)
	if err != nil {
		return nil, err
	}
	return NewViewport(canvas, NewCamera(width, height, fov, near)), nil
}

func (v *Viewport) AddShape(shapes ...Shape) {
	for _, s := range shapes {
		v.entries = append(v.entries, entry{shape: s})
	}
}

func (v *Viewport) AddObject(objects ...Object3D) {
	for _, o := range objects {
		v.entries = append(v.entries, entry{object: o})
	}
}

// Reset forgets every shape and object, ready for the next frame.
func (v *Viewport) Reset() {
	v.entries = v.entries[:0]
}

func (v *Viewport) Len() int {
	return len(v.entries)
}

// ShapeDepth puts a 2D shape on the same scale as projected 3D depths, so a
// higher Z lands nearer and is drawn later.
func ShapeDepth(s Shape) float64 {
	return -float64(s.ZIndex())
}

// Primitives projects every object and returns all primitives sorted back to
// front. Equal depths keep insertion order.
func (v *Viewport) Primitives() ([]Primitive, error) {
	for i, e := range v.entries {
		if e.object != nil {
			continue
		}
		if err := validateShape(e.shape); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
	}

	results := make([][]Primitive, len(v.entries))
	workers := v.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)

	for i, e := range v.entries {
		i, e := i, e
		if e.object == nil {
			results[i] = []Primitive{{Shape: e.shape, Depth: ShapeDepth(e.shape)}}
			continue
		}
		g.Go(func() error {
			prims, err := v.Camera.ProjectObject(e.object)
			if err != nil {
				return fmt.Errorf("object %d: %w", i, err)
			}
			results[i] = prims
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]Primitive, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	SortPrimitives(all)
	return all, nil
}

// SortPrimitives orders farthest first with a stable sort.
func SortPrimitives(prims []Primitive) {
	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].Depth > prims[j].Depth
	})
}

// Render draws the frame onto the canvas and returns its rows.
func (v *Viewport) Render() ([]string, error) {
	prims, err := v.Primitives()
	if err != nil {
		return nil, err
	}
	v.Canvas.Clear()
	for _, p := range prims {
		if err := v.Canvas.Draw(p.Shape); err != nil {
			return nil, err
		}
	}
	return v.Canvas.Render(), nil
}

func validateShape(s Shape) error {
	switch sh := s.(type) {
	case nil:
		return fmt.Errorf("nil shape: %w", ErrInvalidGeometry)
	case Polygon:
		if len(sh.Vertices) < 3 {
			return fmt.Errorf("polygon with %d vertices: %w", len(sh.Vertices), ErrInvalidGeometry)
		}
	case Toggle:
		return validateShape(sh.Shape)
	}
	return nil
}
