package gosieterm

import "github.com/go-gl/mathgl/mgl64"

// Transform3D places an object in the world. Vertices are scaled, then
// rotated (radians, see RotationMatrix), then translated.
type Transform3D struct {
	Translation Vec3
	Rotation    Vec3
	Scale       Vec3
}

// DefaultTransform has no translation, no rotation and a scale of 1.
var DefaultTransform = Transform3D{Scale: Vec3{1, 1, 1}}

func NewTransformT(translation Vec3) Transform3D {
	return Transform3D{Translation: translation, Scale: Vec3{1, 1, 1}}
}

func NewTransformTR(translation, rotation Vec3) Transform3D {
	return Transform3D{Translation: translation, Rotation: rotation, Scale: Vec3{1, 1, 1}}
}

// scale treats an unset (zero) scale as 1.
func (t Transform3D) scale() Vec3 {
	if t.Scale == (Vec3{}) {
		return Vec3{1, 1, 1}
	}
	return t.Scale
}

// Matrix is recomputed from the components on every call.
func (t Transform3D) Matrix() mgl64.Mat4 {
	scale := t.scale()
	return TransMatrix(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(RotationMatrix(t.Rotation)).
		Mul4(ScaleMatrix(scale.X(), scale.Y(), scale.Z()))
}

func (t Transform3D) Apply(v Vec3) Vec3 {
	return transformPoint(t.Matrix(), v)
}

func (t Transform3D) ApplyTo(vertices []Vec3) []Vec3 {
	m := t.Matrix()
	out := make([]Vec3, len(vertices))
	for i, v := range vertices {
		out[i] = transformPoint(m, v)
	}
	return out
}

// Combine adds translations and rotations and multiplies scales.
func (t Transform3D) Combine(o Transform3D) Transform3D {
	a, b := t.scale(), o.scale()
	return Transform3D{
		Translation: t.Translation.Add(o.Translation),
		Rotation:    t.Rotation.Add(o.Rotation),
		Scale:       Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()},
	}
}
