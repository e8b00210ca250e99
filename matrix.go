package gosieterm

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	ROTX = 0
	ROTY = 1
	ROTZ = 2
)

// Vec3 is a point or direction in 3D space.
type Vec3 = mgl64.Vec3

func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func NewRotationMatrix(axis int, theta float64) mgl64.Mat4 {
	switch axis {
	case ROTX:
		return mgl64.HomogRotate3DX(theta)
	case ROTY:
		return mgl64.HomogRotate3DY(theta)
	case ROTZ:
		return mgl64.HomogRotate3DZ(theta)
	}
	return mgl64.Ident4()
}

// RotationMatrix builds the orientation used by objects and the camera alike:
// roll about Z first, then pitch about X, then yaw about Y.
func RotationMatrix(r Vec3) mgl64.Mat4 {
	return NewRotationMatrix(ROTY, r.Y()).
		Mul4(NewRotationMatrix(ROTX, r.X())).
		Mul4(NewRotationMatrix(ROTZ, r.Z()))
}

// InverseRotationMatrix undoes RotationMatrix(r).
func InverseRotationMatrix(r Vec3) mgl64.Mat4 {
	return NewRotationMatrix(ROTZ, -r.Z()).
		Mul4(NewRotationMatrix(ROTX, -r.X())).
		Mul4(NewRotationMatrix(ROTY, -r.Y()))
}

func TransMatrix(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

func ScaleMatrix(x, y, z float64) mgl64.Mat4 {
	return mgl64.Scale3D(x, y, z)
}

func transformPoint(m mgl64.Mat4, p Vec3) Vec3 {
	return mgl64.TransformCoordinate(p, m)
}

// faceNormal is the cross product of the first two edges, not normalised.
func faceNormal(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
