package gosieterm

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type NearPolicy int

const (
	// NearCull drops a face or line when any of its vertices is at or in
	// front of the near plane.
	NearCull NearPolicy = iota
	// NearClip cuts faces and lines at the near plane and keeps the
	// visible part.
	NearClip
)

// Camera looks down its local -Z axis. Rotation holds pitch (X), yaw (Y) and
// roll (Z) in radians; FOV is the horizontal field of view in degrees.
type Camera struct {
	Position   Vec3
	Rotation   Vec3
	FOV        float64
	Near       float64
	Width      int
	Height     int
	CharAspect float64
	NearPolicy NearPolicy
}

// Projected is a screen position plus the distance along the view axis.
type Projected struct {
	X, Y  float64
	Depth float64
}

func NewCamera(width, height int, fov, near float64) *Camera {
	return &Camera{
		FOV:    fov,
		Near:   near,
		Width:  width,
		Height: height,
	}
}

func (c *Camera) SetPosition(x, y, z float64) {
	c.Position = Vec3{x, y, z}
}

func (c *Camera) AddPosition(x, y, z float64) {
	c.Position = c.Position.Add(Vec3{x, y, z})
}

func (c *Camera) AddAngle(x, y, z float64) {
	c.Rotation = c.Rotation.Add(Vec3{x, y, z})
}

// Forward is the world direction the camera is facing.
func (c *Camera) Forward() Vec3 {
	return RotationMatrix(c.Rotation).Mul4x1(Vec3{0, 0, -1}.Vec4(0)).Vec3()
}

// LookAt turns the camera to face target, keeping the roll.
func (c *Camera) LookAt(target Vec3) {
	dir := target.Sub(c.Position)
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()
	pitch := math.Asin(mgl64.Clamp(dir.Y(), -1, 1))
	yaw := math.Atan2(-dir.X(), -dir.Z())
	c.Rotation = Vec3{pitch, yaw, c.Rotation.Z()}
}

// ViewMatrix takes world space to view space: translate by -Position, then
// rotate by the inverse of the camera orientation.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return InverseRotationMatrix(c.Rotation).
		Mul4(TransMatrix(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}

// FocalLength in cells, from the horizontal field of view and viewport width.
func (c *Camera) FocalLength() float64 {
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = 90
	}
	return float64(c.Width) / 2 / math.Tan(degreesToRadians(fov)/2)
}

func (c *Camera) aspect() float64 {
	if c.CharAspect <= 0 {
		return 1
	}
	return c.CharAspect
}

// ToView transforms a world point into view space.
func (c *Camera) ToView(p Vec3) Vec3 {
	return transformPoint(c.ViewMatrix(), p)
}

// Project maps a world point to the screen. ok is false when the point is at
// or in front of the near plane and so was culled.
func (c *Camera) Project(p Vec3) (Projected, bool) {
	return c.projectView(c.ToView(p), c.FocalLength())
}

func (c *Camera) projectView(v Vec3, focal float64) (Projected, bool) {
	depth := -v.Z()
	if depth <= c.nearDist() {
		return Projected{}, false
	}
	return c.perspective(v, focal), true
}

// perspective divides without the near plane check; clipped vertices sit on
// the plane itself and still need a position.
func (c *Camera) perspective(v Vec3, focal float64) Projected {
	depth := -v.Z()
	return Projected{
		X:     float64(c.Width)/2 + v.X()*focal/depth,
		Y:     float64(c.Height)/2 - v.Y()*focal/(depth*c.aspect()),
		Depth: depth,
	}
}

// Unproject returns the view space point that projects to (sx, sy) at depth.
func (c *Camera) Unproject(sx, sy, depth float64) Vec3 {
	focal := c.FocalLength()
	x := (sx - float64(c.Width)/2) * depth / focal
	y := (float64(c.Height)/2 - sy) * depth * c.aspect() / focal
	return Vec3{x, y, -depth}
}

// InViewport reports whether a projected point lands on the viewport.
func (c *Camera) InViewport(p Projected) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < float64(c.Width) && p.Y < float64(c.Height)
}
