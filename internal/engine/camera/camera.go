// Package camera provides the orbit camera the book is viewed through.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/flipbook/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FOV       float32 // Vertical field of view, radians
	Near, Far float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        25.0,
		RotationX:       0.4,
		RotationY:       0.45,
		FOV:             math32.Pi / 4,
		Near:            0.1,
		Far:             1000.0,
		MinDistance:     5.0,
		MaxDistance:     100.0,
		MinPitch:        -1.4,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// LookFrom places the camera at pos looking at center, deriving the
// spherical coordinates from the offset.
func (c *OrbitCamera) LookFrom(pos, center math.Vec3) {
	c.Center = center
	off := pos.Sub(center)
	c.Distance = off.Length()
	if c.Distance == 0 {
		return
	}
	c.RotationX = math32.Asin(off.Y / c.Distance)
	c.RotationY = math32.Atan2(off.X, off.Z)
	c.clamp()
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.RotationX)
	sy, cy := math32.Sincos(c.RotationY)

	return c.Center.Add(math.Vec3{
		X: c.Distance * cp * sy,
		Y: c.Distance * sp,
		Z: c.Distance * cp * cy,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.clamp()
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.clamp()
}

// FitToBounds centers the camera on the box and backs off until it fits the view.
func (c *OrbitCamera) FitToBounds(lo, hi [3]float32) {
	a := math.Vec3{X: lo[0], Y: lo[1], Z: lo[2]}
	b := math.Vec3{X: hi[0], Y: hi[1], Z: hi[2]}
	c.Center = a.Lerp(b, 0.5)

	radius := a.Distance(b) / 2
	c.Distance = radius / math32.Sin(c.FOV/2)
	c.clamp()
}

func (c *OrbitCamera) clamp() {
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
