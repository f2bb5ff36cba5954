// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera circles the scene origin on a sphere. Left drags orbit,
// right drags change the radius.
type OrbitCamera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Theta  float32 // Azimuth angle, radians
	Phi    float32 // Polar angle, radians, clamped off the poles
	Radius float32 // Distance from the origin

	// COLD DATA - Projection configuration and drag state
	NearZ        float32
	FarZ         float32
	FovY         float32 // Vertical field of view, radians
	LastX, LastY float32 // Last mouse position
}

// NewOrbitCamera returns the camera at the demo's start pose.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Theta:  1.5 * math.Pi,
		Phi:    math.Pi/2 - 0.1,
		Radius: 75,
		NearZ:  1,
		FarZ:   1000,
		FovY:   0.25 * math.Pi,
	}
}

// EyePos converts the spherical pose to cartesian world space.
func (c *OrbitCamera) EyePos() mgl32.Vec3 {
	sinPhi := float32(math.Sin(float64(c.Phi)))
	cosPhi := float32(math.Cos(float64(c.Phi)))
	sinTheta := float32(math.Sin(float64(c.Theta)))
	cosTheta := float32(math.Cos(float64(c.Theta)))
	return mgl32.Vec3{
		c.Radius * sinPhi * cosTheta,
		c.Radius * cosPhi,
		c.Radius * sinPhi * sinTheta,
	}
}

// GetViewMatrix looks from the eye position at the origin.
func (c *OrbitCamera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.EyePos(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// GetProjectionMatrix builds the perspective projection for an aspect
// ratio.
func (c *OrbitCamera) GetProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.NearZ, c.FarZ)
}

// GetViewProjection composes projection and view.
func (c *OrbitCamera) GetViewProjection(aspect float32) mgl32.Mat4 {
	return c.GetProjectionMatrix(aspect).Mul4(c.GetViewMatrix())
}

// OnMouseDown records the drag anchor.
func (c *OrbitCamera) OnMouseDown(x, y float32) {
	c.LastX = x
	c.LastY = y
}

// OnMouseMove orbits on a left drag (a quarter degree per pixel) and zooms
// on a right drag (0.2 world units per pixel).
func (c *OrbitCamera) OnMouseMove(x, y float32, left, right bool) {
	switch {
	case left:
		dx := mgl32.DegToRad(0.25 * (x - c.LastX))
		dy := mgl32.DegToRad(0.25 * (y - c.LastY))
		c.Theta += dx
		c.Phi = mgl32.Clamp(c.Phi+dy, 0.1, math.Pi-0.1)
	case right:
		dx := 0.2 * (x - c.LastX)
		dy := 0.2 * (y - c.LastY)
		c.Radius = mgl32.Clamp(c.Radius+dx-dy, 5, 150)
	}
	c.LastX = x
	c.LastY = y
}
