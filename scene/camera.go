package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera looks from Position towards Target.
type PerspectiveCamera struct {
	FOV      float32 // vertical, degrees
	Aspect   float32
	Near     float32
	Far      float32
	Position mgl32.Vec3
	Target   mgl32.Vec3

	projection mgl32.Mat4
}

// NewPerspectiveCamera returns a camera with the projection already computed.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{FOV: fov, Aspect: aspect, Near: near, Far: far}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the projection from FOV, Aspect, Near and Far.
// Call it after changing any of them.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Projection returns the matrix from the last UpdateProjectionMatrix call.
func (c *PerspectiveCamera) Projection() mgl32.Mat4 { return c.projection }

// View returns the world-to-camera matrix.
func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, mgl32.Vec3{0, 1, 0})
}

// Viewport is the drawing surface size in CSS pixels.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float32
}

// Aspect returns Width/Height.
func (v Viewport) Aspect() float32 { return float32(v.Width) / float32(v.Height) }

// DrawingBufferSize returns the backing buffer size after applying PixelRatio.
func (v Viewport) DrawingBufferSize() (int, int) {
	return int(float32(v.Width) * v.PixelRatio), int(float32(v.Height) * v.PixelRatio)
}

func (v Viewport) validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", v.Width, v.Height)
	}
	if v.PixelRatio <= 0 {
		return fmt.Errorf("pixel ratio must be positive, got %v", v.PixelRatio)
	}
	return nil
}
