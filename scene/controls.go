package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const polarEpsilon = 1e-6

// OrbitControls keeps a camera on a sphere around Target. Update is meant to
// be called once per frame; damping decays queued rotation per call.
type OrbitControls struct {
	Target          mgl32.Vec3
	EnableDamping   bool
	DampingFactor   float32
	AutoRotate      bool
	AutoRotateSpeed float32 // 1.0 is one revolution per minute

	camera *PerspectiveCamera

	radius float64
	theta  float64 // azimuth around +Y, 0 on +Z
	phi    float64 // polar angle from +Y

	deltaTheta float64
	deltaPhi   float64
}

// NewOrbitControls attaches controls to camera, taking the current camera
// position as the starting orbit.
func NewOrbitControls(camera *PerspectiveCamera, target mgl32.Vec3) *OrbitControls {
	c := &OrbitControls{
		Target:          target,
		DampingFactor:   0.05,
		AutoRotateSpeed: 2,
		camera:          camera,
	}
	c.sync()
	return c
}

func (c *OrbitControls) sync() {
	off := c.camera.Position.Sub(c.Target)
	c.radius = float64(off.Len())
	if c.radius == 0 {
		c.theta, c.phi = 0, math.Pi/2
		return
	}
	c.theta = math.Atan2(float64(off.X()), float64(off.Z()))
	c.phi = math.Acos(clamp(float64(off.Y())/c.radius, -1, 1))
}

// AutoRotationAngle returns the azimuth change for dt seconds of auto-rotation.
func (c *OrbitControls) AutoRotationAngle(dt float64) float64 {
	return 2 * math.Pi / 60 * float64(c.AutoRotateSpeed) * dt
}

// Rotate queues a user rotation in radians.
func (c *OrbitControls) Rotate(dTheta, dPhi float64) {
	c.deltaTheta += dTheta
	c.deltaPhi += dPhi
}

// Angles returns the current azimuth and polar angle.
func (c *OrbitControls) Angles() (theta, phi float64) { return c.theta, c.phi }

// Update advances the orbit by dt seconds and moves the camera. It reports
// whether the camera moved.
func (c *OrbitControls) Update(dt float64) bool {
	if c.AutoRotate {
		c.deltaTheta -= c.AutoRotationAngle(dt)
	}
	before := c.camera.Position
	if c.EnableDamping {
		f := float64(c.DampingFactor)
		c.theta += c.deltaTheta * f
		c.phi += c.deltaPhi * f
		c.deltaTheta *= 1 - f
		c.deltaPhi *= 1 - f
	} else {
		c.theta += c.deltaTheta
		c.phi += c.deltaPhi
		c.deltaTheta, c.deltaPhi = 0, 0
	}
	c.phi = clamp(c.phi, polarEpsilon, math.Pi-polarEpsilon)

	sinPhi := math.Sin(c.phi)
	off := mgl32.Vec3{
		float32(c.radius * sinPhi * math.Sin(c.theta)),
		float32(c.radius * math.Cos(c.phi)),
		float32(c.radius * sinPhi * math.Cos(c.theta)),
	}
	c.camera.Position = c.Target.Add(off)
	c.camera.Target = c.Target
	return !c.camera.Position.ApproxEqual(before)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
