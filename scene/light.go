package scene

import "github.com/go-gl/mathgl/mgl32"

// PointLight emits in every direction from Position. Distance is the range
// after which it contributes nothing; 0 means unlimited.
type PointLight struct {
	Color     string
	Intensity float32
	Distance  float32
	Position  mgl32.Vec3
}
