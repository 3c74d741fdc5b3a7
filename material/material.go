// Package material describes how the sphere surface is shaded. The default
// is a plain physically based material; VolumeMaterial is the optional path
// that samples a 3D voxel texture through a GLSL shader pair.
package material

import (
	"github.com/harshalkoli/3d-sphere/volume"
)

// Material is implemented by every surface description a scene accepts.
type Material interface {
	Name() string
}

// DefaultColor is the sphere's base color.
const DefaultColor = "#00ff83"

// PhysicalMaterial is a metallic/roughness PBR surface.
type PhysicalMaterial struct {
	Color     string
	Roughness float32
	Metalness float32
}

// NewPhysical returns a material with the given color, roughness 1 and metalness 0.
func NewPhysical(color string) *PhysicalMaterial {
	return &PhysicalMaterial{Color: color, Roughness: 1, Metalness: 0}
}

func (m *PhysicalMaterial) Name() string { return "physical" }

// LinearColor returns the base color converted to linear RGBA.
func (m *PhysicalMaterial) LinearColor() ([4]float32, error) {
	c, err := ParseHexColor(m.Color)
	if err != nil {
		return c, err
	}
	for i := 0; i < 3; i++ {
		c[i] = SRGBToLinear(c[i])
	}
	return c, nil
}

// VolumeMaterial shades a surface by sampling Texture at (u, v, SliceDepth),
// the same lookup FragmentShader performs on the GPU.
type VolumeMaterial struct {
	Texture    *volume.Volume
	SliceDepth float64
}

// NewVolume binds tex at the mid-depth plane.
func NewVolume(tex *volume.Volume) *VolumeMaterial {
	return &VolumeMaterial{Texture: tex, SliceDepth: volume.MidDepth}
}

func (m *VolumeMaterial) Name() string { return "volume" }

// Shade returns the color the fragment shader would output at uv.
func (m *VolumeMaterial) Shade(u, v float64) [4]uint8 {
	return m.Texture.Sample(u, v, m.SliceDepth)
}

// Shaders returns the vertex and fragment sources.
func (m *VolumeMaterial) Shaders() (vertex, fragment string) {
	return VertexShader, FragmentShader
}

// Uniforms lists the values a renderer binds for the shader pair.
func (m *VolumeMaterial) Uniforms() map[string]any {
	return map[string]any{"texture3D": m.Texture}
}
