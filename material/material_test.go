package material

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshalkoli/3d-sphere/volume"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor(DefaultColor)
	require.NoError(t, err)
	assert.InDelta(t, 0, c[0], 1e-6)
	assert.InDelta(t, 1, c[1], 1e-6)
	assert.InDelta(t, float32(0x83)/255, c[2], 1e-6)
	assert.Equal(t, float32(1), c[3])

	c, err = ParseHexColor("#ffffff80")
	require.NoError(t, err)
	assert.InDelta(t, float32(0x80)/255, c[3], 1e-6)

	for _, bad := range []string{"", "00ff83", "#12345", "#gg0000"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestSRGBToLinear(t *testing.T) {
	assert.Equal(t, float32(0), SRGBToLinear(0))
	assert.InDelta(t, 1, SRGBToLinear(1), 1e-6)
	assert.InDelta(t, 0.2140, SRGBToLinear(0.5), 1e-3)
}

func TestPhysicalMaterial(t *testing.T) {
	m := NewPhysical(DefaultColor)
	assert.Equal(t, "physical", m.Name())
	assert.Equal(t, float32(1), m.Roughness)
	c, err := m.LinearColor()
	require.NoError(t, err)
	assert.InDelta(t, 1, c[1], 1e-6)
	assert.Less(t, c[2], float32(0x83)/255)
}

func TestVolumeMaterial_ShadeMatchesMidSlice(t *testing.T) {
	tex, err := volume.Build(volume.DefaultSize, volume.DefaultSize, volume.DefaultSize)
	require.NoError(t, err)
	m := NewVolume(tex)
	assert.Equal(t, "volume", m.Name())
	assert.Equal(t, tex.Texel(0, 0, 16), m.Shade(0, 0))
	assert.Equal(t, tex.Texel(31, 31, 16), m.Shade(0.999, 0.999))
	assert.Same(t, tex, m.Uniforms()["texture3D"])
}

func TestShaderSource(t *testing.T) {
	vs, err := ShaderSource(StageVertex)
	require.NoError(t, err)
	assert.True(t, strings.Contains(vs, "vUv = uv"))
	fs, err := ShaderSource(StageFragment)
	require.NoError(t, err)
	assert.Contains(t, fs, "vec3(vUv, 0.5)")
	_, err = ShaderSource("geometry")
	assert.Error(t, err)

	v, f := (&VolumeMaterial{}).Shaders()
	assert.Equal(t, VertexShader, v)
	assert.Equal(t, FragmentShader, f)
}
