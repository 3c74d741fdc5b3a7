package scene

import (
	"bytes"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshalkoli/3d-sphere/volume"
)

func decodeGLB(t *testing.T, b []byte) *gltf.Document {
	t.Helper()
	doc := new(gltf.Document)
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(b)).Decode(doc))
	return doc
}

func TestEncodeGLB_Default(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeGLB(Default(), &buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("glTF")))

	doc := decodeGLB(t, buf.Bytes())
	assert.Len(t, doc.Meshes, 1)
	assert.Len(t, doc.Materials, 1)
	assert.Equal(t, "physical", doc.Materials[0].Name)
	assert.Len(t, doc.Cameras, 1)
	assert.Len(t, doc.Nodes, 4)
	assert.Len(t, doc.Scenes[0].Nodes, 3)
	assert.Contains(t, doc.ExtensionsUsed, lightspunctual.ExtensionName)
	assert.Empty(t, doc.Images)

	names := make([]string, 0, len(doc.Animations))
	for _, a := range doc.Animations {
		names = append(names, a.Name)
	}
	assert.ElementsMatch(t, []string{"Intro", "Turntable"}, names)

	prim := doc.Meshes[0].Primitives[0]
	pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
	assert.Equal(t, 65*65, pos.Count)
	assert.Contains(t, prim.Attributes, gltf.TEXCOORD_0)
	require.NotNil(t, prim.Indices)
	assert.Equal(t, 64*64*6-2*64*3, doc.Accessors[*prim.Indices].Count)

	assert.Equal(t, [3]float64{1, 10, 10}, doc.Nodes[1].Translation)
	persp := doc.Cameras[0].Perspective
	require.NotNil(t, persp)
	assert.InDelta(t, math.Pi/4, persp.Yfov, 1e-6)
	assert.InDelta(t, 0.1, persp.Znear, 1e-6)
	require.NotNil(t, persp.Zfar)
	assert.InDelta(t, 2000, *persp.Zfar, 1e-3)
}

func TestEncodeGLB_VolumeMaterialBakesSlice(t *testing.T) {
	tex, err := volume.Build(8, 8, 8)
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Material = "volume"
	cfg.Controls.AutoRotate = false
	s, err := New(cfg, tex)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeGLB(s, &buf))
	doc := decodeGLB(t, buf.Bytes())
	require.Len(t, doc.Images, 1)
	assert.Equal(t, "image/png", doc.Images[0].MimeType)
	require.Len(t, doc.Textures, 1)
	require.NotNil(t, doc.Materials[0].PBRMetallicRoughness.BaseColorTexture)
	assert.Len(t, doc.Animations, 1)
}
