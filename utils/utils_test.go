package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshalkoli/3d-sphere/config"
	"github.com/harshalkoli/3d-sphere/volume"
)

func TestRunGenVolume_ThenInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.vol3d")
	require.NoError(t, RunGenVolume(32, 32, 32, path, volume.Options{Compression: volume.CompZstd}))

	v, hdr, err := volume.Load(path)
	require.NoError(t, err)
	assert.Equal(t, volume.CompZstd, hdr.Compression())
	assert.Equal(t, [4]uint8{247, 247, 247, 255}, v.Texel(31, 31, 31))

	var out bytes.Buffer
	require.NoError(t, RunVolumeInfo(path, &out))
	assert.Contains(t, out.String(), "compression=zstd")
	assert.Contains(t, out.String(), "raw=131072 bytes")
}

func TestRunGenVolume_InvalidDimension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.vol3d")
	assert.ErrorIs(t, RunGenVolume(0, 2, 2, path, volume.Options{}), volume.ErrInvalidDimension)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRunVolume2Image(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cube.vol3d")
	require.NoError(t, RunGenVolume(8, 8, 8, in, volume.Options{}))

	for _, name := range []string{"slice.png", "slice.tiff"} {
		out := filepath.Join(dir, name)
		require.NoError(t, RunVolume2Image(in, out, volume.MidDepth, 32))
		fi, err := os.Stat(out)
		require.NoError(t, err)
		assert.Greater(t, fi.Size(), int64(0))
	}
	assert.Error(t, RunVolume2Image(in, filepath.Join(dir, "slice.jpg"), 0.5, 0))
	assert.Error(t, RunVolume2Image(filepath.Join(dir, "missing.vol3d"), filepath.Join(dir, "x.png"), 0.5, 0))
}

func TestRunVolume2Slices(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "cube.vol3d")
	require.NoError(t, RunGenVolume(4, 4, 6, in, volume.Options{Layout: volume.LayoutMorton}))
	outDir := filepath.Join(dir, "slices")
	require.NoError(t, RunVolume2Slices(in, outDir, 0))
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}

func TestRunScene2GLB(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Scene.Material = "volume"
	cfg.Volume.Width, cfg.Volume.Height, cfg.Volume.Depth = 8, 8, 8
	out := filepath.Join(dir, "scene.glb")
	require.NoError(t, RunScene2GLB(cfg, out))

	doc, err := gltf.Open(out)
	require.NoError(t, err)
	assert.Len(t, doc.Images, 1)
	assert.Len(t, doc.Animations, 2)
}
