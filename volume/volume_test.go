package volume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Length(t *testing.T) {
	for _, dims := range [][3]int{{1, 1, 1}, {2, 2, 2}, {3, 5, 7}, {32, 32, 32}, {16, 1, 9}} {
		v, err := Build(dims[0], dims[1], dims[2])
		require.NoError(t, err)
		assert.Len(t, v.Data, dims[0]*dims[1]*dims[2]*4, "dims %v", dims)
		assert.Equal(t, dims[0]*dims[1]*dims[2], v.Len())
	}
}

func TestBuild_TexelValues(t *testing.T) {
	w, h, d := 5, 3, 7
	v, err := Build(w, h, d)
	require.NoError(t, err)
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				idx := (z*w*h + y*w + x) * 4
				assert.Equal(t, uint8(x*255/w), v.Data[idx], "R at %d,%d,%d", x, y, z)
				assert.Equal(t, uint8(y*255/h), v.Data[idx+1], "G at %d,%d,%d", x, y, z)
				assert.Equal(t, uint8(z*255/d), v.Data[idx+2], "B at %d,%d,%d", x, y, z)
				assert.Equal(t, uint8(255), v.Data[idx+3], "A at %d,%d,%d", x, y, z)
			}
		}
	}
}

func TestBuild_TwoCube(t *testing.T) {
	v, err := Build(2, 2, 2)
	require.NoError(t, err)
	require.Len(t, v.Data, 32)
	assert.Equal(t, 28, v.Index(1, 1, 1))
	assert.Equal(t, []byte{127, 127, 127, 255}, v.Data[28:32])
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, v.Texel(0, 0, 0))
}

func TestBuild_ReferenceCorners(t *testing.T) {
	v, err := Build(DefaultSize, DefaultSize, DefaultSize)
	require.NoError(t, err)
	assert.Equal(t, [4]uint8{0, 0, 0, 255}, v.Texel(0, 0, 0))
	assert.Equal(t, [4]uint8{247, 247, 247, 255}, v.Texel(31, 31, 31))
}

func TestBuild_Deterministic(t *testing.T) {
	a, err := Build(9, 4, 6)
	require.NoError(t, err)
	b, err := Build(9, 4, 6)
	require.NoError(t, err)
	assert.Equal(t, a.Data, b.Data)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Checksum(), b.Checksum())
}

func TestBuild_InvalidDimension(t *testing.T) {
	cases := [][3]int{{0, 4, 4}, {4, 0, 4}, {4, 4, 0}, {-1, 4, 4}, {MaxDimension + 1, 1, 1},
		{MaxDimension, MaxDimension, MaxDimension}, {MaxDimension, MaxDimension, 32}, {257, 256, 256}}
	for _, c := range cases {
		v, err := Build(c[0], c[1], c[2])
		assert.Nil(t, v, "dims %v", c)
		assert.True(t, errors.Is(err, ErrInvalidDimension), "dims %v: %v", c, err)
	}
}

func TestCheckDimensions_TexelLimit(t *testing.T) {
	assert.NoError(t, CheckDimensions(256, 256, 256))
	assert.NoError(t, CheckDimensions(MaxDimension, 8, 8))
	assert.ErrorIs(t, CheckDimensions(256, 256, 257), ErrInvalidDimension)
	assert.ErrorIs(t, CheckDimensions(MaxDimension, MaxDimension, MaxDimension), ErrInvalidDimension)
}

func TestEqual_DetectsDifference(t *testing.T) {
	a, err := Build(3, 3, 3)
	require.NoError(t, err)
	b, err := Build(3, 3, 3)
	require.NoError(t, err)
	b.Data[10] ^= 0xFF
	assert.False(t, a.Equal(b))
	c, err := Build(3, 3, 2)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}
