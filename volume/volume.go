package volume

import (
	"errors"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

const (
	// Channels is the number of bytes per texel (R, G, B, A).
	Channels = 4

	// DefaultSize is the edge length of the reference 32x32x32 cube.
	DefaultSize = 32

	// MaxDimension caps every axis at a size GPUs accept for 3D textures.
	MaxDimension = 2048

	// MaxTexels caps the whole volume at 256^3 texels (64 MiB of RGBA).
	MaxTexels = 256 * 256 * 256
)

// ErrInvalidDimension is returned when a width, height or depth is not in
// [1, MaxDimension], or when their product exceeds MaxTexels.
var ErrInvalidDimension = errors.New("invalid volume dimension")

// Volume is a flat RGBA texel buffer addressed as (z*W*H + y*W + x)*4.
// Data is not mutated after Build returns.
type Volume struct {
	Width  int
	Height int
	Depth  int
	Data   []byte
}

// CheckDimensions reports ErrInvalidDimension for any axis outside
// [1, MaxDimension] and for volumes larger than MaxTexels.
func CheckDimensions(width, height, depth int) error {
	for _, d := range [...]struct {
		name string
		v    int
	}{{"width", width}, {"height", height}, {"depth", depth}} {
		if d.v <= 0 || d.v > MaxDimension {
			return fmt.Errorf("%w: %s=%d", ErrInvalidDimension, d.name, d.v)
		}
	}
	// each axis is at most 2^11, so the product fits in an int
	if n := width * height * depth; n > MaxTexels {
		return fmt.Errorf("%w: %dx%dx%d is %d texels, limit %d", ErrInvalidDimension, width, height, depth, n, MaxTexels)
	}
	return nil
}

// Build fills a width x height x depth volume where each texel encodes its own
// coordinates: R=x*255/W, G=y*255/H, B=z*255/D (truncated), A=255.
func Build(width, height, depth int) (*Volume, error) {
	if err := CheckDimensions(width, height, depth); err != nil {
		return nil, err
	}
	data := make([]byte, width*height*depth*Channels)
	for z := 0; z < depth; z++ {
		b := uint8(z * 255 / depth)
		for y := 0; y < height; y++ {
			g := uint8(y * 255 / height)
			for x := 0; x < width; x++ {
				idx := (z*width*height + y*width + x) * Channels
				data[idx] = uint8(x * 255 / width)
				data[idx+1] = g
				data[idx+2] = b
				data[idx+3] = 255
			}
		}
	}
	logger().Debug("volume built", "width", width, "height", height, "depth", depth, "bytes", len(data))
	return &Volume{Width: width, Height: height, Depth: depth, Data: data}, nil
}

// Len returns the number of texels.
func (v *Volume) Len() int { return v.Width * v.Height * v.Depth }

// Index returns the byte offset of the texel at (x, y, z).
func (v *Volume) Index(x, y, z int) int {
	return (z*v.Width*v.Height + y*v.Width + x) * Channels
}

// Texel returns the RGBA bytes at (x, y, z).
func (v *Volume) Texel(x, y, z int) [4]uint8 {
	i := v.Index(x, y, z)
	return [4]uint8{v.Data[i], v.Data[i+1], v.Data[i+2], v.Data[i+3]}
}

// Checksum is the xxhash64 of the texel buffer.
func (v *Volume) Checksum() uint64 { return xxhash.Sum64(v.Data) }

// Equal reports whether both volumes have the same dimensions and bytes.
func (v *Volume) Equal(o *Volume) bool {
	if v.Width != o.Width || v.Height != o.Height || v.Depth != o.Depth || len(v.Data) != len(o.Data) {
		return false
	}
	for i := range v.Data {
		if v.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}
