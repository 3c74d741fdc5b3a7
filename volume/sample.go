package volume

import (
	"image"
	"math"
)

// MidDepth is the w coordinate the volume fragment shader samples at.
const MidDepth = 0.5

func texelCoord(c float64, n int) int {
	i := int(math.Floor(c * float64(n)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Sample does a nearest-neighbour lookup with clamp-to-edge wrapping, the
// same as a NEAREST-filtered 3D texture. NaN coordinates clamp to 0.
func (v *Volume) Sample(u, vv, w float64) [4]uint8 {
	if math.IsNaN(u) {
		u = 0
	}
	if math.IsNaN(vv) {
		vv = 0
	}
	if math.IsNaN(w) {
		w = 0
	}
	return v.Texel(texelCoord(u, v.Width), texelCoord(vv, v.Height), texelCoord(w, v.Depth))
}

// Slice renders the plane at depth w as a Width x Height image, sampling at
// texel centres. Image rows run top to bottom, so row 0 is v close to 1.
func (v *Volume) Slice(w float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, v.Width, v.Height))
	for py := 0; py < v.Height; py++ {
		vv := 1 - (float64(py)+0.5)/float64(v.Height)
		for px := 0; px < v.Width; px++ {
			u := (float64(px) + 0.5) / float64(v.Width)
			c := v.Sample(u, vv, w)
			o := img.PixOffset(px, py)
			copy(img.Pix[o:o+4], c[:])
		}
	}
	return img
}

// ZSlice returns the raw RGBA bytes of plane z without copying.
func (v *Volume) ZSlice(z int) []byte {
	n := v.Width * v.Height * Channels
	return v.Data[z*n : (z+1)*n]
}
