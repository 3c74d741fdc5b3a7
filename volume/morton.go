package volume

import "slices"

// Morton3D64 interleaves the low 21 bits of x, y and z into a single key.
func Morton3D64(x, y, z uint32) uint64 {
	return part1By2(uint64(x)) |
		(part1By2(uint64(y)) << 1) |
		(part1By2(uint64(z)) << 2)
}

// MortonDecode3D64 splits a key built by Morton3D64 back into coordinates.
func MortonDecode3D64(key uint64) (x, y, z uint32) {
	return uint32(compact1By2(key)), uint32(compact1By2(key >> 1)), uint32(compact1By2(key >> 2))
}

func part1By2(x uint64) uint64 {
	x &= 0x1fffff
	x = (x | (x << 32)) & 0x1f00000000ffff
	x = (x | (x << 16)) & 0x1f0000ff0000ff
	x = (x | (x << 8)) & 0x100f00f00f00f00f
	x = (x | (x << 4)) & 0x10c30c30c30c30c3
	x = (x | (x << 2)) & 0x1249249249249249
	return x
}

func compact1By2(x uint64) uint64 {
	x &= 0x1249249249249249
	x = (x ^ (x >> 2)) & 0x10c30c30c30c30c3
	x = (x ^ (x >> 4)) & 0x100f00f00f00f00f
	x = (x ^ (x >> 8)) & 0x1f0000ff0000ff
	x = (x ^ (x >> 16)) & 0x1f00000000ffff
	x = (x ^ (x >> 32)) & 0x1fffff
	return x
}

// mortonOrder returns texel indices (z*W*H + y*W + x) sorted by Morton key.
// Dimensions need not be powers of two: the keys of the texels inside the box
// are sorted and decoded back to coordinates, so the result is a permutation.
func mortonOrder(w, h, d int) []int {
	keys := make([]uint64, 0, w*h*d)
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				keys = append(keys, Morton3D64(uint32(x), uint32(y), uint32(z)))
			}
		}
	}
	slices.Sort(keys)
	order := make([]int, len(keys))
	for rank, key := range keys {
		x, y, z := MortonDecode3D64(key)
		order[rank] = int(z)*w*h + int(y)*w + int(x)
	}
	return order
}

func toMorton(v *Volume) []byte {
	out := make([]byte, 0, len(v.Data))
	for _, i := range mortonOrder(v.Width, v.Height, v.Depth) {
		o := i * Channels
		out = append(out, v.Data[o:o+Channels]...)
	}
	return out
}

func fromMorton(stream []byte, w, h, d int) []byte {
	back := make([]byte, len(stream))
	for rank, i := range mortonOrder(w, h, d) {
		copy(back[i*Channels:(i+1)*Channels], stream[rank*Channels:(rank+1)*Channels])
	}
	return back
}
