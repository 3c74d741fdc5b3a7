package material

import (
	"fmt"
	"math"
	"strconv"
)

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" into normalized sRGB components.
func ParseHexColor(hex string) ([4]float32, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return [4]float32{}, fmt.Errorf("invalid hex color: %q", hex)
	}
	h := hex[1:]
	if len(h) != 6 && len(h) != 8 {
		return [4]float32{}, fmt.Errorf("invalid hex color length: %q", hex)
	}
	var c [4]float32
	c[3] = 1
	for i := 0; i < len(h)/2; i++ {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return [4]float32{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		c[i] = float32(v) / 255
	}
	return c, nil
}

// SRGBToLinear converts one sRGB channel in [0,1] to linear light.
func SRGBToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow((float64(c)+0.055)/1.055, 2.4))
}
