package api

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/harshalkoli/3d-sphere/material"
	"github.com/harshalkoli/3d-sphere/scene"
	"github.com/harshalkoli/3d-sphere/volume"
)

// BuildVolumeBytes builds a width x height x depth volume and returns it as a .vol3d file.
func BuildVolumeBytes(width, height, depth int, opts volume.Options) ([]byte, error) {
	v, err := volume.Build(width, height, depth)
	if err != nil {
		return nil, err
	}
	return volume.Encode(v, opts)
}

// VolumeRaw returns the bare RGBA texel buffer, ready for a 3D texture upload.
func VolumeRaw(width, height, depth int) ([]byte, error) {
	v, err := volume.Build(width, height, depth)
	if err != nil {
		return nil, err
	}
	return v.Data, nil
}

// ImageFormat is an output encoding for slice images.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatTIFF ImageFormat = "tiff"
)

// ParseImageFormat accepts "png", "tiff" or "tif", case-insensitively.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// ContentType returns the MIME type of f.
func (f ImageFormat) ContentType() string {
	if f == FormatTIFF {
		return "image/tiff"
	}
	return "image/png"
}

// SliceImage returns the plane at depth, scaled with nearest-neighbour so
// that its width is size (0 keeps the volume's own width).
func SliceImage(v *volume.Volume, depth float64, size int) image.Image {
	src := v.Slice(depth)
	if size <= 0 || size == v.Width {
		return src
	}
	h := size * v.Height / v.Width
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WriteSlice encodes SliceImage to w.
func WriteSlice(w io.Writer, v *volume.Volume, depth float64, size int, format ImageFormat) error {
	img := SliceImage(v, depth, size)
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// SliceFromVolumeBytes decodes a .vol3d file and renders one slice of it.
func SliceFromVolumeBytes(volBytes []byte, depth float64, size int, format ImageFormat) ([]byte, error) {
	v, _, err := volume.Decode(volBytes)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := WriteSlice(&out, v, depth, size, format); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// SceneGLB builds the scene described by cfg and returns it as .glb bytes.
// tex may be nil unless cfg.Material is "volume".
func SceneGLB(cfg scene.Config, tex *volume.Volume) ([]byte, error) {
	s, err := scene.New(cfg, tex)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := scene.EncodeGLB(s, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// ShaderSource returns the GLSL for "vertex" or "fragment".
func ShaderSource(stage string) (string, error) {
	return material.ShaderSource(material.Stage(stage))
}
