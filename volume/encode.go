package volume

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Layout is the texel ordering inside a payload.
type Layout uint8

const (
	// LayoutLinear stores texels in buffer order (Z outermost, X innermost).
	LayoutLinear Layout = 0
	// LayoutMorton stores texels sorted by 3D Morton key.
	LayoutMorton Layout = 1
)

// Compression is the codec applied to a payload.
type Compression uint8

const (
	CompNone Compression = 0
	CompZlib Compression = 1
	CompZstd Compression = 2
)

// Options controls Encode. With Auto set, Layout and Compression are ignored
// and the smallest combination wins.
type Options struct {
	Layout      Layout
	Compression Compression
	Auto        bool
}

func (l Layout) String() string {
	switch l {
	case LayoutLinear:
		return "linear"
	case LayoutMorton:
		return "morton"
	}
	return fmt.Sprintf("layout(%d)", uint8(l))
}

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZlib:
		return "zlib"
	case CompZstd:
		return "zstd"
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

// ParseLayout accepts the names printed by Layout.String.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "linear":
		return LayoutLinear, nil
	case "morton":
		return LayoutMorton, nil
	}
	return 0, fmt.Errorf("unknown layout %q", s)
}

// ParseCompression accepts the names printed by Compression.String.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return CompNone, nil
	case "zlib":
		return CompZlib, nil
	case "zstd":
		return CompZstd, nil
	}
	return 0, fmt.Errorf("unknown compression %q", s)
}

type encoded struct {
	layout  Layout
	comp    Compression
	payload []byte
}

func arrange(v *Volume, l Layout) ([]byte, error) {
	switch l {
	case LayoutLinear:
		return v.Data, nil
	case LayoutMorton:
		return toMorton(v), nil
	}
	return nil, fmt.Errorf("unsupported layout: %d", l)
}

func compress(b []byte, c Compression) ([]byte, error) {
	switch c {
	case CompNone:
		return b, nil
	case CompZlib:
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(b); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		defer enc.Close()
		return enc.EncodeAll(b, nil), nil
	}
	return nil, fmt.Errorf("unsupported compression: %d", c)
}

// minDecodeLimit keeps the zstd window floor (1 KiB) reachable for tiny volumes.
const minDecodeLimit = 64 << 10

// decompress inflates b, refusing to produce more than want bytes.
func decompress(b []byte, c Compression, want int) ([]byte, error) {
	switch c {
	case CompNone:
		return b, nil
	case CompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		out, err := io.ReadAll(io.LimitReader(zr, int64(want)+1))
		if err != nil {
			return nil, err
		}
		if len(out) > want {
			return nil, fmt.Errorf("zlib payload inflates past %d bytes", want)
		}
		return out, nil
	case CompZstd:
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(max(want, minDecodeLimit))))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(b, nil)
	}
	return nil, fmt.Errorf("unsupported compression: %d", c)
}

func encodeWith(v *Volume, l Layout, c Compression) (encoded, error) {
	raw, err := arrange(v, l)
	if err != nil {
		return encoded{}, err
	}
	payload, err := compress(raw, c)
	if err != nil {
		return encoded{}, err
	}
	return encoded{layout: l, comp: c, payload: payload}, nil
}

func bestEncoding(v *Volume) (encoded, error) {
	var best encoded
	first := true
	for _, l := range []Layout{LayoutLinear, LayoutMorton} {
		for _, c := range []Compression{CompNone, CompZlib, CompZstd} {
			e, err := encodeWith(v, l, c)
			if err != nil {
				return encoded{}, err
			}
			if first || len(e.payload) < len(best.payload) {
				best = e
				first = false
			}
		}
	}
	return best, nil
}
