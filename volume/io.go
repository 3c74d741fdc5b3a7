package volume

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
)

// Encode serializes v as a complete .vol3d file.
func Encode(v *Volume, opts Options) ([]byte, error) {
	if err := CheckDimensions(v.Width, v.Height, v.Depth); err != nil {
		return nil, err
	}
	if len(v.Data) != v.Len()*Channels {
		return nil, fmt.Errorf("texel buffer has %d bytes, want %d", len(v.Data), v.Len()*Channels)
	}
	var (
		enc encoded
		err error
	)
	if opts.Auto {
		enc, err = bestEncoding(v)
	} else {
		enc, err = encodeWith(v, opts.Layout, opts.Compression)
	}
	if err != nil {
		return nil, err
	}
	logger().Debug("volume encoded", "layout", enc.layout, "compression", enc.comp,
		"raw", len(v.Data), "payload", len(enc.payload))

	hdr := Header{
		Ver:      fileVersion,
		Enc:      packEnc(enc.layout, enc.comp),
		Channels: Channels,
		W:        uint32(v.Width),
		H:        uint32(v.Height),
		D:        uint32(v.Depth),
		PLen:     uint32(len(enc.payload)),
		Checksum: v.Checksum(),
	}
	return buildFile(hdr, enc.payload), nil
}

func buildFile(h Header, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(headerSize + len(payload) + trailerSize)
	buf.WriteString(fileMagic)
	_ = binary.Write(&buf, binary.LittleEndian, h.Ver)
	_ = binary.Write(&buf, binary.LittleEndian, h.Enc)
	_ = binary.Write(&buf, binary.LittleEndian, h.Channels)
	_ = binary.Write(&buf, binary.LittleEndian, uint8(0))
	_ = binary.Write(&buf, binary.LittleEndian, h.W)
	_ = binary.Write(&buf, binary.LittleEndian, h.H)
	_ = binary.Write(&buf, binary.LittleEndian, h.D)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(payload)))
	_, _ = buf.Write(payload)
	_ = binary.Write(&buf, binary.LittleEndian, h.Checksum)
	return buf.Bytes()
}

// ParseHeader reads the header of a .vol3d file and returns it with the
// stored payload slice.
func ParseHeader(data []byte) (Header, []byte, error) {
	var hdr Header
	if len(data) < headerSize+trailerSize || string(data[:4]) != fileMagic {
		return hdr, nil, fmt.Errorf("not a .vol3d file")
	}
	r := bytes.NewReader(data[4:headerSize])
	var reserved uint8
	for _, f := range []any{&hdr.Ver, &hdr.Enc, &hdr.Channels, &reserved, &hdr.W, &hdr.H, &hdr.D, &hdr.PLen} {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return hdr, nil, err
		}
	}
	if hdr.Ver != fileVersion {
		return hdr, nil, fmt.Errorf("unsupported .vol3d version: %d", hdr.Ver)
	}
	if hdr.Channels != Channels {
		return hdr, nil, fmt.Errorf("unsupported channel count: %d", hdr.Channels)
	}
	if uint64(len(data)) != uint64(headerSize)+uint64(hdr.PLen)+trailerSize {
		return hdr, nil, fmt.Errorf("invalid payload length (header says %d, file has %d)", hdr.PLen, len(data)-headerSize-trailerSize)
	}
	end := headerSize + int(hdr.PLen)
	hdr.Checksum = binary.LittleEndian.Uint64(data[end:])
	return hdr, data[headerSize:end], nil
}

// Decode parses a .vol3d file, verifying dimensions and checksum.
func Decode(data []byte) (*Volume, Header, error) {
	hdr, payload, err := ParseHeader(data)
	if err != nil {
		return nil, hdr, err
	}
	w, h, d := int(hdr.W), int(hdr.H), int(hdr.D)
	if err := CheckDimensions(w, h, d); err != nil {
		return nil, hdr, err
	}
	want := w * h * d * Channels
	raw, err := decompress(payload, hdr.Compression(), want)
	if err != nil {
		return nil, hdr, fmt.Errorf("decompress payload: %w", err)
	}
	if len(raw) != want {
		return nil, hdr, fmt.Errorf("decoded payload has %d bytes, want %d", len(raw), want)
	}
	switch hdr.Layout() {
	case LayoutLinear:
		if hdr.Compression() == CompNone {
			raw = append([]byte(nil), raw...)
		}
	case LayoutMorton:
		raw = fromMorton(raw, w, h, d)
	default:
		return nil, hdr, fmt.Errorf("unknown layout: %d", hdr.Layout())
	}
	if sum := xxhash.Sum64(raw); sum != hdr.Checksum {
		return nil, hdr, fmt.Errorf("checksum mismatch: stored %016x, computed %016x", hdr.Checksum, sum)
	}
	return &Volume{Width: w, Height: h, Depth: d, Data: raw}, hdr, nil
}

// Save writes v to filename using opts.
func Save(v *Volume, filename string, opts Options) error {
	data, err := Encode(v, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// Load reads a .vol3d file from disk.
func Load(filename string) (*Volume, Header, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, Header{}, err
	}
	return Decode(data)
}
