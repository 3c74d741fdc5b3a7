package volume

// Header holds the fixed fields of a .vol3d file. The encoding byte packs the
// texel layout in the low nibble and the compression codec in the high one.
type Header struct {
	Ver      uint8
	Enc      uint8
	Channels uint8
	W        uint32
	H        uint32
	D        uint32
	PLen     uint32 // payload length as stored (after compression)
	Checksum uint64 // xxhash64 of the decoded texel buffer
}

const (
	fileMagic   = "VOL3"
	fileVersion = 1
	headerSize  = 24
	trailerSize = 8
)

// Layout returns the texel ordering of the payload.
func (h Header) Layout() Layout { return Layout(h.Enc & 0x0F) }

// Compression returns the codec applied to the payload.
func (h Header) Compression() Compression { return Compression(h.Enc >> 4) }

func packEnc(l Layout, c Compression) uint8 { return uint8(l)&0x0F | uint8(c)<<4 }
