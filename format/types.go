package format

import (
	"fmt"

	"github.com/arloliu/powerstrip/errs"
)

type (
	// Tag is the 4-byte discriminator at the start of every encoded block.
	Tag uint32
	// CompressionType selects the entropy coder applied to framed blocks.
	CompressionType uint8
)

const (
	// TagRaw marks a block whose payload is the verbatim little-endian samples.
	TagRaw Tag = 0x00000000
	// TagFramed marks a block whose payload is an uncompressed frame.
	TagFramed Tag = 0xFFFFFFFF

	// TagSize is the byte length of the tag prefix.
	TagSize = 4
)

const (
	CompressionNone    CompressionType = 0x1 // CompressionNone disables entropy coding; every packed block is framed.
	CompressionHuffman CompressionType = 0x2 // CompressionHuffman represents huff0 Huffman coding.
	CompressionZstd    CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x4 // CompressionS2 represents S2 compression.
	CompressionLZ4     CompressionType = 0x5 // CompressionLZ4 represents LZ4 block compression.
)

const (
	// SampleSize is the byte width of one sample.
	SampleSize = 2
	// OutlierBits is the fixed bit width of the outlier side channel.
	// A 16-bit reading can differ from its predecessor by up to ±65535, which zigzags into 17 bits.
	OutlierBits = 17
	// MaxSignalBits is the widest bit width chosen for the signal region.
	MaxSignalBits = 16
)

// IsFramed reports whether the tag carries a frame, compressed or not.
func (t Tag) IsFramed() bool {
	return t != TagRaw
}

// IsCompressed reports whether the tag carries an entropy-coded frame.
// For such tags the tag value is the frame length before entropy coding.
func (t Tag) IsCompressed() bool {
	return t != TagRaw && t != TagFramed
}

func (t Tag) String() string {
	switch t {
	case TagRaw:
		return "Raw"
	case TagFramed:
		return "Framed"
	default:
		return fmt.Sprintf("Compressed(%d)", uint32(t))
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionHuffman:
		return "Huffman"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses the lower-case name of a compression type.
func ParseCompressionType(name string) (CompressionType, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "huffman", "huff0":
		return CompressionHuffman, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, name)
	}
}
