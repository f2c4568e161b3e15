package stream

import "github.com/arloliu/powerstrip/format"

// Stats summarizes a stream.
type Stats struct {
	// Blocks is the number of blocks.
	Blocks int
	// Samples is the number of samples.
	Samples int64
	// RawBytes is the size of the samples as little-endian uint16s.
	RawBytes int64
	// EncodedBytes is the size of the stream, length prefixes included.
	EncodedBytes int64
	// RawBlocks, FramedBlocks and CompressedBlocks count blocks by tag.
	RawBlocks, FramedBlocks, CompressedBlocks int
	// Digest is the xxHash64 of the samples in little-endian byte order.
	Digest uint64
}

// Ratio returns EncodedBytes as a fraction of RawBytes, or 0 for an empty stream.
func (s Stats) Ratio() float64 {
	if s.RawBytes == 0 {
		return 0
	}

	return float64(s.EncodedBytes) / float64(s.RawBytes)
}

func (s *Stats) addTag(tag format.Tag) {
	switch {
	case tag == format.TagRaw:
		s.RawBlocks++
	case tag == format.TagFramed:
		s.FramedBlocks++
	default:
		s.CompressedBlocks++
	}
}
