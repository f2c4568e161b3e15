package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Codec provides S2 compression of framed blocks.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

// NewS2Codec creates a new S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Compress compresses the input data using S2 block compression.
func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrIncompressible
	}

	compressed := s2.Encode(nil, data)
	if len(compressed) >= len(data) {
		return nil, ErrIncompressible
	}

	return compressed, nil
}

// Decompress decompresses S2 data into exactly originalSize bytes.
//
// The length stored in the S2 block header is checked before any allocation.
func (c S2Codec) Decompress(data []byte, originalSize int) ([]byte, error) {
	if err := checkOriginalSize("s2", originalSize); err != nil {
		return nil, err
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompress: %w", err)
	}
	if err := checkSize("s2", n, originalSize); err != nil {
		return nil, err
	}

	decompressed, err := s2.Decode(make([]byte, originalSize), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompress: %w", err)
	}

	return decompressed, nil
}
