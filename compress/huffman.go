package compress

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/huff0"
)

// huffScratchPool pools huff0 scratch state. A Scratch keeps its histogram and
// output buffers between calls, so reuse avoids per-block allocations.
var huffScratchPool = sync.Pool{
	New: func() any {
		return &huff0.Scratch{}
	},
}

// HuffmanCodec provides single-stream Huffman coding of framed blocks.
//
// Every compressed block carries its own table; tables are never reused
// across blocks, so blocks stay independently decodable.
type HuffmanCodec struct{}

var _ Codec = (*HuffmanCodec)(nil)

// NewHuffmanCodec creates a new Huffman codec.
func NewHuffmanCodec() HuffmanCodec {
	return HuffmanCodec{}
}

// Compress Huffman-codes data.
//
// Inputs made of a single repeated byte, inputs with a flat byte distribution
// and inputs above huff0.BlockSizeMax report ErrIncompressible.
func (c HuffmanCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data) > huff0.BlockSizeMax {
		return nil, ErrIncompressible
	}

	s, _ := huffScratchPool.Get().(*huff0.Scratch)
	defer huffScratchPool.Put(s)

	s.Reuse = huff0.ReusePolicyNone
	out, _, err := huff0.Compress1X(data, s)
	switch {
	case errors.Is(err, huff0.ErrIncompressible), errors.Is(err, huff0.ErrUseRLE):
		return nil, ErrIncompressible
	case err != nil:
		return nil, fmt.Errorf("huffman compress: %w", err)
	}

	if len(out) >= len(data) {
		return nil, ErrIncompressible
	}

	// out aliases the scratch buffer, which goes back to the pool.
	return bytes.Clone(out), nil
}

// Decompress decodes a Huffman-coded block into exactly originalSize bytes.
func (c HuffmanCodec) Decompress(data []byte, originalSize int) ([]byte, error) {
	if err := checkOriginalSize("huffman", originalSize); err != nil {
		return nil, err
	}

	s, remain, err := huff0.ReadTable(data, nil)
	if err != nil {
		return nil, fmt.Errorf("huffman table: %w", err)
	}

	// The capacity of dst bounds the decoded size.
	out, err := s.Decoder().Decompress1X(make([]byte, 0, originalSize), remain)
	if err != nil {
		return nil, fmt.Errorf("huffman decompress: %w", err)
	}

	if err := checkSize("huffman", len(out), originalSize); err != nil {
		return nil, err
	}

	return out, nil
}
