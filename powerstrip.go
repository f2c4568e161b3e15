// Package powerstrip compresses sequences of 16-bit meter readings that sit on
// a flat baseline most of the time and burst occasionally.
//
// Each block of samples is reduced to its active regions, which are delta
// encoded, bit-packed at the cheapest width with an escape channel for large
// jumps, framed and optionally entropy coded. Blocks that do not benefit fall
// back to raw storage, so encoding never expands data by more than a small
// fixed overhead.
//
// # Basic Usage
//
// Encoding one block:
//
//	data, err := powerstrip.EncodeBlock(samples)
//	if err != nil {
//	    return err
//	}
//	samples, err = powerstrip.DecodeBlock(data)
//
// Compressing a file of little-endian uint16 samples:
//
//	stats, err := powerstrip.Compress(dst, src, stream.WithConcurrency(runtime.NumCPU()))
//	fmt.Printf("Compressed to %.2f%% of the original size\n", stats.Ratio()*100)
//
// # Lossy Floor Window
//
// By default samples within 3 of the detected floor decode as the floor
// itself. Pass block.WithWindow(0) for an exact round trip on arbitrary input.
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained
// control use the block and stream packages directly:
//
//   - block: single-block Encoder and Decoder with options
//   - stream: length-prefixed block streams with parallel encoding
//   - encoding: floor detection, segmentation and delta bit-budget packing
//   - section: the binary frame layout
//   - compress: entropy coders (Huffman, Zstd, S2, LZ4, none)
package powerstrip

import (
	"io"

	"github.com/arloliu/powerstrip/block"
	"github.com/arloliu/powerstrip/stream"
)

// NewEncoder creates a block encoder.
func NewEncoder(opts ...block.Option) (*block.Encoder, error) {
	return block.NewEncoder(opts...)
}

// NewDecoder creates a block decoder.
func NewDecoder(opts ...block.Option) (*block.Decoder, error) {
	return block.NewDecoder(opts...)
}

// EncodeBlock encodes one block of at most block.MaxBlockSamples samples.
func EncodeBlock(samples []uint16, opts ...block.Option) ([]byte, error) {
	enc, err := block.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(samples)
}

// DecodeBlock decodes one block produced by EncodeBlock with matching options.
func DecodeBlock(data []byte, opts ...block.Option) ([]uint16, error) {
	dec, err := block.NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	return dec.Decode(data)
}

// Compress reads little-endian uint16 samples from src and writes a block stream to dst.
func Compress(dst io.Writer, src io.Reader, opts ...stream.Option) (stream.Stats, error) {
	return stream.Compress(dst, src, opts...)
}

// Decompress reads a block stream from src and writes little-endian uint16 samples to dst.
func Decompress(dst io.Writer, src io.Reader, opts ...stream.Option) (stream.Stats, error) {
	return stream.Decompress(dst, src, opts...)
}
