// Package compress provides the entropy coders applied to framed powerstrip blocks.
//
// The block orchestrator bit-packs a block into a frame, then hands the frame
// to a Codec. A Codec may decline with ErrIncompressible, in which case the
// frame is stored uncompressed under the framed tag. Decompression is always
// told the exact original length, which the block tag records.
//
// Supported coders:
//   - Huffman (format.CompressionHuffman): klauspost huff0 single-stream
//     Huffman coding. The default. Packed frames are short, byte-oriented and
//     have skewed byte distributions, and that is where order-0 Huffman does well.
//   - Zstd (format.CompressionZstd): better ratio on frames with repeated
//     structure, slower.
//   - S2 (format.CompressionS2): fast LZ77 coding.
//   - LZ4 (format.CompressionLZ4): fastest decompression.
//   - None (format.CompressionNone): never compresses.
//
// The coder is a stream-level setting. Tags do not name the coder, so an
// encoder and decoder must be configured with the same type.
//
// All codecs are stateless values and safe for concurrent use. Internal
// encoder and decoder state is pooled.
package compress
