// Package block encodes and decodes single blocks of 16-bit samples.
//
// An Encoder runs floor detection, segmentation and delta bit-budget packing
// over a block, frames the result and then picks the cheapest of three forms,
// each introduced by a 4-byte little-endian tag:
//
//	Tag          | Payload
//	-------------|-----------------------------------------------
//	0x00000000   | raw samples, little-endian (packing did not pay off)
//	0xFFFFFFFF   | frame, uncompressed (entropy coding did not pay off)
//	n            | entropy-coded frame that expands to n bytes
//
// A frame larger than the raw samples falls back to raw, so
// the compressed tag n is always at most MaxFrameSize(blockSamples).
//
// The entropy coder and block size are stream-level settings that the
// decoder must share with the encoder. The floor window and cutoff are
// encoder-only: the frame carries everything the decoder needs.
//
// Encoders and Decoders are immutable after construction and safe for
// concurrent use. Scratch buffers come from sync.Pool.
package block
