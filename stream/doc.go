// Package stream reads and writes sequences of encoded blocks.
//
// A stream is a plain concatenation of length-prefixed blocks:
//
//	[u64 block length][tagged block] [u64 block length][tagged block] ...
//
// Lengths are little-endian and count the tag and payload of the block that
// follows. Every block except the last holds exactly the configured block
// size in samples. There is no stream header: the block size and entropy
// coder are agreed out of band, like the block package's settings.
//
// A Writer can encode blocks on several goroutines (WithConcurrency). Blocks
// are always written in input order, so the output is byte-identical to
// sequential encoding.
package stream
