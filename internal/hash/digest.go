// Package hash computes non-cryptographic xxHash64 digests of sample streams.
//
// Digests let the stream container and the CLI confirm that a decoded stream
// matches its input. They detect accidental corruption only.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest accumulates an xxHash64 over bytes and samples.
//
// Samples are hashed as their little-endian byte encoding, so hashing a
// sample slice gives the same result as hashing the raw file it came from.
type Digest struct {
	d   *xxhash.Digest
	buf [512]byte
}

// NewDigest creates an empty Digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// WriteSamples adds samples to the digest in little-endian byte order.
func (d *Digest) WriteSamples(samples []uint16) {
	for len(samples) > 0 {
		n := min(len(samples), len(d.buf)/2)
		for i := range n {
			binary.LittleEndian.PutUint16(d.buf[i*2:], samples[i])
		}
		_, _ = d.d.Write(d.buf[:n*2])
		samples = samples[n:]
	}
}

// Sum64 returns the current digest value.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
