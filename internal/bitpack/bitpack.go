// Package bitpack packs unsigned integers into a dense buffer of fixed-width bit fields.
//
// Values are written least-significant bit first into 32-bit little-endian words,
// so the packed size of n values at width w is always ceil(n*w/32)*4 bytes. The
// padding of the final word is zero.
package bitpack

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/arloliu/powerstrip/errs"
)

const (
	// MinWidth is the narrowest supported bit width.
	MinWidth = 1
	// MaxWidth is the widest supported bit width.
	MaxWidth = 32

	wordBytes = 4
	wordBits  = 32
)

// PackedSize returns the number of bytes Pack produces for count values at the given width.
func PackedSize(count, width int) int {
	return (count*width + wordBits - 1) / wordBits * wordBytes
}

// Pack appends count=len(values) values of width bits to dst and returns the extended slice.
//
// Bits above width are discarded. Panics if width is outside [MinWidth, MaxWidth];
// widths are chosen by the encoder, so an invalid width is a programming error.
func Pack(dst []byte, values []uint32, width int) []byte {
	if width < MinWidth || width > MaxWidth {
		panic(fmt.Sprintf("bitpack: invalid width %d", width))
	}

	size := PackedSize(len(values), width)
	start := len(dst)
	dst = slices.Grow(dst, size)[:start+size]
	out := dst[start:]

	mask := uint64(1)<<uint(width) - 1

	var (
		acc   uint64
		nbits uint
		pos   int
	)
	for _, v := range values {
		acc |= (uint64(v) & mask) << nbits
		nbits += uint(width)
		if nbits >= wordBits {
			binary.LittleEndian.PutUint32(out[pos:], uint32(acc))
			pos += wordBytes
			acc >>= wordBits
			nbits -= wordBits
		}
	}
	if nbits > 0 {
		binary.LittleEndian.PutUint32(out[pos:], uint32(acc))
		pos += wordBytes
	}
	clear(out[pos:])

	return dst
}

// Unpack decodes count values of width bits from data, appending them to dst.
//
// Returns errs.ErrInvalidBitWidth for an unsupported width and errs.ErrTruncated
// when data is shorter than PackedSize(count, width). Extra bytes after the packed
// words are ignored.
func Unpack(dst []uint32, data []byte, count, width int) ([]uint32, error) {
	if width < MinWidth || width > MaxWidth {
		return dst, fmt.Errorf("%w: %d", errs.ErrInvalidBitWidth, width)
	}
	if count < 0 {
		return dst, fmt.Errorf("%w: negative count %d", errs.ErrTruncated, count)
	}

	need := PackedSize(count, width)
	if len(data) < need {
		return dst, fmt.Errorf("%w: %d values at %d bits need %d bytes, have %d",
			errs.ErrTruncated, count, width, need, len(data))
	}

	dst = slices.Grow(dst, count)
	mask := uint64(1)<<uint(width) - 1

	var (
		acc   uint64
		nbits uint
		pos   int
	)
	for range count {
		if nbits < uint(width) {
			acc |= uint64(binary.LittleEndian.Uint32(data[pos:])) << nbits
			pos += wordBytes
			nbits += wordBits
		}
		dst = append(dst, uint32(acc&mask))
		acc >>= uint(width)
		nbits -= uint(width)
	}

	return dst, nil
}
