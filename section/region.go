package section

import (
	"fmt"

	"github.com/arloliu/powerstrip/encoding"
	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/internal/bitpack"
	"github.com/arloliu/powerstrip/internal/cursor"
)

// RegionSize returns the encoded size of a packed region, header included.
func RegionSize(b encoding.Bitpacked) int {
	return RegionHeaderSize + b.Size()
}

// WriteRegion appends a packed region to w.
func WriteRegion(w *cursor.Writer, b encoding.Bitpacked) {
	w.PutUint32(b.Len)
	w.PutUint8(b.Bits)
	w.PutUint32(uint32(len(b.Data)))
	w.PutBytes(b.Data)
}

// ReadRegion reads a packed region from r.
//
// The returned Data aliases the reader's buffer.
//
// Returns:
//   - errs.ErrTruncated if the header or data runs past the buffer
//   - errs.ErrInvalidBitWidth if Bits is outside [1, 32]
//   - errs.ErrRegionSize if ByteLen does not match the packed size of Len values
func ReadRegion(r *cursor.Reader) (encoding.Bitpacked, error) {
	var b encoding.Bitpacked

	n, err := r.Uint32()
	if err != nil {
		return b, err
	}
	bits, err := r.Uint8()
	if err != nil {
		return b, err
	}
	byteLen, err := r.Uint32()
	if err != nil {
		return b, err
	}

	if bits < bitpack.MinWidth || bits > bitpack.MaxWidth {
		return b, fmt.Errorf("%w: %d", errs.ErrInvalidBitWidth, bits)
	}
	if want := bitpack.PackedSize(int(n), int(bits)); uint64(byteLen) != uint64(want) {
		return b, fmt.Errorf("%w: %d values at %d bits need %d bytes, header says %d",
			errs.ErrRegionSize, n, bits, want, byteLen)
	}

	data, err := r.Bytes(int(byteLen))
	if err != nil {
		return b, err
	}

	b.Len, b.Bits, b.Data = n, bits, data

	return b, nil
}
