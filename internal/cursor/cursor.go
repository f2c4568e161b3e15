// Package cursor provides bounds-checked little-endian readers and writers over byte slices.
//
// Reader never reads past the end of its buffer: every read that would overrun
// returns an error wrapping errs.ErrTruncated and leaves the offset unchanged.
package cursor

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/arloliu/powerstrip/errs"
)

// Reader reads fixed-width little-endian values from a byte slice.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrTruncated, n, r.off, r.Remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n

	return b, nil
}

// Uint8 reads one byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b), nil
}

// Bytes returns the next n bytes without copying.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.take(n)
}

// Uint32s reads n little-endian uint32 values and appends them to dst.
//
// The length is checked against the remaining bytes before dst grows, so a
// corrupt count cannot trigger a large allocation.
func (r *Reader) Uint32s(dst []uint32, n int) ([]uint32, error) {
	if n < 0 || n > r.Remaining()/4 {
		return dst, fmt.Errorf("%w: need %d uint32 values at offset %d, have %d bytes",
			errs.ErrTruncated, n, r.off, r.Remaining())
	}

	b, _ := r.take(n * 4)
	dst = slices.Grow(dst, n)
	for i := range n {
		dst = append(dst, binary.LittleEndian.Uint32(b[i*4:]))
	}

	return dst, nil
}

// Writer appends little-endian values to a byte slice.
//
// The zero value is an empty writer ready for use.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer that appends to dst.
func NewWriter(dst []byte) *Writer {
	return &Writer{buf: dst}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Grow ensures space for n more bytes without reallocating.
func (w *Writer) Grow(n int) {
	w.buf = slices.Grow(w.buf, n)
}

// PutUint8 appends one byte.
func (w *Writer) PutUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// PutUint16 appends a little-endian uint16.
func (w *Writer) PutUint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// PutUint32 appends a little-endian uint32.
func (w *Writer) PutUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// PutUint64 appends a little-endian uint64.
func (w *Writer) PutUint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// PutBytes appends b verbatim.
func (w *Writer) PutBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// PutUint32s appends each value as a little-endian uint32.
func (w *Writer) PutUint32s(values []uint32) {
	w.buf = slices.Grow(w.buf, len(values)*4)
	for _, v := range values {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	}
}
