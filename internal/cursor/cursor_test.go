package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/powerstrip/errs"
)

func TestWriterReader_RoundTrip(t *testing.T) {
	var w Writer
	w.PutUint8(0x7F)
	w.PutUint16(0xBEEF)
	w.PutUint32(0xDEADBEEF)
	w.PutUint64(0x0102030405060708)
	w.PutBytes([]byte("abc"))
	w.PutUint32s([]uint32{1, 2, 0xFFFFFFFF})

	require.Equal(t, 1+2+4+8+3+12, len(w.Bytes()))

	r := NewReader(w.Bytes())

	u8, err := r.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x7F), u8)

	u16, err := r.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xBEEF), u16)

	u32, err := r.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	u64, err := r.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), u64)

	b, err := r.Bytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), b)

	values, err := r.Uint32s(nil, 3)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 0xFFFFFFFF}, values)

	require.Equal(t, 0, r.Remaining())
	require.Equal(t, len(w.Bytes()), r.Offset())
}

func TestWriter_LittleEndianLayout(t *testing.T) {
	w := NewWriter(nil)
	w.PutUint32(0x04030201)
	w.PutUint16(0x0605)

	require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, w.Bytes())
}

func TestReader_Truncated(t *testing.T) {
	tests := []struct {
		name string
		read func(r *Reader) error
	}{
		{"uint8", func(r *Reader) error { _, err := r.Uint8(); return err }},
		{"uint16", func(r *Reader) error { _, err := r.Uint16(); return err }},
		{"uint32", func(r *Reader) error { _, err := r.Uint32(); return err }},
		{"uint64", func(r *Reader) error { _, err := r.Uint64(); return err }},
		{"bytes", func(r *Reader) error { _, err := r.Bytes(10); return err }},
		{"negative bytes", func(r *Reader) error { _, err := r.Bytes(-1); return err }},
		{"uint32s", func(r *Reader) error { _, err := r.Uint32s(nil, 1<<30); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(nil)
			err := tt.read(r)
			require.ErrorIs(t, err, errs.ErrTruncated)
			require.Equal(t, 0, r.Offset(), "failed read must not advance")
		})
	}
}

func TestReader_PartialThenTruncated(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})

	_, err := r.Uint16()
	require.NoError(t, err)

	_, err = r.Uint16()
	require.ErrorIs(t, err, errs.ErrTruncated)
	require.Equal(t, 2, r.Offset())
	require.Equal(t, 1, r.Remaining())
}
