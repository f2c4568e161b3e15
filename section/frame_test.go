package section

import (
	"encoding/binary"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/powerstrip/encoding"
	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
)

func buildFrame(samples []uint16, window uint16) Frame {
	floor := encoding.DetectFloor(samples, encoding.DefaultMaxFloor)
	segs, actives := encoding.Strip(samples, floor, window, nil)
	packed := encoding.Pack(actives)

	return Frame{
		Signal:   packed.Signal,
		Outliers: packed.Outliers,
		Total:    uint32(len(samples)),
		Floor:    floor,
		Segments: segs,
	}
}

func burstySamples(rng *rand.Rand, n int) []uint16 {
	samples := make([]uint16, n)
	for i := range samples {
		if rng.IntN(5) == 0 {
			samples[i] = uint16(300 + rng.IntN(2000))
		} else {
			samples[i] = 12
		}
	}

	return samples
}

func TestFrame_Layout(t *testing.T) {
	f := buildFrame([]uint16{0, 0, 0, 500, 0, 0}, 3)

	want := []byte{
		1, 0, 0, 0, 10, 4, 0, 0, 0, 0xE8, 0x03, 0, 0, // signal: one value at 10 bits, zigzag(500)=1000
		0, 0, 0, 0, 17, 0, 0, 0, 0, // outliers: empty
		6, 0, 0, 0, 0, 0, 1, 0, 0, 0, // total 6, floor 0, one segment
		3, 0, 0, 0, // start
		1, 0, 0, 0, // length
	}

	data := f.Bytes()
	require.Equal(t, want, data)
	require.Equal(t, len(want), f.Size())
}

func TestFrame_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(61, 62))
	for iter := range 30 {
		samples := burstySamples(rng, 1+rng.IntN(3000))
		f := buildFrame(samples, 0)

		data := f.AppendTo([]byte{0xAA})[1:]
		require.Len(t, data, f.Size())

		parsed, err := ParseFrame(data)
		require.NoError(t, err, "iteration %d", iter)
		require.Equal(t, f.Total, parsed.Total)
		require.Equal(t, f.Floor, parsed.Floor)
		require.Equal(t, f.Segments, parsed.Segments)
		require.Equal(t, data, parsed.Bytes())

		actives, err := parsed.Packed().Unpack(nil)
		require.NoError(t, err)

		out := make([]uint16, parsed.Total)
		require.NoError(t, encoding.Unstrip(parsed.Segments, parsed.Floor, parsed.Total, actives, out))
		require.Equal(t, samples, out, "iteration %d", iter)
	}
}

func TestFrame_NoFloor(t *testing.T) {
	f := buildFrame([]uint16{5000, 6000, 7000}, 3)
	require.Equal(t, encoding.NoFloor, f.Floor)

	parsed, err := ParseFrame(f.Bytes())
	require.NoError(t, err)
	require.Equal(t, encoding.NoFloor, parsed.Floor)
	require.Equal(t, encoding.Segments{Starts: []uint32{0}, Lengths: []uint32{3}}, parsed.Segments)
}

func TestParseFrame_TruncatedAtEveryCut(t *testing.T) {
	rng := rand.New(rand.NewPCG(63, 64))
	data := buildFrame(burstySamples(rng, 200), 0).Bytes()

	for cut := range len(data) {
		_, err := ParseFrame(data[:cut])
		require.Error(t, err, "cut at %d", cut)
	}
}

func TestParseFrame_TrailingBytes(t *testing.T) {
	data := buildFrame([]uint16{0, 0, 0, 500, 0, 0}, 3).Bytes()
	_, err := ParseFrame(append(data, 0))
	require.ErrorIs(t, err, errs.ErrTrailingBytes)
}

func TestParseFrame_Corrupt(t *testing.T) {
	base := buildFrame([]uint16{0, 0, 0, 500, 0, 0}, 3).Bytes()
	mutate := func(fn func(b []byte)) []byte {
		b := append([]byte(nil), base...)
		fn(b)

		return b
	}

	// Offsets into the layout checked by TestFrame_Layout.
	const (
		signalBits    = 4
		signalByteLen = 5
		outlierBits   = 17
		total         = 22
		segCount      = 28
		segStart      = 32
	)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"zero signal width", mutate(func(b []byte) { b[signalBits] = 0 }), errs.ErrInvalidBitWidth},
		{"signal width above 32", mutate(func(b []byte) { b[signalBits] = 40 }), errs.ErrInvalidBitWidth},
		{"signal byte length", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[signalByteLen:], 8) }), errs.ErrRegionSize},
		{"outlier width", mutate(func(b []byte) { b[outlierBits] = 0 }), errs.ErrInvalidBitWidth},
		{"segment past total", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[total:], 3) }), errs.ErrSegmentOutOfRange},
		{"huge segment count", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[segCount:], 0xFFFFFFFF) }), errs.ErrTruncated},
		{"segment start", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[segStart:], 6) }), errs.ErrSegmentOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFrame(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadRegion_HugeLenRejectedBeforeRead(t *testing.T) {
	// Len claims 2^32-1 values; the byte length cannot match, so nothing is allocated.
	data := []byte{0xFF, 0xFF, 0xFF, 0xFF, 16, 0, 0, 0, 0}
	_, err := ParseFrame(data)
	require.ErrorIs(t, err, errs.ErrRegionSize)
}

func TestMinFrameSize(t *testing.T) {
	f := Frame{
		Signal:   encoding.PackBits(nil, 1),
		Outliers: encoding.PackBits(nil, format.OutlierBits),
	}
	require.Equal(t, MinFrameSize, f.Size())

	parsed, err := ParseFrame(f.Bytes())
	require.NoError(t, err)
	require.Zero(t, parsed.Total)
	require.Zero(t, parsed.Segments.Count())
}

func TestFrame_SizeMatchesEncoding(t *testing.T) {
	rng := rand.New(rand.NewPCG(41, 42))
	for _, n := range []int{0, 1, 6, 300, 4096} {
		samples := burstySamples(rng, n)
		size := buildFrame(samples, 3).Size()
		data := buildFrame(samples, 3).Bytes()
		require.Len(t, data, size, "%d samples", n)

		f := buildFrame(samples, 3)
		require.Equal(t, RegionHeaderSize+f.Signal.Size(), RegionSize(f.Signal))
		require.Equal(t, data, f.AppendTo(nil))
	}
}

func TestParseFrame_TrailingBytesReportOffset(t *testing.T) {
	data := buildFrame([]uint16{0, 0, 0, 500, 0, 0}, 3).Bytes()
	_, err := ParseFrame(append(data, 0, 0))
	require.ErrorIs(t, err, errs.ErrTrailingBytes)
	require.ErrorContains(t, err, "2 bytes at offset 40")
}

func BenchmarkParseFrame(b *testing.B) {
	rng := rand.New(rand.NewPCG(65, 66))
	data := buildFrame(burstySamples(rng, 65536), 0).Bytes()
	b.SetBytes(int64(len(data)))

	for b.Loop() {
		if _, err := ParseFrame(data); err != nil {
			b.Fatal(err)
		}
	}
}
