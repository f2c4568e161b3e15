package powerstrip

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/powerstrip/block"
	"github.com/arloliu/powerstrip/format"
	"github.com/arloliu/powerstrip/stream"
)

// randomMeterBlock draws a block from a random mix of baseline, bursts and noise.
func randomMeterBlock(rng *rand.Rand) []uint16 {
	samples := make([]uint16, rng.IntN(block.MaxBlockSamples+1))
	floor := uint16(rng.IntN(1200))
	level := int(floor)
	for i := range samples {
		switch r := rng.IntN(100); {
		case r < 2:
			level = rng.IntN(65536)
		case r < 4:
			level = int(floor)
		case r < 6:
			samples[i] = uint16(rng.Uint32())
			continue
		}
		samples[i] = uint16(level)
	}

	return samples
}

func TestBlockRoundTrip_Property(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 1))
	for iter := range 25 {
		samples := randomMeterBlock(rng)

		data, err := EncodeBlock(samples, block.WithWindow(0))
		require.NoError(t, err)

		got, err := DecodeBlock(data)
		require.NoError(t, err)
		if len(samples) == 0 {
			require.Empty(t, got)
			continue
		}
		require.Equal(t, samples, got, "iteration %d, %d samples", iter, len(samples))
	}
}

func TestBlockRoundTrip_EveryCompression(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 2))
	samples := randomMeterBlock(rng)

	for _, comp := range []format.CompressionType{
		format.CompressionNone, format.CompressionHuffman, format.CompressionZstd,
		format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(comp.String(), func(t *testing.T) {
			enc, err := NewEncoder(block.WithCompression(comp), block.WithWindow(0))
			require.NoError(t, err)
			dec, err := NewDecoder(block.WithCompression(comp))
			require.NoError(t, err)

			data, err := enc.Encode(samples)
			require.NoError(t, err)
			got, err := dec.Decode(data)
			require.NoError(t, err)
			require.Equal(t, len(samples), len(got))
			require.Equal(t, samples, got)
		})
	}
}

func TestStreamRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 3))
	var raw bytes.Buffer
	for range 3 {
		require.NoError(t, stream.WriteSamplesLE(&raw, randomMeterBlock(rng)))
	}
	input := raw.Bytes()

	var encoded bytes.Buffer
	cs, err := Compress(&encoded, bytes.NewReader(input),
		stream.WithConcurrency(4),
		stream.WithBlockOptions(block.WithWindow(0)),
	)
	require.NoError(t, err)
	require.Equal(t, int64(len(input)), cs.RawBytes)
	require.Equal(t, int64(encoded.Len()), cs.EncodedBytes)

	var decoded bytes.Buffer
	ds, err := Decompress(&decoded, &encoded)
	require.NoError(t, err)
	require.Equal(t, input, decoded.Bytes())
	require.Equal(t, cs.Digest, ds.Digest)
}
