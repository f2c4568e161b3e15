package hash

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.sum, Sum([]byte(tt.data)))
		})
	}
}

func TestDigest_SamplesMatchBytes(t *testing.T) {
	samples := make([]uint16, 1000) // spans several internal chunks
	for i := range samples {
		samples[i] = uint16(i * 37)
	}
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[i*2:], s)
	}

	d := NewDigest()
	d.WriteSamples(samples[:300])
	d.WriteSamples(samples[300:])

	require.Equal(t, Sum(raw), d.Sum64())
}
