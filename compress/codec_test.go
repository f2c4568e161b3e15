package compress

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
)

// generateFrameLikeData creates data shaped like a packed frame: small
// headers and long runs of low-entropy packed words.
func generateFrameLikeData(size int, compressibility string) []byte {
	data := make([]byte, size)
	rng := rand.New(rand.NewPCG(uint64(size), 7))

	switch compressibility {
	case "skewed":
		for i := range data {
			if rng.IntN(10) == 0 {
				data[i] = byte(rng.IntN(16))
			}
		}
	case "pattern":
		pattern := []byte{0x11, 0x22, 0x11, 0x00, 0x00, 0x00, 0x33, 0x11}
		for i := range data {
			data[i] = pattern[i%len(pattern)]
		}
	default:
		for i := range data {
			data[i] = byte(rng.Uint32())
		}
	}

	return data
}

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"Huffman": NewHuffmanCodec(),
		"Zstd":    NewZstdCodec(),
		"S2":      NewS2Codec(),
		"LZ4":     NewLZ4Codec(),
	}
}

func TestGetCodec(t *testing.T) {
	tests := []struct {
		cType format.CompressionType
		want  Codec
	}{
		{format.CompressionNone, NoOpCodec{}},
		{format.CompressionHuffman, HuffmanCodec{}},
		{format.CompressionZstd, ZstdCodec{}},
		{format.CompressionS2, S2Codec{}},
		{format.CompressionLZ4, LZ4Codec{}},
	}

	for _, tt := range tests {
		t.Run(tt.cType.String(), func(t *testing.T) {
			builtin, err := GetCodec(tt.cType)
			require.NoError(t, err)
			require.IsType(t, tt.want, builtin)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := GetCodec(format.CompressionType(0xEE))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)

		_, err = GetCodec(format.CompressionType(0))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	for name, codec := range getAllCodecs() {
		for _, kind := range []string{"skewed", "pattern"} {
			for _, size := range []int{256, 4096, 65536, 131072} {
				t.Run(fmt.Sprintf("%s/%s/%d", name, kind, size), func(t *testing.T) {
					data := generateFrameLikeData(size, kind)

					compressed, err := codec.Compress(data)
					if IsIncompressible(err) {
						t.Skipf("%s declined %s data", name, kind)
					}
					require.NoError(t, err)
					require.Less(t, len(compressed), len(data))

					decompressed, err := codec.Decompress(compressed, len(data))
					require.NoError(t, err)
					require.Equal(t, data, decompressed)
				})
			}
		}
	}
}

func TestHuffmanCodec_SkewedDataCompresses(t *testing.T) {
	codec := NewHuffmanCodec()
	data := generateFrameLikeData(32768, "skewed")

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data)/2)

	decompressed, err := codec.Decompress(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestHuffmanCodec_Incompressible(t *testing.T) {
	codec := NewHuffmanCodec()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"single repeated byte", bytes.Repeat([]byte{0x42}, 4096)},
		{"random", generateFrameLikeData(4096, "random")},
		{"too big", make([]byte, 1<<18)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Compress(tt.data)
			require.True(t, IsIncompressible(err), "got %v", err)
		})
	}
}

func TestAllCodecs_EmptyIsIncompressible(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Compress(nil)
			require.ErrorIs(t, err, ErrIncompressible)
		})
	}
}

func TestAllCodecs_WrongOriginalSize(t *testing.T) {
	data := generateFrameLikeData(8192, "pattern")

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			_, err = codec.Decompress(compressed, len(data)-1)
			require.Error(t, err)

			_, err = codec.Decompress(compressed, 0)
			require.ErrorIs(t, err, errs.ErrEntropyLength)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0x00, 0x01, 0x02}

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decompress(garbage, 1024)
			require.Error(t, err)
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := generateFrameLikeData(16384, "skewed")

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, 16)
			for range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					compressed, err := codec.Compress(data)
					if err != nil {
						errCh <- err
						return
					}
					out, err := codec.Decompress(compressed, len(data))
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(out, data) {
						errCh <- fmt.Errorf("%s: round trip mismatch", name)
					}
				}()
			}
			wg.Wait()
			close(errCh)

			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestNoOpCodec(t *testing.T) {
	codec := NewNoOpCodec()
	data := []byte("frame bytes")

	_, err := codec.Compress(data)
	require.ErrorIs(t, err, ErrIncompressible)

	out, err := codec.Decompress(data, len(data))
	require.NoError(t, err)
	require.Equal(t, data, out)

	_, err = codec.Decompress(data, len(data)+1)
	require.ErrorIs(t, err, errs.ErrEntropyLength)
}

func BenchmarkAllCodecs_Compress(b *testing.B) {
	data := generateFrameLikeData(65536, "skewed")

	for name, codec := range getAllCodecs() {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))

			for b.Loop() {
				if _, err := codec.Compress(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	data := generateFrameLikeData(65536, "skewed")

	for name, codec := range getAllCodecs() {
		b.Run(name, func(b *testing.B) {
			compressed, err := codec.Compress(data)
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.SetBytes(int64(len(data)))

			for b.Loop() {
				if _, err := codec.Decompress(compressed, len(data)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
