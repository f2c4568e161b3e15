package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
)

// ErrIncompressible is returned by Compress when the output would not be
// smaller than the input. Callers treat it as "store the input uncompressed",
// not as a failure.
var ErrIncompressible = errors.New("data is incompressible")

// IsIncompressible reports whether err signals that compression was not worthwhile.
func IsIncompressible(err error) bool {
	return errors.Is(err, ErrIncompressible)
}

// Compressor compresses a framed block.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result.
	//
	// Returns ErrIncompressible when the result would not be smaller than data.
	// Any other error is a coder failure; the input is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a framed block.
type Decompressor interface {
	// Decompress decompresses data into exactly originalSize bytes.
	//
	// The originalSize bounds the output allocation, so corrupt input cannot
	// force an arbitrarily large buffer. Returns an error if the data is
	// corrupt or does not expand to exactly originalSize bytes.
	Decompress(data []byte, originalSize int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:    NewNoOpCodec(),
	format.CompressionHuffman: NewHuffmanCodec(),
	format.CompressionZstd:    NewZstdCodec(),
	format.CompressionS2:      NewS2Codec(),
	format.CompressionLZ4:     NewLZ4Codec(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}

// checkSize validates decompressed output against the expected length.
func checkSize(name string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s produced %d bytes, expected %d", errs.ErrEntropyLength, name, got, want)
	}

	return nil
}

func checkOriginalSize(name string, originalSize int) error {
	if originalSize <= 0 {
		return fmt.Errorf("%w: %s original size %d", errs.ErrEntropyLength, name, originalSize)
	}

	return nil
}
