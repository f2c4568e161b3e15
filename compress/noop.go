package compress

// NoOpCodec never compresses. With it every packed block is stored under the
// framed tag, which is useful for measuring the packing stage on its own.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a new no-operation codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress always returns ErrIncompressible.
func (c NoOpCodec) Compress([]byte) ([]byte, error) {
	return nil, ErrIncompressible
}

// Decompress returns data unchanged after checking its length.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCodec) Decompress(data []byte, originalSize int) ([]byte, error) {
	if err := checkSize("noop", len(data), originalSize); err != nil {
		return nil, err
	}

	return data, nil
}
