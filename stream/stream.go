package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
)

// Compress reads little-endian uint16 samples from src and writes a block stream to dst.
func Compress(dst io.Writer, src io.Reader, opts ...Option) (Stats, error) {
	return CompressContext(context.Background(), dst, src, opts...)
}

// CompressContext is Compress with cancellation, checked between blocks.
//
// Returns errs.ErrOddLength if src ends with half a sample. Blocks written
// before an error remain in dst.
func CompressContext(ctx context.Context, dst io.Writer, src io.Reader, opts ...Option) (Stats, error) {
	w, err := NewWriter(dst, opts...)
	if err != nil {
		return Stats{}, err
	}

	raw := make([]byte, w.BlockSamples()*format.SampleSize)
	samples := make([]uint16, 0, w.BlockSamples())

	for {
		if err := ctx.Err(); err != nil {
			_ = w.Close()
			return w.Stats(), err
		}

		n, readErr := io.ReadFull(src, raw)
		if readErr != nil && !errors.Is(readErr, io.EOF) && !errors.Is(readErr, io.ErrUnexpectedEOF) {
			_ = w.Close()
			return w.Stats(), fmt.Errorf("read samples: %w", readErr)
		}
		if n%format.SampleSize != 0 {
			_ = w.Close()
			return w.Stats(), fmt.Errorf("%w: %d trailing byte", errs.ErrOddLength, n%format.SampleSize)
		}

		samples = samples[:0]
		for i := 0; i < n; i += format.SampleSize {
			samples = append(samples, binary.LittleEndian.Uint16(raw[i:]))
		}
		if err := w.WriteSamples(samples); err != nil {
			_ = w.Close()
			return w.Stats(), err
		}

		if readErr != nil {
			break
		}
	}

	err = w.Close()

	return w.Stats(), err
}

// Decompress reads a block stream from src and writes the samples to dst as little-endian uint16s.
func Decompress(dst io.Writer, src io.Reader, opts ...Option) (Stats, error) {
	return DecompressContext(context.Background(), dst, src, opts...)
}

// DecompressContext is Decompress with cancellation, checked between blocks.
func DecompressContext(ctx context.Context, dst io.Writer, src io.Reader, opts ...Option) (Stats, error) {
	return Each(ctx, src, func(samples []uint16) error {
		return WriteSamplesLE(dst, samples)
	}, opts...)
}

// Each decodes src block by block and calls fn with each block's samples.
//
// The slice passed to fn is reused for the next block.
func Each(ctx context.Context, src io.Reader, fn func(samples []uint16) error, opts ...Option) (Stats, error) {
	r, err := NewReader(src, opts...)
	if err != nil {
		return Stats{}, err
	}

	var samples []uint16
	for {
		if err := ctx.Err(); err != nil {
			return r.Stats(), err
		}

		samples, err = r.Next(samples[:0])
		if errors.Is(err, io.EOF) {
			return r.Stats(), nil
		}
		if err != nil {
			return r.Stats(), err
		}

		if err := fn(samples); err != nil {
			return r.Stats(), err
		}
	}
}

// WriteSamplesLE writes samples to w as little-endian uint16s.
func WriteSamplesLE(w io.Writer, samples []uint16) error {
	var buf [4096]byte
	for len(samples) > 0 {
		n := min(len(samples), len(buf)/format.SampleSize)
		for i := range n {
			binary.LittleEndian.PutUint16(buf[i*format.SampleSize:], samples[i])
		}
		if _, err := w.Write(buf[:n*format.SampleSize]); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
		samples = samples[n:]
	}

	return nil
}
