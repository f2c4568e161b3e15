package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/powerstrip/block"
	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
	"github.com/arloliu/powerstrip/internal/cursor"
	"github.com/arloliu/powerstrip/internal/hash"
)

// Reader decodes a block stream.
type Reader struct {
	r      io.Reader
	dec    *block.Decoder
	buf    []byte
	digest *hash.Digest
	stats  Stats
}

// NewReader creates a Reader over r. WithConcurrency is accepted and ignored.
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	dec, err := block.NewDecoder(cfg.blockOpts...)
	if err != nil {
		return nil, err
	}

	return &Reader{r: r, dec: dec, digest: hash.NewDigest()}, nil
}

// Next decodes the next block and appends its samples to dst.
//
// Returns io.EOF when the stream ends cleanly at a block boundary.
//
// Returns:
//   - errs.ErrTruncated if the stream ends inside a length prefix or block
//   - errs.ErrBlockTooLarge if a length prefix exceeds MaxBlockBytes
//   - any error from block.Decoder.AppendDecode, wrapped with the block index
func (r *Reader) Next(dst []uint16) ([]uint16, error) {
	var prefix [lengthPrefixSize]byte
	n, err := io.ReadFull(r.r, prefix[:])
	switch {
	case n == 0 && errors.Is(err, io.EOF):
		return dst, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return dst, fmt.Errorf("block %d: %w: length prefix cut after %d bytes", r.stats.Blocks, errs.ErrTruncated, n)
	case err != nil:
		return dst, fmt.Errorf("block %d: read length: %w", r.stats.Blocks, err)
	}

	size, _ := cursor.NewReader(prefix[:]).Uint64()
	if size > MaxBlockBytes {
		return dst, fmt.Errorf("block %d: %w: %d bytes, limit %d", r.stats.Blocks, errs.ErrBlockTooLarge, size, MaxBlockBytes)
	}

	if cap(r.buf) < int(size) {
		r.buf = make([]byte, size)
	}
	r.buf = r.buf[:size]
	if _, err := io.ReadFull(r.r, r.buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return dst, fmt.Errorf("block %d: %w: want %d bytes", r.stats.Blocks, errs.ErrTruncated, size)
		}

		return dst, fmt.Errorf("block %d: read: %w", r.stats.Blocks, err)
	}

	start := len(dst)
	dst, err = r.dec.AppendDecode(dst, r.buf)
	if err != nil {
		return dst, fmt.Errorf("block %d: %w", r.stats.Blocks, err)
	}

	samples := dst[start:]
	r.digest.WriteSamples(samples)
	r.stats.Blocks++
	r.stats.Samples += int64(len(samples))
	r.stats.RawBytes += int64(len(samples)) * format.SampleSize
	r.stats.EncodedBytes += int64(len(prefix)) + int64(size)
	r.stats.addTag(format.Tag(binary.LittleEndian.Uint32(r.buf)))

	return dst, nil
}

// ReadAll decodes every remaining block.
func (r *Reader) ReadAll() ([]uint16, error) {
	var out []uint16
	for {
		var err error
		out, err = r.Next(out)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}

// Stats returns the statistics of the blocks read so far.
func (r *Reader) Stats() Stats {
	s := r.stats
	s.Digest = r.digest.Sum64()

	return s
}
