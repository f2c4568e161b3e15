package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/powerstrip/block"
	"github.com/arloliu/powerstrip/format"
	"github.com/arloliu/powerstrip/internal/cursor"
	"github.com/arloliu/powerstrip/internal/hash"
)

var errWriterClosed = errors.New("stream writer is closed")

// pendingBlock is a block handed to a worker goroutine.
type pendingBlock struct {
	done    chan struct{}
	samples int
	data    []byte
	tag     format.Tag
	err     error
}

// Writer encodes samples into a block stream.
//
// Samples are buffered until a full block is available. Close encodes the
// final, possibly shorter block. A Writer is not safe for concurrent use.
type Writer struct {
	w           io.Writer
	enc         *block.Encoder
	concurrency int

	buf    []uint16
	queue  []*pendingBlock
	digest *hash.Digest
	stats  Stats
	err    error
	closed bool
}

// NewWriter creates a Writer that writes the stream to w.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	enc, err := block.NewEncoder(cfg.blockOpts...)
	if err != nil {
		return nil, err
	}

	return &Writer{
		w:           w,
		enc:         enc,
		concurrency: cfg.concurrency,
		buf:         make([]uint16, 0, enc.Config().BlockSamples()),
		digest:      hash.NewDigest(),
	}, nil
}

// BlockSamples returns the number of samples per block.
func (w *Writer) BlockSamples() int {
	return w.enc.Config().BlockSamples()
}

// WriteSamples buffers samples and encodes every block they complete.
//
// After an error every later call returns the same error.
func (w *Writer) WriteSamples(samples []uint16) error {
	if w.closed {
		return errWriterClosed
	}
	if w.err != nil {
		return w.err
	}

	w.digest.WriteSamples(samples)
	for len(samples) > 0 {
		n := min(len(samples), cap(w.buf)-len(w.buf))
		w.buf = append(w.buf, samples[:n]...)
		samples = samples[n:]

		if len(w.buf) == cap(w.buf) {
			if err := w.submit(); err != nil {
				return err
			}
		}
	}

	return nil
}

// Close encodes any buffered samples as the final block, waits for
// in-flight blocks and writes them. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true

	if w.err == nil && len(w.buf) > 0 {
		w.err = w.submit()
	}
	for w.err == nil && len(w.queue) > 0 {
		w.err = w.writeNext()
	}
	w.abandon()

	return w.err
}

// Stats returns the statistics of the blocks written so far.
func (w *Writer) Stats() Stats {
	s := w.stats
	s.Digest = w.digest.Sum64()

	return s
}

// submit hands the buffered block to the encoder and writes finished blocks
// once the number in flight reaches the concurrency limit.
func (w *Writer) submit() error {
	if w.concurrency == 1 {
		n := len(w.buf)
		data, res, err := w.enc.EncodeWithResult(w.buf)
		w.buf = w.buf[:0]
		if err != nil {
			w.err = err
			return err
		}
		w.err = w.emit(data, n, res.Tag)

		return w.err
	}

	samples := w.buf
	w.buf = make([]uint16, 0, cap(samples))

	p := &pendingBlock{done: make(chan struct{}), samples: len(samples)}
	go func() {
		defer close(p.done)
		var res block.Result
		p.data, res, p.err = w.enc.EncodeWithResult(samples)
		p.tag = res.Tag
	}()
	w.queue = append(w.queue, p)

	for len(w.queue) >= w.concurrency {
		if err := w.writeNext(); err != nil {
			w.err = err
			return err
		}
	}

	return nil
}

func (w *Writer) writeNext() error {
	p := w.queue[0]
	<-p.done
	w.queue[0] = nil
	w.queue = w.queue[1:]

	if p.err != nil {
		return p.err
	}

	return w.emit(p.data, p.samples, p.tag)
}

// emit writes one length-prefixed block.
func (w *Writer) emit(data []byte, samples int, tag format.Tag) error {
	var prefix [lengthPrefixSize]byte
	pw := cursor.NewWriter(prefix[:0])
	pw.PutUint64(uint64(len(data)))

	if _, err := w.w.Write(pw.Bytes()); err != nil {
		return fmt.Errorf("write block length: %w", err)
	}
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("write block: %w", err)
	}

	w.stats.Blocks++
	w.stats.Samples += int64(samples)
	w.stats.RawBytes += int64(samples) * format.SampleSize
	w.stats.EncodedBytes += int64(len(prefix) + len(data))
	w.stats.addTag(tag)

	return nil
}

// abandon waits for blocks still in flight after an error so no goroutine outlives Close.
func (w *Writer) abandon() {
	for _, p := range w.queue {
		<-p.done
	}
	w.queue = nil
}
