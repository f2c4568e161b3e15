package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
	"github.com/arloliu/powerstrip/internal/hash"
	"github.com/arloliu/powerstrip/stream"
)

func runCompress(e *env, args []string) (err error) {
	var (
		f     codecFlags
		quiet bool
	)
	fs := newFlagSet("compress")
	f.register(fs, true)
	fs.BoolVarP(&quiet, "quiet", "q", false, "do not print compression stats")
	if stop, err := parse(e, fs, "compress [flags] [input [output]]", args); stop || err != nil {
		return err
	}

	logger, opts, err := f.setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	in, out, closeIO, err := openIO(e, fs.Args(), 2)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeIO()) }()

	bw := bufio.NewWriter(out)
	start := time.Now()
	stats, err := stream.Compress(bw, bufio.NewReader(in), opts...)
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if !quiet {
		printCompressStats(e.stderr, stats, time.Since(start))
	}

	return nil
}

func printCompressStats(w io.Writer, s stream.Stats, elapsed time.Duration) {
	fmt.Fprintf(w, "Compressed to %.2f%% of the original size in %.3f seconds\n", s.Ratio()*100, elapsed.Seconds())
	fmt.Fprintf(w, "%d samples in %d blocks (%d raw, %d framed, %d compressed), digest %016x\n",
		s.Samples, s.Blocks, s.RawBlocks, s.FramedBlocks, s.CompressedBlocks, s.Digest)
}

func runDecompress(e *env, args []string) (err error) {
	var (
		f      codecFlags
		binOut bool
		quiet  bool
	)
	fs := newFlagSet("decompress")
	f.register(fs, false)
	fs.BoolVarP(&binOut, "binary", "b", false, "write little-endian uint16 samples instead of decimal text")
	fs.BoolVarP(&quiet, "quiet", "q", false, "do not print stats")
	if stop, err := parse(e, fs, "decompress [flags] [input [output]]", args); stop || err != nil {
		return err
	}

	logger, opts, err := f.setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	in, out, closeIO, err := openIO(e, fs.Args(), 2)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeIO()) }()

	bw := bufio.NewWriter(out)
	start := time.Now()

	var stats stream.Stats
	if binOut {
		stats, err = stream.Decompress(bw, bufio.NewReader(in), opts...)
	} else {
		stats, err = stream.Each(context.Background(), bufio.NewReader(in), func(samples []uint16) error {
			return writeText(bw, samples)
		}, opts...)
	}
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if !quiet {
		fmt.Fprintf(e.stderr, "Decompressed %d samples from %d blocks in %.3f seconds, digest %016x\n",
			stats.Samples, stats.Blocks, time.Since(start).Seconds(), stats.Digest)
	}

	return nil
}

func runVerify(e *env, args []string) (err error) {
	var f codecFlags
	fs := newFlagSet("verify")
	f.register(fs, true)
	if stop, err := parse(e, fs, "verify [flags] [input]", args); stop || err != nil {
		return err
	}

	logger, opts, err := f.setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	in, _, closeIO, err := openIO(e, fs.Args(), 1)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeIO()) }()

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(raw)%format.SampleSize != 0 {
		return fmt.Errorf("%w: %d bytes", errs.ErrOddLength, len(raw))
	}

	var encoded bytes.Buffer
	start := time.Now()
	cs, err := stream.Compress(&encoded, bytes.NewReader(raw), opts...)
	if err != nil {
		return err
	}
	printCompressStats(e.stdout, cs, time.Since(start))

	var (
		pos       int
		collapsed int
		worst     int
	)
	ds, err := stream.Each(context.Background(), &encoded, func(samples []uint16) error {
		if pos+len(samples) > len(raw)/format.SampleSize {
			return fmt.Errorf("stream decodes past the %d input samples", len(raw)/format.SampleSize)
		}
		for _, got := range samples {
			want := binary.LittleEndian.Uint16(raw[pos*format.SampleSize:])
			if got != want {
				collapsed++
				worst = max(worst, absDiff(got, want))
			}
			pos++
		}

		return nil
	}, opts...)
	if err != nil {
		return err
	}
	if ds.Samples != cs.Samples {
		return fmt.Errorf("decoded %d samples, encoded %d", ds.Samples, cs.Samples)
	}

	switch {
	case collapsed == 0:
		if want := hash.Sum(raw); ds.Digest != want {
			return fmt.Errorf("digest %016x does not match input digest %016x", ds.Digest, want)
		}
		fmt.Fprintf(e.stdout, "OK: exact round trip, digest %016x\n", ds.Digest)
	case worst <= int(f.window):
		fmt.Fprintf(e.stdout, "OK: %d samples collapsed onto the floor, at most %d away (window %d)\n",
			collapsed, worst, f.window)
	default:
		return fmt.Errorf("%d samples differ, worst by %d, window is %d", collapsed, worst, f.window)
	}

	return nil
}

func absDiff(a, b uint16) int {
	if a > b {
		return int(a - b)
	}

	return int(b - a)
}

func (f *codecFlags) setup() (*zap.Logger, []stream.Option, error) {
	logger, err := f.logger()
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	opts, err := f.streamOptions(logger)
	if err != nil {
		return nil, nil, err
	}

	return logger, opts, nil
}

func writeText(w *bufio.Writer, samples []uint16) error {
	var line []byte
	for _, s := range samples {
		line = strconv.AppendUint(line[:0], uint64(s), 10)
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}

	return nil
}
