package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
)

func runToBytes(e *env, args []string) (err error) {
	fs := newFlagSet("tobytes")
	if stop, err := parse(e, fs, "tobytes [input [output]]", args); stop || err != nil {
		return err
	}

	in, out, closeIO, err := openIO(e, fs.Args(), 2)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeIO()) }()

	bw := bufio.NewWriter(out)
	var buf [format.SampleSize]byte
	err = readText(in, func(s uint16) error {
		binary.LittleEndian.PutUint16(buf[:], s)
		_, err := bw.Write(buf[:])

		return err
	})
	if err != nil {
		return err
	}

	return bw.Flush()
}

func runFromBytes(e *env, args []string) (err error) {
	fs := newFlagSet("frombytes")
	if stop, err := parse(e, fs, "frombytes [input [output]]", args); stop || err != nil {
		return err
	}

	in, out, closeIO, err := openIO(e, fs.Args(), 2)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeIO()) }()

	br := bufio.NewReader(in)
	bw := bufio.NewWriter(out)
	samples := make([]uint16, 0, 2048)
	var buf [4096]byte
	for {
		n, readErr := io.ReadFull(br, buf[:])
		if n%format.SampleSize != 0 {
			return fmt.Errorf("%w: %d trailing byte", errs.ErrOddLength, n%format.SampleSize)
		}

		samples = samples[:0]
		for i := 0; i < n; i += format.SampleSize {
			samples = append(samples, binary.LittleEndian.Uint16(buf[i:]))
		}
		if err := writeText(bw, samples); err != nil {
			return err
		}

		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return fmt.Errorf("read input: %w", readErr)
		}
	}

	return bw.Flush()
}

// readText calls fn for each decimal sample in r, one per line. Blank lines are skipped.
func readText(r io.Reader, fn func(uint16) error) error {
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		v, err := strconv.ParseUint(text, 10, 16)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(uint16(v)); err != nil {
			return err
		}
	}

	return sc.Err()
}
