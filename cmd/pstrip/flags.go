package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/arloliu/powerstrip/block"
	"github.com/arloliu/powerstrip/encoding"
	"github.com/arloliu/powerstrip/format"
	"github.com/arloliu/powerstrip/stream"
)

// codecFlags are the settings shared by every command that encodes or decodes blocks.
type codecFlags struct {
	coder        string
	blockSamples int
	window       uint16
	maxFloor     uint16
	workers      int
	verbose      bool
	encoder      bool
}

func (f *codecFlags) register(fs *pflag.FlagSet, encoder bool) {
	fs.StringVar(&f.coder, "coder", "huffman", "entropy coder: none, huffman, zstd, s2 or lz4")
	fs.IntVar(&f.blockSamples, "block-samples", block.DefaultBlockSamples, "samples per block")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log per-block decisions to stderr")
	f.encoder = encoder
	if encoder {
		fs.Uint16Var(&f.window, "window", encoding.DefaultWindow, "samples within this distance of the floor decode as the floor; 0 is lossless")
		fs.Uint16Var(&f.maxFloor, "max-floor", encoding.DefaultMaxFloor, "only values below this may become the floor")
		fs.IntVarP(&f.workers, "workers", "j", runtime.NumCPU(), "blocks encoded in parallel")
	}
}

func (f *codecFlags) logger() (*zap.Logger, error) {
	if !f.verbose {
		return zap.NewNop(), nil
	}

	return zap.NewDevelopment()
}

func (f *codecFlags) streamOptions(logger *zap.Logger) ([]stream.Option, error) {
	comp, err := format.ParseCompressionType(f.coder)
	if err != nil {
		return nil, err
	}

	blockOpts := []block.Option{
		block.WithCompression(comp),
		block.WithBlockSamples(f.blockSamples),
		block.WithLogger(logger),
	}
	if f.encoder {
		blockOpts = append(blockOpts, block.WithWindow(f.window), block.WithMaxFloor(f.maxFloor))
	}

	return []stream.Option{
		stream.WithBlockOptions(blockOpts...),
		stream.WithConcurrency(max(f.workers, 1)),
	}, nil
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	fs.BoolP("help", "h", false, "show help")

	return fs
}

// parse parses flags and reports whether the command should stop after printing help.
func parse(e *env, fs *pflag.FlagSet, usage string, args []string) (bool, error) {
	err := fs.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		printCommandHelp(e.stdout, fs, usage)
		return true, nil
	}
	if err != nil {
		return false, err
	}

	if help, _ := fs.GetBool("help"); help {
		printCommandHelp(e.stdout, fs, usage)
		return true, nil
	}

	return false, nil
}

func printCommandHelp(w io.Writer, fs *pflag.FlagSet, usage string) {
	fmt.Fprintf(w, "Usage: pstrip %s\n\nFlags:\n%s", usage, fs.FlagUsages())
}

// openIO resolves the positional input and output paths; "-" or a missing
// path means the process streams.
func openIO(e *env, args []string, maxArgs int) (io.Reader, io.Writer, func() error, error) {
	if len(args) > maxArgs {
		return nil, nil, nil, fmt.Errorf("unexpected argument %q", args[maxArgs])
	}

	var (
		in      = e.stdin
		out     = e.stdout
		closers []io.Closer
	)
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i].Close())
		}

		return errors.Join(errs...)
	}

	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, nil, err
		}
		in = f
		closers = append(closers, f)
	}
	if len(args) > 1 && args[1] != "-" {
		f, err := os.Create(args[1])
		if err != nil {
			_ = closeAll()
			return nil, nil, nil, err
		}
		out = f
		closers = append(closers, f)
	}

	return in, out, closeAll, nil
}
