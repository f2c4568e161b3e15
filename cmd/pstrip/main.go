// pstrip compresses and decompresses files of 16-bit meter readings.
//
// Input files hold little-endian uint16 samples. Compressed files are
// powerstrip block streams. Text files hold one decimal sample per line;
// tobytes and frombytes convert between the text and binary forms.
//
// Usage:
//
//	pstrip compress [flags] [input [output]]
//	pstrip decompress [flags] [input [output]]
//	pstrip verify [flags] [input]
//	pstrip tobytes [input [output]]
//	pstrip frombytes [input [output]]
//
// A missing path or "-" means standard input or output.
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type command struct {
	name    string
	summary string
	run     func(env *env, args []string) error
}

var commands = []command{
	{"compress", "compress binary samples into a block stream", runCompress},
	{"decompress", "decompress a block stream to text (default) or binary samples", runDecompress},
	{"verify", "compress and decompress in memory and compare with the input", runVerify},
	{"tobytes", "convert decimal text samples to binary", runToBytes},
	{"frombytes", "convert binary samples to decimal text", runFromBytes},
}

// env carries the process streams so commands can be tested in memory.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr}

	if len(args) == 0 {
		printUsage(stderr)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage(stdout)
		return nil
	}

	for _, c := range commands {
		if c.name == args[0] {
			return c.run(e, args[1:])
		}
	}

	printUsage(stderr)

	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "pstrip compresses 16-bit meter readings.\n\nUsage: pstrip <command> [flags] [input [output]]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-11s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nRun 'pstrip <command> --help' for the flags of a command.\n")
}
