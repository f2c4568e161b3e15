package block

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/powerstrip/compress"
	"github.com/arloliu/powerstrip/encoding"
	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
	"github.com/arloliu/powerstrip/internal/options"
)

const (
	// MaxBlockSamples is the largest supported block. Its worst-case frame stays
	// within the Huffman coder's input limit and the tag never reaches 0xFFFFFFFF.
	MaxBlockSamples = 65536
	// DefaultBlockSamples is the default block size, 128 KiB of raw samples.
	DefaultBlockSamples = MaxBlockSamples
	// DefaultCompression is the default entropy coder.
	DefaultCompression = format.CompressionHuffman
)

// MaxFrameSize returns the largest frame that can reach the entropy coder for
// blocks of the given sample count. Larger frames are stored raw.
func MaxFrameSize(blockSamples int) int {
	return blockSamples * format.SampleSize
}

// Config holds the settings shared by Encoder and Decoder.
type Config struct {
	blockSamples int
	window       uint16
	maxFloor     uint16
	compression  format.CompressionType
	codec        compress.Codec
	logger       *zap.Logger
}

// Option configures a Config.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		blockSamples: DefaultBlockSamples,
		window:       encoding.DefaultWindow,
		maxFloor:     encoding.DefaultMaxFloor,
		compression:  DefaultCompression,
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.maxFloor > 0 && cfg.window >= cfg.maxFloor {
		return nil, fmt.Errorf("%w: window %d must be below the floor cutoff %d",
			errs.ErrInvalidWindow, cfg.window, cfg.maxFloor)
	}

	if cfg.codec == nil {
		codec, err := compress.GetCodec(cfg.compression)
		if err != nil {
			return nil, err
		}
		cfg.codec = codec
	}

	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	return cfg, nil
}

// BlockSamples returns the configured block size in samples.
func (c *Config) BlockSamples() int {
	return c.blockSamples
}

// Window returns the floor tolerance.
func (c *Config) Window() uint16 {
	return c.window
}

// MaxFloor returns the floor cutoff.
func (c *Config) MaxFloor() uint16 {
	return c.maxFloor
}

// Compression returns the configured entropy coder type.
func (c *Config) Compression() format.CompressionType {
	return c.compression
}

// WithBlockSamples sets the number of samples per block, 1 to MaxBlockSamples.
//
// The decoder rejects blocks that claim more samples than this.
func WithBlockSamples(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 || n > MaxBlockSamples {
			return fmt.Errorf("%w: %d samples, want 1..%d", errs.ErrInvalidBlockSize, n, MaxBlockSamples)
		}
		c.blockSamples = n

		return nil
	})
}

// WithWindow sets the tolerance around the floor inside which samples are
// inactive and decode as the floor. A window of 0 makes the codec exact.
func WithWindow(window uint16) Option {
	return options.NoError(func(c *Config) {
		c.window = window
	})
}

// WithMaxFloor sets the cutoff below which a value may become the floor.
// A cutoff of 0 disables floor detection and every sample is active.
func WithMaxFloor(maxFloor uint16) Option {
	return options.NoError(func(c *Config) {
		c.maxFloor = maxFloor
	})
}

// WithCompression selects a built-in entropy coder.
func WithCompression(comp format.CompressionType) Option {
	return options.New(func(c *Config) error {
		codec, err := compress.GetCodec(comp)
		if err != nil {
			return err
		}
		c.compression = comp
		c.codec = codec

		return nil
	})
}

// WithCodec installs a custom entropy coder. The decoder must use the same coder.
func WithCodec(codec compress.Codec) Option {
	return options.New(func(c *Config) error {
		if codec == nil {
			return fmt.Errorf("%w: nil codec", errs.ErrInvalidCompression)
		}
		c.codec = codec

		return nil
	})
}

// WithLogger sets the logger that receives per-block debug records.
// It uses a no-op logger by default.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = logger
	})
}
