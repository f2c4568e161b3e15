package stream

import (
	"fmt"

	"github.com/arloliu/powerstrip/block"
	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
	"github.com/arloliu/powerstrip/internal/options"
)

// MaxBlockBytes is the largest length prefix a Reader accepts: a tag plus a
// raw block of block.MaxBlockSamples samples.
const MaxBlockBytes = format.TagSize + block.MaxBlockSamples*format.SampleSize

// lengthPrefixSize is the byte width of the little-endian block length in front of every block.
const lengthPrefixSize = 8

type config struct {
	concurrency int
	blockOpts   []block.Option
}

// Option configures a Writer, Reader or the Compress and Decompress helpers.
type Option = options.Option[*config]

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{concurrency: 1}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithConcurrency sets how many blocks a Writer encodes at once. The default is 1.
func WithConcurrency(n int) Option {
	return options.New(func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidConcurrency, n)
		}
		c.concurrency = n

		return nil
	})
}

// WithBlockOptions passes options to the block encoder and decoder.
func WithBlockOptions(opts ...block.Option) Option {
	return options.NoError(func(c *config) {
		c.blockOpts = append(c.blockOpts, opts...)
	})
}
