package block

import (
	"encoding/binary"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/arloliu/powerstrip/encoding"
	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
	"github.com/arloliu/powerstrip/internal/pool"
	"github.com/arloliu/powerstrip/section"
)

// Decoder decodes blocks produced by an Encoder with the same block size and entropy coder.
type Decoder struct {
	cfg          *Config
	maxFrameSize int
}

// NewDecoder creates a Decoder. Encoder-only options such as WithWindow are accepted and ignored.
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{cfg: cfg, maxFrameSize: MaxFrameSize(cfg.blockSamples)}, nil
}

// Config returns the decoder's configuration.
func (d *Decoder) Config() *Config {
	return d.cfg
}

// Decode decodes one tagged block into a new slice.
func (d *Decoder) Decode(block []byte) ([]uint16, error) {
	return d.AppendDecode(nil, block)
}

// AppendDecode decodes one tagged block and appends its samples to dst.
//
// The block must be exactly one tag and its payload. On error dst is
// returned unchanged.
//
// Returns:
//   - errs.ErrTruncated if block is shorter than a tag, or the frame is cut short
//   - errs.ErrInvalidRawPayload if a raw payload has odd length
//   - errs.ErrInvalidTag if a compressed tag exceeds MaxFrameSize
//   - errs.ErrEntropyLength if entropy decoding does not give the tagged length
//   - errs.ErrBlockTooLarge if the block holds more than the configured block size
//   - any frame validation error from section.ParseFrame or encoding.Packed.Unpack
func (d *Decoder) AppendDecode(dst []uint16, block []byte) ([]uint16, error) {
	if len(block) < format.TagSize {
		return dst, fmt.Errorf("%w: block of %d bytes has no tag", errs.ErrTruncated, len(block))
	}

	tag := format.Tag(binary.LittleEndian.Uint32(block))
	payload := block[format.TagSize:]

	switch {
	case tag == format.TagRaw:
		return d.appendRaw(dst, payload)
	case tag == format.TagFramed:
		return d.appendFrame(dst, payload, tag)
	case int64(tag) > int64(d.maxFrameSize):
		return dst, fmt.Errorf("%w: %s exceeds frame limit %d", errs.ErrInvalidTag, tag, d.maxFrameSize)
	default:
		frame, err := d.cfg.codec.Decompress(payload, int(tag))
		if err != nil {
			return dst, fmt.Errorf("entropy decode %s: %w", tag, err)
		}
		if len(frame) != int(tag) {
			return dst, fmt.Errorf("%w: %s decoded to %d bytes", errs.ErrEntropyLength, tag, len(frame))
		}

		return d.appendFrame(dst, frame, tag)
	}
}

func (d *Decoder) appendRaw(dst []uint16, payload []byte) ([]uint16, error) {
	if len(payload)%format.SampleSize != 0 {
		return dst, fmt.Errorf("%w: %d bytes", errs.ErrInvalidRawPayload, len(payload))
	}

	n := len(payload) / format.SampleSize
	if n > d.cfg.blockSamples {
		return dst, fmt.Errorf("%w: raw block of %d samples, limit %d", errs.ErrBlockTooLarge, n, d.cfg.blockSamples)
	}

	dst = slices.Grow(dst, n)
	for i := range n {
		dst = append(dst, binary.LittleEndian.Uint16(payload[i*format.SampleSize:]))
	}

	return dst, nil
}

func (d *Decoder) appendFrame(dst []uint16, data []byte, tag format.Tag) ([]uint16, error) {
	frame, err := section.ParseFrame(data)
	if err != nil {
		return dst, fmt.Errorf("parse frame: %w", err)
	}
	if int64(frame.Total) > int64(d.cfg.blockSamples) {
		return dst, fmt.Errorf("%w: frame of %d samples, limit %d", errs.ErrBlockTooLarge, frame.Total, d.cfg.blockSamples)
	}

	arena := pool.GetArena(int(frame.Signal.Len))
	defer pool.PutArena(arena)

	actives, err := frame.Packed().Unpack(arena.Actives)
	if err != nil {
		return dst, fmt.Errorf("unpack frame: %w", err)
	}

	start := len(dst)
	out := slices.Grow(dst, int(frame.Total))[:start+int(frame.Total)]
	if err := encoding.Unstrip(frame.Segments, frame.Floor, frame.Total, actives, out[start:]); err != nil {
		return dst, fmt.Errorf("rebuild block: %w", err)
	}

	if ce := d.cfg.logger.Check(zap.DebugLevel, "block decoded"); ce != nil {
		ce.Write(
			zap.Stringer("tag", tag),
			zap.Uint32("samples", frame.Total),
			zap.Uint16("floor", frame.Floor),
			zap.Int("segments", frame.Segments.Count()),
			zap.Uint8("bits", frame.Signal.Bits),
			zap.Uint32("outliers", frame.Outliers.Len),
		)
	}

	return out, nil
}
