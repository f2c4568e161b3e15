package block

import (
	"encoding/binary"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/arloliu/powerstrip/compress"
	"github.com/arloliu/powerstrip/encoding"
	"github.com/arloliu/powerstrip/errs"
	"github.com/arloliu/powerstrip/format"
	"github.com/arloliu/powerstrip/internal/pool"
	"github.com/arloliu/powerstrip/section"
)

// Result describes how a block was encoded.
type Result struct {
	// Tag is the tag written in front of the payload.
	Tag format.Tag
	// Floor is the detected floor, or encoding.NoFloor.
	Floor uint16
	// Segments is the number of active runs.
	Segments int
	// Actives is the number of active samples.
	Actives int
	// Outliers is the number of escaped deltas.
	Outliers int
	// Bits is the chosen signal width.
	Bits uint8
	// FrameSize is the size of the frame before entropy coding.
	FrameSize int
	// Size is the encoded block size, tag included.
	Size int
}

// Encoder encodes blocks of samples.
type Encoder struct {
	cfg *Config
}

// NewEncoder creates an Encoder.
//
// Returns an error if any option is invalid.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Config returns the encoder's configuration.
func (e *Encoder) Config() *Config {
	return e.cfg
}

// Encode encodes one block into a new slice.
func (e *Encoder) Encode(samples []uint16) ([]byte, error) {
	out, _, err := e.AppendEncode(nil, samples)
	return out, err
}

// EncodeWithResult encodes one block and reports the decisions taken.
func (e *Encoder) EncodeWithResult(samples []uint16) ([]byte, Result, error) {
	return e.AppendEncode(nil, samples)
}

// AppendEncode appends the encoded block to dst.
//
// Returns errs.ErrBlockTooLarge if samples holds more than the configured
// block size. Neither packing nor entropy coding can fail the block: when
// either does not pay off the block falls back to a raw or uncompressed form.
func (e *Encoder) AppendEncode(dst []byte, samples []uint16) ([]byte, Result, error) {
	if len(samples) > e.cfg.blockSamples {
		return dst, Result{}, fmt.Errorf("%w: %d samples, limit %d", errs.ErrBlockTooLarge, len(samples), e.cfg.blockSamples)
	}

	arena := pool.GetArena(len(samples))
	defer pool.PutArena(arena)

	floor := encoding.DetectFloor(samples, e.cfg.maxFloor)
	segs, actives := encoding.Strip(samples, floor, e.cfg.window, arena.Actives)
	packed := encoding.Pack(actives)

	frame := section.Frame{
		Signal:   packed.Signal,
		Outliers: packed.Outliers,
		Total:    uint32(len(samples)),
		Floor:    floor,
		Segments: segs,
	}

	res := Result{
		Floor:     floor,
		Segments:  segs.Count(),
		Actives:   len(actives),
		Outliers:  int(packed.Outliers.Len),
		Bits:      packed.Signal.Bits,
		FrameSize: frame.Size(),
	}
	start := len(dst)

	if res.FrameSize > len(samples)*format.SampleSize {
		res.Tag = format.TagRaw
		dst = appendRaw(dst, samples)
	} else {
		dst = e.appendFramed(dst, &frame, &res)
	}

	res.Size = len(dst) - start
	e.logResult(&res, len(samples))

	return dst, res, nil
}

func (e *Encoder) appendFramed(dst []byte, frame *section.Frame, res *Result) []byte {
	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)

	buf.B = frame.AppendTo(buf.B[:0])

	compressed, err := e.cfg.codec.Compress(buf.B)
	if err != nil || len(compressed) == 0 {
		if err != nil && !compress.IsIncompressible(err) {
			e.cfg.logger.Warn("entropy coder failed, storing frame uncompressed",
				zap.Int("frame_size", len(buf.B)),
				zap.Error(err))
		}
		res.Tag = format.TagFramed
		dst = binary.LittleEndian.AppendUint32(dst, uint32(res.Tag))

		return append(dst, buf.B...)
	}

	res.Tag = format.Tag(len(buf.B))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(res.Tag))

	return append(dst, compressed...)
}

func appendRaw(dst []byte, samples []uint16) []byte {
	dst = slices.Grow(dst, format.TagSize+len(samples)*format.SampleSize)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(format.TagRaw))
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint16(dst, s)
	}

	return dst
}

func (e *Encoder) logResult(res *Result, samples int) {
	if ce := e.cfg.logger.Check(zap.DebugLevel, "block encoded"); ce != nil {
		ce.Write(
			zap.Stringer("tag", res.Tag),
			zap.Int("samples", samples),
			zap.Uint16("floor", res.Floor),
			zap.Int("segments", res.Segments),
			zap.Int("actives", res.Actives),
			zap.Uint8("bits", res.Bits),
			zap.Int("outliers", res.Outliers),
			zap.Int("frame_size", res.FrameSize),
			zap.Int("size", res.Size),
		)
	}
}
